// Package i18n provides localized player-facing messages for error codes.
package i18n

import (
	"bytes"
	"strings"
	"sync"
	"text/template"

	"golang.org/x/text/language"
)

// Code is a machine-readable error code (duplicated from the errors package
// to avoid an import cycle).
type Code = string

// Catalog maps error codes to message templates for a specific locale.
type Catalog struct {
	locale   string
	messages map[Code]string
}

var (
	catalogsMu sync.RWMutex
	catalogs   = map[string]*Catalog{
		"en-US": enUSCatalog,
	}
	matcher     = language.NewMatcher([]language.Tag{language.AmericanEnglish})
	matcherTags = []string{"en-US"}
)

// NewCatalog builds a catalog from a locale and message map.
func NewCatalog(locale string, messages map[Code]string) *Catalog {
	return &Catalog{locale: locale, messages: messages}
}

// GetCatalog returns the catalog for the given locale.
// Unknown locales resolve through the language matcher and fall back to en-US.
func GetCatalog(locale string) *Catalog {
	requested := strings.TrimSpace(locale)
	if requested == "" {
		requested = "en-US"
	}

	catalogsMu.RLock()
	c, ok := catalogs[requested]
	catalogsMu.RUnlock()
	if ok {
		return c
	}

	tag, err := language.Parse(requested)
	if err != nil {
		return enUSCatalog
	}
	_, index, _ := matcher.Match(tag)
	catalogsMu.RLock()
	c, ok = catalogs[matcherTags[index]]
	catalogsMu.RUnlock()
	if ok {
		return c
	}
	return enUSCatalog
}

// RegisterCatalog registers a catalog for the given locale. Intended for
// single-threaded setup before the match starts serving players.
func RegisterCatalog(locale string, cat *Catalog) {
	catalogsMu.Lock()
	defer catalogsMu.Unlock()
	catalogs[locale] = cat
}

// Locale returns the locale of this catalog.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message template with the given metadata.
// Falls back to the error code itself if no template is found.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	tmpl, ok := c.messages[code]
	if !ok {
		return code
	}

	if metadata == nil {
		metadata = map[string]string{}
	}

	t, err := template.New("msg").Parse(tmpl)
	if err != nil {
		return tmpl
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, metadata); err != nil {
		return tmpl
	}
	return buf.String()
}
