package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestCodeExtraction(t *testing.T) {
	base := New(CodeTeamLocked, "team is locked")

	if !IsCode(base, CodeTeamLocked) {
		t.Fatal("IsCode missed a direct domain error")
	}
	if IsCode(base, CodeTeamNotFound) {
		t.Fatal("IsCode matched the wrong code")
	}

	wrapped := fmt.Errorf("joining: %w", base)
	if GetCode(wrapped) != CodeTeamLocked {
		t.Fatalf("GetCode(wrapped) = %s, want %s", GetCode(wrapped), CodeTeamLocked)
	}

	if GetCode(fmt.Errorf("plain")) != CodeUnknown {
		t.Fatal("non-domain error must map to CodeUnknown")
	}
}

func TestIsMatchesByCode(t *testing.T) {
	a := New(CodeTeamLocked, "one message")
	b := New(CodeTeamLocked, "another message")
	if !Is(a, b) {
		t.Fatal("errors with the same code must match")
	}
	if Is(a, New(CodeTeamNotOwner, "other")) {
		t.Fatal("errors with different codes must not match")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("disk gone")
	err := Wrap(CodeMapLoadFailed, "loading map", cause)
	if err.Unwrap() != cause {
		t.Fatal("cause lost")
	}
	if GetCode(err) != CodeMapLoadFailed {
		t.Fatalf("code = %s", GetCode(err))
	}
}

func TestUserMessageTemplating(t *testing.T) {
	err := WithMetadata(CodePlacementNearPlagueCore, "too close",
		map[string]string{"Distance": "100"})

	msg := UserMessage(err, "en-US")
	if !strings.Contains(msg, "100") {
		t.Fatalf("metadata not templated into %q", msg)
	}

	// Unknown locales fall back to en-US.
	if got := UserMessage(err, "xx-YY"); got != msg {
		t.Fatalf("fallback message %q differs from en-US %q", got, msg)
	}
	// Locale matching resolves regional variants.
	if got := UserMessage(err, "en-GB"); got != msg {
		t.Fatalf("matched message %q differs from en-US %q", got, msg)
	}

	// Non-domain errors never leak internals to players.
	plain := UserMessage(fmt.Errorf("sql: connection refused"), "en-US")
	if strings.Contains(plain, "sql") {
		t.Fatalf("internal detail leaked: %q", plain)
	}
}

func TestClassification(t *testing.T) {
	tests := []struct {
		code Code
		want Class
	}{
		{CodePlacementInvalid, ClassValidation},
		{CodeTeamBlacklisted, ClassValidation},
		{CodeSyncCooldown, ClassValidation},
		{CodeNoNextMap, ClassFatal},
		{CodeMapLoadFailed, ClassFatal},
		{CodeInternal, ClassInternal},
		{CodeUnknown, ClassInternal},
	}
	for _, tc := range tests {
		if got := tc.code.Class(); got != tc.want {
			t.Fatalf("%s.Class() = %v, want %v", tc.code, got, tc.want)
		}
	}
}
