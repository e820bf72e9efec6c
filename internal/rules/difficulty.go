package rules

import (
	"math"
	"sync"
	"time"
)

// Multiplier computes the plague unit strength multiplier for a match
// time in whole minutes. The curve is piecewise exponential and steepens
// every forty minutes; the leading constants keep the pieces continuous
// at the breakpoints and must not be altered.
func Multiplier(minutes int) float64 {
	m := minutes
	if m < 1 {
		m = 1
	}

	switch {
	case m < 40:
		return math.Pow(1.2, float64(m)/10)
	case m < 80:
		return 2.07 * math.Pow(1.4, float64(m-40)/10)
	case m < 120:
		return 7.96 * math.Pow(1.6, float64(m-80)/10)
	}
	return 52.2 * math.Pow(1.8, float64(m-120)/10)
}

// Difficulty caches the multiplier so it is recomputed at most once per
// simulated minute.
type Difficulty struct {
	mu     sync.Mutex
	minute int
	value  float64
}

// NewDifficulty returns an empty cache.
func NewDifficulty() *Difficulty {
	return &Difficulty{minute: -1}
}

// At returns the multiplier for the given elapsed match time.
func (d *Difficulty) At(elapsed time.Duration) float64 {
	minutes := int(elapsed.Minutes())

	d.mu.Lock()
	defer d.mu.Unlock()

	if minutes != d.minute {
		d.minute = minutes
		d.value = Multiplier(minutes)
	}
	return d.value
}

// Reset clears the cache; called when a match ends.
func (d *Difficulty) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.minute = -1
	d.value = 0
}
