// Package ticketid mints the public tracking identifiers handed to citizens.
package ticketid

import (
	"fmt"
	"math/rand"
	"regexp"
	"time"
)

var pattern = regexp.MustCompile(`^RW-[0-9]{8}-[0-9]{4}$`)

// Generator produces tracking identifiers of the form RW-<8 digits>-<4 digits>.
type Generator interface {
	Generate() string
}

// ClockGenerator derives the identifier from the wall clock and a random suffix.
// Identifiers are collision resistant, not unique; callers that need uniqueness
// must check against their store.
type ClockGenerator struct {
	now    func() time.Time
	suffix func() int
}

// NewGenerator builds a generator. Nil arguments fall back to time.Now and math/rand.
func NewGenerator(now func() time.Time, suffix func() int) *ClockGenerator {
	if now == nil {
		now = time.Now
	}
	if suffix == nil {
		suffix = func() int { return rand.Intn(10000) }
	}
	return &ClockGenerator{now: now, suffix: suffix}
}

// Generate returns a new identifier.
func (g *ClockGenerator) Generate() string {
	millis := g.now().UnixMilli() % 100_000_000
	if millis < 0 {
		millis = -millis
	}
	suffix := g.suffix() % 10000
	if suffix < 0 {
		suffix = -suffix
	}
	return fmt.Sprintf("RW-%08d-%04d", millis, suffix)
}

// Valid reports whether id follows the tracking identifier grammar.
func Valid(id string) bool {
	return pattern.MatchString(id)
}
