package ticketid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateMatchesGrammar(t *testing.T) {
	gen := NewGenerator(nil, nil)
	for i := 0; i < 200; i++ {
		id := gen.Generate()
		require.True(t, Valid(id), "unexpected id %q", id)
	}
}

func TestGenerateUsesLowestEightDigitsOfClock(t *testing.T) {
	fixed := time.UnixMilli(1712345678901)
	gen := NewGenerator(func() time.Time { return fixed }, func() int { return 7 })

	assert.Equal(t, "RW-45678901-0007", gen.Generate())
}

func TestGeneratePadsSmallValues(t *testing.T) {
	fixed := time.UnixMilli(100_000_042)
	gen := NewGenerator(func() time.Time { return fixed }, func() int { return 0 })

	assert.Equal(t, "RW-00000042-0000", gen.Generate())
}

func TestGenerateMostlyUniqueWithinRun(t *testing.T) {
	gen := NewGenerator(nil, nil)
	seen := make(map[string]struct{}, 100)
	for i := 0; i < 100; i++ {
		seen[gen.Generate()] = struct{}{}
	}
	// Collisions are possible; more than a handful would be suspicious.
	assert.GreaterOrEqual(t, len(seen), 95)
}

func TestValid(t *testing.T) {
	valid := []string{"RW-12345678-0001", "RW-00000000-9999"}
	for _, id := range valid {
		assert.True(t, Valid(id), id)
	}
	invalid := []string{"", "RW-1234567-0001", "RW-12345678-001", "rw-12345678-0001", "RW-12345678-0001 ", "RW-1234567a-0001"}
	for _, id := range invalid {
		assert.False(t, Valid(id), id)
	}
}
