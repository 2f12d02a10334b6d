package punch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saoPaulo(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	return loc
}

func TestResolveRangeLastNDays(t *testing.T) {
	loc := saoPaulo(t)
	now := time.Date(2025, 6, 15, 14, 30, 0, 0, loc)

	rng, err := ResolveRange("últimos 7 dias", now, loc)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 6, 9, 0, 0, 0, 0, loc), rng.Start)
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, loc), rng.End)
	assert.Equal(t, "últimos 7 dias", rng.Label)
}

func TestResolveRangeExplicitSpan(t *testing.T) {
	loc := saoPaulo(t)
	now := time.Date(2025, 6, 15, 14, 30, 0, 0, loc)

	rng, err := ResolveRange("01/06/2025 até 05/06/2025", now, loc)
	require.NoError(t, err)

	// End day is inclusive via the exclusive-bound shift.
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, loc), rng.Start)
	assert.Equal(t, time.Date(2025, 6, 6, 0, 0, 0, 0, loc), rng.End)
	assert.Equal(t, "01/06/2025 a 05/06/2025", rng.Label)
}

func TestResolveRangeYesterday(t *testing.T) {
	loc := saoPaulo(t)
	now := time.Date(2025, 6, 15, 0, 5, 0, 0, loc)

	rng, err := ResolveRange("ontem", now, loc)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 6, 14, 0, 0, 0, 0, loc), rng.Start)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, loc), rng.End)
}

func TestResolveRangeDefaultsToToday(t *testing.T) {
	loc := saoPaulo(t)
	now := time.Date(2025, 6, 15, 23, 59, 0, 0, loc)

	for _, params := range []string{"", "   ", "qualquer coisa"} {
		rng, err := ResolveRange(params, now, loc)
		require.NoError(t, err, "params %q", params)

		assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, loc), rng.Start)
		assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, loc), rng.End)
	}
}

func TestResolveRangeDayBoundaryUsesReferenceTimezone(t *testing.T) {
	loc := saoPaulo(t)
	// 01:30 UTC on June 16 is still June 15 in São Paulo.
	now := time.Date(2025, 6, 16, 1, 30, 0, 0, time.UTC)

	rng, err := ResolveRange("", now, loc)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, loc), rng.Start)
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, loc), rng.End)
}

func TestResolveRangeInvalid(t *testing.T) {
	loc := saoPaulo(t)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, loc)

	tests := []struct {
		name   string
		params string
	}{
		{"day out of range", "32/01/2025 até 05/01/2025"},
		{"month out of range", "01/13/2025 até 05/01/2025"},
		{"garbled start date", "abc até 05/01/2025"},
		{"missing end date", "01/01/2025 até"},
		{"end before start", "05/06/2025 até 01/06/2025"},
		{"non numeric day count", "últimos sete dias"},
		{"zero days", "últimos 0 dias"},
		{"negative days", "últimos -3 dias"},
		{"missing day count", "últimos"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveRange(tt.params, now, loc)
			var invalid *InvalidRangeError
			require.ErrorAs(t, err, &invalid)
			assert.NotEmpty(t, invalid.Reason)
		})
	}
}

func TestResolveRangeIsPure(t *testing.T) {
	loc := saoPaulo(t)
	now := time.Date(2025, 6, 15, 9, 0, 0, 0, loc)

	first, err := ResolveRange("últimos 30 dias", now, loc)
	require.NoError(t, err)
	second, err := ResolveRange("últimos 30 dias", now, loc)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, first.Start.Before(first.End))
}
