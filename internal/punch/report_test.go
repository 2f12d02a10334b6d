package punch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func punchAt(t *testing.T, loc *time.Location, kind Kind, day string, hour, min int) Event {
	t.Helper()
	d, err := time.ParseInLocation(dateLayout, day, loc)
	require.NoError(t, err)
	return Event{
		UserID:     "5511999990000",
		Kind:       kind,
		OccurredAt: time.Date(d.Year(), d.Month(), d.Day(), hour, min, 0, 0, loc),
	}
}

func TestBuildReportPairsEntriesAndExits(t *testing.T) {
	loc := saoPaulo(t)
	events := []Event{
		punchAt(t, loc, Entry, "02/06/2025", 9, 0),
		punchAt(t, loc, Exit, "02/06/2025", 12, 0),
		punchAt(t, loc, Entry, "02/06/2025", 13, 0),
		punchAt(t, loc, Exit, "02/06/2025", 18, 0),
	}

	r := BuildReport(events, loc)

	require.Len(t, r.Days, 1)
	assert.Equal(t, 480, r.Days[0].Minutes)
	assert.Equal(t, 480, r.TotalMinutes)
	assert.Equal(t, "8h e 0min", FormatMinutes(r.Days[0].Minutes))
}

func TestBuildReportDuplicateEntryKeepsTheLatest(t *testing.T) {
	loc := saoPaulo(t)
	events := []Event{
		punchAt(t, loc, Entry, "02/06/2025", 9, 0),
		punchAt(t, loc, Entry, "02/06/2025", 9, 30),
		punchAt(t, loc, Exit, "02/06/2025", 12, 0),
	}

	r := BuildReport(events, loc)

	require.Len(t, r.Days, 1)
	assert.Equal(t, 150, r.TotalMinutes)
}

func TestBuildReportStrayExitIsIgnored(t *testing.T) {
	loc := saoPaulo(t)
	events := []Event{
		punchAt(t, loc, Exit, "02/06/2025", 9, 0),
	}

	r := BuildReport(events, loc)

	assert.Empty(t, r.Days)
	assert.Zero(t, r.TotalMinutes)
}

func TestBuildReportEntryDoesNotCrossMidnight(t *testing.T) {
	loc := saoPaulo(t)
	events := []Event{
		punchAt(t, loc, Entry, "02/06/2025", 23, 0),
		punchAt(t, loc, Exit, "03/06/2025", 1, 0),
		punchAt(t, loc, Entry, "03/06/2025", 9, 0),
		punchAt(t, loc, Exit, "03/06/2025", 10, 0),
	}

	r := BuildReport(events, loc)

	require.Len(t, r.Days, 1)
	assert.Equal(t, time.Date(2025, 6, 3, 0, 0, 0, 0, loc), r.Days[0].Date)
	assert.Equal(t, 60, r.TotalMinutes)
}

func TestBuildReportTotalEqualsSumOfDays(t *testing.T) {
	loc := saoPaulo(t)
	events := []Event{
		punchAt(t, loc, Entry, "02/06/2025", 9, 0),
		punchAt(t, loc, Exit, "02/06/2025", 12, 17),
		punchAt(t, loc, Entry, "03/06/2025", 8, 45),
		punchAt(t, loc, Exit, "03/06/2025", 11, 2),
		punchAt(t, loc, Exit, "04/06/2025", 18, 0), // stray, day omitted
		punchAt(t, loc, Entry, "05/06/2025", 14, 0),
		punchAt(t, loc, Exit, "05/06/2025", 19, 30),
	}

	r := BuildReport(events, loc)

	require.Len(t, r.Days, 3)
	sum := 0
	for _, d := range r.Days {
		assert.Positive(t, d.Minutes)
		sum += d.Minutes
	}
	assert.Equal(t, sum, r.TotalMinutes)

	// Ascending date order.
	for i := 1; i < len(r.Days); i++ {
		assert.True(t, r.Days[i-1].Date.Before(r.Days[i].Date))
	}
}

func TestSessionsNeverProduceNegativeDurations(t *testing.T) {
	loc := saoPaulo(t)
	events := []Event{
		punchAt(t, loc, Exit, "02/06/2025", 8, 0),
		punchAt(t, loc, Entry, "02/06/2025", 9, 0),
		punchAt(t, loc, Entry, "02/06/2025", 10, 0),
		punchAt(t, loc, Exit, "02/06/2025", 11, 0),
	}

	for _, s := range Sessions(events, loc) {
		assert.False(t, s.End.Before(s.Start))
	}
}

func TestRenderReport(t *testing.T) {
	loc := saoPaulo(t)
	events := []Event{
		punchAt(t, loc, Entry, "02/06/2025", 9, 0),
		punchAt(t, loc, Exit, "02/06/2025", 17, 5),
	}
	rng, err := ResolveRange("01/06/2025 até 05/06/2025", time.Now(), loc)
	require.NoError(t, err)

	got := BuildReport(events, loc).Render(rng)

	want := "*Relatório de Ponto: 01/06/2025 a 05/06/2025*\n" +
		"\n- 02/06/2025: *8h e 5min*" +
		"\n\n*Total no período:* 8h e 5min"
	assert.Equal(t, want, got)

	// Deterministic for identical input.
	assert.Equal(t, got, BuildReport(events, loc).Render(rng))
}

func TestRenderReportZeroTotalFooter(t *testing.T) {
	loc := saoPaulo(t)
	events := []Event{
		punchAt(t, loc, Exit, "02/06/2025", 9, 0),
	}
	rng, err := ResolveRange("ontem", time.Date(2025, 6, 3, 10, 0, 0, 0, loc), loc)
	require.NoError(t, err)

	got := BuildReport(events, loc).Render(rng)

	assert.Contains(t, got, "*Relatório de Ponto: ontem (02/06/2025)*")
	assert.Contains(t, got, "Nenhuma hora registada no período.")
	assert.NotContains(t, got, "Total no período")
}

func TestBuildReportEmptyInput(t *testing.T) {
	loc := saoPaulo(t)

	r := BuildReport(nil, loc)

	assert.Empty(t, r.Days)
	assert.Zero(t, r.TotalMinutes)
}
