package punch

import (
	"fmt"
	"strings"
	"time"
)

// NoRecordsMessage is the reply for a valid range with zero stored events.
// It is a successful outcome, not an error.
const NoRecordsMessage = "Nenhum registo encontrado para o período solicitado."

// Session is one worked interval, an Entry paired with the Exit that
// closed it on the same calendar day.
type Session struct {
	Start time.Time
	End   time.Time
}

// DayTotal is the computed worked time of one calendar day.
type DayTotal struct {
	Date    time.Time
	Minutes int
}

// Report is the aggregation of one user's punches over a range. Days with
// zero computed minutes are omitted; TotalMinutes is always the exact sum
// of the per-day minutes.
type Report struct {
	Days         []DayTotal
	TotalMinutes int
}

// Sessions pairs entries and exits day by day. The scan keeps one open
// entry per day: a second Entry overwrites an unconsumed one, an Exit with
// no open entry is ignored, and an entry left open at a day boundary is
// dropped. Events must be ordered by time, as the store returns them.
// The permissive policy mirrors how punches are accepted on append, where
// consecutive same-kind events are not rejected.
func Sessions(events []Event, loc *time.Location) []Session {
	var (
		sessions []Session
		open     time.Time
		hasOpen  bool
		day      time.Time
	)

	for _, ev := range events {
		d := dateOf(ev.OccurredAt, loc)
		if !d.Equal(day) {
			day = d
			hasOpen = false
		}

		switch ev.Kind {
		case Entry:
			open = ev.OccurredAt
			hasOpen = true
		case Exit:
			if hasOpen && !ev.OccurredAt.Before(open) {
				sessions = append(sessions, Session{Start: open, End: ev.OccurredAt})
				hasOpen = false
			}
		}
	}

	return sessions
}

// BuildReport computes per-day and total worked minutes from an ordered
// event sequence. Minutes are truncated from the summed duration once per
// day, so re-aggregating the per-day values cannot drift from the total.
func BuildReport(events []Event, loc *time.Location) Report {
	var (
		report  Report
		day     time.Time
		worked  time.Duration
		pending bool
	)

	flush := func() {
		if !pending {
			return
		}
		if minutes := int(worked / time.Minute); minutes > 0 {
			report.Days = append(report.Days, DayTotal{Date: day, Minutes: minutes})
			report.TotalMinutes += minutes
		}
		worked = 0
		pending = false
	}

	for _, s := range Sessions(events, loc) {
		d := dateOf(s.Start, loc)
		if !d.Equal(day) {
			flush()
			day = d
		}
		worked += s.End.Sub(s.Start)
		pending = true
	}
	flush()

	return report
}

// FormatMinutes renders a minute count as whole hours and minutes,
// e.g. 485 becomes "8h e 5min".
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%dh e %dmin", minutes/60, minutes%60)
}

// Render produces the report text for a resolved range. The output is a
// pure function of the report and range, independent of the machine's
// locale or timezone.
func (r Report) Render(rng Range) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*Relatório de Ponto: %s*\n", rng.Label)

	for _, d := range r.Days {
		fmt.Fprintf(&b, "\n- %s: *%s*", d.Date.Format(dateLayout), FormatMinutes(d.Minutes))
	}

	if r.TotalMinutes == 0 {
		b.WriteString("\n\nNenhuma hora registada no período.")
		return b.String()
	}

	fmt.Fprintf(&b, "\n\n*Total no período:* %s", FormatMinutes(r.TotalMinutes))
	return b.String()
}
