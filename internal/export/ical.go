// Package export renders worked sessions as an iCalendar, so a report
// range can be dropped into any calendar app for review.
package export

import (
	"fmt"
	"io"
	"time"

	ical "github.com/emersion/go-ical"

	"github.com/dmoreira/pontobot/internal/punch"
)

// WriteICS writes one VEVENT per worked session. The dtstamp is injected
// so output for a fixed session list is reproducible.
func WriteICS(w io.Writer, userID string, sessions []punch.Session, dtstamp time.Time) error {
	if len(sessions) == 0 {
		return fmt.Errorf("no worked sessions to export")
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//pontobot//time clock//PT")

	for _, s := range sessions {
		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID,
			fmt.Sprintf("%s-%d@pontobot", userID, s.Start.Unix()))
		event.Props.SetDateTime(ical.PropDateTimeStamp, dtstamp.UTC())
		event.Props.SetDateTime(ical.PropDateTimeStart, s.Start)
		event.Props.SetDateTime(ical.PropDateTimeEnd, s.End)
		event.Props.SetText(ical.PropSummary, "Expediente")
		cal.Children = append(cal.Children, event.Component)
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encoding calendar: %w", err)
	}
	return nil
}
