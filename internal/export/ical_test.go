package export

import (
	"bytes"
	"io"
	"testing"
	"time"

	ical "github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmoreira/pontobot/internal/punch"
)

func TestWriteICS(t *testing.T) {
	base := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	sessions := []punch.Session{
		{Start: base, End: base.Add(3 * time.Hour)},
		{Start: base.Add(25 * time.Hour), End: base.Add(30 * time.Hour)},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteICS(&buf, "5511999990000", sessions, base))

	dec := ical.NewDecoder(&buf)
	cal, err := dec.Decode()
	require.NoError(t, err)

	var events int
	for _, component := range cal.Children {
		if component.Name != ical.CompEvent {
			continue
		}
		events++
		event := ical.Event{Component: component}
		start, err := event.DateTimeStart(nil)
		require.NoError(t, err)
		end, err := event.DateTimeEnd(nil)
		require.NoError(t, err)
		assert.True(t, end.After(start))
	}
	assert.Equal(t, 2, events)

	_, err = dec.Decode()
	assert.Equal(t, io.EOF, err)
}

func TestWriteICSRejectsEmptySessionList(t *testing.T) {
	var buf bytes.Buffer
	err := WriteICS(&buf, "u", nil, time.Now())
	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}
