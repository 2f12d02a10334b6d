package bot

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/dmoreira/pontobot/internal/punch"
)

// SeedMockData wipes one user's punches and reseeds the last seven days
// (weekends skipped) with two strictly alternating entry/exit pairs per
// day: roughly 09:00-12:30 and 13:30-18:00, with a few minutes of jitter.
// The pairs alternate on purpose, since the pairing scan consumes them
// one entry per exit.
func (h *Handler) SeedMockData(ctx context.Context, userID string) error {
	if _, err := h.store.DeletePunches(ctx, userID); err != nil {
		return fmt.Errorf("resetting punches: %w", err)
	}

	now := h.now().In(h.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, h.loc)

	for i := 0; i < 7; i++ {
		day := today.AddDate(0, 0, -i)
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}

		punches := []struct {
			kind punch.Kind
			hour int
			min  int
		}{
			{punch.Entry, 9, rand.IntN(10)},
			{punch.Exit, 12, 30 + rand.IntN(10)},
			{punch.Entry, 13, 30 + rand.IntN(10)},
			{punch.Exit, 18, rand.IntN(10)},
		}

		for _, p := range punches {
			at := time.Date(day.Year(), day.Month(), day.Day(), p.hour, p.min, 0, 0, h.loc)
			if err := h.store.AppendPunch(ctx, userID, p.kind, at); err != nil {
				return fmt.Errorf("seeding punch: %w", err)
			}
		}
	}

	return nil
}
