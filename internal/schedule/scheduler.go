// Package schedule computes when the daily journal reminder fires.
package schedule

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kimchoi-jjiggae/coachMe/internal/config"
)

const defaultHour = 20

// maxLookahead bounds the search when every day is excluded.
const maxLookahead = 366 * 2

// NextAt computes the next occurrence of the reminder time that falls on a
// configured workday and is not a holiday. The zero time means no such day
// exists (e.g. an empty workday list).
func NextAt(now time.Time, cfg config.ReminderConfig, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	now = now.In(loc)

	hour, minute := defaultHour, 0
	if t, err := time.Parse("15:04", strings.TrimSpace(cfg.Time)); err == nil {
		hour, minute = t.Hour(), t.Minute()
	}

	workdays := map[string]bool{}
	for _, d := range cfg.Workdays {
		d = strings.ToLower(strings.TrimSpace(d))
		if len(d) < 3 {
			continue
		}
		workdays[d[:3]] = true
	}
	holidays := map[string]bool{}
	for _, h := range cfg.Holidays {
		holidays[strings.TrimSpace(h)] = true
	}
	eligible := func(t time.Time) bool {
		day := strings.ToLower(t.Weekday().String()[:3])
		return workdays[day] && !holidays[t.Format("2006-01-02")]
	}

	// candidate today at hh:mm; AddDate keeps wall time across DST changes
	cand := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, loc)
	if !now.Before(cand) {
		cand = cand.AddDate(0, 0, 1)
	}
	for range maxLookahead {
		if eligible(cand) {
			return cand
		}
		cand = cand.AddDate(0, 0, 1)
	}
	return time.Time{}
}

// Run calls f at every configured reminder time until ctx is canceled.
func Run(ctx context.Context, cfg config.Config, logger *zap.Logger, f func(context.Context)) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	loc := cfg.Location()
	for {
		next := NextAt(time.Now(), cfg.Reminder, loc)
		if next.IsZero() {
			logger.Warn("no reminder day configured, scheduler idle")
			<-ctx.Done()
			return ctx.Err()
		}
		logger.Debug("next reminder", zap.Time("at", next))

		t := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
			f(ctx)
		}
	}
}
