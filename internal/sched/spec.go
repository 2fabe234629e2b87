package sched

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Schedule decides when a topic is due. Two forms are supported:
//   - fixed interval: "55m", "2h30m", or "every:55m"
//   - cron (crontab.guru-style): "*/30 * * * *", "@hourly", or "cron:..."
//
// A topic that has never fired is always due, regardless of form.
type Schedule struct {
	every time.Duration // > 0 for interval schedules
	cron  cron.Schedule // non-nil for cron schedules
	raw   string
}

func (s Schedule) String() string { return s.raw }

// Interval builds a fixed-interval schedule directly (config "minutes" path).
func Interval(d time.Duration) Schedule {
	return Schedule{every: d, raw: d.String()}
}

// ParseSchedule parses a schedule string.
func ParseSchedule(raw string) (Schedule, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Schedule{}, fmt.Errorf("schedule required")
	}

	low := strings.ToLower(s)
	if strings.HasPrefix(low, "cron:") {
		expr := strings.TrimSpace(s[len("cron:"):])
		if expr == "" {
			return Schedule{}, fmt.Errorf("cron schedule required after 'cron:'")
		}
		return parseCron(expr, raw)
	}
	if strings.HasPrefix(low, "every:") {
		v := strings.TrimSpace(s[len("every:"):])
		d, err := parseInterval(v)
		if err != nil {
			return Schedule{}, err
		}
		return Schedule{every: d, raw: raw}, nil
	}

	// Heuristics: whitespace or a leading '@' means cron.
	if strings.ContainsAny(s, " \t\n\r") || strings.HasPrefix(s, "@") {
		return parseCron(s, raw)
	}

	d, err := parseInterval(s)
	if err != nil {
		return Schedule{}, fmt.Errorf(
			"invalid schedule %q (use cron like '*/30 * * * *' or duration like '55m')", raw)
	}
	return Schedule{every: d, raw: raw}, nil
}

// Due reports whether a topic whose last fire was at last is due at now.
// A zero last is treated as the epoch, so the first evaluation fires.
func (s Schedule) Due(last, now time.Time) bool {
	if last.IsZero() {
		return true
	}
	if s.cron != nil {
		next := s.cron.Next(last)
		return !next.After(now)
	}
	if s.every <= 0 {
		return false
	}
	return now.Sub(last) >= s.every
}

func parseCron(expr, raw string) (Schedule, error) {
	sch, err := cron.ParseStandard(expr)
	if err != nil {
		return Schedule{}, fmt.Errorf("invalid cron schedule %q: %w", expr, err)
	}
	return Schedule{cron: sch, raw: raw}, nil
}

func parseInterval(v string) (time.Duration, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, fmt.Errorf("interval required")
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid interval %q (use a Go duration like '55m'/'2h30m')", v)
	}
	if d <= 0 {
		return 0, fmt.Errorf("interval must be > 0")
	}
	return d, nil
}
