package sched

import (
	"testing"
	"time"
)

func TestParseScheduleDuration(t *testing.T) {
	s, err := ParseSchedule("55m")
	if err != nil {
		t.Fatalf("ParseSchedule: %v", err)
	}
	if s.every != 55*time.Minute {
		t.Fatalf("expected 55m, got %v", s.every)
	}
}

func TestParseScheduleEveryPrefix(t *testing.T) {
	s, err := ParseSchedule("every:2h30m")
	if err != nil {
		t.Fatalf("ParseSchedule: %v", err)
	}
	if s.every != 2*time.Hour+30*time.Minute {
		t.Fatalf("expected 2h30m, got %v", s.every)
	}
}

func TestParseScheduleCron(t *testing.T) {
	for _, raw := range []string{"*/30 * * * *", "@hourly", "cron:15 9 * * *"} {
		s, err := ParseSchedule(raw)
		if err != nil {
			t.Fatalf("ParseSchedule(%q): %v", raw, err)
		}
		if s.cron == nil {
			t.Fatalf("ParseSchedule(%q): expected cron schedule", raw)
		}
	}
}

func TestParseScheduleInvalid(t *testing.T) {
	for _, raw := range []string{"", "nonsense", "-5m", "cron:", "every:"} {
		if _, err := ParseSchedule(raw); err == nil {
			t.Fatalf("ParseSchedule(%q): expected error", raw)
		}
	}
}

func TestDueFirstEvaluationFiresImmediately(t *testing.T) {
	s := Interval(2 * time.Hour)
	if !s.Due(time.Time{}, time.Now()) {
		t.Fatalf("never-fired topic must be due")
	}
}

func TestDueInterval(t *testing.T) {
	s := Interval(time.Hour)
	base := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

	if s.Due(base, base.Add(59*time.Minute)) {
		t.Fatalf("must not be due before the interval elapses")
	}
	if !s.Due(base, base.Add(time.Hour)) {
		t.Fatalf("must be due exactly at the interval boundary")
	}
	if !s.Due(base, base.Add(3*time.Hour)) {
		t.Fatalf("must be due after the interval")
	}
}

func TestDueCron(t *testing.T) {
	s, err := ParseSchedule("0 * * * *") // top of each hour
	if err != nil {
		t.Fatalf("ParseSchedule: %v", err)
	}
	last := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	if s.Due(last, last.Add(30*time.Minute)) {
		t.Fatalf("not due before the next cron point")
	}
	if !s.Due(last, last.Add(time.Hour)) {
		t.Fatalf("due at the next cron point")
	}
}
