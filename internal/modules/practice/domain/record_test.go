package domain_test

import (
	"errors"
	"testing"
	"time"

	"mindful/internal/modules/practice/domain"
	technique "mindful/internal/modules/technique/domain"
	apperrors "mindful/internal/platform/errors"
)

func TestRecordActivityAndNormalization(t *testing.T) {
	t.Parallel()
	if domain.EmptyRecord().IsActive() {
		t.Fatalf("empty record must be inactive")
	}
	if !(domain.DailyRecord{BreathingSessions: 1}).IsActive() {
		t.Fatalf("a breathing session makes the day active")
	}
	messy := domain.DailyRecord{MeditationSeconds: -5, BreathingSessions: 2, TechniqueUsage: map[technique.ID]int{"box": -1, "calm": 2}}
	clean := messy.Normalized()
	if clean.MeditationSeconds != 0 || len(clean.TechniqueUsage) != 1 || clean.TechniqueUsage["calm"] != 2 {
		t.Fatalf("unexpected normalized record %+v", clean)
	}
	if messy.TechniqueUsage["box"] != -1 {
		t.Fatalf("normalization must not mutate the source record")
	}
}

func TestAddHelpersCopyUsage(t *testing.T) {
	t.Parallel()
	base := domain.DailyRecord{BreathingSessions: 1, TechniqueUsage: map[technique.ID]int{"box": 1}}
	next := base.AddBreathing("box", 2).AddMeditation(300)
	if next.BreathingSessions != 3 || next.TechniqueUsage["box"] != 3 || next.MeditationSeconds != 300 {
		t.Fatalf("unexpected record %+v", next)
	}
	if base.TechniqueUsage["box"] != 1 {
		t.Fatalf("base usage mutated: %+v", base.TechniqueUsage)
	}
	if got := base.AddBreathing("box", 0); got.BreathingSessions != 1 {
		t.Fatalf("zero count must be ignored")
	}
}

func TestGoalBoundaryIsInclusive(t *testing.T) {
	t.Parallel()
	day := domain.DailyRecord{MeditationSeconds: 20 * 60}
	if !day.MeetsGoal(20) {
		t.Fatalf("exactly 20 minutes meets a 20 minute goal")
	}
	short := domain.DailyRecord{MeditationSeconds: 19 * 60}
	if short.MeetsGoal(20) {
		t.Fatalf("19 minutes must not meet a 20 minute goal")
	}
	if !domain.EmptyRecord().MeetsGoal(0) {
		t.Fatalf("a zero goal is met by any day, including an empty one")
	}
}

func TestHistoryLookupAndDates(t *testing.T) {
	t.Parallel()
	h := domain.History{
		"2024-01-03": {MeditationSeconds: 60},
		"2024-01-01": {},
		"2024-01-02": {BreathingSessions: 1},
	}
	dates, err := h.Dates()
	if err != nil {
		t.Fatalf("dates: %v", err)
	}
	if len(dates) != 3 || domain.FormatDate(dates[0]) != "2024-01-01" || domain.FormatDate(dates[2]) != "2024-01-03" {
		t.Fatalf("dates not sorted: %v", dates)
	}
	active, err := h.ActiveDates()
	if err != nil || len(active) != 2 {
		t.Fatalf("expected 2 active dates, got %v (%v)", active, err)
	}
	missing := h.Record(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	if missing.IsActive() || missing.TechniqueUsage == nil {
		t.Fatalf("absent dates should yield an empty record, got %+v", missing)
	}
}

func TestInvalidDateKeyIsHardError(t *testing.T) {
	t.Parallel()
	h := domain.History{"2024-13-01": {MeditationSeconds: 60}}
	if err := h.Validate(); !errors.Is(err, apperrors.ErrInvalidDate) {
		t.Fatalf("expected invalid date, got %v", err)
	}
	if _, err := h.Dates(); !errors.Is(err, apperrors.ErrInvalidDate) {
		t.Fatalf("expected invalid date from Dates, got %v", err)
	}
}

func TestDayAndDaysBetween(t *testing.T) {
	t.Parallel()
	late := time.Date(2024, 3, 9, 23, 59, 0, 0, time.FixedZone("X", -8*3600))
	if got := domain.FormatDate(domain.Day(late)); got != "2024-03-09" {
		t.Fatalf("expected local calendar date, got %s", got)
	}
	a := time.Date(2024, 2, 27, 0, 0, 0, 0, time.UTC)
	b := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	if got := domain.DaysBetween(a, b); got != 4 {
		t.Fatalf("expected 4 days across leap February, got %d", got)
	}
	if err := domain.Kind("yoga").Validate(); err == nil {
		t.Fatalf("unknown kind must fail")
	}
}
