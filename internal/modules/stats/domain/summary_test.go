package domain_test

import (
	"errors"
	"reflect"
	"testing"
	"time"

	practice "mindful/internal/modules/practice/domain"
	"mindful/internal/modules/stats/domain"
	technique "mindful/internal/modules/technique/domain"
	apperrors "mindful/internal/platform/errors"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTrendHasOneEntryPerCalendarDay(t *testing.T) {
	t.Parallel()
	history := practice.History{
		"2024-02-20": {MeditationSeconds: 300},
		"2024-04-15": {BreathingSessions: 2},
	}
	cases := []struct {
		r     domain.Range
		today time.Time
		want  int
		start time.Time
	}{
		{domain.RangeToday, date(2024, 3, 15), 1, date(2024, 3, 15)},
		{domain.RangeWeek, date(2024, 3, 15), 7, date(2024, 3, 9)},
		{domain.RangeMonth, date(2024, 3, 15), 15, date(2024, 3, 1)},
		{domain.RangeQuarter, date(2024, 5, 10), 40, date(2024, 4, 1)},
		{domain.RangeYear, date(2024, 3, 1), 61, date(2024, 1, 1)},
		{domain.RangeAll, date(2024, 3, 1), 11, date(2024, 2, 20)},
	}
	for _, tc := range cases {
		summary, err := domain.Summarize(history, tc.r, 20, tc.today)
		if err != nil {
			t.Fatalf("%s: %v", tc.r, err)
		}
		if len(summary.Trend) != tc.want || summary.TotalDays != tc.want {
			t.Fatalf("%s: expected %d trend entries, got %d", tc.r, tc.want, len(summary.Trend))
		}
		if !summary.Start.Equal(tc.start) || !summary.End.Equal(tc.today.AddDate(0, 0, 1)) {
			t.Fatalf("%s: unexpected bounds %s..%s", tc.r, summary.Start, summary.End)
		}
		for i := 1; i < len(summary.Trend); i++ {
			if got := summary.Trend[i].Date.Sub(summary.Trend[i-1].Date); got != 24*time.Hour {
				t.Fatalf("%s: gap of %s between trend entries", tc.r, got)
			}
		}
	}
}

func TestSummarizeEmptyHistory(t *testing.T) {
	t.Parallel()
	summary, err := domain.Summarize(practice.History{}, domain.RangeAll, 20, date(2026, 10, 19))
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if len(summary.Trend) != 1 || summary.ActiveDays != 0 || summary.GoalAchievementRate != 0 {
		t.Fatalf("unexpected empty summary %+v", summary)
	}
	if summary.BestDay != nil || summary.WorstDay != nil {
		t.Fatalf("best/worst must be nil without practice")
	}
	if summary.AverageMeditationSeconds != 0 || summary.AverageBreathingSessions != 0 {
		t.Fatalf("averages must be zero without practice")
	}
	week, err := domain.Summarize(nil, domain.RangeWeek, 20, date(2026, 10, 19))
	if err != nil || len(week.Trend) != 7 {
		t.Fatalf("nil history should still produce a full week, got %d (%v)", len(week.Trend), err)
	}
}

func TestSummarizeZeroGoalCountsEveryDay(t *testing.T) {
	t.Parallel()
	history := practice.History{"2024-03-12": {MeditationSeconds: 300}}
	summary, err := domain.Summarize(history, domain.RangeWeek, 0, date(2024, 3, 15))
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if summary.GoalDays != 7 || summary.GoalAchievementRate != 100 {
		t.Fatalf("a zero goal is met on every day, got %d days (%d%%)", summary.GoalDays, summary.GoalAchievementRate)
	}
}

func TestSummarizeTotalsAveragesAndGoalRate(t *testing.T) {
	t.Parallel()
	history := practice.History{
		"2024-03-10": {MeditationSeconds: 1200},
		"2024-03-12": {MeditationSeconds: 1140},
		"2024-03-14": {BreathingSessions: 3, TechniqueUsage: map[technique.ID]int{"4-7-8": 2, "box": 1}},
	}
	summary, err := domain.Summarize(history, domain.RangeWeek, 20, date(2024, 3, 15))
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if summary.ActiveDays != 3 || summary.TotalMeditationSeconds != 2340 || summary.TotalBreathingSessions != 3 {
		t.Fatalf("unexpected totals %+v", summary)
	}
	if summary.AverageMeditationSeconds != 780 || summary.AverageBreathingSessions != 1 {
		t.Fatalf("averages should use active days: %.2f %.2f", summary.AverageMeditationSeconds, summary.AverageBreathingSessions)
	}
	// Only the 20 minute day meets the goal; 1 of 7 days rounds to 14%.
	if summary.GoalDays != 1 || summary.GoalAchievementRate != 14 {
		t.Fatalf("unexpected goal stats %d %d", summary.GoalDays, summary.GoalAchievementRate)
	}
	// avg (2*95+80)/3 = 90s, 3 sessions = 4.5 min -> 5 (rounded half away from zero)
	if summary.Trend[5].TotalMinutes != 5 || summary.Trend[5].BreathingSeconds != 270 {
		t.Fatalf("unexpected breathing day %+v", summary.Trend[5])
	}
	if summary.BestDay == nil || !summary.BestDay.Date.Equal(date(2024, 3, 10)) {
		t.Fatalf("unexpected best day %+v", summary.BestDay)
	}
	if summary.WorstDay == nil || !summary.WorstDay.Date.Equal(date(2024, 3, 14)) {
		t.Fatalf("unexpected worst day %+v", summary.WorstDay)
	}
}

func TestBestAndWorstDayTiesKeepEarliest(t *testing.T) {
	t.Parallel()
	history := practice.History{
		"2024-03-11": {MeditationSeconds: 600},
		"2024-03-12": {MeditationSeconds: 600},
		"2024-03-13": {MeditationSeconds: 600},
	}
	summary, err := domain.Summarize(history, domain.RangeWeek, 20, date(2024, 3, 15))
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if !summary.BestDay.Date.Equal(date(2024, 3, 11)) || !summary.WorstDay.Date.Equal(date(2024, 3, 11)) {
		t.Fatalf("ties should resolve to the first day: best=%s worst=%s", summary.BestDay.Date, summary.WorstDay.Date)
	}
}

func TestSummarizeIsIdempotent(t *testing.T) {
	t.Parallel()
	history := practice.History{
		"2024-01-01": {MeditationSeconds: 900, BreathingSessions: 2, TechniqueUsage: map[technique.ID]int{"calm": 1, "deep": 1}},
		"2024-01-04": {BreathingSessions: 1},
	}
	a, errA := domain.Summarize(history, domain.RangeAll, 15, date(2024, 1, 10))
	b, errB := domain.Summarize(history, domain.RangeAll, 15, date(2024, 1, 10))
	if errA != nil || errB != nil {
		t.Fatalf("summarize: %v %v", errA, errB)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("repeated calls must be identical")
	}
}

func TestSummarizeRejectsBadInput(t *testing.T) {
	t.Parallel()
	if _, err := domain.Summarize(practice.History{"01/02/2024": {}}, domain.RangeWeek, 20, date(2024, 1, 3)); !errors.Is(err, apperrors.ErrInvalidDate) {
		t.Fatalf("expected invalid date, got %v", err)
	}
	if _, err := domain.Summarize(practice.History{}, domain.Range("decade"), 20, date(2024, 1, 3)); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid range, got %v", err)
	}
	if _, err := domain.ParseRange("Quarter"); err != nil {
		t.Fatalf("parse range should be case-insensitive: %v", err)
	}
	if domain.RangeAll.Next() != domain.RangeToday || domain.RangeWeek.Next() != domain.RangeMonth {
		t.Fatalf("range cycling broken")
	}
}
