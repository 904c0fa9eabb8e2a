package domain_test

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"mindful/internal/modules/habit/domain"
	practice "mindful/internal/modules/practice/domain"
	technique "mindful/internal/modules/technique/domain"
	apperrors "mindful/internal/platform/errors"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dailyHistory(start time.Time, n int, record practice.DailyRecord) practice.History {
	history := practice.History{}
	for i := 0; i < n; i++ {
		history[practice.FormatDate(start.AddDate(0, 0, i))] = record
	}
	return history
}

func TestAnalyzeEmptyHistoryDefaults(t *testing.T) {
	t.Parallel()
	report, err := domain.Analyze(practice.History{}, nil)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if report.TimeOfDay.MostPreferred != "" || len(report.TimeOfDay.Slots) != 5 {
		t.Fatalf("unexpected time of day %+v", report.TimeOfDay)
	}
	c := report.Consistency
	if c.AverageGap != 0 || c.LongestGap != 0 || c.Regularity != 0 || c.PreferredFrequency != domain.FrequencyIrregular || c.Trend != domain.TrendStable {
		t.Fatalf("unexpected consistency %+v", c)
	}
	d := report.Durations
	if d.Sessions != 0 || d.AverageSeconds != 0 || d.PreferredDuration != domain.DurationShort || d.Trend != domain.DurationSteady {
		t.Fatalf("unexpected durations %+v", d)
	}
	if report.Balance.Score != 0 || report.Balance.PreferredType != domain.PreferBalanced {
		t.Fatalf("unexpected balance %+v", report.Balance)
	}
	if report.Weekly.Trend != domain.TrendStable || len(report.Weekly.Weeks) != 0 {
		t.Fatalf("unexpected weekly pattern %+v", report.Weekly)
	}
	in := report.Insights
	if in.HabitScore != 0 || in.Personality != "Beginning Journey" || in.Motivation != domain.MotivationLow {
		t.Fatalf("unexpected insights %+v", in)
	}
}

func TestBalanceScoreExample(t *testing.T) {
	t.Parallel()
	history := practice.History{"2024-01-02": {MeditationSeconds: 600, BreathingSessions: 2}}
	report, err := domain.Analyze(history, nil)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	b := report.Balance
	if b.MeditationSeconds != 600 || b.BreathingSeconds != 190 {
		t.Fatalf("unexpected seconds %+v", b)
	}
	if math.Abs(b.MeditationPercent-75.95) > 0.01 || math.Abs(b.BreathingPercent-24.05) > 0.01 {
		t.Fatalf("unexpected percentages %.2f/%.2f", b.MeditationPercent, b.BreathingPercent)
	}
	if b.Score != 48 || b.PreferredType != domain.PreferMeditation || b.CrossPracticeDays != 1 {
		t.Fatalf("unexpected balance %+v", b)
	}
}

func TestHeuristicReconstructorPlacesSessions(t *testing.T) {
	t.Parallel()
	history := practice.History{
		"2024-01-01": {MeditationSeconds: 1200}, // Monday
		"2024-01-02": {MeditationSeconds: 600},
		"2024-01-03": {MeditationSeconds: 300},
		"2024-01-04": {MeditationSeconds: 450},
		"2024-01-05": {BreathingSessions: 6, TechniqueUsage: map[technique.ID]int{"4-7-8": 2, "box": 3}},
		"2024-01-06": {MeditationSeconds: 1500}, // Saturday
		"2024-01-07": {},
	}
	sessions, err := domain.HeuristicReconstructor{}.Reconstruct(history)
	if err != nil {
		t.Fatalf("reconstruct: %v", err)
	}
	wantHours := []int{6, 7, 12, 7, 8, 12, 15, 18, 20, 8, 8}
	if len(sessions) != len(wantHours) {
		t.Fatalf("expected %d sessions, got %d", len(wantHours), len(sessions))
	}
	for i, s := range sessions {
		if s.StartedAt.Hour() != wantHours[i] {
			t.Fatalf("session %d: expected hour %d, got %d", i, wantHours[i], s.StartedAt.Hour())
		}
	}
	for _, s := range sessions[4:10] {
		if s.Kind != practice.KindBreathing || s.DurationSeconds != 86 {
			t.Fatalf("breathing sessions should use the weighted average: %+v", s)
		}
	}
}

func TestConsistencyGapsAndTrend(t *testing.T) {
	t.Parallel()
	steady, err := domain.Analyze(dailyHistory(day(2024, 1, 1), 12, practice.DailyRecord{MeditationSeconds: 600}), nil)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if c := steady.Consistency; c.AverageGap != 1 || c.Regularity != 100 || c.PreferredFrequency != domain.FrequencyDaily || c.Trend != domain.TrendStable {
		t.Fatalf("unexpected steady consistency %+v", c)
	}

	history := practice.History{}
	for _, d := range []time.Time{day(2024, 1, 1), day(2024, 1, 6), day(2024, 1, 11), day(2024, 1, 16)} {
		history[practice.FormatDate(d)] = practice.DailyRecord{MeditationSeconds: 600}
	}
	for i := 1; i <= 10; i++ {
		history[practice.FormatDate(day(2024, 1, 16+i))] = practice.DailyRecord{MeditationSeconds: 600}
	}
	history["2024-01-03"] = practice.DailyRecord{}
	report, err := domain.Analyze(history, nil)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	c := report.Consistency
	if c.LongestGap != 5 || c.PreferredFrequency != domain.FrequencyEveryOtherDay || c.Trend != domain.TrendImproving {
		t.Fatalf("unexpected consistency %+v", c)
	}
	if math.Abs(c.AverageGap-25.0/13.0) > 1e-9 || c.Regularity != 82 {
		t.Fatalf("unexpected gap stats avg=%.4f regularity=%d", c.AverageGap, c.Regularity)
	}

	sparse, err := domain.Analyze(practice.History{"2024-01-01": {MeditationSeconds: 60}, "2024-01-31": {MeditationSeconds: 60}}, nil)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if sparse.Consistency.Regularity != 0 || sparse.Consistency.PreferredFrequency != domain.FrequencyIrregular {
		t.Fatalf("regularity must clamp at zero: %+v", sparse.Consistency)
	}
}

func TestDurationStatisticsAndPreference(t *testing.T) {
	t.Parallel()
	logged := func(durations ...int) []practice.Session {
		out := make([]practice.Session, 0, len(durations))
		for i, d := range durations {
			out = append(out, practice.Session{
				ID:              "s",
				Kind:            practice.KindMeditation,
				DurationSeconds: d,
				StartedAt:       day(2024, 2, 1).AddDate(0, 0, i).Add(7 * time.Hour),
			})
		}
		return out
	}

	report, err := domain.Analyze(practice.History{}, logged(100, 300))
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	d := report.Durations
	if d.AverageSeconds != 200 || d.StdDevSeconds != 100 || d.MinSeconds != 100 || d.MaxSeconds != 300 {
		t.Fatalf("unexpected statistics %+v", d)
	}
	if d.Short != 1 || d.Medium != 1 || d.PreferredDuration != domain.DurationShort {
		t.Fatalf("ties should favour short: %+v", d)
	}

	report, err = domain.Analyze(practice.History{}, logged(1200, 600))
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if report.Durations.PreferredDuration != domain.DurationLong {
		t.Fatalf("long should beat medium on a tie, got %s", report.Durations.PreferredDuration)
	}

	report, err = domain.Analyze(practice.History{}, logged(300, 300, 300, 300, 300, 300, 600, 600, 600, 600, 600, 600))
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if report.Durations.Trend != domain.DurationIncreasing {
		t.Fatalf("expected increasing duration trend, got %s", report.Durations.Trend)
	}
	report, err = domain.Analyze(practice.History{}, logged(600, 600, 600, 300, 300, 300))
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if report.Durations.Trend != domain.DurationSteady {
		t.Fatalf("trend needs more than ten sessions, got %s", report.Durations.Trend)
	}
}

func TestDetailedReconstructorFallsBackPerDay(t *testing.T) {
	t.Parallel()
	history := practice.History{
		"2024-01-01": {MeditationSeconds: 900},
		"2024-01-02": {MeditationSeconds: 1200},
	}
	logged := []practice.Session{{
		ID:              "sess-1",
		Kind:            practice.KindMeditation,
		DurationSeconds: 900,
		StartedAt:       time.Date(2024, 1, 1, 21, 30, 0, 0, time.UTC),
	}}
	sessions, err := domain.DetailedReconstructor{Sessions: logged}.Reconstruct(history)
	if err != nil {
		t.Fatalf("reconstruct: %v", err)
	}
	if len(sessions) != 2 || sessions[0].ID != "sess-1" || sessions[1].StartedAt.Hour() != 6 {
		t.Fatalf("unexpected sessions %+v", sessions)
	}

	report, err := domain.Analyze(history, logged)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if report.TimeOfDay.MostPreferred != domain.SlotEarlyMorning {
		t.Fatalf("ties should go to the earlier slot, got %s", report.TimeOfDay.MostPreferred)
	}
	for _, share := range report.TimeOfDay.Slots {
		if (share.Slot == domain.SlotNight || share.Slot == domain.SlotEarlyMorning) && share.Percent != 50 {
			t.Fatalf("unexpected share %+v", share)
		}
	}
}

func TestDetailedReconstructorEstimatesManualEntriesOnLoggedDays(t *testing.T) {
	t.Parallel()
	history := practice.History{
		"2024-01-02": {MeditationSeconds: 600, BreathingSessions: 3, TechniqueUsage: map[technique.ID]int{"4-7-8": 3}},
		"2024-01-03": {MeditationSeconds: 900, BreathingSessions: 2, TechniqueUsage: map[technique.ID]int{"box": 2}},
	}
	logged := []practice.Session{
		{ID: "med", Kind: practice.KindMeditation, DurationSeconds: 600, StartedAt: time.Date(2024, 1, 2, 21, 0, 0, 0, time.UTC)},
		{ID: "box", Kind: practice.KindBreathing, Technique: "box", DurationSeconds: 80, StartedAt: time.Date(2024, 1, 3, 19, 0, 0, 0, time.UTC)},
	}
	sessions, err := domain.DetailedReconstructor{Sessions: logged}.Reconstruct(history)
	if err != nil {
		t.Fatalf("reconstruct: %v", err)
	}
	// Day one: logged sit plus three estimated breaths. Day two: one logged
	// breath, an estimated sit and one estimated breath.
	if len(sessions) != 7 {
		t.Fatalf("expected 7 sessions, got %d: %+v", len(sessions), sessions)
	}
	var meditation, breathing int
	for _, s := range sessions {
		switch s.Kind {
		case practice.KindMeditation:
			meditation += s.DurationSeconds
		case practice.KindBreathing:
			breathing++
		}
	}
	if meditation != 1500 || breathing != 5 {
		t.Fatalf("sessions must add up to the history, got meditation=%d breathing=%d", meditation, breathing)
	}

	report, err := domain.Analyze(practice.History{"2024-01-02": history["2024-01-02"]}, logged[:1])
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if report.Durations.Sessions != 4 {
		t.Fatalf("expected logged and manual sessions to be counted, got %d", report.Durations.Sessions)
	}
}

func TestWeeklyAndSeasonalPattern(t *testing.T) {
	t.Parallel()
	history := practice.History{}
	// Weeks starting Mon 2024-03-04, 03-11, 03-18, 03-25 with 3, 3, 1, 1 active days.
	for _, key := range []string{
		"2024-03-04", "2024-03-05", "2024-03-06",
		"2024-03-11", "2024-03-12", "2024-03-13",
		"2024-03-20",
		"2024-03-31",
	} {
		history[key] = practice.DailyRecord{BreathingSessions: 1}
	}
	report, err := domain.Analyze(history, nil)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	w := report.Weekly
	if len(w.Weeks) != 4 || w.Weeks[3].WeekStart != "2024-03-25" || w.Trend != domain.TrendDeclining {
		t.Fatalf("unexpected weeks %+v trend=%s", w.Weeks, w.Trend)
	}
	if w.DayOfWeek[time.Monday] != 2 || w.DayOfWeek[time.Sunday] != 1 || w.DayOfWeek[time.Wednesday] != 3 {
		t.Fatalf("unexpected weekday histogram %v", w.DayOfWeek)
	}
	if w.Seasons[domain.Spring] != 8 || w.Seasons[domain.Winter] != 0 {
		t.Fatalf("unexpected seasons %v", w.Seasons)
	}
	if len(w.Months) != 1 || w.Months[0].Month != "2024-03" || w.Months[0].ActiveDays != 8 {
		t.Fatalf("unexpected months %+v", w.Months)
	}
	if report.Balance.PreferredType != domain.PreferBreathing || report.Balance.Score != 0 {
		t.Fatalf("unexpected balance %+v", report.Balance)
	}
}

func TestInsightsFromDailyLongSits(t *testing.T) {
	t.Parallel()
	report, err := domain.Analyze(dailyHistory(day(2024, 1, 1), 12, practice.DailyRecord{MeditationSeconds: 1200}), nil)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	in := report.Insights
	// (100 regularity + 85 long + 0 balance) / 3 = 61.67
	if in.HabitScore != 62 || in.Personality != "Dedicated Practitioner" || in.Motivation != domain.MotivationMedium {
		t.Fatalf("unexpected insights %+v", in)
	}
	if len(in.Strengths) == 0 || in.Strengths[0] != "You keep a steady practice rhythm" {
		t.Fatalf("unexpected strengths %v", in.Strengths)
	}
	want := []string{
		"Mix in shorter sessions on busy days to protect your streak",
		"Open your meditation with a short breathing exercise",
	}
	if !reflect.DeepEqual(in.Recommendations, want) {
		t.Fatalf("unexpected recommendations %v", in.Recommendations)
	}
	if report.TimeOfDay.MostPreferred != domain.SlotEarlyMorning {
		t.Fatalf("weekday long sits should land early, got %s", report.TimeOfDay.MostPreferred)
	}
}

func TestAnalyzeIsIdempotentAndValidates(t *testing.T) {
	t.Parallel()
	history := dailyHistory(day(2024, 5, 1), 20, practice.DailyRecord{MeditationSeconds: 450, BreathingSessions: 2})
	a, errA := domain.Analyze(history, nil)
	b, errB := domain.Analyze(history, nil)
	if errA != nil || errB != nil || !reflect.DeepEqual(a, b) {
		t.Fatalf("analyze should be deterministic: %v %v", errA, errB)
	}
	if _, err := domain.Analyze(practice.History{"yesterday": {}}, nil); !errors.Is(err, apperrors.ErrInvalidDate) {
		t.Fatalf("expected invalid date, got %v", err)
	}
}
