package domain

import (
	"math"
	"time"

	practice "mindful/internal/modules/practice/domain"
)

// DayPoint is one entry of a trend series; inactive days appear with zeros.
type DayPoint struct {
	Date              time.Time
	MeditationSeconds int
	BreathingSessions int
	BreathingSeconds  int
	TotalMinutes      int
	Active            bool
	GoalMet           bool
}

type RangeSummary struct {
	Range       Range
	Start       time.Time
	End         time.Time
	GoalMinutes int

	TotalMeditationSeconds int
	TotalBreathingSessions int
	TotalBreathingSeconds  int
	TotalMinutes           int
	ActiveDays             int
	TotalDays              int
	GoalDays               int

	// Averages are per active day.
	AverageMeditationSeconds float64
	AverageBreathingSessions float64
	GoalAchievementRate      int

	BestDay  *DayPoint
	WorstDay *DayPoint
	Trend    []DayPoint
}

func pointFor(day time.Time, record practice.DailyRecord, goalMinutes int) DayPoint {
	return DayPoint{
		Date:              day,
		MeditationSeconds: record.MeditationSeconds,
		BreathingSessions: record.BreathingSessions,
		BreathingSeconds:  record.BreathingSeconds(),
		TotalMinutes:      record.TotalPracticeMinutes(),
		Active:            record.IsActive(),
		GoalMet:           record.MeetsGoal(goalMinutes),
	}
}

// Summarize aggregates history over r ending today. Every calendar day in
// the range contributes one trend point whether or not it was recorded.
func Summarize(history practice.History, r Range, goalMinutes int, today time.Time) (RangeSummary, error) {
	if err := history.Validate(); err != nil {
		return RangeSummary{}, err
	}
	start, end, err := r.Bounds(history, today)
	if err != nil {
		return RangeSummary{}, err
	}
	summary := RangeSummary{Range: r, Start: start, End: end, GoalMinutes: goalMinutes}
	for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
		point := pointFor(day, history.Record(day), goalMinutes)
		summary.Trend = append(summary.Trend, point)
		summary.TotalDays++
		summary.TotalMeditationSeconds += point.MeditationSeconds
		summary.TotalBreathingSessions += point.BreathingSessions
		summary.TotalBreathingSeconds += point.BreathingSeconds
		summary.TotalMinutes += point.TotalMinutes
		if point.GoalMet {
			summary.GoalDays++
		}
		if !point.Active {
			continue
		}
		summary.ActiveDays++
		// Strict comparisons keep the earliest day on ties.
		if summary.BestDay == nil || point.TotalMinutes > summary.BestDay.TotalMinutes {
			best := point
			summary.BestDay = &best
		}
		if summary.WorstDay == nil || point.TotalMinutes < summary.WorstDay.TotalMinutes {
			worst := point
			summary.WorstDay = &worst
		}
	}
	summary.AverageMeditationSeconds = ratio(summary.TotalMeditationSeconds, summary.ActiveDays)
	summary.AverageBreathingSessions = ratio(summary.TotalBreathingSessions, summary.ActiveDays)
	summary.GoalAchievementRate = percent(summary.GoalDays, summary.TotalDays)
	return summary, nil
}

func ratio(total, n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(total) / float64(n)
}

// percent returns round(part/whole*100) clamped to [0, 100]; 0 when whole is 0.
func percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	p := int(math.Round(float64(part) / float64(whole) * 100))
	return min(max(p, 0), 100)
}
