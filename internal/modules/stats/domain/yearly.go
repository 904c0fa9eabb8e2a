package domain

import (
	"time"

	practice "mindful/internal/modules/practice/domain"
)

const (
	monthActiveWeight = 0.7
	monthGoalWeight   = 0.3
)

type MonthSummary struct {
	Month               time.Month
	MeditationSeconds   int
	BreathingSessions   int
	TotalMinutes        int
	ActiveDays          int
	DaysElapsed         int
	GoalDays            int
	GoalAchievementRate int
	Score               float64
}

// ProgressPoint carries running totals; every field is non-decreasing.
type ProgressPoint struct {
	Date                        time.Time
	CumulativeMeditationSeconds int
	CumulativeMinutes           int
	CumulativeActiveDays        int
}

type YearlyReport struct {
	Year        int
	GoalMinutes int

	TotalMeditationSeconds int
	TotalBreathingSessions int
	TotalBreathingSeconds  int
	TotalMinutes           int
	ActiveDays             int
	TotalDays              int
	GoalDays               int

	AverageMeditationSeconds float64
	AverageBreathingSessions float64
	GoalAchievementRate      int

	LongestStreak int
	CurrentStreak int

	BestMonth    *MonthSummary
	WorstMonth   *MonthSummary
	Months       []MonthSummary
	Progress     []ProgressPoint
	Achievements []Achievement
}

// YearDays lists the calendar days of year that have happened by today:
// the whole year for past years, January 1 through today for the current
// year, and nothing for future years.
func YearDays(year int, today time.Time) []time.Time {
	today = practice.Day(today)
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	if limit := today.AddDate(0, 0, 1); limit.Before(end) {
		end = limit
	}
	var days []time.Time
	for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}
	return days
}

// BuildYearlyReport aggregates one calendar year of history.
func BuildYearlyReport(history practice.History, year, goalMinutes int, today time.Time) (YearlyReport, error) {
	if err := history.Validate(); err != nil {
		return YearlyReport{}, err
	}
	report := YearlyReport{Year: year, GoalMinutes: goalMinutes}
	days := YearDays(year, today)
	points := make([]DayPoint, 0, len(days))
	for _, day := range days {
		points = append(points, pointFor(day, history.Record(day), goalMinutes))
	}

	var months []MonthSummary
	cumulative := ProgressPoint{}
	for _, p := range points {
		report.TotalDays++
		report.TotalMeditationSeconds += p.MeditationSeconds
		report.TotalBreathingSessions += p.BreathingSessions
		report.TotalBreathingSeconds += p.BreathingSeconds
		report.TotalMinutes += p.TotalMinutes

		if len(months) == 0 || months[len(months)-1].Month != p.Date.Month() {
			months = append(months, MonthSummary{Month: p.Date.Month()})
		}
		m := &months[len(months)-1]
		m.DaysElapsed++
		m.MeditationSeconds += p.MeditationSeconds
		m.BreathingSessions += p.BreathingSessions
		m.TotalMinutes += p.TotalMinutes

		if p.Active {
			report.ActiveDays++
			m.ActiveDays++
		}
		if p.GoalMet {
			report.GoalDays++
			m.GoalDays++
		}

		cumulative.Date = p.Date
		cumulative.CumulativeMeditationSeconds += p.MeditationSeconds
		cumulative.CumulativeMinutes += p.TotalMinutes
		if p.Active {
			cumulative.CumulativeActiveDays++
		}
		report.Progress = append(report.Progress, cumulative)
	}

	for i := range months {
		months[i].GoalAchievementRate = percent(months[i].GoalDays, months[i].DaysElapsed)
		months[i].Score = float64(months[i].ActiveDays)*monthActiveWeight + float64(months[i].GoalAchievementRate)*monthGoalWeight
	}
	report.Months = months
	report.BestMonth, report.WorstMonth = bestAndWorstMonth(months)

	report.AverageMeditationSeconds = ratio(report.TotalMeditationSeconds, report.ActiveDays)
	report.AverageBreathingSessions = ratio(report.TotalBreathingSessions, report.ActiveDays)
	report.GoalAchievementRate = percent(report.GoalDays, report.TotalDays)
	report.CurrentStreak = CurrentStreak(points)
	report.LongestStreak = LongestStreak(points)
	report.Achievements = DetectAchievements(report, points)
	return report, nil
}

// bestAndWorstMonth only considers months with practice; the first month
// wins ties.
func bestAndWorstMonth(months []MonthSummary) (*MonthSummary, *MonthSummary) {
	var best, worst *MonthSummary
	for i := range months {
		m := months[i]
		if m.ActiveDays == 0 {
			continue
		}
		if best == nil || m.Score > best.Score {
			b := m
			best = &b
		}
		if worst == nil || m.Score < worst.Score {
			w := m
			worst = &w
		}
	}
	return best, worst
}

// CurrentStreak counts consecutive active days ending at the last point.
func CurrentStreak(points []DayPoint) int {
	streak := 0
	for i := len(points) - 1; i >= 0; i-- {
		if !points[i].Active {
			break
		}
		streak++
	}
	return streak
}

func LongestStreak(points []DayPoint) int {
	longest, run := 0, 0
	for _, p := range points {
		if !p.Active {
			run = 0
			continue
		}
		run++
		longest = max(longest, run)
	}
	return longest
}
