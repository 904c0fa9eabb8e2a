package domain

import "time"

type AchievementType string

const (
	AchievementMilestone   AchievementType = "milestone"
	AchievementStreak      AchievementType = "streak"
	AchievementConsistency AchievementType = "consistency"
	AchievementDedication  AchievementType = "dedication"
)

type Achievement struct {
	ID          string
	Type        AchievementType
	Title       string
	Description string
	Icon        string
	Date        time.Time
}

type tier struct {
	threshold   int
	id          string
	title       string
	description string
	icon        string
}

// Tiers are listed highest first; only the first one reached fires.
var (
	meditationTiers = []tier{
		{10 * 3600, "meditation-10h", "Ten Hour Sage", "Meditated for 10 hours this year", "🏔️"},
		{5 * 3600, "meditation-5h", "Five Hours of Stillness", "Meditated for 5 hours this year", "🪷"},
		{3600, "meditation-1h", "First Hour", "Meditated for a full hour this year", "🌱"},
	}
	streakTiers = []tier{
		{30, "streak-30", "Monthly Master", "Practiced 30 days in a row", "⚡"},
		{7, "streak-7", "Week Warrior", "Practiced 7 days in a row", "🔥"},
	}
	activeDayTiers = []tier{
		{100, "active-100", "Century of Calm", "Practiced on 100 days this year", "💯"},
		{50, "active-50", "Dedicated Fifty", "Practiced on 50 days this year", "📅"},
	}
)

const consistencyThreshold = 80

// DetectAchievements evaluates the fixed rule set in order: meditation time,
// longest streak, goal consistency, active days. Each achievement is anchored
// to the day its threshold was first crossed.
func DetectAchievements(report YearlyReport, points []DayPoint) []Achievement {
	var out []Achievement
	if t, ok := highestTier(meditationTiers, report.TotalMeditationSeconds); ok {
		out = append(out, t.achievement(AchievementMilestone, firstDay(report.Progress, meditationSoFar, t.threshold)))
	}
	if t, ok := highestTier(streakTiers, report.LongestStreak); ok {
		out = append(out, t.achievement(AchievementStreak, streakDay(points, t.threshold)))
	}
	if len(points) > 0 && report.GoalAchievementRate >= consistencyThreshold {
		out = append(out, Achievement{
			ID:          "goal-80",
			Type:        AchievementConsistency,
			Title:       "Goal Keeper",
			Description: "Met the daily goal on at least 80% of days",
			Icon:        "🎯",
			Date:        points[len(points)-1].Date,
		})
	}
	if t, ok := highestTier(activeDayTiers, report.ActiveDays); ok {
		out = append(out, t.achievement(AchievementDedication, firstDay(report.Progress, activeDaysSoFar, t.threshold)))
	}
	return out
}

func highestTier(tiers []tier, value int) (tier, bool) {
	for _, t := range tiers {
		if value >= t.threshold {
			return t, true
		}
	}
	return tier{}, false
}

func (t tier) achievement(kind AchievementType, date time.Time) Achievement {
	return Achievement{ID: t.id, Type: kind, Title: t.title, Description: t.description, Icon: t.icon, Date: date}
}

func meditationSoFar(p ProgressPoint) int { return p.CumulativeMeditationSeconds }

func activeDaysSoFar(p ProgressPoint) int { return p.CumulativeActiveDays }

func firstDay(progress []ProgressPoint, value func(ProgressPoint) int, threshold int) time.Time {
	for _, p := range progress {
		if value(p) >= threshold {
			return p.Date
		}
	}
	return time.Time{}
}

func streakDay(points []DayPoint, threshold int) time.Time {
	run := 0
	for _, p := range points {
		if !p.Active {
			run = 0
			continue
		}
		run++
		if run >= threshold {
			return p.Date
		}
	}
	return time.Time{}
}
