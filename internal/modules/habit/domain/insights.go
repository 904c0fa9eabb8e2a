package domain

import "math"

type insightRule struct {
	applies func(HabitReport) bool
	text    string
}

var (
	strengthRules = []insightRule{
		{func(r HabitReport) bool { return r.Consistency.Regularity >= 70 }, "You keep a steady practice rhythm"},
		{func(r HabitReport) bool { return r.Consistency.Trend == TrendImproving }, "Your gaps between sessions are shrinking"},
		{func(r HabitReport) bool { return r.Durations.PreferredDuration == DurationMedium }, "Your sessions have a sustainable length"},
		{func(r HabitReport) bool { return r.Balance.Score >= 70 }, "You balance meditation and breathing well"},
		{func(r HabitReport) bool { return r.Balance.CrossPracticeDays > 0 }, "You combine both practices on the same day"},
	}
	improvementRules = []insightRule{
		{func(r HabitReport) bool { return r.Consistency.Regularity < 50 }, "Practice happens at irregular intervals"},
		{func(r HabitReport) bool { return r.Consistency.Trend == TrendDeclining }, "Gaps between sessions are getting longer"},
		{func(r HabitReport) bool { return r.Durations.Sessions > 0 && r.Durations.PreferredDuration == DurationShort }, "Most sessions are under five minutes"},
		{func(r HabitReport) bool { return r.Balance.Score < 40 && r.Balance.PreferredType != PreferBalanced }, "Practice leans heavily on one type"},
		{func(r HabitReport) bool { return r.Weekly.Trend == TrendDeclining }, "Fewer active days per week than when you started"},
	}
	recommendationRules = []insightRule{
		{func(r HabitReport) bool { return r.Consistency.PreferredFrequency == FrequencyIrregular }, "Pick a fixed time of day and practice for five minutes"},
		{func(r HabitReport) bool { return r.Consistency.PreferredFrequency == FrequencyWeekly }, "Add one more session each week until practice is every other day"},
		{func(r HabitReport) bool { return r.Durations.Sessions > 0 && r.Durations.PreferredDuration == DurationShort }, "Extend sessions a minute at a time toward ten minutes"},
		{func(r HabitReport) bool { return r.Durations.PreferredDuration == DurationLong }, "Mix in shorter sessions on busy days to protect your streak"},
		{func(r HabitReport) bool { return r.Balance.PreferredType == PreferMeditation }, "Open your meditation with a short breathing exercise"},
		{func(r HabitReport) bool { return r.Balance.PreferredType == PreferBreathing }, "Follow a breathing session with a few minutes of silent sitting"},
		{func(r HabitReport) bool { return r.Weekly.Trend == TrendDeclining }, "Schedule practice on the weekdays you usually skip"},
	}
)

const keepGoing = "Keep your current routine going"

func synthesize(r HabitReport) Insights {
	score := 0
	if r.Durations.Sessions > 0 {
		score = int(math.Round(float64(r.Consistency.Regularity+durationScore(r.Durations.PreferredDuration)+r.Balance.Score) / 3))
	}
	out := Insights{
		Personality:     personality(score),
		Strengths:       apply(strengthRules, r),
		Improvements:    apply(improvementRules, r),
		Recommendations: apply(recommendationRules, r),
		HabitScore:      score,
		Motivation:      motivation(score),
	}
	if len(out.Recommendations) == 0 {
		out.Recommendations = []string{keepGoing}
	}
	return out
}

func durationScore(c DurationClass) int {
	switch c {
	case DurationMedium:
		return 100
	case DurationLong:
		return 85
	default:
		return 70
	}
}

func personality(score int) string {
	switch {
	case score >= 80:
		return "Zen Master"
	case score >= 60:
		return "Dedicated Practitioner"
	case score >= 40:
		return "Mindful Explorer"
	default:
		return "Beginning Journey"
	}
}

func motivation(score int) Motivation {
	switch {
	case score >= 70:
		return MotivationHigh
	case score >= 40:
		return MotivationMedium
	default:
		return MotivationLow
	}
}

func apply(rules []insightRule, r HabitReport) []string {
	out := []string{}
	for _, rule := range rules {
		if rule.applies(r) {
			out = append(out, rule.text)
		}
	}
	return out
}
