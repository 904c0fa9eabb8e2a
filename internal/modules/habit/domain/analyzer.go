package domain

import (
	"math"
	"sort"
	"time"

	practice "mindful/internal/modules/practice/domain"
)

const (
	recentGapWindow     = 10
	shortSessionLimit   = 300
	longSessionLimit    = 900
	durationTrendMin    = 10
	balancedPointSpread = 20
	weeklyTrendWindow   = 2
)

// Analyze builds a habit report. When detailed is non-empty the logged
// sessions are used and only days without them are estimated; otherwise
// every session is estimated from the daily totals.
func Analyze(history practice.History, detailed []practice.Session) (HabitReport, error) {
	var r SessionReconstructor = HeuristicReconstructor{}
	if len(detailed) > 0 {
		r = DetailedReconstructor{Sessions: detailed}
	}
	return AnalyzeWith(history, r)
}

func AnalyzeWith(history practice.History, r SessionReconstructor) (HabitReport, error) {
	if err := history.Validate(); err != nil {
		return HabitReport{}, err
	}
	sessions, err := r.Reconstruct(history)
	if err != nil {
		return HabitReport{}, err
	}
	active, err := history.ActiveDates()
	if err != nil {
		return HabitReport{}, err
	}
	report := HabitReport{
		TimeOfDay:   timeOfDay(sessions),
		Consistency: consistency(active),
		Durations:   durations(sessions),
		Balance:     balance(history, active),
		Weekly:      weeklyPattern(active),
	}
	report.Insights = synthesize(report)
	return report, nil
}

func timeOfDay(sessions []practice.Session) TimeOfDay {
	counts := make(map[TimeSlot]int, len(TimeSlots))
	for _, s := range sessions {
		counts[SlotForHour(s.StartedAt.Hour())]++
	}
	out := TimeOfDay{Slots: make([]SlotShare, 0, len(TimeSlots))}
	best := 0
	for _, slot := range TimeSlots {
		n := counts[slot]
		share := SlotShare{Slot: slot, Sessions: n}
		if len(sessions) > 0 {
			share.Percent = float64(n) / float64(len(sessions)) * 100
		}
		out.Slots = append(out.Slots, share)
		if n > best {
			best = n
			out.MostPreferred = slot
		}
	}
	return out
}

func consistency(active []time.Time) Consistency {
	out := Consistency{PreferredFrequency: FrequencyIrregular, Trend: TrendStable}
	if len(active) < 2 {
		return out
	}
	gaps := make([]int, 0, len(active)-1)
	for i := 1; i < len(active); i++ {
		gap := practice.DaysBetween(active[i-1], active[i])
		gaps = append(gaps, gap)
		out.LongestGap = max(out.LongestGap, gap)
	}
	out.AverageGap = meanInts(gaps)
	out.Regularity = clampScore(100 - (out.AverageGap-1)*20)
	switch {
	case out.AverageGap <= 1.5:
		out.PreferredFrequency = FrequencyDaily
	case out.AverageGap <= 3:
		out.PreferredFrequency = FrequencyEveryOtherDay
	case out.AverageGap <= 7:
		out.PreferredFrequency = FrequencyWeekly
	}
	// Recent gaps are the last ten; everything before them is the baseline.
	if len(gaps) > recentGapWindow {
		older := meanInts(gaps[:len(gaps)-recentGapWindow])
		recent := meanInts(gaps[len(gaps)-recentGapWindow:])
		switch {
		case recent < older*0.8:
			out.Trend = TrendImproving
		case recent > older*1.2:
			out.Trend = TrendDeclining
		}
	}
	return out
}

func durations(sessions []practice.Session) Durations {
	out := Durations{Sessions: len(sessions), PreferredDuration: DurationShort, Trend: DurationSteady}
	if len(sessions) == 0 {
		return out
	}
	ordered := make([]practice.Session, len(sessions))
	copy(ordered, sessions)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].StartedAt.Before(ordered[j].StartedAt) })

	values := make([]int, 0, len(ordered))
	out.MinSeconds = ordered[0].DurationSeconds
	for _, s := range ordered {
		d := s.DurationSeconds
		values = append(values, d)
		out.MinSeconds = min(out.MinSeconds, d)
		out.MaxSeconds = max(out.MaxSeconds, d)
		switch {
		case d < shortSessionLimit:
			out.Short++
		case d <= longSessionLimit:
			out.Medium++
		default:
			out.Long++
		}
	}
	out.AverageSeconds = meanInts(values)
	var variance float64
	for _, v := range values {
		diff := float64(v) - out.AverageSeconds
		variance += diff * diff
	}
	out.StdDevSeconds = math.Sqrt(variance / float64(len(values)))

	// Evaluated short, long, medium; a later class must strictly beat the
	// current pick.
	best := out.Short
	if out.Long > best {
		out.PreferredDuration, best = DurationLong, out.Long
	}
	if out.Medium > best {
		out.PreferredDuration = DurationMedium
	}

	if len(values) > durationTrendMin {
		half := len(values) / 2
		earlier, later := meanInts(values[:half]), meanInts(values[half:])
		switch {
		case later > earlier*1.1:
			out.Trend = DurationIncreasing
		case later < earlier*0.9:
			out.Trend = DurationDecreasing
		}
	}
	return out
}

func balance(history practice.History, active []time.Time) Balance {
	out := Balance{PreferredType: PreferBalanced}
	for _, day := range active {
		record := history.Record(day).Normalized()
		out.MeditationSeconds += record.MeditationSeconds
		out.BreathingSeconds += record.BreathingSeconds()
		if record.HasBoth() {
			out.CrossPracticeDays++
		}
	}
	total := out.MeditationSeconds + out.BreathingSeconds
	if total == 0 {
		return out
	}
	out.MeditationPercent = float64(out.MeditationSeconds) / float64(total) * 100
	out.BreathingPercent = float64(out.BreathingSeconds) / float64(total) * 100
	spread := math.Abs(out.MeditationPercent - out.BreathingPercent)
	out.Score = clampScore(100 - spread)
	switch {
	case spread < balancedPointSpread:
		out.PreferredType = PreferBalanced
	case out.MeditationPercent > out.BreathingPercent:
		out.PreferredType = PreferMeditation
	default:
		out.PreferredType = PreferBreathing
	}
	return out
}

func weeklyPattern(active []time.Time) WeeklyPattern {
	out := WeeklyPattern{Trend: TrendStable}
	for _, day := range active {
		out.DayOfWeek[day.Weekday()]++
		out.Seasons[seasonOf(day.Month())]++

		month := day.Format("2006-01")
		if n := len(out.Months); n == 0 || out.Months[n-1].Month != month {
			out.Months = append(out.Months, MonthCount{Month: month})
		}
		out.Months[len(out.Months)-1].ActiveDays++

		week := practice.FormatDate(weekStart(day))
		if n := len(out.Weeks); n == 0 || out.Weeks[n-1].WeekStart != week {
			out.Weeks = append(out.Weeks, WeekCount{WeekStart: week})
		}
		out.Weeks[len(out.Weeks)-1].ActiveDays++
	}
	if len(out.Weeks) >= 2*weeklyTrendWindow {
		earliest := meanWeeks(out.Weeks[:weeklyTrendWindow])
		recent := meanWeeks(out.Weeks[len(out.Weeks)-weeklyTrendWindow:])
		switch {
		case recent > earliest*1.2:
			out.Trend = TrendImproving
		case recent < earliest*0.8:
			out.Trend = TrendDeclining
		}
	}
	return out
}

func seasonOf(m time.Month) Season {
	switch {
	case m >= time.March && m <= time.May:
		return Spring
	case m >= time.June && m <= time.August:
		return Summer
	case m >= time.September && m <= time.November:
		return Fall
	default:
		return Winter
	}
}

// weekStart returns the Monday of day's ISO week.
func weekStart(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func meanInts(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

func meanWeeks(weeks []WeekCount) float64 {
	values := make([]int, 0, len(weeks))
	for _, w := range weeks {
		values = append(values, w.ActiveDays)
	}
	return meanInts(values)
}

func clampScore(v float64) int {
	return min(max(int(math.Round(v)), 0), 100)
}
