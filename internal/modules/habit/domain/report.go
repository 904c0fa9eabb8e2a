package domain

type TimeSlot string

const (
	SlotEarlyMorning TimeSlot = "early-morning"
	SlotMorning      TimeSlot = "morning"
	SlotAfternoon    TimeSlot = "afternoon"
	SlotEvening      TimeSlot = "evening"
	SlotNight        TimeSlot = "night"
)

var TimeSlots = []TimeSlot{SlotEarlyMorning, SlotMorning, SlotAfternoon, SlotEvening, SlotNight}

// SlotForHour maps a clock hour to its slot: [4,8) early morning, [8,12)
// morning, [12,17) afternoon, [17,21) evening, anything else night.
func SlotForHour(hour int) TimeSlot {
	switch {
	case hour >= 4 && hour < 8:
		return SlotEarlyMorning
	case hour >= 8 && hour < 12:
		return SlotMorning
	case hour >= 12 && hour < 17:
		return SlotAfternoon
	case hour >= 17 && hour < 21:
		return SlotEvening
	default:
		return SlotNight
	}
}

type Frequency string

const (
	FrequencyDaily         Frequency = "daily"
	FrequencyEveryOtherDay Frequency = "every-other-day"
	FrequencyWeekly        Frequency = "weekly"
	FrequencyIrregular     Frequency = "irregular"
)

type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

type DurationClass string

const (
	DurationShort  DurationClass = "short"
	DurationMedium DurationClass = "medium"
	DurationLong   DurationClass = "long"
)

type DurationTrend string

const (
	DurationIncreasing DurationTrend = "increasing"
	DurationSteady     DurationTrend = "stable"
	DurationDecreasing DurationTrend = "decreasing"
)

type PracticeType string

const (
	PreferMeditation PracticeType = "meditation"
	PreferBreathing  PracticeType = "breathing"
	PreferBalanced   PracticeType = "balanced"
)

type Season int

const (
	Spring Season = iota
	Summer
	Fall
	Winter
)

func (s Season) String() string {
	return [...]string{"spring", "summer", "fall", "winter"}[s]
}

type Motivation string

const (
	MotivationHigh   Motivation = "high"
	MotivationMedium Motivation = "medium"
	MotivationLow    Motivation = "low"
)

type SlotShare struct {
	Slot     TimeSlot
	Sessions int
	Percent  float64
}

type TimeOfDay struct {
	Slots []SlotShare
	// MostPreferred is empty when there are no sessions.
	MostPreferred TimeSlot
}

type Consistency struct {
	AverageGap         float64
	LongestGap         int
	Regularity         int
	PreferredFrequency Frequency
	Trend              Trend
}

type Durations struct {
	Sessions          int
	AverageSeconds    float64
	MinSeconds        int
	MaxSeconds        int
	StdDevSeconds     float64
	Short             int
	Medium            int
	Long              int
	PreferredDuration DurationClass
	Trend             DurationTrend
}

type Balance struct {
	MeditationSeconds int
	BreathingSeconds  int
	MeditationPercent float64
	BreathingPercent  float64
	Score             int
	PreferredType     PracticeType
	CrossPracticeDays int
}

type MonthCount struct {
	Month      string
	ActiveDays int
}

type WeekCount struct {
	WeekStart  string
	ActiveDays int
}

type WeeklyPattern struct {
	// DayOfWeek is indexed by time.Weekday.
	DayOfWeek [7]int
	Weeks     []WeekCount
	Trend     Trend
	Months    []MonthCount
	// Seasons is indexed by Season.
	Seasons [4]int
}

type Insights struct {
	Personality     string
	Strengths       []string
	Improvements    []string
	Recommendations []string
	HabitScore      int
	Motivation      Motivation
}

type HabitReport struct {
	TimeOfDay   TimeOfDay
	Consistency Consistency
	Durations   Durations
	Balance     Balance
	Weekly      WeeklyPattern
	Insights    Insights
}
