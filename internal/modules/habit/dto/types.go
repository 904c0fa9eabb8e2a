package dto

type AnalyzeInput struct {
	// Estimate ignores logged sessions and estimates every day.
	Estimate bool
}

type SlotShareOutput struct {
	Slot     string
	Sessions int
	Percent  float64
}

type ConsistencyOutput struct {
	AverageGap         float64
	LongestGap         int
	Regularity         int
	PreferredFrequency string
	Trend              string
}

type DurationOutput struct {
	Sessions          int
	AverageSeconds    float64
	MinSeconds        int
	MaxSeconds        int
	StdDevSeconds     float64
	Short             int
	Medium            int
	Long              int
	PreferredDuration string
	Trend             string
}

type BalanceOutput struct {
	MeditationSeconds int
	BreathingSeconds  int
	MeditationPercent float64
	BreathingPercent  float64
	Score             int
	PreferredType     string
	CrossPracticeDays int
}

type CountOutput struct {
	Label      string
	ActiveDays int
}

type WeeklyOutput struct {
	DayOfWeek []CountOutput
	Weeks     []CountOutput
	Months    []CountOutput
	Seasons   []CountOutput
	Trend     string
}

type InsightsOutput struct {
	Personality     string
	Strengths       []string
	Improvements    []string
	Recommendations []string
	HabitScore      int
	Motivation      string
}

type ReportOutput struct {
	LoggedSessions int
	TimeOfDay      []SlotShareOutput
	MostPreferred  string
	Consistency    ConsistencyOutput
	Durations      DurationOutput
	Balance        BalanceOutput
	Weekly         WeeklyOutput
	Insights       InsightsOutput
}
