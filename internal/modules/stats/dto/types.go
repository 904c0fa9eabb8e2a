package dto

type SummaryInput struct {
	Range       string
	GoalMinutes int
}

type YearlyInput struct {
	Year        int
	GoalMinutes int
}

type DayPointOutput struct {
	Date              string
	MeditationSeconds int
	BreathingSessions int
	BreathingSeconds  int
	TotalMinutes      int
	Active            bool
	GoalMet           bool
}

type SummaryOutput struct {
	Range       string
	Start       string
	End         string
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

	BestDay  *DayPointOutput
	WorstDay *DayPointOutput
	Trend    []DayPointOutput
}

type MonthOutput struct {
	Month               string
	MeditationSeconds   int
	BreathingSessions   int
	TotalMinutes        int
	ActiveDays          int
	DaysElapsed         int
	GoalDays            int
	GoalAchievementRate int
	Score               float64
}

type ProgressOutput struct {
	Date                        string
	CumulativeMeditationSeconds int
	CumulativeMinutes           int
	CumulativeActiveDays        int
}

type AchievementOutput struct {
	ID          string
	Type        string
	Title       string
	Description string
	Icon        string
	Date        string
}

type YearlyOutput struct {
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

	BestMonth    *MonthOutput
	WorstMonth   *MonthOutput
	Months       []MonthOutput
	Progress     []ProgressOutput
	Achievements []AchievementOutput
}
