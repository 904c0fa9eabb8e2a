package dto

import "time"

type StartInput struct {
	Kind      string
	Technique string
	Intention string
}

type StartOutput struct {
	SessionID string
	Kind      string
	Technique string
	StartedAt time.Time
}

type EndInput struct {
	SessionID string
}

type EndOutput struct {
	SessionID       string
	Kind            string
	Technique       string
	DurationSeconds int
	Day             DayOutput
}

type ActiveSessionOutput struct {
	SessionID string
	Kind      string
	Technique string
	Intention string
	StartedAt time.Time
}

type LogMeditationInput struct {
	Date    string
	Seconds int
}

type LogBreathingInput struct {
	Date      string
	Technique string
	Count     int
}

type DayOutput struct {
	Date              string
	MeditationSeconds int
	BreathingSessions int
	TechniqueUsage    map[string]int
	TotalMinutes      int
	Active            bool
	NotePath          string
}

type SessionOutput struct {
	ID              string
	Kind            string
	Technique       string
	DurationSeconds int
	StartedAt       time.Time
}
