package domain

import (
	"sort"
	"time"

	practice "mindful/internal/modules/practice/domain"
	technique "mindful/internal/modules/technique/domain"
)

// SessionReconstructor turns a practice history into individual sessions
// with start times. Everything downstream of it only sees sessions.
type SessionReconstructor interface {
	Reconstruct(history practice.History) ([]practice.Session, error)
}

// breathingHours is the fixed rotation used to place estimated breathing
// sessions on the clock.
var breathingHours = [...]int{8, 12, 15, 18, 20}

// HeuristicReconstructor estimates session timing from daily totals: one
// meditation session per meditation day and one breathing session per
// recorded breathing count.
type HeuristicReconstructor struct{}

func (HeuristicReconstructor) Reconstruct(history practice.History) ([]practice.Session, error) {
	dates, err := history.ActiveDates()
	if err != nil {
		return nil, err
	}
	var out []practice.Session
	for _, day := range dates {
		out = append(out, estimateDay(day, history.Record(day))...)
	}
	return out, nil
}

func estimateDay(day time.Time, record practice.DailyRecord) []practice.Session {
	record = record.Normalized()
	var out []practice.Session
	if record.MeditationSeconds > 0 {
		out = append(out, practice.Session{
			Kind:            practice.KindMeditation,
			DurationSeconds: record.MeditationSeconds,
			StartedAt:       day.Add(time.Duration(meditationHour(day, record.MeditationSeconds)) * time.Hour),
		})
	}
	if record.BreathingSessions > 0 {
		duration := technique.WeightedAverageSessionDuration(record.TechniqueUsage)
		for i := 0; i < record.BreathingSessions; i++ {
			out = append(out, practice.Session{
				Kind:            practice.KindBreathing,
				DurationSeconds: duration,
				StartedAt:       day.Add(time.Duration(breathingHours[i%len(breathingHours)]) * time.Hour),
			})
		}
	}
	return out
}

// meditationHour places longer sits earlier in the morning. Weekends are
// always 8 AM.
func meditationHour(day time.Time, seconds int) int {
	if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return 8
	}
	switch {
	case seconds >= 1200:
		return 6
	case seconds >= 600:
		return 7
	case seconds <= 300:
		return 12
	default:
		return 7
	}
}

// DetailedReconstructor uses logged sessions as recorded. Whatever a day's
// record holds beyond its logged sessions, such as manual entries, is
// estimated by the fallback.
type DetailedReconstructor struct {
	Sessions []practice.Session
	Fallback SessionReconstructor
}

func (r DetailedReconstructor) Reconstruct(history practice.History) ([]practice.Session, error) {
	if err := history.Validate(); err != nil {
		return nil, err
	}
	fallback := r.Fallback
	if fallback == nil {
		fallback = HeuristicReconstructor{}
	}
	logged := make(map[string]practice.DailyRecord, len(r.Sessions))
	out := make([]practice.Session, 0, len(r.Sessions))
	for _, s := range r.Sessions {
		key := practice.FormatDate(practice.Day(s.StartedAt))
		day, ok := logged[key]
		if !ok {
			day = practice.EmptyRecord()
		}
		switch s.Kind {
		case practice.KindMeditation:
			day = day.AddMeditation(s.DurationSeconds)
		case practice.KindBreathing:
			day = day.AddBreathing(s.Technique, 1)
		}
		logged[key] = day
		out = append(out, s)
	}
	remaining := practice.History{}
	for key, record := range history {
		if day, ok := logged[key]; ok {
			record = unlogged(record, day)
		}
		if record.IsActive() {
			remaining[key] = record
		}
	}
	estimated, err := fallback.Reconstruct(remaining)
	if err != nil {
		return nil, err
	}
	out = append(out, estimated...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartedAt.Before(out[j].StartedAt) })
	return out, nil
}

// unlogged subtracts the logged part of a day from its record, never going
// below zero.
func unlogged(record, logged practice.DailyRecord) practice.DailyRecord {
	record = record.Normalized()
	out := practice.DailyRecord{
		MeditationSeconds: max(record.MeditationSeconds-logged.MeditationSeconds, 0),
		BreathingSessions: max(record.BreathingSessions-logged.BreathingSessions, 0),
		TechniqueUsage:    make(map[technique.ID]int, len(record.TechniqueUsage)),
	}
	for id, n := range record.TechniqueUsage {
		if rest := n - logged.TechniqueUsage[id]; rest > 0 {
			out.TechniqueUsage[id] = rest
		}
	}
	return out
}
