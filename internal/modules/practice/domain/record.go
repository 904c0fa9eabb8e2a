package domain

import (
	"fmt"
	"sort"
	"time"

	technique "mindful/internal/modules/technique/domain"
	apperrors "mindful/internal/platform/errors"
)

const (
	SchemaVersion = 1
	DateLayout    = "2006-01-02"

	ManagedSummaryStart = "<!-- mindful:summary:start -->"
	ManagedSummaryEnd   = "<!-- mindful:summary:end -->"
)

// DailyRecord is one calendar day of aggregated practice.
type DailyRecord struct {
	MeditationSeconds int
	BreathingSessions int
	TechniqueUsage    map[technique.ID]int
}

func EmptyRecord() DailyRecord {
	return DailyRecord{TechniqueUsage: map[technique.ID]int{}}
}

// IsActive reports whether any practice happened that day.
func (r DailyRecord) IsActive() bool {
	return r.MeditationSeconds > 0 || r.BreathingSessions > 0
}

// Normalized clamps negative counters to zero and drops non-positive usage.
func (r DailyRecord) Normalized() DailyRecord {
	out := DailyRecord{
		MeditationSeconds: max(r.MeditationSeconds, 0),
		BreathingSessions: max(r.BreathingSessions, 0),
		TechniqueUsage:    make(map[technique.ID]int, len(r.TechniqueUsage)),
	}
	for id, n := range r.TechniqueUsage {
		if n > 0 {
			out.TechniqueUsage[id] = n
		}
	}
	return out
}

func (r DailyRecord) HasBoth() bool {
	return r.MeditationSeconds > 0 && r.BreathingSessions > 0
}

// AverageBreathingSessionSeconds is the usage-weighted session length for the day.
func (r DailyRecord) AverageBreathingSessionSeconds() int {
	return technique.WeightedAverageSessionDuration(r.TechniqueUsage)
}

func (r DailyRecord) BreathingSeconds() int {
	return technique.BreathingSeconds(r.BreathingSessions, r.TechniqueUsage)
}

func (r DailyRecord) TotalPracticeMinutes() int {
	return technique.TotalPracticeMinutes(r.MeditationSeconds, r.BreathingSessions, r.TechniqueUsage)
}

// MeetsGoal uses an inclusive threshold, so a zero goal is met by every day.
func (r DailyRecord) MeetsGoal(goalMinutes int) bool {
	return r.TotalPracticeMinutes() >= goalMinutes
}

func (r DailyRecord) AddMeditation(seconds int) DailyRecord {
	out := r.Normalized()
	out.MeditationSeconds += max(seconds, 0)
	return out
}

func (r DailyRecord) AddBreathing(id technique.ID, count int) DailyRecord {
	out := r.Normalized()
	if count <= 0 {
		return out
	}
	out.BreathingSessions += count
	out.TechniqueUsage[id] += count
	return out
}

// History maps YYYY-MM-DD keys to daily records. Callers hand analytics a
// snapshot and must not mutate it during a computation.
type History map[string]DailyRecord

// Record returns the normalized record for day, or EmptyRecord when absent.
func (h History) Record(day time.Time) DailyRecord {
	r, ok := h[FormatDate(day)]
	if !ok {
		return EmptyRecord()
	}
	return r.Normalized()
}

// Dates parses every key and returns them in ascending order.
func (h History) Dates() ([]time.Time, error) {
	out := make([]time.Time, 0, len(h))
	for key := range h {
		d, err := ParseDate(key)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out, nil
}

// ActiveDates is Dates filtered to days with practice.
func (h History) ActiveDates() ([]time.Time, error) {
	dates, err := h.Dates()
	if err != nil {
		return nil, err
	}
	out := dates[:0]
	for _, d := range dates {
		if h.Record(d).IsActive() {
			out = append(out, d)
		}
	}
	return out, nil
}

// Validate rejects keys that are not calendar dates.
func (h History) Validate() error {
	for key := range h {
		if _, err := ParseDate(key); err != nil {
			return err
		}
	}
	return nil
}

func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidDate, s)
	}
	return d, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Day maps an instant to UTC midnight of its calendar date in its own location.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts whole calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

// DayEntry is a stored daily record together with its note metadata.
type DayEntry struct {
	Day       time.Time
	Record    DailyRecord
	UpdatedAt time.Time
	NotePath  string
}
