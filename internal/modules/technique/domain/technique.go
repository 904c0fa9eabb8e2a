package domain

import (
	"math"

	"mindful/internal/platform/slug"
)

// ID identifies a breathing technique. IDs are slugs.
type ID string

type PhaseKind string

const (
	PhaseInhale    PhaseKind = "inhale"
	PhaseHold      PhaseKind = "hold"
	PhaseExhale    PhaseKind = "exhale"
	PhaseHoldAfter PhaseKind = "hold-after"
)

// CyclesPerSession is the length of a standard guided session.
const CyclesPerSession = 5

const DefaultID ID = "4-7-8"

type Phase struct {
	Kind    PhaseKind
	Seconds int
}

type Profile struct {
	ID     ID
	Name   string
	Phases []Phase
}

// CycleDuration is the sum of the profile's phases; non-positive phases add nothing.
func (p Profile) CycleDuration() int {
	total := 0
	for _, phase := range p.Phases {
		if phase.Seconds > 0 {
			total += phase.Seconds
		}
	}
	return total
}

func (p Profile) SessionDuration() int {
	return p.CycleDuration() * CyclesPerSession
}

// PhaseSeconds returns the duration of kind, 0 when the profile omits it.
func (p Profile) PhaseSeconds(kind PhaseKind) int {
	for _, phase := range p.Phases {
		if phase.Kind == kind {
			return phase.Seconds
		}
	}
	return 0
}

var catalog = []Profile{
	{ID: DefaultID, Name: "Relaxing Breath", Phases: pattern(4, 7, 8, 0)},
	{ID: "box", Name: "Box Breathing", Phases: pattern(4, 4, 4, 4)},
	{ID: "coherent", Name: "Coherent Breathing", Phases: pattern(5, 0, 5, 0)},
	{ID: "calm", Name: "Calming Breath", Phases: pattern(4, 2, 6, 0)},
	{ID: "deep", Name: "Deep Release", Phases: pattern(5, 5, 10, 5)},
}

var byID = func() map[ID]Profile {
	out := make(map[ID]Profile, len(catalog))
	for _, p := range catalog {
		out[p.ID] = p
	}
	return out
}()

func pattern(inhale, hold, exhale, holdAfter int) []Phase {
	phases := []Phase{{Kind: PhaseInhale, Seconds: inhale}}
	if hold > 0 {
		phases = append(phases, Phase{Kind: PhaseHold, Seconds: hold})
	}
	phases = append(phases, Phase{Kind: PhaseExhale, Seconds: exhale})
	if holdAfter > 0 {
		phases = append(phases, Phase{Kind: PhaseHoldAfter, Seconds: holdAfter})
	}
	return phases
}

// Catalog lists the built-in profiles, default first.
func Catalog() []Profile {
	out := make([]Profile, len(catalog))
	copy(out, catalog)
	return out
}

func Default() Profile {
	return byID[DefaultID]
}

// Known reports whether id names a built-in profile.
func Known(id ID) bool {
	_, ok := byID[id]
	return ok
}

// Resolve returns the profile for id, falling back to the default profile.
func Resolve(id ID) Profile {
	if p, ok := byID[id]; ok {
		return p
	}
	return Default()
}

// Lookup resolves free-form user input ("Box", "4 7 8") to a profile.
func Lookup(name string) (Profile, bool) {
	key := ID(slug.Make(name))
	if p, ok := byID[key]; ok {
		return p, true
	}
	for _, p := range catalog {
		if ID(slug.Make(p.Name)) == key {
			return p, true
		}
	}
	return Profile{}, false
}

func CycleDuration(id ID) int {
	return Resolve(id).CycleDuration()
}

func SessionDuration(id ID) int {
	return Resolve(id).SessionDuration()
}

// WeightedAverageSessionDuration averages session seconds over a day's
// technique usage, weighting each technique by how often it was used.
// Empty or zero-sum usage yields the default technique's session length.
func WeightedAverageSessionDuration(usage map[ID]int) int {
	weighted, count := 0, 0
	for id, n := range usage {
		if n <= 0 {
			continue
		}
		weighted += n * SessionDuration(id)
		count += n
	}
	if count == 0 {
		return Default().SessionDuration()
	}
	return int(math.Round(float64(weighted) / float64(count)))
}

// BreathingSeconds estimates practiced breathing time for a day.
func BreathingSeconds(sessions int, usage map[ID]int) int {
	if sessions <= 0 {
		return 0
	}
	return WeightedAverageSessionDuration(usage) * sessions
}

// TotalPracticeMinutes is the canonical per-day score used for goal checks
// and best/worst ranking.
func TotalPracticeMinutes(meditationSeconds, breathingSessions int, usage map[ID]int) int {
	minutes := math.Round(float64(meditationSeconds) / 60)
	if breathingSessions > 0 {
		avg := float64(WeightedAverageSessionDuration(usage))
		minutes += math.Round(avg / 60 * float64(breathingSessions))
	}
	return int(minutes)
}
