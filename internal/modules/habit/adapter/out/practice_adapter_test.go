package out_test

import (
	"context"
	"testing"
	"time"

	habitout "mindful/internal/modules/habit/adapter/out"
	practice "mindful/internal/modules/practice/domain"
	practicedto "mindful/internal/modules/practice/dto"
	practicein "mindful/internal/modules/practice/port/in"
	technique "mindful/internal/modules/technique/domain"
)

type fakePractice struct {
	practicein.Usecase
}

func (fakePractice) HistorySnapshot(context.Context) (practice.History, error) {
	return practice.History{"2026-10-19": {BreathingSessions: 1, TechniqueUsage: map[technique.ID]int{"deep": 1}}}, nil
}

func (fakePractice) Sessions(context.Context) ([]practicedto.SessionOutput, error) {
	return []practicedto.SessionOutput{{
		ID:              "sess-1",
		Kind:            "breathing",
		Technique:       "deep",
		DurationSeconds: 125,
		StartedAt:       time.Date(2026, 10, 19, 7, 15, 0, 0, time.UTC),
	}}, nil
}

func TestPracticeAdapterConvertsDaysAndSessions(t *testing.T) {
	t.Parallel()
	adapter := habitout.NewPracticeAdapter(fakePractice{})
	history, err := adapter.History(context.Background())
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if got := history["2026-10-19"].BreathingSeconds(); got != 125 {
		t.Fatalf("expected deep release duration, got %d", got)
	}
	sessions, err := adapter.Sessions(context.Background())
	if err != nil {
		t.Fatalf("sessions: %v", err)
	}
	if len(sessions) != 1 || sessions[0].Kind != practice.KindBreathing || sessions[0].Technique != "deep" {
		t.Fatalf("unexpected sessions %+v", sessions)
	}
}
