package app

import (
	"context"
	"strings"
	"testing"
	"time"

	habitdto "mindful/internal/modules/habit/dto"
	practicedto "mindful/internal/modules/practice/dto"
	statsdto "mindful/internal/modules/stats/dto"
	apperrors "mindful/internal/platform/errors"
	"mindful/internal/ui/components"
)

type fakePractice struct {
	started   []string
	loggedSec int
	loggedTec string
	loggedN   int
}

func (f *fakePractice) Start(_ context.Context, kind, technique, intention string) (practicedto.StartOutput, error) {
	f.started = append(f.started, kind+"|"+technique+"|"+intention)
	return practicedto.StartOutput{SessionID: "sess-1", Kind: kind, Technique: technique, StartedAt: time.Date(2026, 10, 19, 7, 0, 0, 0, time.UTC)}, nil
}

func (f *fakePractice) End(context.Context, string) (practicedto.EndOutput, error) {
	return practicedto.EndOutput{SessionID: "sess-1", Kind: "meditation", DurationSeconds: 600, Day: practicedto.DayOutput{TotalMinutes: 10}}, nil
}

func (f *fakePractice) GetActive(context.Context) (practicedto.ActiveSessionOutput, error) {
	return practicedto.ActiveSessionOutput{}, apperrors.ErrNoActiveSession
}

func (f *fakePractice) LogMeditation(_ context.Context, date string, seconds int) (practicedto.DayOutput, error) {
	f.loggedSec = seconds
	return practicedto.DayOutput{Date: "2026-10-19", TotalMinutes: seconds / 60}, nil
}

func (f *fakePractice) LogBreathing(_ context.Context, date, technique string, count int) (practicedto.DayOutput, error) {
	f.loggedTec, f.loggedN = technique, count
	return practicedto.DayOutput{Date: "2026-10-19"}, nil
}

type fakeStats struct{}

func (fakeStats) Summarize(_ context.Context, rangeName string, goal int) (statsdto.SummaryOutput, error) {
	return statsdto.SummaryOutput{Range: rangeName, GoalMinutes: goal}, nil
}

func (fakeStats) YearlyReport(_ context.Context, year, goal int) (statsdto.YearlyOutput, error) {
	return statsdto.YearlyOutput{Year: year, GoalMinutes: goal}, nil
}

type fakeHabits struct{}

func (fakeHabits) Analyze(context.Context, bool) (habitdto.ReportOutput, error) {
	return habitdto.ReportOutput{Insights: habitdto.InsightsOutput{Personality: "Mindful Explorer"}}, nil
}

func TestPaletteLogCommandsReachPractice(t *testing.T) {
	t.Parallel()
	practice := &fakePractice{}
	m := NewModel(practice, fakeStats{}, fakeHabits{}, Options{Range: "week", GoalMinutes: 20})

	next, cmd := m.Update(components.PaletteSubmitMsg{Name: "log", Args: []string{"meditation", "12"}})
	if cmd == nil {
		t.Fatalf("expected a log command")
	}
	msg := cmd()
	if practice.loggedSec != 720 {
		t.Fatalf("minutes should be converted to seconds, got %d", practice.loggedSec)
	}
	next, _ = next.Update(msg)
	if status := next.(Model).status; !strings.Contains(status, "12 min") {
		t.Fatalf("unexpected status %q", status)
	}

	_, cmd = next.Update(components.PaletteSubmitMsg{Name: "log", Args: []string{"breathing", "3", "box"}})
	cmd()
	if practice.loggedTec != "box" || practice.loggedN != 3 {
		t.Fatalf("unexpected breathing log %q x%d", practice.loggedTec, practice.loggedN)
	}
}

func TestPaletteStartSplitsTechniqueAndIntention(t *testing.T) {
	t.Parallel()
	practice := &fakePractice{}
	m := NewModel(practice, fakeStats{}, fakeHabits{}, Options{})

	_, cmd := m.Update(components.PaletteSubmitMsg{Name: "start", Args: []string{"breathing", "box"}})
	started := cmd()
	_, cmd = m.Update(components.PaletteSubmitMsg{Name: "start", Args: []string{"meditation", "morning", "sit"}})
	cmd()
	want := []string{"breathing|box|", "meditation||morning sit"}
	if strings.Join(practice.started, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected starts %v", practice.started)
	}

	next, _ := m.Update(started)
	model := next.(Model)
	if !model.hasActive || model.active.SessionID != "sess-1" {
		t.Fatalf("start should track the active session")
	}
	if !strings.Contains(model.renderStatusBar(), "breathing (box)") {
		t.Fatalf("status bar should show the running session")
	}
}

func TestUnknownCommandReportsStatus(t *testing.T) {
	t.Parallel()
	m := NewModel(&fakePractice{}, fakeStats{}, fakeHabits{}, Options{})
	next, cmd := m.Update(components.PaletteSubmitMsg{Name: "meditate"})
	if cmd != nil || next.(Model).status != "unknown command: meditate" {
		t.Fatalf("unexpected result %q", next.(Model).status)
	}
	next, _ = m.Update(components.PaletteSubmitMsg{Name: "goal", Args: []string{"-3"}})
	if next.(Model).status != "usage: goal <minutes>" {
		t.Fatalf("negative goal should be rejected, got %q", next.(Model).status)
	}
}
