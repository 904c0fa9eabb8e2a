package usecase

import (
	"context"
	"errors"
	"fmt"

	"mindful/internal/modules/practice/domain"
	"mindful/internal/modules/practice/dto"
	practicein "mindful/internal/modules/practice/port/in"
	practiceout "mindful/internal/modules/practice/port/out"
	"mindful/internal/modules/practice/service"
	apperrors "mindful/internal/platform/errors"
)

type Interactor struct {
	svc         *service.PracticeService
	activeStore practiceout.ActiveSessionStore
}

func NewInteractor(svc *service.PracticeService, activeStore practiceout.ActiveSessionStore) practicein.Usecase {
	return &Interactor{svc: svc, activeStore: activeStore}
}

func (i *Interactor) Start(ctx context.Context, input dto.StartInput) (dto.StartOutput, error) {
	if i.activeStore != nil {
		_, err := i.activeStore.LoadActive(ctx)
		if err == nil {
			return dto.StartOutput{}, apperrors.ErrActiveSessionExists
		}
		if !errors.Is(err, apperrors.ErrNoActiveSession) {
			return dto.StartOutput{}, err
		}
	}
	active, err := i.svc.Start(ctx, domain.Kind(input.Kind), input.Technique, input.Intention)
	if err != nil {
		return dto.StartOutput{}, err
	}
	if i.activeStore != nil {
		if err := i.activeStore.SaveActive(ctx, active); err != nil {
			return dto.StartOutput{}, err
		}
	}
	return dto.StartOutput{
		SessionID: active.SessionID,
		Kind:      string(active.Kind),
		Technique: string(active.Technique),
		StartedAt: active.StartedAt,
	}, nil
}

func (i *Interactor) End(ctx context.Context, input dto.EndInput) (dto.EndOutput, error) {
	if i.activeStore == nil {
		return dto.EndOutput{}, apperrors.ErrNoActiveSession
	}
	active, err := i.activeStore.LoadActive(ctx)
	if err != nil {
		return dto.EndOutput{}, err
	}
	if input.SessionID != "" && input.SessionID != active.SessionID {
		return dto.EndOutput{}, fmt.Errorf("%w: session id mismatch", apperrors.ErrInvalidInput)
	}
	session, entry, err := i.svc.End(ctx, active)
	if err != nil {
		return dto.EndOutput{}, err
	}
	if err := i.activeStore.ClearActive(ctx); err != nil {
		return dto.EndOutput{}, err
	}
	return dto.EndOutput{
		SessionID:       session.ID,
		Kind:            string(session.Kind),
		Technique:       string(session.Technique),
		DurationSeconds: session.DurationSeconds,
		Day:             toDayOutput(entry),
	}, nil
}

func (i *Interactor) GetActive(ctx context.Context) (dto.ActiveSessionOutput, error) {
	if i.activeStore == nil {
		return dto.ActiveSessionOutput{}, apperrors.ErrNoActiveSession
	}
	active, err := i.activeStore.LoadActive(ctx)
	if err != nil {
		return dto.ActiveSessionOutput{}, err
	}
	return dto.ActiveSessionOutput{
		SessionID: active.SessionID,
		Kind:      string(active.Kind),
		Technique: string(active.Technique),
		Intention: active.Intention,
		StartedAt: active.StartedAt,
	}, nil
}

func (i *Interactor) LogMeditation(ctx context.Context, input dto.LogMeditationInput) (dto.DayOutput, error) {
	entry, err := i.svc.LogMeditation(ctx, input.Date, input.Seconds)
	if err != nil {
		return dto.DayOutput{}, err
	}
	return toDayOutput(entry), nil
}

func (i *Interactor) LogBreathing(ctx context.Context, input dto.LogBreathingInput) (dto.DayOutput, error) {
	entry, err := i.svc.LogBreathing(ctx, input.Date, input.Technique, input.Count)
	if err != nil {
		return dto.DayOutput{}, err
	}
	return toDayOutput(entry), nil
}

func (i *Interactor) GetDay(ctx context.Context, date string) (dto.DayOutput, error) {
	entry, err := i.svc.Day(ctx, date)
	if err != nil {
		return dto.DayOutput{}, err
	}
	return toDayOutput(entry), nil
}

func (i *Interactor) History(ctx context.Context) ([]dto.DayOutput, error) {
	entries, err := i.svc.History(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DayOutput, 0, len(entries))
	for _, entry := range entries {
		out = append(out, toDayOutput(entry))
	}
	return out, nil
}

func (i *Interactor) HistorySnapshot(ctx context.Context) (domain.History, error) {
	entries, err := i.svc.History(ctx)
	if err != nil {
		return nil, err
	}
	history := make(domain.History, len(entries))
	for _, entry := range entries {
		history[domain.FormatDate(entry.Day)] = entry.Record.Normalized()
	}
	return history, nil
}

func (i *Interactor) Sessions(ctx context.Context) ([]dto.SessionOutput, error) {
	sessions, err := i.svc.Sessions(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SessionOutput, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, dto.SessionOutput{
			ID:              s.ID,
			Kind:            string(s.Kind),
			Technique:       string(s.Technique),
			DurationSeconds: s.DurationSeconds,
			StartedAt:       s.StartedAt,
		})
	}
	return out, nil
}

func toDayOutput(entry domain.DayEntry) dto.DayOutput {
	usage := make(map[string]int, len(entry.Record.TechniqueUsage))
	for id, n := range entry.Record.TechniqueUsage {
		usage[string(id)] = n
	}
	return dto.DayOutput{
		Date:              domain.FormatDate(entry.Day),
		MeditationSeconds: entry.Record.MeditationSeconds,
		BreathingSessions: entry.Record.BreathingSessions,
		TechniqueUsage:    usage,
		TotalMinutes:      entry.Record.TotalPracticeMinutes(),
		Active:            entry.Record.IsActive(),
		NotePath:          entry.NotePath,
	}
}
