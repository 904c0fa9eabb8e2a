package in

import (
	"context"

	"mindful/internal/modules/practice/domain"
	"mindful/internal/modules/practice/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.StartOutput, error)
	End(ctx context.Context, input dto.EndInput) (dto.EndOutput, error)
	GetActive(ctx context.Context) (dto.ActiveSessionOutput, error)
	LogMeditation(ctx context.Context, input dto.LogMeditationInput) (dto.DayOutput, error)
	LogBreathing(ctx context.Context, input dto.LogBreathingInput) (dto.DayOutput, error)
	GetDay(ctx context.Context, date string) (dto.DayOutput, error)
	History(ctx context.Context) ([]dto.DayOutput, error)
	Sessions(ctx context.Context) ([]dto.SessionOutput, error)
	// HistorySnapshot returns every recorded day keyed by date, for analytics.
	HistorySnapshot(ctx context.Context) (domain.History, error)
}
