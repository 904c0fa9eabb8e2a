package in

import (
	"context"

	"mindful/internal/modules/practice/dto"
	practicein "mindful/internal/modules/practice/port/in"
)

type CLIHandler struct {
	usecase practicein.Usecase
}

func NewCLIHandler(usecase practicein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, kind, technique, intention string) (dto.StartOutput, error) {
	return h.usecase.Start(ctx, dto.StartInput{Kind: kind, Technique: technique, Intention: intention})
}

func (h CLIHandler) End(ctx context.Context, sessionID string) (dto.EndOutput, error) {
	return h.usecase.End(ctx, dto.EndInput{SessionID: sessionID})
}

func (h CLIHandler) GetActive(ctx context.Context) (dto.ActiveSessionOutput, error) {
	return h.usecase.GetActive(ctx)
}

func (h CLIHandler) LogMeditation(ctx context.Context, date string, seconds int) (dto.DayOutput, error) {
	return h.usecase.LogMeditation(ctx, dto.LogMeditationInput{Date: date, Seconds: seconds})
}

func (h CLIHandler) LogBreathing(ctx context.Context, date, technique string, count int) (dto.DayOutput, error) {
	return h.usecase.LogBreathing(ctx, dto.LogBreathingInput{Date: date, Technique: technique, Count: count})
}

func (h CLIHandler) GetDay(ctx context.Context, date string) (dto.DayOutput, error) {
	return h.usecase.GetDay(ctx, date)
}

func (h CLIHandler) History(ctx context.Context) ([]dto.DayOutput, error) {
	return h.usecase.History(ctx)
}

func (h CLIHandler) Sessions(ctx context.Context) ([]dto.SessionOutput, error) {
	return h.usecase.Sessions(ctx)
}
