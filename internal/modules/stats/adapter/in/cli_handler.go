package in

import (
	"context"

	"mindful/internal/modules/stats/dto"
	statsin "mindful/internal/modules/stats/port/in"
)

type CLIHandler struct {
	usecase statsin.Usecase
}

func NewCLIHandler(usecase statsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Summarize(ctx context.Context, rangeName string, goalMinutes int) (dto.SummaryOutput, error) {
	return h.usecase.Summarize(ctx, dto.SummaryInput{Range: rangeName, GoalMinutes: goalMinutes})
}

func (h CLIHandler) YearlyReport(ctx context.Context, year, goalMinutes int) (dto.YearlyOutput, error) {
	return h.usecase.YearlyReport(ctx, dto.YearlyInput{Year: year, GoalMinutes: goalMinutes})
}
