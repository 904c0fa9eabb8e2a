package in

import (
	"context"

	"mindful/internal/modules/stats/dto"
)

type Usecase interface {
	Summarize(ctx context.Context, input dto.SummaryInput) (dto.SummaryOutput, error)
	YearlyReport(ctx context.Context, input dto.YearlyInput) (dto.YearlyOutput, error)
}
