package in

import (
	"context"

	"mindful/internal/modules/habit/dto"
)

type Usecase interface {
	Analyze(ctx context.Context, input dto.AnalyzeInput) (dto.ReportOutput, error)
}
