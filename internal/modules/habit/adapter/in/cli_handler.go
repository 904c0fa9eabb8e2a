package in

import (
	"context"

	"mindful/internal/modules/habit/dto"
	habitin "mindful/internal/modules/habit/port/in"
)

type CLIHandler struct {
	usecase habitin.Usecase
}

func NewCLIHandler(usecase habitin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Analyze(ctx context.Context, estimate bool) (dto.ReportOutput, error) {
	return h.usecase.Analyze(ctx, dto.AnalyzeInput{Estimate: estimate})
}
