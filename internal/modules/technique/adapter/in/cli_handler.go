package in

import (
	"context"

	"mindful/internal/modules/technique/dto"
	techniquein "mindful/internal/modules/technique/port/in"
)

type CLIHandler struct {
	usecase techniquein.Usecase
}

func NewCLIHandler(usecase techniquein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.TechniqueOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Get(ctx context.Context, name string) (dto.TechniqueOutput, error) {
	return h.usecase.Get(ctx, name)
}
