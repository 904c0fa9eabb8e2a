package in

import (
	"context"

	"mindful/internal/modules/technique/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.TechniqueOutput, error)
	Get(ctx context.Context, name string) (dto.TechniqueOutput, error)
}
