package usecase

import (
	"context"
	"fmt"
	"strings"

	"mindful/internal/modules/technique/domain"
	"mindful/internal/modules/technique/dto"
	techniquein "mindful/internal/modules/technique/port/in"
	apperrors "mindful/internal/platform/errors"
)

type Interactor struct{}

func NewInteractor() techniquein.Usecase {
	return Interactor{}
}

func (Interactor) List(context.Context) ([]dto.TechniqueOutput, error) {
	profiles := domain.Catalog()
	out := make([]dto.TechniqueOutput, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, toOutput(p))
	}
	return out, nil
}

func (Interactor) Get(_ context.Context, name string) (dto.TechniqueOutput, error) {
	p, ok := domain.Lookup(name)
	if !ok {
		return dto.TechniqueOutput{}, fmt.Errorf("technique %q: %w", name, apperrors.ErrNotFound)
	}
	return toOutput(p), nil
}

func toOutput(p domain.Profile) dto.TechniqueOutput {
	parts := make([]string, 0, len(p.Phases))
	for _, phase := range p.Phases {
		parts = append(parts, fmt.Sprintf("%s %ds", phase.Kind, phase.Seconds))
	}
	return dto.TechniqueOutput{
		ID:              string(p.ID),
		Name:            p.Name,
		Pattern:         strings.Join(parts, ", "),
		CycleSeconds:    p.CycleDuration(),
		SessionSeconds:  p.SessionDuration(),
		CyclesInSession: domain.CyclesPerSession,
		Default:         p.ID == domain.DefaultID,
	}
}
