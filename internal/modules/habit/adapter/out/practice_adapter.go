package out

import (
	"context"

	habitout "mindful/internal/modules/habit/port/out"
	practice "mindful/internal/modules/practice/domain"
	practicein "mindful/internal/modules/practice/port/in"
	technique "mindful/internal/modules/technique/domain"
)

// PracticeAdapter reads history and the session log through the practice
// usecase.
type PracticeAdapter struct {
	practice practicein.Usecase
}

func NewPracticeAdapter(practice practicein.Usecase) *PracticeAdapter {
	return &PracticeAdapter{practice: practice}
}

var (
	_ habitout.HistoryReader = (*PracticeAdapter)(nil)
	_ habitout.SessionReader = (*PracticeAdapter)(nil)
)

func (a *PracticeAdapter) History(ctx context.Context) (practice.History, error) {
	return a.practice.HistorySnapshot(ctx)
}

func (a *PracticeAdapter) Sessions(ctx context.Context) ([]practice.Session, error) {
	items, err := a.practice.Sessions(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]practice.Session, 0, len(items))
	for _, item := range items {
		out = append(out, practice.Session{
			ID:              item.ID,
			Kind:            practice.Kind(item.Kind),
			Technique:       technique.ID(item.Technique),
			DurationSeconds: item.DurationSeconds,
			StartedAt:       item.StartedAt,
		})
	}
	return out, nil
}
