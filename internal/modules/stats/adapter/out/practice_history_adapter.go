package out

import (
	"context"

	practice "mindful/internal/modules/practice/domain"
	practicein "mindful/internal/modules/practice/port/in"
	statsout "mindful/internal/modules/stats/port/out"
)

type PracticeHistoryAdapter struct {
	practice practicein.Usecase
}

func NewPracticeHistoryAdapter(practice practicein.Usecase) statsout.HistoryReader {
	return &PracticeHistoryAdapter{practice: practice}
}

func (a *PracticeHistoryAdapter) History(ctx context.Context) (practice.History, error) {
	return a.practice.HistorySnapshot(ctx)
}
