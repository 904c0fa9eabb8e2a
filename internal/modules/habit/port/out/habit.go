package out

import (
	"context"

	practice "mindful/internal/modules/practice/domain"
)

type HistoryReader interface {
	History(ctx context.Context) (practice.History, error)
}

// SessionReader lists individually logged sessions, oldest first.
type SessionReader interface {
	Sessions(ctx context.Context) ([]practice.Session, error)
}
