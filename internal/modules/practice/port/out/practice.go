package out

import (
	"context"
	"time"

	"mindful/internal/modules/practice/domain"
)

// RecordStore persists one DailyRecord per calendar day.
type RecordStore interface {
	Load(ctx context.Context, day time.Time) (domain.DayEntry, error)
	Save(ctx context.Context, entry domain.DayEntry) (string, error)
	List(ctx context.Context) ([]domain.DayEntry, error)
}

// SessionLog keeps individually timed sessions.
type SessionLog interface {
	Append(ctx context.Context, session domain.Session) error
	List(ctx context.Context) ([]domain.Session, error)
}

type ActiveSessionStore interface {
	SaveActive(ctx context.Context, session domain.ActiveSession) error
	LoadActive(ctx context.Context) (domain.ActiveSession, error)
	ClearActive(ctx context.Context) error
}
