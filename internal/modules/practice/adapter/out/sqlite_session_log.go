package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"mindful/internal/modules/practice/domain"
	practiceout "mindful/internal/modules/practice/port/out"
	technique "mindful/internal/modules/technique/domain"

	_ "modernc.org/sqlite"
)

type SQLiteSessionLog struct {
	db *sql.DB
}

func NewSQLiteSessionLog(dbPath string) (*SQLiteSessionLog, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	log := &SQLiteSessionLog{db: db}
	if err := log.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return log, nil
}

var _ practiceout.SessionLog = (*SQLiteSessionLog)(nil)

func (s *SQLiteSessionLog) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  id TEXT PRIMARY KEY,
  kind TEXT NOT NULL,
  technique TEXT,
  duration_seconds INTEGER NOT NULL,
  started_at TEXT NOT NULL,
  started_unix INTEGER NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_unix)`); err != nil {
		return fmt.Errorf("create sessions index: %w", err)
	}
	return nil
}

func (s *SQLiteSessionLog) Append(ctx context.Context, session domain.Session) error {
	const stmt = `
INSERT INTO sessions (id, kind, technique, duration_seconds, started_at, started_unix)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  kind=excluded.kind,
  technique=excluded.technique,
  duration_seconds=excluded.duration_seconds,
  started_at=excluded.started_at,
  started_unix=excluded.started_unix;
`
	_, err := s.db.ExecContext(ctx, stmt,
		session.ID,
		string(session.Kind),
		string(session.Technique),
		session.DurationSeconds,
		session.StartedAt.Format(time.RFC3339Nano),
		session.StartedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("append session: %w", err)
	}
	return nil
}

func (s *SQLiteSessionLog) List(ctx context.Context) ([]domain.Session, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, kind, technique, duration_seconds, started_at
FROM sessions
ORDER BY started_unix ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []domain.Session
	for rows.Next() {
		var (
			session   domain.Session
			kind      string
			tech      sql.NullString
			startedAt string
		)
		if err := rows.Scan(&session.ID, &kind, &tech, &session.DurationSeconds, &startedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		session.Kind = domain.Kind(kind)
		session.Technique = technique.ID(tech.String)
		session.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt)
		if err != nil {
			return nil, fmt.Errorf("session %s started_at: %w", session.ID, err)
		}
		out = append(out, session)
	}
	return out, rows.Err()
}

func (s *SQLiteSessionLog) Close() error {
	return s.db.Close()
}
