package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"mindful/internal/modules/practice/domain"
	practiceout "mindful/internal/modules/practice/port/out"
	technique "mindful/internal/modules/technique/domain"
	"mindful/internal/platform/clock"
	apperrors "mindful/internal/platform/errors"
	"mindful/internal/platform/id"
	"mindful/internal/platform/logging"
	"mindful/internal/platform/tx"
)

type PracticeService struct {
	clock   clock.Clock
	idGen   id.Generator
	records practiceout.RecordStore
	log     practiceout.SessionLog
	tx      tx.Manager
	logger  *logging.Logger
}

func NewPracticeService(clock clock.Clock, idGen id.Generator, records practiceout.RecordStore, log practiceout.SessionLog, txm tx.Manager, logger *logging.Logger) *PracticeService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &PracticeService{clock: clock, idGen: idGen, records: records, log: log, tx: txm, logger: logger}
}

func (s *PracticeService) Start(_ context.Context, kind domain.Kind, techniqueName, intention string) (domain.ActiveSession, error) {
	if err := kind.Validate(); err != nil {
		return domain.ActiveSession{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	active := domain.ActiveSession{
		SessionID: s.idGen.New(),
		Kind:      kind,
		Intention: strings.TrimSpace(intention),
		StartedAt: s.clock.Now(),
	}
	if kind == domain.KindBreathing {
		profile, err := resolveTechnique(techniqueName)
		if err != nil {
			return domain.ActiveSession{}, err
		}
		active.Technique = profile.ID
	}
	return active, nil
}

// End records the elapsed time of active into its day and the session log.
func (s *PracticeService) End(ctx context.Context, active domain.ActiveSession) (domain.Session, domain.DayEntry, error) {
	elapsed := int(s.clock.Now().Sub(active.StartedAt).Seconds())
	if elapsed < 0 {
		elapsed = 0
	}
	session := domain.Session{
		ID:              active.SessionID,
		Kind:            active.Kind,
		Technique:       active.Technique,
		DurationSeconds: elapsed,
		StartedAt:       active.StartedAt,
	}
	var saved domain.DayEntry
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		entry, err := s.records.Load(ctx, active.StartedAt)
		if err != nil {
			return err
		}
		switch active.Kind {
		case domain.KindMeditation:
			entry.Record = entry.Record.AddMeditation(elapsed)
		case domain.KindBreathing:
			entry.Record = entry.Record.AddBreathing(active.Technique, 1)
		}
		saved, err = s.save(ctx, entry)
		if err != nil {
			return err
		}
		if s.log != nil {
			return s.log.Append(ctx, session)
		}
		return nil
	})
	if err != nil {
		return domain.Session{}, domain.DayEntry{}, err
	}
	s.logger.Info(ctx, "session recorded",
		zap.String("session_id", session.ID),
		zap.String("kind", string(session.Kind)),
		zap.Int("duration_seconds", session.DurationSeconds))
	return session, saved, nil
}

// LogMeditation adds a manual meditation entry. Manual entries carry no
// timestamp, so they only touch the daily record.
func (s *PracticeService) LogMeditation(ctx context.Context, date string, seconds int) (domain.DayEntry, error) {
	if seconds <= 0 {
		return domain.DayEntry{}, fmt.Errorf("%w: meditation seconds must be positive", apperrors.ErrInvalidInput)
	}
	return s.update(ctx, date, func(r domain.DailyRecord) domain.DailyRecord {
		return r.AddMeditation(seconds)
	})
}

func (s *PracticeService) LogBreathing(ctx context.Context, date, techniqueName string, count int) (domain.DayEntry, error) {
	if count <= 0 {
		return domain.DayEntry{}, fmt.Errorf("%w: breathing session count must be positive", apperrors.ErrInvalidInput)
	}
	profile, err := resolveTechnique(techniqueName)
	if err != nil {
		return domain.DayEntry{}, err
	}
	return s.update(ctx, date, func(r domain.DailyRecord) domain.DailyRecord {
		return r.AddBreathing(profile.ID, count)
	})
}

func (s *PracticeService) Day(ctx context.Context, date string) (domain.DayEntry, error) {
	day, err := s.resolveDate(date)
	if err != nil {
		return domain.DayEntry{}, err
	}
	return s.records.Load(ctx, day)
}

func (s *PracticeService) History(ctx context.Context) ([]domain.DayEntry, error) {
	return s.records.List(ctx)
}

func (s *PracticeService) Sessions(ctx context.Context) ([]domain.Session, error) {
	if s.log == nil {
		return nil, nil
	}
	return s.log.List(ctx)
}

func (s *PracticeService) update(ctx context.Context, date string, apply func(domain.DailyRecord) domain.DailyRecord) (domain.DayEntry, error) {
	day, err := s.resolveDate(date)
	if err != nil {
		return domain.DayEntry{}, err
	}
	var saved domain.DayEntry
	err = s.tx.Within(ctx, func(ctx context.Context) error {
		entry, err := s.records.Load(ctx, day)
		if err != nil {
			return err
		}
		entry.Record = apply(entry.Record)
		saved, err = s.save(ctx, entry)
		return err
	})
	return saved, err
}

func (s *PracticeService) save(ctx context.Context, entry domain.DayEntry) (domain.DayEntry, error) {
	entry.UpdatedAt = s.clock.Now()
	path, err := s.records.Save(ctx, entry)
	if err != nil {
		return domain.DayEntry{}, err
	}
	entry.NotePath = path
	return entry, nil
}

// resolveDate accepts YYYY-MM-DD or blank for today.
func (s *PracticeService) resolveDate(date string) (time.Time, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return clock.Today(s.clock), nil
	}
	return domain.ParseDate(date)
}

func resolveTechnique(name string) (technique.Profile, error) {
	if strings.TrimSpace(name) == "" {
		return technique.Default(), nil
	}
	profile, ok := technique.Lookup(name)
	if !ok {
		return technique.Profile{}, fmt.Errorf("%w: unknown technique %q", apperrors.ErrInvalidInput, name)
	}
	return profile, nil
}
