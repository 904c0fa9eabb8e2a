package service

import (
	"context"

	"go.uber.org/zap"

	"mindful/internal/modules/habit/domain"
	habitout "mindful/internal/modules/habit/port/out"
	practice "mindful/internal/modules/practice/domain"
	"mindful/internal/platform/logging"
)

type HabitService struct {
	history  habitout.HistoryReader
	sessions habitout.SessionReader
	logger   *logging.Logger
}

func NewHabitService(history habitout.HistoryReader, sessions habitout.SessionReader, logger *logging.Logger) *HabitService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &HabitService{history: history, sessions: sessions, logger: logger.Named("habit")}
}

// Analyze returns the report and the number of logged sessions it used.
func (s *HabitService) Analyze(ctx context.Context, estimate bool) (domain.HabitReport, int, error) {
	history, err := s.history.History(ctx)
	if err != nil {
		return domain.HabitReport{}, 0, err
	}
	var logged []practice.Session
	if !estimate && s.sessions != nil {
		logged, err = s.sessions.Sessions(ctx)
		if err != nil {
			return domain.HabitReport{}, 0, err
		}
	}
	report, err := domain.Analyze(history, logged)
	if err != nil {
		return domain.HabitReport{}, 0, err
	}
	s.logger.Debug(ctx, "habit report computed",
		zap.Int("logged_sessions", len(logged)),
		zap.Int("sessions", report.Durations.Sessions),
		zap.Int("habit_score", report.Insights.HabitScore),
	)
	return report, len(logged), nil
}
