package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"mindful/internal/modules/stats/domain"
	statsout "mindful/internal/modules/stats/port/out"
	"mindful/internal/platform/clock"
	apperrors "mindful/internal/platform/errors"
	"mindful/internal/platform/logging"
)

type StatsService struct {
	history      statsout.HistoryReader
	clock        clock.Clock
	goalMinutes  int
	defaultRange domain.Range
	logger       *logging.Logger
}

// NewStatsService uses goalMinutes and defaultRange whenever a request leaves
// them unset.
func NewStatsService(history statsout.HistoryReader, clk clock.Clock, goalMinutes int, defaultRange domain.Range, logger *logging.Logger) *StatsService {
	if logger == nil {
		logger = logging.Nop()
	}
	if defaultRange == "" {
		defaultRange = domain.RangeWeek
	}
	return &StatsService{
		history:      history,
		clock:        clk,
		goalMinutes:  goalMinutes,
		defaultRange: defaultRange,
		logger:       logger.Named("stats"),
	}
}

func (s *StatsService) Summarize(ctx context.Context, rangeName string, goalMinutes int) (domain.RangeSummary, error) {
	r := s.defaultRange
	if rangeName != "" {
		parsed, err := domain.ParseRange(rangeName)
		if err != nil {
			return domain.RangeSummary{}, err
		}
		r = parsed
	}
	goal, err := s.resolveGoal(goalMinutes)
	if err != nil {
		return domain.RangeSummary{}, err
	}
	history, err := s.history.History(ctx)
	if err != nil {
		return domain.RangeSummary{}, err
	}
	summary, err := domain.Summarize(history, r, goal, clock.Today(s.clock))
	if err != nil {
		return domain.RangeSummary{}, err
	}
	s.logger.Debug(ctx, "range summary computed",
		zap.String("range", string(r)),
		zap.Int("days", summary.TotalDays),
		zap.Int("active_days", summary.ActiveDays),
	)
	return summary, nil
}

// YearlyReport builds the report for year; zero selects the current year.
func (s *StatsService) YearlyReport(ctx context.Context, year, goalMinutes int) (domain.YearlyReport, error) {
	today := clock.Today(s.clock)
	if year == 0 {
		year = today.Year()
	}
	if year < 1 {
		return domain.YearlyReport{}, fmt.Errorf("%w: year %d", apperrors.ErrInvalidInput, year)
	}
	goal, err := s.resolveGoal(goalMinutes)
	if err != nil {
		return domain.YearlyReport{}, err
	}
	history, err := s.history.History(ctx)
	if err != nil {
		return domain.YearlyReport{}, err
	}
	report, err := domain.BuildYearlyReport(history, year, goal, today)
	if err != nil {
		return domain.YearlyReport{}, err
	}
	s.logger.Debug(ctx, "yearly report computed",
		zap.Int("year", year),
		zap.Int("active_days", report.ActiveDays),
		zap.Int("achievements", len(report.Achievements)),
	)
	return report, nil
}

func (s *StatsService) resolveGoal(goalMinutes int) (int, error) {
	if goalMinutes < 0 {
		return 0, fmt.Errorf("%w: goal must not be negative", apperrors.ErrInvalidInput)
	}
	if goalMinutes == 0 {
		return s.goalMinutes, nil
	}
	return goalMinutes, nil
}
