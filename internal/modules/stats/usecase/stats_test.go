package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	practice "mindful/internal/modules/practice/domain"
	"mindful/internal/modules/stats/domain"
	"mindful/internal/modules/stats/dto"
	"mindful/internal/modules/stats/service"
	"mindful/internal/modules/stats/usecase"
	"mindful/internal/platform/clock"
	apperrors "mindful/internal/platform/errors"
	"mindful/internal/platform/logging"
)

type fakeHistory struct {
	history practice.History
	err     error
	calls   int
}

func (f *fakeHistory) History(context.Context) (practice.History, error) {
	f.calls++
	return f.history, f.err
}

func fixedClock() clock.Clock {
	return clock.Fixed(time.Date(2024, 3, 15, 21, 30, 0, 0, time.UTC))
}

func TestSummarizeUsesConfiguredDefaults(t *testing.T) {
	t.Parallel()
	reader := &fakeHistory{history: practice.History{
		"2024-03-14": {MeditationSeconds: 900},
		"2024-03-15": {MeditationSeconds: 600},
	}}
	uc := usecase.NewInteractor(service.NewStatsService(reader, fixedClock(), 15, domain.RangeWeek, nil))

	out, err := uc.Summarize(context.Background(), dto.SummaryInput{})
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if out.Range != "week" || out.GoalMinutes != 15 || out.Start != "2024-03-09" || out.End != "2024-03-16" {
		t.Fatalf("unexpected defaults %+v", out)
	}
	if len(out.Trend) != 7 || out.GoalDays != 1 || out.ActiveDays != 2 {
		t.Fatalf("unexpected summary %+v", out)
	}
	if out.BestDay == nil || out.BestDay.Date != "2024-03-14" {
		t.Fatalf("unexpected best day %+v", out.BestDay)
	}
}

func TestSummarizeRejectsUnknownRangeAndNegativeGoal(t *testing.T) {
	t.Parallel()
	reader := &fakeHistory{history: practice.History{}}
	uc := usecase.NewInteractor(service.NewStatsService(reader, fixedClock(), 20, "", nil))

	if _, err := uc.Summarize(context.Background(), dto.SummaryInput{Range: "fortnight"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid range, got %v", err)
	}
	if _, err := uc.Summarize(context.Background(), dto.SummaryInput{GoalMinutes: -5}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid goal, got %v", err)
	}
	if reader.calls != 0 {
		t.Fatalf("history should not be read for invalid requests")
	}
}

func TestSummarizePropagatesHistoryErrors(t *testing.T) {
	t.Parallel()
	boom := errors.New("vault unavailable")
	uc := usecase.NewInteractor(service.NewStatsService(&fakeHistory{err: boom}, fixedClock(), 20, domain.RangeWeek, nil))
	if _, err := uc.Summarize(context.Background(), dto.SummaryInput{}); !errors.Is(err, boom) {
		t.Fatalf("expected history error, got %v", err)
	}
	if _, err := uc.YearlyReport(context.Background(), dto.YearlyInput{}); !errors.Is(err, boom) {
		t.Fatalf("expected history error, got %v", err)
	}
}

func TestYearlyReportDefaultsToCurrentYearAndLogs(t *testing.T) {
	t.Parallel()
	core, observed := observer.New(zapcore.DebugLevel)
	reader := &fakeHistory{history: practice.History{
		"2024-01-01": {MeditationSeconds: 3600},
		"2024-02-10": {BreathingSessions: 2},
	}}
	svc := service.NewStatsService(reader, fixedClock(), 20, domain.RangeWeek, logging.FromZap(zap.New(core)))
	uc := usecase.NewInteractor(svc)

	out, err := uc.YearlyReport(context.Background(), dto.YearlyInput{})
	if err != nil {
		t.Fatalf("yearly report: %v", err)
	}
	if out.Year != 2024 || out.TotalDays != 75 || len(out.Months) != 3 {
		t.Fatalf("unexpected report %+v", out)
	}
	if out.Months[0].Month != "January" || out.BestMonth == nil || out.BestMonth.Month != "January" {
		t.Fatalf("unexpected months %+v", out.Months)
	}
	if len(out.Achievements) != 1 || out.Achievements[0].ID != "meditation-1h" || out.Achievements[0].Date != "2024-01-01" {
		t.Fatalf("unexpected achievements %+v", out.Achievements)
	}
	if len(observed.FilterMessage("yearly report computed").All()) != 1 {
		t.Fatalf("expected a debug entry for the report")
	}

	if _, err := uc.YearlyReport(context.Background(), dto.YearlyInput{Year: -1}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid year, got %v", err)
	}
}

func TestYearlyReportRejectsMalformedHistory(t *testing.T) {
	t.Parallel()
	reader := &fakeHistory{history: practice.History{"2024-13-40": {MeditationSeconds: 60}}}
	uc := usecase.NewInteractor(service.NewStatsService(reader, fixedClock(), 20, domain.RangeWeek, nil))
	if _, err := uc.YearlyReport(context.Background(), dto.YearlyInput{Year: 2024}); !errors.Is(err, apperrors.ErrInvalidDate) {
		t.Fatalf("expected invalid date, got %v", err)
	}
}
