package usecase

import (
	"context"
	"time"

	"mindful/internal/modules/habit/domain"
	"mindful/internal/modules/habit/dto"
	habitin "mindful/internal/modules/habit/port/in"
	"mindful/internal/modules/habit/service"
)

type Interactor struct {
	svc *service.HabitService
}

func NewInteractor(svc *service.HabitService) habitin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Analyze(ctx context.Context, input dto.AnalyzeInput) (dto.ReportOutput, error) {
	report, logged, err := i.svc.Analyze(ctx, input.Estimate)
	if err != nil {
		return dto.ReportOutput{}, err
	}
	out := dto.ReportOutput{
		LoggedSessions: logged,
		MostPreferred:  string(report.TimeOfDay.MostPreferred),
		Consistency: dto.ConsistencyOutput{
			AverageGap:         report.Consistency.AverageGap,
			LongestGap:         report.Consistency.LongestGap,
			Regularity:         report.Consistency.Regularity,
			PreferredFrequency: string(report.Consistency.PreferredFrequency),
			Trend:              string(report.Consistency.Trend),
		},
		Durations: dto.DurationOutput{
			Sessions:          report.Durations.Sessions,
			AverageSeconds:    report.Durations.AverageSeconds,
			MinSeconds:        report.Durations.MinSeconds,
			MaxSeconds:        report.Durations.MaxSeconds,
			StdDevSeconds:     report.Durations.StdDevSeconds,
			Short:             report.Durations.Short,
			Medium:            report.Durations.Medium,
			Long:              report.Durations.Long,
			PreferredDuration: string(report.Durations.PreferredDuration),
			Trend:             string(report.Durations.Trend),
		},
		Balance: dto.BalanceOutput{
			MeditationSeconds: report.Balance.MeditationSeconds,
			BreathingSeconds:  report.Balance.BreathingSeconds,
			MeditationPercent: report.Balance.MeditationPercent,
			BreathingPercent:  report.Balance.BreathingPercent,
			Score:             report.Balance.Score,
			PreferredType:     string(report.Balance.PreferredType),
			CrossPracticeDays: report.Balance.CrossPracticeDays,
		},
		Weekly: toWeekly(report.Weekly),
		Insights: dto.InsightsOutput{
			Personality:     report.Insights.Personality,
			Strengths:       report.Insights.Strengths,
			Improvements:    report.Insights.Improvements,
			Recommendations: report.Insights.Recommendations,
			HabitScore:      report.Insights.HabitScore,
			Motivation:      string(report.Insights.Motivation),
		},
	}
	for _, share := range report.TimeOfDay.Slots {
		out.TimeOfDay = append(out.TimeOfDay, dto.SlotShareOutput{Slot: string(share.Slot), Sessions: share.Sessions, Percent: share.Percent})
	}
	return out, nil
}

func toWeekly(w domain.WeeklyPattern) dto.WeeklyOutput {
	out := dto.WeeklyOutput{Trend: string(w.Trend)}
	// Monday first.
	for i := 1; i <= 7; i++ {
		wd := time.Weekday(i % 7)
		out.DayOfWeek = append(out.DayOfWeek, dto.CountOutput{Label: wd.String()[:3], ActiveDays: w.DayOfWeek[wd]})
	}
	for _, week := range w.Weeks {
		out.Weeks = append(out.Weeks, dto.CountOutput{Label: week.WeekStart, ActiveDays: week.ActiveDays})
	}
	for _, m := range w.Months {
		out.Months = append(out.Months, dto.CountOutput{Label: m.Month, ActiveDays: m.ActiveDays})
	}
	for s := domain.Spring; s <= domain.Winter; s++ {
		out.Seasons = append(out.Seasons, dto.CountOutput{Label: s.String(), ActiveDays: w.Seasons[s]})
	}
	return out
}
