package usecase

import (
	"context"

	practice "mindful/internal/modules/practice/domain"
	"mindful/internal/modules/stats/domain"
	"mindful/internal/modules/stats/dto"
	statsin "mindful/internal/modules/stats/port/in"
	"mindful/internal/modules/stats/service"
)

type Interactor struct {
	svc *service.StatsService
}

func NewInteractor(svc *service.StatsService) statsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Summarize(ctx context.Context, input dto.SummaryInput) (dto.SummaryOutput, error) {
	summary, err := i.svc.Summarize(ctx, input.Range, input.GoalMinutes)
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	out := dto.SummaryOutput{
		Range:                    string(summary.Range),
		Start:                    practice.FormatDate(summary.Start),
		End:                      practice.FormatDate(summary.End),
		GoalMinutes:              summary.GoalMinutes,
		TotalMeditationSeconds:   summary.TotalMeditationSeconds,
		TotalBreathingSessions:   summary.TotalBreathingSessions,
		TotalBreathingSeconds:    summary.TotalBreathingSeconds,
		TotalMinutes:             summary.TotalMinutes,
		ActiveDays:               summary.ActiveDays,
		TotalDays:                summary.TotalDays,
		GoalDays:                 summary.GoalDays,
		AverageMeditationSeconds: summary.AverageMeditationSeconds,
		AverageBreathingSessions: summary.AverageBreathingSessions,
		GoalAchievementRate:      summary.GoalAchievementRate,
		BestDay:                  toPointPtr(summary.BestDay),
		WorstDay:                 toPointPtr(summary.WorstDay),
		Trend:                    make([]dto.DayPointOutput, 0, len(summary.Trend)),
	}
	for _, p := range summary.Trend {
		out.Trend = append(out.Trend, toPoint(p))
	}
	return out, nil
}

func (i *Interactor) YearlyReport(ctx context.Context, input dto.YearlyInput) (dto.YearlyOutput, error) {
	report, err := i.svc.YearlyReport(ctx, input.Year, input.GoalMinutes)
	if err != nil {
		return dto.YearlyOutput{}, err
	}
	out := dto.YearlyOutput{
		Year:                     report.Year,
		GoalMinutes:              report.GoalMinutes,
		TotalMeditationSeconds:   report.TotalMeditationSeconds,
		TotalBreathingSessions:   report.TotalBreathingSessions,
		TotalBreathingSeconds:    report.TotalBreathingSeconds,
		TotalMinutes:             report.TotalMinutes,
		ActiveDays:               report.ActiveDays,
		TotalDays:                report.TotalDays,
		GoalDays:                 report.GoalDays,
		AverageMeditationSeconds: report.AverageMeditationSeconds,
		AverageBreathingSessions: report.AverageBreathingSessions,
		GoalAchievementRate:      report.GoalAchievementRate,
		LongestStreak:            report.LongestStreak,
		CurrentStreak:            report.CurrentStreak,
		BestMonth:                toMonthPtr(report.BestMonth),
		WorstMonth:               toMonthPtr(report.WorstMonth),
		Months:                   make([]dto.MonthOutput, 0, len(report.Months)),
		Progress:                 make([]dto.ProgressOutput, 0, len(report.Progress)),
		Achievements:             make([]dto.AchievementOutput, 0, len(report.Achievements)),
	}
	for _, m := range report.Months {
		out.Months = append(out.Months, toMonth(m))
	}
	for _, p := range report.Progress {
		out.Progress = append(out.Progress, dto.ProgressOutput{
			Date:                        practice.FormatDate(p.Date),
			CumulativeMeditationSeconds: p.CumulativeMeditationSeconds,
			CumulativeMinutes:           p.CumulativeMinutes,
			CumulativeActiveDays:        p.CumulativeActiveDays,
		})
	}
	for _, a := range report.Achievements {
		out.Achievements = append(out.Achievements, dto.AchievementOutput{
			ID:          a.ID,
			Type:        string(a.Type),
			Title:       a.Title,
			Description: a.Description,
			Icon:        a.Icon,
			Date:        practice.FormatDate(a.Date),
		})
	}
	return out, nil
}

func toPoint(p domain.DayPoint) dto.DayPointOutput {
	return dto.DayPointOutput{
		Date:              practice.FormatDate(p.Date),
		MeditationSeconds: p.MeditationSeconds,
		BreathingSessions: p.BreathingSessions,
		BreathingSeconds:  p.BreathingSeconds,
		TotalMinutes:      p.TotalMinutes,
		Active:            p.Active,
		GoalMet:           p.GoalMet,
	}
}

func toPointPtr(p *domain.DayPoint) *dto.DayPointOutput {
	if p == nil {
		return nil
	}
	out := toPoint(*p)
	return &out
}

func toMonth(m domain.MonthSummary) dto.MonthOutput {
	return dto.MonthOutput{
		Month:               m.Month.String(),
		MeditationSeconds:   m.MeditationSeconds,
		BreathingSessions:   m.BreathingSessions,
		TotalMinutes:        m.TotalMinutes,
		ActiveDays:          m.ActiveDays,
		DaysElapsed:         m.DaysElapsed,
		GoalDays:            m.GoalDays,
		GoalAchievementRate: m.GoalAchievementRate,
		Score:               m.Score,
	}
}

func toMonthPtr(m *domain.MonthSummary) *dto.MonthOutput {
	if m == nil {
		return nil
	}
	out := toMonth(*m)
	return &out
}
