package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"mindful/internal/bootstrap"
	"mindful/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var vaultPath string

	root := &cobra.Command{
		Use:           "mindful",
		Short:         "Meditation and breathing practice tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&vaultPath, "vault", ".", "practice vault path")

	root.AddCommand(newTUICmd(&vaultPath))
	root.AddCommand(newTechniqueCmd(&vaultPath))
	root.AddCommand(newStartCmd(&vaultPath))
	root.AddCommand(newEndCmd(&vaultPath))
	root.AddCommand(newStatusCmd(&vaultPath))
	root.AddCommand(newLogCmd(&vaultPath))
	root.AddCommand(newDayCmd(&vaultPath))
	root.AddCommand(newHistoryCmd(&vaultPath))
	root.AddCommand(newSessionsCmd(&vaultPath))
	root.AddCommand(newStatsCmd(&vaultPath))
	root.AddCommand(newYearCmd(&vaultPath))
	root.AddCommand(newHabitsCmd(&vaultPath))
	return root
}

// withApp wires the application for one command and releases it afterwards.
func withApp(vaultPath string, run func(app *bootstrap.App) error) (err error) {
	cfg, err := config.New(vaultPath)
	if err != nil {
		return err
	}
	app, err := bootstrap.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := app.Close(); err == nil {
			err = closeErr
		}
	}()
	return run(app)
}

func newTUICmd(vaultPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the practice dashboard",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withApp(*vaultPath, bootstrap.RunTUI)
		},
	}
}

func newTechniqueCmd(vaultPath *string) *cobra.Command {
	technique := &cobra.Command{Use: "technique", Short: "Breathing techniques"}
	technique.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List built-in breathing techniques",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*vaultPath, func(app *bootstrap.App) error {
				items, err := app.TechniqueCLI.List(context.Background())
				if err != nil {
					return err
				}
				for _, t := range items {
					marker := ""
					if t.Default {
						marker = " (default)"
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s%s\tcycle=%ds\tsession=%ds\t%s\n", t.ID, t.Name, marker, t.CycleSeconds, t.SessionSeconds, t.Pattern)
				}
				return nil
			})
		},
	})
	technique.AddCommand(&cobra.Command{
		Use:   "show <name>",
		Short: "Show one technique",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*vaultPath, func(app *bootstrap.App) error {
				t, err := app.TechniqueCLI.Get(context.Background(), args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "id: %s\nname: %s\npattern: %s\ncycle: %ds\nsession: %ds (%d cycles)\n", t.ID, t.Name, t.Pattern, t.CycleSeconds, t.SessionSeconds, t.CyclesInSession)
				return nil
			})
		},
	})
	return technique
}

func newStartCmd(vaultPath *string) *cobra.Command {
	var technique, intention string
	start := &cobra.Command{
		Use:       "start <meditation|breathing>",
		Short:     "Start a timed practice session",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"meditation", "breathing"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*vaultPath, func(app *bootstrap.App) error {
				out, err := app.PracticeCLI.Start(context.Background(), args[0], technique, intention)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session started: %s kind=%s", out.SessionID, out.Kind)
				if out.Technique != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), " technique=%s", out.Technique)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), " at=%s\n", out.StartedAt.Format(time.RFC3339))
				return nil
			})
		},
	}
	start.Flags().StringVar(&technique, "technique", "", "breathing technique (default 4-7-8)")
	start.Flags().StringVar(&intention, "intention", "", "session intention")
	return start
}

func newEndCmd(vaultPath *string) *cobra.Command {
	var sessionID string
	end := &cobra.Command{
		Use:   "end",
		Short: "End the active session and record it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*vaultPath, func(app *bootstrap.App) error {
				out, err := app.PracticeCLI.End(context.Background(), sessionID)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session ended: %s kind=%s duration=%s day=%s total=%dmin note=%s\n",
					out.SessionID, out.Kind, time.Duration(out.DurationSeconds)*time.Second, out.Day.Date, out.Day.TotalMinutes, out.Day.NotePath)
				return nil
			})
		},
	}
	end.Flags().StringVar(&sessionID, "session-id", "", "optional session id (defaults to active session)")
	return end
}

func newStatusCmd(vaultPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the active session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*vaultPath, func(app *bootstrap.App) error {
				out, err := app.PracticeCLI.GetActive(context.Background())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "active: %s kind=%s technique=%s since=%s intention=%q\n",
					out.SessionID, out.Kind, out.Technique, out.StartedAt.Format(time.RFC3339), out.Intention)
				return nil
			})
		},
	}
}

func newLogCmd(vaultPath *string) *cobra.Command {
	logCmd := &cobra.Command{Use: "log", Short: "Record practice done without a timer"}

	var medDate string
	var minutes, seconds int
	meditation := &cobra.Command{
		Use:   "meditation --minutes <n>",
		Short: "Add meditation time to a day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			total := minutes*60 + seconds
			if total <= 0 {
				return fmt.Errorf("--minutes or --seconds is required")
			}
			return withApp(*vaultPath, func(app *bootstrap.App) error {
				day, err := app.PracticeCLI.LogMeditation(context.Background(), medDate, total)
				if err != nil {
					return err
				}
				printDay(cmd.OutOrStdout(), day.Date, day.MeditationSeconds, day.BreathingSessions, day.TotalMinutes, day.NotePath)
				return nil
			})
		},
	}
	meditation.Flags().StringVar(&medDate, "date", "", "day as YYYY-MM-DD (default today)")
	meditation.Flags().IntVar(&minutes, "minutes", 0, "minutes meditated")
	meditation.Flags().IntVar(&seconds, "seconds", 0, "additional seconds meditated")

	var breathDate, technique string
	var count int
	breathing := &cobra.Command{
		Use:   "breathing --count <n>",
		Short: "Add breathing sessions to a day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count <= 0 {
				return fmt.Errorf("--count must be positive")
			}
			return withApp(*vaultPath, func(app *bootstrap.App) error {
				day, err := app.PracticeCLI.LogBreathing(context.Background(), breathDate, technique, count)
				if err != nil {
					return err
				}
				printDay(cmd.OutOrStdout(), day.Date, day.MeditationSeconds, day.BreathingSessions, day.TotalMinutes, day.NotePath)
				return nil
			})
		},
	}
	breathing.Flags().StringVar(&breathDate, "date", "", "day as YYYY-MM-DD (default today)")
	breathing.Flags().StringVar(&technique, "technique", "", "breathing technique (default 4-7-8)")
	breathing.Flags().IntVar(&count, "count", 1, "number of sessions")

	logCmd.AddCommand(meditation, breathing)
	return logCmd
}

func newDayCmd(vaultPath *string) *cobra.Command {
	var date string
	day := &cobra.Command{
		Use:   "day",
		Short: "Show one day of practice",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*vaultPath, func(app *bootstrap.App) error {
				out, err := app.PracticeCLI.GetDay(context.Background(), date)
				if err != nil {
					return err
				}
				printDay(cmd.OutOrStdout(), out.Date, out.MeditationSeconds, out.BreathingSessions, out.TotalMinutes, out.NotePath)
				for id, n := range out.TechniqueUsage {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %s x%d\n", id, n)
				}
				return nil
			})
		},
	}
	day.Flags().StringVar(&date, "date", "", "day as YYYY-MM-DD (default today)")
	return day
}

func newHistoryCmd(vaultPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List every recorded day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*vaultPath, func(app *bootstrap.App) error {
				days, err := app.PracticeCLI.History(context.Background())
				if err != nil {
					return err
				}
				if len(days) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no practice recorded")
					return nil
				}
				for _, d := range days {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\tmeditation=%ds\tbreathing=%d\ttotal=%dmin\n", d.Date, d.MeditationSeconds, d.BreathingSessions, d.TotalMinutes)
				}
				return nil
			})
		},
	}
}

func newSessionsCmd(vaultPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List timed sessions from the session log",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*vaultPath, func(app *bootstrap.App) error {
				items, err := app.PracticeCLI.Sessions(context.Background())
				if err != nil {
					return err
				}
				if len(items) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions logged")
					return nil
				}
				for _, s := range items {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%ds\t%s\n", s.StartedAt.Format(time.RFC3339), s.Kind, s.Technique, s.DurationSeconds, s.ID)
				}
				return nil
			})
		},
	}
}

func newStatsCmd(vaultPath *string) *cobra.Command {
	var rangeName string
	var goal int
	stats := &cobra.Command{
		Use:   "stats",
		Short: "Summarize practice over a range",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*vaultPath, func(app *bootstrap.App) error {
				s, err := app.StatsCLI.Summarize(context.Background(), rangeName, goal)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "range: %s (%s .. %s)\n", s.Range, s.Start, s.End)
				_, _ = fmt.Fprintf(w, "meditation: %ds\nbreathing: %d sessions (%ds)\ntotal: %d min\n", s.TotalMeditationSeconds, s.TotalBreathingSessions, s.TotalBreathingSeconds, s.TotalMinutes)
				_, _ = fmt.Fprintf(w, "active days: %d/%d\n", s.ActiveDays, s.TotalDays)
				_, _ = fmt.Fprintf(w, "average per active day: %.0fs meditation, %.1f breathing sessions\n", s.AverageMeditationSeconds, s.AverageBreathingSessions)
				_, _ = fmt.Fprintf(w, "goal %d min: %d%% (%d days)\n", s.GoalMinutes, s.GoalAchievementRate, s.GoalDays)
				if s.BestDay != nil {
					_, _ = fmt.Fprintf(w, "best day: %s %d min\n", s.BestDay.Date, s.BestDay.TotalMinutes)
				}
				if s.WorstDay != nil {
					_, _ = fmt.Fprintf(w, "lightest day: %s %d min\n", s.WorstDay.Date, s.WorstDay.TotalMinutes)
				}
				return nil
			})
		},
	}
	stats.Flags().StringVar(&rangeName, "range", "", "today|week|month|quarter|year|all (default from config)")
	stats.Flags().IntVar(&goal, "goal", 0, "daily goal in minutes (default from config)")
	return stats
}

func newYearCmd(vaultPath *string) *cobra.Command {
	var year, goal int
	yearCmd := &cobra.Command{
		Use:   "year",
		Short: "Yearly report with streaks and achievements",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*vaultPath, func(app *bootstrap.App) error {
				r, err := app.StatsCLI.YearlyReport(context.Background(), year, goal)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "year: %d\ntotal: %d min over %d/%d days\n", r.Year, r.TotalMinutes, r.ActiveDays, r.TotalDays)
				_, _ = fmt.Fprintf(w, "streak: current=%d longest=%d\ngoal %d min: %d%%\n", r.CurrentStreak, r.LongestStreak, r.GoalMinutes, r.GoalAchievementRate)
				if r.BestMonth != nil {
					_, _ = fmt.Fprintf(w, "best month: %s\n", r.BestMonth.Month)
				}
				if r.WorstMonth != nil {
					_, _ = fmt.Fprintf(w, "quietest month: %s\n", r.WorstMonth.Month)
				}
				for _, m := range r.Months {
					_, _ = fmt.Fprintf(w, "  %-9s active=%d/%d minutes=%d goal=%d%%\n", m.Month, m.ActiveDays, m.DaysElapsed, m.TotalMinutes, m.GoalAchievementRate)
				}
				for _, a := range r.Achievements {
					_, _ = fmt.Fprintf(w, "%s %s (%s) %s\n", a.Icon, a.Title, a.Date, a.Description)
				}
				return nil
			})
		},
	}
	yearCmd.Flags().IntVar(&year, "year", 0, "calendar year (default current year)")
	yearCmd.Flags().IntVar(&goal, "goal", 0, "daily goal in minutes (default from config)")
	return yearCmd
}

func newHabitsCmd(vaultPath *string) *cobra.Command {
	var estimate bool
	habits := &cobra.Command{
		Use:   "habits",
		Short: "Analyze practice habits",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*vaultPath, func(app *bootstrap.App) error {
				r, err := app.HabitCLI.Analyze(context.Background(), estimate)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				in := r.Insights
				_, _ = fmt.Fprintf(w, "%s (score %d, motivation %s)\n", in.Personality, in.HabitScore, in.Motivation)
				_, _ = fmt.Fprintf(w, "preferred time: %s\n", orNone(r.MostPreferred))
				_, _ = fmt.Fprintf(w, "rhythm: %s avg gap %.1f days, longest %d, regularity %d, %s\n",
					r.Consistency.PreferredFrequency, r.Consistency.AverageGap, r.Consistency.LongestGap, r.Consistency.Regularity, r.Consistency.Trend)
				_, _ = fmt.Fprintf(w, "sessions: %d %s avg=%.0fs min=%ds max=%ds sd=%.0fs, %s\n",
					r.Durations.Sessions, r.Durations.PreferredDuration, r.Durations.AverageSeconds, r.Durations.MinSeconds, r.Durations.MaxSeconds, r.Durations.StdDevSeconds, r.Durations.Trend)
				_, _ = fmt.Fprintf(w, "balance: %.1f%% meditation / %.1f%% breathing, score %d, %s, %d mixed days\n",
					r.Balance.MeditationPercent, r.Balance.BreathingPercent, r.Balance.Score, r.Balance.PreferredType, r.Balance.CrossPracticeDays)
				printList(w, "strengths", in.Strengths)
				printList(w, "improve", in.Improvements)
				printList(w, "try", in.Recommendations)
				return nil
			})
		},
	}
	habits.Flags().BoolVar(&estimate, "estimate", false, "ignore the session log and estimate from daily totals")
	return habits
}

func printDay(w io.Writer, date string, meditationSeconds, breathingSessions, totalMinutes int, notePath string) {
	_, _ = fmt.Fprintf(w, "%s meditation=%ds breathing=%d total=%dmin note=%s\n", date, meditationSeconds, breathingSessions, totalMinutes, notePath)
}

func printList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	_, _ = fmt.Fprintf(w, "%s:\n", title)
	for _, item := range items {
		_, _ = fmt.Fprintf(w, "  - %s\n", item)
	}
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "none"
	}
	return s
}
