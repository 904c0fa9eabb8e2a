package bootstrap

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	habitinadapter "mindful/internal/modules/habit/adapter/in"
	habitoutadapter "mindful/internal/modules/habit/adapter/out"
	habitservice "mindful/internal/modules/habit/service"
	habitusecase "mindful/internal/modules/habit/usecase"
	practiceinadapter "mindful/internal/modules/practice/adapter/in"
	practiceoutadapter "mindful/internal/modules/practice/adapter/out"
	practiceservice "mindful/internal/modules/practice/service"
	practiceusecase "mindful/internal/modules/practice/usecase"
	statsinadapter "mindful/internal/modules/stats/adapter/in"
	statsoutadapter "mindful/internal/modules/stats/adapter/out"
	statsdomain "mindful/internal/modules/stats/domain"
	statsservice "mindful/internal/modules/stats/service"
	statsusecase "mindful/internal/modules/stats/usecase"
	techniqueinadapter "mindful/internal/modules/technique/adapter/in"
	techniqueusecase "mindful/internal/modules/technique/usecase"
	"mindful/internal/platform/clock"
	"mindful/internal/platform/config"
	"mindful/internal/platform/id"
	"mindful/internal/platform/logging"
	"mindful/internal/platform/tx"
	uiapp "mindful/internal/ui/app"
)

type App struct {
	Config       config.Config
	Logger       *logging.Logger
	TechniqueCLI techniqueinadapter.CLIHandler
	PracticeCLI  practiceinadapter.CLIHandler
	StatsCLI     statsinadapter.CLIHandler
	HabitCLI     habitinadapter.CLIHandler

	sessionLog *practiceoutadapter.SQLiteSessionLog
}

func New(cfg config.Config) (*App, error) {
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("new logger: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	defaultRange, err := statsdomain.ParseRange(cfg.DefaultRange)
	if err != nil {
		return nil, fmt.Errorf("default_range: %w", err)
	}
	clk := clock.SystemClock{Location: loc}
	ids := id.UUID{}

	sessionLog, err := practiceoutadapter.NewSQLiteSessionLog(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new session log: %w", err)
	}
	practiceUC := practiceusecase.NewInteractor(
		practiceservice.NewPracticeService(
			clk,
			ids,
			practiceoutadapter.NewVaultRecordStore(cfg.VaultPath, logger),
			sessionLog,
			tx.NewSerial(),
			logger,
		),
		practiceoutadapter.NewFileActiveSessionStore(cfg.VaultPath),
	)

	statsUC := statsusecase.NewInteractor(statsservice.NewStatsService(
		statsoutadapter.NewPracticeHistoryAdapter(practiceUC),
		clk,
		cfg.DailyGoalMinutes,
		defaultRange,
		logger,
	))

	habitSource := habitoutadapter.NewPracticeAdapter(practiceUC)
	habitUC := habitusecase.NewInteractor(habitservice.NewHabitService(habitSource, habitSource, logger))

	logger.Debug(context.Background(), "app wired",
		zap.String("vault", cfg.VaultPath),
		zap.String("timezone", loc.String()),
		zap.Int("daily_goal_minutes", cfg.DailyGoalMinutes),
	)

	return &App{
		Config:       cfg,
		Logger:       logger,
		TechniqueCLI: techniqueinadapter.NewCLIHandler(techniqueusecase.NewInteractor()),
		PracticeCLI:  practiceinadapter.NewCLIHandler(practiceUC),
		StatsCLI:     statsinadapter.NewCLIHandler(statsUC),
		HabitCLI:     habitinadapter.NewCLIHandler(habitUC),
		sessionLog:   sessionLog,
	}, nil
}

// Close releases the session log and flushes the logger.
func (a *App) Close() error {
	var errs []error
	if a.sessionLog != nil {
		errs = append(errs, a.sessionLog.Close())
	}
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
	return errors.Join(errs...)
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.PracticeCLI, app.StatsCLI, app.HabitCLI, uiapp.Options{
		Range:       app.Config.DefaultRange,
		GoalMinutes: app.Config.DailyGoalMinutes,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
