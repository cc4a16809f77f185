package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/honphysics/portal/internal/cli"
	"github.com/honphysics/portal/internal/config"
	"github.com/honphysics/portal/internal/db"
	"github.com/honphysics/portal/internal/launcher"
	"github.com/honphysics/portal/internal/repository"
	"github.com/honphysics/portal/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	courseRepo := repository.NewSQLiteCourseRepo(database)
	toolRepo := repository.NewSQLiteToolRepo(database)
	unlockRepo := repository.NewSQLiteUnlockRepo(database)
	visitRepo := repository.NewSQLiteVisitRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewUnitOfWork(database)

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.LogEvents {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	app := &cli.App{
		Courses: service.NewCourseService(courseRepo, unlockRepo, uow, observer),
		Tools:   service.NewToolService(toolRepo, unlockRepo),
		Lessons: service.NewLessonService(cfg.ContentDir, courseRepo, unlockRepo, visitRepo, observer),

		Classifier:   cfg.Classifier(),
		PageURL:      cfg.PageURL,
		Opener:       launcher.BrowserOpener{Disabled: cfg.NoBrowser},
		CellWidthPx:  float64(cfg.Terminal.CellWidthPx),
		CellHeightPx: float64(cfg.Terminal.CellHeightPx),
		Debounce:     time.Duration(cfg.Watch.DebounceMs) * time.Millisecond,
		HistoryPath:  cfg.HistoryPath,
	}

	// Detect interactive terminal for the TUI entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
