package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/planpush/planpush/internal/azdo"
	"github.com/planpush/planpush/internal/cli"
	"github.com/planpush/planpush/internal/config"
	"github.com/planpush/planpush/internal/db"
	"github.com/planpush/planpush/internal/intelligence"
	"github.com/planpush/planpush/internal/llm"
	"github.com/planpush/planpush/internal/repository"
	"github.com/planpush/planpush/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.planpush/planpush.db
	dbPath := os.Getenv("PLANPUSH_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".planpush", "planpush.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	uow := db.NewSQLiteUnitOfWork(database)
	profileRepo := repository.NewSQLiteProfileRepo(database, uow)
	mappingRepo := repository.NewSQLiteTypeMappingRepo(database)
	logRepo := repository.NewSQLitePublishLogRepo(database)

	// Settings file feeds run defaults; a missing file is fine.
	settingsPath, err := config.DefaultSettingsPath()
	if err != nil {
		return err
	}
	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	resolver := config.NewResolver(repository.NewSQLiteProfileRepo(database, uow), settings)

	var remoteObserver azdo.Observer = azdo.NoopObserver{}
	var useCaseObserver service.UseCaseObserver
	if os.Getenv("PLANPUSH_LOG_CALLS") != "" {
		remoteObserver = azdo.NewLogObserver(os.Stderr)
		useCaseObserver = service.NewLogUseCaseObserver(os.Stderr)
	}

	creator := azdo.NewClient(remoteObserver)
	mappingSvc := service.NewMappingService(mappingRepo)

	app := &cli.App{
		Profiles: service.NewProfileService(profileRepo),
		Mappings: mappingSvc,
		Publish:  service.NewPublishService(resolver, creator, mappingSvc, logRepo, useCaseObserver),
		History:  service.NewHistoryService(logRepo),
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	// Wire intelligence services (only when the LLM is enabled).
	llmCfg := llm.LoadConfig()
	if llmCfg.Enabled {
		var observer llm.Observer = llm.NoopObserver{}
		if llmCfg.LogCalls {
			observer = llm.NewLogObserver(os.Stderr)
		}
		llmClient := llm.NewOllamaClient(llmCfg, observer)

		app.Draft = intelligence.NewPlanDraftService(llmClient, observer)
		app.Steps = intelligence.NewStepsDraftService(llmClient, observer)
		app.Help = intelligence.NewHelpService(llmClient, observer)
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
