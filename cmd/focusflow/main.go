package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"

	"focusflow/internal/alert"
	"focusflow/internal/assist"
	"focusflow/internal/config"
	"focusflow/internal/logging"
	"focusflow/internal/notify"
	"focusflow/internal/planner"
	"focusflow/internal/storage"
	"focusflow/internal/update"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "focusflow failed: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var stateDir string

	root := &cobra.Command{
		Use:           "focusflow",
		Short:         "Terminal day planner with habits, points, and interval alerts",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(stateDir)
		},
	}
	root.PersistentFlags().StringVar(&stateDir, "state-dir", config.DefaultStateDir(), "directory for config, database, and logs")

	migrate := &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply or roll back the database schema",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(stateDir, args[0])
		},
	}
	root.AddCommand(migrate)

	return root
}

func runApp(stateDir string) error {
	cfg, err := config.Load(stateDir)
	if err != nil {
		return err
	}
	cfg = config.FromEnv(cfg)

	log, err := logging.New(stateDir)
	if err != nil {
		return err
	}
	defer log.Close()

	db, err := sql.Open("sqlite3", cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if err := storage.MigrateUp(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	repo, err := storage.NewSQLiteRepository(db)
	if err != nil {
		return err
	}

	var notifier notify.Notifier = notify.Noop{}
	var speaker notify.Speaker = notify.Noop{}
	system := notify.NewSystem()
	if cfg.DesktopNotifications {
		notifier = system
	}
	if cfg.SpeechEnabled {
		speaker = system
	}

	client := assist.NewClient(cfg.Assist.BaseURL, cfg.Assist.APIKey)
	if cfg.Assist.Model != "" {
		client.Model = cfg.Assist.Model
	}

	svc := planner.NewService(repo, notifier, speaker, client, log)
	engine := alert.NewEngine(nil, notifier, speaker)
	engine.Restore(svc.LoadAlertSettings(context.Background()))
	defer engine.Stop()

	program := tea.NewProgram(update.NewModel(svc, engine, cfg))
	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}

func runMigrate(stateDir, direction string) error {
	cfg, err := config.Load(stateDir)
	if err != nil {
		return err
	}
	cfg = config.FromEnv(cfg)

	db, err := sql.Open("sqlite3", cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	switch direction {
	case "up":
		return storage.MigrateUp(db)
	case "down":
		return storage.MigrateDown(db)
	default:
		return fmt.Errorf("unknown migrate direction: %s", direction)
	}
}
