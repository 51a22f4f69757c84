package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/karankrtech-08/Nova-Task-Pro/internal/config"
	"github.com/karankrtech-08/Nova-Task-Pro/internal/storage"
	"github.com/karankrtech-08/Nova-Task-Pro/internal/store"
	"github.com/karankrtech-08/Nova-Task-Pro/internal/task"
	"github.com/karankrtech-08/Nova-Task-Pro/internal/ui"
)

func main() {
	configPath := config.ResolveConfigPath()
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := newLogger(cfg.LogPath)

	db, err := storage.Open(cfg.DBPath, log)
	if err != nil {
		fmt.Printf("failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	st := store.Open(db, log, task.Settings{
		CurrentView: task.View(cfg.DefaultView),
		CurrentSort: task.SortKey(cfg.DefaultSort),
		Theme:       cfg.Theme,
	})

	log.WithField("config", configPath).Info("novatask started")
	if err := ui.Run(st, cfg); err != nil {
		fmt.Printf("error running program: %v\n", err)
		os.Exit(1)
	}
}

// newLogger writes to the configured log file; stderr would corrupt
// the TUI, so an unopenable file silences logging instead.
func newLogger(path string) *logrus.Logger {
	log := logrus.New()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return log
	}
	log.SetOutput(f)
	return log
}
