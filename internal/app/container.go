// Package app wires infrastructure adapters into the application services.
package app

import (
	"context"
	"os"

	"github.com/doeshing/clicra-go/internal/domain"
	"github.com/doeshing/clicra-go/internal/infrastructure/ai"
	"github.com/doeshing/clicra-go/internal/infrastructure/config"
	"github.com/doeshing/clicra-go/internal/infrastructure/history"
	"github.com/doeshing/clicra-go/internal/infrastructure/runner"
	"github.com/doeshing/clicra-go/internal/pkg/logger"
	"github.com/doeshing/clicra-go/internal/ports"
	"github.com/doeshing/clicra-go/internal/services"
)

// Container aggregates the application services and shared adapters. The CLI
// layer attaches terminal-bound collaborators (renderer, clipboard) itself.
type Container struct {
	Craft   *services.CraftService
	Doctor  *services.DoctorService
	History ports.HistoryStore
	Logger  ports.Logger
}

// BuildContainer constructs the dependency graph. A broken config file does
// not abort construction; the services surface it when they load the config,
// which keeps `doctor` runnable for troubleshooting.
func BuildContainer(ctx context.Context, verbose bool) *Container {
	log := logger.NewStd(verbose)
	loader := config.NewFileLoader("")

	cfg, err := loader.Load(ctx)
	if err != nil {
		log.Warn("config load failed, using defaults for wiring", map[string]interface{}{"error": err.Error()})
		cfg = domain.Config{}
		cfg.Execution.Shell = "bash"
	}

	var store ports.HistoryStore
	if !cfg.History.Disabled {
		s, err := history.NewSQLiteStore(history.DefaultPath())
		if err != nil {
			log.Warn("history store unavailable", map[string]interface{}{"error": err.Error()})
		} else {
			store = s
		}
	}

	run := runner.NewShellRunner(cfg.Execution.Shell, os.Stdout, os.Stderr)
	chat := ai.NewClient()

	craft := &services.CraftService{
		ConfigProvider: loader,
		Chat:           chat,
		Runner:         run,
		History:        store,
		Logger:         log,
	}
	doctor := &services.DoctorService{
		ConfigProvider: loader,
		History:        store,
	}

	return &Container{
		Craft:   craft,
		Doctor:  doctor,
		History: store,
		Logger:  log,
	}
}
