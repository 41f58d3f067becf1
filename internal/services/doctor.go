package services

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/doeshing/clicra-go/internal/domain"
	"github.com/doeshing/clicra-go/internal/ports"
)

// DoctorService runs environment diagnostics: everything the pipeline needs
// before a task can succeed.
type DoctorService struct {
	ConfigProvider ports.ConfigProvider
	Clipboard      ports.Clipboard
	History        ports.HistoryStore
}

// Run executes checks and returns a report.
func (s *DoctorService) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file",
		fmt.Sprintf("format %s, %d models", cfg.ConfigFormatVersion, len(cfg.Models))))

	if _, err := exec.LookPath(cfg.Execution.Shell); err != nil {
		checks = append(checks, fail("Shell interpreter", fmt.Sprintf("%s not found in PATH", cfg.Execution.Shell)))
	} else {
		checks = append(checks, ok("Shell interpreter", cfg.Execution.Shell))
	}

	checks = append(checks, apiKeyCheck(cfg.Models))

	if s.Clipboard != nil && s.Clipboard.Enabled() {
		checks = append(checks, ok("Clipboard", "supported on this platform"))
	} else {
		checks = append(checks, warn("Clipboard", "unsupported; generated commands will only be printed"))
	}

	if cfg.History.Disabled {
		checks = append(checks, warn("History", "disabled in config"))
	} else if s.History != nil {
		checks = append(checks, ok("History", s.History.Path()))
	} else {
		checks = append(checks, warn("History", "store unavailable"))
	}

	return domain.HealthReport{Checks: checks}, nil
}

func apiKeyCheck(models []domain.ModelDefinition) domain.HealthCheck {
	if len(models) == 0 {
		return warn("API keys", "no models configured")
	}
	for _, model := range models {
		if model.AuthEnvVar != "" && os.Getenv(model.AuthEnvVar) == "" {
			return warn("API keys", fmt.Sprintf("%s unset (model %s)", model.AuthEnvVar, model.Name))
		}
	}
	return ok("API keys", "present for all configured models")
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
