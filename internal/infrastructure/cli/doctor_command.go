package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/doeshing/clicra-go/internal/app"
	"github.com/doeshing/clicra-go/internal/domain"
)

func newDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the environment for problems",
		RunE: func(cmd *cobra.Command, args []string) error {
			container := app.BuildContainer(cmd.Context(), false)
			container.Doctor.Clipboard = NewClipboard()

			report, _ := container.Doctor.Run(cmd.Context())
			failures := 0
			for _, check := range report.Checks {
				if check.Status == domain.HealthError {
					failures++
				}
				fmt.Fprintf(os.Stdout, "%s %s: %s\n", statusTag(check.Status), check.Name, check.Details)
			}
			if failures > 0 {
				return fmt.Errorf("%d check(s) failed", failures)
			}
			return nil
		},
	}
}

func statusTag(status domain.HealthStatus) string {
	switch status {
	case domain.HealthOK:
		return color.New(color.FgGreen).Sprint("[ok]  ")
	case domain.HealthWarn:
		return color.New(color.FgYellow).Sprint("[warn]")
	default:
		return color.New(color.FgRed).Sprint("[fail]")
	}
}
