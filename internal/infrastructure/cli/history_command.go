package cli

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/clicra-go/internal/app"
)

func newHistoryCommand() *cobra.Command {
	var (
		limit  int
		search string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past invocations",
		RunE: func(cmd *cobra.Command, args []string) error {
			container := app.BuildContainer(cmd.Context(), false)
			if container.History == nil {
				fmt.Fprintln(os.Stdout, "History is disabled or unavailable.")
				return nil
			}
			records, err := container.History.Records(limit, search)
			if err != nil {
				return fmt.Errorf("read history: %w", err)
			}
			if len(records) == 0 {
				fmt.Fprintln(os.Stdout, "No history yet.")
				return nil
			}
			for _, r := range records {
				status := r.Mode
				if r.Executed {
					status = fmt.Sprintf("%s, exit %d", r.Mode, r.ExitCode)
				}
				fmt.Fprintf(os.Stdout, "%s  [%s]  %s\n", humanize.Time(r.Timestamp), status, r.Task)
				if r.Command != "" {
					fmt.Fprintf(os.Stdout, "    $ %s\n", r.Command)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of records to show")
	cmd.Flags().StringVar(&search, "search", "", "Filter records by task or command substring")

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete all history records",
		RunE: func(cmd *cobra.Command, args []string) error {
			container := app.BuildContainer(cmd.Context(), false)
			if container.History == nil {
				fmt.Fprintln(os.Stdout, "History is disabled or unavailable.")
				return nil
			}
			if err := container.History.Clear(); err != nil {
				return fmt.Errorf("clear history: %w", err)
			}
			fmt.Fprintln(os.Stdout, "History cleared.")
			return nil
		},
	})

	return cmd
}
