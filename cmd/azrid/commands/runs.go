package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/azrid/pkg/stores"
)

func newRunsCommand() *cobra.Command {
	var storePath string

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect lint run history",
		Long: `Inspect the lint run history recorded in the SQLite store.

The store path comes from --store or the lint.storePath setting.`,
	}

	cmd.PersistentFlags().StringVar(&storePath, "store", "", "SQLite database for run history")

	cmd.AddCommand(newRunsListCommand(&storePath))
	cmd.AddCommand(newRunsShowCommand(&storePath))

	return cmd
}

func newRunsListCommand(storePath *string) *cobra.Command {
	var (
		limit  int
		offset int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent lint runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openRunStore(cmd.Context(), *storePath)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.ListRuns(cmd.Context(), limit, offset)
			if err != nil {
				return err
			}

			if jsonOutput {
				return printJSON(runs)
			}
			for _, run := range runs {
				fmt.Printf("%s\t%s\t%s\t%s\t%d ids\t%d invalid\t%d findings\n",
					run.ID, run.StartedAt.Format("2006-01-02 15:04:05"), run.Status,
					run.Source, run.TotalIDs, run.InvalidIDs, run.Violations)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum runs to list")
	cmd.Flags().IntVar(&offset, "offset", 0, "runs to skip")

	return cmd
}

func newRunsShowCommand(storePath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one lint run and its findings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openRunStore(cmd.Context(), *storePath)
			if err != nil {
				return err
			}
			defer store.Close()

			run, err := store.GetRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			findings, err := store.ListFindings(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if jsonOutput {
				return printJSON(map[string]interface{}{
					"run":      run,
					"findings": findings,
				})
			}

			fmt.Printf("run:      %s\n", run.ID)
			fmt.Printf("source:   %s\n", run.Source)
			fmt.Printf("cloud:    %s\n", run.Cloud)
			fmt.Printf("status:   %s\n", run.Status)
			fmt.Printf("started:  %s\n", run.StartedAt.Format("2006-01-02 15:04:05"))
			if run.CompletedAt != nil {
				fmt.Printf("finished: %s\n", run.CompletedAt.Format("2006-01-02 15:04:05"))
			}
			fmt.Printf("ids:      %d total, %d valid, %d invalid\n", run.TotalIDs, run.ValidIDs, run.InvalidIDs)
			for _, f := range findings {
				if f.Policy != "" {
					fmt.Printf("  line %d\t%s\t%s\t%s\t%s\n", f.Line, f.Severity, f.Kind, f.Policy, f.Message)
				} else {
					fmt.Printf("  line %d\t%s\t%s\t%s\n", f.Line, f.Severity, f.Kind, f.Message)
				}
			}
			return nil
		},
	}

	return cmd
}

// openRunStore opens the history store from the flag or settings.
func openRunStore(ctx context.Context, storePath string) (*stores.SQLiteStore, error) {
	if storePath == "" {
		settings, err := loadSettings()
		if err != nil {
			return nil, err
		}
		storePath = settings.Lint.StorePath
	}
	if storePath == "" {
		return nil, fmt.Errorf("no run store configured: set --store or lint.storePath")
	}

	store, err := stores.NewSQLiteStore(stores.Config{Path: storePath})
	if err != nil {
		return nil, err
	}
	if err := store.Init(ctx); err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}
