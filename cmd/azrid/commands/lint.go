package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/azrid/pkg/cloud"
	"github.com/piwi3910/azrid/pkg/lint"
	"github.com/piwi3910/azrid/pkg/policy"
	"github.com/piwi3910/azrid/pkg/stores"
)

func newLintCommand() *cobra.Command {
	var (
		policyPaths   []string
		failOn        string
		cloudName     string
		storePath     string
		watch         bool
		metricsListen string
	)

	cmd := &cobra.Command{
		Use:   "lint <file>",
		Short: "Lint a file of resource identifiers",
		Long: `Lint a file of Azure resource identifiers.

Each identifier is checked for round-trip validity and resource-name
rules, then evaluated against the built-in and configured Rego
policies. With --watch the file is re-linted on every change and
policy files are reloaded when they change.

The command exits non-zero when any finding reaches the fail-on
severity.`,
		Example: `  # Lint a plain-text file
  azrid lint ids.txt

  # Lint with extra policies, fail only on critical findings
  azrid lint --policies ./policies --fail-on critical ids.yaml

  # Watch mode with a metrics endpoint
  azrid lint --watch --metrics-listen :9090 ids.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}

			if len(policyPaths) == 0 {
				policyPaths = settings.Lint.PolicyPaths
			}
			if failOn == "" {
				failOn = settings.Lint.FailOn
			}
			if cloudName == "" {
				cloudName = settings.DefaultCloud
			}
			if storePath == "" {
				storePath = settings.Lint.StorePath
			}

			c, err := cloud.Parse(cloudName)
			if err != nil {
				return err
			}

			// Metrics only make sense for the long-running watch mode.
			listen := ""
			if watch {
				listen = metricsListen
				if listen == "" {
					listen = settings.Telemetry.MetricsListen
				}
			}

			tel, err := newTelemetry(settings, listen)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			defer func() { _ = tel.Shutdown(context.Background()) }()

			opts := lint.Options{
				Cloud:       c,
				PolicyPaths: policyPaths,
				FailOn:      policy.Severity(failOn),
			}

			if storePath != "" {
				store, err := stores.NewSQLiteStore(stores.Config{Path: storePath})
				if err != nil {
					return err
				}
				if err := store.Init(ctx); err != nil {
					return err
				}
				defer store.Close()
				if err := store.Migrate(ctx); err != nil {
					return err
				}
				opts.Store = store
			}

			linter, err := lint.New(ctx, tel, opts)
			if err != nil {
				return err
			}

			if watch {
				if listen != "" {
					if err := tel.StartMetricsServer(); err != nil {
						return err
					}
				}
				return linter.Watch(ctx, args[0], func(report *lint.Report) {
					printReport(report)
				})
			}

			report, err := linter.LintFile(ctx, args[0])
			if err != nil {
				return err
			}
			printReport(report)

			if report.Failed {
				return fmt.Errorf("lint failed: %d findings in %d identifiers", len(report.Findings), report.Total)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&policyPaths, "policies", nil, "policy files or directories (repeatable)")
	cmd.Flags().StringVar(&failOn, "fail-on", "", "minimum severity that fails the run (warning, error, critical)")
	cmd.Flags().StringVar(&cloudName, "cloud", "", "cloud environment recorded with the run")
	cmd.Flags().StringVar(&storePath, "store", "", "SQLite database for run history")
	cmd.Flags().BoolVar(&watch, "watch", false, "re-lint on file changes")
	cmd.Flags().StringVar(&metricsListen, "metrics-listen", "", "Prometheus listen address (watch mode)")

	return cmd
}

func printReport(report *lint.Report) {
	if jsonOutput {
		_ = printJSON(report)
		return
	}

	for _, f := range report.Findings {
		if f.Policy != "" {
			fmt.Printf("%s:%d\t%s\t%s\t%s\t%s\n", report.Source, f.Line, f.Severity, f.Kind, f.Policy, f.Message)
		} else {
			fmt.Printf("%s:%d\t%s\t%s\t%s\n", report.Source, f.Line, f.Severity, f.Kind, f.Message)
		}
	}
	fmt.Printf("%d identifiers, %d valid, %d invalid, %d findings\n",
		report.Total, report.Valid, report.Invalid, len(report.Findings))
}
