// Package telemetry provides observability instrumentation for azrid.
//
// It combines structured logging (zerolog), tracing (OpenTelemetry) and
// metrics (Prometheus) behind a single Telemetry value that travels in
// the context. Instrumentation only observes: no telemetry failure ever
// changes the outcome of a parse, build, validation or lint operation.
//
// Initialize at startup:
//
//	tel, err := telemetry.New(telemetry.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer tel.Shutdown(context.Background())
//	ctx = tel.WithContext(ctx)
//
// Key metrics exposed while the metrics listener is running (lint watch
// mode only):
//
//   - azrid_ids_parsed_total{outcome}
//   - azrid_ids_built_total{outcome}
//   - azrid_validations_total{kind,result}
//   - azrid_lint_runs_total{status}
//   - azrid_lint_run_duration_seconds
//   - azrid_lint_findings_total{policy,severity}
package telemetry
