package lint

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/piwi3910/azrid/pkg/arm"
	"github.com/piwi3910/azrid/pkg/cloud"
	"github.com/piwi3910/azrid/pkg/policy"
	"github.com/piwi3910/azrid/pkg/stores"
	"github.com/piwi3910/azrid/pkg/telemetry"
)

// Options configures a Linter.
type Options struct {
	// Cloud is recorded with runs and exposed to policies.
	Cloud cloud.Cloud
	// PolicyPaths are extra .rego/.json policy files or directories.
	PolicyPaths []string
	// FailOn is the severity at which findings fail a run. Defaults
	// to error.
	FailOn policy.Severity
	// Store, when set, persists runs and findings.
	Store *stores.SQLiteStore
}

// Report is the outcome of linting one input file.
type Report struct {
	RunID       string           `json:"run_id"`
	Source      string           `json:"source"`
	Cloud       string           `json:"cloud"`
	StartedAt   time.Time        `json:"started_at"`
	CompletedAt time.Time        `json:"completed_at"`
	Total       int              `json:"total"`
	Valid       int              `json:"valid"`
	Invalid     int              `json:"invalid"`
	Findings    []stores.Finding `json:"findings"`
	Failed      bool             `json:"failed"`
}

// Linter validates identifier files and evaluates policies against them.
type Linter struct {
	opts   Options
	engine *policy.Engine
	loader *policy.Loader
	tel    *telemetry.Telemetry
	logger *telemetry.Logger
}

// New creates a Linter and loads policies from the configured paths.
func New(ctx context.Context, tel *telemetry.Telemetry, opts Options) (*Linter, error) {
	if opts.Cloud == "" {
		opts.Cloud = cloud.Public
	}
	if opts.FailOn == "" {
		opts.FailOn = policy.SeverityError
	}

	logger := tel.Logger.NewComponentLogger("linter")

	engine, err := policy.NewEngine(logger.Zerolog())
	if err != nil {
		return nil, fmt.Errorf("failed to create policy engine: %w", err)
	}

	loader := policy.NewLoader(logger.Zerolog())
	if len(opts.PolicyPaths) > 0 {
		policies, err := loader.LoadFromPaths(ctx, opts.PolicyPaths)
		if err != nil {
			return nil, fmt.Errorf("failed to load policies: %w", err)
		}
		if err := engine.LoadPolicies(ctx, policies); err != nil {
			return nil, fmt.Errorf("failed to register policies: %w", err)
		}
	}

	return &Linter{
		opts:   opts,
		engine: engine,
		loader: loader,
		tel:    tel,
		logger: logger,
	}, nil
}

// LintFile lints all identifiers in a file and returns the report. The
// returned error covers run failures, not findings; check Report.Failed
// for the lint verdict.
func (l *Linter) LintFile(ctx context.Context, path string) (*Report, error) {
	runID := uuid.New().String()
	ctx, span := l.tel.Tracer.StartLintSpan(ctx, runID, path)
	defer span.End()

	timer := telemetry.NewTimer()
	started := time.Now()

	report := &Report{
		RunID:     runID,
		Source:    path,
		Cloud:     string(l.opts.Cloud),
		StartedAt: started,
	}

	if err := l.createRun(ctx, report); err != nil {
		return nil, err
	}

	entries, err := ReadIdentifiers(path)
	if err != nil {
		l.completeRun(ctx, report, stores.RunStatusFailed, err)
		l.tel.Metrics.RecordLintRun(string(stores.RunStatusFailed), timer.Duration())
		telemetry.RecordError(span, err)
		return nil, err
	}

	for _, entry := range entries {
		select {
		case <-ctx.Done():
			l.completeRun(ctx, report, stores.RunStatusCancelled, ctx.Err())
			l.tel.Metrics.RecordLintRun(string(stores.RunStatusCancelled), timer.Duration())
			return nil, ctx.Err()
		default:
		}
		l.lintEntry(ctx, report, entry)
	}

	report.CompletedAt = time.Now()
	for i := range report.Findings {
		if policy.Severity(report.Findings[i].Severity).AtLeast(l.opts.FailOn) {
			report.Failed = true
			break
		}
	}

	l.completeRun(ctx, report, stores.RunStatusCompleted, nil)
	l.tel.Metrics.RecordLintRun(string(stores.RunStatusCompleted), timer.Duration())
	telemetry.RecordSuccess(span)

	l.logger.WithRunID(runID).
		WithField("total", report.Total).
		WithField("invalid", report.Invalid).
		WithField("findings", len(report.Findings)).
		Info("Lint run completed")

	return report, nil
}

// lintEntry validates one identifier and appends its findings.
func (l *Linter) lintEntry(ctx context.Context, report *Report, entry Entry) {
	report.Total++

	rid := arm.Parse(entry.Raw)
	if rid.Opaque() || !arm.IsValidResourceID(entry.Raw) {
		l.tel.Metrics.RecordParse("invalid")
		l.tel.Metrics.RecordLintedID("invalid")
		report.Invalid++
		report.Findings = append(report.Findings, stores.Finding{
			RunID:      report.RunID,
			ResourceID: entry.Raw,
			Line:       entry.Line,
			Kind:       stores.FindingKindParse,
			Severity:   string(policy.SeverityError),
			Message:    "identifier does not round-trip to a canonical ARM resource ID",
		})
		return
	}

	l.tel.Metrics.RecordParse("ok")
	report.Valid++

	for _, name := range lintableNames(rid) {
		if err := arm.ValidateResourceName(name); err != nil {
			report.Findings = append(report.Findings, stores.Finding{
				RunID:      report.RunID,
				ResourceID: entry.Raw,
				Line:       entry.Line,
				Kind:       stores.FindingKindName,
				Severity:   string(policy.SeverityError),
				Message:    err.Error(),
			})
		}
	}

	result, err := l.engine.Evaluate(ctx, &policy.Input{
		ID:  rid.Fields(),
		Raw: entry.Raw,
		Context: &policy.Context{
			Timestamp: time.Now(),
			Source:    report.Source,
			Line:      entry.Line,
			Cloud:     report.Cloud,
		},
	})
	if err != nil {
		l.logger.WithResourceID(entry.Raw).WithError(err).Warn("Policy evaluation failed")
		return
	}

	for _, v := range result.Violations {
		l.tel.Metrics.RecordLintFinding(v.Policy, string(v.Severity))
		report.Findings = append(report.Findings, stores.Finding{
			RunID:      report.RunID,
			ResourceID: entry.Raw,
			Line:       entry.Line,
			Kind:       stores.FindingKindPolicy,
			Policy:     v.Policy,
			Severity:   string(v.Severity),
			Message:    v.Message,
		})
	}

	if len(result.Violations) == 0 {
		l.tel.Metrics.RecordLintedID("clean")
	} else {
		l.tel.Metrics.RecordLintedID("violations")
	}
}

// lintableNames returns the name segments of an identifier that ARM
// resource-name rules apply to.
func lintableNames(rid *arm.ResourceID) []string {
	var names []string
	if rid.ResourceGroup != "" {
		names = append(names, rid.ResourceGroup)
	}
	if rid.Name != "" {
		names = append(names, rid.Name)
	}
	for _, child := range rid.Children {
		if child.Name != "" {
			names = append(names, child.Name)
		}
	}
	return names
}

func (l *Linter) createRun(ctx context.Context, report *Report) error {
	if l.opts.Store == nil {
		return nil
	}

	now := time.Now()
	err := l.opts.Store.CreateRun(ctx, &stores.Run{
		ID:        report.RunID,
		Source:    report.Source,
		Cloud:     report.Cloud,
		Status:    stores.RunStatusRunning,
		StartedAt: report.StartedAt,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

func (l *Linter) completeRun(ctx context.Context, report *Report, status stores.RunStatus, runErr error) {
	if l.opts.Store == nil {
		return
	}

	now := time.Now()
	run := &stores.Run{
		ID:          report.RunID,
		Status:      status,
		CompletedAt: &now,
		TotalIDs:    report.Total,
		ValidIDs:    report.Valid,
		InvalidIDs:  report.Invalid,
		Violations:  len(report.Findings),
	}
	if runErr != nil {
		msg := runErr.Error()
		run.Error = &msg
	}

	if err := l.opts.Store.CompleteRun(ctx, run); err != nil {
		l.logger.WithRunID(report.RunID).WithError(err).Warn("Failed to persist run completion")
		return
	}
	if err := l.opts.Store.InsertFindings(ctx, report.RunID, report.Findings); err != nil {
		l.logger.WithRunID(report.RunID).WithError(err).Warn("Failed to persist findings")
	}
}

// ReloadPolicies replaces path-loaded policies in the engine. Used by
// watch mode when policy files change.
func (l *Linter) ReloadPolicies(ctx context.Context, policies []policy.Policy) error {
	return l.engine.LoadPolicies(ctx, policies)
}

// Policies returns the policies currently registered in the engine.
func (l *Linter) Policies() []policy.Policy {
	return l.engine.ListPolicies()
}
