package policy

import (
	"time"
)

// Severity represents the severity level of a policy violation.
type Severity string

const (
	// SeverityInfo is informational only.
	SeverityInfo Severity = "info"
	// SeverityWarning indicates a potential issue.
	SeverityWarning Severity = "warning"
	// SeverityError indicates a violation that fails the lint run.
	SeverityError Severity = "error"
	// SeverityCritical indicates a severe violation.
	SeverityCritical Severity = "critical"
)

// severityRank orders severities for threshold comparisons.
var severityRank = map[Severity]int{
	SeverityInfo:     0,
	SeverityWarning:  1,
	SeverityError:    2,
	SeverityCritical: 3,
}

// AtLeast reports whether s is at least as severe as threshold.
// Unknown severities rank below info.
func (s Severity) AtLeast(threshold Severity) bool {
	return severityRank[s] >= severityRank[threshold]
}

// Policy represents a single Rego policy.
type Policy struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Rego        string                 `json:"rego"`
	Severity    Severity               `json:"severity"`
	Enabled     bool                   `json:"enabled"`
	Tags        []string               `json:"tags,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// Violation is a single policy finding against an identifier.
type Violation struct {
	Policy     string   `json:"policy"`
	Severity   Severity `json:"severity"`
	Message    string   `json:"message"`
	ResourceID string   `json:"resource_id,omitempty"`
}

// Result is the outcome of evaluating all policies against one input.
type Result struct {
	Allowed           bool        `json:"allowed"`
	Violations        []Violation `json:"violations"`
	Warnings          []string    `json:"warnings,omitempty"`
	EvaluatedPolicies []string    `json:"evaluated_policies"`
	EvaluatedAt       time.Time   `json:"evaluated_at"`
}

// Input is the document handed to Rego evaluation. ID carries the flat
// field mapping of a parsed identifier, Raw the original string.
type Input struct {
	ID      map[string]string `json:"id"`
	Raw     string            `json:"raw"`
	Context *Context          `json:"context,omitempty"`
}

// Context carries evaluation metadata available to policies.
type Context struct {
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source,omitempty"`
	Line      int       `json:"line,omitempty"`
	Cloud     string    `json:"cloud,omitempty"`
}
