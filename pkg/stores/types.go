package stores

import (
	"time"
)

// RunStatus represents the status of a lint run.
type RunStatus string

const (
	RunStatusPending   RunStatus = "pending"
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
	RunStatusCancelled RunStatus = "cancelled"
)

// FindingKind classifies what a finding is about.
type FindingKind string

const (
	// FindingKindParse means the identifier failed round-trip validation.
	FindingKindParse FindingKind = "parse"
	// FindingKindName means a segment failed resource-name validation.
	FindingKindName FindingKind = "name"
	// FindingKindPolicy means a policy deny rule matched.
	FindingKindPolicy FindingKind = "policy"
)

// Run represents one lint run over a set of identifiers.
type Run struct {
	ID          string     `json:"id"`
	Source      string     `json:"source"`
	Cloud       string     `json:"cloud"`
	Status      RunStatus  `json:"status"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Error       *string    `json:"error,omitempty"`
	TotalIDs    int        `json:"total_ids"`
	ValidIDs    int        `json:"valid_ids"`
	InvalidIDs  int        `json:"invalid_ids"`
	Violations  int        `json:"violations"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Finding represents a single problem reported by a lint run.
type Finding struct {
	ID         int64       `json:"id"`
	RunID      string      `json:"run_id"`
	ResourceID string      `json:"resource_id"`
	Line       int         `json:"line"`
	Kind       FindingKind `json:"kind"`
	Policy     string      `json:"policy,omitempty"`
	Severity   string      `json:"severity"`
	Message    string      `json:"message"`
	CreatedAt  time.Time   `json:"created_at"`
}
