package stores

import (
	"context"
	"testing"
	"time"
)

// setupTestStore creates an in-memory SQLite store for testing
func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := NewSQLiteStore(Config{
		Path: ":memory:",
	})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	ctx := context.Background()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}

	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate store: %v", err)
	}

	return store
}

func testRun(id string) *Run {
	now := time.Now()
	return &Run{
		ID:        id,
		Source:    "ids.txt",
		Cloud:     "public",
		Status:    RunStatusRunning,
		StartedAt: now,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestStoreLifecycle(t *testing.T) {
	store, err := NewSQLiteStore(Config{
		Path: ":memory:",
	})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	ctx := context.Background()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}

	if err := store.HealthCheck(ctx); err != nil {
		t.Fatalf("health check failed: %v", err)
	}

	if err := store.Close(); err != nil {
		t.Fatalf("failed to close store: %v", err)
	}
}

func TestStoreRequiresPath(t *testing.T) {
	if _, err := NewSQLiteStore(Config{}); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestStoreMigrations(t *testing.T) {
	store := setupTestStore(t)
	defer store.Close()

	ctx := context.Background()

	tables := []string{"lint_runs", "lint_findings"}
	for _, table := range tables {
		query := "SELECT COUNT(*) FROM " + table
		var count int
		err := store.db.QueryRowContext(ctx, query).Scan(&count)
		if err != nil {
			t.Errorf("table %s does not exist or is not accessible: %v", table, err)
		}
	}
}

func TestRunCRUD(t *testing.T) {
	store := setupTestStore(t)
	defer store.Close()

	ctx := context.Background()

	run := testRun("run-1")
	if err := store.CreateRun(ctx, run); err != nil {
		t.Fatalf("failed to create run: %v", err)
	}

	got, err := store.GetRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("failed to get run: %v", err)
	}
	if got.Source != "ids.txt" {
		t.Errorf("Source = %q, want ids.txt", got.Source)
	}
	if got.Status != RunStatusRunning {
		t.Errorf("Status = %q, want running", got.Status)
	}

	completed := time.Now()
	run.Status = RunStatusCompleted
	run.CompletedAt = &completed
	run.TotalIDs = 10
	run.ValidIDs = 8
	run.InvalidIDs = 2
	run.Violations = 3
	if err := store.CompleteRun(ctx, run); err != nil {
		t.Fatalf("failed to complete run: %v", err)
	}

	got, err = store.GetRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("failed to get run: %v", err)
	}
	if got.Status != RunStatusCompleted {
		t.Errorf("Status = %q, want completed", got.Status)
	}
	if got.CompletedAt == nil {
		t.Error("CompletedAt should be set")
	}
	if got.TotalIDs != 10 || got.ValidIDs != 8 || got.InvalidIDs != 2 || got.Violations != 3 {
		t.Errorf("counters = %d/%d/%d/%d", got.TotalIDs, got.ValidIDs, got.InvalidIDs, got.Violations)
	}

	if err := store.DeleteRun(ctx, "run-1"); err != nil {
		t.Fatalf("failed to delete run: %v", err)
	}
	if _, err := store.GetRun(ctx, "run-1"); err == nil {
		t.Error("expected error getting deleted run")
	}
}

func TestCompleteRunNotFound(t *testing.T) {
	store := setupTestStore(t)
	defer store.Close()

	run := testRun("missing")
	run.Status = RunStatusCompleted
	if err := store.CompleteRun(context.Background(), run); err == nil {
		t.Error("expected error completing unknown run")
	}
}

func TestListRuns(t *testing.T) {
	store := setupTestStore(t)
	defer store.Close()

	ctx := context.Background()

	for i, id := range []string{"run-a", "run-b", "run-c"} {
		run := testRun(id)
		run.StartedAt = time.Now().Add(time.Duration(i) * time.Second)
		if err := store.CreateRun(ctx, run); err != nil {
			t.Fatalf("failed to create run %s: %v", id, err)
		}
	}

	runs, err := store.ListRuns(ctx, 2, 0)
	if err != nil {
		t.Fatalf("failed to list runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != "run-c" {
		t.Errorf("first run = %s, want run-c (most recent first)", runs[0].ID)
	}

	runs, err = store.ListRuns(ctx, 10, 2)
	if err != nil {
		t.Fatalf("failed to list runs: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run at offset 2, got %d", len(runs))
	}
}

func TestFindings(t *testing.T) {
	store := setupTestStore(t)
	defer store.Close()

	ctx := context.Background()

	run := testRun("run-f")
	if err := store.CreateRun(ctx, run); err != nil {
		t.Fatalf("failed to create run: %v", err)
	}

	findings := []Finding{
		{
			ResourceID: "/subscriptions/sub/not/valid",
			Line:       3,
			Kind:       FindingKindParse,
			Severity:   "error",
			Message:    "identifier does not round-trip",
		},
		{
			ResourceID: "/subscriptions/sub/resourceGroups/rg/providers/Compute/vms/v",
			Line:       7,
			Kind:       FindingKindPolicy,
			Policy:     "provider-namespace",
			Severity:   "error",
			Message:    "provider namespace 'Compute' is not in Company.Product form",
		},
	}

	if err := store.InsertFindings(ctx, "run-f", findings); err != nil {
		t.Fatalf("failed to insert findings: %v", err)
	}

	got, err := store.ListFindings(ctx, "run-f")
	if err != nil {
		t.Fatalf("failed to list findings: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 findings, got %d", len(got))
	}
	if got[0].Kind != FindingKindParse || got[0].Line != 3 {
		t.Errorf("first finding = %+v", got[0])
	}
	if got[1].Policy != "provider-namespace" {
		t.Errorf("second finding policy = %q", got[1].Policy)
	}

	// Deleting the run cascades to findings
	if err := store.DeleteRun(ctx, "run-f"); err != nil {
		t.Fatalf("failed to delete run: %v", err)
	}
	got, err = store.ListFindings(ctx, "run-f")
	if err != nil {
		t.Fatalf("failed to list findings: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected findings removed with run, got %d", len(got))
	}
}

func TestInsertFindingsEmpty(t *testing.T) {
	store := setupTestStore(t)
	defer store.Close()

	if err := store.InsertFindings(context.Background(), "run-x", nil); err != nil {
		t.Errorf("inserting no findings should be a no-op, got %v", err)
	}
}
