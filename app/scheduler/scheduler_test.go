package scheduler

import (
	"context"
	"testing"

	"github.com/avolkov/news-digest/app/database"
	"github.com/avolkov/news-digest/app/digest"
)

type mockRunner struct {
	result *digest.Result
	calls  int
}

func (m *mockRunner) Run(ctx context.Context, req digest.Request) *digest.Result {
	m.calls++
	return m.result
}

type mockRunRepo struct {
	runs []database.Run
	err  error
}

func (m *mockRunRepo) InsertRun(run database.Run) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.runs = append(m.runs, run)
	return int64(len(m.runs)), nil
}

func (m *mockRunRepo) ListRuns(limit int) ([]database.Run, error) {
	return m.runs, nil
}

func (m *mockRunRepo) GetRunCount() (int, error) {
	return len(m.runs), nil
}

func TestNewRejectsInvalidCron(t *testing.T) {
	runner := &mockRunner{result: &digest.Result{Success: true}}
	if _, err := New(runner, &mockRunRepo{}, "not a cron spec", digest.Request{}); err == nil {
		t.Error("Expected error for invalid cron expression")
	}
}

func TestNewAcceptsValidCron(t *testing.T) {
	runner := &mockRunner{result: &digest.Result{Success: true}}
	s, err := New(runner, &mockRunRepo{}, "0 7 * * *", digest.Request{})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if s == nil {
		t.Fatal("Expected scheduler instance")
	}
}

func TestRunDigestRecordsSuccess(t *testing.T) {
	runner := &mockRunner{result: &digest.Result{
		Success:          true,
		TotalArticles:    12,
		InterestingCount: 3,
		ProcessingInfo:   &digest.ProcessingInfo{ErrorsEncountered: 1},
	}}
	repo := &mockRunRepo{}

	s, err := New(runner, repo, "@daily", digest.Request{SourceCategories: []string{"general"}})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	s.runDigest()

	if runner.calls != 1 {
		t.Errorf("Expected 1 runner call, got %d", runner.calls)
	}
	if len(repo.runs) != 1 {
		t.Fatalf("Expected 1 recorded run, got %d", len(repo.runs))
	}

	run := repo.runs[0]
	if run.Status != "success" {
		t.Errorf("Expected status 'success', got %q", run.Status)
	}
	if run.Trigger != "scheduler" {
		t.Errorf("Expected trigger 'scheduler', got %q", run.Trigger)
	}
	if run.TotalArticles != 12 || run.InterestingCount != 3 || run.ErrorCount != 1 {
		t.Errorf("Unexpected run counts: %+v", run)
	}
}

func TestRunDigestRecordsError(t *testing.T) {
	runner := &mockRunner{result: &digest.Result{
		Error:     "No valid news sources found",
		ErrorType: "configuration",
	}}
	repo := &mockRunRepo{}

	s, err := New(runner, repo, "@daily", digest.Request{})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	s.runDigest()

	if len(repo.runs) != 1 {
		t.Fatalf("Expected 1 recorded run, got %d", len(repo.runs))
	}
	run := repo.runs[0]
	if run.Status != "error" {
		t.Errorf("Expected status 'error', got %q", run.Status)
	}
	if run.Error != "No valid news sources found" {
		t.Errorf("Unexpected run error: %q", run.Error)
	}
}
