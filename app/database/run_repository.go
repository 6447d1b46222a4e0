package database

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

type RunRepository interface {
	InsertRun(run Run) (int64, error)
	ListRuns(limit int) ([]Run, error)
	GetRunCount() (int, error)
}

type runRepository struct {
	db *DB
}

func NewRunRepository(db *DB) RunRepository {
	return &runRepository{db: db}
}

func (r *runRepository) InsertRun(run Run) (int64, error) {
	query, args, err := sq.Insert("runs").
		Columns("started_at", "finished_at", "trigger_kind", "source_categories",
			"total_articles", "interesting_count", "error_count", "status", "error").
		Values(run.StartedAt, run.FinishedAt, run.Trigger, run.SourceCategories,
			run.TotalArticles, run.InterestingCount, run.ErrorCount, run.Status, run.Error).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build insert query: %w", err)
	}

	result, err := r.db.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}

	return id, nil
}

func (r *runRepository) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	query, args, err := sq.Select("id", "started_at", "finished_at", "trigger_kind",
		"source_categories", "total_articles", "interesting_count", "error_count", "status", "error").
		From("runs").
		OrderBy("started_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		err := rows.Scan(&run.ID, &run.StartedAt, &run.FinishedAt, &run.Trigger,
			&run.SourceCategories, &run.TotalArticles, &run.InterestingCount,
			&run.ErrorCount, &run.Status, &run.Error)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return runs, nil
}

func (r *runRepository) GetRunCount() (int, error) {
	query, args, err := sq.Select("COUNT(*)").From("runs").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}

	return count, nil
}
