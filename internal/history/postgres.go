package history

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"resumeforge/internal/errors"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS score_history (
	id              BIGSERIAL PRIMARY KEY,
	candidate_name  TEXT NOT NULL DEFAULT '',
	job_description TEXT NOT NULL,
	ats_score       INTEGER NOT NULL,
	skills_score    INTEGER NOT NULL,
	keywords_score  INTEGER NOT NULL,
	title_score     INTEGER NOT NULL,
	exp_score       INTEGER NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresStore persists scoring history in PostgreSQL
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *errors.Logger
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore connects to the database and ensures the history table exists
func NewPostgresStore(ctx context.Context, dsn string, logger *errors.Logger) (*PostgresStore, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			"Invalid history database DSN", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStorageUnavailable,
			"Failed to create history connection pool", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, errors.NewStorageError(errors.ErrCodeStorageUnavailable,
			"History database is not reachable", err)
	}

	if _, err := pool.Exec(ctx, createTableSQL); err != nil {
		pool.Close()
		return nil, errors.NewStorageError(errors.ErrCodeStorageUnavailable,
			"Failed to create history table", err)
	}

	logger.Info("History store initialized", "backend", "postgres")
	return &PostgresStore{pool: pool, logger: logger}, nil
}

// Save records a scoring run
func (s *PostgresStore) Save(ctx context.Context, entry *Entry) error {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO score_history
			(candidate_name, job_description, ats_score, skills_score, keywords_score, title_score, exp_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		entry.CandidateName,
		entry.JobDescription,
		entry.ATSScore,
		entry.Breakdown.Skills,
		entry.Breakdown.Keywords,
		entry.Breakdown.Title,
		entry.Breakdown.Experience,
	)

	if err := row.Scan(&entry.ID, &entry.CreatedAt); err != nil {
		return errors.NewStorageError(errors.ErrCodeStorageUnavailable,
			"Failed to save history entry", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first
func (s *PostgresStore) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, candidate_name, job_description, ats_score,
		       skills_score, keywords_score, title_score, exp_score, created_at
		FROM score_history
		ORDER BY created_at DESC, id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStorageUnavailable,
			"Failed to query history", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.CandidateName, &e.JobDescription, &e.ATSScore,
			&e.Breakdown.Skills, &e.Breakdown.Keywords, &e.Breakdown.Title, &e.Breakdown.Experience,
			&e.CreatedAt); err != nil {
			return nil, errors.NewStorageError(errors.ErrCodeStorageUnavailable,
				"Failed to scan history entry", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStorageUnavailable,
			"Failed to read history rows", err)
	}
	return entries, nil
}

// Close releases the connection pool
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
