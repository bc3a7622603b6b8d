package history

import (
	"context"
	"time"

	"resumeforge/internal/types"
)

// Entry is one recorded scoring run
type Entry struct {
	ID             int64                `json:"id"`
	CandidateName  string               `json:"candidate_name"`
	JobDescription string               `json:"job_description"`
	ATSScore       int                  `json:"ats_score"`
	Breakdown      types.ScoreBreakdown `json:"score_breakdown"`
	CreatedAt      time.Time            `json:"created_at"`
}

// Store persists scoring runs for later review. Implementations must be safe
// for concurrent use.
type Store interface {
	// Save records a scoring run and fills in the entry's ID and CreatedAt
	Save(ctx context.Context, entry *Entry) error

	// Recent returns up to limit entries, newest first
	Recent(ctx context.Context, limit int) ([]Entry, error)

	// Close releases the store's resources
	Close() error
}
