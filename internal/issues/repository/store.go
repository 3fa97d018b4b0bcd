package repository

import (
	"context"

	"github.com/GoSim-25-26J-441/issue-tracker/internal/issues/domain"
	"github.com/GoSim-25-26J-441/issue-tracker/internal/issues/query"
	"github.com/google/uuid"
)

// Store holds projects and their ordered issues. Every method is a single
// atomic operation against the backing store.
type Store interface {
	// Find returns the project's issues matching f in insertion order. A
	// project that does not exist yields an empty slice.
	Find(ctx context.Context, project string, f query.Filter) ([]domain.Issue, error)
	// Append adds the issue to the project, creating the project if needed,
	// and returns the stored record.
	Append(ctx context.Context, project string, issue domain.Issue) (*domain.Issue, error)
	// Update applies u to the issue with u.ID inside project. It reports
	// false when no such issue exists.
	Update(ctx context.Context, project string, u query.Update) (bool, error)
	// Remove deletes the issue with id from project. It reports false when
	// no such issue exists.
	Remove(ctx context.Context, project string, id uuid.UUID) (bool, error)
	// Stats counts what the store holds.
	Stats(ctx context.Context) (Stats, error)
}

// Stats summarizes store contents
type Stats struct {
	Projects   int64 `json:"projects"`
	Issues     int64 `json:"issues"`
	OpenIssues int64 `json:"open_issues"`
}
