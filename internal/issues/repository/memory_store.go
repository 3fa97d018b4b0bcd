package repository

import (
	"context"
	"sync"

	"github.com/GoSim-25-26J-441/issue-tracker/internal/issues/domain"
	"github.com/GoSim-25-26J-441/issue-tracker/internal/issues/query"
	"github.com/google/uuid"
)

// MemoryStore keeps projects in process memory. It backs DB_DRIVER=memory
// and the tests.
type MemoryStore struct {
	mu       sync.RWMutex
	projects map[string][]domain.Issue
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{projects: make(map[string][]domain.Issue)}
}

func (s *MemoryStore) Find(ctx context.Context, project string, f query.Filter) ([]domain.Issue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Issue, 0)
	issues, ok := s.projects[project]
	if !ok || !f.Satisfiable() {
		return out, nil
	}
	for _, issue := range issues {
		if f.Match(issue) {
			out = append(out, issue)
		}
	}
	return out, nil
}

func (s *MemoryStore) Append(ctx context.Context, project string, issue domain.Issue) (*domain.Issue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.projects[project] = append(s.projects[project], issue)
	stored := issue
	return &stored, nil
}

func (s *MemoryStore) Update(ctx context.Context, project string, u query.Update) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	issues := s.projects[project]
	for i := range issues {
		if issues[i].ID != u.ID {
			continue
		}
		updated := issues[i]
		if err := u.Apply(&updated); err != nil {
			return false, err
		}
		issues[i] = updated
		return true, nil
	}
	return false, nil
}

func (s *MemoryStore) Remove(ctx context.Context, project string, id uuid.UUID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	issues := s.projects[project]
	for i := range issues {
		if issues[i].ID == id {
			s.projects[project] = append(issues[:i:i], issues[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) Stats(ctx context.Context) (Stats, error) {
	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{Projects: int64(len(s.projects))}
	for _, issues := range s.projects {
		for _, issue := range issues {
			st.Issues++
			if issue.Open {
				st.OpenIssues++
			}
		}
	}
	return st, nil
}
