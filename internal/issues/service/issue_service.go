package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/GoSim-25-26J-441/issue-tracker/internal/issues/domain"
	"github.com/GoSim-25-26J-441/issue-tracker/internal/issues/query"
	"github.com/GoSim-25-26J-441/issue-tracker/internal/issues/repository"
	"github.com/GoSim-25-26J-441/issue-tracker/internal/logging"
)

// IssueService handles business logic for issues
type IssueService struct {
	store repository.Store
	now   func() time.Time
}

// NewIssueService creates a new IssueService
func NewIssueService(store repository.Store) *IssueService {
	return &IssueService{
		store: store,
		now:   time.Now,
	}
}

// WithClock replaces the time source used for timestamps.
func (s *IssueService) WithClock(now func() time.Time) *IssueService {
	s.now = now
	return s
}

// List returns the project's issues matching params. A malformed _id or a
// key that names no issue field matches nothing rather than failing.
func (s *IssueService) List(ctx context.Context, project string, params map[string]string) ([]domain.Issue, error) {
	if strings.TrimSpace(project) == "" {
		return nil, domain.ErrMissingProject
	}

	f, err := query.BuildFilter(params)
	if errors.Is(err, domain.ErrInvalidID) {
		return []domain.Issue{}, nil
	}
	if err != nil {
		return nil, err
	}
	if len(f.Ignored) > 0 {
		logging.New(ctx, "issues").Infof("list", "unknown filter fields match nothing project=%q fields=%v", project, f.Ignored)
	}

	issues, err := s.store.Find(ctx, project, f)
	if err != nil {
		return nil, err
	}
	if issues == nil {
		issues = []domain.Issue{}
	}
	return issues, nil
}

// Create stores a new issue built from body. It returns
// domain.ErrMissingRequiredFields without touching the store when
// issue_title, issue_text or created_by is absent or empty.
func (s *IssueService) Create(ctx context.Context, project string, body map[string]string) (*domain.Issue, error) {
	if strings.TrimSpace(project) == "" {
		return nil, domain.ErrMissingProject
	}

	req := domain.NewIssueRequest{
		IssueTitle: body[string(domain.FieldIssueTitle)],
		IssueText:  body[string(domain.FieldIssueText)],
		CreatedBy:  body[string(domain.FieldCreatedBy)],
		AssignedTo: body[string(domain.FieldAssignedTo)],
		StatusText: body[string(domain.FieldStatusText)],
	}
	if req.IssueTitle == "" || req.IssueText == "" || req.CreatedBy == "" {
		return nil, domain.ErrMissingRequiredFields
	}

	return s.store.Append(ctx, project, domain.NewIssue(req, s.now()))
}

// Modify applies the fields in body to the issue named by body's _id.
// The returned string is the client's raw _id whenever one was sent.
//
// Every failure after validation (unknown issue, malformed _id, a value
// that does not fit its field, a store error) is reported as
// domain.ErrCouldNotUpdate.
func (s *IssueService) Modify(ctx context.Context, project string, body map[string]string) (string, error) {
	u, err := query.BuildUpdate(body, s.now())
	switch {
	case errors.Is(err, domain.ErrMissingID), errors.Is(err, domain.ErrNoUpdateFields):
		return u.RawID, err
	case err != nil:
		logging.New(ctx, "issues").Warnf("update", "rejected project=%q _id=%q: %v", project, u.RawID, err)
		return u.RawID, domain.ErrCouldNotUpdate
	}
	if len(u.Ignored) > 0 {
		logging.New(ctx, "issues").Infof("update", "ignoring non-updatable fields project=%q _id=%q fields=%v", project, u.RawID, u.Ignored)
	}

	ok, err := s.store.Update(ctx, project, u)
	if err != nil {
		logging.New(ctx, "issues").Errorf("update", "project=%q _id=%q: %v", project, u.RawID, err)
		return u.RawID, domain.ErrCouldNotUpdate
	}
	if !ok {
		return u.RawID, domain.ErrCouldNotUpdate
	}
	logging.New(ctx, "issues").Infof("update", "project=%q _id=%q fields=%v", project, u.RawID, u.Fields())
	return u.RawID, nil
}

// Remove deletes the issue named by body's _id. Failures other than a
// missing _id are reported as domain.ErrCouldNotDelete.
func (s *IssueService) Remove(ctx context.Context, project string, body map[string]string) (string, error) {
	rawID, present := body[string(domain.FieldID)]
	if !present {
		return "", domain.ErrMissingID
	}

	id, err := domain.ParseID(rawID)
	if err != nil {
		return rawID, domain.ErrCouldNotDelete
	}

	ok, err := s.store.Remove(ctx, project, id)
	if err != nil {
		logging.New(ctx, "issues").Errorf("delete", "project=%q _id=%q: %v", project, rawID, err)
		return rawID, domain.ErrCouldNotDelete
	}
	if !ok {
		return rawID, domain.ErrCouldNotDelete
	}
	return rawID, nil
}

// Stats reports store totals.
func (s *IssueService) Stats(ctx context.Context) (repository.Stats, error) {
	return s.store.Stats(ctx)
}
