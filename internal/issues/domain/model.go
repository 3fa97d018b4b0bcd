package domain

import (
	"time"

	"github.com/google/uuid"
)

// Issue is a single trackable unit of work belonging to exactly one project
type Issue struct {
	ID         uuid.UUID `json:"_id"`
	IssueTitle string    `json:"issue_title"`
	IssueText  string    `json:"issue_text"`
	CreatedOn  time.Time `json:"created_on"`
	UpdatedOn  time.Time `json:"updated_on"`
	CreatedBy  string    `json:"created_by"`
	AssignedTo string    `json:"assigned_to"`
	StatusText string    `json:"status_text"`
	Open       bool      `json:"open"`
}

// Project groups issues under a client-chosen name
type Project struct {
	Name   string  `json:"name"`
	Issues []Issue `json:"issues"`
}

// NewIssueRequest carries the client-supplied fields of a new issue
type NewIssueRequest struct {
	IssueTitle string
	IssueText  string
	CreatedBy  string
	AssignedTo string
	StatusText string
}

// NewIssue builds a fresh open issue with a generated ID and both
// timestamps set to now.
func NewIssue(req NewIssueRequest, now time.Time) Issue {
	ts := Timestamp(now)
	return Issue{
		ID:         uuid.New(),
		IssueTitle: req.IssueTitle,
		IssueText:  req.IssueText,
		CreatedBy:  req.CreatedBy,
		AssignedTo: req.AssignedTo,
		StatusText: req.StatusText,
		Open:       true,
		CreatedOn:  ts,
		UpdatedOn:  ts,
	}
}

// Timestamp normalizes t to the precision every store keeps.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// Value returns the typed value of field f on the issue.
func (i Issue) Value(f Field) any {
	switch f {
	case FieldID:
		return i.ID
	case FieldIssueTitle:
		return i.IssueTitle
	case FieldIssueText:
		return i.IssueText
	case FieldCreatedBy:
		return i.CreatedBy
	case FieldAssignedTo:
		return i.AssignedTo
	case FieldStatusText:
		return i.StatusText
	case FieldOpen:
		return i.Open
	case FieldCreatedOn:
		return i.CreatedOn
	case FieldUpdatedOn:
		return i.UpdatedOn
	}
	return nil
}

// Set assigns a coerced value to field f. Values of the wrong type are
// rejected with ErrIncompatibleValue and leave the issue untouched.
func (i *Issue) Set(f Field, v any) error {
	if !f.Accepts(v) {
		return ErrIncompatibleValue
	}
	switch f {
	case FieldID:
		i.ID = v.(uuid.UUID)
	case FieldIssueTitle:
		i.IssueTitle = v.(string)
	case FieldIssueText:
		i.IssueText = v.(string)
	case FieldCreatedBy:
		i.CreatedBy = v.(string)
	case FieldAssignedTo:
		i.AssignedTo = v.(string)
	case FieldStatusText:
		i.StatusText = v.(string)
	case FieldOpen:
		i.Open = v.(bool)
	case FieldCreatedOn:
		i.CreatedOn = v.(time.Time)
	case FieldUpdatedOn:
		i.UpdatedOn = v.(time.Time)
	}
	return nil
}
