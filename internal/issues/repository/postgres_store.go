package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/GoSim-25-26J-441/issue-tracker/internal/issues/domain"
	"github.com/GoSim-25-26J-441/issue-tracker/internal/issues/query"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// columns maps every field to its column in the issues table. Nothing
// outside this map is ever written into a statement.
var columns = map[domain.Field]string{
	domain.FieldID:         "id",
	domain.FieldIssueTitle: "issue_title",
	domain.FieldIssueText:  "issue_text",
	domain.FieldCreatedOn:  "created_on",
	domain.FieldUpdatedOn:  "updated_on",
	domain.FieldCreatedBy:  "created_by",
	domain.FieldAssignedTo: "assigned_to",
	domain.FieldStatusText: "status_text",
	domain.FieldOpen:       "open",
}

const issueColumns = `i.id, i.issue_title, i.issue_text, i.created_on, i.updated_on, i.created_by, i.assigned_to, i.status_text, i.open`

// PostgresStore keeps projects and issues in two tables, issues ordered by
// their seq column.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgresStore
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func column(f domain.Field) (string, error) {
	c, ok := columns[f]
	if !ok {
		return "", fmt.Errorf("unknown field %q", f)
	}
	return pq.QuoteIdentifier(c), nil
}

func sqlValue(v any) any {
	if id, ok := v.(uuid.UUID); ok {
		return id.String()
	}
	return v
}

func (s *PostgresStore) Find(ctx context.Context, project string, f query.Filter) ([]domain.Issue, error) {
	out := make([]domain.Issue, 0)
	if !f.Satisfiable() {
		return out, nil
	}

	var b strings.Builder
	args := []any{project}
	b.WriteString(`SELECT ` + issueColumns + ` FROM issues i JOIN projects p ON p.id = i.project_id WHERE p.name = $1`)
	for _, c := range f.Conditions {
		col, err := column(c.Field)
		if err != nil {
			return nil, err
		}
		args = append(args, sqlValue(c.Value))
		fmt.Fprintf(&b, " AND i.%s = $%d", col, len(args))
	}
	b.WriteString(" ORDER BY i.seq")

	rows, err := s.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query issues: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		issue, err := scanIssue(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *issue)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read issues: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Append(ctx context.Context, project string, issue domain.Issue) (*domain.Issue, error) {
	const q = `
WITH project AS (
	INSERT INTO projects (name) VALUES ($1)
	ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
	RETURNING id
)
INSERT INTO issues (id, project_id, issue_title, issue_text, created_on, updated_on, created_by, assigned_to, status_text, open)
SELECT $2::uuid, project.id, $3::text, $4::text, $5::timestamptz, $6::timestamptz, $7::text, $8::text, $9::text, $10::boolean
FROM project
RETURNING id, issue_title, issue_text, created_on, updated_on, created_by, assigned_to, status_text, open
`
	row := s.db.QueryRowContext(ctx, q,
		project,
		issue.ID.String(),
		issue.IssueTitle,
		issue.IssueText,
		issue.CreatedOn,
		issue.UpdatedOn,
		issue.CreatedBy,
		issue.AssignedTo,
		issue.StatusText,
		issue.Open,
	)
	stored, err := scanIssue(row)
	if err != nil {
		return nil, fmt.Errorf("failed to append issue: %w", err)
	}
	return stored, nil
}

func (s *PostgresStore) Update(ctx context.Context, project string, u query.Update) (bool, error) {
	if len(u.Set) == 0 {
		return false, domain.ErrNoUpdateFields
	}

	args := []any{project, u.ID.String()}
	sets := make([]string, 0, len(u.Set))
	for _, a := range u.Set {
		if !a.Field.Accepts(a.Value) {
			return false, domain.ErrIncompatibleValue
		}
		col, err := column(a.Field)
		if err != nil {
			return false, err
		}
		args = append(args, sqlValue(a.Value))
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	q := `UPDATE issues AS i SET ` + strings.Join(sets, ", ") +
		` FROM projects AS p WHERE p.id = i.project_id AND p.name = $1 AND i.id = $2`

	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return false, fmt.Errorf("failed to update issue: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to update issue: %w", err)
	}
	return n > 0, nil
}

func (s *PostgresStore) Remove(ctx context.Context, project string, id uuid.UUID) (bool, error) {
	const q = `DELETE FROM issues AS i USING projects AS p WHERE p.id = i.project_id AND p.name = $1 AND i.id = $2`

	res, err := s.db.ExecContext(ctx, q, project, id.String())
	if err != nil {
		return false, fmt.Errorf("failed to delete issue: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete issue: %w", err)
	}
	return n > 0, nil
}

func (s *PostgresStore) Stats(ctx context.Context) (Stats, error) {
	const q = `
SELECT (SELECT count(*) FROM projects), count(*), count(*) FILTER (WHERE open)
FROM issues
`
	var st Stats
	if err := s.db.QueryRowContext(ctx, q).Scan(&st.Projects, &st.Issues, &st.OpenIssues); err != nil {
		return Stats{}, fmt.Errorf("failed to read stats: %w", err)
	}
	return st, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanIssue(row scanner) (*domain.Issue, error) {
	var issue domain.Issue
	err := row.Scan(
		&issue.ID,
		&issue.IssueTitle,
		&issue.IssueText,
		&issue.CreatedOn,
		&issue.UpdatedOn,
		&issue.CreatedBy,
		&issue.AssignedTo,
		&issue.StatusText,
		&issue.Open,
	)
	if err != nil {
		return nil, err
	}
	issue.CreatedOn = issue.CreatedOn.UTC()
	issue.UpdatedOn = issue.UpdatedOn.UTC()
	return &issue, nil
}
