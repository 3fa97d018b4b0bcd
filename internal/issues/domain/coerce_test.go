package domain_test

import (
	"testing"
	"time"

	"github.com/GoSim-25-26J-441/issue-tracker/internal/issues/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseField(t *testing.T) {
	t.Run("accepts every known field", func(t *testing.T) {
		for _, f := range domain.Fields {
			got, ok := domain.ParseField(string(f))
			assert.True(t, ok, f)
			assert.Equal(t, f, got)
		}
	})

	t.Run("rejects anything else", func(t *testing.T) {
		for _, name := range []string{"", "name", "$where", "issues.$.open", "Open", "_ID", "open "} {
			_, ok := domain.ParseField(name)
			assert.False(t, ok, name)
		}
	})
}

func TestFieldMutable(t *testing.T) {
	mutable := map[domain.Field]bool{
		domain.FieldIssueTitle: true,
		domain.FieldIssueText:  true,
		domain.FieldCreatedBy:  true,
		domain.FieldAssignedTo: true,
		domain.FieldStatusText: true,
		domain.FieldOpen:       true,
	}
	for _, f := range domain.Fields {
		assert.Equal(t, mutable[f], f.Mutable(), f)
	}
}

func TestCoerce_Open(t *testing.T) {
	v, err := domain.Coerce(domain.FieldOpen, "true")
	require.NoError(t, err)
	assert.Equal(t, true, v)

	v, err = domain.Coerce(domain.FieldOpen, "false")
	require.NoError(t, err)
	assert.Equal(t, false, v)

	t.Run("anything else passes through as text", func(t *testing.T) {
		for _, raw := range []string{"True", "FALSE", "1", "0", "yes", "", " true"} {
			v, err := domain.Coerce(domain.FieldOpen, raw)
			require.NoError(t, err)
			assert.Equal(t, raw, v)
			assert.False(t, domain.FieldOpen.Accepts(v))
		}
	})
}

func TestCoerce_Timestamps(t *testing.T) {
	want := time.Date(2024, 3, 9, 14, 5, 7, 123000000, time.UTC)

	for _, raw := range []string{
		"2024-03-09T14:05:07.123Z",
		"2024-03-09T16:05:07.123+02:00",
	} {
		v, err := domain.Coerce(domain.FieldCreatedOn, raw)
		require.NoError(t, err)
		got, ok := v.(time.Time)
		require.True(t, ok, raw)
		assert.True(t, want.Equal(got), raw)
	}

	v, err := domain.Coerce(domain.FieldUpdatedOn, "2024-03-09")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), v)

	t.Run("unparseable dates become the invalid sentinel", func(t *testing.T) {
		v, err := domain.Coerce(domain.FieldCreatedOn, "yesterday")
		require.NoError(t, err)
		assert.Equal(t, domain.InvalidTime{Raw: "yesterday"}, v)
		assert.False(t, domain.FieldCreatedOn.Accepts(v))
	})
}

func TestCoerce_ID(t *testing.T) {
	id := uuid.New()

	v, err := domain.Coerce(domain.FieldID, id.String())
	require.NoError(t, err)
	assert.Equal(t, id, v)

	_, err = domain.Coerce(domain.FieldID, "5f1d7f1f1f1f1f1f1f1f1f1f")
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = domain.Coerce(domain.FieldID, "")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestCoerce_TextIsVerbatim(t *testing.T) {
	for _, f := range []domain.Field{
		domain.FieldIssueTitle, domain.FieldIssueText, domain.FieldCreatedBy,
		domain.FieldAssignedTo, domain.FieldStatusText,
	} {
		v, err := domain.Coerce(f, `{"$ne": null}`)
		require.NoError(t, err)
		assert.Equal(t, `{"$ne": null}`, v)
	}
}

func TestNewIssue(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 678912345, time.FixedZone("x", 3600))
	issue := domain.NewIssue(domain.NewIssueRequest{
		IssueTitle: "t",
		IssueText:  "x",
		CreatedBy:  "u",
	}, now)

	assert.NotEqual(t, uuid.Nil, issue.ID)
	assert.True(t, issue.Open)
	assert.Equal(t, "", issue.AssignedTo)
	assert.Equal(t, "", issue.StatusText)
	assert.Equal(t, issue.CreatedOn, issue.UpdatedOn)
	assert.Equal(t, time.UTC, issue.CreatedOn.Location())
	assert.Equal(t, 678000000, issue.CreatedOn.Nanosecond())
}

func TestIssueSet(t *testing.T) {
	issue := domain.Issue{Open: true, IssueTitle: "before"}

	require.NoError(t, issue.Set(domain.FieldOpen, false))
	assert.False(t, issue.Open)

	assert.ErrorIs(t, issue.Set(domain.FieldOpen, "maybe"), domain.ErrIncompatibleValue)
	assert.ErrorIs(t, issue.Set(domain.FieldIssueTitle, true), domain.ErrIncompatibleValue)
	assert.Equal(t, "before", issue.IssueTitle)
}
