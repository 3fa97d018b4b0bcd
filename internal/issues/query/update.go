package query

import (
	"sort"
	"time"

	"github.com/GoSim-25-26J-441/issue-tracker/internal/issues/domain"
	"github.com/google/uuid"
)

// Assignment sets one issue field to a coerced value
type Assignment struct {
	Field domain.Field
	Value any
}

// Update is a partial modification of the issue identified by ID
type Update struct {
	ID    uuid.UUID
	RawID string
	Set   []Assignment
	// Ignored holds keys that are unknown or not client-mutable.
	Ignored []string
}

// BuildUpdate turns a request body into an Update stamped with now.
//
// Errors, in the order they are checked:
//   - domain.ErrMissingID when the body has no _id key
//   - domain.ErrNoUpdateFields when no mutable field remains besides _id
//   - domain.ErrInvalidID when _id is not a valid identifier
//   - domain.ErrIncompatibleValue when a value cannot be stored in its field
//
// RawID is filled in as soon as _id is present so callers can echo it.
func BuildUpdate(body map[string]string, now time.Time) (Update, error) {
	rawID, ok := body[string(domain.FieldID)]
	if !ok {
		return Update{}, domain.ErrMissingID
	}
	u := Update{RawID: rawID}

	for key, raw := range body {
		field, known := domain.ParseField(key)
		if field == domain.FieldID {
			continue
		}
		if !known || !field.Mutable() {
			u.Ignored = append(u.Ignored, key)
			continue
		}
		v, err := domain.Coerce(field, raw)
		if err != nil {
			return u, err
		}
		u.Set = append(u.Set, Assignment{Field: field, Value: v})
	}
	sort.Strings(u.Ignored)

	if len(u.Set) == 0 {
		u.Set = nil
		return u, domain.ErrNoUpdateFields
	}

	id, err := domain.ParseID(rawID)
	if err != nil {
		return u, err
	}
	u.ID = id

	sort.Slice(u.Set, func(i, j int) bool {
		return u.Set[i].Field.Order() < u.Set[j].Field.Order()
	})
	for _, a := range u.Set {
		if !a.Field.Accepts(a.Value) {
			return u, domain.ErrIncompatibleValue
		}
	}

	u.Set = append(u.Set, Assignment{Field: domain.FieldUpdatedOn, Value: domain.Timestamp(now)})
	return u, nil
}

// Apply writes every assignment onto the issue. It stops at the first
// incompatible value; BuildUpdate never produces one.
func (u Update) Apply(issue *domain.Issue) error {
	for _, a := range u.Set {
		if err := issue.Set(a.Field, a.Value); err != nil {
			return err
		}
	}
	return nil
}

// Fields lists the assigned fields in order.
func (u Update) Fields() []domain.Field {
	out := make([]domain.Field, 0, len(u.Set))
	for _, a := range u.Set {
		out = append(out, a.Field)
	}
	return out
}
