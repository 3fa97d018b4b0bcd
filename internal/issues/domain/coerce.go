package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// InvalidTime stands in for a timestamp that failed to parse. It equals no
// stored timestamp.
type InvalidTime struct {
	Raw string
}

func (t InvalidTime) String() string {
	return "Invalid Date(" + t.Raw + ")"
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Coerce converts a raw string into the typed value for field f:
//   - open: "true"/"false" become booleans, anything else stays a string
//   - created_on/updated_on: parsed timestamps, or InvalidTime
//   - _id: a UUID, or ErrInvalidID
//   - everything else: the raw string
func Coerce(f Field, raw string) (any, error) {
	switch f.Kind() {
	case KindBool:
		switch raw {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return raw, nil
	case KindTime:
		return ParseTime(raw), nil
	case KindID:
		id, err := ParseID(raw)
		if err != nil {
			return nil, err
		}
		return id, nil
	default:
		return raw, nil
	}
}

// ParseID parses a client-supplied issue identifier.
func ParseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	return id, nil
}

// ParseTime returns a time.Time for any accepted layout and InvalidTime
// otherwise.
func ParseTime(raw string) any {
	s := strings.TrimSpace(raw)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return InvalidTime{Raw: raw}
}

// Equal compares two coerced values. Timestamps compare by instant.
func Equal(a, b any) bool {
	switch av := a.(type) {
	case time.Time:
		bv, ok := b.(time.Time)
		return ok && av.Equal(bv)
	case uuid.UUID:
		bv, ok := b.(uuid.UUID)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	}
	return false
}
