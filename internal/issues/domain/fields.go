package domain

import (
	"time"

	"github.com/google/uuid"
)

// Field names an issue attribute a client may filter or update by.
type Field string

const (
	FieldID         Field = "_id"
	FieldIssueTitle Field = "issue_title"
	FieldIssueText  Field = "issue_text"
	FieldCreatedOn  Field = "created_on"
	FieldUpdatedOn  Field = "updated_on"
	FieldCreatedBy  Field = "created_by"
	FieldAssignedTo Field = "assigned_to"
	FieldStatusText Field = "status_text"
	FieldOpen       Field = "open"
)

// Kind is the storage type behind a field
type Kind int

const (
	KindText Kind = iota
	KindBool
	KindTime
	KindID
)

// Fields lists every known field in canonical order.
var Fields = []Field{
	FieldID,
	FieldIssueTitle,
	FieldIssueText,
	FieldCreatedOn,
	FieldUpdatedOn,
	FieldCreatedBy,
	FieldAssignedTo,
	FieldStatusText,
	FieldOpen,
}

var fieldIndex = func() map[string]int {
	m := make(map[string]int, len(Fields))
	for i, f := range Fields {
		m[string(f)] = i
	}
	return m
}()

// ParseField is the allow-list: it maps a client-supplied key to a known
// field, or reports false for anything else.
func ParseField(name string) (Field, bool) {
	i, ok := fieldIndex[name]
	if !ok {
		return "", false
	}
	return Fields[i], true
}

// Order is the field's position in Fields.
func (f Field) Order() int {
	if i, ok := fieldIndex[string(f)]; ok {
		return i
	}
	return len(Fields)
}

func (f Field) Kind() Kind {
	switch f {
	case FieldID:
		return KindID
	case FieldOpen:
		return KindBool
	case FieldCreatedOn, FieldUpdatedOn:
		return KindTime
	default:
		return KindText
	}
}

// Mutable reports whether clients may change the field through an update.
// The identifier and both timestamps are owned by the store.
func (f Field) Mutable() bool {
	switch f {
	case FieldIssueTitle, FieldIssueText, FieldCreatedBy, FieldAssignedTo, FieldStatusText, FieldOpen:
		return true
	}
	return false
}

// Accepts reports whether v has the Go type stored under f. A value that
// is not accepted can never equal the stored attribute.
func (f Field) Accepts(v any) bool {
	switch f.Kind() {
	case KindID:
		_, ok := v.(uuid.UUID)
		return ok
	case KindBool:
		_, ok := v.(bool)
		return ok
	case KindTime:
		_, ok := v.(time.Time)
		return ok
	default:
		_, ok := v.(string)
		return ok
	}
}
