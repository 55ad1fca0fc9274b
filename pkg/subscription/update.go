package subscription

import "time"

// Update is one change notification.
type Update struct {
	// Path is the path that changed.
	Path string

	// Fields are the fields the change covers.
	Fields FieldMask

	// Value is the new value. Its meaning depends on Fields.
	Value any

	// Timestamp is when the change happened.
	Timestamp time.Time
}
