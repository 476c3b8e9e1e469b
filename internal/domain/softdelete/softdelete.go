// Package softdelete holds the visibility rules shared by entities that are
// marked deleted through a nullable deleted_at timestamp.
package softdelete

import "time"

// Scope selects which rows a lookup may return.
type Scope uint8

const (
	// Default hides soft-deleted rows.
	Default Scope = iota
	// WithTrashed returns rows regardless of their deleted_at value.
	WithTrashed
)

func (s Scope) IncludesTrashed() bool {
	return s == WithTrashed
}

// IsDeleted reports whether a deleted_at value marks the row as deleted.
func IsDeleted(deletedAt *time.Time) bool {
	return deletedAt != nil
}
