// Package controller defines the shared error vocabulary for the collection
// controllers. Each collection package wraps these so callers can branch on
// the category with errors.Is while still seeing which collection failed.
//
// Absence of a record on a plain lookup is modeled as a nil result, not an
// error; the sentinels here cover operations that require the record to
// exist or that would violate a uniqueness rule.
package controller

import (
	"errors"
)

var (
	// ErrNotFound is returned when a referenced id or key does not resolve.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned on a uniqueness violation (project slug,
	// setting key).
	ErrConflict = errors.New("conflict")

	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)
