// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// account lifecycle and the handlers to distinguish between failure
// scenarios without inspecting driver-specific errors.
package repository

import "errors"

// ErrEmailExists is returned when an insert violates the unique constraint
// on users.email. The lifecycle translates this into a validation error.
var ErrEmailExists = errors.New("email already exists")

// ErrNotFound is returned when a lookup matches no row. Repositories map
// sql.ErrNoRows to this value so callers stay decoupled from database/sql.
var ErrNotFound = errors.New("not found")
