// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver errors. For example, ErrNotFound maps to an HTTP 404
// while ErrDuplicate maps to a 409.
package repository

import "errors"

// ErrNotFound is returned when a point lookup matches no row. Handlers
// should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert or update violates a unique
// constraint, such as reusing a note slug or a category name. Handlers
// should translate this into an HTTP 409 response.
var ErrDuplicate = errors.New("duplicate")
