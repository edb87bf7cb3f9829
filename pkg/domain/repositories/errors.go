package repositories

import "errors"

// ErrNotFound is returned when a lookup key has no record
var ErrNotFound = errors.New("not found")
