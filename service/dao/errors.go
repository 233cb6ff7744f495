package dao

import "errors"

// ErrNotFound is returned when the requested key does not exist.
var ErrNotFound = errors.New("not found")
