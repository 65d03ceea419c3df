// Package store holds all persistence logic. Functions take a context and
// the database handle directly; reads return (nil, nil) for missing records,
// mutations against a missing id return ErrNotFound.
package store

import "errors"

// ErrNotFound is returned by mutations whose target record (or referenced
// owner) does not exist.
var ErrNotFound = errors.New("record not found")
