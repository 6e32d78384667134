package routetable

import (
	"errors"
	"fmt"
)

// ErrRouteNotFound is returned when a requested path matches no entry.
var ErrRouteNotFound = errors.New("route not found")

// Construction errors returned by New.
var (
	ErrMissingLanding = errors.New("no entry for path \"/\"")
	ErrDuplicatePath  = errors.New("duplicate path")
	ErrDuplicateName  = errors.New("duplicate name")
	ErrInvalidPath    = errors.New("invalid path")
	ErrEmptyName      = errors.New("empty name")
	ErrNilView        = errors.New("nil view")
)

// RouteNotFoundError carries the path that failed to resolve.
// It matches ErrRouteNotFound under errors.Is.
type RouteNotFoundError struct {
	// Path is the path as requested, before canonicalization.
	Path string

	// Cause is set when the path could not be canonicalized at all.
	Cause error
}

// Error implements the error interface.
func (e *RouteNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("route not found: %q: %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("route not found: %q", e.Path)
}

// Is reports whether target is ErrRouteNotFound.
func (e *RouteNotFoundError) Is(target error) bool {
	return target == ErrRouteNotFound
}

// Unwrap returns the canonicalization error, if any.
func (e *RouteNotFoundError) Unwrap() error {
	return e.Cause
}

// IsNotFound reports whether err is a route-not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRouteNotFound)
}
