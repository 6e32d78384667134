package navigation

import (
	"context"
	"errors"

	"github.com/iot-manager/console/pkg/history"
	"github.com/iot-manager/console/pkg/routetable"
)

var (
	// ErrSuperseded is returned when a newer navigation was requested before
	// this one could be applied. The host and renderer are left untouched.
	ErrSuperseded = errors.New("navigation superseded")

	// ErrNoHistory is returned by Back and Forward when there is no entry to
	// move to.
	ErrNoHistory = errors.New("no history entry")
)

// State is the navigator's resolution state.
type State int32

const (
	// StateIdle means no navigation is in flight.
	StateIdle State = iota
	// StateResolving means at least one navigation is being resolved.
	StateResolving
)

// String returns the state name.
func (s State) String() string {
	if s == StateResolving {
		return "resolving"
	}
	return "idle"
}

// Renderer mounts a resolved entry for display.
type Renderer interface {
	Mount(ctx context.Context, e routetable.Entry) error
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(ctx context.Context, e routetable.Entry) error

// Mount implements Renderer.
func (f RendererFunc) Mount(ctx context.Context, e routetable.Entry) error {
	return f(ctx, e)
}

// Kind identifies what triggered a navigation.
type Kind string

const (
	KindNavigate Kind = "navigate"
	KindBack     Kind = "back"
	KindForward  Kind = "forward"
	KindStart    Kind = "start"
)

// Request is one navigation as seen by middleware.
type Request struct {
	// Ctx is the request context. Middleware may replace it before calling
	// next, e.g. to attach a tracing span.
	Ctx context.Context

	// Seq is the navigation ticket. Higher tickets win.
	Seq uint64

	// Kind is what triggered the navigation.
	Kind Kind

	// Path is the requested path as given by the caller.
	Path string

	// Options are the navigation options.
	Options NavigateOptions

	// Delta is the number of host entries a back or forward traversal
	// moves. Zero for other kinds.
	Delta int

	// from is the host cursor the traversal was computed against.
	from int

	// Entry is the matched entry. Set once resolution succeeded.
	Entry routetable.Entry

	// Err is the outcome once next has returned.
	Err error
}

// Result describes an applied navigation.
type Result struct {
	Seq      uint64
	Entry    routetable.Entry
	Location history.Location
	Href     string
}

// Middleware wraps the resolve-and-apply step of a navigation.
type Middleware interface {
	// Handle processes the request and calls next to continue the chain.
	// Returning without calling next aborts the navigation with the
	// returned error.
	Handle(req *Request, next func() error) error
}

// MiddlewareFunc is a function adapter for Middleware.
type MiddlewareFunc func(req *Request, next func() error) error

// Handle implements Middleware.
func (f MiddlewareFunc) Handle(req *Request, next func() error) error {
	return f(req, next)
}
