package navigation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/iot-manager/console/pkg/history"
	"github.com/iot-manager/console/pkg/routepath"
	"github.com/iot-manager/console/pkg/routetable"
)

// ErrAborted is returned when middleware stopped a navigation without
// reporting an error.
var ErrAborted = errors.New("navigation aborted")

// Navigator resolves paths against a route table, records them in a
// navigation host and mounts the resulting view.
//
// Every navigation takes a ticket. A navigation is only applied if no
// newer ticket has been issued by the time it finishes resolving, so when
// requests overlap the most recent one wins.
type Navigator struct {
	table    *routetable.Table
	host     *history.History
	renderer Renderer

	middleware []Middleware
	logger     *slog.Logger

	seq      atomic.Uint64
	inflight atomic.Int32

	// apply serializes the host update and mount of winning navigations.
	apply sync.Mutex
}

// New creates a navigator. The table and host are required; a nil renderer
// mounts nothing.
func New(table *routetable.Table, host *history.History, renderer Renderer, opts ...Option) *Navigator {
	if renderer == nil {
		renderer = RendererFunc(func(context.Context, routetable.Entry) error { return nil })
	}
	n := &Navigator{
		table:    table,
		host:     host,
		renderer: renderer,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Table returns the route table.
func (n *Navigator) Table() *routetable.Table {
	return n.table
}

// Host returns the navigation host.
func (n *Navigator) Host() *history.History {
	return n.host
}

// State reports whether a navigation is in flight.
func (n *Navigator) State() State {
	if n.inflight.Load() > 0 {
		return StateResolving
	}
	return StateIdle
}

// Latest returns the most recently issued ticket.
func (n *Navigator) Latest() uint64 {
	return n.seq.Load()
}

// Navigate resolves path, pushes it onto the host and mounts its view.
// An unknown path returns an error matching routetable.ErrRouteNotFound
// and leaves the host untouched.
func (n *Navigator) Navigate(ctx context.Context, path string, opts ...NavigateOption) (*Result, error) {
	var options NavigateOptions
	for _, opt := range opts {
		opt(&options)
	}
	return n.run(&Request{Ctx: ctx, Kind: KindNavigate, Path: path, Options: options})
}

// NavigateByName navigates to the entry registered under name.
func (n *Navigator) NavigateByName(ctx context.Context, name string, opts ...NavigateOption) (*Result, error) {
	e, ok := n.table.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("no route named %q: %w", name, routetable.ErrRouteNotFound)
	}
	return n.Navigate(ctx, e.Path, opts...)
}

// Back moves the host one entry back and mounts the view found there.
func (n *Navigator) Back(ctx context.Context) (*Result, error) {
	return n.Go(ctx, -1)
}

// Forward moves the host one entry forward and mounts the view found there.
func (n *Navigator) Forward(ctx context.Context) (*Result, error) {
	return n.Go(ctx, 1)
}

// Go moves the host delta entries and mounts the view found there. The
// cursor only moves if the traversal wins; a superseded traversal leaves
// the host untouched.
func (n *Navigator) Go(ctx context.Context, delta int) (*Result, error) {
	loc, from, ok := n.host.Peek(delta)
	if !ok {
		return nil, ErrNoHistory
	}
	kind := KindForward
	if delta < 0 {
		kind = KindBack
	}
	return n.run(&Request{
		Ctx:   ctx,
		Kind:  kind,
		Path:  loc.String(),
		Delta: delta,
		from:  from,
	})
}

// Start mounts the view for the host's current location. It is called once
// when the host is first attached.
func (n *Navigator) Start(ctx context.Context) (*Result, error) {
	return n.run(&Request{Ctx: ctx, Kind: KindStart, Path: n.host.Current().String()})
}

// run drives one navigation through Idle → Resolving → Idle.
func (n *Navigator) run(req *Request) (*Result, error) {
	n.inflight.Add(1)
	defer n.inflight.Add(-1)

	req.Seq = n.seq.Add(1)

	var result *Result
	handler := func() error {
		r, err := n.resolveAndApply(req)
		result = r
		return err
	}

	err := n.chain(req, handler)
	req.Err = err
	if err == nil && result == nil {
		err = ErrAborted
	}
	if err != nil {
		n.logger.Debug("navigation not applied",
			"seq", req.Seq,
			"kind", string(req.Kind),
			"path", req.Path,
			"error", err)
		return nil, err
	}

	n.logger.Debug("navigation applied",
		"seq", result.Seq,
		"kind", string(req.Kind),
		"route", result.Entry.Name,
		"href", result.Href)
	return result, nil
}

func (n *Navigator) chain(req *Request, final func() error) error {
	next := final
	for i := len(n.middleware) - 1; i >= 0; i-- {
		mw := n.middleware[i]
		inner := next
		next = func() error {
			return mw.Handle(req, inner)
		}
	}
	return next()
}

func (n *Navigator) resolveAndApply(req *Request) (*Result, error) {
	if err := req.Ctx.Err(); err != nil {
		return nil, err
	}

	target, err := routepath.ValidateNavPath(req.Path)
	if err != nil {
		return nil, &routetable.RouteNotFoundError{Path: req.Path, Cause: err}
	}

	entry, err := n.table.Match(target.Path)
	if err != nil {
		return nil, &routetable.RouteNotFoundError{Path: req.Path}
	}
	req.Entry = entry

	query, err := mergeQuery(target.Query, req.Options.Query)
	if err != nil {
		return nil, err
	}
	loc := history.Location{Path: entry.Path, Query: query}

	n.apply.Lock()
	defer n.apply.Unlock()

	if req.Seq != n.seq.Load() {
		return nil, ErrSuperseded
	}

	switch {
	case req.Delta != 0:
		// The host moved since the target was computed.
		if cur, from, ok := n.host.Peek(req.Delta); !ok || from != req.from || cur.String() != req.Path {
			return nil, ErrSuperseded
		}
		n.host.Go(req.Delta)
	case req.Kind != KindNavigate:
		// The host already points at loc.
	case req.Options.Replace:
		n.host.Replace(loc)
	default:
		n.host.Push(loc)
	}

	if err := n.renderer.Mount(req.Ctx, entry); err != nil {
		return nil, fmt.Errorf("mount %q: %w", entry.Name, err)
	}

	return &Result{
		Seq:      req.Seq,
		Entry:    entry,
		Location: loc,
		Href:     n.host.Href(loc),
	}, nil
}
