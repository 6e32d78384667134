// Package history provides an in-memory navigation host with the semantics
// of the browser History API: a stack of locations, a cursor, push/replace
// and back/forward traversal, plus change notifications.
package history

import (
	"sync"

	"github.com/iot-manager/console/pkg/routepath"
)

// Action describes how the current location changed.
type Action int

const (
	// ActionPush adds a new entry after the cursor.
	ActionPush Action = iota
	// ActionReplace overwrites the entry under the cursor.
	ActionReplace
	// ActionPop moves the cursor through existing entries.
	ActionPop
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionPush:
		return "push"
	case ActionReplace:
		return "replace"
	case ActionPop:
		return "pop"
	default:
		return "unknown"
	}
}

// Location is an application-relative location (without the base prefix).
type Location struct {
	Path  string
	Query string
}

// String returns path?query.
func (l Location) String() string {
	if l.Query == "" {
		return l.Path
	}
	return l.Path + "?" + l.Query
}

// Listener is notified after the current location changes.
type Listener func(loc Location, action Action)

// History is a navigation host. The zero value is not usable; use New.
type History struct {
	base string

	mu        sync.Mutex
	stack     []Location
	index     int
	listeners map[int]Listener
	nextID    int
}

// New creates a history mounted at base, starting at "/".
func New(base string) *History {
	return &History{
		base:      routepath.NormalizeBase(base),
		stack:     []Location{{Path: "/"}},
		listeners: make(map[int]Listener),
	}
}

// Base returns the normalized base prefix.
func (h *History) Base() string {
	return h.base
}

// Current returns the location under the cursor.
func (h *History) Current() Location {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stack[h.index]
}

// Len returns the number of entries in the stack.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.stack)
}

// Index returns the cursor position.
func (h *History) Index() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index
}

// Push adds loc after the cursor, discarding any forward entries.
func (h *History) Push(loc Location) {
	h.mu.Lock()
	h.stack = append(h.stack[:h.index+1], loc)
	h.index++
	h.mu.Unlock()

	h.notify(loc, ActionPush)
}

// Replace overwrites the current entry with loc.
func (h *History) Replace(loc Location) {
	h.mu.Lock()
	h.stack[h.index] = loc
	h.mu.Unlock()

	h.notify(loc, ActionReplace)
}

// Back moves the cursor one entry back.
func (h *History) Back() (Location, bool) {
	return h.Go(-1)
}

// Forward moves the cursor one entry forward.
func (h *History) Forward() (Location, bool) {
	return h.Go(1)
}

// Go moves the cursor by delta entries. It reports false and leaves the
// cursor untouched when the target is out of range or delta is zero.
func (h *History) Go(delta int) (Location, bool) {
	h.mu.Lock()
	target := h.index + delta
	if delta == 0 || target < 0 || target >= len(h.stack) {
		loc := h.stack[h.index]
		h.mu.Unlock()
		return loc, false
	}
	h.index = target
	loc := h.stack[target]
	h.mu.Unlock()

	h.notify(loc, ActionPop)
	return loc, true
}

// Peek returns the location delta entries from the cursor without moving it,
// together with the current cursor position.
func (h *History) Peek(delta int) (loc Location, from int, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	target := h.index + delta
	if delta == 0 || target < 0 || target >= len(h.stack) {
		return h.stack[h.index], h.index, false
	}
	return h.stack[target], h.index, true
}

// Href returns the full URL for loc, including the base prefix.
func (h *History) Href(loc Location) string {
	href := routepath.JoinBase(h.base, loc.Path)
	if loc.Query != "" {
		href += "?" + loc.Query
	}
	return href
}

// Listen registers fn for change notifications and returns a function that
// removes it.
func (h *History) Listen(fn Listener) (unlisten func()) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.listeners[id] = fn
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.listeners, id)
		h.mu.Unlock()
	}
}

// notify calls listeners outside the lock so they may use the history.
func (h *History) notify(loc Location, action Action) {
	h.mu.Lock()
	fns := make([]Listener, 0, len(h.listeners))
	for _, fn := range h.listeners {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(loc, action)
	}
}
