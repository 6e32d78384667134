package routetable

import (
	"fmt"

	"github.com/iot-manager/console/pkg/routepath"
)

// Table is an immutable set of route entries.
type Table struct {
	entries []Entry
	byPath  map[string]int
	byName  map[string]int
}

// New builds a table from entries, keeping their order for listing.
func New(entries ...Entry) (*Table, error) {
	t := &Table{
		entries: make([]Entry, 0, len(entries)),
		byPath:  make(map[string]int, len(entries)),
		byName:  make(map[string]int, len(entries)),
	}

	for i, e := range entries {
		if !routepath.IsCanonical(e.Path) {
			return nil, fmt.Errorf("entry %d: %w: %q", i, ErrInvalidPath, e.Path)
		}
		if e.Name == "" {
			return nil, fmt.Errorf("entry %d (%s): %w", i, e.Path, ErrEmptyName)
		}
		if e.View == nil {
			return nil, fmt.Errorf("entry %d (%s): %w", i, e.Path, ErrNilView)
		}
		if j, ok := t.byPath[e.Path]; ok {
			return nil, fmt.Errorf("entry %d: %w: %q already used by entry %d", i, ErrDuplicatePath, e.Path, j)
		}
		if j, ok := t.byName[e.Name]; ok {
			return nil, fmt.Errorf("entry %d: %w: %q already used by entry %d", i, ErrDuplicateName, e.Name, j)
		}

		t.byPath[e.Path] = i
		t.byName[e.Name] = i
		t.entries = append(t.entries, e)
	}

	if _, ok := t.byPath[LandingPath]; !ok {
		return nil, ErrMissingLanding
	}

	return t, nil
}

// MustNew is like New but panics on error. Intended for static tables.
func MustNew(entries ...Entry) *Table {
	t, err := New(entries...)
	if err != nil {
		panic(err)
	}
	return t
}

// Resolve returns the view registered for path.
func (t *Table) Resolve(path string) (View, error) {
	e, err := t.Match(path)
	if err != nil {
		return nil, err
	}
	return e.View, nil
}

// Match returns the entry registered for path. Query and fragment parts of
// path are ignored.
func (t *Table) Match(path string) (Entry, error) {
	r, err := routepath.Canonicalize(path)
	if err != nil {
		return Entry{}, &RouteNotFoundError{Path: path, Cause: err}
	}
	i, ok := t.byPath[r.Path]
	if !ok {
		return Entry{}, &RouteNotFoundError{Path: path}
	}
	return t.entries[i], nil
}

// Lookup returns the entry with the given name.
func (t *Table) Lookup(name string) (Entry, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Entry{}, false
	}
	return t.entries[i], true
}

// Landing returns the "/" entry.
func (t *Table) Landing() Entry {
	return t.entries[t.byPath[LandingPath]]
}

// Entries returns a copy of the entries in registration order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}
