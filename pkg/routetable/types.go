package routetable

import (
	"context"
	"io"
)

// View is anything that can be mounted for display. The table never looks
// inside a view; it only hands it back from Resolve.
type View interface {
	// Render writes the view's markup to w.
	Render(ctx context.Context, w io.Writer) error
}

// ViewFunc adapts a function to the View interface.
type ViewFunc func(ctx context.Context, w io.Writer) error

// Render implements View.
func (f ViewFunc) Render(ctx context.Context, w io.Writer) error {
	return f(ctx, w)
}

// LandingPath is the path of the default entry every table must have.
const LandingPath = "/"

// Entry defines one navigable location.
type Entry struct {
	// Path is the literal URL path, e.g. "/books".
	Path string

	// Name identifies the entry for lookup-by-name navigation.
	Name string

	// View is rendered when Path is resolved.
	View View
}

// IsLanding reports whether e is the default "/" entry.
func (e Entry) IsLanding() bool {
	return e.Path == LandingPath
}
