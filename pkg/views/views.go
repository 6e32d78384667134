// Package views holds the console's page views and the renderer that
// mounts them.
//
// The views are shells: each renders its heading and a container that the
// page's own client code fills from the backend API. Fetching and drawing
// that data is not done here.
package views

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/iot-manager/console/pkg/routetable"
	"golang.org/x/net/html"
)

// Default sensor query, matching the backend's defaults.
const (
	DefaultSensorType = "soil_temp"
	DefaultSensorDays = "7"
)

// Page is a view built from a fixed node tree.
type Page struct {
	// ID is a stable identifier written as data-view.
	ID string

	// Title is the page heading.
	Title string

	build func(ctx context.Context) []*html.Node
}

var _ routetable.View = (*Page)(nil)

// Render implements routetable.View.
func (p *Page) Render(ctx context.Context, w io.Writer) error {
	section := el("section",
		attrs(a("class", "view"), a("data-view", p.ID)),
		el("h1", nil, text(p.Title)),
	)
	if p.build != nil {
		for _, n := range p.build(ctx) {
			section.AppendChild(n)
		}
	}
	return html.Render(w, section)
}

// Set is the collection of page views, bound to one backend API.
type Set struct {
	SensorData   *Page
	Books        *Page
	Ping         *Page
	PhotoGallery *Page
	NotFound     *Page
}

// NewSet creates the page views. apiBase is the backend URL the pages
// read from; empty means same origin.
func NewSet(apiBase string) *Set {
	api := func(p string, q url.Values) string {
		u := strings.TrimSuffix(apiBase, "/") + p
		if len(q) > 0 {
			u += "?" + q.Encode()
		}
		return u
	}

	return &Set{
		SensorData: &Page{
			ID:    "sensor-data",
			Title: "Sensor Data",
			build: func(context.Context) []*html.Node {
				q := url.Values{"type": {DefaultSensorType}, "days": {DefaultSensorDays}}
				return []*html.Node{
					el("div", attrs(
						a("class", "chart"),
						a("data-source", api("/api/sensor-data", q)),
					)),
				}
			},
		},
		Books: &Page{
			ID:    "books",
			Title: "Books",
			build: func(context.Context) []*html.Node {
				return []*html.Node{
					el("table", attrs(a("class", "books"), a("data-source", api("/books", nil))),
						el("thead", nil,
							el("tr", nil,
								el("th", nil, text("Title")),
								el("th", nil, text("Author")),
								el("th", nil, text("Read?")),
							),
						),
						el("tbody", nil),
					),
				}
			},
		},
		Ping: &Page{
			ID:    "ping",
			Title: "Ping",
			build: func(context.Context) []*html.Node {
				return []*html.Node{
					el("p", attrs(a("class", "pong"), a("data-source", api("/ping", nil)))),
				}
			},
		},
		PhotoGallery: &Page{
			ID:    "photo-gallery",
			Title: "Photo Gallery",
			build: func(context.Context) []*html.Node {
				return []*html.Node{
					el("div", attrs(a("class", "gallery"), a("data-source", api("/api/photos", nil)))),
				}
			},
		},
		NotFound: &Page{
			ID:    "not-found",
			Title: "Page not found",
			build: func(ctx context.Context) []*html.Node {
				p := RequestPath(ctx)
				if p == "" {
					return nil
				}
				return []*html.Node{
					el("p", nil, text("No page at "), el("code", nil, text(p))),
				}
			},
		},
	}
}

type requestPathKey struct{}

// WithRequestPath attaches the requested path to ctx for views that show it.
func WithRequestPath(ctx context.Context, p string) context.Context {
	return context.WithValue(ctx, requestPathKey{}, p)
}

// RequestPath returns the path attached by WithRequestPath.
func RequestPath(ctx context.Context) string {
	p, _ := ctx.Value(requestPathKey{}).(string)
	return p
}
