package navigation

import (
	"fmt"
	"log/slog"
	"net/url"
	"sort"
)

// NavigateOptions configures a single navigation.
type NavigateOptions struct {
	// Replace replaces the current history entry instead of pushing.
	Replace bool

	// Query holds parameters merged into the location's query string.
	Query map[string]any
}

// NavigateOption is a functional option for Navigate.
type NavigateOption func(*NavigateOptions)

// WithReplace replaces the current history entry instead of pushing.
func WithReplace() NavigateOption {
	return func(o *NavigateOptions) {
		o.Replace = true
	}
}

// WithQuery adds query parameters to the navigation target.
func WithQuery(params map[string]any) NavigateOption {
	return func(o *NavigateOptions) {
		o.Query = params
	}
}

// mergeQuery folds params into raw, overriding existing keys.
// Keys are encoded in sorted order so the same request always yields the
// same location.
func mergeQuery(raw string, params map[string]any) (string, error) {
	if len(params) == 0 {
		return raw, nil
	}
	q, err := url.ParseQuery(raw)
	if err != nil {
		return "", fmt.Errorf("invalid query %q: %w", raw, err)
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		q.Set(k, fmt.Sprintf("%v", params[k]))
	}
	return q.Encode(), nil
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithMiddleware appends middleware around the resolve step.
// Middleware runs in the order given.
func WithMiddleware(mw ...Middleware) Option {
	return func(n *Navigator) {
		n.middleware = append(n.middleware, mw...)
	}
}

// WithLogger sets the navigator's logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(n *Navigator) {
		if logger != nil {
			n.logger = logger
		}
	}
}
