// Package navigation ties a route table to a navigation host and a view
// renderer.
//
// A Navigator receives navigation requests (from address-bar changes,
// links or programmatic calls), resolves them against the table, records
// the winning location in the host and mounts the matched view:
//
//	nav := navigation.New(table, history.New("/"), renderer,
//	    navigation.WithMiddleware(middleware.Prometheus()),
//	)
//	if _, err := nav.Navigate(ctx, "/books"); routetable.IsNotFound(err) {
//	    // show a fallback
//	}
//
// Requests that overlap are settled last-writer-wins: a navigation that
// finishes resolving after a newer one was issued returns ErrSuperseded
// and changes nothing. That includes Back, Forward and Go: the host cursor
// only moves once the traversal has won.
package navigation
