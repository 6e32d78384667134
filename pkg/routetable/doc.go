// Package routetable maps literal URL paths to views.
//
// A Table is built once from a static list of entries and is read-only
// afterwards. It holds no global state: callers construct it with New and
// pass the handle to whatever drives navigation.
//
// # Entries
//
// Each Entry is a (path, name, view) triple:
//
//	table, err := routetable.New(
//	    routetable.Entry{Path: "/", Name: "Sensor Data", View: views.SensorData()},
//	    routetable.Entry{Path: "/books", Name: "Books", View: views.Books()},
//	    routetable.Entry{Path: "/ping", Name: "ping", View: views.Ping()},
//	)
//
// New rejects a table that has no "/" entry, repeats a path or a name, or
// contains a non-canonical path or a nil view.
//
// # Resolution
//
// Resolve performs an exact match on the canonical form of the requested
// path, so "/books/" and "//books" resolve like "/books". A path that
// matches nothing yields an error for which errors.Is(err, ErrRouteNotFound)
// holds. Deciding what the user sees in that case is left to the caller.
// Navigators additionally refuse locations that name another origin, such
// as "https://example.com/books" or "//example.com", which Resolve would
// otherwise treat as plain paths.
package routetable
