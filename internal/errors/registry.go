package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Routing (R001-R099)
	"R001": {
		Category:   CategoryRouting,
		Message:    "Route table has no landing entry",
		Suggestion: `Register an entry with path "/".`,
	},
	"R002": {
		Category:   CategoryRouting,
		Message:    "Duplicate route path",
		Suggestion: "Every path may be registered once.",
	},
	"R003": {
		Category:   CategoryRouting,
		Message:    "Duplicate route name",
		Suggestion: "Route names must be unique for lookup-by-name navigation.",
	},
	"R004": {
		Category:   CategoryRouting,
		Message:    "Invalid route path",
		Suggestion: `Paths must be absolute and canonical, e.g. "/books" rather than "books/".`,
	},
	"R005": {
		Category: CategoryRouting,
		Message:  "Route has no name",
	},
	"R006": {
		Category: CategoryRouting,
		Message:  "Route has no view",
	},
	"R007": {
		Category: CategoryRouting,
		Message:  "Navigation superseded",
	},
	"R008": {
		Category: CategoryRouting,
		Message:  "No history entry",
	},
	"R010": {
		Category:   CategoryRouting,
		Message:    "Route not found",
		Suggestion: "Run `console routes` to list the registered paths.",
	},

	// Configuration (C001-C099)
	"C001": {
		Category:   CategoryConfig,
		Message:    "Configuration file not readable",
		Suggestion: "Check the --config path, or omit it to use defaults.",
	},
	"C002": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
	},
	"C003": {
		Category:   CategoryConfig,
		Message:    "Unknown route variant",
		Suggestion: "Use --variant classic or --variant gallery.",
	},

	// Server (S001-S099)
	"S001": {
		Category:   CategoryServer,
		Message:    "Server failed to start",
		Suggestion: "Check that the listen address is free.",
	},
	"S002": {
		Category: CategoryServer,
		Message:  "Server did not shut down cleanly",
	},
}

// Codes returns all registered error codes in order.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Template returns the template for an error code.
func Template(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
