// Package errors provides coded, actionable error messages for the console
// CLI.
//
// Each code maps to a category, a short message, a longer detail and,
// where one exists, a suggested fix:
//
//	err := errors.New("R010").WithDetailf("no route matches %q", "/unknown")
//	errors.Print(os.Stderr, err)
//	// ERROR R010: Route not found
//	//
//	//   no route matches "/unknown"
//	//
//	//   Hint: Run `console routes` to list the registered paths.
//
// # Error Codes
//
//   - R001–R010: route table construction and resolution
//   - C001–C003: configuration
//   - S001–S002: HTTP host
//
// Classify maps the sentinel errors of the routing packages onto these
// codes so callers can wrap any error they get back.
package errors
