package routepath

import (
	"errors"
	"strings"
)

// Result is a canonicalized location split into its parts.
type Result struct {
	// Path is the canonical path, always absolute, never with a trailing slash
	// unless it is the root.
	Path string

	// Query is the raw query string without the leading "?".
	Query string

	// Fragment is the raw fragment without the leading "#".
	Fragment string

	// Changed reports whether Path differs from the input path.
	Changed bool
}

// String rebuilds the location as path?query#fragment.
func (r Result) String() string {
	s := r.Path
	if r.Query != "" {
		s += "?" + r.Query
	}
	if r.Fragment != "" {
		s += "#" + r.Fragment
	}
	return s
}

// Canonicalization errors.
var (
	ErrInvalidPath          = errors.New("invalid path")
	ErrBackslashInPath      = errors.New("path contains backslash")
	ErrNullByteInPath       = errors.New("path contains null byte")
	ErrInvalidPercentEscape = errors.New("invalid percent escape sequence")
	ErrPathEscapesRoot      = errors.New("path escapes root via ..")
)

// Canonicalize normalizes an address-bar location so that equivalent spellings
// of the same path compare equal:
//   - a leading slash is added when missing
//   - repeated slashes collapse (/books//x → /books/x)
//   - "." segments are removed and ".." segments resolved
//   - a trailing slash is dropped, except for the root "/"
//
// Query and fragment are split off and returned untouched.
//
// Inputs containing a backslash, a NUL byte (literal or %00), a malformed
// percent escape, or a ".." that climbs above the root are rejected.
func Canonicalize(input string) (Result, error) {
	if input == "" {
		return Result{Path: "/", Changed: true}, nil
	}

	rest, fragment, _ := strings.Cut(input, "#")
	p, query, _ := strings.Cut(rest, "?")

	if strings.Contains(p, "\\") {
		return Result{}, ErrBackslashInPath
	}
	if strings.Contains(p, "\x00") || strings.Contains(strings.ToUpper(p), "%00") {
		return Result{}, ErrNullByteInPath
	}
	if strings.Contains(p, "%") {
		if err := validatePercentEscapes(p); err != nil {
			return Result{}, err
		}
	}

	segments := strings.Split(p, "/")
	out := make([]string, 0, len(segments))
	for _, seg := range segments {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(out) == 0 {
				return Result{}, ErrPathEscapesRoot
			}
			out = out[:len(out)-1]
		default:
			out = append(out, seg)
		}
	}

	canonical := "/" + strings.Join(out, "/")
	return Result{
		Path:     canonical,
		Query:    query,
		Fragment: fragment,
		Changed:  canonical != p,
	}, nil
}

// IsCanonical reports whether p is already in canonical form and carries no
// query or fragment.
func IsCanonical(p string) bool {
	if p == "" || strings.ContainsAny(p, "?#") {
		return false
	}
	r, err := Canonicalize(p)
	return err == nil && !r.Changed
}

// ValidateNavPath canonicalizes a path received from a navigation request.
// Locations that would leave the application are rejected: anything with a
// URL scheme ("https://host", "javascript:") and protocol-relative URLs whose
// first segment names a host ("//example.com/x", "///example.com"). Other repeated slashes,
// as in "//books", collapse like any other path.
func ValidateNavPath(p string) (Result, error) {
	if hasScheme(p) {
		return Result{}, ErrInvalidPath
	}
	if rest := strings.TrimLeft(p, "/"); len(p)-len(rest) >= 2 {
		host, _, _ := strings.Cut(rest, "/")
		if strings.ContainsAny(host, ".:@") {
			return Result{}, ErrInvalidPath
		}
	}
	return Canonicalize(p)
}

// hasScheme reports whether p starts with an RFC 3986 scheme followed by ':'.
func hasScheme(p string) bool {
	for i := 0; i < len(p); i++ {
		c := p[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
		case c == ':':
			return i > 0
		default:
			return false
		}
	}
	return false
}

// validatePercentEscapes checks that every '%' is followed by two hex digits.
func validatePercentEscapes(p string) error {
	for i := 0; i < len(p); i++ {
		if p[i] != '%' {
			continue
		}
		if i+2 >= len(p) || !isHexDigit(p[i+1]) || !isHexDigit(p[i+2]) {
			return ErrInvalidPercentEscape
		}
		i += 2
	}
	return nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
