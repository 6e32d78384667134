package routepath

import "strings"

// NormalizeBase returns the canonical form of a mount prefix. An empty base,
// "/" and anything that fails to canonicalize collapse to "/".
func NormalizeBase(base string) string {
	r, err := Canonicalize(base)
	if err != nil {
		return "/"
	}
	return r.Path
}

// StripBase removes the base prefix from p. It reports false when p is not
// under base. The prefix must end on a segment boundary, so base "/app"
// does not claim "/apple".
func StripBase(base, p string) (string, bool) {
	base = NormalizeBase(base)
	if base == "/" {
		if p == "" {
			return "/", true
		}
		return p, strings.HasPrefix(p, "/")
	}
	if p == base {
		return "/", true
	}
	if strings.HasPrefix(p, base+"/") {
		return p[len(base):], true
	}
	return "", false
}

// JoinBase prefixes an application path with base. It is the inverse of
// StripBase.
func JoinBase(base, p string) string {
	base = NormalizeBase(base)
	if p == "" {
		p = "/"
	}
	if base == "/" {
		return p
	}
	if p == "/" {
		return base + "/"
	}
	return base + p
}
