// Package naming derives C# namespaces and type names from file-system paths.
package naming

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	pathSepRe   = regexp.MustCompile(`[/\\]`)
	invalidRe   = regexp.MustCompile(`[^A-Za-z0-9_.]`)
	multiDotRe  = regexp.MustCompile(`\.{2,}`)
	leadingDots = regexp.MustCompile(`^\.+`)
	trailDots   = regexp.MustCompile(`\.+$`)
)

// Namespace joins a root namespace with a path relative to the project
// folder and turns the result into a dotted C# namespace.
//
// Every segment of the result matches [A-Za-z_][A-Za-z0-9_]*; segments that
// would start with a digit get a leading underscore. An input made only of
// separators yields "".
func Namespace(root, rel string) string {
	joined := filepath.Join(root, rel)
	if joined == "." {
		joined = ""
	}

	ns := pathSepRe.ReplaceAllString(joined, ".")
	ns = invalidRe.ReplaceAllString(ns, "_")
	ns = multiDotRe.ReplaceAllString(ns, ".")
	ns = leadingDots.ReplaceAllString(ns, "")
	ns = trailDots.ReplaceAllString(ns, "")

	segs := strings.Split(ns, ".")
	for i, s := range segs {
		if s != "" && s[0] >= '0' && s[0] <= '9' {
			segs[i] = "_" + s
		}
	}
	return strings.Join(segs, ".")
}

// TypeName turns a file base name (without extension) into a type name:
// a leading lower-case ASCII letter is upper-cased and spaces and hyphens
// become underscores. Anything else passes through unchanged.
func TypeName(base string) string {
	if base == "" {
		return ""
	}
	b := []byte(base)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	for i, c := range b {
		if c == ' ' || c == '-' {
			b[i] = '_'
		}
	}
	return string(b)
}

// TypeNameFromPath returns TypeName of the path's base name with its
// extension removed. A name that is only an extension, such as ".cs", is
// kept whole.
func TypeNameFromPath(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == base {
		return TypeName(base)
	}
	return TypeName(strings.TrimSuffix(base, ext))
}
