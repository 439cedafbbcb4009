// Package vfspath normalizes and decomposes the forward-slash paths used
// throughout [lesiw.io/vfs], without ever touching a filesystem.
//
// Unlike the standard library's path package, vfspath assumes a single
// synthetic root and does no path-style detection: no Windows drive
// letters, no URL schemes. Every backend in this module (memory tree, ZIP,
// tarball, physical directory) addresses its entries relative to one root,
// so there is never a drive letter or scheme to disambiguate.
package vfspath

import "strings"

// MakeRelative strips any number of leading slashes or backslashes from p,
// so that an absolute-looking path and its relative equivalent normalize to
// the same thing. It does not otherwise touch p.
func MakeRelative(p string) string {
	return strings.TrimLeft(p, `/\`)
}

// Normalize rewrites p into a canonical relative form: backslashes become
// forward slashes, empty components collapse, "." components are dropped,
// and ".." components cancel the nearest preceding real component. A ".."
// with no preceding component to cancel — including one at the very start
// of the synthetic root — is itself dropped rather than escaping the root.
//
// The result never has a leading or trailing slash. An empty, "." or "/"
// input, or any input that normalizes away to nothing, yields "".
//
//	Normalize("///////")                 == ""
//	Normalize("./test/something/../")    == "test"
//	Normalize("../test")                 == "test"
//	Normalize(`a\b\c`)                   == "a/b/c"
func Normalize(p string) string {
	parts := strings.Split(strings.ReplaceAll(p, `\`, "/"), "/")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		switch part {
		case "", ".":
			continue
		case "..":
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		default:
			out = append(out, part)
		}
	}
	return strings.Join(out, "/")
}

// ComponentIter returns p's path components, root to leaf, after
// normalizing it. The synthetic root itself is never included.
//
//	ComponentIter("../many/files/and/directories/") == []string{"many", "files", "and", "directories"}
func ComponentIter(p string) []string {
	normalized := Normalize(p)
	if normalized == "" {
		return nil
	}
	return strings.Split(normalized, "/")
}

// ParentIter returns the normalized ancestor directories of p, nearest
// parent first, ending at the root — the root itself is represented by the
// empty string, always the last element.
//
//	ParentIter("/many/files/and/directories") == []string{"many/files/and", "many/files", "many", ""}
func ParentIter(p string) []string {
	components := ComponentIter(p)
	if len(components) == 0 {
		return nil
	}
	out := make([]string, 0, len(components))
	for i := len(components) - 1; i > 0; i-- {
		out = append(out, strings.Join(components[:i], "/"))
	}
	return append(out, "")
}

// Join joins components into a single normalized path, the same as
// normalizing strings.Join(components, "/").
func Join(components ...string) string {
	return Normalize(strings.Join(components, "/"))
}

// Base returns the final component of p, or "" if p normalizes to the root.
func Base(p string) string {
	components := ComponentIter(p)
	if len(components) == 0 {
		return ""
	}
	return components[len(components)-1]
}

// Dir returns the normalized parent directory of p, or "" if p's parent is
// the root.
func Dir(p string) string {
	components := ComponentIter(p)
	if len(components) <= 1 {
		return ""
	}
	return strings.Join(components[:len(components)-1], "/")
}

// IsRoot reports whether p normalizes to the root.
func IsRoot(p string) bool {
	return Normalize(p) == ""
}
