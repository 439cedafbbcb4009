package vfs

import "lesiw.io/vfs/vfspath"

// normalizeForWalk normalizes and relativizes path the same way every
// backend does before consulting its own state.
func normalizeForWalk(path string) string {
	return vfspath.Normalize(vfspath.MakeRelative(path))
}

// ancestorsRootDown returns normalized's ancestor directories from the root
// down to normalized itself, inclusive — the order CreateDirAll's
// generic fallback needs to create directories in.
func ancestorsRootDown(normalized string) []string {
	parents := vfspath.ParentIter(normalized) // nearest-parent-first
	out := make([]string, 0, len(parents)+1)
	for i := len(parents) - 1; i >= 0; i-- {
		out = append(out, parents[i])
	}
	return append(out, normalized)
}
