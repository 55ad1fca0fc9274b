package tree

import "strings"

// Separator separates path segments.
const Separator = "."

// SplitPath splits a path into its segments.
func SplitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, Separator)
}

// JoinPath joins segments into a path.
func JoinPath(segments ...string) string {
	return strings.Join(segments, Separator)
}

// ParentPath returns path without its last segment, or "" for a
// single-segment path.
func ParentPath(path string) string {
	i := strings.LastIndex(path, Separator)
	if i < 0 {
		return ""
	}
	return path[:i]
}

// LastSegment returns the final segment of path.
func LastSegment(path string) string {
	return path[strings.LastIndex(path, Separator)+1:]
}

// AncestryChain returns every prefix of path, shallowest first, ending with
// path itself. "A.B.C" yields ["A", "A.B", "A.B.C"].
func AncestryChain(path string) []string {
	if path == "" {
		return nil
	}
	chain := make([]string, 0, strings.Count(path, Separator)+1)
	for i := 0; i < len(path); i++ {
		if path[i] == Separator[0] {
			chain = append(chain, path[:i])
		}
	}
	return append(chain, path)
}

// IsAncestorOrSelf reports whether ancestor equals path or is one of its
// prefixes on a segment boundary.
func IsAncestorOrSelf(ancestor, path string) bool {
	if ancestor == "" {
		return false
	}
	if ancestor == path {
		return true
	}
	return len(path) > len(ancestor) &&
		path[len(ancestor)] == Separator[0] &&
		strings.HasPrefix(path, ancestor)
}

// Depth returns the number of segments in path minus one.
func Depth(path string) int {
	return strings.Count(path, Separator)
}
