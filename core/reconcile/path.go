package reconcile

import "strings"

// Separator joins path segments.
const Separator = "/"

// Path is a root sentinel followed by an ordered list of folder titles.
type Path struct {
	Root     string
	Segments []string
}

// ParsePath splits raw into its sentinel and titles. Empty segments are dropped.
func ParsePath(raw string) Path {
	var parts []string
	for _, part := range strings.Split(raw, Separator) {
		if part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return Path{}
	}
	return Path{Root: parts[0], Segments: parts[1:]}
}

// IsZero reports whether the path has no root.
func (p Path) IsZero() bool {
	return p.Root == ""
}

// IsRoot reports whether the path names a root container only.
func (p Path) IsRoot() bool {
	return p.Root != "" && len(p.Segments) == 0
}

// Child returns a new path with title appended.
func (p Path) Child(title string) Path {
	segments := make([]string, len(p.Segments), len(p.Segments)+1)
	copy(segments, p.Segments)
	return Path{Root: p.Root, Segments: append(segments, title)}
}

// Prefix returns the path truncated to the first n segments.
func (p Path) Prefix(n int) Path {
	if n > len(p.Segments) {
		n = len(p.Segments)
	}
	return Path{Root: p.Root, Segments: p.Segments[:n]}
}

// Key returns the cumulative identity used to match folders within one run.
func (p Path) Key() string {
	if p.Root == "" {
		return ""
	}
	return strings.Join(append([]string{p.Root}, p.Segments...), Separator)
}

// String implements fmt.Stringer.
func (p Path) String() string {
	return p.Key()
}
