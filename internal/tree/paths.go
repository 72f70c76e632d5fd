package tree

import (
	"path/filepath"
	"strings"
)

// RelativeDestination rebuilds a project-relative path from an absolute
// template path by keeping its last depth+1 segments: the entry itself plus
// depth ancestor directories below the template root.
//
// depth must be the value recorded by the Reader. A wrong depth yields a
// well-formed but wrong path; a depth past the available segments keeps all of them.
func RelativeDestination(absolutePath string, depth int) string {
	segments := splitPath(absolutePath)
	keep := depth + 1
	if keep < 1 {
		keep = 1
	}
	if keep > len(segments) {
		keep = len(segments)
	}
	return filepath.Join(segments[len(segments)-keep:]...)
}

func splitPath(p string) []string {
	p = filepath.ToSlash(filepath.Clean(p))
	var segments []string
	for _, s := range strings.Split(p, "/") {
		if s != "" && s != "." {
			segments = append(segments, s)
		}
	}
	return segments
}
