// Package path provides normalisation of source directory paths.
//
// Every path that reaches the admission filter passes through this package
// before comparison: the workspace, the approved directories, the requested
// directories and the results of glob expansion. Comparisons are plain string
// comparisons afterwards, so all forms must agree.
//
// Normalisation rules:
//   - Backslashes become forward slashes on every platform
//   - Drive letters (C:) are preserved
//   - Repeated separators collapse and "." / ".." are resolved lexically
//   - No trailing slash unless the path is a root ("/" or "C:/")
//
// Windows-style paths are handled the same way on all operating systems.
// Build agents report paths in their own convention, so a Linux controller
// must still understand "C:\work\src".
package path

import (
	"path"
	"strings"
)

// Normalise converts p into the canonical slash-separated form.
// Returns "" for empty input.
func Normalise(p string) string {
	if p == "" {
		return ""
	}

	// filepath.ToSlash is a no-op on Unix, so convert explicitly
	p = strings.ReplaceAll(p, "\\", "/")

	drive, rest := splitDrive(p)
	if rest == "" {
		if drive != "" {
			return drive + "/"
		}
		return ""
	}

	cleaned := path.Clean(rest)
	if drive != "" && cleaned == "." {
		return drive + "/"
	}
	return drive + cleaned
}

// IsAbs reports whether p is absolute in either platform convention:
// a leading slash, or a drive letter.
func IsAbs(p string) bool {
	p = strings.ReplaceAll(p, "\\", "/")
	if strings.HasPrefix(p, "/") {
		return true
	}
	drive, _ := splitDrive(p)
	return drive != ""
}

// Resolve joins rel onto base and normalises the result.
// An absolute rel is returned normalised, ignoring base.
func Resolve(base, rel string) string {
	if IsAbs(rel) {
		return Normalise(rel)
	}
	if rel == "" {
		return Normalise(base)
	}
	return Normalise(Normalise(base) + "/" + rel)
}

// Within reports whether p is a proper descendant of root.
// Both arguments are normalised first; p == root is not within.
func Within(root, p string) bool {
	_, ok := Rel(root, p)
	return ok
}

// Rel returns p relative to root when p is a proper descendant of root.
//
// Examples (root="/w"):
//   - "/w/src" -> "src", true
//   - "/w/src/main" -> "src/main", true
//   - "/w" -> "", false
//   - "/work" -> "", false (sibling sharing a prefix)
func Rel(root, p string) (string, bool) {
	root = Normalise(root)
	p = Normalise(p)
	if root == "" || p == "" || p == root {
		return "", false
	}

	prefix := root
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	if !strings.HasPrefix(p, prefix) {
		return "", false
	}
	return p[len(prefix):], true
}

// splitDrive separates a leading drive letter ("C:") from the rest of p.
func splitDrive(p string) (drive, rest string) {
	if len(p) >= 2 && p[1] == ':' && isLetter(p[0]) {
		return p[:2], p[2:]
	}
	return "", p
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
