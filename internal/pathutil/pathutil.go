package pathutil

import (
	"os"
	"path/filepath"
	"strings"
)

// NormalizePath converts Windows-style separators to the current platform's separator
// and cleans the resulting path.
func NormalizePath(p string) string {
	if p == "" {
		return ""
	}

	// Replace Windows separators and collapse redundant separators/segments.
	replaced := strings.ReplaceAll(p, "\\", "/")
	return filepath.Clean(filepath.FromSlash(replaced))
}

// Absolute normalizes p and resolves it against the current working directory
// when it is not already absolute.
func Absolute(p string) (string, error) {
	normalized := NormalizePath(p)
	if filepath.IsAbs(normalized) {
		return normalized, nil
	}

	abs, err := filepath.Abs(normalized)
	if err != nil {
		return "", err
	}

	return NormalizePath(abs), nil
}

// Canonical resolves symlinks in p and returns the cleaned result. When the
// path cannot be resolved (dangling link, permission), the normalized input is
// returned so callers can still use it as a map key.
func Canonical(p string) string {
	normalized := NormalizePath(p)
	resolved, err := filepath.EvalSymlinks(normalized)
	if err != nil {
		return normalized
	}

	return NormalizePath(resolved)
}

// Covers reports whether path equals root or sits anywhere below it. Both
// arguments are normalized before comparison, and the prefix test is
// segment-aware so "/a/bc" is never covered by "/a/b".
func Covers(root, path string) bool {
	r := NormalizePath(root)
	p := NormalizePath(path)
	if r == "" || p == "" {
		return false
	}

	if r == p {
		return true
	}

	sep := string(filepath.Separator)
	if !strings.HasSuffix(r, sep) {
		r += sep
	}

	return strings.HasPrefix(p, r)
}

// IsHiddenName reports whether a base name is dot-hidden.
func IsHiddenName(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// Exists reports whether the path is present on disk.
func Exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
