package calibre

import (
	"os"
	"path/filepath"
)

// supportedExtensions are the book file extensions the directory fallback
// scan accepts.
var supportedExtensions = map[string]struct{}{
	".epub": {},
	".mobi": {},
	".pdf":  {},
}

// ResolveFile maps a library-relative path recorded in the Calibre database
// to a file on disk. Calibre records the book's directory rather than the
// file itself, so when the joined candidate is a directory, its immediate
// children are scanned (in lexicographic order, which os.ReadDir guarantees)
// for the first entry with a supported extension. A non-directory candidate
// is returned as-is; existence is checked by the importer, not here.
// Returns "" when a directory candidate has no matching child.
func ResolveFile(libraryRoot, relativePath string) string {
	candidate := filepath.Join(libraryRoot, relativePath)

	info, err := os.Stat(candidate)
	if err != nil || !info.IsDir() {
		return candidate
	}

	entries, err := os.ReadDir(candidate)
	if err != nil {
		return ""
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := supportedExtensions[filepath.Ext(entry.Name())]; ok {
			return filepath.Join(candidate, entry.Name())
		}
	}

	return ""
}
