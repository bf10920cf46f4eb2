package parser

import (
	"os"
	"path/filepath"
	"strings"
)

// WorkbookExtensions are the file suffixes DiscoverWorkbooks accepts.
// Matching is case-sensitive.
var WorkbookExtensions = []string{".xls", ".xlsx"}

// DiscoverWorkbooks lists the workbook files directly inside dir. A missing
// or unreadable directory yields no files rather than an error.
func DiscoverWorkbooks(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var paths []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() && entry.Type()&os.ModeSymlink == 0 {
			continue
		}
		if hasWorkbookExtension(entry.Name()) {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	return paths
}

func hasWorkbookExtension(name string) bool {
	for _, ext := range WorkbookExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
