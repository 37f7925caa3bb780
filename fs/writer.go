// Package fs provides file-based persistence for search reports.
package fs

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fwojciec/medsearch"
)

var unsafeFilenameChars = regexp.MustCompile(`[^\w\s-]`)

// DefaultFilename derives the report filename for a query.
// Example: "children's tylenol" → childrens_tylenol_results.md
func DefaultFilename(query string) string {
	name := unsafeFilenameChars.ReplaceAllString(query, "")
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, " ", "_")
	return name + "_results.md"
}

// Ensure Writer implements medsearch.ReportWriter at compile time.
var _ medsearch.ReportWriter = (*Writer)(nil)

// Writer writes reports as plain-text files. By default the filename is
// derived from the query; an explicit path overrides the derivation.
type Writer struct {
	baseDir string
	path    string
}

// NewWriter creates a new Writer that writes query-derived filenames to
// the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// NewFileWriter creates a new Writer that writes to exactly the given path.
func NewFileWriter(path string) *Writer {
	return &Writer{path: path}
}

// WriteReport writes a report to disk and returns the path written.
func (w *Writer) WriteReport(query, content string) (string, error) {
	fullPath := w.path
	if fullPath == "" {
		if query == "" {
			return "", medsearch.Errorf(medsearch.EINVALID, "query required")
		}
		fullPath = filepath.Join(w.baseDir, DefaultFilename(query))
	}

	if dir := filepath.Dir(fullPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}

	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		return "", err
	}
	return fullPath, nil
}
