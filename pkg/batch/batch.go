// Package batch runs the SVG translation extractor over a directory of
// files, collecting per-file outcomes so a caller can skip failures
// without losing the rest of the run.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/coolbeans/svglate/pkg/extract"
)

// FileResult records the outcome of extracting one SVG file.
type FileResult struct {
	Path   string          `json:"path"`
	Result *extract.Result `json:"result,omitempty"`
	Err    error           `json:"-"`
	Error  string          `json:"error,omitempty"`
}

// Report summarizes a batch extraction run over one directory.
type Report struct {
	Attempted int          `json:"attempted"`
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Files     []FileResult `json:"files"`
}

// Dir extracts translations from every .svg file directly inside dir,
// in sorted name order. Per-file failures are recorded in the report and
// do not stop the run; only a missing or unreadable directory is an
// error.
func Dir(dir string, opts extract.Options) (*Report, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(entry.Name()), ".svg") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	report := &Report{}
	for _, name := range names {
		path := filepath.Join(dir, name)
		report.Attempted++

		result, err := extract.File(path, opts)
		file := FileResult{Path: path, Result: result, Err: err}
		if err != nil {
			file.Error = err.Error()
			report.Failed++
		} else {
			report.Succeeded++
		}
		report.Files = append(report.Files, file)
	}

	return report, nil
}

// Merged combines the phrase indices of every successful file into one
// index. Keys and language entries are additive across files; when two
// files disagree on the same (key, language) pair, the later file in the
// report's order wins.
func (report *Report) Merged() extract.Index {
	merged := make(extract.Index)
	for _, file := range report.Files {
		if file.Err != nil || file.Result == nil {
			continue
		}
		for key, entry := range file.Result.Phrases {
			target, ok := merged[key]
			if !ok {
				target = make(extract.Entry, len(entry))
				merged[key] = target
			}
			for lang, text := range entry {
				target[lang] = text
			}
		}
	}
	return merged
}
