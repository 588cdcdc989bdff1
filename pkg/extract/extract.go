// Package extract builds a translation index from SVG documents that
// encode translations with the switch/systemLanguage idiom: each switch
// pairs a default-language text element with language-tagged alternates,
// optionally subdivided into identified tspan runs.
package extract

import (
	"github.com/antchfx/xmlquery"

	"github.com/coolbeans/svglate/pkg/svg"
)

// Entry maps a language code to the translated form of one phrase.
type Entry map[string]string

// Index maps a default-language phrase key to its translations. Keys are
// normalized phrases, case-folded when case-insensitive mode is active.
type Index map[string]Entry

// Result holds the extracted phrase index and the derived title index.
// Phrases is omitted from JSON output when no phrase was extracted;
// Titles is always present, possibly empty.
type Result struct {
	Phrases Index `json:"new,omitempty"`
	Titles  Index `json:"title"`
}

// File extracts translations from the SVG document at path. A missing
// path yields svg.ErrNotFound; an unreadable or malformed file yields a
// *svg.ParseError. No partial index is returned on failure.
func File(path string, opts Options) (*Result, error) {
	root, err := svg.Load(path)
	if err != nil {
		return nil, err
	}
	return Tree(root, opts), nil
}

// Tree extracts translations from an already parsed document tree.
// Switch groups are processed in document order; anomalies inside a
// group (missing identifiers, unresolved runs, empty branches) are
// skipped without aborting the rest of the document.
func Tree(root *xmlquery.Node, opts Options) *Result {
	index := make(Index)
	for _, switchElem := range svg.Switches(root) {
		group := collectGroup(switchElem)
		if group == nil {
			continue
		}
		group.mergeInto(index, opts)
	}

	result := &Result{Titles: titleIndex(index)}
	if len(index) > 0 {
		result.Phrases = index
	}
	return result
}
