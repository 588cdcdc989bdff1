package extract

import (
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/coolbeans/svglate/pkg/svg"
)

// run is one unit of source text: a tspan, or the bare text content of a
// text element without tspans.
type run struct {
	id   string
	text string // whitespace-trimmed
}

// variant is one language-tagged text element's worth of runs. Empty runs
// are kept so positions stay aligned with the document.
type variant struct {
	lang string
	runs []run
}

// group is the collected text content of one switch element.
type group struct {
	// defaults holds the non-empty default-language runs in document
	// order; the position of a run is its index here.
	defaults []run

	// defaultByID maps a default run's identifier to its text. Last
	// write wins on duplicate identifiers.
	defaultByID map[string]string

	// variants holds the language-tagged text elements in document
	// order. A repeated language code appears twice; later writes to the
	// index overwrite earlier ones per (key, language) pair.
	variants []variant
}

// collectGroup gathers the default and translated runs of one switch
// element. Returns nil when the switch has no text children or no
// non-empty default runs; such a group contributes nothing.
func collectGroup(switchElem *xmlquery.Node) *group {
	textElems := svg.TextElements(switchElem)
	if len(textElems) == 0 {
		return nil
	}

	g := &group{defaultByID: make(map[string]string)}

	for _, elem := range textElems {
		if svg.Lang(elem) != "" {
			continue
		}

		spans := svg.Spans(elem)
		if len(spans) == 0 {
			if text := Normalize(svg.Text(elem)); text != "" {
				g.defaults = append(g.defaults, run{text: text})
			}
			continue
		}

		for _, span := range spans {
			text := Normalize(svg.Text(span))
			if text == "" {
				continue
			}
			id := svg.ID(span)
			if id != "" {
				g.defaultByID[id] = text
			}
			g.defaults = append(g.defaults, run{id: id, text: text})
		}
	}

	if len(g.defaults) == 0 {
		return nil
	}

	for _, elem := range textElems {
		lang := svg.Lang(elem)
		if lang == "" {
			continue
		}

		v := variant{lang: lang}
		spans := svg.Spans(elem)
		if len(spans) == 0 {
			v.runs = append(v.runs, run{text: Normalize(svg.Text(elem))})
		} else {
			for _, span := range spans {
				v.runs = append(v.runs, run{
					id:   svg.ID(span),
					text: Normalize(svg.Text(span)),
				})
			}
		}
		g.variants = append(g.variants, v)
	}

	return g
}

// mergeInto records the group's content in the global index: every
// default run seeds a key, then each translated run is resolved to its
// default phrase and stored under that phrase's key.
func (g *group) mergeInto(index Index, opts Options) {
	for _, r := range g.defaults {
		key := opts.key(r.text)
		if _, ok := index[key]; !ok {
			index[key] = make(Entry)
		}
	}

	for _, v := range g.variants {
		// Map each translated run's text back to its identifier so a
		// run can be correlated with its default counterpart by id.
		textToID := make(map[string]string, len(v.runs))
		for _, r := range v.runs {
			if r.text != "" && r.id != "" {
				textToID[r.text] = r.id
			}
		}

		for idx, r := range v.runs {
			phrase := g.resolve(r, idx, textToID)
			if phrase == "" {
				continue
			}

			// Prefer a pre-existing exact key over the folded form so
			// distinct-case phrases never collapse by accident.
			key := phrase
			if _, ok := index[key]; !ok {
				key = opts.key(phrase)
			}
			if entry, ok := index[key]; ok {
				entry[v.lang] = r.text
			}
		}
	}
}

// resolve maps one translated run to its default phrase. Identifier
// correlation is tried first: the run's identifier is reduced to its
// base (the segment before the first "-", assuming translated ids are
// suffixed variants of the default id) and looked up verbatim, then
// lower-cased. Positional fallback covers defaults without identifiers.
// Returns "" when the run cannot be resolved.
func (g *group) resolve(r run, idx int, textToID map[string]string) string {
	if id := textToID[r.text]; id != "" {
		base := strings.TrimSpace(strings.SplitN(id, "-", 2)[0])
		if text, ok := g.defaultByID[base]; ok {
			return text
		}
		if text, ok := g.defaultByID[strings.ToLower(base)]; ok {
			return text
		}
	}

	if idx < len(g.defaults) {
		return g.defaults[idx].text
	}
	return ""
}
