package extract

import "strings"

// Normalize reduces raw text content to its canonical form by trimming
// surrounding whitespace. Stored translation values keep their case;
// case-folding applies only to key derivation (see Options.key).
func Normalize(text string) string {
	return strings.TrimSpace(text)
}
