package extract

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/antchfx/xmlquery"

	"github.com/coolbeans/svglate/pkg/svg"
)

func parseDoc(t *testing.T, doc string) *xmlquery.Node {
	t.Helper()
	root, err := xmlquery.Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Failed to parse fixture: %v", err)
	}
	return root
}

func TestTree_CrossReferenceByIdentifier(t *testing.T) {
	doc := `<svg xmlns="http://www.w3.org/2000/svg">
  <switch>
    <text><tspan id="trsvg1">Hello</tspan></text>
    <text systemLanguage="fr"><tspan id="trsvg1-fr">Bonjour</tspan></text>
  </switch>
</svg>`

	result := Tree(parseDoc(t, doc), DefaultOptions())

	entry, ok := result.Phrases["hello"]
	if !ok {
		t.Fatalf("Expected key %q in phrase index, got keys %v", "hello", keys(result.Phrases))
	}
	if entry["fr"] != "Bonjour" {
		t.Errorf("Expected fr translation %q, got %q", "Bonjour", entry["fr"])
	}
}

func TestTree_PositionalFallback(t *testing.T) {
	doc := `<svg xmlns="http://www.w3.org/2000/svg">
  <switch>
    <text>Hello</text>
    <text systemLanguage="de">Hallo</text>
  </switch>
</svg>`

	result := Tree(parseDoc(t, doc), DefaultOptions())

	entry, ok := result.Phrases["hello"]
	if !ok {
		t.Fatalf("Expected key %q in phrase index, got keys %v", "hello", keys(result.Phrases))
	}
	if entry["de"] != "Hallo" {
		t.Errorf("Expected de translation %q, got %q", "Hallo", entry["de"])
	}
}

func TestTree_TitleIndex(t *testing.T) {
	doc := `<svg xmlns="http://www.w3.org/2000/svg">
  <switch>
    <text><tspan id="t1">Paris2023</tspan></text>
    <text systemLanguage="fr"><tspan id="t1-fr">Paris2023</tspan></text>
    <text systemLanguage="en"><tspan id="t1-en">Paris2023</tspan></text>
  </switch>
</svg>`

	result := Tree(parseDoc(t, doc), DefaultOptions())

	entry, ok := result.Titles["paris"]
	if !ok {
		t.Fatalf("Expected title key %q, got keys %v", "paris", keys(result.Titles))
	}
	if entry["fr"] != "Paris" || entry["en"] != "Paris" {
		t.Errorf("Expected year-stripped translations, got %v", entry)
	}
}

func TestTree_TitleIndexMismatchedYear(t *testing.T) {
	doc := `<svg xmlns="http://www.w3.org/2000/svg">
  <switch>
    <text><tspan id="t1">Paris2023</tspan></text>
    <text systemLanguage="fr"><tspan id="t1-fr">Paris2022</tspan></text>
  </switch>
</svg>`

	result := Tree(parseDoc(t, doc), DefaultOptions())

	if _, ok := result.Titles["paris"]; ok {
		t.Errorf("Expected no title entry for mismatched year, got %v", result.Titles["paris"])
	}
	if len(result.Titles) != 0 {
		t.Errorf("Expected empty title index, got %v", result.Titles)
	}
}

func TestTree_OmitsPhrasesWhenNoDefaults(t *testing.T) {
	doc := `<svg xmlns="http://www.w3.org/2000/svg">
  <switch>
    <text systemLanguage="fr">Bonjour</text>
  </switch>
  <switch>
    <text>   </text>
  </switch>
</svg>`

	result := Tree(parseDoc(t, doc), DefaultOptions())

	if result.Phrases != nil {
		t.Errorf("Expected no phrase index, got %v", result.Phrases)
	}
	if result.Titles == nil || len(result.Titles) != 0 {
		t.Errorf("Expected empty title index, got %v", result.Titles)
	}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("Failed to marshal result: %v", err)
	}
	if strings.Contains(string(data), `"new"`) {
		t.Errorf("Expected %q to be absent from output, got %s", "new", data)
	}
	if !strings.Contains(string(data), `"title":{}`) {
		t.Errorf("Expected empty title object in output, got %s", data)
	}
}

func TestTree_DefaultsSeedKeysWithoutTranslations(t *testing.T) {
	doc := `<svg xmlns="http://www.w3.org/2000/svg">
  <switch>
    <text>Hello</text>
  </switch>
</svg>`

	result := Tree(parseDoc(t, doc), DefaultOptions())

	entry, ok := result.Phrases["hello"]
	if !ok {
		t.Fatalf("Expected seeded key %q, got keys %v", "hello", keys(result.Phrases))
	}
	if len(entry) != 0 {
		t.Errorf("Expected empty entry for untranslated phrase, got %v", entry)
	}
}

func TestTree_NestedSwitchElements(t *testing.T) {
	doc := `<svg xmlns="http://www.w3.org/2000/svg">
  <g>
    <g>
      <switch>
        <text>Deep</text>
        <text systemLanguage="es">Profundo</text>
      </switch>
    </g>
  </g>
</svg>`

	result := Tree(parseDoc(t, doc), DefaultOptions())

	if result.Phrases["deep"]["es"] != "Profundo" {
		t.Errorf("Expected nested switch to be extracted, got %v", result.Phrases)
	}
}

func TestTree_MultipleGroupsExtendEntries(t *testing.T) {
	doc := `<svg xmlns="http://www.w3.org/2000/svg">
  <switch>
    <text>Hello</text>
    <text systemLanguage="fr">Bonjour</text>
  </switch>
  <switch>
    <text>Hello</text>
    <text systemLanguage="de">Hallo</text>
  </switch>
</svg>`

	result := Tree(parseDoc(t, doc), DefaultOptions())

	entry := result.Phrases["hello"]
	if entry["fr"] != "Bonjour" || entry["de"] != "Hallo" {
		t.Errorf("Expected entry extended across groups, got %v", entry)
	}
}

func TestTree_RepeatedLanguageLastWriteWins(t *testing.T) {
	doc := `<svg xmlns="http://www.w3.org/2000/svg">
  <switch>
    <text>Hello</text>
    <text systemLanguage="fr">Salut</text>
    <text systemLanguage="fr">Bonjour</text>
  </switch>
</svg>`

	result := Tree(parseDoc(t, doc), DefaultOptions())

	if result.Phrases["hello"]["fr"] != "Bonjour" {
		t.Errorf("Expected later fr element to win, got %q", result.Phrases["hello"]["fr"])
	}
}

func TestTree_DuplicateIdentifierLastWriteWins(t *testing.T) {
	doc := `<svg xmlns="http://www.w3.org/2000/svg">
  <switch>
    <text>
      <tspan id="t1">First</tspan>
      <tspan id="t1">Second</tspan>
    </text>
    <text systemLanguage="fr"><tspan id="t1-fr">Deuxieme</tspan></text>
  </switch>
</svg>`

	result := Tree(parseDoc(t, doc), DefaultOptions())

	if result.Phrases["second"]["fr"] != "Deuxieme" {
		t.Errorf("Expected translation under later duplicate's text, got %v", result.Phrases)
	}
}

func TestTree_BaseIdentifierCaseFoldedLookup(t *testing.T) {
	doc := `<svg xmlns="http://www.w3.org/2000/svg">
  <switch>
    <text><tspan id="greet">Hello</tspan></text>
    <text systemLanguage="fr"><tspan id="GREET-fr">Bonjour</tspan></text>
  </switch>
</svg>`

	result := Tree(parseDoc(t, doc), DefaultOptions())

	if result.Phrases["hello"]["fr"] != "Bonjour" {
		t.Errorf("Expected lower-cased base identifier to resolve, got %v", result.Phrases)
	}
}

func TestTree_UnresolvedRunSkipped(t *testing.T) {
	doc := `<svg xmlns="http://www.w3.org/2000/svg">
  <switch>
    <text>Hello</text>
    <text systemLanguage="fr">
      <tspan>Bonjour</tspan>
      <tspan>Surplus</tspan>
    </text>
  </switch>
</svg>`

	result := Tree(parseDoc(t, doc), DefaultOptions())

	entry := result.Phrases["hello"]
	if entry["fr"] != "Bonjour" {
		t.Errorf("Expected first run resolved positionally, got %v", entry)
	}
	if len(result.Phrases) != 1 {
		t.Errorf("Expected surplus run to contribute nothing, got %v", result.Phrases)
	}
}

func TestTree_CaseSensitiveMode(t *testing.T) {
	doc := `<svg xmlns="http://www.w3.org/2000/svg">
  <switch>
    <text>Hello</text>
    <text systemLanguage="fr">Bonjour</text>
  </switch>
</svg>`

	result := Tree(parseDoc(t, doc), Options{CaseInsensitive: false})

	entry, ok := result.Phrases["Hello"]
	if !ok {
		t.Fatalf("Expected exact-case key %q, got keys %v", "Hello", keys(result.Phrases))
	}
	if entry["fr"] != "Bonjour" {
		t.Errorf("Expected fr translation %q, got %q", "Bonjour", entry["fr"])
	}
	if _, ok := result.Phrases["hello"]; ok {
		t.Error("Expected no folded key in case-sensitive mode")
	}
}

func TestTree_IgnoresForeignNamespace(t *testing.T) {
	doc := `<svg xmlns="http://www.w3.org/2000/svg" xmlns:x="http://example.com/x">
  <x:switch>
    <x:text>Hello</x:text>
  </x:switch>
</svg>`

	result := Tree(parseDoc(t, doc), DefaultOptions())

	if result.Phrases != nil {
		t.Errorf("Expected foreign-namespace switch to be ignored, got %v", result.Phrases)
	}
}

func TestFile_NotFound(t *testing.T) {
	_, err := File(filepath.Join(t.TempDir(), "missing.svg"), DefaultOptions())
	if !errors.Is(err, svg.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestFile_ParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.svg")
	if err := os.WriteFile(path, []byte("<svg><switch></svg>"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := File(path, DefaultOptions())

	var parseErr *svg.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Expected *svg.ParseError, got %v", err)
	}
}

func TestFile_Idempotence(t *testing.T) {
	doc := `<svg xmlns="http://www.w3.org/2000/svg">
  <switch>
    <text><tspan id="t1">Hello</tspan></text>
    <text systemLanguage="fr"><tspan id="t1-fr">Bonjour</tspan></text>
    <text systemLanguage="de"><tspan id="t1-de">Hallo</tspan></text>
  </switch>
</svg>`

	path := filepath.Join(t.TempDir(), "greetings.svg")
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	first, err := File(path, DefaultOptions())
	if err != nil {
		t.Fatalf("First extraction failed: %v", err)
	}
	second, err := File(path, DefaultOptions())
	if err != nil {
		t.Fatalf("Second extraction failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical results, got %v and %v", first, second)
	}
}

func keys(index Index) []string {
	var out []string
	for key := range index {
		out = append(out, key)
	}
	return out
}
