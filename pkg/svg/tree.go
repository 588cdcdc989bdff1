// Package svg wraps XML parsing of SVG documents into a navigable tree
// with namespace-qualified queries for the elements the translation
// extractor cares about: switch, text, and tspan.
package svg

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/antchfx/xmlquery"
)

// Namespace is the SVG XML namespace. Elements outside it are ignored.
const Namespace = "http://www.w3.org/2000/svg"

// ErrNotFound indicates the input path does not exist.
var ErrNotFound = errors.New("svg file not found")

// ParseError indicates the file exists but could not be read or parsed
// as XML.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load parses the SVG document at path and returns the document root.
// A missing path yields ErrNotFound; an unreadable or malformed file
// yields a *ParseError.
func Load(path string) (*xmlquery.Node, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, &ParseError{Path: path, Err: err}
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer file.Close()

	doc, err := xmlquery.Parse(file)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return doc, nil
}

// Switches returns every switch element under root in document order,
// regardless of nesting depth.
func Switches(root *xmlquery.Node) []*xmlquery.Node {
	var switches []*xmlquery.Node
	for _, node := range xmlquery.Find(root, "//switch") {
		if node.NamespaceURI == Namespace {
			switches = append(switches, node)
		}
	}
	return switches
}

// TextElements returns the direct text children of a switch element in
// document order.
func TextElements(switchElem *xmlquery.Node) []*xmlquery.Node {
	return childElements(switchElem, "text")
}

// Spans returns the direct tspan children of a text element in document
// order.
func Spans(textElem *xmlquery.Node) []*xmlquery.Node {
	return childElements(textElem, "tspan")
}

// Text returns the element's own text content: the concatenation of its
// direct text and CDATA children, excluding text nested inside child
// elements.
func Text(node *xmlquery.Node) string {
	var builder strings.Builder
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.TextNode || child.Type == xmlquery.CharDataNode {
			builder.WriteString(child.Data)
		}
	}
	return builder.String()
}

// Lang returns the element's systemLanguage attribute, or "" when absent.
// An empty value marks the default-language branch of a switch.
func Lang(node *xmlquery.Node) string {
	return node.SelectAttr("systemLanguage")
}

// ID returns the element's id attribute, or "" when absent.
func ID(node *xmlquery.Node) string {
	return node.SelectAttr("id")
}

// childElements collects direct children with the given local name in the
// SVG namespace.
func childElements(parent *xmlquery.Node, local string) []*xmlquery.Node {
	var elements []*xmlquery.Node
	for child := parent.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != xmlquery.ElementNode {
			continue
		}
		if child.Data == local && child.NamespaceURI == Namespace {
			elements = append(elements, child)
		}
	}
	return elements
}
