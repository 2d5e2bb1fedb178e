// Package document exposes the small slice of an HTML tree that the parsers need.
//
// Parsers depend on the Node interface rather than on goquery directly, so they
// can be exercised against synthetic trees. Selection is the goquery-backed
// implementation used for real pages.
package document

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Node is a navigable element of a parsed page.
type Node interface {
	// Find returns every descendant matching a CSS selector, in document order.
	Find(selector string) []Node
	// FindFirst returns the first descendant matching a CSS selector.
	FindFirst(selector string) (Node, bool)
	// Text returns the concatenated text of the node with surrounding whitespace trimmed.
	Text() string
	// LineText returns every text node below the node joined with "\n".
	// Text inside script and style elements is left out.
	LineText() string
}

// Selection adapts a goquery selection to Node.
type Selection struct {
	sel *goquery.Selection
}

// Parse reads an HTML document.
func Parse(r io.Reader) (*Selection, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return &Selection{sel: doc.Selection}, nil
}

// ParseString is Parse for in-memory markup.
func ParseString(markup string) (*Selection, error) {
	return Parse(strings.NewReader(markup))
}

// Find returns every descendant matching selector, in document order.
func (s *Selection) Find(selector string) []Node {
	var nodes []Node
	s.sel.Find(selector).Each(func(_ int, match *goquery.Selection) {
		nodes = append(nodes, &Selection{sel: match})
	})
	return nodes
}

// FindFirst returns the first descendant matching selector.
func (s *Selection) FindFirst(selector string) (Node, bool) {
	match := s.sel.Find(selector).First()
	if match.Length() == 0 {
		return nil, false
	}
	return &Selection{sel: match}, true
}

// Text returns the text of the selection with surrounding whitespace trimmed.
func (s *Selection) Text() string {
	return strings.TrimSpace(s.sel.Text())
}

// LineText returns the text nodes of the selection joined with "\n".
func (s *Selection) LineText() string {
	var parts []string
	for _, n := range s.sel.Nodes {
		collectText(n, &parts)
	}
	return strings.Join(parts, "\n")
}

func collectText(n *html.Node, parts *[]string) {
	switch n.Type {
	case html.TextNode:
		*parts = append(*parts, n.Data)
		return
	case html.ElementNode:
		if n.Data == "script" || n.Data == "style" {
			return
		}
	case html.CommentNode, html.DoctypeNode:
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}
