// Package news reads the news teasers on the club homepage.
package news

import (
	"github.com/pfrederiksen/mcc-scraper/internal/document"
)

const (
	// ItemSelector identifies one news teaser on the homepage.
	ItemSelector = "div.newsItem"
	// TitleSelector identifies the headline inside an item.
	TitleSelector = "h3"
	// SnippetSelector identifies the teaser text inside an item.
	SnippetSelector = "div.newsSnippet"
)

// Item is one news teaser.
type Item struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// Parse returns the homepage news items in page order. Blocks missing either a
// title or a snippet are skipped.
func Parse(doc document.Node) []Item {
	items := make([]Item, 0)

	for _, block := range doc.Find(ItemSelector) {
		title, ok := block.FindFirst(TitleSelector)
		if !ok {
			continue
		}
		snippet, ok := block.FindFirst(SnippetSelector)
		if !ok {
			continue
		}

		items = append(items, Item{
			Title:   title.Text(),
			Snippet: snippet.Text(),
		})
	}

	return items
}
