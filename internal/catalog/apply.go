package catalog

import (
	"fmt"
	"strconv"

	"github.com/PuerkitoBio/goquery"
)

const (
	cardSelector      = ".product-card"
	buttonSelector    = ".filter-btn"
	countSelector     = "#product-count"
	noResultsSelector = "#no-results"

	visibleStyle = "display:block;opacity:1;transform:translateY(0)"
	hiddenStyle  = "display:none;opacity:0;transform:translateY(20px)"
)

// EntriesFromDocument reads the product cards of doc in document order.
func EntriesFromDocument(doc *goquery.Document) []Entry {
	var out []Entry
	doc.Find(cardSelector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, Entry{
			ID:       s.AttrOr("data-id", ""),
			Category: s.AttrOr("data-category", ""),
			NameRW:   s.AttrOr("data-name-rw", ""),
			NameEN:   s.AttrOr("data-name-en", ""),
			Name:     s.AttrOr("data-name", ""),
		})
	})
	return out
}

// Apply filters the product cards of doc in place.
func Apply(doc *goquery.Document, f Filter) Result {
	res := Plan(EntriesFromDocument(doc), f)
	ApplyResult(doc, res)
	return res
}

// ApplyResult writes a computed result into doc: card styles, the visible
// count, the "no results" message and the active filter button.
func ApplyResult(doc *goquery.Document, res Result) {
	cards := doc.Find(cardSelector)
	for _, it := range res.Items {
		s := cards.Eq(it.Index)
		if it.Visible {
			s.SetAttr("style", fmt.Sprintf("%s;transition-delay:%dms", visibleStyle, it.Delay.Milliseconds()))
			s.RemoveAttr("data-hide-after-ms")
			s.RemoveClass("is-filtered-out")
			continue
		}
		s.SetAttr("style", hiddenStyle)
		s.SetAttr("data-hide-after-ms", strconv.FormatInt(it.Delay.Milliseconds(), 10))
		s.AddClass("is-filtered-out")
	}

	doc.Find(countSelector).SetText(strconv.Itoa(res.Count))

	noResults := doc.Find(noResultsSelector)
	if res.NoResults() {
		noResults.RemoveClass("hidden")
	} else {
		noResults.AddClass("hidden")
	}

	selected := res.Filter.Category
	if selected == "" {
		selected = AllCategories
	}
	doc.Find(buttonSelector).Each(func(_ int, s *goquery.Selection) {
		if s.AttrOr("data-category", "") == selected {
			s.AddClass("active")
			s.SetAttr("aria-pressed", "true")
			return
		}
		s.RemoveClass("active")
		s.SetAttr("aria-pressed", "false")
	})
}
