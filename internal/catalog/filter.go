package catalog

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
)

const (
	// StaggerStep separates the fade-in of consecutive visible entries.
	StaggerStep = 50 * time.Millisecond
	// HideDelay is how long a hidden entry fades before leaving the layout.
	HideDelay = 300 * time.Millisecond
)

// Filter is the in-memory filter state: one selected category and a
// case-folded search term.
type Filter struct {
	Category string
	Term     string
}

// NewFilter normalizes raw input; an empty category means "all".
func NewFilter(category, term string) Filter {
	category = strings.TrimSpace(category)
	if category == "" {
		category = AllCategories
	}
	return Filter{Category: category, Term: fold(term)}
}

// fold case-folds s. A Caser keeps state, so one is created per call.
func fold(s string) string {
	if s == "" {
		return ""
	}
	return cases.Fold().String(s)
}

// Matches reports whether e passes both predicates.
func (f Filter) Matches(e Entry) bool {
	return f.categoryMatch(e) && f.searchMatch(e)
}

func (f Filter) categoryMatch(e Entry) bool {
	return f.Category == "" || f.Category == AllCategories || e.Category == f.Category
}

func (f Filter) searchMatch(e Entry) bool {
	if f.Term == "" {
		return true
	}
	for _, name := range []string{e.NameRW, e.NameEN, e.Name} {
		if name != "" && strings.Contains(fold(name), f.Term) {
			return true
		}
	}
	return false
}

// Visibility is the computed display state of one entry.
type Visibility struct {
	Index   int
	Visible bool
	// Rank is the entry's position among visible entries, -1 when hidden.
	Rank int
	// Delay is the fade-in delay for visible entries and the removal delay
	// for hidden ones.
	Delay time.Duration
}

// Result is the outcome of filtering the whole catalog.
type Result struct {
	Filter Filter
	Items  []Visibility
	Count  int
}

// NoResults reports whether nothing is visible.
func (r Result) NoResults() bool { return r.Count == 0 }

// Plan computes visibility for every entry, in order.
func Plan(entries []Entry, f Filter) Result {
	res := Result{Filter: f, Items: make([]Visibility, 0, len(entries))}
	for i, e := range entries {
		if f.Matches(e) {
			res.Items = append(res.Items, Visibility{
				Index:   i,
				Visible: true,
				Rank:    res.Count,
				Delay:   Stagger(res.Count),
			})
			res.Count++
			continue
		}
		res.Items = append(res.Items, Visibility{Index: i, Rank: -1, Delay: HideDelay})
	}
	return res
}

// Stagger returns the fade-in delay of the visible entry at rank.
func Stagger(rank int) time.Duration {
	if rank < 0 {
		return 0
	}
	return time.Duration(rank) * StaggerStep
}
