package switcher

import "github.com/alainchristian/kwa-mugisha/internal/i18n"

// Hard-coded search placeholders used when the search box carries no
// data-placeholder-<locale> attribute.
var defaultSearchPlaceholder = map[i18n.Locale]string{
	i18n.EN: "Search products...",
	i18n.RW: "Shakisha...",
}

// Classes toggled on mobile language buttons.
var (
	mobileActiveClasses   = []string{"active", "bg-green-600", "text-white"}
	mobileInactiveClasses = []string{"bg-gray-200", "text-gray-700"}
)

// Element is a node carrying both localized texts.
type Element struct {
	Tag   string
	Texts map[i18n.Locale]string
}

// Control is a language selection button.
type Control struct {
	Locale i18n.Locale
	Mobile bool
}

// SearchBox describes the catalog search input.
type SearchBox struct {
	Placeholders map[i18n.Locale]string
}

// Page is everything the switcher reads from a document.
type Page struct {
	Elements []Element
	Controls []Control
	Search   *SearchBox
}

// TextUpdate replaces an element's text, or its placeholder for input-like
// elements.
type TextUpdate struct {
	Index       int
	Placeholder bool
	Value       string
}

// ControlUpdate sets the visual state of a language control.
type ControlUpdate struct {
	Index  int
	Active bool
	Add    []string
	Remove []string
}

// Plan is the full set of updates that setLocale performs on a page.
type Plan struct {
	Locale            i18n.Locale
	Texts             []TextUpdate
	Controls          []ControlUpdate
	HasSearch         bool
	SearchPlaceholder string
}

// Build computes the updates that display page p in locale l.
func Build(l i18n.Locale, p Page) Plan {
	if !l.Valid() {
		l = i18n.Source
	}
	plan := Plan{
		Locale:   l,
		Texts:    make([]TextUpdate, 0, len(p.Elements)),
		Controls: make([]ControlUpdate, 0, len(p.Controls)),
	}
	for i, el := range p.Elements {
		plan.Texts = append(plan.Texts, TextUpdate{
			Index:       i,
			Placeholder: isInputLike(el.Tag),
			Value:       el.Texts[l],
		})
	}
	for i, c := range p.Controls {
		plan.Controls = append(plan.Controls, controlUpdate(i, c, c.Locale == l))
	}
	if p.Search != nil {
		plan.HasSearch = true
		plan.SearchPlaceholder = p.Search.Placeholders[l]
		if plan.SearchPlaceholder == "" {
			plan.SearchPlaceholder = defaultSearchPlaceholder[l]
		}
	}
	return plan
}

func controlUpdate(i int, c Control, active bool) ControlUpdate {
	u := ControlUpdate{Index: i, Active: active}
	switch {
	case !c.Mobile && active:
		u.Add = []string{"active"}
	case !c.Mobile:
		u.Remove = []string{"active"}
	case active:
		u.Add = mobileActiveClasses
		u.Remove = mobileInactiveClasses
	default:
		u.Add = mobileInactiveClasses
		u.Remove = mobileActiveClasses
	}
	return u
}

func isInputLike(tag string) bool {
	return tag == "input" || tag == "textarea"
}
