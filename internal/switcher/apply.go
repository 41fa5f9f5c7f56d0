package switcher

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/alainchristian/kwa-mugisha/internal/i18n"
)

const (
	pairedSelector  = "[data-rw][data-en]"
	controlSelector = ".lang-btn, .mobile-lang-btn"
	searchSelector  = "#search-bar"
)

// Apply displays doc in locale l and returns the plan that was applied.
func Apply(doc *goquery.Document, l i18n.Locale) Plan {
	elems := doc.Find(pairedSelector)
	controls := doc.Find(controlSelector)
	search := doc.Find(searchSelector).First()

	plan := Build(l, Read(elems, controls, search))

	for _, u := range plan.Texts {
		s := elems.Eq(u.Index)
		if u.Placeholder {
			s.SetAttr("placeholder", u.Value)
		} else {
			s.SetText(u.Value)
		}
	}
	for _, u := range plan.Controls {
		s := controls.Eq(u.Index)
		// RemoveClass without arguments clears every class
		if len(u.Remove) > 0 {
			s.RemoveClass(u.Remove...)
		}
		if len(u.Add) > 0 {
			s.AddClass(u.Add...)
		}
		if u.Active {
			s.SetAttr("aria-pressed", "true")
		} else {
			s.SetAttr("aria-pressed", "false")
		}
	}
	if plan.HasSearch {
		search.SetAttr("placeholder", plan.SearchPlaceholder)
	}
	doc.Find("html").SetAttr("lang", string(plan.Locale))
	return plan
}

// Read describes the localizable parts of a document.
func Read(elems, controls, search *goquery.Selection) Page {
	var p Page
	elems.Each(func(_ int, s *goquery.Selection) {
		p.Elements = append(p.Elements, Element{
			Tag:   goquery.NodeName(s),
			Texts: attrTexts(s, "data-"),
		})
	})
	controls.Each(func(_ int, s *goquery.Selection) {
		p.Controls = append(p.Controls, Control{
			Locale: controlLocale(s),
			Mobile: s.HasClass("mobile-lang-btn"),
		})
	})
	if search.Length() > 0 {
		p.Search = &SearchBox{Placeholders: attrTexts(search, "data-placeholder-")}
	}
	return p
}

func attrTexts(s *goquery.Selection, prefix string) map[i18n.Locale]string {
	out := make(map[i18n.Locale]string, 2)
	for _, l := range i18n.Locales() {
		if v, ok := s.Attr(prefix + string(l)); ok {
			out[l] = v
		}
	}
	return out
}

// controlLocale reads data-lang, falling back to ids like "lang-rw".
func controlLocale(s *goquery.Selection) i18n.Locale {
	if v, ok := s.Attr("data-lang"); ok {
		if l, err := i18n.ParseLocale(v); err == nil {
			return l
		}
	}
	if id, ok := s.Attr("id"); ok && strings.HasPrefix(id, "lang-") {
		if l, err := i18n.ParseLocale(strings.TrimPrefix(id, "lang-")); err == nil {
			return l
		}
	}
	return ""
}
