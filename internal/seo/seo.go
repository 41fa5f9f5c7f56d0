// Package seo builds the head metadata and schema.org payloads for pages.
package seo

import (
	"net/url"
	"strings"

	"github.com/alainchristian/kwa-mugisha/internal/i18n"
)

type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	URL         string
	SiteName    string
	Locale      string
}

type Twitter struct {
	Card  string
	Image string
}

// Alternate is one hreflang link.
type Alternate struct {
	Href     string
	Hreflang string
}

type Meta struct {
	Title       string
	Description string
	Canonical   string
	Robots      string
	OG          OpenGraph
	Twitter     Twitter
	Alternates  []Alternate
	JSONLD      []string
}

// ogLocales maps site locales onto Open Graph's language_TERRITORY form.
var ogLocales = map[i18n.Locale]string{
	i18n.EN: "en_US",
	i18n.RW: "rw_RW",
}

// New fills the common fields for a page at path under baseURL.
func New(baseURL, path, siteName, title, description string, lang i18n.Locale) Meta {
	canonical := Absolute(baseURL, path)
	return Meta{
		Title:       title,
		Description: description,
		Canonical:   canonical,
		Robots:      "index,follow",
		OG: OpenGraph{
			Title:       title,
			Description: description,
			Type:        "website",
			URL:         canonical,
			SiteName:    siteName,
			Locale:      ogLocales[lang],
		},
		Twitter:    Twitter{Card: "summary"},
		Alternates: Alternates(baseURL, path),
	}
}

// Alternates lists one link per locale plus x-default on the source locale.
func Alternates(baseURL, path string) []Alternate {
	out := make([]Alternate, 0, len(i18n.Locales())+1)
	for _, l := range i18n.Locales() {
		out = append(out, Alternate{Href: withLang(Absolute(baseURL, path), l), Hreflang: l.String()})
	}
	out = append(out, Alternate{Href: Absolute(baseURL, path), Hreflang: "x-default"})
	return out
}

// Absolute joins baseURL and path, tolerating stray slashes.
func Absolute(baseURL, path string) string {
	base := strings.TrimRight(baseURL, "/")
	if path == "" {
		path = "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

func withLang(raw string, l i18n.Locale) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	q.Set("lang", l.String())
	u.RawQuery = q.Encode()
	return u.String()
}
