// Package whatsapp builds wa.me deep links with a prefilled greeting.
package whatsapp

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/alainchristian/kwa-mugisha/internal/i18n"
)

const baseURL = "https://wa.me/"

var greetings = map[i18n.Locale]string{
	i18n.EN: "Hello! I would like to ask...",
	i18n.RW: "Muraho! Ndashaka kubaza...",
}

// Greeting returns the prefilled message for l.
func Greeting(l i18n.Locale) string {
	if g, ok := greetings[l]; ok {
		return g
	}
	return greetings[i18n.Source]
}

// Link returns the chat link for number (digits, country code first) with
// the greeting of l prefilled.
func Link(number string, l i18n.Locale) string {
	return baseURL + digits(number) + "?text=" + encodeComponent(Greeting(l))
}

// IsDirect reports whether href already targets wa.me and needs no rewrite.
func IsDirect(href string) bool {
	return strings.Contains(href, "wa.me")
}

// Rewrite points every .whatsapp-link in doc that does not already target
// wa.me at the chat link for l, and returns how many it changed.
func Rewrite(doc *goquery.Document, number string, l i18n.Locale) int {
	link := Link(number, l)
	n := 0
	doc.Find("a.whatsapp-link").Each(func(_ int, a *goquery.Selection) {
		if href, _ := a.Attr("href"); IsDirect(href) {
			return
		}
		a.SetAttr("href", link)
		n++
	})
	return n
}

// encodeComponent escapes s like JavaScript's encodeURIComponent.
func encodeComponent(s string) string {
	e := url.QueryEscape(s)
	e = strings.ReplaceAll(e, "+", "%20")
	for _, keep := range []string{"!", "'", "(", ")", "*"} {
		e = strings.ReplaceAll(e, url.QueryEscape(keep), keep)
	}
	return e
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
