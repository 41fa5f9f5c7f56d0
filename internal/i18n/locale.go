package i18n

import (
	"errors"
	"strings"
)

// Locale is one of the two display languages of the site.
type Locale string

const (
	// EN is the source locale and the default on first visit.
	EN Locale = "en"
	// RW is the target locale (Kinyarwanda).
	RW Locale = "rw"
)

// Source is the locale used when nothing has been chosen yet.
const Source = EN

var ErrUnsupportedLocale = errors.New("i18n: unsupported locale")

// Locales lists the supported locales, source first.
func Locales() []Locale { return []Locale{EN, RW} }

// ParseLocale normalizes s and returns the matching locale.
func ParseLocale(s string) (Locale, error) {
	switch Locale(strings.ToLower(strings.TrimSpace(s))) {
	case EN:
		return EN, nil
	case RW:
		return RW, nil
	}
	return "", ErrUnsupportedLocale
}

// Valid reports whether l is one of the two defined locales.
func (l Locale) Valid() bool { return l == EN || l == RW }

// Other returns the opposite locale.
func (l Locale) Other() Locale {
	if l == RW {
		return EN
	}
	return RW
}

// Attr is the data attribute carrying text in this locale, e.g. "data-rw".
func (l Locale) Attr() string { return "data-" + string(l) }

func (l Locale) String() string { return string(l) }
