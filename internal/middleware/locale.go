package middleware

import (
	"net/http"
	"time"

	"github.com/alainchristian/kwa-mugisha/internal/i18n"
	"github.com/alainchristian/kwa-mugisha/internal/switcher"
)

const (
	localeQueryParam = "lang"
	localeMaxAge     = 365 * 24 * time.Hour
)

// LocaleOptions tunes how first visits are resolved.
type LocaleOptions struct {
	// Negotiate picks the first-visit locale from Accept-Language.
	Negotiate bool
	Secure    bool
}

// cookieStore persists the switcher locale in the preferredLang cookie.
type cookieStore struct {
	r        *http.Request
	w        http.ResponseWriter
	secure   bool
	fallback string
}

func (s *cookieStore) Load() (string, bool) {
	if c, err := s.r.Cookie(switcher.StorageKey); err == nil && c.Value != "" {
		return c.Value, true
	}
	if s.fallback != "" {
		return s.fallback, true
	}
	return "", false
}

func (s *cookieStore) Save(value string) error {
	http.SetCookie(s.w, &http.Cookie{
		Name:     switcher.StorageKey,
		Value:    value,
		Path:     "/",
		HttpOnly: false,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(localeMaxAge),
	})
	return nil
}

// Locale attaches a switcher.Controller backed by the preferredLang cookie.
// A ?lang= query switches and persists the locale for this and later requests.
func Locale(bundle *i18n.Bundle, opts LocaleOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			store := &cookieStore{r: r, w: w, secure: opts.Secure}
			if opts.Negotiate && bundle != nil {
				store.fallback = bundle.Resolve(r.Header.Get("Accept-Language"))
			}
			ctrl := switcher.New(store)
			if q := r.URL.Query().Get(localeQueryParam); q != "" {
				if l, err := i18n.ParseLocale(q); err == nil {
					_ = ctrl.SetLocale(l)
				}
			}
			w.Header().Set("Content-Language", ctrl.Locale().String())
			w.Header().Add("Vary", "Cookie")
			if opts.Negotiate {
				w.Header().Add("Vary", "Accept-Language")
			}
			next.ServeHTTP(w, r.WithContext(switcher.WithController(r.Context(), ctrl)))
		})
	}
}

// Lang returns the locale the current request renders in.
func Lang(r *http.Request) i18n.Locale {
	return switcher.FromContext(r.Context()).Locale()
}
