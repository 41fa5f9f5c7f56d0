// Package switcher owns the display locale of a page: which of the paired
// data-en / data-rw texts is shown, which language control is active and
// what the search box says.
package switcher

import (
	"context"

	"github.com/alainchristian/kwa-mugisha/internal/i18n"
)

// StorageKey is the fixed key the chosen locale is persisted under.
const StorageKey = "preferredLang"

// Store persists the chosen locale between visits.
type Store interface {
	Load() (string, bool)
	Save(value string) error
}

// Controller holds the current locale. It reads the store once when created
// and writes to it on every SetLocale.
type Controller struct {
	store  Store
	locale i18n.Locale
}

// New reads the persisted locale, defaulting to the source locale when the
// store is empty or holds something unsupported.
func New(store Store) *Controller {
	c := &Controller{store: store, locale: i18n.Source}
	if store == nil {
		return c
	}
	if raw, ok := store.Load(); ok {
		if l, err := i18n.ParseLocale(raw); err == nil {
			c.locale = l
		}
	}
	return c
}

// Locale returns the current locale.
func (c *Controller) Locale() i18n.Locale {
	if c == nil || !c.locale.Valid() {
		return i18n.Source
	}
	return c.locale
}

// SetLocale switches and persists the locale.
func (c *Controller) SetLocale(l i18n.Locale) error {
	if !l.Valid() {
		return i18n.ErrUnsupportedLocale
	}
	c.locale = l
	if c.store == nil {
		return nil
	}
	return c.store.Save(string(l))
}

// MemoryStore keeps the locale in memory; used by the CLI and tests.
type MemoryStore struct {
	value string
	set   bool
}

func (m *MemoryStore) Load() (string, bool) { return m.value, m.set }

func (m *MemoryStore) Save(value string) error {
	m.value = value
	m.set = true
	return nil
}

type ctxKey struct{}

// WithController attaches c to ctx.
func WithController(ctx context.Context, c *Controller) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// FromContext returns the request's controller, or one fixed on the source
// locale when none was attached.
func FromContext(ctx context.Context) *Controller {
	if c, ok := ctx.Value(ctxKey{}).(*Controller); ok && c != nil {
		return c
	}
	return New(nil)
}
