// Package handlers holds the view models templates render from.
package handlers

import (
	"github.com/alainchristian/kwa-mugisha/internal/config"
	"github.com/alainchristian/kwa-mugisha/internal/content"
	"github.com/alainchristian/kwa-mugisha/internal/i18n"
	"github.com/alainchristian/kwa-mugisha/internal/nav"
	"github.com/alainchristian/kwa-mugisha/internal/seo"
	"github.com/alainchristian/kwa-mugisha/internal/whatsapp"
)

// PageData is a generic view model for pages using the shared layout.
type PageData struct {
	Title     string
	Lang      i18n.Locale
	SEO       seo.Meta
	Analytics Analytics

	Path        string
	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb
	CSRFToken   string

	Shop         config.ShopConfig
	WhatsAppHref string
	// Scroll thresholds consumed by the page script.
	CompactNavAfter int
	BackToTopAfter  int

	// Optional per-page view model payloads
	Catalog *CatalogView
	About   *content.Page
	Contact *ContactView
	Notice  *NoticeView
}

// Base is what every page shares.
type Base struct {
	Lang      i18n.Locale
	Path      string
	CSRFToken string
	Shop      config.ShopConfig
	Analytics Analytics
}

// NewPageData fills the layout fields common to every page.
func NewPageData(b Base, title string, meta seo.Meta) PageData {
	return PageData{
		Title:           title,
		Lang:            b.Lang,
		SEO:             meta,
		Analytics:       b.Analytics,
		Path:            b.Path,
		Nav:             nav.Build(b.Path),
		Breadcrumbs:     nav.Breadcrumbs(b.Path),
		CSRFToken:       b.CSRFToken,
		Shop:            b.Shop,
		WhatsAppHref:    whatsapp.Link(b.Shop.WhatsApp, b.Lang),
		CompactNavAfter: nav.CompactAfter,
		BackToTopAfter:  nav.BackToTopAfter,
	}
}

// BreadcrumbItems turns crumbs into JSON-LD items with absolute URLs. label
// translates crumbs that carry a LabelKey.
func BreadcrumbItems(crumbs []nav.Crumb, baseURL string, label func(key string) string) []seo.BreadcrumbItem {
	items := make([]seo.BreadcrumbItem, 0, len(crumbs))
	for _, c := range crumbs {
		name := c.Label
		if c.LabelKey != "" {
			name = label(c.LabelKey)
		}
		items = append(items, seo.BreadcrumbItem{Name: name, Item: seo.Absolute(baseURL, c.Href)})
	}
	return items
}
