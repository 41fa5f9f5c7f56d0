package handlers

import (
	"net/url"

	"github.com/alainchristian/kwa-mugisha/internal/catalog"
	"github.com/alainchristian/kwa-mugisha/internal/format"
	"github.com/alainchristian/kwa-mugisha/internal/i18n"
	"github.com/alainchristian/kwa-mugisha/internal/seo"
)

// CategoryButton is one filter control.
type CategoryButton struct {
	ID     string
	NameEN string
	NameRW string
	Icon   string
	Count  int
	Active bool
}

// ProductCard is one entry of the grid, in declaration order.
type ProductCard struct {
	ID       string
	Category string
	NameEN   string
	NameRW   string
	Name     string
	Price    string
	Unit     string
	Icon     string
}

// CatalogView backs the products page and the grid fragment.
type CatalogView struct {
	Categories []CategoryButton
	Products   []ProductCard
	Category   string
	Query      string
	Total      int
	// Result is the settled filter plan applied after rendering; nil leaves
	// every card as rendered.
	Result *catalog.Result
}

// BuildCatalogView lays out every category and product; visibility is left
// to the filter plan.
func BuildCatalogView(c *catalog.Catalog, category, query string) *CatalogView {
	if category == "" {
		category = catalog.AllCategories
	}
	v := &CatalogView{
		Category: category,
		Query:    query,
		Total:    len(c.Products),
	}
	v.Categories = append(v.Categories, CategoryButton{
		ID:     catalog.AllCategories,
		NameEN: "All",
		NameRW: "Byose",
		Icon:   "fa-border-all",
		Count:  len(c.Products),
		Active: category == catalog.AllCategories,
	})
	for _, cat := range c.Categories {
		v.Categories = append(v.Categories, CategoryButton{
			ID:     cat.ID,
			NameEN: cat.NameEN,
			NameRW: cat.NameRW,
			Icon:   cat.Icon,
			Count:  c.CountIn(cat.ID),
			Active: category == cat.ID,
		})
	}
	for _, e := range c.Products {
		v.Products = append(v.Products, ProductCard{
			ID:       e.ID,
			Category: e.Category,
			NameEN:   e.NameEN,
			NameRW:   e.NameRW,
			Name:     e.Name,
			Price:    format.Currency(e.Price, c.Currency),
			Unit:     e.Unit,
			Icon:     e.Icon,
		})
	}
	return v
}

// FilterURL is the shareable products URL for the current filter.
func (v *CatalogView) FilterURL() string {
	q := url.Values{}
	if v.Category != "" && v.Category != catalog.AllCategories {
		q.Set("category", v.Category)
	}
	if v.Query != "" {
		q.Set("q", v.Query)
	}
	if len(q) == 0 {
		return "/products"
	}
	return "/products?" + q.Encode()
}

// Offers renders the catalog as schema.org offers in locale l.
func Offers(c *catalog.Catalog, l i18n.Locale) []seo.Offer {
	out := make([]seo.Offer, 0, len(c.Products))
	for _, e := range c.Products {
		out = append(out, seo.Offer{SKU: e.ID, Name: e.LocalName(l), Price: e.Price, Currency: c.Currency})
	}
	return out
}
