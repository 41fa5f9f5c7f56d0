package seo

import (
	"encoding/json"
	"strconv"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Store describes the shop as a schema.org GroceryStore.
type Store struct {
	Name      string
	URL       string
	Telephone string
	Email     string
	Address   string
	Languages []string
}

// GroceryStore returns the LocalBusiness payload for the shop.
func GroceryStore(s Store) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "GroceryStore",
		"name":     s.Name,
	}
	if s.URL != "" {
		m["url"] = s.URL
	}
	if s.Telephone != "" {
		m["telephone"] = s.Telephone
	}
	if s.Email != "" {
		m["email"] = s.Email
	}
	if s.Address != "" {
		m["address"] = map[string]any{
			"@type":           "PostalAddress",
			"addressLocality": s.Address,
			"addressCountry":  "RW",
		}
	}
	if len(s.Languages) > 0 {
		m["knowsLanguage"] = s.Languages
	}
	return m
}

// WebSite returns a minimal WebSite schema with optional SearchAction.
func WebSite(name, url, searchActionURL string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if searchActionURL != "" {
		m["potentialAction"] = map[string]any{
			"@type":       "SearchAction",
			"target":      searchActionURL + "{search_term_string}",
			"query-input": "required name=search_term_string",
		}
	}
	return m
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
			"item":     it.Item,
		})
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}

// Offer is one product line in an ItemList.
type Offer struct {
	SKU      string
	Name     string
	Price    int64
	Currency string
}

// ItemList lists the catalog products with their prices.
func ItemList(name string, offers []Offer) map[string]any {
	el := make([]map[string]any, 0, len(offers))
	for i, o := range offers {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"item": map[string]any{
				"@type": "Product",
				"sku":   o.SKU,
				"name":  o.Name,
				"offers": map[string]any{
					"@type":         "Offer",
					"price":         strconv.FormatInt(o.Price, 10),
					"priceCurrency": o.Currency,
				},
			},
		})
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "ItemList",
		"name":            name,
		"itemListElement": el,
	}
}
