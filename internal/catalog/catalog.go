// Package catalog holds the shop's product list and decides which entries a
// category/search filter leaves visible.
package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alainchristian/kwa-mugisha/internal/i18n"
)

// AllCategories selects every entry.
const AllCategories = "all"

var (
	ErrUnknownCategory  = errors.New("catalog: unknown category")
	ErrDuplicateProduct = errors.New("catalog: duplicate product id")
	ErrProductNotFound  = errors.New("catalog: product not found")
)

// Category groups products and backs one filter button.
type Category struct {
	ID     string `yaml:"id"`
	NameEN string `yaml:"name_en"`
	NameRW string `yaml:"name_rw"`
	Icon   string `yaml:"icon"`
}

// Entry is one product card. Price is in whole francs.
type Entry struct {
	ID       string `yaml:"id"`
	Category string `yaml:"category"`
	NameEN   string `yaml:"name_en"`
	NameRW   string `yaml:"name_rw"`
	Name     string `yaml:"name"`
	Price    int64  `yaml:"price"`
	Unit     string `yaml:"unit"`
	Icon     string `yaml:"icon"`
}

// LocalName returns the entry's name in locale l, falling back to the plain name.
func (e Entry) LocalName(l i18n.Locale) string {
	var v string
	switch l {
	case i18n.RW:
		v = e.NameRW
	default:
		v = e.NameEN
	}
	if v == "" {
		return e.Name
	}
	return v
}

// LocalName returns the category name in locale l.
func (c Category) LocalName(l i18n.Locale) string {
	if l == i18n.RW && c.NameRW != "" {
		return c.NameRW
	}
	return c.NameEN
}

// Catalog is the static, ordered product list.
type Catalog struct {
	Currency   string     `yaml:"currency"`
	Categories []Category `yaml:"categories"`
	Products   []Entry    `yaml:"products"`

	byID map[string]int
}

// Load reads and validates a catalog YAML file from fsys.
func Load(fsys fs.FS, name string) (*Catalog, error) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", name, err)
	}
	return Parse(raw)
}

// Parse decodes and validates catalog YAML.
func Parse(raw []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	if err := c.index(); err != nil {
		return nil, err
	}
	if c.Currency == "" {
		c.Currency = "RWF"
	}
	return &c, nil
}

func (c *Catalog) index() error {
	known := make(map[string]struct{}, len(c.Categories))
	for _, cat := range c.Categories {
		known[cat.ID] = struct{}{}
	}
	c.byID = make(map[string]int, len(c.Products))
	for i, p := range c.Products {
		p.ID = strings.TrimSpace(p.ID)
		if p.ID == "" {
			return fmt.Errorf("catalog: product %d has no id", i)
		}
		if _, dup := c.byID[p.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateProduct, p.ID)
		}
		if _, ok := known[p.Category]; !ok {
			return fmt.Errorf("%w: %q (product %s)", ErrUnknownCategory, p.Category, p.ID)
		}
		c.Products[i].ID = p.ID
		c.byID[p.ID] = i
	}
	return nil
}

// Product looks up an entry by id.
func (c *Catalog) Product(id string) (Entry, error) {
	if i, ok := c.byID[id]; ok {
		return c.Products[i], nil
	}
	return Entry{}, fmt.Errorf("%w: %s", ErrProductNotFound, id)
}

// HasCategory reports whether id is "all" or a declared category.
func (c *Catalog) HasCategory(id string) bool {
	if id == AllCategories {
		return true
	}
	for _, cat := range c.Categories {
		if cat.ID == id {
			return true
		}
	}
	return false
}

// CountIn returns how many products belong to category id.
func (c *Catalog) CountIn(id string) int {
	if id == AllCategories {
		return len(c.Products)
	}
	n := 0
	for _, p := range c.Products {
		if p.Category == id {
			n++
		}
	}
	return n
}
