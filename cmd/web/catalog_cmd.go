package main

import (
	"fmt"
	"io"
	"io/fs"
	"text/tabwriter"

	"github.com/spf13/cobra"

	kwamugisha "github.com/alainchristian/kwa-mugisha"
	"github.com/alainchristian/kwa-mugisha/internal/catalog"
	"github.com/alainchristian/kwa-mugisha/internal/config"
	"github.com/alainchristian/kwa-mugisha/internal/format"
	"github.com/alainchristian/kwa-mugisha/internal/i18n"
	"github.com/alainchristian/kwa-mugisha/internal/switcher"
)

// newCatalogCommand prints the products a filter leaves visible, in the
// same order and with the same matching rules as the storefront.
func newCatalogCommand(envFile *string) *cobra.Command {
	var category, term, lang string
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List catalog products matching a category and search term",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(config.WithEnvFile(*envFile))
			if err != nil {
				return err
			}
			ctrl := switcher.New(&switcher.MemoryStore{})
			if lang != "" {
				l, err := i18n.ParseLocale(lang)
				if err != nil {
					return fmt.Errorf("--lang %q: %w", lang, err)
				}
				if err := ctrl.SetLocale(l); err != nil {
					return err
				}
			}
			return listCatalog(cmd.OutOrStdout(), kwamugisha.FS(), cfg.Catalog.File, catalog.NewFilter(category, term), ctrl.Locale())
		},
	}
	cmd.Flags().StringVar(&category, "category", catalog.AllCategories, "category id, or all")
	cmd.Flags().StringVarP(&term, "search", "q", "", "case-insensitive search over product names")
	cmd.Flags().StringVar(&lang, "lang", "", "display locale (en or rw)")
	return cmd
}

func listCatalog(out io.Writer, site fs.FS, file string, f catalog.Filter, l i18n.Locale) error {
	cat, err := catalog.Load(site, file)
	if err != nil {
		return err
	}
	if f.Category != catalog.AllCategories && !cat.HasCategory(f.Category) {
		return fmt.Errorf("%w: %q", catalog.ErrUnknownCategory, f.Category)
	}
	res := catalog.Plan(cat.Products, f)
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, v := range res.Items {
		if !v.Visible {
			continue
		}
		e := cat.Products[v.Index]
		fmt.Fprintf(tw, "%s\t%s\t%s\t+%dms\n", e.ID, e.LocalName(l), format.Currency(e.Price, cat.Currency), v.Delay.Milliseconds())
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if res.NoResults() {
		_, err = fmt.Fprintln(out, "no products match")
		return err
	}
	_, err = fmt.Fprintf(out, "%d of %d products\n", res.Count, len(cat.Products))
	return err
}
