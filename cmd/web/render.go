package main

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/alainchristian/kwa-mugisha/internal/catalog"
	"github.com/alainchristian/kwa-mugisha/internal/handlers"
	"github.com/alainchristian/kwa-mugisha/internal/i18n"
	"github.com/alainchristian/kwa-mugisha/internal/observability"
	"github.com/alainchristian/kwa-mugisha/internal/switcher"
	"github.com/alainchristian/kwa-mugisha/internal/whatsapp"
)

// templateSet holds one parsed tree per page: the shared layouts and
// partials plus that page's "content" definition.
type templateSet struct {
	fsys   fs.FS
	funcs  template.FuncMap
	dev    bool
	parsed map[string]*template.Template
}

func newTemplateSet(fsys fs.FS, bundle *i18n.Bundle, dev bool) (*templateSet, error) {
	ts := &templateSet{fsys: fsys, funcs: templateFuncs(bundle), dev: dev}
	if dev {
		// reparse on every request
		return ts, nil
	}
	parsed, err := ts.parse()
	if err != nil {
		return nil, err
	}
	ts.parsed = parsed
	return ts, nil
}

func templateFuncs(bundle *i18n.Bundle) template.FuncMap {
	return template.FuncMap{
		"t": func(l i18n.Locale, key string) string { return bundle.T(l.String(), key) },
		// pair emits the data-en / data-rw attributes the switcher reads
		"pair": func(key string) template.HTMLAttr {
			var b strings.Builder
			for i, l := range i18n.Locales() {
				if i > 0 {
					b.WriteByte(' ')
				}
				fmt.Fprintf(&b, `%s="%s"`, l.Attr(), template.HTMLEscapeString(bundle.T(l.String(), key)))
			}
			return template.HTMLAttr(b.String())
		},
		"locales": i18n.Locales,
		"upper":   func(v any) string { return strings.ToUpper(fmt.Sprint(v)) },
		"lines": func(s string) []string {
			var out []string
			for _, line := range strings.Split(s, "\n") {
				if strings.TrimSpace(line) != "" {
					out = append(out, line)
				}
			}
			return out
		},
		"jsonld": func(s string) template.JS { return template.JS(s) },
		"year":   func() int { return time.Now().Year() },
	}
}

func (ts *templateSet) parse() (map[string]*template.Template, error) {
	root, err := template.New("_root").Funcs(ts.funcs).ParseFS(ts.fsys, "layouts/*.tmpl", "partials/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse layouts: %w", err)
	}
	pages, err := fs.Glob(ts.fsys, "pages/*.tmpl")
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("no page templates found")
	}
	out := make(map[string]*template.Template, len(pages))
	for _, p := range pages {
		clone, err := root.Clone()
		if err != nil {
			return nil, err
		}
		t, err := clone.ParseFS(ts.fsys, p)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", p, err)
		}
		out[strings.TrimSuffix(path.Base(p), ".tmpl")] = t
	}
	return out, nil
}

func (ts *templateSet) lookup(name string) (*template.Template, error) {
	parsed := ts.parsed
	if ts.dev {
		p, err := ts.parse()
		if err != nil {
			return nil, err
		}
		parsed = p
	}
	t, ok := parsed[name]
	if !ok {
		return nil, fmt.Errorf("template %q not found", name)
	}
	return t, nil
}

// renderPage executes the base layout for page and writes the settled document.
func (s *server) renderPage(w http.ResponseWriter, r *http.Request, page string, vm handlers.PageData) {
	s.render(w, r, page, "base", vm, false)
}

// renderFragment writes only the body children of page's content block.
func (s *server) renderFragment(w http.ResponseWriter, r *http.Request, page string, vm handlers.PageData) {
	s.render(w, r, page, "content", vm, true)
}

// render runs the template, then passes the parsed document through the
// locale switcher, the chat link rewrite and, for catalog views, the filter
// plan before writing it.
func (s *server) render(w http.ResponseWriter, r *http.Request, page, entry string, vm handlers.PageData, fragment bool) {
	logger := observability.FromContext(r.Context())
	t, err := s.templates.lookup(page)
	if err != nil {
		logger.Error("template lookup", zap.String("page", page), zap.Error(err))
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, entry, vm); err != nil {
		logger.Error("template exec", zap.String("page", page), zap.Error(err))
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	root, err := html.Parse(&buf)
	if err != nil {
		logger.Error("parse rendered page", zap.String("page", page), zap.Error(err))
		http.Error(w, "render error", http.StatusInternalServerError)
		return
	}
	doc := goquery.NewDocumentFromNode(root)
	switcher.Apply(doc, vm.Lang)
	whatsapp.Rewrite(doc, s.cfg.Shop.WhatsApp, vm.Lang)
	if vm.Catalog != nil && vm.Catalog.Result != nil {
		catalog.ApplyResult(doc, *vm.Catalog.Result)
	}

	var out bytes.Buffer
	if fragment {
		for _, n := range doc.Find("body").Nodes {
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if err := html.Render(&out, c); err != nil {
					logger.Error("render fragment", zap.String("page", page), zap.Error(err))
					http.Error(w, "render error", http.StatusInternalServerError)
					return
				}
			}
		}
	} else if err := html.Render(&out, root); err != nil {
		logger.Error("render page", zap.String("page", page), zap.Error(err))
		http.Error(w, "render error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(out.Bytes())
}
