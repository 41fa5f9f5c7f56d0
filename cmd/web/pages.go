package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/alainchristian/kwa-mugisha/internal/catalog"
	"github.com/alainchristian/kwa-mugisha/internal/contact"
	"github.com/alainchristian/kwa-mugisha/internal/format"
	"github.com/alainchristian/kwa-mugisha/internal/handlers"
	"github.com/alainchristian/kwa-mugisha/internal/i18n"
	mw "github.com/alainchristian/kwa-mugisha/internal/middleware"
	"github.com/alainchristian/kwa-mugisha/internal/observability"
	"github.com/alainchristian/kwa-mugisha/internal/seo"
	"github.com/alainchristian/kwa-mugisha/internal/switcher"
	"github.com/alainchristian/kwa-mugisha/internal/whatsapp"
)

// pageData fills the shared layout fields for r.
func (s *server) pageData(r *http.Request, titleKey string) handlers.PageData {
	lang := mw.Lang(r)
	title := s.bundle.T(lang.String(), titleKey)
	meta := seo.New(s.cfg.Shop.BaseURL, r.URL.Path, s.cfg.Shop.Name, title, s.bundle.T(lang.String(), "site.description"), lang)
	return handlers.NewPageData(handlers.Base{
		Lang:      lang,
		Path:      r.URL.Path,
		CSRFToken: mw.CSRFToken(r),
		Shop:      s.cfg.Shop,
		Analytics: handlers.AnalyticsFromConfig(s.cfg.Analytics),
	}, title, meta)
}

func (s *server) storeSchema() string {
	return seo.JSON(seo.GroceryStore(seo.Store{
		Name:      s.cfg.Shop.Name,
		URL:       s.cfg.Shop.BaseURL,
		Telephone: s.cfg.Shop.Phone,
		Email:     s.cfg.Shop.Email,
		Address:   s.cfg.Shop.Address,
		Languages: s.bundle.Supported(),
	}))
}

// homeData is the landing page view; the contact handler reuses it.
func (s *server) homeData(r *http.Request) handlers.PageData {
	lang := mw.Lang(r)
	vm := s.pageData(r, "site.title_home")
	vm.Catalog = handlers.BuildCatalogView(s.catalog, "", "")
	if about, err := s.about.Get("pages", "about", lang); err == nil {
		vm.About = &about
	} else {
		observability.FromContext(r.Context()).Warn("about content unavailable", zap.Error(err))
	}
	vm.SEO.JSONLD = []string{
		s.storeSchema(),
		seo.JSON(seo.WebSite(s.cfg.Shop.Name, s.cfg.Shop.BaseURL, seo.Absolute(s.cfg.Shop.BaseURL, "/products?q="))),
	}
	return vm
}

// HomeHandler renders the landing page.
func (s *server) HomeHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.renderPage(w, r, "home", s.homeData(r))
}

// catalogView builds the grid for the request's category and search term
// and attaches the (cached) filter plan.
func (s *server) catalogView(r *http.Request) *handlers.CatalogView {
	q := r.URL.Query()
	category := strings.TrimSpace(q.Get("category"))
	term := q.Get("q")
	view := handlers.BuildCatalogView(s.catalog, category, term)
	res := s.plans.Plan(s.cfg.Catalog.File, s.catalog.Products, catalog.NewFilter(category, term))
	view.Result = &res
	return view
}

// ProductsHandler renders the catalog page with the filter from the query.
func (s *server) ProductsHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	vm := s.pageData(r, "site.title_products")
	vm.Catalog = s.catalogView(r)
	vm.SEO.Canonical = seo.Absolute(s.cfg.Shop.BaseURL, vm.Catalog.FilterURL())
	vm.SEO.OG.URL = vm.SEO.Canonical
	vm.SEO.JSONLD = []string{
		seo.JSON(seo.ItemList(vm.Title, handlers.Offers(s.catalog, lang))),
		seo.JSON(seo.BreadcrumbList(handlers.BreadcrumbItems(vm.Breadcrumbs, s.cfg.Shop.BaseURL, func(key string) string {
			return s.bundle.T(lang.String(), key)
		}))),
	}
	s.renderPage(w, r, "products", vm)
}

// ProductsGridFrag re-renders the filter bar, count and grid for htmx.
func (s *server) ProductsGridFrag(w http.ResponseWriter, r *http.Request) {
	vm := s.pageData(r, "site.title_products")
	vm.Catalog = s.catalogView(r)
	mw.PushURL(w, vm.Catalog.FilterURL())
	s.renderFragment(w, r, "frag_products", vm)
}

// ProductNoticeFrag acknowledges an add-to-cart click. Cart state is not touched.
func (s *server) ProductNoticeFrag(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	entry, err := s.catalog.Product(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "catalog error", http.StatusInternalServerError)
		return
	}
	msg := strings.ReplaceAll(s.bundle.T(lang.String(), "cart.noted"), "{name}", entry.LocalName(lang))
	vm := s.pageData(r, "site.title_products")
	vm.Notice = &handlers.NoticeView{ProductID: entry.ID, Message: msg}
	s.renderFragment(w, r, "frag_notice", vm)
}

// LangHandler switches and persists the locale, then sends the visitor back.
func (s *server) LangHandler(w http.ResponseWriter, r *http.Request) {
	l, err := i18n.ParseLocale(chi.URLParam(r, "code"))
	if err != nil {
		http.Error(w, "unsupported language", http.StatusBadRequest)
		return
	}
	if err := switcher.FromContext(r.Context()).SetLocale(l); err != nil {
		http.Error(w, "unsupported language", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Language", l.String())
	if mw.IsHTMX(r.Context()) {
		w.Header().Set("HX-Refresh", "true")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, safeNext(r.URL.Query().Get("next")), http.StatusSeeOther)
}

// safeNext keeps redirects on this site.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}

// ContactHandler validates the contact form. Delivery is not implemented:
// accepted submissions are logged and acknowledged.
func (s *server) ContactHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	logger := observability.FromContext(r.Context())
	form := contact.Form{
		Name:        r.PostFormValue("name"),
		ContactInfo: r.PostFormValue("contact"),
		Message:     r.PostFormValue("message"),
	}
	sub, err := contact.Accept(form, lang, s.now())
	view := &handlers.ContactView{
		Success: err == nil,
		Message: s.bundle.T(lang.String(), contact.MessageKey(err)),
		Form:    form.Trimmed(),
	}
	if err == nil {
		logger.Info("contact submission",
			zap.String("submission_id", sub.ID),
			zap.String("locale", sub.Locale.String()),
			zap.Bool("by_email", sub.ByEmail),
			zap.Int("message_len", len(sub.Message)),
		)
		// a successful send resets the form
		view.Form = contact.Form{}
		view.ReceivedAt = sub.ReceivedAt
		view.ReceivedOn = format.Date(sub.ReceivedAt, lang)
	} else {
		logger.Info("contact rejected", zap.Error(err))
	}

	if mw.IsHTMX(r.Context()) {
		vm := s.pageData(r, "site.title_home")
		vm.Contact = view
		if view.Success {
			mw.Trigger(w, "contact:sent")
		}
		s.renderFragment(w, r, "frag_contact", vm)
		return
	}
	vm := s.homeData(r)
	vm.Contact = view
	s.renderPage(w, r, "home", vm)
}

// WhatsAppHandler redirects to the chat link with the localized greeting.
func (s *server) WhatsAppHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, whatsapp.Link(s.cfg.Shop.WhatsApp, mw.Lang(r)), http.StatusFound)
}
