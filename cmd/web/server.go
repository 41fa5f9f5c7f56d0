package main

import (
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/securecookie"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/alainchristian/kwa-mugisha/internal/cart"
	"github.com/alainchristian/kwa-mugisha/internal/catalog"
	"github.com/alainchristian/kwa-mugisha/internal/config"
	"github.com/alainchristian/kwa-mugisha/internal/content"
	"github.com/alainchristian/kwa-mugisha/internal/i18n"
	mw "github.com/alainchristian/kwa-mugisha/internal/middleware"
)

// server owns everything a request needs; handlers hang off it.
type server struct {
	cfg       config.Config
	logger    *zap.Logger
	bundle    *i18n.Bundle
	catalog   *catalog.Catalog
	plans     *catalog.Cache
	about     *content.Source
	carts     *cart.CookieStore
	sessions  *securecookie.SecureCookie
	templates *templateSet
	public    fs.FS
	registry  *prometheus.Registry
	now       func() time.Time
}

// newServer wires the site files in site (templates/, locales/, public/,
// catalog/, content/). Directory overrides in cfg replace the embedded
// templates and public files so they can be edited without rebuilding.
func newServer(cfg config.Config, logger *zap.Logger, site fs.FS) (*server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	bundle, err := i18n.Load(site, "locales", i18n.Source.String(), []string{i18n.EN.String(), i18n.RW.String()})
	if err != nil {
		return nil, fmt.Errorf("load i18n: %w", err)
	}
	cat, err := catalog.Load(site, cfg.Catalog.File)
	if err != nil {
		return nil, err
	}

	templatesFS, err := subOrDir(site, "templates", cfg.Server.TemplatesDir)
	if err != nil {
		return nil, err
	}
	publicFS, err := subOrDir(site, "public", cfg.Server.PublicDir)
	if err != nil {
		return nil, err
	}
	templates, err := newTemplateSet(templatesFS, bundle, cfg.Dev)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	hashKey := []byte(cfg.Session.HashKey)
	if len(hashKey) == 0 {
		hashKey = securecookie.GenerateRandomKey(32)
		logger.Warn("using ephemeral cookie signing key; set KWA_WEB_SESSION_HASH_KEY to keep sessions across restarts")
	}

	sessions := mw.NewSessionCodec(mw.SessionOptions{
		HashKey:  hashKey,
		BlockKey: []byte(cfg.Session.BlockKey),
		Secure:   cfg.Production(),
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return &server{
		cfg:       cfg,
		logger:    logger,
		bundle:    bundle,
		catalog:   cat,
		plans:     catalog.NewCache(cfg.Catalog.CacheSize, cfg.Catalog.CacheTTL, reg),
		about:     content.NewSource(site, "content"),
		carts:     cart.NewCookieStore(hashKey, cfg.Production()),
		sessions:  sessions,
		templates: templates,
		public:    publicFS,
		registry:  reg,
		now:       time.Now,
	}, nil
}

func subOrDir(site fs.FS, sub, override string) (fs.FS, error) {
	if override != "" {
		return os.DirFS(override), nil
	}
	f, err := fs.Sub(site, sub)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", sub, err)
	}
	return f, nil
}

// routes builds the chi router with the middleware stack.
func (s *server) routes() http.Handler {
	secure := s.cfg.Production()

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// RealIP trusts X-Forwarded-For; only deploy behind a proxy that sets it.
	r.Use(chimw.RealIP)
	r.Use(mw.Logger(s.logger))
	r.Use(chimw.Recoverer)
	r.Use(mw.Metrics(s.registry))
	r.Use(mw.HTMX)
	r.Use(mw.Session(s.sessions, secure))
	r.Use(mw.Locale(s.bundle, mw.LocaleOptions{Negotiate: s.cfg.Locale.Negotiate, Secure: secure}))
	r.Use(mw.CSRF(secure))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(s.cfg.Server.RequestTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok")
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	if assets, err := fs.Sub(s.public, "assets"); err == nil {
		r.Handle("/assets/*", http.StripPrefix("/assets", mw.Assets(assets)))
	}

	r.Get("/", s.HomeHandler)
	r.Get("/products", s.ProductsHandler)
	r.Get("/products/grid", s.ProductsGridFrag)
	r.Get("/products/{id}/notice", s.ProductNoticeFrag)
	r.Get("/lang/{code}", s.LangHandler)
	r.Post("/lang/{code}", s.LangHandler)
	r.Post("/contact", s.ContactHandler)
	r.Get("/whatsapp", s.WhatsAppHandler)

	r.Route("/api/cart", func(r chi.Router) {
		r.Get("/", s.CartHandler)
		r.Delete("/", s.CartClearHandler)
		r.Post("/items", s.CartAddHandler)
		r.Delete("/items/{id}", s.CartRemoveHandler)
	})
	return r
}

// httpServer applies the configured timeouts.
func (s *server) httpServer() *http.Server {
	return &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.routes(),
		ReadHeaderTimeout: s.cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       s.cfg.Server.ReadTimeout,
		WriteTimeout:      s.cfg.Server.WriteTimeout,
		IdleTimeout:       s.cfg.Server.IdleTimeout,
	}
}
