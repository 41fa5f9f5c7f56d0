package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/alainchristian/kwa-mugisha/internal/i18n"
	"github.com/alainchristian/kwa-mugisha/internal/observability"
	"github.com/alainchristian/kwa-mugisha/internal/switcher"
)

func findCookie(res *http.Response, name string) *http.Cookie {
	for _, c := range res.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func testBundle(t *testing.T) *i18n.Bundle {
	t.Helper()
	b, err := i18n.Load(fstest.MapFS{
		"locales/en.json": {Data: []byte(`{"hello":"Hello"}`)},
		"locales/rw.json": {Data: []byte(`{"hello":"Muraho"}`)},
	}, "locales", "en", []string{"en", "rw"})
	require.NoError(t, err)
	return b
}

func TestResponseRecorderRunsHookOnce(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := NewResponseRecorder(rec)
	calls := 0
	rw.SetBeforeWrite(func(w http.ResponseWriter) {
		calls++
		w.Header().Set("X-Hook", "yes")
	})
	rw.WriteHeader(http.StatusTeapot)
	_, _ = rw.Write([]byte("body"))
	require.Equal(t, 1, calls)
	require.True(t, rw.Wrote())
	require.Equal(t, http.StatusTeapot, rw.Status())
	require.Equal(t, "yes", rec.Header().Get("X-Hook"))
}

func TestSessionRoundTrip(t *testing.T) {
	codec := NewSessionCodec(SessionOptions{HashKey: []byte(strings.Repeat("k", 32))})
	var seen string
	h := Session(codec, false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetSession(r).ID
		_, _ = io.WriteString(w, "ok")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	cookie := findCookie(rec.Result(), sessionCookieName)
	require.NotNil(t, cookie)
	first := seen
	require.NotEmpty(t, first)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, first, seen)
	require.Nil(t, findCookie(rec.Result(), sessionCookieName), "clean session is not rewritten")

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: cookie.Value + "x"})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.NotEqual(t, first, seen, "tampered cookie starts a new session")
}

func csrfStack() (http.Handler, *tokenHolder) {
	holder := &tokenHolder{}
	codec := NewSessionCodec(SessionOptions{HashKey: []byte(strings.Repeat("c", 32))})
	h := Session(codec, false)(CSRF(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		holder.token = CSRFToken(r)
		w.WriteHeader(http.StatusNoContent)
	})))
	return h, holder
}

type tokenHolder struct{ token string }

func TestCSRFAcceptsHeaderAndFormField(t *testing.T) {
	h, holder := csrfStack()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	res := rec.Result()
	session := findCookie(res, sessionCookieName)
	csrf := findCookie(res, csrfCookieName)
	require.NotNil(t, session)
	require.NotNil(t, csrf)
	require.Equal(t, holder.token, csrf.Value)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.AddCookie(session)
	req.AddCookie(csrf)
	req.Header.Set("X-CSRF-Token", csrf.Value)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	form := url.Values{"csrf_token": {csrf.Value}}
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(session)
	req.AddCookie(csrf)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/", nil)
	req.AddCookie(session)
	req.AddCookie(csrf)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLocaleFromCookieAndQuery(t *testing.T) {
	var got i18n.Locale
	h := Locale(testBundle(t), LocaleOptions{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = Lang(r)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, i18n.EN, got)
	require.Equal(t, "en", rec.Header().Get("Content-Language"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: switcher.StorageKey, Value: "rw"})
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.Equal(t, i18n.RW, got)

	req = httptest.NewRequest(http.MethodGet, "/?lang=rw", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, i18n.RW, got)
	c := findCookie(rec.Result(), switcher.StorageKey)
	require.NotNil(t, c)
	require.Equal(t, "rw", c.Value)

	req = httptest.NewRequest(http.MethodGet, "/?lang=fr", nil)
	req.AddCookie(&http.Cookie{Name: switcher.StorageKey, Value: "rw"})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, i18n.RW, got, "unsupported override keeps the stored locale")
	require.Nil(t, findCookie(rec.Result(), switcher.StorageKey))
}

func TestLocaleNegotiation(t *testing.T) {
	var got i18n.Locale
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { got = Lang(r) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "rw-RW,rw;q=0.9,en;q=0.5")
	Locale(testBundle(t), LocaleOptions{})(inner).ServeHTTP(httptest.NewRecorder(), req)
	require.Equal(t, i18n.EN, got, "negotiation is opt-in")

	Locale(testBundle(t), LocaleOptions{Negotiate: true})(inner).ServeHTTP(httptest.NewRecorder(), req)
	require.Equal(t, i18n.RW, got)

	req.AddCookie(&http.Cookie{Name: switcher.StorageKey, Value: "en"})
	Locale(testBundle(t), LocaleOptions{Negotiate: true})(inner).ServeHTTP(httptest.NewRecorder(), req)
	require.Equal(t, i18n.EN, got, "stored choice beats the header")
}

func TestLoggerWritesRequestLine(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	h := Logger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		observability.FromContext(r.Context()).Info("inside")
		w.WriteHeader(http.StatusNotFound)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	require.Equal(t, 1, logs.FilterMessage("inside").Len())
	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	require.Equal(t, zapcore.WarnLevel, entries[0].Level)
	require.EqualValues(t, http.StatusNotFound, entries[0].ContextMap()["status"])
}

func TestAssetsETag(t *testing.T) {
	h := http.StripPrefix("/assets", Assets(fstest.MapFS{
		"site.js": {Data: []byte("console.log(1)")},
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/site.js", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	req := httptest.NewRequest(http.MethodGet, "/assets/site.js", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotModified, rec.Code)
}

func TestMetricsUseRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := chi.NewRouter()
	r.Use(Metrics(reg))
	r.Get("/products/{id}/notice", func(w http.ResponseWriter, r *http.Request) {})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/products/tea/notice", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/products/rice/notice", nil))

	n, err := testutil.GatherAndCount(reg, "kwa_http_requests_total")
	require.NoError(t, err)
	require.Equal(t, 1, n, "both ids share one series")
}

func TestHTMXHelpers(t *testing.T) {
	var is bool
	h := HTMX(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is = IsHTMX(r.Context())
		PushURL(w, "/products?category=dairy")
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.True(t, is)
	require.Equal(t, "/products?category=dairy", rec.Header().Get("HX-Push-Url"))
}
