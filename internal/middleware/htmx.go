package middleware

import (
	"net/http"
)

// HTMX marks requests coming from htmx so handlers/middlewares can adapt responses
func HTMX(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is := r.Header.Get("HX-Request") == "true"
		ctx := WithHTMX(r.Context(), is)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// HXTarget returns the id of the element htmx will swap into.
func HXTarget(r *http.Request) string { return r.Header.Get("HX-Target") }

// PushURL asks htmx to record url in the browser history.
func PushURL(w http.ResponseWriter, url string) { w.Header().Set("HX-Push-Url", url) }

// Trigger fires a client-side event once the response is swapped.
func Trigger(w http.ResponseWriter, event string) { w.Header().Set("HX-Trigger", event) }
