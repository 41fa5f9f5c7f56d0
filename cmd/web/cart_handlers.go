package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/alainchristian/kwa-mugisha/internal/cart"
	"github.com/alainchristian/kwa-mugisha/internal/catalog"
	"github.com/alainchristian/kwa-mugisha/internal/format"
	mw "github.com/alainchristian/kwa-mugisha/internal/middleware"
	"github.com/alainchristian/kwa-mugisha/internal/observability"
)

type cartResponse struct {
	Items          []cart.Item `json:"items"`
	Count          int         `json:"count"`
	Total          int64       `json:"total"`
	TotalFormatted string      `json:"totalFormatted"`
	Currency       string      `json:"currency"`
}

type addItemRequest struct {
	ID string `json:"id"`
}

func (s *server) cartPayload(c cart.Cart) cartResponse {
	items := c.Items
	if items == nil {
		items = []cart.Item{}
	}
	return cartResponse{
		Items:          items,
		Count:          c.Count(),
		Total:          c.Total(),
		TotalFormatted: format.Currency(c.Total(), s.catalog.Currency),
		Currency:       s.catalog.Currency,
	}
}

// CartHandler returns the stored cart.
func (s *server) CartHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.cartPayload(s.carts.Load(r)))
}

// CartAddHandler adds one unit of a catalog product. Name and price come from
// the catalog, never from the client.
func (s *server) CartAddHandler(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4<<10)).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid body")
			return
		}
	} else {
		req.ID = r.PostFormValue("id")
	}
	entry, err := s.catalog.Product(strings.TrimSpace(req.ID))
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			writeJSONError(w, http.StatusNotFound, "unknown product")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "catalog error")
		return
	}
	c := s.carts.Load(r).Add(cart.Product{
		ID:    entry.ID,
		Name:  entry.LocalName(mw.Lang(r)),
		Price: entry.Price,
	})
	s.saveCart(w, r, c, http.StatusOK)
}

// CartRemoveHandler drops the line for {id}; unknown ids are a no-op.
func (s *server) CartRemoveHandler(w http.ResponseWriter, r *http.Request) {
	c := s.carts.Load(r).Remove(chi.URLParam(r, "id"))
	s.saveCart(w, r, c, http.StatusOK)
}

// CartClearHandler empties the cart.
func (s *server) CartClearHandler(w http.ResponseWriter, r *http.Request) {
	c := s.carts.Load(r).Clear()
	s.saveCart(w, r, c, http.StatusOK)
}

func (s *server) saveCart(w http.ResponseWriter, r *http.Request, c cart.Cart, status int) {
	if err := s.carts.Save(w, c); err != nil {
		observability.FromContext(r.Context()).Error("save cart", zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "could not save cart")
		return
	}
	writeJSON(w, status, s.cartPayload(c))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
