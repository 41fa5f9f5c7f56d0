package cart

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

const cookieMaxAge = 30 * 24 * time.Hour

// CookieStore persists the cart as a signed JSON list in a cookie.
type CookieStore struct {
	codec  *securecookie.SecureCookie
	secure bool
}

// NewCookieStore signs cookies with hashKey. The JSON encoder keeps the
// stored payload a plain list of lines.
func NewCookieStore(hashKey []byte, secure bool) *CookieStore {
	codec := securecookie.New(hashKey, nil)
	codec.SetSerializer(securecookie.JSONEncoder{})
	codec.MaxAge(int(cookieMaxAge.Seconds()))
	return &CookieStore{codec: codec, secure: secure}
}

// Load returns the cart stored on r, or an empty cart when absent or invalid.
func (s *CookieStore) Load(r *http.Request) Cart {
	c, err := r.Cookie(StorageKey)
	if err != nil || c.Value == "" {
		return Cart{Items: []Item{}}
	}
	var items []Item
	if err := s.codec.Decode(StorageKey, c.Value, &items); err != nil {
		return Cart{Items: []Item{}}
	}
	if items == nil {
		items = []Item{}
	}
	return Cart{Items: items}
}

// Save writes cart to the response.
func (s *CookieStore) Save(w http.ResponseWriter, cart Cart) error {
	items := cart.Items
	if items == nil {
		items = []Item{}
	}
	val, err := s.codec.Encode(StorageKey, items)
	if err != nil {
		return fmt.Errorf("cart: encode cookie: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     StorageKey,
		Value:    val,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(cookieMaxAge),
	})
	return nil
}
