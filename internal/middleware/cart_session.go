package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// CartCookie names the cookie holding the visitor's cart ID
const CartCookie = "cart_id"

type cartIDKey struct{}

// CartSession makes sure every visitor has a cart ID. A missing or
// malformed cookie is replaced with a fresh UUID.
func CartSession(ttl time.Duration) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if c, err := r.Cookie(CartCookie); err == nil {
				if _, err := uuid.Parse(c.Value); err == nil {
					id = c.Value
				}
			}

			if id == "" {
				id = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     CartCookie,
					Value:    id,
					Path:     "/",
					MaxAge:   int(ttl.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			next.ServeHTTP(w, r.WithContext(WithCartID(r.Context(), id)))
		})
	}
}

// WithCartID returns a context carrying the cart ID
func WithCartID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, cartIDKey{}, id)
}

// CartID returns the visitor's cart ID, empty outside CartSession
func CartID(ctx context.Context) string {
	id, _ := ctx.Value(cartIDKey{}).(string)
	return id
}
