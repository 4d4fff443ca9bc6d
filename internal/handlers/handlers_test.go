package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/Lixing-Zhang/foodie-storefront/internal/checkout"
	"github.com/Lixing-Zhang/foodie-storefront/internal/middleware"
	"github.com/Lixing-Zhang/foodie-storefront/internal/repository"
	"github.com/Lixing-Zhang/foodie-storefront/internal/service"
)

const testCartID = "5f1b7a3c-1d2e-4f5a-9b8c-7d6e5f4a3b2c"

type testDeps struct {
	log         *slog.Logger
	restaurants *service.RestaurantService
	carts       *service.CartService
	orders      *service.OrderService
	validator   *checkout.Validator
}

func newTestDeps() testDeps {
	log := slog.New(slog.NewJSONHandler(io.Discard, nil))
	restaurantRepo := repository.NewInMemoryRestaurantRepository()
	store := repository.NewMemoryCartStore()

	return testDeps{
		log:         log,
		restaurants: service.NewRestaurantService(restaurantRepo),
		carts:       service.NewCartService(store, restaurantRepo),
		orders:      service.NewOrderService(repository.NewInMemoryOrderRepository(), store, nil, "http://localhost:8080", log),
		validator:   checkout.NewValidator(&mockPromoValidator{validCodes: map[string]bool{"HAPPYHRS": true}}),
	}
}

// newRequest builds a request carrying the test cart ID and chi URL params
func newRequest(method, target string, body interface{}, params map[string]string) *http.Request {
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		data, _ := json.Marshal(b)
		r = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")

	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	ctx = middleware.WithCartID(ctx, testCartID)
	return req.WithContext(ctx)
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	require.NoError(t, json.NewDecoder(rr.Body).Decode(dst))
}
