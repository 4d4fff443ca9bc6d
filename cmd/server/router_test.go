package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lixing-Zhang/foodie-storefront/internal/checkout"
	"github.com/Lixing-Zhang/foodie-storefront/internal/events"
	"github.com/Lixing-Zhang/foodie-storefront/internal/handlers"
	"github.com/Lixing-Zhang/foodie-storefront/internal/middleware"
	"github.com/Lixing-Zhang/foodie-storefront/internal/models"
	"github.com/Lixing-Zhang/foodie-storefront/internal/repository"
	"github.com/Lixing-Zhang/foodie-storefront/internal/service"
	"github.com/Lixing-Zhang/foodie-storefront/internal/web"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	log := slog.New(slog.NewJSONHandler(io.Discard, nil))

	restaurantRepo := repository.NewInMemoryRestaurantRepository()
	carts := repository.NewMemoryCartStore()
	restaurantService := service.NewRestaurantService(restaurantRepo)
	cartService := service.NewCartService(carts, restaurantRepo)
	orderService := service.NewOrderService(repository.NewInMemoryOrderRepository(), carts, events.NewLogPublisher(log), "http://localhost:8080", log)
	validator := checkout.NewValidator(nil)

	pages, err := web.New(web.Deps{
		Restaurants: restaurantService,
		Carts:       cartService,
		Orders:      orderService,
		Placer:      orderService,
		Validator:   validator,
		Logger:      log,
	})
	require.NoError(t, err)

	return newRouter(routes{
		health:      handlers.NewHealthHandler(log, version, nil),
		restaurants: handlers.NewRestaurantHandler(restaurantService, log),
		carts:       handlers.NewCartHandler(cartService, log),
		checkout:    handlers.NewCheckoutHandler(validator, orderService, log),
		orders:      handlers.NewOrderHandler(orderService, log),
		promo:       handlers.NewPromoHandler(nil, log),
		pages:       pages,
		apiKeys:     []string{"apitest"},
		cartTTL:     time.Hour,
	}, log)
}

func serve(h http.Handler, req *http.Request, cookie *http.Cookie) *httptest.ResponseRecorder {
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func cartCookie(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == middleware.CartCookie {
			return c
		}
	}
	t.Fatalf("response did not set %s cookie", middleware.CartCookie)
	return nil
}

func TestRouter_OrderJourney(t *testing.T) {
	router := testRouter(t)

	rr := serve(router, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	cookie := cartCookie(t, rr)

	rr = serve(router, httptest.NewRequest(http.MethodPost, "/restaurant/1/items/m1", nil), cookie)
	require.Equal(t, http.StatusSeeOther, rr.Code)

	// the JSON API sees the same cart as the pages
	rr = serve(router, httptest.NewRequest(http.MethodGet, "/api/cart", nil), cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	var cartResp handlers.CartResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&cartResp))
	assert.Equal(t, 1, cartResp.ItemCount)

	form := url.Values{
		"fullName":      {"Jane Doe"},
		"email":         {"jane.doe@example.com"},
		"phone":         {"5551234567"},
		"address":       {"123 Main St"},
		"city":          {"Anytown"},
		"zipCode":       {"12345"},
		"country":       {"USA"},
		"paymentMethod": {"creditCard"},
		"agreeToTerms":  {"on"},
	}
	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr = serve(router, req, cookie)
	require.Equal(t, http.StatusSeeOther, rr.Code)

	location := rr.Header().Get("Location")
	require.True(t, strings.HasPrefix(location, "/order-tracking/"), location)

	rr = serve(router, httptest.NewRequest(http.MethodGet, location, nil), cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Order Placed Successfully!")
	assert.Contains(t, rr.Body.String(), "Margherita Pizza")

	rr = serve(router, httptest.NewRequest(http.MethodGet, "/api/cart", nil), cookie)
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&cartResp))
	assert.Zero(t, cartResp.ItemCount)
}

func TestRouter_KeepsValidCartCookie(t *testing.T) {
	router := testRouter(t)
	cookie := &http.Cookie{Name: middleware.CartCookie, Value: "0b8e5c1e-7f7a-4a3b-9c8d-1e2f3a4b5c6d"}

	rr := serve(router, httptest.NewRequest(http.MethodGet, "/cart", nil), cookie)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Result().Cookies())
}

func TestRouter_Routes(t *testing.T) {
	router := testRouter(t)

	tests := []struct {
		name           string
		method         string
		target         string
		body           string
		apiKey         string
		expectedStatus int
		contentType    string
	}{
		{name: "health", method: http.MethodGet, target: "/health", expectedStatus: http.StatusOK, contentType: "application/json"},
		{name: "api restaurants", method: http.MethodGet, target: "/api/restaurants?q=pizza", expectedStatus: http.StatusOK, contentType: "application/json"},
		{name: "api menu", method: http.MethodGet, target: "/api/restaurants/3/menu", expectedStatus: http.StatusOK, contentType: "application/json"},
		{name: "api unknown route is json", method: http.MethodGet, target: "/api/nope", expectedStatus: http.StatusNotFound, contentType: "application/json"},
		{name: "api promo stats", method: http.MethodGet, target: "/api/promo/stats", expectedStatus: http.StatusOK, contentType: "application/json"},
		{name: "api stepper", method: http.MethodGet, target: "/api/orders/" + repository.PlaceholderOrderID + "/stepper", expectedStatus: http.StatusOK, contentType: "application/json"},
		{name: "status update needs key", method: http.MethodPut, target: "/api/orders/" + repository.PlaceholderOrderID + "/status", body: `{"status":"OUT_FOR_DELIVERY"}`, expectedStatus: http.StatusUnauthorized},
		{name: "status update wrong key", method: http.MethodPut, target: "/api/orders/" + repository.PlaceholderOrderID + "/status", body: `{"status":"OUT_FOR_DELIVERY"}`, apiKey: "nope", expectedStatus: http.StatusForbidden},
		{name: "status update", method: http.MethodPut, target: "/api/orders/" + repository.PlaceholderOrderID + "/status", body: `{"status":"OUT_FOR_DELIVERY"}`, apiKey: "apitest", expectedStatus: http.StatusOK},
		{name: "menu page", method: http.MethodGet, target: "/restaurant-menu", expectedStatus: http.StatusOK, contentType: "text/html"},
		{name: "unknown page", method: http.MethodGet, target: "/nowhere", expectedStatus: http.StatusNotFound, contentType: "text/html"},
		{name: "stylesheet", method: http.MethodGet, target: "/static/app.css", expectedStatus: http.StatusOK, contentType: "text/css"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			req := httptest.NewRequest(tt.method, tt.target, body)
			if tt.apiKey != "" {
				req.Header.Set(middleware.APIKeyHeader, tt.apiKey)
			}

			rr := serve(router, req, nil)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.contentType != "" {
				assert.Contains(t, rr.Header().Get("Content-Type"), tt.contentType)
			}
		})
	}
}

func TestRouter_PromoAgreesAcrossSurfacesWithoutPromoSets(t *testing.T) {
	router := testRouter(t)

	rr := serve(router, httptest.NewRequest(http.MethodPost, "/restaurant/1/items/m1", nil), nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	cookie := cartCookie(t, rr)

	rr = serve(router, httptest.NewRequest(http.MethodGet, "/api/promo/HAPPYHRS", nil), cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	var promo handlers.PromoResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&promo))
	assert.True(t, promo.Valid)
	assert.Equal(t, "HAPPYHRS", promo.Code)

	req := httptest.NewRequest(http.MethodPost, "/cart/promo", strings.NewReader(url.Values{"promoCode": {"HAPPYHRS"}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr = serve(router, req, cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Promo code HAPPYHRS applied.")
}

func TestRouter_StatusUpdateIsVisibleOnTrackingPage(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodPut, "/api/orders/"+repository.PlaceholderOrderID+"/status", strings.NewReader(`{"status":"DELIVERED"}`))
	req.Header.Set(middleware.APIKeyHeader, "apitest")
	rr := serve(router, req, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var order models.Order
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&order))
	assert.Equal(t, models.StatusDelivered, order.Status)

	rr = serve(router, httptest.NewRequest(http.MethodGet, "/order-tracking", nil), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `data-status="DELIVERED"`)
	assert.Equal(t, 4, strings.Count(rr.Body.String(), `class="step active`))
}
