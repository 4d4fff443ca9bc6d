package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lixing-Zhang/foodie-storefront/internal/models"
)

func TestRestaurantHandler_ListRestaurants(t *testing.T) {
	deps := newTestDeps()
	handler := NewRestaurantHandler(deps.restaurants, deps.log)

	tests := []struct {
		name      string
		target    string
		wantNames []string
	}{
		{name: "all restaurants", target: "/api/restaurants", wantNames: []string{"Pizza Heaven", "Burger Joint", "Sushi World", "Curry House"}},
		{name: "search by cuisine", target: "/api/restaurants?q=sushi", wantNames: []string{"Sushi World"}},
		{name: "search by name", target: "/api/restaurants?q=HOUSE", wantNames: []string{"Curry House"}},
		{name: "no match", target: "/api/restaurants?q=tacos", wantNames: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			handler.ListRestaurants(rr, newRequest(http.MethodGet, tt.target, nil, nil))

			require.Equal(t, http.StatusOK, rr.Code)
			var got []models.RestaurantSummary
			decodeBody(t, rr, &got)

			names := make([]string, 0, len(got))
			for _, r := range got {
				names = append(names, r.Name)
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestRestaurantHandler_GetRestaurant(t *testing.T) {
	deps := newTestDeps()
	handler := NewRestaurantHandler(deps.restaurants, deps.log)

	tests := []struct {
		name           string
		restaurantID   string
		expectedStatus int
	}{
		{name: "found", restaurantID: "2", expectedStatus: http.StatusOK},
		{name: "not found", restaurantID: "42", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := newRequest(http.MethodGet, "/api/restaurants/"+tt.restaurantID, nil, map[string]string{"restaurantId": tt.restaurantID})
			handler.GetRestaurant(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedStatus == http.StatusOK {
				var got models.Restaurant
				decodeBody(t, rr, &got)
				assert.Equal(t, "Burger Joint", got.Name)
			} else {
				var got ErrorResponse
				decodeBody(t, rr, &got)
				assert.Equal(t, "Restaurant not found", got.Error)
			}
		})
	}
}

func TestRestaurantHandler_GetMenu(t *testing.T) {
	deps := newTestDeps()
	handler := NewRestaurantHandler(deps.restaurants, deps.log)

	rr := httptest.NewRecorder()
	handler.GetMenu(rr, newRequest(http.MethodGet, "/api/restaurants/1/menu", nil, map[string]string{"restaurantId": "1"}))

	require.Equal(t, http.StatusOK, rr.Code)
	var got []MenuCategoryResponse
	decodeBody(t, rr, &got)
	require.Len(t, got, 4)
	assert.Equal(t, "mainCourses", got[1].Key)
	assert.Equal(t, "Main Courses", got[1].Name)
	assert.True(t, got[1].Items[2].OutOfStock)
}
