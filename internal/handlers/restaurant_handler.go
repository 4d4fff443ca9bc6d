package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Lixing-Zhang/foodie-storefront/internal/models"
	"github.com/Lixing-Zhang/foodie-storefront/internal/service"
)

// RestaurantHandler serves restaurant discovery and menus
type RestaurantHandler struct {
	service *service.RestaurantService
	logger  *slog.Logger
}

// NewRestaurantHandler creates a new restaurant handler
func NewRestaurantHandler(service *service.RestaurantService, logger *slog.Logger) *RestaurantHandler {
	return &RestaurantHandler{
		service: service,
		logger:  logger,
	}
}

// ListRestaurants handles GET /api/restaurants?q=
func (h *RestaurantHandler) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	restaurants, err := h.service.Search(r.Context(), query)
	if err != nil {
		writeServiceError(w, err, h.logger, "failed to list restaurants", "query", query)
		return
	}

	WriteJSON(w, http.StatusOK, restaurants, h.logger)
}

// GetRestaurant handles GET /api/restaurants/{restaurantId}
func (h *RestaurantHandler) GetRestaurant(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "restaurantId")

	restaurant, err := h.service.GetRestaurant(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger, "failed to get restaurant", "restaurantId", id)
		return
	}

	WriteJSON(w, http.StatusOK, restaurant, h.logger)
}

// MenuCategoryResponse is a menu category with its display name
type MenuCategoryResponse struct {
	Key   string            `json:"key"`
	Name  string            `json:"name"`
	Items []models.MenuItem `json:"items"`
}

// GetMenu handles GET /api/restaurants/{restaurantId}/menu
func (h *RestaurantHandler) GetMenu(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "restaurantId")

	menu, err := h.service.GetMenu(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger, "failed to get menu", "restaurantId", id)
		return
	}

	resp := make([]MenuCategoryResponse, 0, len(menu))
	for _, c := range menu {
		resp = append(resp, MenuCategoryResponse{Key: c.Key, Name: c.Name(), Items: c.Items})
	}
	WriteJSON(w, http.StatusOK, resp, h.logger)
}
