package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Lixing-Zhang/foodie-storefront/internal/cart"
	"github.com/Lixing-Zhang/foodie-storefront/internal/middleware"
	"github.com/Lixing-Zhang/foodie-storefront/internal/models"
	"github.com/Lixing-Zhang/foodie-storefront/internal/service"
)

// CartHandler serves the visitor's cart as JSON
type CartHandler struct {
	service *service.CartService
	logger  *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(service *service.CartService, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger,
	}
}

// CartResponse is a cart with its computed totals
type CartResponse struct {
	ID        string            `json:"id"`
	Items     []models.CartLine `json:"items"`
	ItemCount int               `json:"itemCount"`
	Totals    cart.Summary      `json:"totals"`
}

func newCartResponse(c *cart.Cart) CartResponse {
	return CartResponse{
		ID:        c.ID,
		Items:     c.Lines,
		ItemCount: c.ItemCount(),
		Totals:    c.Totals().Summary(),
	}
}

// GetCart handles GET /api/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.Get(r.Context(), middleware.CartID(r.Context()))
	if err != nil {
		writeServiceError(w, err, h.logger, "failed to load cart")
		return
	}

	WriteJSON(w, http.StatusOK, newCartResponse(c), h.logger)
}

// AddItem handles POST /api/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req models.AddToCartRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Warn("failed to decode add to cart request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	c, err := h.service.AddItem(r.Context(), middleware.CartID(r.Context()), req)
	if err != nil {
		writeServiceError(w, err, h.logger, "failed to add cart item", "restaurantId", req.RestaurantID, "itemId", req.ItemID)
		return
	}

	WriteJSON(w, http.StatusOK, newCartResponse(c), h.logger)
}

// UpdateItem handles PUT /api/cart/items/{itemId}. A quantity below one
// removes the item.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemId")

	var req models.UpdateQuantityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Warn("failed to decode quantity update", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	c, err := h.service.UpdateQuantity(r.Context(), middleware.CartID(r.Context()), itemID, req.Quantity)
	if err != nil {
		writeServiceError(w, err, h.logger, "failed to update cart item", "itemId", itemID)
		return
	}

	WriteJSON(w, http.StatusOK, newCartResponse(c), h.logger)
}

// RemoveItem handles DELETE /api/cart/items/{itemId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemId")

	c, err := h.service.RemoveItem(r.Context(), middleware.CartID(r.Context()), itemID)
	if err != nil {
		writeServiceError(w, err, h.logger, "failed to remove cart item", "itemId", itemID)
		return
	}

	WriteJSON(w, http.StatusOK, newCartResponse(c), h.logger)
}
