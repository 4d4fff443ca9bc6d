package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/foodie-storefront/internal/checkout"
	"github.com/Lixing-Zhang/foodie-storefront/internal/middleware"
	"github.com/Lixing-Zhang/foodie-storefront/internal/models"
	"github.com/Lixing-Zhang/foodie-storefront/internal/service"
)

// CheckoutHandler places orders from the JSON API
type CheckoutHandler struct {
	validator *checkout.Validator
	orders    *service.OrderService
	logger    *slog.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(validator *checkout.Validator, orders *service.OrderService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		validator: validator,
		orders:    orders,
		logger:    logger,
	}
}

// PlaceOrder handles POST /api/checkout
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var form models.CheckoutForm
	if err := decodeJSON(w, r, &form); err != nil {
		h.logger.Warn("failed to decode checkout request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	if errs := h.validator.Validate(r.Context(), form); errs != nil {
		h.logger.Info("checkout rejected", "invalid_fields", len(errs))
		WriteValidationError(w, errs, h.logger)
		return
	}

	order, err := h.orders.PlaceOrder(r.Context(), middleware.CartID(r.Context()), form)
	if err != nil {
		writeServiceError(w, err, h.logger, "failed to place order")
		return
	}

	w.Header().Set("Location", "/api/orders/"+order.ID)
	WriteJSON(w, http.StatusCreated, order, h.logger)
}
