package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Lixing-Zhang/foodie-storefront/internal/models"
	"github.com/Lixing-Zhang/foodie-storefront/internal/service"
	"github.com/Lixing-Zhang/foodie-storefront/internal/tracking"
)

// OrderHandler handles order tracking requests
type OrderHandler struct {
	orderService *service.OrderService
	log          *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, log *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		log:          log,
	}
}

// GetOrder handles GET /api/orders/{orderId}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "orderId")

	order, err := h.orderService.GetOrder(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.log, "failed to get order", "order_id", id)
		return
	}

	WriteJSON(w, http.StatusOK, order, h.log)
}

// GetStepper handles GET /api/orders/{orderId}/stepper
func (h *OrderHandler) GetStepper(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "orderId")

	order, err := h.orderService.GetOrder(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.log, "failed to get order", "order_id", id)
		return
	}

	WriteJSON(w, http.StatusOK, tracking.NewStepper(order.Status), h.log)
}

// UpdateStatus handles PUT /api/orders/{orderId}/status
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "orderId")

	var req models.UpdateStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.log.Warn("failed to decode status update", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	order, err := h.orderService.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		writeServiceError(w, err, h.log, "failed to update order status", "order_id", id, "status", req.Status)
		return
	}

	WriteJSON(w, http.StatusOK, order, h.log)
}
