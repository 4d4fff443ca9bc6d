package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/foodie-storefront/internal/service"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads a JSON body, rejecting unknown fields
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// errorStatus maps service errors to an HTTP status and client message
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrRestaurantNotFound):
		return http.StatusNotFound, "Restaurant not found"
	case errors.Is(err, service.ErrOrderNotFound):
		return http.StatusNotFound, "Order not found"
	case errors.Is(err, service.ErrItemNotFound):
		return http.StatusNotFound, "Menu item not found"
	case errors.Is(err, service.ErrLineNotFound):
		return http.StatusNotFound, "Item is not in the cart"
	case errors.Is(err, service.ErrOutOfStock):
		return http.StatusConflict, "Item is out of stock"
	case errors.Is(err, service.ErrTerminalStatus):
		return http.StatusConflict, "Order status can no longer change"
	case errors.Is(err, service.ErrStatusConflict):
		return http.StatusConflict, "Order status was changed by another request"
	case errors.Is(err, service.ErrInvalidQuantity):
		return http.StatusBadRequest, "Quantity must be positive"
	case errors.Is(err, service.ErrEmptyCart):
		return http.StatusBadRequest, "Cart is empty"
	case errors.Is(err, service.ErrInvalidStatus):
		return http.StatusBadRequest, "Invalid order status"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// writeServiceError logs and writes err using errorStatus
func writeServiceError(w http.ResponseWriter, err error, logger *slog.Logger, msg string, args ...any) {
	status, message := errorStatus(err)
	args = append(args, "error", err)
	if status >= http.StatusInternalServerError {
		logger.Error(msg, args...)
	} else {
		logger.Info(msg, args...)
	}
	WriteError(w, status, message, logger)
}
