package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// promoValidator is the interface for promo code validation
type promoValidator interface {
	IsValid(ctx context.Context, code string) bool
	GetStats() map[string]interface{}
}

// PromoResponse reports whether a promo code can be applied
type PromoResponse struct {
	Valid   bool   `json:"valid"`
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

// PromoHandler handles HTTP requests for promo code validation
type PromoHandler struct {
	validator promoValidator
	logger    *slog.Logger
}

// NewPromoHandler creates a new PromoHandler. A nil validator means no promo
// sets are configured and every code is accepted, as at checkout.
func NewPromoHandler(validator promoValidator, logger *slog.Logger) *PromoHandler {
	return &PromoHandler{
		validator: validator,
		logger:    logger,
	}
}

// ValidatePromo handles GET /api/promo/{code}
func (h *PromoHandler) ValidatePromo(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	if code != "" && (h.validator == nil || h.validator.IsValid(r.Context(), code)) {
		WriteJSON(w, http.StatusOK, PromoResponse{Valid: true, Code: code}, h.logger)
		return
	}

	WriteJSON(w, http.StatusNotFound, PromoResponse{
		Valid:   false,
		Code:    code,
		Message: "Promo code not found or invalid",
	}, h.logger)
}

// GetStats handles GET /api/promo/stats
func (h *PromoHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	if h.validator == nil {
		WriteJSON(w, http.StatusOK, map[string]interface{}{"total_files": 0, "total_coupons": 0}, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, h.validator.GetStats(), h.logger)
}
