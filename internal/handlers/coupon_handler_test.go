package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockPromoValidator is a mock implementation of promoValidator
type mockPromoValidator struct {
	validCodes map[string]bool
}

func (m *mockPromoValidator) IsValid(ctx context.Context, code string) bool {
	return m.validCodes[code]
}

func (m *mockPromoValidator) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"total_files":   2,
		"total_coupons": len(m.validCodes),
	}
}

func TestPromoHandler_ValidatePromo(t *testing.T) {
	deps := newTestDeps()
	handler := NewPromoHandler(&mockPromoValidator{validCodes: map[string]bool{"HAPPYHRS": true, "FIFTYOFF": true}}, deps.log)

	tests := []struct {
		name           string
		code           string
		expectedStatus int
		expectedValid  bool
	}{
		{name: "valid code", code: "HAPPYHRS", expectedStatus: http.StatusOK, expectedValid: true},
		{name: "another valid code", code: "FIFTYOFF", expectedStatus: http.StatusOK, expectedValid: true},
		{name: "unknown code", code: "SUPER100", expectedStatus: http.StatusNotFound},
		{name: "empty code", code: "", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			handler.ValidatePromo(rr, newRequest(http.MethodGet, "/api/promo/"+tt.code, nil, map[string]string{"code": tt.code}))

			assert.Equal(t, tt.expectedStatus, rr.Code)
			var resp PromoResponse
			decodeBody(t, rr, &resp)
			assert.Equal(t, tt.expectedValid, resp.Valid)
			assert.Equal(t, tt.code, resp.Code)
			if !tt.expectedValid {
				assert.NotEmpty(t, resp.Message)
			}
		})
	}
}

func TestPromoHandler_GetStats(t *testing.T) {
	deps := newTestDeps()
	handler := NewPromoHandler(&mockPromoValidator{validCodes: map[string]bool{"HAPPYHRS": true}}, deps.log)

	rr := httptest.NewRecorder()
	handler.GetStats(rr, newRequest(http.MethodGet, "/api/promo/stats", nil, nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var stats map[string]interface{}
	decodeBody(t, rr, &stats)
	assert.EqualValues(t, 2, stats["total_files"])
	assert.EqualValues(t, 1, stats["total_coupons"])
}

func TestPromoHandler_NoPromoSets(t *testing.T) {
	deps := newTestDeps()
	handler := NewPromoHandler(nil, deps.log)

	tests := []struct {
		name           string
		code           string
		expectedStatus int
		expectedValid  bool
	}{
		{name: "any code is accepted", code: "HAPPYHRS", expectedStatus: http.StatusOK, expectedValid: true},
		{name: "unlisted code is accepted", code: "SUPER100", expectedStatus: http.StatusOK, expectedValid: true},
		{name: "empty code", code: "", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			handler.ValidatePromo(rr, newRequest(http.MethodGet, "/api/promo/"+tt.code, nil, map[string]string{"code": tt.code}))

			assert.Equal(t, tt.expectedStatus, rr.Code)
			var resp PromoResponse
			decodeBody(t, rr, &resp)
			assert.Equal(t, tt.expectedValid, resp.Valid)
		})
	}

	rr := httptest.NewRecorder()
	handler.GetStats(rr, newRequest(http.MethodGet, "/api/promo/stats", nil, nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var stats map[string]interface{}
	decodeBody(t, rr, &stats)
	assert.EqualValues(t, 0, stats["total_files"])
	assert.EqualValues(t, 0, stats["total_coupons"])
}
