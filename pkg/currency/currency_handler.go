package currency

import (
	"encoding/json"
	"net/http"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetRates godoc
// @Summary Exchange rates for a base currency
// @Tags Currency
// @Produce json
// @Param base query string false "Base currency code" default(USD)
// @Success 200 {object} map[string]float64
// @Router /api/currency/rates [get]
// @Security XUserId
func (h *Handler) GetRates(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	base := r.URL.Query().Get("base")
	rates := h.service.GetRates(r.Context(), base)

	table := make(map[string]float64, len(rates.Table))
	for code, rate := range rates.Table {
		f, _ := rate.Float64()
		table[code] = f
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(table); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
