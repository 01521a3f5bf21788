package payment_method

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

type PaymentMethodDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetAll godoc
// @Summary List payment methods
// @Tags PaymentMethod
// @Produce json
// @Success 200 {array} PaymentMethodDTO
// @Router /api/payment-methods [get]
// @Security XUserId
func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	methods, err := h.service.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]PaymentMethodDTO, 0, len(methods))
	for _, m := range methods {
		dtos = append(dtos, PaymentMethodDTO(m))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Create godoc
// @Summary Create a payment method
// @Tags PaymentMethod
// @Accept json
// @Produce json
// @Param method body PaymentMethodDTO true "Payment method"
// @Success 201 {object} PaymentMethodDTO
// @Failure 400 {string} string "Invalid request"
// @Router /api/payment-methods [post]
// @Security XUserId
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dto PaymentMethodDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), PaymentMethod(dto))
	if err != nil {
		if errors.Is(err, ErrPaymentMethodDataInvalid) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(PaymentMethodDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Update godoc
// @Summary Update a payment method
// @Tags PaymentMethod
// @Accept json
// @Produce json
// @Param id path int true "Payment method ID"
// @Param method body PaymentMethodDTO true "Payment method"
// @Success 200 {object} PaymentMethodDTO
// @Failure 404 {string} string "Payment method not found"
// @Router /api/payment-methods/{id} [put]
// @Security XUserId
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	methodId, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var dto PaymentMethodDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	dto.ID = methodId

	ok, err := h.service.Update(r.Context(), PaymentMethod(dto))
	if err != nil {
		if errors.Is(err, ErrPaymentMethodDataInvalid) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Payment method not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Delete godoc
// @Summary Delete a payment method
// @Tags PaymentMethod
// @Param id path int true "Payment method ID"
// @Success 204
// @Failure 404 {string} string "Payment method not found"
// @Router /api/payment-methods/{id} [delete]
// @Security XUserId
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	methodId, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ok, err := h.service.Delete(r.Context(), methodId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Payment method not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
