package expense

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/expenso/expenso/internal/rest"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type ExpenseDTO struct {
	ID                 int             `json:"id"`
	Title              string          `json:"title"`
	Description        string          `json:"description,omitempty"`
	Amount             decimal.Decimal `json:"amount"`
	Currency           string          `json:"currency"`
	CategoryID         int             `json:"categoryId,omitempty"`
	PaymentMethodID    int             `json:"paymentMethodId,omitempty"`
	BillingDate        string          `json:"billingDate"`
	BillingInterval    string          `json:"billingInterval"`
	CustomIntervalDays int             `json:"customIntervalDays,omitempty"`
	SpecificDays       []int           `json:"specificDays,omitempty"`
	IsActive           bool            `json:"isActive"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetAll godoc
// @Summary List expenses
// @Tags Expense
// @Produce json
// @Success 200 {array} ExpenseDTO
// @Router /api/expenses [get]
// @Security XUserId
func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	expenses, err := h.service.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	expensesDTO := make([]ExpenseDTO, 0, len(expenses))
	for _, e := range expenses {
		expensesDTO = append(expensesDTO, toDTO(e))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(expensesDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Create godoc
// @Summary Create an expense
// @Tags Expense
// @Accept json
// @Produce json
// @Param expense body ExpenseDTO true "Expense"
// @Success 201 {object} ExpenseDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/expenses [post]
// @Security XUserId
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new expense")
	w.Header().Set("Content-Type", "application/json")

	var dto ExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	expense, err := fromDTO(dto)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	created, err := h.service.Create(r.Context(), expense)
	if err != nil {
		if errors.Is(err, ErrExpenseDataInvalid) {
			writeBadRequest(w, err.Error())
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(toDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Update godoc
// @Summary Update an expense
// @Tags Expense
// @Accept json
// @Produce json
// @Param id path int true "Expense ID"
// @Param expense body ExpenseDTO true "Expense"
// @Success 200 {object} ExpenseDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Failure 404 {string} string "Expense not found"
// @Router /api/expenses/{id} [put]
// @Security XUserId
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	expenseId, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var dto ExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.ID == 0 {
		dto.ID = expenseId
	}
	if dto.ID != expenseId {
		writeBadRequest(w, "Invalid expense id in request body")
		return
	}

	expense, err := fromDTO(dto)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	ok, err := h.service.Update(r.Context(), expense)
	if err != nil {
		if errors.Is(err, ErrExpenseDataInvalid) {
			writeBadRequest(w, err.Error())
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Expense not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(toDTO(expense)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Delete godoc
// @Summary Delete an expense
// @Tags Expense
// @Param id path int true "Expense ID"
// @Success 204
// @Failure 404 {string} string "Expense not found"
// @Router /api/expenses/{id} [delete]
// @Security XUserId
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	expenseId, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ok, err := h.service.Delete(r.Context(), expenseId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Expense not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeBadRequest(w http.ResponseWriter, message string) {
	w.WriteHeader(http.StatusBadRequest)
	if err := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: message}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toDTO(e Expense) ExpenseDTO {
	return ExpenseDTO{
		ID:                 e.ID,
		Title:              e.Title,
		Description:        e.Description,
		Amount:             e.Amount,
		Currency:           e.Currency,
		CategoryID:         e.CategoryID,
		PaymentMethodID:    e.PaymentMethodID,
		BillingDate:        e.BillingDate.Format("2006-01-02"),
		BillingInterval:    string(e.BillingInterval),
		CustomIntervalDays: e.CustomIntervalDays,
		SpecificDays:       e.SpecificDays,
		IsActive:           e.IsActive,
	}
}

func fromDTO(dto ExpenseDTO) (Expense, error) {
	billingDate, err := time.Parse("2006-01-02", dto.BillingDate)
	if err != nil {
		return Expense{}, errors.New("billingDate must be in YYYY-MM-DD format")
	}
	currency := dto.Currency
	if currency == "" {
		currency = "USD"
	}
	return Expense{
		ID:                 dto.ID,
		Title:              dto.Title,
		Description:        dto.Description,
		Amount:             dto.Amount,
		Currency:           currency,
		CategoryID:         dto.CategoryID,
		PaymentMethodID:    dto.PaymentMethodID,
		BillingDate:        billingDate,
		BillingInterval:    ParseInterval(dto.BillingInterval),
		CustomIntervalDays: dto.CustomIntervalDays,
		SpecificDays:       dto.SpecificDays,
		IsActive:           dto.IsActive,
	}, nil
}
