package stats

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/expenso/expenso/internal/rest"
	"github.com/expenso/expenso/internal/utils"
	"github.com/shopspring/decimal"
)

type MonthTotalDTO struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

type CategoryBreakdownDTO struct {
	Name  string          `json:"name"`
	Icon  string          `json:"icon"`
	Color string          `json:"color"`
	Total decimal.Decimal `json:"total"`
}

type PaymentBreakdownDTO struct {
	Name  string          `json:"name"`
	Icon  string          `json:"icon"`
	Total decimal.Decimal `json:"total"`
}

type TopExpenseDTO struct {
	Title         string          `json:"title"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	CategoryIcon  string          `json:"categoryIcon,omitempty"`
	CategoryColor string          `json:"categoryColor,omitempty"`
}

type StatsSummaryDTO struct {
	Year            int                    `json:"year"`
	Month           int                    `json:"month"`
	DisplayCurrency string                 `json:"displayCurrency"`
	MonthTotal      decimal.Decimal        `json:"monthTotal"`
	RecurringTotal  decimal.Decimal        `json:"recurringTotal"`
	RecurringCount  int                    `json:"recurringCount"`
	TotalCount      int                    `json:"totalCount"`
	PeakDayTotal    decimal.Decimal        `json:"peakDayTotal"`
	Categories      []CategoryBreakdownDTO `json:"categories"`
	PaymentMethods  []PaymentBreakdownDTO  `json:"paymentMethods"`
	TopExpenses     []TopExpenseDTO        `json:"topExpenses"`
	MonthlyTotals   []MonthTotalDTO        `json:"monthlyTotals"`
}

type CalendarEntryDTO struct {
	ID                int             `json:"id"`
	Title             string          `json:"title"`
	Amount            decimal.Decimal `json:"amount"`
	Currency          string          `json:"currency"`
	CategoryName      string          `json:"categoryName,omitempty"`
	CategoryIcon      string          `json:"categoryIcon,omitempty"`
	CategoryColor     string          `json:"categoryColor,omitempty"`
	PaymentMethodName string          `json:"paymentMethodName,omitempty"`
	BillingInterval   string          `json:"billingInterval"`
}

type StatsHandler struct {
	statsService     StatsService
	csvStatsRenderer StatsRenderer
	clock            utils.Clock
}

func NewStatsHandler(statsService StatsService, csvStatsRenderer StatsRenderer, clock utils.Clock) *StatsHandler {
	return &StatsHandler{statsService, csvStatsRenderer, clock}
}

// GetSummary godoc
// @Summary Aggregated spending summary for the current month
// @Tags Stats
// @Produce json
// @Produce text/csv
// @Success 200 {object} StatsSummaryDTO
// @Router /api/stats/summary [get]
// @Security XUserId
func (handler *StatsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := handler.statsService.GetSummary(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if r.Header.Get("Accept") == "text/csv" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		csv, err := handler.csvStatsRenderer.RenderSummary(summary)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if _, err := w.Write([]byte(csv)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(summaryToDTO(summary)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// ExportSummary godoc
// @Summary Download the monthly summary as CSV
// @Tags Stats
// @Produce text/csv
// @Success 200 {string} string "CSV report"
// @Router /api/stats/summary/export [get]
// @Security XUserId
func (handler *StatsHandler) ExportSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := handler.statsService.GetSummary(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	csv, err := handler.csvStatsRenderer.RenderSummary(summary)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="expenses-%04d-%02d.csv"`, summary.Year, summary.Month))
	if _, err := w.Write([]byte(csv)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GetCalendar godoc
// @Summary Expense occurrences for every day of a month
// @Tags Stats
// @Produce json
// @Param year query int false "Year" default(current year)
// @Param month query int false "Month (1-12)" default(current month)
// @Success 200 {object} map[string][]CalendarEntryDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid year or month"
// @Router /api/calendar [get]
// @Security XUserId
func (handler *StatsHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	now := handler.clock.Now()
	year := now.Year()
	month := now.Month()

	if yearParam := r.URL.Query().Get("year"); yearParam != "" {
		parsed, err := strconv.Atoi(yearParam)
		if err != nil {
			writeInvalidParam(w, "Invalid year", "year must be an integer")
			return
		}
		year = parsed
	}
	if monthParam := r.URL.Query().Get("month"); monthParam != "" {
		parsed, err := strconv.Atoi(monthParam)
		if err != nil || parsed < 1 || parsed > 12 {
			writeInvalidParam(w, "Invalid month", "month must be an integer between 1 and 12")
			return
		}
		month = time.Month(parsed)
	}

	calendar, err := handler.statsService.GetCalendar(r.Context(), year, month)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	response := make(map[string][]CalendarEntryDTO, len(calendar))
	for date, entries := range calendar {
		dtos := make([]CalendarEntryDTO, 0, len(entries))
		for _, entry := range entries {
			dtos = append(dtos, CalendarEntryDTO{
				ID:                entry.ExpenseID,
				Title:             entry.Title,
				Amount:            entry.Amount,
				Currency:          entry.Currency,
				CategoryName:      entry.CategoryName,
				CategoryIcon:      entry.CategoryIcon,
				CategoryColor:     entry.CategoryColor,
				PaymentMethodName: entry.PaymentMethodName,
				BillingInterval:   entry.BillingInterval,
			})
		}
		response[date] = dtos
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeInvalidParam(w http.ResponseWriter, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	if err := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: message, Details: details}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func summaryToDTO(summary StatsSummary) StatsSummaryDTO {
	categories := make([]CategoryBreakdownDTO, 0, len(summary.Categories))
	for _, c := range summary.Categories {
		categories = append(categories, CategoryBreakdownDTO(c))
	}
	methods := make([]PaymentBreakdownDTO, 0, len(summary.PaymentMethods))
	for _, m := range summary.PaymentMethods {
		methods = append(methods, PaymentBreakdownDTO(m))
	}
	top := make([]TopExpenseDTO, 0, len(summary.TopExpenses))
	for _, t := range summary.TopExpenses {
		top = append(top, TopExpenseDTO(t))
	}
	monthly := make([]MonthTotalDTO, 0, len(summary.MonthlyTotals))
	for _, m := range summary.MonthlyTotals {
		monthly = append(monthly, MonthTotalDTO(m))
	}
	return StatsSummaryDTO{
		Year:            summary.Year,
		Month:           int(summary.Month),
		DisplayCurrency: summary.DisplayCurrency,
		MonthTotal:      summary.MonthTotal,
		RecurringTotal:  summary.RecurringTotal,
		RecurringCount:  summary.RecurringCount,
		TotalCount:      summary.TotalCount,
		PeakDayTotal:    summary.PeakDayTotal,
		Categories:      categories,
		PaymentMethods:  methods,
		TopExpenses:     top,
		MonthlyTotals:   monthly,
	}
}
