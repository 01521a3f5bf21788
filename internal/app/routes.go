package app

import (
	"net/http"

	"github.com/expenso/expenso/internal/config"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Preflight requests are answered by the CORS middleware; the route only
	// exists so the middleware chain runs for them.
	r.PathPrefix("/api/").Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	// Expenses
	r.HandleFunc("/api/expenses", deps.ExpenseHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/expenses", deps.ExpenseHandler.Create).Methods("POST")
	r.HandleFunc("/api/expenses/{id}", deps.ExpenseHandler.Update).Methods("PUT")
	r.HandleFunc("/api/expenses/{id}", deps.ExpenseHandler.Delete).Methods("DELETE")

	// Categories
	r.HandleFunc("/api/categories", deps.CategoryHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/categories", deps.CategoryHandler.Create).Methods("POST")
	r.HandleFunc("/api/categories/{id}", deps.CategoryHandler.Update).Methods("PUT")
	r.HandleFunc("/api/categories/{id}", deps.CategoryHandler.Delete).Methods("DELETE")

	// Payment methods
	r.HandleFunc("/api/payment-methods", deps.PaymentMethodHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/payment-methods", deps.PaymentMethodHandler.Create).Methods("POST")
	r.HandleFunc("/api/payment-methods/{id}", deps.PaymentMethodHandler.Update).Methods("PUT")
	r.HandleFunc("/api/payment-methods/{id}", deps.PaymentMethodHandler.Delete).Methods("DELETE")

	// Currency
	r.HandleFunc("/api/currency/rates", deps.CurrencyHandler.GetRates).Methods("GET")

	// Stats and calendar
	r.HandleFunc("/api/stats/summary", deps.StatsHandler.GetSummary).Methods("GET")
	r.HandleFunc("/api/stats/summary/export", deps.StatsHandler.ExportSummary).Methods("GET")
	r.HandleFunc("/api/calendar", deps.StatsHandler.GetCalendar).Methods("GET")

	// User management
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user/current", deps.UserHandler.UpdateUser).Methods("PUT")
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user/name-availability", deps.UserHandler.IsUsernameAvailable).Methods("GET").Queries("username", "{username}")
	r.HandleFunc("/api/user", deps.UserHandler.GetAvailableUsers).Methods("GET")
	r.HandleFunc("/api/user/{userUid}", deps.UserHandler.DeleteUser).Methods("DELETE")
}
