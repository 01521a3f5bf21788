package app

import (
	"database/sql"

	"github.com/expenso/expenso/internal/config"
	"github.com/expenso/expenso/internal/utils"
	"github.com/expenso/expenso/pkg/category"
	"github.com/expenso/expenso/pkg/currency"
	"github.com/expenso/expenso/pkg/expense"
	"github.com/expenso/expenso/pkg/payment_method"
	"github.com/expenso/expenso/pkg/stats"
	"github.com/expenso/expenso/pkg/user"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	UserService user.Service
	UserHandler *user.Handler

	CategoryRepo    category.Repo
	CategoryService *category.ServiceImpl
	CategoryHandler *category.Handler

	PaymentMethodRepo    payment_method.Repo
	PaymentMethodService *payment_method.ServiceImpl
	PaymentMethodHandler *payment_method.Handler

	ExpenseRepo    expense.Repo
	ExpenseService *expense.ServiceImpl
	ExpenseHandler *expense.Handler

	CurrencyClient  currency.Client
	CurrencyService *currency.ServiceImpl
	CurrencyHandler *currency.Handler

	StatsService     *stats.StatsServiceImpl
	CsvStatsRenderer *stats.CsvStatsRendererImpl
	StatsHandler     *stats.StatsHandler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}

	deps.CategoryRepo = category.NewRepo(db)
	deps.CategoryService = category.NewService(deps.CategoryRepo)
	deps.CategoryHandler = category.NewHandler(deps.CategoryService)

	deps.PaymentMethodRepo = payment_method.NewRepo(db)
	deps.PaymentMethodService = payment_method.NewService(deps.PaymentMethodRepo)
	deps.PaymentMethodHandler = payment_method.NewHandler(deps.PaymentMethodService)

	deps.UserService = user.NewUserService(user.NewUserRepo(db))
	// New users start with the default categories and payment methods.
	deps.UserHandler = user.NewHandler(deps.UserService,
		deps.CategoryService.SeedDefaults,
		deps.PaymentMethodService.SeedDefaults,
	)

	deps.ExpenseRepo = expense.NewRepo(db)
	deps.ExpenseService = expense.NewService(deps.ExpenseRepo)
	deps.ExpenseHandler = expense.NewHandler(deps.ExpenseService)

	deps.CurrencyClient = currency.NewHTTPClient(cfg.Currency.RatesURL)
	deps.CurrencyService = currency.NewService(deps.CurrencyClient, deps.Clock)
	deps.CurrencyHandler = currency.NewHandler(deps.CurrencyService)

	deps.StatsService = stats.NewStatsService(
		deps.ExpenseService,
		deps.CategoryService,
		deps.PaymentMethodService,
		deps.CurrencyService,
		deps.Clock,
	)
	deps.CsvStatsRenderer = stats.NewCsvStatsRenderer()
	deps.StatsHandler = stats.NewStatsHandler(deps.StatsService, deps.CsvStatsRenderer, deps.Clock)

	return deps
}
