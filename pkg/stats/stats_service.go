package stats

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/expenso/expenso/internal/utils"
	"github.com/expenso/expenso/pkg/category"
	"github.com/expenso/expenso/pkg/currency"
	"github.com/expenso/expenso/pkg/expense"
	"github.com/expenso/expenso/pkg/payment_method"
	"github.com/expenso/expenso/pkg/user"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const topExpensesLimit = 5

type StatsService interface {
	GetSummary(ctx context.Context) (StatsSummary, error)
	GetCalendar(ctx context.Context, year int, month time.Month) (Calendar, error)
}

type StatsServiceImpl struct {
	expenses       expense.Provider
	categories     category.Service
	paymentMethods payment_method.Service
	rates          currency.Service
	clock          utils.Clock
}

func NewStatsService(
	expenses expense.Provider,
	categories category.Service,
	paymentMethods payment_method.Service,
	rates currency.Service,
	clock utils.Clock,
) *StatsServiceImpl {
	return &StatsServiceImpl{
		expenses:       expenses,
		categories:     categories,
		paymentMethods: paymentMethods,
		rates:          rates,
		clock:          clock,
	}
}

func (s *StatsServiceImpl) GetSummary(ctx context.Context) (StatsSummary, error) {
	currentUser, err := user.CurrentUser(ctx)
	if err != nil {
		return StatsSummary{}, fmt.Errorf("failed to get current user: %w", err)
	}
	displayCurrency := currentUser.Settings.DisplayCurrency
	if displayCurrency == "" {
		displayCurrency = "USD"
	}

	expenses, err := s.expenses.GetAll(ctx)
	if err != nil {
		return StatsSummary{}, err
	}
	log.Tracef("Calculating summary over %d expenses", len(expenses))

	rates := s.rates.GetRates(ctx, displayCurrency)
	convert := func(amount decimal.Decimal, cur string) decimal.Decimal {
		return rates.Convert(amount, cur, displayCurrency)
	}

	now := s.clock.Now()
	year, month := now.Year(), now.Month()

	buckets := MonthlyTotals(expenses, year, month, convert)
	summary := StatsSummary{
		Year:            year,
		Month:           month,
		DisplayCurrency: displayCurrency,
		MonthTotal:      buckets.OnceTotal,
		RecurringTotal:  buckets.RecurringTotal,
		RecurringCount:  buckets.RecurringCount,
		TotalCount:      len(expenses),
		PeakDayTotal:    PeakDayTotal(expenses, year, month, convert),
	}

	categories, err := s.categories.GetAll(ctx)
	if err != nil {
		return StatsSummary{}, err
	}
	methods, err := s.paymentMethods.GetAll(ctx)
	if err != nil {
		return StatsSummary{}, err
	}

	summary.Categories = categoryBreakdown(expenses, categories, year, month, convert)
	summary.PaymentMethods = paymentBreakdown(expenses, methods, year, month, convert)
	summary.TopExpenses = topExpenses(expenses, categories, year, month, convert)

	monthlyTotals, err := s.twelveMonthTotals(ctx, expenses, now, convert)
	if err != nil {
		return StatsSummary{}, err
	}
	summary.MonthlyTotals = monthlyTotals

	return summary, nil
}

// twelveMonthTotals computes the combined spend for the past twelve months,
// current month included. The months are independent, so they are computed
// concurrently.
func (s *StatsServiceImpl) twelveMonthTotals(ctx context.Context, expenses []expense.Expense, now time.Time, convert ConvertFunc) ([]MonthTotal, error) {
	totals := make([]MonthTotal, 12)
	g, _ := errgroup.WithContext(ctx)
	for i := 0; i < 12; i++ {
		g.Go(func() error {
			target := time.Date(now.Year(), now.Month()-time.Month(11-i), 1, 0, 0, 0, 0, time.UTC)
			total := decimal.Zero
			for _, e := range expenses {
				if !e.IsActive {
					continue
				}
				count := expense.CountInMonth(e, target.Year(), target.Month())
				if count <= 0 {
					continue
				}
				total = total.Add(convert(e.Amount.Mul(decimal.NewFromInt(int64(count))), e.Currency))
			}
			totals[i] = MonthTotal{Month: target.Format("2006-01"), Total: total}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return totals, nil
}

func (s *StatsServiceImpl) GetCalendar(ctx context.Context, year int, month time.Month) (Calendar, error) {
	expenses, err := s.expenses.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	methods, err := s.paymentMethods.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	categoriesById := make(map[int]category.Category, len(categories))
	for _, c := range categories {
		categoriesById[c.ID] = c
	}
	methodsById := make(map[int]payment_method.PaymentMethod, len(methods))
	for _, m := range methods {
		methodsById[m.ID] = m
	}

	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	calendar := make(Calendar, lastDay)
	for day := 1; day <= lastDay; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		key := date.Format("2006-01-02")
		entries := []CalendarEntry{}
		for _, e := range expenses {
			if !e.IsActive {
				continue
			}
			if !expense.OccursOn(e, date) {
				continue
			}
			entry := CalendarEntry{
				ExpenseID:       e.ID,
				Title:           e.Title,
				Amount:          e.Amount,
				Currency:        e.Currency,
				BillingInterval: string(e.BillingInterval),
			}
			if c, ok := categoriesById[e.CategoryID]; ok {
				entry.CategoryName = c.Name
				entry.CategoryIcon = c.Icon
				entry.CategoryColor = c.Color
			}
			if m, ok := methodsById[e.PaymentMethodID]; ok {
				entry.PaymentMethodName = m.Name
			}
			entries = append(entries, entry)
		}
		calendar[key] = entries
	}
	return calendar, nil
}

func categoryBreakdown(expenses []expense.Expense, categories []category.Category, year int, month time.Month, convert ConvertFunc) []CategoryBreakdown {
	categoriesById := make(map[int]category.Category, len(categories))
	for _, c := range categories {
		categoriesById[c.ID] = c
	}

	totalsByCategory := map[int]decimal.Decimal{}
	for _, e := range expenses {
		if !e.IsActive {
			continue
		}
		count := expense.CountInMonth(e, year, month)
		if count <= 0 {
			continue
		}
		converted := convert(e.Amount.Mul(decimal.NewFromInt(int64(count))), e.Currency)
		total, ok := totalsByCategory[e.CategoryID]
		if !ok {
			total = decimal.Zero
		}
		totalsByCategory[e.CategoryID] = total.Add(converted)
	}

	breakdown := make([]CategoryBreakdown, 0, len(totalsByCategory))
	for categoryId, total := range totalsByCategory {
		item := CategoryBreakdown{Total: total}
		if c, ok := categoriesById[categoryId]; ok {
			item.Name = c.Name
			item.Icon = c.Icon
			item.Color = c.Color
		}
		breakdown = append(breakdown, item)
	}
	sort.Slice(breakdown, func(i, j int) bool {
		return breakdown[i].Total.GreaterThan(breakdown[j].Total)
	})
	return breakdown
}

func paymentBreakdown(expenses []expense.Expense, methods []payment_method.PaymentMethod, year int, month time.Month, convert ConvertFunc) []PaymentBreakdown {
	methodsById := make(map[int]payment_method.PaymentMethod, len(methods))
	for _, m := range methods {
		methodsById[m.ID] = m
	}

	totalsByMethod := map[int]decimal.Decimal{}
	for _, e := range expenses {
		if !e.IsActive {
			continue
		}
		count := expense.CountInMonth(e, year, month)
		if count <= 0 {
			continue
		}
		converted := convert(e.Amount.Mul(decimal.NewFromInt(int64(count))), e.Currency)
		total, ok := totalsByMethod[e.PaymentMethodID]
		if !ok {
			total = decimal.Zero
		}
		totalsByMethod[e.PaymentMethodID] = total.Add(converted)
	}

	breakdown := make([]PaymentBreakdown, 0, len(totalsByMethod))
	for methodId, total := range totalsByMethod {
		item := PaymentBreakdown{Total: total}
		if m, ok := methodsById[methodId]; ok {
			item.Name = m.Name
			item.Icon = m.Icon
		}
		breakdown = append(breakdown, item)
	}
	sort.Slice(breakdown, func(i, j int) bool {
		return breakdown[i].Total.GreaterThan(breakdown[j].Total)
	})
	return breakdown
}

func topExpenses(expenses []expense.Expense, categories []category.Category, year int, month time.Month, convert ConvertFunc) []TopExpense {
	categoriesById := make(map[int]category.Category, len(categories))
	for _, c := range categories {
		categoriesById[c.ID] = c
	}

	type ranked struct {
		expense   expense.Expense
		converted decimal.Decimal
	}
	occurring := make([]ranked, 0, len(expenses))
	for _, e := range expenses {
		if !e.IsActive {
			continue
		}
		if expense.CountInMonth(e, year, month) <= 0 {
			continue
		}
		occurring = append(occurring, ranked{expense: e, converted: convert(e.Amount, e.Currency)})
	}
	sort.Slice(occurring, func(i, j int) bool {
		return occurring[i].converted.GreaterThan(occurring[j].converted)
	})

	limit := topExpensesLimit
	if len(occurring) < limit {
		limit = len(occurring)
	}
	top := make([]TopExpense, 0, limit)
	for _, r := range occurring[:limit] {
		item := TopExpense{
			Title:    r.expense.Title,
			Amount:   r.expense.Amount,
			Currency: r.expense.Currency,
		}
		if c, ok := categoriesById[r.expense.CategoryID]; ok {
			item.CategoryIcon = c.Icon
			item.CategoryColor = c.Color
		}
		top = append(top, item)
	}
	return top
}
