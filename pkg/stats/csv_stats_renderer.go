package stats

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"
)

type StatsRenderer interface {
	RenderSummary(summary StatsSummary) (string, error)
}

type CsvStatsRendererImpl struct {
}

func NewCsvStatsRenderer() *CsvStatsRendererImpl {
	return &CsvStatsRendererImpl{}
}

// RenderSummary flattens the summary into a CSV report: headline figures
// first, then the category, payment method, and twelve-month sections.
func (t *CsvStatsRendererImpl) RenderSummary(summary StatsSummary) (string, error) {
	data := [][]string{
		{"Month", fmt.Sprintf("%04d-%02d", summary.Year, summary.Month)},
		{"Display currency", summary.DisplayCurrency},
		{"One-time total", summary.MonthTotal.StringFixed(2)},
		{"Recurring total", summary.RecurringTotal.StringFixed(2)},
		{"Recurring expenses", strconv.Itoa(summary.RecurringCount)},
		{"Peak day total", summary.PeakDayTotal.StringFixed(2)},
		{"Tracked expenses", strconv.Itoa(summary.TotalCount)},
		{},
		{"Category", "Total"},
	}
	for _, c := range summary.Categories {
		data = append(data, []string{c.Name, c.Total.StringFixed(2)})
	}

	data = append(data, []string{}, []string{"Payment method", "Total"})
	for _, m := range summary.PaymentMethods {
		data = append(data, []string{m.Name, m.Total.StringFixed(2)})
	}

	data = append(data, []string{}, []string{"Month", "Total"})
	for _, m := range summary.MonthlyTotals {
		data = append(data, []string{m.Month, m.Total.StringFixed(2)})
	}

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		if len(row) == 0 {
			// blank separator rows need one empty field to survive the writer
			row = []string{""}
		}
		if err := writer.Write(row); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}
