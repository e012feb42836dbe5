package report

import (
	"bytes"
	"encoding/csv"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type ReportRenderer interface {
	RenderChart(chart Chart) (string, error)
}

type CsvReportRendererImpl struct {
}

func NewCsvReportRenderer() *CsvReportRendererImpl {
	return &CsvReportRendererImpl{}
}

// RenderChart writes the monthly table: one row per month and a total row.
func (t *CsvReportRendererImpl) RenderChart(chart Chart) (string, error) {
	data := make([][]string, 0, len(chart.Monthly)+2)
	data = append(data, []string{"Month", "Income", "Expense", "Balance"})

	totalIncome, totalExpense := decimal.Zero, decimal.Zero
	for _, month := range chart.Monthly {
		data = append(data, []string{
			month.Month.Format(MonthLabelLayout),
			money(month.Income),
			money(month.Expense),
			money(month.Balance()),
		})
		totalIncome = totalIncome.Add(month.Income)
		totalExpense = totalExpense.Add(month.Expense)
	}
	data = append(data, []string{"Total", money(totalIncome), money(totalExpense), money(totalIncome.Sub(totalExpense))})

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		err := writer.Write(row)
		if err != nil {
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

func money(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
