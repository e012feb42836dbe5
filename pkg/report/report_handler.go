package report

import (
	"net/http"

	"github.com/budgetbee/budgetbee/internal/rest"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type CategoryAmountDTO struct {
	Name   string          `json:"name"`
	Color  string          `json:"color"`
	Amount decimal.Decimal `json:"amount"`
}

type MonthlyTotalsDTO struct {
	// Date is the month label, e.g. "Jan 2024".
	Date    string          `json:"date"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// ChartDTO carries CategoryColors keyed by category type, then by category name.
type ChartDTO struct {
	Income         []CategoryAmountDTO          `json:"income"`
	Expense        []CategoryAmountDTO          `json:"expense"`
	Monthly        []MonthlyTotalsDTO           `json:"monthly"`
	CategoryColors map[string]map[string]string `json:"categoryColors"`
}

type ReportHandler struct {
	reportService     ReportService
	csvReportRenderer ReportRenderer
}

func NewReportHandler(reportService ReportService, csvReportRenderer ReportRenderer) *ReportHandler {
	return &ReportHandler{reportService, csvReportRenderer}
}

// GetChart godoc
// @Summary Get chart data
// @Description Income and expense per category, monthly totals and category colors. Responds with the monthly table as CSV when Accept is text/csv.
// @Tags Report
// @Produce json
// @Produce text/csv
// @Param from query string false "First date, YYYY-MM-DD"
// @Param to query string false "Last date, YYYY-MM-DD"
// @Success 200 {object} ChartDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid date"
// @Router /api/report/chart [get]
// @Security XUserId
func (handler *ReportHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	log.Debug("Building chart")
	from, err := rest.QueryDate(r, "from")
	if err != nil {
		rest.BadRequest(w, "Invalid from date", err)
		return
	}
	to, err := rest.QueryDate(r, "to")
	if err != nil {
		rest.BadRequest(w, "Invalid to date", err)
		return
	}
	chart, err := handler.reportService.GetChart(r.Context(), from, to)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	if r.Header.Get("Accept") == "text/csv" {
		csv, err := handler.csvReportRenderer.RenderChart(chart)
		if err != nil {
			rest.WriteError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(csv)); err != nil {
			log.Errorf("failed to write csv: %v", err)
		}
		return
	}
	rest.WriteJSON(w, http.StatusOK, convertToJsonResponse(chart))
}

func convertToJsonResponse(chart Chart) ChartDTO {
	monthly := make([]MonthlyTotalsDTO, 0, len(chart.Monthly))
	for _, m := range chart.Monthly {
		monthly = append(monthly, MonthlyTotalsDTO{
			Date:    m.Month.Format(MonthLabelLayout),
			Income:  m.Income,
			Expense: m.Expense,
		})
	}
	colors := make(map[string]map[string]string, len(chart.CategoryColors))
	for entryType, byName := range chart.CategoryColors {
		colors[string(entryType)] = byName
	}
	return ChartDTO{
		Income:         toAmountDTOs(chart.Income),
		Expense:        toAmountDTOs(chart.Expense),
		Monthly:        monthly,
		CategoryColors: colors,
	}
}

func toAmountDTOs(amounts []CategoryAmount) []CategoryAmountDTO {
	dtos := make([]CategoryAmountDTO, 0, len(amounts))
	for _, a := range amounts {
		dtos = append(dtos, CategoryAmountDTO{Name: a.Name, Color: a.Color, Amount: a.Amount})
	}
	return dtos
}
