package ledger

import (
	"net/http"

	"github.com/budgetbee/budgetbee/internal/rest"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type TotalsDTO struct {
	TotalIncome    decimal.Decimal `json:"totalIncome"`
	TotalExpense   decimal.Decimal `json:"totalExpense"`
	TotalBalance   decimal.Decimal `json:"totalBalance"`
	EarningPercent int64           `json:"earningPercent"`
	SpentPercent   int64           `json:"spentPercent"`
}

func ToTotalsDTO(totals Totals) TotalsDTO {
	return TotalsDTO{
		TotalIncome:    totals.TotalIncome,
		TotalExpense:   totals.TotalExpense,
		TotalBalance:   totals.TotalBalance,
		EarningPercent: totals.EarningPercent(),
		SpentPercent:   totals.SpentPercent(),
	}
}

type Handler struct {
	engine Engine
}

func NewHandler(engine Engine) *Handler {
	return &Handler{engine: engine}
}

// Totals godoc
// @Summary Get totals
// @Description Total income, total expense and the sum of all account balances of the current user. Zero for a guest.
// @Tags Ledger
// @Produce json
// @Success 200 {object} TotalsDTO
// @Router /api/totals [get]
// @Security XUserId
func (h *Handler) Totals(w http.ResponseWriter, r *http.Request) {
	log.Debug("Computing totals")
	totals, err := h.engine.ComputeTotals(r.Context())
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ToTotalsDTO(totals))
}
