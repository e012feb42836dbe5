package budget

import (
	"net/http"
	"time"

	"github.com/budgetbee/budgetbee/internal/rest"
	"github.com/budgetbee/budgetbee/internal/utils"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type BudgetDTO struct {
	ID         int             `json:"id,omitempty"`
	CategoryId int             `json:"categoryId"`
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	Amount     decimal.Decimal `json:"amount"`
}

type StatusDTO struct {
	Spent       decimal.Decimal `json:"spent"`
	Ceiling     decimal.Decimal `json:"ceiling"`
	PercentUsed decimal.Decimal `json:"percentUsed"`
	Exceeded    bool            `json:"exceeded"`
}

type CategoryStatusDTO struct {
	CategoryId    int              `json:"categoryId"`
	CategoryName  string           `json:"categoryName"`
	Color         string           `json:"color"`
	Icon          string           `json:"icon"`
	BudgetId      int              `json:"budgetId,omitempty"`
	DefaultBudget *decimal.Decimal `json:"defaultBudget,omitempty"`
	Status        StatusDTO        `json:"status"`
}

type BudgetHandler struct {
	budgetService BudgetService
	clock         utils.Clock
}

func NewBudgetHandler(budgetService BudgetService, clock utils.Clock) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, clock: clock}
}

// ListMonth godoc
// @Summary List budgets of a month
// @Description Status of every expense category for the month. Month and year default to the current month.
// @Tags Budget
// @Produce json
// @Param month query int false "Month, 1-12"
// @Param year query int false "Year"
// @Success 200 {array} CategoryStatusDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid month or year"
// @Router /api/budget [get]
// @Security XUserId
func (handler *BudgetHandler) ListMonth(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing budgets")
	month, year, err := handler.period(r)
	if err != nil {
		rest.BadRequest(w, "Invalid period", err)
		return
	}
	statuses, err := handler.budgetService.ListMonth(r.Context(), month, year)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	dtos := make([]CategoryStatusDTO, 0, len(statuses))
	for _, line := range statuses {
		dtos = append(dtos, CategoryStatusDTO{
			CategoryId:    line.Category.Id,
			CategoryName:  line.Category.Name,
			Color:         line.Category.Color,
			Icon:          line.Category.Icon,
			BudgetId:      line.BudgetId,
			DefaultBudget: line.Category.DefaultBudget,
			Status:        StatusToDTO(line.Status),
		})
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// Status godoc
// @Summary Get budget status
// @Description Spent amount of the category in the month against its budget.
// @Tags Budget
// @Produce json
// @Param categoryId query int true "Category ID"
// @Param month query int false "Month, 1-12"
// @Param year query int false "Year"
// @Success 200 {object} StatusDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid parameters"
// @Failure 403 {object} rest.ErrorResponse "Category of another user"
// @Failure 404 {object} rest.ErrorResponse "Category not found"
// @Router /api/budget/status [get]
// @Security XUserId
func (handler *BudgetHandler) Status(w http.ResponseWriter, r *http.Request) {
	categoryId, err := rest.QueryInt(r, "categoryId")
	if err != nil || categoryId <= 0 {
		rest.BadRequest(w, "Invalid category id", err)
		return
	}
	month, year, err := handler.period(r)
	if err != nil {
		rest.BadRequest(w, "Invalid period", err)
		return
	}
	status, err := handler.budgetService.Status(r.Context(), categoryId, month, year)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, StatusToDTO(status))
}

// SetBudget godoc
// @Summary Set budget
// @Description Create or replace the budget of an expense category for a month.
// @Tags Budget
// @Accept json
// @Produce json
// @Param budget body BudgetDTO true "Budget"
// @Success 200 {object} BudgetDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid budget"
// @Failure 403 {object} rest.ErrorResponse "Category of another user"
// @Failure 404 {object} rest.ErrorResponse "Category not found"
// @Router /api/budget [put]
// @Security XUserId
func (handler *BudgetHandler) SetBudget(w http.ResponseWriter, r *http.Request) {
	log.Debug("Setting budget")
	var budgetDTO BudgetDTO
	if err := rest.DecodeJSON(r, &budgetDTO); err != nil {
		rest.BadRequest(w, "Invalid request body format", err)
		return
	}
	budget, err := handler.budgetService.SetBudget(r.Context(), budgetDTO.CategoryId, time.Month(budgetDTO.Month),
		budgetDTO.Year, budgetDTO.Amount)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, BudgetToDTO(budget))
}

// Delete godoc
// @Summary Delete budget
// @Tags Budget
// @Param budgetId path int true "Budget ID"
// @Success 204 "No Content"
// @Failure 403 {object} rest.ErrorResponse "Budget of another user"
// @Failure 404 {object} rest.ErrorResponse "Budget not found"
// @Router /api/budget/{budgetId} [delete]
// @Security XUserId
func (handler *BudgetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	budgetId, err := rest.PathInt(r, "budgetId")
	if err != nil {
		rest.BadRequest(w, "Invalid budget id", err)
		return
	}
	if err := handler.budgetService.Delete(r.Context(), budgetId); err != nil {
		rest.WriteError(w, err)
		return
	}
	// Return 204 No Content for successful deletion with no response body
	w.WriteHeader(http.StatusNoContent)
}

// period reads month and year, defaulting each missing one to the current month.
func (handler *BudgetHandler) period(r *http.Request) (time.Month, int, error) {
	today := utils.Today(handler.clock)
	month, err := rest.QueryInt(r, "month")
	if err != nil {
		return 0, 0, err
	}
	year, err := rest.QueryInt(r, "year")
	if err != nil {
		return 0, 0, err
	}
	if month == 0 {
		month = int(today.Month())
	}
	if year == 0 {
		year = today.Year()
	}
	return time.Month(month), year, nil
}

func BudgetToDTO(budget Budget) BudgetDTO {
	return BudgetDTO{
		ID:         budget.ID,
		CategoryId: budget.CategoryId,
		Month:      int(budget.Month),
		Year:       budget.Year,
		Amount:     budget.Amount,
	}
}

func StatusToDTO(status Status) StatusDTO {
	return StatusDTO{
		Spent:       status.Spent,
		Ceiling:     status.Ceiling,
		PercentUsed: status.PercentUsed,
		Exceeded:    status.Exceeded,
	}
}
