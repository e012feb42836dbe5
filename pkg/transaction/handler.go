package transaction

import (
	"fmt"
	"net/http"
	"time"

	"github.com/budgetbee/budgetbee/internal/rest"
	"github.com/budgetbee/budgetbee/pkg/ledger"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type TransactionDTO struct {
	Id         int             `json:"id,omitempty"`
	AccountId  int             `json:"accountId"`
	CategoryId int             `json:"categoryId,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Type       string          `json:"type"`
	Note       string          `json:"note"`
	// Date is YYYY-MM-DD. An empty date means today.
	Date string `json:"date"`
}

// MutationDTO is returned by create and update together with the totals they produced.
type MutationDTO struct {
	Transaction TransactionDTO   `json:"transaction"`
	Totals      ledger.TotalsDTO `json:"totals"`
}

type DayDTO struct {
	Date         string           `json:"date"`
	Income       decimal.Decimal  `json:"income"`
	Expense      decimal.Decimal  `json:"expense"`
	Transactions []TransactionDTO `json:"transactions"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// List godoc
// @Summary List transactions
// @Description Transactions of the current user, newest first. Every parameter is optional.
// @Tags Transaction
// @Produce json
// @Param from query string false "First date, YYYY-MM-DD"
// @Param to query string false "Last date, YYYY-MM-DD"
// @Param accountId query int false "Account ID"
// @Param categoryId query int false "Category ID"
// @Param type query string false "income or expense"
// @Success 200 {array} TransactionDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid filter"
// @Router /api/transaction [get]
// @Security XUserId
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing transactions")
	filter, err := parseFilter(r)
	if err != nil {
		rest.BadRequest(w, "Invalid filter", err)
		return
	}
	transactions, err := h.service.List(r.Context(), filter)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, toDTOs(transactions))
}

// Daily godoc
// @Summary List transactions per day
// @Description Transactions grouped by date with the income and expense of each date, newest first.
// @Tags Transaction
// @Produce json
// @Param from query string false "First date, YYYY-MM-DD"
// @Param to query string false "Last date, YYYY-MM-DD"
// @Success 200 {array} DayDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid date"
// @Router /api/transaction/daily [get]
// @Security XUserId
func (h *Handler) Daily(w http.ResponseWriter, r *http.Request) {
	from, err := rest.QueryDate(r, "from")
	if err != nil {
		rest.BadRequest(w, "Invalid date", err)
		return
	}
	to, err := rest.QueryDate(r, "to")
	if err != nil {
		rest.BadRequest(w, "Invalid date", err)
		return
	}
	days, err := h.service.Daily(r.Context(), from, to)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	dtos := make([]DayDTO, 0, len(days))
	for _, day := range days {
		dtos = append(dtos, DayDTO{
			Date:         day.Date.Format(time.DateOnly),
			Income:       day.Income,
			Expense:      day.Expense,
			Transactions: toDTOs(day.Transactions),
		})
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// Get godoc
// @Summary Get transaction
// @Tags Transaction
// @Produce json
// @Param transactionId path int true "Transaction ID"
// @Success 200 {object} TransactionDTO
// @Failure 403 {object} rest.ErrorResponse "Transaction of another user"
// @Failure 404 {object} rest.ErrorResponse "Transaction not found"
// @Router /api/transaction/{transactionId} [get]
// @Security XUserId
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := rest.PathInt(r, "transactionId")
	if err != nil {
		rest.BadRequest(w, "Invalid transaction id", err)
		return
	}
	transaction, err := h.service.Get(r.Context(), id)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, toDTO(transaction))
}

// Create godoc
// @Summary Create transaction
// @Description Store the transaction and recompute its account balance.
// @Tags Transaction
// @Accept json
// @Produce json
// @Param transaction body TransactionDTO true "Transaction"
// @Success 201 {object} MutationDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid transaction"
// @Failure 403 {object} rest.ErrorResponse "Account or category of another user"
// @Failure 404 {object} rest.ErrorResponse "Account or category not found"
// @Router /api/transaction [post]
// @Security XUserId
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating transaction")
	transaction, err := decode(r)
	if err != nil {
		rest.BadRequest(w, "Invalid request body format", err)
		return
	}
	created, totals, err := h.service.Create(r.Context(), transaction)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, MutationDTO{Transaction: toDTO(created), Totals: ledger.ToTotalsDTO(totals)})
}

// Update godoc
// @Summary Update transaction
// @Description Update the transaction and recompute the balances of the accounts it was and is linked to.
// @Tags Transaction
// @Accept json
// @Produce json
// @Param transactionId path int true "Transaction ID"
// @Param transaction body TransactionDTO true "Transaction"
// @Success 200 {object} MutationDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid transaction"
// @Failure 403 {object} rest.ErrorResponse "Transaction, account or category of another user"
// @Failure 404 {object} rest.ErrorResponse "Transaction, account or category not found"
// @Router /api/transaction/{transactionId} [put]
// @Security XUserId
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating transaction")
	id, err := rest.PathInt(r, "transactionId")
	if err != nil {
		rest.BadRequest(w, "Invalid transaction id", err)
		return
	}
	transaction, err := decode(r)
	if err != nil {
		rest.BadRequest(w, "Invalid request body format", err)
		return
	}
	transaction.Id = id
	updated, totals, err := h.service.Update(r.Context(), transaction)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, MutationDTO{Transaction: toDTO(updated), Totals: ledger.ToTotalsDTO(totals)})
}

// Delete godoc
// @Summary Delete transaction
// @Description Delete the transaction, recompute its account and return the fresh totals.
// @Tags Transaction
// @Produce json
// @Param transactionId path int true "Transaction ID"
// @Success 200 {object} ledger.TotalsDTO
// @Failure 403 {object} rest.ErrorResponse "Transaction of another user"
// @Failure 404 {object} rest.ErrorResponse "Transaction not found"
// @Router /api/transaction/{transactionId} [delete]
// @Security XUserId
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log.Debug("Deleting transaction")
	id, err := rest.PathInt(r, "transactionId")
	if err != nil {
		rest.BadRequest(w, "Invalid transaction id", err)
		return
	}
	totals, err := h.service.Delete(r.Context(), id)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ledger.ToTotalsDTO(totals))
}

func parseFilter(r *http.Request) (ledger.Filter, error) {
	var filter ledger.Filter
	var err error
	if filter.From, err = rest.QueryDate(r, "from"); err != nil {
		return ledger.Filter{}, err
	}
	if filter.To, err = rest.QueryDate(r, "to"); err != nil {
		return ledger.Filter{}, err
	}
	if filter.AccountId, err = rest.QueryInt(r, "accountId"); err != nil {
		return ledger.Filter{}, err
	}
	if filter.CategoryId, err = rest.QueryInt(r, "categoryId"); err != nil {
		return ledger.Filter{}, err
	}
	filter.Type = ledger.EntryType(r.URL.Query().Get("type"))
	return filter, nil
}

func decode(r *http.Request) (Transaction, error) {
	var dto TransactionDTO
	if err := rest.DecodeJSON(r, &dto); err != nil {
		return Transaction{}, err
	}
	var date time.Time
	if dto.Date != "" {
		var err error
		date, err = time.Parse(time.DateOnly, dto.Date)
		if err != nil {
			return Transaction{}, fmt.Errorf("invalid date, expected YYYY-MM-DD: %q", dto.Date)
		}
	}
	return Transaction{
		AccountId:  dto.AccountId,
		CategoryId: dto.CategoryId,
		Amount:     dto.Amount,
		Type:       ledger.EntryType(dto.Type),
		Note:       dto.Note,
		Date:       date,
	}, nil
}

func toDTO(transaction Transaction) TransactionDTO {
	return TransactionDTO{
		Id:         transaction.Id,
		AccountId:  transaction.AccountId,
		CategoryId: transaction.CategoryId,
		Amount:     transaction.Amount,
		Type:       string(transaction.Type),
		Note:       transaction.Note,
		Date:       transaction.Date.Format(time.DateOnly),
	}
}

func toDTOs(transactions []Transaction) []TransactionDTO {
	dtos := make([]TransactionDTO, 0, len(transactions))
	for _, t := range transactions {
		dtos = append(dtos, toDTO(t))
	}
	return dtos
}
