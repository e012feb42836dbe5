package account

import (
	"net/http"

	"github.com/budgetbee/budgetbee/internal/rest"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type AccountDTO struct {
	Id            int             `json:"id,omitempty"`
	Name          string          `json:"name"`
	Icon          string          `json:"icon"`
	InitialAmount decimal.Decimal `json:"initialAmount"`
	Balance       decimal.Decimal `json:"balance"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// List godoc
// @Summary List accounts
// @Description Accounts of the current user. Guests get the default accounts with zero balance.
// @Tags Account
// @Produce json
// @Success 200 {array} AccountDTO
// @Router /api/account [get]
// @Security XUserId
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing accounts")
	accounts, err := h.service.List(r.Context())
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	dtos := make([]AccountDTO, 0, len(accounts))
	for _, account := range accounts {
		dtos = append(dtos, toDTO(account))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// Get godoc
// @Summary Get account
// @Tags Account
// @Produce json
// @Param accountId path int true "Account ID"
// @Success 200 {object} AccountDTO
// @Failure 403 {object} rest.ErrorResponse "Account of another user"
// @Failure 404 {object} rest.ErrorResponse "Account not found"
// @Router /api/account/{accountId} [get]
// @Security XUserId
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log.Debug("Getting account")
	id, err := rest.PathInt(r, "accountId")
	if err != nil {
		rest.BadRequest(w, "Invalid account id", err)
		return
	}
	account, err := h.service.Get(r.Context(), id)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, toDTO(account))
}

// Create godoc
// @Summary Create account
// @Description Create an account with an opening balance
// @Tags Account
// @Accept json
// @Produce json
// @Param account body AccountDTO true "Account"
// @Success 201 {object} AccountDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid account"
// @Failure 403 {object} rest.ErrorResponse "User not found"
// @Router /api/account [post]
// @Security XUserId
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating account")
	var dto AccountDTO
	if err := rest.DecodeJSON(r, &dto); err != nil {
		rest.BadRequest(w, "Invalid request body format", err)
		return
	}
	created, err := h.service.Create(r.Context(), fromDTO(dto))
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, toDTO(created))
}

// Update godoc
// @Summary Update account
// @Description Update name, icon and opening balance. The balance is recomputed.
// @Tags Account
// @Accept json
// @Produce json
// @Param accountId path int true "Account ID"
// @Param account body AccountDTO true "Account"
// @Success 200 {object} AccountDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid account"
// @Failure 403 {object} rest.ErrorResponse "Account of another user"
// @Failure 404 {object} rest.ErrorResponse "Account not found"
// @Router /api/account/{accountId} [put]
// @Security XUserId
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating account")
	id, err := rest.PathInt(r, "accountId")
	if err != nil {
		rest.BadRequest(w, "Invalid account id", err)
		return
	}
	var dto AccountDTO
	if err := rest.DecodeJSON(r, &dto); err != nil {
		rest.BadRequest(w, "Invalid request body format", err)
		return
	}
	account := fromDTO(dto)
	account.Id = id
	updated, err := h.service.Update(r.Context(), account)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, toDTO(updated))
}

// Delete godoc
// @Summary Delete account
// @Description Delete the account together with its transactions
// @Tags Account
// @Param accountId path int true "Account ID"
// @Success 204 "No Content"
// @Failure 403 {object} rest.ErrorResponse "Account of another user"
// @Failure 404 {object} rest.ErrorResponse "Account not found"
// @Router /api/account/{accountId} [delete]
// @Security XUserId
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log.Debug("Deleting account")
	id, err := rest.PathInt(r, "accountId")
	if err != nil {
		rest.BadRequest(w, "Invalid account id", err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		rest.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Recalculate godoc
// @Summary Recalculate account balance
// @Description Recompute the balance from the opening balance and all transactions of the account
// @Tags Account
// @Produce json
// @Param accountId path int true "Account ID"
// @Success 200 {object} AccountDTO
// @Failure 403 {object} rest.ErrorResponse "Account of another user"
// @Failure 404 {object} rest.ErrorResponse "Account not found"
// @Router /api/account/{accountId}/recalculate [post]
// @Security XUserId
func (h *Handler) Recalculate(w http.ResponseWriter, r *http.Request) {
	log.Debug("Recalculating account balance")
	id, err := rest.PathInt(r, "accountId")
	if err != nil {
		rest.BadRequest(w, "Invalid account id", err)
		return
	}
	account, err := h.service.Recalculate(r.Context(), id)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, toDTO(account))
}

func toDTO(account Account) AccountDTO {
	return AccountDTO{
		Id:            account.Id,
		Name:          account.Name,
		Icon:          account.Icon,
		InitialAmount: account.InitialAmount,
		Balance:       account.Balance,
	}
}

func fromDTO(dto AccountDTO) Account {
	return Account{
		Name:          dto.Name,
		Icon:          dto.Icon,
		InitialAmount: dto.InitialAmount,
	}
}
