package category

import (
	"net/http"

	"github.com/budgetbee/budgetbee/internal/rest"
	"github.com/budgetbee/budgetbee/pkg/ledger"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type CategoryDTO struct {
	Id            int              `json:"id,omitempty"`
	Name          string           `json:"name"`
	Type          string           `json:"type"`
	Color         string           `json:"color"`
	Icon          string           `json:"icon"`
	DefaultBudget *decimal.Decimal `json:"defaultBudget,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// List godoc
// @Summary List categories
// @Description Categories of the current user, optionally of one type. Guests get the default categories.
// @Tags Category
// @Produce json
// @Param type query string false "income or expense"
// @Success 200 {array} CategoryDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid type"
// @Router /api/category [get]
// @Security XUserId
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing categories")
	categories, err := h.service.List(r.Context(), ledger.EntryType(r.URL.Query().Get("type")))
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	dtos := make([]CategoryDTO, 0, len(categories))
	for _, category := range categories {
		dtos = append(dtos, toDTO(category))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// Get godoc
// @Summary Get category
// @Tags Category
// @Produce json
// @Param categoryId path int true "Category ID"
// @Success 200 {object} CategoryDTO
// @Failure 403 {object} rest.ErrorResponse "Category of another user"
// @Failure 404 {object} rest.ErrorResponse "Category not found"
// @Router /api/category/{categoryId} [get]
// @Security XUserId
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := rest.PathInt(r, "categoryId")
	if err != nil {
		rest.BadRequest(w, "Invalid category id", err)
		return
	}
	category, err := h.service.Get(r.Context(), id)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, toDTO(category))
}

// Create godoc
// @Summary Create category
// @Tags Category
// @Accept json
// @Produce json
// @Param category body CategoryDTO true "Category"
// @Success 201 {object} CategoryDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid category"
// @Failure 403 {object} rest.ErrorResponse "User not found"
// @Router /api/category [post]
// @Security XUserId
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating category")
	var dto CategoryDTO
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
// @Summary Update category
// @Description Update name, color, icon and default budget. The type cannot change.
// @Tags Category
// @Accept json
// @Produce json
// @Param categoryId path int true "Category ID"
// @Param category body CategoryDTO true "Category"
// @Success 200 {object} CategoryDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid category"
// @Failure 403 {object} rest.ErrorResponse "Category of another user"
// @Failure 404 {object} rest.ErrorResponse "Category not found"
// @Router /api/category/{categoryId} [put]
// @Security XUserId
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating category")
	id, err := rest.PathInt(r, "categoryId")
	if err != nil {
		rest.BadRequest(w, "Invalid category id", err)
		return
	}
	var dto CategoryDTO
	if err := rest.DecodeJSON(r, &dto); err != nil {
		rest.BadRequest(w, "Invalid request body format", err)
		return
	}
	category := fromDTO(dto)
	category.Id = id
	updated, err := h.service.Update(r.Context(), category)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, toDTO(updated))
}

// Delete godoc
// @Summary Delete category
// @Description Delete the category. Its transactions are kept without a category.
// @Tags Category
// @Param categoryId path int true "Category ID"
// @Success 204 "No Content"
// @Failure 403 {object} rest.ErrorResponse "Category of another user"
// @Failure 404 {object} rest.ErrorResponse "Category not found"
// @Router /api/category/{categoryId} [delete]
// @Security XUserId
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log.Debug("Deleting category")
	id, err := rest.PathInt(r, "categoryId")
	if err != nil {
		rest.BadRequest(w, "Invalid category id", err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		rest.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toDTO(category Category) CategoryDTO {
	return CategoryDTO{
		Id:            category.Id,
		Name:          category.Name,
		Type:          string(category.Type),
		Color:         category.Color,
		Icon:          category.Icon,
		DefaultBudget: category.DefaultBudget,
	}
}

func fromDTO(dto CategoryDTO) Category {
	return Category{
		Name:          dto.Name,
		Type:          ledger.EntryType(dto.Type),
		Color:         dto.Color,
		Icon:          dto.Icon,
		DefaultBudget: dto.DefaultBudget,
	}
}
