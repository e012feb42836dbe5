package catalog

import (
	"net/http"

	"github.com/budgetbee/budgetbee/internal/rest"
	log "github.com/sirupsen/logrus"
)

type CatalogDTO struct {
	Accounts       []AccountDTO  `json:"accounts"`
	Categories     []CategoryDTO `json:"categories"`
	AccountIcons   []IconDTO     `json:"accountIcons"`
	CategoryIcons  []IconDTO     `json:"categoryIcons"`
	CategoryColors []string      `json:"categoryColors"`
}

type AccountDTO struct {
	Name          string `json:"name"`
	Icon          string `json:"icon"`
	InitialAmount string `json:"initialAmount"`
}

type CategoryDTO struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

type IconDTO struct {
	Symbol string `json:"symbol"`
	Label  string `json:"label"`
}

type Handler struct {
	catalog Catalog
}

func NewHandler(catalog Catalog) *Handler {
	return &Handler{catalog: catalog}
}

// GetCatalog godoc
// @Summary Get the seed catalog
// @Description Icons, colors, default accounts and default categories offered by the UI
// @Tags Catalog
// @Produce json
// @Success 200 {object} CatalogDTO
// @Router /api/catalog [get]
func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	log.Trace("Getting catalog")
	rest.WriteJSON(w, http.StatusOK, toDTO(h.catalog))
}

func toDTO(c Catalog) CatalogDTO {
	dto := CatalogDTO{
		Accounts:       make([]AccountDTO, 0, len(c.Accounts)),
		Categories:     make([]CategoryDTO, 0, len(c.Categories)),
		AccountIcons:   iconsToDTO(c.AccountIcons),
		CategoryIcons:  iconsToDTO(c.CategoryIcons),
		CategoryColors: c.CategoryColors,
	}
	for _, account := range c.Accounts {
		dto.Accounts = append(dto.Accounts, AccountDTO{Name: account.Name, Icon: account.Icon, InitialAmount: account.InitialAmount.StringFixed(2)})
	}
	for _, category := range c.Categories {
		dto.Categories = append(dto.Categories, CategoryDTO{Name: category.Name, Type: string(category.Type), Icon: category.Icon, Color: category.Color})
	}
	return dto
}

func iconsToDTO(icons []Icon) []IconDTO {
	dto := make([]IconDTO, 0, len(icons))
	for _, icon := range icons {
		dto = append(dto, IconDTO{Symbol: icon.Symbol, Label: icon.Label})
	}
	return dto
}
