package catalog

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/budgetbee/budgetbee/internal/apperrors"
	"github.com/budgetbee/budgetbee/pkg/ledger"
	"github.com/shopspring/decimal"
)

// Catalog is the immutable seed data: what a new user starts with and what the UI offers in dropdowns.
type Catalog struct {
	Accounts       []Account
	Categories     []Category
	AccountIcons   []Icon
	CategoryIcons  []Icon
	CategoryColors []string
}

type Account struct {
	Name          string
	Icon          string
	InitialAmount decimal.Decimal
}

type Category struct {
	Name  string
	Type  ledger.EntryType
	Icon  string
	Color string
}

type Icon struct {
	Symbol string
	Label  string
}

// CategoriesOf returns the default categories of the given type. An empty type returns all of them.
func (c Catalog) CategoriesOf(entryType ledger.EntryType) []Category {
	categories := make([]Category, 0, len(c.Categories))
	for _, category := range c.Categories {
		if entryType == "" || category.Type == entryType {
			categories = append(categories, category)
		}
	}
	return categories
}

const (
	MaxNameLength = 50
	// MaxIconLength is counted in runes; emoji with modifiers take several.
	MaxIconLength = 8
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

func IsColor(value string) bool {
	return colorPattern.MatchString(value)
}

// ValidateName checks the name of an account or a category.
func ValidateName(validationErr *apperrors.ValidationError, field string, name string) {
	if name == "" {
		validationErr.Add(field, "is required")
	} else if utf8.RuneCountInString(name) > MaxNameLength {
		validationErr.Add(field, fmt.Sprintf("must be at most %d characters", MaxNameLength))
	}
}

func ValidateIcon(validationErr *apperrors.ValidationError, field string, icon string) {
	if utf8.RuneCountInString(icon) > MaxIconLength {
		validationErr.Add(field, "must be a single symbol")
	}
}

// Default returns the built-in catalog. Every call builds new slices.
func Default() Catalog {
	return Catalog{
		Accounts: []Account{
			{Name: "Bank", Icon: "🏦", InitialAmount: decimal.Zero},
			{Name: "Card", Icon: "💳", InitialAmount: decimal.Zero},
			{Name: "Cash", Icon: "💰", InitialAmount: decimal.Zero},
			{Name: "Saving", Icon: "🐖", InitialAmount: decimal.Zero},
		},
		Categories: []Category{
			{Name: "Salary", Type: ledger.Income, Icon: "💼", Color: "#4CAF50"},
			{Name: "Business", Type: ledger.Income, Icon: "🏢", Color: "#2196F3"},
			{Name: "Gift", Type: ledger.Income, Icon: "🎁", Color: "#FF9800"},
			{Name: "Investment", Type: ledger.Income, Icon: "📈", Color: "#9C27B0"},
			{Name: "Other Income", Type: ledger.Income, Icon: "💵", Color: "#00BCD4"},
			{Name: "Food", Type: ledger.Expense, Icon: "🍔", Color: "#FF5722"},
			{Name: "Transport", Type: ledger.Expense, Icon: "🚌", Color: "#795548"},
			{Name: "Shopping", Type: ledger.Expense, Icon: "🛍️", Color: "#E91E63"},
			{Name: "Bills", Type: ledger.Expense, Icon: "💡", Color: "#FFC107"},
			{Name: "Entertainment", Type: ledger.Expense, Icon: "🎬", Color: "#3F51B5"},
		},
		AccountIcons: []Icon{
			{"🏦", "Bank"}, {"💳", "Card"}, {"💰", "Cash"}, {"🐖", "Saving"},
			{"💸", "Wallet"}, {"🏠", "Home"}, {"🛒", "Shopping"}, {"🚗", "Car"},
			{"🎓", "Education"}, {"💼", "Work"},
			{"🍔", "Food"}, {"☕", "Coffee"}, {"🎁", "Gifts"}, {"🏖️", "Travel"},
			{"🎮", "Games"}, {"📚", "Books"}, {"🏥", "Health"}, {"🛏️", "Rent"},
			{"⚽", "Sports"}, {"🎵", "Music"},
		},
		CategoryIcons: []Icon{
			{"🍔", "Food"}, {"🚌", "Transport"}, {"🛍️", "Shopping"},
			{"💡", "Bills"}, {"🎬", "Entertainment"}, {"💼", "Work"},
			{"🎁", "Gift"}, {"💊", "Health"}, {"📚", "Education"},
			{"☕", "Coffee"}, {"🏠", "Home"}, {"🚗", "Transport"},
			{"💵", "Other Income"}, {"📈", "Investment"}, {"🎮", "Games"},
			{"🏖️", "Travel"}, {"⚡", "Utilities"}, {"🎉", "Party"},
		},
		CategoryColors: []string{
			"#FF5722", "#795548", "#E91E63", "#FFC107", "#3F51B5", "#4CAF50", "#2196F3",
			"#9C27B0", "#00BCD4", "#FF9800", "#607D8B", "#009688", "#8BC34A", "#CDDC39",
			"#FFEB3B", "#FFCDD2", "#F8BBD0", "#E1BEE7", "#D1C4E9", "#BBDEFB", "#B2DFDB",
			"#C8E6C9", "#DCEDC8", "#F0F4C3", "#FFE0B2", "#FFCCBC", "#D7CCC8",
		},
	}
}
