package catalog

import (
	"errors"
	"fmt"
	"os"

	"github.com/budgetbee/budgetbee/internal/apperrors"
	"github.com/budgetbee/budgetbee/pkg/ledger"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type accountEntry struct {
	Name          string `koanf:"name"`
	Icon          string `koanf:"icon"`
	InitialAmount string `koanf:"initial_amount"`
}

type categoryEntry struct {
	Name  string `koanf:"name"`
	Type  string `koanf:"type"`
	Icon  string `koanf:"icon"`
	Color string `koanf:"color"`
}

type iconEntry struct {
	Symbol string `koanf:"symbol"`
	Label  string `koanf:"label"`
}

type catalogFile struct {
	Accounts       []accountEntry  `koanf:"accounts"`
	Categories     []categoryEntry `koanf:"categories"`
	AccountIcons   []iconEntry     `koanf:"account_icons"`
	CategoryIcons  []iconEntry     `koanf:"category_icons"`
	CategoryColors []string        `koanf:"category_colors"`
}

// Load reads the catalog once at startup. Sections present in the YAML file replace the built-in ones,
// missing sections keep the defaults. A missing file yields the built-in catalog.
func Load(path string) (Catalog, error) {
	catalog := Default()
	if path == "" {
		return catalog, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Infof("Catalog file not found at %s, using built-in catalog", path)
			return catalog, nil
		}
		log.Errorf("error loading catalog from YAML: %v", err)
		return Catalog{}, err
	}

	var content catalogFile
	if err := k.Unmarshal("", &content); err != nil {
		return Catalog{}, fmt.Errorf("invalid catalog file %s: %w", path, err)
	}

	if k.Exists("accounts") {
		accounts, err := toAccounts(content.Accounts)
		if err != nil {
			return Catalog{}, err
		}
		catalog.Accounts = accounts
	}
	if k.Exists("categories") {
		categories, err := toCategories(content.Categories)
		if err != nil {
			return Catalog{}, err
		}
		catalog.Categories = categories
	}
	if k.Exists("account_icons") {
		catalog.AccountIcons = toIcons(content.AccountIcons)
	}
	if k.Exists("category_icons") {
		catalog.CategoryIcons = toIcons(content.CategoryIcons)
	}
	if k.Exists("category_colors") {
		catalog.CategoryColors = content.CategoryColors
	}

	if err := Validate(catalog); err != nil {
		return Catalog{}, fmt.Errorf("invalid catalog file %s: %w", path, err)
	}
	log.Infof("Loaded catalog from file: %s", path)
	return catalog, nil
}

func toAccounts(entries []accountEntry) ([]Account, error) {
	accounts := make([]Account, 0, len(entries))
	for _, entry := range entries {
		amount := decimal.Zero
		if entry.InitialAmount != "" {
			parsed, err := decimal.NewFromString(entry.InitialAmount)
			if err != nil {
				return nil, fmt.Errorf("account %q: invalid initial amount %q: %w", entry.Name, entry.InitialAmount, err)
			}
			amount = parsed
		}
		accounts = append(accounts, Account{Name: entry.Name, Icon: entry.Icon, InitialAmount: amount})
	}
	return accounts, nil
}

func toCategories(entries []categoryEntry) ([]Category, error) {
	categories := make([]Category, 0, len(entries))
	for _, entry := range entries {
		entryType, err := ledger.ParseEntryType(entry.Type)
		if err != nil {
			return nil, fmt.Errorf("category %q: %w", entry.Name, err)
		}
		categories = append(categories, Category{Name: entry.Name, Type: entryType, Icon: entry.Icon, Color: entry.Color})
	}
	return categories, nil
}

func toIcons(entries []iconEntry) []Icon {
	icons := make([]Icon, 0, len(entries))
	for _, entry := range entries {
		icons = append(icons, Icon{Symbol: entry.Symbol, Label: entry.Label})
	}
	return icons
}

// Validate checks that every default account and category passes the rules applied when they are created,
// so that seeding a new user cannot fail.
func Validate(catalog Catalog) error {
	accountNames := map[string]bool{}
	for _, account := range catalog.Accounts {
		validationErr := &apperrors.ValidationError{}
		ValidateName(validationErr, "name", account.Name)
		ValidateIcon(validationErr, "icon", account.Icon)
		ledger.ValidateMoney(validationErr, "initial_amount", account.InitialAmount)
		if err := validationErr.OrNil(); err != nil {
			return fmt.Errorf("account %q: %w", account.Name, err)
		}
		if accountNames[account.Name] {
			return fmt.Errorf("duplicated account %q", account.Name)
		}
		accountNames[account.Name] = true
	}

	categoryKeys := map[string]bool{}
	for _, category := range catalog.Categories {
		validationErr := &apperrors.ValidationError{}
		ValidateName(validationErr, "name", category.Name)
		ValidateIcon(validationErr, "icon", category.Icon)
		if !IsColor(category.Color) {
			validationErr.Add("color", fmt.Sprintf("invalid color %q", category.Color))
		}
		if err := validationErr.OrNil(); err != nil {
			return fmt.Errorf("category %q: %w", category.Name, err)
		}
		key := string(category.Type) + "/" + category.Name
		if categoryKeys[key] {
			return fmt.Errorf("duplicated %s category %q", category.Type, category.Name)
		}
		categoryKeys[key] = true
	}

	for _, color := range catalog.CategoryColors {
		if !IsColor(color) {
			return fmt.Errorf("invalid color %q", color)
		}
	}
	return nil
}
