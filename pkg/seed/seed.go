package seed

import (
	"context"
	"fmt"

	"github.com/budgetbee/budgetbee/internal/event_bus"
	"github.com/budgetbee/budgetbee/pkg/account"
	"github.com/budgetbee/budgetbee/pkg/catalog"
	"github.com/budgetbee/budgetbee/pkg/category"
	"github.com/budgetbee/budgetbee/pkg/user"
	log "github.com/sirupsen/logrus"
)

type AccountCreator interface {
	Create(ctx context.Context, account account.Account) (account.Account, error)
}

type CategoryCreator interface {
	Create(ctx context.Context, category category.Category) (category.Category, error)
}

// Seeder gives every new user the catalog's default accounts and categories.
type Seeder struct {
	catalog    catalog.Catalog
	accounts   AccountCreator
	categories CategoryCreator
}

// NewSeeder subscribes the seeder to user.created. The subscription stays for the lifetime of the bus.
func NewSeeder(catalog catalog.Catalog, accounts AccountCreator, categories CategoryCreator, eventBus *event_bus.EventBus) *Seeder {
	seeder := &Seeder{catalog: catalog, accounts: accounts, categories: categories}
	event_bus.SubscribeTyped[event_bus.UserCreated](
		eventBus,
		event_bus.UserCreatedType,
		func(e event_bus.EventT[event_bus.UserCreated]) error {
			log.Debugf("received user created event: %v", e.Data)
			if err := seeder.Provision(e.Context(), e.Data.Id); err != nil {
				log.Errorf("failed to seed user %d: %v", e.Data.Id, err)
				return err
			}
			return nil
		},
	)
	return seeder
}

// Provision creates the default accounts and categories for userId. Called with the context of the
// user creation, it writes inside the same transaction.
func (s *Seeder) Provision(ctx context.Context, userId int) error {
	ctx = user.WithUser(ctx, user.User{Id: userId})

	for _, a := range s.catalog.Accounts {
		_, err := s.accounts.Create(ctx, account.Account{Name: a.Name, Icon: a.Icon, InitialAmount: a.InitialAmount})
		if err != nil {
			return fmt.Errorf("failed to seed account %s: %w", a.Name, err)
		}
	}
	for _, c := range s.catalog.Categories {
		_, err := s.categories.Create(ctx, category.Category{Name: c.Name, Type: c.Type, Color: c.Color, Icon: c.Icon})
		if err != nil {
			return fmt.Errorf("failed to seed category %s: %w", c.Name, err)
		}
	}
	log.Infof("seeded %d accounts and %d categories for user %d", len(s.catalog.Accounts), len(s.catalog.Categories), userId)
	return nil
}
