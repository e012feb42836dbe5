package app

import (
	"github.com/budgetbee/budgetbee/internal/config"
	"github.com/budgetbee/budgetbee/internal/database"
	"github.com/budgetbee/budgetbee/internal/event_bus"
	"github.com/budgetbee/budgetbee/internal/utils"
	"github.com/budgetbee/budgetbee/pkg/account"
	"github.com/budgetbee/budgetbee/pkg/budget"
	"github.com/budgetbee/budgetbee/pkg/catalog"
	"github.com/budgetbee/budgetbee/pkg/category"
	"github.com/budgetbee/budgetbee/pkg/ledger"
	"github.com/budgetbee/budgetbee/pkg/report"
	"github.com/budgetbee/budgetbee/pkg/seed"
	"github.com/budgetbee/budgetbee/pkg/transaction"
	"github.com/budgetbee/budgetbee/pkg/user"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Transactor database.Transactor
	EventBus   *event_bus.EventBus
	Clock      utils.Clock

	Catalog        catalog.Catalog
	CatalogHandler *catalog.Handler

	UserService user.Service
	UserHandler *user.Handler

	LedgerEngine  *ledger.EngineImpl
	LedgerHandler *ledger.Handler

	AccountService *account.ServiceImpl
	AccountHandler *account.Handler

	CategoryService *category.ServiceImpl
	CategoryHandler *category.Handler

	TransactionService *transaction.ServiceImpl
	TransactionHandler *transaction.Handler

	BudgetRepo    budget.BudgetRepo
	BudgetService *budget.BudgetServiceImpl
	BudgetHandler *budget.BudgetHandler

	ReportService     *report.ReportServiceImpl
	CsvReportRenderer *report.CsvReportRendererImpl
	ReportHandler     *report.ReportHandler

	Seeder *seed.Seeder
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application, seedCatalog catalog.Catalog) *Dependencies {
	deps := &Dependencies{}

	deps.Transactor = database.NewTransactor(db)
	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.Catalog = seedCatalog
	deps.CatalogHandler = catalog.NewHandler(deps.Catalog)

	deps.UserService = user.NewUserService(user.NewUserRepo(db), deps.Transactor, deps.EventBus)
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.LedgerEngine = ledger.NewEngine(ledger.NewRepo(db), deps.Transactor)
	deps.LedgerHandler = ledger.NewHandler(deps.LedgerEngine)

	deps.AccountService = account.NewService(account.NewRepo(db), deps.LedgerEngine, deps.Transactor, deps.Catalog)
	deps.AccountHandler = account.NewHandler(deps.AccountService)

	deps.CategoryService = category.NewService(category.NewRepo(db), deps.Transactor, deps.Catalog)
	deps.CategoryHandler = category.NewHandler(deps.CategoryService)

	deps.TransactionService = transaction.NewService(transaction.NewRepo(db), deps.LedgerEngine,
		deps.AccountService, deps.CategoryService, deps.Transactor, deps.Clock)
	deps.TransactionHandler = transaction.NewHandler(deps.TransactionService)

	deps.BudgetRepo = budget.NewBudgetRepo(db)
	deps.BudgetService = budget.NewBudgetServiceImpl(deps.BudgetRepo, deps.LedgerEngine, deps.CategoryService)
	deps.BudgetHandler = budget.NewBudgetHandler(deps.BudgetService, deps.Clock)

	deps.ReportService = report.NewReportServiceImpl(deps.TransactionService, deps.CategoryService)
	deps.CsvReportRenderer = report.NewCsvReportRenderer()
	deps.ReportHandler = report.NewReportHandler(deps.ReportService, deps.CsvReportRenderer)

	deps.Seeder = seed.NewSeeder(deps.Catalog, deps.AccountService, deps.CategoryService, deps.EventBus)

	return deps
}
