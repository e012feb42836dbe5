package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Accounts
	r.HandleFunc("/api/account", deps.AccountHandler.List).Methods("GET")
	r.HandleFunc("/api/account", deps.AccountHandler.Create).Methods("POST")
	r.HandleFunc("/api/account/{accountId}", deps.AccountHandler.Get).Methods("GET")
	r.HandleFunc("/api/account/{accountId}", deps.AccountHandler.Update).Methods("PUT")
	r.HandleFunc("/api/account/{accountId}", deps.AccountHandler.Delete).Methods("DELETE")
	r.HandleFunc("/api/account/{accountId}/recalculate", deps.AccountHandler.Recalculate).Methods("POST")

	// Categories
	r.HandleFunc("/api/category", deps.CategoryHandler.List).Methods("GET")
	r.HandleFunc("/api/category", deps.CategoryHandler.Create).Methods("POST")
	r.HandleFunc("/api/category/{categoryId}", deps.CategoryHandler.Get).Methods("GET")
	r.HandleFunc("/api/category/{categoryId}", deps.CategoryHandler.Update).Methods("PUT")
	r.HandleFunc("/api/category/{categoryId}", deps.CategoryHandler.Delete).Methods("DELETE")

	// Transactions
	r.HandleFunc("/api/transaction", deps.TransactionHandler.List).Methods("GET")
	r.HandleFunc("/api/transaction", deps.TransactionHandler.Create).Methods("POST")
	r.HandleFunc("/api/transaction/daily", deps.TransactionHandler.Daily).Methods("GET")
	r.HandleFunc("/api/transaction/{transactionId}", deps.TransactionHandler.Get).Methods("GET")
	r.HandleFunc("/api/transaction/{transactionId}", deps.TransactionHandler.Update).Methods("PUT")
	r.HandleFunc("/api/transaction/{transactionId}", deps.TransactionHandler.Delete).Methods("DELETE")

	// Totals
	r.HandleFunc("/api/totals", deps.LedgerHandler.Totals).Methods("GET")

	// Budgets
	r.HandleFunc("/api/budget", deps.BudgetHandler.ListMonth).Methods("GET")
	r.HandleFunc("/api/budget", deps.BudgetHandler.SetBudget).Methods("PUT")
	r.HandleFunc("/api/budget/status", deps.BudgetHandler.Status).Methods("GET")
	r.HandleFunc("/api/budget/{budgetId}", deps.BudgetHandler.Delete).Methods("DELETE")

	// Reports
	r.HandleFunc("/api/report/chart", deps.ReportHandler.GetChart).Methods("GET")

	// Catalog
	r.HandleFunc("/api/catalog", deps.CatalogHandler.GetCatalog).Methods("GET")

	// User management
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user/current", deps.UserHandler.UpdateUser).Methods("PUT")
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user/name-availability", deps.UserHandler.IsUsernameAvailable).Methods("GET").Queries("username", "{username}")
}
