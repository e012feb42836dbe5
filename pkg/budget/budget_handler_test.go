package budget

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/budgetbee/budgetbee/internal/utils"
	"github.com/budgetbee/budgetbee/pkg/ledger"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var clock = &utils.MockClock{FixedNow: time.Date(2025, 5, 20, 9, 0, 0, 0, time.UTC)}

func TestBudgetHandler_SetBudget(t *testing.T) {
	t.Run("should set budget", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		food := createCategory(t, ctx, "Food", ledger.Expense)
		handler := NewBudgetHandler(service, clock)
		rr := httptest.NewRecorder()

		body := fmt.Sprintf(`{"categoryId":%d,"month":5,"year":2025,"amount":"120.00"}`, food.Id)
		req := httptest.NewRequest(http.MethodPut, "/api/budget", strings.NewReader(body)).WithContext(ctx)
		handler.SetBudget(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var response BudgetDTO
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		assert.NotZero(t, response.ID)
		assert.Equal(t, 5, response.Month)
		assertDecimal(t, "120", response.Amount)
	})

	t.Run("should return 400 for month out of range", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		food := createCategory(t, ctx, "Food", ledger.Expense)
		handler := NewBudgetHandler(service, clock)
		rr := httptest.NewRecorder()

		body := fmt.Sprintf(`{"categoryId":%d,"month":13,"year":2025,"amount":"120.00"}`, food.Id)
		req := httptest.NewRequest(http.MethodPut, "/api/budget", strings.NewReader(body)).WithContext(ctx)
		handler.SetBudget(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), `"field":"month"`)
	})
}

func TestBudgetHandler_Status(t *testing.T) {
	t.Run("should default to current month", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		food := createCategory(t, ctx, "Food", ledger.Expense)
		_, err := service.SetBudget(ctx, food.Id, time.May, 2025, decimal.NewFromInt(100))
		require.NoError(t, err)
		spend(food.Id, "150", time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC))
		handler := NewBudgetHandler(service, clock)
		rr := httptest.NewRecorder()

		req := httptest.NewRequest(http.MethodGet, "/api/budget/status?categoryId="+strconv.Itoa(food.Id), nil).WithContext(ctx)
		handler.Status(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"spent":"150","ceiling":"100","percentUsed":"100","exceeded":true}`, rr.Body.String())
	})

	t.Run("should return 400 without category", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		handler := NewBudgetHandler(service, clock)
		rr := httptest.NewRecorder()

		req := httptest.NewRequest(http.MethodGet, "/api/budget/status?month=5&year=2025", nil).WithContext(ctx)
		handler.Status(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestBudgetHandler_ListMonth(t *testing.T) {
	t.Run("should list expense categories of month", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		createCategory(t, ctx, "Food", ledger.Expense)
		createCategory(t, ctx, "Salary", ledger.Income)
		handler := NewBudgetHandler(service, clock)
		rr := httptest.NewRecorder()

		req := httptest.NewRequest(http.MethodGet, "/api/budget?month=2&year=2024", nil).WithContext(ctx)
		handler.ListMonth(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var response []CategoryStatusDTO
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		require.Len(t, response, 1)
		assert.Equal(t, "Food", response[0].CategoryName)
		assert.False(t, response[0].Status.Exceeded)
	})
}

func TestBudgetHandler_Delete(t *testing.T) {
	t.Run("should return 404 for missing budget", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		handler := NewBudgetHandler(service, clock)
		rr := httptest.NewRecorder()

		req := httptest.NewRequest(http.MethodDelete, "/api/budget/5", nil).WithContext(ctx)
		req = mux.SetURLVars(req, map[string]string{"budgetId": "5"})
		handler.Delete(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
