package transaction

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/budgetbee/budgetbee/pkg/ledger"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func request(ctx context.Context, method, target, body string, vars map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body)).WithContext(ctx)
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	return req
}

func TestHandler_Create(t *testing.T) {
	t.Run("should create transaction and return totals", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		accountId := createAccount(t, ctx, "Bank", "10")
		handler := NewHandler(service)
		rr := httptest.NewRecorder()

		body := fmt.Sprintf(`{"accountId":%d,"amount":"2.50","type":"expense","note":"coffee","date":"2024-02-29"}`, accountId)
		handler.Create(rr, request(ctx, http.MethodPost, "/api/transaction", body, nil))

		require.Equal(t, http.StatusCreated, rr.Code)
		var response MutationDTO
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		assert.Equal(t, "2024-02-29", response.Transaction.Date)
		assert.Equal(t, "coffee", response.Transaction.Note)
		assertDecimal(t, "7.5", response.Totals.TotalBalance)
		assert.Equal(t, int64(100), response.Totals.SpentPercent)
	})

	t.Run("should return 400 for malformed date", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		handler := NewHandler(service)
		rr := httptest.NewRecorder()

		handler.Create(rr, request(ctx, http.MethodPost, "/api/transaction",
			`{"accountId":1,"amount":"1","type":"expense","date":"29.02.2024"}`, nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("should return 400 with field for zero amount", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		accountId := createAccount(t, ctx, "Bank", "0")
		handler := NewHandler(service)
		rr := httptest.NewRecorder()

		body := fmt.Sprintf(`{"accountId":%d,"amount":"0","type":"income"}`, accountId)
		handler.Create(rr, request(ctx, http.MethodPost, "/api/transaction", body, nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), `"field":"amount"`)
	})
}

func TestHandler_List(t *testing.T) {
	t.Run("should return 400 for invalid account filter", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		handler := NewHandler(service)
		rr := httptest.NewRecorder()

		handler.List(rr, request(ctx, http.MethodGet, "/api/transaction?accountId=abc", "", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("should list filtered transactions", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		bank := createAccount(t, ctx, "Bank", "0")
		cash := createAccount(t, ctx, "Cash", "0")
		_, _, err := service.Create(ctx, newTransaction(bank, ledger.Income, "10"))
		require.NoError(t, err)
		_, _, err = service.Create(ctx, newTransaction(cash, ledger.Income, "20"))
		require.NoError(t, err)
		handler := NewHandler(service)
		rr := httptest.NewRecorder()

		handler.List(rr, request(ctx, http.MethodGet, "/api/transaction?accountId="+strconv.Itoa(cash), "", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		var response []TransactionDTO
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		require.Len(t, response, 1)
		assert.Equal(t, cash, response[0].AccountId)
	})
}

func TestHandler_Daily(t *testing.T) {
	t.Run("should return days with totals", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		accountId := createAccount(t, ctx, "Bank", "0")
		_, _, err := service.Create(ctx, newTransaction(accountId, ledger.Income, "10"))
		require.NoError(t, err)
		handler := NewHandler(service)
		rr := httptest.NewRecorder()

		handler.Daily(rr, request(ctx, http.MethodGet, "/api/transaction/daily?from=2024-03-01&to=2024-03-31", "", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		var response []DayDTO
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		require.Len(t, response, 1)
		assert.Equal(t, "2024-03-10", response[0].Date)
		assertDecimal(t, "10", response[0].Income)
	})
}

func TestHandler_Delete(t *testing.T) {
	t.Run("should return totals after delete", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		accountId := createAccount(t, ctx, "Bank", "0")
		created, _, err := service.Create(ctx, newTransaction(accountId, ledger.Income, "10"))
		require.NoError(t, err)
		handler := NewHandler(service)
		rr := httptest.NewRecorder()

		id := strconv.Itoa(created.Id)
		handler.Delete(rr, request(ctx, http.MethodDelete, "/api/transaction/"+id, "", map[string]string{"transactionId": id}))

		require.Equal(t, http.StatusOK, rr.Code)
		var response ledger.TotalsDTO
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		assertDecimal(t, "0", response.TotalBalance)
	})

	t.Run("should return 403 for transaction of another user", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		accountId := createAccount(t, otherUserCtx, "Bank", "0")
		created, _, err := service.Create(otherUserCtx, newTransaction(accountId, ledger.Income, "10"))
		require.NoError(t, err)
		handler := NewHandler(service)
		rr := httptest.NewRecorder()

		id := strconv.Itoa(created.Id)
		handler.Delete(rr, request(ctx, http.MethodDelete, "/api/transaction/"+id, "", map[string]string{"transactionId": id}))

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}
