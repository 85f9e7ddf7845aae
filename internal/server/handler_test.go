package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	interfaces "github.com/sheikh-saqib/account-statement-ledger/internal/interfaces"

	"github.com/sheikh-saqib/account-statement-ledger/internal/ledger"
	"github.com/sheikh-saqib/account-statement-ledger/internal/models"
	"github.com/sheikh-saqib/account-statement-ledger/internal/statement"
	"github.com/sheikh-saqib/account-statement-ledger/internal/storage/memory"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	tick := time.Date(2022, 10, 25, 15, 30, 0, 0, time.UTC)
	clock := func() time.Time {
		tick = tick.Add(time.Minute)
		return tick
	}

	l := ledger.NewLedger(memory.NewMemoryLedgerStore(), statement.NewGridFormatter(), ledger.WithClock(clock))

	srv := httptest.NewServer(NewRouter(NewHandler(l, zap.NewNop())))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any, wantCode int, out any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, wantCode, resp.StatusCode)
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
}

func TestHandler_DepositWithdrawBalance(t *testing.T) {
	srv := newTestServer(t)
	account := srv.URL + "/accounts/" + uuid.NewString()

	var op models.Operation
	doJSON(t, http.MethodPost, account+"/deposits", map[string]string{"amount": "10"}, http.StatusCreated, &op)
	assert.Equal(t, models.Deposit, op.Type)
	assert.True(t, op.Balance.Equal(decimal.NewFromInt(10)))

	doJSON(t, http.MethodPost, account+"/withdrawals", map[string]string{"amount": "5"}, http.StatusCreated, &op)
	assert.Equal(t, models.Withdrawal, op.Type)
	assert.True(t, op.Balance.Equal(decimal.NewFromInt(5)))

	var bal balanceResponse
	doJSON(t, http.MethodGet, account+"/balance", nil, http.StatusOK, &bal)
	assert.True(t, bal.Balance.Equal(decimal.NewFromInt(5)))
}

func TestHandler_Errors(t *testing.T) {
	srv := newTestServer(t)
	account := srv.URL + "/accounts/" + uuid.NewString()

	doJSON(t, http.MethodPost, account+"/deposits", map[string]string{"amount": "5"}, http.StatusCreated, nil)

	// would empty the account
	doJSON(t, http.MethodPost, account+"/withdrawals", map[string]string{"amount": "5"}, http.StatusUnprocessableEntity, nil)
	doJSON(t, http.MethodPost, account+"/withdrawals", map[string]string{"amount": "20"}, http.StatusUnprocessableEntity, nil)

	doJSON(t, http.MethodPost, account+"/deposits", map[string]string{"amount": "-1"}, http.StatusBadRequest, nil)
	doJSON(t, http.MethodPost, account+"/deposits", "not an object", http.StatusBadRequest, nil)
	doJSON(t, http.MethodPost, srv.URL+"/accounts/42/deposits", map[string]string{"amount": "1"}, http.StatusBadRequest, nil)
	doJSON(t, http.MethodGet, account+"/deposits", nil, http.StatusMethodNotAllowed, nil)
}

func TestHandler_Statement(t *testing.T) {
	srv := newTestServer(t)
	id := uuid.New()
	account := srv.URL + "/accounts/" + id.String()

	doJSON(t, http.MethodPost, account+"/deposits", map[string]string{"amount": "10000"}, http.StatusCreated, nil)
	doJSON(t, http.MethodPost, account+"/withdrawals", map[string]string{"amount": "7100"}, http.StatusCreated, nil)

	resp, err := http.Get(account + "/statement")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/plain; charset=utf-8", resp.Header.Get("Content-Type"))

	var body bytes.Buffer
	_, err = body.ReadFrom(resp.Body)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(body.String(), "\n"), "\n")
	require.Len(t, lines, 16)
	assert.Contains(t, lines[7], id.String())
	assert.Contains(t, lines[8], "2900.00€")
	assert.Contains(t, lines[13], "WITHDRAWAL")
	assert.Contains(t, lines[13], "-7100.00€")
	assert.Contains(t, lines[14], "+10000.00€")
}

func TestHandler_Health(t *testing.T) {
	srv := newTestServer(t)

	var out map[string]string
	doJSON(t, http.MethodGet, srv.URL+"/health", nil, http.StatusOK, &out)
	assert.Equal(t, "ok", out["status"])
}

type failingStore struct{}

func (failingStore) Save(context.Context, models.Operation) (models.Operation, error) {
	return models.Operation{}, errors.New("store down")
}

func (failingStore) GetBalance(context.Context, uuid.UUID) (decimal.NullDecimal, error) {
	return decimal.NullDecimal{}, errors.New("store down")
}

func (failingStore) GetOperations(context.Context, uuid.UUID) ([]models.Operation, error) {
	return nil, errors.New("store down")
}

var _ interfaces.LedgerStore = failingStore{}

func TestHandler_StoreFailures(t *testing.T) {
	l := ledger.NewLedger(failingStore{}, statement.NewGridFormatter())
	srv := httptest.NewServer(NewRouter(NewHandler(l, zap.NewNop())))
	t.Cleanup(srv.Close)
	account := srv.URL + "/accounts/" + uuid.NewString()

	doJSON(t, http.MethodGet, account+"/statement", nil, http.StatusInternalServerError, nil)
	doJSON(t, http.MethodGet, account+"/balance", nil, http.StatusInternalServerError, nil)
	doJSON(t, http.MethodPost, account+"/deposits", map[string]string{"amount": "1"}, http.StatusInternalServerError, nil)
}
