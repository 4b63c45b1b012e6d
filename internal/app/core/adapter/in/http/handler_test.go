package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/JoeShih716/go-money-transfer/internal/app/core/adapter/out/memory"
	"github.com/JoeShih716/go-money-transfer/internal/app/core/domain"
	"github.com/JoeShih716/go-money-transfer/internal/app/core/usecase"
	"github.com/JoeShih716/go-money-transfer/pkg/sequence"
)

// ---- helpers ----

func newTestRouter(t *testing.T, accounts ...domain.AccountSnapshot) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	core := usecase.NewLedgerService(domain.NewAccountLedger(), memory.NewJournal(), sequence.NewSequencer(0))
	for _, acc := range accounts {
		if _, err := core.RegisterAccount(context.Background(), acc.ID, acc.Balance); err != nil {
			t.Fatal(err)
		}
	}
	return NewRouter(NewHandler(core))
}

func doRequest(router *gin.Engine, method, url string, body any) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, url, nil)
	if body != nil {
		var raw string
		if s, ok := body.(string); ok {
			raw = s
		} else {
			b, _ := json.Marshal(body)
			raw = string(b)
		}
		req, _ = http.NewRequest(method, url, strings.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return out
}

var seed = []domain.AccountSnapshot{{ID: "acc_1", Balance: 10}, {ID: "acc_2", Balance: 20}}

// ---- tests ----

func TestSaveAccount(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		expectedStatus int
	}{
		{name: "success", body: map[string]any{"id": "acc_3", "balance": 5}, expectedStatus: http.StatusOK},
		{name: "success - zero balance", body: map[string]any{"id": "acc_4"}, expectedStatus: http.StatusOK},
		{name: "duplicate id", body: map[string]any{"id": "acc_1", "balance": 5}, expectedStatus: http.StatusConflict},
		{name: "missing id", body: map[string]any{"balance": 5}, expectedStatus: http.StatusBadRequest},
		{name: "id too long", body: map[string]any{"id": strings.Repeat("a", 17), "balance": 5}, expectedStatus: http.StatusBadRequest},
		{name: "negative balance", body: map[string]any{"id": "acc_5", "balance": -1}, expectedStatus: http.StatusBadRequest},
		{name: "balance over max", body: map[string]any{"id": "acc_6", "balance": domain.MaxBalance + 1}, expectedStatus: http.StatusBadRequest},
		{name: "malformed json", body: `{"id":`, expectedStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t, seed...)
			w := doRequest(router, http.MethodPost, "/account/save", tt.body)
			if w.Code != tt.expectedStatus {
				t.Fatalf("status=%d want %d body=%s", w.Code, tt.expectedStatus, w.Body.String())
			}
		})
	}
}

func TestGetAccount(t *testing.T) {
	router := newTestRouter(t, seed...)

	w := doRequest(router, http.MethodGet, "/account/id/acc_2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if acc := decode[domain.AccountSnapshot](t, w); acc.ID != "acc_2" || acc.Balance != 20 {
		t.Fatalf("account=%+v", acc)
	}

	w = doRequest(router, http.MethodGet, "/account/id/nope", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d want 404", w.Code)
	}
	if msg := decode[map[string]string](t, w)["message"]; msg == "" {
		t.Fatal("missing error message")
	}
}

func TestTransactionEndpoints(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		body           any
		expectedStatus int
		expectedType   string
	}{
		{name: "deposit", url: "/transaction/deposit", body: map[string]any{"toAccountId": "acc_1", "amount": 1}, expectedStatus: http.StatusOK, expectedType: "DEPOSIT"},
		{name: "deposit - unknown account", url: "/transaction/deposit", body: map[string]any{"toAccountId": "nope", "amount": 1}, expectedStatus: http.StatusNotFound},
		{name: "deposit - zero amount", url: "/transaction/deposit", body: map[string]any{"toAccountId": "acc_1", "amount": 0}, expectedStatus: http.StatusBadRequest},
		{name: "deposit - overflow", url: "/transaction/deposit", body: map[string]any{"toAccountId": "acc_1", "amount": domain.MaxBalance}, expectedStatus: http.StatusBadRequest},
		{name: "withdraw", url: "/transaction/withdraw", body: map[string]any{"fromAccountId": "acc_2", "amount": 2}, expectedStatus: http.StatusOK, expectedType: "WITHDRAW"},
		{name: "withdraw - insufficient balance", url: "/transaction/withdraw", body: map[string]any{"fromAccountId": "acc_1", "amount": 11}, expectedStatus: http.StatusBadRequest},
		{name: "withdraw - missing account", url: "/transaction/withdraw", body: map[string]any{"amount": 1}, expectedStatus: http.StatusBadRequest},
		{name: "transfer", url: "/transaction/transfer", body: map[string]any{"fromAccountId": "acc_1", "toAccountId": "acc_2", "amount": 3}, expectedStatus: http.StatusOK, expectedType: "TRANSFER"},
		{name: "transfer - same account", url: "/transaction/transfer", body: map[string]any{"fromAccountId": "acc_1", "toAccountId": "acc_1", "amount": 3}, expectedStatus: http.StatusBadRequest},
		{name: "transfer - unknown target", url: "/transaction/transfer", body: map[string]any{"fromAccountId": "acc_1", "toAccountId": "nope", "amount": 3}, expectedStatus: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t, seed...)
			w := doRequest(router, http.MethodPost, tt.url, tt.body)
			if w.Code != tt.expectedStatus {
				t.Fatalf("status=%d want %d body=%s", w.Code, tt.expectedStatus, w.Body.String())
			}
			if tt.expectedType == "" {
				return
			}
			tran := decode[map[string]any](t, w)
			if tran["transactionType"] != tt.expectedType || tran["id"] != "trx_1" {
				t.Fatalf("transaction=%v", tran)
			}
		})
	}
}

func TestRunScenario(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/test", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	got := decode[[]domain.AccountSnapshot](t, w)
	want := []domain.AccountSnapshot{{ID: "acc_1", Balance: 8}, {ID: "acc_2", Balance: 21}}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("accounts=%+v want %+v", got, want)
	}

	w = doRequest(router, http.MethodGet, "/transaction/all", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	trans := decode[[]domain.Transaction](t, w)
	if len(trans) != 3 {
		t.Fatalf("transactions=%d want 3", len(trans))
	}
	for i, typ := range []domain.TransactionType{domain.TransactionTypeDeposit, domain.TransactionTypeWithdraw, domain.TransactionTypeTransfer} {
		if trans[i].Type != typ {
			t.Fatalf("transactions[%d].Type=%s want %s", i, trans[i].Type, typ)
		}
	}
}

func TestListEmpty(t *testing.T) {
	router := newTestRouter(t)
	for _, url := range []string{"/account/all", "/transaction/all"} {
		w := doRequest(router, http.MethodGet, url, nil)
		if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != "[]" {
			t.Fatalf("%s status=%d body=%s", url, w.Code, w.Body.String())
		}
	}
}

func TestHealth(t *testing.T) {
	w := doRequest(newTestRouter(t), http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
}

// ---- mock for internal errors ----

type failingService struct {
	LedgerService
}

func (failingService) Deposit(context.Context, string, int64) (domain.Transaction, error) {
	return domain.Transaction{}, fmt.Errorf("%w: trx_1", domain.ErrDuplicateTransaction)
}

func TestInternalErrorHidesDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := NewRouter(NewHandler(failingService{}))

	w := doRequest(router, http.MethodPost, "/transaction/deposit", map[string]any{"toAccountId": "acc_1", "amount": 1})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d want 500", w.Code)
	}
	if msg := decode[map[string]string](t, w)["message"]; strings.Contains(msg, "trx_1") {
		t.Fatalf("internal details leaked: %s", msg)
	}
}
