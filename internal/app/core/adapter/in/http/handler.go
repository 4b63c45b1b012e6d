package http

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JoeShih716/go-money-transfer/internal/app/core/domain"
)

// LedgerService handler 使用到的核心操作
type LedgerService interface {
	RegisterAccount(ctx context.Context, id string, balance int64) (domain.AccountSnapshot, error)
	GetAccount(ctx context.Context, id string) (domain.AccountSnapshot, error)
	ListAccounts(ctx context.Context) []domain.AccountSnapshot
	Deposit(ctx context.Context, accountID string, amount int64) (domain.Transaction, error)
	Withdraw(ctx context.Context, accountID string, amount int64) (domain.Transaction, error)
	Transfer(ctx context.Context, fromID, toID string, amount int64) (domain.Transaction, error)
	ListTransactions(ctx context.Context) []domain.Transaction
}

type SaveAccountRequest struct {
	ID      string `json:"id" validate:"required,max=16"`
	Balance int64  `json:"balance" validate:"min=0,max=2147483647"`
}

type DepositRequest struct {
	ToAccountID string `json:"toAccountId" validate:"required,max=16"`
	Amount      int64  `json:"amount" validate:"required,min=1"`
}

type WithdrawRequest struct {
	FromAccountID string `json:"fromAccountId" validate:"required,max=16"`
	Amount        int64  `json:"amount" validate:"required,min=1"`
}

type TransferRequest struct {
	FromAccountID string `json:"fromAccountId" validate:"required,max=16"`
	ToAccountID   string `json:"toAccountId" validate:"required,max=16"`
	Amount        int64  `json:"amount" validate:"required,min=1"`
}

// Handler REST handler
type Handler struct {
	core LedgerService
}

func NewHandler(core LedgerService) *Handler {
	return &Handler{core: core}
}

func (h *Handler) ListAccounts(c *gin.Context) {
	log.Printf("[HTTP] request for all accounts")
	c.JSON(http.StatusOK, h.core.ListAccounts(c.Request.Context()))
}

func (h *Handler) GetAccount(c *gin.Context) {
	id := c.Param("id")
	log.Printf("[HTTP] request for account %s", id)

	acc, err := h.core.GetAccount(c.Request.Context(), id)
	if err != nil {
		RespondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, acc)
}

func (h *Handler) SaveAccount(c *gin.Context) {
	var req SaveAccountRequest
	if !bind(c, &req) {
		return
	}
	log.Printf("[HTTP] request to save account %s with balance %d", req.ID, req.Balance)

	acc, err := h.core.RegisterAccount(c.Request.Context(), req.ID, req.Balance)
	if err != nil {
		RespondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, acc)
}

func (h *Handler) ListTransactions(c *gin.Context) {
	log.Printf("[HTTP] request for all transactions")
	c.JSON(http.StatusOK, h.core.ListTransactions(c.Request.Context()))
}

func (h *Handler) Deposit(c *gin.Context) {
	var req DepositRequest
	if !bind(c, &req) {
		return
	}
	log.Printf("[HTTP] request for deposit %d to %s", req.Amount, req.ToAccountID)

	tran, err := h.core.Deposit(c.Request.Context(), req.ToAccountID, req.Amount)
	if err != nil {
		RespondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, tran)
}

func (h *Handler) Withdraw(c *gin.Context) {
	var req WithdrawRequest
	if !bind(c, &req) {
		return
	}
	log.Printf("[HTTP] request for withdraw %d of %s", req.Amount, req.FromAccountID)

	tran, err := h.core.Withdraw(c.Request.Context(), req.FromAccountID, req.Amount)
	if err != nil {
		RespondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, tran)
}

func (h *Handler) Transfer(c *gin.Context) {
	var req TransferRequest
	if !bind(c, &req) {
		return
	}
	log.Printf("[HTTP] request for transfer %d from %s to %s", req.Amount, req.FromAccountID, req.ToAccountID)

	tran, err := h.core.Transfer(c.Request.Context(), req.FromAccountID, req.ToAccountID, req.Amount)
	if err != nil {
		RespondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, tran)
}

// RunScenario 在同一個 process 內跑一次示範流程，回傳所有帳戶
//
// acc_1(10), acc_2(20) -> 存 1 到 acc_1 -> 從 acc_2 提 2 -> acc_1 轉 3 給 acc_2
// 帳戶已存在時沿用現有帳戶。
func (h *Handler) RunScenario(c *gin.Context) {
	log.Printf("[HTTP] request to run test scenario")
	ctx := c.Request.Context()

	for _, acc := range []domain.AccountSnapshot{{ID: "acc_1", Balance: 10}, {ID: "acc_2", Balance: 20}} {
		if _, err := h.core.RegisterAccount(ctx, acc.ID, acc.Balance); err != nil && !errors.Is(err, domain.ErrAccountAlreadyExists) {
			RespondWithDomainError(c, err)
			return
		}
	}
	if _, err := h.core.Deposit(ctx, "acc_1", 1); err != nil {
		RespondWithDomainError(c, err)
		return
	}
	if _, err := h.core.Withdraw(ctx, "acc_2", 2); err != nil {
		RespondWithDomainError(c, err)
		return
	}
	if _, err := h.core.Transfer(ctx, "acc_1", "acc_2", 3); err != nil {
		RespondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.core.ListAccounts(ctx))
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// bind 解析 JSON 並驗證，失敗時已寫入回應
func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		log.Printf("[HTTP] %s %s -> 400: %v", c.Request.Method, c.Request.URL.Path, err)
		RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if errs := ValidateRequest(req); errs != nil {
		RespondWithValidationError(c, errs)
		return false
	}
	return true
}
