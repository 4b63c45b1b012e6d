package usecase

import (
	"context"

	"github.com/JoeShih716/go-money-transfer/internal/app/core/domain"
)

// AccountLedger 帳戶註冊、查詢與餘額異動
type AccountLedger interface {
	// Register 註冊新帳戶
	Register(id string, balance int64) (*domain.Account, error)
	// Find 依 ID 取得帳戶，找不到回傳 domain.ErrAccountNotFound
	Find(id string) (*domain.Account, error)
	// Snapshot 所有帳戶的副本
	Snapshot() []domain.AccountSnapshot

	Deposit(account *domain.Account, amount int64) error
	Withdraw(account *domain.Account, amount int64) error
	Transfer(from, to *domain.Account, amount int64) error
}

// Journal 交易紀錄 (只可新增)
type Journal interface {
	// Record 寫入交易，ID 已存在時回傳 false
	Record(tran *domain.Transaction) bool
	// All 所有交易的副本，依序號排序
	All() []domain.Transaction
}

// Sequencer 交易序號產生器
type Sequencer interface {
	Next() uint64
	Current() uint64
}

// EventPublisher 將已提交的交易發佈給外部系統
type EventPublisher interface {
	PublishTransaction(ctx context.Context, tran domain.Transaction) error
}

var _ AccountLedger = (*domain.AccountLedger)(nil)
