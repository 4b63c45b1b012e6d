package domain

import (
	"math"
	"sync"
	"sync/atomic"
	"unicode/utf8"
)

const (
	// MaxBalance 帳戶餘額上限 (signed 32-bit 最大值)
	MaxBalance int64 = math.MaxInt32

	// MaxAccountIDLength 帳戶 ID 最大長度
	MaxAccountIDLength = 16
)

// Account 帳戶
// id 建立後不可變；balance 只能由 AccountLedger 在 mu 保護下修改。
// balance 以 atomic 儲存，讀取不需要拿鎖。
type Account struct {
	mu      sync.Mutex
	id      string
	balance atomic.Int64
}

// AccountSnapshot 帳戶在某一時間點的唯讀副本
type AccountSnapshot struct {
	ID      string `json:"id"`
	Balance int64  `json:"balance"`
}

// NewAccount 建立帳戶並檢查 ID 與初始餘額
//
// 參數:
//
//	id: 帳戶 ID (1 ~ MaxAccountIDLength 個字元)
//	balance: 初始餘額 [0, MaxBalance]
//
// 回傳:
//
//	*Account: 帳戶
//	error: ErrInvalidAccountID / ErrInvalidBalance
func NewAccount(id string, balance int64) (*Account, error) {
	if id == "" || utf8.RuneCountInString(id) > MaxAccountIDLength {
		return nil, ErrInvalidAccountID
	}
	if balance < 0 || balance > MaxBalance {
		return nil, ErrInvalidBalance
	}
	a := &Account{id: id}
	a.balance.Store(balance)
	return a, nil
}

// ID 帳戶 ID
func (a *Account) ID() string {
	return a.id
}

// Identity implements store.Identifiable.
func (a *Account) Identity() string {
	if a == nil {
		return ""
	}
	return a.id
}

// Balance 目前餘額
func (a *Account) Balance() int64 {
	return a.balance.Load()
}

// Snapshot 回傳帳戶副本
func (a *Account) Snapshot() AccountSnapshot {
	return AccountSnapshot{ID: a.id, Balance: a.balance.Load()}
}

// canWithdraw 呼叫前必須持有 a.mu
func (a *Account) canWithdraw(amount int64) bool {
	return amount <= a.balance.Load()
}

// canDeposit 呼叫前必須持有 a.mu
func (a *Account) canDeposit(amount int64) bool {
	return amount <= MaxBalance-a.balance.Load()
}

// credit / debit 呼叫前必須持有 a.mu 並已通過檢查
func (a *Account) credit(amount int64) {
	a.balance.Add(amount)
}

func (a *Account) debit(amount int64) {
	a.balance.Add(-amount)
}
