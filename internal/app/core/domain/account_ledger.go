package domain

import (
	"sort"

	"github.com/JoeShih716/go-money-transfer/pkg/store"
)

// AccountLedger 管理所有帳戶並負責餘額異動
//
// 每個帳戶有自己的 Mutex；所有操作都是「先檢查、後異動」，
// 檢查失敗時不會修改任何餘額。
// 轉帳時依帳戶 ID 字典序取得兩把鎖，所有呼叫者使用同一個順序，不會形成循環等待。
type AccountLedger struct {
	accounts *store.IdentityStore[*Account]
}

// NewAccountLedger 建立空的 AccountLedger
func NewAccountLedger() *AccountLedger {
	return &AccountLedger{
		accounts: store.NewIdentityStore[*Account](),
	}
}

// Register 註冊新帳戶
//
// 參數:
//
//	id: 帳戶 ID
//	balance: 初始餘額
//
// 回傳:
//
//	*Account: 新帳戶
//	error: ErrInvalidAccountID / ErrInvalidBalance / ErrAccountAlreadyExists
func (l *AccountLedger) Register(id string, balance int64) (*Account, error) {
	account, err := NewAccount(id, balance)
	if err != nil {
		return nil, err
	}
	if !l.accounts.Register(account) {
		return nil, ErrAccountAlreadyExists
	}
	return account, nil
}

// Find 依 ID 取得帳戶
func (l *AccountLedger) Find(id string) (*Account, error) {
	account, ok := l.accounts.Lookup(id)
	if !ok {
		return nil, ErrAccountNotFound
	}
	return account, nil
}

// Snapshot 回傳所有帳戶的副本，依 ID 排序
func (l *AccountLedger) Snapshot() []AccountSnapshot {
	accounts := l.accounts.All()
	out := make([]AccountSnapshot, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, a.Snapshot())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Deposit 存款
//
// 參數:
//
//	account: 入帳帳戶
//	amount: 金額 (>= 1)
//
// 回傳:
//
//	error: ErrInvalidAmount / ErrBalanceOverflow
func (l *AccountLedger) Deposit(account *Account, amount int64) error {
	if amount < 1 {
		return ErrInvalidAmount
	}
	account.mu.Lock()
	defer account.mu.Unlock()

	if !account.canDeposit(amount) {
		return ErrBalanceOverflow
	}
	account.credit(amount)
	return nil
}

// Withdraw 提款
//
// 參數:
//
//	account: 扣款帳戶
//	amount: 金額 (>= 1)
//
// 回傳:
//
//	error: ErrInvalidAmount / ErrInsufficientBalance
func (l *AccountLedger) Withdraw(account *Account, amount int64) error {
	if amount < 1 {
		return ErrInvalidAmount
	}
	account.mu.Lock()
	defer account.mu.Unlock()

	if !account.canWithdraw(amount) {
		return ErrInsufficientBalance
	}
	account.debit(amount)
	return nil
}

// Transfer 轉帳
//
// 參數:
//
//	from: 扣款帳戶
//	to: 入帳帳戶
//	amount: 金額 (>= 1)
//
// 回傳:
//
//	error: ErrInvalidAmount / ErrSameAccount / ErrInsufficientBalance / ErrBalanceOverflow
func (l *AccountLedger) Transfer(from, to *Account, amount int64) error {
	if amount < 1 {
		return ErrInvalidAmount
	}
	// ID 不可變，可在拿鎖前比較；同一帳戶拿兩次 sync.Mutex 會卡死
	if from.id == to.id {
		return ErrSameAccount
	}

	first, second := lockOrder(from, to)
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	if !from.canWithdraw(amount) {
		return ErrInsufficientBalance
	}
	if !to.canDeposit(amount) {
		return ErrBalanceOverflow
	}
	from.debit(amount)
	to.credit(amount)
	return nil
}

// lockOrder 依帳戶 ID 字典序排列，ID 較小者先鎖 (與參數順序無關)
func lockOrder(a, b *Account) (first, second *Account) {
	if a.id < b.id {
		return a, b
	}
	return b, a
}
