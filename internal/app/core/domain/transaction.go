package domain

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// TransactionIDPrefix 交易 ID 前綴，後接序號
const TransactionIDPrefix = "trx_"

// TransactionType 交易類型
type TransactionType uint8

const (
	// 存款
	TransactionTypeDeposit TransactionType = 1
	// 提款
	TransactionTypeWithdraw TransactionType = 2
	// 轉帳
	TransactionTypeTransfer TransactionType = 3
)

func (t TransactionType) String() string {
	switch t {
	case TransactionTypeDeposit:
		return "DEPOSIT"
	case TransactionTypeWithdraw:
		return "WITHDRAW"
	case TransactionTypeTransfer:
		return "TRANSFER"
	default:
		return "UNKNOWN"
	}
}

// MarshalText 讓 JSON 輸出為 "DEPOSIT" / "WITHDRAW" / "TRANSFER"
func (t TransactionType) MarshalText() ([]byte, error) {
	switch t {
	case TransactionTypeDeposit, TransactionTypeWithdraw, TransactionTypeTransfer:
		return []byte(t.String()), nil
	}
	return nil, fmt.Errorf("unknown transaction type %d", uint8(t))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TransactionType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "DEPOSIT":
		*t = TransactionTypeDeposit
	case "WITHDRAW":
		*t = TransactionTypeWithdraw
	case "TRANSFER":
		*t = TransactionTypeTransfer
	default:
		return fmt.Errorf("unknown transaction type %q", text)
	}
	return nil
}

// Transaction 已提交的交易紀錄，建立後不再修改
// Deposit 沒有 FromAccountID，Withdraw 沒有 ToAccountID。
type Transaction struct {
	// Sequence: 序號產生器發放的全局唯一順序號，可用來排序
	Sequence uint64 `json:"sequence"`
	// ID: "trx_" + Sequence
	ID            string          `json:"id"`
	Type          TransactionType `json:"transactionType"`
	FromAccountID string          `json:"fromAccountId,omitempty"`
	ToAccountID   string          `json:"toAccountId,omitempty"`
	Amount        int64           `json:"amount"`
	// RefID: 外部追蹤號
	RefID uuid.UUID `json:"refId"`
	// CreatedAt: 提交時間 (unix nano)
	CreatedAt int64 `json:"createdAt"`
}

// Identity implements store.Identifiable.
func (t *Transaction) Identity() string {
	if t == nil {
		return ""
	}
	return t.ID
}

// TransactionID 依序號產生交易 ID
func TransactionID(seq uint64) string {
	return TransactionIDPrefix + strconv.FormatUint(seq, 10)
}

// NewDepositTransaction 建立存款交易 (入帳帳戶為 To)
func NewDepositTransaction(seq uint64, accountID string, amount int64, createdAt int64) *Transaction {
	return newTransaction(seq, TransactionTypeDeposit, "", accountID, amount, createdAt)
}

// NewWithdrawTransaction 建立提款交易 (扣款帳戶為 From)
func NewWithdrawTransaction(seq uint64, accountID string, amount int64, createdAt int64) *Transaction {
	return newTransaction(seq, TransactionTypeWithdraw, accountID, "", amount, createdAt)
}

// NewTransferTransaction 建立轉帳交易
func NewTransferTransaction(seq uint64, fromID, toID string, amount int64, createdAt int64) *Transaction {
	return newTransaction(seq, TransactionTypeTransfer, fromID, toID, amount, createdAt)
}

func newTransaction(seq uint64, typ TransactionType, fromID, toID string, amount int64, createdAt int64) *Transaction {
	return &Transaction{
		Sequence:      seq,
		ID:            TransactionID(seq),
		Type:          typ,
		FromAccountID: fromID,
		ToAccountID:   toID,
		Amount:        amount,
		RefID:         uuid.New(),
		CreatedAt:     createdAt,
	}
}
