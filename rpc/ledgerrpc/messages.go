package ledgerrpc

// RegisterAccountRequest 註冊帳戶
type RegisterAccountRequest struct {
	ID      string `json:"id"`
	Balance int64  `json:"balance"`
}

// GetAccountRequest 查詢帳戶
type GetAccountRequest struct {
	ID string `json:"id"`
}

// Account 帳戶餘額
type Account struct {
	ID      string `json:"id"`
	Balance int64  `json:"balance"`
}

// AccountList 帳戶列表，依 ID 排序
type AccountList struct {
	Accounts []Account `json:"accounts"`
}

// DepositRequest 存款
type DepositRequest struct {
	AccountID string `json:"accountId"`
	Amount    int64  `json:"amount"`
}

// WithdrawRequest 提款
type WithdrawRequest struct {
	AccountID string `json:"accountId"`
	Amount    int64  `json:"amount"`
}

// TransferRequest 轉帳
type TransferRequest struct {
	FromAccountID string `json:"fromAccountId"`
	ToAccountID   string `json:"toAccountId"`
	Amount        int64  `json:"amount"`
}

// Transaction 已提交的交易
type Transaction struct {
	Sequence      uint64 `json:"sequence"`
	ID            string `json:"id"`
	Type          string `json:"transactionType"`
	FromAccountID string `json:"fromAccountId,omitempty"`
	ToAccountID   string `json:"toAccountId,omitempty"`
	Amount        int64  `json:"amount"`
	RefID         string `json:"refId"`
	CreatedAt     int64  `json:"createdAt"`
}

// TransactionList 交易列表，依序號排序
type TransactionList struct {
	Transactions []Transaction `json:"transactions"`
}
