package domain

import "errors"

var (
	// ErrInvalidAmount 金額必須 >= 1
	ErrInvalidAmount = errors.New("amount must be at least 1")

	// ErrInsufficientBalance 餘額不足
	ErrInsufficientBalance = errors.New("account balance cannot be less than zero")

	// ErrBalanceOverflow 入帳後餘額會超過 MaxBalance
	ErrBalanceOverflow = errors.New("account balance cannot be greater than 2147483647")

	// ErrSameAccount 轉帳的來源與目標帳戶相同
	ErrSameAccount = errors.New("participants of a transfer must be different")

	// ErrAccountNotFound 找不到帳戶
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountAlreadyExists 帳戶已存在 (identity conflict)
	ErrAccountAlreadyExists = errors.New("account already exists")

	// ErrInvalidAccountID 帳戶 ID 為空或超過 MaxAccountIDLength
	ErrInvalidAccountID = errors.New("invalid account id")

	// ErrInvalidBalance 初始餘額不在 [0, MaxBalance]
	ErrInvalidBalance = errors.New("invalid initial balance")

	// ErrDuplicateTransaction 交易序號重複，代表序號產生器出現缺陷
	ErrDuplicateTransaction = errors.New("duplicate transaction id")
)
