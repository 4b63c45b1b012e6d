package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/JoeShih716/go-money-transfer/internal/app/core/domain"
)

// LedgerService 是核心業務邏輯層
//
// 流程: 找帳戶 -> AccountLedger 在鎖內檢查並異動餘額 -> 解鎖後取序號、建立交易、寫入 Journal。
// 失敗的操作不會產生交易，也不會重試。
type LedgerService struct {
	ledger    AccountLedger
	journal   Journal
	sequencer Sequencer
	publisher EventPublisher
	now       func() time.Time
}

// Option LedgerService 選項
type Option func(*LedgerService)

// WithPublisher 設定交易事件發佈者
func WithPublisher(p EventPublisher) Option {
	return func(s *LedgerService) {
		s.publisher = p
	}
}

// WithClock 設定時間來源 (測試用)
func WithClock(now func() time.Time) Option {
	return func(s *LedgerService) {
		s.now = now
	}
}

// NewLedgerService 建立 LedgerService
//
// 參數:
//
//	ledger: 帳戶與餘額
//	journal: 交易紀錄
//	sequencer: 序號產生器，由呼叫端建立並持有
//	opts: 選項
//
// 回傳:
//
//	*LedgerService: 服務實例
func NewLedgerService(ledger AccountLedger, journal Journal, sequencer Sequencer, opts ...Option) *LedgerService {
	s := &LedgerService{
		ledger:    ledger,
		journal:   journal,
		sequencer: sequencer,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterAccount 註冊帳戶
func (s *LedgerService) RegisterAccount(ctx context.Context, id string, balance int64) (domain.AccountSnapshot, error) {
	account, err := s.ledger.Register(id, balance)
	if err != nil {
		return domain.AccountSnapshot{}, fmt.Errorf("register %q: %w", id, err)
	}
	log.Printf("[Ledger] account %s registered with balance %d", id, balance)
	return account.Snapshot(), nil
}

// GetAccount 取得帳戶
func (s *LedgerService) GetAccount(ctx context.Context, id string) (domain.AccountSnapshot, error) {
	account, err := s.find(id)
	if err != nil {
		return domain.AccountSnapshot{}, err
	}
	return account.Snapshot(), nil
}

// ListAccounts 所有帳戶，依 ID 排序
func (s *LedgerService) ListAccounts(ctx context.Context) []domain.AccountSnapshot {
	return s.ledger.Snapshot()
}

// Deposit 存款
//
// 參數:
//
//	ctx: 上下文 (用於事件發佈)
//	accountID: 入帳帳戶
//	amount: 金額
//
// 回傳:
//
//	domain.Transaction: 已提交的交易
//	error: ErrAccountNotFound / ErrInvalidAmount / ErrBalanceOverflow / ErrDuplicateTransaction
func (s *LedgerService) Deposit(ctx context.Context, accountID string, amount int64) (domain.Transaction, error) {
	account, err := s.find(accountID)
	if err != nil {
		return domain.Transaction{}, err
	}
	if err := s.ledger.Deposit(account, amount); err != nil {
		return domain.Transaction{}, err
	}
	return s.commit(ctx, domain.NewDepositTransaction(s.sequencer.Next(), accountID, amount, s.now().UnixNano()))
}

// Withdraw 提款
//
// 回傳:
//
//	domain.Transaction: 已提交的交易
//	error: ErrAccountNotFound / ErrInvalidAmount / ErrInsufficientBalance / ErrDuplicateTransaction
func (s *LedgerService) Withdraw(ctx context.Context, accountID string, amount int64) (domain.Transaction, error) {
	account, err := s.find(accountID)
	if err != nil {
		return domain.Transaction{}, err
	}
	if err := s.ledger.Withdraw(account, amount); err != nil {
		return domain.Transaction{}, err
	}
	return s.commit(ctx, domain.NewWithdrawTransaction(s.sequencer.Next(), accountID, amount, s.now().UnixNano()))
}

// Transfer 轉帳
//
// 回傳:
//
//	domain.Transaction: 已提交的交易
//	error: ErrAccountNotFound / ErrInvalidAmount / ErrSameAccount / ErrInsufficientBalance / ErrBalanceOverflow / ErrDuplicateTransaction
func (s *LedgerService) Transfer(ctx context.Context, fromID, toID string, amount int64) (domain.Transaction, error) {
	from, err := s.find(fromID)
	if err != nil {
		return domain.Transaction{}, err
	}
	to, err := s.find(toID)
	if err != nil {
		return domain.Transaction{}, err
	}
	if err := s.ledger.Transfer(from, to, amount); err != nil {
		return domain.Transaction{}, err
	}
	return s.commit(ctx, domain.NewTransferTransaction(s.sequencer.Next(), fromID, toID, amount, s.now().UnixNano()))
}

// ListTransactions 所有交易，依序號排序
func (s *LedgerService) ListTransactions(ctx context.Context) []domain.Transaction {
	return s.journal.All()
}

// LastTransactionSequence 最近一次發放的交易序號
func (s *LedgerService) LastTransactionSequence() uint64 {
	return s.sequencer.Current()
}

func (s *LedgerService) find(id string) (*domain.Account, error) {
	account, err := s.ledger.Find(id)
	if err != nil {
		return nil, fmt.Errorf("account %q: %w", id, err)
	}
	return account, nil
}

// commit 在餘額異動成功後寫入交易紀錄
// 寫入失敗代表序號重複 (內部錯誤)，餘額不會回滾。
func (s *LedgerService) commit(ctx context.Context, tran *domain.Transaction) (domain.Transaction, error) {
	if !s.journal.Record(tran) {
		log.Printf("[Ledger] journal rejected %s after balance mutation", tran.ID)
		return domain.Transaction{}, fmt.Errorf("%w: %s", domain.ErrDuplicateTransaction, tran.ID)
	}
	if s.publisher != nil {
		if err := s.publisher.PublishTransaction(ctx, *tran); err != nil {
			log.Printf("[Ledger] publish %s failed: %v", tran.ID, err)
		}
	}
	return *tran, nil
}
