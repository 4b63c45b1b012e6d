package grpc

import (
	"context"
	"errors"
	"log"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/JoeShih716/go-money-transfer/internal/app/core/domain"
	"github.com/JoeShih716/go-money-transfer/internal/app/core/usecase"
	"github.com/JoeShih716/go-money-transfer/rpc/ledgerrpc"
)

// GrpcServer 將 ledgerrpc 請求轉給 LedgerService
type GrpcServer struct {
	core *usecase.LedgerService
}

func NewGrpcServer(core *usecase.LedgerService) *GrpcServer {
	return &GrpcServer{
		core: core,
	}
}

func (s *GrpcServer) RegisterAccount(ctx context.Context, req *ledgerrpc.RegisterAccountRequest) (*ledgerrpc.Account, error) {
	acc, err := s.core.RegisterAccount(ctx, req.ID, req.Balance)
	if err != nil {
		return nil, toStatus(err)
	}
	return toRPCAccount(acc), nil
}

func (s *GrpcServer) GetAccount(ctx context.Context, req *ledgerrpc.GetAccountRequest) (*ledgerrpc.Account, error) {
	acc, err := s.core.GetAccount(ctx, req.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	return toRPCAccount(acc), nil
}

func (s *GrpcServer) ListAccounts(ctx context.Context, _ *emptypb.Empty) (*ledgerrpc.AccountList, error) {
	accounts := s.core.ListAccounts(ctx)
	out := &ledgerrpc.AccountList{Accounts: make([]ledgerrpc.Account, 0, len(accounts))}
	for _, acc := range accounts {
		out.Accounts = append(out.Accounts, *toRPCAccount(acc))
	}
	return out, nil
}

func (s *GrpcServer) Deposit(ctx context.Context, req *ledgerrpc.DepositRequest) (*ledgerrpc.Transaction, error) {
	tran, err := s.core.Deposit(ctx, req.AccountID, req.Amount)
	if err != nil {
		return nil, toStatus(err)
	}
	return toRPCTransaction(tran), nil
}

func (s *GrpcServer) Withdraw(ctx context.Context, req *ledgerrpc.WithdrawRequest) (*ledgerrpc.Transaction, error) {
	tran, err := s.core.Withdraw(ctx, req.AccountID, req.Amount)
	if err != nil {
		return nil, toStatus(err)
	}
	return toRPCTransaction(tran), nil
}

func (s *GrpcServer) Transfer(ctx context.Context, req *ledgerrpc.TransferRequest) (*ledgerrpc.Transaction, error) {
	tran, err := s.core.Transfer(ctx, req.FromAccountID, req.ToAccountID, req.Amount)
	if err != nil {
		return nil, toStatus(err)
	}
	return toRPCTransaction(tran), nil
}

func (s *GrpcServer) ListTransactions(ctx context.Context, _ *emptypb.Empty) (*ledgerrpc.TransactionList, error) {
	trans := s.core.ListTransactions(ctx)
	out := &ledgerrpc.TransactionList{Transactions: make([]ledgerrpc.Transaction, 0, len(trans))}
	for _, tran := range trans {
		out.Transactions = append(out.Transactions, *toRPCTransaction(tran))
	}
	return out, nil
}

// UnaryLogger 記錄每個請求的方法、耗時與狀態碼
func UnaryLogger() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		if err != nil {
			log.Printf("[gRPC] %s %s (%v): %v", info.FullMethod, status.Code(err), time.Since(start), err)
		}
		return resp, err
	}
}

// toStatus 將 domain 錯誤轉成 gRPC status
func toStatus(err error) error {
	var code codes.Code
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		code = codes.NotFound
	case errors.Is(err, domain.ErrAccountAlreadyExists):
		code = codes.AlreadyExists
	case errors.Is(err, domain.ErrInsufficientBalance), errors.Is(err, domain.ErrBalanceOverflow):
		code = codes.FailedPrecondition
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrSameAccount),
		errors.Is(err, domain.ErrInvalidAccountID),
		errors.Is(err, domain.ErrInvalidBalance):
		code = codes.InvalidArgument
	default:
		code = codes.Internal
	}
	return status.Error(code, err.Error())
}

func toRPCAccount(acc domain.AccountSnapshot) *ledgerrpc.Account {
	return &ledgerrpc.Account{ID: acc.ID, Balance: acc.Balance}
}

func toRPCTransaction(tran domain.Transaction) *ledgerrpc.Transaction {
	return &ledgerrpc.Transaction{
		Sequence:      tran.Sequence,
		ID:            tran.ID,
		Type:          tran.Type.String(),
		FromAccountID: tran.FromAccountID,
		ToAccountID:   tran.ToAccountID,
		Amount:        tran.Amount,
		RefID:         tran.RefID.String(),
		CreatedAt:     tran.CreatedAt,
	}
}

var _ ledgerrpc.LedgerServiceServer = (*GrpcServer)(nil)
