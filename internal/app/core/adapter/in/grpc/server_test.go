package grpc

import (
	"context"
	"net"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/JoeShih716/go-money-transfer/internal/app/core/adapter/out/memory"
	"github.com/JoeShih716/go-money-transfer/internal/app/core/domain"
	"github.com/JoeShih716/go-money-transfer/internal/app/core/usecase"
	grpcpkg "github.com/JoeShih716/go-money-transfer/pkg/grpc"
	"github.com/JoeShih716/go-money-transfer/pkg/sequence"
	"github.com/JoeShih716/go-money-transfer/rpc/ledgerrpc"
)

// startServer 以 bufconn 啟動 gRPC server，回傳 client 連線
func startServer(t *testing.T) *grpc.ClientConn {
	t.Helper()
	lis := bufconn.Listen(1 << 20)

	core := usecase.NewLedgerService(domain.NewAccountLedger(), memory.NewJournal(), sequence.NewSequencer(0))
	s := grpc.NewServer(grpc.UnaryInterceptor(UnaryLogger()))
	ledgerrpc.RegisterLedgerServiceServer(s, NewGrpcServer(core))
	healthpb.RegisterHealthServer(s, health.NewServer())
	go func() {
		_ = s.Serve(lis)
	}()
	t.Cleanup(s.Stop)

	pool := grpcpkg.NewPool()
	t.Cleanup(func() { _ = pool.Close() })
	conn, err := pool.GetConnection("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
	)
	if err != nil {
		t.Fatal(err)
	}
	return conn
}

func TestLedgerServiceOverGRPC(t *testing.T) {
	ctx := context.Background()
	client := ledgerrpc.NewLedgerServiceClient(startServer(t))

	for _, req := range []*ledgerrpc.RegisterAccountRequest{{ID: "acc_1", Balance: 10}, {ID: "acc_2", Balance: 20}} {
		if _, err := client.RegisterAccount(ctx, req); err != nil {
			t.Fatalf("RegisterAccount(%s) err=%v", req.ID, err)
		}
	}

	dep, err := client.Deposit(ctx, &ledgerrpc.DepositRequest{AccountID: "acc_1", Amount: 1})
	if err != nil {
		t.Fatal(err)
	}
	if dep.Type != "DEPOSIT" || dep.ToAccountID != "acc_1" || dep.ID != "trx_1" || dep.RefID == "" {
		t.Fatalf("deposit=%+v", dep)
	}
	if _, err := client.Withdraw(ctx, &ledgerrpc.WithdrawRequest{AccountID: "acc_2", Amount: 2}); err != nil {
		t.Fatal(err)
	}
	tr, err := client.Transfer(ctx, &ledgerrpc.TransferRequest{FromAccountID: "acc_1", ToAccountID: "acc_2", Amount: 3})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Type != "TRANSFER" || tr.Amount != 3 {
		t.Fatalf("transfer=%+v", tr)
	}

	accounts, err := client.ListAccounts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := []ledgerrpc.Account{{ID: "acc_1", Balance: 8}, {ID: "acc_2", Balance: 21}}
	if len(accounts.Accounts) != 2 || accounts.Accounts[0] != want[0] || accounts.Accounts[1] != want[1] {
		t.Fatalf("accounts=%+v want %+v", accounts.Accounts, want)
	}

	trans, err := client.ListTransactions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(trans.Transactions) != 3 {
		t.Fatalf("transactions=%d want 3", len(trans.Transactions))
	}

	acc, err := client.GetAccount(ctx, &ledgerrpc.GetAccountRequest{ID: "acc_2"})
	if err != nil {
		t.Fatal(err)
	}
	if acc.Balance != 21 {
		t.Fatalf("acc_2 balance=%d want 21", acc.Balance)
	}
}

func TestStatusCodes(t *testing.T) {
	ctx := context.Background()
	client := ledgerrpc.NewLedgerServiceClient(startServer(t))
	if _, err := client.RegisterAccount(ctx, &ledgerrpc.RegisterAccountRequest{ID: "acc_1", Balance: 10}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		call func() error
		want codes.Code
	}{
		{
			name: "unknown account",
			call: func() error {
				_, err := client.GetAccount(ctx, &ledgerrpc.GetAccountRequest{ID: "nope"})
				return err
			},
			want: codes.NotFound,
		},
		{
			name: "duplicate account",
			call: func() error {
				_, err := client.RegisterAccount(ctx, &ledgerrpc.RegisterAccountRequest{ID: "acc_1", Balance: 1})
				return err
			},
			want: codes.AlreadyExists,
		},
		{
			name: "insufficient balance",
			call: func() error {
				_, err := client.Withdraw(ctx, &ledgerrpc.WithdrawRequest{AccountID: "acc_1", Amount: 11})
				return err
			},
			want: codes.FailedPrecondition,
		},
		{
			name: "invalid amount",
			call: func() error {
				_, err := client.Deposit(ctx, &ledgerrpc.DepositRequest{AccountID: "acc_1", Amount: 0})
				return err
			},
			want: codes.InvalidArgument,
		},
		{
			name: "same account",
			call: func() error {
				_, err := client.Transfer(ctx, &ledgerrpc.TransferRequest{FromAccountID: "acc_1", ToAccountID: "acc_1", Amount: 1})
				return err
			},
			want: codes.InvalidArgument,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := status.Code(tt.call()); got != tt.want {
				t.Fatalf("code=%s want %s", got, tt.want)
			}
		})
	}
}

func TestHealthService(t *testing.T) {
	conn := startServer(t)
	resp, err := healthpb.NewHealthClient(conn).Check(context.Background(), &healthpb.HealthCheckRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		t.Fatalf("status=%s", resp.GetStatus())
	}
}

func TestToStatusInternal(t *testing.T) {
	err := toStatus(domain.ErrDuplicateTransaction)
	if status.Code(err) != codes.Internal {
		t.Fatalf("code=%s want Internal", status.Code(err))
	}
}
