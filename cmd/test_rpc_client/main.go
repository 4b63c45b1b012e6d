package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"

	grpcpkg "github.com/JoeShih716/go-money-transfer/pkg/grpc"
	"github.com/JoeShih716/go-money-transfer/rpc/ledgerrpc"
)

const (
	DefaultWorkers   = 20
	DefaultPerWorker = 1000
	InitialBalance   = 100000
)

func main() {
	target := flag.String("target", "localhost:50051", "ledger gRPC address")
	mode := flag.String("mode", "demo", "demo | load")
	workers := flag.Int("workers", DefaultWorkers, "load mode: concurrent workers")
	perWorker := flag.Int("n", DefaultPerWorker, "load mode: transfers per worker")
	flag.Parse()

	pool := grpcpkg.NewPool(grpcpkg.WithJSONCodec(), grpcpkg.WithInterceptor(slowCallLogger(500*time.Millisecond)))
	defer pool.Close()

	conn, err := pool.GetConnection(*target)
	if err != nil {
		log.Fatalf("did not connect: %v", err)
	}
	c := ledgerrpc.NewLedgerServiceClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	switch *mode {
	case "demo":
		err = runDemo(ctx, c)
	case "load":
		err = runLoad(ctx, c, *workers, *perWorker)
	default:
		log.Fatalf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatalf("%s failed: %v", *mode, err)
	}
}

// runDemo acc_1(10), acc_2(20) -> 存 1 -> 提 2 -> 轉 3，預期 acc_1=8, acc_2=21
// 帳戶需為新帳戶 (server 未設定 seed 或剛啟動)。
func runDemo(ctx context.Context, c *ledgerrpc.LedgerServiceClient) error {
	for _, req := range []*ledgerrpc.RegisterAccountRequest{{ID: "acc_1", Balance: 10}, {ID: "acc_2", Balance: 20}} {
		if _, err := c.RegisterAccount(ctx, req); err != nil {
			log.Printf("register %s: %v", req.ID, err)
		}
	}
	steps := []func() (*ledgerrpc.Transaction, error){
		func() (*ledgerrpc.Transaction, error) {
			return c.Deposit(ctx, &ledgerrpc.DepositRequest{AccountID: "acc_1", Amount: 1})
		},
		func() (*ledgerrpc.Transaction, error) {
			return c.Withdraw(ctx, &ledgerrpc.WithdrawRequest{AccountID: "acc_2", Amount: 2})
		},
		func() (*ledgerrpc.Transaction, error) {
			return c.Transfer(ctx, &ledgerrpc.TransferRequest{FromAccountID: "acc_1", ToAccountID: "acc_2", Amount: 3})
		},
	}
	for _, step := range steps {
		tran, err := step()
		if err != nil {
			return err
		}
		fmt.Printf("%s %s from=%q to=%q amount=%d\n", tran.ID, tran.Type, tran.FromAccountID, tran.ToAccountID, tran.Amount)
	}

	list, err := c.ListAccounts(ctx)
	if err != nil {
		return err
	}
	for _, acc := range list.Accounts {
		fmt.Printf("%s: %d\n", acc.ID, acc.Balance)
	}
	return nil
}

// runLoad 兩個新帳戶之間來回轉帳 1，結束後兩邊餘額應回到初始值
func runLoad(ctx context.Context, c *ledgerrpc.LedgerServiceClient, workers, perWorker int) error {
	a := "ld_" + uuid.NewString()[:8]
	b := "ld_" + uuid.NewString()[:8]
	for _, id := range []string{a, b} {
		if _, err := c.RegisterAccount(ctx, &ledgerrpc.RegisterAccountRequest{ID: id, Balance: InitialBalance}); err != nil {
			return fmt.Errorf("register %s: %w", id, err)
		}
	}

	var failed atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)
	startTime := time.Now()
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				from, to := a, b
				if i%2 == 1 {
					from, to = b, a
				}
				if _, err := c.Transfer(ctx, &ledgerrpc.TransferRequest{FromAccountID: from, ToAccountID: to, Amount: 1}); err != nil {
					if failed.Add(1) == 1 {
						log.Printf("transfer failed: %v", err)
					}
				}
			}
		}()
	}
	wg.Wait()

	total := workers * perWorker
	elapsed := time.Since(startTime)
	fmt.Printf("Completed %d transfers in %v (%d failed)\n", total, elapsed, failed.Load())
	fmt.Printf("TPS: %.2f\n", float64(total)/elapsed.Seconds())

	for _, id := range []string{a, b} {
		acc, err := c.GetAccount(ctx, &ledgerrpc.GetAccountRequest{ID: id})
		if err != nil {
			return err
		}
		if acc.Balance != InitialBalance {
			return fmt.Errorf("%s balance %d, want %d", id, acc.Balance, InitialBalance)
		}
	}

	trans, err := c.ListTransactions(ctx)
	if err != nil {
		return err
	}
	var committed int
	for _, t := range trans.Transactions {
		if t.FromAccountID == a || t.FromAccountID == b {
			committed++
		}
	}
	if int64(committed) != int64(total)-failed.Load() {
		return fmt.Errorf("journal has %d transfers, want %d", committed, int64(total)-failed.Load())
	}
	fmt.Printf("Balances conserved, %d transfers journaled\n", committed)
	return nil
}

// slowCallLogger 記錄超過 threshold 的呼叫
func slowCallLogger(threshold time.Duration) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		start := time.Now()
		err := invoker(ctx, method, req, reply, cc, opts...)
		if d := time.Since(start); d > threshold {
			log.Printf("slow call %s: %v", method, d)
		}
		return err
	}
}
