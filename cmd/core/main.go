package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_adapter "github.com/JoeShih716/go-money-transfer/internal/app/core/adapter/in/grpc"
	http_adapter "github.com/JoeShih716/go-money-transfer/internal/app/core/adapter/in/http"
	memory_adapter "github.com/JoeShih716/go-money-transfer/internal/app/core/adapter/out/memory"
	redis_adapter "github.com/JoeShih716/go-money-transfer/internal/app/core/adapter/out/redis"
	"github.com/JoeShih716/go-money-transfer/internal/app/core/domain"
	"github.com/JoeShih716/go-money-transfer/internal/app/core/usecase"
	"github.com/JoeShih716/go-money-transfer/internal/config"
	"github.com/JoeShih716/go-money-transfer/pkg/redis"
	"github.com/JoeShih716/go-money-transfer/pkg/sequence"
	"github.com/JoeShih716/go-money-transfer/rpc/ledgerrpc"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	flag.Parse()

	// 1. 載入設定
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. 初始化帳本 (Driven side)
	accounts := domain.NewAccountLedger()
	journal := memory_adapter.NewJournal()
	sequencer := sequence.NewSequencer(0)

	var opts []usecase.Option
	if cfg.Redis.Enabled() {
		rdb, err := redis.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			// 事件發佈是選用功能，連不上 Redis 不影響帳務
			log.Printf("[Publisher] disabled: %v", err)
		} else {
			defer rdb.Close()
			opts = append(opts, usecase.WithPublisher(redis_adapter.NewStreamPublisher(rdb, cfg.Redis.Stream)))
			log.Printf("[Publisher] publishing transactions to %s/%s", cfg.Redis.Addr, cfg.Redis.Stream)
		}
	}

	// 3. 初始化 UseCase
	core := usecase.NewLedgerService(accounts, journal, sequencer, opts...)
	for _, seed := range cfg.Seed {
		if _, err := core.RegisterAccount(context.Background(), seed.ID, seed.Balance); err != nil {
			log.Fatalf("Failed to register seed account: %v", err)
		}
	}
	log.Printf("Registered %d seed accounts", len(cfg.Seed))

	// 4. gRPC Server
	lis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}
	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(grpc_adapter.UnaryLogger()))
	ledgerrpc.RegisterLedgerServiceServer(grpcServer, grpc_adapter.NewGrpcServer(core))
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)

	go func() {
		log.Printf("Starting gRPC server on %s", cfg.Server.GRPCAddr)
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatalf("failed to serve grpc: %v", err)
		}
	}()

	// 5. HTTP Server
	httpServer := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: http_adapter.NewRouter(http_adapter.NewHandler(core)),
	}
	go func() {
		log.Printf("Starting HTTP server on %s", cfg.Server.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to serve http: %v", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	healthServer.Shutdown()
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("HTTP server forced to shutdown: %v", err)
	}
	grpcServer.GracefulStop()

	log.Printf("Server exited (last transaction sequence %d)", core.LastTransactionSequence())
}
