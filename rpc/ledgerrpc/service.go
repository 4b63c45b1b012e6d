// Package ledgerrpc 定義 ledger.LedgerService 的 gRPC 介面。
//
// 訊息以 JSON 編碼 (content-subtype "json")，不需要 protoc 產生程式碼；
// 列表查詢的請求使用 emptypb.Empty。
package ledgerrpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"

	grpcpkg "github.com/JoeShih716/go-money-transfer/pkg/grpc"
)

// ServiceName 完整服務名稱
const ServiceName = "ledger.LedgerService"

const (
	MethodRegisterAccount  = "/" + ServiceName + "/RegisterAccount"
	MethodGetAccount       = "/" + ServiceName + "/GetAccount"
	MethodListAccounts     = "/" + ServiceName + "/ListAccounts"
	MethodDeposit          = "/" + ServiceName + "/Deposit"
	MethodWithdraw         = "/" + ServiceName + "/Withdraw"
	MethodTransfer         = "/" + ServiceName + "/Transfer"
	MethodListTransactions = "/" + ServiceName + "/ListTransactions"
)

// LedgerServiceServer 服務端需實作的介面
type LedgerServiceServer interface {
	RegisterAccount(context.Context, *RegisterAccountRequest) (*Account, error)
	GetAccount(context.Context, *GetAccountRequest) (*Account, error)
	ListAccounts(context.Context, *emptypb.Empty) (*AccountList, error)
	Deposit(context.Context, *DepositRequest) (*Transaction, error)
	Withdraw(context.Context, *WithdrawRequest) (*Transaction, error)
	Transfer(context.Context, *TransferRequest) (*Transaction, error)
	ListTransactions(context.Context, *emptypb.Empty) (*TransactionList, error)
}

// LedgerService_ServiceDesc grpc.ServiceDesc
var LedgerService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LedgerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("RegisterAccount", MethodRegisterAccount, LedgerServiceServer.RegisterAccount),
		unary("GetAccount", MethodGetAccount, LedgerServiceServer.GetAccount),
		unary("ListAccounts", MethodListAccounts, LedgerServiceServer.ListAccounts),
		unary("Deposit", MethodDeposit, LedgerServiceServer.Deposit),
		unary("Withdraw", MethodWithdraw, LedgerServiceServer.Withdraw),
		unary("Transfer", MethodTransfer, LedgerServiceServer.Transfer),
		unary("ListTransactions", MethodListTransactions, LedgerServiceServer.ListTransactions),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ledgerrpc",
}

// RegisterLedgerServiceServer 註冊服務
func RegisterLedgerServiceServer(s grpc.ServiceRegistrar, srv LedgerServiceServer) {
	s.RegisterService(&LedgerService_ServiceDesc, srv)
}

// unary 產生 MethodDesc，行為與 protoc-gen-go-grpc 產生的 handler 相同
func unary[Req any, Resp any](name, fullMethod string, call func(LedgerServiceServer, context.Context, *Req) (Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(LedgerServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: fullMethod,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(LedgerServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// LedgerServiceClient 客戶端，每次呼叫都帶上 JSON content-subtype
type LedgerServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewLedgerServiceClient 建立客戶端
func NewLedgerServiceClient(cc grpc.ClientConnInterface) *LedgerServiceClient {
	return &LedgerServiceClient{cc: cc}
}

func (c *LedgerServiceClient) RegisterAccount(ctx context.Context, in *RegisterAccountRequest, opts ...grpc.CallOption) (*Account, error) {
	return invoke[Account](ctx, c.cc, MethodRegisterAccount, in, opts)
}

func (c *LedgerServiceClient) GetAccount(ctx context.Context, in *GetAccountRequest, opts ...grpc.CallOption) (*Account, error) {
	return invoke[Account](ctx, c.cc, MethodGetAccount, in, opts)
}

func (c *LedgerServiceClient) ListAccounts(ctx context.Context, opts ...grpc.CallOption) (*AccountList, error) {
	return invoke[AccountList](ctx, c.cc, MethodListAccounts, &emptypb.Empty{}, opts)
}

func (c *LedgerServiceClient) Deposit(ctx context.Context, in *DepositRequest, opts ...grpc.CallOption) (*Transaction, error) {
	return invoke[Transaction](ctx, c.cc, MethodDeposit, in, opts)
}

func (c *LedgerServiceClient) Withdraw(ctx context.Context, in *WithdrawRequest, opts ...grpc.CallOption) (*Transaction, error) {
	return invoke[Transaction](ctx, c.cc, MethodWithdraw, in, opts)
}

func (c *LedgerServiceClient) Transfer(ctx context.Context, in *TransferRequest, opts ...grpc.CallOption) (*Transaction, error) {
	return invoke[Transaction](ctx, c.cc, MethodTransfer, in, opts)
}

func (c *LedgerServiceClient) ListTransactions(ctx context.Context, opts ...grpc.CallOption) (*TransactionList, error) {
	return invoke[TransactionList](ctx, c.cc, MethodListTransactions, &emptypb.Empty{}, opts)
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	callOpts := append([]grpc.CallOption{grpcpkg.JSONCallOption()}, opts...)
	if err := cc.Invoke(ctx, method, in, out, callOpts...); err != nil {
		return nil, err
	}
	return out, nil
}
