package financev1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "finance.v1.DashboardService"

const (
	DashboardService_GetDashboard_FullMethodName   = "/finance.v1.DashboardService/GetDashboard"
	DashboardService_MutateEntity_FullMethodName   = "/finance.v1.DashboardService/MutateEntity"
	DashboardService_AdjustGold_FullMethodName     = "/finance.v1.DashboardService/AdjustGold"
	DashboardService_SaveSnapshot_FullMethodName   = "/finance.v1.DashboardService/SaveSnapshot"
	DashboardService_DeleteSnapshot_FullMethodName = "/finance.v1.DashboardService/DeleteSnapshot"
	DashboardService_ToggleCurrency_FullMethodName = "/finance.v1.DashboardService/ToggleCurrency"
	DashboardService_ExportBackup_FullMethodName   = "/finance.v1.DashboardService/ExportBackup"
	DashboardService_ImportBackup_FullMethodName   = "/finance.v1.DashboardService/ImportBackup"
)

// DashboardServiceServer is the server API for the finance dashboard service
type DashboardServiceServer interface {
	GetDashboard(context.Context, *GetDashboardRequest) (*GetDashboardResponse, error)
	MutateEntity(context.Context, *MutateEntityRequest) (*MutateEntityResponse, error)
	AdjustGold(context.Context, *AdjustGoldRequest) (*AdjustGoldResponse, error)
	SaveSnapshot(context.Context, *SaveSnapshotRequest) (*SaveSnapshotResponse, error)
	DeleteSnapshot(context.Context, *DeleteSnapshotRequest) (*DeleteSnapshotResponse, error)
	ToggleCurrency(context.Context, *ToggleCurrencyRequest) (*ToggleCurrencyResponse, error)
	ExportBackup(context.Context, *ExportBackupRequest) (*ExportBackupResponse, error)
	ImportBackup(context.Context, *ImportBackupRequest) (*ImportBackupResponse, error)
}

// UnimplementedDashboardServiceServer can be embedded to have forward compatible implementations
type UnimplementedDashboardServiceServer struct{}

func (UnimplementedDashboardServiceServer) GetDashboard(context.Context, *GetDashboardRequest) (*GetDashboardResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetDashboard not implemented")
}
func (UnimplementedDashboardServiceServer) MutateEntity(context.Context, *MutateEntityRequest) (*MutateEntityResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method MutateEntity not implemented")
}
func (UnimplementedDashboardServiceServer) AdjustGold(context.Context, *AdjustGoldRequest) (*AdjustGoldResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AdjustGold not implemented")
}
func (UnimplementedDashboardServiceServer) SaveSnapshot(context.Context, *SaveSnapshotRequest) (*SaveSnapshotResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SaveSnapshot not implemented")
}
func (UnimplementedDashboardServiceServer) DeleteSnapshot(context.Context, *DeleteSnapshotRequest) (*DeleteSnapshotResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DeleteSnapshot not implemented")
}
func (UnimplementedDashboardServiceServer) ToggleCurrency(context.Context, *ToggleCurrencyRequest) (*ToggleCurrencyResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ToggleCurrency not implemented")
}
func (UnimplementedDashboardServiceServer) ExportBackup(context.Context, *ExportBackupRequest) (*ExportBackupResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ExportBackup not implemented")
}
func (UnimplementedDashboardServiceServer) ImportBackup(context.Context, *ImportBackupRequest) (*ImportBackupResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ImportBackup not implemented")
}

// RegisterDashboardServiceServer registers srv on s
func RegisterDashboardServiceServer(s grpc.ServiceRegistrar, srv DashboardServiceServer) {
	s.RegisterService(&DashboardService_ServiceDesc, srv)
}

// unaryHandler adapts a typed method to the grpc.MethodDesc handler signature
func unaryHandler[Req any, Resp any](fullMethod string, call func(DashboardServiceServer, context.Context, *Req) (*Resp, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(DashboardServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(DashboardServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// DashboardService_ServiceDesc is the grpc.ServiceDesc for the finance dashboard service
var DashboardService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DashboardServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetDashboard", Handler: unaryHandler(DashboardService_GetDashboard_FullMethodName, DashboardServiceServer.GetDashboard)},
		{MethodName: "MutateEntity", Handler: unaryHandler(DashboardService_MutateEntity_FullMethodName, DashboardServiceServer.MutateEntity)},
		{MethodName: "AdjustGold", Handler: unaryHandler(DashboardService_AdjustGold_FullMethodName, DashboardServiceServer.AdjustGold)},
		{MethodName: "SaveSnapshot", Handler: unaryHandler(DashboardService_SaveSnapshot_FullMethodName, DashboardServiceServer.SaveSnapshot)},
		{MethodName: "DeleteSnapshot", Handler: unaryHandler(DashboardService_DeleteSnapshot_FullMethodName, DashboardServiceServer.DeleteSnapshot)},
		{MethodName: "ToggleCurrency", Handler: unaryHandler(DashboardService_ToggleCurrency_FullMethodName, DashboardServiceServer.ToggleCurrency)},
		{MethodName: "ExportBackup", Handler: unaryHandler(DashboardService_ExportBackup_FullMethodName, DashboardServiceServer.ExportBackup)},
		{MethodName: "ImportBackup", Handler: unaryHandler(DashboardService_ImportBackup_FullMethodName, DashboardServiceServer.ImportBackup)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "finance/v1/finance.proto",
}

// DashboardServiceClient is the client API for the finance dashboard service
type DashboardServiceClient interface {
	GetDashboard(ctx context.Context, in *GetDashboardRequest, opts ...grpc.CallOption) (*GetDashboardResponse, error)
	MutateEntity(ctx context.Context, in *MutateEntityRequest, opts ...grpc.CallOption) (*MutateEntityResponse, error)
	AdjustGold(ctx context.Context, in *AdjustGoldRequest, opts ...grpc.CallOption) (*AdjustGoldResponse, error)
	SaveSnapshot(ctx context.Context, in *SaveSnapshotRequest, opts ...grpc.CallOption) (*SaveSnapshotResponse, error)
	DeleteSnapshot(ctx context.Context, in *DeleteSnapshotRequest, opts ...grpc.CallOption) (*DeleteSnapshotResponse, error)
	ToggleCurrency(ctx context.Context, in *ToggleCurrencyRequest, opts ...grpc.CallOption) (*ToggleCurrencyResponse, error)
	ExportBackup(ctx context.Context, in *ExportBackupRequest, opts ...grpc.CallOption) (*ExportBackupResponse, error)
	ImportBackup(ctx context.Context, in *ImportBackupRequest, opts ...grpc.CallOption) (*ImportBackupResponse, error)
}

type dashboardServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewDashboardServiceClient creates a client that always speaks the JSON codec
func NewDashboardServiceClient(cc grpc.ClientConnInterface) DashboardServiceClient {
	return &dashboardServiceClient{cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *dashboardServiceClient) GetDashboard(ctx context.Context, in *GetDashboardRequest, opts ...grpc.CallOption) (*GetDashboardResponse, error) {
	return invoke[GetDashboardResponse](ctx, c.cc, DashboardService_GetDashboard_FullMethodName, in, opts)
}

func (c *dashboardServiceClient) MutateEntity(ctx context.Context, in *MutateEntityRequest, opts ...grpc.CallOption) (*MutateEntityResponse, error) {
	return invoke[MutateEntityResponse](ctx, c.cc, DashboardService_MutateEntity_FullMethodName, in, opts)
}

func (c *dashboardServiceClient) AdjustGold(ctx context.Context, in *AdjustGoldRequest, opts ...grpc.CallOption) (*AdjustGoldResponse, error) {
	return invoke[AdjustGoldResponse](ctx, c.cc, DashboardService_AdjustGold_FullMethodName, in, opts)
}

func (c *dashboardServiceClient) SaveSnapshot(ctx context.Context, in *SaveSnapshotRequest, opts ...grpc.CallOption) (*SaveSnapshotResponse, error) {
	return invoke[SaveSnapshotResponse](ctx, c.cc, DashboardService_SaveSnapshot_FullMethodName, in, opts)
}

func (c *dashboardServiceClient) DeleteSnapshot(ctx context.Context, in *DeleteSnapshotRequest, opts ...grpc.CallOption) (*DeleteSnapshotResponse, error) {
	return invoke[DeleteSnapshotResponse](ctx, c.cc, DashboardService_DeleteSnapshot_FullMethodName, in, opts)
}

func (c *dashboardServiceClient) ToggleCurrency(ctx context.Context, in *ToggleCurrencyRequest, opts ...grpc.CallOption) (*ToggleCurrencyResponse, error) {
	return invoke[ToggleCurrencyResponse](ctx, c.cc, DashboardService_ToggleCurrency_FullMethodName, in, opts)
}

func (c *dashboardServiceClient) ExportBackup(ctx context.Context, in *ExportBackupRequest, opts ...grpc.CallOption) (*ExportBackupResponse, error) {
	return invoke[ExportBackupResponse](ctx, c.cc, DashboardService_ExportBackup_FullMethodName, in, opts)
}

func (c *dashboardServiceClient) ImportBackup(ctx context.Context, in *ImportBackupRequest, opts ...grpc.CallOption) (*ImportBackupResponse, error) {
	return invoke[ImportBackupResponse](ctx, c.cc, DashboardService_ImportBackup_FullMethodName, in, opts)
}
