package identityv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Leganyst/meeting-planner/internal/api"
)

const ServiceName = "identity.v1.IdentityService"

const (
	IdentityService_RegisterUser_FullMethodName   = "/identity.v1.IdentityService/RegisterUser"
	IdentityService_UpdateContacts_FullMethodName = "/identity.v1.IdentityService/UpdateContacts"
	IdentityService_SetBlocked_FullMethodName     = "/identity.v1.IdentityService/SetBlocked"
	IdentityService_GetProfile_FullMethodName     = "/identity.v1.IdentityService/GetProfile"
)

type IdentityServiceServer interface {
	RegisterUser(context.Context, *RegisterUserRequest) (*RegisterUserResponse, error)
	UpdateContacts(context.Context, *UpdateContactsRequest) (*UpdateContactsResponse, error)
	SetBlocked(context.Context, *SetBlockedRequest) (*SetBlockedResponse, error)
	GetProfile(context.Context, *GetProfileRequest) (*GetProfileResponse, error)
}

type UnimplementedIdentityServiceServer struct{}

func (UnimplementedIdentityServiceServer) RegisterUser(context.Context, *RegisterUserRequest) (*RegisterUserResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RegisterUser not implemented")
}
func (UnimplementedIdentityServiceServer) UpdateContacts(context.Context, *UpdateContactsRequest) (*UpdateContactsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateContacts not implemented")
}
func (UnimplementedIdentityServiceServer) SetBlocked(context.Context, *SetBlockedRequest) (*SetBlockedResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SetBlocked not implemented")
}
func (UnimplementedIdentityServiceServer) GetProfile(context.Context, *GetProfileRequest) (*GetProfileResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetProfile not implemented")
}

func RegisterIdentityServiceServer(s grpc.ServiceRegistrar, srv IdentityServiceServer) {
	s.RegisterService(&IdentityService_ServiceDesc, srv)
}

var IdentityService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*IdentityServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "RegisterUser", Handler: api.Unary(IdentityService_RegisterUser_FullMethodName, IdentityServiceServer.RegisterUser)},
		{MethodName: "UpdateContacts", Handler: api.Unary(IdentityService_UpdateContacts_FullMethodName, IdentityServiceServer.UpdateContacts)},
		{MethodName: "SetBlocked", Handler: api.Unary(IdentityService_SetBlocked_FullMethodName, IdentityServiceServer.SetBlocked)},
		{MethodName: "GetProfile", Handler: api.Unary(IdentityService_GetProfile_FullMethodName, IdentityServiceServer.GetProfile)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "identity/v1/identity.json",
}

type IdentityServiceClient interface {
	RegisterUser(ctx context.Context, in *RegisterUserRequest, opts ...grpc.CallOption) (*RegisterUserResponse, error)
	UpdateContacts(ctx context.Context, in *UpdateContactsRequest, opts ...grpc.CallOption) (*UpdateContactsResponse, error)
	SetBlocked(ctx context.Context, in *SetBlockedRequest, opts ...grpc.CallOption) (*SetBlockedResponse, error)
	GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*GetProfileResponse, error)
}

type identityServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewIdentityServiceClient(cc grpc.ClientConnInterface) IdentityServiceClient {
	return &identityServiceClient{cc}
}

func (c *identityServiceClient) RegisterUser(ctx context.Context, in *RegisterUserRequest, opts ...grpc.CallOption) (*RegisterUserResponse, error) {
	return api.Invoke[RegisterUserResponse](ctx, c.cc, IdentityService_RegisterUser_FullMethodName, in, opts...)
}

func (c *identityServiceClient) UpdateContacts(ctx context.Context, in *UpdateContactsRequest, opts ...grpc.CallOption) (*UpdateContactsResponse, error) {
	return api.Invoke[UpdateContactsResponse](ctx, c.cc, IdentityService_UpdateContacts_FullMethodName, in, opts...)
}

func (c *identityServiceClient) SetBlocked(ctx context.Context, in *SetBlockedRequest, opts ...grpc.CallOption) (*SetBlockedResponse, error) {
	return api.Invoke[SetBlockedResponse](ctx, c.cc, IdentityService_SetBlocked_FullMethodName, in, opts...)
}

func (c *identityServiceClient) GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*GetProfileResponse, error) {
	return api.Invoke[GetProfileResponse](ctx, c.cc, IdentityService_GetProfile_FullMethodName, in, opts...)
}
