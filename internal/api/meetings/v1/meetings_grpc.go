package meetingsv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Leganyst/meeting-planner/internal/api"
)

const ServiceName = "meetings.v1.MeetingService"

const (
	MeetingService_CreateMeeting_FullMethodName     = "/meetings.v1.MeetingService/CreateMeeting"
	MeetingService_RescheduleMeeting_FullMethodName = "/meetings.v1.MeetingService/RescheduleMeeting"
	MeetingService_CancelMeeting_FullMethodName     = "/meetings.v1.MeetingService/CancelMeeting"
	MeetingService_CompleteMeeting_FullMethodName   = "/meetings.v1.MeetingService/CompleteMeeting"
	MeetingService_SetStatus_FullMethodName         = "/meetings.v1.MeetingService/SetStatus"
	MeetingService_DeleteMeeting_FullMethodName     = "/meetings.v1.MeetingService/DeleteMeeting"
	MeetingService_GetMeeting_FullMethodName        = "/meetings.v1.MeetingService/GetMeeting"
	MeetingService_ListMeetings_FullMethodName      = "/meetings.v1.MeetingService/ListMeetings"
	MeetingService_DayView_FullMethodName           = "/meetings.v1.MeetingService/DayView"
	MeetingService_ComputeSlot_FullMethodName       = "/meetings.v1.MeetingService/ComputeSlot"
	MeetingService_FreeSlots_FullMethodName         = "/meetings.v1.MeetingService/FreeSlots"
	MeetingService_Watch_FullMethodName             = "/meetings.v1.MeetingService/Watch"
)

type MeetingServiceServer interface {
	CreateMeeting(context.Context, *CreateMeetingRequest) (*CreateMeetingResponse, error)
	RescheduleMeeting(context.Context, *RescheduleMeetingRequest) (*RescheduleMeetingResponse, error)
	CancelMeeting(context.Context, *CancelMeetingRequest) (*CancelMeetingResponse, error)
	CompleteMeeting(context.Context, *CompleteMeetingRequest) (*CompleteMeetingResponse, error)
	SetStatus(context.Context, *SetStatusRequest) (*SetStatusResponse, error)
	DeleteMeeting(context.Context, *DeleteMeetingRequest) (*DeleteMeetingResponse, error)
	GetMeeting(context.Context, *GetMeetingRequest) (*GetMeetingResponse, error)
	ListMeetings(context.Context, *ListMeetingsRequest) (*ListMeetingsResponse, error)
	DayView(context.Context, *DayViewRequest) (*DayViewResponse, error)
	ComputeSlot(context.Context, *ComputeSlotRequest) (*ComputeSlotResponse, error)
	FreeSlots(context.Context, *FreeSlotsRequest) (*FreeSlotsResponse, error)
	Watch(*WatchRequest, grpc.ServerStreamingServer[ChangeEvent]) error
}

// UnimplementedMeetingServiceServer встраивается в реализацию сервера.
type UnimplementedMeetingServiceServer struct{}

func (UnimplementedMeetingServiceServer) CreateMeeting(context.Context, *CreateMeetingRequest) (*CreateMeetingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateMeeting not implemented")
}
func (UnimplementedMeetingServiceServer) RescheduleMeeting(context.Context, *RescheduleMeetingRequest) (*RescheduleMeetingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RescheduleMeeting not implemented")
}
func (UnimplementedMeetingServiceServer) CancelMeeting(context.Context, *CancelMeetingRequest) (*CancelMeetingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CancelMeeting not implemented")
}
func (UnimplementedMeetingServiceServer) CompleteMeeting(context.Context, *CompleteMeetingRequest) (*CompleteMeetingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CompleteMeeting not implemented")
}
func (UnimplementedMeetingServiceServer) SetStatus(context.Context, *SetStatusRequest) (*SetStatusResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SetStatus not implemented")
}
func (UnimplementedMeetingServiceServer) DeleteMeeting(context.Context, *DeleteMeetingRequest) (*DeleteMeetingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteMeeting not implemented")
}
func (UnimplementedMeetingServiceServer) GetMeeting(context.Context, *GetMeetingRequest) (*GetMeetingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetMeeting not implemented")
}
func (UnimplementedMeetingServiceServer) ListMeetings(context.Context, *ListMeetingsRequest) (*ListMeetingsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListMeetings not implemented")
}
func (UnimplementedMeetingServiceServer) DayView(context.Context, *DayViewRequest) (*DayViewResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DayView not implemented")
}
func (UnimplementedMeetingServiceServer) ComputeSlot(context.Context, *ComputeSlotRequest) (*ComputeSlotResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ComputeSlot not implemented")
}
func (UnimplementedMeetingServiceServer) FreeSlots(context.Context, *FreeSlotsRequest) (*FreeSlotsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method FreeSlots not implemented")
}
func (UnimplementedMeetingServiceServer) Watch(*WatchRequest, grpc.ServerStreamingServer[ChangeEvent]) error {
	return status.Error(codes.Unimplemented, "method Watch not implemented")
}

func RegisterMeetingServiceServer(s grpc.ServiceRegistrar, srv MeetingServiceServer) {
	s.RegisterService(&MeetingService_ServiceDesc, srv)
}

func _MeetingService_Watch_Handler(srv any, stream grpc.ServerStream) error {
	m := new(WatchRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(MeetingServiceServer).Watch(m, &grpc.GenericServerStream[WatchRequest, ChangeEvent]{ServerStream: stream})
}

var MeetingService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MeetingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateMeeting", Handler: api.Unary(MeetingService_CreateMeeting_FullMethodName, MeetingServiceServer.CreateMeeting)},
		{MethodName: "RescheduleMeeting", Handler: api.Unary(MeetingService_RescheduleMeeting_FullMethodName, MeetingServiceServer.RescheduleMeeting)},
		{MethodName: "CancelMeeting", Handler: api.Unary(MeetingService_CancelMeeting_FullMethodName, MeetingServiceServer.CancelMeeting)},
		{MethodName: "CompleteMeeting", Handler: api.Unary(MeetingService_CompleteMeeting_FullMethodName, MeetingServiceServer.CompleteMeeting)},
		{MethodName: "SetStatus", Handler: api.Unary(MeetingService_SetStatus_FullMethodName, MeetingServiceServer.SetStatus)},
		{MethodName: "DeleteMeeting", Handler: api.Unary(MeetingService_DeleteMeeting_FullMethodName, MeetingServiceServer.DeleteMeeting)},
		{MethodName: "GetMeeting", Handler: api.Unary(MeetingService_GetMeeting_FullMethodName, MeetingServiceServer.GetMeeting)},
		{MethodName: "ListMeetings", Handler: api.Unary(MeetingService_ListMeetings_FullMethodName, MeetingServiceServer.ListMeetings)},
		{MethodName: "DayView", Handler: api.Unary(MeetingService_DayView_FullMethodName, MeetingServiceServer.DayView)},
		{MethodName: "ComputeSlot", Handler: api.Unary(MeetingService_ComputeSlot_FullMethodName, MeetingServiceServer.ComputeSlot)},
		{MethodName: "FreeSlots", Handler: api.Unary(MeetingService_FreeSlots_FullMethodName, MeetingServiceServer.FreeSlots)},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Watch",
			Handler:       _MeetingService_Watch_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "meetings/v1/meetings.json",
}

type MeetingServiceClient interface {
	CreateMeeting(ctx context.Context, in *CreateMeetingRequest, opts ...grpc.CallOption) (*CreateMeetingResponse, error)
	RescheduleMeeting(ctx context.Context, in *RescheduleMeetingRequest, opts ...grpc.CallOption) (*RescheduleMeetingResponse, error)
	CancelMeeting(ctx context.Context, in *CancelMeetingRequest, opts ...grpc.CallOption) (*CancelMeetingResponse, error)
	CompleteMeeting(ctx context.Context, in *CompleteMeetingRequest, opts ...grpc.CallOption) (*CompleteMeetingResponse, error)
	SetStatus(ctx context.Context, in *SetStatusRequest, opts ...grpc.CallOption) (*SetStatusResponse, error)
	DeleteMeeting(ctx context.Context, in *DeleteMeetingRequest, opts ...grpc.CallOption) (*DeleteMeetingResponse, error)
	GetMeeting(ctx context.Context, in *GetMeetingRequest, opts ...grpc.CallOption) (*GetMeetingResponse, error)
	ListMeetings(ctx context.Context, in *ListMeetingsRequest, opts ...grpc.CallOption) (*ListMeetingsResponse, error)
	DayView(ctx context.Context, in *DayViewRequest, opts ...grpc.CallOption) (*DayViewResponse, error)
	ComputeSlot(ctx context.Context, in *ComputeSlotRequest, opts ...grpc.CallOption) (*ComputeSlotResponse, error)
	FreeSlots(ctx context.Context, in *FreeSlotsRequest, opts ...grpc.CallOption) (*FreeSlotsResponse, error)
	Watch(ctx context.Context, in *WatchRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[ChangeEvent], error)
}

type meetingServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewMeetingServiceClient(cc grpc.ClientConnInterface) MeetingServiceClient {
	return &meetingServiceClient{cc}
}

func (c *meetingServiceClient) CreateMeeting(ctx context.Context, in *CreateMeetingRequest, opts ...grpc.CallOption) (*CreateMeetingResponse, error) {
	return api.Invoke[CreateMeetingResponse](ctx, c.cc, MeetingService_CreateMeeting_FullMethodName, in, opts...)
}

func (c *meetingServiceClient) RescheduleMeeting(ctx context.Context, in *RescheduleMeetingRequest, opts ...grpc.CallOption) (*RescheduleMeetingResponse, error) {
	return api.Invoke[RescheduleMeetingResponse](ctx, c.cc, MeetingService_RescheduleMeeting_FullMethodName, in, opts...)
}

func (c *meetingServiceClient) CancelMeeting(ctx context.Context, in *CancelMeetingRequest, opts ...grpc.CallOption) (*CancelMeetingResponse, error) {
	return api.Invoke[CancelMeetingResponse](ctx, c.cc, MeetingService_CancelMeeting_FullMethodName, in, opts...)
}

func (c *meetingServiceClient) CompleteMeeting(ctx context.Context, in *CompleteMeetingRequest, opts ...grpc.CallOption) (*CompleteMeetingResponse, error) {
	return api.Invoke[CompleteMeetingResponse](ctx, c.cc, MeetingService_CompleteMeeting_FullMethodName, in, opts...)
}

func (c *meetingServiceClient) SetStatus(ctx context.Context, in *SetStatusRequest, opts ...grpc.CallOption) (*SetStatusResponse, error) {
	return api.Invoke[SetStatusResponse](ctx, c.cc, MeetingService_SetStatus_FullMethodName, in, opts...)
}

func (c *meetingServiceClient) DeleteMeeting(ctx context.Context, in *DeleteMeetingRequest, opts ...grpc.CallOption) (*DeleteMeetingResponse, error) {
	return api.Invoke[DeleteMeetingResponse](ctx, c.cc, MeetingService_DeleteMeeting_FullMethodName, in, opts...)
}

func (c *meetingServiceClient) GetMeeting(ctx context.Context, in *GetMeetingRequest, opts ...grpc.CallOption) (*GetMeetingResponse, error) {
	return api.Invoke[GetMeetingResponse](ctx, c.cc, MeetingService_GetMeeting_FullMethodName, in, opts...)
}

func (c *meetingServiceClient) ListMeetings(ctx context.Context, in *ListMeetingsRequest, opts ...grpc.CallOption) (*ListMeetingsResponse, error) {
	return api.Invoke[ListMeetingsResponse](ctx, c.cc, MeetingService_ListMeetings_FullMethodName, in, opts...)
}

func (c *meetingServiceClient) DayView(ctx context.Context, in *DayViewRequest, opts ...grpc.CallOption) (*DayViewResponse, error) {
	return api.Invoke[DayViewResponse](ctx, c.cc, MeetingService_DayView_FullMethodName, in, opts...)
}

func (c *meetingServiceClient) ComputeSlot(ctx context.Context, in *ComputeSlotRequest, opts ...grpc.CallOption) (*ComputeSlotResponse, error) {
	return api.Invoke[ComputeSlotResponse](ctx, c.cc, MeetingService_ComputeSlot_FullMethodName, in, opts...)
}

func (c *meetingServiceClient) FreeSlots(ctx context.Context, in *FreeSlotsRequest, opts ...grpc.CallOption) (*FreeSlotsResponse, error) {
	return api.Invoke[FreeSlotsResponse](ctx, c.cc, MeetingService_FreeSlots_FullMethodName, in, opts...)
}

func (c *meetingServiceClient) Watch(ctx context.Context, in *WatchRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[ChangeEvent], error) {
	opts = append([]grpc.CallOption{api.JSON()}, opts...)
	stream, err := c.cc.NewStream(ctx, &MeetingService_ServiceDesc.Streams[0], MeetingService_Watch_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[WatchRequest, ChangeEvent]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}
