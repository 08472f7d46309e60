// Package api содержит общий транспорт gRPC-сервисов: JSON-кодек,
// обвязку обработчиков и серверные интерсепторы.
package api

import (
	"context"
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

// CodecName — content-subtype запросов: application/grpc+json.
const CodecName = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string                       { return CodecName }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// JSON — опция вызова, переключающая клиента на JSON-кодек.
func JSON() grpc.CallOption {
	return grpc.CallContentSubtype(CodecName)
}

// Unary собирает grpc.MethodHandler для метода сервера S.
func Unary[S any, Req any, Resp any](fullMethod string, call func(S, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(S), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(S), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// Invoke — клиентский унарный вызов через JSON-кодек.
func Invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts ...grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{JSON()}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
