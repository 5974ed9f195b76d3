package transport

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name, in the usual
// "<package>.<Service>" shape a .proto file would declare.
const ServiceName = "generals.General"

// Server is the RPC endpoint surface every node exposes (spec.md §4.2).
// Method names mirror the operation table there; Go naming
// (List/GetID/...) stands in for the snake_case wire names.
type Server interface {
	List(ctx context.Context, req *ListRequest) (*ListReply, error)
	GetID(ctx context.Context, req *Empty) (*IDReply, error)
	GetState(ctx context.Context, req *Empty) (*StateReply, error)
	SetState(ctx context.Context, req *SetStateRequest) (*Empty, error)
	IsAlive(ctx context.Context, req *Empty) (*AliveReply, error)
	GetKnownCoordinatorPort(ctx context.Context, req *Empty) (*KnownCoordinatorReply, error)
	SendMessage(ctx context.Context, req *ElectionMessage) (*ElectionReply, error)
	SendOrder(ctx context.Context, req *OrderMessage) (*Empty, error)
	ExecuteOrder(ctx context.Context, req *OrderRequest) (*VerdictReply, error)
	ReportConsensus(ctx context.Context, req *ConsensusReport) (*Empty, error)
	Stop(ctx context.Context, req *Empty) (*Empty, error)
}

// RegisterServer registers srv against the given registrar, in the shape
// generated service registration functions take (e.g.
// RegisterGeneralServer in protoc-gen-go-grpc output).
func RegisterServer(s grpc.ServiceRegistrar, srv Server) {
	s.RegisterService(&serviceDesc, srv)
}

func callOpts() []grpc.CallOption {
	return []grpc.CallOption{grpc.CallContentSubtype(CodecName)}
}

// Client is the client-side stub matching Server, dialed against a single
// peer's endpoint.
type Client interface {
	List(ctx context.Context, req *ListRequest, opts ...grpc.CallOption) (*ListReply, error)
	GetID(ctx context.Context, req *Empty, opts ...grpc.CallOption) (*IDReply, error)
	GetState(ctx context.Context, req *Empty, opts ...grpc.CallOption) (*StateReply, error)
	SetState(ctx context.Context, req *SetStateRequest, opts ...grpc.CallOption) (*Empty, error)
	IsAlive(ctx context.Context, req *Empty, opts ...grpc.CallOption) (*AliveReply, error)
	GetKnownCoordinatorPort(ctx context.Context, req *Empty, opts ...grpc.CallOption) (*KnownCoordinatorReply, error)
	SendMessage(ctx context.Context, req *ElectionMessage, opts ...grpc.CallOption) (*ElectionReply, error)
	SendOrder(ctx context.Context, req *OrderMessage, opts ...grpc.CallOption) (*Empty, error)
	ExecuteOrder(ctx context.Context, req *OrderRequest, opts ...grpc.CallOption) (*VerdictReply, error)
	ReportConsensus(ctx context.Context, req *ConsensusReport, opts ...grpc.CallOption) (*Empty, error)
	Stop(ctx context.Context, req *Empty, opts ...grpc.CallOption) (*Empty, error)
}

type client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps an already-established connection (e.g. from
// grpc.NewClient) as a Client.
func NewClient(cc grpc.ClientConnInterface) Client {
	return &client{cc: cc}
}

func (c *client) List(ctx context.Context, req *ListRequest, opts ...grpc.CallOption) (*ListReply, error) {
	out := new(ListReply)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/List", req, out, append(callOpts(), opts...)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) GetID(ctx context.Context, req *Empty, opts ...grpc.CallOption) (*IDReply, error) {
	out := new(IDReply)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/GetID", req, out, append(callOpts(), opts...)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) GetState(ctx context.Context, req *Empty, opts ...grpc.CallOption) (*StateReply, error) {
	out := new(StateReply)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/GetState", req, out, append(callOpts(), opts...)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) SetState(ctx context.Context, req *SetStateRequest, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/SetState", req, out, append(callOpts(), opts...)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) IsAlive(ctx context.Context, req *Empty, opts ...grpc.CallOption) (*AliveReply, error) {
	out := new(AliveReply)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/IsAlive", req, out, append(callOpts(), opts...)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) GetKnownCoordinatorPort(ctx context.Context, req *Empty, opts ...grpc.CallOption) (*KnownCoordinatorReply, error) {
	out := new(KnownCoordinatorReply)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/GetKnownCoordinatorPort", req, out, append(callOpts(), opts...)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) SendMessage(ctx context.Context, req *ElectionMessage, opts ...grpc.CallOption) (*ElectionReply, error) {
	out := new(ElectionReply)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/SendMessage", req, out, append(callOpts(), opts...)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) SendOrder(ctx context.Context, req *OrderMessage, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/SendOrder", req, out, append(callOpts(), opts...)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) ExecuteOrder(ctx context.Context, req *OrderRequest, opts ...grpc.CallOption) (*VerdictReply, error) {
	out := new(VerdictReply)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/ExecuteOrder", req, out, append(callOpts(), opts...)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) ReportConsensus(ctx context.Context, req *ConsensusReport, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/ReportConsensus", req, out, append(callOpts(), opts...)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) Stop(ctx context.Context, req *Empty, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/Stop", req, out, append(callOpts(), opts...)...); err != nil {
		return nil, err
	}
	return out, nil
}

func handler[Req any, Rep any](method func(ctx context.Context, req *Req) (*Rep, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return method(ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv}
		wrapped := func(ctx context.Context, req any) (any, error) {
			return method(ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, wrapped)
	}
}

// serviceDesc mirrors the grpc.ServiceDesc protoc-gen-go-grpc would emit:
// one MethodDesc per unary RPC, each Handler adapting the generic
// dec/interceptor plumbing to the concrete Server method. Built by hand
// the same way github.com/joeycumines/go-utilpkg/goja-grpc/server.go
// constructs a grpc.ServiceDesc for services that don't come from
// protoc-generated code.
var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*Server)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "List", Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			return handler(srv.(Server).List)(srv, ctx, dec, interceptor)
		}},
		{MethodName: "GetID", Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			return handler(srv.(Server).GetID)(srv, ctx, dec, interceptor)
		}},
		{MethodName: "GetState", Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			return handler(srv.(Server).GetState)(srv, ctx, dec, interceptor)
		}},
		{MethodName: "SetState", Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			return handler(srv.(Server).SetState)(srv, ctx, dec, interceptor)
		}},
		{MethodName: "IsAlive", Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			return handler(srv.(Server).IsAlive)(srv, ctx, dec, interceptor)
		}},
		{MethodName: "GetKnownCoordinatorPort", Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			return handler(srv.(Server).GetKnownCoordinatorPort)(srv, ctx, dec, interceptor)
		}},
		{MethodName: "SendMessage", Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			return handler(srv.(Server).SendMessage)(srv, ctx, dec, interceptor)
		}},
		{MethodName: "SendOrder", Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			return handler(srv.(Server).SendOrder)(srv, ctx, dec, interceptor)
		}},
		{MethodName: "ExecuteOrder", Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			return handler(srv.(Server).ExecuteOrder)(srv, ctx, dec, interceptor)
		}},
		{MethodName: "ReportConsensus", Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			return handler(srv.(Server).ReportConsensus)(srv, ctx, dec, interceptor)
		}},
		{MethodName: "Stop", Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			return handler(srv.(Server).Stop)(srv, ctx, dec, interceptor)
		}},
	},
	Metadata: "internal/transport/service.go",
}
