package arith

import (
	"context"
	"testing"

	"github.com/louisbranch/arithbind/internal/binding"
	apperrors "github.com/louisbranch/arithbind/internal/platform/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func TestServiceDescMirrorsModule(t *testing.T) {
	desc := ServiceDesc(binding.MustNew(binding.PythonCppExample))
	if desc.ServiceName != binding.PythonCppExample {
		t.Fatalf("service name = %q", desc.ServiceName)
	}
	if len(desc.Methods) != 2 {
		t.Fatalf("methods = %d, want 2", len(desc.Methods))
	}
	if desc.Methods[0].MethodName != "add" || desc.Methods[1].MethodName != "subtract" {
		t.Fatalf("unexpected methods %+v", desc.Methods)
	}
}

func TestServiceCall(t *testing.T) {
	svc := NewService(binding.Default())
	cases := []struct {
		function string
		i, j     int
		want     int
	}{
		{"add", 2, 3, 5},
		{"add", -1, 1, 0},
		{"subtract", 5, 3, 2},
	}
	for _, tc := range cases {
		resp, err := svc.Call(context.Background(), tc.function, &CallRequest{I: tc.i, J: tc.j})
		if err != nil {
			t.Fatalf("%s(%d, %d): %v", tc.function, tc.i, tc.j, err)
		}
		if resp.Result != tc.want {
			t.Fatalf("%s(%d, %d) = %d, want %d", tc.function, tc.i, tc.j, resp.Result, tc.want)
		}
	}
}

func TestServiceCallNilRequestUsesZeroOperands(t *testing.T) {
	resp, err := NewService(binding.Default()).Call(context.Background(), "add", nil)
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if resp.Result != 0 {
		t.Fatalf("result = %d", resp.Result)
	}
}

func TestServiceCallUnknownFunction(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(localeHeader, "nb-NO"))
	_, err := NewService(binding.Default()).Call(ctx, "mul", &CallRequest{I: 1, J: 2})
	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.Unimplemented {
		t.Fatalf("expected Unimplemented status, got %v", err)
	}
	decoded := apperrors.FromGRPCStatus(err)
	if decoded == nil || decoded.Code != apperrors.CodeFunctionNotFound {
		t.Fatalf("decoded = %+v", decoded)
	}
}

func TestMethodHandlerRunsInterceptor(t *testing.T) {
	svc := NewService(binding.Default())
	handler := methodHandler(binding.PyCppBuild, "subtract")
	var seen string
	interceptor := func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		seen = info.FullMethod
		return next(ctx, req)
	}
	dec := func(v any) error {
		req := v.(*CallRequest)
		req.I, req.J = 10, 4
		return nil
	}
	out, err := handler(svc, context.Background(), dec, interceptor)
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if seen != "/pycpp_build/subtract" {
		t.Fatalf("full method = %q", seen)
	}
	if got := out.(*CallResponse).Result; got != 6 {
		t.Fatalf("result = %d, want 6", got)
	}
}

func TestJSONCodec(t *testing.T) {
	codec := jsonCodec{}
	data, err := codec.Marshal(&CallRequest{I: 7, J: -2})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"i":7,"j":-2}` {
		t.Fatalf("payload = %s", data)
	}
	var resp CallResponse
	if err := codec.Unmarshal([]byte(`{"result":`), &resp); err == nil {
		t.Fatal("expected unmarshal error")
	}
	if codec.Name() != CodecName {
		t.Fatalf("name = %q", codec.Name())
	}
}

func TestWithLocaleSkipsEmpty(t *testing.T) {
	ctx := context.Background()
	if WithLocale(ctx, "") != ctx {
		t.Fatal("expected unchanged context")
	}
	md, _ := metadata.FromOutgoingContext(WithLocale(ctx, "de-DE"))
	if got := md.Get(localeHeader); len(got) != 1 || got[0] != "de-DE" {
		t.Fatalf("locale header = %v", got)
	}
}
