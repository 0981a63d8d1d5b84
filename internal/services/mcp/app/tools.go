package app

import (
	"context"
	"fmt"

	"github.com/louisbranch/arithbind/internal/binding"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/louisbranch/arithbind/internal/services/mcp/app"

// Caller invokes a function of a named module.
type Caller interface {
	Call(ctx context.Context, module, function string, i, j int) (int, error)
}

// CallInput represents the MCP tool input for a bound function.
type CallInput struct {
	I int `json:"i" jsonschema:"first integer operand"`
	J int `json:"j" jsonschema:"second integer operand"`
}

// CallResult represents the MCP tool output for a bound function.
type CallResult struct {
	Result int `json:"result" jsonschema:"integer returned by the function"`
}

// moduleCaller calls functions in process.
type moduleCaller struct {
	module *binding.Module
}

// LocalCaller returns a Caller that invokes module directly.
func LocalCaller(module *binding.Module) Caller {
	return moduleCaller{module: module}
}

func (c moduleCaller) Call(_ context.Context, module, function string, i, j int) (int, error) {
	if module != c.module.Name() {
		return 0, fmt.Errorf("caller serves module %s, not %s", c.module.Name(), module)
	}
	return c.module.Call(function, i, j)
}

// FunctionTool defines the MCP tool schema for one bound function.
func FunctionTool(fn binding.Function) *mcp.Tool {
	return &mcp.Tool{
		Name:        fn.Name,
		Description: fn.Doc,
	}
}

// FunctionHandler calls function on module through caller.
func FunctionHandler(caller Caller, module, function string) mcp.ToolHandlerFor[CallInput, CallResult] {
	tracer := otel.Tracer(tracerName)
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CallInput) (*mcp.CallToolResult, CallResult, error) {
		ctx, span := tracer.Start(ctx, "mcp.tool."+function, trace.WithAttributes(
			attribute.String("arithbind.module", module),
			attribute.Int("arithbind.i", input.I),
			attribute.Int("arithbind.j", input.J),
		))
		defer span.End()

		result, err := caller.Call(ctx, module, function, input.I, input.J)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, CallResult{}, fmt.Errorf("%s failed: %w", function, err)
		}
		span.SetAttributes(attribute.Int("arithbind.result", result))
		return nil, CallResult{Result: result}, nil
	}
}

func registerTools(server *mcp.Server, module *binding.Module, caller Caller) {
	for _, fn := range module.Functions() {
		mcp.AddTool(server, FunctionTool(fn), FunctionHandler(caller, module.Name(), fn.Name))
	}
}
