package provider

// #region imports
import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"
)

// #endregion

// #region invoker

// invoker is the slice of *grpc.ClientConn the runtime client needs.
// Injected in tests so no real connection is required.
type invoker interface {
	Invoke(ctx context.Context, method string, args, reply any, opts ...grpc.CallOption) error
}

// #endregion

// #region runtime-client

const generateMethod = "/luna.inference.Runtime/Generate"

// RuntimeClient talks to the local inference runtime over gRPC. Requests
// and replies travel as structpb maps: the runtime's generate surface is
// schema-light so the controller needs no generated stubs.
type RuntimeClient struct {
	name string
	conn *grpc.ClientConn
	inv  invoker
}

// NewRuntimeClient connects to the inference runtime.
func NewRuntimeClient(name, addr string) (*RuntimeClient, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", addr, err)
	}
	return &RuntimeClient{name: name, conn: conn, inv: conn}, nil
}

// NewRuntimeClientWithInvoker creates a RuntimeClient with an injected
// transport. Used for testing without a real gRPC connection.
func NewRuntimeClientWithInvoker(name string, inv invoker) *RuntimeClient {
	return &RuntimeClient{name: name, inv: inv}
}

// Close shuts down the gRPC connection.
func (c *RuntimeClient) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// Name returns the provider name.
func (c *RuntimeClient) Name() string {
	return c.name
}

// #endregion

// #region generate

// Generate sends the prompt to the runtime and maps the reply into a
// typed Result.
func (c *RuntimeClient) Generate(ctx context.Context, req Request) Result {
	fields := map[string]any{
		"prompt": req.Prompt,
	}
	if req.System != "" {
		fields["system"] = req.System
	}
	if req.MaxTokens > 0 {
		fields["max_tokens"] = float64(req.MaxTokens)
	}
	if req.Temperature >= 0 {
		fields["temperature"] = req.Temperature
	}

	in, err := structpb.NewStruct(fields)
	if err != nil {
		return Result{Status: StatusProviderError, Err: fmt.Errorf("encode request: %w", err)}
	}

	out := &structpb.Struct{}
	if err := c.inv.Invoke(ctx, generateMethod, in, out); err != nil {
		return Result{Status: StatusProviderError, Err: fmt.Errorf("generate rpc: %w", err)}
	}

	text := ""
	if v, ok := out.GetFields()["text"]; ok {
		text = v.GetStringValue()
	}
	if strings.TrimSpace(text) == "" {
		return Result{Status: StatusEmpty}
	}
	return Result{Status: StatusSuccess, Text: text}
}

// #endregion
