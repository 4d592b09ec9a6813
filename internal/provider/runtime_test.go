package provider

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

type fakeInvoker struct {
	reply     map[string]any
	err       error
	gotMethod string
	gotArgs   *structpb.Struct
}

func (f *fakeInvoker) Invoke(_ context.Context, method string, args, reply any, _ ...grpc.CallOption) error {
	f.gotMethod = method
	f.gotArgs = args.(*structpb.Struct)
	if f.err != nil {
		return f.err
	}
	out, err := structpb.NewStruct(f.reply)
	if err != nil {
		return err
	}
	proto.Merge(reply.(*structpb.Struct), out)
	return nil
}

func TestRuntimeGenerate_Success(t *testing.T) {
	inv := &fakeInvoker{reply: map[string]any{"text": "hello from the runtime"}}
	c := NewRuntimeClientWithInvoker("runtime-test", inv)

	res := c.Generate(context.Background(), Request{
		Prompt:      "say hello",
		System:      "be brief",
		MaxTokens:   128,
		Temperature: 0.7,
	})
	if !res.Ok() {
		t.Fatalf("got %+v, want success", res)
	}
	if res.Text != "hello from the runtime" {
		t.Errorf("text: got %q", res.Text)
	}
	if inv.gotMethod != "/luna.inference.Runtime/Generate" {
		t.Errorf("method: got %q", inv.gotMethod)
	}

	fields := inv.gotArgs.GetFields()
	if fields["prompt"].GetStringValue() != "say hello" {
		t.Errorf("prompt field: got %q", fields["prompt"].GetStringValue())
	}
	if fields["system"].GetStringValue() != "be brief" {
		t.Errorf("system field: got %q", fields["system"].GetStringValue())
	}
	if fields["max_tokens"].GetNumberValue() != 128 {
		t.Errorf("max_tokens field: got %v", fields["max_tokens"].GetNumberValue())
	}
	if fields["temperature"].GetNumberValue() != 0.7 {
		t.Errorf("temperature field: got %v", fields["temperature"].GetNumberValue())
	}
}

func TestRuntimeGenerate_OptionalFieldsOmitted(t *testing.T) {
	inv := &fakeInvoker{reply: map[string]any{"text": "ok"}}
	c := NewRuntimeClientWithInvoker("runtime-test", inv)

	if res := c.Generate(context.Background(), Request{Prompt: "hi", Temperature: -1}); !res.Ok() {
		t.Fatalf("got %+v, want success", res)
	}
	fields := inv.gotArgs.GetFields()
	for _, absent := range []string{"system", "max_tokens", "temperature"} {
		if _, ok := fields[absent]; ok {
			t.Errorf("field %q should be omitted at its default", absent)
		}
	}
}

func TestRuntimeGenerate_EmptyText(t *testing.T) {
	tests := []struct {
		name  string
		reply map[string]any
	}{
		{"no-text-field", map[string]any{"tokens": 12.0}},
		{"blank-text", map[string]any{"text": "   "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewRuntimeClientWithInvoker("runtime-test", &fakeInvoker{reply: tt.reply})
			res := c.Generate(context.Background(), Request{Prompt: "hi"})
			if res.Status != StatusEmpty {
				t.Errorf("status: got %q, want empty", res.Status)
			}
		})
	}
}

func TestRuntimeGenerate_RPCError(t *testing.T) {
	c := NewRuntimeClientWithInvoker("runtime-test", &fakeInvoker{err: errors.New("connection refused")})
	res := c.Generate(context.Background(), Request{Prompt: "hi"})
	if res.Status != StatusProviderError {
		t.Fatalf("status: got %q, want provider_error", res.Status)
	}
	if res.Err == nil {
		t.Error("rpc failure carries no error")
	}
}
