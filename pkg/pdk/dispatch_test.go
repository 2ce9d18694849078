package pdk

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/ReliQuery/hyper-mcp/pkg/config"
)

// stubPlugin serves a single "echo" tool and records what it was asked.
type stubPlugin struct {
	lastToolName string
	rootsChanged int
}

func (s *stubPlugin) Name() string { return "stub" }

func (s *stubPlugin) Init(_ *config.Config, _ HostFunctions) error { return nil }

func (s *stubPlugin) GetPrompt(_ context.Context, req GetPromptRequest) (*GetPromptResult, error) {
	return nil, &NotFoundError{Kind: "prompt", Name: req.Request.Name}
}
func (s *stubPlugin) ListTools(_ context.Context, _ ListToolsRequest) (*ListToolsResult, error) {
	return &ListToolsResult{Tools: []Tool{{Name: "echo", InputSchema: ToolSchema{Type: "object"}}}}, nil
}
func (s *stubPlugin) ListPrompts(_ context.Context, _ ListPromptsRequest) (*ListPromptsResult, error) {
	return &ListPromptsResult{Prompts: []Prompt{}}, nil
}
func (s *stubPlugin) ListResources(_ context.Context, _ ListResourcesRequest) (*ListResourcesResult, error) {
	return &ListResourcesResult{Resources: []Resource{}}, nil
}
func (s *stubPlugin) ListResourceTemplates(_ context.Context, _ ListResourceTemplatesRequest) (*ListResourceTemplatesResult, error) {
	return &ListResourceTemplatesResult{ResourceTemplates: []ResourceTemplate{}}, nil
}
func (s *stubPlugin) ReadResource(_ context.Context, req ReadResourceRequest) (*ReadResourceResult, error) {
	return &ReadResourceResult{Contents: []ResourceContents{}}, nil
}
func (s *stubPlugin) Complete(_ context.Context, _ CompleteRequest) (*CompleteResult, error) {
	return nil, &NotImplementedError{Subject: "prompt", Name: "any"}
}
func (s *stubPlugin) OnRootsListChanged(_ context.Context, _ RootsListChangedNotification) error {
	s.rootsChanged++
	return nil
}

func (s *stubPlugin) CallTool(_ context.Context, req CallToolRequest) (*CallToolResult, error) {
	s.lastToolName = req.Request.Name
	switch req.Request.Name {
	case "echo":
		value, ok := req.Request.Arguments["value"].(string)
		if !ok {
			return NewToolResultError("Error: 'value' argument is required"), nil
		}
		return NewToolResultText(value), nil
	default:
		return nil, &NotFoundError{Kind: "tool", Name: req.Request.Name}
	}
}

func TestDispatcherCallTool(t *testing.T) {
	plugin := &stubPlugin{}
	d := NewDispatcher(plugin)

	payload := []byte(`{"context":{"id":"r1"},"request":{"name":"echo","arguments":{"value":"hello"}}}`)
	out, err := d.CallTool(context.Background(), payload)
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}

	var result CallToolResult
	if err := json.Unmarshal(out, &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if len(result.Content) != 1 || result.Content[0].Text != "hello" {
		t.Fatalf("unexpected result content: %+v", result.Content)
	}
	if result.IsError != nil {
		t.Fatalf("expected isError absent on success")
	}
	if plugin.lastToolName != "echo" {
		t.Fatalf("expected plugin to receive tool name, got %q", plugin.lastToolName)
	}
}

func TestDispatcherCallToolUnknownNameIsFatal(t *testing.T) {
	d := NewDispatcher(&stubPlugin{})

	payload := []byte(`{"request":{"name":"bogus"}}`)
	out, err := d.CallTool(context.Background(), payload)
	if err == nil {
		t.Fatalf("expected dispatch-fatal error, got payload %s", out)
	}

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if notFound.Name != "bogus" {
		t.Fatalf("expected offending name in error, got %q", notFound.Name)
	}
}

func TestDispatcherCallToolBadArgumentIsSoft(t *testing.T) {
	d := NewDispatcher(&stubPlugin{})

	payload := []byte(`{"request":{"name":"echo"}}`)
	out, err := d.CallTool(context.Background(), payload)
	if err != nil {
		t.Fatalf("expected successful dispatch, got %v", err)
	}

	var result CallToolResult
	if err := json.Unmarshal(out, &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.IsError == nil || !*result.IsError {
		t.Fatalf("expected isError=true for missing argument")
	}
	if len(result.Content) == 0 || !strings.Contains(result.Content[0].Text, "required") {
		t.Fatalf("expected human-readable soft error, got %+v", result.Content)
	}
}

func TestDispatcherMalformedPayload(t *testing.T) {
	d := NewDispatcher(&stubPlugin{})

	if _, err := d.CallTool(context.Background(), []byte(`{"request":`)); err == nil {
		t.Fatalf("expected decode error for malformed payload")
	}
}

func TestDispatchRoutesByMethod(t *testing.T) {
	plugin := &stubPlugin{}
	d := NewDispatcher(plugin)

	out, err := d.Dispatch(context.Background(), MethodListTools, nil)
	if err != nil {
		t.Fatalf("dispatch list tools: %v", err)
	}
	var listing ListToolsResult
	if err := json.Unmarshal(out, &listing); err != nil {
		t.Fatalf("decode listing: %v", err)
	}
	if len(listing.Tools) != 1 || listing.Tools[0].Name != "echo" {
		t.Fatalf("unexpected tool listing: %+v", listing.Tools)
	}
	if listing.NextCursor != "" {
		t.Fatalf("expected empty cursor on full snapshot")
	}

	if _, err := d.Dispatch(context.Background(), "bogus/method", nil); err == nil {
		t.Fatalf("expected error for unknown method")
	}
}

func TestDispatchRootsListChanged(t *testing.T) {
	plugin := &stubPlugin{}
	d := NewDispatcher(plugin)

	out, err := d.Dispatch(context.Background(), MethodRootsListChanged, []byte(`{"context":{"id":"n1"}}`))
	if err != nil {
		t.Fatalf("dispatch notification: %v", err)
	}
	if out != nil {
		t.Fatalf("expected no response payload for notification, got %s", out)
	}
	if plugin.rootsChanged != 1 {
		t.Fatalf("expected notification to reach plugin once, got %d", plugin.rootsChanged)
	}
}

func TestToolResultConstructors(t *testing.T) {
	success := NewToolResultText("ok")
	data, err := json.Marshal(success)
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}
	if strings.Contains(string(data), "isError") {
		t.Fatalf("expected isError absent from success payload: %s", data)
	}

	failure := NewToolResultError("bad input")
	data, err = json.Marshal(failure)
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}
	if !strings.Contains(string(data), `"isError":true`) {
		t.Fatalf("expected explicit isError on soft failure: %s", data)
	}
}
