package wrapper

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/ReliQuery/hyper-mcp/pkg/config"
	"github.com/ReliQuery/hyper-mcp/pkg/pdk"
)

// stubHost scripts the cross-plugin call outcome: a call-level error, a
// tool-level failure, or a clean result.
type stubHost struct {
	result   *pdk.CallToolResult
	err      error
	lastName string
}

func (s *stubHost) CallTool(_ context.Context, params pdk.CallToolParams) (*pdk.CallToolResult, error) {
	s.lastName = params.Name
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func newTestPlugin(t *testing.T, host pdk.HostFunctions) *Plugin {
	t.Helper()
	p := New()
	if err := p.Init(config.DefaultConfig(), host); err != nil {
		t.Fatalf("init plugin: %v", err)
	}
	return p
}

func callWrapper(t *testing.T, p *Plugin, args map[string]any) *pdk.CallToolResult {
	t.Helper()
	result, err := p.CallTool(context.Background(), pdk.CallToolRequest{
		Request: pdk.CallToolParams{Name: "wrapper", Arguments: args},
	})
	if err != nil {
		t.Fatalf("call wrapper: %v", err)
	}
	return result
}

func decodePayload(t *testing.T, result *pdk.CallToolResult) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal([]byte(result.Content[0].Text), &payload); err != nil {
		t.Fatalf("decode wrapped payload: %v", err)
	}
	return payload
}

func TestWrappedTimeSuccess(t *testing.T) {
	host := &stubHost{result: pdk.NewToolResultText("Fri, 29 Nov 2024 10:30:00 +0000")}
	p := newTestPlugin(t, host)

	result := callWrapper(t, p, map[string]any{"name": "get_wrapped_time"})
	if result.IsError == nil || *result.IsError {
		t.Fatalf("expected explicit isError=false, got %+v", result.IsError)
	}
	if host.lastName != "rstime::get_time" {
		t.Fatalf("expected namespaced target call, got %q", host.lastName)
	}

	payload := decodePayload(t, result)
	if payload["success"] != true {
		t.Fatalf("expected success=true, got %v", payload["success"])
	}
	if payload["message"] != "Time retrieved via cross-plugin call" {
		t.Fatalf("unexpected message: %v", payload["message"])
	}
	if payload["time_data"] == nil {
		t.Fatalf("expected wrapped time data")
	}
}

func TestWrappedTimeCallLevelErrorIsSoftFailure(t *testing.T) {
	host := &stubHost{err: &pdk.NotFoundError{Kind: "plugin", Name: "rstime"}}
	p := newTestPlugin(t, host)

	result := callWrapper(t, p, map[string]any{"name": "get_wrapped_time"})
	if result.IsError == nil || !*result.IsError {
		t.Fatalf("expected soft failure for broken call")
	}

	payload := decodePayload(t, result)
	if payload["success"] != false {
		t.Fatalf("expected success=false, got %v", payload["success"])
	}
	if payload["message"] != "Failed to call rstime plugin" {
		t.Fatalf("unexpected message: %v", payload["message"])
	}
	if !strings.Contains(payload["error"].(string), "unknown plugin: rstime") {
		t.Fatalf("expected call error detail, got %v", payload["error"])
	}
}

func TestWrappedTimeTargetFailureStaysInBand(t *testing.T) {
	host := &stubHost{result: pdk.NewToolResultError("Error: Invalid timezone 'Nope': unknown time zone")}
	p := newTestPlugin(t, host)

	result := callWrapper(t, p, map[string]any{"name": "get_wrapped_time"})
	if result.IsError == nil || *result.IsError {
		t.Fatalf("wrapper call itself succeeded; isError must be false")
	}

	payload := decodePayload(t, result)
	if payload["success"] != false {
		t.Fatalf("expected target failure surfaced as success=false, got %v", payload["success"])
	}
	if payload["time_data"] == nil {
		t.Fatalf("expected target content carried through")
	}
}

func TestWrapperMissingNameIsSoftError(t *testing.T) {
	p := newTestPlugin(t, &stubHost{})

	result := callWrapper(t, p, map[string]any{})
	if result.IsError == nil || !*result.IsError {
		t.Fatalf("expected soft error for missing operation name")
	}
	if !strings.Contains(result.Content[0].Text, "'name' argument is required") {
		t.Fatalf("unexpected error text: %s", result.Content[0].Text)
	}
}

func TestWrapperUnknownOperationIsSoftError(t *testing.T) {
	p := newTestPlugin(t, &stubHost{})

	result := callWrapper(t, p, map[string]any{"name": "bogus_op"})
	if result.IsError == nil || !*result.IsError {
		t.Fatalf("expected soft error for unknown operation")
	}
	if !strings.Contains(result.Content[0].Text, "unknown operation 'bogus_op'") {
		t.Fatalf("unexpected error text: %s", result.Content[0].Text)
	}
}

func TestWrapperUnknownToolIsCallLevelError(t *testing.T) {
	p := newTestPlugin(t, &stubHost{})

	_, err := p.CallTool(context.Background(), pdk.CallToolRequest{
		Request: pdk.CallToolParams{Name: "bogus_tool"},
	})
	var notFound *pdk.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestWrapperListTools(t *testing.T) {
	p := newTestPlugin(t, &stubHost{})

	result, err := p.ListTools(context.Background(), pdk.ListToolsRequest{})
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	if len(result.Tools) != 1 || result.Tools[0].Name != "wrapper" {
		t.Fatalf("unexpected tools: %+v", result.Tools)
	}
	if result.Tools[0].InputSchema.Required[0] != "name" {
		t.Fatalf("expected 'name' to be required")
	}
}

func TestWrapperCompleteIsNotImplemented(t *testing.T) {
	p := newTestPlugin(t, &stubHost{})

	_, err := p.Complete(context.Background(), pdk.CompleteRequest{
		Request: pdk.CompleteParams{
			Ref:      map[string]any{"type": "prompt", "name": "anything"},
			Argument: pdk.CompleteArgument{Name: "timezone"},
		},
	})
	var notImplemented *pdk.NotImplementedError
	if !errors.As(err, &notImplemented) {
		t.Fatalf("expected NotImplementedError, got %v", err)
	}
}

func TestWrapperEmptyCatalogs(t *testing.T) {
	p := newTestPlugin(t, &stubHost{})
	ctx := context.Background()

	prompts, err := p.ListPrompts(ctx, pdk.ListPromptsRequest{})
	if err != nil || len(prompts.Prompts) != 0 {
		t.Fatalf("expected no prompts, got %+v (%v)", prompts, err)
	}
	resources, err := p.ListResources(ctx, pdk.ListResourcesRequest{})
	if err != nil || len(resources.Resources) != 0 {
		t.Fatalf("expected no resources, got %+v (%v)", resources, err)
	}
	templates, err := p.ListResourceTemplates(ctx, pdk.ListResourceTemplatesRequest{})
	if err != nil || len(templates.ResourceTemplates) != 0 {
		t.Fatalf("expected no resource templates, got %+v (%v)", templates, err)
	}
	contents, err := p.ReadResource(ctx, pdk.ReadResourceRequest{
		Request: pdk.ReadResourceParams{URI: "https://example.com"},
	})
	if err != nil || len(contents.Contents) != 0 {
		t.Fatalf("expected empty resource read, got %+v (%v)", contents, err)
	}
}
