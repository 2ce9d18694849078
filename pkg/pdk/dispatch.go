package pdk

import (
	"context"
	"encoding/json"
	"fmt"
)

// Request kind identifiers, one per dispatch entry point.
const (
	MethodCallTool              = "tools/call"
	MethodListTools             = "tools/list"
	MethodGetPrompt             = "prompts/get"
	MethodListPrompts           = "prompts/list"
	MethodListResources         = "resources/list"
	MethodListResourceTemplates = "resources/templates/list"
	MethodReadResource          = "resources/read"
	MethodComplete              = "completion/complete"
	MethodRootsListChanged      = "notifications/roots/list_changed"
)

// Dispatcher is the host-facing boundary of a plugin. Each method decodes a
// raw structured value into the kind's typed request, invokes the plugin, and
// encodes the typed result back. Decode faults and plugin errors are both
// dispatch-fatal; soft failures travel inside successful payloads.
type Dispatcher struct {
	plugin Plugin
}

func NewDispatcher(plugin Plugin) *Dispatcher {
	return &Dispatcher{plugin: plugin}
}

// Dispatch routes a request by kind. The mapping is a deliberate closed
// table: adding a kind is a code change here, not configuration.
func (d *Dispatcher) Dispatch(ctx context.Context, method string, payload []byte) ([]byte, error) {
	switch method {
	case MethodCallTool:
		return d.CallTool(ctx, payload)
	case MethodListTools:
		return d.ListTools(ctx, payload)
	case MethodGetPrompt:
		return d.GetPrompt(ctx, payload)
	case MethodListPrompts:
		return d.ListPrompts(ctx, payload)
	case MethodListResources:
		return d.ListResources(ctx, payload)
	case MethodListResourceTemplates:
		return d.ListResourceTemplates(ctx, payload)
	case MethodReadResource:
		return d.ReadResource(ctx, payload)
	case MethodComplete:
		return d.Complete(ctx, payload)
	case MethodRootsListChanged:
		return nil, d.RootsListChanged(ctx, payload)
	default:
		return nil, &NotFoundError{Kind: "method", Name: method}
	}
}

func (d *Dispatcher) CallTool(ctx context.Context, payload []byte) ([]byte, error) {
	var req CallToolRequest
	if err := unmarshalRequest(payload, &req); err != nil {
		return nil, err
	}
	result, err := d.plugin.CallTool(ctx, req)
	if err != nil {
		return nil, err
	}
	return marshalResult(result)
}

func (d *Dispatcher) GetPrompt(ctx context.Context, payload []byte) ([]byte, error) {
	var req GetPromptRequest
	if err := unmarshalRequest(payload, &req); err != nil {
		return nil, err
	}
	result, err := d.plugin.GetPrompt(ctx, req)
	if err != nil {
		return nil, err
	}
	return marshalResult(result)
}

func (d *Dispatcher) ListTools(ctx context.Context, payload []byte) ([]byte, error) {
	var req ListToolsRequest
	if err := unmarshalRequest(payload, &req); err != nil {
		return nil, err
	}
	result, err := d.plugin.ListTools(ctx, req)
	if err != nil {
		return nil, err
	}
	return marshalResult(result)
}

func (d *Dispatcher) ListPrompts(ctx context.Context, payload []byte) ([]byte, error) {
	var req ListPromptsRequest
	if err := unmarshalRequest(payload, &req); err != nil {
		return nil, err
	}
	result, err := d.plugin.ListPrompts(ctx, req)
	if err != nil {
		return nil, err
	}
	return marshalResult(result)
}

func (d *Dispatcher) ListResources(ctx context.Context, payload []byte) ([]byte, error) {
	var req ListResourcesRequest
	if err := unmarshalRequest(payload, &req); err != nil {
		return nil, err
	}
	result, err := d.plugin.ListResources(ctx, req)
	if err != nil {
		return nil, err
	}
	return marshalResult(result)
}

func (d *Dispatcher) ListResourceTemplates(ctx context.Context, payload []byte) ([]byte, error) {
	var req ListResourceTemplatesRequest
	if err := unmarshalRequest(payload, &req); err != nil {
		return nil, err
	}
	result, err := d.plugin.ListResourceTemplates(ctx, req)
	if err != nil {
		return nil, err
	}
	return marshalResult(result)
}

func (d *Dispatcher) ReadResource(ctx context.Context, payload []byte) ([]byte, error) {
	var req ReadResourceRequest
	if err := unmarshalRequest(payload, &req); err != nil {
		return nil, err
	}
	result, err := d.plugin.ReadResource(ctx, req)
	if err != nil {
		return nil, err
	}
	return marshalResult(result)
}

func (d *Dispatcher) Complete(ctx context.Context, payload []byte) ([]byte, error) {
	var req CompleteRequest
	if err := unmarshalRequest(payload, &req); err != nil {
		return nil, err
	}
	result, err := d.plugin.Complete(ctx, req)
	if err != nil {
		return nil, err
	}
	return marshalResult(result)
}

// RootsListChanged has no response payload; only success or failure.
func (d *Dispatcher) RootsListChanged(ctx context.Context, payload []byte) error {
	var notification RootsListChangedNotification
	if err := unmarshalRequest(payload, &notification); err != nil {
		return err
	}
	return d.plugin.OnRootsListChanged(ctx, notification)
}

func unmarshalRequest(payload []byte, v any) error {
	if len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("failed to decode request: %w", err)
	}
	return nil
}

func marshalResult(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return data, nil
}
