package pdk

import (
	"context"

	"github.com/ReliQuery/hyper-mcp/pkg/config"
)

// HostFunctions is the surface the host exposes to a running plugin. CallTool
// is the single cross-plugin entry point: the host routes the (possibly
// namespaced) name to the target plugin and returns its result.
//
// A non-nil error is a call-level failure: the target was not reached or the
// call faulted, and no typed result exists. A result with IsError set is a
// tool-level failure: the target executed and reported a user-facing problem.
// Callers must keep the two channels distinct.
type HostFunctions interface {
	CallTool(ctx context.Context, params CallToolParams) (*CallToolResult, error)
}

// Plugin is the contract a hyper-mcp plugin implements. Each method is one
// dispatch entry point; all run synchronously to completion, and no request
// or result outlives the call that owns it.
//
// Unknown capability names fail with *NotFoundError. Usage problems inside a
// known capability are reported as successful results with IsError set.
type Plugin interface {
	Name() string
	Init(cfg *config.Config, host HostFunctions) error

	CallTool(ctx context.Context, req CallToolRequest) (*CallToolResult, error)
	GetPrompt(ctx context.Context, req GetPromptRequest) (*GetPromptResult, error)
	ListTools(ctx context.Context, req ListToolsRequest) (*ListToolsResult, error)
	ListPrompts(ctx context.Context, req ListPromptsRequest) (*ListPromptsResult, error)
	ListResources(ctx context.Context, req ListResourcesRequest) (*ListResourcesResult, error)
	ListResourceTemplates(ctx context.Context, req ListResourceTemplatesRequest) (*ListResourceTemplatesResult, error)
	ReadResource(ctx context.Context, req ReadResourceRequest) (*ReadResourceResult, error)
	Complete(ctx context.Context, req CompleteRequest) (*CompleteResult, error)
	OnRootsListChanged(ctx context.Context, notification RootsListChangedNotification) error
}
