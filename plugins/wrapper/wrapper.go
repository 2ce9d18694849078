// Package wrapper is the cross-plugin example plugin: it fetches the current
// time from the rstime plugin through the host call and re-wraps the result,
// keeping the target's success signal visible in its own payload.
package wrapper

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ReliQuery/hyper-mcp/pkg/config"
	"github.com/ReliQuery/hyper-mcp/pkg/pdk"
)

const (
	PluginName = "wrapper"

	wrapperTool    = "wrapper"
	wrappedTimeOp  = "get_wrapped_time"
	targetToolName = "rstime::get_time"
)

type Plugin struct {
	cfg  *config.Config
	host pdk.HostFunctions
}

func New() *Plugin {
	return &Plugin{}
}

func (p *Plugin) Name() string {
	return PluginName
}

func (p *Plugin) Enabled(cfg *config.Config) bool {
	return cfg.Plugins.Wrapper.Enabled
}

func (p *Plugin) Init(cfg *config.Config, host pdk.HostFunctions) error {
	p.cfg = cfg
	p.host = host
	return nil
}

func (p *Plugin) CallTool(ctx context.Context, req pdk.CallToolRequest) (*pdk.CallToolResult, error) {
	if req.Request.Name != wrapperTool {
		return nil, &pdk.NotFoundError{Kind: "tool", Name: req.Request.Name}
	}

	operation, ok := req.Request.Arguments["name"].(string)
	if !ok {
		return pdk.NewToolResultError("Error: 'name' argument is required"), nil
	}

	switch operation {
	case wrappedTimeOp:
		return p.handleWrappedTime(ctx)
	default:
		return pdk.NewToolResultError(fmt.Sprintf("Error: unknown operation '%s'", operation)), nil
	}
}

// handleWrappedTime keeps the two cross-plugin failure channels apart: a
// call-level error becomes a soft failure describing the broken call, while a
// tool-level failure from the target stays a normal result whose success flag
// is carried through in the wrapped payload.
func (p *Plugin) handleWrappedTime(ctx context.Context) (*pdk.CallToolResult, error) {
	result, err := p.host.CallTool(ctx, pdk.CallToolParams{Name: targetToolName})
	if err != nil {
		return pdk.NewToolResultError(wrapPayload(map[string]any{
			"message": "Failed to call rstime plugin",
			"error":   err.Error(),
			"success": false,
		})), nil
	}

	targetFailed := result.IsError != nil && *result.IsError
	wrapped := pdk.NewToolResultText(wrapPayload(map[string]any{
		"message":   "Time retrieved via cross-plugin call",
		"time_data": result.Content,
		"success":   !targetFailed,
	}))
	isError := false
	wrapped.IsError = &isError
	return wrapped, nil
}

func wrapPayload(payload map[string]any) string {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf(`{"message":"failed to encode payload","error":%q,"success":false}`, err.Error())
	}
	return string(data)
}

func (p *Plugin) GetPrompt(ctx context.Context, req pdk.GetPromptRequest) (*pdk.GetPromptResult, error) {
	return nil, &pdk.NotFoundError{Kind: "prompt", Name: req.Request.Name}
}

func (p *Plugin) ListTools(ctx context.Context, req pdk.ListToolsRequest) (*pdk.ListToolsResult, error) {
	return &pdk.ListToolsResult{
		Tools: []pdk.Tool{{
			Name: wrapperTool,
			Description: "Wrapper tool that demonstrates cross-plugin tool calls. " +
				"The 'get_wrapped_time' operation calls the rstime plugin's get_time tool " +
				"through the host and returns the wrapped response.",
			InputSchema: pdk.ToolSchema{
				Type: "object",
				Properties: map[string]any{
					"name": map[string]any{
						"type":        "string",
						"description": "The name of the operation to perform.",
						"enum":        []string{wrappedTimeOp},
					},
				},
				Required: []string{"name"},
			},
		}},
	}, nil
}

func (p *Plugin) ListPrompts(ctx context.Context, req pdk.ListPromptsRequest) (*pdk.ListPromptsResult, error) {
	return &pdk.ListPromptsResult{Prompts: []pdk.Prompt{}}, nil
}

func (p *Plugin) ListResources(ctx context.Context, req pdk.ListResourcesRequest) (*pdk.ListResourcesResult, error) {
	return &pdk.ListResourcesResult{Resources: []pdk.Resource{}}, nil
}

func (p *Plugin) ListResourceTemplates(ctx context.Context, req pdk.ListResourceTemplatesRequest) (*pdk.ListResourceTemplatesResult, error) {
	return &pdk.ListResourceTemplatesResult{ResourceTemplates: []pdk.ResourceTemplate{}}, nil
}

func (p *Plugin) ReadResource(ctx context.Context, req pdk.ReadResourceRequest) (*pdk.ReadResourceResult, error) {
	return &pdk.ReadResourceResult{Contents: []pdk.ResourceContents{}}, nil
}

func (p *Plugin) Complete(ctx context.Context, req pdk.CompleteRequest) (*pdk.CompleteResult, error) {
	ref, err := pdk.ResolveReference(req.Request.Ref)
	if err != nil {
		return nil, err
	}

	switch r := ref.(type) {
	case pdk.PromptReference:
		return nil, &pdk.NotImplementedError{Subject: "prompt", Name: r.Name}
	case pdk.ResourceTemplateReference:
		return nil, &pdk.NotImplementedError{Subject: "resource", Name: r.URI}
	default:
		return nil, &pdk.NotImplementedError{Subject: "argument", Name: req.Request.Argument.Name}
	}
}

func (p *Plugin) OnRootsListChanged(ctx context.Context, notification pdk.RootsListChangedNotification) error {
	return nil
}

var _ pdk.Plugin = (*Plugin)(nil)
