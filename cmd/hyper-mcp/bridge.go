package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ReliQuery/hyper-mcp/pkg/host"
	"github.com/ReliQuery/hyper-mcp/pkg/pdk"
	"github.com/ReliQuery/hyper-mcp/pkg/policy"
)

// The bridge projects each plugin's catalog onto the mcp-go server and
// forwards incoming requests through each plugin's pdk.Dispatcher, so the
// serving path crosses the same JSON boundary a remote host would. Argument
// completion has no server surface in the pinned mcp-go version; it stays
// reachable through the dispatcher only.
func registerCapabilities(s *server.MCPServer, plugins []pdk.Plugin, toolPolicy *policy.Policy) {
	registerTools(s, plugins, toolPolicy)
	registerPrompts(s, plugins)
	registerResourceTemplates(s, plugins)
	registerNotifications(s, plugins)
}

func registerTools(s *server.MCPServer, plugins []pdk.Plugin, toolPolicy *policy.Policy) {
	ctx := context.Background()
	for _, plugin := range plugins {
		p := plugin
		listing, err := p.ListTools(ctx, pdk.ListToolsRequest{Context: host.NewRequestContext()})
		if err != nil {
			slog.Error("failed to list plugin tools", "plugin", p.Name(), "error", err)
			continue
		}
		for _, tool := range listing.Tools {
			name := tool.Name
			decision := toolPolicy.Evaluate(p.Name(), name)
			if decision == policy.Deny {
				slog.Warn("tool blocked by policy", "plugin", p.Name(), "tool", name)
				continue
			}

			dispatcher := pdk.NewDispatcher(p)
			s.AddTool(buildServerTool(tool), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				callDecision := toolPolicy.Evaluate(p.Name(), name)
				if callDecision == policy.Deny {
					return mcp.NewToolResultError("tool blocked by policy"), nil
				}
				if callDecision == policy.Confirm {
					if !confirmTool(p.Name(), name) {
						return mcp.NewToolResultError("tool execution denied by user"), nil
					}
				}
				args, ok := request.Params.Arguments.(map[string]interface{})
				if !ok {
					args = make(map[string]interface{})
				}
				result, err := dispatchToolCall(ctx, dispatcher, pdk.CallToolRequest{
					Context: host.NewRequestContext(),
					Request: pdk.CallToolParams{Name: name, Arguments: args},
				})
				if err != nil {
					return nil, err
				}
				return convertToolResult(result), nil
			})
			slog.Info("tool registered", "plugin", p.Name(), "tool", name)
		}
	}
}

func registerPrompts(s *server.MCPServer, plugins []pdk.Plugin) {
	ctx := context.Background()
	for _, plugin := range plugins {
		p := plugin
		listing, err := p.ListPrompts(ctx, pdk.ListPromptsRequest{Context: host.NewRequestContext()})
		if err != nil {
			slog.Error("failed to list plugin prompts", "plugin", p.Name(), "error", err)
			continue
		}
		for _, prompt := range listing.Prompts {
			name := prompt.Name
			dispatcher := pdk.NewDispatcher(p)
			s.AddPrompt(buildServerPrompt(prompt), func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
				args := make(map[string]any, len(request.Params.Arguments))
				for key, value := range request.Params.Arguments {
					args[key] = value
				}
				result, err := dispatchPromptGet(ctx, dispatcher, pdk.GetPromptRequest{
					Context: host.NewRequestContext(),
					Request: pdk.GetPromptParams{Name: name, Arguments: args},
				})
				if err != nil {
					return nil, err
				}
				return convertPromptResult(result), nil
			})
			slog.Info("prompt registered", "plugin", p.Name(), "prompt", name)
		}
	}
}

func registerResourceTemplates(s *server.MCPServer, plugins []pdk.Plugin) {
	ctx := context.Background()
	for _, plugin := range plugins {
		p := plugin
		listing, err := p.ListResourceTemplates(ctx, pdk.ListResourceTemplatesRequest{Context: host.NewRequestContext()})
		if err != nil {
			slog.Error("failed to list plugin resource templates", "plugin", p.Name(), "error", err)
			continue
		}
		for _, template := range listing.ResourceTemplates {
			serverTemplate := mcp.NewResourceTemplate(
				template.URITemplate,
				template.Name,
				mcp.WithTemplateDescription(template.Description),
				mcp.WithTemplateMIMEType(template.MIMEType),
			)
			dispatcher := pdk.NewDispatcher(p)
			s.AddResourceTemplate(serverTemplate, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
				result, err := dispatchResourceRead(ctx, dispatcher, pdk.ReadResourceRequest{
					Context: host.NewRequestContext(),
					Request: pdk.ReadResourceParams{URI: request.Params.URI},
				})
				if err != nil {
					return nil, err
				}
				return convertResourceContents(result.Contents), nil
			})
			slog.Info("resource template registered", "plugin", p.Name(), "template", template.Name)
		}
	}
}

func registerNotifications(s *server.MCPServer, plugins []pdk.Plugin) {
	s.AddNotificationHandler(pdk.MethodRootsListChanged, func(ctx context.Context, notification mcp.JSONRPCNotification) {
		for _, p := range plugins {
			if err := p.OnRootsListChanged(ctx, pdk.RootsListChangedNotification{Context: host.NewRequestContext()}); err != nil {
				slog.Warn("roots notification failed", "plugin", p.Name(), "error", err)
			}
		}
	})
}

// dispatchToolCall pushes a tool call through the plugin's JSON boundary and
// decodes the typed result back out.
func dispatchToolCall(ctx context.Context, d *pdk.Dispatcher, req pdk.CallToolRequest) (*pdk.CallToolResult, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tool request: %w", err)
	}
	out, err := d.CallTool(ctx, payload)
	if err != nil {
		return nil, err
	}
	var result pdk.CallToolResult
	if err := json.Unmarshal(out, &result); err != nil {
		return nil, fmt.Errorf("failed to decode tool result: %w", err)
	}
	return &result, nil
}

func dispatchPromptGet(ctx context.Context, d *pdk.Dispatcher, req pdk.GetPromptRequest) (*pdk.GetPromptResult, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode prompt request: %w", err)
	}
	out, err := d.GetPrompt(ctx, payload)
	if err != nil {
		return nil, err
	}
	var result pdk.GetPromptResult
	if err := json.Unmarshal(out, &result); err != nil {
		return nil, fmt.Errorf("failed to decode prompt result: %w", err)
	}
	return &result, nil
}

func dispatchResourceRead(ctx context.Context, d *pdk.Dispatcher, req pdk.ReadResourceRequest) (*pdk.ReadResourceResult, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode resource request: %w", err)
	}
	out, err := d.ReadResource(ctx, payload)
	if err != nil {
		return nil, err
	}
	var result pdk.ReadResourceResult
	if err := json.Unmarshal(out, &result); err != nil {
		return nil, fmt.Errorf("failed to decode resource result: %w", err)
	}
	return &result, nil
}

func buildServerTool(tool pdk.Tool) mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(tool.Description),
	}
	if tool.Title != "" {
		opts = append(opts, mcp.WithTitleAnnotation(tool.Title))
	}
	serverTool := mcp.NewTool(tool.Name, opts...)
	serverTool.InputSchema = mcp.ToolInputSchema{
		Type:       tool.InputSchema.Type,
		Properties: tool.InputSchema.Properties,
		Required:   tool.InputSchema.Required,
	}
	if tool.OutputSchema != nil {
		serverTool.OutputSchema = mcp.ToolOutputSchema{
			Type:       tool.OutputSchema.Type,
			Properties: tool.OutputSchema.Properties,
			Required:   tool.OutputSchema.Required,
		}
	}
	return serverTool
}

func buildServerPrompt(prompt pdk.Prompt) mcp.Prompt {
	opts := []mcp.PromptOption{
		mcp.WithPromptDescription(prompt.Description),
	}
	for _, arg := range prompt.Arguments {
		argOpts := []mcp.ArgumentOption{
			mcp.ArgumentDescription(arg.Description),
		}
		if arg.Required {
			argOpts = append(argOpts, mcp.RequiredArgument())
		}
		opts = append(opts, mcp.WithArgument(arg.Name, argOpts...))
	}
	return mcp.NewPrompt(prompt.Name, opts...)
}

func convertToolResult(result *pdk.CallToolResult) *mcp.CallToolResult {
	converted := &mcp.CallToolResult{
		Content: convertContent(result.Content),
		IsError: result.IsError != nil && *result.IsError,
	}
	if result.StructuredContent != nil {
		converted.StructuredContent = result.StructuredContent
	}
	return converted
}

func convertContent(blocks []pdk.Content) []mcp.Content {
	content := make([]mcp.Content, 0, len(blocks))
	for _, block := range blocks {
		switch block.Type {
		case "image":
			content = append(content, mcp.ImageContent{
				Type:     "image",
				Data:     block.Data,
				MIMEType: block.MIMEType,
			})
		default:
			content = append(content, mcp.TextContent{
				Type: "text",
				Text: block.Text,
			})
		}
	}
	return content
}

func convertPromptResult(result *pdk.GetPromptResult) *mcp.GetPromptResult {
	messages := make([]mcp.PromptMessage, 0, len(result.Messages))
	for _, message := range result.Messages {
		role := mcp.RoleUser
		if message.Role == pdk.RoleAssistant {
			role = mcp.RoleAssistant
		}
		messages = append(messages, mcp.PromptMessage{
			Role: role,
			Content: mcp.TextContent{
				Type: "text",
				Text: message.Content.Text,
			},
		})
	}
	return &mcp.GetPromptResult{
		Description: result.Description,
		Messages:    messages,
	}
}

func convertResourceContents(contents []pdk.ResourceContents) []mcp.ResourceContents {
	converted := make([]mcp.ResourceContents, 0, len(contents))
	for _, item := range contents {
		if item.Blob != "" {
			converted = append(converted, mcp.BlobResourceContents{
				URI:      item.URI,
				MIMEType: item.MIMEType,
				Blob:     item.Blob,
			})
			continue
		}
		converted = append(converted, mcp.TextResourceContents{
			URI:      item.URI,
			MIMEType: item.MIMEType,
			Text:     item.Text,
		})
	}
	return converted
}

type capabilitySummary struct {
	Plugin      string `json:"plugin"`
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
}

func collectCapabilitySummaries(plugins []pdk.Plugin, toolPolicy *policy.Policy) []capabilitySummary {
	ctx := context.Background()
	var summaries []capabilitySummary
	for _, p := range plugins {
		listing, err := p.ListTools(ctx, pdk.ListToolsRequest{Context: host.NewRequestContext()})
		if err != nil {
			slog.Error("failed to list plugin tools", "plugin", p.Name(), "error", err)
			continue
		}
		for _, tool := range listing.Tools {
			decision := toolPolicy.Evaluate(p.Name(), tool.Name)
			status := "allowed"
			if decision == policy.Confirm {
				status = "confirm"
			} else if decision == policy.Deny {
				status = "denied"
			}
			summaries = append(summaries, capabilitySummary{
				Plugin:      p.Name(),
				Name:        tool.Name,
				Kind:        "tool",
				Description: tool.Description,
				Status:      status,
			})
		}
		prompts, err := p.ListPrompts(ctx, pdk.ListPromptsRequest{Context: host.NewRequestContext()})
		if err != nil {
			slog.Error("failed to list plugin prompts", "plugin", p.Name(), "error", err)
			continue
		}
		for _, prompt := range prompts.Prompts {
			summaries = append(summaries, capabilitySummary{
				Plugin:      p.Name(),
				Name:        prompt.Name,
				Kind:        "prompt",
				Description: prompt.Description,
				Status:      "allowed",
			})
		}
	}
	return summaries
}
