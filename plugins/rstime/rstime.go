// Package rstime is the timezone example plugin: current-time and time
// parsing tools, a localized-time prompt, timezone-name completion, and an
// HTML timezone-converter resource.
package rstime

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ReliQuery/hyper-mcp/pkg/completion"
	"github.com/ReliQuery/hyper-mcp/pkg/config"
	"github.com/ReliQuery/hyper-mcp/pkg/fetch"
	"github.com/ReliQuery/hyper-mcp/pkg/pdk"
	"github.com/ReliQuery/hyper-mcp/pkg/tzdb"
)

const (
	PluginName = "rstime"

	getTimeTool    = "get_time"
	parseTimeTool  = "parse_time"
	timezonePrompt = "get_time_with_timezone"

	converterTemplate = "https://www.timezoneconverter.com/cgi-bin/zoneinfo?tz={timezone}"
	converterPrefix   = "https://www.timezoneconverter.com/cgi-bin/zoneinfo?tz="
)

// rfc2822Layout matches the wire format the tools emit. Parsing additionally
// accepts the weekday-less and named-zone forms RFC 2822 allows.
const rfc2822Layout = time.RFC1123Z

var rfc2822ParseLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"2 Jan 2006 15:04:05 -0700",
	"2 Jan 2006 15:04:05 MST",
}

type Plugin struct {
	cfg     *config.Config
	fetcher fetch.Fetcher
	corpus  *completion.Corpus
	tools   []pdk.Tool
	prompts []pdk.Prompt
}

// New builds the plugin with its immutable catalog. A nil fetcher selects
// the HTTP collaborator at Init time; tests inject their own.
func New(fetcher fetch.Fetcher) *Plugin {
	return &Plugin{
		fetcher: fetcher,
		corpus:  completion.NewCorpus(tzdb.Names()),
		tools:   toolCatalog(),
		prompts: promptCatalog(),
	}
}

func (p *Plugin) Name() string {
	return PluginName
}

func (p *Plugin) Enabled(cfg *config.Config) bool {
	return cfg.Plugins.RSTime.Enabled
}

func (p *Plugin) Init(cfg *config.Config, _ pdk.HostFunctions) error {
	p.cfg = cfg
	if p.fetcher == nil {
		timeout := time.Duration(cfg.Plugins.RSTime.FetchTimeoutSeconds) * time.Second
		p.fetcher = fetch.NewHTTP(timeout)
	}
	return nil
}

func (p *Plugin) CallTool(ctx context.Context, req pdk.CallToolRequest) (*pdk.CallToolResult, error) {
	switch req.Request.Name {
	case getTimeTool:
		return p.handleGetTime(req.Request.Arguments)
	case parseTimeTool:
		return p.handleParseTime(req.Request.Arguments)
	default:
		return nil, &pdk.NotFoundError{Kind: "tool", Name: req.Request.Name}
	}
}

func (p *Plugin) handleGetTime(args map[string]any) (*pdk.CallToolResult, error) {
	zone := "UTC"
	if value, ok := args["timezone"].(string); ok {
		zone = value
	}

	loc, err := tzdb.Load(zone)
	if err != nil {
		return pdk.NewToolResultError(fmt.Sprintf("Error: Invalid timezone '%s': %v", zone, err)), nil
	}

	current := time.Now().In(loc).Format(rfc2822Layout)
	result := pdk.NewToolResultText(current)
	result.StructuredContent = map[string]any{"current_time": current}
	return result, nil
}

func (p *Plugin) handleParseTime(args map[string]any) (*pdk.CallToolResult, error) {
	value, ok := args["time"].(string)
	if !ok {
		return pdk.NewToolResultError("Error: 'time' argument is required"), nil
	}

	parsed, err := parseRFC2822(value)
	if err != nil {
		return pdk.NewToolResultError(fmt.Sprintf("Error parsing time: %v", err)), nil
	}

	timestamp := parsed.Unix()
	result := pdk.NewToolResultText(fmt.Sprintf("%d", timestamp))
	result.StructuredContent = map[string]any{"timestamp": timestamp}
	return result, nil
}

func parseRFC2822(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range rfc2822ParseLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// GetPrompt has no isError channel; an invalid timezone comes back as the
// assistant message body instead.
func (p *Plugin) GetPrompt(ctx context.Context, req pdk.GetPromptRequest) (*pdk.GetPromptResult, error) {
	if req.Request.Name != timezonePrompt {
		return nil, &pdk.NotFoundError{Kind: "prompt", Name: req.Request.Name}
	}

	zone := "UTC"
	if value, ok := req.Request.Arguments["timezone"].(string); ok {
		zone = value
	}

	if _, err := tzdb.Load(zone); err != nil {
		return &pdk.GetPromptResult{
			Messages: []pdk.PromptMessage{{
				Role:    pdk.RoleAssistant,
				Content: pdk.NewTextContent(fmt.Sprintf("Error: Invalid timezone '%s': %v", zone, err)),
			}},
		}, nil
	}

	return &pdk.GetPromptResult{
		Description: fmt.Sprintf("Information for %s", zone),
		Messages: []pdk.PromptMessage{{
			Role:    pdk.RoleAssistant,
			Content: pdk.NewTextContent(fmt.Sprintf("Please get the time for the timezone %s", zone)),
		}},
	}, nil
}

func (p *Plugin) ListTools(ctx context.Context, req pdk.ListToolsRequest) (*pdk.ListToolsResult, error) {
	return &pdk.ListToolsResult{Tools: p.tools}, nil
}

func (p *Plugin) ListPrompts(ctx context.Context, req pdk.ListPromptsRequest) (*pdk.ListPromptsResult, error) {
	return &pdk.ListPromptsResult{Prompts: p.prompts}, nil
}

func (p *Plugin) ListResources(ctx context.Context, req pdk.ListResourcesRequest) (*pdk.ListResourcesResult, error) {
	return &pdk.ListResourcesResult{Resources: []pdk.Resource{}}, nil
}

func (p *Plugin) ListResourceTemplates(ctx context.Context, req pdk.ListResourceTemplatesRequest) (*pdk.ListResourceTemplatesResult, error) {
	return &pdk.ListResourceTemplatesResult{
		ResourceTemplates: []pdk.ResourceTemplate{{
			Name:        "time_zone_converter",
			Title:       "TimeZone Converter",
			Description: "Display HTML page containing timezone information",
			MIMEType:    "text/html",
			URITemplate: converterTemplate,
		}},
	}, nil
}

// ReadResource never fails: a URI outside the converter template yields an
// empty result, and fetch problems come back as textual contents.
func (p *Plugin) ReadResource(ctx context.Context, req pdk.ReadResourceRequest) (*pdk.ReadResourceResult, error) {
	uri := req.Request.URI
	if !strings.HasPrefix(uri, converterPrefix) {
		return &pdk.ReadResourceResult{Contents: []pdk.ResourceContents{}}, nil
	}

	resp, err := p.fetcher.Fetch(ctx, uri, http.MethodGet)
	if err != nil {
		return &pdk.ReadResourceResult{
			Contents: []pdk.ResourceContents{
				pdk.NewTextResourceContents(uri, "text/plain", fmt.Sprintf("Error fetching resource: %v", err)),
			},
		}, nil
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &pdk.ReadResourceResult{
			Contents: []pdk.ResourceContents{
				pdk.NewTextResourceContents(uri, "text/plain", fmt.Sprintf("Error fetching resource: HTTP %d", resp.StatusCode)),
			},
		}, nil
	}

	return &pdk.ReadResourceResult{
		Contents: []pdk.ResourceContents{
			pdk.NewBlobResourceContents(uri, "text/html", resp.Body),
		},
	}, nil
}

// Complete serves exactly one (reference, argument) pair: the localized-time
// prompt or the converter template, argument "timezone".
func (p *Plugin) Complete(ctx context.Context, req pdk.CompleteRequest) (*pdk.CompleteResult, error) {
	ref, err := pdk.ResolveReference(req.Request.Ref)
	if err != nil {
		return nil, err
	}

	switch r := ref.(type) {
	case pdk.PromptReference:
		if r.Name != timezonePrompt {
			return nil, &pdk.NotImplementedError{Subject: "prompt", Name: r.Name}
		}
	case pdk.ResourceTemplateReference:
		if r.URI != converterTemplate {
			return nil, &pdk.NotImplementedError{Subject: "resource", Name: r.URI}
		}
	}

	if req.Request.Argument.Name != "timezone" {
		return nil, &pdk.NotImplementedError{Subject: "argument", Name: req.Request.Argument.Name}
	}

	return &pdk.CompleteResult{Completion: p.corpus.Complete(req.Request.Argument.Value)}, nil
}

func (p *Plugin) OnRootsListChanged(ctx context.Context, notification pdk.RootsListChangedNotification) error {
	// Peer roots are irrelevant to timezone lookups.
	return nil
}

func toolCatalog() []pdk.Tool {
	return []pdk.Tool{
		{
			Name:        getTimeTool,
			Title:       "Get Current Time",
			Description: "Returns the current time in the specified timezone. If no timezone is specified then UTC is used.",
			InputSchema: pdk.ToolSchema{
				Type: "object",
				Properties: map[string]any{
					"timezone": map[string]any{
						"type":        "string",
						"description": "The timezone to get the current time for, e.g. 'America/New_York'. Defaults to 'UTC' if not provided.",
					},
				},
			},
			OutputSchema: &pdk.ToolSchema{
				Type: "object",
				Properties: map[string]any{
					"current_time": map[string]any{
						"type":        "string",
						"description": "The current time in the specified timezone in RFC2822 format.",
					},
				},
				Required: []string{"current_time"},
			},
		},
		{
			Name:        parseTimeTool,
			Title:       "Parse Time from RFC2822",
			Description: "Parses a time string in RFC2822 format and returns the corresponding timestamp in UTC.",
			InputSchema: pdk.ToolSchema{
				Type: "object",
				Properties: map[string]any{
					"time": map[string]any{
						"type":        "string",
						"description": "The time string in RFC2822 format to parse.",
					},
				},
				Required: []string{"time"},
			},
			OutputSchema: &pdk.ToolSchema{
				Type: "object",
				Properties: map[string]any{
					"timestamp": map[string]any{
						"type":        "integer",
						"description": "The parsed timestamp in seconds since the Unix epoch.",
					},
				},
				Required: []string{"timestamp"},
			},
		},
	}
}

func promptCatalog() []pdk.Prompt {
	return []pdk.Prompt{{
		Name:        timezonePrompt,
		Title:       "Get Localized Time",
		Description: "Asks the assistant to get the time in a provided timezone",
		Arguments: []pdk.PromptArgument{{
			Name:        "timezone",
			Title:       "Timezone",
			Description: "The timezone to prompt for, will use UTC by default",
		}},
	}}
}

var _ pdk.Plugin = (*Plugin)(nil)
