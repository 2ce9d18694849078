// Package pdk defines the plugin-side contract of the hyper-mcp runtime:
// the protocol request/result shapes exchanged with the host, the Plugin
// interface every plugin implements, the boundary dispatcher, and the
// reference resolver used by argument completion.
//
// The type shapes mirror the MCP protocol schema and are consumed as given;
// handlers build results exclusively through the New* constructors so that
// optional fields the protocol treats as meaningful (isError in particular)
// stay absent unless set deliberately.
package pdk

import "encoding/base64"

// RequestContext carries per-invocation information stamped by the host.
// It is owned by the single in-flight request and never retained.
type RequestContext struct {
	ID    string `json:"id,omitempty"`
	Roots []Root `json:"roots,omitempty"`
}

// Root is a filesystem or service root advertised by the peer.
type Root struct {
	URI  string `json:"uri"`
	Name string `json:"name,omitempty"`
}

// Content is a single content block in a tool or prompt result. Type is one
// of "text" or "image"; only the fields matching the type are populated.
type Content struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	Data     string `json:"data,omitempty"`
	MIMEType string `json:"mimeType,omitempty"`
}

func NewTextContent(text string) Content {
	return Content{Type: "text", Text: text}
}

// CallToolParams names the capability to execute and its arguments. Name may
// carry a plugin namespace ("plugin::tool") when used for cross-plugin calls.
type CallToolParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

type CallToolRequest struct {
	Context RequestContext `json:"context"`
	Request CallToolParams `json:"request"`
}

// CallToolResult is the outcome of a tool execution. IsError is a pointer so
// that an absent flag and an explicit false remain distinct on the wire.
type CallToolResult struct {
	Content           []Content      `json:"content"`
	StructuredContent map[string]any `json:"structuredContent,omitempty"`
	IsError           *bool          `json:"isError,omitempty"`
}

func NewToolResultText(text string) *CallToolResult {
	return &CallToolResult{Content: []Content{NewTextContent(text)}}
}

// NewToolResultError builds the in-band soft failure: a successful dispatch
// whose payload flags a user-facing problem.
func NewToolResultError(text string) *CallToolResult {
	isError := true
	return &CallToolResult{
		Content: []Content{NewTextContent(text)},
		IsError: &isError,
	}
}

// ToolSchema is a JSON schema fragment describing tool input or output.
type ToolSchema struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties,omitempty"`
	Required   []string       `json:"required,omitempty"`
}

// ToolAnnotations carry optional behavior hints for hosts.
type ToolAnnotations struct {
	Title           string `json:"title,omitempty"`
	ReadOnlyHint    *bool  `json:"readOnlyHint,omitempty"`
	DestructiveHint *bool  `json:"destructiveHint,omitempty"`
	IdempotentHint  *bool  `json:"idempotentHint,omitempty"`
}

// Tool describes one invokable capability in the catalog. Name is unique
// within a plugin's catalog.
type Tool struct {
	Name         string           `json:"name"`
	Title        string           `json:"title,omitempty"`
	Description  string           `json:"description,omitempty"`
	InputSchema  ToolSchema       `json:"inputSchema"`
	OutputSchema *ToolSchema      `json:"outputSchema,omitempty"`
	Annotations  *ToolAnnotations `json:"annotations,omitempty"`
}

type PromptArgument struct {
	Name        string `json:"name"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required,omitempty"`
}

type Prompt struct {
	Name        string           `json:"name"`
	Title       string           `json:"title,omitempty"`
	Description string           `json:"description,omitempty"`
	Arguments   []PromptArgument `json:"arguments,omitempty"`
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type PromptMessage struct {
	Role    Role    `json:"role"`
	Content Content `json:"content"`
}

type GetPromptParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

type GetPromptRequest struct {
	Context RequestContext  `json:"context"`
	Request GetPromptParams `json:"request"`
}

type GetPromptResult struct {
	Description string          `json:"description,omitempty"`
	Messages    []PromptMessage `json:"messages"`
}

// Resource is a concrete URI-addressed piece of content.
type Resource struct {
	Name        string `json:"name"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	MIMEType    string `json:"mimeType,omitempty"`
	URI         string `json:"uri"`
}

// ResourceTemplate is a URI pattern matching a family of resources.
type ResourceTemplate struct {
	Name        string `json:"name"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	MIMEType    string `json:"mimeType,omitempty"`
	URITemplate string `json:"uriTemplate"`
}

// ResourceContents holds the body of a read resource. Exactly one of Text or
// Blob is set; Blob carries base64-encoded bytes.
type ResourceContents struct {
	URI      string `json:"uri"`
	MIMEType string `json:"mimeType,omitempty"`
	Text     string `json:"text,omitempty"`
	Blob     string `json:"blob,omitempty"`
}

func NewTextResourceContents(uri, mimeType, text string) ResourceContents {
	return ResourceContents{URI: uri, MIMEType: mimeType, Text: text}
}

func NewBlobResourceContents(uri, mimeType string, body []byte) ResourceContents {
	return ResourceContents{
		URI:      uri,
		MIMEType: mimeType,
		Blob:     base64.StdEncoding.EncodeToString(body),
	}
}

type ReadResourceParams struct {
	URI string `json:"uri"`
}

type ReadResourceRequest struct {
	Context RequestContext     `json:"context"`
	Request ReadResourceParams `json:"request"`
}

// ReadResourceResult is never an error at the dispatch level: a URI the
// plugin does not own yields an empty Contents slice.
type ReadResourceResult struct {
	Contents []ResourceContents `json:"contents"`
}

// ListParams carries the pagination cursor shared by all listing requests.
// The cursor is reserved by the protocol schema; this runtime returns full
// catalog snapshots and never populates or consumes it.
type ListParams struct {
	Cursor string `json:"cursor,omitempty"`
}

type ListToolsRequest struct {
	Context RequestContext `json:"context"`
	Request ListParams     `json:"request"`
}

type ListToolsResult struct {
	Tools      []Tool `json:"tools"`
	NextCursor string `json:"nextCursor,omitempty"`
}

type ListPromptsRequest struct {
	Context RequestContext `json:"context"`
	Request ListParams     `json:"request"`
}

type ListPromptsResult struct {
	Prompts    []Prompt `json:"prompts"`
	NextCursor string   `json:"nextCursor,omitempty"`
}

type ListResourcesRequest struct {
	Context RequestContext `json:"context"`
	Request ListParams     `json:"request"`
}

type ListResourcesResult struct {
	Resources  []Resource `json:"resources"`
	NextCursor string     `json:"nextCursor,omitempty"`
}

type ListResourceTemplatesRequest struct {
	Context RequestContext `json:"context"`
	Request ListParams     `json:"request"`
}

type ListResourceTemplatesResult struct {
	ResourceTemplates []ResourceTemplate `json:"resourceTemplates"`
	NextCursor        string             `json:"nextCursor,omitempty"`
}

// CompleteArgument names the argument being completed and its partial value.
type CompleteArgument struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// CompleteParams carries the untyped reference map; use ResolveReference to
// obtain the typed variant.
type CompleteParams struct {
	Ref      map[string]any   `json:"ref"`
	Argument CompleteArgument `json:"argument"`
}

type CompleteRequest struct {
	Context RequestContext `json:"context"`
	Request CompleteParams `json:"request"`
}

// Completion is the suggestion set for a completion request. Values holds at
// most completion.MaxValues entries in match order; Total counts every match;
// HasMore is always derived as Total > len(Values).
type Completion struct {
	Values  []string `json:"values"`
	Total   int      `json:"total"`
	HasMore bool     `json:"hasMore"`
}

type CompleteResult struct {
	Completion Completion `json:"completion"`
}

// RootsListChangedNotification tells the plugin the peer's roots changed.
// Fire and forget: there is no response payload.
type RootsListChangedNotification struct {
	Context RequestContext `json:"context"`
}
