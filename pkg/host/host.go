// Package host is the in-process side of the plugin contract: a registry of
// loaded plugins and the single host function plugins use to call tools on
// each other.
package host

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/ReliQuery/hyper-mcp/pkg/config"
	"github.com/ReliQuery/hyper-mcp/pkg/pdk"
)

// NamespaceSeparator splits a cross-plugin tool name into plugin and tool
// parts. It is a naming convention, not an enforced grammar: names without a
// separator resolve within the calling plugin.
const NamespaceSeparator = "::"

// Registry holds the loaded plugins. Registration happens before Load; the
// set is immutable afterwards and safe for concurrent reads.
type Registry struct {
	mu       sync.RWMutex
	plugins  map[string]pdk.Plugin
	loadOnce sync.Once
}

func NewRegistry() *Registry {
	return &Registry{plugins: make(map[string]pdk.Plugin)}
}

func (r *Registry) Register(name string, plugin pdk.Plugin) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.plugins[name]; exists {
		panic(fmt.Sprintf("plugin already registered: %s", name))
	}
	r.plugins[name] = plugin
}

// Load initializes every enabled plugin once, handing each its host
// functions, and returns the loaded set in name order. Plugins exposing an
// Enabled(cfg) method are skipped when it reports false.
func (r *Registry) Load(cfg *config.Config) ([]pdk.Plugin, error) {
	var loadErr error
	r.loadOnce.Do(func() {
		r.mu.Lock()
		defer r.mu.Unlock()

		for name, plugin := range r.plugins {
			if toggleable, ok := plugin.(interface {
				Enabled(cfg *config.Config) bool
			}); ok && !toggleable.Enabled(cfg) {
				slog.Info("plugin disabled", "name", name)
				delete(r.plugins, name)
				continue
			}
			if err := plugin.Init(cfg, r.Funcs(name)); err != nil {
				loadErr = fmt.Errorf("failed to init plugin %s: %w", name, err)
				return
			}
		}
	})

	if loadErr != nil {
		return nil, loadErr
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.plugins))
	for name := range r.plugins {
		names = append(names, name)
	}
	sort.Strings(names)

	loaded := make([]pdk.Plugin, 0, len(names))
	for _, name := range names {
		slog.Info("plugin loaded", "name", name)
		loaded = append(loaded, r.plugins[name])
	}
	return loaded, nil
}

// Plugin looks up a loaded plugin by name.
func (r *Registry) Plugin(name string) (pdk.Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	plugin, ok := r.plugins[name]
	return plugin, ok
}

// Funcs returns the host functions handed to the named plugin. The caller
// name anchors namespace-less tool names.
func (r *Registry) Funcs(caller string) pdk.HostFunctions {
	return &hostFunctions{registry: r, caller: caller}
}

// NewRequestContext stamps a fresh context for one host-driven invocation.
func NewRequestContext() pdk.RequestContext {
	return pdk.RequestContext{ID: uuid.NewString()}
}

type hostFunctions struct {
	registry *Registry
	caller   string
}

// CallTool routes a (possibly namespaced) tool call to the target plugin.
// A missing target or a dispatch fault is a call-level failure returned as an
// error; a result with IsError set is the target's own in-band failure and is
// passed through untouched. The two are never conflated here.
func (h *hostFunctions) CallTool(ctx context.Context, params pdk.CallToolParams) (*pdk.CallToolResult, error) {
	pluginName, toolName := SplitToolName(params.Name, h.caller)

	target, ok := h.registry.Plugin(pluginName)
	if !ok {
		return nil, &pdk.NotFoundError{Kind: "plugin", Name: pluginName}
	}

	slog.Debug("cross-plugin call", "caller", h.caller, "plugin", pluginName, "tool", toolName)

	req := pdk.CallToolRequest{
		Context: NewRequestContext(),
		Request: pdk.CallToolParams{Name: toolName, Arguments: params.Arguments},
	}
	return target.CallTool(ctx, req)
}

// SplitToolName resolves "plugin::tool" into its parts; a bare name belongs
// to the fallback namespace.
func SplitToolName(name, fallback string) (plugin, tool string) {
	if before, after, found := strings.Cut(name, NamespaceSeparator); found {
		return before, after
	}
	return fallback, name
}
