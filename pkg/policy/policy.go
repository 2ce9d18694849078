package policy

import (
	"path"
	"strings"

	"github.com/ReliQuery/hyper-mcp/pkg/config"
)

type Decision int

const (
	Allow Decision = iota
	Deny
	Confirm
)

type Policy struct {
	cfg      config.PolicyConfig
	safeMode bool
}

func New(cfg config.PolicyConfig, safeMode bool) *Policy {
	return &Policy{cfg: cfg, safeMode: safeMode}
}

func (p *Policy) Evaluate(plugin, tool string) Decision {
	if p.safeMode && isSensitiveTool(tool) {
		return Deny
	}

	if matchesAny(p.cfg.DenyPlugins, plugin) || matchesAnyTool(p.cfg.DenyTools, plugin, tool) {
		return Deny
	}

	if hasAllowList(p.cfg) && !matchesAny(p.cfg.AllowPlugins, plugin) && !matchesAnyTool(p.cfg.AllowTools, plugin, tool) {
		return Deny
	}

	if matchesAnyTool(p.cfg.ConfirmTools, plugin, tool) {
		return Confirm
	}

	return Allow
}

func hasAllowList(cfg config.PolicyConfig) bool {
	return len(cfg.AllowPlugins) > 0 || len(cfg.AllowTools) > 0
}

func matchesAny(patterns []string, value string) bool {
	for _, pattern := range patterns {
		if matched, _ := path.Match(pattern, value); matched {
			return true
		}
	}
	return false
}

func matchesAnyTool(patterns []string, plugin, tool string) bool {
	qualified := plugin + "/" + tool
	for _, pattern := range patterns {
		if matched, _ := path.Match(pattern, tool); matched {
			return true
		}
		if matched, _ := path.Match(pattern, qualified); matched {
			return true
		}
	}
	return false
}

func isSensitiveTool(tool string) bool {
	lower := strings.ToLower(tool)
	sensitive := []string{"delete", "update", "write", "create", "apply", "patch", "exec"}
	for _, keyword := range sensitive {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
