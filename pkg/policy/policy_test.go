package policy

import (
	"testing"

	"github.com/ReliQuery/hyper-mcp/pkg/config"
)

func TestEvaluateDenyList(t *testing.T) {
	p := New(config.PolicyConfig{DenyTools: []string{"rstime/get_time"}}, false)
	if got := p.Evaluate("rstime", "get_time"); got != Deny {
		t.Fatalf("expected deny, got %v", got)
	}
	if got := p.Evaluate("rstime", "parse_time"); got != Allow {
		t.Fatalf("expected allow, got %v", got)
	}
}

func TestEvaluateAllowListExcludesOthers(t *testing.T) {
	p := New(config.PolicyConfig{AllowPlugins: []string{"rstime"}}, false)
	if got := p.Evaluate("rstime", "get_time"); got != Allow {
		t.Fatalf("expected allow, got %v", got)
	}
	if got := p.Evaluate("wrapper", "wrapper"); got != Deny {
		t.Fatalf("expected deny for plugin outside allow list, got %v", got)
	}
}

func TestEvaluateConfirm(t *testing.T) {
	p := New(config.PolicyConfig{ConfirmTools: []string{"wrapper/*"}}, false)
	if got := p.Evaluate("wrapper", "wrapper"); got != Confirm {
		t.Fatalf("expected confirm, got %v", got)
	}
}

func TestSafeModeBlocksSensitiveTools(t *testing.T) {
	p := New(config.PolicyConfig{}, true)
	if got := p.Evaluate("demo", "delete_everything"); got != Deny {
		t.Fatalf("expected deny in safe mode, got %v", got)
	}
	if got := p.Evaluate("rstime", "get_time"); got != Allow {
		t.Fatalf("expected allow for read-only tool, got %v", got)
	}
}
