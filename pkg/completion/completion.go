// Package completion implements the suggestion engine behind the
// completion/complete entry point: substring matching of a normalized partial
// value against a fixed candidate corpus, with capped output and uncapped
// totals.
package completion

import (
	"strings"

	"github.com/ReliQuery/hyper-mcp/pkg/pdk"
)

// MaxValues caps how many suggestions a single result may carry. Total keeps
// counting past the cap.
const MaxValues = 100

// Corpus is an immutable candidate set in a stable enumeration order.
// Construct once per plugin, query on every completion request.
type Corpus struct {
	names      []string
	normalized []string
}

func NewCorpus(names []string) *Corpus {
	normalized := make([]string, len(names))
	for i, name := range names {
		normalized[i] = Normalize(name)
	}
	return &Corpus{names: names, normalized: normalized}
}

// Len reports the full corpus size.
func (c *Corpus) Len() int {
	return len(c.names)
}

// Normalize folds a value for matching: ASCII lowercase, internal spaces
// mapped to the corpus's underscore convention.
func Normalize(value string) string {
	return strings.ReplaceAll(strings.ToLower(value), " ", "_")
}

// Complete matches the partial value against every candidate in corpus order.
// An empty partial matches everything; that is the contract, not an edge to
// special-case. HasMore is derived from Total, never set independently.
func (c *Corpus) Complete(partial string) pdk.Completion {
	query := Normalize(partial)

	values := make([]string, 0, MaxValues)
	total := 0
	for i, normalized := range c.normalized {
		if !strings.Contains(normalized, query) {
			continue
		}
		total++
		if len(values) < MaxValues {
			values = append(values, c.names[i])
		}
	}

	return pdk.Completion{
		Values:  values,
		Total:   total,
		HasMore: total > len(values),
	}
}
