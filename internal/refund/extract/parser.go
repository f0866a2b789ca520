package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	logx "github.com/refundflow/server/pkg/logger"

	"github.com/refundflow/server/internal/refund/tree"
)

// basic safety limits to avoid pathological inputs
const (
	maxContentLen = 32 * 1024 // 32KB
)

// ParseCandidates extracts a slot→value mapping from a model response. The
// response is expected to be a JSON object, possibly wrapped in markdown
// fences or surrounded by prose. Entries with unknown slots or out-of-domain
// values are dropped; array values collapse to their first element. A
// response with no parsable JSON object is an error, an empty object is not.
func ParseCandidates(content string) (map[tree.Slot]string, error) {
	if len(content) > maxContentLen {
		logx.Warn().
			Str("component", "extract_parser").
			Int("max_len", maxContentLen).
			Int("orig_len", len(content)).
			Msg("content truncated due to size limit")
		content = content[:maxContentLen]
	}

	content = stripFences(content)

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in extraction response")
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(content[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("unmarshal extraction response: %w", err)
	}

	out := make(map[tree.Slot]string, len(raw))
	for k, v := range raw {
		// Some models wrap single values in arrays; take the first element.
		if arr, ok := v.([]any); ok {
			if len(arr) == 0 {
				continue
			}
			v = arr[0]
		}
		s, ok := v.(string)
		if !ok {
			continue
		}
		slot := tree.Slot(strings.TrimSpace(k))
		value := strings.TrimSpace(s)
		if !tree.Known(slot) || !tree.ValidValue(slot, value) {
			logx.Debug().
				Str("slot", string(slot)).
				Str("value", value).
				Msg("Dropping unrecognised extraction candidate")
			continue
		}
		out[slot] = value
	}
	return out, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
