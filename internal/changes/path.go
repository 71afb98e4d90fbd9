package changes

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/logging"
	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/model"
)

// pathSegment is one dot-separated step of a change path. Bracket segments
// such as clips[intro] address an array element by its name field rather
// than by numeric index, which keeps paths stable across reordering.
type pathSegment struct {
	field string
	key   string
}

// parsePath splits a path like "timeline.clips[intro].backgroundColor"
// into segments.
func parsePath(path string) ([]pathSegment, error) {
	if path == "" {
		return nil, fmt.Errorf("changes: empty path")
	}
	parts := strings.Split(path, ".")
	segs := make([]pathSegment, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("changes: empty segment in path %q", path)
		}
		open := strings.IndexByte(p, '[')
		if open < 0 {
			segs = append(segs, pathSegment{field: p})
			continue
		}
		if open == 0 || !strings.HasSuffix(p, "]") {
			return nil, fmt.Errorf("changes: malformed segment %q in path %q", p, path)
		}
		key := p[open+1 : len(p)-1]
		if key == "" {
			return nil, fmt.Errorf("changes: empty key in segment %q", p)
		}
		segs = append(segs, pathSegment{field: p[:open], key: key})
	}
	return segs, nil
}

// ApplyChange deep-clones base, walks change.Path and assigns NewValue at
// the addressed location. Any missing intermediate aborts the whole
// application and returns the original base untouched, so a bad path can
// never partially corrupt state. Malformed changes are accepted upstream
// and simply fail here, logged for diagnostics only.
func ApplyChange(base *model.SessionResults, change model.Change, logger logging.Logger) *model.SessionResults {
	if base == nil {
		return nil
	}
	segs, err := parsePath(change.Path)
	if err != nil {
		if logger != nil {
			logger.Warn("discarding change with malformed path",
				logging.Field{Key: "path", Value: change.Path},
				logging.Field{Key: "error", Value: err.Error()})
		}
		return base
	}

	doc, err := toDocument(base)
	if err != nil {
		if logger != nil {
			logger.Error("cloning working state", logging.Field{Key: "error", Value: err.Error()})
		}
		return base
	}

	// Walk to the parent of the final segment.
	cur := any(doc)
	for _, seg := range segs[:len(segs)-1] {
		next, ok := step(cur, seg)
		if !ok {
			if logger != nil {
				logger.Warn("change path does not resolve",
					logging.Field{Key: "path", Value: change.Path},
					logging.Field{Key: "segment", Value: seg.field})
			}
			return base
		}
		cur = next
	}

	if !assign(cur, segs[len(segs)-1], change.NewValue) {
		if logger != nil {
			logger.Warn("change path does not resolve",
				logging.Field{Key: "path", Value: change.Path},
				logging.Field{Key: "segment", Value: segs[len(segs)-1].field})
		}
		return base
	}

	out, err := fromDocument(doc)
	if err != nil {
		if logger != nil {
			logger.Warn("applied change does not fit the data model",
				logging.Field{Key: "path", Value: change.Path},
				logging.Field{Key: "error", Value: err.Error()})
		}
		return base
	}
	return out
}

// Replay applies an ordered change stack onto base. Replay is idempotent
// and order-preserving: re-applying the same stack to its own output
// yields the same result.
func Replay(base *model.SessionResults, stack []model.Change, logger logging.Logger) *model.SessionResults {
	out := base
	for _, c := range stack {
		out = ApplyChange(out, c, logger)
	}
	return out
}

// toDocument converts the typed working state into a generic JSON document
// so paths can address it dynamically. The round trip doubles as the deep
// clone.
func toDocument(r *model.SessionResults) (map[string]any, error) {
	raw, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func fromDocument(doc map[string]any) (*model.SessionResults, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var out model.SessionResults
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// step resolves one intermediate segment against the current node.
func step(cur any, seg pathSegment) (any, bool) {
	m, ok := cur.(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok := m[seg.field]
	if !ok || v == nil {
		return nil, false
	}
	if seg.key == "" {
		return v, true
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, false
	}
	if item, _ := namedElement(arr, seg.key); item != nil {
		return item, true
	}
	return nil, false
}

// assign writes value at the final segment under parent. The final field
// itself may be new; only intermediates are required to exist.
func assign(parent any, seg pathSegment, value any) bool {
	m, ok := parent.(map[string]any)
	if !ok {
		return false
	}
	if seg.key == "" {
		m[seg.field] = value
		return true
	}
	arr, ok := m[seg.field].([]any)
	if !ok {
		return false
	}
	if _, idx := namedElement(arr, seg.key); idx >= 0 {
		arr[idx] = value
		return true
	}
	return false
}

// namedElement finds the array element whose "name" field equals key.
func namedElement(arr []any, key string) (map[string]any, int) {
	for i, item := range arr {
		if im, ok := item.(map[string]any); ok {
			if name, ok := im["name"].(string); ok && name == key {
				return im, i
			}
		}
	}
	return nil, -1
}
