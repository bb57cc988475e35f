package manifest

import (
	"fmt"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jask/viewctrls/internal/viewctrls"
)

// parseTOML decodes into plain maps and restores table order from the
// decoder's key metadata.
func parseTOML(data []byte) (any, error) {
	var m map[string]any
	md, err := toml.Decode(string(data), &m)
	if err != nil {
		return nil, fmt.Errorf("parse toml: %w", err)
	}
	if len(m) == 0 {
		return nil, nil
	}

	order := make(map[string][]string)
	for _, key := range md.Keys() {
		if len(key) == 0 {
			continue
		}
		parent := strings.Join(key[:len(key)-1], ".")
		name := key[len(key)-1]
		if !slices.Contains(order[parent], name) {
			order[parent] = append(order[parent], name)
		}
	}
	return orderTOML(nil, m, order), nil
}

func orderTOML(path []string, v any, order map[string][]string) any {
	switch v := v.(type) {
	case map[string]any:
		prefix := strings.Join(path, ".")
		names := slices.Clone(order[prefix])
		var rest []string
		for k := range v {
			if !slices.Contains(names, k) {
				rest = append(rest, k)
			}
		}
		slices.Sort(rest)
		names = append(names, rest...)

		out := make(viewctrls.MapSlice, 0, len(v))
		for _, k := range names {
			child, ok := v[k]
			if !ok {
				continue
			}
			out = append(out, viewctrls.MapItem{Key: k, Value: orderTOML(append(slices.Clone(path), k), child, order)})
		}
		return out
	case []map[string]any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = orderTOML(nil, item, nil)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = orderTOML(nil, item, nil)
		}
		return out
	case int64:
		return int(v)
	default:
		return v
	}
}
