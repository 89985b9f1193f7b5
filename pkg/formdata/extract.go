package formdata

import (
	"strconv"
	"strings"
)

// Record is a raw, JSON-shaped external payload. Sections and leaves may
// be absent, null, or carry the wrong type; lookups tolerate all of it.
type Record map[string]any

// Transform post-processes an extracted value (date formatting, synonym
// normalization). A nil Transform passes the value through.
type Transform func(string) string

// Rule binds one canonical field to an ordered list of candidate source
// paths. The first path yielding a non-empty value wins. Paths use dot
// notation to descend into nested sections ("personal.party_name").
type Rule struct {
	Field     string
	Sources   []string
	Transform Transform
}

// Extract runs a rule table over a raw record, producing a value for
// every rule's field (possibly empty). When loose is true, each path
// segment that misses is retried under its snake_case spelling, so a
// table written in camelCase accepts snake_case payloads for free.
func Extract(raw Record, rules []Rule, loose bool) map[string]string {
	out := make(map[string]string, len(rules))
	for _, rule := range rules {
		value := ""
		for _, path := range rule.Sources {
			if v := lookup(raw, path, loose); v != "" {
				value = v
				break
			}
		}
		if value != "" && rule.Transform != nil {
			value = rule.Transform(value)
		}
		out[rule.Field] = value
	}
	return out
}

func lookup(raw Record, path string, loose bool) string {
	if raw == nil {
		return ""
	}

	var current any = map[string]any(raw)
	for _, segment := range strings.Split(path, ".") {
		node, ok := current.(map[string]any)
		if !ok {
			return ""
		}
		value, found := node[segment]
		if !found && loose {
			value, found = node[toSnakeCase(segment)]
		}
		if !found {
			return ""
		}
		current = value
	}

	return stringify(current)
}

func stringify(v any) string {
	switch value := v.(type) {
	case string:
		return strings.TrimSpace(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	case int:
		return strconv.Itoa(value)
	default:
		// nested objects, arrays, nulls: not a leaf value
		return ""
	}
}

func toSnakeCase(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
