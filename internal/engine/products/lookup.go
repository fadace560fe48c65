package products

import (
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// lookup walks obj along path. Any missing key or non-object step ends the
// walk with ok=false.
func lookup(obj map[string]any, path ...string) (any, bool) {
	var cur any = obj
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok || cur == nil {
			return nil, false
		}
	}
	return cur, true
}

func object(obj map[string]any, path ...string) map[string]any {
	v, ok := lookup(obj, path...)
	if !ok {
		return map[string]any{}
	}
	m, ok := v.(map[string]any)
	if !ok {
		return map[string]any{}
	}
	return m
}

func str(obj map[string]any, def string, path ...string) string {
	v, ok := lookup(obj, path...)
	if !ok {
		return def
	}
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return def
}

func number(obj map[string]any, path ...string) (decimal.Decimal, bool) {
	v, ok := lookup(obj, path...)
	if !ok {
		return decimal.Zero, false
	}
	switch t := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	case float64:
		return decimal.NewFromFloat(t), true
	case int:
		return decimal.NewFromInt(int64(t)), true
	case int64:
		return decimal.NewFromInt(t), true
	}
	return decimal.Zero, false
}

func integer(obj map[string]any, path ...string) int {
	d, ok := number(obj, path...)
	if !ok {
		return 0
	}
	return int(d.IntPart())
}

func boolean(obj map[string]any, path ...string) bool {
	v, ok := lookup(obj, path...)
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

func strs(obj map[string]any, path ...string) []string {
	out := []string{}
	v, ok := lookup(obj, path...)
	if !ok {
		return out
	}
	list, ok := v.([]any)
	if !ok {
		return out
	}
	for _, entry := range list {
		if s, ok := entry.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func objects(obj map[string]any, path ...string) []map[string]any {
	v, ok := lookup(obj, path...)
	if !ok {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(list))
	for _, entry := range list {
		if m, ok := entry.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// firstObject returns the first element of the list at path only when that
// element is an object. Later elements never stand in for it.
func firstObject(obj map[string]any, path ...string) (map[string]any, bool) {
	v, ok := lookup(obj, path...)
	if !ok {
		return nil, false
	}
	list, ok := v.([]any)
	if !ok || len(list) == 0 {
		return nil, false
	}
	m, ok := list[0].(map[string]any)
	return m, ok
}
