package ghostfolio

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// lookup returns the value at path in v.
func lookup(v any, path string) (any, bool) {
	jval, err := jsonpath.Get(path, v)
	if err != nil || jval == nil {
		return nil, false
	}
	return jval, true
}

// scalar is like lookup, but keeps the first element when path selects a
// list of answers.
func scalar(v any, path string) (any, bool) {
	jval, ok := lookup(v, path)
	if jlist, isList := jval.([]any); ok && isList {
		if len(jlist) == 0 {
			return nil, false
		}
		jval = jlist[0]
	}
	return jval, ok && jval != nil
}

// list returns v itself when it is a list, or the first list found at paths.
func list(v any, paths ...string) ([]any, bool) {
	if l, ok := v.([]any); ok {
		return l, true
	}
	for _, p := range paths {
		if jval, ok := lookup(v, p); ok {
			if l, ok := jval.([]any); ok {
				return l, true
			}
		}
	}
	return nil, false
}

// toFloat converts JSON numbers and numeric strings.
func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// number returns the first numeric value found at paths.
func number(v any, paths ...string) (float64, bool) {
	for _, p := range paths {
		if jval, ok := scalar(v, p); ok {
			if f, ok := toFloat(jval); ok {
				return f, true
			}
		}
	}
	return 0, false
}

// text returns the first non empty string found at paths.
func text(v any, paths ...string) string {
	for _, p := range paths {
		if jval, ok := scalar(v, p); ok {
			if s, ok := jval.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// boolean returns the value at path, false when missing.
func boolean(v any, path string) bool {
	jval, _ := scalar(v, path)
	b, _ := jval.(bool)
	return b
}
