package util

import (
	"encoding/json"
	"strconv"
	"strings"
)

// FirstNonEmpty возвращает первое непустое (после TrimSpace) значение или def
func FirstNonEmpty(def string, candidates ...string) string {
	for _, c := range candidates {
		if s := strings.TrimSpace(c); s != "" {
			return s
		}
	}
	return def
}

// Lookup достаёт строку по вложенному пути в произвольном JSON-объекте.
// Числа приводятся к строке, всё остальное — "".
func Lookup(content map[string]any, path ...string) string {
	v, ok := walk(content, path)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	}
	return ""
}

// LookupFloat достаёт число по вложенному пути; строки с числом тоже принимаются
func LookupFloat(content map[string]any, path ...string) (float64, bool) {
	v, ok := walk(content, path)
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	}
	return 0, false
}

func walk(content map[string]any, path []string) (any, bool) {
	if content == nil || len(path) == 0 {
		return nil, false
	}
	var cur any = content
	for _, p := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[p]
		if !ok || cur == nil {
			return nil, false
		}
	}
	return cur, true
}
