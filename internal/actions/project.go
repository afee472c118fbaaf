package actions

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/gwork/gwork-cli/internal/nav"
)

// Projection and field-parsing helpers shared by the service tables.

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func arr(m map[string]any, key string) []map[string]any {
	raw, _ := m[key].([]any)
	out := make([]map[string]any, 0, len(raw))
	for _, v := range raw {
		if mm, ok := v.(map[string]any); ok {
			out = append(out, mm)
		}
	}
	return out
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// detailJSON renders a response document for the detail pane.
func detailJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "unrenderable response"
	}
	return string(b)
}

func field(label, placeholder string, required bool) nav.Field {
	return nav.Field{Label: label, Placeholder: placeholder, Required: required}
}

func multilineField(label, placeholder string, required bool) nav.Field {
	return nav.Field{Label: label, Placeholder: placeholder, Required: required, Multiline: true}
}

func fieldVal(st *nav.State, i int) string {
	if i < 0 || i >= len(st.Fields) {
		return ""
	}
	return strings.TrimSpace(st.Fields[i].Value)
}

func intVal(st *nav.State, i int, def int64) int64 {
	v := fieldVal(st, i)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}

func floatVal(st *nav.State, i int, def float64) float64 {
	v := fieldVal(st, i)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

// splitComma parses a comma-separated field into trimmed entries, dropping
// empties.
func splitComma(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func boolVal(st *nav.State, i int, def bool) bool {
	v := strings.ToLower(fieldVal(st, i))
	switch v {
	case "y", "yes", "true", "1":
		return true
	case "n", "no", "false", "0":
		return false
	}
	return def
}

// jsonVal parses a field holding embedded JSON, nil when empty or malformed.
func jsonVal(st *nav.State, i int) any {
	v := fieldVal(st, i)
	if v == "" {
		return nil
	}
	var out any
	if err := json.Unmarshal([]byte(v), &out); err != nil {
		return nil
	}
	return out
}
