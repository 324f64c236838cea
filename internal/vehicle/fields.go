package vehicle

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Helpers for decoding legacy backend payloads. Keys are tried in order and
// the first present one wins; numerics may arrive as JSON numbers or quoted
// strings ("450"), booleans as true/"1"/"yes".

func firstRaw(m map[string]json.RawMessage, keys ...string) (json.RawMessage, bool) {
	for _, k := range keys {
		if raw, ok := m[k]; ok && len(raw) > 0 && string(raw) != "null" {
			return raw, true
		}
	}
	return nil, false
}

func PickString(m map[string]json.RawMessage, keys ...string) string {
	raw, ok := firstRaw(m, keys...)
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	// numeric id serialized without quotes
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func PickFloat(m map[string]json.RawMessage, keys ...string) float64 {
	raw, ok := firstRaw(m, keys...)
	if !ok {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f
		}
	}
	return 0
}

func PickBool(m map[string]json.RawMessage, keys ...string) bool {
	raw, ok := firstRaw(m, keys...)
	if !ok {
		return false
	}
	return parseBool(raw)
}

func parseBool(raw json.RawMessage) bool {
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f != 0
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "1", "true", "yes", "y":
			return true
		}
	}
	return false
}

func PickStrings(m map[string]json.RawMessage, keys ...string) []string {
	raw, ok := firstRaw(m, keys...)
	if !ok {
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}
	// legacy rows store amenities as a comma-separated string
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		out := []string{}
		for _, part := range strings.Split(s, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
		return out
	}
	return nil
}
