package afl

import (
	"encoding/json"
	"strconv"
)

// The upstream wraps payloads inconsistently: flat objects, {"data": {...}},
// {"result": {...}}, sometimes stringified numbers. extractNumber and
// extractCaptain normalize the variants.

var wrapperKeys = []string{"data", "result", "team", "success"}

// extractNumber unmarshals body and searches the given keys at the top
// level and one wrapper level down. Returns ok=false if nothing matches.
func extractNumber(body []byte, keys ...string) (float64, bool) {
	var doc map[string]interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return 0, false
	}
	return findNumber(doc, keys, 0)
}

func findNumber(doc map[string]interface{}, keys []string, depth int) (float64, bool) {
	for _, key := range keys {
		if val, exists := doc[key]; exists {
			if f, ok := asNumber(val); ok {
				return f, true
			}
		}
	}
	if depth >= 2 {
		return 0, false
	}
	for _, wrap := range wrapperKeys {
		if inner, ok := doc[wrap].(map[string]interface{}); ok {
			if f, found := findNumber(inner, keys, depth+1); found {
				return f, true
			}
		}
	}
	return 0, false
}

// asNumber normalizes a stat value from the formats the upstream emits:
// plain numbers, stringified numbers, and {"total": n} style objects.
func asNumber(val interface{}) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, true
		}
		return 0, false
	case map[string]interface{}:
		for _, key := range []string{"total", "value", "count"} {
			if inner, exists := v[key]; exists && inner != nil {
				return asNumber(inner)
			}
		}
		return 0, false
	default:
		return 0, false
	}
}

// extractCaptain pulls a captain id/name pair out of the lineup or captain
// payload variants.
func extractCaptain(body []byte) (Captain, bool) {
	var doc map[string]interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return Captain{}, false
	}
	if c, ok := captainFrom(doc); ok {
		return c, true
	}
	for _, wrap := range wrapperKeys {
		if inner, ok := doc[wrap].(map[string]interface{}); ok {
			if c, found := captainFrom(inner); found {
				return c, true
			}
		}
	}
	return Captain{}, false
}

func captainFrom(doc map[string]interface{}) (Captain, bool) {
	// Nested object form: {"captain": {"id": ..., "name": ...}}
	if obj, ok := doc["captain"].(map[string]interface{}); ok {
		c := Captain{ID: asString(obj["id"]), Name: asString(obj["name"])}
		if c.ID != "" || c.Name != "" {
			return c, true
		}
	}
	// Flat form: {"captain_id": ..., "captain_name": ...}
	c := Captain{ID: asString(doc["captain_id"]), Name: asString(doc["captain_name"])}
	if c.ID != "" {
		return c, true
	}
	return Captain{}, false
}

func asString(val interface{}) string {
	switch v := val.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatInt(int64(v), 10)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}
