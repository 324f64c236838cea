package upstream

import (
	"bytes"
	"encoding/json"
)

// The legacy backend has accumulated several response shapes for the same
// resources: a raw array, or an object wrapping it under "vehicles", "data"
// or "results". Extractors are tried in that order; the first one yielding a
// non-empty array wins. An empty array is not usable data, it is a failed
// extraction.

// Extractor attempts to pull a non-empty JSON array out of a response body.
type Extractor func(body []byte) (json.RawMessage, bool)

func extractRawArray(body []byte) (json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(body)
	var arr []json.RawMessage
	if err := json.Unmarshal(trimmed, &arr); err != nil || len(arr) == 0 {
		return nil, false
	}
	return json.RawMessage(trimmed), true
}

func extractKey(key string) Extractor {
	return func(body []byte) (json.RawMessage, bool) {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(bytes.TrimSpace(body), &obj); err != nil {
			return nil, false
		}
		raw, ok := obj[key]
		if !ok {
			return nil, false
		}
		var arr []json.RawMessage
		if err := json.Unmarshal(raw, &arr); err != nil || len(arr) == 0 {
			return nil, false
		}
		return raw, true
	}
}

var defaultExtractors = []Extractor{
	extractRawArray,
	extractKey("vehicles"),
	extractKey("data"),
	extractKey("results"),
}

// ExtractArray normalizes a response body into its canonical array form.
func ExtractArray(body []byte) (json.RawMessage, bool) {
	for _, ex := range defaultExtractors {
		if arr, ok := ex(body); ok {
			return arr, true
		}
	}
	return nil, false
}
