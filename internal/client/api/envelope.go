package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Page is the canonical list shape callers see, no matter which envelope
// dialect the backend used for a given endpoint.
type Page[T any] struct {
	Items []T
	Count int
}

// listEnvelope matches both list dialects at once: classic DRF pagination
// ({results, count}) and the wrapped form ({success, message, data:{...}}).
type listEnvelope[T any] struct {
	Results []T             `json:"results"`
	Count   *int            `json:"count"`
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// decodePage normalizes the three observed list response shapes into a
// Page: a bare JSON array, {results, count}, and {success, message, data}
// where data is either of the first two.
func decodePage[T any](body []byte) (*Page[T], error) {
	trimmed := bytes.TrimSpace(body)

	// Bare array: no count available, use the item count.
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("failed to decode list response: %w", err)
		}
		return &Page[T]{Items: items, Count: len(items)}, nil
	}

	var env listEnvelope[T]
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("failed to decode list response: %w", err)
	}

	// Wrapped: recurse once into data.
	if env.Results == nil && len(env.Data) > 0 {
		return decodePage[T](env.Data)
	}

	page := &Page[T]{Items: env.Results}
	if page.Items == nil {
		page.Items = []T{}
	}
	if env.Count != nil {
		page.Count = *env.Count
	} else {
		page.Count = len(page.Items)
	}
	return page, nil
}

// unwrapEnvelope strips the {success, message, data} wrapper from a detail
// response when present; any other shape passes through untouched.
func unwrapEnvelope(body []byte) []byte {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed
	}

	var env struct {
		Success *bool           `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return trimmed
	}
	if env.Success != nil && len(env.Data) > 0 {
		return env.Data
	}
	return trimmed
}
