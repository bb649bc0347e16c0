package ops

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Document is the envelope form of an operation list. Generators emit
// either a bare array or this object.
type Document struct {
	Topic      string      `json:"topic,omitempty"`
	Operations []Operation `json:"operations"`
}

// Decode reads a bare JSON array of operations or a Document.
func Decode(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read operations: %w", err)
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("decode operations: empty input")
	}

	if trimmed[0] == '[' {
		var list []Operation
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("decode operations: %w", err)
		}
		return &Document{Operations: list}, nil
	}

	var doc Document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("decode operations: %w", err)
	}
	return &doc, nil
}

// FromMaps converts loosely-typed objects (as received from tool calls)
// into operations. Objects without a string "op" are reported by index.
func FromMaps(items []map[string]any) ([]Operation, error) {
	out := make([]Operation, 0, len(items))
	for i, item := range items {
		kind, ok := item["op"].(string)
		if !ok {
			return nil, fmt.Errorf("operation %d: missing string \"op\" field", i)
		}
		fields := make(map[string]any, len(item))
		for k, v := range item {
			if k != "op" {
				fields[k] = v
			}
		}
		out = append(out, Operation{Op: Kind(kind), Fields: fields})
	}
	return out, nil
}

// ToMaps is the inverse of FromMaps.
func ToMaps(list []Operation) []map[string]any {
	out := make([]map[string]any, len(list))
	for i, op := range list {
		m := make(map[string]any, len(op.Fields)+1)
		for k, v := range op.Fields {
			m[k] = v
		}
		m["op"] = string(op.Op)
		out[i] = m
	}
	return out
}
