// Package ops defines the Operation record shared by every composition
// stage, together with typed accessors over its open field set.
package ops

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
)

// Positional field names recognised by the grid snapper and validator.
const (
	FieldX      = "x"
	FieldY      = "y"
	FieldWidth  = "width"
	FieldHeight = "height"
	FieldDX     = "dx"
	FieldDY     = "dy"
	FieldFrom   = "from"
	FieldTo     = "to"
	FieldText   = "text"

	// FieldGenerated marks operations inserted by the pipeline rather than
	// produced by the generator.
	FieldGenerated = "generated"
)

// PathFields lists the array fields whose elements are points.
var PathFields = []string{"points", "path", "vertices"}

// Operation is one drawing instruction. Op is the discriminator; Fields
// holds every other key of the JSON object and is passed through untouched
// unless a stage explicitly rewrites a key.
type Operation struct {
	Op     Kind
	Fields map[string]any
}

// New builds an operation of kind k from alternating key/value pairs.
func New(k Kind, kv ...any) Operation {
	op := Operation{Op: k, Fields: make(map[string]any, len(kv)/2)}
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		op.Fields[key] = kv[i+1]
	}
	return op
}

// Clone returns a copy whose field map can be modified without touching o.
// Values themselves are shared; callers replacing a slice value must copy it.
func (o Operation) Clone() Operation {
	fields := make(map[string]any, len(o.Fields))
	for k, v := range o.Fields {
		fields[k] = v
	}
	return Operation{Op: o.Op, Fields: fields}
}

// Has reports whether key is present, regardless of type.
func (o Operation) Has(key string) bool {
	_, ok := o.Fields[key]
	return ok
}

// Float returns the numeric value stored under key. Non-numeric and
// non-finite values read as absent.
func (o Operation) Float(key string) (float64, bool) {
	v, ok := o.Fields[key]
	if !ok {
		return 0, false
	}
	return toFloat(v)
}

// SetFloat stores v under key. The receiver's map must not be shared.
func (o Operation) SetFloat(key string, v float64) {
	o.Fields[key] = v
}

// SetDefault stores v under key only when key is absent.
func (o Operation) SetDefault(key string, v any) {
	if _, ok := o.Fields[key]; !ok {
		o.Fields[key] = v
	}
}

// StringField returns the string stored under key, or "" when absent or not a
// string.
func (o Operation) StringField(key string) string {
	s, _ := o.Fields[key].(string)
	return s
}

// Generated reports whether the pipeline inserted this operation.
func (o Operation) Generated() bool {
	b, _ := o.Fields[FieldGenerated].(bool)
	return b
}

// Text is shorthand for StringField(FieldText).
func (o Operation) Text() string {
	return o.StringField(FieldText)
}

// Position returns the x/y pair when both are numeric.
func (o Operation) Position() (x, y float64, ok bool) {
	x, okX := o.Float(FieldX)
	y, okY := o.Float(FieldY)
	return x, y, okX && okY
}

// Point reads a two-component tuple such as "from" or "to".
func (o Operation) Point(key string) (x, y float64, ok bool) {
	return PointValue(o.Fields[key])
}

// PointValue reads the first two components of an [x, y, ...] array or the
// x/y keys of an object.
func PointValue(v any) (x, y float64, ok bool) {
	switch p := v.(type) {
	case []any:
		if len(p) < 2 {
			return 0, 0, false
		}
		x, okX := toFloat(p[0])
		y, okY := toFloat(p[1])
		return x, y, okX && okY
	case []float64:
		if len(p) < 2 {
			return 0, 0, false
		}
		return p[0], p[1], true
	case map[string]any:
		x, okX := toFloat(p[FieldX])
		y, okY := toFloat(p[FieldY])
		return x, y, okX && okY
	}
	return 0, 0, false
}

// Points returns the raw elements of a path-like array field.
func (o Operation) Points(key string) ([]any, bool) {
	switch p := o.Fields[key].(type) {
	case []any:
		return p, true
	case [][]float64:
		out := make([]any, len(p))
		for i, pt := range p {
			out[i] = pt
		}
		return out, true
	}
	return nil, false
}

func toFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// MarshalJSON flattens the operation into a single object keyed by "op"
// plus every field.
func (o Operation) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(o.Fields)+1)
	for k, v := range o.Fields {
		out[k] = v
	}
	out["op"] = o.Op
	return json.Marshal(out)
}

// UnmarshalJSON splits the "op" discriminator from the remaining fields.
func (o *Operation) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	kind, ok := raw["op"].(string)
	if !ok {
		return fmt.Errorf("operation missing string \"op\" field")
	}
	delete(raw, "op")
	o.Op = Kind(kind)
	o.Fields = raw
	if o.Fields == nil {
		o.Fields = map[string]any{}
	}
	return nil
}

// Equal deep-compares two operation lists, treating nil and empty field
// maps as equal.
func Equal(a, b []Operation) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Op != b[i].Op {
			return false
		}
		if len(a[i].Fields) == 0 && len(b[i].Fields) == 0 {
			continue
		}
		if !reflect.DeepEqual(a[i].Fields, b[i].Fields) {
			return false
		}
	}
	return true
}

// CopyList returns a new slice holding clones of every operation.
func CopyList(list []Operation) []Operation {
	out := make([]Operation, len(list))
	for i, op := range list {
		out[i] = op.Clone()
	}
	return out
}
