package trace

// AttrKind identifies an attribute type. The mapping from kind to semantic
// meaning is owned by the caller's vocabulary, not by this package.
type AttrKind int64

// EventKind identifies an event type.
type EventKind int64

// ValueType discriminates the payload of a Value.
type ValueType int8

const (
	ValueNone ValueType = iota
	ValueBool
	ValueInt64
	ValueUint64
	ValueFloat64
	ValueStr
	ValueInt64List
)

// Value is a typed attribute value.
type Value struct {
	T  ValueType `json:"t"`
	B  bool      `json:"b,omitempty"`
	I  int64     `json:"i,omitempty"`
	U  uint64    `json:"u,omitempty"`
	F  float64   `json:"f,omitempty"`
	S  string    `json:"s,omitempty"`
	IL []int64   `json:"il,omitempty"`
}

// BoolValue wraps a bool.
func BoolValue(v bool) Value { return Value{T: ValueBool, B: v} }

// Int64Value wraps an int64.
func Int64Value(v int64) Value { return Value{T: ValueInt64, I: v} }

// Uint64Value wraps a uint64.
func Uint64Value(v uint64) Value { return Value{T: ValueUint64, U: v} }

// Float64Value wraps a float64.
func Float64Value(v float64) Value { return Value{T: ValueFloat64, F: v} }

// StrValue wraps a string.
func StrValue(v string) Value { return Value{T: ValueStr, S: v} }

// Int64ListValue wraps a list of int64.
func Int64ListValue(v []int64) Value { return Value{T: ValueInt64List, IL: v} }

// Bool returns the bool payload.
func (v Value) Bool() (bool, bool) { return v.B, v.T == ValueBool }

// Int64 returns the int64 payload.
func (v Value) Int64() (int64, bool) { return v.I, v.T == ValueInt64 }

// Uint64 returns the uint64 payload.
func (v Value) Uint64() (uint64, bool) { return v.U, v.T == ValueUint64 }

// Float64 returns the float64 payload.
func (v Value) Float64() (float64, bool) { return v.F, v.T == ValueFloat64 }

// Str returns the string payload.
func (v Value) Str() (string, bool) { return v.S, v.T == ValueStr }

// Int64List returns the int64-list payload.
func (v Value) Int64List() ([]int64, bool) { return v.IL, v.T == ValueInt64List }

// AsUint64 coerces integer payloads to uint64 for id-style attributes.
func (v Value) AsUint64() (uint64, bool) {
	switch v.T {
	case ValueUint64:
		return v.U, true
	case ValueInt64:
		if v.I < 0 {
			return 0, false
		}
		return uint64(v.I), true
	}
	return 0, false
}

// AsInt64 coerces integer payloads to int64.
func (v Value) AsInt64() (int64, bool) {
	switch v.T {
	case ValueInt64:
		return v.I, true
	case ValueUint64:
		return int64(v.U), true
	}
	return 0, false
}

// Equal reports whether two values have the same type and payload.
func (v Value) Equal(o Value) bool {
	if v.T != o.T {
		return false
	}
	switch v.T {
	case ValueNone:
		return true
	case ValueBool:
		return v.B == o.B
	case ValueInt64:
		return v.I == o.I
	case ValueUint64:
		return v.U == o.U
	case ValueFloat64:
		return v.F == o.F
	case ValueStr:
		return v.S == o.S
	case ValueInt64List:
		if len(v.IL) != len(o.IL) {
			return false
		}
		for i := range v.IL {
			if v.IL[i] != o.IL[i] {
				return false
			}
		}
		return true
	}
	return false
}

// Attr is one typed attribute on an event.
type Attr struct {
	Kind  AttrKind `json:"kind"`
	Value Value    `json:"value"`
}

// Event is one timestamped occurrence on a line.
type Event struct {
	Kind       EventKind `json:"kind"`
	Name       string    `json:"name,omitempty"`
	StartNs    int64     `json:"start_ns"`
	DurationNs int64     `json:"duration_ns"`
	Attrs      []Attr    `json:"attrs,omitempty"`
}

// EndNs returns the exclusive end of the event's interval. Zero-duration
// events end at their start time.
func (e *Event) EndNs() int64 { return e.StartNs + e.DurationNs }

// Attr looks up an attribute value by kind.
func (e *Event) Attr(kind AttrKind) (Value, bool) {
	for i := range e.Attrs {
		if e.Attrs[i].Kind == kind {
			return e.Attrs[i].Value, true
		}
	}
	return Value{}, false
}

// SetAttr writes an attribute, replacing any existing value of the same kind.
func (e *Event) SetAttr(kind AttrKind, v Value) {
	for i := range e.Attrs {
		if e.Attrs[i].Kind == kind {
			e.Attrs[i].Value = v
			return
		}
	}
	e.Attrs = append(e.Attrs, Attr{Kind: kind, Value: v})
}

// Line is one thread of a plane.
type Line struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name,omitempty"`
	Events []Event `json:"events,omitempty"`
}

// Plane is one trace source (a device or process).
type Plane struct {
	ID    int64  `json:"id"`
	Name  string `json:"name,omitempty"`
	Lines []Line `json:"lines,omitempty"`
}

// Trace is a materialized collection of planes.
type Trace struct {
	Planes []Plane `json:"planes,omitempty"`
}

// EventCount returns the total number of events across all planes.
func (t *Trace) EventCount() int {
	n := 0
	for pi := range t.Planes {
		for li := range t.Planes[pi].Lines {
			n += len(t.Planes[pi].Lines[li].Events)
		}
	}
	return n
}
