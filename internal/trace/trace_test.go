package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueEqual(t *testing.T) {
	cases := []struct {
		name string
		a, b Value
		want bool
	}{
		{"int64 equal", Int64Value(7), Int64Value(7), true},
		{"int64 differ", Int64Value(7), Int64Value(8), false},
		{"type mismatch", Int64Value(7), Uint64Value(7), false},
		{"string equal", StrValue("x"), StrValue("x"), true},
		{"string differ", StrValue("x"), StrValue("y"), false},
		{"bool equal", BoolValue(true), BoolValue(true), true},
		{"float equal", Float64Value(1.5), Float64Value(1.5), true},
		{"list equal", Int64ListValue([]int64{1, 2}), Int64ListValue([]int64{1, 2}), true},
		{"list differ", Int64ListValue([]int64{1, 2}), Int64ListValue([]int64{1, 3}), false},
		{"list length differ", Int64ListValue([]int64{1}), Int64ListValue([]int64{1, 2}), false},
		{"none equal", Value{}, Value{}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Equal(tc.b))
		})
	}
}

func TestValueCoercion(t *testing.T) {
	u, ok := Int64Value(7).AsUint64()
	require.True(t, ok)
	assert.Equal(t, uint64(7), u)

	_, ok = Int64Value(-1).AsUint64()
	assert.False(t, ok)

	i, ok := Uint64Value(9).AsInt64()
	require.True(t, ok)
	assert.Equal(t, int64(9), i)

	_, ok = StrValue("7").AsInt64()
	assert.False(t, ok)
}

func TestEventAttrLookupAndSet(t *testing.T) {
	e := Event{Kind: 1, StartNs: 0, DurationNs: 10}

	_, ok := e.Attr(5)
	assert.False(t, ok)

	e.SetAttr(5, Int64Value(42))
	v, ok := e.Attr(5)
	require.True(t, ok)
	got, _ := v.Int64()
	assert.Equal(t, int64(42), got)

	// SetAttr replaces in place rather than appending a duplicate.
	e.SetAttr(5, Int64Value(43))
	assert.Len(t, e.Attrs, 1)
	v, _ = e.Attr(5)
	got, _ = v.Int64()
	assert.Equal(t, int64(43), got)
}

func TestEndNs(t *testing.T) {
	e := Event{StartNs: 5, DurationNs: 10}
	assert.Equal(t, int64(15), e.EndNs())

	zero := Event{StartNs: 5}
	assert.Equal(t, int64(5), zero.EndNs(), "zero-duration events end at their start")
}

func TestEventCount(t *testing.T) {
	tr := Trace{Planes: []Plane{
		{Lines: []Line{
			{Events: []Event{{}, {}}},
			{Events: []Event{{}}},
		}},
		{Lines: []Line{{Events: []Event{{}}}}},
	}}
	assert.Equal(t, 4, tr.EventCount())
}
