package forest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/perfkit/eventforest/internal/trace"
)

// Test vocabulary. Kind ids are arbitrary; the engine only ever compares
// them against the bindings in Semantics and the rule list.
const (
	attrRequestID trace.AttrKind = 1
	attrStepName  trace.AttrKind = 2
	attrIterNum   trace.AttrKind = 3
	attrModelID   trace.AttrKind = 4
	attrProdType  trace.AttrKind = 5
	attrProdID    trace.AttrKind = 6
	attrConsType  trace.AttrKind = 7
	attrConsID    trace.AttrKind = 8

	attrGroupID   trace.AttrKind = 100
	attrGroupName trace.AttrKind = 101
	attrRelated   trace.AttrKind = 102
	attrIsEager   trace.AttrKind = 103
)

const (
	kindStep    trace.EventKind = 1
	kindOp      trace.EventKind = 2
	kindIter    trace.EventKind = 3
	kindFuncRun trace.EventKind = 4
	kindAsyncOp trace.EventKind = 5
	kindKernel  trace.EventKind = 6
	kindRPCSend trace.EventKind = 7
	kindRPCRecv trace.EventKind = 8
)

func testSemantics() Semantics {
	return Semantics{
		ProducerTypeAttr:   attrProdType,
		ProducerIDAttr:     attrProdID,
		ConsumerTypeAttr:   attrConsType,
		ConsumerIDAttr:     attrConsID,
		GroupIDAttr:        attrGroupID,
		GroupNameAttr:      attrGroupName,
		RelatedGroupsAttr:  attrRelated,
		IsEagerAttr:        attrIsEager,
		NameAttr:           attrStepName,
		ModelIDAttr:        attrModelID,
		IterNumAttr:        attrIterNum,
		LoopIterationKind:  kindIter,
		FunctionRunKind:    kindFuncRun,
		AsyncDispatchKinds: []trace.EventKind{kindAsyncOp},
		EagerKinds:         []trace.EventKind{kindKernel},
		ScheduledKinds:     []trace.EventKind{kindFuncRun, kindStep},
	}
}

func ev(kind trace.EventKind, start, dur int64, attrs ...trace.Attr) trace.Event {
	return trace.Event{Kind: kind, StartNs: start, DurationNs: dur, Attrs: attrs}
}

func ia(kind trace.AttrKind, v int64) trace.Attr {
	return trace.Attr{Kind: kind, Value: trace.Int64Value(v)}
}

func sa(kind trace.AttrKind, v string) trace.Attr {
	return trace.Attr{Kind: kind, Value: trace.StrValue(v)}
}

func multiLineTrace(lines ...[]trace.Event) *trace.Trace {
	t := &trace.Trace{Planes: []trace.Plane{{ID: 0, Name: "host"}}}
	for i, events := range lines {
		t.Planes[0].Lines = append(t.Planes[0].Lines, trace.Line{ID: int64(i), Events: events})
	}
	return t
}

// grow runs the engine with the test semantics.
func grow(t *testing.T, tr *trace.Trace, opts Options) *Forest {
	t.Helper()
	opts.Semantics = testSemantics()
	f, err := New(tr, opts)
	require.NoError(t, err)
	f.Grow()
	return f
}

// groupIDOf reads the group id written back to an event, the engine's
// externally observable output.
func groupIDOf(t *testing.T, e *trace.Event) int64 {
	t.Helper()
	v, ok := e.Attr(attrGroupID)
	require.True(t, ok, "event has no group id attribute")
	gid, ok := v.Int64()
	require.True(t, ok)
	return gid
}

func TestNewRejectsNilTrace(t *testing.T) {
	_, err := New(nil, Options{})
	require.Error(t, err)
}

func TestGrowTwiceIsNoOp(t *testing.T) {
	tr := multiLineTrace([]trace.Event{ev(kindStep, 0, 10)})
	f := grow(t, tr, Options{RootKinds: []trace.EventKind{kindStep}})
	first := f.Stats()
	f.Grow()
	require.Equal(t, first, f.Stats())
}

func TestGrowPlaneConvenience(t *testing.T) {
	plane := trace.Plane{ID: 1, Lines: []trace.Line{{ID: 0, Events: []trace.Event{
		ev(kindStep, 0, 10), ev(kindOp, 2, 4),
	}}}}
	f, err := NewPlane(plane, Options{
		RootKinds: []trace.EventKind{kindStep},
		Semantics: testSemantics(),
	})
	require.NoError(t, err)
	f.Grow()
	require.Equal(t, int64(1), f.Stats().GroupsCreated)
	require.Equal(t, 2, f.NodeCount())
}
