package forest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perfkit/eventforest/internal/trace"
)

func TestBuildReport(t *testing.T) {
	// Two groups: [0,50) with two events, [100,140) with one.
	tr := multiLineTrace([]trace.Event{
		ev(kindStep, 0, 50, sa(attrStepName, "a")),
		ev(kindOp, 10, 10),
		ev(kindStep, 100, 40, sa(attrStepName, "b")),
	})
	f := grow(t, tr, Options{RootKinds: []trace.EventKind{kindStep}})

	rep := f.BuildReport()
	require.Len(t, rep.Groups, 2)

	assert.Equal(t, int64(0), rep.Groups[0].ID)
	assert.Equal(t, "a", rep.Groups[0].Name)
	assert.Equal(t, 2, rep.Groups[0].Size)
	assert.Equal(t, int64(50), rep.Groups[0].DurationNs)

	assert.Equal(t, int64(1), rep.Groups[1].ID)
	assert.Equal(t, 1, rep.Groups[1].Size)
	assert.Equal(t, int64(40), rep.Groups[1].DurationNs)

	assert.InDelta(t, 1.5, rep.MeanSize, 1e-9)
	assert.InDelta(t, 45.0, rep.MeanDurationNs, 1e-9)
	assert.Greater(t, rep.StddevDurationNs, 0.0)
}

func TestBuildReportEmptyTrace(t *testing.T) {
	f := grow(t, &trace.Trace{}, Options{})

	rep := f.BuildReport()
	assert.Empty(t, rep.Groups)
	assert.Zero(t, rep.MeanSize)
	assert.Zero(t, rep.StddevDurationNs)
}

func TestReportCarriesCrossGroupDependencies(t *testing.T) {
	tr := multiLineTrace(
		[]trace.Event{
			ev(kindStep, 0, 50),
			ev(kindRPCRecv, 10, 10, ia(attrRequestID, 7)),
		},
		[]trace.Event{
			ev(kindStep, 0, 50, ia(attrRequestID, 7)),
		},
	)
	rule := ConnectRule{
		ParentKind: kindStep,
		ChildKind:  kindRPCRecv,
		ParentKeys: []trace.AttrKind{attrRequestID},
		ChildKeys:  []trace.AttrKind{attrRequestID},
	}
	f := grow(t, tr, Options{
		Rules:     []ConnectRule{rule},
		RootKinds: []trace.EventKind{kindStep},
	})

	rep := f.BuildReport()
	require.Len(t, rep.Groups, 2)
	assert.Equal(t, []int64{1}, rep.Groups[0].Parents)
	assert.Equal(t, []int64{0}, rep.Groups[1].Children)
}
