package forest

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/perfkit/eventforest/internal/infrastructure/logging"
	"github.com/perfkit/eventforest/internal/infrastructure/monitoring"
	"github.com/perfkit/eventforest/internal/trace"
)

// Options configures a grouping run. Rules, RootKinds, and Semantics are
// plain data supplied by the caller, so the same engine serves different
// tracing domains.
type Options struct {
	Rules     []ConnectRule
	RootKinds []trace.EventKind
	Semantics Semantics
	Logger    *logging.Logger
	Metrics   *monitoring.Metrics
}

// Stats counts what happened during a run, including the anomaly taxonomy.
type Stats struct {
	GroupsCreated    int64 `json:"groups_created"`
	NodesGrouped     int64 `json:"nodes_grouped"`
	NodesUngrouped   int64 `json:"nodes_ungrouped"`
	RuleMatches      int64 `json:"rule_matches"`
	ContextLinks     int64 `json:"context_links"`
	MissingAttrSkips int64 `json:"missing_attr_skips"`
	CyclesDetected   int64 `json:"cycles_detected"`
	UnknownRuleKinds int64 `json:"unknown_rule_kinds"`
}

// Forest owns all event nodes and group metadata for one trace. It is built
// once per run and torn down as a whole; nodes are mutated in place by each
// pass and never destroyed individually.
type Forest struct {
	tr      *trace.Trace
	opts    Options
	sem     Semantics
	log     *logging.Logger
	metrics *monitoring.Metrics

	nodes     []node
	byKind    map[trace.EventKind][]NodeID
	attrKinds map[trace.AttrKind]struct{}
	lineSpans []lineSpan

	rootEvents []NodeID
	loopRoots  []NodeID

	groups      map[int64]*GroupMetadata
	nextGroupID int64

	stats Stats
	grown bool
}

// New prepares a forest over the trace. The trace is mutated in place when
// Grow runs; the caller keeps ownership.
func New(tr *trace.Trace, opts Options) (*Forest, error) {
	if tr == nil {
		return nil, errors.New("forest: nil trace")
	}
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	return &Forest{
		tr:        tr,
		opts:      opts,
		sem:       opts.Semantics,
		log:       log,
		metrics:   opts.Metrics,
		byKind:    make(map[trace.EventKind][]NodeID),
		attrKinds: make(map[trace.AttrKind]struct{}),
		groups:    make(map[int64]*GroupMetadata),
	}, nil
}

// NewPlane prepares a forest over a single plane in isolation.
func NewPlane(plane trace.Plane, opts Options) (*Forest, error) {
	return New(&trace.Trace{Planes: []trace.Plane{plane}}, opts)
}

// Grow runs the full pass sequence: intra-thread nesting, inter-thread
// linking, root classification, and group assignment. It is a single batch
// pass over the static trace; anomalies are counted, never fatal. Calling
// Grow twice is a no-op.
func (f *Forest) Grow() {
	if f.grown {
		return
	}
	f.grown = true
	start := time.Now()

	idx := newContextIndex()
	f.connectIntraThread(idx)
	f.connectInterThread(f.opts.Rules)
	idx.connect(f) // index is transient; dropped after this

	f.markExplicitRoots(f.opts.RootKinds)
	f.detectLoops()
	f.mergeWorkers()

	f.createGroups()
	f.markEager()
	f.processModelIDs()
	f.writeRelatedGroups()

	elapsed := time.Since(start)
	f.publishMetrics(elapsed)
	f.log.Info("grouping complete",
		zap.Int("nodes", len(f.nodes)),
		zap.Int64("groups", f.stats.GroupsCreated),
		zap.Int64("ungrouped_nodes", f.stats.NodesUngrouped),
		zap.Int64("cycles", f.stats.CyclesDetected),
		zap.Duration("elapsed", elapsed))
}

// Groups returns the metadata for every assigned group id.
func (f *Forest) Groups() map[int64]*GroupMetadata {
	return f.groups
}

// Stats returns the run's counters.
func (f *Forest) Stats() Stats {
	return f.stats
}

// NodeCount returns the number of event nodes in the arena.
func (f *Forest) NodeCount() int {
	return len(f.nodes)
}

func (f *Forest) publishMetrics(elapsed time.Duration) {
	m := f.metrics
	if m == nil {
		return
	}
	m.GroupingRuns.Inc()
	m.GroupingDuration.Observe(elapsed.Seconds())
	m.GroupsCreated.Add(float64(f.stats.GroupsCreated))
	m.NodesGrouped.Add(float64(f.stats.NodesGrouped))
	m.NodesUngrouped.Add(float64(f.stats.NodesUngrouped))
	m.RuleMatches.Add(float64(f.stats.RuleMatches))
	m.ContextLinks.Add(float64(f.stats.ContextLinks))
	m.MissingAttrSkips.Add(float64(f.stats.MissingAttrSkips))
	m.CyclesDetected.Add(float64(f.stats.CyclesDetected))
	m.UnknownRuleKinds.Add(float64(f.stats.UnknownRuleKinds))
}
