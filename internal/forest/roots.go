package forest

import (
	"go.uber.org/zap"

	"github.com/perfkit/eventforest/internal/trace"
)

// markExplicitRoots flags every node whose event kind is in rootKinds.
// Roots are collected in creation order, which is the canonical ordering
// group-id assignment depends on.
func (f *Forest) markExplicitRoots(rootKinds []trace.EventKind) {
	if len(rootKinds) == 0 {
		return
	}
	kinds := make(map[trace.EventKind]struct{}, len(rootKinds))
	for _, k := range rootKinds {
		kinds[k] = struct{}{}
	}
	for i := range f.nodes {
		if _, ok := kinds[f.nodes[i].event.Kind]; ok {
			f.nodes[i].isRoot = true
			f.rootEvents = append(f.rootEvents, NodeID(i))
		}
	}
}

// detectLoops scans for iterative-loop structure. Marker nodes of
// LoopIterationKind are bucketed by iteration number; the earliest
// qualifying event of each iteration becomes a loop root. When any loop
// roots exist they seed groups exclusively, taking priority over legacy and
// top roots.
func (f *Forest) detectLoops() {
	if f.sem.LoopIterationKind == 0 {
		return
	}
	markers := f.byKind[f.sem.LoopIterationKind]
	if len(markers) == 0 {
		return
	}

	// Bucket markers by iteration, preserving first-seen iteration order.
	// Markers without an iteration number each form their own iteration.
	var iterOrder []int64
	iterNodes := make(map[int64][]NodeID)
	synthetic := int64(-1)
	for _, m := range markers {
		key := int64(0)
		hasIter := false
		if f.sem.IterNumAttr != 0 {
			if v, ok := f.nodes[m].event.Attr(f.sem.IterNumAttr); ok {
				key, hasIter = v.AsInt64()
			}
		}
		if !hasIter {
			key = synthetic
			synthetic--
		}
		if _, seen := iterNodes[key]; !seen {
			iterOrder = append(iterOrder, key)
		}
		iterNodes[key] = append(iterNodes[key], m)
	}

	for _, key := range iterOrder {
		root := f.loopIterationRoot(iterNodes[key])
		if root == NoNode {
			continue
		}
		f.nodes[root].isRoot = true
		f.loopRoots = append(f.loopRoots, root)
	}

	f.log.Debug("loop structure detected",
		zap.Int("iterations", len(iterOrder)),
		zap.Int("loop_roots", len(f.loopRoots)))
}

// loopIterationRoot picks the earliest qualifying event of one iteration:
// the earliest descendant of a LoopRootKinds kind, or the earliest marker
// itself when no qualifying kinds are configured.
func (f *Forest) loopIterationRoot(markers []NodeID) NodeID {
	candidates := markers
	if len(f.sem.LoopRootKinds) > 0 {
		candidates = nil
		visited := make(map[NodeID]bool)
		var walk func(NodeID)
		walk = func(id NodeID) {
			if visited[id] {
				return
			}
			visited[id] = true
			if kindIn(f.nodes[id].event.Kind, f.sem.LoopRootKinds) {
				candidates = append(candidates, id)
			}
			for _, c := range f.nodes[id].children {
				walk(c)
			}
		}
		for _, m := range markers {
			walk(m)
		}
	}

	best := NoNode
	for _, c := range candidates {
		if best == NoNode || f.startsBefore(c, best) {
			best = c
		}
	}
	return best
}

// mergeWorkers folds asynchronously dispatched root operations into the
// preceding function-invocation root on the same line. Any other root in
// between breaks the association.
func (f *Forest) mergeWorkers() {
	if f.sem.FunctionRunKind == 0 || len(f.sem.AsyncDispatchKinds) == 0 {
		return
	}
	for _, span := range f.lineSpans {
		current := NoNode
		for i := 0; i < span.count; i++ {
			id := span.first + NodeID(i)
			n := &f.nodes[id]
			if !n.isRoot {
				continue
			}
			if n.event.Kind == f.sem.FunctionRunKind {
				current = id
				continue
			}
			if current != NoNode && kindIn(n.event.Kind, f.sem.AsyncDispatchKinds) {
				f.addChild(current, id)
				n.isRoot = false
				n.isAsync = true
			} else {
				current = NoNode
			}
		}
	}
}

// markEager flags units of work that ran outside a scheduled execution
// context: an EagerKinds node with no ScheduledKinds ancestor. The flag is
// informational only and is also written back as an event attribute.
func (f *Forest) markEager() {
	if len(f.sem.EagerKinds) == 0 {
		return
	}
	for i := range f.nodes {
		n := &f.nodes[i]
		if !kindIn(n.event.Kind, f.sem.EagerKinds) {
			continue
		}
		eager := f.findParentKind(NodeID(i), f.sem.ScheduledKinds) == NoNode
		n.isEager = eager
		if f.sem.IsEagerAttr != 0 {
			n.event.SetAttr(f.sem.IsEagerAttr, trace.BoolValue(eager))
		}
	}
}
