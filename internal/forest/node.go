package forest

import "github.com/perfkit/eventforest/internal/trace"

// NodeID is a stable integer handle into the forest's node arena.
type NodeID int32

// NoNode is the null handle.
const NoNode NodeID = -1

type groupState int8

const (
	stateUngrouped groupState = iota
	stateGrouped
)

// contextTag marks a node as producer or consumer of an asynchronous
// relationship.
type contextTag struct {
	ctxType int64
	ctxID   uint64
	ok      bool
}

// node wraps one event occurrence on one line. Parent/child adjacency is
// index-based; edges are always added as a pair, so the structure is a DAG
// over the arena.
type node struct {
	plane *trace.Plane
	line  *trace.Line
	event *trace.Event

	parents  []NodeID
	children []NodeID

	state   groupState
	groupID int64

	producer contextTag
	consumer contextTag

	isRoot  bool
	isAsync bool
	isEager bool
}

// addNode appends a node to the arena and indexes it by event kind.
func (f *Forest) addNode(plane *trace.Plane, line *trace.Line, ev *trace.Event) NodeID {
	id := NodeID(len(f.nodes))
	f.nodes = append(f.nodes, node{
		plane:   plane,
		line:    line,
		event:   ev,
		groupID: -1,
	})
	f.byKind[ev.Kind] = append(f.byKind[ev.Kind], id)
	for i := range ev.Attrs {
		f.attrKinds[ev.Attrs[i].Kind] = struct{}{}
	}
	return id
}

// addChild links child under parent; both directions are recorded.
func (f *Forest) addChild(parent, child NodeID) {
	f.nodes[parent].children = append(f.nodes[parent].children, child)
	f.nodes[child].parents = append(f.nodes[child].parents, parent)
}

// startsBefore orders nodes by start time, creation order breaking ties.
func (f *Forest) startsBefore(a, b NodeID) bool {
	ae, be := f.nodes[a].event, f.nodes[b].event
	if ae.StartNs != be.StartNs {
		return ae.StartNs < be.StartNs
	}
	return a < b
}

// findParentKind returns the closest ancestor (including self) whose event
// kind is in kinds, or NoNode. Breadth-first over parent edges; the visited
// set guards against revisiting shared ancestors.
func (f *Forest) findParentKind(id NodeID, kinds []trace.EventKind) NodeID {
	visited := map[NodeID]bool{id: true}
	queue := []NodeID{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if kindIn(f.nodes[cur].event.Kind, kinds) {
			return cur
		}
		for _, p := range f.nodes[cur].parents {
			if !visited[p] {
				visited[p] = true
				queue = append(queue, p)
			}
		}
	}
	return NoNode
}
