package forest

import (
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/perfkit/eventforest/internal/trace"
)

// GroupMetadata describes one assigned group: a display name, an optional
// model identifier for inference workloads, and the cross-group dependencies
// discovered when propagation reached a node already owned by another group.
type GroupMetadata struct {
	Name     string
	ModelID  string
	Parents  map[int64]struct{}
	Children map[int64]struct{}
}

// createGroups walks from each seed root in canonical order, allocating
// sequential group ids starting at 0. First assignment wins: a node already
// owned by a different group is never reassigned; the edge is recorded as a
// cross-group dependency instead. Nodes unreachable from any root remain
// ungrouped; they represent untracked background activity.
func (f *Forest) createGroups() {
	for _, root := range f.seedOrder() {
		if f.nodes[root].state == stateGrouped {
			continue
		}
		gid := f.nextGroupID
		f.nextGroupID++
		meta := &GroupMetadata{
			Name:     f.groupName(root, gid),
			Parents:  make(map[int64]struct{}),
			Children: make(map[int64]struct{}),
		}
		f.groups[gid] = meta
		f.propagate(root, gid, meta)
		f.stats.GroupsCreated++
	}

	for i := range f.nodes {
		if f.nodes[i].state == stateGrouped {
			f.stats.NodesGrouped++
		} else {
			f.stats.NodesUngrouped++
		}
	}
}

// seedOrder fixes the canonical root ordering group-id stability depends on.
// Loop roots, when present, are used exclusively. Otherwise explicit roots
// seed first, then parentless fallback roots sweep up components no explicit
// root reaches; both classes in creation order.
func (f *Forest) seedOrder() []NodeID {
	if len(f.loopRoots) > 0 {
		seeds := make([]NodeID, 0, len(f.loopRoots))
		for _, id := range f.loopRoots {
			if f.nodes[id].isRoot {
				seeds = append(seeds, id)
			}
		}
		return seeds
	}

	var seeds []NodeID
	for _, id := range f.rootEvents {
		if f.nodes[id].isRoot { // worker merging may have unmarked it
			seeds = append(seeds, id)
		}
	}
	for i := range f.nodes {
		if !f.nodes[i].isRoot && len(f.nodes[i].parents) == 0 {
			seeds = append(seeds, NodeID(i))
		}
	}
	return seeds
}

// propagate assigns gid to every ungrouped node reachable from root via
// child edges. State is checked before every step, so each node is visited
// at most once and a malformed cyclic trace cannot loop the walk; a cycle is
// counted as a data anomaly.
func (f *Forest) propagate(root NodeID, gid int64, meta *GroupMetadata) {
	onPath := make(map[NodeID]bool)
	var visit func(NodeID)
	visit = func(id NodeID) {
		n := &f.nodes[id]
		if n.state == stateGrouped {
			if n.groupID != gid {
				f.groups[n.groupID].Parents[gid] = struct{}{}
				meta.Children[n.groupID] = struct{}{}
			}
			return
		}
		n.state = stateGrouped
		n.groupID = gid
		f.writeGroupAttrs(n, gid, meta.Name)

		onPath[id] = true
		for _, c := range n.children {
			if onPath[c] {
				f.stats.CyclesDetected++
				f.log.Warn("cycle in child edges; skipping back edge",
					zap.Int64("group_id", gid),
					zap.Int64("line", n.line.ID))
				continue
			}
			visit(c)
		}
		delete(onPath, id)
	}
	visit(root)
}

// writeGroupAttrs records the assignment on the underlying event, the
// engine's externally observable output.
func (f *Forest) writeGroupAttrs(n *node, gid int64, name string) {
	if f.sem.GroupIDAttr != 0 {
		n.event.SetAttr(f.sem.GroupIDAttr, trace.Int64Value(gid))
	}
	if f.sem.GroupNameAttr != 0 && name != "" {
		n.event.SetAttr(f.sem.GroupNameAttr, trace.StrValue(name))
	}
}

// groupName derives a display name from the root's identifying attribute,
// falling back to the event name, then to the group id.
func (f *Forest) groupName(root NodeID, gid int64) string {
	ev := f.nodes[root].event
	if f.sem.NameAttr != 0 {
		if v, ok := ev.Attr(f.sem.NameAttr); ok {
			if s, isStr := v.Str(); isStr && s != "" {
				return s
			}
			if n, isInt := v.AsInt64(); isInt {
				return strconv.FormatInt(n, 10)
			}
		}
	}
	if ev.Name != "" {
		return ev.Name
	}
	return strconv.FormatInt(gid, 10)
}

// processModelIDs attaches a model identifier to each group's metadata for
// inference workloads: the first model-id attribute found within the group.
func (f *Forest) processModelIDs() {
	if f.sem.ModelIDAttr == 0 {
		return
	}
	for i := range f.nodes {
		n := &f.nodes[i]
		if n.state != stateGrouped {
			continue
		}
		meta := f.groups[n.groupID]
		if meta.ModelID != "" {
			continue
		}
		if v, ok := n.event.Attr(f.sem.ModelIDAttr); ok {
			if s, isStr := v.Str(); isStr {
				meta.ModelID = s
			} else if num, isInt := v.AsInt64(); isInt {
				meta.ModelID = strconv.FormatInt(num, 10)
			}
		}
	}
}

// writeRelatedGroups gives every grouped node a derived attribute
// enumerating its own group id plus the parent/child group ids from its
// metadata, so downstream consumers can cross-reference groups without
// re-walking the forest.
func (f *Forest) writeRelatedGroups() {
	if f.sem.RelatedGroupsAttr == 0 {
		return
	}
	related := make(map[int64][]int64, len(f.groups))
	for gid, meta := range f.groups {
		ids := make([]int64, 0, 1+len(meta.Parents)+len(meta.Children))
		ids = append(ids, gid)
		for p := range meta.Parents {
			ids = append(ids, p)
		}
		for c := range meta.Children {
			ids = append(ids, c)
		}
		sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
		related[gid] = ids
	}
	for i := range f.nodes {
		n := &f.nodes[i]
		if n.state != stateGrouped {
			continue
		}
		n.event.SetAttr(f.sem.RelatedGroupsAttr, trace.Int64ListValue(related[n.groupID]))
	}
}
