package forest

import (
	"go.uber.org/zap"

	"github.com/perfkit/eventforest/internal/trace"
)

// connectInterThread applies every connect rule, linking each parent
// candidate to every child candidate whose paired attribute values all
// match. Matching is not required to be unique; all qualifying pairs are
// linked. A missing attribute on either side means no match, never an error.
func (f *Forest) connectInterThread(rules []ConnectRule) {
	for i, r := range rules {
		if err := r.Validate(); err != nil {
			f.log.Error("skipping malformed connect rule", zap.Int("rule", i), zap.Error(err))
			continue
		}
		if !f.attrKindsKnown(r.ParentKeys) || !f.attrKindsKnown(r.ChildKeys) {
			f.stats.UnknownRuleKinds++
			f.log.Warn("rule references attribute kinds absent from trace; it can never match",
				zap.Int("rule", i),
				zap.Int64("parent_kind", int64(r.ParentKind)),
				zap.Int64("child_kind", int64(r.ChildKind)))
			continue
		}

		parents := f.byKind[r.ParentKind]
		children := f.byKind[r.ChildKind]
		if len(parents) == 0 || len(children) == 0 {
			continue
		}

		// Collect child key tuples once per rule.
		type childEntry struct {
			id   NodeID
			vals []trace.Value
		}
		entries := make([]childEntry, 0, len(children))
		for _, c := range children {
			vals, ok := f.keyValues(c, r.ChildKeys)
			if !ok {
				f.stats.MissingAttrSkips++
				continue
			}
			entries = append(entries, childEntry{id: c, vals: vals})
		}

		for _, p := range parents {
			pvals, ok := f.keyValues(p, r.ParentKeys)
			if !ok {
				f.stats.MissingAttrSkips++
				continue
			}
			for _, e := range entries {
				if e.id == p {
					continue
				}
				if tuplesEqual(pvals, e.vals) {
					f.addChild(p, e.id)
					f.stats.RuleMatches++
				}
			}
		}
	}
}

// keyValues gathers the node's values for the given attribute kinds; ok is
// false when any kind is absent on the node.
func (f *Forest) keyValues(id NodeID, keys []trace.AttrKind) ([]trace.Value, bool) {
	ev := f.nodes[id].event
	vals := make([]trace.Value, len(keys))
	for i, k := range keys {
		v, ok := ev.Attr(k)
		if !ok {
			return nil, false
		}
		vals[i] = v
	}
	return vals, true
}

// attrKindsKnown reports whether every kind occurs somewhere in the trace's
// attribute vocabulary.
func (f *Forest) attrKindsKnown(keys []trace.AttrKind) bool {
	for _, k := range keys {
		if _, ok := f.attrKinds[k]; !ok {
			return false
		}
	}
	return true
}

func tuplesEqual(a, b []trace.Value) bool {
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
