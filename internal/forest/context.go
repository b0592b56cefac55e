package forest

// contextKey identifies one asynchronous relationship.
type contextKey struct {
	ctxType int64
	ctxID   uint64
}

// contextGroup collects the producers and consumers declared under one key.
type contextGroup struct {
	producers []NodeID
	consumers []NodeID
}

// contextIndex is the transient producer/consumer index built while scanning
// lines. Key order is first-seen, which keeps edge insertion deterministic.
// The index is discarded once inter-thread linking completes.
type contextIndex struct {
	groups map[contextKey]*contextGroup
	order  []contextKey
}

func newContextIndex() *contextIndex {
	return &contextIndex{groups: make(map[contextKey]*contextGroup)}
}

func (x *contextIndex) group(key contextKey) *contextGroup {
	g, ok := x.groups[key]
	if !ok {
		g = &contextGroup{}
		x.groups[key] = g
		x.order = append(x.order, key)
	}
	return g
}

func (x *contextIndex) addProducer(key contextKey, id NodeID) {
	g := x.group(key)
	g.producers = append(g.producers, id)
}

func (x *contextIndex) addConsumer(key contextKey, id NodeID) {
	g := x.group(key)
	g.consumers = append(g.consumers, id)
}

// connect links every producer under a key as parent of every consumer under
// the same key. These pairs model launch/completion relationships that do
// not nest in wall-clock time, so consumers are flagged async.
func (x *contextIndex) connect(f *Forest) {
	for _, key := range x.order {
		g := x.groups[key]
		for _, p := range g.producers {
			for _, c := range g.consumers {
				if p == c {
					continue
				}
				f.addChild(p, c)
				f.nodes[c].isAsync = true
				f.stats.ContextLinks++
			}
		}
	}
}
