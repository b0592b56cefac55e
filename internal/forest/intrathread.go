package forest

import "sort"

// lineSpan records the contiguous arena range holding one line's nodes, in
// start-time order.
type lineSpan struct {
	first NodeID
	count int
}

// connectIntraThread creates a node per event and derives a nesting forest
// per line from the event intervals. Events are processed in start-time
// order (insertion order breaking ties); a stack of currently open ancestors
// yields each node's parent. Producer/consumer context tags encountered
// along the way are recorded in the index for inter-thread linking.
func (f *Forest) connectIntraThread(idx *contextIndex) {
	for pi := range f.tr.Planes {
		plane := &f.tr.Planes[pi]
		for li := range plane.Lines {
			line := &plane.Lines[li]

			order := make([]int, len(line.Events))
			for i := range order {
				order[i] = i
			}
			sort.SliceStable(order, func(a, b int) bool {
				return line.Events[order[a]].StartNs < line.Events[order[b]].StartNs
			})

			span := lineSpan{first: NodeID(len(f.nodes)), count: len(order)}
			var stack []NodeID
			for _, ei := range order {
				ev := &line.Events[ei]
				id := f.addNode(plane, line, ev)

				// A node whose end is at or before the new start has
				// closed. Zero-duration events end at their start, so two
				// zero-duration events at the same timestamp do not nest.
				for len(stack) > 0 && f.nodes[stack[len(stack)-1]].event.EndNs() <= ev.StartNs {
					stack = stack[:len(stack)-1]
				}
				if len(stack) > 0 {
					f.addChild(stack[len(stack)-1], id)
				}
				stack = append(stack, id)

				f.captureContext(id, idx)
			}
			f.lineSpans = append(f.lineSpans, span)
		}
	}
}

// captureContext reads producer/consumer tags off the node's attributes. A
// tag needs both its type and id attribute; half-declared tags are ignored.
func (f *Forest) captureContext(id NodeID, idx *contextIndex) {
	n := &f.nodes[id]
	sem := &f.sem

	if sem.ProducerTypeAttr != 0 && sem.ProducerIDAttr != 0 {
		if tv, ok := n.event.Attr(sem.ProducerTypeAttr); ok {
			if iv, ok2 := n.event.Attr(sem.ProducerIDAttr); ok2 {
				ctxType, tok := tv.AsInt64()
				ctxID, iok := iv.AsUint64()
				if tok && iok {
					n.producer = contextTag{ctxType: ctxType, ctxID: ctxID, ok: true}
					idx.addProducer(contextKey{ctxType: ctxType, ctxID: ctxID}, id)
				}
			}
		}
	}
	if sem.ConsumerTypeAttr != 0 && sem.ConsumerIDAttr != 0 {
		if tv, ok := n.event.Attr(sem.ConsumerTypeAttr); ok {
			if iv, ok2 := n.event.Attr(sem.ConsumerIDAttr); ok2 {
				ctxType, tok := tv.AsInt64()
				ctxID, iok := iv.AsUint64()
				if tok && iok {
					n.consumer = contextTag{ctxType: ctxType, ctxID: ctxID, ok: true}
					idx.addConsumer(contextKey{ctxType: ctxType, ctxID: ctxID}, id)
				}
			}
		}
	}
}
