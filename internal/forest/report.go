package forest

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// GroupSummary is the serializable view of one group.
type GroupSummary struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	ModelID    string  `json:"model_id,omitempty"`
	Parents    []int64 `json:"parents,omitempty"`
	Children   []int64 `json:"children,omitempty"`
	Size       int     `json:"size"`
	DurationNs int64   `json:"duration_ns"`
}

// Report summarizes a grouping run: the stats counters plus size and
// wall-duration distributions over the assigned groups.
type Report struct {
	Stats            Stats          `json:"stats"`
	Groups           []GroupSummary `json:"groups"`
	MeanSize         float64        `json:"mean_size"`
	MeanDurationNs   float64        `json:"mean_duration_ns"`
	MedianDurationNs float64        `json:"median_duration_ns"`
	StddevDurationNs float64        `json:"stddev_duration_ns"`
}

// BuildReport computes the post-run summary. Group duration is the span from
// the earliest start to the latest end among the group's events.
func (f *Forest) BuildReport() *Report {
	type bounds struct {
		size     int
		minStart int64
		maxEnd   int64
	}
	perGroup := make(map[int64]*bounds, len(f.groups))
	for i := range f.nodes {
		n := &f.nodes[i]
		if n.state != stateGrouped {
			continue
		}
		b, ok := perGroup[n.groupID]
		if !ok {
			b = &bounds{minStart: n.event.StartNs, maxEnd: n.event.EndNs()}
			perGroup[n.groupID] = b
		}
		b.size++
		if n.event.StartNs < b.minStart {
			b.minStart = n.event.StartNs
		}
		if n.event.EndNs() > b.maxEnd {
			b.maxEnd = n.event.EndNs()
		}
	}

	rep := &Report{Stats: f.stats}
	gids := make([]int64, 0, len(f.groups))
	for gid := range f.groups {
		gids = append(gids, gid)
	}
	sort.Slice(gids, func(a, b int) bool { return gids[a] < gids[b] })

	sizes := make([]float64, 0, len(gids))
	durations := make([]float64, 0, len(gids))
	for _, gid := range gids {
		meta := f.groups[gid]
		s := GroupSummary{
			ID:       gid,
			Name:     meta.Name,
			ModelID:  meta.ModelID,
			Parents:  sortedIDs(meta.Parents),
			Children: sortedIDs(meta.Children),
		}
		if b, ok := perGroup[gid]; ok {
			s.Size = b.size
			s.DurationNs = b.maxEnd - b.minStart
		}
		rep.Groups = append(rep.Groups, s)
		sizes = append(sizes, float64(s.Size))
		durations = append(durations, float64(s.DurationNs))
	}

	if len(gids) > 0 {
		rep.MeanSize = stat.Mean(sizes, nil)
		rep.MeanDurationNs = stat.Mean(durations, nil)
		sorted := append([]float64(nil), durations...)
		sort.Float64s(sorted)
		rep.MedianDurationNs = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	}
	if len(gids) > 1 {
		rep.StddevDurationNs = stat.StdDev(durations, nil)
	}
	return rep
}

func sortedIDs(set map[int64]struct{}) []int64 {
	if len(set) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
	return ids
}
