package split

import (
	"container/heap"
	"fmt"
	"sort"
	"strings"

	"tsplit/internal/domain"
)

// Algorithm partitions items into the requested number of groups.
type Algorithm func(groupCount int, items []domain.Item, durations domain.Durations) []domain.Group

// Names of the available algorithms.
const (
	AlgorithmBalanced = "balanced"
	AlgorithmChunks   = "chunks"
)

var algorithms = map[string]Algorithm{
	AlgorithmBalanced: Schedule,
	AlgorithmChunks:   ScheduleChunks,
}

// ByName returns the algorithm registered under name.
func ByName(name string) (Algorithm, error) {
	if algo, ok := algorithms[name]; ok {
		return algo, nil
	}
	names := make([]string, 0, len(algorithms))
	for n := range algorithms {
		names = append(names, n)
	}
	sort.Strings(names)
	return nil, fmt.Errorf("unknown algorithm %q (available: %s)", name, strings.Join(names, ", "))
}

// groupLoad is one heap entry: a group's summed duration so far and its index.
type groupLoad struct {
	total float64
	index int
}

// loadHeap is a min-heap of group loads. Ties on total go to the lowest
// group index.
type loadHeap []groupLoad

func (h loadHeap) Len() int { return len(h) }

func (h loadHeap) Less(i, j int) bool {
	if h[i].total != h[j].total {
		return h[i].total < h[j].total
	}
	return h[i].index < h[j].index
}

func (h loadHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *loadHeap) Push(x any) { *h = append(*h, x.(groupLoad)) }

func (h *loadHeap) Pop() any {
	old := *h
	n := len(old)
	entry := old[n-1]
	*h = old[:n-1]
	return entry
}

// Schedule partitions items into groupCount groups so that the groups'
// estimated total durations end up as close to each other as possible.
// Items are assigned in their input order, each to the group with the
// smallest running total at that point. An item without a recorded duration
// counts as the average of the recorded durations of the present items, or
// as 1 when no present item has a record.
func Schedule(groupCount int, items []domain.Item, durations domain.Durations) []domain.Group {
	if groupCount < 1 {
		groupCount = 1
	}
	fallback := fallbackDuration(items, durations)

	selected := make([][]domain.Item, groupCount)
	deselected := make([][]domain.Item, groupCount)
	totals := make([]float64, groupCount)

	loads := make(loadHeap, groupCount)
	for i := range loads {
		loads[i] = groupLoad{total: 0, index: i}
	}
	heap.Init(&loads)

	for _, item := range items {
		seconds, ok := durations[item.ID]
		if !ok {
			seconds = fallback
		}

		entry := heap.Pop(&loads).(groupLoad)
		entry.total += seconds

		selected[entry.index] = append(selected[entry.index], item)
		totals[entry.index] = entry.total
		for i := 0; i < groupCount; i++ {
			if i != entry.index {
				deselected[i] = append(deselected[i], item)
			}
		}

		heap.Push(&loads, entry)
	}

	groups := make([]domain.Group, groupCount)
	for i := range groups {
		groups[i] = domain.Group{Selected: selected[i], Deselected: deselected[i], Duration: totals[i]}
	}
	return groups
}

// fallbackDuration returns the duration assumed for items without history:
// the mean of the recorded durations restricted to the present items, or 1
// when none of them has a record. Restricting first keeps stale entries for
// removed tests from skewing the average.
func fallbackDuration(items []domain.Item, durations domain.Durations) float64 {
	present := make(map[string]struct{}, len(items))
	for _, item := range items {
		present[item.ID] = struct{}{}
	}

	var sum float64
	var count int
	for id, seconds := range durations {
		if _, ok := present[id]; ok {
			sum += seconds
			count++
		}
	}
	if count == 0 {
		return 1
	}
	return sum / float64(count)
}
