package split

import "tsplit/internal/domain"

// ScheduleChunks partitions items into groupCount contiguous chunks whose
// durations approach an equal share of the suite total. Unlike Schedule,
// each group is a contiguous run of the input order, which keeps files that
// share expensive fixtures in the same group. Uses the same fallback rule
// for items without a recorded duration.
func ScheduleChunks(groupCount int, items []domain.Item, durations domain.Durations) []domain.Group {
	if groupCount < 1 {
		groupCount = 1
	}
	fallback := fallbackDuration(items, durations)

	seconds := make([]float64, len(items))
	var total float64
	for i, item := range items {
		s, ok := durations[item.ID]
		if !ok {
			s = fallback
		}
		seconds[i] = s
		total += s
	}
	target := total / float64(groupCount)

	selected := make([][]domain.Item, groupCount)
	deselected := make([][]domain.Item, groupCount)
	totals := make([]float64, groupCount)

	group := 0
	for i, item := range items {
		// Everything past the target spills into the next group; the last
		// group absorbs whatever remains.
		if totals[group] >= target && group < groupCount-1 {
			group++
		}

		selected[group] = append(selected[group], item)
		for g := 0; g < groupCount; g++ {
			if g != group {
				deselected[g] = append(deselected[g], item)
			}
		}
		totals[group] += seconds[i]
	}

	groups := make([]domain.Group, groupCount)
	for i := range groups {
		groups[i] = domain.Group{Selected: selected[i], Deselected: deselected[i], Duration: totals[i]}
	}
	return groups
}
