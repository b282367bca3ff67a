package domain

// Item is one schedulable unit of work: a single test file.
type Item struct {
	ID   string // Project-relative slash path, the key used in the durations file
	Path string // Absolute path on disk, used when executing the file
}

// Durations maps item IDs to the seconds spent executing them in the most
// recent run that measured them. Absent keys mean no measurement available.
type Durations map[string]float64

// Group is one partition of the suite: the items it runs, the items it
// leaves to other groups, and its estimated total duration in seconds.
type Group struct {
	Selected   []Item
	Deselected []Item
	Duration   float64
}

// IDs returns the identifiers of the given items in order.
func IDs(items []Item) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}
