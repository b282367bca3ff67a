package cli

import "tsplit/internal/config"

// Flags holds command-line flags. SplitsSet and GroupSet are filled from
// cobra's Changed state before the flags are copied into the config, since
// 0 is an out-of-range value rather than an absent one.
type Flags struct {
	Processors     int
	TestPath       string
	NameFilter     string
	TestCases      bool
	Splits         int
	SplitsSet      bool
	Group          int
	GroupSet       bool
	Algorithm      string
	DurationsPath  string
	StoreDurations bool
	FailFast       bool
	Prepare        bool
	KeepData       bool
	Count          int
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Processors:     f.Processors,
		TestPath:       f.TestPath,
		NameFilter:     f.NameFilter,
		TestCases:      f.TestCases,
		Splits:         f.Splits,
		SplitsSet:      f.SplitsSet,
		Group:          f.Group,
		GroupSet:       f.GroupSet,
		Algorithm:      f.Algorithm,
		DurationsPath:  f.DurationsPath,
		StoreDurations: f.StoreDurations,
		FailFast:       f.FailFast,
		Prepare:        f.Prepare,
		KeepData:       f.KeepData,
		Count:          f.Count,
	}
}
