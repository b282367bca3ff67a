package record

import "tsplit/internal/domain"

// DefaultSetupTeardownMax is the ceiling in seconds for setup and teardown
// phase reports. Longer measurements are timer anomalies under clock
// mocking, not real work.
const DefaultSetupTeardownMax = 600

// Recorder aggregates phase reports into per-item durations.
type Recorder struct {
	// SetupTeardownMax caps setup/teardown report seconds; reports above
	// it are dropped.
	SetupTeardownMax float64
}

// NewRecorder creates a Recorder with the default threshold.
func NewRecorder() *Recorder {
	return &Recorder{SetupTeardownMax: DefaultSetupTeardownMax}
}

// Record sums the usable phase reports per item and merges the totals into
// a copy of base. Each measured item's previous value is overwritten, never
// averaged, so the mapping always reflects the most recent measurement.
// Reports with negative seconds are dropped, as are setup and teardown
// reports above SetupTeardownMax. Call-phase reports are never capped.
func (r *Recorder) Record(base domain.Durations, reports []domain.PhaseReport) domain.Durations {
	totals := make(domain.Durations)
	for _, report := range reports {
		if report.Seconds < 0 {
			continue
		}
		if (report.Phase == domain.PhaseSetup || report.Phase == domain.PhaseTeardown) && report.Seconds > r.SetupTeardownMax {
			continue
		}
		totals[report.ItemID] += report.Seconds
	}

	merged := make(domain.Durations, len(base)+len(totals))
	for id, seconds := range base {
		merged[id] = seconds
	}
	for id, seconds := range totals {
		merged[id] = seconds
	}
	return merged
}
