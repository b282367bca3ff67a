package domain

// Phase tags one timed stage of executing an item.
type Phase string

const (
	PhaseSetup    Phase = "setup"
	PhaseCall     Phase = "call"
	PhaseTeardown Phase = "teardown"
)

// PhaseReport is one timing measurement for one phase of one item.
type PhaseReport struct {
	ItemID  string
	Phase   Phase
	Seconds float64
}
