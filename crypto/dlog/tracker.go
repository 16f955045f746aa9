package dlog

// Phase identifies one of the two loops of the search.
type Phase int

const (
	PhaseBabySteps Phase = iota
	PhaseGiantSteps
)

func (p Phase) String() string {
	switch p {
	case PhaseBabySteps:
		return "baby steps"
	case PhaseGiantSteps:
		return "giant steps"
	default:
		return "unknown"
	}
}

// Tracker receives progress notifications from a running search. It is
// called from the searching goroutine and must not block for long. A Tracker
// configured on a Solver that runs concurrent searches must be safe for
// concurrent use.
type Tracker interface {
	Begin(phase Phase, total uint64)
	Advance(n uint64)
	Finish()
}

type nopTracker struct{}

func (nopTracker) Begin(Phase, uint64) {}
func (nopTracker) Advance(uint64)      {}
func (nopTracker) Finish()             {}
