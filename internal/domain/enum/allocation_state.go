package enum

// AllocationState tracks a tender allocation through one settlement attempt.
// Never persisted; the allocation is in-memory until commit.
type AllocationState int

const (
	AllocationUnselected AllocationState = iota
	AllocationMethodChosen
	AllocationAllocating
	AllocationCovered
	AllocationCommitted
	AllocationAbandoned
)

func (s AllocationState) String() string {
	names := [...]string{"Unselected", "MethodChosen", "Allocating", "Covered", "Committed", "Abandoned"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Unselected"
	}
	return names[s]
}
