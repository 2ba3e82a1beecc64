package game

// Phase is the top-level game phase
type Phase uint8

const (
	PhaseMenu   Phase = iota // Loading screen, waiting for Enter
	PhaseActive              // In play
)

func (p Phase) String() string {
	if p == PhaseActive {
		return "active"
	}
	return "menu"
}
