package grid

// Direction is the contract's per-axis move encoding
// The contract accepts one step per axis per transaction, never a magnitude
type Direction uint8

const (
	DirNegative Direction = 0
	DirNone     Direction = 1
	DirPositive Direction = 2
)

// EncodeDelta maps a signed cell delta to a Direction
func EncodeDelta(delta int) Direction {
	switch {
	case delta < 0:
		return DirNegative
	case delta == 0:
		return DirNone
	default:
		return DirPositive
	}
}

// Sign returns -1, 0 or +1; out-of-range values decode as 0
func (d Direction) Sign() int {
	switch d {
	case DirNegative:
		return -1
	case DirPositive:
		return 1
	default:
		return 0
	}
}

// Valid reports whether d is one of the three contract values
func (d Direction) Valid() bool {
	return d <= DirPositive
}

func (d Direction) String() string {
	switch d {
	case DirNegative:
		return "neg"
	case DirNone:
		return "none"
	case DirPositive:
		return "pos"
	default:
		return "invalid"
	}
}
