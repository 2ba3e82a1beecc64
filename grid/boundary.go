package grid

// Crossing is the result of comparing the live position against the verified one
type Crossing struct {
	Crossed bool

	// Raw cell deltas, may exceed one if the caller skipped frames
	RawDX int
	RawDZ int

	// Contract encoding of the raw deltas
	EncDX Direction
	EncDZ Direction
}

// Check reports whether current lies in a different cell than verified
// Both axes are reported together; a diagonal step is one crossing
func Check(current, verified Position) Crossing {
	cur := CellAt(current)
	ver := CellAt(verified)

	dx := cur.X - ver.X
	dz := cur.Z - ver.Z

	return Crossing{
		Crossed: dx != 0 || dz != 0,
		RawDX:   dx,
		RawDZ:   dz,
		EncDX:   EncodeDelta(dx),
		EncDZ:   EncodeDelta(dz),
	}
}
