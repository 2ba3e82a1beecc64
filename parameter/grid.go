package parameter

// Grid Anchoring
// Contract positions are cell-quantized; the client simulates continuously
// and reconciles on every cell change
const (
	// GridGenesisX is the world X of cell (0,0)'s low corner
	GridGenesisX = 400.0

	// GridGenesisZ is the world Z of cell (0,0)'s low corner
	GridGenesisZ = 400.0

	// GridSize is the edge length of one grid cell in world units
	GridSize = 20.0
)
