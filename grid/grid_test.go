package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCellOf(t *testing.T) {
	tests := []struct {
		coord float64
		want  int
	}{
		{400, 0},
		{419, 0},
		{419.999, 0},
		{420, 1},
		{399, -1},
		{380, -1},
		{379.9, -2},
		{800, 20},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CellOf(tt.coord, 400, 20), "coord=%v", tt.coord)
	}
}

func TestEncodeDelta(t *testing.T) {
	assert.Equal(t, DirNegative, EncodeDelta(-3))
	assert.Equal(t, DirNegative, EncodeDelta(-1))
	assert.Equal(t, DirNone, EncodeDelta(0))
	assert.Equal(t, DirPositive, EncodeDelta(1))
	assert.Equal(t, DirPositive, EncodeDelta(5))

	assert.Equal(t, Direction(0), EncodeDelta(-3))
	assert.Equal(t, Direction(1), EncodeDelta(0))
	assert.Equal(t, Direction(2), EncodeDelta(5))
}

func TestDirectionSign(t *testing.T) {
	assert.Equal(t, -1, DirNegative.Sign())
	assert.Equal(t, 0, DirNone.Sign())
	assert.Equal(t, 1, DirPositive.Sign())
	assert.Equal(t, 0, Direction(7).Sign())
	assert.False(t, Direction(3).Valid())
}

func TestCheck(t *testing.T) {
	origin := Position{X: 410, Z: 410}

	tests := []struct {
		name    string
		current Position
		want    Crossing
	}{
		{
			name:    "same cell",
			current: Position{X: 419.5, Z: 400.1},
			want:    Crossing{EncDX: DirNone, EncDZ: DirNone},
		},
		{
			name:    "east",
			current: Position{X: 420, Z: 410},
			want:    Crossing{Crossed: true, RawDX: 1, EncDX: DirPositive, EncDZ: DirNone},
		},
		{
			name:    "north negative z",
			current: Position{X: 410, Z: 399.9},
			want:    Crossing{Crossed: true, RawDZ: -1, EncDX: DirNone, EncDZ: DirNegative},
		},
		{
			name:    "diagonal",
			current: Position{X: 399, Z: 421},
			want:    Crossing{Crossed: true, RawDX: -1, RawDZ: 1, EncDX: DirNegative, EncDZ: DirPositive},
		},
		{
			name:    "multi cell jump keeps raw magnitude",
			current: Position{X: 455, Z: 410},
			want:    Crossing{Crossed: true, RawDX: 2, EncDX: DirPositive, EncDZ: DirNone},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Check(tt.current, origin))
		})
	}
}

func TestCellCenterRoundTrip(t *testing.T) {
	for _, c := range []Cell{{0, 0}, {-1, 3}, {7, -9}} {
		assert.Equal(t, c, CellAt(CellCenter(c)))
	}

	p := Position{X: 410, Z: 410}.Offset(-1, 2)
	assert.Equal(t, Position{X: 390, Z: 450}, p)
	assert.Equal(t, Cell{X: -1, Z: 2}, CellAt(p))
}
