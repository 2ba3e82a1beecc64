// Package chain defines the client's view of the authoritative backend
// Only two calls cross the boundary: a one-step move and a world re-read
package chain

import (
	"context"

	"github.com/lixenwraith/blockrooms/grid"
)

// MoveResult is the contract's verdict on a move
// Success false with a message is a rejected move; a transport failure is an error return
type MoveResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// PlayerState is the on-chain read model of one player
// Contract Y is world Z
type PlayerState struct {
	Address          string  `json:"address"`
	X                float64 `json:"x"`
	Y                float64 `json:"y"`
	GameActive       bool    `json:"game_active"`
	CurrentSessionID int64   `json:"current_session_id"`
	Health           int     `json:"health"`
}

// WorldPosition returns the player's planar world position
func (p PlayerState) WorldPosition() grid.Position {
	return grid.Position{X: p.X, Z: p.Y}
}

// WorldState is the result of a world re-read
// Player is nil when the connected account has no player yet
type WorldState struct {
	Player *PlayerState  `json:"player,omitempty"`
	Others []PlayerState `json:"others,omitempty"`
	Block  uint64        `json:"block"`
}

// Mover submits a single boundary-crossing move
type Mover interface {
	MovePlayer(ctx context.Context, dx, dz grid.Direction) (MoveResult, error)
}

// Fetcher re-reads authoritative state
type Fetcher interface {
	Refetch(ctx context.Context) (WorldState, error)
}

// Client is the full backend surface used by the game controller
type Client interface {
	Mover
	Fetcher
}
