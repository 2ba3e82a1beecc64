package event

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/blockrooms/chain"
	"github.com/lixenwraith/blockrooms/grid"
)

// AmmoPayload is the magazine/reserve snapshot
type AmmoPayload struct {
	Magazine int `json:"magazine"`
	Reserve  int `json:"reserve"`
}

// ReloadVariant selects reload feedback
type ReloadVariant uint8

const (
	ReloadShort ReloadVariant = iota // Player-initiated
	ReloadLong                       // Auto-triggered by emptying the magazine
)

func (v ReloadVariant) String() string {
	if v == ReloadLong {
		return "long"
	}
	return "short"
}

// ReloadPayload reports the reloading flag
type ReloadPayload struct {
	Reloading bool          `json:"reloading"`
	Variant   ReloadVariant `json:"variant"`
}

// ShotFiredPayload describes a fired round
type ShotFiredPayload struct {
	Weapon string     `json:"weapon"`
	Origin mgl64.Vec3 `json:"origin"`
}

// ShotPayload is the hit-scan result
// Hit false means the ray hit nothing eligible
type ShotPayload struct {
	Hit      bool       `json:"hit"`
	Point    mgl64.Vec3 `json:"point"`
	Origin   mgl64.Vec3 `json:"origin"`
	TargetID string     `json:"target_id,omitempty"`
	Distance float64    `json:"distance"`
}

// GatePayload reports the movement gate state
type GatePayload struct {
	Enabled   bool  `json:"enabled"`
	SessionID int64 `json:"session_id"`
}

// TxPayload describes one boundary transaction
type TxPayload struct {
	Seq       uint64         `json:"seq"`
	SessionID int64          `json:"session_id"`
	EncDX     grid.Direction `json:"enc_dx"`
	EncDZ     grid.Direction `json:"enc_dz"`
	RawDX     int            `json:"raw_dx"`
	RawDZ     int            `json:"raw_dz"`
	Verified  grid.Position  `json:"verified"`
	Error     string         `json:"error,omitempty"`
}

// MoveResolvedPayload is the raw outcome of one movePlayer call
type MoveResolvedPayload struct {
	Seq    uint64           `json:"seq"`
	Result chain.MoveResult `json:"result"`
	Err    string           `json:"err,omitempty"`
}

// ClientReloadPayload carries the reload reason
type ClientReloadPayload struct {
	Reason string `json:"reason"`
}

// WorldFetchedPayload is the outcome of one refetch
type WorldFetchedPayload struct {
	State chain.WorldState `json:"state"`
	Err   string           `json:"err,omitempty"`
}

// EnemyPayload identifies an enemy and its vitals
type EnemyPayload struct {
	ID       string     `json:"id"`
	Health   int        `json:"health"`
	Position mgl64.Vec3 `json:"position"`
}

// PickupPayload describes a collected item
type PickupPayload struct {
	Kind   string `json:"kind"`
	Amount int    `json:"amount"`
}

// PhasePayload reports the game phase
type PhasePayload struct {
	Phase string `json:"phase"`
}
