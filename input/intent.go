// Package input translates terminal key events into game intents
package input

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System-level intents
	IntentQuit       // Ctrl+Q, Ctrl+C
	IntentToggleMute // m
	IntentResize     // Terminal resize event

	// Movement, applied as impulses
	IntentMoveForward  // w, Up
	IntentMoveBack     // s, Down
	IntentStrafeLeft   // a
	IntentStrafeRight  // d
	IntentTurnLeft     // q, Left
	IntentTurnRight    // e, Right
	IntentSwitchWeapon // Tab

	// Combat
	IntentFire   // Space
	IntentReload // r

	// World
	IntentInteract // f, picks up gun or ammo in range

	// Menus and popups
	IntentConfirm // Enter, starts the game from the menu
	IntentDismiss // Escape, closes the transaction popup
)

// Intent is one resolved action
type Intent struct {
	Type IntentType

	// Width and Height are set for IntentResize
	Width  int
	Height int
}

// IsMovement reports whether t is a kinematic intent
func (t IntentType) IsMovement() bool {
	return t >= IntentMoveForward && t <= IntentTurnRight
}

func (t IntentType) String() string {
	if name, ok := intentNames[t]; ok {
		return name
	}
	return "unknown"
}
