package input

import "fmt"

// actionRegistry maps canonical action names to intents
// Used by the keymap loader to resolve config action strings
var actionRegistry = map[string]IntentType{
	// Unbind sentinel
	"none": IntentNone,

	"quit":          IntentQuit,
	"toggle_mute":   IntentToggleMute,
	"move_forward":  IntentMoveForward,
	"move_back":     IntentMoveBack,
	"strafe_left":   IntentStrafeLeft,
	"strafe_right":  IntentStrafeRight,
	"turn_left":     IntentTurnLeft,
	"turn_right":    IntentTurnRight,
	"switch_weapon": IntentSwitchWeapon,
	"fire":          IntentFire,
	"reload":        IntentReload,
	"interact":      IntentInteract,
	"confirm":       IntentConfirm,
	"dismiss":       IntentDismiss,
}

var intentNames = func() map[IntentType]string {
	m := make(map[IntentType]string, len(actionRegistry))
	for name, t := range actionRegistry {
		m[t] = name
	}
	m[IntentResize] = "resize"
	return m
}()

func resolveAction(name string) (IntentType, error) {
	t, ok := actionRegistry[name]
	if !ok {
		return IntentNone, fmt.Errorf("unknown action %q", name)
	}
	return t, nil
}
