package input

import "github.com/gdamore/tcell/v2"

// KeyTable maps keys to intents
type KeyTable struct {
	// Special keys (Ctrl+*, arrows, Enter, Escape)
	Keys map[tcell.Key]IntentType

	// Printable rune bindings
	Runes map[rune]IntentType
}

// DefaultKeyTable returns the default bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		Keys: map[tcell.Key]IntentType{
			tcell.KeyCtrlQ:  IntentQuit,
			tcell.KeyCtrlC:  IntentQuit,
			tcell.KeyUp:     IntentMoveForward,
			tcell.KeyDown:   IntentMoveBack,
			tcell.KeyLeft:   IntentTurnLeft,
			tcell.KeyRight:  IntentTurnRight,
			tcell.KeyTab:    IntentSwitchWeapon,
			tcell.KeyEnter:  IntentConfirm,
			tcell.KeyEscape: IntentDismiss,
		},
		Runes: map[rune]IntentType{
			'w': IntentMoveForward,
			's': IntentMoveBack,
			'a': IntentStrafeLeft,
			'd': IntentStrafeRight,
			'q': IntentTurnLeft,
			'e': IntentTurnRight,
			' ': IntentFire,
			'r': IntentReload,
			'f': IntentInteract,
			'm': IntentToggleMute,
		},
	}
}

// Merge applies a sparse override table; IntentNone entries unbind
func (kt *KeyTable) Merge(override *KeyTable) {
	if override == nil {
		return
	}
	for k, t := range override.Keys {
		if t == IntentNone {
			delete(kt.Keys, k)
			continue
		}
		kt.Keys[k] = t
	}
	for r, t := range override.Runes {
		if t == IntentNone {
			delete(kt.Runes, r)
			continue
		}
		kt.Runes[r] = t
	}
}

// Translate resolves a terminal event to an intent
// Unbound keys and unrelated events yield IntentNone
func (kt *KeyTable) Translate(ev tcell.Event) Intent {
	switch e := ev.(type) {
	case *tcell.EventResize:
		w, h := e.Size()
		return Intent{Type: IntentResize, Width: w, Height: h}
	case *tcell.EventKey:
		if e.Key() == tcell.KeyRune {
			r := e.Rune()
			// Some terminals report Ctrl+letter as a modified rune
			if e.Modifiers()&tcell.ModCtrl != 0 {
				lower := r | 0x20
				if lower >= 'a' && lower <= 'z' {
					return Intent{Type: kt.Keys[tcell.KeyCtrlA+tcell.Key(lower-'a')]}
				}
			}
			if t, ok := kt.Runes[r]; ok {
				return Intent{Type: t}
			}
			// Shifted letters behave like their lowercase binding
			if r >= 'A' && r <= 'Z' {
				if t, ok := kt.Runes[r+('a'-'A')]; ok {
					return Intent{Type: t}
				}
			}
			return Intent{}
		}
		return Intent{Type: kt.Keys[e.Key()]}
	}
	return Intent{}
}
