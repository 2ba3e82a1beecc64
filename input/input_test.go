package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestDefaultTranslate(t *testing.T) {
	kt := DefaultKeyTable()

	tests := []struct {
		ev   tcell.Event
		want IntentType
	}{
		{tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), IntentMoveForward},
		{tcell.NewEventKey(tcell.KeyRune, 'W', tcell.ModShift), IntentMoveForward},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), IntentFire},
		{tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), IntentReload},
		{tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), IntentNone},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), IntentConfirm},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), IntentDismiss},
		{tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl), IntentQuit},
		{tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModCtrl), IntentQuit},
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), IntentTurnLeft},
	}

	for _, tt := range tests {
		if got := kt.Translate(tt.ev).Type; got != tt.want {
			t.Errorf("%v: got %s, want %s", tt.ev, got, tt.want)
		}
	}
}

func TestTranslateResize(t *testing.T) {
	in := DefaultKeyTable().Translate(tcell.NewEventResize(120, 40))
	if in.Type != IntentResize || in.Width != 120 || in.Height != 40 {
		t.Errorf("got %+v", in)
	}
}

func TestLoadKeyConfigMerge(t *testing.T) {
	data := []byte(`
keys:
  ctrl+r: reload
  escape: none
runes:
  space: interact
  j: fire
`)
	override, err := LoadKeyConfig(data)
	if err != nil {
		t.Fatal(err)
	}

	kt := DefaultKeyTable()
	kt.Merge(override)

	if kt.Runes[' '] != IntentInteract {
		t.Error("space not rebound")
	}
	if kt.Runes['j'] != IntentFire {
		t.Error("j not bound")
	}
	if kt.Keys[tcell.KeyCtrlR] != IntentReload {
		t.Error("ctrl+r not bound")
	}
	if _, ok := kt.Keys[tcell.KeyEscape]; ok {
		t.Error("escape not unbound")
	}
	if kt.Runes['w'] != IntentMoveForward {
		t.Error("untouched binding lost")
	}
}

func TestLoadKeyConfigErrors(t *testing.T) {
	bad := []string{
		"runes:\n  w: teleport\n",
		"keys:\n  hyper+x: fire\n",
		"runes:\n  ww: fire\n",
		"keys: [",
	}
	for _, data := range bad {
		if _, err := LoadKeyConfig([]byte(data)); err == nil {
			t.Errorf("expected error for %q", data)
		}
	}
}

func TestIntentNames(t *testing.T) {
	if IntentFire.String() != "fire" || IntentResize.String() != "resize" {
		t.Errorf("names: %s %s", IntentFire, IntentResize)
	}
	if !IntentStrafeLeft.IsMovement() || IntentFire.IsMovement() {
		t.Error("IsMovement classification")
	}
}

func TestFromActionMap(t *testing.T) {
	kt, err := FromActionMap(map[string][]string{
		"fire":     {"space", "enter"},
		"interact": {"e"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if kt.Runes[' '] != IntentFire || kt.Keys[tcell.KeyEnter] != IntentFire || kt.Runes['e'] != IntentInteract {
		t.Errorf("unexpected table %+v", kt)
	}

	if _, err := FromActionMap(map[string][]string{"fly": {"x"}}); err == nil {
		t.Error("expected unknown action error")
	}
	if _, err := FromActionMap(map[string][]string{"fire": {"xyz"}}); err == nil {
		t.Error("expected bad key error")
	}
}
