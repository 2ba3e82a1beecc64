package input

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"gopkg.in/yaml.v3"
)

// Rune aliases for keys that are awkward as bare YAML keys
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
}

// keymapFile is the on-disk keymap layout
//
//	keys:
//	  ctrl+q: quit
//	  escape: dismiss
//	runes:
//	  w: move_forward
//	  space: fire
type keymapFile struct {
	Keys  map[string]string `yaml:"keys"`
	Runes map[string]string `yaml:"runes"`
}

// LoadKeyConfig parses YAML keymap data into a sparse override KeyTable
// Only bindings present in the data are populated
// Returns error on unknown action names, invalid key names, or parse failure
func LoadKeyConfig(data []byte) (*KeyTable, error) {
	var raw keymapFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("keymap parse: %w", err)
	}

	kt := &KeyTable{
		Keys:  make(map[tcell.Key]IntentType, len(raw.Keys)),
		Runes: make(map[rune]IntentType, len(raw.Runes)),
	}

	for keyStr, action := range raw.Keys {
		k, ok := resolveKey(keyStr)
		if !ok {
			return nil, fmt.Errorf("[keys] unknown key %q", keyStr)
		}
		t, err := resolveAction(action)
		if err != nil {
			return nil, fmt.Errorf("[keys] key %q: %w", keyStr, err)
		}
		kt.Keys[k] = t
	}

	for keyStr, action := range raw.Runes {
		r, err := resolveRune(keyStr)
		if err != nil {
			return nil, fmt.Errorf("[runes] key %q: %w", keyStr, err)
		}
		t, err := resolveAction(action)
		if err != nil {
			return nil, fmt.Errorf("[runes] key %q: %w", keyStr, err)
		}
		kt.Runes[r] = t
	}

	return kt, nil
}

// keyNames lists the bindable special keys by config name
var keyNames = map[string]tcell.Key{
	"up":        tcell.KeyUp,
	"down":      tcell.KeyDown,
	"left":      tcell.KeyLeft,
	"right":     tcell.KeyRight,
	"enter":     tcell.KeyEnter,
	"escape":    tcell.KeyEscape,
	"esc":       tcell.KeyEscape,
	"tab":       tcell.KeyTab,
	"backspace": tcell.KeyBackspace2,
	"home":      tcell.KeyHome,
	"end":       tcell.KeyEnd,
	"pgup":      tcell.KeyPgUp,
	"pgdn":      tcell.KeyPgDn,
	"ctrl+c":    tcell.KeyCtrlC,
	"ctrl+q":    tcell.KeyCtrlQ,
	"ctrl+r":    tcell.KeyCtrlR,
	"ctrl+s":    tcell.KeyCtrlS,
	"f1":        tcell.KeyF1,
	"f2":        tcell.KeyF2,
}

func resolveKey(name string) (tcell.Key, bool) {
	k, ok := keyNames[strings.ReplaceAll(strings.ToLower(name), "-", "+")]
	return k, ok
}

func resolveRune(s string) (rune, error) {
	if r, ok := runeAliases[strings.ToLower(s)]; ok {
		return r, nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("expected single character or alias")
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// FromActionMap builds an override table from action -> key names
// A name is tried as a special key first, then as a single rune or alias
func FromActionMap(actions map[string][]string) (*KeyTable, error) {
	kt := &KeyTable{
		Keys:  make(map[tcell.Key]IntentType),
		Runes: make(map[rune]IntentType),
	}
	for action, keys := range actions {
		t, err := resolveAction(action)
		if err != nil {
			return nil, err
		}
		for _, name := range keys {
			if k, ok := resolveKey(name); ok {
				kt.Keys[k] = t
				continue
			}
			r, err := resolveRune(name)
			if err != nil {
				return nil, fmt.Errorf("action %s key %q: %w", action, name, err)
			}
			kt.Runes[r] = t
		}
	}
	return kt, nil
}
