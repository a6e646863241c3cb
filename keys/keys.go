package keys

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
)

type KeyName int

const (
	KeyQuit KeyName = iota
	KeyHelp
	KeyTogglePanel
	KeyReset
	KeyCopy
	KeyNextSeparator
	KeyPrevSeparator
	KeyGrow
	KeyShrink
)

// GlobalKeyStringsMap is a global, immutable map string to keybinding.
var GlobalKeyStringsMap = map[string]KeyName{
	"q":         KeyQuit,
	"ctrl+c":    KeyQuit,
	"?":         KeyHelp,
	"0":         KeyReset,
	"y":         KeyCopy,
	"tab":       KeyNextSeparator,
	"shift+tab": KeyPrevSeparator,
	"]":         KeyGrow,
	"right":     KeyGrow,
	"down":      KeyGrow,
	"[":         KeyShrink,
	"left":      KeyShrink,
	"up":        KeyShrink,
}

func init() {
	for i := 1; i <= 9; i++ {
		GlobalKeyStringsMap[strconv.Itoa(i)] = KeyTogglePanel
	}
}

// GlobalkeyBindings is a global, immutable map of KeyName to keybinding.
var GlobalkeyBindings = map[KeyName]key.Binding{
	KeyQuit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	KeyHelp: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	KeyTogglePanel: key.NewBinding(
		key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
		key.WithHelp("1-9", "collapse/expand"),
	),
	KeyReset: key.NewBinding(
		key.WithKeys("0"),
		key.WithHelp("0", "reset sizes"),
	),
	KeyCopy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy sizes"),
	),
	KeyNextSeparator: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next separator"),
	),
	KeyPrevSeparator: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev separator"),
	),
	KeyGrow: key.NewBinding(
		key.WithKeys("]", "right", "down"),
		key.WithHelp("]/→", "move separator forward"),
	),
	KeyShrink: key.NewBinding(
		key.WithKeys("[", "left", "up"),
		key.WithHelp("[/←", "move separator back"),
	),
}

// PanelIndex returns the zero-based panel a digit key toggles.
func PanelIndex(keyString string) (int, bool) {
	n, err := strconv.Atoi(keyString)
	if err != nil || n < 1 || n > 9 {
		return 0, false
	}
	return n - 1, true
}

// HelpMap adapts the bindings to bubbles/help.
type HelpMap struct{}

// ShortHelp implements help.KeyMap.
func (HelpMap) ShortHelp() []key.Binding {
	return []key.Binding{
		GlobalkeyBindings[KeyTogglePanel],
		GlobalkeyBindings[KeyNextSeparator],
		GlobalkeyBindings[KeyGrow],
		GlobalkeyBindings[KeyHelp],
		GlobalkeyBindings[KeyQuit],
	}
}

// FullHelp implements help.KeyMap.
func (HelpMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{
			GlobalkeyBindings[KeyTogglePanel],
			GlobalkeyBindings[KeyReset],
			GlobalkeyBindings[KeyCopy],
		},
		{
			GlobalkeyBindings[KeyNextSeparator],
			GlobalkeyBindings[KeyPrevSeparator],
			GlobalkeyBindings[KeyGrow],
			GlobalkeyBindings[KeyShrink],
		},
		{
			GlobalkeyBindings[KeyHelp],
			GlobalkeyBindings[KeyQuit],
		},
	}
}
