package keymap

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings of the status console. To work for help
// it must satisfy key.Map.
type KeyMap struct {
	LogUpKey       key.Binding
	LogDownKey     key.Binding
	LogUpFastKey   key.Binding
	LogDownFastKey key.Binding
	LogTopKey      key.Binding
	LogBottomKey   key.Binding
	ClearLogKey    key.Binding
	HelpKey        key.Binding
	CloseKey       key.Binding
	QuitKey        key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view. It's
// part of the key.Map interface.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.HelpKey, k.QuitKey, k.ClearLogKey}
}

// FullHelp returns keybindings for the expanded help view. It's part of
// the key.Map interface.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.LogUpKey, k.LogDownKey, k.LogUpFastKey, k.LogDownFastKey, k.LogTopKey, k.LogBottomKey},
		{k.ClearLogKey, k.HelpKey, k.CloseKey, k.QuitKey},
	}
}

// Default contains the default keybindings for the application.
var Default = KeyMap{
	LogUpKey: key.NewBinding(
		key.WithKeys("up", "ctrl+k"),
		key.WithHelp("↑/ctrl+k", "scroll log up"),
	),
	LogDownKey: key.NewBinding(
		key.WithKeys("down", "ctrl+j"),
		key.WithHelp("↓/ctrl+j", "scroll log down"),
	),
	LogUpFastKey: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("PgUp", "scroll log up fast"),
	),
	LogDownFastKey: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("PgDn", "scroll log down fast"),
	),
	LogTopKey: key.NewBinding(
		key.WithKeys("home"),
		key.WithHelp("home", "log goto top"),
	),
	LogBottomKey: key.NewBinding(
		key.WithKeys("end"),
		key.WithHelp("end", "log goto bottom"),
	),
	ClearLogKey: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "clear log"),
	),
	HelpKey: key.NewBinding(
		key.WithKeys("ctrl+o", "?"),
		key.WithHelp("ctrl+o/?", "show help"),
	),
	CloseKey: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close help"),
	),
	QuitKey: key.NewBinding(
		key.WithKeys("ctrl+q", "ctrl+c"),
		key.WithHelp("ctrl+q", "quit"),
	),
}
