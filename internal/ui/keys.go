package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the bindings shown in the help line
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Select   key.Binding
	Dismiss  key.Binding
	Focus    key.Binding
	ZoomIn   key.Binding
	ZoomOut  key.Binding
	Reset    key.Binding
	Pan      key.Binding
	Retry    key.Binding
	Quit     key.Binding
	ForceEnd key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑/↓", "sugerencias"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "buscar"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cerrar"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "mapa/búsqueda"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+/-", "zoom"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-", "_"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restablecer"),
		),
		Pan: key.NewBinding(
			key.WithKeys("left", "right", "up", "down", "h", "j", "k", "l"),
			key.WithHelp("←↑↓→", "mover"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reintentar"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "salir"),
		),
		ForceEnd: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}

// searchHelp is the help line while the search box has focus
type searchHelp struct{ k keyMap }

func (h searchHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Select, h.k.Up, h.k.Dismiss, h.k.Focus}
}

func (h searchHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}

// mapHelp is the help line while the map has focus
type mapHelp struct{ k keyMap }

func (h mapHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.ZoomIn, h.k.Pan, h.k.Reset, h.k.Focus, h.k.Quit}
}

func (h mapHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}
