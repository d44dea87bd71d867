package landing

// MenuState is the open/closed state of the collapsible navigation menu.
// The zero value is closed.
type MenuState struct {
	open bool
}

// Toggle flips the menu and returns the new state
func (m *MenuState) Toggle() bool {
	m.open = !m.open
	return m.open
}

// IsOpen reports whether the menu is open
func (m MenuState) IsOpen() bool {
	return m.open
}
