package testhelpers

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Runes builds the key message a terminal sends for typed text.
func Runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// Key builds a key message for a special key.
func Key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

// Type feeds each rune of s to model as a separate key press. Commands are
// discarded.
func Type(model tea.Model, s string) tea.Model {
	for _, r := range s {
		msg := Runes(string(r))
		if r == ' ' {
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		}
		model, _ = model.Update(msg)
	}
	return model
}
