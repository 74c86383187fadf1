package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tileview/internal/core"
)

func TestMapKey(t *testing.T) {
	km := NewKeyMapper(DefaultKeyMap())

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.Action
	}{
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.ActionPanUp},
		{"w", runeKey('w'), core.ActionPanUp},
		{"down arrow", tea.KeyMsg{Type: tea.KeyDown}, core.ActionPanDown},
		{"s", runeKey('s'), core.ActionPanDown},
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionPanLeft},
		{"a", runeKey('a'), core.ActionPanLeft},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionPanRight},
		{"d", runeKey('d'), core.ActionPanRight},
		{"g", runeKey('g'), core.ActionToggleGrid},
		{"i", runeKey('i'), core.ActionToggleDebug},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionQuit},
		{"q", runeKey('q'), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"help", runeKey('?'), core.ActionNone},
		{"unbound", runeKey('z'), core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := km.MapKey(tt.msg); got != tt.expected {
				t.Errorf("MapKey(%s) = %v, expected %v", tt.msg, got, tt.expected)
			}
		})
	}
}

func TestKeyMapHelp(t *testing.T) {
	keys := DefaultKeyMap()
	if len(keys.ShortHelp()) == 0 {
		t.Error("ShortHelp() is empty")
	}
	total := 0
	for _, col := range keys.FullHelp() {
		total += len(col)
	}
	if total != 9 {
		t.Errorf("FullHelp() lists %d bindings, expected 9", total)
	}
}
