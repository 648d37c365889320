package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/space-battle/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKeyToFrameActions(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"space fires", runeKey(' '), core.ActionFire},
		{"enter confirms", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm},
		{"p pauses", runeKey('p'), core.ActionPause},
		{"esc pauses", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause},
		{"r restarts", runeKey('r'), core.ActionRestart},
		{"m mutes", runeKey('m'), core.ActionMute},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			frame := core.NewInputFrame()
			if km.MapKeyToFrame(tc.msg, &frame) {
				t.Fatal("unexpected quit")
			}
			if !frame.Has(tc.want) {
				t.Errorf("expected %s in frame", tc.want)
			}
		})
	}
}

func TestMapKeyToFrameDrags(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		dx, dy int
	}{
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, -dragStepX, 0},
		{"a", runeKey('a'), -dragStepX, 0},
		{"right", tea.KeyMsg{Type: tea.KeyRight}, dragStepX, 0},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, 0, -dragStepY},
		{"s", runeKey('s'), 0, dragStepY},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			frame := core.NewInputFrame()
			km.MapKeyToFrame(tc.msg, &frame)
			if frame.DragX != tc.dx || frame.DragY != tc.dy {
				t.Errorf("drag = (%d, %d), expected (%d, %d)", frame.DragX, frame.DragY, tc.dx, tc.dy)
			}
		})
	}
}

func TestDragsAccumulateWithinFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()
	km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyRight}, &frame)
	km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyRight}, &frame)
	km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyUp}, &frame)
	if frame.DragX != 2*dragStepX || frame.DragY != -dragStepY {
		t.Errorf("drag = (%d, %d)", frame.DragX, frame.DragY)
	}
}

func TestMapKeyToFrameQuit(t *testing.T) {
	km := NewKeyMapper()
	for _, msg := range []tea.KeyMsg{runeKey('q'), {Type: tea.KeyCtrlC}} {
		frame := core.NewInputFrame()
		if !km.MapKeyToFrame(msg, &frame) {
			t.Errorf("%q should quit", msg.String())
		}
	}
}

func TestUnboundKeyIsIgnored(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()
	if km.MapKeyToFrame(runeKey('z'), &frame) {
		t.Error("z should not quit")
	}
	if !frame.Empty() {
		t.Error("z should not produce input")
	}
}
