package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/space-battle/internal/config"
	"github.com/vovakirdan/space-battle/internal/core"
	"github.com/vovakirdan/space-battle/internal/games/spacebattle"
	"github.com/vovakirdan/space-battle/internal/storage"
)

type fakeAudio struct {
	played []string
	muted  bool
}

func (a *fakeAudio) Play(cue string) bool {
	a.played = append(a.played, cue)
	return !a.muted
}

func (a *fakeAudio) ToggleMute() bool {
	a.muted = !a.muted
	return a.muted
}

func testConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 60, Seed: seed}
}

func newTestModel(t *testing.T, seed int64, opts Options) Model {
	t.Helper()
	return NewModel(spacebattle.New(), testConfig(seed), opts)
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func tick(t *testing.T, m Model, n int) Model {
	t.Helper()
	for i := 0; i < n; i++ {
		m, _ = send(t, m, TickMsg{})
	}
	return m
}

func space() tea.KeyMsg {
	return runeKey(' ')
}

func TestModelReservesFooterRow(t *testing.T) {
	m := newTestModel(t, 1, Options{})
	if m.screen.Height() != 24 {
		t.Errorf("screen height = %d, expected 24", m.screen.Height())
	}
	view := m.View()
	if !strings.Contains(view, "fire") {
		t.Error("help footer missing from view")
	}
	if !strings.Contains(view, "Start Game") {
		t.Error("title screen missing from view")
	}
}

func TestModelSpaceStartsGame(t *testing.T) {
	m := newTestModel(t, 1, Options{})
	m, _ = send(t, m, space())
	if m.State().Phase != "BeforeGame" {
		t.Fatal("input should only apply on the next tick")
	}
	m = tick(t, m, 1)
	if m.State().Phase != "InGame" {
		t.Errorf("phase = %s, expected InGame", m.State().Phase)
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, 1, Options{})
	m, cmd := send(t, m, runeKey('q'))
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should return tea.Quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestModelTickReschedules(t *testing.T) {
	m := newTestModel(t, 1, Options{})
	if m.Init() == nil {
		t.Error("Init should start the tick loop")
	}
	if _, cmd := send(t, m, TickMsg{}); cmd == nil {
		t.Error("tick should schedule the next tick")
	}
}

func TestModelMouseTapAndDrag(t *testing.T) {
	m := newTestModel(t, 1, Options{})

	m, _ = send(t, m, tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = send(t, m, tea.MouseMsg{X: 13, Y: 4, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})

	if len(m.inputFrame.Taps) != 1 || m.inputFrame.Taps[0] != (core.Tap{X: 10, Y: 5}) {
		t.Errorf("taps = %v", m.inputFrame.Taps)
	}
	if m.inputFrame.DragX != 3 || m.inputFrame.DragY != -1 {
		t.Errorf("drag = (%d, %d), expected (3, -1)", m.inputFrame.DragX, m.inputFrame.DragY)
	}

	m, _ = send(t, m, tea.MouseMsg{X: 13, Y: 4, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	m, _ = send(t, m, tea.MouseMsg{X: 20, Y: 4, Action: tea.MouseActionMotion})
	if m.inputFrame.DragX != 3 {
		t.Error("motion after release should not drag")
	}
}

func TestModelRightClickIgnored(t *testing.T) {
	m := newTestModel(t, 1, Options{})
	m, _ = send(t, m, tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	if len(m.inputFrame.Taps) != 0 || m.dragging {
		t.Error("right click should be ignored")
	}
}

func TestModelPlaysSounds(t *testing.T) {
	audio := &fakeAudio{}
	m := newTestModel(t, 1, Options{Audio: audio})
	m, _ = send(t, m, space())
	m = tick(t, m, 30)
	m, _ = send(t, m, space())
	m = tick(t, m, 1)

	if !strings.Contains(strings.Join(audio.played, ","), "shoot") {
		t.Errorf("played = %v, expected shoot", audio.played)
	}

	m, _ = send(t, m, runeKey('m'))
	tick(t, m, 1)
	if !audio.muted {
		t.Error("m should toggle mute")
	}
}

func TestModelResizeRestarts(t *testing.T) {
	m := newTestModel(t, 1, Options{})
	m, _ = send(t, m, space())
	m = tick(t, m, 5)

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 25})
	if m.State().Phase != "InGame" {
		t.Fatal("a resize to the same size should not restart")
	}

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 31})
	if m.State().Phase != "BeforeGame" {
		t.Errorf("phase = %s, expected a fresh run", m.State().Phase)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen = %dx%d", m.screen.Width(), m.screen.Height())
	}
}

func TestModelSavesVerifiableReplay(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "spacebattle.yaml")
	if err := os.WriteFile(cfgPath, []byte("gameplay:\n  lives: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	spacebattle.SetConfigPath(cfgPath)
	t.Cleanup(func() { spacebattle.SetConfigPath("") })

	store, err := storage.Open(filepath.Join(t.TempDir(), "replays.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	m := newTestModel(t, 3, Options{Store: store})
	m, _ = send(t, m, space())
	for i := 0; i < 60*30 && !m.State().GameOver; i++ {
		if i%20 == 0 {
			m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
		}
		m = tick(t, m, 1)
	}
	if !m.State().GameOver {
		t.Fatal("game did not end")
	}

	replays, err := store.RecentReplays(10)
	if err != nil {
		t.Fatalf("RecentReplays: %v", err)
	}
	if len(replays) != 1 {
		t.Fatalf("got %d replays, expected 1", len(replays))
	}
	r := replays[0]
	if r.FinalPhase != "AfterGame" || r.Score != m.State().Score || r.Ticks != m.steps {
		t.Errorf("unexpected header %+v", r)
	}
	if r.ScreenH != 24 {
		t.Errorf("recorded screen height = %d, expected 24", r.ScreenH)
	}

	// Further ticks and a quit must not store the run twice.
	m = tick(t, m, 10)
	send(t, m, runeKey('q'))
	if replays, _ = store.RecentReplays(10); len(replays) != 1 {
		t.Errorf("got %d replays after quit, expected 1", len(replays))
	}

	inputs, err := store.ReplayInputs(r.ID)
	if err != nil {
		t.Fatalf("ReplayInputs: %v", err)
	}
	frames := make(map[int]core.InputFrame, len(inputs))
	for _, in := range inputs {
		frames[in.Tick] = in.Frame
	}

	// The stored config, not the local one, decides the re-run.
	spacebattle.SetConfigPath("")
	gc, err := config.ParseSpaceBattle([]byte(r.ConfigYAML))
	if err != nil {
		t.Fatalf("stored config: %v", err)
	}
	if gc.Gameplay.Lives != 1 {
		t.Errorf("stored lives = %d, expected 1", gc.Gameplay.Lives)
	}

	g := spacebattle.SimulateWith(gc, r.Runtime(), r.Ticks, spacebattle.Playback(frames))
	st := g.Stats()
	if g.State().Score != r.Score || st.Kills != r.Kills || st.LivesLost != r.LivesLost {
		t.Errorf("playback diverged: score %d kills %d lost %d, recorded %+v",
			g.State().Score, st.Kills, st.LivesLost, r)
	}
	if g.State().Phase != r.FinalPhase {
		t.Errorf("playback phase = %s, expected %s", g.State().Phase, r.FinalPhase)
	}
}

func TestModelTitleScreenRunNotSaved(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "replays.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	m := newTestModel(t, 1, Options{Store: store})
	m = tick(t, m, 10)
	send(t, m, runeKey('q'))

	replays, err := store.RecentReplays(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(replays) != 0 {
		t.Errorf("got %d replays, expected none", len(replays))
	}
}

func TestReplayListSelect(t *testing.T) {
	replays := []storage.Replay{
		{ID: 7, Seed: 1, Score: 30, FinalPhase: "AfterGame"},
		{ID: 4, Seed: 2, Score: 10, FinalPhase: "InGame"},
	}
	m := NewReplayListModel(replays, 100, 30)
	if !strings.Contains(m.View(), "REPLAYS (2)") {
		t.Error("title missing")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	lm := next.(ReplayListModel)
	if lm.Selected() != 4 {
		t.Errorf("selected = %d, expected 4", lm.Selected())
	}
	if cmd == nil {
		t.Error("selecting should quit the browser")
	}
}

func TestReplayListEmpty(t *testing.T) {
	m := NewReplayListModel(nil, 80, 24)
	if !strings.Contains(m.View(), "No replays") {
		t.Error("empty list should say so")
	}
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if next.(ReplayListModel).Selected() != 0 {
		t.Error("nothing to select in an empty list")
	}
}

func TestReplayListDelete(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "replays.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	for seed := int64(1); seed <= 2; seed++ {
		if _, err := store.SaveReplay(storage.Replay{Seed: seed, FinalPhase: "AfterGame"}, nil); err != nil {
			t.Fatalf("SaveReplay: %v", err)
		}
	}
	replays, err := store.RecentReplays(10)
	if err != nil {
		t.Fatal(err)
	}

	m := NewReplayListModel(replays, 100, 30).WithDelete(store.DeleteReplay)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.Update(runeKey('d'))
	lm := next.(ReplayListModel)

	if !strings.Contains(lm.View(), "REPLAYS (1)") {
		t.Error("deleted replay still listed")
	}
	if !strings.Contains(lm.View(), fmt.Sprintf("Deleted replay %d", replays[1].ID)) {
		t.Error("missing delete status")
	}
	left, err := store.RecentReplays(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(left) != 1 || left[0].ID != replays[0].ID {
		t.Errorf("store has %+v, expected only replay %d", left, replays[0].ID)
	}

	// The cursor moved back onto the remaining row.
	next, _ = lm.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := next.(ReplayListModel).Selected(); got != replays[0].ID {
		t.Errorf("selected = %d, expected %d", got, replays[0].ID)
	}
}

func TestReplayListDeleteFailure(t *testing.T) {
	replays := []storage.Replay{{ID: 7, FinalPhase: "AfterGame"}}
	m := NewReplayListModel(replays, 100, 30).WithDelete(func(int64) error {
		return storage.ErrReplayNotFound
	})
	next, _ := m.Update(runeKey('d'))
	view := next.View()
	if !strings.Contains(view, "REPLAYS (1)") {
		t.Error("a failed delete should keep the row")
	}
	if !strings.Contains(view, "Could not delete replay 7") {
		t.Error("missing error status")
	}
}

func TestReplayListDeleteDisabled(t *testing.T) {
	replays := []storage.Replay{{ID: 7, FinalPhase: "AfterGame"}}
	next, _ := NewReplayListModel(replays, 100, 30).Update(runeKey('d'))
	if !strings.Contains(next.View(), "REPLAYS (1)") {
		t.Error("delete without storage should do nothing")
	}
}
