package tui

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/vovakirdan/tileview/internal/camera"
	"github.com/vovakirdan/tileview/internal/core"
	"github.com/vovakirdan/tileview/internal/world"
)

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T, snapDir string) Model {
	t.Helper()
	w, err := world.New(40, 30)
	if err != nil {
		t.Fatalf("world.New() failed: %v", err)
	}

	lg := lipgloss.NewRenderer(io.Discard)
	lg.SetColorProfile(termenv.Ascii)

	cfg := core.DefaultConfig()
	m := NewModel(w, Options{Config: cfg, Renderer: lg, SnapshotDir: snapDir})
	m.now = func() time.Time { return t0 }
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, expected Model", next)
	}
	return nm, cmd
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestModelReservesHelpRow(t *testing.T) {
	m := newTestModel(t, "")

	if m.Screen().Width() != 80 || m.Screen().Height() != 23 {
		t.Errorf("screen = %dx%d, expected 80x23", m.Screen().Width(), m.Screen().Height())
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if m.Screen().Width() != 100 || m.Screen().Height() != 39 {
		t.Errorf("screen after resize = %dx%d, expected 100x39", m.Screen().Width(), m.Screen().Height())
	}
}

func TestModelHeldKeyPans(t *testing.T) {
	m := newTestModel(t, "")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, cmd := update(t, m, TickMsg(t0))
	if cmd == nil {
		t.Fatal("tick should schedule the next frame")
	}
	m, _ = update(t, m, TickMsg(t0.Add(100*time.Millisecond)))

	// 500 px/s for 0.1s
	if got := m.Session().Camera(); got != (camera.Camera{X: 50, Y: 0}) {
		t.Errorf("Camera() = %+v, expected (50, 0)", got)
	}

	// The press expires after the hold window
	m, _ = update(t, m, TickMsg(t0.Add(400*time.Millisecond)))
	if got := m.Session().Camera(); got.X != 50 {
		t.Errorf("Camera().X = %d after release, expected 50", got.X)
	}
}

func TestModelBlurReleasesKeys(t *testing.T) {
	m := newTestModel(t, "")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, tea.BlurMsg{})
	m, _ = update(t, m, TickMsg(t0))
	m, _ = update(t, m, TickMsg(t0.Add(100*time.Millisecond)))

	if got := m.Session().Camera(); got != (camera.Camera{}) {
		t.Errorf("Camera() = %+v, expected origin after blur", got)
	}
}

func TestModelFocusResetsClock(t *testing.T) {
	m := newTestModel(t, "")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = update(t, m, TickMsg(t0))
	m, _ = update(t, m, tea.FocusMsg{})
	m, _ = update(t, m, TickMsg(t0.Add(100*time.Millisecond)))

	// The first tick after focus measures no elapsed time
	if got := m.Session().Camera(); got != (camera.Camera{}) {
		t.Errorf("Camera() = %+v, expected origin after focus", got)
	}
}

func TestModelToggles(t *testing.T) {
	m := newTestModel(t, "")

	m, _ = update(t, m, runeKey('g'))
	if m.Session().ShowGrid() {
		t.Error("g should hide the grid")
	}
	m, _ = update(t, m, runeKey('i'))
	if m.Session().ShowDebug() {
		t.Error("i should hide the overlay")
	}

	if strings.Contains(m.View(), "Camera:") {
		t.Error("View() shows the overlay while it is hidden")
	}
}

func TestModelViewOverlay(t *testing.T) {
	m := newTestModel(t, "")
	m, _ = update(t, m, TickMsg(t0))
	m, _ = update(t, m, TickMsg(t0.Add(100*time.Millisecond)))

	view := m.View()
	if !strings.Contains(view, "Camera: (0, 0) | FPS: 10") {
		t.Errorf("View() missing overlay, got first line %q", strings.SplitN(view, "\n", 2)[0])
	}
	if !strings.Contains(view, "grid") {
		t.Error("View() missing help bar")
	}
	// 80x23 cells = 640x368 px: 11 columns x 6 rows of 64 px tiles
	if got := m.Session().LastFrame().Tiles; got != 66 {
		t.Errorf("LastFrame().Tiles = %d, expected 66", got)
	}
}

func TestModelQuit(t *testing.T) {
	for _, k := range []tea.KeyMsg{runeKey('q'), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		m := newTestModel(t, "")
		m, cmd := update(t, m, k)
		if cmd == nil {
			t.Fatalf("%s: expected a quit command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: command did not quit", k)
		}
		if m.View() != "" {
			t.Errorf("%s: View() after quit should be empty", k)
		}

		// A tick already in flight does not run another frame
		if _, cmd := update(t, m, TickMsg(t0)); cmd != nil {
			t.Errorf("%s: tick after quit scheduled another frame", k)
		}
	}
}

func TestModelHelpToggleResizes(t *testing.T) {
	m := newTestModel(t, "")
	before := m.Screen().Height()

	m, _ = update(t, m, runeKey('?'))
	if m.Screen().Height() >= before {
		t.Errorf("full help should take more rows: %d -> %d", before, m.Screen().Height())
	}
}

func TestModelSnapshot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	m := newTestModel(t, dir)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	files, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() failed: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(files))
	}

	data, err := os.ReadFile(filepath.Join(dir, files[0].Name()))
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	// 640x368 px view: 11 columns x 6 rows
	if len(lines) != 6 || len(lines[0]) != 11 {
		t.Errorf("snapshot = %d lines of %d, expected 6 of 11", len(lines), len(lines[0]))
	}
	if lines[0][0] != world.Generate(0, 0).Char() {
		t.Errorf("snapshot[0][0] = %c, expected %c", lines[0][0], world.Generate(0, 0).Char())
	}
}
