package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tileview/internal/core"
	"github.com/vovakirdan/tileview/internal/metrics"
	"github.com/vovakirdan/tileview/internal/viewer"
	"github.com/vovakirdan/tileview/internal/world"
)

// DefaultHold is how long a key press counts as held without a repeat.
const DefaultHold = 150 * time.Millisecond

// Options configures a viewer model.
type Options struct {
	Config      core.RuntimeConfig
	Hold        time.Duration      // Key hold window; 0 means DefaultHold
	Renderer    *lipgloss.Renderer // nil means stdout
	Metrics     *metrics.Metrics   // Optional
	Logger      *log.Logger        // Optional
	SnapshotDir string             // Where ctrl+s writes; empty disables snapshots
}

// Model is the Bubble Tea model hosting one viewer session.
// Terminal cells are the display surface: the screen is resized to the window
// (minus the help bar) and the session re-clamps its camera on the next frame.
type Model struct {
	session  *viewer.Session
	screen   *core.Screen
	config   core.RuntimeConfig
	held     *core.HeldKeys
	clock    *viewer.Clock
	keys     KeyMap
	mapper   *KeyMapper
	help     help.Model
	renderer *Renderer
	logger   *log.Logger
	snapDir  string
	now      func() time.Time
	quitting bool
}

// NewModel creates a viewer model for src.
func NewModel(src world.Source, opts Options) Model {
	cfg := opts.Config
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if opts.Hold <= 0 {
		opts.Hold = DefaultHold
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	keys := DefaultKeyMap()
	m := Model{
		config:   cfg,
		held:     core.NewHeldKeys(opts.Hold),
		clock:    viewer.NewClock(),
		keys:     keys,
		mapper:   NewKeyMapper(keys),
		help:     help.New(),
		renderer: NewRenderer(opts.Renderer),
		logger:   logger,
		snapDir:  opts.SnapshotDir,
		now:      time.Now,
	}
	m.help.Width = cfg.ScreenW
	m.screen = core.NewScreen(cfg.ScreenW, m.viewRows(cfg.ScreenH), cfg.Scale)

	sessOpts := viewer.OptionsFrom(cfg)
	sessOpts.Metrics = opts.Metrics
	m.session = viewer.New(src, m.screen, sessOpts)
	return m
}

// Session returns the viewer session driven by this model.
func (m Model) Session() *viewer.Session {
	return m.session
}

// Screen returns the display surface.
func (m Model) Screen() *core.Screen {
	return m.screen
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		m.resizeScreen()
		return m, nil

	case tea.BlurMsg:
		// Releases never arrive while unfocused
		m.held.Release()
		return m, nil

	case tea.FocusMsg:
		// Do not count the time spent away as one long frame
		m.clock.Reset()
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resizeScreen()
		return m, nil
	case key.Matches(msg, m.keys.Shot):
		m.saveSnapshot()
		return m, nil
	}

	switch action := m.mapper.MapKey(msg); {
	case action == core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionToggleGrid:
		m.session.ToggleGrid()
	case action == core.ActionToggleDebug:
		m.session.ToggleDebug()
	case action.IsPan():
		m.held.Press(action, m.now())
	}
	return m, nil
}

// handleTick advances the camera by the time since the previous frame.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	dt := m.clock.Tick(now)
	m.session.Update(m.held.Frame(now), dt)
	m.session.SetFPS(m.clock.FPS())

	return m, tickCmd(m.config.TickRate)
}

func (m *Model) viewRows(height int) int {
	return max(0, height-lipgloss.Height(m.help.View(m.keys)))
}

func (m *Model) resizeScreen() {
	m.screen.Resize(m.config.ScreenW, m.viewRows(m.config.ScreenH))
}

// View draws a frame and renders it with the help bar below.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.session.Draw()

	var b strings.Builder
	b.WriteString(m.renderer.Render(m.screen))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// saveSnapshot writes the visible tiles as text, one character per tile.
func (m *Model) saveSnapshot() {
	if m.snapDir == "" {
		return
	}
	if err := os.MkdirAll(m.snapDir, 0o755); err != nil {
		m.logger.Warn("cannot create snapshot directory", "dir", m.snapDir, "error", err)
		return
	}

	cam := m.session.Camera()
	name := fmt.Sprintf("tileview_%d_%d_%s.txt", cam.X, cam.Y, m.now().Format("20060102_150405"))
	path := filepath.Join(m.snapDir, name)

	if err := os.WriteFile(path, []byte(m.snapshotText()), 0o600); err != nil {
		m.logger.Warn("cannot save snapshot", "path", path, "error", err)
		return
	}
	m.logger.Info("snapshot saved", "path", path)
}

func (m *Model) snapshotText() string {
	src := m.session.World()
	vw, vh := m.screen.Size()
	cam := m.session.Camera()
	cols, rows := world.VisibleRange(src, cam.X, cam.Y, vw, vh)

	var b strings.Builder
	for row := rows.Start; row < rows.End; row++ {
		for col := cols.Start; col < cols.End; col++ {
			kind, _ := src.TileAt(col, row)
			b.WriteByte(kind.Char())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Run starts the Bubble Tea program on the local terminal.
func Run(src world.Source, opts Options) error {
	model := NewModel(src, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithReportFocus(),
	)

	_, err := p.Run()
	return err
}
