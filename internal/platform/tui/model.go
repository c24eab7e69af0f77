package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/subnav/internal/core"
	"github.com/vovakirdan/subnav/internal/nav"
	"github.com/vovakirdan/subnav/internal/session"
	"github.com/vovakirdan/subnav/internal/storage"
)

// Space reserved around the map for the title, border, status and help lines.
const (
	chromeWidth  = 4
	chromeHeight = 8
)

// ReplayOptions configures a replay viewer.
type ReplayOptions struct {
	Session session.Options    // Used to build a fresh session on start and restart
	Script  []nav.Line         // Commands to replay, one per tick
	Label   string             // Stored as the run source
	Store   *storage.Store     // nil disables saving
	Render  RenderOptions      // Title and colour; marker and crop are set per frame
	Runtime core.RuntimeConfig // Initial screen size and tick rate
	Logger  *log.Logger        // nil means silent
}

// ReplayModel is the Bubble Tea model that replays a command script one
// command per tick while drawing the growing sonar map.
type ReplayModel struct {
	opts     ReplayOptions
	sess     *session.Session
	next     int // Index into Script of the next command
	paused   bool
	finished bool
	saved    bool
	runID    string
	err      error
	keys     ReplayKeyMap
	help     help.Model
	width    int
	height   int
	quitting bool
	logger   *log.Logger
}

// NewReplayModel creates a replay viewer positioned before the first command.
func NewReplayModel(opts ReplayOptions) ReplayModel {
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = core.DefaultConfig().TickRate
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := ReplayModel{
		opts:   opts,
		keys:   DefaultReplayKeyMap(),
		help:   help.New(),
		width:  opts.Runtime.ScreenW,
		height: opts.Runtime.ScreenH,
		logger: logger,
	}
	m.reset()
	return m
}

// reset discards progress and starts a fresh session.
func (m *ReplayModel) reset() {
	m.sess = session.New(m.opts.Session)
	m.next = 0
	m.finished = len(m.opts.Script) == 0
	m.saved = false
	m.runID = ""
	m.err = nil
	if m.finished {
		m.save()
	}
}

// Init starts the tick loop.
func (m ReplayModel) Init() tea.Cmd {
	return tickCmd(m.opts.Runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m ReplayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if !m.paused {
			m.step()
		}
		return m, tickCmd(m.opts.Runtime.TickRate)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m ReplayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
	case key.Matches(msg, m.keys.Step):
		if m.paused {
			m.step()
		}
	case key.Matches(msg, m.keys.Restart):
		m.reset()
	case key.Matches(msg, m.keys.Emergency):
		if !m.finished {
			m.sess.Emergency()
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// step executes the next command, finishing the replay after the last one
// or at the first failing command.
func (m *ReplayModel) step() {
	if m.finished {
		return
	}

	line := m.opts.Script[m.next]
	m.next++
	if _, err := m.sess.Execute(line.Text); err != nil {
		m.err = fmt.Errorf("line %d: %w", line.Number, err)
		m.finished = true
		m.logger.Warn("replay stopped", "line", line.Number, "error", err)
		return
	}

	if m.next >= len(m.opts.Script) {
		m.finished = true
		m.save()
	}
}

// save records the finished run once.
func (m *ReplayModel) save() {
	if m.saved || m.opts.Store == nil {
		return
	}
	m.saved = true

	run, err := m.opts.Store.SaveSession(m.sess, m.opts.Label)
	if err != nil {
		m.logger.Error("could not save run", "error", err)
		return
	}
	m.runID = run.ID
	m.logger.Info("run saved", "id", run.ID, "result", run.Result, "cells", run.Cells)
}

// Session returns the session being replayed.
func (m ReplayModel) Session() *session.Session {
	return m.sess
}

// Finished reports whether every command ran or one failed.
func (m ReplayModel) Finished() bool {
	return m.finished
}

// Paused reports whether the tick loop is ignored.
func (m ReplayModel) Paused() bool {
	return m.paused
}

// Err returns the command error that stopped the replay, if any.
func (m ReplayModel) Err() error {
	return m.err
}

// RunID returns the stored run ID once the finished run was saved.
func (m ReplayModel) RunID() string {
	return m.runID
}

// View renders the current state to a string for display.
func (m ReplayModel) View() string {
	if m.quitting {
		return ""
	}

	snap := m.sess.Snapshot()
	pos := snap.State.Coord()

	opts := m.opts.Render
	opts.Marker = &pos
	if m.width > chromeWidth {
		opts.MaxWidth = m.width - chromeWidth
	}
	if m.height > chromeHeight {
		opts.MaxHeight = m.height - chromeHeight
	}

	var sb strings.Builder
	sb.WriteString(RenderMap(m.sess.Map(), opts))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "pos %s  aim %d  mode %s  result %d  cmd %d/%d\n",
		pos, snap.State.Aim, snap.Mode, snap.Result, m.next, len(m.opts.Script))
	sb.WriteString(m.statusLine())
	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

// statusLine describes the last command and the replay state.
func (m ReplayModel) statusLine() string {
	switch {
	case m.err != nil:
		return colorStyles[core.ColorRed].Render("error: " + m.err.Error())
	case m.finished && m.runID != "":
		return dimStyle.Render("done, saved run " + m.runID)
	case m.finished:
		return dimStyle.Render("done")
	case m.paused:
		return dimStyle.Render("paused")
	case m.next > 0:
		return dimStyle.Render("> " + m.opts.Script[m.next-1].Text)
	default:
		return dimStyle.Render("waiting")
	}
}

// Run starts the Bubble Tea program with a replay model.
func Run(opts ReplayOptions) error {
	p := tea.NewProgram(
		NewReplayModel(opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
