// Package tui provides a Bubble Tea terminal user interface for usdb-syncer.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mjhalwa/usdb-syncer/internal/browse"
	"github.com/mjhalwa/usdb-syncer/internal/config"
	"github.com/mjhalwa/usdb-syncer/internal/db"
	"github.com/mjhalwa/usdb-syncer/internal/download"
	"github.com/mjhalwa/usdb-syncer/internal/log"
	"github.com/mjhalwa/usdb-syncer/internal/model"
	syncpkg "github.com/mjhalwa/usdb-syncer/internal/sync"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500")).
			Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))

	treeStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(0, 1)
)

// State represents the current UI state.
type State int

const (
	StateBrowse State = iota
	StateSyncing
	StateComplete
	StateError
)

// Focus identifies which pane receives key input.
type Focus int

const (
	FocusSearch Focus = iota
	FocusTree
	FocusList
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   download.ProgressLevel
}

// treeRow is one rendered line of the filter tree: a category header or a
// checkable variant.
type treeRow struct {
	category *browse.CategoryNode
	variant  *browse.VariantNode
	label    string
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state State
	focus Focus

	searchInput textinput.Model
	spinner     spinner.Model
	progressBar progress.Model

	settings *config.Settings
	store    *db.Store
	logger   *log.Logger

	tree     *browse.Tree
	treeRows []treeRow
	treeCur  int

	songs    []model.Song
	files    map[model.SongID]model.LocalFiles
	selected map[model.SongID]bool
	listCur  int

	logs []LogEntry
	err  error

	// Sync context
	ctx    context.Context
	cancel context.CancelFunc

	manager *download.Manager
	events  chan download.ProgressEvent

	width  int
	height int
}

// NewModel creates a new TUI model over an open song store.
func NewModel(settings *config.Settings, store *db.Store, logger *log.Logger) (Model, error) {
	ti := textinput.New()
	ti.Placeholder = "artist or title"
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	languages, err := store.Languages()
	if err != nil {
		return Model{}, err
	}
	editions, err := store.Editions()
	if err != nil {
		return Model{}, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	m := Model{
		state:       StateBrowse,
		focus:       FocusSearch,
		searchInput: ti,
		spinner:     sp,
		progressBar: prog,
		settings:    settings,
		store:       store,
		logger:      logger,
		tree:        browse.NewTree(languages, editions),
		files:       make(map[model.SongID]model.LocalFiles),
		selected:    make(map[model.SongID]bool),
		events:      make(chan download.ProgressEvent, 256),
		ctx:         ctx,
		cancel:      cancel,
	}
	m.rebuildTreeRows()
	if err := m.refreshSongs(); err != nil {
		cancel()
		return Model{}, err
	}
	return m, nil
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// SyncDoneMsg is sent when a sync batch completes.
	SyncDoneMsg struct {
		Synced int32
		Total  int32
		Err    error
	}

	// TickMsg drives progress polling while syncing.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progressBar.Width = msg.Width - 20
		if m.progressBar.Width > 80 {
			m.progressBar.Width = 80
		}
		if m.progressBar.Width < 20 {
			m.progressBar.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		newModel, cmd, handled := m.handleKey(msg)
		if handled {
			return newModel, cmd
		}
		m = newModel

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case SyncDoneMsg:
		m.drainEvents()
		if msg.Err != nil && m.ctx.Err() == nil {
			m.state = StateError
			m.err = msg.Err
		} else if m.ctx.Err() != nil {
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		} else {
			m.state = StateComplete
			m.refreshFiles()
		}

	case TickMsg:
		if m.state == StateSyncing {
			m.drainEvents()
			var percent float64
			if synced, total := m.manager.GetProgress(); total > 0 {
				percent = float64(synced) / float64(total)
			}
			cmds = append(cmds, m.progressBar.SetPercent(percent), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progressBar.Update(msg)
		m.progressBar = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	if m.state == StateBrowse && m.focus == FocusSearch {
		before := m.searchInput.Value()
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		cmds = append(cmds, cmd)
		if m.searchInput.Value() != before {
			if err := m.refreshSongs(); err != nil {
				m.state = StateError
				m.err = err
			}
		}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		m.cancel()
		return m, tea.Quit, true

	case "esc":
		if m.state == StateBrowse {
			return m, tea.Quit, true
		}
		if m.state == StateSyncing {
			m.cancel()
		}
		return m, nil, true

	case "q":
		if m.state == StateComplete || m.state == StateError {
			return m, tea.Quit, true
		}

	case "r":
		if m.state == StateComplete || m.state == StateError {
			m.state = StateBrowse
			m.logs = nil
			m.err = nil
			m.manager = nil
			m.ctx, m.cancel = context.WithCancel(context.Background())
			m.refreshFiles()
			return m, nil, true
		}

	case "tab":
		if m.state == StateBrowse {
			m.focus = (m.focus + 1) % 3
			if m.focus == FocusSearch {
				m.searchInput.Focus()
			} else {
				m.searchInput.Blur()
			}
			return m, nil, true
		}

	case "up":
		if m.state == StateBrowse {
			m.moveCursor(-1)
			return m, nil, true
		}

	case "down":
		if m.state == StateBrowse {
			m.moveCursor(1)
			return m, nil, true
		}

	case "enter":
		if m.state == StateBrowse {
			return m.toggleAtCursor(true), nil, true
		}

	case " ":
		if m.state == StateBrowse && m.focus != FocusSearch {
			return m.toggleAtCursor(false), nil, true
		}

	case "a":
		if m.state == StateBrowse && m.focus == FocusList {
			for _, song := range m.songs {
				m.selected[song.ID] = true
			}
			return m, nil, true
		}

	case "n":
		if m.state == StateBrowse && m.focus == FocusList {
			m.selected = make(map[model.SongID]bool)
			return m, nil, true
		}

	case "s":
		if m.state == StateBrowse && m.focus != FocusSearch {
			return m.startSync()
		}
	}
	return m, nil, false
}

func (m *Model) moveCursor(delta int) {
	switch m.focus {
	case FocusTree:
		m.treeCur = clamp(m.treeCur+delta, 0, len(m.treeRows)-1)
	case FocusList:
		m.listCur = clamp(m.listCur+delta, 0, len(m.songs)-1)
	}
}

// toggleAtCursor applies an enter or space press: in the tree it toggles
// the filter variant (enter exclusively, space additively), in the list
// it toggles the song selection.
func (m Model) toggleAtCursor(exclusive bool) Model {
	switch m.focus {
	case FocusTree:
		if m.treeCur < len(m.treeRows) {
			if v := m.treeRows[m.treeCur].variant; v != nil {
				m.tree.Toggle(v, exclusive)
				if err := m.refreshSongs(); err != nil {
					m.state = StateError
					m.err = err
				}
			}
		}
	case FocusList:
		if m.listCur < len(m.songs) {
			id := m.songs[m.listCur].ID
			m.selected[id] = !m.selected[id]
		}
	}
	return m
}

func (m Model) startSync() (Model, tea.Cmd, bool) {
	var songs []model.Song
	for _, song := range m.songs {
		if m.selected[song.ID] {
			songs = append(songs, song)
		}
	}
	if len(songs) == 0 {
		m.logs = append(m.logs, LogEntry{Message: "No songs selected", Level: download.LevelWarning})
		return m, nil, true
	}

	events := m.events
	m.manager = download.NewManager(m.settings, m.store, m.logger, func(event download.ProgressEvent) {
		select {
		case events <- event:
		default:
		}
	})
	m.state = StateSyncing
	m.logs = nil

	manager, ctx := m.manager, m.ctx
	syncCmd := func() tea.Msg {
		err := manager.SyncSongs(ctx, songs)
		synced, total := manager.GetProgress()
		return SyncDoneMsg{Synced: synced, Total: total, Err: err}
	}
	return m, tea.Batch(syncCmd, m.tickProgress(), m.spinner.Tick), true
}

// refreshSongs re-runs the database query for the current search text and
// filter tree state.
func (m *Model) refreshSongs() error {
	songs, err := m.store.Search(m.tree.BuildSearch(m.searchInput.Value()))
	if err != nil {
		return err
	}
	m.songs = songs
	m.listCur = clamp(m.listCur, 0, max(len(songs)-1, 0))
	m.refreshFiles()
	return nil
}

// refreshFiles re-resolves local file presence for the visible songs.
func (m *Model) refreshFiles() {
	m.files = make(map[model.SongID]model.LocalFiles, len(m.songs))
	for i := range m.songs {
		files, _ := syncpkg.Resolve(&m.songs[i], m.settings.SongDir, m.logger)
		m.files[m.songs[i].ID] = files
	}
}

func (m *Model) rebuildTreeRows() {
	m.treeRows = m.treeRows[:0]
	for _, c := range m.tree.Categories {
		m.treeRows = append(m.treeRows, treeRow{category: c, label: c.Label})
		for _, v := range c.Variants {
			m.treeRows = append(m.treeRows, treeRow{variant: v, label: v.Label})
		}
	}
}

func (m *Model) drainEvents() {
	for {
		select {
		case event := <-m.events:
			if event.Level == download.LevelVerbose {
				continue
			}
			m.logs = append(m.logs, LogEntry{Message: event.Message, Level: event.Level})
			if len(m.logs) > 10 {
				m.logs = m.logs[len(m.logs)-10:]
			}
		default:
			return
		}
	}
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("♪ USDB Syncer"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Browse and sync UltraStar songs"))
	b.WriteString("\n\n")

	switch m.state {
	case StateBrowse:
		b.WriteString(m.viewBrowse())
	case StateSyncing:
		b.WriteString(m.viewSyncing())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewBrowse() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Search: "))
	b.WriteString(m.searchInput.View())
	b.WriteString("\n\n")

	tree := treeStyle.Render(m.viewTree())
	list := m.viewSongList()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tree, "  ", list))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf("%d songs, %d selected", len(m.songs), len(m.selectedIDs()))))
	b.WriteString("\n")
	if len(m.logs) > 0 {
		b.WriteString(m.renderLogs())
	}

	return b.String()
}

func (m Model) viewTree() string {
	var b strings.Builder

	for i, row := range m.treeRows {
		line := ""
		if row.category != nil {
			line = subtitleStyle.Render(row.label)
		} else {
			check := "[ ]"
			if row.variant.Checked {
				check = "[×]"
			}
			line = fmt.Sprintf("  %s %s", check, row.label)
			if row.variant.Checked {
				line = selectedStyle.Render(line)
			}
		}
		if m.focus == FocusTree && i == m.treeCur {
			line = cursorStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// songListColumns are the columns shown in the song table.
var songListColumns = []struct {
	column browse.Column
	width  int
}{
	{browse.ColumnSongID, 6},
	{browse.ColumnArtist, 24},
	{browse.ColumnTitle, 28},
	{browse.ColumnLanguage, 10},
	{browse.ColumnRating, 6},
	{browse.ColumnTxt, 3},
	{browse.ColumnAudio, 3},
	{browse.ColumnVideo, 3},
	{browse.ColumnCover, 3},
	{browse.ColumnBackground, 3},
}

func (m Model) viewSongList() string {
	var b strings.Builder

	var header []string
	for _, col := range songListColumns {
		name := col.column.String()
		if col.column.IsDecoration() {
			name = name[:1]
		}
		header = append(header, pad(name, col.width))
	}
	b.WriteString(infoStyle.Render(strings.Join(header, " ")))
	b.WriteString("\n")

	first, last := m.visibleRange()
	for i := first; i < last; i++ {
		song := &m.songs[i]
		files := m.files[song.ID]

		var cells []string
		for _, col := range songListColumns {
			var cell string
			if col.column.IsDecoration() {
				if col.column.DecorationData(files) {
					cell = "✓"
				} else {
					cell = "·"
				}
			} else {
				cell = col.column.DisplayData(song)
			}
			cells = append(cells, pad(cell, col.width))
		}

		line := strings.Join(cells, " ")
		marker := "  "
		if m.selected[song.ID] {
			marker = selectedStyle.Render("* ")
		}
		if m.focus == FocusList && i == m.listCur {
			line = cursorStyle.Render("> ") + marker + line
		} else {
			line = "  " + marker + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if len(m.songs) == 0 {
		b.WriteString(dimStyle.Render("  no songs match"))
		b.WriteString("\n")
	}

	return b.String()
}

// visibleRange keeps the list cursor on screen within the room the
// terminal height leaves for song rows.
func (m Model) visibleRange() (int, int) {
	rows := m.height - len(m.treeRows) - 12
	if rows < 5 {
		rows = 5
	}
	first := 0
	if m.listCur >= rows {
		first = m.listCur - rows + 1
	}
	last := first + rows
	if last > len(m.songs) {
		last = len(m.songs)
	}
	return first, last
}

func (m Model) viewSyncing() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	synced, total := int32(0), int32(0)
	if m.manager != nil {
		synced, total = m.manager.GetProgress()
	}
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Syncing songs... %d/%d", synced, total)))
	b.WriteString("\n\n")
	b.WriteString(m.progressBar.View())
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	synced, total := int32(0), int32(0)
	if m.manager != nil {
		synced, total = m.manager.GetProgress()
	}
	b.WriteString(successStyle.Render(fmt.Sprintf("✓ Sync complete: %d/%d songs", synced, total)))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("✗ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}
	b.WriteString("\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, entry := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch entry.Level {
		case download.LevelError:
			style = errorStyle
			prefix = "✗"
		case download.LevelWarning:
			style = warningStyle
			prefix = "!"
		case download.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case download.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + entry.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateBrowse:
		switch m.focus {
		case FocusSearch:
			return "type to search • tab: filters • esc: quit"
		case FocusTree:
			return "enter: select filter • space: add filter • tab: songs • s: sync • esc: quit"
		default:
			return "space: select song • a: all • n: none • s: sync • tab: search • esc: quit"
		}
	case StateSyncing:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: back to browse • q: quit"
	}
	return ""
}

func (m Model) selectedIDs() []model.SongID {
	var ids []model.SongID
	for id, sel := range m.selected {
		if sel {
			ids = append(ids, id)
		}
	}
	return ids
}

func pad(s string, width int) string {
	w := lipgloss.Width(s)
	if w > width {
		return string([]rune(s)[:width])
	}
	return s + strings.Repeat(" ", width-w)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Run starts the TUI application.
func Run(settings *config.Settings, store *db.Store, logger *log.Logger) error {
	m, err := NewModel(settings, store, logger)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
