// Package tui provides a Bubble Tea terminal user interface for webfont-packager.
package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/webfont-packager/internal/batch"
	"github.com/handiism/webfont-packager/internal/catalog"
	"github.com/handiism/webfont-packager/internal/config"
	"github.com/handiism/webfont-packager/internal/http"
	ioutils "github.com/handiism/webfont-packager/internal/io"
	"github.com/handiism/webfont-packager/internal/packager"
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

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	fontStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// maxLogs is the number of log lines kept on screen.
const maxLogs = 10

// maxListedFonts is the number of font IDs listed while packaging.
const maxListedFonts = 8

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateResolving
	StatePackaging
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   packager.ProgressLevel
}

// logBuffer collects events from packaging goroutines until the next tick.
type logBuffer struct {
	mu      sync.Mutex
	entries []LogEntry
	verbose bool
}

func (b *logBuffer) add(event packager.ProgressEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if event.Level == packager.LevelVerbose && !b.verbose {
		return
	}
	b.entries = append(b.entries, LogEntry{Message: event.Message, Level: event.Level})
	if len(b.entries) > maxLogs {
		b.entries = b.entries[len(b.entries)-maxLogs:]
	}
}

func (b *logBuffer) snapshot() []LogEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]LogEntry(nil), b.entries...)
}

func (b *logBuffer) setVerbose(verbose bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.verbose = verbose
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	logs      []LogEntry
	buffer    *logBuffer
	fonts     []string
	summary   *batch.Summary
	err       error

	// Packaging context
	ctx    context.Context
	cancel context.CancelFunc

	// Collaborators of the current run
	client    *http.Client
	catalog   *catalog.Client
	scheduler *batch.Scheduler

	// Batch progress
	doneFonts     int
	failedFonts   int
	totalFonts    int
	receivedBytes int64

	verbose bool

	width  int
	height int
}

// NewModel creates a new TUI model. A nil settings uses the defaults.
func NewModel(settings *config.Settings) Model {
	if settings == nil {
		settings = config.DefaultSettings()
	}

	ti := textinput.New()
	ti.Placeholder = "roboto, open-sans, lato (or: all)"
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		logs:      make([]LogEntry, 0),
		buffer:    &logBuffer{},
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg delivers one packaging event.
	ProgressMsg struct {
		Event packager.ProgressEvent
	}

	// ResolveDoneMsg is sent when the list of fonts to package is known.
	ResolveDoneMsg struct {
		Fonts []string
		Err   error
	}

	// PackageDoneMsg is sent when every font has been processed.
	PackageDoneMsg struct {
		Summary *batch.Summary
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StatePackaging || m.state == StateResolving {
				m.cancel()
				m.state = StateError
				m.err = fmt.Errorf("cancelled by user")
			}

		case "enter":
			if m.state == StateInput && strings.TrimSpace(m.textInput.Value()) != "" {
				m.state = StateResolving
				m.client = http.NewClient(m.settings.ToClientConfig())
				m.catalog = catalog.NewClient(m.settings.APIBaseURL, m.client)
				return m, tea.Batch(m.resolveFonts(), m.spinner.Tick)
			}

		case "tab":
			if m.state == StateInput {
				m.verbose = !m.verbose
				m.buffer.setVerbose(m.verbose)
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				m = m.reset()
				return m, nil
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		m.buffer.add(msg.Event)
		m.logs = m.buffer.snapshot()

	case ResolveDoneMsg:
		if m.state != StateResolving {
			break
		}
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else if len(msg.Fonts) == 0 {
			m.state = StateError
			m.err = fmt.Errorf("no fonts to package")
		} else {
			m.fonts = msg.Fonts
			m.totalFonts = len(msg.Fonts)
			m.state = StatePackaging

			p := packager.New(packager.Options{
				PackagesPath:           m.settings.PackagesPath,
				MaxConcurrentDownloads: m.settings.MaxConcurrentDownloads,
				Manifest:               m.settings.ToManifestConfig(),
			}, m.catalog, m.client, ioutils.NewFileStore(), nil)
			m.scheduler = batch.NewScheduler(p, m.settings.MaxConcurrentFonts, m.buffer.add)

			cmds = append(cmds, m.startPackaging(), m.tickProgress())
		}

	case PackageDoneMsg:
		if m.state != StatePackaging {
			break
		}
		m.summary = msg.Summary
		m.refreshProgress()
		if m.ctx.Err() != nil {
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		} else {
			m.state = StateComplete
		}

	case TickMsg:
		if m.scheduler != nil && m.state == StatePackaging {
			m.refreshProgress()

			var percent float64
			if m.totalFonts > 0 {
				percent = float64(m.doneFonts) / float64(m.totalFonts)
			}
			progressCmd := m.progress.SetPercent(percent)
			cmds = append(cmds, progressCmd, m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update text input
	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// refreshProgress copies scheduler counters and buffered logs into the model.
func (m *Model) refreshProgress() {
	if m.scheduler != nil {
		m.doneFonts, m.failedFonts, m.totalFonts = m.scheduler.Progress()
	}
	if m.client != nil {
		m.receivedBytes = m.client.ReceivedBytes()
	}
	m.logs = m.buffer.snapshot()
}

// reset returns the model to the input state for a new run.
func (m Model) reset() Model {
	m.state = StateInput
	m.logs = nil
	m.buffer = &logBuffer{verbose: m.verbose}
	m.fonts = nil
	m.summary = nil
	m.err = nil
	m.doneFonts = 0
	m.failedFonts = 0
	m.totalFonts = 0
	m.receivedBytes = 0
	m.client = nil
	m.catalog = nil
	m.scheduler = nil
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.textInput.SetValue("")
	m.textInput.Focus()
	return m
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

	// Header
	b.WriteString(titleStyle.Render("Aa Webfont Packager"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Package Google Fonts for self-hosting"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateResolving:
		b.WriteString(m.viewResolving())
	case StatePackaging:
		b.WriteString(m.viewPackaging())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Enter font IDs:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	verboseCheck := "[ ]"
	if m.verbose {
		verboseCheck = "[×]"
	}

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Verbose/debug output (tab)\n", verboseCheck))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Packages path: %s", m.settings.PackagesPath)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewResolving() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Fetching font list..."))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewPackaging() string {
	var b strings.Builder

	if len(m.fonts) > 0 {
		b.WriteString(successStyle.Render(fmt.Sprintf("Packaging %d font(s):", len(m.fonts))))
		b.WriteString("\n")
		for i, font := range m.fonts {
			if i == maxListedFonts {
				b.WriteString(dimStyle.Render(fmt.Sprintf("  … and %d more", len(m.fonts)-maxListedFonts)))
				b.WriteString("\n")
				break
			}
			b.WriteString(fontStyle.Render(fmt.Sprintf("  Aa %s", font)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	var percent float64
	if m.totalFonts > 0 {
		percent = float64(m.doneFonts) / float64(m.totalFonts)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf(
		"Fonts: %d/%d | Failed: %d | Downloaded: %.2f MB",
		m.doneFonts,
		m.totalFonts,
		m.failedFonts,
		float64(m.receivedBytes)/1024/1024,
	)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	var packaged, upToDate, failed, failedDownloads int
	if m.summary != nil {
		packaged = m.summary.Packaged
		upToDate = m.summary.UpToDate
		failed = len(m.summary.Failed)
		failedDownloads = m.summary.FailedDownloads
	}

	box := boxStyle.Render(fmt.Sprintf(
		"✨ Packaging Complete!\n\n"+
			"Fonts: %d\n"+
			"Packaged: %d\n"+
			"Up to date: %d\n"+
			"Failed: %d\n"+
			"Failed downloads: %d\n"+
			"Size: %.2f MB",
		m.totalFonts,
		packaged,
		upToDate,
		failed,
		failedDownloads,
		float64(m.receivedBytes)/1024/1024,
	))
	b.WriteString(box)

	if m.summary != nil && len(m.summary.Failed) > 0 {
		b.WriteString("\n\n")
		for _, f := range m.summary.Failed {
			b.WriteString(errorStyle.Render("✗ " + f.Error()))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("❌ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case packager.LevelError:
			style = errorStyle
			prefix = "✗"
		case packager.LevelWarning:
			style = warningStyle
			prefix = "!"
		case packager.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case packager.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: start • tab: verbose • esc: quit"
	case StateResolving, StatePackaging:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new run • q: quit"
	}
	return ""
}

// resolveFonts turns the input into font IDs, listing the catalog for "all".
func (m Model) resolveFonts() tea.Cmd {
	ctx := m.ctx
	input := m.textInput.Value()
	lister := m.catalog

	return func() tea.Msg {
		ids := batch.ParseIDs(input)
		if len(ids) == 1 && ids[0] == "all" {
			all, err := batch.AllFontIDs(ctx, lister)
			if err != nil {
				return ResolveDoneMsg{Err: err}
			}
			ids = all
		}
		return ResolveDoneMsg{Fonts: ids}
	}
}

// startPackaging runs the batch in background.
func (m Model) startPackaging() tea.Cmd {
	ctx := m.ctx
	scheduler := m.scheduler
	fonts := m.fonts

	return func() tea.Msg {
		return PackageDoneMsg{Summary: scheduler.Run(ctx, fonts)}
	}
}

// Run starts the TUI application.
func Run(settings *config.Settings) error {
	p := tea.NewProgram(NewModel(settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
