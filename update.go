package main

import (
	"errors"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"burrow/internal/classify"
	"burrow/internal/extcmd"
	"burrow/internal/keymap"
	"burrow/internal/logger"
	"burrow/internal/search"
)

// sweepMsg triggers one non-blocking sweep of the process registry.
type sweepMsg time.Time

// execDoneMsg reports a foreground or system-opener child finishing.
type execDoneMsg struct {
	desc string
	err  error
}

var (
	errNoParent        = errors.New("no parent directory available")
	errNothingSelected = errors.New("no item selected")
	errAutoExecOff     = errors.New("selected item is an executable (auto-exec disabled)")
)

func sweepTick() tea.Cmd {
	return tea.Tick(sweepInterval, func(t time.Time) tea.Msg {
		return sweepMsg(t)
	})
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("burrow"),
		sweepTick(),
	)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case sweepMsg:
		for _, done := range m.registry.Sweep() {
			logger.Debug("child %d (%s) exited: %v", done.Pid, done.Desc, done.Err)
		}
		m.refreshIfDirty()
		return m, sweepTick()

	case execDoneMsg:
		if msg.err != nil {
			m.msg("Error: " + msg.err.Error())
			logger.Warn("%s failed: %v", msg.desc, msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		if m.mode == modeFilter {
			return m, m.updateFilter(msg)
		}
		if ev, ok := m.keys.Resolve(msg.String()); ok {
			m.pending = append(m.pending, ev)
			cmd := m.drainEvents()
			m.refreshIfDirty()
			return m, cmd
		}
		return m, nil
	}

	return m, nil
}

// updateFilter feeds keystrokes to the filter input and jumps the selection
// to the best fuzzy match. The listing is never narrowed.
func (m *model) updateFilter(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter", "esc":
		m.mode = modeBrowse
		m.filterInput.Blur()
		m.filterInput.SetValue("")
		return nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)

	names := make([]string, len(m.current))
	for i, e := range m.current {
		names[i] = e.Name
	}
	if idx := search.BestMatch(m.filterInput.Value(), names); idx >= 0 && idx != m.cursor {
		m.cursor = idx
		m.updateSelection()
	}
	return cmd
}

// drainEvents processes the pending queue strictly in FIFO order, one event
// fully resolved before the next. Each event's error is caught here,
// converted to a debug message, and processing continues: no event failure
// halts the loop.
func (m *model) drainEvents() tea.Cmd {
	var cmds []tea.Cmd
	for len(m.pending) > 0 {
		ev := m.pending[0]
		m.pending = m.pending[1:]

		cmd, err := m.applyEvent(ev)
		if err != nil {
			m.msg("Error: " + err.Error())
			logger.Warn("event %s failed: %v", ev, err)
		}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *model) enqueue(ev keymap.Event) {
	m.pending = append(m.pending, ev)
}

func (m *model) applyEvent(ev keymap.Event) (tea.Cmd, error) {
	switch ev {
	case keymap.Close:
		return tea.Quit, nil

	case keymap.NavigateUp:
		parent, ok := m.parentDir()
		if !ok {
			return nil, errNoParent
		}
		m.changeDirectory(parent)
		return nil, nil

	case keymap.NavigateDown:
		return nil, m.navigateDown()

	case keymap.SelectNext:
		m.changeSelection(1)
		return nil, nil

	case keymap.SelectPrevious:
		m.changeSelection(-1)
		return nil, nil

	case keymap.ToggleShowHidden:
		m.showHidden = !m.showHidden
		m.dirChanged = true
		return nil, nil

	case keymap.OpenImage:
		return m.foregroundViewer(m.cfg.ImageViewer)

	case keymap.OpenText:
		return m.foregroundViewer(m.cfg.Editor)

	case keymap.ReadPdf:
		return m.foregroundViewer(m.cfg.PdfViewer)

	case keymap.OpenExecutable:
		if m.selectedPath == "" {
			return nil, errNothingSelected
		}
		return m.execForeground(m.selectedPath), nil

	case keymap.OpenSystem:
		return m.openWithSystem()

	case keymap.PlayMedia:
		return m.playMedia()

	case keymap.StartFilter:
		m.mode = modeFilter
		return m.filterInput.Focus(), nil

	case keymap.YankPath:
		return nil, m.yankPath()

	case keymap.DebugEvent:
		m.msg("q!!")
		return nil, nil
	}

	return nil, nil
}

// navigateDown descends into the selected directory. When the selection is
// not a directory, the current classification picks the activation event to
// synthesize instead: this fallback is what makes "activate" behave
// differently per file type.
func (m *model) navigateDown() error {
	if m.selectedPath == "" {
		return errNothingSelected
	}

	if info, err := os.Stat(m.selectedPath); err == nil && info.IsDir() {
		m.changeDirectory(m.selectedPath)
		return nil
	}

	switch m.info.Kind {
	case classify.Directory:
		m.changeDirectory(m.selectedPath)
	case classify.Text:
		m.enqueue(keymap.OpenText)
	case classify.Executable:
		if !m.cfg.AutoExecOnActivate {
			return errAutoExecOff
		}
		m.enqueue(keymap.OpenExecutable)
	case classify.Image:
		m.enqueue(keymap.OpenImage)
	case classify.Audio, classify.Video:
		m.enqueue(keymap.PlayMedia)
	case classify.Pdf:
		m.enqueue(keymap.ReadPdf)
	case classify.Link:
		// Dangling or unresolved link: nothing sensible to open.
	case classify.Unknown:
		m.enqueue(keymap.OpenSystem)
	}
	return nil
}

// playMedia probes the selection's duration. Long media takes over the
// terminal; short media plays detached with minimized flags and is tracked
// by the registry.
func (m *model) playMedia() (tea.Cmd, error) {
	if m.selectedPath == "" {
		return nil, errNothingSelected
	}
	path := m.selectedPath

	duration, err := extcmd.MediaDuration(m.cfg.MediaProbe, path)
	if err != nil {
		return nil, err
	}

	if duration > m.cfg.LongMediaSeconds {
		return m.execForeground(m.cfg.MediaPlayer, path), nil
	}

	handle, err := extcmd.SpawnDetached(m.cfg.MediaPlayer,
		path,
		"--really-quiet",
		"--no-input-default-bindings",
		"--no-config",
		"--volume=50")
	if err != nil {
		return nil, err
	}
	m.registry.Track(handle)
	logger.Info("tracking detached child %d: %s", handle.Pid(), handle.Describe())
	return nil, nil
}
