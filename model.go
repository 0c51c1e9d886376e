package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/textinput"

	"burrow/internal/classify"
	"burrow/internal/config"
	"burrow/internal/extcmd"
	"burrow/internal/keymap"
	"burrow/internal/listing"
	"burrow/internal/procs"
)

// Application behavior constants
const (
	maxDebugMessages   = 6                      // Debug ring capacity, FIFO eviction
	chromeRows         = 2                      // Breadcrumbs line + trailing separator
	maxDirPreviewLines = 50                     // Directory preview bound in the info pane
	sweepInterval      = 200 * time.Millisecond // Registry sweep cadence
)

type mode int

const (
	modeBrowse mode = iota
	modeFilter
)

type model struct {
	width  int
	height int

	startDir   string
	currentDir string

	cursor       int
	selectedPath string

	current []listing.Entry
	parent  []listing.Entry
	info    classify.Result

	showHidden bool
	dirChanged bool

	mode        mode
	filterInput textinput.Model

	debug   []string
	pending []keymap.Event

	keys     *keymap.Table
	registry *procs.Registry
	cfg      *config.Config
	runner   classify.Runner
}

func initialModel(startDir string) *model {
	cfg := config.Load()

	fi := textinput.New()
	fi.Placeholder = "jump to..."
	fi.Prompt = "/"
	fi.CharLimit = 128

	m := &model{
		startDir:    startDir,
		currentDir:  startDir,
		showHidden:  cfg.ShowHidden,
		dirChanged:  true,
		filterInput: fi,
		keys:        keymap.Defaults(),
		registry:    procs.NewRegistry(),
		cfg:         cfg,
		runner:      extcmd.Exec{},
	}

	m.refreshIfDirty()
	return m
}

// msg appends a message to the debug ring, evicting the oldest entry once
// the ring is full.
func (m *model) msg(s string) {
	if len(m.debug) >= maxDebugMessages {
		m.debug = m.debug[1:]
	}
	m.debug = append(m.debug, s)
}

// parentDir returns the parent of the current directory, or false at the
// filesystem root.
func (m *model) parentDir() (string, bool) {
	parent := filepath.Dir(m.currentDir)
	if parent == m.currentDir {
		return "", false
	}
	return parent, true
}

func (m *model) changeDirectory(to string) {
	m.currentDir = to
	m.dirChanged = true
}

// refreshIfDirty applies the directory-changed flag: both panes are re-listed
// wholesale, the selection resets to 0 and the new selection is classified.
func (m *model) refreshIfDirty() {
	if !m.dirChanged {
		return
	}
	m.dirChanged = false

	m.current = listing.Read(m.currentDir, m.showHidden)
	if parent, ok := m.parentDir(); ok {
		m.parent = listing.Read(parent, m.showHidden)
	} else {
		m.parent = nil
	}

	m.cursor = 0
	m.updateSelection()
}

// changeSelection moves the cursor by delta, clamped to the listing bounds
// with no wraparound, and reclassifies the selection.
func (m *model) changeSelection(delta int) {
	next := m.cursor + delta
	if next >= len(m.current) {
		next = len(m.current) - 1
	}
	if next < 0 {
		next = 0
	}
	if next == m.cursor {
		return
	}
	m.cursor = next
	m.updateSelection()
}

// updateSelection resolves the selected path and classifies it. Runs exactly
// once per selection change, never per render.
func (m *model) updateSelection() {
	m.selectedPath = ""
	m.info = classify.Result{}

	if m.cursor < 0 || m.cursor >= len(m.current) {
		return
	}

	entry := m.current[m.cursor]
	path := filepath.Join(m.currentDir, entry.Name)
	m.selectedPath = path

	switch entry.Kind {
	case listing.Directory:
		m.info = classify.Result{Kind: classify.Directory, Lines: directoryPreview(path)}
	case listing.Symlink:
		m.info = classify.Result{Kind: classify.Link, Lines: linkPreview(path)}
	case listing.File:
		m.info = classify.File(path, m.runner, classify.Tools{
			DependencyLister: m.cfg.DependencyLister,
			MetadataTool:     m.cfg.MetadataTool,
		})
	default:
		m.info = classify.Result{Kind: classify.Unknown}
	}
}

// directoryPreview lists a directory's visible children for the info pane,
// directories marked with a trailing slash.
func directoryPreview(path string) []string {
	entries := listing.Read(path, false)
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		if len(lines) >= maxDirPreviewLines {
			break
		}
		name := e.Name
		if e.Kind == listing.Directory {
			name += "/"
		}
		lines = append(lines, name)
	}
	return lines
}

func linkPreview(path string) []string {
	target, err := os.Readlink(path)
	if err != nil {
		return nil
	}
	return []string{"-> " + target}
}

// infoLines is what the info pane shows: the preview, or the bare kind name
// when there is a selection but no preview content.
func (m *model) infoLines() []string {
	if len(m.info.Lines) > 0 {
		return m.info.Lines
	}
	if m.selectedPath != "" {
		return []string{m.info.Kind.String()}
	}
	return nil
}
