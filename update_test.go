package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"burrow/internal/config"
	"burrow/internal/extcmd"
	"burrow/internal/keymap"
	"burrow/internal/logger"
	"burrow/internal/procs"
)

func TestMain(m *testing.M) {
	logger.Disable()
	os.Exit(m.Run())
}

func newTestModel(t *testing.T, dir string) *model {
	t.Helper()

	cfg := config.Default()
	cfg.Editor = "vi"

	m := &model{
		startDir:    dir,
		currentDir:  dir,
		showHidden:  false,
		dirChanged:  true,
		filterInput: textinput.New(),
		keys:        keymap.Defaults(),
		registry:    procs.NewRegistry(),
		cfg:         cfg,
		runner:      extcmd.Exec{},
	}
	m.refreshIfDirty()
	return m
}

func (m *model) run(t *testing.T, ev keymap.Event) tea.Cmd {
	t.Helper()
	m.enqueue(ev)
	cmd := m.drainEvents()
	m.refreshIfDirty()
	return cmd
}

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(name+"\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestSelectionClampsAtBounds(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.txt", "b.txt", "c.txt")
	m := newTestModel(t, dir)

	m.run(t, keymap.SelectPrevious)
	if m.cursor != 0 {
		t.Errorf("cursor = %d after SelectPrevious at 0, want 0", m.cursor)
	}

	for i := 0; i < 10; i++ {
		m.run(t, keymap.SelectNext)
	}
	if m.cursor != 2 {
		t.Errorf("cursor = %d after repeated SelectNext, want 2 (no wraparound)", m.cursor)
	}
}

func TestSelectionChangeReclassifies(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.txt", "b.blob")
	m := newTestModel(t, dir)

	if m.info.Kind.String() != "Text" {
		t.Fatalf("initial selection kind = %v, want Text", m.info.Kind)
	}
	m.run(t, keymap.SelectNext)
	if m.info.Kind.String() != "Unknown" {
		t.Errorf("kind after move = %v, want Unknown", m.info.Kind)
	}
	if filepath.Base(m.selectedPath) != "b.blob" {
		t.Errorf("selectedPath = %s", m.selectedPath)
	}
}

func TestToggleHiddenForcesRelistAndReset(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, ".hidden", "a.txt", "b.txt")
	m := newTestModel(t, dir)

	if len(m.current) != 2 {
		t.Fatalf("expected hidden entry filtered, got %d entries", len(m.current))
	}

	m.run(t, keymap.SelectNext)
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", m.cursor)
	}

	m.enqueue(keymap.ToggleShowHidden)
	m.drainEvents()
	if !m.dirChanged {
		t.Fatal("toggling show_hidden must set the directory_changed flag")
	}

	m.refreshIfDirty()
	if m.cursor != 0 {
		t.Errorf("cursor = %d after relist, want 0", m.cursor)
	}
	if len(m.current) != 3 {
		t.Errorf("expected 3 entries with hidden shown, got %d", len(m.current))
	}
}

func TestDebugRingBounded(t *testing.T) {
	m := newTestModel(t, t.TempDir())

	for i := 0; i < 10; i++ {
		m.msg(fmt.Sprintf("message %d", i))
	}
	if len(m.debug) != maxDebugMessages {
		t.Fatalf("ring has %d entries, want %d", len(m.debug), maxDebugMessages)
	}
	if m.debug[0] != "message 4" {
		t.Errorf("oldest surviving message = %q, want message 4", m.debug[0])
	}
	if m.debug[len(m.debug)-1] != "message 9" {
		t.Errorf("newest message = %q, want message 9", m.debug[len(m.debug)-1])
	}
}

func TestNavigateUpAtRootReportsError(t *testing.T) {
	m := newTestModel(t, string(filepath.Separator))

	m.run(t, keymap.NavigateUp)
	if len(m.debug) != 1 || !strings.HasPrefix(m.debug[0], "Error:") {
		t.Errorf("expected one error message, got %v", m.debug)
	}
	if m.currentDir != string(filepath.Separator) {
		t.Errorf("directory changed to %s", m.currentDir)
	}
}

func TestNavigateUpAndDown(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "child")
	os.Mkdir(sub, 0755)
	writeFiles(t, dir, "z.txt")
	m := newTestModel(t, dir)

	// Directories sort first, so the child is the initial selection.
	m.run(t, keymap.NavigateDown)
	if m.currentDir != sub {
		t.Fatalf("currentDir = %s, want %s", m.currentDir, sub)
	}
	if m.cursor != 0 {
		t.Errorf("cursor = %d after descend, want 0", m.cursor)
	}

	m.run(t, keymap.NavigateUp)
	if m.currentDir != dir {
		t.Errorf("currentDir = %s after NavigateUp, want %s", m.currentDir, dir)
	}
}

func TestActivateTextSynthesizesEditorOpen(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "notes.txt")
	m := newTestModel(t, dir)

	cmd := m.run(t, keymap.NavigateDown)
	if cmd == nil {
		t.Fatal("expected a foreground command for the editor")
	}
	found := false
	for _, line := range m.debug {
		if strings.Contains(line, "Running vi") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected editor launch message, got %v", m.debug)
	}
}

func TestActivateExecutableRespectsPolicy(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "tool")
	os.WriteFile(bin, []byte{0x7f, 'E', 'L', 'F', 0x02, 0x01}, 0755)

	m := newTestModel(t, dir)
	m.cfg.AutoExecOnActivate = false
	m.cfg.DependencyLister = "ldd"

	cmd := m.run(t, keymap.NavigateDown)
	if cmd != nil {
		t.Error("expected no command with auto-exec disabled")
	}
	if len(m.debug) == 0 || !strings.Contains(m.debug[len(m.debug)-1], "auto-exec disabled") {
		t.Errorf("expected policy error message, got %v", m.debug)
	}

	m.cfg.AutoExecOnActivate = true
	if cmd := m.run(t, keymap.NavigateDown); cmd == nil {
		t.Error("expected a foreground command with auto-exec enabled")
	}
}

func TestActivateUnknownUsesSystemOpener(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "blob"), []byte{0x00, 0xff, 0x81, 0x90}, 0644)
	m := newTestModel(t, dir)

	cmd := m.run(t, keymap.NavigateDown)
	if cmd == nil {
		t.Fatal("expected a system-opener command")
	}
	if len(m.debug) == 0 || !strings.HasPrefix(m.debug[len(m.debug)-1], "Opening") {
		t.Errorf("expected opener message, got %v", m.debug)
	}
}

func TestEventFailureDoesNotHaltQueue(t *testing.T) {
	m := newTestModel(t, t.TempDir()) // empty directory, nothing selected

	m.enqueue(keymap.NavigateDown) // fails: no item selected
	m.enqueue(keymap.ToggleShowHidden)
	m.drainEvents()

	if len(m.debug) != 1 || !strings.HasPrefix(m.debug[0], "Error:") {
		t.Errorf("expected one error message, got %v", m.debug)
	}
	if !m.showHidden {
		t.Error("event after a failing event did not run")
	}
}

type fakeHandle struct {
	pid    int
	exited bool
}

func (f *fakeHandle) Pid() int               { return f.pid }
func (f *fakeHandle) Describe() string       { return "fake" }
func (f *fakeHandle) TryWait() (bool, error) { return f.exited, nil }

func TestSweepMsgReapsExitedChildren(t *testing.T) {
	m := newTestModel(t, t.TempDir())

	running := &fakeHandle{pid: 1}
	m.registry.Track(running)
	m.registry.Track(&fakeHandle{pid: 2, exited: true})

	_, cmd := m.Update(sweepMsg(time.Now()))
	if cmd == nil {
		t.Error("sweep must reschedule itself")
	}
	if m.registry.Len() != 1 {
		t.Fatalf("registry has %d handles after sweep, want 1", m.registry.Len())
	}

	running.exited = true
	m.Update(sweepMsg(time.Now()))
	if m.registry.Len() != 0 {
		t.Errorf("registry has %d handles after second sweep, want 0", m.registry.Len())
	}
}

func TestKeyMsgDrivesEngine(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.txt", "b.txt")
	m := newTestModel(t, dir)
	m.width, m.height = 80, 24

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	if m.cursor != 1 {
		t.Errorf("cursor = %d after 's', want 1", m.cursor)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Errorf("cursor = %d after up arrow, want 0", m.cursor)
	}

	// Unbound keys are ignored, not errors.
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}})
	if len(m.debug) != 0 {
		t.Errorf("unbound key produced messages: %v", m.debug)
	}
}

func TestFilterJumpsSelection(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "alpha.txt", "beta.txt", "gamma.txt")
	m := newTestModel(t, dir)
	m.width, m.height = 80, 24

	m.run(t, keymap.StartFilter)
	if m.mode != modeFilter {
		t.Fatal("expected filter mode")
	}

	for _, r := range "gam" {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	if filepath.Base(m.selectedPath) != "gamma.txt" {
		t.Errorf("selection = %s, want gamma.txt", m.selectedPath)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeBrowse {
		t.Error("esc must leave filter mode")
	}
}
