package main

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/skratchdot/open-golang/open"

	"burrow/internal/logger"
)

// foregroundViewer hands the terminal to an external tool invoked on the
// selected path, reclaiming it when the child exits.
func (m *model) foregroundViewer(name string, args ...string) (tea.Cmd, error) {
	if m.selectedPath == "" {
		return nil, errNothingSelected
	}
	return m.execForeground(name, append(args, m.selectedPath)...), nil
}

// execForeground builds the terminal-handoff command. The runtime leaves
// interactive mode before the child starts and re-enters it after the child
// exits; the exit error arrives as an execDoneMsg.
func (m *model) execForeground(name string, args ...string) tea.Cmd {
	desc := strings.TrimSpace(name + " " + strings.Join(args, " "))
	m.msg("Running " + desc)
	logger.Info("foreground: %s", desc)
	return tea.ExecProcess(exec.Command(name, args...), func(err error) tea.Msg {
		return execDoneMsg{desc: desc, err: err}
	})
}

// openWithSystem hands the selection to the OS default opener. Used when the
// classification resolved to Unknown.
func (m *model) openWithSystem() (tea.Cmd, error) {
	if m.selectedPath == "" {
		return nil, errNothingSelected
	}
	path := m.selectedPath
	m.msg("Opening " + filepath.Base(path))
	return func() tea.Msg {
		return execDoneMsg{desc: "open " + path, err: open.Run(path)}
	}, nil
}

// yankPath copies the absolute selected path to the system clipboard.
func (m *model) yankPath() error {
	if m.selectedPath == "" {
		return errNothingSelected
	}
	if err := clipboard.WriteAll(m.selectedPath); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	m.msg("Yanked " + m.selectedPath)
	return nil
}
