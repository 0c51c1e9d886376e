// Package extcmd runs external tools: captured for preview content, detached
// for short media playback. Foreground handoff (editors, viewers, long media)
// is the bubbletea runtime's job and lives with the update engine.
package extcmd

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// ToolError reports an external tool that could not be started or exited
// non-zero.
type ToolError struct {
	Tool     string
	ExitCode int
	Err      error
}

func (e *ToolError) Error() string {
	if e.ExitCode != 0 {
		return fmt.Sprintf("%s failed with code %d", e.Tool, e.ExitCode)
	}
	return fmt.Sprintf("%s failed: %v", e.Tool, e.Err)
}

func (e *ToolError) Unwrap() error { return e.Err }

// Exec runs commands on the real system. Its method set is what the
// classifier and update engine depend on, so tests can substitute fakes.
type Exec struct{}

// RunCaptured runs a command to completion and returns its stdout as trimmed
// lines. Non-zero exit or spawn failure yields a ToolError.
func (Exec) RunCaptured(name string, args ...string) ([]string, error) {
	out, err := exec.Command(name, args...).Output()
	if err != nil {
		code := 0
		if exitErr, ok := err.(*exec.ExitError); ok {
			code = exitErr.ExitCode()
		}
		return nil, &ToolError{Tool: name, ExitCode: code, Err: err}
	}

	var lines []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// DetachedProc is a running background process pollable for exit status.
type DetachedProc struct {
	cmd     *exec.Cmd
	desc    string
	done    chan struct{}
	waitErr error
}

// Pid returns the child's process id.
func (p *DetachedProc) Pid() int { return p.cmd.Process.Pid }

// Describe returns the originating command line.
func (p *DetachedProc) Describe() string { return p.desc }

// TryWait polls for exit without blocking.
func (p *DetachedProc) TryWait() (bool, error) {
	select {
	case <-p.done:
		return true, p.waitErr
	default:
		return false, nil
	}
}

// SpawnDetached starts a command with stdin/stdout discarded and returns a
// handle. A goroutine reaps the child so TryWait stays non-blocking.
func SpawnDetached(name string, args ...string) (*DetachedProc, error) {
	cmd := exec.Command(name, args...)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		return nil, &ToolError{Tool: name, Err: err}
	}

	p := &DetachedProc{
		cmd:  cmd,
		desc: name + " " + strings.Join(args, " "),
		done: make(chan struct{}),
	}
	go func() {
		p.waitErr = cmd.Wait()
		close(p.done)
	}()
	return p, nil
}

// MediaDuration queries the duration of a media file in seconds via the
// configured probe (an ffprobe invocation).
func MediaDuration(probe, path string) (float64, error) {
	lines, err := Exec{}.RunCaptured(probe,
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path)
	if err != nil {
		return 0, err
	}
	if len(lines) == 0 {
		return 0, fmt.Errorf("%s reported no duration for %s", probe, path)
	}
	return strconv.ParseFloat(lines[0], 64)
}
