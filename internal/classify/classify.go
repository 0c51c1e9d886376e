// Package classify determines a file's content category from its extension,
// its well-known name, or byte-content sniffing, and produces a bounded
// preview for the info pane.
package classify

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"burrow/internal/utils"
)

// Kind is the inferred content category of a file.
type Kind int

const (
	Unknown Kind = iota
	Text
	Executable
	Image
	Audio
	Video
	Pdf
	Link
	Directory
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "Text"
	case Executable:
		return "Executable"
	case Image:
		return "Image"
	case Audio:
		return "Audio"
	case Video:
		return "Video"
	case Pdf:
		return "Pdf"
	case Link:
		return "Link"
	case Directory:
		return "Directory"
	}
	return "Unknown"
}

// Result is a classification plus its preview lines. A Result with no lines
// still renders: the kind name is shown instead.
type Result struct {
	Kind  Kind
	Lines []string
}

// Runner executes an external tool and captures its stdout, one trimmed line
// per element. extcmd.Exec satisfies it; tests substitute fakes.
type Runner interface {
	RunCaptured(name string, args ...string) ([]string, error)
}

// Tools names the external commands the classifier queries for previews.
type Tools struct {
	DependencyLister string // e.g. ldd
	MetadataTool     string // e.g. mediainfo
}

const maxPreviewLines = 50

var extensions = map[string]Kind{
	"rs":   Text,
	"go":   Text,
	"md":   Text,
	"txt":  Text,
	"toml": Text,
	"lock": Text,
	"ini":  Text,
	"exe":  Executable,
	"png":  Image,
	"jpg":  Image,
	"jpeg": Image,
	"opus": Audio,
	"flac": Audio,
	"mp3":  Audio,
	"wav":  Audio,
	"ogg":  Audio,
	"mp4":  Video,
	"mkv":  Video,
	"webm": Video,
	"pdf":  Pdf,
}

var knownNames = map[string]Kind{
	"README":     Text,
	"LICENSE":    Text,
	"Makefile":   Text,
	".gitignore": Text,
}

// Detect resolves the kind of a regular file. Directories and symlinks are
// classified trivially by the caller and never reach this routine. It never
// fails: unidentifiable content resolves to Unknown.
func Detect(path string) Kind {
	name := filepath.Base(path)
	ext := filepath.Ext(name)
	if ext == name {
		// Dotfiles like .gitignore have a name, not an extension.
		ext = ""
	}
	if ext = strings.TrimPrefix(ext, "."); ext != "" {
		if kind, ok := extensions[ext]; ok {
			return kind
		}
		return Unknown
	}
	if kind, ok := knownNames[name]; ok {
		return kind
	}
	return sniff(path)
}

// sniff reads the first 4 bytes for an ELF magic, then falls back to UTF-8
// validation of the first 1KB.
func sniff(path string) Kind {
	f, err := os.Open(path)
	if err != nil {
		return Unknown
	}
	defer f.Close()

	magic := make([]byte, 4)
	n, err := f.Read(magic)
	if err != nil || n < 4 {
		return Unknown
	}
	if string(magic) == "\x7fELF" {
		return Executable
	}

	buf := make([]byte, 1024)
	copy(buf, magic)
	m, _ := f.Read(buf[4:])
	if utf8.Valid(buf[:4+m]) {
		return Text
	}
	return Unknown
}

// File classifies a regular file and loads its preview. External tool
// failures degrade to a placeholder line; classification itself never fails.
func File(path string, run Runner, tools Tools) Result {
	kind := Detect(path)

	var lines []string
	switch kind {
	case Text:
		lines = headLines(path, maxPreviewLines)
	case Executable:
		lines = executablePreview(path, run, tools.DependencyLister)
	case Audio, Video:
		lines = mediaPreview(path, run, tools.MetadataTool, kind)
	}

	return Result{Kind: kind, Lines: lines}
}

// headLines returns up to limit lines from the start of the file.
func headLines(path string, limit int) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() && len(lines) < limit {
		lines = append(lines, scanner.Text())
	}
	return lines
}

// executablePreview lists linked libraries, prefixed with a human-readable
// binary size.
func executablePreview(path string, run Runner, lister string) []string {
	lines, err := run.RunCaptured(lister, path)
	if err != nil {
		lines = []string{fmt.Sprintf("Unable to run %s", lister)}
	}

	size := "Unknown size"
	if info, err := os.Stat(path); err == nil {
		size = utils.FormatSizeMB(info.Size())
	}
	return append([]string{fmt.Sprintf("Executable %s", size)}, lines...)
}

// mediaPreview queries the metadata tool, degrading to a placeholder.
func mediaPreview(path string, run Runner, tool string, kind Kind) []string {
	lines, err := run.RunCaptured(tool, path)
	if err != nil {
		lines = []string{"Unable to get metadata"}
	}
	return append([]string{kind.String()}, lines...)
}
