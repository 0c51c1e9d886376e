package main

import (
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"burrow/internal/logger"
)

func main() {
	if err := logger.Init(); err != nil {
		log.Printf("logging disabled: %v", err)
	}
	defer logger.Close()

	startDir, err := os.Getwd()
	if err != nil {
		startDir = string(filepath.Separator)
	}
	if len(os.Args) > 1 {
		if abs, err := filepath.Abs(os.Args[1]); err == nil {
			startDir = abs
		}
	}

	p := tea.NewProgram(initialModel(startDir), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}
