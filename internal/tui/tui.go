package tui

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/gwk/internal/ipc"
)

// DefaultInterval is how often the monitor polls a running gwk.
const DefaultInterval = 500 * time.Millisecond

// Source provides status snapshots. *ipc.Client implements it.
type Source interface {
	GetStatus() (*ipc.StatusData, error)
}

// Run opens the full-screen monitor and blocks until the user quits.
func Run(src Source, interval time.Duration) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("monitor requires an interactive terminal (stdin/stdout must be TTYs)")
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	p := tea.NewProgram(newModel(src, interval), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
