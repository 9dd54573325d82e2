package system

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/mattn/go-isatty"
	"github.com/shirou/gopsutil/v3/process"
)

var configExtensions = []string{".yaml", ".yml", ".toml"}

// FindLatestConfig returns the most recently modified config file in dir.
func FindLatestConfig(dir string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() || !hasExtension(f.Name(), configExtensions) {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, f.Name())
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("no config files found in %s", dir)
	}

	return latestFile, nil
}

func hasExtension(name string, extensions []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range extensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// TerminalClipboard copies text to the system clipboard with an OSC 52
// escape sequence. It works through SSH and inside tmux or screen, as long as
// the terminal emulator honours OSC 52.
type TerminalClipboard struct {
	Out *os.File
}

// NewTerminalClipboard writes sequences to stderr so stdout stays clean for
// the document itself.
func NewTerminalClipboard() *TerminalClipboard {
	return &TerminalClipboard{Out: os.Stderr}
}

// Copy places text on the clipboard. It fails when Out is not a terminal,
// since the escape sequence would only corrupt a file or pipe.
func (c *TerminalClipboard) Copy(text string) error {
	if !isatty.IsTerminal(c.Out.Fd()) && !isatty.IsCygwinTerminal(c.Out.Fd()) {
		return fmt.Errorf("clipboard: %s is not a terminal", c.Out.Name())
	}
	_, err := sequence(text).WriteTo(c.Out)
	return err
}

func sequence(text string) osc52.Sequence {
	seq := osc52.New(text)
	switch term := os.Getenv("TERM"); {
	case os.Getenv("TMUX") != "":
		seq = seq.Tmux()
	case strings.HasPrefix(term, "screen"):
		seq = seq.Screen()
	}
	return seq
}

// ProcessRSS returns the resident memory of the current process in bytes.
func ProcessRSS() (uint64, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0, err
	}
	mem, err := p.MemoryInfo()
	if err != nil {
		return 0, err
	}
	return mem.RSS, nil
}
