//go:build !windows

// Package stderr redirects file descriptor 2 into the log. The audio
// backend's C libraries write there directly, which would draw over the
// terminal UI.
package stderr

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"syscall"
)

// Messages receives captured lines for display. Lines are dropped when it
// is full.
var Messages = make(chan string, 100)

var (
	mu      sync.Mutex
	saved   = -1
	r, w    *os.File
	stopped bool
)

// Start swaps fd 2 for a pipe and forwards what arrives to logger and
// Messages. Call it before the audio device opens. On error, stderr is left
// untouched.
func Start(logger *slog.Logger) error {
	mu.Lock()
	defer mu.Unlock()
	if saved >= 0 {
		return nil
	}

	pr, pw, err := os.Pipe()
	if err != nil {
		return fmt.Errorf("create pipe: %w", err)
	}
	fd := int(os.Stderr.Fd()) //nolint:gosec // fd 2
	dup, err := syscall.Dup(fd)
	if err != nil {
		pr.Close()
		pw.Close()
		return fmt.Errorf("save stderr: %w", err)
	}
	if err := syscall.Dup2(int(pw.Fd()), fd); err != nil { //nolint:gosec // pipe fd
		syscall.Close(dup)
		pr.Close()
		pw.Close()
		return fmt.Errorf("redirect stderr: %w", err)
	}

	saved, r, w = dup, pr, pw
	go forward(pr, logger, Messages)
	return nil
}

// forward logs every non-blank line of src and offers it to out.
func forward(src io.Reader, logger *slog.Logger, out chan<- string) {
	scanner := bufio.NewScanner(src)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		logger.Warn("captured stderr", "line", line)
		select {
		case out <- line:
		default:
		}
	}
}

// Stop puts the original stderr back. Messages is closed and Start cannot
// be called again.
func Stop() {
	mu.Lock()
	defer mu.Unlock()
	if saved < 0 || stopped {
		return
	}
	_ = syscall.Dup2(saved, int(os.Stderr.Fd())) //nolint:gosec // fd 2
	_ = syscall.Close(saved)
	w.Close()
	r.Close()
	close(Messages)
	stopped = true
}
