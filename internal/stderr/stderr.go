//go:build !windows

// Package stderr redirects file descriptor 2 into the log while the
// terminal UI owns the screen. The audio backend's C libraries write
// there directly and would otherwise corrupt the layout.
package stderr

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"go.uber.org/zap"
)

// Capture redirects fd 2 to log until the returned restore function is
// called. Each non-empty line becomes one warning.
func Capture(log *zap.Logger) (restore func(), err error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("create pipe: %w", err)
	}
	fd := int(os.Stderr.Fd())
	orig, err := syscall.Dup(fd)
	if err != nil {
		r.Close()
		w.Close()
		return nil, fmt.Errorf("dup stderr: %w", err)
	}
	if err := syscall.Dup2(int(w.Fd()), fd); err != nil {
		syscall.Close(orig)
		r.Close()
		w.Close()
		return nil, fmt.Errorf("redirect stderr: %w", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		forward(r, log)
	}()

	return func() {
		_ = syscall.Dup2(orig, fd)
		_ = syscall.Close(orig)
		w.Close()
		<-done
		r.Close()
	}, nil
}

// forward logs every non-empty line read from r until EOF.
func forward(r io.Reader, log *zap.Logger) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			log.Warn("stderr", zap.String("line", line))
		}
	}
}
