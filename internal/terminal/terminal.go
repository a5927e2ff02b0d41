//go:build linux || darwin

package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/retroenv/retrogolib/log"
	"golang.org/x/sys/unix"
)

// Terminal is the keyboard and display of a machine run in a text terminal.
type Terminal struct {
	*Keypad
	*Renderer

	logger  *log.Logger
	fd      int
	restore unix.Termios
	out     io.Writer
	input   *pollReader
	stopped chan struct{}
}

// Open switches the input terminal to raw mode, clears the output and
// starts reading key presses. Close has to be called to restore the
// terminal.
func Open(logger *log.Logger, in *os.File, out io.Writer) (*Terminal, error) {
	fd := int(in.Fd())
	termios, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return nil, fmt.Errorf("getting terminal attributes: %w", err)
	}

	t := &Terminal{
		Keypad:   NewKeypad(DefaultHold),
		Renderer: NewRenderer(out),
		logger:   logger,
		fd:       fd,
		restore:  *termios,
		out:      out,
		input:    newPollReader(fd),
		stopped:  make(chan struct{}),
	}

	raw := *termios
	raw.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.INLCR | unix.ICRNL
	raw.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.IEXTEN
	raw.Cflag &^= unix.CSIZE | unix.PARENB
	raw.Cflag |= unix.CS8
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, &raw); err != nil {
		return nil, fmt.Errorf("setting terminal raw mode: %w", err)
	}

	go func() {
		defer close(t.stopped)
		if err := t.Listen(t.input); err != nil {
			logger.Error("Reading keyboard input failed", log.Err(err))
		}
	}()

	if _, err := io.WriteString(out, escapeHideCursor+escapeClear); err != nil {
		_ = t.Close()
		return nil, fmt.Errorf("clearing terminal: %w", err)
	}

	return t, nil
}

// Close stops reading key presses and restores the terminal attributes and
// the cursor.
func (t *Terminal) Close() error {
	t.input.Stop()
	<-t.stopped

	if _, err := io.WriteString(t.out, escapeShowCursor+"\r\n"); err != nil {
		t.logger.Warn("Restoring cursor failed", log.Err(err))
	}
	if err := unix.IoctlSetTermios(t.fd, ioctlSetTermios, &t.restore); err != nil {
		return fmt.Errorf("restoring terminal attributes: %w", err)
	}
	return nil
}

// pollInterval is the time in milliseconds a read waits for input before
// checking whether the reader was stopped.
const pollInterval = 50

// pollReader reads from a file descriptor until it is stopped. A blocked
// read of a terminal can not be interrupted, the reader polls instead.
type pollReader struct {
	fd   int
	stop chan struct{}
	once sync.Once
}

func newPollReader(fd int) *pollReader {
	return &pollReader{
		fd:   fd,
		stop: make(chan struct{}),
	}
}

// Read waits for input and reads it. It returns io.EOF once the reader is
// stopped or the input is closed.
func (r *pollReader) Read(p []byte) (int, error) {
	fds := []unix.PollFd{{Fd: int32(r.fd), Events: unix.POLLIN}}
	for {
		select {
		case <-r.stop:
			return 0, io.EOF
		default:
		}

		n, err := unix.Poll(fds, pollInterval)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			return 0, fmt.Errorf("polling input: %w", err)
		}
		if n == 0 {
			continue
		}

		read, err := unix.Read(r.fd, p)
		switch {
		case errors.Is(err, unix.EINTR):
			continue
		case err != nil:
			return 0, fmt.Errorf("reading input: %w", err)
		case read == 0:
			return 0, io.EOF
		default:
			return read, nil
		}
	}
}

// Stop ends all current and future reads.
func (r *pollReader) Stop() {
	r.once.Do(func() {
		close(r.stop)
	})
}
