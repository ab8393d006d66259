// Package stderr collects the stderr output of helper processes (mpv, yt-dlp,
// the capture recorder) so it never reaches the terminal owned by the TUI.
// Lines are logged and the most recent ones are kept to enrich errors.
package stderr

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

const defaultTail = 5

// Capture is an io.Writer suitable for exec.Cmd.Stderr.
type Capture struct {
	mu      sync.Mutex
	log     *log.Logger
	source  string
	partial []byte
	tail    []string
	max     int
}

// New creates a capture for the named process. A nil logger discards output.
func New(logger *log.Logger, source string) *Capture {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Capture{log: logger, source: source, max: defaultTail}
}

func (c *Capture) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.partial = append(c.partial, p...)
	for {
		i := bytes.IndexByte(c.partial, '\n')
		if i < 0 {
			break
		}
		c.addLocked(string(c.partial[:i]))
		c.partial = c.partial[i+1:]
	}
	return len(p), nil
}

func (c *Capture) addLocked(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	c.log.Debug("stderr", "process", c.source, "line", line)
	c.tail = append(c.tail, line)
	if len(c.tail) > c.max {
		c.tail = c.tail[len(c.tail)-c.max:]
	}
}

// Tail returns the last captured lines, including an unterminated one,
// joined with "; ".
func (c *Capture) Tail() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	lines := c.tail
	if p := strings.TrimSpace(string(c.partial)); p != "" {
		lines = append(append([]string(nil), lines...), p)
	}
	return strings.Join(lines, "; ")
}

// Wrap annotates err with the captured output. Returns err unchanged when
// nothing was captured, and nil for a nil err.
func (c *Capture) Wrap(err error) error {
	if err == nil {
		return nil
	}
	tail := c.Tail()
	if tail == "" {
		return err
	}
	return fmt.Errorf("%w (%s: %s)", err, c.source, tail)
}
