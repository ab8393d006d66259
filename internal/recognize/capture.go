package recognize

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/llehouerou/hifi/internal/stderr"
)

// TaskName is the task name used for capture and identification.
const TaskName = "fingerprint-capture"

// ErrNoAudio is returned when the recorder produced no samples.
var ErrNoAudio = errors.New("no audio captured")

// Capturer records raw signed 16-bit little-endian mono PCM.
type Capturer interface {
	Capture(ctx context.Context, d time.Duration, sampleRate int) ([]byte, error)
}

// DefaultCaptureCommand records from the default ALSA device. {rate} and
// {seconds} are substituted before running.
var DefaultCaptureCommand = []string{
	"arecord", "-q", "-t", "raw", "-f", "S16_LE", "-c", "1",
	"-r", "{rate}", "-d", "{seconds}",
}

// CommandCapturer runs an external recorder that writes PCM to stdout.
type CommandCapturer struct {
	argv []string
	log  *log.Logger
}

// NewCommandCapturer creates a capturer. An empty argv uses
// DefaultCaptureCommand.
func NewCommandCapturer(argv []string, logger *log.Logger) *CommandCapturer {
	if len(argv) == 0 {
		argv = DefaultCaptureCommand
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &CommandCapturer{argv: argv, log: logger}
}

// Args returns the command line for a capture.
func (c *CommandCapturer) Args(d time.Duration, sampleRate int) []string {
	secs := max(1, int((d+time.Second-1)/time.Second))
	r := strings.NewReplacer(
		"{rate}", strconv.Itoa(sampleRate),
		"{seconds}", strconv.Itoa(secs),
	)
	args := make([]string, len(c.argv))
	for i, a := range c.argv {
		args[i] = r.Replace(a)
	}
	return args
}

// Capture records for d. The recorder runs for its full length even if ctx
// is cancelled; callers discard the result in that case.
func (c *CommandCapturer) Capture(ctx context.Context, d time.Duration, sampleRate int) ([]byte, error) {
	args := c.Args(d, sampleRate)
	errs := stderr.New(c.log, args[0])

	var out bytes.Buffer
	cmd := exec.CommandContext(context.WithoutCancel(ctx), args[0], args[1:]...) //nolint:gosec // recorder comes from user config
	cmd.Stdout = &out
	cmd.Stderr = errs

	c.log.Debug("capture started", "cmd", args[0], "duration", d, "rate", sampleRate)
	if err := cmd.Run(); err != nil {
		return nil, errs.Wrap(fmt.Errorf("run %s: %w", args[0], err))
	}
	if out.Len() < 2 {
		return nil, ErrNoAudio
	}
	// Drop a trailing odd byte.
	return out.Bytes()[:out.Len()&^1], nil
}
