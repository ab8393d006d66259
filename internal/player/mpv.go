package player

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/llehouerou/hifi/internal/stderr"
)

// ErrNotRunning is returned when the mpv process cannot be reached.
var ErrNotRunning = errors.New("mpv is not running")

const (
	socketWait     = 3 * time.Second
	socketPoll     = 50 * time.Millisecond
	shutdownWait   = 2 * time.Second
	defaultMPVPath = "mpv"
)

// Property observer ids.
const (
	obsTimePos = iota + 1
	obsDuration
	obsPause
	obsEOF
)

// MPVConfig configures the mpv subprocess.
type MPVConfig struct {
	Path      string   // mpv binary, defaults to "mpv"
	Args      []string // extra command line arguments
	SocketDir string   // directory for the IPC socket, defaults to os.TempDir()
}

// MPV drives an idle mpv process over its JSON IPC socket.
// Commands are written without waiting for a reply; position, duration,
// pause and end-of-file are pushed by mpv through observed properties and
// cached, so every read is non-blocking.
type MPV struct {
	cfg MPVConfig
	log *log.Logger

	writeMu sync.Mutex
	conn    net.Conn
	enc     *json.Encoder

	mu       sync.RWMutex
	cmd      *exec.Cmd
	socket   string
	state    State
	position time.Duration
	duration time.Duration
	finished bool
	readDone chan struct{}
}

// NewMPV creates a transport. The process is started by Start or lazily by
// the first Play.
func NewMPV(cfg MPVConfig, logger *log.Logger) *MPV {
	if cfg.Path == "" {
		cfg.Path = defaultMPVPath
	}
	if cfg.SocketDir == "" {
		cfg.SocketDir = os.TempDir()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &MPV{cfg: cfg, log: logger, state: Stopped}
}

// Start launches mpv in idle mode and connects to its IPC socket.
func (m *MPV) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.connected() {
		return nil
	}

	socket := filepath.Join(m.cfg.SocketDir, fmt.Sprintf("hifi-mpv-%d.sock", os.Getpid()))
	_ = os.Remove(socket)

	args := append([]string{
		"--idle=yes",
		"--no-video",
		"--input-terminal=no",
		"--msg-level=all=error",
		"--input-ipc-server=" + socket,
	}, m.cfg.Args...)

	errs := stderr.New(m.log, "mpv")
	cmd := exec.Command(m.cfg.Path, args...) //nolint:gosec // binary and args come from user config
	cmd.Stderr = errs
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	conn, err := dialSocket(socket)
	if err != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return errs.Wrap(fmt.Errorf("connect mpv ipc: %w", err))
	}

	m.cmd = cmd
	m.socket = socket
	m.attachLocked(conn)
	m.log.Info("mpv started", "pid", cmd.Process.Pid, "socket", socket)

	go func() {
		err := cmd.Wait()
		m.log.Debug("mpv exited", "err", err)
	}()

	return nil
}

func dialSocket(path string) (net.Conn, error) {
	deadline := time.Now().Add(socketWait)
	for {
		conn, err := net.Dial("unix", path)
		if err == nil {
			return conn, nil
		}
		if time.Now().After(deadline) {
			return nil, err
		}
		time.Sleep(socketPoll)
	}
}

// attachLocked wires an established IPC connection. Caller holds m.mu.
func (m *MPV) attachLocked(conn net.Conn) {
	m.writeMu.Lock()
	m.conn = conn
	m.enc = json.NewEncoder(conn)
	m.writeMu.Unlock()

	done := make(chan struct{})
	m.readDone = done
	go m.readLoop(conn, done)

	go func() {
		for id, name := range map[int]string{
			obsTimePos:  "time-pos",
			obsDuration: "duration",
			obsPause:    "pause",
			obsEOF:      "eof-reached",
		} {
			_ = m.send("observe_property", id, name)
		}
	}()
}

type ipcCommand struct {
	Command []any `json:"command"`
}

type ipcMessage struct {
	Event  string          `json:"event"`
	Name   string          `json:"name"`
	Data   json.RawMessage `json:"data"`
	Reason string          `json:"reason"`
	Error  string          `json:"error"`
}

func (m *MPV) send(args ...any) error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	if m.enc == nil {
		return ErrNotRunning
	}
	if err := m.enc.Encode(ipcCommand{Command: args}); err != nil {
		return fmt.Errorf("mpv ipc write: %w", err)
	}
	return nil
}

func (m *MPV) readLoop(r io.Reader, done chan struct{}) {
	defer close(done)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		m.handleLine(scanner.Bytes())
	}

	m.writeMu.Lock()
	m.conn = nil
	m.enc = nil
	m.writeMu.Unlock()

	m.mu.Lock()
	m.state = Stopped
	m.mu.Unlock()
}

// handleLine applies one IPC message to the cached state.
func (m *MPV) handleLine(line []byte) {
	var msg ipcMessage
	if err := json.Unmarshal(line, &msg); err != nil {
		m.log.Debug("mpv ipc: bad message", "err", err)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	switch msg.Event {
	case "property-change":
		m.applyPropertyLocked(msg.Name, msg.Data)
	case "end-file":
		if msg.Reason == "eof" {
			m.finished = true
		}
	case "start-file":
		m.finished = false
		m.position = 0
		m.duration = 0
	case "":
		if msg.Error != "" && msg.Error != "success" {
			m.log.Debug("mpv ipc: command failed", "error", msg.Error)
		}
	}
}

func (m *MPV) applyPropertyLocked(name string, data json.RawMessage) {
	switch name {
	case "time-pos":
		var secs float64
		if json.Unmarshal(data, &secs) == nil {
			m.position = seconds(secs)
		}
	case "duration":
		var secs float64
		if json.Unmarshal(data, &secs) == nil {
			m.duration = seconds(secs)
		}
	case "eof-reached":
		var eof bool
		if json.Unmarshal(data, &eof) == nil && eof {
			m.finished = true
		}
	case "pause":
		// Pause state is owned by the controller; mpv only echoes it.
	}
}

func seconds(s float64) time.Duration {
	if s < 0 {
		return 0
	}
	return time.Duration(s * float64(time.Second))
}

// Play loads url, replacing the current stream, and starts playback.
func (m *MPV) Play(url string) error {
	if !m.connected() {
		if err := m.Start(); err != nil {
			return err
		}
	}
	if err := m.send("loadfile", url, "replace"); err != nil {
		return err
	}
	if err := m.send("set_property", "pause", false); err != nil {
		return err
	}

	m.mu.Lock()
	m.state = Playing
	m.position = 0
	m.duration = 0
	m.finished = false
	m.mu.Unlock()
	return nil
}

func (m *MPV) connected() bool {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	return m.enc != nil
}

// Stop unloads the current stream.
func (m *MPV) Stop() {
	m.mu.Lock()
	if m.state == Stopped {
		m.mu.Unlock()
		return
	}
	m.state = Stopped
	m.position = 0
	m.duration = 0
	m.finished = false
	m.mu.Unlock()

	if err := m.send("stop"); err != nil {
		m.log.Debug("mpv stop", "err", err)
	}
}

// Pause pauses playback.
func (m *MPV) Pause() {
	m.mu.Lock()
	if m.state != Playing {
		m.mu.Unlock()
		return
	}
	m.state = Paused
	m.mu.Unlock()
	_ = m.send("set_property", "pause", true)
}

// Resume resumes paused playback.
func (m *MPV) Resume() {
	m.mu.Lock()
	if m.state != Paused {
		m.mu.Unlock()
		return
	}
	m.state = Playing
	m.mu.Unlock()
	_ = m.send("set_property", "pause", false)
}

// Seek jumps to an absolute position.
func (m *MPV) Seek(pos time.Duration) {
	m.mu.Lock()
	if m.state == Stopped {
		m.mu.Unlock()
		return
	}
	m.position = pos
	m.finished = false
	m.mu.Unlock()
	_ = m.send("seek", pos.Seconds(), "absolute")
}

func (m *MPV) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

func (m *MPV) Position() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.position
}

func (m *MPV) Duration() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.duration
}

func (m *MPV) Finished() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.finished
}

// Close asks mpv to quit, kills it if it does not, and removes the socket.
func (m *MPV) Close() error {
	_ = m.send("quit")

	m.writeMu.Lock()
	if m.conn != nil {
		_ = m.conn.Close()
	}
	m.writeMu.Unlock()

	m.mu.Lock()
	cmd := m.cmd
	socket := m.socket
	done := m.readDone
	m.cmd = nil
	m.state = Stopped
	m.mu.Unlock()

	if done != nil {
		select {
		case <-done:
		case <-time.After(shutdownWait):
		}
	}
	if cmd != nil && cmd.Process != nil {
		_ = cmd.Process.Kill()
	}
	if socket != "" {
		_ = os.Remove(socket)
	}
	return nil
}
