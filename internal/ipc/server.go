package ipc

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/gwk/internal/dispatch"
	"github.com/1broseidon/gwk/internal/runtimepath"
)

// StatusSource provides the latest published state. dispatch.Monitor
// implements it.
type StatusSource interface {
	Load() dispatch.Status
}

// Server answers read-only inspection requests. It never touches the
// registry; everything it reports comes from the StatusSource.
type Server struct {
	socketPath   string
	listener     net.Listener
	source       StatusSource
	log          *slog.Logger
	startTime    time.Time
	shuttingDown bool
	shutdownMu   sync.Mutex
	wg           sync.WaitGroup
}

// NewServer creates a server on the default socket path.
func NewServer(source StatusSource, logger *slog.Logger) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}
	return NewServerAt(socketPath, source, logger), nil
}

// NewServerAt creates a server listening on socketPath.
func NewServerAt(socketPath string, source StatusSource, logger *slog.Logger) *Server {
	return &Server{
		socketPath: socketPath,
		source:     source,
		log:        logger,
		startTime:  time.Now(),
	}
}

// SocketPath returns the path the server listens on.
func (s *Server) SocketPath() string { return s.socketPath }

// Start begins listening for IPC connections
func (s *Server) Start() error {
	// A stale socket from a crashed run blocks Listen.
	os.Remove(s.socketPath)

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.log.Info("IPC server listening", "socket", s.socketPath)

	s.wg.Add(1)
	go s.acceptLoop()
	return nil
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.stopping() || errors.Is(err, net.ErrClosed) {
				return
			}
			s.log.Warn("IPC accept error", "error", err)
			continue
		}
		go s.handleConnection(conn)
	}
}

func (s *Server) stopping() bool {
	s.shutdownMu.Lock()
	defer s.shutdownMu.Unlock()
	return s.shuttingDown
}

// handleConnection reads one request line and writes one response line.
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(5 * time.Second))

	data, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.log.Warn("IPC read error", "error", err)
		return
	}

	var resp *Response
	if req, err := ParseRequest(data); err != nil {
		resp = NewErrorResponse(fmt.Sprintf("Invalid request: %v", err))
	} else {
		resp = s.handleCommand(req)
	}

	out, err := resp.Marshal()
	if err != nil {
		s.log.Warn("failed to marshal IPC response", "error", err)
		return
	}
	if _, err := conn.Write(append(out, '\n')); err != nil {
		s.log.Warn("failed to send IPC response", "error", err)
	}
}

func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandListWindows:
		return ok(WindowsData{Windows: s.source.Load().Windows})
	case CommandGetWindow:
		return s.handleGetWindow(req.Payload)
	case CommandGetGrab:
		return ok(s.source.Load().Grabs)
	case CommandGetScreens:
		return ok(ScreensData{Screens: s.source.Load().Screens})
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func (s *Server) handleGetStatus() *Response {
	return ok(StatusData{
		Status:        s.source.Load(),
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		PID:           os.Getpid(),
	})
}

func (s *Server) handleGetWindow(payload json.RawMessage) *Response {
	var req GetWindowPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid window payload: %v", err))
	}
	for _, w := range s.source.Load().Windows {
		if w.Handle == req.Handle {
			return ok(w)
		}
	}
	return NewErrorResponse(fmt.Sprintf("Unknown window: %d", req.Handle))
}

func ok(data interface{}) *Response {
	resp, err := NewOKResponse(data)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

// Stop closes the listener, waits for the accept loop and removes the
// socket.
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	s.wg.Wait()
	os.Remove(s.socketPath)
}
