package domain

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Transport defines the interface for JSON-RPC transport mechanisms.
// Implementations handle communication between clients and the server
// using either stdio or HTTP transport.
type Transport interface {
	// Start begins listening for incoming messages.
	Start(ctx context.Context) error

	// Send transmits a JSON-RPC response to the client.
	Send(response *Response) error

	// Receive returns a channel for incoming JSON-RPC requests.
	// The channel is closed when the transport is shut down.
	Receive() <-chan *Request

	// Close gracefully shuts down the transport.
	Close() error
}

// StdioTransport implements Transport using stdin/stdout for communication.
// It reads newline-delimited JSON-RPC messages and writes one response per line.
type StdioTransport struct {
	reader  *bufio.Reader
	writer  *bufio.Writer
	reqChan chan *Request
	mu      sync.Mutex
	closed  bool
}

// NewStdioTransport creates a StdioTransport on os.Stdin and os.Stdout.
func NewStdioTransport() *StdioTransport {
	return NewStdioTransportWithIO(os.Stdin, os.Stdout)
}

// NewStdioTransportWithIO creates a new StdioTransport with custom IO streams.
func NewStdioTransportWithIO(reader io.Reader, writer io.Writer) *StdioTransport {
	return &StdioTransport{
		reader:  bufio.NewReader(reader),
		writer:  bufio.NewWriter(writer),
		reqChan: make(chan *Request, 10),
	}
}

// Start begins reading JSON-RPC messages in a background goroutine.
func (t *StdioTransport) Start(ctx context.Context) error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return errors.New("transport is closed")
	}
	t.mu.Unlock()

	go t.readLoop(ctx)
	return nil
}

// readLoop continuously reads lines and parses JSON-RPC requests.
// A final line without a trailing newline is still processed.
func (t *StdioTransport) readLoop(ctx context.Context) {
	defer close(t.reqChan)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, readErr := t.reader.ReadString('\n')
		if line = strings.TrimSpace(line); line != "" {
			if !t.dispatchLine(ctx, line) {
				return
			}
		}
		if readErr != nil {
			return
		}
	}
}

// dispatchLine parses one message and queues it. It returns false when the
// context was cancelled while waiting for the consumer.
func (t *StdioTransport) dispatchLine(ctx context.Context, line string) bool {
	var req Request
	if err := json.Unmarshal([]byte(line), &req); err != nil {
		t.sendError(nil, ParseError, "Parse error", err.Error())
		return true
	}

	if req.JSONRPC != Version {
		t.sendError(req.ID, InvalidRequest, "Invalid Request", "invalid jsonrpc version")
		return true
	}

	select {
	case t.reqChan <- &req:
		return true
	case <-ctx.Done():
		return false
	}
}

// Send writes a JSON-RPC response as a single line.
func (t *StdioTransport) Send(response *Response) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return errors.New("transport is closed")
	}

	if response.JSONRPC == "" {
		response.JSONRPC = Version
	}

	data, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	if _, err := t.writer.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}

	if err := t.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush response: %w", err)
	}

	return nil
}

// Receive returns the channel for incoming JSON-RPC requests.
func (t *StdioTransport) Receive() <-chan *Request {
	return t.reqChan
}

// Close marks the transport closed. The request channel is closed by the read loop.
func (t *StdioTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	return nil
}

func (t *StdioTransport) sendError(id interface{}, code int, message string, data interface{}) {
	_ = t.Send(NewErrorResponse(id, code, message, data))
}

// HTTPTransport implements Transport using HTTP with SSE for communication.
// It exposes an SSE endpoint (GET /mcp) for server-to-client messages and a
// POST endpoint (/mcp/message) for client-to-server messages. Extra routes,
// such as the query endpoint, can be mounted with Handle before Start.
type HTTPTransport struct {
	host    string
	port    int
	server  *http.Server
	mux     *http.ServeMux
	reqChan chan *Request
	logger  *zap.Logger
	mu      sync.Mutex
	closed  bool

	sessions   map[string]*sseSession
	sessionsMu sync.RWMutex
}

// sseSession represents an active SSE connection
type sseSession struct {
	id          string
	messageChan chan *Response
	done        chan struct{}
	closeOnce   sync.Once
}

func (s *sseSession) close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// NewHTTPTransport creates a new HTTPTransport instance.
func NewHTTPTransport(host string, port int, logger *zap.Logger) *HTTPTransport {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &HTTPTransport{
		host:     host,
		port:     port,
		mux:      http.NewServeMux(),
		reqChan:  make(chan *Request, 10),
		logger:   logger,
		sessions: make(map[string]*sseSession),
	}
	t.mux.HandleFunc("/mcp", t.handleSSE)
	t.mux.HandleFunc("/mcp/message", t.handleMessage)
	return t
}

// Handle mounts an additional HTTP handler on the transport's mux.
func (t *HTTPTransport) Handle(pattern string, handler http.Handler) {
	t.mux.Handle(pattern, handler)
}

// Handler returns the transport's HTTP handler. Used by tests with httptest.
func (t *HTTPTransport) Handler() http.Handler {
	return t.mux
}

// Start begins the HTTP server and starts listening for incoming requests.
func (t *HTTPTransport) Start(ctx context.Context) error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return errors.New("transport is closed")
	}
	t.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", t.host, t.port),
		Handler:           t.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	server := t.server
	t.mu.Unlock()

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			t.logger.Error("http transport stopped", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		_ = t.Close()
	}()

	return nil
}

// handleSSE handles SSE connections (GET requests) for server-to-client messages.
func (t *HTTPTransport) handleSSE(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	session := &sseSession{
		id:          uuid.NewString(),
		messageChan: make(chan *Response, 10),
		done:        make(chan struct{}),
	}

	t.sessionsMu.Lock()
	t.sessions[session.id] = session
	t.sessionsMu.Unlock()

	defer func() {
		t.sessionsMu.Lock()
		delete(t.sessions, session.id)
		t.sessionsMu.Unlock()
		session.close()
	}()

	fmt.Fprintf(w, "event: endpoint\ndata: /mcp/message?sessionId=%s\n\n", session.id)
	flusher.Flush()
	t.logger.Debug("sse session established", zap.String("session_id", session.id))

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			t.logger.Debug("sse session disconnected", zap.String("session_id", session.id))
			return
		case <-session.done:
			return
		case response := <-session.messageChan:
			data, err := json.Marshal(response)
			if err != nil {
				t.logger.Error("failed to marshal sse message", zap.Error(err))
				continue
			}
			fmt.Fprintf(w, "event: message\ndata: %s\n\n", data)
			flusher.Flush()
		case <-ticker.C:
			fmt.Fprintf(w, ": keep-alive\n\n")
			flusher.Flush()
		}
	}
}

// handleMessage handles HTTP POST requests for client-to-server messages.
func (t *HTTPTransport) handleMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		http.Error(w, "Missing sessionId parameter", http.StatusBadRequest)
		return
	}

	t.sessionsMu.RLock()
	session, exists := t.sessions[sessionID]
	t.sessionsMu.RUnlock()
	if !exists {
		http.Error(w, "Invalid session", http.StatusBadRequest)
		return
	}

	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		t.sendErrorToSession(session, nil, ParseError, "Parse error", err.Error())
		w.WriteHeader(http.StatusAccepted)
		return
	}

	if req.JSONRPC != Version {
		t.sendErrorToSession(session, req.ID, InvalidRequest, "Invalid Request", "invalid jsonrpc version")
		w.WriteHeader(http.StatusAccepted)
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		http.Error(w, "Transport closed", http.StatusServiceUnavailable)
		return
	}

	select {
	case t.reqChan <- &req:
		w.WriteHeader(http.StatusAccepted)
	default:
		t.sendErrorToSession(session, req.ID, InternalError, "Internal error", "request queue full")
		w.WriteHeader(http.StatusServiceUnavailable)
	}
}

// sendErrorToSession sends an error response to a specific session.
func (t *HTTPTransport) sendErrorToSession(session *sseSession, id interface{}, code int, message string, data interface{}) {
	response := NewErrorResponse(id, code, message, data)

	select {
	case session.messageChan <- response:
	default:
		t.logger.Warn("dropping error response: session channel full", zap.String("session_id", session.id))
	}
}

// Send transmits a JSON-RPC response through every active SSE session.
func (t *HTTPTransport) Send(response *Response) error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return errors.New("transport is closed")
	}
	t.mu.Unlock()

	if response.JSONRPC == "" {
		response.JSONRPC = Version
	}

	t.sessionsMu.RLock()
	defer t.sessionsMu.RUnlock()

	if len(t.sessions) == 0 {
		return errors.New("no active sessions")
	}

	for _, session := range t.sessions {
		select {
		case session.messageChan <- response:
		default:
			t.logger.Warn("dropping response: session channel full", zap.String("session_id", session.id))
		}
	}

	return nil
}

// Receive returns the channel for incoming JSON-RPC requests.
func (t *HTTPTransport) Receive() <-chan *Request {
	return t.reqChan
}

// Close gracefully shuts down the HTTP server and all SSE sessions.
func (t *HTTPTransport) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	close(t.reqChan)
	server := t.server
	t.mu.Unlock()

	t.sessionsMu.Lock()
	for _, session := range t.sessions {
		session.close()
	}
	t.sessions = make(map[string]*sseSession)
	t.sessionsMu.Unlock()

	if server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(ctx)
	}

	return nil
}
