package main

import (
	"errors"
	"fmt"
	"log"
	"net"
	"net/url"
	"sort"
	"strings"
	"sync"
)

// DefaultPort is where the REST server listens unless configured otherwise.
const DefaultPort = 8080

// RestServer serves the control REST API over a loopback TCP listener.
// Each accepted connection carries exactly one request: a single read is
// parsed, routed, answered, and the connection is closed. There is no
// keep-alive and no pipelining; callers are trusted local automation.
type RestServer struct {
	registry ControlRegistry
	tracks   TrackSource
	debug    bool

	mu   sync.Mutex
	ln   net.Listener
	port uint16
}

// NewRestServer wires a server to the engine's control registry and track
// table. The server does not listen until Start is called.
func NewRestServer(registry ControlRegistry, tracks TrackSource) *RestServer {
	return &RestServer{registry: registry, tracks: tracks}
}

// SetDebug enables per-request logging.
func (s *RestServer) SetDebug(debug bool) {
	s.debug = debug
}

// Start binds the loopback listener and begins accepting connections in the
// background. Port 0 picks a free port, reported by Port. Starting an
// already-running server is an error and leaves the running instance
// untouched; a failed bind leaves the server stopped and retryable.
func (s *RestServer) Start(port uint16) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln != nil {
		return fmt.Errorf("rest server already running on port %d", s.port)
	}
	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return fmt.Errorf("rest server: listen on port %d: %w", port, err)
	}
	s.ln = ln
	s.port = uint16(ln.Addr().(*net.TCPAddr).Port)
	log.Printf("REST server started on http://localhost:%d", s.port)
	go s.acceptLoop(ln)
	return nil
}

// Stop closes the listener. In-flight connections finish on their own.
func (s *RestServer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return
	}
	s.ln.Close()
	s.ln = nil
	log.Printf("REST server stopped")
}

// IsRunning reports whether the listener is open.
func (s *RestServer) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ln != nil
}

// Port returns the bound port, or 0 when stopped.
func (s *RestServer) Port() uint16 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return 0
	}
	return s.port
}

func (s *RestServer) acceptLoop(ln net.Listener) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			log.Printf("REST server: accept: %v", err)
			continue
		}
		go s.handleConn(conn)
	}
}

// handleConn services one request on one connection. A failure here never
// touches the listener or other connections.
func (s *RestServer) handleConn(conn net.Conn) {
	defer conn.Close()

	buf := make([]byte, 8192)
	n, err := conn.Read(buf)
	if err != nil || n == 0 {
		return
	}

	request := parseHTTPRequest(buf[:n])
	response := s.handleRequest(request)

	if _, err := conn.Write(buildHTTPResponse(response)); err != nil {
		log.Printf("REST server: write to %s: %v", conn.RemoteAddr(), err)
	}
}

// handleRequest routes a parsed request to a handler by method and path.
func (s *RestServer) handleRequest(request httpRequest) httpResponse {
	if s.debug {
		log.Printf("REST server: %s %s", request.method, request.path)
	}

	// CORS preflight, before any path inspection.
	if request.method == "OPTIONS" {
		return httpResponse{statusCode: 204, statusText: "No Content"}
	}

	parts := splitPath(request.path)

	if len(parts) == 0 || parts[0] != "api" {
		return errorResponse(404, "Not Found", map[string]any{
			"error":   "Not Found",
			"message": "API endpoints are under /api",
		})
	}
	if len(parts) < 2 {
		return errorResponse(400, "Bad Request", map[string]any{
			"error": "Bad Request",
		})
	}

	endpoint := parts[1]
	switch {
	case endpoint == "status" && request.method == "GET" && len(parts) == 2:
		return s.handleGetStatus()
	case endpoint == "player" && request.method == "GET" && len(parts) >= 3:
		return s.handleGetPlayer(normalizeGroup(decodeSegment(parts[2])))
	case endpoint == "control" && len(parts) >= 4:
		group := normalizeGroup(decodeSegment(parts[2]))
		item := decodeSegment(parts[3])
		switch request.method {
		case "GET":
			return s.handleGetControl(group, item)
		case "POST":
			return s.handleSetControl(group, item, request.body)
		default:
			// Only the control endpoint distinguishes 405 from 404; a
			// method mismatch on /api/status or /api/player falls through
			// to the generic 404 below. Long-standing routing quirk, kept
			// for compatibility.
			return errorResponse(405, "Method Not Allowed", map[string]any{
				"error": "Method Not Allowed",
			})
		}
	default:
		return errorResponse(404, "Not Found", map[string]any{
			"error": "Endpoint not found",
		})
	}
}

// splitPath breaks a request path into non-empty segments and strips a query
// suffix from the final segment.
func splitPath(path string) []string {
	parts := []string{}
	for _, part := range strings.Split(path, "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) > 0 {
		last := parts[len(parts)-1]
		if q := strings.IndexByte(last, '?'); q >= 0 {
			parts[len(parts)-1] = last[:q]
		}
	}
	return parts
}

// decodeSegment percent-decodes one path segment, keeping it as-is when the
// encoding is invalid.
func decodeSegment(segment string) string {
	decoded, err := url.PathUnescape(segment)
	if err != nil {
		return segment
	}
	return decoded
}

// normalizeGroup adds the conventional surrounding brackets when the caller
// left them off, so "Channel1" and "[Channel1]" address the same group.
func normalizeGroup(group string) string {
	if !strings.HasPrefix(group, "[") {
		group = "[" + group
	}
	if !strings.HasSuffix(group, "]") {
		group = group + "]"
	}
	return group
}

// buildHTTPResponse flattens a response onto the wire. Content-Length is
// always computed from the body, Content-Type defaults to application/json,
// and the CORS headers are unconditional so browser dashboards on other
// origins can call the API.
func buildHTTPResponse(response httpResponse) []byte {
	statusCode := response.statusCode
	statusText := response.statusText
	if statusCode == 0 {
		statusCode = 200
		statusText = "OK"
	}

	headers := make(map[string]string, len(response.headers)+5)
	for k, v := range response.headers {
		headers[k] = v
	}
	headers["Content-Length"] = fmt.Sprintf("%d", len(response.body))
	if _, ok := headers["Content-Type"]; !ok {
		headers["Content-Type"] = "application/json"
	}
	headers["Access-Control-Allow-Origin"] = "*"
	headers["Access-Control-Allow-Methods"] = "GET, POST, OPTIONS"
	headers["Access-Control-Allow-Headers"] = "Content-Type"

	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "HTTP/1.1 %d %s\r\n", statusCode, statusText)
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %s\r\n", k, headers[k])
	}
	b.WriteString("\r\n")
	b.Write(response.body)
	return []byte(b.String())
}
