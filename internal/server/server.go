package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/ironsheep/long-screenshot-mcp/internal/config"
	"github.com/ironsheep/long-screenshot-mcp/internal/imaging"
	"github.com/ironsheep/long-screenshot-mcp/internal/shapes"
	"github.com/ironsheep/long-screenshot-mcp/internal/stitch"
)

// Server handles MCP protocol communication
type Server struct {
	cfg       *config.Config
	cache     *imaging.ImageCache
	extractor shapes.Extractor
	resolver  stitch.Resolver

	// worker is set when pair alignment is offloaded.
	worker *stitch.Worker

	// logger is nil unless debug logging was requested.
	logger *log.Logger

	now func() time.Time
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a server from cfg. A nil cfg uses config.Default().
//
// The extraction backend is built once and shared by every tool call. When
// cfg.Offload is set a worker goroutine is started; call Close to stop it.
func New(cfg *config.Config) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	extractor, err := shapes.NewExtractor(cfg.Backend, shapes.DefaultOptions())
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:       cfg,
		cache:     imaging.NewImageCache(),
		extractor: extractor,
		resolver: stitch.Resolver{
			ZeroFraction:      cfg.ZeroFraction,
			ConsensusFraction: cfg.ConsensusFraction,
		},
		now: time.Now,
	}
	if cfg.Debug() {
		s.logger = log.Default()
	}
	if cfg.Offload {
		s.worker = stitch.NewWorker(extractor, s.resolver)
	}
	return s, nil
}

// Close stops the alignment worker, if any.
func (s *Server) Close() error {
	if s.worker != nil {
		return s.worker.Close()
	}
	return nil
}

// Run serves MCP over stdin and stdout until stdin is closed.
func (s *Server) Run(ctx context.Context) error {
	return s.Serve(ctx, os.Stdin, os.Stdout)
}

// Serve reads one JSON-RPC request per line from r and writes responses to w.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for large requests
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	encoder := json.NewEncoder(w)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			log.Printf("Failed to parse request: %v", err)
			continue
		}

		resp := s.handleRequest(ctx, &req)
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				log.Printf("Failed to encode response: %v", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(ctx context.Context, req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "long-screenshot-mcp",
				"version": "0.1.0",
			},
		},
	}
}

func (s *Server) debugf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
