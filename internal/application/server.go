package application

import (
	"context"
	"encoding/json"
	"fmt"

	"devutils-bridge/internal/domain"
	"devutils-bridge/internal/infrastructure"
)

const (
	protocolVersion = "2024-11-05"
	serverName      = "devutils-bridge"
	serverVersion   = "1.0.0"
)

// SnapshotReader lists persisted tool state.
type SnapshotReader interface {
	Snapshot(ctx context.Context, prefix string) ([]infrastructure.SnapshotEntry, error)
}

// Server exposes the bridge over JSON-RPC.
// It reads requests from the transport one at a time and answers the MCP
// methods (initialize, tools/list, tools/call) as well as the bridge/* methods.
type Server struct {
	transport domain.Transport
	runner    *Runner
	snapshots SnapshotReader
	config    *domain.Config
	logger    *StructuredLogger
	done      chan struct{}
}

// NewServer creates a new server instance. snapshots may be nil when no
// snapshot store is configured.
func NewServer(
	transport domain.Transport,
	runner *Runner,
	snapshots SnapshotReader,
	config *domain.Config,
	logger *StructuredLogger,
) *Server {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &Server{
		transport: transport,
		runner:    runner,
		snapshots: snapshots,
		config:    config,
		logger:    logger,
		done:      make(chan struct{}),
	}
}

// Start starts the transport and begins processing incoming requests.
func (s *Server) Start(ctx context.Context) error {
	if err := s.transport.Start(ctx); err != nil {
		s.logger.LogError("failed to start transport", err, map[string]interface{}{
			"transport_type": s.config.Transport.Type,
		})
		return fmt.Errorf("failed to start transport: %w", err)
	}

	s.logger.LogInfo("server started", map[string]interface{}{
		"transport_type": s.config.Transport.Type,
	})

	go s.processRequests(ctx)

	return nil
}

// Done is closed once the server stops processing requests, either because
// the context was cancelled or because the transport closed its channel.
func (s *Server) Done() <-chan struct{} {
	return s.done
}

// processRequests handles incoming JSON-RPC requests sequentially.
func (s *Server) processRequests(ctx context.Context) {
	defer close(s.done)
	reqChan := s.transport.Receive()

	for {
		select {
		case <-ctx.Done():
			s.logger.LogInfo("server shutting down", nil)
			return
		case req, ok := <-reqChan:
			if !ok {
				return
			}
			s.handleRequest(ctx, req)
		}
	}
}

// handleRequest processes a single JSON-RPC request and sends its response.
func (s *Server) handleRequest(ctx context.Context, req *domain.Request) {
	s.logger.LogDebug("received request", map[string]interface{}{
		"method":     req.Method,
		"request_id": req.ID,
	})

	response := s.dispatch(ctx, req)
	if err := s.transport.Send(response); err != nil {
		s.logger.LogError("failed to send response", err, map[string]interface{}{
			"request_id": req.ID,
		})
	}
}

// dispatch routes a request to the method implementation.
func (s *Server) dispatch(ctx context.Context, req *domain.Request) *domain.Response {
	if req.JSONRPC != domain.Version {
		return domain.NewErrorResponse(req.ID, domain.InvalidRequest, "Invalid Request", fmt.Sprintf("invalid jsonrpc version: %s", req.JSONRPC))
	}
	if req.Method == "" {
		return domain.NewErrorResponse(req.ID, domain.InvalidRequest, "Invalid Request", "method is required")
	}

	var (
		result interface{}
		rpcErr *domain.Error
	)

	switch req.Method {
	case "initialize":
		result = s.handleInitialize()
	case "tools/list":
		result = s.handleToolsList()
	case "tools/call":
		result, rpcErr = s.handleToolsCall(req.Params)
	case "bridge/run":
		result, rpcErr = s.handleRun(req.Params)
	case "bridge/batch":
		result, rpcErr = s.handleBatch(req.Params)
	case "bridge/catalog":
		result = Discover()
	case "bridge/schema":
		result = domain.BuildBridgeSchema()
	case "bridge/diagnostics":
		result = s.runner.Registry().Diagnostics()
	case "bridge/snapshot":
		result, rpcErr = s.handleSnapshot(ctx, req.Params)
	default:
		rpcErr = &domain.Error{Code: domain.MethodNotFound, Message: "Method not found", Data: fmt.Sprintf("unknown method: %s", req.Method)}
	}

	if rpcErr != nil {
		s.logger.LogError("request processing failed", rpcErr, map[string]interface{}{
			"method":     req.Method,
			"request_id": req.ID,
		})
		return &domain.Response{JSONRPC: domain.Version, ID: req.ID, Error: rpcErr}
	}
	return domain.NewResultResponse(req.ID, result)
}

// handleInitialize answers the MCP handshake.
func (s *Server) handleInitialize() map[string]interface{} {
	return map[string]interface{}{
		"protocolVersion": protocolVersion,
		"capabilities": map[string]interface{}{
			"tools": map[string]interface{}{},
		},
		"serverInfo": map[string]interface{}{
			"name":    serverName,
			"version": serverVersion,
		},
	}
}

// handleToolsList publishes one MCP tool per catalog entry.
func (s *Server) handleToolsList() map[string]interface{} {
	entries := domain.ListTools()
	tools := make([]domain.ToolDefinition, 0, len(entries))
	for _, entry := range entries {
		tools = append(tools, domain.ToolDefinition{
			Name:        string(entry.ID),
			Description: entry.Description,
			InputSchema: domain.ToolInputSchema(entry),
		})
	}
	return map[string]interface{}{"tools": tools}
}

// handleToolsCall runs a tool through MCP tools/call. Bridge failures are
// reported in the result with isError set, not as JSON-RPC errors.
func (s *Server) handleToolsCall(params interface{}) (interface{}, *domain.Error) {
	var call domain.ToolCallParams
	if err := decodeParams(params, &call); err != nil {
		return nil, invalidParams(err)
	}
	if call.Name == "" {
		return nil, invalidParams(fmt.Errorf("tool name is required"))
	}

	resp := s.runner.RunTool(&domain.ToolRequest{
		Tool:      call.Name,
		Operation: call.Arguments["operation"],
		Input:     call.Arguments["input"],
		Options:   call.Arguments["options"],
	})

	text, err := json.Marshal(resp)
	if err != nil {
		return nil, &domain.Error{Code: domain.InternalError, Message: "Internal error", Data: err.Error()}
	}
	return domain.ToolCallResult{
		Content: []domain.ContentBlock{{Type: "text", Text: string(text)}},
		IsError: !resp.OK,
	}, nil
}

// handleRun runs a single bridge request.
func (s *Server) handleRun(params interface{}) (interface{}, *domain.Error) {
	var req domain.ToolRequest
	if err := decodeParams(params, &req); err != nil {
		return nil, invalidParams(err)
	}
	return s.runner.RunTool(&req), nil
}

// handleBatch runs {"requests": [...]} sequentially.
func (s *Server) handleBatch(params interface{}) (interface{}, *domain.Error) {
	var batch struct {
		Requests []*domain.ToolRequest `json:"requests"`
	}
	if err := decodeParams(params, &batch); err != nil {
		return nil, invalidParams(err)
	}
	return map[string]interface{}{"responses": s.runner.RunToolBatch(batch.Requests)}, nil
}

// handleSnapshot lists persisted tool state, optionally filtered by {"prefix": "..."}.
func (s *Server) handleSnapshot(ctx context.Context, params interface{}) (interface{}, *domain.Error) {
	if s.snapshots == nil {
		return nil, &domain.Error{Code: domain.SnapshotError, Message: "Snapshot store not configured"}
	}

	var filter struct {
		Prefix string `json:"prefix"`
	}
	if params != nil {
		if err := decodeParams(params, &filter); err != nil {
			return nil, invalidParams(err)
		}
	}

	entries, err := s.snapshots.Snapshot(ctx, filter.Prefix)
	if err != nil {
		return nil, &domain.Error{Code: domain.SnapshotError, Message: "Snapshot failed", Data: err.Error()}
	}
	return map[string]interface{}{"entries": entries}, nil
}

// decodeParams converts params into target by a JSON round trip.
// This handles both map[string]interface{} and already-parsed structs.
func decodeParams(params interface{}, target interface{}) error {
	if params == nil {
		return fmt.Errorf("params are required")
	}
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to marshal params: %w", err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to decode params: %w", err)
	}
	return nil
}

func invalidParams(err error) *domain.Error {
	return &domain.Error{Code: domain.InvalidParams, Message: "Invalid params", Data: err.Error()}
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	s.logger.LogInfo("closing server", nil)
	return s.transport.Close()
}
