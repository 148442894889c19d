package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"devutils-bridge/internal/domain"
	"devutils-bridge/internal/infrastructure"

	"github.com/google/uuid"
)

// Runner is the single entry point for executing bridge requests.
// RunTool never panics and never returns an error; every failure becomes
// a ToolResponse with OK set to false.
type Runner struct {
	registry *Registry
	logger   *StructuredLogger
	metrics  *Metrics
	state    StateWriter
}

// StateWriter persists per-tool state. *infrastructure.SnapshotStore satisfies it.
type StateWriter interface {
	Put(ctx context.Context, key, value string) error
}

// lastCall is the value stored under tool:<tool-id>:last_call.
type lastCall struct {
	Operation string           `json:"operation"`
	OK        bool             `json:"ok"`
	Code      domain.ErrorCode `json:"code,omitempty"`
	At        time.Time        `json:"at"`
}

// NewRunner creates a Runner. logger and metrics may be nil.
func NewRunner(registry *Registry, logger *StructuredLogger, metrics *Metrics) *Runner {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &Runner{
		registry: registry,
		logger:   logger,
		metrics:  metrics,
	}
}

// SetStateWriter enables recording the last call of each tool.
func (r *Runner) SetStateWriter(w StateWriter) {
	r.state = w
}

// Registry returns the registry the runner dispatches to.
func (r *Runner) Registry() *Registry {
	return r.registry
}

// RunTool validates and executes one request. The normalized tool and
// operation are echoed in the response, including on failure.
func (r *Runner) RunTool(req *domain.ToolRequest) (resp domain.ToolResponse) {
	start := time.Now()
	callID := uuid.NewString()

	normalized := domain.NormalizeToolRequest(req)
	tool, operation := echoField(normalized.Tool), echoField(normalized.Operation)

	defer func() {
		if p := recover(); p != nil {
			r.logger.LogError("tool handler panicked", fmt.Errorf("%v", p), map[string]interface{}{
				"call_id": callID,
				"tool":    tool,
			})
			resp = domain.ToExecutionErrorResponse(tool, operation, p)
		}
		r.record(callID, resp, time.Since(start))
	}()

	result, err := r.execute(normalized)
	if err != nil {
		return toErrorResponse(tool, operation, err)
	}
	return domain.SuccessResponse(tool, operation, result)
}

// RunToolBatch runs requests one after another and returns the responses in
// the same order. A failed request does not stop the batch.
func (r *Runner) RunToolBatch(requests []*domain.ToolRequest) []domain.ToolResponse {
	responses := make([]domain.ToolResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, r.RunTool(req))
	}
	return responses
}

func (r *Runner) execute(req domain.NormalizedRequest) (interface{}, error) {
	if err := domain.AssertToolRequestShape(req); err != nil {
		return nil, err
	}

	toolID, err := domain.EnsureSupportedTool(req.Tool.(string))
	if err != nil {
		return nil, err
	}

	handler, ok := r.registry.ResolveToolRunner(toolID)
	if !ok {
		return nil, fmt.Errorf("no runner registered for tool %s", toolID)
	}

	operation := req.Operation.(string)
	ec := r.registry.BuildToolExecutionContext(toolID, operation)

	var options map[string]interface{}
	if req.Options != nil {
		options = req.Options.(map[string]interface{})
	}

	result, err := handler.Run(operation, req.Input, ec, options)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, fmt.Errorf("tool %s returned no result for %s", toolID, operation)
	}
	return result, nil
}

// toErrorResponse routes validation failures and every other error to their builders.
func toErrorResponse(tool, operation string, err error) domain.ToolResponse {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return domain.ToValidationErrorResponse(tool, operation, verr)
	}
	return domain.ToExecutionErrorResponse(tool, operation, err)
}

func (r *Runner) record(callID string, resp domain.ToolResponse, elapsed time.Duration) {
	outcome := "ok"
	if !resp.OK && resp.ErrorDetails != nil {
		outcome = string(resp.ErrorDetails.Code)
	}

	fields := map[string]interface{}{
		"call_id":     callID,
		"tool":        resp.Tool,
		"operation":   resp.Operation,
		"outcome":     outcome,
		"duration_ms": elapsed.Milliseconds(),
	}
	if resp.OK {
		r.logger.LogDebug("tool call completed", fields)
	} else {
		fields["error"] = resp.Error
		r.logger.LogInfo("tool call failed", fields)
	}

	if r.metrics != nil {
		r.metrics.ObserveCall(resp.Tool, resp.Operation, outcome, elapsed)
	}
	r.persist(callID, resp)
}

// persist stores the outcome for known tools only, so arbitrary tool names
// never become keys.
func (r *Runner) persist(callID string, resp domain.ToolResponse) {
	if r.state == nil {
		return
	}
	if _, ok := domain.ParseToolID(resp.Tool); !ok {
		return
	}

	entry := lastCall{Operation: resp.Operation, OK: resp.OK, At: time.Now().UTC()}
	if resp.ErrorDetails != nil {
		entry.Code = resp.ErrorDetails.Code
	}
	value, err := json.Marshal(entry)
	if err != nil {
		return
	}
	if err := r.state.Put(context.Background(), infrastructure.ToolKey(resp.Tool, "last_call"), string(value)); err != nil {
		r.logger.LogError("failed to persist tool state", err, map[string]interface{}{
			"call_id": callID,
			"tool":    resp.Tool,
		})
	}
}

// echoField renders a request field for the response envelope.
func echoField(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
