package debugadapter

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/google/go-dap"
	tally "github.com/uber-go/tally/v4"
	controller "github.com/uber/perl-dap/src/pdap/controller/debug-adapter"
	"github.com/uber/perl-dap/src/pdap/entity"
	ideclient "github.com/uber/perl-dap/src/pdap/gateway/ide-client"
	"go.uber.org/zap"
)

type dapRouter struct {
	debugAdapter controller.Controller
	ideGateway   ideclient.Gateway
	logger       *zap.SugaredLogger
	uuid         uuid.UUID
	stats        tally.Scope
}

// HandleMessage handles routing for a single message. Every request is answered exactly once.
func (r *dapRouter) HandleMessage(ctx context.Context, msg dap.Message) {
	ctx = context.WithValue(ctx, entity.SessionContextKey, r.uuid)

	req, ok := msg.(dap.RequestMessage)
	if !ok {
		r.logger.Warnw("ignoring message that is not a request", "message", fmt.Sprintf("%T", msg))
		return
	}
	command := req.GetRequest().Command
	r.stats.Tagged(map[string]string{"command": command}).Counter("requests").Inc(1)

	if err := r.route(ctx, msg); err != nil {
		r.logger.Warnw("answering request", "command", command, "error", err)
	}
}

// HandleInvalid answers a request whose command or arguments could not be decoded.
func (r *dapRouter) HandleInvalid(ctx context.Context, seq int, command string, err error) {
	ctx = context.WithValue(ctx, entity.SessionContextKey, r.uuid)
	r.stats.Counter("invalid_requests").Inc(1)

	req := &dap.Request{ProtocolMessage: dap.ProtocolMessage{Seq: seq, Type: "request"}, Command: command}
	if sendErr := r.reply(ctx, req, nil, err); sendErr != nil {
		r.logger.Warnw("answering invalid request", "command", command, "error", sendErr)
	}
}

// UUID returns the session id of the connection.
func (r *dapRouter) UUID() uuid.UUID {
	return r.uuid
}

func (r *dapRouter) route(ctx context.Context, msg dap.Message) error {
	switch req := msg.(type) {
	// Lifecycle related requests.
	case *dap.InitializeRequest:
		return r.Initialize(ctx, req)

	case *dap.LaunchRequest:
		return r.Launch(ctx, req)

	case *dap.ConfigurationDoneRequest:
		return r.ConfigurationDone(ctx, req)

	case *dap.RestartRequest:
		return r.Restart(ctx, req)

	case *dap.TerminateRequest:
		return r.Terminate(ctx, req)

	case *dap.DisconnectRequest:
		return r.Disconnect(ctx, req)

	// Breakpoint related requests.
	case *dap.SetBreakpointsRequest:
		return r.SetBreakpoints(ctx, req)

	case *dap.SetFunctionBreakpointsRequest:
		return r.SetFunctionBreakpoints(ctx, req)

	case *dap.SetExceptionBreakpointsRequest:
		return r.SetExceptionBreakpoints(ctx, req)

	case *dap.DataBreakpointInfoRequest:
		return r.DataBreakpointInfo(ctx, req)

	case *dap.SetDataBreakpointsRequest:
		return r.SetDataBreakpoints(ctx, req)

	// Execution related requests.
	case *dap.ContinueRequest:
		return r.Continue(ctx, req)

	case *dap.NextRequest:
		return r.Next(ctx, req)

	case *dap.StepInRequest:
		return r.StepIn(ctx, req)

	case *dap.StepOutRequest:
		return r.StepOut(ctx, req)

	case *dap.ThreadsRequest:
		return r.Threads(ctx, req)

	case *dap.StackTraceRequest:
		return r.StackTrace(ctx, req)

	case *dap.LoadedSourcesRequest:
		return r.LoadedSources(ctx, req)

	// Variable related requests.
	case *dap.ScopesRequest:
		return r.Scopes(ctx, req)

	case *dap.VariablesRequest:
		return r.Variables(ctx, req)

	case *dap.EvaluateRequest:
		return r.Evaluate(ctx, req)

	case *dap.SetVariableRequest:
		return r.SetVariable(ctx, req)

	default:
		base := msg.(dap.RequestMessage).GetRequest()
		return r.reply(ctx, base, nil, fmt.Errorf("request %q is not supported", base.Command))
	}
}

// reply sends resp, or an error response carrying err.
func (r *dapRouter) reply(ctx context.Context, req *dap.Request, resp dap.ResponseMessage, err error) error {
	if err != nil {
		r.stats.Tagged(map[string]string{"command": req.Command}).Counter("errors").Inc(1)
		r.logger.Debugw("request failed", "command", req.Command, "error", err)
		failed := newResponse(req)
		failed.Success = false
		failed.Message = err.Error()
		resp = &dap.ErrorResponse{Response: failed}
	}
	return r.ideGateway.Respond(ctx, resp)
}

// replyThen sends the response and runs the follow-up of a successful request afterwards, so
// that events it triggers reach the client after the response.
func (r *dapRouter) replyThen(ctx context.Context, req *dap.Request, resp dap.ResponseMessage, then controller.Deferred, err error) error {
	replyErr := r.reply(ctx, req, resp, err)
	if err == nil && then != nil {
		then()
	}
	return replyErr
}

// newResponse is the common part of the response to req. The sequence number is assigned when it is sent.
func newResponse(req *dap.Request) dap.Response {
	return dap.Response{
		ProtocolMessage: dap.ProtocolMessage{Type: "response"},
		RequestSeq:      req.Seq,
		Success:         true,
		Command:         req.Command,
	}
}
