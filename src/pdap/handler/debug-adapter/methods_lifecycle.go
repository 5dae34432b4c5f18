package debugadapter

import (
	"context"

	"github.com/google/go-dap"
)

// Initialize records the client's capabilities and answers with the adapter's. The initialized event follows the response.
func (r *dapRouter) Initialize(ctx context.Context, req *dap.InitializeRequest) error {
	caps, initialized, err := r.debugAdapter.Initialize(ctx, req.Arguments)
	return r.replyThen(ctx, &req.Request, &dap.InitializeResponse{Response: newResponse(&req.Request), Body: caps}, initialized, err)
}

// Launch starts the program described by the launch configuration.
func (r *dapRouter) Launch(ctx context.Context, req *dap.LaunchRequest) error {
	then, err := r.debugAdapter.Launch(ctx, req.Arguments)
	return r.replyThen(ctx, &req.Request, &dap.LaunchResponse{Response: newResponse(&req.Request)}, then, err)
}

// ConfigurationDone ends the initial configuration. A launched program starts afterwards.
func (r *dapRouter) ConfigurationDone(ctx context.Context, req *dap.ConfigurationDoneRequest) error {
	then, err := r.debugAdapter.ConfigurationDone(ctx)
	return r.replyThen(ctx, &req.Request, &dap.ConfigurationDoneResponse{Response: newResponse(&req.Request)}, then, err)
}

func (r *dapRouter) Restart(ctx context.Context, req *dap.RestartRequest) error {
	then, err := r.debugAdapter.Restart(ctx)
	return r.replyThen(ctx, &req.Request, &dap.RestartResponse{Response: newResponse(&req.Request)}, then, err)
}

func (r *dapRouter) Terminate(ctx context.Context, req *dap.TerminateRequest) error {
	err := r.debugAdapter.Terminate(ctx)
	return r.reply(ctx, &req.Request, &dap.TerminateResponse{Response: newResponse(&req.Request)}, err)
}

// Disconnect stops the program. The client closes the connection after the response.
func (r *dapRouter) Disconnect(ctx context.Context, req *dap.DisconnectRequest) error {
	err := r.debugAdapter.Disconnect(ctx)
	return r.reply(ctx, &req.Request, &dap.DisconnectResponse{Response: newResponse(&req.Request)}, err)
}
