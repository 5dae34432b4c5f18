package debugadapter

import (
	"context"

	"github.com/google/go-dap"
)

// Continue resumes the program. The stopped or terminated event follows the response.
func (r *dapRouter) Continue(ctx context.Context, req *dap.ContinueRequest) error {
	then, err := r.debugAdapter.Continue(ctx)
	return r.replyThen(ctx, &req.Request, &dap.ContinueResponse{
		Response: newResponse(&req.Request),
		Body:     dap.ContinueResponseBody{AllThreadsContinued: true},
	}, then, err)
}

func (r *dapRouter) Next(ctx context.Context, req *dap.NextRequest) error {
	then, err := r.debugAdapter.Next(ctx)
	return r.replyThen(ctx, &req.Request, &dap.NextResponse{Response: newResponse(&req.Request)}, then, err)
}

func (r *dapRouter) StepIn(ctx context.Context, req *dap.StepInRequest) error {
	then, err := r.debugAdapter.StepIn(ctx)
	return r.replyThen(ctx, &req.Request, &dap.StepInResponse{Response: newResponse(&req.Request)}, then, err)
}

func (r *dapRouter) StepOut(ctx context.Context, req *dap.StepOutRequest) error {
	then, err := r.debugAdapter.StepOut(ctx)
	return r.replyThen(ctx, &req.Request, &dap.StepOutResponse{Response: newResponse(&req.Request)}, then, err)
}

func (r *dapRouter) Threads(ctx context.Context, req *dap.ThreadsRequest) error {
	threads, err := r.debugAdapter.Threads(ctx)
	return r.reply(ctx, &req.Request, &dap.ThreadsResponse{
		Response: newResponse(&req.Request),
		Body:     dap.ThreadsResponseBody{Threads: threads},
	}, err)
}

func (r *dapRouter) StackTrace(ctx context.Context, req *dap.StackTraceRequest) error {
	frames, total, err := r.debugAdapter.StackTrace(ctx, req.Arguments)
	return r.reply(ctx, &req.Request, &dap.StackTraceResponse{
		Response: newResponse(&req.Request),
		Body:     dap.StackTraceResponseBody{StackFrames: frames, TotalFrames: total},
	}, err)
}

func (r *dapRouter) LoadedSources(ctx context.Context, req *dap.LoadedSourcesRequest) error {
	sources, err := r.debugAdapter.LoadedSources(ctx)
	return r.reply(ctx, &req.Request, &dap.LoadedSourcesResponse{
		Response: newResponse(&req.Request),
		Body:     dap.LoadedSourcesResponseBody{Sources: sources},
	}, err)
}
