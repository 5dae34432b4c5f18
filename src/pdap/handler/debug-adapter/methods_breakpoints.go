package debugadapter

import (
	"context"

	"github.com/google/go-dap"
)

func (r *dapRouter) SetBreakpoints(ctx context.Context, req *dap.SetBreakpointsRequest) error {
	bps, err := r.debugAdapter.SetBreakpoints(ctx, req.Arguments)
	return r.reply(ctx, &req.Request, &dap.SetBreakpointsResponse{
		Response: newResponse(&req.Request),
		Body:     dap.SetBreakpointsResponseBody{Breakpoints: bps},
	}, err)
}

func (r *dapRouter) SetFunctionBreakpoints(ctx context.Context, req *dap.SetFunctionBreakpointsRequest) error {
	bps, err := r.debugAdapter.SetFunctionBreakpoints(ctx, req.Arguments)
	return r.reply(ctx, &req.Request, &dap.SetFunctionBreakpointsResponse{
		Response: newResponse(&req.Request),
		Body:     dap.SetFunctionBreakpointsResponseBody{Breakpoints: bps},
	}, err)
}

func (r *dapRouter) SetExceptionBreakpoints(ctx context.Context, req *dap.SetExceptionBreakpointsRequest) error {
	err := r.debugAdapter.SetExceptionBreakpoints(ctx, req.Arguments)
	return r.reply(ctx, &req.Request, &dap.SetExceptionBreakpointsResponse{Response: newResponse(&req.Request)}, err)
}

func (r *dapRouter) DataBreakpointInfo(ctx context.Context, req *dap.DataBreakpointInfoRequest) error {
	body, err := r.debugAdapter.DataBreakpointInfo(ctx, req.Arguments)
	return r.reply(ctx, &req.Request, &dap.DataBreakpointInfoResponse{Response: newResponse(&req.Request), Body: body}, err)
}

func (r *dapRouter) SetDataBreakpoints(ctx context.Context, req *dap.SetDataBreakpointsRequest) error {
	bps, err := r.debugAdapter.SetDataBreakpoints(ctx, req.Arguments)
	return r.reply(ctx, &req.Request, &dap.SetDataBreakpointsResponse{
		Response: newResponse(&req.Request),
		Body:     dap.SetDataBreakpointsResponseBody{Breakpoints: bps},
	}, err)
}
