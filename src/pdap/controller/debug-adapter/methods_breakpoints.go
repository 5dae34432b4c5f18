package debugadapter

import (
	"context"

	"github.com/google/go-dap"
	"github.com/uber/perl-dap/src/pdap/mapper"
)

const _msgDataBreakpoints = "data breakpoints are not supported by the Perl debugger"

// SetBreakpoints replaces the line breakpoints of one source file.
func (c *controller) SetBreakpoints(ctx context.Context, args dap.SetBreakpointsArguments) ([]dap.Breakpoint, error) {
	s, ds, err := c.debugSessionFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if err := ds.idle(); err != nil {
		return nil, err
	}

	path := c.fs.NormalizePath(mapper.ClientPathToPath(s, args.Source.Path), ds.workingDir())
	requested := mapper.SourceBreakpointsToEntity(s, args.Breakpoints)
	if len(requested) == 0 {
		return []dap.Breakpoint{}, ds.breakpoints.RemoveBreakpointsInFile(ctx, path)
	}

	bps, err := ds.breakpoints.SetBreakpointsInFile(ctx, path, requested)
	if err != nil {
		return nil, err
	}
	return mapper.BreakpointsToDAP(s, bps), nil
}

// SetFunctionBreakpoints replaces the subroutine breakpoints.
func (c *controller) SetFunctionBreakpoints(ctx context.Context, args dap.SetFunctionBreakpointsArguments) ([]dap.Breakpoint, error) {
	s, ds, err := c.debugSessionFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := ds.idle(); err != nil {
		return nil, err
	}

	bps, err := ds.breakpoints.SetFunctionBreakpoints(ctx, mapper.FunctionBreakpointsToEntity(args.Breakpoints))
	if err != nil {
		return nil, err
	}
	return mapper.BreakpointsToDAP(s, bps), nil
}

// SetExceptionBreakpoints accepts the request; no exception filters are offered.
func (c *controller) SetExceptionBreakpoints(ctx context.Context, args dap.SetExceptionBreakpointsArguments) error {
	if len(args.Filters) > 0 {
		c.logger.Debugw("ignoring exception filters", "filters", args.Filters)
	}
	return nil
}

// DataBreakpointInfo reports that no variable can carry a data breakpoint.
func (c *controller) DataBreakpointInfo(ctx context.Context, args dap.DataBreakpointInfoArguments) (dap.DataBreakpointInfoResponseBody, error) {
	return dap.DataBreakpointInfoResponseBody{Description: _msgDataBreakpoints}, nil
}

// SetDataBreakpoints answers every requested data breakpoint as unverified.
func (c *controller) SetDataBreakpoints(ctx context.Context, args dap.SetDataBreakpointsArguments) ([]dap.Breakpoint, error) {
	out := make([]dap.Breakpoint, 0, len(args.Breakpoints))
	for range args.Breakpoints {
		out = append(out, dap.Breakpoint{Verified: false, Message: _msgDataBreakpoints})
	}
	return out, nil
}
