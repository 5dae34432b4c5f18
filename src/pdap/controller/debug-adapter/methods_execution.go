package debugadapter

import (
	"context"

	"github.com/google/go-dap"
	"github.com/uber/perl-dap/src/pdap/entity"
	"github.com/uber/perl-dap/src/pdap/mapper"
)

func (c *controller) Continue(ctx context.Context) (Deferred, error) {
	return c.step(ctx, "continue", func(rt *runtime) func(context.Context) error { return rt.execution.Continue })
}

func (c *controller) Next(ctx context.Context) (Deferred, error) {
	return c.step(ctx, "next", func(rt *runtime) func(context.Context) error { return rt.execution.StepOver })
}

func (c *controller) StepIn(ctx context.Context) (Deferred, error) {
	return c.step(ctx, "stepIn", func(rt *runtime) func(context.Context) error { return rt.execution.StepIn })
}

func (c *controller) StepOut(ctx context.Context) (Deferred, error) {
	return c.step(ctx, "stepOut", func(rt *runtime) func(context.Context) error { return rt.execution.StepOut })
}

// step validates that the program is paused and schedules the command after the response.
func (c *controller) step(ctx context.Context, name string, command func(rt *runtime) func(context.Context) error) (Deferred, error) {
	_, ds, err := c.debugSessionFromContext(ctx)
	if err != nil {
		return nil, err
	}
	rt, err := ds.paused()
	if err != nil {
		return nil, err
	}
	return ds.async(name, command(rt), c.reportFailure(ds)), nil
}

// Threads reports the single thread the engine runs the program in.
func (c *controller) Threads(ctx context.Context) ([]dap.Thread, error) {
	return []dap.Thread{{Id: entity.ThreadID, Name: entity.ThreadName}}, nil
}

// StackTrace returns the requested window of frames and the total frame count.
func (c *controller) StackTrace(ctx context.Context, args dap.StackTraceArguments) ([]dap.StackFrame, int, error) {
	s, ds, err := c.debugSessionFromContext(ctx)
	if err != nil {
		return nil, 0, err
	}
	rt, err := ds.paused()
	if err != nil {
		return nil, 0, err
	}

	frames, err := rt.execution.StackTrace(ctx)
	if err != nil {
		return nil, 0, err
	}

	total := len(frames)
	start := args.StartFrame
	if start > total {
		start = total
	}
	end := total
	if args.Levels > 0 && start+args.Levels < end {
		end = start + args.Levels
	}
	return mapper.StackFramesToDAP(s, frames[start:end]), total, nil
}

// LoadedSources lists the program and every file the engine reported so far.
func (c *controller) LoadedSources(ctx context.Context) ([]dap.Source, error) {
	s, ds, err := c.debugSessionFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return mapper.PathsToSources(s, ds.loadedSources()), nil
}
