package debugadapter

import (
	"github.com/uber/perl-dap/src/pdap/controller/execution"
	"github.com/uber/perl-dap/src/pdap/entity"
	"github.com/uber/perl-dap/src/pdap/mapper"
)

// listener turns execution reports of one launch into events for the client.
type listener struct {
	c  *controller
	ds *debugSession
	rt *runtime
}

var _ execution.Listener = (*listener)(nil)

func (l *listener) Output(category entity.OutputCategory, text string) {
	if err := l.c.ideGateway.Output(l.ds.ctx, category, text); err != nil {
		l.ds.logger.Warnw("sending output event", "error", err)
	}
}

func (l *listener) Stopped(reason entity.StopReason, hitBreakpointIDs []int) {
	if err := l.c.ideGateway.Stopped(l.ds.ctx, reason, hitBreakpointIDs); err != nil {
		l.ds.logger.Warnw("sending stopped event", "reason", reason, "error", err)
	}
}

// BreakpointsChanged reports breakpoints applied after their file was loaded. A line breakpoint
// that found no breakable line is removed; everything else is updated in place.
func (l *listener) BreakpointsChanged(bps []entity.Breakpoint) {
	for _, bp := range bps {
		reason := entity.BreakpointChanged
		if !bp.Verified && bp.Path != "" {
			reason = entity.BreakpointRemoved
		}
		if err := l.c.ideGateway.Breakpoint(l.ds.ctx, reason, mapper.BreakpointToDAP(l.rt.client, bp)); err != nil {
			l.ds.logger.Warnw("sending breakpoint event", "id", bp.ID, "error", err)
		}
	}
}

func (l *listener) SourceLoaded(path string) {
	if path == "" || !l.ds.markSource(path) {
		return
	}
	if src := mapper.PathToSource(l.rt.client, path); src != nil {
		if err := l.c.ideGateway.LoadedSource(l.ds.ctx, entity.LoadedSourceNew, *src); err != nil {
			l.ds.logger.Warnw("sending loadedSource event", "path", path, "error", err)
		}
	}
	if l.rt.watcher != nil {
		if err := l.rt.watcher.Watch(path); err != nil {
			l.ds.logger.Debugw("not watching source", "path", path, "error", err)
		}
	}
}

// SourceChanged is called by the source watcher when a loaded file is modified on disk.
func (l *listener) SourceChanged(path string) {
	if src := mapper.PathToSource(l.rt.client, path); src != nil {
		if err := l.c.ideGateway.LoadedSource(l.ds.ctx, entity.LoadedSourceChanged, *src); err != nil {
			l.ds.logger.Warnw("sending loadedSource event", "path", path, "error", err)
		}
	}
}

func (l *listener) Terminated() {
	if err := l.c.ideGateway.Terminated(l.ds.ctx); err != nil {
		l.ds.logger.Warnw("sending terminated event", "error", err)
	}
	l.c.setSessionState(l.ds.ctx, entity.SessionStateTerminated)
}
