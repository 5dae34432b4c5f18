package debugadapter

import (
	"context"
	"io"
	"sort"
	"sync"

	"github.com/gofrs/uuid"
	"github.com/uber/perl-dap/src/pdap/controller/breakpoints"
	"github.com/uber/perl-dap/src/pdap/controller/execution"
	"github.com/uber/perl-dap/src/pdap/controller/variables"
	"github.com/uber/perl-dap/src/pdap/entity"
	"github.com/uber/perl-dap/src/pdap/gateway/engine"
	"github.com/uber/perl-dap/src/pdap/internal/errors"
	"github.com/uber/perl-dap/src/pdap/internal/executor"
	"github.com/uber/perl-dap/src/pdap/internal/sourcewatch"
	"go.uber.org/zap"
)

// debugSession is the debugging state of one client connection. The breakpoint registry
// outlives launches so that breakpoints set before launch or across restarts are kept.
type debugSession struct {
	id          uuid.UUID
	ctx         context.Context
	logger      *zap.SugaredLogger
	breakpoints *breakpoints.Registry

	// wg tracks goroutines that drive the program on behalf of a request.
	wg sync.WaitGroup

	mu         sync.Mutex
	configured bool
	rt         *runtime
	sources    map[string]struct{}
}

// runtime is one launch of the program.
type runtime struct {
	launch  *entity.LaunchConfig
	client  *entity.Session
	program string
	cwd     string

	// Set when debugging.
	correlator *engine.Correlator
	execution  *execution.Controller
	variables  *variables.Controller
	watcher    sourcewatch.Watcher
	trace      io.WriteCloser

	// Set for noDebug launches.
	process executor.Process

	started bool
}

func (ds *debugSession) current() *runtime {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	return ds.rt
}

func (ds *debugSession) workingDir() string {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	if ds.rt == nil {
		return ""
	}
	return ds.rt.cwd
}

// debugger returns the runtime when the program runs under the debugger.
func (ds *debugSession) debugger() (*runtime, error) {
	rt := ds.current()
	if rt == nil {
		return nil, errors.ErrSessionNotLaunched
	}
	if rt.correlator == nil {
		return nil, errors.ErrNoDebug
	}
	return rt, nil
}

// paused returns the runtime when the program is stopped and can be inspected or stepped.
func (ds *debugSession) paused() (*runtime, error) {
	rt, err := ds.debugger()
	if err != nil {
		return nil, err
	}
	switch rt.execution.State() {
	case execution.StateTerminated:
		return nil, errors.ErrProgramTerminated
	case execution.StateRunning:
		return nil, errors.ErrProgramRunning
	}
	return rt, nil
}

// idle fails while the program runs: the engine only reads commands at its prompt.
func (ds *debugSession) idle() error {
	rt := ds.current()
	if rt != nil && rt.execution != nil && rt.execution.State() == execution.StateRunning {
		return errors.ErrProgramRunning
	}
	return nil
}

// markSource records a source file and reports whether it was new.
func (ds *debugSession) markSource(path string) bool {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	if _, ok := ds.sources[path]; ok {
		return false
	}
	ds.sources[path] = struct{}{}
	return true
}

// loadedSources returns the program and every file seen since launch, sorted.
func (ds *debugSession) loadedSources() []string {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	seen := make(map[string]struct{}, len(ds.sources)+1)
	for p := range ds.sources {
		seen[p] = struct{}{}
	}
	if ds.rt != nil && ds.rt.program != "" {
		seen[ds.rt.program] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// async runs fn on a goroutine tracked by the session.
func (ds *debugSession) async(name string, fn func(ctx context.Context) error, onError func(err error)) Deferred {
	return func() {
		ds.wg.Add(1)
		go func() {
			defer ds.wg.Done()
			if err := fn(ds.ctx); err != nil {
				if errors.IsTransportClosed(err) {
					ds.logger.Debugw("engine went away during request", "request", name)
					return
				}
				ds.logger.Warnw("request failed in background", "request", name, "error", err)
				onError(err)
			}
		}()
	}
}
