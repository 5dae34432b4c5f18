package debugadapter

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"

	"github.com/uber/perl-dap/src/pdap/controller/execution"
	"github.com/uber/perl-dap/src/pdap/controller/variables"
	"github.com/uber/perl-dap/src/pdap/entity"
	"github.com/uber/perl-dap/src/pdap/gateway/engine"
	"github.com/uber/perl-dap/src/pdap/internal/errors"
	"github.com/uber/perl-dap/src/pdap/internal/fs"
	"github.com/uber/perl-dap/src/pdap/internal/logfilewriter"
	"github.com/uber/perl-dap/src/pdap/internal/replproto"
	"github.com/uber/perl-dap/src/pdap/mapper"
	"go.uber.org/multierr"
)

const _fmtTraceName = "session-%s"

// start launches the program described by cfg and installs it as the session's runtime.
// When debugging, it returns after the engine printed its first prompt and the postponed
// breakpoints were applied.
func (c *controller) start(ctx context.Context, s *entity.Session, ds *debugSession, cfg *entity.LaunchConfig) error {
	rt := &runtime{launch: cfg, client: s}
	rt.cwd = c.fs.NormalizePath(mapper.ClientPathToPath(s, cfg.Cwd), "")
	rt.program = c.fs.NormalizePath(mapper.ClientPathToPath(s, cfg.Program), rt.cwd)
	if rt.cwd == "" {
		rt.cwd = filepath.Dir(rt.program)
	}

	cmd := c.engineCommand(cfg, rt.program, rt.cwd)
	proc, err := c.executor.Start(cmd)
	if err != nil {
		return fmt.Errorf("starting %s: %w", cmd.Path, err)
	}

	if cfg.NoDebug {
		rt.process = proc
		ds.mu.Lock()
		ds.rt = rt
		ds.mu.Unlock()
		ds.wg.Add(1)
		go func() {
			defer ds.wg.Done()
			c.streamProgram(ds, rt)
		}()
		return nil
	}

	l := &listener{c: c, ds: ds, rt: rt}
	if rt.watcher, err = c.newWatcher(ds.logger, l.SourceChanged); err != nil {
		ds.logger.Warnw("source watching disabled", "error", err)
		rt.watcher = nil
	}

	opts := engine.Options{
		Logger:         ds.logger,
		Scope:          c.stats.SubScope("engine"),
		RequestTimeout: c.requestTimeout,
		OnUnsolicited: func(line string) {
			l.Output(entity.OutputCategoryStdout, line+"\n")
		},
		OnExit: func() {
			if current := ds.current(); current == rt {
				rt.execution.Terminate()
			}
		},
	}
	if cfg.Trace {
		trace, err := logfilewriter.SetupTraceWriter(c.traceParams, c.engine.TraceDir, fmt.Sprintf(_fmtTraceName, ds.id))
		if err != nil {
			ds.logger.Warnw("engine trace disabled", "error", err)
		} else {
			rt.trace = trace
			opts.Transcript = trace
		}
	}

	rt.correlator = engine.NewCorrelator(proc, opts)
	rt.execution = execution.New(rt.correlator, ds.breakpoints, l, execution.Options{
		Logger: ds.logger,
		Clock:  c.clock,
		Grace:  c.grace,
		Normalize: func(path string) string {
			return c.fs.NormalizePath(path, rt.cwd)
		},
	})
	rt.variables = variables.New(rt.correlator, variables.Options{
		Logger:       ds.logger,
		Scope:        c.stats.SubScope("dump"),
		OnTerminated: rt.execution.Terminate,
	})

	// Published before the first prompt so that OnExit sees a complete runtime.
	ds.mu.Lock()
	ds.rt = rt
	ds.mu.Unlock()

	startupCtx := ctx
	if c.requestTimeout > 0 {
		var cancel context.CancelFunc
		startupCtx, cancel = context.WithTimeout(ctx, c.requestTimeout)
		defer cancel()
	}
	banner, err := rt.correlator.Startup(startupCtx)
	if err != nil {
		return multierr.Append(fmt.Errorf("waiting for the debugger prompt: %w", err), c.teardown(ds, false))
	}
	rt.execution.Startup(banner)

	if _, err := rt.correlator.Request(startupCtx, replproto.CmdLoadHook); err != nil {
		if errors.IsTransportClosed(err) {
			return multierr.Append(fmt.Errorf("installing the load hook: %w", err), c.teardown(ds, false))
		}
		ds.logger.Warnw("breakpoints in files loaded later will not be set", "error", err)
	}

	ds.breakpoints.Activate(rt.correlator)
	bps, err := ds.breakpoints.ApplyPostponed(ctx)
	l.BreakpointsChanged(bps)
	if err != nil && !errors.Is(err, errors.ErrSessionNotLaunched) {
		ds.logger.Warnw("applying breakpoints after launch", "error", err)
	}

	ds.logger.Infow("program launched", "program", rt.program, "cwd", rt.cwd, "pid", rt.correlator.Pid())
	return nil
}

// engineCommand builds the perl command line: debugger flags, library directories, the
// program relative to its working directory, then the program arguments.
func (c *controller) engineCommand(cfg *entity.LaunchConfig, program, cwd string) *exec.Cmd {
	perl := cfg.PerlExecutable
	if perl == "" {
		perl = c.engine.PerlExecutable
	}

	var args []string
	if !cfg.NoDebug {
		if cfg.Threaded {
			args = append(args, "-dt")
		} else {
			args = append(args, "-d")
		}
	}
	for _, dir := range cfg.Inc {
		args = append(args, "-I"+fs.EngineRelative(c.fs.NormalizePath(dir, cwd), cwd))
	}
	args = append(args, fs.EngineRelative(program, cwd))
	args = append(args, cfg.Args...)

	cmd := exec.Command(perl, args...)
	cmd.Dir = cwd
	// Later entries win, so launch settings override configured ones.
	cmd.Env = append(c.environ(), envList(c.engine.Env)...)
	cmd.Env = append(cmd.Env, envList(cfg.Env)...)
	return cmd
}

// streamProgram forwards the output of a program run without debugger and reports its exit.
func (c *controller) streamProgram(ds *debugSession, rt *runtime) {
	l := &listener{c: c, ds: ds, rt: rt}

	scanner := bufio.NewScanner(rt.process.Stdout())
	for scanner.Scan() {
		l.Output(entity.OutputCategoryStdout, scanner.Text()+"\n")
	}
	code := exitCode(rt.process.Wait())
	ds.logger.Infow("program exited", "program", rt.program, "exitCode", code)

	if err := c.ideGateway.Exited(ds.ctx, code); err != nil {
		ds.logger.Warnw("sending exited event", "error", err)
	}
	l.Terminated()
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 1
}

func envList(env map[string]string) []string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+env[k])
	}
	return out
}

// teardown stops the current runtime. A graceful teardown asks the engine to quit before
// killing it. Breakpoints return to the postponed state for the next launch.
func (c *controller) teardown(ds *debugSession, graceful bool) error {
	ds.mu.Lock()
	rt := ds.rt
	ds.rt = nil
	ds.mu.Unlock()
	if rt == nil {
		return nil
	}

	var err error
	if rt.correlator != nil {
		if graceful {
			ctx, cancel := context.WithTimeout(context.Background(), _quitTimeout)
			if quitErr := rt.correlator.Quit(ctx); quitErr == nil {
				select {
				case <-rt.correlator.Done():
				case <-ctx.Done():
				}
			}
			cancel()
		}
		err = multierr.Append(err, rt.correlator.Destroy())
	}
	if rt.process != nil {
		if killErr := rt.process.Kill(); killErr != nil && !errors.Is(killErr, os.ErrProcessDone) {
			err = multierr.Append(err, killErr)
		}
	}

	ds.wg.Wait()

	if rt.watcher != nil {
		err = multierr.Append(err, rt.watcher.Close())
	}
	if rt.trace != nil {
		err = multierr.Append(err, rt.trace.Close())
	}
	ds.breakpoints.Reset()

	ds.logger.Infow("runtime stopped", "program", rt.program, "graceful", graceful)
	return err
}
