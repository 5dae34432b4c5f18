package debugadapter

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/google/go-dap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tally "github.com/uber-go/tally/v4"
	"github.com/uber/perl-dap/src/pdap/controller/execution"
	"github.com/uber/perl-dap/src/pdap/entity"
	"github.com/uber/perl-dap/src/pdap/gateway/ide-client/ideclientmock"
	"github.com/uber/perl-dap/src/pdap/internal/enginetest"
	"github.com/uber/perl-dap/src/pdap/internal/errors"
	"github.com/uber/perl-dap/src/pdap/internal/executor"
	"github.com/uber/perl-dap/src/pdap/internal/executor/executormock"
	"github.com/uber/perl-dap/src/pdap/internal/fs"
	"github.com/uber/perl-dap/src/pdap/internal/replproto"
	"github.com/uber/perl-dap/src/pdap/internal/sourcewatch"
	"github.com/uber/perl-dap/src/pdap/repository/session"
	"github.com/uber/perl-dap/src/pdap/repository/session/repositorymock"
	"go.uber.org/config"
	"go.uber.org/fx/fxtest"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

const _eventTimeout = 5 * time.Second

type sampleConfig map[string]interface{}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type event struct {
	name   string
	detail string
}

type stubWatcher struct {
	mu      sync.Mutex
	watched []string
}

func (w *stubWatcher) Watch(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.watched = append(w.watched, path)
	return nil
}

func (w *stubWatcher) Close() error { return nil }

type harness struct {
	c       *controller
	ctx     context.Context
	id      uuid.UUID
	events  chan event
	watcher *stubWatcher
	dir     string
	program string

	mu       sync.Mutex
	engines  []*enginetest.Engine
	commands []*exec.Cmd
}

// newHarness builds a controller whose engines are scripted by handler.
func newHarness(t *testing.T, handler enginetest.Handler) *harness {
	ctrl := gomock.NewController(t)

	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	program := filepath.Join(dir, "t.pl")
	require.NoError(t, os.WriteFile(program, []byte("my $x = 1;\nmy $y = 2;\nprint $x;\n"), 0o644))

	h := &harness{
		events:  make(chan event, 256),
		watcher: &stubWatcher{},
		dir:     dir,
		program: program,
	}

	gw := ideclientmock.NewMockGateway(ctrl)
	gw.EXPECT().RegisterClient(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	gw.EXPECT().DeregisterClient(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	gw.EXPECT().Initialized(gomock.Any()).DoAndReturn(func(ctx context.Context) error {
		h.events <- event{name: "initialized"}
		return nil
	}).AnyTimes()
	gw.EXPECT().Stopped(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, reason entity.StopReason, hits []int) error {
		h.events <- event{name: "stopped", detail: fmt.Sprintf("%s %v", reason, hits)}
		return nil
	}).AnyTimes()
	gw.EXPECT().Terminated(gomock.Any()).DoAndReturn(func(ctx context.Context) error {
		h.events <- event{name: "terminated"}
		return nil
	}).AnyTimes()
	gw.EXPECT().Exited(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, code int) error {
		h.events <- event{name: "exited", detail: fmt.Sprint(code)}
		return nil
	}).AnyTimes()
	gw.EXPECT().Output(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, category entity.OutputCategory, text string) error {
		h.events <- event{name: "output", detail: string(category) + ":" + text}
		return nil
	}).AnyTimes()
	gw.EXPECT().Breakpoint(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, reason entity.BreakpointEventReason, bp dap.Breakpoint) error {
		h.events <- event{name: "breakpoint", detail: fmt.Sprintf("%s %d %v %d", reason, bp.Id, bp.Verified, bp.Line)}
		return nil
	}).AnyTimes()
	gw.EXPECT().LoadedSource(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, reason entity.LoadedSourceReason, src dap.Source) error {
		h.events <- event{name: "loadedSource", detail: string(reason) + " " + src.Path}
		return nil
	}).AnyTimes()

	ex := executormock.NewMockExecutor(ctrl)
	ex.EXPECT().Start(gomock.Any()).DoAndReturn(func(cmd *exec.Cmd) (executor.Process, error) {
		e := enginetest.New(enginetest.DefaultBanner, handler)
		h.mu.Lock()
		defer h.mu.Unlock()
		h.engines = append(h.engines, e)
		h.commands = append(h.commands, cmd)
		return e, nil
	}).AnyTimes()

	cfg, err := config.NewStaticProvider(sampleConfig{
		_engineKey: sampleConfig{
			"requestTimeoutMs":   2000,
			"terminationGraceMs": 0,
		},
	})
	require.NoError(t, err)

	c, err := New(Params{
		Lifecycle:  fxtest.NewLifecycle(t),
		Sessions:   session.New(tally.NoopScope),
		IdeGateway: gw,
		Logger:     zap.NewNop().Sugar(),
		Config:     cfg,
		Stats:      tally.NoopScope,
		FS:         fs.New(),
		Executor:   ex,
	})
	require.NoError(t, err)
	h.c = c.(*controller)
	h.c.newWatcher = func(*zap.SugaredLogger, func(string)) (sourcewatch.Watcher, error) {
		return h.watcher, nil
	}

	h.id, err = h.c.InitSession(context.Background(), io.Discard)
	require.NoError(t, err)
	h.ctx = context.WithValue(context.Background(), entity.SessionContextKey, h.id)
	t.Cleanup(func() {
		assert.NoError(t, h.c.EndSession(h.ctx, h.id))
	})
	return h
}

func (h *harness) launchArgs(extra string) []byte {
	return []byte(fmt.Sprintf(`{"program": %q, "cwd": %q%s}`, h.program, h.dir, extra))
}

func (h *harness) engine(t *testing.T) *enginetest.Engine {
	h.mu.Lock()
	defer h.mu.Unlock()
	require.NotEmpty(t, h.engines)
	return h.engines[len(h.engines)-1]
}

// waitFor returns the next event with the given name, skipping others.
func (h *harness) waitFor(t *testing.T, name string) event {
	t.Helper()
	deadline := time.After(_eventTimeout)
	for {
		select {
		case ev := <-h.events:
			if ev.name == name {
				return ev
			}
		case <-deadline:
			require.FailNow(t, "timed out waiting for event", name)
		}
	}
}

// expect waits for an event with the given name and detail, skipping others.
func (h *harness) expect(t *testing.T, name, detail string) {
	t.Helper()
	deadline := time.After(_eventTimeout)
	for {
		select {
		case ev := <-h.events:
			if ev.name == name && ev.detail == detail {
				return
			}
		case <-deadline:
			require.FailNow(t, "timed out waiting for event", "%s %s", name, detail)
		}
	}
}

// drain returns the events sent so far.
func (h *harness) drain() []event {
	var out []event
	for {
		select {
		case ev := <-h.events:
			out = append(out, ev)
		default:
			return out
		}
	}
}

// script answers the engine commands of a small program with a breakpoint on line 3.
func script(cmd string) enginetest.Reply {
	switch {
	case cmd == "c":
		return enginetest.Text("hello", "main::(t.pl:3):\tprint $x;")
	case cmd == "n":
		return enginetest.Text("main::(t.pl:2):\tmy $y = 2;")
	case cmd == "T":
		return enginetest.Text("$ = main::f(1) called from file 't.pl' line 7")
	case cmd == "q":
		return enginetest.Reply{Exit: true}
	}
	return enginetest.Text()
}

func TestNew(t *testing.T) {
	t.Run("negative timeout", func(t *testing.T) {
		cfg, err := config.NewStaticProvider(sampleConfig{
			_engineKey: sampleConfig{"requestTimeoutMs": -1},
		})
		require.NoError(t, err)
		_, err = New(Params{Config: cfg, Logger: zap.NewNop().Sugar()})
		assert.Error(t, err)
	})

	t.Run("defaults", func(t *testing.T) {
		cfg, err := config.NewStaticProvider(sampleConfig{})
		require.NoError(t, err)
		c, err := New(Params{Config: cfg, Logger: zap.NewNop().Sugar()})
		require.NoError(t, err)
		assert.Equal(t, _defaultPerlExecutable, c.(*controller).engine.PerlExecutable)
		assert.Zero(t, c.(*controller).requestTimeout)
	})
}

func TestSessionStoreFailures(t *testing.T) {
	ctx := context.Background()
	cfg, err := config.NewStaticProvider(sampleConfig{})
	require.NoError(t, err)

	t.Run("set fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gw := ideclientmock.NewMockGateway(ctrl)
		gw.EXPECT().RegisterClient(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		sessions := repositorymock.NewMockRepository(ctrl)
		sessions.EXPECT().Set(gomock.Any(), gomock.Any()).Return(fmt.Errorf("store unavailable"))

		c, err := New(Params{Config: cfg, Logger: zap.NewNop().Sugar(), Sessions: sessions, IdeGateway: gw, Stats: tally.NoopScope})
		require.NoError(t, err)
		_, err = c.InitSession(ctx, io.Discard)
		assert.ErrorContains(t, err, "store unavailable")
	})

	t.Run("unknown session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sessions := repositorymock.NewMockRepository(ctrl)
		sessions.EXPECT().GetFromContext(gomock.Any()).Return(nil, fmt.Errorf("no session"))

		c, err := New(Params{Config: cfg, Logger: zap.NewNop().Sugar(), Sessions: sessions, Stats: tally.NoopScope})
		require.NoError(t, err)
		_, _, err = c.StackTrace(ctx, dap.StackTraceArguments{})
		assert.ErrorContains(t, err, "no session")
	})

	t.Run("delete fails on end", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		id, _ := uuid.NewV4()
		gw := ideclientmock.NewMockGateway(ctrl)
		gw.EXPECT().DeregisterClient(gomock.Any(), id).Return(nil)
		sessions := repositorymock.NewMockRepository(ctrl)
		sessions.EXPECT().Delete(gomock.Any(), id).Return(fmt.Errorf("already gone"))

		c, err := New(Params{Config: cfg, Logger: zap.NewNop().Sugar(), Sessions: sessions, IdeGateway: gw, Stats: tally.NoopScope})
		require.NoError(t, err)
		assert.ErrorContains(t, c.EndSession(ctx, id), "already gone")
	})
}

func TestInitialize(t *testing.T) {
	h := newHarness(t, script)

	caps, initialized, err := h.c.Initialize(h.ctx, dap.InitializeRequestArguments{ClientID: "vscode", PathFormat: "path", LinesStartAt1: true})
	require.NoError(t, err)
	assert.True(t, caps.SupportsConfigurationDoneRequest)
	assert.True(t, caps.SupportsFunctionBreakpoints)
	assert.True(t, caps.SupportsConditionalBreakpoints)
	assert.True(t, caps.SupportsSetVariable)
	assert.True(t, caps.SupportsLoadedSourcesRequest)
	assert.True(t, caps.SupportsRestartRequest)
	assert.True(t, caps.SupportsTerminateRequest)

	assert.Empty(t, h.drain())
	initialized()
	h.waitFor(t, "initialized")

	s, err := h.c.sessions.GetFromContext(h.ctx)
	require.NoError(t, err)
	assert.Equal(t, "vscode", s.ClientID)
	assert.Equal(t, entity.SessionStateInitialized, s.State)
}

func TestLaunchAppliesBreakpointsAndStops(t *testing.T) {
	h := newHarness(t, script)

	bps, err := h.c.SetBreakpoints(h.ctx, dap.SetBreakpointsArguments{
		Source:      dap.Source{Path: h.program},
		Breakpoints: []dap.SourceBreakpoint{{Line: 3}},
	})
	require.NoError(t, err)
	require.Len(t, bps, 1)
	assert.False(t, bps[0].Verified)

	done, err := h.c.ConfigurationDone(h.ctx)
	require.NoError(t, err)
	done()

	run, err := h.c.Launch(h.ctx, h.launchArgs(""))
	require.NoError(t, err)

	h.expect(t, "loadedSource", "new "+h.program)
	h.expect(t, "breakpoint", "changed 1 true 3")

	run()
	h.expect(t, "output", "stdout:hello\n")
	assert.Equal(t, "breakpoint [1]", h.waitFor(t, "stopped").detail)

	assert.Equal(t, []string{replproto.CmdLoadHook, "f t.pl", "b 3", "c"}, h.engine(t).Commands())
	assert.Contains(t, h.watcher.watched, h.program)

	s, err := h.c.sessions.GetFromContext(h.ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.SessionStateLaunched, s.State)

	sources, err := h.c.LoadedSources(h.ctx)
	require.NoError(t, err)
	assert.Equal(t, []dap.Source{{Name: "t.pl", Path: h.program}}, sources)
}

func TestStopOnEntryAndInspect(t *testing.T) {
	h := newHarness(t, script)

	_, err := h.c.Launch(h.ctx, h.launchArgs(`, "stopOnEntry": true`))
	require.NoError(t, err)
	entry, err := h.c.ConfigurationDone(h.ctx)
	require.NoError(t, err)
	entry()
	assert.Equal(t, "entry []", h.waitFor(t, "stopped").detail)

	threads, err := h.c.Threads(h.ctx)
	require.NoError(t, err)
	assert.Equal(t, []dap.Thread{{Id: 1, Name: "main"}}, threads)

	frames, total, err := h.c.StackTrace(h.ctx, dap.StackTraceArguments{ThreadId: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, frames, 2)
	assert.Equal(t, 1, frames[0].Line)
	assert.Equal(t, h.program, frames[0].Source.Path)
	assert.Equal(t, 7, frames[1].Line)

	frames, total, err = h.c.StackTrace(h.ctx, dap.StackTraceArguments{ThreadId: 1, StartFrame: 1, Levels: 5})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, frames, 1)
	assert.Equal(t, 2, frames[0].Id)

	scopes, err := h.c.Scopes(h.ctx, dap.ScopesArguments{FrameId: 1})
	require.NoError(t, err)
	require.Len(t, scopes, 2)
	assert.Equal(t, "Locals", scopes[0].Name)
	assert.True(t, scopes[1].Expensive)

	before := len(h.engine(t).Commands())
	_, err = h.c.Evaluate(h.ctx, dap.EvaluateArguments{Expression: "x"})
	var invalid *errors.InvalidExpressionError
	assert.ErrorAs(t, err, &invalid)
	assert.Len(t, h.engine(t).Commands(), before)

	next, err := h.c.Next(h.ctx)
	require.NoError(t, err)
	next()
	assert.Equal(t, "step []", h.waitFor(t, "stopped").detail)
	assert.Equal(t, "n", h.engine(t).Commands()[len(h.engine(t).Commands())-1])
}

func TestProgramTermination(t *testing.T) {
	h := newHarness(t, func(cmd string) enginetest.Reply {
		if cmd == "c" {
			return enginetest.Text("bye", "Debugged program terminated.  Use q to quit or R to restart,")
		}
		return script(cmd)
	})

	_, err := h.c.Launch(h.ctx, h.launchArgs(""))
	require.NoError(t, err)
	run, err := h.c.ConfigurationDone(h.ctx)
	require.NoError(t, err)
	run()

	h.waitFor(t, "terminated")

	_, err = h.c.Continue(h.ctx)
	assert.ErrorIs(t, err, errors.ErrProgramTerminated)
	_, err = h.c.Scopes(h.ctx, dap.ScopesArguments{})
	assert.ErrorIs(t, err, errors.ErrProgramTerminated)

	assert.Eventually(t, func() bool {
		s, err := h.c.sessions.GetFromContext(h.ctx)
		return err == nil && s.State == entity.SessionStateTerminated
	}, _eventTimeout, 10*time.Millisecond)

	// The engine going away afterwards does not report termination again.
	require.NoError(t, h.c.Terminate(h.ctx))
	<-h.c.debugSessions[h.id].current().correlator.Done()
	for _, ev := range h.drain() {
		assert.NotEqual(t, "terminated", ev.name)
	}
}

func TestTerminateQuitsEngine(t *testing.T) {
	h := newHarness(t, script)

	_, err := h.c.Launch(h.ctx, h.launchArgs(`, "stopOnEntry": true`))
	require.NoError(t, err)

	require.NoError(t, h.c.Terminate(h.ctx))
	h.waitFor(t, "terminated")
	assert.Equal(t, []string{replproto.CmdLoadHook, "q"}, h.engine(t).Commands())
	assert.False(t, h.engine(t).Killed())
}

func TestTerminateRunningProgram(t *testing.T) {
	release := make(chan struct{})
	h := newHarness(t, func(cmd string) enginetest.Reply {
		if cmd == "c" {
			// The program runs until the engine is gone.
			<-release
			return enginetest.Reply{Exit: true}
		}
		return script(cmd)
	})
	t.Cleanup(func() { close(release) })

	_, err := h.c.Launch(h.ctx, h.launchArgs(""))
	require.NoError(t, err)
	run, err := h.c.ConfigurationDone(h.ctx)
	require.NoError(t, err)
	run()
	require.Eventually(t, func() bool {
		return len(h.engine(t).Commands()) == 2
	}, _eventTimeout, 10*time.Millisecond)

	start := time.Now()
	require.NoError(t, h.c.Terminate(h.ctx))
	assert.Less(t, time.Since(start), _quitTimeout)
	h.waitFor(t, "terminated")

	e := h.engine(t)
	assert.True(t, e.Killed())
	assert.Equal(t, []string{replproto.CmdLoadHook, "c"}, e.Commands())
	assert.Equal(t, execution.StateTerminated, h.c.debugSessions[h.id].current().execution.State())

	// Later requests fail instead of waiting for the dead engine.
	_, _, err = h.c.StackTrace(h.ctx, dap.StackTraceArguments{})
	assert.Error(t, err)
}

func TestTerminateUnresponsiveEngine(t *testing.T) {
	release := make(chan struct{})
	h := newHarness(t, func(cmd string) enginetest.Reply {
		if cmd == "q" {
			<-release
			return enginetest.Reply{Exit: true}
		}
		return script(cmd)
	})
	t.Cleanup(func() { close(release) })

	_, err := h.c.Launch(h.ctx, h.launchArgs(`, "stopOnEntry": true`))
	require.NoError(t, err)

	require.NoError(t, h.c.Terminate(h.ctx))
	h.waitFor(t, "terminated")
	assert.True(t, h.engine(t).Killed())
}

func TestBreakpointInLaterLoadedFile(t *testing.T) {
	loaded := false
	h := newHarness(t, func(cmd string) enginetest.Reply {
		switch cmd {
		case "f lib/M.pm":
			if !loaded {
				return enginetest.Text("No file matching 'lib/M.pm' is loaded.")
			}
			return enginetest.Text()
		case "c":
			if !loaded {
				loaded = true
				return enginetest.Text("loaded source lib/M.pm", "continue", "M::(lib/M.pm:1):\tpackage M;")
			}
			return enginetest.Text("M::f(lib/M.pm:2):\treturn 1;")
		}
		return script(cmd)
	})
	module := filepath.Join(h.dir, "lib", "M.pm")
	require.NoError(t, os.MkdirAll(filepath.Dir(module), 0o755))
	require.NoError(t, os.WriteFile(module, []byte("package M;\nsub f { return 1 }\n1;\n"), 0o644))

	_, err := h.c.SetBreakpoints(h.ctx, dap.SetBreakpointsArguments{
		Source:      dap.Source{Path: module},
		Breakpoints: []dap.SourceBreakpoint{{Line: 2}},
	})
	require.NoError(t, err)

	_, err = h.c.Launch(h.ctx, h.launchArgs(""))
	require.NoError(t, err)
	run, err := h.c.ConfigurationDone(h.ctx)
	require.NoError(t, err)
	run()

	h.expect(t, "loadedSource", "new "+module)
	h.expect(t, "breakpoint", "changed 1 true 2")
	assert.Equal(t, "breakpoint [1]", h.waitFor(t, "stopped").detail)

	cmds := h.engine(t).Commands()
	assert.Equal(t, replproto.CmdLoadHook, cmds[0])
	assert.Contains(t, cmds, "b 2")
	assert.Equal(t, []string{"b 2", "c"}, cmds[len(cmds)-2:])
}

func TestDisconnect(t *testing.T) {
	h := newHarness(t, script)

	_, err := h.c.Launch(h.ctx, h.launchArgs(""))
	require.NoError(t, err)

	require.NoError(t, h.c.Disconnect(h.ctx))
	e := h.engine(t)
	assert.Equal(t, []string{replproto.CmdLoadHook, "q"}, e.Commands())
	assert.Nil(t, h.c.debugSessions[h.id].current())

	_, err = h.c.Next(h.ctx)
	assert.ErrorIs(t, err, errors.ErrSessionNotLaunched)
}

func TestRestart(t *testing.T) {
	h := newHarness(t, script)

	_, err := h.c.Restart(h.ctx)
	assert.ErrorIs(t, err, errors.ErrSessionNotLaunched)

	_, err = h.c.Launch(h.ctx, h.launchArgs(`, "stopOnEntry": true`))
	require.NoError(t, err)
	_, err = h.c.SetBreakpoints(h.ctx, dap.SetBreakpointsArguments{
		Source:      dap.Source{Path: h.program},
		Breakpoints: []dap.SourceBreakpoint{{Line: 3}},
	})
	require.NoError(t, err)
	first := h.engine(t)

	entry, err := h.c.Restart(h.ctx)
	require.NoError(t, err)
	entry()
	assert.Equal(t, "entry []", h.waitFor(t, "stopped").detail)

	second := h.engine(t)
	assert.NotSame(t, first, second)
	assert.True(t, first.Killed())
	assert.Equal(t, []string{replproto.CmdLoadHook, "f t.pl", "b 3"}, second.Commands())
}

func TestRequestsBeforeLaunch(t *testing.T) {
	h := newHarness(t, script)

	_, err := h.c.Continue(h.ctx)
	assert.ErrorIs(t, err, errors.ErrSessionNotLaunched)
	_, _, err = h.c.StackTrace(h.ctx, dap.StackTraceArguments{})
	assert.ErrorIs(t, err, errors.ErrSessionNotLaunched)
	_, err = h.c.Variables(h.ctx, dap.VariablesArguments{VariablesReference: 1})
	assert.ErrorIs(t, err, errors.ErrSessionNotLaunched)
	assert.ErrorIs(t, h.c.Terminate(h.ctx), errors.ErrSessionNotLaunched)

	bps, err := h.c.SetFunctionBreakpoints(h.ctx, dap.SetFunctionBreakpointsArguments{Breakpoints: []dap.FunctionBreakpoint{{Name: "main::f"}}})
	require.NoError(t, err)
	require.Len(t, bps, 1)
	assert.False(t, bps[0].Verified)

	_, err = h.c.Launch(h.ctx, []byte(`{"cwd": "/tmp"}`))
	assert.ErrorContains(t, err, "must name a program")
}

func TestDataAndExceptionBreakpoints(t *testing.T) {
	h := newHarness(t, script)

	assert.NoError(t, h.c.SetExceptionBreakpoints(h.ctx, dap.SetExceptionBreakpointsArguments{Filters: []string{"die"}}))

	info, err := h.c.DataBreakpointInfo(h.ctx, dap.DataBreakpointInfoArguments{Name: "$x"})
	require.NoError(t, err)
	assert.Equal(t, _msgDataBreakpoints, info.Description)

	bps, err := h.c.SetDataBreakpoints(h.ctx, dap.SetDataBreakpointsArguments{Breakpoints: []dap.DataBreakpoint{{}, {}}})
	require.NoError(t, err)
	require.Len(t, bps, 2)
	for _, bp := range bps {
		assert.False(t, bp.Verified)
	}
}

func TestNoDebugLaunch(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := newHarness(t, script)

	proc := executormock.NewMockProcess(ctrl)
	proc.EXPECT().Stdout().Return(io.NopCloser(strings.NewReader("hello\nworld\n"))).AnyTimes()
	proc.EXPECT().Wait().Return(nil)
	proc.EXPECT().Kill().Return(os.ErrProcessDone).AnyTimes()

	var started *exec.Cmd
	ex := executormock.NewMockExecutor(ctrl)
	ex.EXPECT().Start(gomock.Any()).DoAndReturn(func(cmd *exec.Cmd) (executor.Process, error) {
		started = cmd
		return proc, nil
	})
	h.c.executor = ex

	_, err := h.c.Launch(h.ctx, h.launchArgs(`, "noDebug": true, "args": ["a"]`))
	require.NoError(t, err)

	assert.Equal(t, "stdout:hello\n", h.waitFor(t, "output").detail)
	assert.Equal(t, "stdout:world\n", h.waitFor(t, "output").detail)
	assert.Equal(t, "0", h.waitFor(t, "exited").detail)
	h.waitFor(t, "terminated")

	assert.Equal(t, []string{"perl", "t.pl", "a"}, started.Args)
	assert.Equal(t, h.dir, started.Dir)

	_, err = h.c.StepIn(h.ctx)
	assert.ErrorIs(t, err, errors.ErrNoDebug)
}

func TestEngineCommand(t *testing.T) {
	c := &controller{
		fs:      fs.New(),
		environ: func() []string { return []string{"PATH=/bin", "MODE=base"} },
		engine: engineConfig{
			PerlExecutable: "perl",
			Env:            map[string]string{"MODE": "config", "PERLDB_OPTS": "ReadLine=0"},
		},
	}

	t.Run("debug", func(t *testing.T) {
		cmd := c.engineCommand(&entity.LaunchConfig{
			Inc:  []string{"lib", "/opt/lib"},
			Args: []string{"--verbose"},
			Env:  map[string]string{"MODE": "launch"},
		}, "/work/bin/t.pl", "/work")

		assert.Equal(t, []string{"perl", "-d", "-Ilib", "-I/opt/lib", "bin/t.pl", "--verbose"}, cmd.Args)
		assert.Equal(t, "/work", cmd.Dir)
		assert.Equal(t, []string{"PATH=/bin", "MODE=base", "MODE=config", "PERLDB_OPTS=ReadLine=0", "MODE=launch"}, cmd.Env)
	})

	t.Run("threaded with custom perl", func(t *testing.T) {
		cmd := c.engineCommand(&entity.LaunchConfig{PerlExecutable: "/usr/local/bin/perl", Threaded: true}, "/elsewhere/t.pl", "/work")
		assert.Equal(t, []string{"/usr/local/bin/perl", "-dt", "/elsewhere/t.pl"}, cmd.Args)
	})
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, exitCode(nil))
	assert.Equal(t, 1, exitCode(fmt.Errorf("killed")))
}
