// Package debugadapter implements the business logic of the perl debug adapter: it owns the
// sessions and drives one Perl debugger per launched program.
package debugadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	"github.com/google/go-dap"
	tally "github.com/uber-go/tally/v4"
	"github.com/uber/perl-dap/src/pdap/controller/breakpoints"
	"github.com/uber/perl-dap/src/pdap/entity"
	ideclient "github.com/uber/perl-dap/src/pdap/gateway/ide-client"
	"github.com/uber/perl-dap/src/pdap/internal/clock"
	"github.com/uber/perl-dap/src/pdap/internal/executor"
	"github.com/uber/perl-dap/src/pdap/internal/fs"
	"github.com/uber/perl-dap/src/pdap/internal/logfilewriter"
	"github.com/uber/perl-dap/src/pdap/internal/serverinfofile"
	"github.com/uber/perl-dap/src/pdap/internal/sourcewatch"
	"github.com/uber/perl-dap/src/pdap/repository/session"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	// Configuration keys
	_engineKey             = "engine"
	_idleTimeoutMinutesKey = "idleTimeoutMinutes"

	_defaultPerlExecutable = "perl"
	_quitTimeout           = 2 * time.Second
)

// Deferred is work that must follow the response of the request that produced it, such as
// events describing the outcome. It does not block.
type Deferred func()

// Controller orchestrates the business logic for each request.
type Controller interface {
	// Session lifecycle requests.
	Initialize(ctx context.Context, args dap.InitializeRequestArguments) (dap.Capabilities, Deferred, error)
	Launch(ctx context.Context, args json.RawMessage) (Deferred, error)
	ConfigurationDone(ctx context.Context) (Deferred, error)
	Restart(ctx context.Context) (Deferred, error)
	Terminate(ctx context.Context) error
	Disconnect(ctx context.Context) error

	// Breakpoint requests.
	SetBreakpoints(ctx context.Context, args dap.SetBreakpointsArguments) ([]dap.Breakpoint, error)
	SetFunctionBreakpoints(ctx context.Context, args dap.SetFunctionBreakpointsArguments) ([]dap.Breakpoint, error)
	SetExceptionBreakpoints(ctx context.Context, args dap.SetExceptionBreakpointsArguments) error
	DataBreakpointInfo(ctx context.Context, args dap.DataBreakpointInfoArguments) (dap.DataBreakpointInfoResponseBody, error)
	SetDataBreakpoints(ctx context.Context, args dap.SetDataBreakpointsArguments) ([]dap.Breakpoint, error)

	// Execution requests. They answer once the command is accepted; the outcome arrives as events.
	Continue(ctx context.Context) (Deferred, error)
	Next(ctx context.Context) (Deferred, error)
	StepIn(ctx context.Context) (Deferred, error)
	StepOut(ctx context.Context) (Deferred, error)

	// Inspection requests.
	Threads(ctx context.Context) ([]dap.Thread, error)
	StackTrace(ctx context.Context, args dap.StackTraceArguments) ([]dap.StackFrame, int, error)
	Scopes(ctx context.Context, args dap.ScopesArguments) ([]dap.Scope, error)
	Variables(ctx context.Context, args dap.VariablesArguments) ([]dap.Variable, error)
	Evaluate(ctx context.Context, args dap.EvaluateArguments) (dap.EvaluateResponseBody, error)
	SetVariable(ctx context.Context, args dap.SetVariableArguments) (dap.SetVariableResponseBody, error)
	LoadedSources(ctx context.Context) ([]dap.Source, error)

	// Custom methods for use within this service.
	InitSession(ctx context.Context, w io.Writer) (uuid.UUID, error)
	EndSession(ctx context.Context, uuid uuid.UUID) error
}

// Params are inbound parameters to initialize a new controller.
type Params struct {
	fx.In

	Shutdowner     fx.Shutdowner
	Lifecycle      fx.Lifecycle
	Sessions       session.Repository
	IdeGateway     ideclient.Gateway
	Logger         *zap.SugaredLogger
	Config         config.Provider
	Stats          tally.Scope
	FS             fs.PdapFS
	Executor       executor.Executor
	ServerInfoFile serverinfofile.ServerInfoFile
	Clock          clock.Clock `optional:"true"`
}

// engineConfig holds the defaults applied to every launched debugger.
type engineConfig struct {
	PerlExecutable        string            `yaml:"perlExecutable"`
	Env                   map[string]string `yaml:"env"`
	RequestTimeoutMs      int               `yaml:"requestTimeoutMs"`
	TerminationGraceMs    int               `yaml:"terminationGraceMs"`
	BreakpointMaxAttempts int               `yaml:"breakpointMaxAttempts"`
	TraceDir              string            `yaml:"traceDir"`
}

type controller struct {
	sessions    session.Repository
	shutdowner  fx.Shutdowner
	logger      *zap.SugaredLogger
	ideGateway  ideclient.Gateway
	stats       tally.Scope
	fs          fs.PdapFS
	executor    executor.Executor
	clock       clock.Clock
	traceParams logfilewriter.Params
	newWatcher  func(logger *zap.SugaredLogger, onChange func(path string)) (sourcewatch.Watcher, error)
	environ     func() []string

	engine         engineConfig
	requestTimeout time.Duration
	grace          time.Duration

	idleTimer          *time.Timer
	idleTimerMu        sync.Mutex
	idleTimeoutMinutes time.Duration

	debugSessionsMu sync.Mutex
	debugSessions   map[uuid.UUID]*debugSession
}

// New constructs a new top-level controller for the service.
func New(p Params) (Controller, error) {
	var engineCfg engineConfig
	if err := p.Config.Get(_engineKey).Populate(&engineCfg); err != nil {
		return nil, fmt.Errorf("unable to get engine settings from config: %w", err)
	}
	if engineCfg.RequestTimeoutMs < 0 || engineCfg.TerminationGraceMs < 0 {
		return nil, fmt.Errorf("engine timeouts must not be negative")
	}
	if engineCfg.PerlExecutable == "" {
		engineCfg.PerlExecutable = _defaultPerlExecutable
	}

	var timeoutMinutesRaw int64
	if err := p.Config.Get(_idleTimeoutMinutesKey).Populate(&timeoutMinutesRaw); err != nil {
		return nil, fmt.Errorf("unable to get idle timeout from config: %w", err)
	}

	if p.Clock == nil {
		p.Clock = clock.New()
	}
	if p.Stats == nil {
		p.Stats = tally.NoopScope
	}

	c := &controller{
		sessions:   p.Sessions,
		shutdowner: p.Shutdowner,
		logger:     p.Logger,
		ideGateway: p.IdeGateway,
		stats:      p.Stats,
		fs:         p.FS,
		executor:   p.Executor,
		clock:      p.Clock,
		traceParams: logfilewriter.Params{
			FS:             p.FS,
			Lifecycle:      p.Lifecycle,
			ServerInfoFile: p.ServerInfoFile,
		},
		newWatcher: sourcewatch.New,
		environ:    os.Environ,

		engine:         engineCfg,
		requestTimeout: time.Duration(engineCfg.RequestTimeoutMs) * time.Millisecond,
		grace:          time.Duration(engineCfg.TerminationGraceMs) * time.Millisecond,

		idleTimeoutMinutes: time.Duration(timeoutMinutesRaw) * time.Minute,
		debugSessions:      map[uuid.UUID]*debugSession{},
	}
	c.refreshIdleTimer(context.Background())

	return c, nil
}

// newDebugSession creates the per-session state kept next to the session entity.
func (c *controller) newDebugSession(id uuid.UUID) *debugSession {
	ds := &debugSession{
		id:      id,
		ctx:     context.WithValue(context.Background(), entity.SessionContextKey, id),
		logger:  c.logger.With("session", id.String()),
		sources: map[string]struct{}{},
	}
	ds.breakpoints = breakpoints.New(breakpoints.Options{
		Logger:      ds.logger,
		Scope:       c.stats.SubScope("breakpoints"),
		MaxAttempts: c.engine.BreakpointMaxAttempts,
		EnginePath: func(path string) string {
			return fs.EngineRelative(path, ds.workingDir())
		},
	})
	return ds
}

// debugSessionFromContext returns the session entity and its debug state.
func (c *controller) debugSessionFromContext(ctx context.Context) (*entity.Session, *debugSession, error) {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return nil, nil, err
	}

	c.debugSessionsMu.Lock()
	defer c.debugSessionsMu.Unlock()
	ds, ok := c.debugSessions[s.UUID]
	if !ok {
		ds = c.newDebugSession(s.UUID)
		c.debugSessions[s.UUID] = ds
	}
	return s, ds, nil
}
