package debugadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gofrs/uuid"
	"github.com/google/go-dap"
	"github.com/uber/perl-dap/src/pdap/controller/execution"
	"github.com/uber/perl-dap/src/pdap/entity"
	"github.com/uber/perl-dap/src/pdap/internal/errors"
	"github.com/uber/perl-dap/src/pdap/mapper"
	"go.uber.org/multierr"
)

// capabilities advertised in the initialize response.
func capabilities() dap.Capabilities {
	return dap.Capabilities{
		SupportsConfigurationDoneRequest: true,
		SupportsFunctionBreakpoints:      true,
		SupportsConditionalBreakpoints:   true,
		SupportsEvaluateForHovers:        true,
		SupportsSetVariable:              true,
		SupportsRestartRequest:           true,
		SupportsLoadedSourcesRequest:     true,
		SupportsTerminateRequest:         true,
		SupportsDataBreakpoints:          true,
	}
}

// Initialize records the client's conventions. The initialized event follows the response.
func (c *controller) Initialize(ctx context.Context, args dap.InitializeRequestArguments) (dap.Capabilities, Deferred, error) {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return dap.Capabilities{}, nil, err
	}

	mapper.InitializeArgumentsToSession(args, s)
	s.State = entity.SessionStateInitialized
	if err := c.sessions.Set(ctx, s); err != nil {
		return dap.Capabilities{}, nil, err
	}
	c.logger.Infow("client initialized", "session", s.UUID.String(), "client", s.ClientID, "pathFormat", s.PathFormat)

	initialized := func() {
		if err := c.ideGateway.Initialized(ctx); err != nil {
			c.logger.Errorw("sending initialized event", "error", err)
		}
	}
	return capabilities(), initialized, nil
}

// Launch starts the program. If configuration is already done, the program starts running
// (or reports the entry stop) after the response.
func (c *controller) Launch(ctx context.Context, args json.RawMessage) (Deferred, error) {
	s, ds, err := c.debugSessionFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if ds.current() != nil {
		return nil, fmt.Errorf("a program is already running in this session")
	}

	cfg, err := mapper.LaunchArgumentsToConfig(args)
	if err != nil {
		return nil, err
	}
	if err := c.start(ctx, s, ds, cfg); err != nil {
		return nil, err
	}

	s.Launch = cfg
	s.State = entity.SessionStateLaunched
	if err := c.sessions.Set(ctx, s); err != nil {
		return nil, err
	}

	ds.mu.Lock()
	configured := ds.configured
	ds.mu.Unlock()
	if !configured {
		return func() {}, nil
	}
	return c.run(ds), nil
}

// ConfigurationDone marks the end of the initial breakpoint configuration.
func (c *controller) ConfigurationDone(ctx context.Context) (Deferred, error) {
	_, ds, err := c.debugSessionFromContext(ctx)
	if err != nil {
		return nil, err
	}

	ds.mu.Lock()
	ds.configured = true
	launched := ds.rt != nil
	ds.mu.Unlock()
	if !launched {
		return func() {}, nil
	}
	return c.run(ds), nil
}

// Restart stops the program and launches it again with the same configuration. Breakpoints
// are kept and reapplied.
func (c *controller) Restart(ctx context.Context) (Deferred, error) {
	s, ds, err := c.debugSessionFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if s.Launch == nil {
		return nil, errors.ErrSessionNotLaunched
	}

	if err := c.teardown(ds, false); err != nil {
		ds.logger.Warnw("stopping program for restart", "error", err)
	}
	ds.mu.Lock()
	ds.sources = map[string]struct{}{}
	ds.mu.Unlock()

	if err := c.start(ctx, s, ds, s.Launch); err != nil {
		return nil, err
	}
	s.State = entity.SessionStateLaunched
	if err := c.sessions.Set(ctx, s); err != nil {
		return nil, err
	}
	return c.run(ds), nil
}

// Terminate asks the debugger to quit. The terminated event follows once the engine is gone.
// A running program cannot read commands, so its engine is killed instead, as is an engine
// that does not answer the quit command.
func (c *controller) Terminate(ctx context.Context) error {
	_, ds, err := c.debugSessionFromContext(ctx)
	if err != nil {
		return err
	}
	rt := ds.current()
	if rt == nil {
		return errors.ErrSessionNotLaunched
	}

	if rt.process != nil {
		if err := rt.process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
			return err
		}
		return nil
	}

	if rt.execution.State() == execution.StateRunning {
		return c.kill(ds, rt)
	}
	quitCtx, cancel := context.WithTimeout(ctx, _quitTimeout)
	defer cancel()
	if err := rt.correlator.Quit(quitCtx); err != nil {
		ds.logger.Warnw("engine did not quit, killing it", "error", err)
		return c.kill(ds, rt)
	}
	return nil
}

// kill destroys the engine and reports the termination itself, since a destroyed engine does
// not report its exit.
func (c *controller) kill(ds *debugSession, rt *runtime) error {
	err := rt.correlator.Destroy()
	rt.execution.Terminate()
	ds.logger.Infow("engine killed", "pid", rt.correlator.Pid())
	return err
}

// Disconnect ends the debugging of the program. The connection itself is closed by the client.
func (c *controller) Disconnect(ctx context.Context) error {
	_, ds, err := c.debugSessionFromContext(ctx)
	if err != nil {
		return err
	}
	return c.teardown(ds, true)
}

// run starts the launched program once both launch and configuration are done: it either
// reports the entry stop or continues to the first breakpoint. It does nothing afterwards.
func (c *controller) run(ds *debugSession) Deferred {
	ds.mu.Lock()
	rt := ds.rt
	if rt == nil || rt.started {
		ds.mu.Unlock()
		return func() {}
	}
	rt.started = true
	ds.mu.Unlock()

	if rt.correlator == nil {
		return func() {}
	}
	if rt.launch.StopOnEntry {
		return rt.execution.StopOnEntry
	}
	return ds.async("continue", rt.execution.Continue, c.reportFailure(ds))
}

// reportFailure shows the error of a background request in the client console.
func (c *controller) reportFailure(ds *debugSession) func(err error) {
	return func(err error) {
		if sendErr := c.ideGateway.Output(ds.ctx, entity.OutputCategoryConsole, err.Error()+"\n"); sendErr != nil {
			ds.logger.Warnw("sending output event", "error", sendErr)
		}
	}
}

func (c *controller) setSessionState(ctx context.Context, state entity.SessionState) {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		c.logger.Warnw("updating session state", "state", state, "error", err)
		return
	}
	s.State = state
	if err := c.sessions.Set(ctx, s); err != nil {
		c.logger.Warnw("updating session state", "state", state, "error", err)
	}
}

// InitSession creates a new empty session and returns its UUID.
func (c *controller) InitSession(ctx context.Context, w io.Writer) (uuid.UUID, error) {
	defer c.refreshIdleTimer(ctx)

	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}

	s := mapper.UUIDToSession(id)
	if err := c.ideGateway.RegisterClient(ctx, id, w); err != nil {
		return uuid.Nil, err
	}
	if err := c.sessions.Set(ctx, s); err != nil {
		return uuid.Nil, err
	}

	c.debugSessionsMu.Lock()
	c.debugSessions[id] = c.newDebugSession(id)
	c.debugSessionsMu.Unlock()
	return id, nil
}

// EndSession includes any cleanup at the end of the session, during or after the last request.
func (c *controller) EndSession(ctx context.Context, id uuid.UUID) error {
	defer c.refreshIdleTimer(ctx)

	c.debugSessionsMu.Lock()
	ds, ok := c.debugSessions[id]
	delete(c.debugSessions, id)
	c.debugSessionsMu.Unlock()

	var err error
	if ok {
		err = multierr.Append(err, c.teardown(ds, false))
	}
	if deregisterErr := c.ideGateway.DeregisterClient(ctx, id); deregisterErr != nil {
		c.logger.Warnw("deregistering client", "session", id.String(), "error", deregisterErr)
	}
	return multierr.Append(err, c.sessions.Delete(ctx, id))
}

// refreshIdleTimer ensures that the service shuts down after a defined inactivity period with no
// connections. A zero timeout disables it.
func (c *controller) refreshIdleTimer(ctx context.Context) error {
	if c.idleTimeoutMinutes <= 0 {
		return nil
	}

	c.idleTimerMu.Lock()
	defer c.idleTimerMu.Unlock()

	// First call initializes new timer and leaves it running prior to first connection.
	if c.idleTimer == nil {
		c.idleTimer = time.AfterFunc(c.idleTimeoutMinutes, func() {
			c.logger.Info("Shutdown signal received.")
			if err := c.shutdowner.Shutdown(); err != nil {
				os.Exit(1)
			}
		})
		return nil
	}

	currentSessions, err := c.sessions.SessionCount(ctx)
	if err != nil {
		return fmt.Errorf("error resetting timeout: %w", err)
	}

	c.idleTimer.Stop()
	if currentSessions == 0 {
		c.idleTimer.Reset(c.idleTimeoutMinutes)
	}
	return nil
}
