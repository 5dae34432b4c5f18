// Package execution drives the debugged program: it sends the stepping commands, classifies
// the engine reply and decides through a fixed transition table whether the program stopped,
// must be resumed or finished.
package execution

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/uber/perl-dap/src/pdap/entity"
	"github.com/uber/perl-dap/src/pdap/internal/clock"
	"github.com/uber/perl-dap/src/pdap/internal/errors"
	"github.com/uber/perl-dap/src/pdap/internal/replproto"
	"go.uber.org/zap"
)

// State is the position of the program from the adapter's point of view.
type State int

const (
	StateStopped State = iota
	StateRunning
	StateTerminated
)

// Engine is the part of the engine correlator used to control execution.
type Engine interface {
	// Request sends a command expected to answer promptly.
	Request(ctx context.Context, cmd string) ([]string, error)
	// Run sends a command that hands control to the program.
	Run(ctx context.Context, cmd string) ([]string, error)
}

// Breakpoints is the part of the breakpoint registry consulted when a file gets loaded.
type Breakpoints interface {
	ApplyPostponedForFile(ctx context.Context, path string) ([]entity.Breakpoint, bool, error)
	HasBreakpointAt(path string, line int) (int, bool)
}

// Listener receives everything the controller reports to the client.
type Listener interface {
	Output(category entity.OutputCategory, text string)
	Stopped(reason entity.StopReason, hitBreakpointIDs []int)
	BreakpointsChanged(bps []entity.Breakpoint)
	SourceLoaded(path string)
	Terminated()
}

// Options configure a Controller.
type Options struct {
	Logger *zap.SugaredLogger
	Clock  clock.Clock
	// Grace is waited before reporting termination so trailing program output is delivered first.
	Grace time.Duration
	// Normalize turns a path printed by the engine into the form used by the breakpoint registry.
	Normalize func(path string) string
}

// Controller is the execution state machine of one session.
type Controller struct {
	logger      *zap.SugaredLogger
	clock       clock.Clock
	grace       time.Duration
	normalize   func(string) string
	engine      Engine
	breakpoints Breakpoints
	listener    Listener

	mu       sync.Mutex
	state    State
	location entity.Location

	terminateOnce sync.Once
}

// New creates a Controller for a program paused at its first line.
func New(engine Engine, breakpoints Breakpoints, listener Listener, opts Options) *Controller {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if opts.Normalize == nil {
		opts.Normalize = func(p string) string { return p }
	}
	return &Controller{
		logger:      opts.Logger,
		clock:       opts.Clock,
		grace:       opts.Grace,
		normalize:   opts.Normalize,
		engine:      engine,
		breakpoints: breakpoints,
		listener:    listener,
	}
}

// Continue resumes the program until the next breakpoint.
func (c *Controller) Continue(ctx context.Context) error { return c.run(ctx, KindContinue) }

// StepOver runs to the next statement of the current subroutine.
func (c *Controller) StepOver(ctx context.Context) error { return c.run(ctx, KindNext) }

// StepIn runs to the next statement, entering calls.
func (c *Controller) StepIn(ctx context.Context) error { return c.run(ctx, KindStepIn) }

// StepOut runs until the current subroutine returns.
func (c *Controller) StepOut(ctx context.Context) error { return c.run(ctx, KindStepOut) }

// Startup records the position reported by the engine banner and forwards the banner text.
func (c *Controller) Startup(banner []string) {
	lines := replproto.ClassifyAll(banner)
	c.forward(entity.OutputCategoryConsole, lines)
	c.track(lines)
}

// StopOnEntry reports the initial pause to the client.
func (c *Controller) StopOnEntry() {
	c.stop(Action{Reason: entity.StopReasonEntry}, nil)
}

// Terminate moves to Terminated and notifies the listener. Only the first call has an effect,
// whether it comes from a reply or from the engine going away.
func (c *Controller) Terminate() {
	c.terminateOnce.Do(func() {
		c.clock.Sleep(c.grace)
		c.mu.Lock()
		c.state = StateTerminated
		c.mu.Unlock()
		c.logger.Infow("debugged program terminated")
		c.listener.Terminated()
	})
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Location returns the last position reported by the engine.
func (c *Controller) Location() entity.Location {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.location
}

// StackTrace returns the frames of the paused program, innermost first. The innermost frame
// comes from the last location; the callers come from the engine's stack trace.
func (c *Controller) StackTrace(ctx context.Context) ([]entity.StackFrame, error) {
	loc := c.Location()
	if loc.IsZero() {
		return []entity.StackFrame{}, nil
	}

	reply, err := c.engine.Request(ctx, replproto.CmdStackTrace)
	if err != nil {
		return nil, err
	}

	frames := []entity.StackFrame{{ID: 1, Name: replproto.FrameName(loc.Sub), Path: loc.Path, Line: loc.Line}}
	var calls []replproto.Line
	for _, l := range replproto.ClassifyAll(reply) {
		if l.Kind == replproto.LineCalledFrom {
			calls = append(calls, l)
		}
	}
	for i, call := range calls {
		// The caller of frame i runs inside the subroutine named by the next trace line.
		name := "main"
		if i+1 < len(calls) {
			name = callName(calls[i+1].Sub)
		}
		frames = append(frames, entity.StackFrame{
			ID:   i + 2,
			Name: name,
			Path: c.normalize(call.Path),
			Line: call.Number,
		})
	}
	return frames, nil
}

func (c *Controller) run(ctx context.Context, kind Kind) error {
	if c.State() == StateTerminated {
		return errors.ErrProgramTerminated
	}

	for {
		c.setState(StateRunning)
		reply, err := c.engine.Run(ctx, kind.Command())
		if err != nil {
			c.setState(StateStopped)
			return err
		}

		obs, hits := c.observe(ctx, reply)
		action := Transition(kind, obs)
		c.logger.Debugw("execution reply", "command", kind, "observation", obs, "resume", action.Resume, "reason", action.Reason)

		switch {
		case action.Terminate:
			c.Terminate()
			return nil
		case action.Resume:
			kind = KindContinue
			continue
		}
		c.stop(action, hits)
		return nil
	}
}

// observe classifies a reply. Loading a file applies its postponed breakpoints before the
// coincidence check, so a breakpoint set on the current line is honored.
func (c *Controller) observe(ctx context.Context, reply []string) (Observation, []int) {
	lines := replproto.ClassifyAll(reply)
	c.forward(entity.OutputCategoryStdout, lines)

	var (
		terminated bool
		resumable  bool
		loaded     []string
	)
	for _, l := range lines {
		switch l.Kind {
		case replproto.LineTerminated:
			terminated = true
		case replproto.LineContinue:
			resumable = true
		case replproto.LineLoadedSource:
			loaded = append(loaded, c.normalize(l.Path))
		}
	}
	loc := c.track(lines)

	if terminated {
		return ObsTerminated, nil
	}
	if len(loaded) == 0 {
		return ObsPlain, c.hits(loc)
	}

	anyApplied := false
	for _, path := range loaded {
		c.listener.SourceLoaded(path)
		bps, applied, err := c.breakpoints.ApplyPostponedForFile(ctx, path)
		if err != nil {
			c.logger.Warnw("applying postponed breakpoints failed", "path", path, "error", err)
			continue
		}
		if applied {
			anyApplied = true
			c.listener.BreakpointsChanged(bps)
		}
	}

	// Only breakpoints set just now can coincide with the pause of the load hook.
	if anyApplied {
		if hits := c.hits(loc); len(hits) > 0 {
			return ObsSourceAtBreakpoint, hits
		}
	}
	if resumable {
		return ObsSourceResumable, nil
	}
	return ObsSource, nil
}

func (c *Controller) hits(loc entity.Location) []int {
	if loc.IsZero() {
		return nil
	}
	if id, ok := c.breakpoints.HasBreakpointAt(loc.Path, loc.Line); ok {
		return []int{id}
	}
	return nil
}

// track records the last location line and announces the file it names.
func (c *Controller) track(lines []replproto.Line) entity.Location {
	var found *replproto.Line
	for i := range lines {
		if lines[i].Kind == replproto.LineLocation {
			found = &lines[i]
		}
	}
	if found == nil {
		return entity.Location{}
	}

	loc := entity.Location{Sub: found.Sub, Path: c.normalize(found.Path), Line: found.Number}
	c.mu.Lock()
	c.location = loc
	c.mu.Unlock()
	c.listener.SourceLoaded(loc.Path)
	return loc
}

// forward sends the text printed before the first protocol line as program output.
func (c *Controller) forward(category entity.OutputCategory, lines []replproto.Line) {
	var b strings.Builder
	for _, l := range lines {
		if l.Kind != replproto.LineText {
			break
		}
		b.WriteString(l.Raw)
		b.WriteByte('\n')
	}
	if b.Len() > 0 {
		c.listener.Output(category, b.String())
	}
}

func (c *Controller) stop(action Action, hits []int) {
	c.setState(StateStopped)
	c.listener.Stopped(action.Reason, hits)
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateTerminated {
		c.state = s
	}
}

// callName drops the argument list from a call expression of a stack trace line.
func callName(call string) string {
	if i := strings.IndexByte(call, '('); i >= 0 {
		call = call[:i]
	}
	return replproto.FrameName(strings.TrimSpace(call))
}
