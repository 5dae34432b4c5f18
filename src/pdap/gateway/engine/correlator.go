// Package engine is the gateway to the Perl debugger process: a line transport plus a
// correlator that pairs each command with the output ending at the next prompt.
package engine

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/uber-go/tally/v4"
	"github.com/uber/perl-dap/src/pdap/internal/errors"
	"github.com/uber/perl-dap/src/pdap/internal/executor"
	"github.com/uber/perl-dap/src/pdap/internal/replproto"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Options configure a Correlator.
type Options struct {
	Logger *zap.SugaredLogger
	Scope  tally.Scope
	// RequestTimeout bounds Request. Zero waits until the engine answers or the context ends.
	RequestTimeout time.Duration
	// Transcript receives every line in both directions when set.
	Transcript io.Writer
	// OnUnsolicited receives output that arrives while no command is outstanding.
	OnUnsolicited func(line string)
	// OnExit is called once when the engine output ends without Destroy having been called.
	OnExit func()
}

// Correlator serializes commands to the engine. Exactly one command is outstanding at a time,
// the rest wait in FIFO order, and each caller receives the lines up to and including the prompt
// that ends its own command.
type Correlator struct {
	logger        *zap.SugaredLogger
	proc          executor.Process
	channel       *Channel
	timeout       time.Duration
	onUnsolicited func(line string)
	onExit        func()

	mu      sync.Mutex
	queue   []*pending
	closed  error
	startup *pending

	destroyed   atomic.Bool
	destroyOnce sync.Once
	done        chan struct{}

	requests tally.Counter
	latency  tally.Timer
	timeouts tally.Counter
}

type pending struct {
	cmd     string
	written bool
	lines   []string
	err     error
	done    chan struct{}
}

func newPending(cmd string) *pending {
	return &pending{cmd: cmd, done: make(chan struct{})}
}

// complete is called with Correlator.mu held.
func (p *pending) complete(err error) {
	p.err = err
	close(p.done)
}

// NewCorrelator attaches to a started engine process. The banner printed before the first
// prompt is collected as an implicit first request, returned by Startup.
func NewCorrelator(proc executor.Process, opts Options) *Correlator {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}
	if opts.Scope == nil {
		opts.Scope = tally.NoopScope
	}

	channelOpts := []ChannelOption{WithLogger(opts.Logger)}
	if opts.Transcript != nil {
		channelOpts = append(channelOpts, WithTranscript(opts.Transcript))
	}

	startup := newPending("")
	startup.written = true

	c := &Correlator{
		logger:        opts.Logger,
		proc:          proc,
		channel:       NewChannel(proc.Stdout(), proc.Stdin(), channelOpts...),
		timeout:       opts.RequestTimeout,
		onUnsolicited: opts.OnUnsolicited,
		onExit:        opts.OnExit,
		queue:         []*pending{startup},
		startup:       startup,
		done:          make(chan struct{}),
		requests:      opts.Scope.Counter("requests"),
		latency:       opts.Scope.Timer("request_latency"),
		timeouts:      opts.Scope.Counter("timeouts"),
	}

	go c.readLoop()
	return c
}

// Startup waits for the first prompt and returns the banner lines printed before it.
func (c *Correlator) Startup(ctx context.Context) ([]string, error) {
	return c.wait(ctx, c.startup, false)
}

// Request sends cmd and returns its output, bounded by the configured request timeout.
func (c *Correlator) Request(ctx context.Context, cmd string) ([]string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return c.send(ctx, cmd, c.timeout > 0)
}

// Run sends cmd and waits without the request timeout. It is meant for commands that hand
// control to the program, which may run for any length of time.
func (c *Correlator) Run(ctx context.Context, cmd string) ([]string, error) {
	return c.send(ctx, cmd, false)
}

// Quit asks the engine to exit. The engine answers by closing its output, which counts as success.
func (c *Correlator) Quit(ctx context.Context) error {
	_, err := c.Request(ctx, replproto.CmdQuit)
	if err == nil || errors.IsTransportClosed(err) {
		return nil
	}
	return err
}

// Destroy kills the engine and fails every outstanding command with errors.ErrTransportClosed.
// OnExit is not called after Destroy.
func (c *Correlator) Destroy() error {
	var err error
	c.destroyOnce.Do(func() {
		c.destroyed.Store(true)
		c.fail(errors.ErrTransportClosed)
		select {
		case <-c.done:
			// Already reaped.
			return
		default:
		}
		err = multierr.Combine(c.proc.Stdin().Close(), c.proc.Kill())
	})
	return err
}

// Done is closed once the engine output has ended and the process has been reaped.
func (c *Correlator) Done() <-chan struct{} {
	return c.done
}

// Pid returns the engine process id.
func (c *Correlator) Pid() int {
	return c.proc.Pid()
}

func (c *Correlator) send(ctx context.Context, cmd string, timed bool) ([]string, error) {
	c.requests.Inc(1)
	sw := c.latency.Start()
	defer sw.Stop()

	p := newPending(cmd)

	c.mu.Lock()
	if c.closed != nil {
		c.mu.Unlock()
		return nil, c.closed
	}
	c.queue = append(c.queue, p)
	writeNow := len(c.queue) == 1
	if writeNow {
		p.written = true
	}
	c.mu.Unlock()

	c.logger.Debugw("engine request", "command", cmd, "queued", !writeNow)
	if writeNow {
		c.write(p)
	}

	return c.wait(ctx, p, timed)
}

func (c *Correlator) wait(ctx context.Context, p *pending, timed bool) ([]string, error) {
	select {
	case <-p.done:
		return p.lines, p.err
	case <-ctx.Done():
	}

	c.mu.Lock()
	select {
	case <-p.done:
		c.mu.Unlock()
		return p.lines, p.err
	default:
	}
	if !p.written {
		c.remove(p)
	}
	// A written command keeps its place at the head until its prompt arrives; its output is
	// dropped so that it cannot be attributed to the next command.
	c.mu.Unlock()

	if timed && ctx.Err() == context.DeadlineExceeded {
		c.timeouts.Inc(1)
		c.logger.Warnw("engine request timed out", "command", p.cmd, "timeout", c.timeout)
		return nil, &errors.RequestTimeoutError{Command: p.cmd, Timeout: c.timeout}
	}
	return nil, ctx.Err()
}

// remove is called with mu held.
func (c *Correlator) remove(p *pending) {
	for i, q := range c.queue {
		if q == p {
			c.queue = append(c.queue[:i], c.queue[i+1:]...)
			return
		}
	}
}

func (c *Correlator) write(p *pending) {
	if err := c.channel.Send(p.cmd); err != nil {
		c.logger.Warnw("writing to engine failed", "command", p.cmd, "error", err)
		c.fail(fmt.Errorf("%w: %v", errors.ErrTransportClosed, err))
	}
}

func (c *Correlator) readLoop() {
	for line := range c.channel.Lines() {
		c.dispatch(line)
	}

	cause := errors.ErrTransportClosed
	if err := c.channel.Err(); err != nil {
		cause = fmt.Errorf("%w: %v", errors.ErrTransportClosed, err)
	}
	c.fail(cause)

	waitErr := c.proc.Wait()
	c.logger.Infow("engine exited", "pid", c.proc.Pid(), "error", waitErr)
	close(c.done)

	if !c.destroyed.Load() && c.onExit != nil {
		c.onExit()
	}
}

func (c *Correlator) dispatch(line string) {
	c.mu.Lock()
	if len(c.queue) == 0 || !c.queue[0].written {
		c.mu.Unlock()
		if c.onUnsolicited != nil {
			c.onUnsolicited(line)
		}
		return
	}

	head := c.queue[0]
	head.lines = append(head.lines, line)
	if !replproto.IsPrompt(line) {
		c.mu.Unlock()
		return
	}

	c.queue = c.queue[1:]
	head.complete(nil)

	var next *pending
	if len(c.queue) > 0 {
		next = c.queue[0]
		next.written = true
	}
	c.mu.Unlock()

	if next != nil {
		c.write(next)
	}
}

// fail completes every outstanding command with err and rejects later ones.
func (c *Correlator) fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed == nil {
		c.closed = err
	}
	for _, p := range c.queue {
		p.lines = nil
		p.complete(c.closed)
	}
	c.queue = nil
}
