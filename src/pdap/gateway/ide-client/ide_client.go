package notifier

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/gofrs/uuid"
	"github.com/google/go-dap"
	"github.com/uber/perl-dap/src/pdap/entity"
	"github.com/uber/perl-dap/src/pdap/mapper"
	"go.uber.org/zap"
)

const _errSendToClient = "sending response/event to IDE: %w"

// Gateway is used to send outbound responses and events to the IDE.
// All calls to the gateway should include a context with a session UUID, which will be used to route outbound messages to the correct IDE session.
type Gateway interface {
	// Methods used to manage the client for each session.

	// RegisterClient registers a new client with the gateway. Should be called each time a new IDE connection is accepted.
	RegisterClient(ctx context.Context, id uuid.UUID, w io.Writer) error
	// DeregisterClient removes a client from the gateway. Should be called each time an IDE connection is closed.
	DeregisterClient(ctx context.Context, id uuid.UUID) error

	// Respond sends a response. Seq and Type are assigned by the gateway.
	Respond(ctx context.Context, resp dap.ResponseMessage) error
	// Event sends an event. Seq and Type are assigned by the gateway.
	Event(ctx context.Context, ev dap.EventMessage) error

	Initialized(ctx context.Context) error
	Stopped(ctx context.Context, reason entity.StopReason, hitBreakpointIDs []int) error
	Terminated(ctx context.Context) error
	Exited(ctx context.Context, exitCode int) error
	Output(ctx context.Context, category entity.OutputCategory, output string) error
	Breakpoint(ctx context.Context, reason entity.BreakpointEventReason, bp dap.Breakpoint) error
	LoadedSource(ctx context.Context, reason entity.LoadedSourceReason, source dap.Source) error

	// GetOutputWriter returns an io.Writer whose writes become output events of the given category.
	// Do not store or use across sessions.
	GetOutputWriter(ctx context.Context, category entity.OutputCategory) (io.Writer, error)
}

type client struct {
	mu  sync.Mutex
	w   io.Writer
	seq int
}

// send is the only writer of c.w, so messages never interleave on the wire.
func (c *client) send(msg dap.Message, stamp func(seq int)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	stamp(c.seq)
	return dap.WriteProtocolMessage(c.w, msg)
}

type gateway struct {
	clients   map[uuid.UUID]*client
	clientsMu sync.Mutex
	logger    *zap.Logger
}

// New returns a Gateway for sending IDE responses and events.
func New(logger *zap.Logger) Gateway {
	return &gateway{
		clients: make(map[uuid.UUID]*client),
		logger:  logger,
	}
}

func (g *gateway) RegisterClient(ctx context.Context, id uuid.UUID, w io.Writer) error {
	g.clientsMu.Lock()
	defer g.clientsMu.Unlock()

	g.clients[id] = &client{w: w}
	return nil
}

func (g *gateway) DeregisterClient(ctx context.Context, id uuid.UUID) error {
	g.clientsMu.Lock()
	defer g.clientsMu.Unlock()

	delete(g.clients, id)
	return nil
}

func (g *gateway) Respond(ctx context.Context, resp dap.ResponseMessage) error {
	c, err := g.getClient(ctx)
	if err != nil {
		return fmt.Errorf(_errSendToClient, err)
	}
	r := resp.GetResponse()
	return c.send(resp, func(seq int) {
		r.Seq = seq
		r.Type = "response"
	})
}

func (g *gateway) Event(ctx context.Context, ev dap.EventMessage) error {
	c, err := g.getClient(ctx)
	if err != nil {
		return fmt.Errorf(_errSendToClient, err)
	}
	e := ev.GetEvent()
	g.logger.Debug("sending event", zap.String("event", e.Event))
	return c.send(ev, func(seq int) {
		e.Seq = seq
		e.Type = "event"
	})
}

func (g *gateway) Initialized(ctx context.Context) error {
	return g.Event(ctx, &dap.InitializedEvent{Event: newEvent("initialized")})
}

func (g *gateway) Stopped(ctx context.Context, reason entity.StopReason, hitBreakpointIDs []int) error {
	return g.Event(ctx, &dap.StoppedEvent{
		Event: newEvent("stopped"),
		Body: dap.StoppedEventBody{
			Reason:            string(reason),
			ThreadId:          entity.ThreadID,
			AllThreadsStopped: true,
			HitBreakpointIds:  hitBreakpointIDs,
		},
	})
}

func (g *gateway) Terminated(ctx context.Context) error {
	return g.Event(ctx, &dap.TerminatedEvent{Event: newEvent("terminated")})
}

func (g *gateway) Exited(ctx context.Context, exitCode int) error {
	return g.Event(ctx, &dap.ExitedEvent{
		Event: newEvent("exited"),
		Body:  dap.ExitedEventBody{ExitCode: exitCode},
	})
}

func (g *gateway) Output(ctx context.Context, category entity.OutputCategory, output string) error {
	return g.Event(ctx, &dap.OutputEvent{
		Event: newEvent("output"),
		Body: dap.OutputEventBody{
			Category: string(category),
			Output:   output,
		},
	})
}

func (g *gateway) Breakpoint(ctx context.Context, reason entity.BreakpointEventReason, bp dap.Breakpoint) error {
	return g.Event(ctx, &dap.BreakpointEvent{
		Event: newEvent("breakpoint"),
		Body: dap.BreakpointEventBody{
			Reason:     string(reason),
			Breakpoint: bp,
		},
	})
}

func (g *gateway) LoadedSource(ctx context.Context, reason entity.LoadedSourceReason, source dap.Source) error {
	return g.Event(ctx, &dap.LoadedSourceEvent{
		Event: newEvent("loadedSource"),
		Body: dap.LoadedSourceEventBody{
			Reason: string(reason),
			Source: source,
		},
	})
}

func (g *gateway) getClient(ctx context.Context) (*client, error) {
	g.clientsMu.Lock()
	defer g.clientsMu.Unlock()

	id, err := mapper.ContextToSessionUUID(ctx)
	if err != nil {
		return nil, err
	}

	c, ok := g.clients[id]
	if !ok {
		return nil, fmt.Errorf("client with id %q not found", id)
	}
	return c, nil
}

func newEvent(name string) dap.Event {
	return dap.Event{Event: name}
}

type outputWriter struct {
	gateway  *gateway
	ctx      context.Context
	category entity.OutputCategory
}

func (g *gateway) GetOutputWriter(ctx context.Context, category entity.OutputCategory) (io.Writer, error) {
	if _, err := g.getClient(ctx); err != nil {
		return nil, fmt.Errorf("getting IDE output writer: %w", err)
	}
	return &outputWriter{gateway: g, ctx: ctx, category: category}, nil
}

func (w *outputWriter) Write(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	if err := w.gateway.Output(w.ctx, w.category, string(p)); err != nil {
		return 0, fmt.Errorf("writing to IDE output writer: %w", err)
	}
	return len(p), nil
}
