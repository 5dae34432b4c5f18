// Package debugadapter implements the adapter's DAP inbound: one router per client connection.
package debugadapter

import (
	"context"
	"fmt"
	"io"

	"github.com/gofrs/uuid"
	tally "github.com/uber-go/tally/v4"
	controller "github.com/uber/perl-dap/src/pdap/controller/debug-adapter"
	"github.com/uber/perl-dap/src/pdap/entity"
	ideclient "github.com/uber/perl-dap/src/pdap/gateway/ide-client"
	"github.com/uber/perl-dap/src/pdap/internal/dapfx"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Handler accepts DAP connections and routes their requests to the controller.
type Handler interface {
	dapfx.ConnectionManager
}

// Params are the dependencies of the handler.
type Params struct {
	fx.In

	Controller controller.Controller
	DAPModule  dapfx.DAPModule
	IdeGateway ideclient.Gateway
	Logger     *zap.SugaredLogger
	Stats      tally.Scope
}

type dapConnectionManager struct {
	ctrl       controller.Controller
	ideGateway ideclient.Gateway
	logger     *zap.SugaredLogger
	stats      tally.Scope
}

// New constructs the handler and registers it with the DAP module.
func New(p Params) (Handler, error) {
	c := &dapConnectionManager{
		ctrl:       p.Controller,
		ideGateway: p.IdeGateway,
		logger:     p.Logger,
		stats:      p.Stats.SubScope("dap"),
	}
	if err := p.DAPModule.RegisterConnectionManager(c); err != nil {
		return nil, err
	}
	return c, nil
}

// NewConnection creates a session for a new client and returns a router that includes its UUID.
func (c *dapConnectionManager) NewConnection(ctx context.Context, w io.Writer) (dapfx.Router, error) {
	id, err := c.ctrl.InitSession(ctx, w)
	if err != nil {
		return nil, fmt.Errorf("error while creating new connection: %w", err)
	}

	return &dapRouter{
		debugAdapter: c.ctrl,
		ideGateway:   c.ideGateway,
		logger:       c.logger.With("session", id.String()),
		uuid:         id,
		stats:        c.stats,
	}, nil
}

// RemoveConnection cleans up a closed connection.
func (c *dapConnectionManager) RemoveConnection(ctx context.Context, id uuid.UUID) {
	// Ensure the program is stopped even if no disconnect request was received.
	ctx = context.WithValue(ctx, entity.SessionContextKey, id)
	if err := c.ctrl.EndSession(ctx, id); err != nil {
		c.logger.Warnw("ending session", "session", id.String(), "error", err)
	}
}
