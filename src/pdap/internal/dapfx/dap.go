// Package dapfx serves Debug Adapter Protocol connections, over TCP or over the process's
// standard streams.
package dapfx

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"sync"

	"github.com/gofrs/uuid"
	"github.com/google/go-dap"
	"github.com/uber/perl-dap/src/pdap/internal/serverinfofile"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	_configKeyAddress = "dap.address"
	_outputKey        = "dap-address"

	// AddressStdio serves a single client over stdin and stdout. The application stops when
	// that client goes away.
	AddressStdio = "stdio"
)

// Module is an fx module to handle DAP connections.
var Module = fx.Provide(New)

// DAPModule represents a module to manage DAP connections.
type DAPModule interface {
	OnStart(ctx context.Context) error
	OnStop(ctx context.Context) error
	ServeStream(ctx context.Context, r io.Reader, w io.Writer) error
	RegisterConnectionManager(connectionManager ConnectionManager) error
}

// Router handles the messages of one connection, in the order they arrive.
type Router interface {
	HandleMessage(ctx context.Context, msg dap.Message)
	// HandleInvalid is called for a request that could not be decoded, so that it can still be answered.
	HandleInvalid(ctx context.Context, seq int, command string, err error)
	UUID() uuid.UUID
}

// ConnectionManager will manage each active connection and its corresponding Router throughout the lifecycle of a connection.
type ConnectionManager interface {
	NewConnection(ctx context.Context, w io.Writer) (router Router, err error)
	RemoveConnection(ctx context.Context, id uuid.UUID)
}

type module struct {
	Address string `json:"address"`

	connectionMgr  ConnectionManager
	ln             net.Listener
	logger         *zap.SugaredLogger
	serverInfoFile serverinfofile.ServerInfoFile
	shutdowner     fx.Shutdowner

	stdin     io.Reader
	stdout    io.Writer
	stdioDone chan struct{}

	wg    sync.WaitGroup
	mu    sync.Mutex
	conns map[net.Conn]struct{}
}

// Params define values to be used by the DAP module.
type Params struct {
	fx.In

	Config         config.Provider
	Lifecycle      fx.Lifecycle
	Logger         *zap.SugaredLogger
	ServerInfoFile serverinfofile.ServerInfoFile
	Shutdowner     fx.Shutdowner `optional:"true"`
}

// New creates a new server to handle DAP connections on the configured address.
func New(p Params) (DAPModule, error) {
	if p.Lifecycle == nil || p.Config == nil {
		return nil, errors.New("required parameters are missing")
	}

	m := &module{
		logger:         p.Logger,
		serverInfoFile: p.ServerInfoFile,
		shutdowner:     p.Shutdowner,
		stdin:          os.Stdin,
		stdout:         os.Stdout,
		conns:          make(map[net.Conn]struct{}),
	}

	if err := m.processConfig(p.Config); err != nil {
		return nil, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: m.OnStart,
		OnStop:  m.OnStop,
	})

	return m, nil
}

// OnStart begins handling incoming connections.
func (m *module) OnStart(ctx context.Context) error {
	if m.Address == AddressStdio {
		m.stdioDone = make(chan struct{})
		go m.serveStdio()
		return nil
	}

	if err := m.setup(); err != nil {
		return err
	}

	address := m.ln.Addr().String()
	if err := m.serverInfoFile.UpdateField(_outputKey, address); err != nil {
		m.ln.Close()
		return fmt.Errorf("publishing listen address: %w", err)
	}
	m.logger.Warnw("started DAP inbound", zap.String("address", address))

	m.wg.Add(1)
	go m.start()
	return nil
}

// OnStop closes the listener and every open connection, then waits for their handlers.
func (m *module) OnStop(ctx context.Context) error {
	if m.stdioDone != nil {
		// A blocked read on stdin cannot be interrupted; give the client until the deadline.
		select {
		case <-m.stdioDone:
		case <-ctx.Done():
		}
		return nil
	}

	var err error
	if m.ln != nil {
		err = m.ln.Close()
	}

	m.mu.Lock()
	for conn := range m.conns {
		conn.Close()
	}
	m.mu.Unlock()

	m.wg.Wait()
	return err
}

// ServeStream reads messages from r until it ends and routes them to the connection's router.
// Responses and events are written to w.
func (m *module) ServeStream(ctx context.Context, r io.Reader, w io.Writer) error {
	if m.connectionMgr == nil {
		m.logger.Errorf("cannot serve connection, no connection manager set")
		return errors.New("cannot serve connection, no connection manager set")
	}

	router, err := m.connectionMgr.NewConnection(ctx, w)
	if err != nil {
		return err
	}
	m.logger.Infow("client connected", zap.Stringer("uuid", router.UUID()))

	defer func() {
		// Cleanup after connection.
		m.connectionMgr.RemoveConnection(ctx, router.UUID())
		m.logger.Infow("client disconnected", zap.Stringer("uuid", router.UUID()))
	}()

	reader := bufio.NewReader(r)
	for {
		msg, err := dap.ReadProtocolMessage(reader)
		if err != nil {
			var fieldErr *dap.DecodeProtocolMessageFieldError
			if errors.As(err, &fieldErr) {
				router.HandleInvalid(ctx, fieldErr.Seq, fieldErr.FieldValue, err)
				continue
			}
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrClosedPipe) || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("reading DAP message: %w", err)
		}
		router.HandleMessage(ctx, msg)
	}
}

// RegisterConnectionManager sets the connection manager, which keeps track of current active connections and provides a Router implementation.
func (m *module) RegisterConnectionManager(connectionMgr ConnectionManager) error {
	if m.connectionMgr != nil {
		return errors.New("cannot register a duplicate connection manager")
	}
	m.connectionMgr = connectionMgr
	return nil
}

// setup should be called after creation of a new module to open the listener.
func (m *module) setup() error {
	if m.Address == "" {
		return errors.New("setup called before address is set")
	}

	addr, err := net.ResolveTCPAddr("tcp", m.Address)
	if err != nil {
		return err
	}

	m.ln, err = net.ListenTCP("tcp", addr)
	return err
}

// start accepts connections until the listener is closed.
func (m *module) start() {
	defer m.wg.Done()

	for {
		conn, err := m.ln.Accept()
		if err != nil {
			if !errors.Is(err, net.ErrClosed) {
				m.logger.Errorw("accepting DAP connection", "error", err)
			}
			return
		}

		m.mu.Lock()
		m.conns[conn] = struct{}{}
		m.mu.Unlock()

		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			defer func() {
				m.mu.Lock()
				delete(m.conns, conn)
				m.mu.Unlock()
				conn.Close()
			}()

			if err := m.ServeStream(context.Background(), conn, conn); err != nil {
				m.logger.Warnw("serving DAP connection", "remote", conn.RemoteAddr().String(), "error", err)
			}
		}()
	}
}

// serveStdio serves the single client on the standard streams and then stops the application.
func (m *module) serveStdio() {
	defer close(m.stdioDone)

	m.logger.Infow("serving DAP over standard streams")
	if err := m.ServeStream(context.Background(), m.stdin, m.stdout); err != nil {
		m.logger.Errorw("serving DAP over standard streams", "error", err)
	}

	if m.shutdowner != nil {
		if err := m.shutdowner.Shutdown(); err != nil {
			m.logger.Errorw("shutting down after the client left", "error", err)
		}
	}
}

// processConfig will parse the configuration for any values required by this module.
func (m *module) processConfig(cfg config.Provider) error {
	val := cfg.Get(_configKeyAddress)
	if err := val.Populate(&m.Address); err != nil {
		// incorrectly formatted config
		return fmt.Errorf("getting config field %q: %w", _configKeyAddress, err)
	}

	if m.Address == "" {
		// yaml is missing either the key or value
		return fmt.Errorf("missing field %q in config", _configKeyAddress)
	}

	return nil
}
