package dapfx

import (
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/google/go-dap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber/perl-dap/idl/mock/configmock"
	"github.com/uber/perl-dap/idl/mock/fxmock"
	"github.com/uber/perl-dap/src/pdap/internal/serverinfofile/serverinfofilemock"
	"go.uber.org/config"
	"go.uber.org/fx/fxtest"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	lifecycleMock := fxtest.NewLifecycle(t)

	tests := []struct {
		name    string
		params  Params
		wantErr bool
	}{
		{
			name:    "missing required params",
			params:  Params{},
			wantErr: true,
		},
		{
			name: "invalid config",
			params: Params{
				Lifecycle: lifecycleMock,
				Config:    newMockConfigProvider(ctrl, "missingKey"),
			},
			wantErr: true,
		},
		{
			name: "all required params are present",
			params: Params{
				Lifecycle: lifecycleMock,
				Config:    newMockConfigProvider(ctrl, "valid"),
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.params)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRegisterConnectionManager(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := module{}

	mockConnectionManager := NewMockConnectionManager(ctrl)

	// first call should return no error
	err := m.RegisterConnectionManager(mockConnectionManager)
	assert.NoError(t, err)

	// duplicate call should return error
	err = m.RegisterConnectionManager(mockConnectionManager)
	assert.Error(t, err)
}

func TestServeStream(t *testing.T) {
	ctx := context.Background()
	id, _ := uuid.NewV4()

	t.Run("no connection manager registered", func(t *testing.T) {
		m := module{logger: zap.NewNop().Sugar()}
		assert.Error(t, m.ServeStream(ctx, strings.NewReader(""), io.Discard))
	})

	t.Run("failed NewConnection", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mgr := NewMockConnectionManager(ctrl)
		mgr.EXPECT().NewConnection(gomock.Any(), gomock.Any()).Return(nil, errors.New("sample error"))

		m := module{logger: zap.NewNop().Sugar(), connectionMgr: mgr}
		assert.Error(t, m.ServeStream(ctx, strings.NewReader(""), io.Discard))
	})

	t.Run("routes messages until the stream ends", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		router := NewMockRouter(ctrl)
		router.EXPECT().UUID().Return(id).AnyTimes()
		mgr := NewMockConnectionManager(ctrl)
		mgr.EXPECT().NewConnection(gomock.Any(), io.Discard).Return(router, nil)

		gomock.InOrder(
			router.EXPECT().HandleMessage(gomock.Any(), gomock.Any()).Do(func(_ context.Context, msg dap.Message) {
				req, ok := msg.(*dap.InitializeRequest)
				require.True(t, ok)
				assert.Equal(t, "vscode", req.Arguments.ClientID)
			}),
			router.EXPECT().HandleInvalid(gomock.Any(), 2, "frobnicate", gomock.Any()),
			router.EXPECT().HandleMessage(gomock.Any(), gomock.AssignableToTypeOf(&dap.ThreadsRequest{})),
			mgr.EXPECT().RemoveConnection(ctx, id),
		)

		var in strings.Builder
		require.NoError(t, dap.WriteProtocolMessage(&in, &dap.InitializeRequest{
			Request:   dap.Request{ProtocolMessage: dap.ProtocolMessage{Seq: 1, Type: "request"}, Command: "initialize"},
			Arguments: dap.InitializeRequestArguments{ClientID: "vscode"},
		}))
		require.NoError(t, dap.WriteBaseMessage(&in, []byte(`{"seq":2,"type":"request","command":"frobnicate"}`)))
		require.NoError(t, dap.WriteProtocolMessage(&in, &dap.ThreadsRequest{
			Request: dap.Request{ProtocolMessage: dap.ProtocolMessage{Seq: 3, Type: "request"}, Command: "threads"},
		}))

		m := module{logger: zap.NewNop().Sugar(), connectionMgr: mgr}
		assert.NoError(t, m.ServeStream(ctx, strings.NewReader(in.String()), io.Discard))
	})

	t.Run("broken framing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		router := NewMockRouter(ctrl)
		router.EXPECT().UUID().Return(id).AnyTimes()
		mgr := NewMockConnectionManager(ctrl)
		mgr.EXPECT().NewConnection(gomock.Any(), gomock.Any()).Return(router, nil)
		mgr.EXPECT().RemoveConnection(ctx, id)

		m := module{logger: zap.NewNop().Sugar(), connectionMgr: mgr}
		assert.Error(t, m.ServeStream(ctx, strings.NewReader("Content-Length: x\r\n\r\n{}"), io.Discard))
	})
}

func TestSetup(t *testing.T) {
	m := module{
		logger: zap.NewNop().Sugar(),
	}
	err := m.setup()
	assert.Error(t, err)

	m = module{Address: "127.0.0.1:0"}
	err = m.setup()
	require.NoError(t, err)
	assert.NoError(t, m.ln.Close())
}

func TestProcessConfig(t *testing.T) {
	tests := []struct {
		name        string
		configKey   string
		wantErr     bool
		errorString string
	}{
		{
			name:      "valid configuration",
			configKey: "valid",
			wantErr:   false,
		},
		{
			name:        "missing address key",
			configKey:   "missingKey",
			wantErr:     true,
			errorString: "missing field \"dap.address\" in config",
		},
		{
			name:        "missing address value",
			configKey:   "missingValue",
			wantErr:     true,
			errorString: "missing field \"dap.address\" in config",
		},
		{
			name:      "incorrectly formatted entry",
			configKey: "formatProblem",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gomockCtrl := gomock.NewController(t)
			cfg := newMockConfigProvider(gomockCtrl, tt.configKey)

			m := module{
				logger: zap.NewNop().Sugar(),
			}
			err := m.processConfig(cfg)

			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			if tt.errorString != "" {
				assert.Equal(t, tt.errorString, err.Error())
			}
		})
	}
}

func TestOnStartTCP(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()
	id, _ := uuid.NewV4()

	infoFileMock := serverinfofilemock.NewMockServerInfoFile(ctrl)
	var published string
	infoFileMock.EXPECT().UpdateField(_outputKey, gomock.Any()).DoAndReturn(func(key, value string) error {
		published = value
		return nil
	})

	received := make(chan struct{})
	router := NewMockRouter(ctrl)
	router.EXPECT().UUID().Return(id).AnyTimes()
	router.EXPECT().HandleMessage(gomock.Any(), gomock.AssignableToTypeOf(&dap.ThreadsRequest{})).Do(func(context.Context, dap.Message) {
		close(received)
	})
	mgr := NewMockConnectionManager(ctrl)
	mgr.EXPECT().NewConnection(gomock.Any(), gomock.Any()).Return(router, nil)
	mgr.EXPECT().RemoveConnection(gomock.Any(), id)

	m := &module{
		Address:        "127.0.0.1:0",
		serverInfoFile: infoFileMock,
		logger:         zap.NewNop().Sugar(),
		conns:          make(map[net.Conn]struct{}),
	}
	require.NoError(t, m.RegisterConnectionManager(mgr))
	require.NoError(t, m.OnStart(ctx))

	conn, err := net.Dial("tcp", published)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, dap.WriteProtocolMessage(conn, &dap.ThreadsRequest{
		Request: dap.Request{ProtocolMessage: dap.ProtocolMessage{Seq: 1, Type: "request"}, Command: "threads"},
	}))

	select {
	case <-received:
	case <-time.After(5 * time.Second):
		require.FailNow(t, "request was not routed")
	}

	// The open connection is closed by the server on stop.
	assert.NoError(t, m.OnStop(ctx))
}

func TestOnStartStdio(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()
	id, _ := uuid.NewV4()

	router := NewMockRouter(ctrl)
	router.EXPECT().UUID().Return(id).AnyTimes()
	mgr := NewMockConnectionManager(ctrl)
	mgr.EXPECT().NewConnection(gomock.Any(), gomock.Any()).Return(router, nil)
	mgr.EXPECT().RemoveConnection(gomock.Any(), id)

	shutdowner := fxmock.NewMockShutdowner(ctrl)
	shutdowner.EXPECT().Shutdown().Return(nil)

	stdinR, stdinW := io.Pipe()
	m := &module{
		Address:    AddressStdio,
		logger:     zap.NewNop().Sugar(),
		shutdowner: shutdowner,
		stdin:      stdinR,
		stdout:     io.Discard,
	}
	require.NoError(t, m.RegisterConnectionManager(mgr))
	require.NoError(t, m.OnStart(ctx))

	// The client going away ends the application.
	require.NoError(t, stdinW.Close())
	stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	assert.NoError(t, m.OnStop(stopCtx))
	select {
	case <-m.stdioDone:
	default:
		assert.Fail(t, "stdio connection still served")
	}
}

func TestOnStartInvalidAddress(t *testing.T) {
	m := module{
		Address: "not an address",
		logger:  zap.NewNop().Sugar(),
	}
	assert.Error(t, m.OnStart(context.Background()))
}

func newMockConfigProvider(ctrl *gomock.Controller, configKey string) config.Provider {
	configs := map[string]string{
		"valid": `
dap:
  address: 127.0.0.1:4711`,
		"missingKey": `
dap:
  other: value`,
		"missingValue": `
dap:
  address:`,
		"formatProblem": `
dap:
  address:
    key: val`,
	}

	yamlProv, _ := config.NewYAML(config.Source(strings.NewReader(configs[configKey])))
	configProviderMock := configmock.NewMockProvider(ctrl)
	configProviderMock.EXPECT().Get(_configKeyAddress).Return(yamlProv.Get(_configKeyAddress)).AnyTimes()
	return configProviderMock
}
