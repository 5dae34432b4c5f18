package app

import (
	"context"
	"time"

	tally "github.com/uber-go/tally/v4"
	notifier "github.com/uber/perl-dap/src/pdap/gateway/ide-client"
	"github.com/uber/perl-dap/src/pdap/handler"
	"github.com/uber/perl-dap/src/pdap/internal/clock"
	"github.com/uber/perl-dap/src/pdap/internal/core"
	"github.com/uber/perl-dap/src/pdap/internal/dapfx"
	"github.com/uber/perl-dap/src/pdap/internal/executor"
	"github.com/uber/perl-dap/src/pdap/internal/fs"
	"github.com/uber/perl-dap/src/pdap/internal/serverinfofile"
	"go.uber.org/fx"
)

// Module defines the pdap application module.
var Module = fx.Options(
	handler.Module, // inbounds
	dapfx.Module,
	fs.Module,
	executor.Module,
	serverinfofile.Module,
	core.ConfigModule,
	core.LoggerModule,
	fx.Provide(notifier.New),
	fx.Provide(clock.New),
	fx.Provide(func(lc fx.Lifecycle) tally.Scope {
		rs, closer := tally.NewRootScope(tally.ScopeOptions{
			Tags: map[string]string{
				"service": "pdap",
			},
		}, 1*time.Second)

		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return closer.Close()
			},
		})

		return rs
	}),
	fx.Decorate(decorateEnvContext),
	fx.Decorate(decorateConfigProvider),
	fx.Provide(func() Context {
		return Context{
			Environment:        "local",
			RuntimeEnvironment: "local",
		}
	}),
)
