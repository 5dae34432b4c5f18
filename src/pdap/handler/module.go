package handler

import (
	controller "github.com/uber/perl-dap/src/pdap/controller"
	debugadapter "github.com/uber/perl-dap/src/pdap/controller/debug-adapter"
	handler "github.com/uber/perl-dap/src/pdap/handler/debug-adapter"
	"github.com/uber/perl-dap/src/pdap/repository/session"
	"go.uber.org/fx"
)

// Module provides the debug adapter server into an Fx application.
var Module = fx.Options(
	controller.Module,
	fx.Provide(session.New),
	fx.Provide(handler.New),
	fx.Invoke(outputProcessInfo),
	fx.Invoke(func(h handler.Handler) {}),
	fx.Invoke(func(c debugadapter.Controller) {}),
)
