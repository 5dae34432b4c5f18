package controller

import (
	debugadapter "github.com/uber/perl-dap/src/pdap/controller/debug-adapter"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(debugadapter.New),
)
