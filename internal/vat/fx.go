package vat

import "go.uber.org/fx"

var Module = fx.Module("vat",
	fx.Provide(NewRepository),
	fx.Provide(NewService),
)
