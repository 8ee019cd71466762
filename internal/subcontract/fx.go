package subcontract

import "go.uber.org/fx"

var Module = fx.Module("subcontract",
	fx.Provide(NewRepository),
	fx.Provide(NewService),
)
