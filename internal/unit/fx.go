package unit

import "go.uber.org/fx"

var Module = fx.Module("unit.repository",
	fx.Provide(NewRepository),
)
