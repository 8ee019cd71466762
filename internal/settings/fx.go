package settings

import "go.uber.org/fx"

var Module = fx.Module("settings",
	fx.Provide(NewRepository),
	fx.Provide(NewService),
)
