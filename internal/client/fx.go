package client

import "go.uber.org/fx"

var Module = fx.Module("client.repository",
	fx.Provide(NewRepository),
)
