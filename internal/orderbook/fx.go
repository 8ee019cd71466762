package orderbook

import "go.uber.org/fx"

var Module = fx.Module("orderbook",
	fx.Provide(NewRepository),
	fx.Provide(NewService),
)
