package contractor

import "go.uber.org/fx"

var Module = fx.Module("contractor.repository",
	fx.Provide(NewRepository),
)
