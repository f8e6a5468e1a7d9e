package casefile

import (
	"github.com/studiolegale/lexora/internal/casefile/service"
	"go.uber.org/fx"
)

var Module = fx.Module("casefile.service",
	fx.Provide(service.NewService),
)
