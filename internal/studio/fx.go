package studio

import (
	"github.com/studiolegale/lexora/internal/studio/service"
	"go.uber.org/fx"
)

var Module = fx.Module("studio.service",
	fx.Provide(service.NewService),
)
