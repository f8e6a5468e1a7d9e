package invoice

import (
	"github.com/studiolegale/lexora/internal/invoice/render"
	"github.com/studiolegale/lexora/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(render.NewRenderer),
	fx.Provide(service.NewService),
)
