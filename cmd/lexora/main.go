// @title           Lexora API
// @version         1.0
// @description     Studio legale practice management and invoicing API

// @host      localhost:8080
// @BasePath  /api
// @Schemes   http

package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/studiolegale/lexora/internal/casefile"
	"github.com/studiolegale/lexora/internal/client"
	"github.com/studiolegale/lexora/internal/clock"
	"github.com/studiolegale/lexora/internal/config"
	"github.com/studiolegale/lexora/internal/expense"
	"github.com/studiolegale/lexora/internal/invoice"
	"github.com/studiolegale/lexora/internal/observability/logger"
	"github.com/studiolegale/lexora/internal/seed"
	"github.com/studiolegale/lexora/internal/server"
	"github.com/studiolegale/lexora/internal/store"
	"github.com/studiolegale/lexora/internal/studio"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var version = "dev"

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		clock.Module,
		fx.Provide(RegisterSnowflake),
		store.Module,
		fx.Invoke(func(st *store.Store, log *zap.Logger) error {
			return seed.EnsureDefaults(st, log)
		}),

		client.Module,
		casefile.Module,
		expense.Module,
		invoice.Module,
		studio.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake(cfg config.Config) *snowflake.Node {
	node, err := snowflake.NewNode(cfg.MachineID)
	if err != nil {
		panic(err)
	}
	return node
}
