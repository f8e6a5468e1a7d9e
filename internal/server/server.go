package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	casedomain "github.com/studiolegale/lexora/internal/casefile/domain"
	clientdomain "github.com/studiolegale/lexora/internal/client/domain"
	"github.com/studiolegale/lexora/internal/config"
	expensedomain "github.com/studiolegale/lexora/internal/expense/domain"
	invoicedomain "github.com/studiolegale/lexora/internal/invoice/domain"
	"github.com/studiolegale/lexora/internal/observability/logger"
	studiodomain "github.com/studiolegale/lexora/internal/studio/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) {
		s.RegisterRoutes()
	}),
	fx.Invoke(RunHTTP),
)

type Server struct {
	cfg    config.Config
	log    *zap.Logger
	engine *gin.Engine

	clientSvc  clientdomain.Service
	caseSvc    casedomain.Service
	expenseSvc expensedomain.Service
	invoiceSvc invoicedomain.Service
	studioSvc  studiodomain.Service
}

type Params struct {
	fx.In

	Config config.Config
	Log    *zap.Logger
	Engine *gin.Engine

	ClientSvc  clientdomain.Service
	CaseSvc    casedomain.Service
	ExpenseSvc expensedomain.Service
	InvoiceSvc invoicedomain.Service
	StudioSvc  studiodomain.Service
}

func NewEngine(cfg config.Config) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(logger.GinMiddleware(logger.MiddlewareConfig{
		SkipPaths: []string{"/healthz"},
	}))
	return engine
}

func NewServer(p Params) *Server {
	return &Server{
		cfg:        p.Config,
		log:        p.Log.Named("server"),
		engine:     p.Engine,
		clientSvc:  p.ClientSvc,
		caseSvc:    p.CaseSvc,
		expenseSvc: p.ExpenseSvc,
		invoiceSvc: p.InvoiceSvc,
		studioSvc:  p.StudioSvc,
	}
}

func (s *Server) RegisterRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.engine.Group("/api")

	clients := api.Group("/clients")
	clients.GET("", s.ListClients)
	clients.POST("", s.CreateClient)
	clients.GET("/:id", s.GetClientByID)
	clients.PATCH("/:id", s.UpdateClient)
	clients.DELETE("/:id", s.DeleteClient)

	cases := api.Group("/cases")
	cases.GET("", s.ListCases)
	cases.POST("", s.CreateCase)
	cases.GET("/numbering/preview", s.PreviewCaseNumber)
	cases.GET("/:id", s.GetCaseByID)
	cases.PATCH("/:id", s.UpdateCase)
	cases.DELETE("/:id", s.DeleteCase)

	expenses := api.Group("/expenses")
	expenses.GET("", s.ListExpenses)
	expenses.POST("", s.CreateExpense)
	expenses.GET("/:id", s.GetExpenseByID)
	expenses.PATCH("/:id", s.UpdateExpense)
	expenses.DELETE("/:id", s.DeleteExpense)

	invoices := api.Group("/invoices")
	invoices.GET("", s.ListInvoices)
	invoices.POST("", s.CreateInvoice)
	invoices.GET("/numbering/preview", s.PreviewInvoiceNumber)
	invoices.GET("/:id", s.GetInvoiceByID)
	invoices.PATCH("/:id", s.UpdateInvoice)
	invoices.DELETE("/:id", s.DeleteInvoice)
	invoices.POST("/:id/lines", s.AddInvoiceLine)
	invoices.DELETE("/:id/lines/:lineId", s.RemoveInvoiceLine)
	invoices.POST("/:id/payments", s.AddInvoicePayment)
	invoices.DELETE("/:id/payments/:paymentId", s.RemoveInvoicePayment)
	invoices.POST("/:id/expenses/:expenseId", s.AttachInvoiceExpense)
	invoices.GET("/:id/render", s.RenderInvoice)

	settings := api.Group("/settings")
	settings.GET("", s.GetSettings)
	settings.PATCH("", s.UpdateSettings)
	settings.PATCH("/numbering/:kind", s.UpdateNumbering)
}

// RunHTTP starts the listener on fx startup and drains it on shutdown.
func RunHTTP(lc fx.Lifecycle, s *Server, shutdowner fx.Shutdowner) {
	srv := &http.Server{
		Addr:    s.cfg.HTTPAddr,
		Handler: s.engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			s.log.Info("http server starting", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					s.log.Error("http server stopped", zap.Error(err))
					_ = shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	})
}
