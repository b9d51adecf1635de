package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prismpay/prism/internal/config"
	contactdomain "github.com/prismpay/prism/internal/contact/domain"
	destinationdomain "github.com/prismpay/prism/internal/destination/domain"
	"github.com/prismpay/prism/internal/observability"
	obsmiddleware "github.com/prismpay/prism/internal/observability/logger"
	obsmetrics "github.com/prismpay/prism/internal/observability/metrics"
	obstracing "github.com/prismpay/prism/internal/observability/tracing"
	overviewdomain "github.com/prismpay/prism/internal/overview/domain"
	prismdomain "github.com/prismpay/prism/internal/prism/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine         *gin.Engine
	cfg            config.Config
	db             *gorm.DB
	genID          *snowflake.Node
	contactSvc     contactdomain.Service
	destinationSvc destinationdomain.Service
	prismSvc       prismdomain.Service
	overviewSvc    overviewdomain.Service
	display        *config.DisplayConfigHolder
	obsMetrics     *obsmetrics.Metrics
}

type ServerParams struct {
	fx.In

	Gin            *gin.Engine
	Cfg            config.Config
	DB             *gorm.DB
	GenID          *snowflake.Node
	ContactSvc     contactdomain.Service
	DestinationSvc destinationdomain.Service
	PrismSvc       prismdomain.Service
	OverviewSvc    overviewdomain.Service
	Display        *config.DisplayConfigHolder `optional:"true"`
	ObsMetrics     *obsmetrics.Metrics         `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:         p.Gin,
		cfg:            p.Cfg,
		db:             p.DB,
		genID:          p.GenID,
		contactSvc:     p.ContactSvc,
		destinationSvc: p.DestinationSvc,
		prismSvc:       p.PrismSvc,
		overviewSvc:    p.OverviewSvc,
		display:        p.Display,
		obsMetrics:     p.ObsMetrics,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")
	api.Use(s.AdminAuthRequired())

	api.GET("/prisms", s.ListPrisms)
	api.POST("/prisms", s.CreatePrism)
	api.GET("/prisms/:id", s.GetPrism)
	api.PUT("/prisms/:id", s.ReplacePrism)
	api.DELETE("/prisms/:id", s.DeletePrism)
	api.GET("/prisms/:id/member-count", s.PrismMemberCount)
	api.GET("/prisms/:id/primary-account", s.PrismPrimaryAccount)

	api.GET("/contacts", s.ListContacts)
	api.POST("/contacts", s.CreateContact)
	api.GET("/contacts/:id", s.GetContact)
	api.PUT("/contacts/:id", s.UpdateContact)
	api.GET("/contacts/:id/payment-destinations", s.ListContactDestinations)
	api.POST("/contacts/:id/payment-destinations", s.AddContactDestination)
	api.DELETE("/contacts/:id/payment-destinations", s.RemoveContactDestination)
	api.GET("/contacts/:id/prism-count", s.ContactPrismCount)
	api.GET("/contacts/:id/shared-prisms", s.ContactSharedPrisms)

	api.GET("/payment-destinations", s.ListDestinations)
}
