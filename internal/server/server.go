package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/lingora/internal/catalog"
	catalogdomain "github.com/smallbiznis/lingora/internal/catalog/domain"
	"github.com/smallbiznis/lingora/internal/client"
	clientdomain "github.com/smallbiznis/lingora/internal/client/domain"
	"github.com/smallbiznis/lingora/internal/config"
	"github.com/smallbiznis/lingora/internal/contractor"
	contractordomain "github.com/smallbiznis/lingora/internal/contractor/domain"
	"github.com/smallbiznis/lingora/internal/observability"
	obslogger "github.com/smallbiznis/lingora/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/lingora/internal/observability/metrics"
	obstracing "github.com/smallbiznis/lingora/internal/observability/tracing"
	"github.com/smallbiznis/lingora/internal/order"
	orderdomain "github.com/smallbiznis/lingora/internal/order/domain"
	"github.com/smallbiznis/lingora/internal/orderbook"
	bookdomain "github.com/smallbiznis/lingora/internal/orderbook/domain"
	"github.com/smallbiznis/lingora/internal/pricing"
	pricingdomain "github.com/smallbiznis/lingora/internal/pricing/domain"
	"github.com/smallbiznis/lingora/internal/sequence"
	seqdomain "github.com/smallbiznis/lingora/internal/sequence/domain"
	"github.com/smallbiznis/lingora/internal/settings"
	settingsdomain "github.com/smallbiznis/lingora/internal/settings/domain"
	"github.com/smallbiznis/lingora/internal/subcontract"
	subcontractdomain "github.com/smallbiznis/lingora/internal/subcontract/domain"
	"github.com/smallbiznis/lingora/internal/unit"
	unitdomain "github.com/smallbiznis/lingora/internal/unit/domain"
	"github.com/smallbiznis/lingora/internal/vat"
	vatdomain "github.com/smallbiznis/lingora/internal/vat/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	client.Module,
	contractor.Module,
	unit.Module,
	catalog.Module,
	vat.Module,
	settings.Module,
	orderbook.Module,
	pricing.Module,
	sequence.Module,
	order.Module,
	subcontract.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
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

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
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
	pricingHolder  *config.PricingConfigHolder
	clientRepo     clientdomain.Repository
	contractorRepo contractordomain.Repository
	unitRepo       unitdomain.Repository
	catalogRepo    catalogdomain.Repository
	vatSvc         vatdomain.Service
	settingsSvc    settingsdomain.Service
	bookSvc        bookdomain.Service
	pricingSvc     pricingdomain.Service
	sequenceSvc    seqdomain.Service
	orderSvc       orderdomain.Service
	subcontractSvc subcontractdomain.Service
}

type ServerParams struct {
	fx.In

	Gin            *gin.Engine
	Cfg            config.Config
	DB             *gorm.DB
	GenID          *snowflake.Node
	PricingHolder  *config.PricingConfigHolder
	ClientRepo     clientdomain.Repository
	ContractorRepo contractordomain.Repository
	UnitRepo       unitdomain.Repository
	CatalogRepo    catalogdomain.Repository
	VatSvc         vatdomain.Service
	SettingsSvc    settingsdomain.Service
	BookSvc        bookdomain.Service
	PricingSvc     pricingdomain.Service
	SequenceSvc    seqdomain.Service
	OrderSvc       orderdomain.Service
	SubcontractSvc subcontractdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:         p.Gin,
		cfg:            p.Cfg,
		db:             p.DB,
		genID:          p.GenID,
		pricingHolder:  p.PricingHolder,
		clientRepo:     p.ClientRepo,
		contractorRepo: p.ContractorRepo,
		unitRepo:       p.UnitRepo,
		catalogRepo:    p.CatalogRepo,
		vatSvc:         p.VatSvc,
		settingsSvc:    p.SettingsSvc,
		bookSvc:        p.BookSvc,
		pricingSvc:     p.PricingSvc,
		sequenceSvc:    p.SequenceSvc,
		orderSvc:       p.OrderSvc,
		subcontractSvc: p.SubcontractSvc,
	}

	svc.registerRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerRoutes() {
	v1 := s.engine.Group("/v1")

	// -------- Pricing --------
	v1.POST("/pricing/resolve", s.ResolveRate)
	v1.GET("/clients/:id/unit_rates", s.ListSimpleRates)
	v1.PUT("/clients/:id/unit_rates", s.SetSimpleRate)
	v1.DELETE("/unit_rates/:id", s.DeleteSimpleRate)
	v1.GET("/clients/:id/rates", s.ListClientRates)
	v1.POST("/clients/:id/rates", s.CreateClientRate)
	v1.DELETE("/client_rates/:id", s.DeleteClientRate)
	v1.GET("/rates", s.ListGlobalRates)
	v1.POST("/rates", s.CreateGlobalRate)
	v1.DELETE("/rates/:id", s.DeleteGlobalRate)
	v1.GET("/contractors/:id/rates", s.ListContractorRates)
	v1.PUT("/contractors/:id/rates", s.UpsertContractorRate)
	v1.GET("/contractors/:id/rate", s.LookupContractorRate)

	// -------- VAT --------
	v1.GET("/services/:id/vat_rules", s.ListVatRules)
	v1.PUT("/services/:id/vat_rules", s.UpsertVatRule)
	v1.DELETE("/vat_rules/:id", s.DeleteVatRule)
	v1.POST("/vat/classify", s.ClassifyClient)
	v1.POST("/vat/preview", s.PreviewVat)
	v1.GET("/vat/codes", s.ListVatCodes)

	// -------- Sequences --------
	v1.GET("/sequences/next", s.PeekSequence)

	// -------- Clients --------
	v1.GET("/clients", s.ListClients)
	v1.POST("/clients", s.CreateClient)
	v1.GET("/clients/:id", s.GetClientByID)
	v1.PUT("/clients/:id", s.UpdateClient)
	v1.DELETE("/clients/:id", s.DeleteClient)

	// -------- Contractors --------
	v1.GET("/contractors", s.ListContractors)
	v1.POST("/contractors", s.CreateContractor)
	v1.GET("/contractors/:id", s.GetContractorByID)
	v1.PUT("/contractors/:id", s.UpdateContractor)
	v1.DELETE("/contractors/:id", s.DeleteContractor)

	// -------- Units / Services --------
	v1.GET("/units", s.ListUnits)
	v1.POST("/units", s.CreateUnit)
	v1.DELETE("/units/:id", s.DeleteUnit)
	v1.GET("/services", s.ListServices)
	v1.POST("/services", s.CreateService)
	v1.PUT("/services/:id", s.UpdateService)
	v1.DELETE("/services/:id", s.DeleteService)

	// -------- Order books --------
	v1.GET("/order_books", s.ListOrderBooks)
	v1.POST("/order_books", s.CreateOrderBook)
	v1.GET("/order_books/:id", s.GetOrderBookByID)
	v1.PUT("/order_books/:id", s.UpdateOrderBook)
	v1.DELETE("/order_books/:id", s.DeleteOrderBook)
	v1.POST("/order_books/:id/share_token", s.RotateShareToken)
	v1.GET("/order_books/:id/repertorium", s.GetRepertorium)
	v1.GET("/order_books/:id/orders", s.ListOrders)
	v1.GET("/order_books/:id/next_number", s.PeekOrderNumber)

	// -------- Orders / invoices --------
	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders/:id", s.GetOrderByID)
	v1.PUT("/orders/:id", s.UpdateOrder)
	v1.DELETE("/orders/:id", s.DeleteOrder)
	v1.GET("/orders/:id/rate", s.ResolveOrderRate)
	v1.POST("/orders/:id/invoice", s.IssueInvoice)
	v1.DELETE("/orders/:id/invoice", s.ClearInvoice)
	v1.POST("/invoices", s.IssueInvoices)

	// -------- Subcontracts --------
	v1.GET("/subcontracts", s.ListSubcontracts)
	v1.POST("/subcontracts", s.CreateSubcontract)
	v1.GET("/subcontracts/:id", s.GetSubcontractByID)
	v1.PUT("/subcontracts/:id", s.UpdateSubcontract)
	v1.DELETE("/subcontracts/:id", s.DeleteSubcontract)
	v1.GET("/orders/:id/subcontracts", s.ListOrderSubcontracts)

	// -------- Settings --------
	v1.GET("/settings", s.ListSettings)
	v1.GET("/settings/:key", s.GetSetting)
	v1.PUT("/settings/:key", s.SetSetting)
	v1.DELETE("/settings/:key", s.DeleteSetting)

	// Public repertorium export link, token instead of auth.
	s.engine.GET("/public/repertorium/:token", s.GetRepertoriumByToken)
}
