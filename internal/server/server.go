package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/invoys/internal/admin"
	"github.com/smallbiznis/invoys/internal/auth"
	authdomain "github.com/smallbiznis/invoys/internal/auth/domain"
	"github.com/smallbiznis/invoys/internal/auth/session"
	"github.com/smallbiznis/invoys/internal/business"
	businessdomain "github.com/smallbiznis/invoys/internal/business/domain"
	"github.com/smallbiznis/invoys/internal/businessctx"
	"github.com/smallbiznis/invoys/internal/client"
	clientdomain "github.com/smallbiznis/invoys/internal/client/domain"
	"github.com/smallbiznis/invoys/internal/config"
	"github.com/smallbiznis/invoys/internal/dashboard"
	"github.com/smallbiznis/invoys/internal/invoice"
	invoicedomain "github.com/smallbiznis/invoys/internal/invoice/domain"
	"github.com/smallbiznis/invoys/internal/migration"
	"github.com/smallbiznis/invoys/internal/observability"
	obslogger "github.com/smallbiznis/invoys/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/invoys/internal/observability/metrics"
	"github.com/smallbiznis/invoys/internal/payment"
	paymentdomain "github.com/smallbiznis/invoys/internal/payment/domain"
	"github.com/smallbiznis/invoys/internal/portal"
	portaldomain "github.com/smallbiznis/invoys/internal/portal/domain"
	"github.com/smallbiznis/invoys/internal/providers/pdf"
	"github.com/smallbiznis/invoys/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	config.Module,
	observability.Module,
	db.Module,
	migration.Module,
	fx.Provide(newSnowflakeNode),
	fx.Provide(NewEngine),
	auth.Module,
	business.Module,
	businessctx.Module,
	client.Module,
	invoice.Module,
	payment.Module,
	portal.Module,
	dashboard.Module,
	admin.Module,
	pdf.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func newSnowflakeNode() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}

func NewEngine(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(log))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
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
	engine           *gin.Engine
	cfg              config.Config
	db               *gorm.DB
	log              *zap.Logger
	genID            *snowflake.Node
	sessions         *session.Manager
	authsvc          authdomain.Service
	businesssvc      businessdomain.Service
	businessSessions *businessctx.Manager
	clientsvc        clientdomain.Service
	invoicesvc       invoicedomain.Service
	paymentsvc       paymentdomain.Service
	portalsvc        portaldomain.Service
	dashboardsvc     dashboard.Service
	adminsvc         admin.Service
	pdfRenderer      pdf.Renderer
}

type ServerParams struct {
	fx.In

	Gin              *gin.Engine
	Cfg              config.Config
	DB               *gorm.DB
	Log              *zap.Logger
	GenID            *snowflake.Node
	Sessions         *session.Manager
	Authsvc          authdomain.Service
	Businesssvc      businessdomain.Service
	BusinessSessions *businessctx.Manager
	Clientsvc        clientdomain.Service
	Invoicesvc       invoicedomain.Service
	Paymentsvc       paymentdomain.Service
	Portalsvc        portaldomain.Service
	Dashboardsvc     dashboard.Service
	Adminsvc         admin.Service
	PDFRenderer      pdf.Renderer
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:           p.Gin,
		cfg:              p.Cfg,
		db:               p.DB,
		log:              p.Log.Named("server"),
		genID:            p.GenID,
		sessions:         p.Sessions,
		authsvc:          p.Authsvc,
		businesssvc:      p.Businesssvc,
		businessSessions: p.BusinessSessions,
		clientsvc:        p.Clientsvc,
		invoicesvc:       p.Invoicesvc,
		paymentsvc:       p.Paymentsvc,
		portalsvc:        p.Portalsvc,
		dashboardsvc:     p.Dashboardsvc,
		adminsvc:         p.Adminsvc,
		pdfRenderer:      p.PDFRenderer,
	}

	s.registerAuthRoutes()
	s.registerAPIRoutes()
	s.registerAdminRoutes()
	s.registerPortalRoutes()

	return s
}

func (s *Server) registerAuthRoutes() {
	grp := s.engine.Group("/auth")
	grp.POST("/signup", s.Signup)
	grp.POST("/login", s.Login)
	grp.POST("/logout", s.Logout)
	grp.GET("/me", s.AuthRequired(), s.Me)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api", s.AuthRequired())

	api.GET("/businesses", s.ListBusinesses)
	api.POST("/businesses", s.OnboardBusiness)
	api.GET("/businesses/current", s.CurrentBusiness)
	api.POST("/businesses/switch", s.SwitchBusiness)
	api.PATCH("/businesses/current", s.UpdateCurrentBusiness)
	api.GET("/businesses/:id", s.GetBusiness)

	scoped := api.Group("", s.BusinessContext())

	scoped.GET("/clients", s.ListClients)
	scoped.POST("/clients", s.CreateClient)
	scoped.GET("/clients/:id", s.GetClient)
	scoped.PATCH("/clients/:id", s.UpdateClient)
	scoped.DELETE("/clients/:id", s.DeleteClient)

	scoped.GET("/invoices", s.ListInvoices)
	scoped.POST("/invoices", s.CreateInvoice)
	scoped.GET("/invoices/:id", s.GetInvoice)
	scoped.PATCH("/invoices/:id", s.UpdateInvoice)
	scoped.DELETE("/invoices/:id", s.DeleteInvoice)
	scoped.POST("/invoices/:id/status", s.UpdateInvoiceStatus)
	scoped.GET("/invoices/:id/pdf", s.DownloadInvoicePDF)
	scoped.GET("/invoices/:id/payments", s.ListInvoicePayments)
	scoped.POST("/invoices/:id/payments", s.RecordPayment)

	scoped.GET("/portal-access", s.ListPortalGrants)
	scoped.POST("/portal-access", s.GrantPortalAccess)
	scoped.DELETE("/portal-access/:id", s.RevokePortalAccess)

	scoped.GET("/dashboard", s.DashboardOverview)
}

func (s *Server) registerAdminRoutes() {
	grp := s.engine.Group("/admin", s.AuthRequired(), s.RequireSystemAdmin())
	grp.GET("/overview", s.AdminOverview)
}

func (s *Server) registerPortalRoutes() {
	grp := s.engine.Group("/portal", s.AuthRequired())
	grp.GET("/invoices", s.PortalListInvoices)
	grp.POST("/invoices/:id/pay", s.PortalMarkPaid)
	grp.GET("/invoices/:id/payments", s.PortalListPayments)
}
