package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/persx/persx-sub000/internal/http/handlers"
	httpMW "github.com/persx/persx-sub000/internal/http/middleware"
	"github.com/persx/persx-sub000/internal/http/response"
	"github.com/persx/persx-sub000/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	AllowedOrigins []string
	StaticDir      string

	AuthHandler    *httpH.AuthHandler
	AuthMiddleware *httpMW.AuthMiddleware

	ContentHandler  *httpH.ContentHandler
	BlockHandler    *httpH.BlockHandler
	GenerateHandler *httpH.GenerateHandler
	TagHandler      *httpH.TagHandler
	LeadHandler     *httpH.LeadHandler
	QuickAddHandler *httpH.QuickAddHandler
	PageHandler     *httpH.PageHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		response.RespondError(c, http.StatusInternalServerError, "internal_error", nil)
		c.Abort()
	}))
	r.Use(httpMW.CORS(cfg.AllowedOrigins...))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/readyz", cfg.HealthHandler.Ready)
	}

	if cfg.StaticDir != "" {
		r.Static("/static", cfg.StaticDir)
	}

	// Public site
	if cfg.PageHandler != nil {
		site := r.Group("/")
		site.Use(httpMW.Industry())
		site.GET("/", cfg.PageHandler.Home)
		site.GET("/pages/:slug", cfg.PageHandler.Page)
		site.GET("/knowledge", cfg.PageHandler.Knowledge)
		site.GET("/knowledge/:slug", cfg.PageHandler.Article)
		r.NoRoute(httpMW.Industry(), cfg.PageHandler.NotFound)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/auth/login", cfg.AuthHandler.Login)
			api.POST("/auth/logout", cfg.AuthHandler.Logout)
		}

		// Lead intake
		if cfg.LeadHandler != nil {
			api.POST("/contact", cfg.LeadHandler.Contact)
			api.POST("/submit-roadmap", cfg.LeadHandler.SubmitRoadmap)
		}

		if cfg.TagHandler != nil {
			api.GET("/tags", cfg.TagHandler.List)
		}
	}

	protected := api.Group("/")
	{
		// Middleware
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.AuthHandler != nil {
			protected.GET("/auth/me", cfg.AuthHandler.Me)
		}

		// Content
		if cfg.ContentHandler != nil {
			protected.GET("/content", cfg.ContentHandler.List)
			protected.POST("/content", cfg.ContentHandler.Create)
			protected.GET("/content/:id", cfg.ContentHandler.Get)
			protected.PUT("/content/:id", cfg.ContentHandler.Update)
			protected.POST("/content/:id/status", cfg.ContentHandler.SetStatus)
			protected.GET("/content/:id/related", cfg.ContentHandler.Related)
		}

		// Generation
		if cfg.GenerateHandler != nil {
			protected.POST("/content/generate-summary", cfg.GenerateHandler.Generate)
		}

		// Blocks
		if cfg.BlockHandler != nil {
			protected.GET("/blocks/types", cfg.BlockHandler.Types)
			protected.GET("/content/:id/blocks", cfg.BlockHandler.List)
			protected.POST("/content/:id/blocks", cfg.BlockHandler.Add)
			protected.PUT("/content/:id/blocks/:blockId", cfg.BlockHandler.Update)
			protected.DELETE("/content/:id/blocks/:blockId", cfg.BlockHandler.Delete)
			protected.POST("/content/:id/blocks/:blockId/move", cfg.BlockHandler.Move)
		}

		// Tags
		if cfg.TagHandler != nil {
			protected.POST("/tags", cfg.TagHandler.Create)
		}

		// Quick-Add wizard
		if cfg.QuickAddHandler != nil {
			protected.POST("/quick-add", cfg.QuickAddHandler.Start)
			protected.GET("/quick-add/:id", cfg.QuickAddHandler.Get)
			protected.PATCH("/quick-add/:id", cfg.QuickAddHandler.Edit)
			protected.PUT("/quick-add/:id/urls", cfg.QuickAddHandler.SetURLs)
			protected.POST("/quick-add/:id/next", cfg.QuickAddHandler.Next)
			protected.POST("/quick-add/:id/back", cfg.QuickAddHandler.Back)
			protected.POST("/quick-add/:id/regenerate", cfg.QuickAddHandler.Regenerate)
			protected.POST("/quick-add/:id/save", cfg.QuickAddHandler.Save)
		}
	}

	return r
}
