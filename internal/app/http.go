package app

import (
	"context"

	"gorm.io/gorm"

	"github.com/persx/persx-sub000/internal/http"
	httpH "github.com/persx/persx-sub000/internal/http/handlers"
	httpMW "github.com/persx/persx-sub000/internal/http/middleware"
	"github.com/persx/persx-sub000/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health   *httpH.HealthHandler
	Auth     *httpH.AuthHandler
	Content  *httpH.ContentHandler
	Block    *httpH.BlockHandler
	Generate *httpH.GenerateHandler
	Tag      *httpH.TagHandler
	Lead     *httpH.LeadHandler
	QuickAdd *httpH.QuickAddHandler
	Page     *httpH.PageHandler
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{Auth: httpMW.NewAuthMiddleware(log, services.Auth)}
}

func wireHandlers(log *logger.Logger, db *gorm.DB, cfg Config, services Services) Handlers {
	log.Info("Wiring handlers...")
	ping := func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
	return Handlers{
		Health:   httpH.NewHealthHandler(ping),
		Auth:     httpH.NewAuthHandler(services.Auth, cfg.Auth.SecureCookie),
		Content:  httpH.NewContentHandler(services.Content),
		Block:    httpH.NewBlockHandler(services.Content),
		Generate: httpH.NewGenerateHandler(services.Generation),
		Tag:      httpH.NewTagHandler(services.Tag),
		Lead:     httpH.NewLeadHandler(services.Lead),
		QuickAdd: httpH.NewQuickAddHandler(services.QuickAdd),
		Page:     httpH.NewPageHandler(log, services.Content, services.Renderer, services.Pages),
	}
}

func wireServer(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware) *http.Server {
	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = cfg.Otel.ServiceName
	}
	return http.NewServer(http.RouterConfig{
		Log:            log,
		ServiceName:    serviceName,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		StaticDir:      cfg.Site.StaticDir,

		HealthHandler:   handlers.Health,
		AuthHandler:     handlers.Auth,
		AuthMiddleware:  middleware.Auth,
		ContentHandler:  handlers.Content,
		BlockHandler:    handlers.Block,
		GenerateHandler: handlers.Generate,
		TagHandler:      handlers.Tag,
		LeadHandler:     handlers.Lead,
		QuickAddHandler: handlers.QuickAdd,
		PageHandler:     handlers.Page,
	})
}
