package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/persx/persx-sub000/internal/data/graph"
	"github.com/persx/persx-sub000/internal/generation"
	"github.com/persx/persx-sub000/internal/markdown"
	"github.com/persx/persx-sub000/internal/platform/logger"
	"github.com/persx/persx-sub000/internal/render"
	"github.com/persx/persx-sub000/internal/services"
	"github.com/persx/persx-sub000/internal/wizard"
)

type Services struct {
	Markdown   *markdown.Converter
	Renderer   *render.Renderer
	Generation *generation.Service
	Pages      *services.PageCache

	Auth     services.AuthService
	Tag      services.TagService
	Content  services.ContentService
	Lead     services.LeadService
	QuickAdd services.QuickAddService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, clients Clients) (Services, error) {
	log.Info("Wiring services...")

	md := markdown.New()
	gen, err := generation.NewService(clients.OpenAI, log)
	if err != nil {
		return Services{}, fmt.Errorf("init generation: %w", err)
	}
	pages := services.NewPageCache(clients.Cache, cfg.Cache.PageTTL, log)
	contentGraph := graph.NewContentGraph(clients.Neo4j, log)

	tags := services.NewTagService(log, reposet.Tag)
	content := services.NewContentService(db, log, reposet.Content, tags, md, contentGraph, pages)

	wiz := wizard.New(log, clients.Metadata, gen)
	store := wizard.NewStore(clients.Cache, cfg.Cache.WizardTTL)

	return Services{
		Markdown:   md,
		Renderer:   render.New(log, md, render.SiteConfig{Name: cfg.Site.Name, BaseURL: cfg.Site.BaseURL, Description: cfg.Site.Description}),
		Generation: gen,
		Pages:      pages,

		Auth:     services.NewAuthService(log, reposet.AdminUser, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Tag:      tags,
		Content:  content,
		Lead:     services.NewLeadService(log, reposet.RoadmapSubmission, reposet.ContactSubmission, clients.ConvertKit),
		QuickAdd: services.NewQuickAddService(log, wiz, store, content, md),
	}, nil
}
