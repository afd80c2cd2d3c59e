package app

import (
	"gorm.io/gorm"

	"github.com/persx/persx-sub000/internal/data/repos"
	"github.com/persx/persx-sub000/internal/platform/logger"
)

type Repos struct {
	Content           repos.ContentRepo
	Tag               repos.TagRepo
	RoadmapSubmission repos.RoadmapSubmissionRepo
	ContactSubmission repos.ContactSubmissionRepo
	AdminUser         repos.AdminUserRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Content:           repos.NewContentRepo(db, log),
		Tag:               repos.NewTagRepo(db, log),
		RoadmapSubmission: repos.NewRoadmapSubmissionRepo(db, log),
		ContactSubmission: repos.NewContactSubmissionRepo(db, log),
		AdminUser:         repos.NewAdminUserRepo(db, log),
	}
}
