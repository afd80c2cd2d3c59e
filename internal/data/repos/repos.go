package repos

import (
	"gorm.io/gorm"

	"github.com/persx/persx-sub000/internal/data/repos/auth"
	"github.com/persx/persx-sub000/internal/data/repos/content"
	"github.com/persx/persx-sub000/internal/data/repos/leads"
	"github.com/persx/persx-sub000/internal/platform/logger"
)

type ContentRepo = content.ContentRepo
type ContentListFilter = content.ListFilter
type TagRepo = content.TagRepo

type RoadmapSubmissionRepo = leads.RoadmapSubmissionRepo
type ContactSubmissionRepo = leads.ContactSubmissionRepo

type AdminUserRepo = auth.AdminUserRepo

func NewContentRepo(db *gorm.DB, log *logger.Logger) ContentRepo {
	return content.NewContentRepo(db, log)
}

func NewTagRepo(db *gorm.DB, log *logger.Logger) TagRepo {
	return content.NewTagRepo(db, log)
}

func NewRoadmapSubmissionRepo(db *gorm.DB, log *logger.Logger) RoadmapSubmissionRepo {
	return leads.NewRoadmapSubmissionRepo(db, log)
}

func NewContactSubmissionRepo(db *gorm.DB, log *logger.Logger) ContactSubmissionRepo {
	return leads.NewContactSubmissionRepo(db, log)
}

func NewAdminUserRepo(db *gorm.DB, log *logger.Logger) AdminUserRepo {
	return auth.NewAdminUserRepo(db, log)
}
