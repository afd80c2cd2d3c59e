package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/persx/persx-sub000/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// Content
		&types.ContentRecord{},
		&types.Tag{},

		// Leads
		&types.RoadmapSubmission{},
		&types.ContactSubmission{},

		// Admin
		&types.AdminUser{},
	)
}

// EnsureContentIndexes adds postgres-only JSONB indexes used by tag filters.
func EnsureContentIndexes(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	stmts := []string{
		`CREATE INDEX IF NOT EXISTS idx_kbc_tags_gin ON knowledge_base_content USING GIN (tags jsonb_path_ops);`,
		`CREATE INDEX IF NOT EXISTS idx_kbc_status_published ON knowledge_base_content(status, published_at DESC);`,
	}
	for _, q := range stmts {
		if err := db.Exec(q).Error; err != nil {
			return fmt.Errorf("ensure content indexes: %w", err)
		}
	}
	return nil
}
