package content

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TagCategory string

const (
	TagCategoryTopic         TagCategory = "topic"
	TagCategoryIndustry      TagCategory = "industry"
	TagCategoryGoal          TagCategory = "goal"
	TagCategoryMartechTool   TagCategory = "martech_tool"
	TagCategoryContentFormat TagCategory = "content_format"
)

var TagCategories = []TagCategory{
	TagCategoryTopic, TagCategoryIndustry, TagCategoryGoal,
	TagCategoryMartechTool, TagCategoryContentFormat,
}

func (c TagCategory) Valid() bool {
	for _, v := range TagCategories {
		if v == c {
			return true
		}
	}
	return false
}

// Tag is referenced from content by name, so renames do not cascade.
type Tag struct {
	ID         uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string       `gorm:"not null;uniqueIndex" json:"name"`
	Category   *TagCategory `json:"category"`
	Color      string       `json:"color,omitempty"`
	UsageCount int          `gorm:"not null;default:0" json:"usage_count"`
	CreatedAt  time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time    `gorm:"not null" json:"updated_at"`
}

func (Tag) TableName() string { return "tags" }

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
