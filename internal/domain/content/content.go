package content

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Type string

const (
	TypeBlogPost     Type = "blog_post"
	TypeCaseStudy    Type = "case_study"
	TypeGuide        Type = "guide"
	TypeTestResult   Type = "test_result"
	TypeBestPractice Type = "best_practice"
	TypeToolGuide    Type = "tool_guide"
	TypeNews         Type = "news"
	TypePage         Type = "page"
)

var Types = []Type{
	TypeBlogPost, TypeCaseStudy, TypeGuide, TypeTestResult,
	TypeBestPractice, TypeToolGuide, TypeNews, TypePage,
}

var typeLabels = map[Type]string{
	TypeBlogPost:     "Blog Post",
	TypeCaseStudy:    "Case Study",
	TypeGuide:        "Guide",
	TypeTestResult:   "Test Result",
	TypeBestPractice: "Best Practice",
	TypeToolGuide:    "Tool Guide",
	TypeNews:         "News",
	TypePage:         "Page",
}

func (t Type) Valid() bool {
	_, ok := typeLabels[t]
	return ok
}

func (t Type) Label() string { return typeLabels[t] }

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

func (s Status) Valid() bool {
	return s == StatusDraft || s == StatusPublished || s == StatusArchived
}

type SourceType string

const (
	SourceOriginal        SourceType = "original"
	SourceExternalCurated SourceType = "external_curated"
	SourceExternalSingle  SourceType = "external_single"
)

func (s SourceType) Valid() bool {
	return s == SourceOriginal || s == SourceExternalCurated || s == SourceExternalSingle
}

// ExternalSource is one cited article of a curated roundup.
type ExternalSource struct {
	URL           string `json:"url"`
	Name          string `json:"name"`
	Title         string `json:"title"`
	Author        string `json:"author,omitempty"`
	PublishedDate string `json:"published_date,omitempty"`
	Summary       string `json:"summary,omitempty"`
}

// Record is one knowledge-base article or block page.
type Record struct {
	ID                  uuid.UUID                           `gorm:"type:uuid;primaryKey" json:"id"`
	Slug                string                              `gorm:"not null;uniqueIndex" json:"slug"`
	Title               string                              `gorm:"not null" json:"title"`
	ContentType         Type                                `gorm:"column:content_type;not null;index" json:"content_type"`
	Status              Status                              `gorm:"not null;index" json:"status"`
	Content             string                              `gorm:"type:text" json:"content"`
	Excerpt             string                              `gorm:"type:text" json:"excerpt"`
	Author              string                              `json:"author,omitempty"`
	Tags                datatypes.JSONSlice[string]         `json:"tags"`
	Industries          datatypes.JSONSlice[string]         `json:"industries"`
	Goals               datatypes.JSONSlice[string]         `json:"goals"`
	MartechTools        datatypes.JSONSlice[string]         `json:"martech_tools"`
	ToolCategories      datatypes.JSONSlice[string]         `json:"tool_categories"`
	SourceType          SourceType                          `gorm:"column:source_type" json:"source_type"`
	SourceName          string                              `json:"source_name,omitempty"`
	SourceURL           string                              `gorm:"column:source_url" json:"source_url,omitempty"`
	SourceAuthor        string                              `json:"source_author,omitempty"`
	SourcePublishedDate string                              `json:"source_published_date,omitempty"`
	ExternalSources     datatypes.JSONSlice[ExternalSource] `json:"external_sources"`
	OverallSummary      string                              `gorm:"type:text" json:"overall_summary,omitempty"`
	PersxPerspective    string                              `gorm:"column:persx_perspective;type:text" json:"persx_perspective,omitempty"`
	ContentBlocks       datatypes.JSON                      `gorm:"column:content_blocks" json:"content_blocks"`
	PublishedAt         *time.Time                          `json:"published_at,omitempty"`
	CreatedAt           time.Time                           `gorm:"not null" json:"created_at"`
	UpdatedAt           time.Time                           `gorm:"not null" json:"updated_at"`
}

func (Record) TableName() string { return "knowledge_base_content" }

func (r *Record) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (r *Record) IsPublished() bool { return r.Status == StatusPublished }

// HasBlocks reports whether the block array is the authoritative body.
func (r *Record) HasBlocks() bool {
	s := string(r.ContentBlocks)
	return s != "" && s != "null" && s != "[]"
}
