package domain

import (
	"github.com/persx/persx-sub000/internal/domain/auth"
	"github.com/persx/persx-sub000/internal/domain/content"
	"github.com/persx/persx-sub000/internal/domain/leads"
)

type (
	ContentRecord     = content.Record
	ContentType       = content.Type
	ContentStatus     = content.Status
	SourceType        = content.SourceType
	ExternalSource    = content.ExternalSource
	Tag               = content.Tag
	TagCategory       = content.TagCategory
	RoadmapSubmission = leads.RoadmapSubmission
	ContactSubmission = leads.ContactSubmission
	AdminUser         = auth.AdminUser
)

const (
	ContentTypeBlogPost     = content.TypeBlogPost
	ContentTypeCaseStudy    = content.TypeCaseStudy
	ContentTypeGuide        = content.TypeGuide
	ContentTypeTestResult   = content.TypeTestResult
	ContentTypeBestPractice = content.TypeBestPractice
	ContentTypeToolGuide    = content.TypeToolGuide
	ContentTypeNews         = content.TypeNews
	ContentTypePage         = content.TypePage

	StatusDraft     = content.StatusDraft
	StatusPublished = content.StatusPublished
	StatusArchived  = content.StatusArchived

	SourceOriginal        = content.SourceOriginal
	SourceExternalCurated = content.SourceExternalCurated
	SourceExternalSingle  = content.SourceExternalSingle
)
