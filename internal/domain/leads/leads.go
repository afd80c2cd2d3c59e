package leads

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RoadmapSubmission is written once per completed roadmap wizard.
type RoadmapSubmission struct {
	ID           uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Industry     string                      `gorm:"not null;index" json:"industry"`
	Goals        datatypes.JSONSlice[string] `json:"goals"`
	MartechStack datatypes.JSONSlice[string] `json:"martech_stack"`
	Challenges   string                      `gorm:"type:text" json:"challenges"`
	Email        string                      `json:"email,omitempty"`
	IPAddress    string                      `json:"ip_address,omitempty"`
	UserAgent    string                      `json:"user_agent,omitempty"`
	Country      string                      `json:"country,omitempty"`
	Region       string                      `json:"region,omitempty"`
	City         string                      `json:"city,omitempty"`
	Referrer     string                      `json:"referrer,omitempty"`
	CreatedAt    time.Time                   `gorm:"not null" json:"created_at"`
}

func (RoadmapSubmission) TableName() string { return "roadmap_submissions" }

func (r *RoadmapSubmission) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type ContactSubmission struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null;index" json:"email"`
	Company   string    `json:"company,omitempty"`
	Message   string    `gorm:"type:text" json:"message"`
	Industry  string    `json:"industry,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (ContactSubmission) TableName() string { return "contact_submissions" }

func (c *ContactSubmission) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
