package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type CandidateStatus string

const (
	// StatusProvisional marks a shell record created at upload time, before
	// extraction and parsing have succeeded. Provisional candidates are
	// excluded from every read path.
	StatusProvisional CandidateStatus = "provisional"
	StatusCommitted   CandidateStatus = "committed"
)

type Candidate struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Status         CandidateStatus `gorm:"not null;default:'provisional'" json:"status"`
	PersonalInfo   datatypes.JSON  `gorm:"type:jsonb" json:"personal_info"`
	Education      datatypes.JSON  `gorm:"type:jsonb" json:"education"`
	WorkExperience datatypes.JSON  `gorm:"type:jsonb" json:"work_experience"`
	Skills         datatypes.JSON  `gorm:"type:jsonb" json:"skills"`
	Projects       datatypes.JSON  `gorm:"type:jsonb" json:"projects"`
	Certificates   datatypes.JSON  `gorm:"type:jsonb" json:"certificates"`

	Filename         string `gorm:"type:text" json:"filename"`
	OriginalFileName string `gorm:"type:text" json:"original_filename"`
	FilePath         string `gorm:"type:text" json:"file_path"`

	CreatedAt time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (c *Candidate) TableName() string {
	return "candidates"
}
