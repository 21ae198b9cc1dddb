package model

import "gorm.io/gorm"

// Class lifecycle status
const (
	ClassStatusPlanned    = "PLANNED"
	ClassStatusInProgress = "IN_PROGRESS"
	ClassStatusCompleted  = "COMPLETED"
	ClassStatusDropped    = "DROPPED"
)

// Class table classes: a course instance placed into a semester.
// Course fields are copied at creation time; CourseID only records the origin.
type Class struct {
	ClassID       string      `gorm:"type:uuid;primaryKey"                        json:"class_id"`
	MapID         string      `gorm:"type:uuid;not null;index"                    json:"map_id"`
	SemesterID    string      `gorm:"type:uuid;not null;index"                    json:"semester_id"`
	CourseID      *string     `gorm:"type:uuid"                                   json:"course_id,omitempty"`
	Subject       string      `gorm:"type:varchar(10);not null"                   json:"subject"`
	Number        string      `gorm:"type:varchar(10);not null"                   json:"number"`
	Name          string      `gorm:"type:varchar(200);not null"                  json:"name"`
	Credits       int         `gorm:"not null;default:0"                          json:"credits"`
	Prerequisites StringArray `gorm:"not null"                                    json:"prerequisites"`
	Corequisites  StringArray `gorm:"not null"                                    json:"corequisites"`
	Tags          StringArray `gorm:"not null"                                    json:"tags"`
	Status        string      `gorm:"type:varchar(20);not null;default:'PLANNED'" json:"status"`
	Grade         *string     `gorm:"type:varchar(5)"                             json:"grade,omitempty"`
	Position      int         `gorm:"not null;default:0"                          json:"position"`
	BaseModel
}

// TableName table name
func (Class) TableName() string { return "classes" }

// BeforeCreate assigns the primary key
func (c *Class) BeforeCreate(_ *gorm.DB) error {
	ensureID(&c.ClassID)
	return nil
}

// Code the catalog code, e.g. "CSE 110"
func (c *Class) Code() string { return c.Subject + " " + c.Number }
