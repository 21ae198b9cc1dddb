package model

import (
	"strings"

	"gorm.io/gorm"
)

// Course table courses: the shared course bank
type Course struct {
	CourseID      string      `gorm:"type:uuid;primaryKey"                    json:"course_id"`
	Subject       string      `gorm:"type:varchar(10);not null;index"         json:"subject"`
	Number        string      `gorm:"type:varchar(10);not null"               json:"number"`
	Code          string      `gorm:"type:varchar(25);not null;uniqueIndex"   json:"code"`
	Name          string      `gorm:"type:varchar(200);not null"              json:"name"`
	Credits       int         `gorm:"not null;default:0"                      json:"credits"`
	Description   string      `gorm:"type:text"                               json:"description,omitempty"`
	Prerequisites StringArray `gorm:"not null"                                json:"prerequisites"`
	Corequisites  StringArray `gorm:"not null"                                json:"corequisites"`
	Tags          StringArray `gorm:"not null"                                json:"tags"`
	BaseModel
}

// TableName table name
func (Course) TableName() string { return "courses" }

// BeforeCreate assigns the primary key
func (c *Course) BeforeCreate(_ *gorm.DB) error {
	ensureID(&c.CourseID)
	return nil
}

// CourseCode builds the unique code "<SUBJECT> <NUMBER>".
func CourseCode(subject, number string) string {
	return strings.ToUpper(strings.TrimSpace(subject)) + " " + strings.ToUpper(strings.TrimSpace(number))
}
