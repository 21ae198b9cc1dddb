package model

import "gorm.io/gorm"

// Map lifecycle status
const (
	MapStatusActive    = "ACTIVE"
	MapStatusArchived  = "ARCHIVED"
	MapStatusCompleted = "COMPLETED"
)

// Map table maps: a student's semester-by-semester academic plan
type Map struct {
	MapID        string `gorm:"type:uuid;primaryKey"                       json:"map_id"`
	UserID       string `gorm:"type:uuid;not null;index"                   json:"user_id"`
	Name         string `gorm:"type:varchar(100);not null"                 json:"name"`
	Degree       string `gorm:"type:varchar(150)"                          json:"degree"`
	University   string `gorm:"type:varchar(150)"                          json:"university"`
	StartTerm    string `gorm:"type:varchar(10);not null"                  json:"start_term"`
	StartYear    int    `gorm:"not null"                                   json:"start_year"`
	Status       string `gorm:"type:varchar(20);not null;default:'ACTIVE'" json:"status"`
	TotalCredits int    `gorm:"not null;default:0"                         json:"total_credits"` // derived
	BaseModel

	Semesters    []Semester    `gorm:"foreignKey:MapID;references:MapID" json:"semesters,omitempty"`
	Requirements []Requirement `gorm:"foreignKey:MapID;references:MapID" json:"requirements,omitempty"`
}

// TableName table name
func (Map) TableName() string { return "maps" }

// BeforeCreate assigns the primary key
func (m *Map) BeforeCreate(_ *gorm.DB) error {
	ensureID(&m.MapID)
	return nil
}
