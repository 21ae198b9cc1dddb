package model

import "gorm.io/gorm"

// Academic terms
const (
	TermSpring = "SPRING"
	TermSummer = "SUMMER"
	TermFall   = "FALL"
)

// Semester table semesters: an ordered term slot inside a Map
type Semester struct {
	SemesterID string `gorm:"type:uuid;primaryKey"                                  json:"semester_id"`
	MapID      string `gorm:"type:uuid;not null;uniqueIndex:uq_semester_map_term_year" json:"map_id"`
	Term       string `gorm:"type:varchar(10);not null;uniqueIndex:uq_semester_map_term_year" json:"term"`
	Year       int    `gorm:"not null;uniqueIndex:uq_semester_map_term_year"        json:"year"`
	Position   int    `gorm:"not null;default:0"                                    json:"position"`
	BaseModel

	Classes []Class `gorm:"foreignKey:SemesterID;references:SemesterID" json:"classes,omitempty"`
}

// TableName table name
func (Semester) TableName() string { return "semesters" }

// BeforeCreate assigns the primary key
func (s *Semester) BeforeCreate(_ *gorm.DB) error {
	ensureID(&s.SemesterID)
	return nil
}
