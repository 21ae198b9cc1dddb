package model

import "gorm.io/gorm"

// Requirement progress types
const (
	RequirementCreditHours = "CREDIT_HOURS"
	RequirementClassCount  = "CLASS_COUNT"
)

// Requirement table requirements: a tagged degree-progress goal scoped to one Map.
// Current is derived from the Map's classes and never written by clients.
type Requirement struct {
	RequirementID string `gorm:"type:uuid;primaryKey"                                 json:"requirement_id"`
	MapID         string `gorm:"type:uuid;not null;uniqueIndex:uq_requirement_map_tag" json:"map_id"`
	Name          string `gorm:"type:varchar(100);not null"                           json:"name"`
	Tag           string `gorm:"type:varchar(50);not null;uniqueIndex:uq_requirement_map_tag" json:"tag"`
	Type          string `gorm:"type:varchar(20);not null"                            json:"type"`
	Category      string `gorm:"type:varchar(50)"                                     json:"category"`
	Goal          int    `gorm:"not null;default:0"                                   json:"goal"`
	Current       int    `gorm:"not null;default:0"                                   json:"current"`
	IsCustom      bool   `gorm:"not null;default:false"                               json:"is_custom"`
	Description   string `gorm:"type:text"                                            json:"description,omitempty"`
	BaseModel
}

// TableName table name
func (Requirement) TableName() string { return "requirements" }

// BeforeCreate assigns the primary key
func (r *Requirement) BeforeCreate(_ *gorm.DB) error {
	ensureID(&r.RequirementID)
	return nil
}
