package dto

// ── Map DTOs ──

// CreateMapRequest create a plan; SemesterCount > 0 generates consecutive semesters
type CreateMapRequest struct {
	Name          string `json:"name"           binding:"required,min=1,max=100"`
	Degree        string `json:"degree"         binding:"omitempty,max=150"`
	University    string `json:"university"     binding:"omitempty,max=150"`
	StartTerm     string `json:"start_term"     binding:"required,oneof=SPRING SUMMER FALL"`
	StartYear     int    `json:"start_year"     binding:"required,min=1900,max=2200"`
	SemesterCount int    `json:"semester_count" binding:"omitempty,min=0,max=16"`
	IncludeSummer bool   `json:"include_summer"`
}

// UpdateMapRequest partial update
type UpdateMapRequest struct {
	Name       *string `json:"name"       binding:"omitempty,min=1,max=100"`
	Degree     *string `json:"degree"     binding:"omitempty,max=150"`
	University *string `json:"university" binding:"omitempty,max=150"`
	Status     *string `json:"status"     binding:"omitempty,oneof=ACTIVE ARCHIVED COMPLETED"`
	StartTerm  *string `json:"start_term" binding:"omitempty,oneof=SPRING SUMMER FALL"`
	StartYear  *int    `json:"start_year" binding:"omitempty,min=1900,max=2200"`
}

// MapListRequest list filter
type MapListRequest struct {
	Status string `form:"status" binding:"omitempty,oneof=ACTIVE ARCHIVED COMPLETED"`
}

// MapResponse map summary
type MapResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Degree       string `json:"degree"`
	University   string `json:"university"`
	StartTerm    string `json:"start_term"`
	StartYear    int    `json:"start_year"`
	Status       string `json:"status"`
	TotalCredits int    `json:"total_credits"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// MapDetailResponse map with its semesters, classes and requirement progress
type MapDetailResponse struct {
	MapResponse
	Semesters    []SemesterResponse    `json:"semesters"`
	Requirements []RequirementResponse `json:"requirements"`
}
