package dto

// ── Semester DTOs ──

// CreateSemesterRequest add a term to a map
type CreateSemesterRequest struct {
	Term string `json:"term" binding:"required,oneof=SPRING SUMMER FALL"`
	Year int    `json:"year" binding:"required,min=1900,max=2200"`
}

// UpdateSemesterRequest change the term or year
type UpdateSemesterRequest struct {
	Term *string `json:"term" binding:"omitempty,oneof=SPRING SUMMER FALL"`
	Year *int    `json:"year" binding:"omitempty,min=1900,max=2200"`
}

// SemesterResponse semester with its ordered classes
type SemesterResponse struct {
	ID       string          `json:"id"`
	MapID    string          `json:"map_id"`
	Term     string          `json:"term"`
	Year     int             `json:"year"`
	Position int             `json:"position"`
	Credits  int             `json:"credits"`
	Classes  []ClassResponse `json:"classes"`
}
