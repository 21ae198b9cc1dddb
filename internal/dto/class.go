package dto

// ── Class DTOs ──

// CreateClassRequest place a class into a semester.
// With CourseID the course fields are copied and explicit fields override them.
type CreateClassRequest struct {
	SemesterID    string   `json:"semester_id"   binding:"required"`
	CourseID      *string  `json:"course_id"`
	Subject       string   `json:"subject"       binding:"omitempty,max=10"`
	Number        string   `json:"number"        binding:"omitempty,max=10"`
	Name          string   `json:"name"          binding:"omitempty,max=200"`
	Credits       *int     `json:"credits"       binding:"omitempty,min=0,max=30"`
	Prerequisites []string `json:"prerequisites"`
	Corequisites  []string `json:"corequisites"`
	Tags          []string `json:"tags"`
	Status        string   `json:"status"        binding:"omitempty,oneof=PLANNED IN_PROGRESS COMPLETED DROPPED"`
	Grade         *string  `json:"grade"         binding:"omitempty,max=5"`
}

// UpdateClassRequest partial update; nil fields are left unchanged
type UpdateClassRequest struct {
	Subject       *string   `json:"subject"       binding:"omitempty,min=1,max=10"`
	Number        *string   `json:"number"        binding:"omitempty,min=1,max=10"`
	Name          *string   `json:"name"          binding:"omitempty,min=1,max=200"`
	Credits       *int      `json:"credits"       binding:"omitempty,min=0,max=30"`
	Prerequisites *[]string `json:"prerequisites"`
	Corequisites  *[]string `json:"corequisites"`
	Tags          *[]string `json:"tags"`
	Status        *string   `json:"status"        binding:"omitempty,oneof=PLANNED IN_PROGRESS COMPLETED DROPPED"`
	Grade         *string   `json:"grade"         binding:"omitempty,max=5"`
}

// MoveClassRequest move to another semester of the same map; Position is 0-based
type MoveClassRequest struct {
	SemesterID string `json:"semester_id" binding:"required"`
	Position   *int   `json:"position"    binding:"omitempty,min=0"`
}

// ClassListRequest list filter
type ClassListRequest struct {
	SemesterID string `form:"semester_id"`
}

// ClassResponse class view
type ClassResponse struct {
	ID            string   `json:"id"`
	MapID         string   `json:"map_id"`
	SemesterID    string   `json:"semester_id"`
	CourseID      *string  `json:"course_id,omitempty"`
	Code          string   `json:"code"`
	Subject       string   `json:"subject"`
	Number        string   `json:"number"`
	Name          string   `json:"name"`
	Credits       int      `json:"credits"`
	Prerequisites []string `json:"prerequisites"`
	Corequisites  []string `json:"corequisites"`
	Tags          []string `json:"tags"`
	Status        string   `json:"status"`
	Grade         *string  `json:"grade,omitempty"`
	Position      int      `json:"position"`
}
