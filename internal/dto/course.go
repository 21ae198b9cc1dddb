package dto

// ── Course bank DTOs ──

// CourseListRequest search parameters
type CourseListRequest struct {
	PaginationRequest
	Q       string `form:"q"       binding:"omitempty,max=100"`
	Subject string `form:"subject" binding:"omitempty,max=10"`
	Tag     string `form:"tag"     binding:"omitempty,max=50"`
}

// CreateCourseRequest add a course to the bank
type CreateCourseRequest struct {
	Subject       string   `json:"subject"       binding:"required,min=1,max=10"`
	Number        string   `json:"number"        binding:"required,min=1,max=10"`
	Name          string   `json:"name"          binding:"required,min=1,max=200"`
	Credits       int      `json:"credits"       binding:"min=0,max=30"`
	Description   string   `json:"description"`
	Prerequisites []string `json:"prerequisites"`
	Corequisites  []string `json:"corequisites"`
	Tags          []string `json:"tags"`
}

// UpdateCourseRequest partial update
type UpdateCourseRequest struct {
	Name          *string   `json:"name"          binding:"omitempty,min=1,max=200"`
	Credits       *int      `json:"credits"       binding:"omitempty,min=0,max=30"`
	Description   *string   `json:"description"`
	Prerequisites *[]string `json:"prerequisites"`
	Corequisites  *[]string `json:"corequisites"`
	Tags          *[]string `json:"tags"`
}

// CourseResponse course view
type CourseResponse struct {
	ID            string   `json:"id"`
	Code          string   `json:"code"`
	Subject       string   `json:"subject"`
	Number        string   `json:"number"`
	Name          string   `json:"name"`
	Credits       int      `json:"credits"`
	Description   string   `json:"description,omitempty"`
	Prerequisites []string `json:"prerequisites"`
	Corequisites  []string `json:"corequisites"`
	Tags          []string `json:"tags"`
}
