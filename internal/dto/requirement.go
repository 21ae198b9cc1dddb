package dto

// ── Requirement DTOs ──

// CreateRequirementRequest add a degree requirement to a map
type CreateRequirementRequest struct {
	Name        string `json:"name"        binding:"required,min=1,max=100"`
	Tag         string `json:"tag"         binding:"required,min=1,max=50"`
	Type        string `json:"type"        binding:"required,oneof=CREDIT_HOURS CLASS_COUNT"`
	Category    string `json:"category"    binding:"omitempty,max=50"`
	Goal        int    `json:"goal"        binding:"min=0,max=1000"`
	IsCustom    bool   `json:"is_custom"`
	Description string `json:"description"`
}

// UpdateRequirementRequest partial update; a Tag change is propagated to classes
type UpdateRequirementRequest struct {
	Name        *string `json:"name"        binding:"omitempty,min=1,max=100"`
	Tag         *string `json:"tag"         binding:"omitempty,min=1,max=50"`
	Type        *string `json:"type"        binding:"omitempty,oneof=CREDIT_HOURS CLASS_COUNT"`
	Category    *string `json:"category"    binding:"omitempty,max=50"`
	Goal        *int    `json:"goal"        binding:"omitempty,min=0,max=1000"`
	IsCustom    *bool   `json:"is_custom"`
	Description *string `json:"description"`
}

// RequirementResponse requirement with its progress
type RequirementResponse struct {
	ID          string `json:"id"`
	MapID       string `json:"map_id"`
	Name        string `json:"name"`
	Tag         string `json:"tag"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Goal        int    `json:"goal"`
	Current     int    `json:"current"`
	Remaining   int    `json:"remaining"`
	Percent     int    `json:"percent"`
	Completed   bool   `json:"completed"`
	IsCustom    bool   `json:"is_custom"`
	Description string `json:"description,omitempty"`
}

// ProgressResponse GET /maps/:id/progress
type ProgressResponse struct {
	MapID        string                `json:"map_id"`
	TotalCredits int                   `json:"total_credits"`
	Completed    int                   `json:"completed"` // requirements met
	Requirements []RequirementResponse `json:"requirements"`
}
