package dto

// ── Auth requests ──

// RegisterRequest self sign-up
type RegisterRequest struct {
	Email    string `json:"email"    binding:"required,email,max=255"`
	Name     string `json:"name"     binding:"required,min=1,max=100"`
	Password string `json:"password" binding:"required,min=8,max=64"`
}

// LoginRequest email + password login
type LoginRequest struct {
	Email      string `json:"email"    binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// RefreshTokenRequest body form of the refresh call; the cookie is used when empty
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ── Auth responses ──

// TokenResponse token pair
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token,omitempty"`
	ExpiresIn    int          `json:"expires_in"` // access token lifetime, seconds
	User         UserResponse `json:"user"`

	// refresh cookie lifetime, not serialised
	RefreshTTLSeconds int `json:"-"`
}
