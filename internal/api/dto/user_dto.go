package dto

import "time"

// RegisterRequest carries only the discriminator; the body is then decoded into
// the role-specific request.
type RegisterRequest struct {
	Role string `json:"role" validate:"required,oneof=job_seeker employer"`
}

// RegisterJobSeekerRequest payload for new job seekers.
type RegisterJobSeekerRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	FullName string `json:"full_name" validate:"omitempty,max=255"`
	Phone    string `json:"phone" validate:"omitempty,max=50"`
	Location string `json:"location" validate:"omitempty,max=255"`
}

// RegisterEmployerRequest payload for new employers.
type RegisterEmployerRequest struct {
	Email          string `json:"email" validate:"required,email,max=255"`
	Password       string `json:"password" validate:"required,min=6,max=72"`
	CompanyName    string `json:"company_name" validate:"required,max=255"`
	CompanyWebsite string `json:"company_website" validate:"omitempty,url,max=255"`
	Industry       string `json:"industry" validate:"omitempty,max=255"`
	Location       string `json:"location" validate:"omitempty,max=255"`
	Phone          string `json:"phone" validate:"omitempty,max=50"`
}

// UserLoginRequest payload for login.
type UserLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest payload for password change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6,max=72,nefield=CurrentPassword"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// AccountResponse is a user with the profile for its role.
type AccountResponse struct {
	User            UserResponse             `json:"user"`
	SeekerProfile   *SeekerProfileResponse   `json:"job_seeker_profile,omitempty"`
	EmployerProfile *EmployerProfileResponse `json:"employer_profile,omitempty"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	AccountResponse
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
