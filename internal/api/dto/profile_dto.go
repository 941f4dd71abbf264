package dto

import "time"

// UpdateSeekerProfileRequest is a partial update; omitted or blank fields keep
// their stored value.
type UpdateSeekerProfileRequest struct {
	FullName   *string  `json:"full_name" validate:"omitempty,max=255"`
	Phone      *string  `json:"phone" validate:"omitempty,max=50"`
	Location   *string  `json:"location" validate:"omitempty,max=255"`
	Skills     []string `json:"skills" validate:"omitempty,max=100,dive,max=100"`
	Experience *string  `json:"experience"`
	Education  *string  `json:"education"`
	ResumePath *string  `json:"resume_path" validate:"omitempty,max=1024"`
	Bio        *string  `json:"bio"`
}

// UpdateEmployerProfileRequest is a partial update of the company profile.
type UpdateEmployerProfileRequest struct {
	CompanyName    *string `json:"company_name" validate:"omitempty,max=255"`
	CompanyWebsite *string `json:"company_website" validate:"omitempty,max=255"`
	CompanySize    *string `json:"company_size" validate:"omitempty,max=50"`
	Industry       *string `json:"industry" validate:"omitempty,max=255"`
	Location       *string `json:"location" validate:"omitempty,max=255"`
	Phone          *string `json:"phone" validate:"omitempty,max=50"`
	Description    *string `json:"description"`
	LogoPath       *string `json:"logo_path" validate:"omitempty,max=1024"`
}

// SeekerProfileResponse renders a job seeker profile.
type SeekerProfileResponse struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	FullName          string    `json:"full_name"`
	Phone             string    `json:"phone"`
	Location          string    `json:"location"`
	Skills            []string  `json:"skills"`
	Experience        string    `json:"experience"`
	Education         string    `json:"education"`
	ResumePath        string    `json:"resume_path"`
	Bio               string    `json:"bio"`
	ProfileCompletion int       `json:"profile_completion"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// EmployerProfileResponse renders a company profile.
type EmployerProfileResponse struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	CompanyName       string    `json:"company_name"`
	CompanyWebsite    string    `json:"company_website"`
	CompanySize       string    `json:"company_size"`
	Industry          string    `json:"industry"`
	Location          string    `json:"location"`
	Phone             string    `json:"phone"`
	Description       string    `json:"description"`
	LogoPath          string    `json:"logo_path"`
	ProfileCompletion int       `json:"profile_completion"`
	UpdatedAt         time.Time `json:"updated_at"`
}
