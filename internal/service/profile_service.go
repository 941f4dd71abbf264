package service

import (
	"context"
	"errors"
	"strings"

	"github.com/spec-kit/job-portal/internal/domain"
	"github.com/spec-kit/job-portal/internal/repository"
	apperrors "github.com/spec-kit/job-portal/pkg/util/errorutil"
)

const defaultCompanyName = "Company"

// ProfileService reads and writes the role-specific profile of the caller.
type ProfileService struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
}

// ProfileDependencies bundles repositories for the profile service.
type ProfileDependencies struct {
	UserRepo    repository.UserRepository
	ProfileRepo repository.ProfileRepository
}

// SeekerProfileInput is a partial update; nil or blank fields keep their value.
type SeekerProfileInput struct {
	FullName   *string
	Phone      *string
	Location   *string
	Skills     []string
	Experience *string
	Education  *string
	ResumePath *string
	Bio        *string
}

// EmployerProfileInput is a partial update; nil or blank fields keep their value.
type EmployerProfileInput struct {
	CompanyName    *string
	CompanyWebsite *string
	CompanySize    *string
	Industry       *string
	Location       *string
	Phone          *string
	Description    *string
	LogoPath       *string
}

// NewProfileService constructs the service.
func NewProfileService(deps ProfileDependencies) *ProfileService {
	return &ProfileService{users: deps.UserRepo, profiles: deps.ProfileRepo}
}

// GetProfile returns the caller's account with the profile for its role,
// creating a default profile on first access.
func (s *ProfileService) GetProfile(ctx context.Context, actor domain.Actor) (*Account, error) {
	user, err := s.users.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, lookupError(err, "user")
	}
	account := &Account{User: user}
	switch user.Role {
	case domain.RoleJobSeeker:
		account.SeekerProfile, err = s.seekerOrDefault(ctx, user)
	case domain.RoleEmployer:
		account.EmployerProfile, err = s.employerOrDefault(ctx, user)
	}
	if err != nil {
		return nil, err
	}
	return account, nil
}

// GetSeekerProfile returns the caller's job seeker profile.
func (s *ProfileService) GetSeekerProfile(ctx context.Context, actor domain.Actor) (*domain.JobSeekerProfile, error) {
	user, err := s.requireRole(ctx, actor, domain.RoleJobSeeker)
	if err != nil {
		return nil, err
	}
	return s.seekerOrDefault(ctx, user)
}

// UpdateSeekerProfile upserts the caller's job seeker profile.
func (s *ProfileService) UpdateSeekerProfile(ctx context.Context, actor domain.Actor, input SeekerProfileInput) (*domain.JobSeekerProfile, error) {
	user, err := s.requireRole(ctx, actor, domain.RoleJobSeeker)
	if err != nil {
		return nil, err
	}
	profile, err := s.seekerOrDefault(ctx, user)
	if err != nil {
		return nil, err
	}

	keepUnlessBlank(&profile.FullName, input.FullName)
	keepUnlessBlank(&profile.Phone, input.Phone)
	keepUnlessBlank(&profile.Location, input.Location)
	keepUnlessBlank(&profile.Experience, input.Experience)
	keepUnlessBlank(&profile.Education, input.Education)
	keepUnlessBlank(&profile.ResumePath, input.ResumePath)
	keepUnlessBlank(&profile.Bio, input.Bio)
	if input.Skills != nil {
		profile.Skills = normalizeSkills(input.Skills)
	}

	if err := s.profiles.UpsertSeeker(ctx, profile); err != nil {
		return nil, internal(err)
	}
	return profile, nil
}

// RemoveResume clears the caller's stored resume path.
func (s *ProfileService) RemoveResume(ctx context.Context, actor domain.Actor) (*domain.JobSeekerProfile, error) {
	user, err := s.requireRole(ctx, actor, domain.RoleJobSeeker)
	if err != nil {
		return nil, err
	}
	profile, err := s.profiles.GetSeeker(ctx, user.ID)
	if err != nil {
		return nil, lookupError(err, "profile")
	}
	if profile.ResumePath == "" {
		return nil, apperrors.NewNotFound("resume", nil)
	}
	profile.ResumePath = ""
	if err := s.profiles.UpsertSeeker(ctx, profile); err != nil {
		return nil, internal(err)
	}
	return profile, nil
}

// GetEmployerProfile returns the caller's company profile.
func (s *ProfileService) GetEmployerProfile(ctx context.Context, actor domain.Actor) (*domain.EmployerProfile, error) {
	user, err := s.requireRole(ctx, actor, domain.RoleEmployer)
	if err != nil {
		return nil, err
	}
	return s.employerOrDefault(ctx, user)
}

// UpdateEmployerProfile upserts the caller's company profile.
func (s *ProfileService) UpdateEmployerProfile(ctx context.Context, actor domain.Actor, input EmployerProfileInput) (*domain.EmployerProfile, error) {
	user, err := s.requireRole(ctx, actor, domain.RoleEmployer)
	if err != nil {
		return nil, err
	}
	profile, err := s.employerOrDefault(ctx, user)
	if err != nil {
		return nil, err
	}

	keepUnlessBlank(&profile.CompanyName, input.CompanyName)
	keepUnlessBlank(&profile.CompanyWebsite, input.CompanyWebsite)
	keepUnlessBlank(&profile.CompanySize, input.CompanySize)
	keepUnlessBlank(&profile.Industry, input.Industry)
	keepUnlessBlank(&profile.Location, input.Location)
	keepUnlessBlank(&profile.Phone, input.Phone)
	keepUnlessBlank(&profile.Description, input.Description)
	keepUnlessBlank(&profile.LogoPath, input.LogoPath)

	if err := s.profiles.UpsertEmployer(ctx, profile); err != nil {
		return nil, internal(err)
	}
	return profile, nil
}

func (s *ProfileService) requireRole(ctx context.Context, actor domain.Actor, role domain.Role) (*domain.User, error) {
	if actor.Role != role {
		return nil, apperrors.NewForbidden("profile requires the " + string(role) + " role")
	}
	user, err := s.users.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, lookupError(err, "user")
	}
	return user, nil
}

func (s *ProfileService) seekerOrDefault(ctx context.Context, user *domain.User) (*domain.JobSeekerProfile, error) {
	profile, err := s.profiles.GetSeeker(ctx, user.ID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, internal(err)
	}
	profile = &domain.JobSeekerProfile{
		UserID:   user.ID,
		FullName: domain.DefaultDisplayName(user.Email),
		Skills:   []string{},
	}
	if err := s.profiles.UpsertSeeker(ctx, profile); err != nil {
		return nil, internal(err)
	}
	return profile, nil
}

func (s *ProfileService) employerOrDefault(ctx context.Context, user *domain.User) (*domain.EmployerProfile, error) {
	profile, err := s.profiles.GetEmployer(ctx, user.ID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, internal(err)
	}
	profile = &domain.EmployerProfile{UserID: user.ID, CompanyName: defaultCompanyName}
	if err := s.profiles.UpsertEmployer(ctx, profile); err != nil {
		return nil, internal(err)
	}
	return profile, nil
}

func keepUnlessBlank(dst *string, src *string) {
	if src == nil {
		return
	}
	if v := strings.TrimSpace(*src); v != "" {
		*dst = v
	}
}
