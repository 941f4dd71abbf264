package service

import (
	"context"
	"errors"
	"strings"

	"github.com/spec-kit/job-portal/internal/auth"
	"github.com/spec-kit/job-portal/internal/config"
	"github.com/spec-kit/job-portal/internal/domain"
	"github.com/spec-kit/job-portal/internal/repository"
	apperrors "github.com/spec-kit/job-portal/pkg/util/errorutil"
)

// AuthService coordinates registration, login and session flows.
type AuthService struct {
	users      repository.UserRepository
	profiles   repository.ProfileRepository
	tokenMgr   *auth.TokenManager
	revoked    auth.RevocationStore
	bcryptCost int
}

// AuthDependencies encapsulates collaborators of the auth service.
type AuthDependencies struct {
	UserRepo     repository.UserRepository
	ProfileRepo  repository.ProfileRepository
	TokenManager *auth.TokenManager
	Revocations  auth.RevocationStore
}

// RegisterJobSeekerInput creates a job seeker account with its profile.
type RegisterJobSeekerInput struct {
	Email    string
	Password string
	FullName string
	Phone    string
	Location string
}

// RegisterEmployerInput creates an employer account with its company profile.
type RegisterEmployerInput struct {
	Email          string
	Password       string
	CompanyName    string
	CompanyWebsite string
	Industry       string
	Location       string
	Phone          string
}

// Account is a user together with the profile matching its role.
type Account struct {
	User            *domain.User
	SeekerProfile   *domain.JobSeekerProfile
	EmployerProfile *domain.EmployerProfile
}

// Session is an account plus a freshly issued access token.
type Session struct {
	Account
	AccessToken string
	Token       domain.Token
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	tokenMgr := deps.TokenManager
	if tokenMgr == nil {
		tokenMgr = auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	}
	revoked := deps.Revocations
	if revoked == nil {
		revoked = auth.NoopRevocationStore{}
	}
	return &AuthService{
		users:      deps.UserRepo,
		profiles:   deps.ProfileRepo,
		tokenMgr:   tokenMgr,
		revoked:    revoked,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// RegisterJobSeeker creates the user and seeker profile in one transaction.
func (s *AuthService) RegisterJobSeeker(ctx context.Context, input RegisterJobSeekerInput) (*Session, error) {
	user, err := s.newUser(ctx, input.Email, input.Password, domain.RoleJobSeeker)
	if err != nil {
		return nil, err
	}

	profile := &domain.JobSeekerProfile{
		FullName: strings.TrimSpace(input.FullName),
		Phone:    strings.TrimSpace(input.Phone),
		Location: strings.TrimSpace(input.Location),
		Skills:   []string{},
	}
	if profile.FullName == "" {
		profile.FullName = domain.DefaultDisplayName(user.Email)
	}

	if err := s.users.CreateWithSeekerProfile(ctx, user, profile); err != nil {
		return nil, registrationError(err)
	}
	return s.issue(Account{User: user, SeekerProfile: profile})
}

// RegisterEmployer creates the user and employer profile in one transaction.
func (s *AuthService) RegisterEmployer(ctx context.Context, input RegisterEmployerInput) (*Session, error) {
	companyName := strings.TrimSpace(input.CompanyName)
	if companyName == "" {
		return nil, apperrors.NewValidationError("request validation failed", map[string]any{"company_name": "is required"})
	}

	user, err := s.newUser(ctx, input.Email, input.Password, domain.RoleEmployer)
	if err != nil {
		return nil, err
	}

	profile := &domain.EmployerProfile{
		CompanyName:    companyName,
		CompanyWebsite: strings.TrimSpace(input.CompanyWebsite),
		Industry:       strings.TrimSpace(input.Industry),
		Location:       strings.TrimSpace(input.Location),
		Phone:          strings.TrimSpace(input.Phone),
	}

	if err := s.users.CreateWithEmployerProfile(ctx, user, profile); err != nil {
		return nil, registrationError(err)
	}
	return s.issue(Account{User: user, EmployerProfile: profile})
}

// Login authenticates by e-mail and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewUnauthorized("invalid email or password")
		}
		return nil, internal(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid email or password")
	}
	if !user.IsActive {
		return nil, apperrors.NewUnauthorized("account has been deactivated, please contact support")
	}
	s.upgradeHash(ctx, user, password)

	account, err := s.loadAccount(ctx, user)
	if err != nil {
		return nil, err
	}
	return s.issue(*account)
}

// Me returns the caller's account.
func (s *AuthService) Me(ctx context.Context, userID string) (*Account, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, lookupError(err, "user")
	}
	return s.loadAccount(ctx, user)
}

// Logout revokes the presented token until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, token domain.Token) error {
	if token.ID == "" {
		return nil
	}
	if err := s.revoked.Revoke(ctx, token.ID, token.ExpiresAt); err != nil {
		return internal(err)
	}
	return nil
}

// ChangePassword replaces the caller's password after verifying the current one.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return lookupError(err, "user")
	}
	if err := auth.ComparePassword(user.PasswordHash, currentPassword); err != nil {
		return apperrors.NewUnauthorized("current password is incorrect")
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return internal(err)
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return lookupError(err, "user")
	}
	return nil
}

func (s *AuthService) newUser(ctx context.Context, email, password string, role domain.Role) (*domain.User, error) {
	email = normalizeEmail(email)
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, emailTaken()
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, internal(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, internal(err)
	}
	return &domain.User{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}, nil
}

// upgradeHash re-hashes the password after a successful login when the
// configured bcrypt cost changed. A failure keeps the old hash.
func (s *AuthService) upgradeHash(ctx context.Context, user *domain.User, password string) {
	if !auth.NeedsRehash(user.PasswordHash, s.bcryptCost) {
		return
	}
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return
	}
	previous := user.PasswordHash
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		user.PasswordHash = previous
	}
}

func (s *AuthService) loadAccount(ctx context.Context, user *domain.User) (*Account, error) {
	account := &Account{User: user}
	var err error
	switch user.Role {
	case domain.RoleJobSeeker:
		account.SeekerProfile, err = s.profiles.GetSeeker(ctx, user.ID)
	case domain.RoleEmployer:
		account.EmployerProfile, err = s.profiles.GetEmployer(ctx, user.ID)
	}
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, internal(err)
	}
	return account, nil
}

func (s *AuthService) issue(account Account) (*Session, error) {
	accessToken, token, err := s.tokenMgr.GenerateToken(account.User.ID, account.User.Role)
	if err != nil {
		return nil, internal(err)
	}
	return &Session{Account: account, AccessToken: accessToken, Token: token}, nil
}

func registrationError(err error) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return emailTaken()
	}
	return internal(err)
}

func emailTaken() error {
	return apperrors.NewConflict("email already registered", nil)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
