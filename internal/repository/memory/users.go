package memory

import (
	"context"

	"github.com/spec-kit/job-portal/internal/domain"
	"github.com/spec-kit/job-portal/internal/repository"
)

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.insertLocked(user)
}

func (r *userRepo) insertLocked(user *domain.User) error {
	for _, existing := range r.s.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	user.ID = newID()
	user.CreatedAt = r.s.stamp()
	user.UpdatedAt = user.CreatedAt
	r.s.users[user.ID] = *user
	return nil
}

func (r *userRepo) CreateWithSeekerProfile(_ context.Context, user *domain.User, profile *domain.JobSeekerProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.insertLocked(user); err != nil {
		return err
	}
	profile.UserID = user.ID
	upsertSeekerLocked(r.s, profile)
	return nil
}

func (r *userRepo) CreateWithEmployerProfile(_ context.Context, user *domain.User, profile *domain.EmployerProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.insertLocked(user); err != nil {
		return err
	}
	profile.UserID = user.ID
	upsertEmployerLocked(r.s, profile)
	return nil
}

func (r *userRepo) Update(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.users[user.ID]
	if !ok {
		return repository.ErrNotFound
	}
	for id, other := range r.s.users {
		if id != user.ID && other.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	existing.Email = user.Email
	existing.PasswordHash = user.PasswordHash
	existing.IsActive = user.IsActive
	existing.UpdatedAt = r.s.stamp()
	r.s.users[user.ID] = existing
	user.UpdatedAt = existing.UpdatedAt
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	user, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, user := range r.s.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepo) CountByRole(_ context.Context, role domain.Role) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	count := 0
	for _, user := range r.s.users {
		if user.Role == role {
			count++
		}
	}
	return count, nil
}
