package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/job-portal/internal/domain"
)

// UserRepository defines persistence access for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	CreateWithSeekerProfile(ctx context.Context, user *domain.User, profile *domain.JobSeekerProfile) error
	CreateWithEmployerProfile(ctx context.Context, user *domain.User, profile *domain.EmployerProfile) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	CountByRole(ctx context.Context, role domain.Role) (int, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const insertUserQuery = `
        INSERT INTO users (email, password_hash, role, is_active)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.pool.QueryRow(ctx, insertUserQuery,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.IsActive,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	return translate(err)
}

func (r *userRepository) CreateWithSeekerProfile(ctx context.Context, user *domain.User, profile *domain.JobSeekerProfile) error {
	return withTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, insertUserQuery,
			user.Email, user.PasswordHash, user.Role, user.IsActive,
		).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return translate(err)
		}
		profile.UserID = user.ID
		return translate(upsertSeekerProfile(ctx, tx, profile))
	})
}

func (r *userRepository) CreateWithEmployerProfile(ctx context.Context, user *domain.User, profile *domain.EmployerProfile) error {
	return withTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, insertUserQuery,
			user.Email, user.PasswordHash, user.Role, user.IsActive,
		).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return translate(err)
		}
		profile.UserID = user.ID
		return translate(upsertEmployerProfile(ctx, tx, profile))
	})
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET email=$1, password_hash=$2, is_active=$3, updated_at=NOW()
        WHERE id=$4
        RETURNING updated_at`

	return translate(r.pool.QueryRow(ctx, query,
		user.Email,
		user.PasswordHash,
		user.IsActive,
		user.ID,
	).Scan(&user.UpdatedAt))
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `
        SELECT id, email, password_hash, role, is_active, created_at, updated_at
        FROM users WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
        SELECT id, email, password_hash, role, is_active, created_at, updated_at
        FROM users WHERE email=$1`
	return r.fetchSingle(ctx, query, email)
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepository) CountByRole(ctx context.Context, role domain.Role) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role=$1`, role).Scan(&count)
	return count, translate(err)
}
