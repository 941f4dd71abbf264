package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/job-portal/internal/domain"
)

// ProfileRepository stores the per-role profile attached to a user.
type ProfileRepository interface {
	GetSeeker(ctx context.Context, userID string) (*domain.JobSeekerProfile, error)
	UpsertSeeker(ctx context.Context, profile *domain.JobSeekerProfile) error
	GetEmployer(ctx context.Context, userID string) (*domain.EmployerProfile, error)
	UpsertEmployer(ctx context.Context, profile *domain.EmployerProfile) error
}

type profileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository instantiates repository.
func NewProfileRepository(pool *pgxpool.Pool) ProfileRepository {
	return &profileRepository{pool: pool}
}

func (r *profileRepository) GetSeeker(ctx context.Context, userID string) (*domain.JobSeekerProfile, error) {
	const query = `
        SELECT id, user_id, full_name, phone, location, skills, experience, education,
               resume_path, bio, created_at, updated_at
        FROM job_seeker_profiles WHERE user_id=$1`

	var p domain.JobSeekerProfile
	if err := r.pool.QueryRow(ctx, query, userID).Scan(
		&p.ID,
		&p.UserID,
		&p.FullName,
		&p.Phone,
		&p.Location,
		&p.Skills,
		&p.Experience,
		&p.Education,
		&p.ResumePath,
		&p.Bio,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *profileRepository) UpsertSeeker(ctx context.Context, profile *domain.JobSeekerProfile) error {
	return translate(upsertSeekerProfile(ctx, r.pool, profile))
}

func (r *profileRepository) GetEmployer(ctx context.Context, userID string) (*domain.EmployerProfile, error) {
	const query = `
        SELECT id, user_id, company_name, company_website, company_size, industry, location,
               phone, description, logo_path, created_at, updated_at
        FROM employer_profiles WHERE user_id=$1`

	var p domain.EmployerProfile
	if err := r.pool.QueryRow(ctx, query, userID).Scan(
		&p.ID,
		&p.UserID,
		&p.CompanyName,
		&p.CompanyWebsite,
		&p.CompanySize,
		&p.Industry,
		&p.Location,
		&p.Phone,
		&p.Description,
		&p.LogoPath,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *profileRepository) UpsertEmployer(ctx context.Context, profile *domain.EmployerProfile) error {
	return translate(upsertEmployerProfile(ctx, r.pool, profile))
}

// rowQuerier is satisfied by both *pgxpool.Pool and pgx.Tx.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func upsertSeekerProfile(ctx context.Context, q rowQuerier, p *domain.JobSeekerProfile) error {
	const query = `
        INSERT INTO job_seeker_profiles (user_id, full_name, phone, location, skills, experience,
            education, resume_path, bio)
        VALUES ($1,$2,$3,$4,COALESCE($5::text[], '{}'),$6,$7,$8,$9)
        ON CONFLICT (user_id) DO UPDATE SET
            full_name=EXCLUDED.full_name, phone=EXCLUDED.phone, location=EXCLUDED.location,
            skills=EXCLUDED.skills, experience=EXCLUDED.experience, education=EXCLUDED.education,
            resume_path=EXCLUDED.resume_path, bio=EXCLUDED.bio, updated_at=NOW()
        RETURNING id, created_at, updated_at`
	return q.QueryRow(ctx, query,
		p.UserID,
		p.FullName,
		p.Phone,
		p.Location,
		p.Skills,
		p.Experience,
		p.Education,
		p.ResumePath,
		p.Bio,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func upsertEmployerProfile(ctx context.Context, q rowQuerier, p *domain.EmployerProfile) error {
	const query = `
        INSERT INTO employer_profiles (user_id, company_name, company_website, company_size, industry,
            location, phone, description, logo_path)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        ON CONFLICT (user_id) DO UPDATE SET
            company_name=EXCLUDED.company_name, company_website=EXCLUDED.company_website,
            company_size=EXCLUDED.company_size, industry=EXCLUDED.industry, location=EXCLUDED.location,
            phone=EXCLUDED.phone, description=EXCLUDED.description, logo_path=EXCLUDED.logo_path,
            updated_at=NOW()
        RETURNING id, created_at, updated_at`
	return q.QueryRow(ctx, query,
		p.UserID,
		p.CompanyName,
		p.CompanyWebsite,
		p.CompanySize,
		p.Industry,
		p.Location,
		p.Phone,
		p.Description,
		p.LogoPath,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}
