package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/job-portal/internal/domain"
)

// ApplicationFilter narrows application listings.
type ApplicationFilter struct {
	Status *domain.ApplicationStatus
	Limit  int
}

// ApplicationRepository encapsulates the application ledger storage.
type ApplicationRepository interface {
	// Create inserts a pending application. A second application for the same
	// (job, seeker) pair fails with ErrDuplicate.
	Create(ctx context.Context, app *domain.Application) error
	GetByID(ctx context.Context, id string) (*domain.Application, error)
	GetDetail(ctx context.Context, id string) (*domain.ApplicationDetail, error)
	ExistsForJobAndSeeker(ctx context.Context, jobID, seekerID string) (bool, error)
	Update(ctx context.Context, app *domain.Application) error
	Delete(ctx context.Context, id string) error
	ListBySeeker(ctx context.Context, seekerID string, filter ApplicationFilter) ([]domain.ApplicationWithJob, error)
	ListByJob(ctx context.Context, jobID string, filter ApplicationFilter) ([]domain.ApplicationWithSeeker, error)
	ListByJobIDs(ctx context.Context, jobIDs []string, filter ApplicationFilter) ([]domain.ApplicationDetail, error)
	CountByStatusForSeeker(ctx context.Context, seekerID string) (domain.StatusCounts, error)
	CountByStatusForJobs(ctx context.Context, jobIDs []string) (domain.StatusCounts, error)
	CountAll(ctx context.Context) (int, error)
}

type applicationRepository struct {
	pool *pgxpool.Pool
}

// NewApplicationRepository instantiates repository.
func NewApplicationRepository(pool *pgxpool.Pool) ApplicationRepository {
	return &applicationRepository{pool: pool}
}

const applicationDetailSelect = `
        SELECT a.id, a.job_id, a.job_seeker_id, a.cover_letter, a.status, a.notes, a.created_at, a.updated_at,
               j.employer_id, j.title, j.location, j.job_type, j.status, j.salary_min, j.salary_max, j.salary_period,
               COALESCE(ep.company_name, ''),
               su.email, COALESCE(sp.full_name, ''), COALESCE(sp.phone, ''), COALESCE(sp.location, ''),
               COALESCE(sp.skills, '{}'), COALESCE(sp.experience, ''), COALESCE(sp.education, ''),
               COALESCE(sp.resume_path, '')
        FROM applications a
        JOIN jobs j ON j.id = a.job_id
        LEFT JOIN employer_profiles ep ON ep.user_id = j.employer_id
        JOIN users su ON su.id = a.job_seeker_id
        LEFT JOIN job_seeker_profiles sp ON sp.user_id = a.job_seeker_id`

func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) error {
	const query = `
        INSERT INTO applications (job_id, job_seeker_id, cover_letter, status, notes)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return translate(r.pool.QueryRow(ctx, query,
		app.JobID,
		app.JobSeekerID,
		app.CoverLetter,
		app.Status,
		app.Notes,
	).Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt))
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	const query = `
        SELECT id, job_id, job_seeker_id, cover_letter, status, notes, created_at, updated_at
        FROM applications WHERE id=$1`

	var app domain.Application
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&app.ID,
		&app.JobID,
		&app.JobSeekerID,
		&app.CoverLetter,
		&app.Status,
		&app.Notes,
		&app.CreatedAt,
		&app.UpdatedAt,
	); err != nil {
		return nil, translate(err)
	}
	return &app, nil
}

func (r *applicationRepository) GetDetail(ctx context.Context, id string) (*domain.ApplicationDetail, error) {
	var detail domain.ApplicationDetail
	if err := r.pool.QueryRow(ctx, applicationDetailSelect+` WHERE a.id=$1`, id).Scan(detailScanTargets(&detail)...); err != nil {
		return nil, translate(err)
	}
	fillDetailKeys(&detail)
	return &detail, nil
}

func (r *applicationRepository) ExistsForJobAndSeeker(ctx context.Context, jobID, seekerID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM applications WHERE job_id=$1 AND job_seeker_id=$2)`
	var exists bool
	err := r.pool.QueryRow(ctx, query, jobID, seekerID).Scan(&exists)
	return exists, translate(err)
}

func (r *applicationRepository) Update(ctx context.Context, app *domain.Application) error {
	const query = `
        UPDATE applications SET status=$1, notes=$2, updated_at=NOW()
        WHERE id=$3
        RETURNING updated_at`
	return translate(r.pool.QueryRow(ctx, query, app.Status, app.Notes, app.ID).Scan(&app.UpdatedAt))
}

func (r *applicationRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM applications WHERE id=$1`, id)
	if err != nil {
		return translate(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *applicationRepository) ListBySeeker(ctx context.Context, seekerID string, filter ApplicationFilter) ([]domain.ApplicationWithJob, error) {
	details, err := r.listDetails(ctx, "a.job_seeker_id=$1", seekerID, filter)
	if err != nil {
		return nil, err
	}
	result := make([]domain.ApplicationWithJob, 0, len(details))
	for _, d := range details {
		result = append(result, d.WithJob())
	}
	return result, nil
}

func (r *applicationRepository) ListByJob(ctx context.Context, jobID string, filter ApplicationFilter) ([]domain.ApplicationWithSeeker, error) {
	details, err := r.listDetails(ctx, "a.job_id=$1", jobID, filter)
	if err != nil {
		return nil, err
	}
	result := make([]domain.ApplicationWithSeeker, 0, len(details))
	for _, d := range details {
		result = append(result, d.WithSeeker())
	}
	return result, nil
}

func (r *applicationRepository) ListByJobIDs(ctx context.Context, jobIDs []string, filter ApplicationFilter) ([]domain.ApplicationDetail, error) {
	if len(jobIDs) == 0 {
		return []domain.ApplicationDetail{}, nil
	}
	return r.listDetails(ctx, "a.job_id = ANY($1)", jobIDs, filter)
}

func (r *applicationRepository) listDetails(ctx context.Context, scope string, scopeArg any, filter ApplicationFilter) ([]domain.ApplicationDetail, error) {
	clauses := []string{scope}
	args := []any{scopeArg}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("a.status=$%d", len(args)))
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY a.created_at DESC`, applicationDetailSelect, strings.Join(clauses, " AND "))
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()
	return scanDetails(rows)
}

func (r *applicationRepository) CountByStatusForSeeker(ctx context.Context, seekerID string) (domain.StatusCounts, error) {
	const query = `SELECT status, COUNT(*) FROM applications WHERE job_seeker_id=$1 GROUP BY status`
	return r.countByStatus(ctx, query, seekerID)
}

func (r *applicationRepository) CountByStatusForJobs(ctx context.Context, jobIDs []string) (domain.StatusCounts, error) {
	if len(jobIDs) == 0 {
		return domain.NewStatusCounts(), nil
	}
	const query = `SELECT status, COUNT(*) FROM applications WHERE job_id = ANY($1) GROUP BY status`
	return r.countByStatus(ctx, query, jobIDs)
}

func (r *applicationRepository) countByStatus(ctx context.Context, query string, arg any) (domain.StatusCounts, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	counts := domain.NewStatusCounts()
	for rows.Next() {
		var (
			status domain.ApplicationStatus
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func (r *applicationRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM applications`).Scan(&count)
	return count, translate(err)
}

func detailScanTargets(d *domain.ApplicationDetail) []any {
	return []any{
		&d.ID,
		&d.JobID,
		&d.JobSeekerID,
		&d.CoverLetter,
		&d.Status,
		&d.Notes,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.Job.EmployerID,
		&d.Job.Title,
		&d.Job.Location,
		&d.Job.JobType,
		&d.Job.Status,
		&d.Job.SalaryMin,
		&d.Job.SalaryMax,
		&d.Job.SalaryPeriod,
		&d.CompanyName,
		&d.Seeker.Email,
		&d.Seeker.FullName,
		&d.Seeker.Phone,
		&d.Seeker.Location,
		&d.Seeker.Skills,
		&d.Seeker.Experience,
		&d.Seeker.Education,
		&d.Seeker.ResumePath,
	}
}

func fillDetailKeys(d *domain.ApplicationDetail) {
	d.Job.ID = d.JobID
	d.Seeker.UserID = d.JobSeekerID
}

func scanDetails(rows pgx.Rows) ([]domain.ApplicationDetail, error) {
	result := []domain.ApplicationDetail{}
	for rows.Next() {
		var detail domain.ApplicationDetail
		if err := rows.Scan(detailScanTargets(&detail)...); err != nil {
			return nil, err
		}
		fillDetailKeys(&detail)
		result = append(result, detail)
	}
	return result, rows.Err()
}
