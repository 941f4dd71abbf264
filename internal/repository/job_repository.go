package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/job-portal/internal/domain"
)

// JobFilter captures public search parameters. Nil or empty fields are ignored.
type JobFilter struct {
	Keyword         string
	JobType         domain.JobType
	Location        string
	ExperienceLevel domain.ExperienceLevel
	MinSalary       *float64
	MaxSalary       *float64
	Status          domain.JobStatus
	Limit           int
	Offset          int
}

// JobRepository encapsulates job persistence.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	Update(ctx context.Context, job *domain.Job) error
	GetByID(ctx context.Context, id string) (*domain.Job, error)
	GetWithEmployer(ctx context.Context, id string) (*domain.JobWithEmployer, error)
	Search(ctx context.Context, filter JobFilter) ([]domain.JobWithEmployer, int, error)
	ListByEmployer(ctx context.Context, employerID string, limit int) ([]domain.JobWithApplicationCount, error)
	IDsByEmployer(ctx context.Context, employerID string) ([]string, error)
	CountByStatusForEmployer(ctx context.Context, employerID string) (domain.JobStatusCounts, error)
	ListRecommended(ctx context.Context, seekerID string, limit int) ([]domain.JobWithEmployer, error)
	// DeleteWithApplications removes the job and every application to it in one
	// transaction and reports how many applications were removed.
	DeleteWithApplications(ctx context.Context, id string) (int, error)
	CountActive(ctx context.Context) (int, error)
}

type jobRepository struct {
	pool *pgxpool.Pool
}

// NewJobRepository instantiates repository.
func NewJobRepository(pool *pgxpool.Pool) JobRepository {
	return &jobRepository{pool: pool}
}

const jobColumns = `j.id, j.employer_id, j.title, j.description, j.qualifications, j.responsibilities,
               j.job_type, j.location, j.salary_min, j.salary_max, j.salary_period, j.experience_level,
               j.skills, j.benefits, j.status, j.application_deadline, j.created_at, j.updated_at`

const employerColumns = `u.email, COALESCE(ep.company_name, ''), COALESCE(ep.location, ''),
               COALESCE(ep.company_website, ''), COALESCE(ep.logo_path, '')`

const jobWithEmployerFrom = `FROM jobs j
        JOIN users u ON u.id = j.employer_id
        LEFT JOIN employer_profiles ep ON ep.user_id = j.employer_id`

func (r *jobRepository) Create(ctx context.Context, job *domain.Job) error {
	const query = `
        INSERT INTO jobs (employer_id, title, description, qualifications, responsibilities, job_type,
            location, salary_min, salary_max, salary_period, experience_level, skills, benefits, status,
            application_deadline)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,COALESCE($12::text[], '{}'),$13,$14,$15)
        RETURNING id, skills, created_at, updated_at`
	return translate(r.pool.QueryRow(ctx, query,
		job.EmployerID,
		job.Title,
		job.Description,
		job.Qualifications,
		job.Responsibilities,
		job.JobType,
		job.Location,
		job.SalaryMin,
		job.SalaryMax,
		job.SalaryPeriod,
		job.ExperienceLevel,
		job.Skills,
		job.Benefits,
		job.Status,
		job.ApplicationDeadline,
	).Scan(&job.ID, &job.Skills, &job.CreatedAt, &job.UpdatedAt))
}

func (r *jobRepository) Update(ctx context.Context, job *domain.Job) error {
	const query = `
        UPDATE jobs SET title=$1, description=$2, qualifications=$3, responsibilities=$4, job_type=$5,
            location=$6, salary_min=$7, salary_max=$8, salary_period=$9, experience_level=$10,
            skills=COALESCE($11::text[], '{}'), benefits=$12, status=$13, application_deadline=$14,
            updated_at=NOW()
        WHERE id=$15
        RETURNING updated_at`
	return translate(r.pool.QueryRow(ctx, query,
		job.Title,
		job.Description,
		job.Qualifications,
		job.Responsibilities,
		job.JobType,
		job.Location,
		job.SalaryMin,
		job.SalaryMax,
		job.SalaryPeriod,
		job.ExperienceLevel,
		job.Skills,
		job.Benefits,
		job.Status,
		job.ApplicationDeadline,
		job.ID,
	).Scan(&job.UpdatedAt))
}

func (r *jobRepository) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs j WHERE j.id=$1`
	var job domain.Job
	if err := r.pool.QueryRow(ctx, query, id).Scan(jobScanTargets(&job)...); err != nil {
		return nil, translate(err)
	}
	return &job, nil
}

func (r *jobRepository) GetWithEmployer(ctx context.Context, id string) (*domain.JobWithEmployer, error) {
	query := `SELECT ` + jobColumns + `, ` + employerColumns + ` ` + jobWithEmployerFrom + ` WHERE j.id=$1`
	var item domain.JobWithEmployer
	if err := r.pool.QueryRow(ctx, query, id).Scan(jobWithEmployerTargets(&item)...); err != nil {
		return nil, translate(err)
	}
	item.Employer.UserID = item.EmployerID
	return &item, nil
}

func (r *jobRepository) Search(ctx context.Context, filter JobFilter) ([]domain.JobWithEmployer, int, error) {
	clauses := []string{"1=1"}
	args := []any{}

	status := filter.Status
	if status == "" {
		status = domain.JobStatusActive
	}
	args = append(args, status)
	clauses = append(clauses, fmt.Sprintf("j.status=$%d", len(args)))

	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		args = append(args, "%"+keyword+"%")
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(j.title ILIKE %s OR j.description ILIKE %s)", placeholder, placeholder))
	}
	if filter.JobType != "" {
		args = append(args, filter.JobType)
		clauses = append(clauses, fmt.Sprintf("j.job_type=$%d", len(args)))
	}
	if location := strings.TrimSpace(filter.Location); location != "" {
		args = append(args, "%"+location+"%")
		clauses = append(clauses, fmt.Sprintf("j.location ILIKE $%d", len(args)))
	}
	if filter.ExperienceLevel != "" {
		args = append(args, filter.ExperienceLevel)
		clauses = append(clauses, fmt.Sprintf("j.experience_level=$%d", len(args)))
	}
	if filter.MinSalary != nil {
		args = append(args, *filter.MinSalary)
		clauses = append(clauses, fmt.Sprintf("j.salary_max >= $%d", len(args)))
	}
	if filter.MaxSalary != nil {
		args = append(args, *filter.MaxSalary)
		clauses = append(clauses, fmt.Sprintf("j.salary_min <= $%d", len(args)))
	}

	where := strings.Join(clauses, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM jobs j WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, translate(err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s, %s %s WHERE %s ORDER BY j.created_at DESC LIMIT %d OFFSET %d`,
		jobColumns, employerColumns, jobWithEmployerFrom, where, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, translate(err)
	}
	defer rows.Close()

	items, err := scanJobsWithEmployer(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *jobRepository) ListByEmployer(ctx context.Context, employerID string, limit int) ([]domain.JobWithApplicationCount, error) {
	query := `SELECT ` + jobColumns + `,
               (SELECT COUNT(*) FROM applications a WHERE a.job_id = j.id)
        FROM jobs j WHERE j.employer_id=$1 ORDER BY j.created_at DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := r.pool.Query(ctx, query, employerID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	result := []domain.JobWithApplicationCount{}
	for rows.Next() {
		var item domain.JobWithApplicationCount
		targets := append(jobScanTargets(&item.Job), &item.ApplicationCount)
		if err := rows.Scan(targets...); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func (r *jobRepository) IDsByEmployer(ctx context.Context, employerID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM jobs WHERE employer_id=$1`, employerID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *jobRepository) CountByStatusForEmployer(ctx context.Context, employerID string) (domain.JobStatusCounts, error) {
	const query = `SELECT status, COUNT(*) FROM jobs WHERE employer_id=$1 GROUP BY status`
	rows, err := r.pool.Query(ctx, query, employerID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	counts := domain.NewJobStatusCounts()
	for rows.Next() {
		var (
			status domain.JobStatus
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func (r *jobRepository) ListRecommended(ctx context.Context, seekerID string, limit int) ([]domain.JobWithEmployer, error) {
	if limit <= 0 {
		limit = 5
	}
	query := fmt.Sprintf(`SELECT %s, %s %s
        WHERE j.status=$1
          AND NOT EXISTS (SELECT 1 FROM applications a WHERE a.job_id = j.id AND a.job_seeker_id = $2)
        ORDER BY j.created_at DESC LIMIT %d`, jobColumns, employerColumns, jobWithEmployerFrom, limit)

	rows, err := r.pool.Query(ctx, query, domain.JobStatusActive, seekerID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()
	return scanJobsWithEmployer(rows)
}

func (r *jobRepository) DeleteWithApplications(ctx context.Context, id string) (int, error) {
	var removed int
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		var locked string
		if err := tx.QueryRow(ctx, `SELECT id FROM jobs WHERE id=$1 FOR UPDATE`, id).Scan(&locked); err != nil {
			return translate(err)
		}

		cmd, err := tx.Exec(ctx, `DELETE FROM applications WHERE job_id=$1`, id)
		if err != nil {
			return fmt.Errorf("delete applications: %w", err)
		}
		removed = int(cmd.RowsAffected())

		cmd, err = tx.Exec(ctx, `DELETE FROM jobs WHERE id=$1`, id)
		if err != nil {
			return fmt.Errorf("delete job: %w", err)
		}
		if cmd.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func (r *jobRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE status=$1`, domain.JobStatusActive).Scan(&count)
	return count, translate(err)
}

func jobScanTargets(job *domain.Job) []any {
	return []any{
		&job.ID,
		&job.EmployerID,
		&job.Title,
		&job.Description,
		&job.Qualifications,
		&job.Responsibilities,
		&job.JobType,
		&job.Location,
		&job.SalaryMin,
		&job.SalaryMax,
		&job.SalaryPeriod,
		&job.ExperienceLevel,
		&job.Skills,
		&job.Benefits,
		&job.Status,
		&job.ApplicationDeadline,
		&job.CreatedAt,
		&job.UpdatedAt,
	}
}

func jobWithEmployerTargets(item *domain.JobWithEmployer) []any {
	return append(jobScanTargets(&item.Job),
		&item.Employer.Email,
		&item.Employer.CompanyName,
		&item.Employer.Location,
		&item.Employer.Website,
		&item.Employer.LogoPath,
	)
}

func scanJobsWithEmployer(rows pgx.Rows) ([]domain.JobWithEmployer, error) {
	result := []domain.JobWithEmployer{}
	for rows.Next() {
		var item domain.JobWithEmployer
		if err := rows.Scan(jobWithEmployerTargets(&item)...); err != nil {
			return nil, err
		}
		item.Employer.UserID = item.EmployerID
		result = append(result, item)
	}
	return result, rows.Err()
}
