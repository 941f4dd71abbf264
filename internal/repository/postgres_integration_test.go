//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap/zaptest"

	"github.com/spec-kit/job-portal/internal/config"
	"github.com/spec-kit/job-portal/internal/persistence"
	"github.com/spec-kit/job-portal/internal/repository"
	"github.com/spec-kit/job-portal/internal/repository/repotest"
)

func startPostgres(t *testing.T, ctx context.Context) string {
	t.Helper()

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "portal",
			"POSTGRES_PASSWORD": "portal",
			"POSTGRES_DB":       "portal",
		},
		// the server restarts once after init, so the second line is the real one
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate postgres container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	return fmt.Sprintf("postgres://portal:portal@%s:%s/portal?sslmode=disable", host, port.Port())
}

func TestPostgresRepositories(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-based test in short mode")
	}

	ctx := context.Background()
	logger := zaptest.NewLogger(t)
	dsn := startPostgres(t, ctx)

	pg, err := persistence.NewPostgres(ctx, config.PostgresConfig{DSN: dsn, MaxConns: 16}, logger)
	require.NoError(t, err)
	t.Cleanup(pg.Close)

	require.NoError(t, persistence.RunMigrations(ctx, pg.PoolHandle(), "../../migrations", logger))
	// migrations must be safe to rerun on every start
	require.NoError(t, persistence.RunMigrations(ctx, pg.PoolHandle(), "../../migrations", logger))

	pool := pg.PoolHandle()
	repos := repotest.Repositories{
		Users:         repository.NewUserRepository(pool),
		Profiles:      repository.NewProfileRepository(pool),
		Jobs:          repository.NewJobRepository(pool),
		Applications:  repository.NewApplicationRepository(pool),
		Notifications: repository.NewNotificationRepository(pool),
	}
	repotest.Run(t, repos)

	t.Run("employer with jobs cannot be hard-deleted", func(t *testing.T) {
		employer := repotest.NewEmployer(t, repos)
		seeker := repotest.NewSeeker(t, repos)
		job := repotest.NewJob(t, repos, employer.ID)
		repotest.NewApplication(t, repos, job.ID, seeker.ID)

		_, err := pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, employer.ID)
		var pgErr *pgconn.PgError
		require.True(t, errors.As(err, &pgErr), "expected a postgres error, got %v", err)
		assert.Equal(t, "23503", pgErr.Code)

		_, err = repos.Jobs.GetByID(ctx, job.ID)
		assert.NoError(t, err, "the job survives the rejected delete")
	})
}
