//go:build integration

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	postgresImage    = "postgres:16-alpine"
	postgresUser     = "postgres"
	postgresPassword = "postgres"
	postgresDB       = "securityagency_test"
)

// testContainerSetup holds the postgres container shared by the integration tests.
type testContainerSetup struct {
	container *postgres.PostgresContainer
	dsn       string
}

func startPostgresContainer(ctx context.Context) (*testContainerSetup, error) {
	container, err := postgres.Run(ctx,
		postgresImage,
		postgres.WithDatabase(postgresDB),
		postgres.WithUsername(postgresUser),
		postgres.WithPassword(postgresPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = testcontainers.TerminateContainer(container)
		return nil, fmt.Errorf("failed to get postgres connection string: %w", err)
	}

	return &testContainerSetup{container: container, dsn: dsn}, nil
}

func (s *testContainerSetup) teardown() error {
	return testcontainers.TerminateContainer(s.container)
}
