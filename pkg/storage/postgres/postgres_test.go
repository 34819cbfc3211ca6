package postgres_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"smartsite/pkg/domain"
	"smartsite/pkg/storage"
	"smartsite/pkg/storage/postgres"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testUser     = "postgres"
	testPassword = "postgres"
	testDB       = "testdb"
)

type postgresContainer struct {
	Container testcontainers.Container
	Host      string
	Port      int
}

func startPostgresContainer(ctx context.Context) (*postgresContainer, error) {
	req := testcontainers.ContainerRequest{
		Image:        "postgres:17",
		ExposedPorts: []string{"5432"},
		Env: map[string]string{
			"POSTGRES_USER":     testUser,
			"POSTGRES_PASSWORD": testPassword,
			"POSTGRES_DB":       testDB,
		},
		WaitingFor: wait.ForListeningPort("5432"),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("could not start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not get container host: %w", err)
	}

	mappedPort, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return nil, fmt.Errorf("could not get mapped port: %w", err)
	}

	return &postgresContainer{
		Container: container,
		Host:      host,
		Port:      mappedPort.Int(),
	}, nil
}

func runMigrations(db *sql.DB, migrationsDir string) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("could not set dialect: %w", err)
	}

	if err := goose.Up(db, migrationsDir); err != nil {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupTestDB(t *testing.T) (*postgres.PgSQL, func()) {
	t.Helper()
	ctx := context.Background()

	// start container
	pgContainer, err := startPostgresContainer(ctx)
	require.NoError(t, err)

	// create postgres instance
	pgSQL, err := postgres.New(ctx, postgres.Options{
		Username:           testUser,
		Password:           testPassword,
		Host:               pgContainer.Host,
		Port:               pgContainer.Port,
		Database:           testDB,
		SslMode:            "disable",
		ConnMaxLifetime:    time.Minute,
		ConnMaxIdleTime:    time.Minute,
		MaxOpenConnections: 5,
		MaxIdleConnections: 5,
	})
	require.NoError(t, err)

	// run migrations
	migrationsDir := filepath.Join("..", "..", "..", "migrations")
	err = runMigrations(pgSQL.DB.(*sql.DB), migrationsDir)
	require.NoError(t, err)

	return pgSQL, func() {
		_ = pgSQL.Close()
		_ = pgContainer.Container.Terminate(ctx)
	}
}

func TestPgSQL_InsertDocument(t *testing.T) {
	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	email := "ana@roofs.example.com"
	id, err := pgSQL.InsertDocument(ctx, domain.LeadCollection, domain.Lead{
		Name:   "Ana",
		Phone:  "555",
		Email:  &email,
		Source: "calculator",
	})
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err, "id should be a uuid")

	var (
		collection string
		data       []byte
	)
	row := pgSQL.DB.QueryRowContext(ctx, `SELECT collection, data FROM documents WHERE id = $1`, id)
	require.NoError(t, row.Scan(&collection, &data))
	require.Equal(t, domain.LeadCollection, collection)

	var stored map[string]any
	require.NoError(t, json.Unmarshal(data, &stored))
	require.Equal(t, "Ana", stored["name"])
	require.Equal(t, email, stored["email"])
	require.NotContains(t, stored, "notes")

	otherID, err := pgSQL.InsertDocument(ctx, domain.LeadCollection, domain.Lead{Name: "Bo", Phone: "1", Source: "demo"})
	require.NoError(t, err)
	require.NotEqual(t, id, otherID)
}

func TestPgSQL_InsertDocument_EmptyCollection(t *testing.T) {
	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)

	_, err := pgSQL.InsertDocument(context.Background(), "", domain.Lead{})
	require.ErrorIs(t, err, storage.ErrInvalidCollection)
}

func TestPgSQL_CollectionsAndPing(t *testing.T) {
	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	require.NoError(t, pgSQL.Ping(ctx))
	require.Equal(t, testDB, pgSQL.Name())

	names, err := pgSQL.Collections(ctx)
	require.NoError(t, err)
	require.Empty(t, names)

	_, err = pgSQL.InsertDocument(ctx, domain.DemoRequestCollection, domain.DemoRequest{Name: "Bo", Phone: "1"})
	require.NoError(t, err)
	_, err = pgSQL.InsertDocument(ctx, domain.LeadCollection, domain.Lead{Name: "Ana", Phone: "2", Source: "demo"})
	require.NoError(t, err)
	_, err = pgSQL.InsertDocument(ctx, domain.LeadCollection, domain.Lead{Name: "Cy", Phone: "3", Source: "demo"})
	require.NoError(t, err)

	names, err = pgSQL.Collections(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{domain.DemoRequestCollection, domain.LeadCollection}, names)
}
