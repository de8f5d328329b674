package db

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v4/pgxpool"
)

// CreateTestPool connects to TEST_POSTGRESQL_URL after applying migrations
// from TEST_MIGRATIONS_PATH. The test is skipped when the URL is not set.
func CreateTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	connString := os.Getenv("TEST_POSTGRESQL_URL")
	if connString == "" {
		t.Skip("TEST_POSTGRESQL_URL is not set")
	}
	migrationsPath := os.Getenv("TEST_MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "../../../migrations"
	}
	if err := Migrate(connString, migrationsPath); err != nil {
		t.Fatalf("could not apply DB migrations: %v", err)
	}

	pool, err := Connect(context.Background(), connString)
	if err != nil {
		t.Fatalf("could not connect to the database: %v", err)
	}
	return pool
}

func TruncateTables(pool *pgxpool.Pool) {
	_, err := pool.Exec(context.Background(), `TRUNCATE session, "user" RESTART IDENTITY CASCADE`)
	if err != nil {
		panic("Could not truncate DB tables.")
	}
}
