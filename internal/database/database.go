package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	host   = "db"
	port   = 5432
	user   = "postgres"
	dbName = "bot_data"
)

var ErrNotFound = errors.New("no saved expression with that name")

type SavedExpression struct {
	Name       string
	Definition string
	Canonical  string
	Tree       json.RawMessage
	CreatedBy  string
	UpdatedAt  time.Time
}

type Store struct {
	pool *pgxpool.Pool
}

// ConnString returns DATABASE_URL when set, and otherwise the address of the
// compose database using POSTGRES_PASSWORD.
func ConnString() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	password := os.Getenv("POSTGRES_PASSWORD")
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		user, password, host, port, dbName)
}

// Connect opens a pool and makes sure the database answers. The store should
// be closed when the application exits.
func Connect(ctx context.Context, connString string) (*Store, error) {
	dbpool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	// Make sure database is responding
	err = dbpool.Ping(ctx)
	if err != nil {
		dbpool.Close()
		return nil, fmt.Errorf("database did not respond after connecting: %w", err)
	}
	return &Store{pool: dbpool}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS saved_expressions (
	name        TEXT PRIMARY KEY,
	definition  TEXT NOT NULL,
	canonical   TEXT NOT NULL,
	tree        JSONB NOT NULL,
	created_by  TEXT NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`

func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create saved_expressions table: %w", err)
	}
	return nil
}

// SaveExpression inserts the expression, replacing any earlier one with the
// same name.
func (s *Store) SaveExpression(ctx context.Context, expr SavedExpression) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO saved_expressions (name, definition, canonical, tree, created_by, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (name) DO UPDATE
		SET definition = EXCLUDED.definition,
			canonical = EXCLUDED.canonical,
			tree = EXCLUDED.tree,
			created_by = EXCLUDED.created_by,
			updated_at = now();`,
		expr.Name, expr.Definition, expr.Canonical, []byte(expr.Tree), expr.CreatedBy)
	if err != nil {
		return errors.Join(
			fmt.Errorf("failed to save expression '%s': %w", expr.Name, err),
			tx.Rollback(ctx))
	}

	err = tx.Commit(ctx)
	if err != nil {
		return fmt.Errorf("failed to commit expression '%s': %w", expr.Name, err)
	}
	return nil
}

func (s *Store) GetExpression(ctx context.Context, name string) (SavedExpression, error) {
	var expr SavedExpression
	var tree []byte
	err := s.pool.QueryRow(ctx, `
		SELECT name, definition, canonical, tree, created_by, updated_at
		FROM saved_expressions WHERE name = $1;`, name).
		Scan(&expr.Name, &expr.Definition, &expr.Canonical, &tree, &expr.CreatedBy, &expr.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SavedExpression{}, ErrNotFound
		}
		return SavedExpression{}, fmt.Errorf("failed to get expression '%s': %w", name, err)
	}
	expr.Tree = tree
	return expr, nil
}

// ListExpressions returns the names of saved expressions in alphabetical order.
func (s *Store) ListExpressions(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, "SELECT name FROM saved_expressions ORDER BY name;")
	if err != nil {
		return nil, fmt.Errorf("failed to list expressions: %w", err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to read expression names: %w", err)
	}
	return names, nil
}
