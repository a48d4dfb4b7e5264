package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"

	"cofre/internal/server/repositories/messages"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func TestNewPostgresRepositoryManager_ReturnsInterface(t *testing.T) {
	m := NewPostgresRepositoryManager()
	var _ RepositoryManager = m
}

func TestMessages_ReturnsConcreteRepo(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	m := &PostgresRepositoryManager{}

	if r := m.Messages(db); r == nil {
		t.Fatal("Messages() nil")
	}
	var _ messages.Repository = m.Messages(db)
}

func TestRunMigrations_PropagatesGooseError(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })

	want := errors.New("goose failed")
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return want
	}

	m := &PostgresRepositoryManager{}
	if err := m.RunMigrations(context.Background(), db); !errors.Is(err, want) {
		t.Fatalf("expected goose error, got %v", err)
	}
}

func TestRunMigrations_Success(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })

	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return nil
	}

	m := &PostgresRepositoryManager{}
	if err := m.RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWithConnectTimeout(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
		want string
	}{
		{"url no query", "postgres://u:p@h:5432/db", "postgres://u:p@h:5432/db?connect_timeout=10"},
		{"url with query", "postgres://u:p@h:5432/db?sslmode=disable", "postgres://u:p@h:5432/db?sslmode=disable&connect_timeout=10"},
		{"already set", "postgres://h/db?connect_timeout=5", "postgres://h/db?connect_timeout=5"},
		{"keyword form", "host=h dbname=db", "host=h dbname=db connect_timeout=10"},
		{"empty", "", "connect_timeout=10"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := withConnectTimeout(tc.dsn); got != tc.want {
				t.Fatalf("withConnectTimeout(%q) = %q, want %q", tc.dsn, got, tc.want)
			}
		})
	}
}
