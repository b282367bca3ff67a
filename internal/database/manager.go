package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"tsplit/internal/config"
)

// Manager provisions the per-worker test databases
type Manager struct {
	config *config.Config
}

// NewManager creates a new Manager
func NewManager(cfg *config.Config) *Manager {
	return &Manager{config: cfg}
}

// EnsureDatabases checks that a database exists for every worker and creates
// the missing ones. Returns the usable worker IDs and how many databases were
// newly created.
func (m *Manager) EnsureDatabases(workerCount int) ([]int, int, error) {
	// Load .env from the project directory. A missing file is fine, the
	// process environment is used instead.
	envPath := filepath.Join(m.config.ProjectPath, ".env")
	_ = godotenv.Load(envPath)

	db, err := sql.Open("mysql", serverDSN())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to connect to database server: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return nil, 0, fmt.Errorf("failed to ping database server: %w", err)
	}

	workers := make([]int, 0, workerCount)
	var created int

	for i := 1; i <= workerCount; i++ {
		dbName := m.config.GetDatabaseName(i)

		exists, err := m.databaseExists(db, dbName)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to check database %s: %w", dbName, err)
		}

		if !exists {
			if err := m.createDatabase(db, dbName); err != nil {
				return nil, 0, fmt.Errorf("failed to create database %s: %w", dbName, err)
			}
			created++
		}

		workers = append(workers, i)
	}

	return workers, created, nil
}

// databaseExists checks if a database exists
func (m *Manager) databaseExists(db *sql.DB, dbName string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT SCHEMA_NAME FROM INFORMATION_SCHEMA.SCHEMATA WHERE SCHEMA_NAME = ?)"
	err := db.QueryRow(query, dbName).Scan(&exists)
	return exists, err
}

// createDatabase creates a new database
func (m *Manager) createDatabase(db *sql.DB, dbName string) error {
	// Database names cannot be bound as query parameters
	if !validDatabaseName(dbName) {
		return fmt.Errorf("invalid database name: %s", dbName)
	}

	query := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", dbName)
	_, err := db.Exec(query)
	return err
}

// serverDSN builds a DSN for the MySQL server without selecting a database.
func serverDSN() string {
	host := envOr("DB_HOST", "127.0.0.1")
	port := envOr("DB_PORT", "3306")
	user := envOr("DB_USERNAME", "root")
	password := os.Getenv("DB_PASSWORD")
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/", user, password, host, port)
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// validDatabaseName validates a database name (basic check)
func validDatabaseName(name string) bool {
	if len(name) == 0 || len(name) > 64 {
		return false
	}
	invalid := []string{"'", "\"", ";", "--", "/*", "*/", "DROP", "DELETE", "TRUNCATE"}
	upperName := strings.ToUpper(name)
	for _, pattern := range invalid {
		if strings.Contains(upperName, pattern) {
			return false
		}
	}
	return true
}
