// Package database manages the MySQL connection used by the mysql output format.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/dbsmedya/gotreasury/internal/config"
)

// Opener opens a database handle for a DSN. It exists so tests can
// substitute sqlmock for the real driver.
type Opener func(dsn string) (*sql.DB, error)

func openMySQL(dsn string) (*sql.DB, error) {
	return sql.Open("mysql", dsn)
}

// Manager owns the destination connection pool.
type Manager struct {
	DB *sql.DB

	config     *config.DatabaseConfig
	open       Opener
	maxRetries int
	backoff    time.Duration
}

// NewManager creates a manager for the destination database.
func NewManager(cfg *config.DatabaseConfig) *Manager {
	return &Manager{
		config:     cfg,
		open:       openMySQL,
		maxRetries: 3,
		backoff:    time.Second,
	}
}

// WithOpener replaces the function used to open connections.
func (m *Manager) WithOpener(open Opener) *Manager {
	m.open = open
	return m
}

// Connect opens and verifies the destination connection.
func (m *Manager) Connect(ctx context.Context) error {
	db, err := m.connectWithRetry(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to destination database: %w", err)
	}
	m.DB = db
	return nil
}

// connectWithRetry attempts to connect with exponential backoff.
func (m *Manager) connectWithRetry(ctx context.Context) (*sql.DB, error) {
	var err error
	backoff := m.backoff

	for i := 0; i < m.maxRetries; i++ {
		var db *sql.DB
		db, err = m.connect()
		if err == nil {
			if err = db.PingContext(ctx); err == nil {
				return db, nil
			}
			db.Close()
		}

		if i < m.maxRetries-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
				backoff *= 2
			}
		}
	}

	return nil, fmt.Errorf("failed after %d retries: %w", m.maxRetries, err)
}

// connect creates a database handle and configures its pool.
func (m *Manager) connect() (*sql.DB, error) {
	db, err := m.open(BuildDSN(m.config))
	if err != nil {
		return nil, err
	}

	if m.config.MaxConnections > 0 {
		db.SetMaxOpenConns(m.config.MaxConnections)
	}
	if m.config.MaxIdleConnections > 0 {
		db.SetMaxIdleConns(m.config.MaxIdleConnections)
	}
	db.SetConnMaxLifetime(10 * time.Minute)

	return db, nil
}

// BuildDSN constructs a MySQL DSN from configuration. Times are parsed
// and sent in UTC so DATE and DATETIME columns round-trip unchanged.
func BuildDSN(cfg *config.DatabaseConfig) string {
	dsn := mysql.NewConfig()
	dsn.User = cfg.User
	dsn.Passwd = cfg.Password
	dsn.Net = "tcp"
	dsn.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	dsn.DBName = cfg.Database
	dsn.ParseTime = true
	dsn.Loc = time.UTC

	switch cfg.TLS {
	case "disable":
		dsn.TLSConfig = "false"
	case "required":
		dsn.TLSConfig = "true"
	default:
		dsn.TLSConfig = "preferred"
	}

	return dsn.FormatDSN()
}

// Close closes the destination connection if open.
func (m *Manager) Close() error {
	if m.DB == nil {
		return nil
	}
	if err := m.DB.Close(); err != nil {
		return fmt.Errorf("destination close: %w", err)
	}
	m.DB = nil
	return nil
}

// Ping verifies the connection is alive.
func (m *Manager) Ping(ctx context.Context) error {
	if m.DB == nil {
		return fmt.Errorf("destination ping failed: not connected")
	}
	if err := m.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("destination ping failed: %w", err)
	}
	return nil
}
