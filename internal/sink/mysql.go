package sink

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dbsmedya/gotreasury/internal/config"
	"github.com/dbsmedya/gotreasury/internal/lock"
	"github.com/dbsmedya/gotreasury/internal/logger"
	"github.com/dbsmedya/gotreasury/internal/sqlutil"
	"github.com/dbsmedya/gotreasury/internal/table"
)

// DefaultBatchSize is the number of rows per INSERT when none is configured.
const DefaultBatchSize = 500

// maxPlaceholders is MySQL's limit on bind parameters per statement.
const maxPlaceholders = 65535

// MySQLSink loads tables into a MySQL database.
//
// A load holds the database's advisory load lock on a dedicated
// connection, creates missing tables, optionally truncates them, then
// inserts every row of every table in one transaction.
type MySQLSink struct {
	db          *sql.DB
	database    string
	batchSize   int
	lockTimeout int
	truncate    bool
	log         *logger.Logger
}

// NewMySQLSink creates a MySQL sink. database names the load lock.
func NewMySQLSink(db *sql.DB, database string, log *logger.Logger) *MySQLSink {
	if log == nil {
		log = logger.NewNop()
	}
	return &MySQLSink{
		db:          db,
		database:    database,
		batchSize:   DefaultBatchSize,
		lockTimeout: lock.TimeoutMedium,
		log:         log.WithSink(config.FormatMySQL),
	}
}

// WithBatchSize sets the rows per INSERT. Non-positive values are ignored.
func (s *MySQLSink) WithBatchSize(n int) *MySQLSink {
	if n > 0 {
		s.batchSize = n
	}
	return s
}

// WithLockTimeout sets the load lock wait in seconds.
func (s *MySQLSink) WithLockTimeout(seconds int) *MySQLSink {
	s.lockTimeout = seconds
	return s
}

// WithTruncate empties existing tables before loading.
func (s *MySQLSink) WithTruncate(truncate bool) *MySQLSink {
	s.truncate = truncate
	return s
}

// Format implements Sink.
func (s *MySQLSink) Format() string { return config.FormatMySQL }

// Write implements Sink.
func (s *MySQLSink) Write(ctx context.Context, tables []*table.Table) (*Stats, error) {
	start := time.Now()

	conn, err := s.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get destination connection: %w", err)
	}
	defer conn.Close()

	var stats *Stats
	lk := lock.NewLoadLock(conn, s.database).WithLogger(s.log)
	err = lk.WithLock(ctx, s.lockTimeout, func() error {
		s.log.Debugw("acquired load lock", "lock", lk.LockName())
		if err := s.prepare(ctx, conn, tables); err != nil {
			return err
		}
		var loadErr error
		stats, loadErr = s.load(ctx, conn, tables)
		return loadErr
	})
	if err != nil {
		return nil, err
	}

	stats.Duration = time.Since(start)
	s.log.Infof("Load complete: %d tables, %d rows, duration: %s",
		stats.TablesWritten, stats.RowsWritten, stats.Duration)
	return stats, nil
}

// prepare creates and optionally truncates each table. DDL commits
// implicitly in MySQL, so it runs before the load transaction.
func (s *MySQLSink) prepare(ctx context.Context, conn *sql.Conn, tables []*table.Table) error {
	for _, t := range tables {
		ddl, err := sqlutil.CreateTableSQL(t)
		if err != nil {
			return fmt.Errorf("failed to build DDL for %s: %w", t.Name, err)
		}
		if _, err := conn.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("failed to create table %s: %w", t.Name, err)
		}

		if !s.truncate {
			continue
		}
		query, err := sqlutil.TruncateSQL(t.Name)
		if err != nil {
			return err
		}
		if _, err := conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", t.Name, err)
		}
		s.log.WithTable(t.Name).Debug("Truncated table")
	}
	return nil
}

func (s *MySQLSink) load(ctx context.Context, conn *sql.Conn, tables []*table.Table) (*Stats, error) {
	stats := newStats()

	s.log.Debug("Starting destination transaction")
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin destination transaction: %w", err)
	}

	defer func() {
		if tx != nil {
			s.log.Warn("Rolling back destination transaction due to error or panic")
			if rbErr := tx.Rollback(); rbErr != nil {
				s.log.Errorf("Failed to rollback transaction: %v", rbErr)
			}
		}
	}()

	for _, t := range tables {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("load interrupted: %w", err)
		}

		rows, err := s.insertTable(ctx, tx, t)
		if err != nil {
			return nil, fmt.Errorf("failed to load table %s: %w", t.Name, err)
		}
		stats.record(t, rows)
		s.log.WithTable(t.Name).Debugf("Inserted %d rows", rows)
	}

	s.log.Debug("Committing destination transaction")
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit destination transaction: %w", err)
	}
	tx = nil

	return stats, nil
}

// batchRows returns the rows per INSERT for a table, capped so a
// statement never exceeds MySQL's placeholder limit.
func (s *MySQLSink) batchRows(columns int) int {
	n := s.batchSize
	if columns > 0 && n*columns > maxPlaceholders {
		n = maxPlaceholders / columns
	}
	return n
}

func (s *MySQLSink) insertTable(ctx context.Context, tx *sql.Tx, t *table.Table) (int64, error) {
	columns := t.Schema.Names()
	size := s.batchRows(len(columns))

	var inserted int64
	batch := 0
	for from := 0; from < t.Len(); from += size {
		to := from + size
		if to > t.Len() {
			to = t.Len()
		}
		batch++

		query, err := sqlutil.InsertSQL(t.Name, columns, to-from)
		if err != nil {
			return inserted, err
		}
		result, err := tx.ExecContext(ctx, query, sqlutil.InsertArgs(t, from, to)...)
		if err != nil {
			return inserted, fmt.Errorf("failed to insert batch %d: %w", batch, err)
		}

		affected, _ := result.RowsAffected()
		inserted += affected
		s.log.WithTable(t.Name).WithBatch(batch).Debugw("batch inserted", "rows", affected)
	}
	return inserted, nil
}
