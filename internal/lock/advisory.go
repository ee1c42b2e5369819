// Package lock provides the MySQL advisory lock that serializes loads into
// one destination database.
package lock

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dbsmedya/gotreasury/internal/logger"
)

// ErrLockTimeout is returned when lock acquisition times out because
// another loader is holding the lock.
var ErrLockTimeout = errors.New("lock acquisition timed out")

// Common timeout values for lock acquisition (in seconds).
const (
	TimeoutImmediate = 0
	TimeoutShort     = 1
	TimeoutMedium    = 10
	// TimeoutInfinite waits until the lock is acquired; MySQL treats
	// negative values as infinite.
	TimeoutInfinite = -1
)

// maxLockNameLen is MySQL's limit on GET_LOCK names.
const maxLockNameLen = 64

// Querier is satisfied by *sql.DB, *sql.Conn and *sql.Tx. GET_LOCK is
// session scoped, so callers holding a lock across statements should pass
// a *sql.Conn.
type Querier interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// AdvisoryLock is a named MySQL lock taken with GET_LOCK and released with
// RELEASE_LOCK or when its session ends.
type AdvisoryLock struct {
	q        Querier
	lockName string
	held     bool
	log      *logger.Logger
}

// NewAdvisoryLock creates a new advisory lock with the given name.
// The lock is not acquired until AcquireLock is called.
func NewAdvisoryLock(q Querier, lockName string) *AdvisoryLock {
	return &AdvisoryLock{
		q:        q,
		lockName: lockName,
		log:      logger.NewNop(),
	}
}

// WithLogger sets the logger used to report release failures.
func (a *AdvisoryLock) WithLogger(log *logger.Logger) *AdvisoryLock {
	if log != nil {
		a.log = log
	}
	return a
}

// AcquireLock attempts to acquire the lock, waiting up to timeoutSeconds.
// It returns false without error when the wait times out.
//
// GET_LOCK returns 1 on success, 0 on timeout and NULL on error.
func (a *AdvisoryLock) AcquireLock(ctx context.Context, timeoutSeconds int) (bool, error) {
	if a.held {
		return true, nil
	}

	var result sql.NullInt64
	err := a.q.QueryRowContext(ctx, "SELECT GET_LOCK(?, ?)", a.lockName, timeoutSeconds).Scan(&result)
	if err != nil {
		return false, fmt.Errorf("failed to execute GET_LOCK: %w", err)
	}

	if !result.Valid {
		return false, fmt.Errorf("GET_LOCK returned NULL for lock %q (possible database error)", a.lockName)
	}

	switch result.Int64 {
	case 1:
		a.held = true
		return true, nil
	case 0:
		return false, nil
	default:
		return false, fmt.Errorf("unexpected GET_LOCK return value: %d", result.Int64)
	}
}

// ReleaseLock releases the lock. It returns false when the lock was not
// held by this session.
//
// RELEASE_LOCK returns 1 on success, 0 when another session holds the lock
// and NULL when the lock does not exist.
func (a *AdvisoryLock) ReleaseLock(ctx context.Context) (bool, error) {
	if !a.held {
		return false, nil
	}

	var result sql.NullInt64
	err := a.q.QueryRowContext(ctx, "SELECT RELEASE_LOCK(?)", a.lockName).Scan(&result)
	if err != nil {
		return false, fmt.Errorf("failed to execute RELEASE_LOCK: %w", err)
	}

	a.held = false
	if !result.Valid {
		return false, fmt.Errorf("RELEASE_LOCK returned NULL for lock %q (lock did not exist)", a.lockName)
	}

	switch result.Int64 {
	case 1:
		return true, nil
	case 0:
		return false, nil
	default:
		return false, fmt.Errorf("unexpected RELEASE_LOCK return value: %d", result.Int64)
	}
}

// IsHeld returns true if this lock is currently held by this instance.
func (a *AdvisoryLock) IsHeld() bool {
	return a.held
}

// LockName returns the name of the advisory lock.
func (a *AdvisoryLock) LockName() string {
	return a.lockName
}

// AcquireOrFail acquires the lock or returns ErrLockTimeout.
func (a *AdvisoryLock) AcquireOrFail(ctx context.Context, timeoutSeconds int) error {
	acquired, err := a.AcquireLock(ctx, timeoutSeconds)
	if err != nil {
		return err
	}
	if !acquired {
		return fmt.Errorf("%w: lock %q is held by another loader", ErrLockTimeout, a.lockName)
	}
	return nil
}

// WithLock runs fn while holding the lock and releases it afterwards, even
// if fn panics. Release uses its own short-lived context so a canceled ctx
// still frees the lock.
func (a *AdvisoryLock) WithLock(ctx context.Context, timeoutSeconds int, fn func() error) error {
	if err := a.AcquireOrFail(ctx, timeoutSeconds); err != nil {
		return err
	}

	defer func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := a.ReleaseLock(releaseCtx); err != nil {
			a.log.Warnw("failed to release advisory lock; it is freed when the session closes",
				"lock", a.lockName, "error", err)
		}
	}()

	return fn()
}

// LoadLockName returns the lock name guarding loads into a database, in
// the form "gotreasury:load:{database}". Characters outside [A-Za-z0-9_-]
// become underscores and the result is capped at MySQL's 64 characters.
func LoadLockName(database string) string {
	sanitized := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			return r
		}
		return '_'
	}, database)

	name := "gotreasury:load:" + sanitized
	if len(name) > maxLockNameLen {
		name = name[:maxLockNameLen]
	}
	return name
}

// NewLoadLock creates the advisory lock for loading into database.
func NewLoadLock(q Querier, database string) *AdvisoryLock {
	return NewAdvisoryLock(q, LoadLockName(database))
}
