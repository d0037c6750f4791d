package store

import (
	"context"
	"errors"
	"time"

	"github.com/jotapp/jot/internal/jot/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement it. Sub-repositories keep concerns separated and individually
// mockable.
type Store interface {
	Users() Users
	DeviceChallenges() DeviceChallenges
	Notes() Notes
	Repositories() Repositories

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing when fn returns
	// nil and rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases the underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID resolves a token subject back to a user.
	GetUserByID(ctx context.Context, id int64) (domain.User, error)

	// GetUserByName is the credential lookup used during login. The login
	// identifier is matched against the name column.
	GetUserByName(ctx context.Context, name string) (domain.User, error)

	// CreateUser inserts a new user and returns it with the assigned id.
	CreateUser(ctx context.Context, name, email, passwordHash string) (domain.User, error)
}

// DeviceChallenges manages the device-authorization code lifecycle. Expiry
// is enforced by time predicates on reads and updates, never by a column
// mutation; rows only leave the table via explicit deletes.
type DeviceChallenges interface {
	// CreateDeviceChallenge inserts a Pending challenge for a caller-chosen
	// code. A duplicate code yields ErrAlreadyExists.
	CreateDeviceChallenge(ctx context.Context, deviceCode string, expireDate time.Time) error

	// AttachToken sets the token on an active challenge. Returns false when
	// no live row matched (unknown, deleted or expired code) so callers can
	// tell an invalid code apart from a storage fault.
	AttachToken(ctx context.Context, deviceCode, token string, now time.Time) (bool, error)

	// GetActiveDeviceChallenge returns the challenge for a code, treating
	// rows past their expire_date as nonexistent (ErrNotFound).
	GetActiveDeviceChallenge(ctx context.Context, deviceCode string, now time.Time) (domain.DeviceChallenge, error)

	// DeleteDeviceChallenge removes the row regardless of its state and
	// reports whether anything was removed.
	DeleteDeviceChallenge(ctx context.Context, deviceCode string) (bool, error)

	// DeleteExpiredDeviceChallenges is housekeeping: expired rows are
	// invisible to reads but still occupy storage until swept.
	DeleteExpiredDeviceChallenges(ctx context.Context, now time.Time) error
}

type Notes interface {
	ListNotes(ctx context.Context) ([]domain.Note, error)
	ListNotesByUser(ctx context.Context, userID int64) ([]domain.Note, error)
	GetNoteByID(ctx context.Context, id int64) (domain.Note, error)
	CreateNote(ctx context.Context, userID int64, content string, tags []string, targetDate string) (domain.Note, error)

	// DeleteNote removes a note only when it belongs to userID; reports
	// whether a row was removed.
	DeleteNote(ctx context.Context, id, userID int64) (bool, error)
	DeleteNotes(ctx context.Context, ids []int64, userID int64) error

	// SearchNotes applies the non-zero filters of the search conjunctively.
	SearchNotes(ctx context.Context, search domain.NoteSearch) ([]domain.Note, error)
}

type Repositories interface {
	ListRepositories(ctx context.Context) ([]domain.Repository, error)
	ListRepositoriesByUser(ctx context.Context, userID int64) ([]domain.Repository, error)
	GetRepositoryByID(ctx context.Context, id int64) (domain.Repository, error)
	CreateRepository(ctx context.Context, userID int64, name string) (domain.Repository, error)
}
