// Package store provides storage backends for SehatSahara conversation state.
//
// Every backend serializes read-modify-write cycles per user: WithConversation
// holds a per-user lock for the duration of the callback, and DeleteConversation
// takes the same lock so a reset never interleaves with an in-flight turn.
package store

import (
	"context"
	"errors"
	"strings"

	"github.com/BTreeMap/SehatSahara/internal/models"
)

// ErrDSNNotSet is returned when a SQL backend is created without a DSN.
var ErrDSNNotSet = errors.New("database DSN not set")

// ConversationStore persists per-user conversation state and the turn log.
type ConversationStore interface {
	// WithConversation loads (or creates) the state for userID, passes it to fn
	// and persists the result if fn returns nil. Calls for the same userID are
	// serialized. fn must not call back into the store.
	WithConversation(ctx context.Context, userID string, fn func(*models.ConversationState) error) (models.ConversationState, error)

	// GetConversation returns the state for userID, or nil if none exists.
	GetConversation(ctx context.Context, userID string) (*models.ConversationState, error)

	// DeleteConversation removes the state for userID. Deleting a missing state is not an error.
	DeleteConversation(ctx context.Context, userID string) error

	// AddTurn appends one exchange to the turn log.
	AddTurn(ctx context.Context, turn models.Turn) error

	// RecentTurns returns up to limit turns for userID, oldest first.
	RecentTurns(ctx context.Context, userID string, limit int) ([]models.Turn, error)

	Close() error
}

// Store is the full storage surface used by the service.
type Store interface {
	ConversationStore
	DedupRepo
}

// Opts holds configuration for store backends.
type Opts struct {
	DSN string
}

// Option configures a store backend.
type Option func(*Opts)

// WithPostgresDSN sets the Postgres connection string.
func WithPostgresDSN(dsn string) Option {
	return func(o *Opts) {
		o.DSN = dsn
	}
}

// WithSQLiteDSN sets the SQLite database file path.
func WithSQLiteDSN(dsn string) Option {
	return func(o *Opts) {
		o.DSN = dsn
	}
}

// DSNType identifies the backend a DSN points at.
type DSNType string

const (
	DSNTypeSQLite   DSNType = "sqlite3"
	DSNTypePostgres DSNType = "postgres"
)

// DetectDSNType returns DSNTypePostgres for postgres URLs and key/value
// connection strings, and DSNTypeSQLite for everything else.
func DetectDSNType(dsn string) DSNType {
	lower := strings.ToLower(strings.TrimSpace(dsn))
	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return DSNTypePostgres
	case strings.Contains(lower, "host=") || strings.Contains(lower, "dbname="):
		return DSNTypePostgres
	}
	return DSNTypeSQLite
}

// Open creates the backend matching dsn.
func Open(dsn string) (Store, error) {
	if DetectDSNType(dsn) == DSNTypePostgres {
		return NewPostgresStore(WithPostgresDSN(dsn))
	}
	return NewSQLiteStore(WithSQLiteDSN(dsn))
}

func validateUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return models.ErrEmptyUserID
	}
	if len(userID) > models.MaxUserIDLength {
		return models.ErrUserIDTooLong
	}
	return nil
}
