package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "embed"

	"github.com/BTreeMap/SehatSahara/internal/models"
	_ "github.com/lib/pq"
)

// Database connection pool configuration constants
const (
	// DefaultMaxOpenConns is the default maximum number of open connections to the database
	DefaultMaxOpenConns = 25
	// DefaultMaxIdleConns is the default maximum number of idle connections in the pool
	DefaultMaxIdleConns = 25
	// DefaultConnMaxLifetime is the default maximum amount of time a connection may be reused
	DefaultConnMaxLifetime = 5 * time.Minute
)

//go:embed migrations_postgres.sql
var postgresMigrations string

var postgresQueries = conversationQueries{
	backend: "PostgresStore",
	selectState: `SELECT user_id, language, stage, symptom_count, symptoms_gathered, last_question, updated_at
		FROM conversation_states WHERE user_id = $1 FOR UPDATE`,
	upsertState: `INSERT INTO conversation_states (user_id, language, stage, symptom_count, symptoms_gathered, last_question, updated_at)
		VALUES ($1, $2, $3, $4, $5::jsonb, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			language = EXCLUDED.language,
			stage = EXCLUDED.stage,
			symptom_count = EXCLUDED.symptom_count,
			symptoms_gathered = EXCLUDED.symptoms_gathered,
			last_question = EXCLUDED.last_question,
			updated_at = EXCLUDED.updated_at`,
	deleteState: `DELETE FROM conversation_states WHERE user_id = $1`,
	insertTurn: `INSERT INTO conversation_turns (id, user_id, utterance, intent, action, language, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
	selectTurns: `SELECT id, user_id, utterance, intent, action, language, created_at
		FROM conversation_turns WHERE user_id = $1 ORDER BY created_at DESC, seq DESC LIMIT $2`,
}

// postgresSelectStateNoLock reads without taking the row lock.
const postgresSelectStateNoLock = `SELECT user_id, language, stage, symptom_count, symptoms_gathered, last_question, updated_at
	FROM conversation_states WHERE user_id = $1`

// PostgresStore persists conversations in PostgreSQL. The row lock taken in
// WithConversation also serializes turns across service replicas.
type PostgresStore struct {
	db    *sql.DB
	locks *keyLocker
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore creates a new Postgres store based on provided options.
func NewPostgresStore(opts ...Option) (*PostgresStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("PostgresStore.NewPostgresStore: creating Postgres store", "DSN_set", cfg.DSN != "")
	dsn := cfg.DSN
	if dsn == "" {
		slog.Error("PostgresStore DSN not set")
		return nil, ErrDSNNotSet
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		slog.Error("Failed to open Postgres connection", "error", err)
		return nil, err
	}

	db.SetMaxOpenConns(DefaultMaxOpenConns)
	db.SetMaxIdleConns(DefaultMaxIdleConns)
	db.SetConnMaxLifetime(DefaultConnMaxLifetime)

	if err := db.Ping(); err != nil {
		slog.Error("Postgres ping failed", "error", err)
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(postgresMigrations); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("Postgres migrations applied successfully")
	return &PostgresStore{db: db, locks: newKeyLocker()}, nil
}

func (s *PostgresStore) WithConversation(ctx context.Context, userID string, fn func(*models.ConversationState) error) (models.ConversationState, error) {
	return runConversationTx(ctx, s.db, s.locks, postgresQueries, userID, fn)
}

func (s *PostgresStore) GetConversation(ctx context.Context, userID string) (*models.ConversationState, error) {
	state, err := loadState(ctx, s.db, postgresSelectStateNoLock, userID)
	if err != nil {
		slog.Error("PostgresStore GetConversation failed", "error", err, "user_id", userID)
		return nil, err
	}
	return state, nil
}

func (s *PostgresStore) DeleteConversation(ctx context.Context, userID string) error {
	return deleteConversation(ctx, s.db, s.locks, postgresQueries, userID)
}

func (s *PostgresStore) AddTurn(ctx context.Context, turn models.Turn) error {
	return insertTurn(ctx, s.db, postgresQueries, turn)
}

func (s *PostgresStore) RecentTurns(ctx context.Context, userID string, limit int) ([]models.Turn, error) {
	return queryTurns(ctx, s.db, postgresQueries, userID, limit)
}

// Close closes the PostgreSQL database connection.
func (s *PostgresStore) Close() error {
	slog.Debug("Closing PostgreSQL database connection")
	err := s.db.Close()
	if err != nil {
		slog.Error("Failed to close PostgreSQL database", "error", err)
	}
	return err
}
