package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "embed"

	"github.com/BTreeMap/SehatSahara/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

// Constants for SQLite store configuration
const (
	// DefaultDirPermissions defines the default permissions for database directories
	DefaultDirPermissions = 0755
)

//go:embed migrations_sqlite.sql
var sqliteMigrations string

var sqliteQueries = conversationQueries{
	backend: "SQLiteStore",
	selectState: `SELECT user_id, language, stage, symptom_count, symptoms_gathered, last_question, updated_at
		FROM conversation_states WHERE user_id = ?`,
	upsertState: `INSERT INTO conversation_states (user_id, language, stage, symptom_count, symptoms_gathered, last_question, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			language = excluded.language,
			stage = excluded.stage,
			symptom_count = excluded.symptom_count,
			symptoms_gathered = excluded.symptoms_gathered,
			last_question = excluded.last_question,
			updated_at = excluded.updated_at`,
	deleteState: `DELETE FROM conversation_states WHERE user_id = ?`,
	insertTurn: `INSERT INTO conversation_turns (id, user_id, utterance, intent, action, language, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
	selectTurns: `SELECT id, user_id, utterance, intent, action, language, created_at
		FROM conversation_turns WHERE user_id = ? ORDER BY created_at DESC, rowid DESC LIMIT ?`,
}

// SQLiteStore persists conversations in a local SQLite file.
type SQLiteStore struct {
	db    *sql.DB
	locks *keyLocker
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new SQLite store with the given DSN.
// The DSN should be a file path to the SQLite database file.
// If the directory doesn't exist, it will be created.
func NewSQLiteStore(opts ...Option) (*SQLiteStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("NewSQLiteStore invoked", "DSN_set", cfg.DSN != "")

	dsn := cfg.DSN
	if dsn == "" {
		slog.Error("SQLiteStore DSN not set")
		return nil, ErrDSNNotSet
	}

	dir := filepath.Dir(dsn)
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		slog.Error("Failed to create database directory", "error", err, "dir", dir)
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		slog.Error("Failed to open SQLite connection", "error", err)
		return nil, err
	}
	// SQLite has a single writer; one connection keeps transactions from
	// failing with "database is locked".
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		slog.Error("SQLite ping failed", "error", err)
		db.Close()
		return nil, err
	}

	if _, err := db.Exec(sqliteMigrations); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("SQLite migrations applied successfully", "dsn", dsn)

	return &SQLiteStore{db: db, locks: newKeyLocker()}, nil
}

func (s *SQLiteStore) WithConversation(ctx context.Context, userID string, fn func(*models.ConversationState) error) (models.ConversationState, error) {
	return runConversationTx(ctx, s.db, s.locks, sqliteQueries, userID, fn)
}

func (s *SQLiteStore) GetConversation(ctx context.Context, userID string) (*models.ConversationState, error) {
	state, err := loadState(ctx, s.db, sqliteQueries.selectState, userID)
	if err != nil {
		slog.Error("SQLiteStore GetConversation failed", "error", err, "user_id", userID)
		return nil, err
	}
	return state, nil
}

func (s *SQLiteStore) DeleteConversation(ctx context.Context, userID string) error {
	return deleteConversation(ctx, s.db, s.locks, sqliteQueries, userID)
}

func (s *SQLiteStore) AddTurn(ctx context.Context, turn models.Turn) error {
	return insertTurn(ctx, s.db, sqliteQueries, turn)
}

func (s *SQLiteStore) RecentTurns(ctx context.Context, userID string, limit int) ([]models.Turn, error) {
	return queryTurns(ctx, s.db, sqliteQueries, userID, limit)
}

// Close closes the SQLite database connection.
func (s *SQLiteStore) Close() error {
	slog.Debug("Closing SQLite database connection")
	err := s.db.Close()
	if err != nil {
		slog.Error("Failed to close SQLite database", "error", err)
	}
	return err
}
