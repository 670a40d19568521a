package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/BTreeMap/SehatSahara/internal/models"
)

// nilIfEmpty returns nil if s is empty, otherwise returns s.
// Used for nullable database columns.
func nilIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

type rowQueryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// conversationQueries are the backend-specific statements used by the shared
// SQL code paths.
type conversationQueries struct {
	backend     string
	selectState string
	upsertState string
	deleteState string
	insertTurn  string
	selectTurns string
}

// loadState reads one conversation row. It returns nil when the row is absent.
func loadState(ctx context.Context, q rowQueryer, query, userID string) (*models.ConversationState, error) {
	var (
		state        models.ConversationState
		symptomsJSON []byte
		lastQuestion sql.NullString
	)
	err := q.QueryRowContext(ctx, query, userID).Scan(
		&state.UserID, &state.Language, &state.Stage, &state.SymptomCount,
		&symptomsJSON, &lastQuestion, &state.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan conversation failed: %w", err)
	}
	state.LastQuestion = lastQuestion.String
	state.SymptomsGathered = []string{}
	if len(symptomsJSON) > 0 {
		if err := json.Unmarshal(symptomsJSON, &state.SymptomsGathered); err != nil {
			return nil, fmt.Errorf("decode symptoms for %s: %w", userID, err)
		}
	}
	return &state, nil
}

// runConversationTx implements WithConversation for the SQL backends.
func runConversationTx(ctx context.Context, db *sql.DB, locks *keyLocker, q conversationQueries,
	userID string, fn func(*models.ConversationState) error) (models.ConversationState, error) {
	if err := validateUserID(userID); err != nil {
		return models.ConversationState{}, err
	}
	unlock, err := locks.Lock(ctx, userID)
	if err != nil {
		return models.ConversationState{}, fmt.Errorf("lock conversation %s: %w", userID, err)
	}
	defer unlock()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		slog.Error(q.backend+" WithConversation begin failed", "error", err, "user_id", userID)
		return models.ConversationState{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	loaded, err := loadState(ctx, tx, q.selectState, userID)
	if err != nil {
		slog.Error(q.backend+" WithConversation load failed", "error", err, "user_id", userID)
		return models.ConversationState{}, err
	}
	state := models.NewConversationState(userID)
	if loaded != nil {
		state = *loaded
	}

	if err := fn(&state); err != nil {
		return models.ConversationState{}, err
	}
	state.UserID = userID
	state.UpdatedAt = time.Now().UTC()
	if state.SymptomsGathered == nil {
		state.SymptomsGathered = []string{}
	}

	symptomsJSON, err := json.Marshal(state.SymptomsGathered)
	if err != nil {
		return models.ConversationState{}, fmt.Errorf("encode symptoms for %s: %w", userID, err)
	}
	if _, err := tx.ExecContext(ctx, q.upsertState, userID, string(state.Language), string(state.Stage),
		state.SymptomCount, string(symptomsJSON), nilIfEmpty(state.LastQuestion), state.UpdatedAt); err != nil {
		slog.Error(q.backend+" WithConversation save failed", "error", err, "user_id", userID)
		return models.ConversationState{}, fmt.Errorf("save conversation %s: %w", userID, err)
	}
	if err := tx.Commit(); err != nil {
		slog.Error(q.backend+" WithConversation commit failed", "error", err, "user_id", userID)
		return models.ConversationState{}, fmt.Errorf("commit conversation %s: %w", userID, err)
	}
	slog.Debug(q.backend+" WithConversation saved", "user_id", userID, "stage", state.Stage, "symptom_count", state.SymptomCount)
	return state, nil
}

func deleteConversation(ctx context.Context, db *sql.DB, locks *keyLocker, q conversationQueries, userID string) error {
	unlock, err := locks.Lock(ctx, userID)
	if err != nil {
		return fmt.Errorf("lock conversation %s: %w", userID, err)
	}
	defer unlock()

	if _, err := db.ExecContext(ctx, q.deleteState, userID); err != nil {
		slog.Error(q.backend+" DeleteConversation failed", "error", err, "user_id", userID)
		return fmt.Errorf("delete conversation %s: %w", userID, err)
	}
	slog.Debug(q.backend+" DeleteConversation succeeded", "user_id", userID)
	return nil
}

func insertTurn(ctx context.Context, db *sql.DB, q conversationQueries, t models.Turn) error {
	if err := validateUserID(t.UserID); err != nil {
		return err
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	_, err := db.ExecContext(ctx, q.insertTurn, t.ID, t.UserID, t.Utterance,
		nilIfEmpty(string(t.Intent)), string(t.Action), string(t.Language), t.CreatedAt)
	if err != nil {
		slog.Error(q.backend+" AddTurn failed", "error", err, "user_id", t.UserID)
		return fmt.Errorf("insert turn for %s: %w", t.UserID, err)
	}
	return nil
}

// queryTurns returns up to limit turns, oldest first.
func queryTurns(ctx context.Context, db *sql.DB, q conversationQueries, userID string, limit int) ([]models.Turn, error) {
	if limit <= 0 {
		limit = maxTurnsPerUser
	}
	rows, err := db.QueryContext(ctx, q.selectTurns, userID, limit)
	if err != nil {
		slog.Error(q.backend+" RecentTurns query failed", "error", err, "user_id", userID)
		return nil, fmt.Errorf("query turns for %s: %w", userID, err)
	}
	defer rows.Close()

	var turns []models.Turn
	for rows.Next() {
		var (
			t      models.Turn
			intent sql.NullString
		)
		if err := rows.Scan(&t.ID, &t.UserID, &t.Utterance, &intent, &t.Action, &t.Language, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan turn failed: %w", err)
		}
		t.Intent = models.Intent(intent.String)
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate turns failed: %w", err)
	}
	// rows arrive newest first
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
	return turns, nil
}
