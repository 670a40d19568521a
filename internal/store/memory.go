package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/BTreeMap/SehatSahara/internal/models"
)

// maxTurnsPerUser bounds the in-memory turn log.
const maxTurnsPerUser = 100

// InMemoryStore keeps everything in process memory. State is lost on restart.
type InMemoryStore struct {
	locks *keyLocker

	mu            sync.RWMutex
	conversations map[string]models.ConversationState
	turns         map[string][]models.Turn
	inbound       map[string]*DedupRecord
}

var _ Store = (*InMemoryStore)(nil)

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		locks:         newKeyLocker(),
		conversations: make(map[string]models.ConversationState),
		turns:         make(map[string][]models.Turn),
		inbound:       make(map[string]*DedupRecord),
	}
}

func (s *InMemoryStore) WithConversation(ctx context.Context, userID string, fn func(*models.ConversationState) error) (models.ConversationState, error) {
	if err := validateUserID(userID); err != nil {
		return models.ConversationState{}, err
	}
	unlock, err := s.locks.Lock(ctx, userID)
	if err != nil {
		return models.ConversationState{}, fmt.Errorf("lock conversation %s: %w", userID, err)
	}
	defer unlock()

	s.mu.RLock()
	state, ok := s.conversations[userID]
	s.mu.RUnlock()
	if ok {
		state = state.Clone()
	} else {
		state = models.NewConversationState(userID)
	}

	if err := fn(&state); err != nil {
		return models.ConversationState{}, err
	}
	state.UserID = userID
	state.UpdatedAt = time.Now()

	s.mu.Lock()
	s.conversations[userID] = state.Clone()
	s.mu.Unlock()
	slog.Debug("InMemoryStore WithConversation saved", "user_id", userID, "stage", state.Stage, "symptom_count", state.SymptomCount)
	return state, nil
}

func (s *InMemoryStore) GetConversation(ctx context.Context, userID string) (*models.ConversationState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.conversations[userID]
	if !ok {
		return nil, nil
	}
	c := state.Clone()
	return &c, nil
}

func (s *InMemoryStore) DeleteConversation(ctx context.Context, userID string) error {
	unlock, err := s.locks.Lock(ctx, userID)
	if err != nil {
		return fmt.Errorf("lock conversation %s: %w", userID, err)
	}
	defer unlock()

	s.mu.Lock()
	delete(s.conversations, userID)
	s.mu.Unlock()
	slog.Debug("InMemoryStore DeleteConversation succeeded", "user_id", userID)
	return nil
}

func (s *InMemoryStore) AddTurn(ctx context.Context, turn models.Turn) error {
	if err := validateUserID(turn.UserID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	log := append(s.turns[turn.UserID], turn)
	if len(log) > maxTurnsPerUser {
		log = log[len(log)-maxTurnsPerUser:]
	}
	s.turns[turn.UserID] = log
	return nil
}

func (s *InMemoryStore) RecentTurns(ctx context.Context, userID string, limit int) ([]models.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	log := s.turns[userID]
	if limit > 0 && len(log) > limit {
		log = log[len(log)-limit:]
	}
	return append([]models.Turn(nil), log...), nil
}

func (s *InMemoryStore) IsDuplicate(ctx context.Context, messageID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.inbound[messageID]
	return ok, nil
}

func (s *InMemoryStore) RecordInbound(ctx context.Context, messageID, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.inbound[messageID]; ok {
		return false, nil
	}
	s.inbound[messageID] = &DedupRecord{MessageID: messageID, UserID: userID, ReceivedAt: time.Now()}
	return true, nil
}

func (s *InMemoryStore) MarkProcessed(ctx context.Context, messageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.inbound[messageID]; ok {
		now := time.Now()
		rec.ProcessedAt = &now
	}
	return nil
}

// Close is a no-op.
func (s *InMemoryStore) Close() error {
	return nil
}
