package models

import "time"

// ConversationState is the per-user triage state. The store owns it; callers
// mutate it only inside a store transaction.
type ConversationState struct {
	UserID           string    `json:"user_id"`
	Language         Language  `json:"language"`
	Stage            Stage     `json:"stage"`
	SymptomCount     int       `json:"symptom_count"`
	SymptomsGathered []string  `json:"symptoms_gathered"`
	LastQuestion     string    `json:"last_question,omitempty"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewConversationState returns the state a user starts in.
func NewConversationState(userID string) ConversationState {
	return ConversationState{
		UserID:           userID,
		Language:         DefaultLanguage,
		Stage:            StageInitial,
		SymptomsGathered: []string{},
	}
}

// InTriage reports whether the user is in the middle of a symptom check.
func (s *ConversationState) InTriage() bool {
	return s.Stage == StageSymptomCheck
}

// AddSymptoms unions tokens into SymptomsGathered, keeping first-seen order.
func (s *ConversationState) AddSymptoms(tokens []string) {
	seen := make(map[string]struct{}, len(s.SymptomsGathered))
	for _, t := range s.SymptomsGathered {
		seen[t] = struct{}{}
	}
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		s.SymptomsGathered = append(s.SymptomsGathered, t)
	}
}

// ResetTriage leaves the symptom check and returns to the initial stage.
func (s *ConversationState) ResetTriage() {
	s.Stage = StageInitial
	s.SymptomCount = 0
	s.SymptomsGathered = []string{}
}

// Clone returns a deep copy of s.
func (s ConversationState) Clone() ConversationState {
	out := s
	out.SymptomsGathered = append([]string{}, s.SymptomsGathered...)
	return out
}
