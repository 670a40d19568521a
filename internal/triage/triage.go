// Package triage implements the bounded symptom-check conversation. A user who
// mentions a symptom is asked a short series of questions and is then given
// general precautions, a disclaimer and a route to appointment booking.
package triage

import (
	"log/slog"
	"strings"

	"github.com/BTreeMap/SehatSahara/internal/catalog"
	"github.com/BTreeMap/SehatSahara/internal/models"
)

// DefaultMaxExchanges is the number of symptom exchanges before precautions are given.
const DefaultMaxExchanges = 3

// Opts holds configuration for a Machine.
type Opts struct {
	MaxExchanges int
}

// Option configures a Machine.
type Option func(*Opts)

// WithMaxExchanges sets the exchange bound. Values below 1 are ignored.
func WithMaxExchanges(n int) Option {
	return func(o *Opts) {
		if n >= 1 {
			o.MaxExchanges = n
		}
	}
}

// Step is the outcome of one triage turn.
type Step struct {
	Response   string
	Action     models.Action
	Parameters models.Parameters
	// Started is set on the turn that enters the symptom check.
	Started bool
	// Completed is set on the turn that gives precautions and resets the state.
	Completed bool
}

// Machine advances a ConversationState through the symptom check. It holds no
// per-user state and is safe for concurrent use; callers serialize access to
// each ConversationState.
type Machine struct {
	maxExchanges int
}

// NewMachine creates a Machine.
func NewMachine(opts ...Option) *Machine {
	cfg := Opts{MaxExchanges: DefaultMaxExchanges}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Machine{maxExchanges: cfg.MaxExchanges}
}

// MaxExchanges returns the configured exchange bound.
func (m *Machine) MaxExchanges() int { return m.maxExchanges }

// Advance handles one utterance that already passed the safety gates. Outside
// the symptom check it either starts one or answers with general help; inside
// it gathers symptoms and asks the next question until the bound is reached.
func (m *Machine) Advance(state *models.ConversationState, utterance string) Step {
	lang := state.Language
	if state.InTriage() {
		return m.continueCheck(state, utterance, lang)
	}

	symptoms := DetectSymptoms(utterance, lang)
	if len(symptoms) == 0 {
		return Step{
			Response:   catalog.GeneralHelpText(lang),
			Action:     models.ActionShowAppFeatures,
			Parameters: models.Parameters{},
		}
	}

	state.Stage = models.StageSymptomCheck
	state.SymptomCount = 1
	state.SymptomsGathered = []string{}
	state.AddSymptoms(symptoms)
	slog.Info("Triage started", "user_id", state.UserID, "symptoms", state.SymptomsGathered)

	step := m.ask(state, lang)
	step.Started = true
	return step
}

func (m *Machine) continueCheck(state *models.ConversationState, utterance string, lang models.Language) Step {
	state.AddSymptoms(DetectSymptoms(utterance, lang))
	state.SymptomCount++

	if state.SymptomCount < m.maxExchanges {
		return m.ask(state, lang)
	}

	text := Precautions(state.SymptomsGathered, lang) + "\n\n" + catalog.DisclaimerText(lang)
	slog.Info("Triage completed", "user_id", state.UserID, "exchanges", state.SymptomCount, "symptoms", state.SymptomsGathered)
	state.ResetTriage()
	state.LastQuestion = ""
	return Step{
		Response:   text,
		Action:     models.ActionNavigateToAppointmentBooking,
		Parameters: models.Parameters{},
		Completed:  true,
	}
}

func (m *Machine) ask(state *models.ConversationState, lang models.Language) Step {
	questions := catalog.TriageQuestions(lang)
	idx := state.SymptomCount
	if last := len(questions) - 1; idx > last {
		idx = last
	}
	state.LastQuestion = questions[idx]
	return Step{
		Response:   questions[idx],
		Action:     models.ActionContinueSymptomCheck,
		Parameters: models.Parameters{},
	}
}

// DetectSymptoms returns the symptom keywords of lang found in utterance, in
// keyword-list order.
func DetectSymptoms(utterance string, lang models.Language) []string {
	text := strings.ToLower(utterance)
	var found []string
	for _, kw := range catalog.SymptomKeywords(lang) {
		if strings.Contains(text, kw) {
			found = append(found, kw)
		}
	}
	return found
}

// Precautions returns the precaution text for the first symptom that maps to
// a category, or the general text when none does.
func Precautions(symptoms []string, lang models.Language) string {
	for _, s := range symptoms {
		if category, ok := catalog.CategoryFor(s); ok {
			return catalog.Precaution(lang, category)
		}
	}
	return catalog.Precaution(lang, catalog.CategoryGeneral)
}
