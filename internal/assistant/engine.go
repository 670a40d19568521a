// Package assistant wires the dialogue core together. An Engine owns the
// conversation store and exposes the two entry points used by every channel:
// Process for raw utterances and GenerateResponse for turns that arrive with
// an NLU result already computed.
package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/BTreeMap/SehatSahara/internal/catalog"
	"github.com/BTreeMap/SehatSahara/internal/compose"
	"github.com/BTreeMap/SehatSahara/internal/locale"
	"github.com/BTreeMap/SehatSahara/internal/models"
	"github.com/BTreeMap/SehatSahara/internal/resolver"
	"github.com/BTreeMap/SehatSahara/internal/safety"
	"github.com/BTreeMap/SehatSahara/internal/store"
	"github.com/BTreeMap/SehatSahara/internal/triage"
	"github.com/BTreeMap/SehatSahara/internal/util"
	"github.com/google/uuid"
)

// DefaultProgressTurns is how many logged turns Progress reads when the caller
// supplies no recent intents.
const DefaultProgressTurns = 5

// Opts holds configuration for an Engine.
type Opts struct {
	Store               store.ConversationStore
	Selector            util.Selector
	MaxExchanges        int
	ConfidenceThreshold float64
}

// Option configures an Engine.
type Option func(*Opts)

// WithStore sets the conversation store. The default is an in-memory store.
func WithStore(s store.ConversationStore) Option {
	return func(o *Opts) {
		o.Store = s
	}
}

// WithSelector sets the template selector. Tests pass a util.FixedSelector.
func WithSelector(sel util.Selector) Option {
	return func(o *Opts) {
		o.Selector = sel
	}
}

// WithMaxExchanges sets the number of triage exchanges before precautions are given.
func WithMaxExchanges(n int) Option {
	return func(o *Opts) {
		o.MaxExchanges = n
	}
}

// WithConfidenceThreshold sets the NLU confidence below which the confusion response is used.
func WithConfidenceThreshold(th float64) Option {
	return func(o *Opts) {
		o.ConfidenceThreshold = th
	}
}

// Engine is safe for concurrent use. Turns for the same user are serialized
// by the store.
type Engine struct {
	store    store.ConversationStore
	resolver *resolver.Resolver
	triage   *triage.Machine
}

// Stats reports the engine configuration and catalog sizes.
type Stats struct {
	catalog.Stats
	MaxExchanges        int     `json:"max_exchanges"`
	ConfidenceThreshold float64 `json:"confidence_threshold"`
}

// NewEngine creates an Engine.
func NewEngine(opts ...Option) *Engine {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Store == nil {
		cfg.Store = store.NewInMemoryStore()
	}

	var triageOpts []triage.Option
	if cfg.MaxExchanges > 0 {
		triageOpts = append(triageOpts, triage.WithMaxExchanges(cfg.MaxExchanges))
	}
	resolverOpts := []resolver.Option{resolver.WithSelector(cfg.Selector)}
	if cfg.ConfidenceThreshold > 0 {
		resolverOpts = append(resolverOpts, resolver.WithConfidenceThreshold(cfg.ConfidenceThreshold))
	}

	e := &Engine{
		store:    cfg.Store,
		resolver: resolver.New(resolverOpts...),
		triage:   triage.NewMachine(triageOpts...),
	}
	slog.Debug("Engine created", "max_exchanges", e.triage.MaxExchanges(), "confidence_threshold", e.resolver.Threshold())
	return e
}

// turnOutcome is what one Process turn decided, captured inside the store transaction.
type turnOutcome struct {
	contract models.ResponseContract
	intent   models.Intent
}

// Process handles one raw utterance for userID. It never returns an error:
// failures and panics become the locale fallback response.
func (e *Engine) Process(ctx context.Context, utterance, userID string) (contract models.ResponseContract) {
	lang := models.DefaultLanguage
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Engine.Process: recovered from panic", "panic", r, "user_id", userID)
			contract = fallbackContract(lang)
		}
	}()
	slog.Debug("Engine.Process invoked", "user_id", userID, "length", len(utterance))

	var out turnOutcome
	_, err := e.store.WithConversation(ctx, userID, func(st *models.ConversationState) error {
		if st.Stage == models.StageInitial {
			st.Language = locale.Detect(utterance)
			st.Stage = models.StageUnderstanding
		}
		lang = st.Language
		out = e.processTurn(st, utterance)
		return nil
	})
	if err != nil {
		slog.Error("Engine.Process failed", "error", err, "user_id", userID)
		return fallbackContract(lang)
	}

	out.contract.Normalize()
	e.logTurn(ctx, userID, utterance, out.intent, out.contract)
	return out.contract
}

// processTurn runs the safety gates and the triage machine against st.
func (e *Engine) processTurn(st *models.ConversationState, utterance string) turnOutcome {
	lang := st.Language

	switch safety.Check(utterance, lang, safety.TierFull) {
	case safety.Emergency:
		slog.Info("Engine.Process: emergency detected", "user_id", st.UserID, "language", lang)
		res := e.resolver.Emergency(lang)
		return turnOutcome{
			contract: contractFrom(lang, res.Response, res.Action, res.Parameters, []models.Button{compose.EmergencyButton(lang)}),
			intent:   res.Intent,
		}
	case safety.MedicalAdvice:
		slog.Info("Engine.Process: medical advice request declined", "user_id", st.UserID, "language", lang)
		return turnOutcome{
			contract: contractFrom(lang, catalog.NoMedicalAdviceText(lang), models.ActionNavigateToAppointmentBooking,
				models.Parameters{}, compose.Buttons(models.IntentAppointmentBooking, lang)),
			intent: models.IntentAppointmentBooking,
		}
	}

	wasInTriage := st.InTriage()
	step := e.triage.Advance(st, utterance)

	intent := models.IntentGeneralInquiry
	if wasInTriage || step.Started {
		intent = models.IntentSymptomTriage
	}
	buttons := []models.Button{}
	if step.Completed {
		buttons = compose.Buttons(models.IntentAppointmentBooking, lang)
	}
	return turnOutcome{
		contract: contractFrom(lang, step.Response, step.Action, step.Parameters, buttons),
		intent:   intent,
	}
}

// GenerateResponse answers a turn whose intent was already classified. Safety
// gates run on phrases only, then the confidence gate, then the catalog. In
// strict mode the result marshals as the bare contract.
func (e *Engine) GenerateResponse(ctx context.Context, utterance string, nlu models.NLUResult, userCtx *models.UserContext, history []models.HistoryEntry, strict bool) (resp models.ExtendedResponse) {
	lang := nlu.LanguageDetected
	if lang == "" {
		lang = models.DefaultLanguage
	}
	intent := nlu.PrimaryIntent
	if intent == "" {
		intent = models.IntentGeneralInquiry
	}
	urgency := nlu.UrgencyLevel
	if urgency == "" {
		urgency = models.UrgencyLow
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("Engine.GenerateResponse: recovered from panic", "panic", r, "intent", intent)
			resp = e.extended(fallbackContract(lang), intent, urgency, nlu.Confidence, strict)
			resp.FallbackTriggered = true
		}
	}()
	if !lang.IsSupported() {
		slog.Warn("Engine.GenerateResponse: unsupported language, using default templates", "language", lang)
	}
	slog.Debug("Engine.GenerateResponse invoked", "intent", intent, "confidence", nlu.Confidence,
		"language", lang, "urgency", urgency, "history_len", len(history), "strict", strict)

	if err := ctx.Err(); err != nil {
		slog.Error("Engine.GenerateResponse failed", "error", err, "intent", intent)
		resp = e.extended(fallbackContract(lang), intent, urgency, nlu.Confidence, strict)
		resp.FallbackTriggered = true
		return resp
	}

	switch safety.Check(utterance, lang, safety.TierPhrases) {
	case safety.Emergency:
		res := e.resolver.Emergency(lang)
		resp = e.extended(contractFrom(lang, res.Response, res.Action, res.Parameters,
			[]models.Button{compose.EmergencyButton(lang)}), res.Intent, models.UrgencyEmergency, nlu.Confidence, strict)
		resp.SafetyTriggered = true
		return resp
	case safety.MedicalAdvice:
		res := e.resolver.MedicalAdvice(lang)
		resp = e.extended(contractFrom(lang, res.Response, res.Action, res.Parameters,
			compose.Buttons(models.IntentAppointmentBooking, lang)), intent, urgency, nlu.Confidence, strict)
		resp.SafetyTriggered = true
		return resp
	}

	if !e.resolver.Confident(nlu.Confidence) {
		res := e.resolver.Confusion(lang)
		resp = e.extended(contractFrom(lang, res.Response, res.Action, res.Parameters, nil),
			intent, urgency, nlu.Confidence, strict)
		resp.ConfusionHandled = true
		return resp
	}

	res := e.resolver.Resolve(intent, lang, urgency, nlu.ContextEntities)
	if userCtx != nil {
		if userCtx.UserID != "" {
			res.Parameters["user_id"] = userCtx.UserID
		}
		if userCtx.SessionID != "" {
			res.Parameters["session_id"] = userCtx.SessionID
		}
	}
	text := compose.WithGuidance(res.Response, res.Intent, lang)
	return e.extended(contractFrom(lang, text, res.Action, res.Parameters, compose.Buttons(res.Intent, lang)),
		res.Intent, urgency, nlu.Confidence, strict)
}

func (e *Engine) extended(c models.ResponseContract, intent models.Intent, urgency models.Urgency, confidence float64, strict bool) models.ExtendedResponse {
	c.Normalize()
	return models.ExtendedResponse{
		ResponseContract: c,
		Intent:           intent,
		UrgencyLevel:     urgency,
		Timestamp:        time.Now().UTC(),
		Confidence:       confidence,
		Strict:           strict,
	}
}

// Reset deletes the conversation state of userID.
func (e *Engine) Reset(ctx context.Context, userID string) error {
	if err := e.store.DeleteConversation(ctx, userID); err != nil {
		return fmt.Errorf("reset conversation: %w", err)
	}
	slog.Info("Engine.Reset: conversation cleared", "user_id", userID)
	return nil
}

// State returns the stored conversation state of userID, or nil if there is none.
func (e *Engine) State(ctx context.Context, userID string) (*models.ConversationState, error) {
	return e.store.GetConversation(ctx, userID)
}

// Progress builds the progress-aware buttons and context summary. When the
// caller passes no recent intents they are read from the turn log.
func (e *Engine) Progress(ctx context.Context, uc models.UserContext) (models.ProgressReport, error) {
	if len(uc.RecentIntents) == 0 && uc.UserID != "" {
		turns, err := e.store.RecentTurns(ctx, uc.UserID, DefaultProgressTurns)
		if err != nil {
			return models.ProgressReport{}, fmt.Errorf("load recent turns: %w", err)
		}
		for _, t := range turns {
			if t.Intent != "" {
				uc.RecentIntents = append(uc.RecentIntents, t.Intent)
			}
		}
	}
	return compose.Progress(uc), nil
}

// SupportedLanguages returns the language codes the catalog covers.
func (e *Engine) SupportedLanguages() []models.Language {
	return models.SupportedLanguages()
}

// SupportedActions returns every action the engine can emit.
func (e *Engine) SupportedActions() []models.Action {
	return catalog.Actions()
}

// ValidateContract reports whether c has a response, a known action and a
// supported language.
func (e *Engine) ValidateContract(c models.ResponseContract) bool {
	return c.Valid() && c.Language.IsSupported()
}

// Stats returns the catalog sizes and engine settings.
func (e *Engine) Stats() Stats {
	return Stats{
		Stats:               catalog.TableStats(),
		MaxExchanges:        e.triage.MaxExchanges(),
		ConfidenceThreshold: e.resolver.Threshold(),
	}
}

func (e *Engine) logTurn(ctx context.Context, userID, utterance string, intent models.Intent, c models.ResponseContract) {
	turn := models.Turn{
		ID:        uuid.NewString(),
		UserID:    userID,
		Utterance: utterance,
		Intent:    intent,
		Action:    c.Action,
		Language:  c.Language,
		CreatedAt: time.Now().UTC(),
	}
	if err := e.store.AddTurn(ctx, turn); err != nil {
		slog.Warn("Engine.Process: failed to log turn", "error", err, "user_id", userID)
	}
}

func contractFrom(lang models.Language, text string, action models.Action, params models.Parameters, buttons []models.Button) models.ResponseContract {
	c := models.ResponseContract{
		Language:           lang,
		Response:           text,
		Action:             action,
		Parameters:         params,
		InteractiveButtons: buttons,
	}
	c.Normalize()
	return c
}

func fallbackContract(lang models.Language) models.ResponseContract {
	return contractFrom(lang, catalog.FallbackText(lang), models.ActionConnectToSupportAgent,
		models.Parameters{"reason": catalog.ReasonSystemError}, nil)
}
