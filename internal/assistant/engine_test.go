package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/BTreeMap/SehatSahara/internal/catalog"
	"github.com/BTreeMap/SehatSahara/internal/models"
	"github.com/BTreeMap/SehatSahara/internal/store"
	"github.com/BTreeMap/SehatSahara/internal/util"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func newTestEngine(t *testing.T, opts ...Option) (*Engine, *store.InMemoryStore) {
	t.Helper()
	s := store.NewInMemoryStore()
	opts = append([]Option{WithStore(s), WithSelector(util.FixedSelector(0))}, opts...)
	return NewEngine(opts...), s
}

func buttonActions(buttons []models.Button) []models.Action {
	out := []models.Action{}
	for _, b := range buttons {
		out = append(out, b.Action)
	}
	return out
}

// failingStore fails every transaction.
type failingStore struct {
	*store.InMemoryStore
	err error
}

func (f failingStore) WithConversation(ctx context.Context, userID string, fn func(*models.ConversationState) error) (models.ConversationState, error) {
	return models.ConversationState{}, f.err
}

// panickingStore panics inside the transaction.
type panickingStore struct {
	*store.InMemoryStore
}

func (p panickingStore) WithConversation(ctx context.Context, userID string, fn func(*models.ConversationState) error) (models.ConversationState, error) {
	panic("corrupt state")
}

func TestProcess_EmergencyAlwaysTriggersSOS(t *testing.T) {
	tests := []struct {
		name      string
		utterance string
		lang      models.Language
	}{
		{"english chest pain", "I have chest pain", models.LanguageEnglish},
		{"hindi", "mujhe seene mein dard ho raha hai", models.LanguageHindi},
		{"hindi accident", "accident hua hai", models.LanguageHindi},
		{"devanagari script", "मदद चाहिए, accident hua hai", models.LanguageHindi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEngine(t)
			got := e.Process(context.Background(), tt.utterance, "user-"+tt.name)
			if got.Action != models.ActionTriggerSOS {
				t.Fatalf("Action = %s, want TRIGGER_SOS", got.Action)
			}
			if got.Parameters["emergency_number"] != "108" || got.Parameters["type"] != "medical_emergency" {
				t.Errorf("unexpected emergency parameters: %v", got.Parameters)
			}
			if got.Language != tt.lang {
				t.Errorf("Language = %s, want %s", got.Language, tt.lang)
			}
			if diff := cmp.Diff([]models.Action{models.ActionTriggerSOS}, buttonActions(got.InteractiveButtons)); diff != "" {
				t.Errorf("buttons mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestProcess_TriageFlow(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	user := "triage-user"

	first := e.Process(ctx, "I have fever", user)
	if first.Action != models.ActionContinueSymptomCheck {
		t.Fatalf("turn 1 Action = %s, want CONTINUE_SYMPTOM_CHECK", first.Action)
	}
	if len(first.InteractiveButtons) != 0 {
		t.Errorf("turn 1 should carry no buttons, got %v", first.InteractiveButtons)
	}
	state, _ := e.State(ctx, user)
	if state.Stage != models.StageSymptomCheck || state.SymptomCount != 1 {
		t.Fatalf("after turn 1 state = %+v", state)
	}
	if state.LastQuestion != first.Response {
		t.Errorf("LastQuestion = %q, want %q", state.LastQuestion, first.Response)
	}

	second := e.Process(ctx, "since two days, also cough", user)
	if second.Action != models.ActionContinueSymptomCheck {
		t.Fatalf("turn 2 Action = %s, want CONTINUE_SYMPTOM_CHECK", second.Action)
	}
	if second.Response == first.Response {
		t.Error("turn 2 should ask a different question")
	}

	third := e.Process(ctx, "no", user)
	if third.Action != models.ActionNavigateToAppointmentBooking {
		t.Fatalf("turn 3 Action = %s, want NAVIGATE_TO_APPOINTMENT_BOOKING", third.Action)
	}
	if len(third.Parameters) != 0 {
		t.Errorf("turn 3 parameters = %v, want empty", third.Parameters)
	}
	if !strings.HasSuffix(third.Response, "\n\n"+catalog.DisclaimerText(models.LanguageEnglish)) {
		t.Errorf("turn 3 response missing disclaimer: %q", third.Response)
	}
	if diff := cmp.Diff([]models.Action{models.ActionNavigateToAppointmentBooking}, buttonActions(third.InteractiveButtons)); diff != "" {
		t.Errorf("turn 3 buttons mismatch (-want +got):\n%s", diff)
	}

	state, _ = e.State(ctx, user)
	if state.Stage != models.StageInitial || state.SymptomCount != 0 || len(state.SymptomsGathered) != 0 {
		t.Errorf("state not reset after triage: %+v", state)
	}
}

func TestProcess_MaxExchangesOption(t *testing.T) {
	e, _ := newTestEngine(t, WithMaxExchanges(2))
	ctx := context.Background()
	e.Process(ctx, "I have fever", "u")
	got := e.Process(ctx, "two days", "u")
	if got.Action != models.ActionNavigateToAppointmentBooking {
		t.Errorf("Action = %s, want triage to complete after 2 exchanges", got.Action)
	}
}

func TestProcess_HindiDetectedOnFirstTurn(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	got := e.Process(ctx, "Namaste, mujhe bukhar hai", "hindi-user")
	if got.Language != models.LanguageHindi {
		t.Fatalf("Language = %s, want hi", got.Language)
	}
	if got.Action != models.ActionContinueSymptomCheck {
		t.Errorf("Action = %s, want CONTINUE_SYMPTOM_CHECK", got.Action)
	}

	// Later turns keep the detected language.
	next := e.Process(ctx, "two days", "hindi-user")
	if next.Language != models.LanguageHindi {
		t.Errorf("second turn Language = %s, want hi", next.Language)
	}
}

func TestProcess_MedicalAdviceDeclined(t *testing.T) {
	e, _ := newTestEngine(t)
	got := e.Process(context.Background(), "what medicine should I take?", "advice-user")
	want := models.ResponseContract{
		Language:   models.LanguageEnglish,
		Response:   catalog.NoMedicalAdviceText(models.LanguageEnglish),
		Action:     models.ActionNavigateToAppointmentBooking,
		Parameters: models.Parameters{},
	}
	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(models.ResponseContract{}, "InteractiveButtons")); diff != "" {
		t.Errorf("contract mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]models.Action{models.ActionNavigateToAppointmentBooking}, buttonActions(got.InteractiveButtons)); diff != "" {
		t.Errorf("buttons mismatch (-want +got):\n%s", diff)
	}
}

func TestProcess_GeneralHelp(t *testing.T) {
	e, _ := newTestEngine(t)
	got := e.Process(context.Background(), "hello there", "general-user")
	if got.Action != models.ActionShowAppFeatures {
		t.Errorf("Action = %s, want SHOW_APP_FEATURES", got.Action)
	}
	if got.Parameters == nil || got.InteractiveButtons == nil {
		t.Error("contract collections must be non-nil")
	}
	if len(got.InteractiveButtons) != 0 {
		t.Errorf("expected no buttons, got %v", got.InteractiveButtons)
	}
}

func TestProcess_EmergencyDuringTriageKeepsState(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	e.Process(ctx, "I have fever", "mid-triage")
	before, _ := e.State(ctx, "mid-triage")

	got := e.Process(ctx, "now there is chest pain", "mid-triage")
	if got.Action != models.ActionTriggerSOS {
		t.Fatalf("Action = %s, want TRIGGER_SOS", got.Action)
	}
	after, _ := e.State(ctx, "mid-triage")
	if after.SymptomCount != before.SymptomCount || after.Stage != before.Stage {
		t.Errorf("emergency mutated triage state: before %+v after %+v", before, after)
	}
}

func TestProcess_FailuresBecomeFallback(t *testing.T) {
	tests := []struct {
		name  string
		store store.ConversationStore
	}{
		{"store error", failingStore{InMemoryStore: store.NewInMemoryStore(), err: errors.New("disk full")}},
		{"panic", panickingStore{InMemoryStore: store.NewInMemoryStore()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(WithStore(tt.store))
			got := e.Process(context.Background(), "hello", "u")
			want := models.ResponseContract{
				Language:           models.LanguageEnglish,
				Response:           catalog.FallbackText(models.LanguageEnglish),
				Action:             models.ActionConnectToSupportAgent,
				Parameters:         models.Parameters{"reason": "system_error"},
				InteractiveButtons: []models.Button{},
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("fallback mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestProcess_SerializesSameUser(t *testing.T) {
	e, _ := newTestEngine(t, WithMaxExchanges(1000))
	ctx := context.Background()
	const turns = 30

	var wg sync.WaitGroup
	for i := 0; i < turns; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.Process(ctx, "fever", "busy-user")
		}()
	}
	wg.Wait()

	state, err := e.State(ctx, "busy-user")
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	if state.SymptomCount != turns {
		t.Errorf("SymptomCount = %d, want %d", state.SymptomCount, turns)
	}
}

func TestProcess_LogsTurns(t *testing.T) {
	e, s := newTestEngine(t)
	ctx := context.Background()
	e.Process(ctx, "hello", "logged")
	e.Process(ctx, "I have fever", "logged")

	turns, err := s.RecentTurns(ctx, "logged", 10)
	if err != nil {
		t.Fatalf("RecentTurns: %v", err)
	}
	var got []models.Intent
	for _, turn := range turns {
		got = append(got, turn.Intent)
		if turn.ID == "" {
			t.Error("turn logged without ID")
		}
	}
	want := []models.Intent{models.IntentGeneralInquiry, models.IntentSymptomTriage}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("logged intents mismatch (-want +got):\n%s", diff)
	}
}

func TestReset(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	e.Process(ctx, "I have fever", "reset-me")
	if err := e.Reset(ctx, "reset-me"); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	state, err := e.State(ctx, "reset-me")
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	if state != nil {
		t.Errorf("expected no state after reset, got %+v", state)
	}
}

func TestGenerateResponse(t *testing.T) {
	tests := []struct {
		name        string
		utterance   string
		nlu         models.NLUResult
		userCtx     *models.UserContext
		wantAction  models.Action
		wantButtons []models.Action
		check       func(t *testing.T, got models.ExtendedResponse)
	}{
		{
			name:        "confident booking",
			utterance:   "appointment book karni hai",
			nlu:         models.NLUResult{PrimaryIntent: models.IntentAppointmentBooking, Confidence: 0.9, LanguageDetected: models.LanguageEnglish},
			userCtx:     &models.UserContext{UserID: "u1", SessionID: "s1"},
			wantAction:  models.ActionNavigateToAppointmentBooking,
			wantButtons: []models.Action{models.ActionNavigateToAppointmentBooking},
			check: func(t *testing.T, got models.ExtendedResponse) {
				if !strings.Contains(got.Response, "💡") {
					t.Errorf("booking response missing guidance: %q", got.Response)
				}
				if got.Parameters["user_id"] != "u1" || got.Parameters["session_id"] != "s1" {
					t.Errorf("user context not merged: %v", got.Parameters)
				}
				if got.SafetyTriggered || got.ConfusionHandled || got.FallbackTriggered {
					t.Errorf("no gate flags expected: %+v", got)
				}
			},
		},
		{
			name:        "low confidence",
			utterance:   "hmm",
			nlu:         models.NLUResult{PrimaryIntent: models.IntentAppointmentBooking, Confidence: 0.29},
			wantAction:  models.ActionConnectToSupportAgent,
			wantButtons: []models.Action{},
			check: func(t *testing.T, got models.ExtendedResponse) {
				if !got.ConfusionHandled {
					t.Error("ConfusionHandled not set")
				}
				if got.Parameters["reason"] != "unclear_request" {
					t.Errorf("reason = %v, want unclear_request", got.Parameters["reason"])
				}
			},
		},
		{
			name:        "emergency phrase beats nlu",
			utterance:   "there was an accident",
			nlu:         models.NLUResult{PrimaryIntent: models.IntentAppointmentView, Confidence: 0.95},
			wantAction:  models.ActionTriggerSOS,
			wantButtons: []models.Action{models.ActionTriggerSOS},
			check: func(t *testing.T, got models.ExtendedResponse) {
				if !got.SafetyTriggered {
					t.Error("SafetyTriggered not set")
				}
				if got.UrgencyLevel != models.UrgencyEmergency {
					t.Errorf("UrgencyLevel = %s, want emergency", got.UrgencyLevel)
				}
			},
		},
		{
			name:        "medical advice phrase",
			utterance:   "which tablet is good?",
			nlu:         models.NLUResult{PrimaryIntent: models.IntentFindMedicine, Confidence: 0.8},
			wantAction:  models.ActionNavigateToAppointmentBooking,
			wantButtons: []models.Action{models.ActionNavigateToAppointmentBooking},
			check: func(t *testing.T, got models.ExtendedResponse) {
				if !got.SafetyTriggered {
					t.Error("SafetyTriggered not set")
				}
				if got.Parameters["reason"] != "medical_advice_needed" {
					t.Errorf("reason = %v, want medical_advice_needed", got.Parameters["reason"])
				}
			},
		},
		{
			name:        "emergency urgency marks parameters",
			utterance:   "show my appointments",
			nlu:         models.NLUResult{PrimaryIntent: models.IntentAppointmentView, Confidence: 0.7, UrgencyLevel: models.UrgencyEmergency},
			wantAction:  models.ActionFetchAppointments,
			wantButtons: []models.Action{},
			check: func(t *testing.T, got models.ExtendedResponse) {
				if got.Parameters["priority"] != "high" || got.Parameters["urgent"] != true {
					t.Errorf("urgency parameters missing: %v", got.Parameters)
				}
			},
		},
		{
			name:        "entities override defaults",
			utterance:   "show my records",
			nlu:         models.NLUResult{PrimaryIntent: models.IntentHealthRecordRequest, Confidence: 0.7, ContextEntities: models.Parameters{"record_type": "lab"}},
			wantAction:  models.ActionFetchHealthRecord,
			wantButtons: []models.Action{models.ActionFetchHealthRecord},
			check: func(t *testing.T, got models.ExtendedResponse) {
				if got.Parameters["record_type"] != "lab" {
					t.Errorf("record_type = %v, want lab", got.Parameters["record_type"])
				}
			},
		},
		{
			name:        "unsupported language echoed with english templates",
			utterance:   "je veux un rendez-vous",
			nlu:         models.NLUResult{PrimaryIntent: models.IntentAppointmentCancel, Confidence: 0.8, LanguageDetected: "fr"},
			wantAction:  models.ActionInitiateAppointmentCancellation,
			wantButtons: []models.Action{},
			check: func(t *testing.T, got models.ExtendedResponse) {
				if got.Language != "fr" {
					t.Errorf("Language = %s, want fr echoed", got.Language)
				}
				entry, _ := catalog.IntentEntry(models.IntentAppointmentCancel, models.LanguageEnglish)
				if got.Response != entry.Responses[0] {
					t.Errorf("Response = %q, want english template", got.Response)
				}
			},
		},
		{
			name:        "unknown intent falls back to general inquiry",
			utterance:   "tell me something",
			nlu:         models.NLUResult{PrimaryIntent: "weather_report", Confidence: 0.9},
			wantAction:  models.ActionShowAppFeatures,
			wantButtons: []models.Action{},
			check: func(t *testing.T, got models.ExtendedResponse) {
				if got.Intent != models.IntentGeneralInquiry {
					t.Errorf("Intent = %s, want general_inquiry", got.Intent)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEngine(t)
			got := e.GenerateResponse(context.Background(), tt.utterance, tt.nlu, tt.userCtx, nil, false)
			if got.Action != tt.wantAction {
				t.Fatalf("Action = %s, want %s", got.Action, tt.wantAction)
			}
			if diff := cmp.Diff(tt.wantButtons, buttonActions(got.InteractiveButtons)); diff != "" {
				t.Errorf("buttons mismatch (-want +got):\n%s", diff)
			}
			if got.Timestamp.IsZero() {
				t.Error("Timestamp not set")
			}
			if !e.ValidateContract(got.Contract()) && got.Language.IsSupported() {
				t.Errorf("invalid contract: %+v", got.Contract())
			}
			if tt.check != nil {
				tt.check(t, got)
			}
		})
	}
}

func TestGenerateResponse_Defaults(t *testing.T) {
	e, _ := newTestEngine(t)
	got := e.GenerateResponse(context.Background(), "hi", models.NLUResult{Confidence: 1}, nil, nil, false)
	if got.Language != models.LanguageEnglish || got.Intent != models.IntentGeneralInquiry || got.UrgencyLevel != models.UrgencyLow {
		t.Errorf("defaults not applied: language=%s intent=%s urgency=%s", got.Language, got.Intent, got.UrgencyLevel)
	}
}

func TestGenerateResponse_StrictMarshalsContractOnly(t *testing.T) {
	e, _ := newTestEngine(t)
	nlu := models.NLUResult{PrimaryIntent: models.IntentMedicineScan, Confidence: 0.9, LanguageDetected: models.LanguageHindi}
	got := e.GenerateResponse(context.Background(), "dawai scan", nlu, nil, nil, true)

	data, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	var keys []string
	for k := range fields {
		keys = append(keys, k)
	}
	want := []string{"action", "interactive_buttons", "language", "parameters", "response"}
	if diff := cmp.Diff(want, keys, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Errorf("strict keys mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateResponse_CanceledContextFallsBack(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got := e.GenerateResponse(ctx, "hello", models.NLUResult{PrimaryIntent: models.IntentGeneralInquiry, Confidence: 1}, nil, nil, false)
	if !got.FallbackTriggered || got.Action != models.ActionConnectToSupportAgent {
		t.Errorf("expected fallback, got %+v", got)
	}
	if got.Parameters["reason"] != "system_error" {
		t.Errorf("reason = %v, want system_error", got.Parameters["reason"])
	}
}

func TestProgress_FillsRecentIntentsFromTurnLog(t *testing.T) {
	e, s := newTestEngine(t)
	ctx := context.Background()
	if err := s.AddTurn(ctx, models.Turn{ID: "t1", UserID: "p", Intent: models.IntentMedicineScan, Action: models.ActionStartMedicineScanner, Language: models.LanguageEnglish}); err != nil {
		t.Fatalf("AddTurn: %v", err)
	}

	report, err := e.Progress(ctx, models.UserContext{
		UserID:            "p",
		AppointmentStatus: models.AppointmentStatus{HasUpcomingAppointment: true},
	})
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if diff := cmp.Diff([]models.Action{models.ActionStartMedicineScanner}, buttonActions(report.InteractiveButtons)); diff != "" {
		t.Errorf("progress buttons mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]models.Intent{models.IntentMedicineScan}, report.ContextSummary.RecentIntents); diff != "" {
		t.Errorf("recent intents mismatch (-want +got):\n%s", diff)
	}
}

func TestMetadata(t *testing.T) {
	e, _ := newTestEngine(t)
	if got := len(e.SupportedActions()); got != 14 {
		t.Errorf("SupportedActions = %d, want 14", got)
	}
	if diff := cmp.Diff([]models.Language{"en", "hi", "pa"}, e.SupportedLanguages()); diff != "" {
		t.Errorf("SupportedLanguages mismatch (-want +got):\n%s", diff)
	}
	stats := e.Stats()
	if stats.TotalIntents != 14 || stats.MaxExchanges != 3 || stats.ConfidenceThreshold != 0.3 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if e.ValidateContract(models.ResponseContract{Language: "en", Response: "x", Action: "Maps_TO_APPOINTMENT_BOOKING"}) {
		t.Error("unknown action accepted")
	}
	if !e.ValidateContract(models.ResponseContract{Language: "pa", Response: "x", Action: models.ActionShowAppFeatures}) {
		t.Error("valid contract rejected")
	}
}
