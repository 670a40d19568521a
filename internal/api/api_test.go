package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/BTreeMap/SehatSahara/internal/assistant"
	"github.com/BTreeMap/SehatSahara/internal/models"
	"github.com/BTreeMap/SehatSahara/internal/store"
	"github.com/BTreeMap/SehatSahara/internal/util"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func newTestServer(t *testing.T, opts ...Option) (*Server, *assistant.Engine) {
	t.Helper()
	engine := assistant.NewEngine(
		assistant.WithStore(store.NewInMemoryStore()),
		assistant.WithSelector(util.FixedSelector(0)),
	)
	return NewServer(engine, opts...), engine
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	return rr
}

func assertHTTPStatus(t *testing.T, want, got int, context string) {
	t.Helper()
	if got != want {
		t.Errorf("%s: expected status %d, got %d", context, want, got)
	}
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
	return v
}

func TestChatHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantAction models.Action
		wantError  string
	}{
		{"emergency", `{"user_id":"u1","message":"I have chest pain"}`, http.StatusOK, models.ActionTriggerSOS, ""},
		{"symptom", `{"user_id":"u2","message":"I have fever"}`, http.StatusOK, models.ActionContinueSymptomCheck, ""},
		{"missing user", `{"message":"hello"}`, http.StatusBadRequest, "", models.ErrEmptyUserID.Error()},
		{"blank message", `{"user_id":"u3","message":"  "}`, http.StatusBadRequest, "", models.ErrEmptyMessage.Error()},
		{"bad json", `{"user_id":`, http.StatusBadRequest, "", "Invalid JSON format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestServer(t)
			rr := do(t, s, http.MethodPost, "/v1/chat", tt.body)
			assertHTTPStatus(t, tt.wantStatus, rr.Code, tt.name)
			if tt.wantError != "" {
				got := decodeBody[models.APIResponse](t, rr)
				if got.Status != string(models.APIStatusError) || got.Message != tt.wantError {
					t.Errorf("unexpected error envelope: %+v", got)
				}
				return
			}
			got := decodeBody[models.ResponseContract](t, rr)
			if got.Action != tt.wantAction {
				t.Errorf("Action = %s, want %s", got.Action, tt.wantAction)
			}
		})
	}
}

func TestRespondHandler_StrictAndExtended(t *testing.T) {
	s, _ := newTestServer(t)
	nlu := `{"primary_intent":"appointment_booking","confidence":0.9,"language_detected":"en","urgency_level":"low"}`

	strict := do(t, s, http.MethodPost, "/v1/respond", `{"message":"book","strict":true,"nlu":`+nlu+`}`)
	assertHTTPStatus(t, http.StatusOK, strict.Code, "strict respond")
	keys := decodeBody[map[string]json.RawMessage](t, strict)
	var gotKeys []string
	for k := range keys {
		gotKeys = append(gotKeys, k)
	}
	wantKeys := []string{"language", "response", "action", "parameters", "interactive_buttons"}
	if diff := cmp.Diff(wantKeys, gotKeys, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Errorf("strict keys mismatch (-want +got):\n%s", diff)
	}

	extended := do(t, s, http.MethodPost, "/v1/respond", `{"message":"book","nlu":`+nlu+`}`)
	got := decodeBody[map[string]interface{}](t, extended)
	if got["intent"] != string(models.IntentAppointmentBooking) {
		t.Errorf("extended response missing intent: %v", got)
	}

	bad := do(t, s, http.MethodPost, "/v1/respond", `{"message":"book","nlu":{"confidence":3}}`)
	assertHTTPStatus(t, http.StatusBadRequest, bad.Code, "invalid confidence")
}

// stubClassifier returns a fixed result.
type stubClassifier struct {
	result models.NLUResult
}

func (s stubClassifier) Classify(ctx context.Context, utterance string) (models.NLUResult, error) {
	return s.result, nil
}

func TestClassifyHandler(t *testing.T) {
	t.Run("keyword default", func(t *testing.T) {
		s, _ := newTestServer(t)
		rr := do(t, s, http.MethodPost, "/v1/classify", `{"message":"appointment book karni hai"}`)
		assertHTTPStatus(t, http.StatusOK, rr.Code, "classify")
		got := decodeBody[map[string]interface{}](t, rr)
		if got["action"] != string(models.ActionNavigateToAppointmentBooking) {
			t.Errorf("action = %v", got["action"])
		}
		if _, ok := got["intent"]; ok {
			t.Error("classify should default to strict output")
		}
	})

	t.Run("configured classifier non-strict", func(t *testing.T) {
		s, _ := newTestServer(t, WithClassifier(stubClassifier{result: models.NLUResult{
			PrimaryIntent: models.IntentMedicineScan, Confidence: 0.9, LanguageDetected: models.LanguagePunjabi, UrgencyLevel: models.UrgencyLow,
		}}))
		rr := do(t, s, http.MethodPost, "/v1/classify", `{"message":"scan","strict":false}`)
		got := decodeBody[map[string]interface{}](t, rr)
		if got["action"] != string(models.ActionStartMedicineScanner) || got["language"] != "pa" || got["intent"] != string(models.IntentMedicineScan) {
			t.Errorf("unexpected classify response: %v", got)
		}
	})
}

func TestConversationHandlers(t *testing.T) {
	s, _ := newTestServer(t)

	assertHTTPStatus(t, http.StatusNotFound, do(t, s, http.MethodGet, "/v1/conversations/nobody", "").Code, "missing conversation")

	do(t, s, http.MethodPost, "/v1/chat", `{"user_id":"patient-1","message":"I have fever"}`)
	rr := do(t, s, http.MethodGet, "/v1/conversations/patient-1", "")
	assertHTTPStatus(t, http.StatusOK, rr.Code, "get conversation")
	type conversationEnvelope struct {
		Status string                   `json:"status"`
		Result models.ConversationState `json:"result"`
	}
	env := decodeBody[conversationEnvelope](t, rr)
	if env.Status != "ok" || env.Result.UserID != "patient-1" || !env.Result.InTriage() {
		t.Errorf("unexpected conversation: %+v", env)
	}

	rr = do(t, s, http.MethodDelete, "/v1/conversations/patient-1", "")
	assertHTTPStatus(t, http.StatusOK, rr.Code, "delete conversation")
	assertHTTPStatus(t, http.StatusNotFound, do(t, s, http.MethodGet, "/v1/conversations/patient-1", "").Code, "deleted conversation")
}

func TestProgressHandler(t *testing.T) {
	s, _ := newTestServer(t)
	do(t, s, http.MethodPost, "/v1/chat", `{"user_id":"p1","message":"I have fever"}`)

	rr := do(t, s, http.MethodPost, "/v1/progress", `{"user_id":"p1","appointment_status":{"has_upcoming_appointment":true},"prescription_summary":{"has_prescriptions":true}}`)
	assertHTTPStatus(t, http.StatusOK, rr.Code, "progress")
	report := decodeBody[models.ProgressReport](t, rr)
	if report.InteractiveButtons == nil {
		t.Error("progress buttons must be non-nil")
	}
	if report.CurrentLanguage != models.LanguageEnglish {
		t.Errorf("CurrentLanguage = %q, want en", report.CurrentLanguage)
	}
	if diff := cmp.Diff([]models.Intent{models.IntentSymptomTriage}, report.ContextSummary.RecentIntents); diff != "" {
		t.Errorf("recent intents from turn log mismatch (-want +got):\n%s", diff)
	}

	bad := do(t, s, http.MethodPost, "/v1/progress", `{"language":"fr"}`)
	assertHTTPStatus(t, http.StatusBadRequest, bad.Code, "unsupported language")
}

func TestSummaryHandler(t *testing.T) {
	s, _ := newTestServer(t)

	rr := do(t, s, http.MethodPost, "/v1/prescriptions/summary",
		`{"language":"fr","prescription":{"doctor_name":"Kaur","medications":[{"name":"Paracetamol","dosage":"500mg"}]}}`)
	assertHTTPStatus(t, http.StatusOK, rr.Code, "summary")
	got := decodeBody[SummaryResponse](t, rr)
	if got.Language != models.LanguageEnglish {
		t.Errorf("unsupported language should fall back to en, got %s", got.Language)
	}
	if !strings.Contains(got.Summary, "Paracetamol") || !strings.Contains(got.Summary, "Dr. Kaur") {
		t.Errorf("summary missing details: %q", got.Summary)
	}
}

func TestMetaAndHealth(t *testing.T) {
	s, _ := newTestServer(t)

	rr := do(t, s, http.MethodGet, "/v1/meta", "")
	assertHTTPStatus(t, http.StatusOK, rr.Code, "meta")
	var env struct {
		Result MetaResponse `json:"result"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode meta: %v", err)
	}
	if diff := cmp.Diff(models.SupportedLanguages(), env.Result.Languages); diff != "" {
		t.Errorf("languages mismatch (-want +got):\n%s", diff)
	}
	if len(env.Result.Actions) == 0 || env.Result.Stats.MaxExchanges == 0 {
		t.Errorf("meta incomplete: %+v", env.Result)
	}

	assertHTTPStatus(t, http.StatusOK, do(t, s, http.MethodGet, "/health", "").Code, "health")
}

func TestTwilioWebhookRoute(t *testing.T) {
	s, _ := newTestServer(t)
	assertHTTPStatus(t, http.StatusNotFound, do(t, s, http.MethodPost, "/webhooks/twilio", "").Code, "webhook without channel")

	called := false
	s, _ = newTestServer(t, WithTwilioWebhook(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))
	assertHTTPStatus(t, http.StatusOK, do(t, s, http.MethodPost, "/webhooks/twilio", "").Code, "webhook")
	if !called {
		t.Error("webhook handler not invoked")
	}
}
