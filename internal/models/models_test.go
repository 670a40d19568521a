package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestChatRequestValidate(t *testing.T) {
	tests := []struct {
		name string
		req  ChatRequest
		want error
	}{
		{"valid", ChatRequest{UserID: "u1", Message: "hello"}, nil},
		{"missing user", ChatRequest{Message: "hello"}, ErrEmptyUserID},
		{"blank message", ChatRequest{UserID: "u1", Message: "   "}, ErrEmptyMessage},
		{"long message", ChatRequest{UserID: "u1", Message: strings.Repeat("a", MaxMessageLength+1)}, ErrMessageTooLong},
		{"long user", ChatRequest{UserID: strings.Repeat("u", MaxUserIDLength+1), Message: "hi"}, ErrUserIDTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.req.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRespondRequestValidateConfidence(t *testing.T) {
	req := RespondRequest{Message: "hi", NLU: NLUResult{Confidence: 1.5}}
	if err := req.Validate(); !errors.Is(err, ErrInvalidConfidence) {
		t.Errorf("expected ErrInvalidConfidence, got %v", err)
	}
}

func TestLanguageOrDefault(t *testing.T) {
	if LanguagePunjabi.OrDefault() != LanguagePunjabi {
		t.Error("supported language should be kept")
	}
	if Language("fr").OrDefault() != DefaultLanguage {
		t.Error("unsupported language should fall back to default")
	}
	if len(SupportedLanguages()) != 3 {
		t.Errorf("expected 3 supported languages, got %d", len(SupportedLanguages()))
	}
}

func TestActionEnumeration(t *testing.T) {
	if Action("Maps_TO_APPOINTMENT_BOOKING").IsValid() {
		t.Error("malformed action must not be part of the enumeration")
	}
	for _, a := range AllActions() {
		if !a.IsValid() {
			t.Errorf("action %s reported invalid", a)
		}
	}
}

func TestAddSymptomsKeepsOrderAndDeduplicates(t *testing.T) {
	s := NewConversationState("u1")
	s.AddSymptoms([]string{"bukhar", "dard"})
	s.AddSymptoms([]string{"dard", "khansi"})
	got := strings.Join(s.SymptomsGathered, ",")
	if got != "bukhar,dard,khansi" {
		t.Errorf("SymptomsGathered = %s", got)
	}

	s.Stage = StageSymptomCheck
	s.SymptomCount = 3
	s.ResetTriage()
	if s.Stage != StageInitial || s.SymptomCount != 0 || len(s.SymptomsGathered) != 0 {
		t.Errorf("ResetTriage left state %+v", s)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := NewConversationState("u1")
	s.AddSymptoms([]string{"fever"})
	c := s.Clone()
	c.SymptomsGathered[0] = "cough"
	if s.SymptomsGathered[0] != "fever" {
		t.Error("Clone shares symptom slice with original")
	}
}

func TestExtendedResponseStrictMarshal(t *testing.T) {
	resp := ExtendedResponse{
		ResponseContract: ResponseContract{
			Language: LanguageEnglish,
			Response: "ok",
			Action:   ActionShowAppFeatures,
		},
		Intent:     IntentGeneralInquiry,
		Timestamp:  time.Unix(0, 0).UTC(),
		Confidence: 0.9,
		Strict:     true,
	}
	resp.Normalize()

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	for _, key := range []string{"language", "response", "action", "parameters", "interactive_buttons"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("strict output missing %q", key)
		}
	}
	if len(fields) != 5 {
		t.Errorf("strict output has extra fields: %v", fields)
	}

	resp.Strict = false
	data, _ = json.Marshal(resp)
	if !strings.Contains(string(data), `"intent":"general_inquiry"`) {
		t.Errorf("extended output missing intent: %s", data)
	}
}

func TestAPIResponseHelpers(t *testing.T) {
	if r := Error("bad"); r.Status != string(APIStatusError) || r.Message != "bad" {
		t.Errorf("Error() = %+v", r)
	}
	if r := Success(42); r.Status != string(APIStatusOK) || r.Result != 42 {
		t.Errorf("Success() = %+v", r)
	}
}
