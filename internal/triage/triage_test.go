package triage

import (
	"strings"
	"testing"

	"github.com/BTreeMap/SehatSahara/internal/catalog"
	"github.com/BTreeMap/SehatSahara/internal/models"
	"github.com/google/go-cmp/cmp"
)

func newState(lang models.Language) *models.ConversationState {
	s := models.NewConversationState("u1")
	s.Language = lang
	s.Stage = models.StageUnderstanding
	return &s
}

func TestAdvanceWithoutSymptomsOffersHelp(t *testing.T) {
	m := NewMachine()
	s := newState(models.LanguageEnglish)
	step := m.Advance(s, "hello there")
	if step.Action != models.ActionShowAppFeatures {
		t.Errorf("action = %s, want SHOW_APP_FEATURES", step.Action)
	}
	if step.Response != catalog.GeneralHelpText(models.LanguageEnglish) {
		t.Errorf("unexpected response %q", step.Response)
	}
	if s.Stage != models.StageUnderstanding {
		t.Errorf("stage changed to %s", s.Stage)
	}
}

func TestTriageIsBoundedAtThreeTurns(t *testing.T) {
	m := NewMachine()
	s := newState(models.LanguageHindi)
	questions := catalog.TriageQuestions(models.LanguageHindi)

	step := m.Advance(s, "mujhe bukhar hai")
	if !step.Started || step.Action != models.ActionContinueSymptomCheck {
		t.Fatalf("turn 1 = %+v", step)
	}
	if step.Response != questions[1] || s.SymptomCount != 1 || s.LastQuestion != questions[1] {
		t.Errorf("turn 1 asked %q with count %d", step.Response, s.SymptomCount)
	}

	step = m.Advance(s, "do din se")
	if step.Action != models.ActionContinueSymptomCheck || step.Response != questions[2] {
		t.Errorf("turn 2 = %+v", step)
	}

	step = m.Advance(s, "khansi bhi hai")
	if !step.Completed || step.Action != models.ActionNavigateToAppointmentBooking {
		t.Fatalf("turn 3 = %+v", step)
	}
	wantText := catalog.Precaution(models.LanguageHindi, catalog.CategoryFever) + "\n\n" + catalog.DisclaimerText(models.LanguageHindi)
	if step.Response != wantText {
		t.Errorf("turn 3 response = %q", step.Response)
	}
	if len(step.Parameters) != 0 {
		t.Errorf("turn 3 parameters = %v, want empty", step.Parameters)
	}
	if s.Stage != models.StageInitial || s.SymptomCount != 0 || len(s.SymptomsGathered) != 0 {
		t.Errorf("state not reset: %+v", s)
	}

	// a fourth turn starts fresh
	s.Stage = models.StageUnderstanding
	step = m.Advance(s, "thank you")
	if step.Action != models.ActionShowAppFeatures {
		t.Errorf("turn 4 action = %s", step.Action)
	}
}

func TestSymptomsAreUnioned(t *testing.T) {
	m := NewMachine(WithMaxExchanges(5))
	s := newState(models.LanguageEnglish)
	m.Advance(s, "fever and cough")
	m.Advance(s, "still a fever, also headache")
	want := []string{"fever", "cough", "headache"}
	if diff := cmp.Diff(want, s.SymptomsGathered); diff != "" {
		t.Errorf("symptoms mismatch (-want +got):\n%s", diff)
	}
	if s.SymptomCount != 2 {
		t.Errorf("count = %d, want 2", s.SymptomCount)
	}
}

func TestQuestionIndexIsClamped(t *testing.T) {
	m := NewMachine(WithMaxExchanges(20))
	s := newState(models.LanguageEnglish)
	m.Advance(s, "pain")
	var step Step
	for i := 0; i < 10; i++ {
		step = m.Advance(s, "still")
	}
	questions := catalog.TriageQuestions(models.LanguageEnglish)
	if step.Response != questions[len(questions)-1] {
		t.Errorf("expected the last question, got %q", step.Response)
	}
}

func TestWithMaxExchangesIgnoresInvalid(t *testing.T) {
	if got := NewMachine(WithMaxExchanges(0)).MaxExchanges(); got != DefaultMaxExchanges {
		t.Errorf("MaxExchanges() = %d, want %d", got, DefaultMaxExchanges)
	}
}

func TestPrecautions(t *testing.T) {
	tests := []struct {
		name     string
		symptoms []string
		category string
	}{
		{"none", nil, catalog.CategoryGeneral},
		{"unmapped", []string{"headache"}, catalog.CategoryGeneral},
		{"first mapped wins", []string{"headache", "cough", "fever"}, catalog.CategoryCough},
		{"stomach", []string{"vomiting"}, catalog.CategoryStomach},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Precautions(tt.symptoms, models.LanguageEnglish)
			if want := catalog.Precaution(models.LanguageEnglish, tt.category); got != want {
				t.Errorf("Precautions(%v) = %q, want %q", tt.symptoms, got, want)
			}
		})
	}
}

func TestDetectSymptoms(t *testing.T) {
	got := DetectSymptoms("Sir Dard aur bukhar", models.LanguageHindi)
	if strings.Join(got, ",") != "bukhar,sir dard,dard" {
		t.Errorf("DetectSymptoms() = %v", got)
	}
}
