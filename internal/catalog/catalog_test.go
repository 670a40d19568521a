package catalog

import (
	"strings"
	"testing"

	"github.com/BTreeMap/SehatSahara/internal/models"
)

func TestEveryIntentHasEnglishAndValidActions(t *testing.T) {
	for _, intent := range models.AllIntents() {
		byLang, ok := intentTable[intent]
		if !ok {
			t.Errorf("intent %s has no templates", intent)
			continue
		}
		if _, ok := byLang[models.LanguageEnglish]; !ok {
			t.Errorf("intent %s has no English entry", intent)
		}
		for lang, e := range byLang {
			if len(e.Responses) == 0 {
				t.Errorf("%s/%s has no responses", intent, lang)
			}
			if !e.Action.IsValid() {
				t.Errorf("%s/%s has invalid action %q", intent, lang, e.Action)
			}
		}
	}
}

func TestIntentEntryFallbacks(t *testing.T) {
	e, used := IntentEntry(models.Intent("weather_forecast"), models.LanguageHindi)
	if used != models.IntentGeneralInquiry {
		t.Errorf("unknown intent resolved to %s", used)
	}
	if e.Action != models.ActionShowAppFeatures {
		t.Errorf("unexpected action %s", e.Action)
	}

	fr, _ := IntentEntry(models.IntentAppointmentView, models.Language("fr"))
	enEntry, _ := IntentEntry(models.IntentAppointmentView, models.LanguageEnglish)
	if fr.Responses[0] != enEntry.Responses[0] {
		t.Error("unsupported language should use English templates")
	}
}

func TestIntentEntryParametersAreCopies(t *testing.T) {
	e, _ := IntentEntry(models.IntentHealthRecordRequest, models.LanguageEnglish)
	e.Parameters["record_type"] = "lab"
	again, _ := IntentEntry(models.IntentHealthRecordRequest, models.LanguageEnglish)
	if again.Parameters["record_type"] != "all" {
		t.Error("mutating returned parameters changed the table")
	}
}

func TestSymptomTemplatesAreNonDiagnostic(t *testing.T) {
	for _, lang := range models.SupportedLanguages() {
		e, _ := IntentEntry(models.IntentSymptomTriage, lang)
		for _, r := range e.Responses {
			for _, banned := range []string{"malaria", "typhoid", "dengue", "leptospirosis"} {
				if strings.Contains(strings.ToLower(r), banned) {
					t.Errorf("%s symptom template names %q", lang, banned)
				}
			}
		}
	}
}

func TestSafetyEntries(t *testing.T) {
	m := MedicalAdviceEntry(models.LanguagePunjabi)
	if m.Action != models.ActionNavigateToAppointmentBooking || m.Parameters["reason"] != ReasonMedicalAdviceNeeded {
		t.Errorf("medical advice entry = %+v", m)
	}
	c := ConfusionEntry(models.Language("xx"))
	if c.Action != models.ActionConnectToSupportAgent || c.Parameters["reason"] != ReasonUnclearRequest {
		t.Errorf("confusion entry = %+v", c)
	}
	p := EmergencyParameters()
	if p["emergency_number"] != "108" || p["type"] != "medical_emergency" {
		t.Errorf("emergency parameters = %v", p)
	}
}

func TestActionsAreOrderedAndComplete(t *testing.T) {
	actions := Actions()
	if len(actions) != len(models.AllActions()) {
		t.Fatalf("expected every action to be reachable, got %v", actions)
	}
	for i, a := range models.AllActions() {
		if actions[i] != a {
			t.Errorf("actions[%d] = %s, want %s", i, actions[i], a)
		}
	}
}

func TestPrecaution(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"bukhar", CategoryFever},
		{"cough", CategoryCough},
		{"ulti", CategoryStomach},
		{"diarrhea", CategoryStomach},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, ok := CategoryFor(tt.token)
			if !ok || got != tt.want {
				t.Errorf("CategoryFor(%q) = %q, %v", tt.token, got, ok)
			}
		})
	}
	if Precaution(models.LanguageEnglish, "unknown") != Precaution(models.LanguageEnglish, CategoryGeneral) {
		t.Error("unknown category should use general precautions")
	}
}

func TestLabelsAndGuidance(t *testing.T) {
	if Label(LabelCallEmergency, models.LanguageEnglish) != "Call Emergency (108)" {
		t.Error("unexpected emergency label")
	}
	if Label(LabelKey("nope"), models.LanguageEnglish) != "" {
		t.Error("unknown label should be empty")
	}
	if Guidance(models.IntentMedicineScan, models.LanguageHindi) == "" {
		t.Error("expected Hindi medicine scan guidance")
	}
	if Guidance(models.IntentReportIssue, models.LanguageEnglish) != "" {
		t.Error("report_issue should have no guidance")
	}
	if Guidance(models.IntentMedicineScan, models.Language("fr")) != "" {
		t.Error("guidance must not fall back to English")
	}
}

func TestTriageQuestionsLength(t *testing.T) {
	for _, lang := range models.SupportedLanguages() {
		if n := len(TriageQuestions(lang)); n != 8 {
			t.Errorf("%s has %d triage questions", lang, n)
		}
	}
}

func TestTableStats(t *testing.T) {
	s := TableStats()
	if s.TotalIntents != 14 || s.SupportedLanguages != 3 || s.SafetyResponsesConfigured != 3 {
		t.Errorf("TableStats() = %+v", s)
	}
}
