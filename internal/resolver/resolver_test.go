package resolver

import (
	"testing"

	"github.com/BTreeMap/SehatSahara/internal/catalog"
	"github.com/BTreeMap/SehatSahara/internal/models"
	"github.com/BTreeMap/SehatSahara/internal/util"
	"github.com/google/go-cmp/cmp"
)

func TestResolveUsesSelector(t *testing.T) {
	r := New(WithSelector(util.FixedSelector(1)))
	got := r.Resolve(models.IntentAppointmentView, models.LanguageEnglish, models.UrgencyLow, nil)
	entry, _ := catalog.IntentEntry(models.IntentAppointmentView, models.LanguageEnglish)
	if got.Response != entry.Responses[1] {
		t.Errorf("Response = %q, want %q", got.Response, entry.Responses[1])
	}
	if got.Action != models.ActionFetchAppointments {
		t.Errorf("Action = %s", got.Action)
	}
}

func TestResolveRandomResponseIsACandidate(t *testing.T) {
	r := New()
	entry, _ := catalog.IntentEntry(models.IntentReportIssue, models.LanguagePunjabi)
	for i := 0; i < 20; i++ {
		got := r.Resolve(models.IntentReportIssue, models.LanguagePunjabi, models.UrgencyLow, nil)
		found := false
		for _, c := range entry.Responses {
			if c == got.Response {
				found = true
			}
		}
		if !found {
			t.Fatalf("response %q is not a configured candidate", got.Response)
		}
	}
}

func TestResolveFallsBackToGeneralInquiry(t *testing.T) {
	r := New(WithSelector(util.FixedSelector(0)))
	got := r.Resolve(models.Intent("weather"), models.Language("fr"), models.UrgencyLow, nil)
	if got.Intent != models.IntentGeneralInquiry || got.Action != models.ActionShowAppFeatures {
		t.Errorf("Resolve() = %+v", got)
	}
}

func TestResolveMergesEntitiesAndUrgency(t *testing.T) {
	r := New(WithSelector(util.FixedSelector(0)))
	got := r.Resolve(models.IntentHealthRecordRequest, models.LanguageEnglish, models.UrgencyEmergency,
		models.Parameters{"record_type": "lab", "doctor": "Sharma"})
	want := models.Parameters{
		"record_type": "lab",
		"doctor":      "Sharma",
		"priority":    "high",
		"urgent":      true,
	}
	if diff := cmp.Diff(want, got.Parameters); diff != "" {
		t.Errorf("parameters mismatch (-want +got):\n%s", diff)
	}
}

func TestConfidenceGate(t *testing.T) {
	r := New()
	if r.Confident(0.29) || !r.Confident(0.3) {
		t.Error("gate should be at 0.3")
	}
	r = New(WithConfidenceThreshold(0.5))
	if r.Confident(0.4) {
		t.Error("custom threshold not applied")
	}
	if New(WithConfidenceThreshold(3)).Threshold() != DefaultConfidenceThreshold {
		t.Error("invalid threshold should be ignored")
	}
}

func TestSafetyResolutions(t *testing.T) {
	r := New(WithSelector(util.FixedSelector(0)))
	c := r.Confusion(models.LanguageHindi)
	if c.Action != models.ActionConnectToSupportAgent || c.Parameters["reason"] != catalog.ReasonUnclearRequest {
		t.Errorf("Confusion() = %+v", c)
	}
	e := r.Emergency(models.LanguagePunjabi)
	if e.Action != models.ActionTriggerSOS || e.Parameters["emergency_number"] != "108" {
		t.Errorf("Emergency() = %+v", e)
	}
	m := r.MedicalAdvice(models.LanguageEnglish)
	if m.Action != models.ActionNavigateToAppointmentBooking {
		t.Errorf("MedicalAdvice() = %+v", m)
	}
}
