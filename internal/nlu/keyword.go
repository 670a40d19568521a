// Package nlu classifies utterances into the intents understood by the
// dialogue engine. KeywordClassifier is rule-based and offline;
// OpenAIClassifier asks a chat model and falls back to the rules.
package nlu

import (
	"context"
	"strings"

	"github.com/BTreeMap/SehatSahara/internal/locale"
	"github.com/BTreeMap/SehatSahara/internal/models"
	"github.com/BTreeMap/SehatSahara/internal/safety"
)

// Classifier produces an NLU result for one utterance.
type Classifier interface {
	Classify(ctx context.Context, utterance string) (models.NLUResult, error)
}

const (
	// unmatchedConfidence sits below the resolver gate, so unknown input gets
	// the confusion response.
	unmatchedConfidence = 0.2
	baseConfidence      = 0.6
	perHitConfidence    = 0.15
	maxConfidence       = 0.95
)

// rule lists the cues for one intent. Cues containing a space match as
// substrings; single words must match a whole word.
type rule struct {
	intent models.Intent
	cues   []string
}

// rules are ordered from most to least specific; ties go to the earlier rule.
var rules = []rule{
	{models.IntentPrescriptionSummaryRequest, []string{
		"what did doctor prescribe", "what did the doctor prescribe", "doctor prescribe", "my medicines",
		"prescription summary", "meri dawaiyan", "kaun si dawai di", "meriyan dawaiyan",
	}},
	{models.IntentPostAppointmentFollowup, []string{
		"after appointment", "feeling better", "appointment was", "appointment ke baad",
		"appointment to baad", "follow up", "followup", "behtar", "better",
	}},
	{models.IntentAppointmentCancel, []string{
		"cancel", "radd", "appointment cancel", "band karna",
	}},
	{models.IntentAppointmentView, []string{
		"my appointments", "my appointment", "show appointment", "appointment dekh", "upcoming appointment",
		"meri appointment", "appointment kab", "appointment kado",
	}},
	{models.IntentAppointmentBooking, []string{
		"book appointment", "appointment book", "book an appointment", "appointment chahiye",
		"appointment leni", "milna hai", "doctor se milna", "doctor nu milna", "see a doctor",
		"see doctor", "schedule", "book",
	}},
	{models.IntentMedicineScan, []string{
		"scan", "scanner", "camera", "identify", "pehchan",
	}},
	{models.IntentPrescriptionInquiry, []string{
		"prescription", "parchi", "prescribed", "nuskha",
	}},
	{models.IntentFindMedicine, []string{
		"pharmacy", "medical store", "chemist", "where can i buy", "dawai kahan", "dawai kithe",
		"find medicine", "medicine available",
	}},
	{models.IntentHealthRecordRequest, []string{
		"health record", "medical history", "record", "records", "report", "reports", "lab",
	}},
	{models.IntentReportIssue, []string{
		"not working", "problem with app", "app issue", "complaint", "shikayat", "bug", "error",
	}},
	{models.IntentSymptomTriage, []string{
		"sir dard", "sir dukh", "feeling sick", "fever", "bukhar", "cough", "khansi", "headache",
		"pain", "dard", "dukh", "vomiting", "ulti", "diarrhea", "dast", "tired", "thakan",
		"weak", "kamzori", "tabiyat", "sick",
	}},
	{models.IntentOutOfScope, []string{
		"weather", "cricket", "movie", "joke", "politics", "news", "song",
	}},
	{models.IntentGeneralInquiry, []string{
		"what can you do", "how does", "sat sri akal", "hello", "hi", "namaste", "features",
	}},
}

// KeywordClassifier classifies utterances with the cue table above.
type KeywordClassifier struct{}

var _ Classifier = KeywordClassifier{}

// NewKeywordClassifier returns a KeywordClassifier.
func NewKeywordClassifier() KeywordClassifier {
	return KeywordClassifier{}
}

// Classify never fails. Emergencies are reported with emergency urgency and
// full confidence in the emergency intent.
func (KeywordClassifier) Classify(ctx context.Context, utterance string) (models.NLUResult, error) {
	lang := locale.Detect(utterance)
	result := models.NLUResult{
		PrimaryIntent:    models.IntentGeneralInquiry,
		Confidence:       unmatchedConfidence,
		LanguageDetected: lang,
		UrgencyLevel:     models.UrgencyLow,
		ContextEntities:  models.Parameters{},
	}

	if safety.IsEmergency(utterance, lang) {
		result.PrimaryIntent = models.IntentEmergencyAssistance
		result.Confidence = maxConfidence
		result.UrgencyLevel = models.UrgencyEmergency
		return result, nil
	}

	text := strings.ToLower(utterance)
	words := locale.Words(utterance)
	best := 0
	for _, r := range rules {
		hits := 0
		for _, cue := range r.cues {
			if strings.Contains(cue, " ") {
				if strings.Contains(text, cue) {
					hits++
				}
				continue
			}
			if _, ok := words[cue]; ok {
				hits++
			}
		}
		if hits > best {
			best = hits
			result.PrimaryIntent = r.intent
		}
	}
	if best > 0 {
		result.Confidence = min(baseConfidence+perHitConfidence*float64(best-1), maxConfidence)
	}
	if result.PrimaryIntent == models.IntentSymptomTriage {
		result.UrgencyLevel = models.UrgencyMedium
	}
	return result, nil
}
