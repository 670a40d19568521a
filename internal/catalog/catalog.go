// Package catalog holds the locale-keyed configuration shared by every response
// surface of the dialogue core: intent templates, safety texts, keyword lists,
// triage questions, precautions, button labels and guidance snippets.
//
// All tables are keyed by typed (Intent, Language) pairs and every table carries
// an English entry, which is the fallback for any unconfigured locale.
package catalog

import "github.com/BTreeMap/SehatSahara/internal/models"

// EmergencyNumber is the ambulance number used in SOS payloads.
const EmergencyNumber = "108"

// EmergencyType is the SOS payload type.
const EmergencyType = "medical_emergency"

// Reason codes carried in CONNECT_TO_SUPPORT_AGENT and booking parameters.
const (
	ReasonSystemError         = "system_error"
	ReasonUnclearRequest      = "unclear_request"
	ReasonOutOfScope          = "out_of_scope"
	ReasonMedicalAdviceNeeded = "medical_advice_needed"
	ReasonSymptomAssessment   = "symptom_assessment"
)

// Entry is the immutable template for one (intent, language) pair.
type Entry struct {
	Responses  []string
	Action     models.Action
	Parameters models.Parameters
}

// localized picks the entry for lang, falling back to English.
func localized[T any](table map[models.Language]T, lang models.Language) T {
	if v, ok := table[lang]; ok {
		return v
	}
	return table[models.DefaultLanguage]
}

func (e Entry) clone() Entry {
	return Entry{
		Responses:  e.Responses,
		Action:     e.Action,
		Parameters: e.Parameters.Clone(),
	}
}

// IntentEntry returns the template for intent in lang. Unconfigured intents resolve
// to general_inquiry and unconfigured languages to English; the intent actually
// used is returned alongside the entry. Parameters are a fresh copy.
func IntentEntry(intent models.Intent, lang models.Language) (Entry, models.Intent) {
	byLang, ok := intentTable[intent]
	if !ok {
		intent = models.IntentGeneralInquiry
		byLang = intentTable[intent]
	}
	return localized(byLang, lang).clone(), intent
}

// HasIntent reports whether intent has its own templates.
func HasIntent(intent models.Intent) bool {
	_, ok := intentTable[intent]
	return ok
}

// MedicalAdviceEntry returns the safety template used when a user asks for medical advice.
func MedicalAdviceEntry(lang models.Language) Entry {
	return localized(medicalAdviceTable, lang).clone()
}

// ConfusionEntry returns the template used when the classifier is not confident.
func ConfusionEntry(lang models.Language) Entry {
	return localized(confusionTable, lang).clone()
}

// EmergencyParameters returns a fresh SOS parameter payload.
func EmergencyParameters() models.Parameters {
	return models.Parameters{"emergency_number": EmergencyNumber, "type": EmergencyType}
}

// Actions returns every action code the catalog can emit, in enumeration order.
func Actions() []models.Action {
	used := map[models.Action]bool{
		models.ActionConnectToSupportAgent: true,
		models.ActionShowAppFeatures:       true,
		models.ActionContinueSymptomCheck:  true,
		models.ActionTriggerSOS:            true,
	}
	for _, byLang := range intentTable {
		for _, e := range byLang {
			used[e.Action] = true
		}
	}
	var out []models.Action
	for _, a := range models.AllActions() {
		if used[a] {
			out = append(out, a)
		}
	}
	return out
}

// Stats describes the size of the configured tables.
type Stats struct {
	TotalIntents                 int `json:"total_intents"`
	SupportedLanguages           int `json:"supported_languages"`
	SupportedActions             int `json:"supported_actions"`
	SafetyResponsesConfigured    int `json:"safety_responses_configured"`
	ConfusionResponsesConfigured int `json:"confusion_responses_configured"`
}

// TableStats returns counts over the configured tables.
func TableStats() Stats {
	return Stats{
		TotalIntents:                 len(intentTable),
		SupportedLanguages:           len(models.SupportedLanguages()),
		SupportedActions:             len(Actions()),
		SafetyResponsesConfigured:    len(medicalAdviceTable),
		ConfusionResponsesConfigured: len(confusionTable),
	}
}
