// Package safety gates utterances that must never reach intent resolution:
// emergencies and requests for medical advice.
package safety

import (
	"strings"

	"github.com/BTreeMap/SehatSahara/internal/catalog"
	"github.com/BTreeMap/SehatSahara/internal/models"
)

// Tier selects which keyword tiers a check consults.
type Tier int

const (
	// TierFull consults phrases and single-word terms. Used when no upstream
	// intent is known.
	TierFull Tier = iota
	// TierPhrases consults phrases only. Used when an NLU intent accompanies the turn.
	TierPhrases
)

// Verdict is the outcome of a safety check.
type Verdict int

const (
	Clear Verdict = iota
	Emergency
	MedicalAdvice
)

func (v Verdict) String() string {
	switch v {
	case Emergency:
		return "emergency"
	case MedicalAdvice:
		return "medical_advice"
	}
	return "clear"
}

// Check runs both gates; emergency takes precedence over medical advice.
func Check(utterance string, lang models.Language, tier Tier) Verdict {
	text := strings.ToLower(utterance)
	if matches(text, catalog.EmergencyKeywords(lang), tier) {
		return Emergency
	}
	if matches(text, catalog.MedicalAdviceKeywords(lang), tier) {
		return MedicalAdvice
	}
	return Clear
}

// IsEmergency reports whether utterance contains any emergency keyword for lang.
func IsEmergency(utterance string, lang models.Language) bool {
	return matches(strings.ToLower(utterance), catalog.EmergencyKeywords(lang), TierFull)
}

// IsMedicalAdviceRequest reports whether utterance asks for a diagnosis,
// treatment or dosage.
func IsMedicalAdviceRequest(utterance string, lang models.Language) bool {
	return matches(strings.ToLower(utterance), catalog.MedicalAdviceKeywords(lang), TierFull)
}

func matches(text string, set catalog.KeywordSet, tier Tier) bool {
	if containsAny(text, set.Phrases) {
		return true
	}
	return tier == TierFull && containsAny(text, set.Terms)
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
