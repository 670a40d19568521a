// Package locale detects the locale of a free-text utterance.
package locale

import (
	"strings"
	"unicode"

	"github.com/BTreeMap/SehatSahara/internal/catalog"
	"github.com/BTreeMap/SehatSahara/internal/models"
)

var (
	devanagari = &unicode.RangeTable{R16: []unicode.Range16{{Lo: 0x0900, Hi: 0x097F, Stride: 1}}}
	gurmukhi   = &unicode.RangeTable{R16: []unicode.Range16{{Lo: 0x0A00, Hi: 0x0A7F, Stride: 1}}}
)

// scoring order doubles as the tie-break order
var scoringOrder = []models.Language{models.LanguageHindi, models.LanguagePunjabi, models.LanguageEnglish}

// Detect returns the locale of utterance. Native script wins outright
// (Devanagari before Gurmukhi); otherwise each locale scores one point per
// distinct keyword found as a whole word and the highest score wins, ties going
// to hi, then pa, then en. Empty input and an all-zero score yield en.
func Detect(utterance string) models.Language {
	if strings.TrimSpace(utterance) == "" {
		return models.DefaultLanguage
	}
	if containsScript(utterance, devanagari) {
		return models.LanguageHindi
	}
	if containsScript(utterance, gurmukhi) {
		return models.LanguagePunjabi
	}

	words := Words(utterance)
	best, bestScore := models.DefaultLanguage, 0
	for _, lang := range scoringOrder {
		score := 0
		for _, kw := range catalog.DetectionKeywords(lang) {
			if _, ok := words[kw]; ok {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = lang, score
		}
	}
	return best
}

func containsScript(s string, table *unicode.RangeTable) bool {
	for _, r := range s {
		if unicode.Is(table, r) {
			return true
		}
	}
	return false
}

// Words returns the set of lower-cased words in s. Apostrophes stay inside a word.
func Words(s string) map[string]struct{} {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
	out := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		out[f] = struct{}{}
	}
	return out
}
