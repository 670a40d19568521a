package nlu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/BTreeMap/SehatSahara/internal/genai"
	"github.com/BTreeMap/SehatSahara/internal/locale"
	"github.com/BTreeMap/SehatSahara/internal/models"
	"github.com/BTreeMap/SehatSahara/internal/safety"
	"github.com/openai/openai-go"
)

// ErrNoJSONObject is returned when a model reply carries no JSON object.
var ErrNoJSONObject = errors.New("no JSON object in model reply")

// OpenAIClassifier asks a chat model for the intent. Any failure falls back to
// the wrapped classifier, so Classify only errors when both fail.
type OpenAIClassifier struct {
	client   genai.ClientInterface
	fallback Classifier
}

var _ Classifier = (*OpenAIClassifier)(nil)

// NewOpenAIClassifier creates an OpenAIClassifier. A nil fallback uses KeywordClassifier.
func NewOpenAIClassifier(client genai.ClientInterface, fallback Classifier) *OpenAIClassifier {
	if fallback == nil {
		fallback = KeywordClassifier{}
	}
	return &OpenAIClassifier{client: client, fallback: fallback}
}

// systemPrompt returns the classification instructions.
func systemPrompt() string {
	intents := make([]string, 0, len(models.AllIntents()))
	for _, i := range models.AllIntents() {
		intents = append(intents, string(i))
	}
	return "You classify messages sent to Sehat Sahara, a health app assistant for rural users in India. " +
		"Messages may be English, Hindi or Punjabi, in native script or romanized. " +
		"Reply with one JSON object and nothing else, with keys: " +
		`"primary_intent" (one of: ` + strings.Join(intents, ", ") + `), ` +
		`"confidence" (number between 0 and 1), ` +
		`"language_detected" (one of: en, hi, pa), ` +
		`"urgency_level" (one of: low, medium, high, emergency), ` +
		`"context_entities" (object, may be empty). ` +
		"Never give medical advice."
}

// Classify implements Classifier.
func (c *OpenAIClassifier) Classify(ctx context.Context, utterance string) (models.NLUResult, error) {
	reply, err := c.client.GenerateWithMessages(ctx, []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(systemPrompt()),
		openai.UserMessage(utterance),
	})
	if err != nil {
		slog.Warn("OpenAIClassifier: completion failed, using fallback", "error", err)
		return c.fallback.Classify(ctx, utterance)
	}
	result, err := parseResult(reply)
	if err != nil {
		slog.Warn("OpenAIClassifier: unparseable reply, using fallback", "error", err)
		return c.fallback.Classify(ctx, utterance)
	}
	return normalize(result, utterance), nil
}

// parseResult extracts the first JSON object from reply, tolerating code fences
// and surrounding prose.
func parseResult(reply string) (models.NLUResult, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end <= start {
		return models.NLUResult{}, ErrNoJSONObject
	}
	var result models.NLUResult
	if err := json.Unmarshal([]byte(reply[start:end+1]), &result); err != nil {
		return models.NLUResult{}, fmt.Errorf("decode classification: %w", err)
	}
	return result, nil
}

// normalize clamps model output into the closed sets the engine accepts and
// lets the local emergency check override the model.
func normalize(r models.NLUResult, utterance string) models.NLUResult {
	if !r.PrimaryIntent.IsValid() {
		r.PrimaryIntent = models.IntentGeneralInquiry
		r.Confidence = min(r.Confidence, unmatchedConfidence)
	}
	r.Confidence = max(0, min(r.Confidence, 1))
	if !r.LanguageDetected.IsSupported() {
		r.LanguageDetected = locale.Detect(utterance)
	}
	switch r.UrgencyLevel {
	case models.UrgencyLow, models.UrgencyMedium, models.UrgencyHigh, models.UrgencyEmergency:
	default:
		r.UrgencyLevel = models.UrgencyLow
	}
	if r.ContextEntities == nil {
		r.ContextEntities = models.Parameters{}
	}
	if safety.IsEmergency(utterance, r.LanguageDetected) {
		r.PrimaryIntent = models.IntentEmergencyAssistance
		r.UrgencyLevel = models.UrgencyEmergency
		r.Confidence = max(r.Confidence, maxConfidence)
	}
	return r
}
