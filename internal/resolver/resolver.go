// Package resolver maps a classified intent to response text, an action code
// and action parameters.
package resolver

import (
	"github.com/BTreeMap/SehatSahara/internal/catalog"
	"github.com/BTreeMap/SehatSahara/internal/models"
	"github.com/BTreeMap/SehatSahara/internal/util"
)

// DefaultConfidenceThreshold is the NLU confidence below which resolution is skipped.
const DefaultConfidenceThreshold = 0.3

// Opts holds configuration for a Resolver.
type Opts struct {
	Selector  util.Selector
	Threshold float64
}

// Option configures a Resolver.
type Option func(*Opts)

// WithSelector sets the template selection strategy.
func WithSelector(sel util.Selector) Option {
	return func(o *Opts) {
		if sel != nil {
			o.Selector = sel
		}
	}
}

// WithConfidenceThreshold sets the confidence gate. Values outside [0, 1] are ignored.
func WithConfidenceThreshold(th float64) Option {
	return func(o *Opts) {
		if th >= 0 && th <= 1 {
			o.Threshold = th
		}
	}
}

// Resolution is the resolved text, action and parameters for one turn.
type Resolution struct {
	Intent     models.Intent
	Response   string
	Action     models.Action
	Parameters models.Parameters
}

// Resolver picks templates from the catalog.
type Resolver struct {
	sel       util.Selector
	threshold float64
}

// New creates a Resolver. Without options it picks uniformly at random and
// gates at DefaultConfidenceThreshold.
func New(opts ...Option) *Resolver {
	cfg := Opts{Selector: util.RandomSelector{}, Threshold: DefaultConfidenceThreshold}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Resolver{sel: cfg.Selector, threshold: cfg.Threshold}
}

// Threshold returns the configured confidence gate.
func (r *Resolver) Threshold() float64 { return r.threshold }

// Confident reports whether confidence clears the gate.
func (r *Resolver) Confident(confidence float64) bool {
	return confidence >= r.threshold
}

// Resolve looks intent up in the catalog, falling back to general_inquiry and
// then to English. Entities are merged over the entry defaults, and emergency
// urgency marks the parameters as high priority.
func (r *Resolver) Resolve(intent models.Intent, lang models.Language, urgency models.Urgency, entities models.Parameters) Resolution {
	entry, used := catalog.IntentEntry(intent, lang)
	params := entry.Parameters
	params.Merge(entities)
	if urgency == models.UrgencyEmergency {
		params["priority"] = "high"
		params["urgent"] = true
	}
	return Resolution{
		Intent:     used,
		Response:   util.Choose(r.sel, entry.Responses),
		Action:     entry.Action,
		Parameters: params,
	}
}

// Confusion returns the response used when the classifier is not confident.
func (r *Resolver) Confusion(lang models.Language) Resolution {
	return r.fromEntry(models.IntentGeneralInquiry, catalog.ConfusionEntry(lang))
}

// MedicalAdvice returns the safety response for a medical-advice request.
func (r *Resolver) MedicalAdvice(lang models.Language) Resolution {
	return r.fromEntry(models.IntentAppointmentBooking, catalog.MedicalAdviceEntry(lang))
}

// Emergency returns the SOS response.
func (r *Resolver) Emergency(lang models.Language) Resolution {
	return Resolution{
		Intent:     models.IntentEmergencyAssistance,
		Response:   catalog.EmergencyText(lang),
		Action:     models.ActionTriggerSOS,
		Parameters: catalog.EmergencyParameters(),
	}
}

func (r *Resolver) fromEntry(intent models.Intent, e catalog.Entry) Resolution {
	return Resolution{
		Intent:     intent,
		Response:   util.Choose(r.sel, e.Responses),
		Action:     e.Action,
		Parameters: e.Parameters,
	}
}
