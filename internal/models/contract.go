package models

import (
	"encoding/json"
	"time"
)

// Parameters is the free-form action parameter mapping sent to the host app.
type Parameters map[string]interface{}

// Clone returns a shallow copy of p. The copy is never nil.
func (p Parameters) Clone() Parameters {
	out := make(Parameters, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Merge copies every key of other into p, overwriting collisions.
func (p Parameters) Merge(other map[string]interface{}) {
	for k, v := range other {
		p[k] = v
	}
}

// Button describes one interactive button in a response.
type Button struct {
	Type       ButtonType  `json:"type"`
	Text       string      `json:"text"`
	Action     Action      `json:"action"`
	Style      ButtonStyle `json:"style"`
	Parameters Parameters  `json:"parameters,omitempty"`
}

// ResponseContract is the strict wire shape consumed by the host app.
type ResponseContract struct {
	Language           Language   `json:"language"`
	Response           string     `json:"response"`
	Action             Action     `json:"action"`
	Parameters         Parameters `json:"parameters"`
	InteractiveButtons []Button   `json:"interactive_buttons"`
}

// Normalize replaces nil collections with empty ones so the contract always
// serializes parameters as an object and buttons as an array.
func (c *ResponseContract) Normalize() {
	if c.Parameters == nil {
		c.Parameters = Parameters{}
	}
	if c.InteractiveButtons == nil {
		c.InteractiveButtons = []Button{}
	}
}

// Valid reports whether the contract carries the mandatory response and action fields.
func (c ResponseContract) Valid() bool {
	return c.Response != "" && c.Action.IsValid()
}

// ExtendedResponse is the diagnostic response of GenerateResponse. When Strict is set
// it serializes as the bare ResponseContract.
type ExtendedResponse struct {
	ResponseContract

	Intent            Intent    `json:"intent,omitempty"`
	UrgencyLevel      Urgency   `json:"urgency_level,omitempty"`
	Timestamp         time.Time `json:"timestamp"`
	Confidence        float64   `json:"confidence"`
	SafetyTriggered   bool      `json:"safety_triggered,omitempty"`
	ConfusionHandled  bool      `json:"confusion_handled,omitempty"`
	FallbackTriggered bool      `json:"fallback_triggered,omitempty"`

	Strict bool `json:"-"`
}

// Contract returns the strict subset of the response.
func (r ExtendedResponse) Contract() ResponseContract {
	return r.ResponseContract
}

// MarshalJSON emits only the contract fields in strict mode.
func (r ExtendedResponse) MarshalJSON() ([]byte, error) {
	if r.Strict {
		return json.Marshal(r.ResponseContract)
	}
	type extended ExtendedResponse
	return json.Marshal(extended(r))
}

// NLUResult is the output of an intent classifier.
type NLUResult struct {
	PrimaryIntent    Intent     `json:"primary_intent"`
	Confidence       float64    `json:"confidence"`
	LanguageDetected Language   `json:"language_detected"`
	UrgencyLevel     Urgency    `json:"urgency_level"`
	ContextEntities  Parameters `json:"context_entities,omitempty"`
}

// AppointmentStatus summarizes a user's appointments.
type AppointmentStatus struct {
	HasUpcomingAppointment bool `json:"has_upcoming_appointment"`
}

// PrescriptionStatus summarizes a user's prescriptions.
type PrescriptionStatus struct {
	HasPrescriptions bool `json:"has_prescriptions"`
}

// UserContext is the snapshot of user and appointment state supplied by the host app.
type UserContext struct {
	UserID                         string             `json:"user_id,omitempty"`
	SessionID                      string             `json:"session_id,omitempty"`
	AppointmentStatus              AppointmentStatus  `json:"appointment_status"`
	PrescriptionSummary            PrescriptionStatus `json:"prescription_summary"`
	PostAppointmentFeedbackPending bool               `json:"post_appointment_feedback_pending"`
	FollowupRecentlyShown          bool               `json:"followup_recently_shown"`
	RecentIntents                  []Intent           `json:"recent_intents,omitempty"`
	Language                       Language           `json:"language,omitempty"`
}

// HistoryEntry is one prior exchange passed in by the caller.
type HistoryEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Medication is one prescribed medicine.
type Medication struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage,omitempty"`
	Frequency string `json:"frequency,omitempty"`
}

// Prescription is the subset of a prescription record used for summaries.
type Prescription struct {
	DoctorName   string       `json:"doctor_name,omitempty"`
	Medications  []Medication `json:"medications"`
	Diagnosis    string       `json:"diagnosis,omitempty"`
	Instructions string       `json:"instructions,omitempty"`
}

// FollowupStatus reports whether a post-appointment follow-up is outstanding.
type FollowupStatus struct {
	Needed bool `json:"needed"`
}

// ContextSummary is the condensed view of a user's context.
type ContextSummary struct {
	HasAppointments  bool     `json:"has_appointments"`
	HasPrescriptions bool     `json:"has_prescriptions"`
	RecentIntents    []Intent `json:"recent_intents"`
}

// ProgressReport drives the returning-user button bar.
type ProgressReport struct {
	AppointmentStatus   AppointmentStatus  `json:"appointment_status"`
	PrescriptionSummary PrescriptionStatus `json:"prescription_summary"`
	Followup            FollowupStatus     `json:"followup"`
	InteractiveButtons  []Button           `json:"interactive_buttons"`
	CurrentLanguage     Language           `json:"current_language"`
	ContextSummary      ContextSummary     `json:"context_summary"`
}

// Turn is one logged exchange between a user and the assistant.
type Turn struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Utterance string    `json:"utterance"`
	Intent    Intent    `json:"intent,omitempty"`
	Action    Action    `json:"action"`
	Language  Language  `json:"language"`
	CreatedAt time.Time `json:"created_at"`
}
