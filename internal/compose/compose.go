// Package compose finishes a response: it appends feature guidance, builds
// interactive buttons and renders prescription summaries.
package compose

import (
	"github.com/BTreeMap/SehatSahara/internal/catalog"
	"github.com/BTreeMap/SehatSahara/internal/models"
)

// WithGuidance appends the how-to suffix for intent in lang, if one exists.
func WithGuidance(text string, intent models.Intent, lang models.Language) string {
	return text + catalog.Guidance(intent, lang)
}

func button(t models.ButtonType, label catalog.LabelKey, lang models.Language, action models.Action, style models.ButtonStyle) models.Button {
	return models.Button{
		Type:   t,
		Text:   catalog.Label(label, lang),
		Action: action,
		Style:  style,
	}
}

// EmergencyButton is the SOS call button.
func EmergencyButton(lang models.Language) models.Button {
	b := button(models.ButtonEmergencyCall, catalog.LabelCallEmergency, lang, models.ActionTriggerSOS, models.StyleDanger)
	b.Parameters = models.Parameters{"emergency_number": catalog.EmergencyNumber}
	return b
}

// Buttons returns the interactive buttons for intent. The result is never nil.
func Buttons(intent models.Intent, lang models.Language) []models.Button {
	buttons := []models.Button{}

	switch intent {
	case models.IntentAppointmentBooking:
		buttons = append(buttons, button(models.ButtonAppointmentBooking, catalog.LabelBookAppointment, lang,
			models.ActionNavigateToAppointmentBooking, models.StylePrimary))
	case models.IntentMedicineScan, models.IntentFindMedicine:
		buttons = append(buttons, button(models.ButtonMedicineScan, catalog.LabelScanMedicine, lang,
			models.ActionStartMedicineScanner, models.StyleSecondary))
	case models.IntentPrescriptionInquiry:
		buttons = append(buttons, button(models.ButtonPrescriptionView, catalog.LabelViewPrescription, lang,
			models.ActionFetchPrescriptionDetails, models.StyleSecondary))
	case models.IntentHealthRecordRequest:
		buttons = append(buttons, button(models.ButtonHealthRecords, catalog.LabelViewHealthRecords, lang,
			models.ActionFetchHealthRecord, models.StyleSecondary))
	}

	if intent == models.IntentEmergencyAssistance {
		buttons = append(buttons, EmergencyButton(lang))
	}
	return buttons
}

// recentWindow is how many recent intents count towards the medicine scan button.
const recentWindow = 3

// summaryWindow is how many recent intents the context summary reports.
const summaryWindow = 5

// ProgressButtons returns the returning-user button bar for uc. It is pure.
func ProgressButtons(uc models.UserContext) []models.Button {
	lang := uc.Language
	buttons := []models.Button{}

	if !uc.AppointmentStatus.HasUpcomingAppointment {
		buttons = append(buttons, button(models.ButtonAppointmentBooking, catalog.LabelBookAppointment, lang,
			models.ActionNavigateToAppointmentBooking, models.StylePrimary))
	}
	if uc.PrescriptionSummary.HasPrescriptions {
		buttons = append(buttons, button(models.ButtonPrescriptionView, catalog.LabelViewPrescriptions, lang,
			models.ActionShowPrescriptionSummary, models.StyleSecondary))
	}
	if uc.PostAppointmentFeedbackPending && !uc.FollowupRecentlyShown {
		buttons = append(buttons, button(models.ButtonFollowupResponse, catalog.LabelContinueFollowup, lang,
			models.ActionContinueFollowup, models.StyleSecondary))
	}
	for _, intent := range tail(uc.RecentIntents, recentWindow) {
		if intent.IsMedicineRelated() {
			buttons = append(buttons, button(models.ButtonMedicineScan, catalog.LabelScanMedicine, lang,
				models.ActionStartMedicineScanner, models.StyleSecondary))
			break
		}
	}
	return buttons
}

// Progress returns the full progress report for uc.
func Progress(uc models.UserContext) models.ProgressReport {
	lang := uc.Language
	if lang == "" {
		lang = models.DefaultLanguage
	}
	uc.Language = lang
	return models.ProgressReport{
		AppointmentStatus:   uc.AppointmentStatus,
		PrescriptionSummary: uc.PrescriptionSummary,
		Followup:            models.FollowupStatus{Needed: uc.PostAppointmentFeedbackPending},
		InteractiveButtons:  ProgressButtons(uc),
		CurrentLanguage:     lang,
		ContextSummary: models.ContextSummary{
			HasAppointments:  uc.AppointmentStatus.HasUpcomingAppointment,
			HasPrescriptions: uc.PrescriptionSummary.HasPrescriptions,
			RecentIntents:    append([]models.Intent{}, tail(uc.RecentIntents, summaryWindow)...),
		},
	}
}

func tail[T any](s []T, n int) []T {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
