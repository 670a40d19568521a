package models

// Language is a supported locale code.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageHindi   Language = "hi"
	LanguagePunjabi Language = "pa"

	// DefaultLanguage is used for empty input and for template lookups in unsupported locales.
	DefaultLanguage = LanguageEnglish
)

var supportedLanguages = []Language{LanguageEnglish, LanguageHindi, LanguagePunjabi}

// SupportedLanguages returns the closed set of locale codes the dialogue core understands.
func SupportedLanguages() []Language {
	out := make([]Language, len(supportedLanguages))
	copy(out, supportedLanguages)
	return out
}

// IsSupported reports whether l is one of the supported locale codes.
func (l Language) IsSupported() bool {
	switch l {
	case LanguageEnglish, LanguageHindi, LanguagePunjabi:
		return true
	}
	return false
}

// OrDefault returns l when supported and DefaultLanguage otherwise.
func (l Language) OrDefault() Language {
	if l.IsSupported() {
		return l
	}
	return DefaultLanguage
}

// Intent is a classified user goal.
type Intent string

const (
	IntentAppointmentBooking         Intent = "appointment_booking"
	IntentAppointmentView            Intent = "appointment_view"
	IntentAppointmentCancel          Intent = "appointment_cancel"
	IntentHealthRecordRequest        Intent = "health_record_request"
	IntentSymptomTriage              Intent = "symptom_triage"
	IntentFindMedicine               Intent = "find_medicine"
	IntentPrescriptionInquiry        Intent = "prescription_inquiry"
	IntentMedicineScan               Intent = "medicine_scan"
	IntentEmergencyAssistance        Intent = "emergency_assistance"
	IntentReportIssue                Intent = "report_issue"
	IntentGeneralInquiry             Intent = "general_inquiry"
	IntentPostAppointmentFollowup    Intent = "post_appointment_followup"
	IntentPrescriptionSummaryRequest Intent = "prescription_summary_request"
	IntentOutOfScope                 Intent = "out_of_scope"
)

var allIntents = []Intent{
	IntentAppointmentBooking,
	IntentAppointmentView,
	IntentAppointmentCancel,
	IntentHealthRecordRequest,
	IntentSymptomTriage,
	IntentFindMedicine,
	IntentPrescriptionInquiry,
	IntentMedicineScan,
	IntentEmergencyAssistance,
	IntentReportIssue,
	IntentGeneralInquiry,
	IntentPostAppointmentFollowup,
	IntentPrescriptionSummaryRequest,
	IntentOutOfScope,
}

// AllIntents returns every intent the resolver knows, in declaration order.
func AllIntents() []Intent {
	out := make([]Intent, len(allIntents))
	copy(out, allIntents)
	return out
}

// IsValid reports whether i is a known intent.
func (i Intent) IsValid() bool {
	for _, known := range allIntents {
		if i == known {
			return true
		}
	}
	return false
}

// IsMedicineRelated reports whether i concerns medicines or prescriptions.
func (i Intent) IsMedicineRelated() bool {
	switch i {
	case IntentMedicineScan, IntentFindMedicine, IntentPrescriptionInquiry:
		return true
	}
	return false
}

// Action is an opcode consumed by the host app.
type Action string

const (
	ActionNavigateToAppointmentBooking    Action = "NAVIGATE_TO_APPOINTMENT_BOOKING"
	ActionFetchAppointments               Action = "FETCH_APPOINTMENTS"
	ActionInitiateAppointmentCancellation Action = "INITIATE_APPOINTMENT_CANCELLATION"
	ActionFetchHealthRecord               Action = "FETCH_HEALTH_RECORD"
	ActionNavigateToPharmacySearch        Action = "NAVIGATE_TO_PHARMACY_SEARCH"
	ActionFetchPrescriptionDetails        Action = "FETCH_PRESCRIPTION_DETAILS"
	ActionStartMedicineScanner            Action = "START_MEDICINE_SCANNER"
	ActionTriggerSOS                      Action = "TRIGGER_SOS"
	ActionNavigateToReportIssue           Action = "NAVIGATE_TO_REPORT_ISSUE"
	ActionShowAppFeatures                 Action = "SHOW_APP_FEATURES"
	ActionContinueFollowup                Action = "CONTINUE_FOLLOWUP"
	ActionShowPrescriptionSummary         Action = "SHOW_PRESCRIPTION_SUMMARY"
	ActionConnectToSupportAgent           Action = "CONNECT_TO_SUPPORT_AGENT"
	ActionContinueSymptomCheck            Action = "CONTINUE_SYMPTOM_CHECK"
)

var allActions = []Action{
	ActionNavigateToAppointmentBooking,
	ActionFetchAppointments,
	ActionInitiateAppointmentCancellation,
	ActionFetchHealthRecord,
	ActionNavigateToPharmacySearch,
	ActionFetchPrescriptionDetails,
	ActionStartMedicineScanner,
	ActionTriggerSOS,
	ActionNavigateToReportIssue,
	ActionShowAppFeatures,
	ActionContinueFollowup,
	ActionShowPrescriptionSummary,
	ActionConnectToSupportAgent,
	ActionContinueSymptomCheck,
}

// AllActions returns the full action enumeration, in declaration order.
func AllActions() []Action {
	out := make([]Action, len(allActions))
	copy(out, allActions)
	return out
}

// IsValid reports whether a is part of the action enumeration.
func (a Action) IsValid() bool {
	for _, known := range allActions {
		if a == known {
			return true
		}
	}
	return false
}

// Stage is the triage stage of a conversation.
type Stage string

const (
	StageInitial       Stage = "initial"
	StageUnderstanding Stage = "understanding"
	StageSymptomCheck  Stage = "symptom_check"
)

// Urgency is the urgency level reported by the NLU classifier.
type Urgency string

const (
	UrgencyLow       Urgency = "low"
	UrgencyMedium    Urgency = "medium"
	UrgencyHigh      Urgency = "high"
	UrgencyEmergency Urgency = "emergency"
)

// ButtonType identifies the kind of interactive button.
type ButtonType string

const (
	ButtonAppointmentBooking ButtonType = "appointment_booking"
	ButtonMedicineScan       ButtonType = "medicine_scan"
	ButtonPrescriptionView   ButtonType = "prescription_view"
	ButtonHealthRecords      ButtonType = "health_records"
	ButtonEmergencyCall      ButtonType = "emergency_call"
	ButtonFollowupResponse   ButtonType = "followup_response"
)

// ButtonStyle is the visual weight of a button.
type ButtonStyle string

const (
	StylePrimary   ButtonStyle = "primary"
	StyleSecondary ButtonStyle = "secondary"
	StyleDanger    ButtonStyle = "danger"
)
