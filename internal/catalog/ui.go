package catalog

import "github.com/BTreeMap/SehatSahara/internal/models"

// LabelKey names a button label.
type LabelKey string

const (
	LabelBookAppointment   LabelKey = "book_appointment"
	LabelScanMedicine      LabelKey = "scan_medicine"
	LabelViewPrescription  LabelKey = "view_prescription"
	LabelViewPrescriptions LabelKey = "view_prescriptions"
	LabelViewHealthRecords LabelKey = "view_health_records"
	LabelCallEmergency     LabelKey = "call_emergency"
	LabelContinueFollowup  LabelKey = "continue_followup"
)

var labels = map[LabelKey]map[models.Language]string{
	LabelBookAppointment:   {en: "Book Appointment", hi: "अपॉइंटमेंट बुक करें", pa: "ਅਪਾਇੰਟਮੈਂਟ ਬੁਕ ਕਰੋ"},
	LabelScanMedicine:      {en: "Scan Medicine", hi: "दवाई स्कैन करें", pa: "ਦਵਾਈ ਸਕੈਨ ਕਰੋ"},
	LabelViewPrescription:  {en: "View Prescription", hi: "प्रिस्क्रिप्शन देखें", pa: "ਪ੍ਰਿਸਕ੍ਰਿਪਸ਼ਨ ਵੇਖੋ"},
	LabelViewPrescriptions: {en: "View Prescriptions", hi: "प्रिस्क्रिप्शन देखें", pa: "ਪ੍ਰਿਸਕ੍ਰਿਪਸ਼ਨ ਵੇਖੋ"},
	LabelViewHealthRecords: {en: "View Health Records", hi: "स्वास्थ्य रिकॉर्ड देखें", pa: "ਸਿਹਤ ਰਿਕਾਰਡ ਵੇਖੋ"},
	LabelCallEmergency:     {en: "Call Emergency (108)", hi: "आपातकालीन कॉल (108)", pa: "ਐਮਰਜੈਂਸੀ ਕਾਲ (108)"},
	LabelContinueFollowup:  {en: "Continue Follow-up", hi: "फॉलो-अप जवाब दें", pa: "ਫੌਲੋ-ਅਪ ਜਵਾਬ ਦਿਓ"},
}

// Label returns the button text for key in lang. Unknown keys yield "".
func Label(key LabelKey, lang models.Language) string {
	byLang, ok := labels[key]
	if !ok {
		return ""
	}
	return localized(byLang, lang)
}

var guidance = map[models.Intent]map[models.Language]string{
	models.IntentMedicineScan: {
		en: "\n\n💡 How to scan medicine: Open camera, point at medicine name/tablet, and let the app identify it automatically.",
		hi: "\n\n💡 दवाई स्कैन करने का तरीका: कैमरा खोलें, दवाई के नाम/टैबलेट पर पॉइंट करें, और ऐप को स्वचालित रूप से पहचानने दें।",
		pa: "\n\n💡 ਦਵਾਈ ਸਕੈਨ ਕਰਨ ਦਾ ਤਰੀਕਾ: ਕੈਮਰਾ ਖੋਲ੍ਹੋ, ਦਵਾਈ ਦੇ ਨਾਮ/ਟੈਬਲੈਟ ਤੇ ਪੁਆਇੰਟ ਕਰੋ, ਅਤੇ ਐਪ ਨੂੰ ਆਟੋਮੈਟਿਕ ਤੌਰ ਤੇ ਪਛਾਣਨ ਦਿਓ।",
	},
	models.IntentPrescriptionInquiry: {
		en: "\n\n💡 How to view prescription: Upload a photo of your prescription or ask me to show your recent prescriptions.",
		hi: "\n\n💡 प्रिस्क्रिप्शन देखने का तरीका: अपनी प्रिस्क्रिप्शन की फोटो अपलोड करें या मुझे अपनी हालिया प्रिस्क्रिप्शन दिखाने के लिए कहें।",
		pa: "\n\n💡 ਪ੍ਰਿਸਕ੍ਰਿਪਸ਼ਨ ਵੇਖਣ ਦਾ ਤਰੀਕਾ: ਆਪਣੀ ਪ੍ਰਿਸਕ੍ਰਿਪਸ਼ਨ ਦੀ ਫੋਟੋ ਅਪਲੋਡ ਕਰੋ ਜਾਂ ਮੈਨੂੰ ਆਪਣੀਆਂ ਹਾਲੀਆ ਪ੍ਰਿਸਕ੍ਰਿਪਸ਼ਨਾਂ ਵਿਖਾਉਣ ਲਈ ਕਹੋ।",
	},
	models.IntentAppointmentBooking: {
		en: "\n\n💡 How to book appointment: Click the appointment button, select doctor type, choose date/time, and confirm booking.",
		hi: "\n\n💡 अपॉइंटमेंट बुक करने का तरीका: अपॉइंटमेंट बटन पर क्लिक करें, डॉक्टर का प्रकार चुनें, तारीख/समय चुनें, और बुकिंग कन्फर्म करें।",
		pa: "\n\n💡 ਅਪਾਇੰਟਮੈਂਟ ਬੁਕ ਕਰਨ ਦਾ ਤਰੀਕਾ: ਅਪਾਇੰਟਮੈਂਟ ਬਟਨ ਤੇ ਕਲਿੱਕ ਕਰੋ, ਡਾਕਟਰ ਦੀ ਕਿਸਮ ਚੁਣੋ, ਮਿਤੀ/ਸਮਾਂ ਚੁਣੋ, ਅਤੇ ਬੁਕਿੰਗ ਕਨਫਰਮ ਕਰੋ।",
	},
}

// Guidance returns the how-to suffix for intent in lang. There is no English
// fallback: an unconfigured pair returns "".
func Guidance(intent models.Intent, lang models.Language) string {
	return guidance[intent][lang]
}

// SummaryTemplate holds the localized fragments of a prescription summary.
// Header and More are fmt formats taking the doctor name and remaining count.
type SummaryTemplate struct {
	Header         string
	More           string
	Diagnosis      string
	Instructions   string
	Closing        string
	NoMedications  string
	NoPrescription string
	DefaultDoctor  string
	UnknownName    string
}

var summaries = map[models.Language]SummaryTemplate{
	en: {
		Header:         "Dr. %s has prescribed the following medications:",
		More:           "And %d more medications.",
		Diagnosis:      "Diagnosis: ",
		Instructions:   "Instructions: ",
		Closing:        "Please take these medications as directed by your doctor.",
		NoMedications:  "No medications were prescribed.",
		NoPrescription: "I don't see any recent prescriptions for you. If you have a prescription to upload, I can help you with that.",
		DefaultDoctor:  "Doctor",
		UnknownName:    "Unknown",
	},
	hi: {
		Header:         "डॉ. %s ने निम्नलिखित दवाइयां लिखी हैं:",
		More:           "और भी %d दवाइयां हैं।",
		Diagnosis:      "निदान: ",
		Instructions:   "निर्देश: ",
		Closing:        "कृपया इन दवाइयों को डॉक्टर की सलाह अनुसार ही लें।",
		NoMedications:  "कोई दवा नहीं लिखी गई है।",
		NoPrescription: "मैं आपके कोई हालिया प्रिस्क्रिप्शन नहीं देख रही हूं। अगर आपके पास अपलोड करने के लिए प्रिस्क्रिप्शन है, तो मैं मदद कर सकती हूं।",
		DefaultDoctor:  "Doctor",
		UnknownName:    "Unknown",
	},
	pa: {
		Header:         "ਡਾ. %s ਨੇ ਹੇਠਲੀਆਂ ਦਵਾਈਆਂ ਲਿਖੀਆਂ ਹਨ:",
		More:           "ਅਤੇ ਵੀ %d ਦਵਾਈਆਂ ਹਨ।",
		Diagnosis:      "ਨਿਦਾਨ: ",
		Instructions:   "ਹਦਾਇਤਾਂ: ",
		Closing:        "ਕਿਰਪਾ ਕਰਕੇ ਇਹਨਾਂ ਦਵਾਈਆਂ ਨੂੰ ਡਾਕਟਰ ਦੀ ਸਲਾਹ ਅਨੁਸਾਰ ਹੀ ਲਓ।",
		NoMedications:  "ਕੋਈ ਦਵਾ ਨਹੀਂ ਲਿਖੀ ਗਈ ਹੈ।",
		NoPrescription: "ਮੈਂ ਤੁਹਾਡੀਆਂ ਕੋਈ ਹਾਲੀਆ ਪ੍ਰਿਸਕ੍ਰਿਪਸ਼ਨਾਂ ਨਹੀਂ ਵੇਖ ਰਹੀ ਹਾਂ। ਜੇਕਰ ਤੁਹਾਡੇ ਕੋਲ ਅਪਲੋਡ ਕਰਨ ਲਈ ਪ੍ਰਿਸਕ੍ਰਿਪਸ਼ਨ ਹੈ, ਤਾਂ ਮੈਂ ਮਦਦ ਕਰ ਸਕਦੀ ਹਾਂ।",
		DefaultDoctor:  "Doctor",
		UnknownName:    "Unknown",
	},
}

// Summary returns the prescription summary template for lang.
func Summary(lang models.Language) SummaryTemplate { return localized(summaries, lang) }
