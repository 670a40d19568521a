package catalog

import "github.com/BTreeMap/SehatSahara/internal/models"

// KeywordSet splits a locale keyword list into two tiers. Phrases are specific
// enough to gate any turn; Terms are single words that only gate turns for
// which no upstream intent is available.
type KeywordSet struct {
	Phrases []string
	Terms   []string
}

// All returns phrases followed by terms.
func (k KeywordSet) All() []string {
	out := make([]string, 0, len(k.Phrases)+len(k.Terms))
	out = append(out, k.Phrases...)
	return append(out, k.Terms...)
}

var emergencyKeywords = map[models.Language]KeywordSet{
	hi: {
		Phrases: []string{
			"emergency", "accident", "ambulance", "seene mein dard", "saans nahi aa rahi",
			"bahut tez dard", "dil ka dora", "heart attack", "behosh", "unconscious",
			"khoon", "bleeding", "mar raha", "dying",
		},
		Terms: []string{"turant", "jaldi", "madad"},
	},
	pa: {
		Phrases: []string{
			"emergency", "accident", "ambulance", "seene vich dard", "saans nahi aa rahi",
			"bahut tez dard", "dil da dora", "heart attack", "behosh", "unconscious",
			"khoon", "bleeding", "mar raha", "dying",
		},
		Terms: []string{"turant", "jaldi", "madad"},
	},
	en: {
		Phrases: []string{
			"emergency", "accident", "ambulance", "chest pain", "cannot breathe",
			"can't breathe", "severe pain", "heart attack", "unconscious", "bleeding", "dying",
		},
		Terms: []string{"urgent", "help"},
	},
}

var medicalAdviceKeywords = map[models.Language]KeywordSet{
	hi: {
		Phrases: []string{
			"kya dawai", "kaun si dawai", "ilaj kya", "kya ilaj hai", "kaise theek",
			"kitni dawai", "kab dawai", "kaise khana", "diagnosis", "diagnose", "side effect",
		},
		Terms: []string{"medicine", "tablet", "dawai", "capsule", "injection", "dose", "allergy"},
	},
	pa: {
		Phrases: []string{
			"ki dawai", "kihri dawai", "ilaj ki", "ki ilaj hai", "kivein theek",
			"kinni dawai", "kad dawai", "kivein khana", "diagnosis", "diagnose", "side effect",
		},
		Terms: []string{"medicine", "tablet", "dawai", "capsule", "injection", "dose", "allergy"},
	},
	en: {
		Phrases: []string{
			"what medicine", "which tablet", "how to cure", "what treatment",
			"diagnosis", "diagnose", "when to take", "side effect",
		},
		Terms: []string{"medicine", "tablet", "capsule", "injection", "dose", "allergy", "how much"},
	},
}

// EmergencyKeywords returns the emergency keyword set for lang.
func EmergencyKeywords(lang models.Language) KeywordSet {
	return localized(emergencyKeywords, lang)
}

// MedicalAdviceKeywords returns the medical-advice keyword set for lang.
func MedicalAdviceKeywords(lang models.Language) KeywordSet {
	return localized(medicalAdviceKeywords, lang)
}

var emergencyText = map[models.Language]string{
	en: "This is an emergency situation. I'm connecting you to emergency services immediately. For ambulance, call 108.",
	hi: "यह आपातकालीन स्थिति है। मैं आपको तुरंत आपातकालीन सेवाओं से जोड़ रही हूं। एंबुलेंस के लिए 108 कॉल करें।",
	pa: "ਇਹ ਐਮਰਜੈਂਸੀ ਸਥਿਤੀ ਹੈ। ਮੈਂ ਤੁਹਾਨੂੰ ਤੁਰੰਤ ਐਮਰਜੈਂਸੀ ਸੇਵਾਵਾਂ ਨਾਲ ਜੋੜ ਰਹੀ ਹਾਂ। ਐਂਬੂਲੈਂਸ ਲਈ 108 ਕਾਲ ਕਰੋ।",
}

var noMedicalAdviceText = map[models.Language]string{
	en: "I am not a doctor and cannot provide a diagnosis. However, I can help you book an appointment with a qualified doctor right now who can give you the correct advice. Would you like to proceed?",
	hi: "मैं डॉक्टर नहीं हूं और निदान नहीं दे सकती। हालांकि, मैं आपको अभी एक qualified डॉक्टर के साथ appointment बुक करने में मदद कर सकती हूं जो आपको सही सलाह दे सके। क्या आप आगे बढ़ना चाहेंगे?",
	pa: "ਮੈਂ ਡਾਕਟਰ ਨਹੀਂ ਹਾਂ ਅਤੇ ਨਿਦਾਨ ਨਹੀਂ ਦੇ ਸਕਦੀ। ਹਾਲਾਂਕਿ, ਮੈਂ ਤੁਹਾਨੂੰ ਹੁਣੇ ਇੱਕ qualified ਡਾਕਟਰ ਨਾਲ appointment ਬੁਕ ਕਰਨ ਵਿੱਚ ਮਦਦ ਕਰ ਸਕਦੀ ਹਾਂ ਜੋ ਤੁਹਾਨੂੰ ਸਹੀ ਸਲਾਹ ਦੇ ਸਕੇ। ਕੀ ਤੁਸੀਂ ਅੱਗੇ ਵਧਣਾ ਚਾਹੋਗੇ?",
}

var fallbackText = map[models.Language]string{
	en: "I'm having trouble right now. Let me connect you with a support agent.",
	hi: "Mujhe abhi problem aa rahi hai. Support agent se connect kar deti hoon.",
	pa: "Minu abhi problem aa rahi hai. Support agent naal connect kar dendi haan.",
}

// EmergencyText is the fixed escalation message.
func EmergencyText(lang models.Language) string { return localized(emergencyText, lang) }

// NoMedicalAdviceText is the refusal used by the conversational path.
func NoMedicalAdviceText(lang models.Language) string { return localized(noMedicalAdviceText, lang) }

// FallbackText is returned when a turn fails internally.
func FallbackText(lang models.Language) string { return localized(fallbackText, lang) }
