package catalog

import "github.com/BTreeMap/SehatSahara/internal/models"

// Precaution categories.
const (
	CategoryFever   = "fever"
	CategoryCough   = "cough"
	CategoryStomach = "stomach"
	CategoryGeneral = "general"
)

var symptomKeywords = map[models.Language][]string{
	hi: {"bukhar", "sir dard", "dard", "khansi", "thakan", "kamzori", "ulti", "dast"},
	pa: {"bukhar", "sir dukh", "dukh", "khansi", "thakan", "kamzori", "ulti", "dast"},
	en: {"fever", "headache", "pain", "cough", "tired", "weak", "vomiting", "diarrhea"},
}

// Keyword lists used to score romanized text. A word may belong to several locales.
var detectionKeywords = map[models.Language][]string{
	hi: {
		"hai", "kya", "kaise", "kab", "kahan", "meri", "mera", "teri", "tera", "chahiye",
		"leni", "karna", "karne", "nahi", "bhi", "par", "aur", "bukhar", "dard", "khansi",
		"tabiyat", "kharaab", "bimari", "doctor", "appointment", "madad", "help", "namaste",
		"kaun", "kaisa", "kitna", "kabhi", "bas", "ek", "do", "teen", "char", "paanch",
		"cheh", "saat", "aath", "nau", "das", "mujhe", "mein", "hoon",
	},
	pa: {
		"hai", "ki", "kive", "kado", "kithe", "meri", "mera", "teri", "tera", "chahidi",
		"leni", "karna", "karne", "nahin", "bhi", "par", "aur", "bukhar", "dukh", "khansi",
		"tabiyat", "kharaab", "bimari", "doctor", "appointment", "madad", "help", "sat",
		"sri", "akal", "kinne", "kithon", "kivein", "bas", "ate", "ik", "do", "tin", "char",
		"panj", "chhe", "satt", "atth", "nau", "das", "menu", "tuhanu", "vich", "haan",
	},
	en: {
		"the", "is", "are", "do", "have", "my", "i", "you", "this", "that", "what", "how",
		"when", "where", "why", "fever", "headache", "pain", "cough", "cold", "doctor",
		"appointment", "help", "medicine", "hello", "hi", "yes", "no", "please", "thank",
		"thanks", "need", "want", "has", "had", "will", "would", "can", "could", "should",
		"take", "get", "give", "make", "go", "come", "see", "look", "find", "book",
		"schedule", "health", "sick", "hurt", "ache", "problem", "issue", "emergency", "urgent",
	},
}

var triageQuestions = map[models.Language][]string{
	hi: {
		"मैं आपकी मदद करने के लिए हूं। कृपया अपने लक्षणों के बारे में बताएं।",
		"आपको क्या परेशानी हो रही है?",
		"कितने समय से आपको ये समस्या है?",
		"दर्द की तीव्रता 1 से 10 के बीच कितनी है?",
		"क्या आपको बुखार, खांसी या कोई अन्य समस्या भी है?",
		"क्या आपका पेट खराब है या उल्टी हो रही है?",
		"क्या आपको सांस लेने में कोई दिक्कत है?",
		"क्या आपको सीने में दर्द है?",
	},
	pa: {
		"ਮੈਂ ਤੁਹਾਡੀ ਮਦਦ ਕਰਨ ਲਈ ਹਾਂ। ਕਿਰਪਾ ਕਰਕੇ ਆਪਣੇ ਲੱਛਣਾਂ ਬਾਰੇ ਦੱਸੋ।",
		"ਤੁਹਾਨੂੰ ਕੀ ਪਰੇਸ਼ਾਨੀ ਹੋ ਰਹੀ ਹੈ?",
		"ਕਿੰਨੇ ਸਮੇਂ ਤੋਂ ਤੁਹਾਨੂੰ ਇਹ ਸਮੱਸਿਆ ਹੈ?",
		"ਦਰਦ ਦੀ ਤੀਬਰਤਾ 1 ਤੋਂ 10 ਵਿੱਚੋਂ ਕਿੰਨੀ ਹੈ?",
		"ਕੀ ਤੁਹਾਨੂੰ ਬੁਖ਼ਾਰ, ਖੰਘ ਜਾਂ ਕੋਈ ਹੋਰ ਸਮੱਸਿਆ ਵੀ ਹੈ?",
		"ਕੀ ਤੁਹਾਡਾ ਪੇਟ ਖ਼ਰਾਬ ਹੈ ਜਾਂ ਉਲਟੀ ਹੋ ਰਹੀ ਹੈ?",
		"ਕੀ ਤੁਹਾਨੂੰ ਸਾਹ ਲੈਣ ਵਿੱਚ ਕੋਈ ਦਿੱਕਤ ਹੈ?",
		"ਕੀ ਤੁਹਾਨੂੰ ਸੀਨੇ ਵਿੱਚ ਦਰਦ ਹੈ?",
	},
	en: {
		"I am here to help. Please tell me about your symptoms.",
		"What is troubling you?",
		"How long have you been feeling this way?",
		"On a scale of 1 to 10, how severe is the pain?",
		"Are you experiencing any fever, cough or any other issues?",
		"Are you having stomach problems or vomiting?",
		"Are you having any difficulty breathing?",
		"Are you experiencing chest pain?",
	},
}

var precautions = map[models.Language]map[string]string{
	hi: {
		CategoryFever:   "आराम करें और खूब पानी पीएं। मच्छरदानी का इस्तेमाल करें।",
		CategoryCough:   "गर्म पानी के साथ नमक से गरारे करें। अदरक वाली चाय पीएं।",
		CategoryStomach: "सादा खाना जैसे खिचड़ी खाएं। ORS घोल पीएं।",
		CategoryGeneral: "आराम करें और खूब तरल पदार्थ पीएं।",
	},
	pa: {
		CategoryFever:   "ਆਰਾਮ ਕਰੋ ਅਤੇ ਖੂਬ ਪਾਣੀ ਪੀਓ। ਮੱਛਰਦਾਨੀ ਦਾ ਇਸਤੇਮਾਲ ਕਰੋ।",
		CategoryCough:   "ਗਰਮ ਪਾਣੀ ਨਾਲ ਨਮਕ ਨਾਲ ਗਰਾਰੇ ਕਰੋ। ਅਦਰਕ ਵਾਲੀ ਚਾਹ ਪੀਓ।",
		CategoryStomach: "ਸਾਦਾ ਖਾਣਾ ਜਿਵੇਂ ਖਿਚੜੀ ਖਾਓ। ORS ਘੋਲ ਪੀਓ।",
		CategoryGeneral: "ਆਰਾਮ ਕਰੋ ਅਤੇ ਖੂਬ ਤਰਲ ਪਦਾਰਥ ਪੀਓ।",
	},
	en: {
		CategoryFever:   "Get plenty of rest and stay hydrated by drinking water or fluids.",
		CategoryCough:   "Gargle with warm salt water or drink warm fluids like ginger tea.",
		CategoryStomach: "Eat simple, light foods like khichdi and drink plenty of fluids like ORS.",
		CategoryGeneral: "Get plenty of rest and stay hydrated.",
	},
}

var symptomCategory = map[string]string{
	"bukhar":   CategoryFever,
	"fever":    CategoryFever,
	"khansi":   CategoryCough,
	"cough":    CategoryCough,
	"dast":     CategoryStomach,
	"stomach":  CategoryStomach,
	"ulti":     CategoryStomach,
	"vomiting": CategoryStomach,
	"diarrhea": CategoryStomach,
}

var disclaimerText = map[models.Language]string{
	en: "Please remember, this is not medical advice or a diagnosis. For proper treatment, it is very important to consult with a doctor. Would you like me to help you book an appointment now?",
	hi: "कृपया याद रखें, यह चिकित्सा सलाह या निदान नहीं है। उचित इलाज के लिए डॉक्टर से परामर्श करना बहुत जरूरी है। क्या आप अभी appointment बुक करना चाहेंगे?",
	pa: "ਕਿਰਪਾ ਕਰਕੇ ਯਾਦ ਰੱਖੋ, ਇਹ ਦਵਾਈ ਸਲਾਹ ਜਾਂ ਨਿਦਾਨ ਨਹੀਂ ਹੈ। ਉਚਿਤ ਇਲਾਜ ਲਈ ਡਾਕਟਰ ਨਾਲ ਸਲਾਹ ਕਰਨਾ ਬਹੁਤ ਜ਼ਰੂਰੀ ਹੈ। ਕੀ ਤੁਸੀਂ ਹੁਣੇ appointment ਬੁਕ ਕਰਨਾ ਚਾਹੋਗੇ?",
}

var generalHelpText = map[models.Language]string{
	en: "I'm here to help you navigate the Sehat Sahara app. I can help you book appointments, find medicine information, check health records, and more. What would you like help with?",
	hi: "मैं Sehat Sahara ऐप में आपकी मदद करने के लिए हूं। मैं आपकी मदद कर सकती हूं appointment बुक करने, दवाइयों की जानकारी ढूंढने, health records चेक करने और भी बहुत कुछ में। आप क्या मदद चाहते हैं?",
	pa: "ਮੈਂ Sehat Sahara ਐਪ ਵਿੱਚ ਤੁਹਾਡੀ ਮਦਦ ਕਰਨ ਲਈ ਹਾਂ। ਮੈਂ ਤੁਹਾਡੀ ਮਦਦ ਕਰ ਸਕਦੀ ਹਾਂ appointment ਬੁਕ ਕਰਨ, ਦਵਾਈਆਂ ਦੀ ਜਾਣਕਾਰੀ ਲੱਭਣ, health records ਚੈਕ ਕਰਨ ਅਤੇ ਵੀ ਬਹੁਤ ਕੁਝ ਵਿੱਚ। ਤੁਸੀਂ ਕੀ ਮਦਦ ਚਾਹੁੰਦੇ ਹੋ?",
}

// SymptomKeywords returns the symptom tokens recognized in lang, in scan order.
func SymptomKeywords(lang models.Language) []string { return localized(symptomKeywords, lang) }

// DetectionKeywords returns the words that count towards lang during detection.
// Unlike the other accessors it has no English fallback.
func DetectionKeywords(lang models.Language) []string { return detectionKeywords[lang] }

// TriageQuestions returns the ordered symptom-check questions for lang.
func TriageQuestions(lang models.Language) []string { return localized(triageQuestions, lang) }

// CategoryFor maps a symptom token to its precaution category.
func CategoryFor(token string) (string, bool) {
	c, ok := symptomCategory[token]
	return c, ok
}

// Precaution returns the precaution text for category in lang, or the general
// text when the category is unknown.
func Precaution(lang models.Language, category string) string {
	byCategory := localized(precautions, lang)
	if text, ok := byCategory[category]; ok {
		return text
	}
	return byCategory[CategoryGeneral]
}

// DisclaimerText is appended to every set of precautions.
func DisclaimerText(lang models.Language) string { return localized(disclaimerText, lang) }

// GeneralHelpText answers turns that are neither safety-gated nor symptoms.
func GeneralHelpText(lang models.Language) string { return localized(generalHelpText, lang) }
