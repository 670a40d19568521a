package catalog

import "github.com/BTreeMap/SehatSahara/internal/models"

func entry(action models.Action, params models.Parameters, responses ...string) Entry {
	if params == nil {
		params = models.Parameters{}
	}
	return Entry{Responses: responses, Action: action, Parameters: params}
}

const (
	en = models.LanguageEnglish
	hi = models.LanguageHindi
	pa = models.LanguagePunjabi
)

var intentTable = map[models.Intent]map[models.Language]Entry{
	models.IntentAppointmentBooking: {
		en: entry(models.ActionNavigateToAppointmentBooking, nil,
			"I can help you book an appointment with a doctor. Let me guide you to the booking section.",
			"I'll help you schedule a consultation. Which type of doctor would you like to see?",
			"Let's book your appointment. I'll take you to the doctor selection page.",
		),
		hi: entry(models.ActionNavigateToAppointmentBooking, nil,
			"Main aapko doctor ke saath appointment book karne mein madad kar sakti hoon. Aapko kis doctor se milna hai?",
			"Appointment book karne ke liye main aapki madad karungi. Kya aap bata sakte hain kis prakar ke doctor chahiye?",
			"Chaliye appointment book karte hain. Main aapko doctor selection page par le chalti hoon.",
		),
		pa: entry(models.ActionNavigateToAppointmentBooking, nil,
			"Main tuhanu doctor naal appointment book karan vich madad kar sakdi haan. Tuhanu kis doctor nu milna hai?",
			"Appointment book karan layi main tuhadi madad karangi. Ki tusi dass sakde ho kis tarah de doctor chahide?",
			"Chalo appointment book karde haan. Main tuhanu doctor selection page te le chalti haan.",
		),
	},
	models.IntentAppointmentView: {
		en: entry(models.ActionFetchAppointments, nil,
			"Let me show you your upcoming appointments.",
			"I'll fetch your appointment details for you.",
			"Here are your scheduled appointments.",
		),
		hi: entry(models.ActionFetchAppointments, nil,
			"Main aapki upcoming appointments dikhati hoon.",
			"Aapki appointment ki details main le kar aati hoon.",
			"Ye hain aapki scheduled appointments.",
		),
		pa: entry(models.ActionFetchAppointments, nil,
			"Main tuhadi upcoming appointments dikhandi haan.",
			"Tuhadi appointment dian details main le ke aandi haan.",
			"Eh hain tuhadian scheduled appointments.",
		),
	},
	models.IntentAppointmentCancel: {
		en: entry(models.ActionInitiateAppointmentCancellation, nil,
			"I'll help you cancel your appointment. Let me show you your bookings.",
			"To cancel an appointment, I need to show you your current bookings first.",
			"Let me guide you through the cancellation process.",
		),
		hi: entry(models.ActionInitiateAppointmentCancellation, nil,
			"Main aapki appointment cancel karne mein madad karungi. Pehle aapki bookings dikhati hoon.",
			"Appointment cancel karne ke liye pehle main aapki current bookings dikhaungi.",
			"Main aapko cancellation process guide karungi.",
		),
		pa: entry(models.ActionInitiateAppointmentCancellation, nil,
			"Main tuhadi appointment cancel karan vich madad karangi. Pehlan tuhadian bookings dikhandi haan.",
			"Appointment cancel karan layi pehlan main tuhadian current bookings dikhaungi.",
			"Main tuhanu cancellation process guide karangi.",
		),
	},
	models.IntentHealthRecordRequest: {
		en: entry(models.ActionFetchHealthRecord, models.Parameters{"record_type": "all"},
			"I'll fetch your health records for you.",
			"Let me show you your medical reports and history.",
			"Accessing your health records now.",
		),
		hi: entry(models.ActionFetchHealthRecord, models.Parameters{"record_type": "all"},
			"Main aapke health records le kar aati hoon.",
			"Aapki medical reports aur history dikhati hoon.",
			"Aapke health records access kar rahi hoon.",
		),
		pa: entry(models.ActionFetchHealthRecord, models.Parameters{"record_type": "all"},
			"Main tuhade health records le ke aandi haan.",
			"Tuhadian medical reports te history dikhandi haan.",
			"Tuhade health records access kar rahi haan.",
		),
	},
	// Symptom texts never name a condition; they steer to a doctor.
	models.IntentSymptomTriage: {
		en: entry(models.ActionNavigateToAppointmentBooking, models.Parameters{"reason": ReasonSymptomAssessment},
			"I'm sorry you're not feeling well. I can't diagnose symptoms, but rest, plenty of fluids and clean water help while you wait to see a doctor. Would you like me to help book an appointment?",
			"Thank you for telling me how you feel. I am not a doctor, so please consult a qualified doctor about these symptoms. If they get worse, seek medical help immediately. Can I help you find a doctor?",
			"Let's get you checked by a doctor. Until then, rest, stay hydrated and avoid self-medication. This is not a diagnosis. Would you like to book a consultation?",
		),
		hi: entry(models.ActionNavigateToAppointmentBooking, models.Parameters{"reason": ReasonSymptomAssessment},
			"Aapki tabiyat kharaab hai sunkar dukh hua. Main symptoms ka diagnosis nahi kar sakti, lekin doctor se milne tak rest kariye aur saaf paani jyada piyiye. Kya main appointment book karne mein madad karun?",
			"Batane ke liye dhanyavaad. Main doctor nahi hoon, isliye in symptoms ke liye qualified doctor se consult kariye. Agar tabiyat aur bigde to turant medical help lijiye. Kya main doctor dhundne mein madad karun?",
			"Chaliye aapko doctor se dikhwate hain. Tab tak rest kariye, paani piyiye aur khud dawai avoid kariye. Yeh diagnosis nahi hai. Kya consultation book karna chahenge?",
		),
		pa: entry(models.ActionNavigateToAppointmentBooking, models.Parameters{"reason": ReasonSymptomAssessment},
			"Tuhadi tabiyat kharaab hai sunke dukh hoya. Main symptoms da diagnosis nahi kar sakdi, par doctor nu milan tak rest karo te saaf paani jyada piyo. Ki main appointment book karan vich madad karan?",
			"Dassan layi dhanvaad. Main doctor nahi haan, is layi inha symptoms layi qualified doctor naal consult karo. Je tabiyat hor vigde ta turant medical help lo. Ki main doctor labhan vich madad karan?",
			"Chalo tuhanu doctor nu dikhande haan. Odon tak rest karo, paani piyo te khud dawai avoid karo. Eh diagnosis nahi hai. Ki consultation book karna chahoge?",
		),
	},
	models.IntentFindMedicine: {
		en: entry(models.ActionNavigateToPharmacySearch, nil,
			"I'll help you find nearby pharmacies where you can get your medicine.",
			"Let me show you medicine shops in your area.",
			"I'll guide you to find the medicine you need.",
		),
		hi: entry(models.ActionNavigateToPharmacySearch, nil,
			"Main aapko paas ki pharmacy dhundne mein madad karungi jahan aapko medicine mil sakti hai.",
			"Aapke area mein medicine shops dikhati hoon.",
			"Jo medicine chahiye usse dhundne mein madad karungi.",
		),
		pa: entry(models.ActionNavigateToPharmacySearch, nil,
			"Main tuhanu nazdeeki pharmacy labhan vich madad karangi jithe tuhanu medicine mil sakdi hai.",
			"Tuhade area vich medicine shops dikhandi haan.",
			"Jo medicine chahidi usse labhan vich madad karangi.",
		),
	},
	models.IntentPrescriptionInquiry: {
		en: entry(models.ActionFetchPrescriptionDetails, nil,
			"I'll show you the details of your prescription and how to take your medicines.",
			"Let me fetch your prescription information.",
			"I'll help you understand your medicine instructions.",
		),
		hi: entry(models.ActionFetchPrescriptionDetails, nil,
			"Main aapke prescription ki details aur medicine kaise leni hai ye dikhati hoon.",
			"Aapki prescription ki jankari le kar aati hoon.",
			"Medicine ki instructions samjhane mein madad karungi.",
		),
		pa: entry(models.ActionFetchPrescriptionDetails, nil,
			"Main tuhade prescription dian details te medicine kive leni hai eh dikhandi haan.",
			"Tuhadi prescription di jankari le ke aandi haan.",
			"Medicine dian instructions samjhan vich madad karangi.",
		),
	},
	models.IntentMedicineScan: {
		en: entry(models.ActionStartMedicineScanner, nil,
			"I'll help you scan and identify your medicine. Please use the camera feature.",
			"Let me guide you to the medicine scanner.",
			"Use the scanner to identify your medicine.",
		),
		hi: entry(models.ActionStartMedicineScanner, nil,
			"Main aapki medicine scan aur identify karne mein madad karungi. Camera feature use kariye.",
			"Medicine scanner tak le chalti hoon.",
			"Medicine identify karne ke liye scanner use kariye.",
		),
		pa: entry(models.ActionStartMedicineScanner, nil,
			"Main tuhadi medicine scan te identify karan vich madad karangi. Camera feature use karo.",
			"Medicine scanner tak le chalti haan.",
			"Medicine identify karan layi scanner use karo.",
		),
	},
	models.IntentEmergencyAssistance: {
		en: entry(models.ActionTriggerSOS, EmergencyParameters(),
			"This is an emergency situation. I'm connecting you to emergency services immediately. For ambulance, call 108.",
			"Emergency detected! Please call 108 for ambulance or go to the nearest hospital immediately.",
			"I'm triggering emergency assistance. Ambulance number: 108. Stay calm, help is coming.",
		),
		hi: entry(models.ActionTriggerSOS, EmergencyParameters(),
			"Ye emergency situation hai. Main aapko turant emergency services se connect kar rahi hoon. Ambulance ke liye 108 call kariye.",
			"Emergency detect hui hai! Ambulance ke liye 108 call kariye ya nazdeeki hospital jaldi jaiye.",
			"Main emergency assistance trigger kar rahi hoon. Ambulance number: 108. Ghabraiye mat, madad aa rahi hai.",
		),
		pa: entry(models.ActionTriggerSOS, EmergencyParameters(),
			"Eh emergency situation hai. Main tuhanu turant emergency services naal connect kar rahi haan. Ambulance layi 108 call karo.",
			"Emergency detect hoyi hai! Ambulance layi 108 call karo ya nazdeeki hospital jaldi jao.",
			"Main emergency assistance trigger kar rahi haan. Ambulance number: 108. Ghabrao nahi, madad aa rahi hai.",
		),
	},
	models.IntentReportIssue: {
		en: entry(models.ActionNavigateToReportIssue, nil,
			"I'm sorry to hear about your experience. Let me help you report this issue.",
			"I'll guide you to the feedback section where you can report this problem.",
			"Your feedback is important. Let me take you to the complaint section.",
		),
		hi: entry(models.ActionNavigateToReportIssue, nil,
			"Aapke experience ke baare mein sunkar dukh hua. Main is issue report karne mein madad karungi.",
			"Feedback section mein le chalti hoon jahan aap ye problem report kar sakte hain.",
			"Aapka feedback important hai. Complaint section mein le chalti hoon.",
		),
		pa: entry(models.ActionNavigateToReportIssue, nil,
			"Tuhade experience bare sunke dukh hoya. Main is issue report karan vich madad karangi.",
			"Feedback section vich le chalti haan jithe tusi eh problem report kar sakde ho.",
			"Tuhada feedback important hai. Complaint section vich le chalti haan.",
		),
	},
	models.IntentGeneralInquiry: {
		en: entry(models.ActionShowAppFeatures, nil,
			"I'm here to help you navigate the Sehat Sahara app. I can help you book appointments, find medicines, check your health records, and more.",
			"Welcome to Sehat Sahara! I can assist you with appointments, health records, finding pharmacies, and emergency help.",
			"I'm your health assistant. I can help you with doctor appointments, medicine information, symptom checking, and app navigation.",
		),
		hi: entry(models.ActionShowAppFeatures, nil,
			"Main Sehat Sahara app navigate karne mein aapki madad ke liye hoon. Appointment book karna, medicine dhundna, health records check karna - sab mein madad kar sakti hoon.",
			"Sehat Sahara mein aapka swagat hai! Main appointments, health records, pharmacy dhundne, aur emergency help mein madad kar sakti hoon.",
			"Main aapki health assistant hoon. Doctor appointments, medicine ki jankari, symptom checking, aur app navigation mein madad kar sakti hoon.",
		),
		pa: entry(models.ActionShowAppFeatures, nil,
			"Main Sehat Sahara app navigate karan vich tuhadi madad layi haan. Appointment book karna, medicine labhna, health records check karna - sab vich madad kar sakdi haan.",
			"Sehat Sahara vich tuhada swagat hai! Main appointments, health records, pharmacy labhne, te emergency help vich madad kar sakdi haan.",
			"Main tuhadi health assistant haan. Doctor appointments, medicine di jankari, symptom checking, te app navigation vich madad kar sakdi haan.",
		),
	},
	models.IntentPostAppointmentFollowup: {
		en: entry(models.ActionContinueFollowup, nil,
			"I'm glad to hear about your appointment! How are you feeling now? Are you following the doctor's advice?",
			"Thank you for sharing about your appointment. How has your health been since then?",
			"It's good to check in after your appointment. How are you feeling today?",
		),
		hi: entry(models.ActionContinueFollowup, nil,
			"आपकी appointment के बारे में सुनकर खुशी हुई! अब आप कैसा महसूस कर रहे हैं? क्या आप डॉक्टर की सलाह फॉलो कर रहे हैं?",
			"आपकी appointment के बारे में बताने के लिए धन्यवाद। उसके बाद से आपकी सेहत कैसी रही है?",
			"आपकी appointment के बाद चेक इन करना अच्छा है। आज आप कैसा महसूस कर रहे हैं?",
		),
		pa: entry(models.ActionContinueFollowup, nil,
			"ਤੁਹਾਡੀ ਅਪਾਇੰਟਮੈਂਟ ਬਾਰੇ ਸੁਣਕੇ ਖੁਸ਼ੀ ਹੋਈ! ਹੁਣ ਤੁਸੀਂ ਕਿਵੇਂ ਮਹਿਸੂਸ ਕਰ ਰਹੇ ਹੋ? ਕੀ ਤੁਸੀਂ ਡਾਕਟਰ ਦੀ ਸਲਾਹ ਫੌਲੋ ਕਰ ਰਹੇ ਹੋ?",
			"ਤੁਹਾਡੀ ਅਪਾਇੰਟਮੈਂਟ ਬਾਰੇ ਦੱਸਣ ਲਈ ਧੰਨਵਾਦ। ਉਸ ਤੋਂ ਬਾਅਦ ਤੁਹਾਡੀ ਸਿਹਤ ਕਿਵੇਂ ਰਹੀ ਹੈ?",
			"ਤੁਹਾਡੀ ਅਪਾਇੰਟਮੈਂਟ ਤੋਂ ਬਾਅਦ ਚੈਕ ਇਨ ਕਰਨਾ ਚੰਗਾ ਹੈ। ਅੱਜ ਤੁਸੀਂ ਕਿਵੇਂ ਮਹਿਸੂਸ ਕਰ ਰਹੇ ਹੋ?",
		),
	},
	models.IntentPrescriptionSummaryRequest: {
		en: entry(models.ActionShowPrescriptionSummary, nil,
			"I can help you understand your prescription better. Let me show you a summary of what the doctor prescribed.",
			"Here's a summary of your recent prescription to help you follow the doctor's instructions.",
			"Let me provide you with a clear summary of your medications and doctor's advice.",
		),
		hi: entry(models.ActionShowPrescriptionSummary, nil,
			"मैं आपको आपकी prescription बेहतर समझने में मदद कर सकती हूं। डॉक्टर ने जो लिखा है उसका summary दिखाती हूं।",
			"आपकी हालिया prescription का summary यहां है ताकि आप डॉक्टर की instructions फॉलो कर सकें।",
			"मैं आपको आपकी दवाइयों और डॉक्टर की सलाह का clear summary देती हूं।",
		),
		pa: entry(models.ActionShowPrescriptionSummary, nil,
			"ਮੈਂ ਤੁਹਾਨੂੰ ਤੁਹਾਡੀ ਪ੍ਰਿਸਕ੍ਰਿਪਸ਼ਨ ਬਿਹਤਰ ਸਮਝਣ ਵਿੱਚ ਮਦਦ ਕਰ ਸਕਦੀ ਹਾਂ। ਡਾਕਟਰ ਨੇ ਜੋ ਲਿਖਿਆ ਹੈ ਉਸ ਦਾ ਸਮਰੀ ਦਿਖਾਉਂਦੀ ਹਾਂ।",
			"ਤੁਹਾਡੀ ਹਾਲੀਆ ਪ੍ਰਿਸਕ੍ਰਿਪਸ਼ਨ ਦਾ ਸਮਰੀ ਇੱਥੇ ਹੈ ਤਾਂਕਿ ਤੁਸੀਂ ਡਾਕਟਰ ਦੀਆਂ ਹਦਾਇਤਾਂ ਫੌਲੋ ਕਰ ਸਕੋ।",
			"ਮੈਂ ਤੁਹਾਨੂੰ ਤੁਹਾਡੀਆਂ ਦਵਾਈਆਂ ਅਤੇ ਡਾਕਟਰ ਦੀ ਸਲਾਹ ਦਾ ਸਪਸ਼ਟ ਸਮਰੀ ਦਿੰਦੀ ਹਾਂ।",
		),
	},
	models.IntentOutOfScope: {
		en: entry(models.ActionConnectToSupportAgent, models.Parameters{"reason": ReasonOutOfScope},
			"I'm designed to help with health-related queries and app navigation. For other questions, would you like to talk to a human Sehat Saathi?",
			"I can only assist with health and medical app features. Would you like me to connect you with a support agent for other queries?",
			"I focus on health assistance. For non-health related questions, I can connect you with our support team.",
		),
		hi: entry(models.ActionConnectToSupportAgent, models.Parameters{"reason": ReasonOutOfScope},
			"Main health-related queries aur app navigation mein madad ke liye banayi gayi hoon. Dusre sawalon ke liye kya aap human Sehat Saathi se baat karna chahenge?",
			"Main sirf health aur medical app features mein madad kar sakti hoon. Dusre queries ke liye support agent se connect karun?",
			"Main health assistance par focus karti hoon. Non-health related questions ke liye main aapko support team se connect kar sakti hoon.",
		),
		pa: entry(models.ActionConnectToSupportAgent, models.Parameters{"reason": ReasonOutOfScope},
			"Main health-related queries te app navigation vich madad layi banayi gayi haan. Dusre sawaalan layi ki tusi human Sehat Saathi naal gall karna chahoge?",
			"Main sirf health te medical app features vich madad kar sakdi haan. Dusre queries layi support agent naal connect karan?",
			"Main health assistance te focus kardi haan. Non-health related questions layi main tuhanu support team naal connect kar sakdi haan.",
		),
	},
}

var medicalAdviceTable = map[models.Language]Entry{
	en: entry(models.ActionNavigateToAppointmentBooking, models.Parameters{"reason": ReasonMedicalAdviceNeeded},
		"I cannot give medical advice, but I can help you connect with a qualified doctor. Would you like to book a consultation?",
		"For medical advice, please consult with a qualified healthcare professional. I can help you book an appointment.",
		"I'm not qualified to provide medical advice. Let me help you connect with a doctor who can properly assist you.",
	),
	hi: entry(models.ActionNavigateToAppointmentBooking, models.Parameters{"reason": ReasonMedicalAdviceNeeded},
		"Main medical advice nahi de sakti, lekin qualified doctor se connect karne mein madad kar sakti hoon. Kya aap consultation book karna chahenge?",
		"Medical advice ke liye qualified healthcare professional se consult kariye. Main appointment book karne mein madad kar sakti hoon.",
		"Main medical advice dene ke liye qualified nahi hoon. Doctor se connect karne mein madad karti hoon jo properly assist kar sake.",
	),
	pa: entry(models.ActionNavigateToAppointmentBooking, models.Parameters{"reason": ReasonMedicalAdviceNeeded},
		"Main medical advice nahi de sakdi, par qualified doctor naal connect karan vich madad kar sakdi haan. Ki tusi consultation book karna chahoge?",
		"Medical advice layi qualified healthcare professional naal consult karo. Main appointment book karan vich madad kar sakdi haan.",
		"Main medical advice den layi qualified nahi haan. Doctor naal connect karan vich madad kardi haan jo properly assist kar sake.",
	),
}

var confusionTable = map[models.Language]Entry{
	en: entry(models.ActionConnectToSupportAgent, models.Parameters{"reason": ReasonUnclearRequest},
		"I'm sorry, I didn't understand. Would you like to talk to a human 'Sehat Saathi' for help?",
		"I couldn't quite understand your request. Let me connect you with a support agent who can better assist you.",
		"I'm not sure how to help with that. Would you like me to connect you with our support team?",
	),
	hi: entry(models.ActionConnectToSupportAgent, models.Parameters{"reason": ReasonUnclearRequest},
		"Maaf kariye, main samajh nahi payi. Kya aap human 'Sehat Saathi' se madad ke liye baat karna chahenge?",
		"Aapki request samajh nahi aayi. Support agent se connect karti hoon jo better assist kar sake.",
		"Main sure nahi hoon ki isme kaise madad karun. Support team se connect kar dun?",
	),
	pa: entry(models.ActionConnectToSupportAgent, models.Parameters{"reason": ReasonUnclearRequest},
		"Maaf karo, main samajh nahi payi. Ki tusi human 'Sehat Saathi' naal madad layi gall karna chahoge?",
		"Tuhadi request samajh nahi aayi. Support agent naal connect kardi haan jo better assist kar sake.",
		"Main sure nahi haan ki isme kive madad karan. Support team naal connect kar dun?",
	),
}
