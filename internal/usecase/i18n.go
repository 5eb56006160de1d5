package usecase

import "strings"

// Reply catalog keyed by base language. Hindi covers the scripted
// prompts; anything missing falls back to English. Flow messages that
// quote candidate input stay English only.
var i18nCatalog = map[string]map[string]string{
	"en": {
		"greet": "Hello! I'm TalentScout, the hiring assistant for technology roles. " +
			"I'll gather a few details and then ask tailored technical questions; " +
			"type 'exit' or 'bye' anytime to finish.",
		"ask_consent": "May I collect a few basic details to begin the screening? Reply 'yes' to proceed or 'exit' to stop.",
		"ask_name":    "What is the full name?",
		"ask_email":   "What is the email address?",
		"ask_phone":   "What is the phone number with country code?",
		"ask_yexp":    "How many years of professional experience?",
		"ask_roles":   "What position(s) are desired? (e.g., 'Backend Engineer; MLE')",
		"ask_loc":     "What is the current location (City, Country)?",
		"ask_stack": "Could you share the primary technologies worked with recently? " +
			"For example: Python, Django, PostgreSQL, Docker.",
		"thanks": "Thanks for the time. This conversation is now closed. Expect a follow-up email with next steps.",
	},
	"hi": {
		"greet": "नमस्ते! मैं TalentScout हूँ, तकनीकी भूमिकाओं के लिए भर्ती सहायक। " +
			"कुछ विवरण लेकर उपयुक्त तकनीकी प्रश्न पूछूँगा; समाप्त करने के लिए 'exit' या 'bye' टाइप करें।",
		"ask_name":  "पूरा नाम क्या है?",
		"ask_email": "ईमेल पता क्या है?",
		"ask_phone": "फ़ोन नंबर देश कोड सहित?",
		"ask_yexp":  "कुल अनुभव (वर्षों में) कितना है?",
		"ask_roles": "वांछित पद क्या हैं? (उदा., 'Backend Engineer; MLE')",
		"ask_loc":   "वर्तमान स्थान (शहर, देश) क्या है?",
		"ask_stack": "हाल ही में किन तकनीकों पर काम किया है? उदाहरण: Python, Django, PostgreSQL, Docker.",
		"thanks":    "समय देने के लिए धन्यवाद। यह वार्तालाप अब समाप्त है। आगे की प्रक्रिया की सूचना दी जाएगी।",
	},
}

// tr resolves key for lang, reducing regional tags to their base
// ("en-US" uses "en") and falling back to English.
func tr(lang, key string) string {
	base, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(lang)), "-")
	if msgs, ok := i18nCatalog[base]; ok {
		if msg, ok := msgs[key]; ok {
			return msg
		}
	}
	return i18nCatalog["en"][key]
}
