package agent

// manualResponses is the frozen scripted-reply table: per intent, per
// language, a short rotation of confused-victim lines. The rotation index is
// the number of agent turns so far, so consecutive scripted replies for the
// same intent never repeat.
var manualResponses = map[Intent]map[Language][]string{
	IntentCredentialTrap: {
		LanguageEnglish: {
			"I didn't receive any code yet",
			"Which code are you referring to?",
			"Can you send it again?",
		},
		LanguageHinglish: {
			"Mujhe koi code nahi aaya abhi tak",
			"Kaun sa code ki baat kar rahe ho?",
			"Dobara bhej sakte ho kya?",
		},
		LanguageHindi: {
			"मुझे अभी तक कोई कोड नहीं मिला",
			"आप किस कोड की बात कर रहे हैं?",
			"फिर से भेज सकते हो?",
		},
	},
	IntentMoneyTrap: {
		LanguageEnglish: {
			"Which amount exactly?",
			"I have two accounts, which one?",
			"How much money are we talking about?",
		},
		LanguageHinglish: {
			"Kitna amount hai exactly?",
			"Mere do accounts hain, kaun sa?",
			"Kitne paise ki baat ho rahi hai?",
		},
		LanguageHindi: {
			"कितनी रकम है?",
			"मेरे दो खाते हैं, कौन सा?",
			"कितने पैसे की बात हो रही है?",
		},
	},
	IntentAuthorityTrap: {
		LanguageEnglish: {
			"Which branch are you calling from?",
			"Can you share the official number?",
			"What is your employee ID?",
		},
		LanguageHinglish: {
			"Aap kaun se branch se call kar rahe ho?",
			"Official number share kar sakte ho?",
			"Aapki employee ID kya hai?",
		},
		LanguageHindi: {
			"आप किस ब्रांच से कॉल कर रहे हो?",
			"आधिकारिक नंबर शेयर कर सकते हो?",
			"आपकी कर्मचारी आईडी क्या है?",
		},
	},
	IntentDeviceTrap: {
		LanguageEnglish: {
			"My phone storage is full",
			"Is it really necessary?",
			"Can we do this without downloading?",
		},
		LanguageHinglish: {
			"Mere phone ki storage full hai",
			"Ye zaruri hai kya really?",
			"Bina download kiye ho sakta hai?",
		},
		LanguageHindi: {
			"मेरे फोन की स्टोरेज भरी है",
			"क्या यह सच में जरूरी है?",
			"बिना डाउनलोड किए हो सकता है?",
		},
	},
	IntentPanicTrap: {
		LanguageEnglish: {
			"Please explain slowly",
			"What happened exactly?",
			"I'm getting confused, start from beginning",
		},
		LanguageHinglish: {
			"Dhire dhire samjhao please",
			"Hua kya exactly?",
			"Main confuse ho raha hoon, shuru se batao",
		},
		LanguageHindi: {
			"कृपया धीरे-धीरे समझाओ",
			"हुआ क्या?",
			"मैं भ्रमित हो रहा हूं, शुरू से बताओ",
		},
	},
	IntentGreeting: {
		LanguageEnglish: {
			"Hello, who is this?",
			"Yes, how can I help?",
		},
		LanguageHinglish: {
			"Hello, kaun bol raha hai?",
			"Haan, kaise madad kar sakta hoon?",
		},
		LanguageHindi: {
			"नमस्ते, कौन बोल रहा है?",
			"हां, कैसे मदद कर सकता हूं?",
		},
	},
	IntentUnknown: {
		LanguageEnglish: {
			"I didn't understand",
			"Can you explain again?",
			"What do you mean?",
		},
		LanguageHinglish: {
			"Main samjha nahi",
			"Phir se samjha sakte ho?",
			"Matlab kya hai?",
		},
		LanguageHindi: {
			"मैं समझा नहीं",
			"फिर से समझा सकते हो?",
			"मतलब क्या है?",
		},
	},
}

// fallbackResponses are returned whenever the LLM path is unavailable or its
// output is unusable.
var fallbackResponses = map[Language]string{
	LanguageEnglish:  "Sorry, I didn't catch that. Can you repeat?",
	LanguageHinglish: "Thoda network issue hai, dobara boliye",
	LanguageHindi:    "नेटवर्क खराब है, फिर से बोलिए",
}

// scriptedReply picks the rotation entry for the given intent, language, and
// agent turn count, falling back to the unknown/english families when a cell
// is missing.
func scriptedReply(intent Intent, lang Language, agentCount int) string {
	family, ok := manualResponses[intent]
	if !ok {
		family = manualResponses[IntentUnknown]
	}
	lines, ok := family[lang]
	if !ok || len(lines) == 0 {
		lines = family[LanguageEnglish]
	}
	if len(lines) == 0 {
		return fallbackResponses[LanguageEnglish]
	}
	return lines[agentCount%len(lines)]
}

// fallbackReply returns the language-matched canned line.
func fallbackReply(lang Language) string {
	if r, ok := fallbackResponses[lang]; ok {
		return r
	}
	return "Can you say that again?"
}
