package agent

import (
	"regexp"
	"strings"
)

// Intent labels what the scammer is fishing for, used to pick a scripted
// reply family.
type Intent string

const (
	IntentCredentialTrap Intent = "credential_trap"
	IntentMoneyTrap      Intent = "money_trap"
	IntentAuthorityTrap  Intent = "authority_trap"
	IntentDeviceTrap     Intent = "device_trap"
	IntentPanicTrap      Intent = "panic_trap"
	IntentGreeting       Intent = "greeting"
	IntentUnknown        Intent = "unknown"
)

// greetingOpener catches messages that lead with a salutation. Openers are
// classified as greetings before the trap lexicons run, so a first-contact
// "Hello sir, I am calling from ..." draws a who-is-this reply instead of a
// mid-conversation question.
var greetingOpener = regexp.MustCompile(`^(hello|hi|hey|namaste|namaskar|good\s+(morning|afternoon|evening)|नमस्ते|हेलो)\b`)

var intentLexicons = []struct {
	intent Intent
	words  []string
}{
	{IntentCredentialTrap, []string{
		"otp", "pin", "password", "cvv", "code", "verify", "verification",
		"passcode", "security code", "आओटीपी", "पासवर्ड", "कोड",
	}},
	{IntentMoneyTrap, []string{
		"upi", "payment", "refund", "amount", "rs", "money", "rupees",
		"paytm", "phonepe", "gpay", "transfer", "account", "रुपये", "पैसे",
	}},
	{IntentAuthorityTrap, []string{
		"bank", "police", "officer", "department", "rbi", "government",
		"official", "cybercrime", "पुलिस", "बैंक", "सरकार",
	}},
	{IntentDeviceTrap, []string{
		"install", "download", "anydesk", "teamviewer", "remote",
		"app", "link", "click", "डाउनलोड", "इंस्टॉल",
	}},
	{IntentPanicTrap, []string{
		"urgent", "block", "suspend", "arrest", "immediately", "now",
		"hurry", "quick", "emergency", "जल्दी", "तुरंत",
	}},
	{IntentGreeting, []string{
		"hello", "hi", "good morning", "good afternoon", "good evening",
		"this is", "i am calling from", "नमस्ते", "हेलो",
	}},
}

// DetectIntent classifies a scammer message by keyword lexicons in fixed
// priority order, with a greeting fast-path for salutation openers.
func DetectIntent(message string) Intent {
	lower := strings.ToLower(strings.TrimSpace(message))
	if lower == "" {
		return IntentUnknown
	}
	if greetingOpener.MatchString(lower) {
		return IntentGreeting
	}
	for _, lex := range intentLexicons {
		for _, w := range lex.words {
			if strings.Contains(lower, w) {
				return lex.intent
			}
		}
	}
	return IntentUnknown
}
