package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLanguage(t *testing.T) {
	cases := []struct {
		text string
		want Language
	}{
		{"Your account will be suspended today", LanguageEnglish},
		{"", LanguageEnglish},
		{"12345 !!", LanguageEnglish},
		{"aap kya kar rahe ho bhai", LanguageHinglish},
		{"payment abhi karo please", LanguageHinglish},
		{"नमस्ते, आपका खाता बंद हो जाएगा", LanguageHindi},
		{"आपका OTP भेजें", LanguageHinglish},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DetectLanguage(tc.text), tc.text)
	}
}

func TestDetectIntent(t *testing.T) {
	cases := []struct {
		text string
		want Intent
	}{
		{"Hello sir, I am calling from State Bank", IntentGreeting},
		{"Good morning, this is your bank manager", IntentGreeting},
		{"Your OTP is needed for verification", IntentCredentialTrap},
		{"Transfer the amount to this UPI", IntentMoneyTrap},
		{"Install anydesk on your phone", IntentDeviceTrap},
		{"Do it immediately or face arrest", IntentPanicTrap},
		{"We noticed unusual activity from the cybercrime department", IntentAuthorityTrap},
		{"", IntentUnknown},
		{"let us meet tomorrow", IntentUnknown},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DetectIntent(tc.text), tc.text)
	}
}

func TestScriptedReplyRotation(t *testing.T) {
	first := scriptedReply(IntentCredentialTrap, LanguageEnglish, 0)
	second := scriptedReply(IntentCredentialTrap, LanguageEnglish, 1)

	assert.Equal(t, "I didn't receive any code yet", first)
	assert.Equal(t, "Which code are you referring to?", second)
	assert.NotEqual(t, first, second)
}

func TestScriptedReplyFallsBackToUnknownFamily(t *testing.T) {
	reply := scriptedReply(Intent("nonsense"), LanguageEnglish, 0)
	assert.Equal(t, "I didn't understand", reply)
}

func TestFallbackReplyPerLanguage(t *testing.T) {
	assert.Equal(t, "Sorry, I didn't catch that. Can you repeat?", fallbackReply(LanguageEnglish))
	assert.Equal(t, "Thoda network issue hai, dobara boliye", fallbackReply(LanguageHinglish))
	assert.Equal(t, "Can you say that again?", fallbackReply(Language("klingon")))
}
