package signals

// Frozen lexicons. These are human-curated and versioned: any addition or
// removal changes detection behavior and must go through review.

// ActionCategory names a class of irreversible action a scammer may request.
type ActionCategory string

const (
	CategoryCredentialSharing    ActionCategory = "credential_sharing"
	CategoryRemoteAccessInstall  ActionCategory = "remote_access_installation"
	CategoryImmediatePayment     ActionCategory = "immediate_payment"
	CategoryQRCodeAction         ActionCategory = "qr_code_action"
	CategoryUntraceablePayment   ActionCategory = "untraceable_payment"
	CategoryLinkInteraction      ActionCategory = "link_interaction"
	CategoryAccountAccessSharing ActionCategory = "account_access_sharing"
)

// highRiskCategories are the categories whose compliance causes immediate,
// unrecoverable harm. A match here drives the CRITICAL verdict.
var highRiskCategories = map[ActionCategory]bool{
	CategoryCredentialSharing:    true,
	CategoryRemoteAccessInstall:  true,
	CategoryImmediatePayment:     true,
	CategoryAccountAccessSharing: true,
}

// IrreversibleActions maps each category to the phrases that request it.
// Matching is whole-word on lowercased text.
var IrreversibleActions = map[ActionCategory][]string{
	CategoryCredentialSharing: {
		"otp", "one time password", "one-time password",
		"pin", "password", "cvv", "cvc", "card number",
		"login code", "verification code", "security code",
		"mpin", "atm pin", "debit card", "credit card",
	},
	CategoryRemoteAccessInstall: {
		"anydesk", "teamviewer", "remote desktop", "screen sharing",
		"screen share", "remote access", "remote control",
		"install app", "download app", "apk install",
	},
	CategoryImmediatePayment: {
		"upi collect", "pay now", "transfer money", "send money",
		"payment request", "gpay", "paytm", "phonepe",
		"bank transfer", "neft", "rtgs", "imps",
	},
	CategoryQRCodeAction: {
		"scan qr", "qr code", "scan this", "barcode",
	},
	CategoryUntraceablePayment: {
		"gift card", "google play card", "amazon card",
		"crypto", "bitcoin", "usdt", "wallet address",
	},
	CategoryLinkInteraction: {
		"click link", "open link", "visit link",
		"verify account", "confirm identity",
	},
	CategoryAccountAccessSharing: {
		"share screen", "give access",
		"safe account", "secure account",
	},
}

// categoryOrder fixes iteration order so matched categories and phrases come
// out deterministically regardless of map ordering.
var categoryOrder = []ActionCategory{
	CategoryCredentialSharing,
	CategoryRemoteAccessInstall,
	CategoryImmediatePayment,
	CategoryQRCodeAction,
	CategoryUntraceablePayment,
	CategoryLinkInteraction,
	CategoryAccountAccessSharing,
}

// Psychological tactic lexicons. Matching is substring on lowercased text;
// romanized Hindi pressure words are included alongside English.

var UrgencyIndicators = []string{
	"urgent", "immediately", "right now", "asap",
	"today", "within minutes", "expire",
	"turant", "abhi", "jaldi", "der mat karo",
}

var AuthorityClaims = []string{
	"bank", "rbi", "sbi", "hdfc", "icici",
	"police", "officer", "cyber cell",
	"government", "court", "income tax",
}

var FearTactics = []string{
	"blocked", "suspended", "frozen",
	"arrest", "fir", "court case",
	"penalty", "fraud", "illegal",
}

var RewardBaits = []string{
	"refund", "cashback", "reward",
	"prize", "lottery", "bonus",
}

var VerificationRequests = []string{
	"verify", "confirm", "authenticate",
	"kyc", "update details",
}

// Linguistic pattern lexicons.

var HindiRomanizedWords = []string{
	"hai", "hain", "aap", "aapka", "aapko",
	"karo", "kijiye", "sir", "madam", "ji",
}

var FormalHindiPhrases = []string{
	"namaste", "namaskar", "kripya",
}

var ExcessiveRespectMarkers = []string{
	"sir", "madam", "sirji", "madamji",
}

var ImpersonationSignals = []string{
	"calling from", "i am from",
	"representing", "on behalf of",
	"executive", "officer", "agent",
}

var InformationExtraction = []string{
	"what is your", "share your",
	"send your", "confirm your",
	"pan", "aadhaar", "account number",
}
