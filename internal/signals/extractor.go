package signals

import (
	"regexp"
	"strings"
)

// Extractor converts raw message text into an ExtractedSignals record. It is
// pure and deterministic: same text in, same signals out. All matching runs
// against a lowercased copy of the input.
type Extractor struct {
	irreversible map[ActionCategory][]phrasePattern
}

type phrasePattern struct {
	phrase string
	re     *regexp.Regexp
}

// NewExtractor compiles the irreversible-action phrase table into whole-word
// matchers. Substring lexicons need no compilation.
func NewExtractor() *Extractor {
	e := &Extractor{irreversible: make(map[ActionCategory][]phrasePattern, len(IrreversibleActions))}
	for cat, phrases := range IrreversibleActions {
		compiled := make([]phrasePattern, 0, len(phrases))
		for _, p := range phrases {
			compiled = append(compiled, phrasePattern{
				phrase: p,
				re:     regexp.MustCompile(`\b` + regexp.QuoteMeta(p) + `\b`),
			})
		}
		e.irreversible[cat] = compiled
	}
	return e
}

// Extract runs the four extraction passes. The contextual pass consumes the
// psychological result, so pass order is fixed.
func (e *Extractor) Extract(text string) ExtractedSignals {
	lower := strings.ToLower(text)

	out := ExtractedSignals{}
	out.Irreversible = e.extractIrreversible(lower)
	out.Psychological = extractPsychological(lower)
	out.Linguistic = extractLinguistic(lower)
	out.Contextual = extractContextual(lower, out.Psychological)
	return out
}

func (e *Extractor) extractIrreversible(lower string) IrreversibleSignals {
	var sig IrreversibleSignals
	for _, cat := range categoryOrder {
		hit := false
		for _, pp := range e.irreversible[cat] {
			if pp.re.MatchString(lower) {
				if !hit {
					sig.RequestedActions = append(sig.RequestedActions, cat)
					hit = true
				}
				sig.ExplicitPhrases = append(sig.ExplicitPhrases, pp.phrase)
			}
		}
	}
	return sig
}

func extractPsychological(lower string) PsychologicalSignals {
	sig := PsychologicalSignals{UrgencyIntensity: UrgencyNone}

	if matches := substringMatches(lower, UrgencyIndicators); len(matches) > 0 {
		sig.UrgencyPresent = true
		sig.UrgencyPhrases = matches
		switch {
		case len(matches) >= 3:
			sig.UrgencyIntensity = UrgencyHigh
		case len(matches) == 2:
			sig.UrgencyIntensity = UrgencyMedium
		default:
			sig.UrgencyIntensity = UrgencyLow
		}
	}

	if matches := substringMatches(lower, AuthorityClaims); len(matches) > 0 {
		sig.AuthorityClaimed = true
		sig.AuthorityEntities = matches
	}
	if matches := substringMatches(lower, FearTactics); len(matches) > 0 {
		sig.FearTacticsPresent = true
		sig.FearPhrases = matches
	}
	if matches := substringMatches(lower, RewardBaits); len(matches) > 0 {
		sig.RewardBaiting = true
		sig.RewardPhrases = matches
	}
	if matches := substringMatches(lower, VerificationRequests); len(matches) > 0 {
		sig.VerificationRequested = true
		sig.VerificationPhrases = matches
	}
	return sig
}

func extractLinguistic(lower string) LinguisticSignals {
	var sig LinguisticSignals

	hindi := make(map[string]bool, len(HindiRomanizedWords))
	for _, w := range HindiRomanizedWords {
		hindi[w] = true
	}

	for _, word := range strings.Fields(lower) {
		switch {
		case hindi[word]:
			sig.HindiWordCount++
		case isASCIIAlpha(word):
			sig.EnglishWordCount++
		}
	}
	sig.LanguageMixing = sig.HindiWordCount > 0 && sig.EnglishWordCount > 0

	sig.RespectMarkerCount = len(substringMatches(lower, ExcessiveRespectMarkers))
	sig.ExcessiveRespect = sig.RespectMarkerCount >= 2

	sig.FormalHindiPresent = len(substringMatches(lower, FormalHindiPhrases)) > 0

	if matches := substringMatches(lower, ImpersonationSignals); len(matches) > 0 {
		sig.ImpersonationLanguage = true
		sig.ImpersonationPhrases = matches
	}
	return sig
}

func extractContextual(lower string, psych PsychologicalSignals) ContextualSignals {
	var sig ContextualSignals

	if matches := substringMatches(lower, InformationExtraction); len(matches) > 0 {
		sig.InformationExtractionAttempt = true
		sig.DataFieldsRequested = matches
	}

	var tactics []string
	if psych.UrgencyPresent {
		tactics = append(tactics, "urgency")
	}
	if psych.AuthorityClaimed {
		tactics = append(tactics, "authority")
	}
	if psych.FearTacticsPresent {
		tactics = append(tactics, "fear")
	}
	if psych.RewardBaiting {
		tactics = append(tactics, "reward")
	}
	if len(tactics) >= 2 {
		sig.MultipleUrgencyLayers = true
		sig.CombinedTactics = tactics
		sig.EscalationDetected = true
	}

	if psych.VerificationRequested && (psych.UrgencyPresent || psych.AuthorityClaimed) {
		sig.EscalationDetected = true
	}
	return sig
}

// substringMatches returns the lexicon entries contained in text, preserving
// lexicon order.
func substringMatches(text string, lexicon []string) []string {
	var out []string
	for _, entry := range lexicon {
		if strings.Contains(text, entry) {
			out = append(out, entry)
		}
	}
	return out
}

// isASCIIAlpha reports whether the token is non-empty, pure ASCII letters.
// Devanagari and punctuation-bearing tokens count toward neither language.
func isASCIIAlpha(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}
