package policy

import "github.com/scamtrap/honeypot-engine/internal/signals"

// Known-good patterns that must not trigger scam detection. Real banks,
// couriers, and support desks do claim authority, request verification, and
// occasionally sound urgent. What they do not do is combine those with
// irreversible action requests or pressure tactics.

// IsLegitimateVerification reports whether the message looks like a routine,
// low-pressure verification request. It never fires while any irreversible
// action is present.
func IsLegitimateVerification(s signals.ExtractedSignals) bool {
	if s.Irreversible.HasAny() {
		return false
	}
	if s.Psychological.FearTacticsPresent {
		return false
	}
	if s.Irreversible.Has(signals.CategoryCredentialSharing) {
		return false
	}
	return s.Psychological.VerificationRequested && !s.Psychological.UrgencyPresent
}

// IsLegitimateAuthority reports whether an authority claim is consistent with
// a real organization: no threats, no urgency stacked with fear or bait, and
// no deferential "sir/madam" address toward the claimed authority.
func IsLegitimateAuthority(s signals.ExtractedSignals) bool {
	psych := s.Psychological
	if psych.AuthorityClaimed && psych.FearTacticsPresent {
		return false
	}
	if psych.AuthorityClaimed && psych.UrgencyPresent &&
		(psych.FearTacticsPresent || psych.RewardBaiting) {
		return false
	}
	if psych.AuthorityClaimed && s.Linguistic.RespectMarkerCount >= 1 {
		return false
	}
	return true
}
