package policy

import (
	"fmt"
	"strings"

	"github.com/scamtrap/honeypot-engine/internal/signals"
)

// Engine applies the tiered detection ladder and the multi-turn escalation
// rules. It is pure: no I/O, no clock, no external services, and it cannot
// fail on ill-formed signals (zero-value sub-records read as absent).
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Reason prefixes are stable: tests and downstream log parsers key on them.
const (
	reasonHighRiskIrreversible = "HIGH-RISK IRREVERSIBLE ACTION REQUESTED"
	reasonIrreversible         = "IRREVERSIBLE ACTION REQUESTED"
	reasonLegitVerification    = "LEGITIMATE VERIFICATION PATTERN"
	reasonClassicTrinity       = "CLASSIC SCAM PATTERN"
	reasonCompoundPressure     = "COMPOUND PRESSURE TACTICS"
	reasonThreatBased          = "THREAT-BASED SCAM"
	reasonImpersonation        = "IMPERSONATION + DATA EXTRACTION"
	reasonSuspiciousAuthority  = "SUSPICIOUS AUTHORITY CLAIM"
	reasonUrgencyAlone         = "URGENCY DETECTED"
	reasonInfoExtraction       = "INFORMATION EXTRACTION ATTEMPT"
	reasonWeakSignals          = "WEAK SIGNALS"
	reasonNoIndicators         = "NO SCAM INDICATORS"
	reasonRiskFloor            = "RISK FLOOR"
	reasonEscalation           = "ESCALATION DETECTED"
	reasonPersistentAuthority  = "PERSISTENT AUTHORITY CLAIMS"
	reasonPersistentUrgency    = "PERSISTENT URGENCY"
)

func joinCategories(cats []signals.ActionCategory) string {
	parts := make([]string, len(cats))
	for i, c := range cats {
		parts[i] = string(c)
	}
	return strings.Join(parts, ", ")
}

// EvaluateSingleTurn walks the tier ladder in order; the first tier that
// applies wins. The irreversible tiers run before the whitelist so that
// irreversible requests can never be whitelisted.
func (e *Engine) EvaluateSingleTurn(s signals.ExtractedSignals) Decision {
	irr := s.Irreversible
	psych := s.Psychological
	ling := s.Linguistic
	ctx := s.Contextual

	// Tier 1 (CRITICAL): irreversible harm imminent.
	if irr.HasHighRisk() {
		return Decision{
			ScamDetected: true,
			RiskBand:     Critical,
			Confidence:   ConfidenceDefinitive,
			Reasons: []string{
				fmt.Sprintf("%s: %s", reasonHighRiskIrreversible, joinCategories(irr.RequestedActions)),
			},
			Engage:           true,
			EngagementStance: StanceHoneypot,
			RecommendedActions: []string{
				"Do not comply with any requests",
				"Gather scammer information",
				"Log for law enforcement",
			},
			Evidence: map[string]any{
				"irreversible_actions": irr.RequestedActions,
				"explicit_phrases":     irr.ExplicitPhrases,
			},
		}
	}

	// Tier 2 (HIGH): any irreversible action, even lower-risk ones.
	if irr.HasAny() {
		return Decision{
			ScamDetected: true,
			RiskBand:     High,
			Confidence:   ConfidenceHigh,
			Reasons: []string{
				fmt.Sprintf("%s: %s", reasonIrreversible, joinCategories(irr.RequestedActions)),
			},
			Engage:           true,
			EngagementStance: StanceHoneypot,
			RecommendedActions: []string{
				"Do not comply",
				"Continue engagement to gather intelligence",
			},
			Evidence: map[string]any{
				"irreversible_actions": irr.RequestedActions,
			},
		}
	}

	// Whitelist short-circuit: known legitimate verification shape.
	if IsLegitimateVerification(s) {
		return Decision{
			ScamDetected:       false,
			RiskBand:           Low,
			Confidence:         ConfidenceMedium,
			Reasons:            []string{reasonLegitVerification},
			Engage:             true,
			EngagementStance:   StanceAllow,
			RecommendedActions: []string{"Monitor for escalation"},
			Evidence:           map[string]any{},
		}
	}

	// Tier 4 (HIGH): authority + urgency + language mixing, the signature
	// intersection of the target operator population.
	if psych.AuthorityClaimed && psych.UrgencyPresent && ling.LanguageMixing {
		return Decision{
			ScamDetected: true,
			RiskBand:     High,
			Confidence:   ConfidenceHigh,
			Reasons: []string{
				reasonClassicTrinity + ": authority claim + urgency + language mixing",
			},
			Engage:           true,
			EngagementStance: StanceHoneypot,
			RecommendedActions: []string{
				"High-confidence scam detected",
				"Continue engagement for intelligence gathering",
			},
			Evidence: map[string]any{
				"pattern":            "classic_scam_trinity",
				"authority_entities": psych.AuthorityEntities,
				"urgency_intensity":  psych.UrgencyIntensity,
			},
		}
	}

	// Tier 5: compound psychological pressure.
	if ctx.MultipleUrgencyLayers {
		reasons := []string{
			fmt.Sprintf("%s: %s", reasonCompoundPressure, strings.Join(ctx.CombinedTactics, ", ")),
		}
		evidence := map[string]any{"combined_tactics": ctx.CombinedTactics}
		if psych.AuthorityClaimed {
			reasons = append(reasons, "Combined with authority claim")
			evidence["authority_entities"] = psych.AuthorityEntities
			return Decision{
				ScamDetected:     true,
				RiskBand:         High,
				Confidence:       ConfidenceHigh,
				Reasons:          reasons,
				Engage:           true,
				EngagementStance: StanceHoneypot,
				Evidence:         evidence,
			}
		}
		return Decision{
			ScamDetected:     true,
			RiskBand:         Medium,
			Confidence:       ConfidenceMedium,
			Reasons:          reasons,
			Engage:           true,
			EngagementStance: StanceDefensive,
			Evidence:         evidence,
		}
	}

	// Tier 6 (HIGH): threat-based scam.
	if psych.AuthorityClaimed && psych.FearTacticsPresent {
		fear := psych.FearPhrases
		if len(fear) > 3 {
			fear = fear[:3]
		}
		return Decision{
			ScamDetected: true,
			RiskBand:     High,
			Confidence:   ConfidenceHigh,
			Reasons: []string{
				reasonThreatBased + ": authority claim with fear tactics",
				"Fear phrases: " + strings.Join(fear, ", "),
			},
			Engage:           true,
			EngagementStance: StanceHoneypot,
			Evidence: map[string]any{
				"authority_entities": psych.AuthorityEntities,
				"fear_phrases":       psych.FearPhrases,
			},
		}
	}

	// Tier 7 (HIGH): impersonation plus data extraction.
	if ctx.InformationExtractionAttempt && ling.ImpersonationLanguage {
		return Decision{
			ScamDetected: true,
			RiskBand:     High,
			Confidence:   ConfidenceMedium,
			Reasons: []string{
				reasonImpersonation + ": claiming organization identity while requesting sensitive info",
			},
			Engage:           true,
			EngagementStance: StanceDefensive,
			Evidence: map[string]any{
				"impersonation_phrases": ling.ImpersonationPhrases,
				"data_fields_requested": ctx.DataFieldsRequested,
			},
		}
	}

	// Tier 8 (MEDIUM): authority claim without legitimacy markers.
	if psych.AuthorityClaimed && !IsLegitimateAuthority(s) {
		reasons := []string{
			fmt.Sprintf("%s: %s", reasonSuspiciousAuthority, strings.Join(psych.AuthorityEntities, ", ")),
		}
		evidence := map[string]any{"authority_entities": psych.AuthorityEntities}
		if ling.RespectMarkerCount > 0 {
			reasons = append(reasons,
				fmt.Sprintf("Deferential address toward claimed authority (%d respect markers)", ling.RespectMarkerCount))
			evidence["respect_marker_count"] = ling.RespectMarkerCount
		}
		return Decision{
			ScamDetected:     false,
			RiskBand:         Medium,
			Confidence:       ConfidenceMedium,
			Reasons:          reasons,
			Engage:           true,
			EngagementStance: StanceDefensive,
			RecommendedActions: []string{
				"Request verification details",
				"Monitor for escalation",
			},
			Evidence: evidence,
		}
	}

	// Tier 9 (MEDIUM): strong urgency alone. Urgency is not a scam by itself.
	if psych.UrgencyIntensity == signals.UrgencyHigh || psych.UrgencyIntensity == signals.UrgencyMedium {
		return Decision{
			ScamDetected: false,
			RiskBand:     Medium,
			Confidence:   ConfidenceLow,
			Reasons: []string{
				fmt.Sprintf("%s: %s intensity, %d urgency indicators",
					reasonUrgencyAlone, psych.UrgencyIntensity, len(psych.UrgencyPhrases)),
			},
			Engage:             true,
			EngagementStance:   StanceDefensive,
			RecommendedActions: []string{"Monitor for additional signals"},
			Evidence:           map[string]any{"urgency_phrases": psych.UrgencyPhrases},
		}
	}

	// Tier 10 (MEDIUM): information extraction alone.
	if ctx.InformationExtractionAttempt {
		return Decision{
			ScamDetected:     false,
			RiskBand:         Medium,
			Confidence:       ConfidenceLow,
			Reasons:          []string{reasonInfoExtraction},
			Engage:           true,
			EngagementStance: StanceDefensive,
			Evidence:         map[string]any{"data_fields_requested": ctx.DataFieldsRequested},
		}
	}

	// Tier 11 (LOW): weak signals worth monitoring.
	var weak []string
	if psych.UrgencyPresent {
		weak = append(weak, "low urgency")
	}
	if psych.RewardBaiting {
		weak = append(weak, "reward baiting")
	}
	if ling.LanguageMixing {
		weak = append(weak, "language mixing")
	}
	if ling.ExcessiveRespect {
		weak = append(weak, "excessive formality")
	}
	if len(weak) > 0 {
		return Decision{
			ScamDetected:       false,
			RiskBand:           Low,
			Confidence:         ConfidenceLow,
			Reasons:            []string{fmt.Sprintf("%s: %s", reasonWeakSignals, strings.Join(weak, ", "))},
			Engage:             true,
			EngagementStance:   StanceAllow,
			RecommendedActions: []string{"Continue monitoring"},
			Evidence:           map[string]any{},
		}
	}

	// Tier 12: BENIGN.
	return Decision{
		ScamDetected:     false,
		RiskBand:         Benign,
		Confidence:       ConfidenceHigh,
		Reasons:          []string{reasonNoIndicators},
		Engage:           true,
		EngagementStance: StanceAllow,
		Evidence:         map[string]any{},
	}
}

// EvaluateConversation composes the single-turn verdict with escalation
// post-processing. Risk can only increase or hold across a conversation;
// once any turn detects a scam, every later turn does too.
func (e *Engine) EvaluateConversation(s signals.ExtractedSignals, prior []Decision) Decision {
	d := e.EvaluateSingleTurn(s)
	d.TurnCount = len(prior) + 1

	if len(prior) == 0 {
		d.RiskTrajectory = TrajectoryInitial
		return d
	}

	// Risk floor: a compromised conversation never de-escalates.
	highest := prior[0].RiskBand
	for _, p := range prior[1:] {
		if p.RiskBand > highest {
			highest = p.RiskBand
		}
	}
	if d.RiskBand < highest {
		d.RiskBand = highest
		d.Reasons = append([]string{
			fmt.Sprintf("%s: previous turn reached %s, risk cannot decrease", reasonRiskFloor, highest),
		}, d.Reasons...)
		d.RiskTrajectory = TrajectoryFloorApplied
	}

	last := prior[len(prior)-1]
	if d.RiskBand > last.RiskBand {
		d.RiskTrajectory = TrajectoryEscalating
		d.Reasons = append([]string{
			fmt.Sprintf("%s: %s -> %s", reasonEscalation, last.RiskBand, d.RiskBand),
		}, d.Reasons...)
	} else if d.RiskTrajectory != TrajectoryFloorApplied {
		d.RiskTrajectory = TrajectoryStable
	}

	// Persistence: the same tactic held across turns raises confidence.
	if len(prior) >= 2 {
		authorityTurns := 0
		for _, p := range prior {
			if evidenceMentionsAuthority(p) {
				authorityTurns++
			}
		}
		if authorityTurns >= 2 && s.Psychological.AuthorityClaimed {
			d.Reasons = append(d.Reasons,
				fmt.Sprintf("%s: %d turns", reasonPersistentAuthority, authorityTurns+1))
			if d.Confidence == ConfidenceMedium {
				d.Confidence = ConfidenceHigh
			}
		}

		urgencyTurns := 0
		for _, p := range prior {
			if reasonsMentionUrgency(p) {
				urgencyTurns++
			}
		}
		if urgencyTurns >= 2 && s.Psychological.UrgencyPresent {
			d.Reasons = append(d.Reasons,
				fmt.Sprintf("%s: %d turns", reasonPersistentUrgency, urgencyTurns+1))
			if d.Confidence == ConfidenceMedium {
				d.Confidence = ConfidenceHigh
			}
		}
	}

	// Sticky scam: any detected turn compromises the whole conversation.
	for _, p := range prior {
		if p.ScamDetected {
			d.ScamDetected = true
			break
		}
	}
	return d
}

func evidenceMentionsAuthority(d Decision) bool {
	for key := range d.Evidence {
		if strings.Contains(key, "authority") {
			return true
		}
	}
	return false
}

func reasonsMentionUrgency(d Decision) bool {
	for _, r := range d.Reasons {
		if strings.Contains(strings.ToLower(r), "urgency") {
			return true
		}
	}
	return false
}
