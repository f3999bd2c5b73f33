package signals

// IrreversibleSignals records which irreversible-action categories a message
// requests and the exact phrases that matched. RequestedActions holds exactly
// the categories that produced at least one phrase match.
type IrreversibleSignals struct {
	RequestedActions []ActionCategory `json:"requested_actions"`
	ExplicitPhrases  []string         `json:"explicit_phrases"`
}

// HasAny reports whether any irreversible action was requested.
func (s IrreversibleSignals) HasAny() bool {
	return len(s.RequestedActions) > 0
}

// HasHighRisk reports whether any requested category is in the high-risk
// subset (credentials, remote access, immediate payment, account access).
func (s IrreversibleSignals) HasHighRisk() bool {
	for _, c := range s.RequestedActions {
		if highRiskCategories[c] {
			return true
		}
	}
	return false
}

// Has reports whether the given category was requested.
func (s IrreversibleSignals) Has(c ActionCategory) bool {
	for _, a := range s.RequestedActions {
		if a == c {
			return true
		}
	}
	return false
}

// UrgencyIntensity grades how much time pressure a message applies.
type UrgencyIntensity string

const (
	UrgencyNone   UrgencyIntensity = "none"
	UrgencyLow    UrgencyIntensity = "low"
	UrgencyMedium UrgencyIntensity = "medium"
	UrgencyHigh   UrgencyIntensity = "high"
)

// Score maps intensity to a numeric scale used by the escalation detector.
func (u UrgencyIntensity) Score() int {
	switch u {
	case UrgencyLow:
		return 1
	case UrgencyMedium:
		return 2
	case UrgencyHigh:
		return 3
	default:
		return 0
	}
}

// PsychologicalSignals records pressure tactics. Each boolean is true iff its
// phrase list is non-empty.
type PsychologicalSignals struct {
	UrgencyPresent   bool             `json:"urgency_present"`
	UrgencyPhrases   []string         `json:"urgency_phrases"`
	UrgencyIntensity UrgencyIntensity `json:"urgency_intensity"`

	AuthorityClaimed  bool     `json:"authority_claimed"`
	AuthorityEntities []string `json:"authority_entities"`

	FearTacticsPresent bool     `json:"fear_tactics_present"`
	FearPhrases        []string `json:"fear_phrases"`

	RewardBaiting bool     `json:"reward_baiting"`
	RewardPhrases []string `json:"reward_phrases"`

	VerificationRequested bool     `json:"verification_requested"`
	VerificationPhrases   []string `json:"verification_phrases"`
}

// LinguisticSignals records communication-style markers common in the target
// operator population.
type LinguisticSignals struct {
	LanguageMixing   bool `json:"language_mixing"`
	HindiWordCount   int  `json:"hindi_word_count"`
	EnglishWordCount int  `json:"english_word_count"`

	ExcessiveRespect   bool `json:"excessive_respect"`
	RespectMarkerCount int  `json:"respect_marker_count"`

	FormalHindiPresent bool `json:"formal_hindi_present"`

	ImpersonationLanguage bool     `json:"impersonation_language"`
	ImpersonationPhrases  []string `json:"impersonation_phrases"`
}

// ContextualSignals records sequencing and combination hints derived from the
// other passes.
type ContextualSignals struct {
	InformationExtractionAttempt bool     `json:"information_extraction_attempt"`
	DataFieldsRequested          []string `json:"data_fields_requested"`

	MultipleUrgencyLayers bool     `json:"multiple_urgency_layers"`
	CombinedTactics       []string `json:"combined_tactics"`

	EscalationDetected bool `json:"escalation_detected"`
}

// ExtractedSignals is the full structured observation for one message. It
// reports facts only; verdicts belong to the policy engine.
type ExtractedSignals struct {
	Irreversible  IrreversibleSignals  `json:"irreversible"`
	Psychological PsychologicalSignals `json:"psychological"`
	Linguistic    LinguisticSignals    `json:"linguistic"`
	Contextual    ContextualSignals    `json:"contextual"`
}

// HardView is the compact projection of the strong signals consumed by the
// response envelope.
type HardView struct {
	IrreversibleActions []ActionCategory `json:"irreversible_actions"`
	HighRisk            bool             `json:"high_risk"`
	Urgency             bool             `json:"urgency"`
	Authority           bool             `json:"authority"`
	Fear                bool             `json:"fear"`
}

// SoftView is the compact projection of the weaker stylistic signals.
type SoftView struct {
	LanguageMixing        bool     `json:"language_mixing"`
	ExcessiveRespect      bool     `json:"excessive_respect"`
	InformationExtraction bool     `json:"information_extraction"`
	CombinedTactics       []string `json:"combined_tactics"`
}

// Hard projects the strong-signal view.
func (s ExtractedSignals) Hard() HardView {
	actions := s.Irreversible.RequestedActions
	if actions == nil {
		actions = []ActionCategory{}
	}
	return HardView{
		IrreversibleActions: actions,
		HighRisk:            s.Irreversible.HasHighRisk(),
		Urgency:             s.Psychological.UrgencyPresent,
		Authority:           s.Psychological.AuthorityClaimed,
		Fear:                s.Psychological.FearTacticsPresent,
	}
}

// Soft projects the stylistic-signal view.
func (s ExtractedSignals) Soft() SoftView {
	tactics := s.Contextual.CombinedTactics
	if tactics == nil {
		tactics = []string{}
	}
	return SoftView{
		LanguageMixing:        s.Linguistic.LanguageMixing,
		ExcessiveRespect:      s.Linguistic.ExcessiveRespect,
		InformationExtraction: s.Contextual.InformationExtractionAttempt,
		CombinedTactics:       tactics,
	}
}

// Snapshot is the per-message record the conversation memory keeps so the
// escalation detector can work without re-extracting.
type Snapshot struct {
	UrgencyScore        int              `json:"urgency_score"`
	IrreversibleActions []ActionCategory `json:"irreversible_actions"`
}

// Snapshot derives the stored snapshot for this extraction.
func (s ExtractedSignals) Snapshot() Snapshot {
	return Snapshot{
		UrgencyScore:        s.Psychological.UrgencyIntensity.Score(),
		IrreversibleActions: s.Irreversible.RequestedActions,
	}
}
