// Package policy is the only place that decides scam vs legitimate. It
// consumes extracted signals and produces auditable decisions: judicial
// reasoning over pattern intersections rather than statistical scoring.
package policy

import "fmt"

// RiskBand orders operational harm potential. The numeric ordering backs the
// risk-floor rule: BENIGN < LOW < MEDIUM < HIGH < CRITICAL.
type RiskBand int

const (
	Benign RiskBand = iota
	Low
	Medium
	High
	Critical
)

var riskBandNames = map[RiskBand]string{
	Benign:   "BENIGN",
	Low:      "LOW",
	Medium:   "MEDIUM",
	High:     "HIGH",
	Critical: "CRITICAL",
}

func (r RiskBand) String() string {
	if name, ok := riskBandNames[r]; ok {
		return name
	}
	return "UNKNOWN"
}

// MarshalJSON renders the band as its operational name.
func (r RiskBand) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", r.String())), nil
}

// Confidence grades how certain the engine is about a verdict.
type Confidence string

const (
	ConfidenceLow        Confidence = "low"
	ConfidenceMedium     Confidence = "medium"
	ConfidenceHigh       Confidence = "high"
	ConfidenceDefinitive Confidence = "definitive"
)

// EngagementStance tells the reply engine how to respond.
type EngagementStance string

const (
	StanceBlock     EngagementStance = "BLOCK"
	StanceAllow     EngagementStance = "ALLOW"
	StanceDefensive EngagementStance = "ENGAGE_DEFENSIVE"
	StanceHoneypot  EngagementStance = "ENGAGE_HONEYPOT"
)

// Trajectory describes how risk moved across turns.
type Trajectory string

const (
	TrajectoryInitial      Trajectory = "initial"
	TrajectoryStable       Trajectory = "stable"
	TrajectoryEscalating   Trajectory = "escalating"
	TrajectoryFloorApplied Trajectory = "floor_applied"
)

// Decision is the complete, auditable output of the engine for one turn.
type Decision struct {
	ScamDetected bool       `json:"scam_detected"`
	RiskBand     RiskBand   `json:"risk_band"`
	Confidence   Confidence `json:"confidence"`
	Reasons      []string   `json:"reasons"`

	Engage           bool             `json:"engage"`
	EngagementStance EngagementStance `json:"engagement_stance"`

	RecommendedActions []string       `json:"recommended_actions"`
	Evidence           map[string]any `json:"evidence"`

	TurnCount      int        `json:"turn_count"`
	RiskTrajectory Trajectory `json:"risk_trajectory"`
}

// Explanation renders the decision in an audit-friendly multi-line form
// suitable for logs or regulatory review.
func (d Decision) Explanation() string {
	verdict := "NOT A SCAM"
	if d.ScamDetected {
		verdict = "SCAM DETECTED"
	}
	out := fmt.Sprintf("decision turn=%d verdict=%s band=%s confidence=%s stance=%s trajectory=%s\n",
		d.TurnCount, verdict, d.RiskBand, d.Confidence, d.EngagementStance, d.RiskTrajectory)
	for i, reason := range d.Reasons {
		out += fmt.Sprintf("  %d. %s\n", i+1, reason)
	}
	return out
}
