// Package models defines the wire envelopes for the honeypot HTTP surface.
// Parsing is deliberately tolerant: callers send loosely typed payloads and
// the engine normalizes rather than rejects.
package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// FlexInt unmarshals from either a JSON number or a numeric string.
type FlexInt int

// UnmarshalJSON accepts 3, "3", and null (left at zero).
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			*f = FlexInt(n)
		}
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexInt(n)
	}
	return nil
}

// HoneypotRequest is the inbound message envelope.
type HoneypotRequest struct {
	ConversationID string  `json:"conversation_id"`
	Turn           FlexInt `json:"turn"`
	Message        string  `json:"message"`
	ExecutionMode  string  `json:"execution_mode"`
}

// Normalize fills defaults for absent or blank fields.
func (r *HoneypotRequest) Normalize() {
	if strings.TrimSpace(r.ConversationID) == "" {
		r.ConversationID = "default"
	}
	if r.Turn <= 0 {
		r.Turn = 1
	}
	mode := strings.ToLower(strings.TrimSpace(r.ExecutionMode))
	if mode != "shadow" {
		mode = "live"
	}
	r.ExecutionMode = mode
}

// EngagementMetrics reports conversation progress.
type EngagementMetrics struct {
	Turn          int `json:"turn"`
	HistoryLength int `json:"history_length"`
}

// ExtractedIntelligence mirrors internal intel for the wire.
type ExtractedIntelligence struct {
	UPIIDs []string `json:"upi_id"`
	URLs   []string `json:"urls"`
}

// Explanation is the diagnostic block attached to every response.
type Explanation struct {
	RiskBand    string          `json:"risk_band"`
	Reasons     []string        `json:"reasons"`
	HardSignals json.RawMessage `json:"hard_signals,omitempty"`
	SoftSignals json.RawMessage `json:"soft_signals,omitempty"`
	Validation  json.RawMessage `json:"validation,omitempty"`
}

// HoneypotResponse is the outbound envelope. The HTTP status is always 200;
// failures surface through conservative field values instead.
type HoneypotResponse struct {
	ScamDetected          bool                  `json:"scam_detected"`
	RiskScore             string                `json:"risk_score"`
	DecisionConfidence    string                `json:"decision_confidence"`
	AgentReply            *string               `json:"agent_reply"`
	ExtractedIntelligence ExtractedIntelligence `json:"extracted_intelligence"`
	EngagementMetrics     EngagementMetrics     `json:"engagement_metrics"`
	Explanation           Explanation           `json:"explanation"`
	TerminationReason     string                `json:"termination_reason,omitempty"`
}
