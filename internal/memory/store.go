// Package memory holds per-conversation state for the lifetime of the
// process. Nothing here is persisted; a restart starts every conversation
// fresh, which is acceptable for an engagement honeypot.
package memory

import (
	"sync"

	"github.com/scamtrap/honeypot-engine/internal/policy"
	"github.com/scamtrap/honeypot-engine/internal/signals"
)

// Role identifies which side of the exchange produced a message.
type Role string

const (
	RoleScammer Role = "scammer"
	RoleAgent   Role = "agent"
)

// DefaultMaxHistory bounds the retained tail of each conversation.
const DefaultMaxHistory = 6

// Message is one conversation turn with an optional signal snapshot taken at
// extraction time.
type Message struct {
	Role     Role              `json:"role"`
	Text     string            `json:"message"`
	Snapshot *signals.Snapshot `json:"signals,omitempty"`
}

// EscalationReport is the outcome of the deterministic escalation check.
type EscalationReport struct {
	Escalation bool   `json:"escalation"`
	Reason     string `json:"reason"`
	// UrgencyTrend holds the recorded urgency scores in turn order.
	UrgencyTrend []int `json:"urgency_trend,omitempty"`
	// IrreversibleFirstSeenAtTurn is the message index where an irreversible
	// action first appeared, -1 if never.
	IrreversibleFirstSeenAtTurn int `json:"irreversible_first_seen_at_turn"`
}

type conversation struct {
	mu        sync.Mutex
	messages  []Message
	decisions []policy.Decision
}

// Store is a concurrency-safe conversation store. Operations on different
// conversation IDs proceed independently; operations on the same ID are
// serialized by a per-conversation mutex.
type Store struct {
	mu         sync.RWMutex
	convos     map[string]*conversation
	maxHistory int
}

// NewStore creates a store keeping at most maxHistory messages per
// conversation. maxHistory <= 0 selects DefaultMaxHistory.
func NewStore(maxHistory int) *Store {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &Store{
		convos:     make(map[string]*conversation),
		maxHistory: maxHistory,
	}
}

// MaxHistory returns the configured per-conversation bound.
func (s *Store) MaxHistory() int {
	return s.maxHistory
}

func (s *Store) get(id string) *conversation {
	s.mu.RLock()
	c, ok := s.convos[id]
	s.mu.RUnlock()
	if ok {
		return c
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok = s.convos[id]; !ok {
		c = &conversation{}
		s.convos[id] = c
	}
	return c
}

// History returns a copy of the retained messages for id. An unknown id
// yields an empty slice; conversations are created implicitly on append.
func (s *Store) History(id string) []Message {
	c := s.get(id)
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Append records a message, trimming to the most recent maxHistory entries.
func (s *Store) Append(id string, role Role, text string, snap *signals.Snapshot) {
	c := s.get(id)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, Message{Role: role, Text: text, Snapshot: snap})
	if len(c.messages) > s.maxHistory {
		c.messages = c.messages[len(c.messages)-s.maxHistory:]
	}
}

// AppendDecision records the policy decision for a turn. The decision log is
// not trimmed: it is small, and the risk-floor and sticky-scam rules must
// survive message eviction.
func (s *Store) AppendDecision(id string, d policy.Decision) {
	c := s.get(id)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.decisions = append(c.decisions, d)
}

// Decisions returns a copy of the decision log for id.
func (s *Store) Decisions(id string) []policy.Decision {
	c := s.get(id)
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]policy.Decision, len(c.decisions))
	copy(out, c.decisions)
	return out
}

// DetectEscalation inspects the recorded signal snapshots for id. Escalation
// requires both a strictly increasing urgency trend across the last three
// recorded scores and an irreversible action that first appeared after the
// opening turn.
func (s *Store) DetectEscalation(id string) EscalationReport {
	c := s.get(id)
	c.mu.Lock()
	defer c.mu.Unlock()

	report := EscalationReport{IrreversibleFirstSeenAtTurn: -1}

	var scores []int
	for i, msg := range c.messages {
		if msg.Snapshot == nil {
			continue
		}
		scores = append(scores, msg.Snapshot.UrgencyScore)
		if report.IrreversibleFirstSeenAtTurn < 0 && len(msg.Snapshot.IrreversibleActions) > 0 {
			report.IrreversibleFirstSeenAtTurn = i
		}
	}
	report.UrgencyTrend = scores

	if len(scores) < 3 {
		report.Reason = "insufficient urgency history"
		return report
	}

	n := len(scores)
	prior, middle, latest := scores[n-3], scores[n-2], scores[n-1]
	if !(prior < middle && middle < latest) {
		report.Reason = "urgency trend not strictly increasing"
		return report
	}
	if report.IrreversibleFirstSeenAtTurn <= 0 {
		report.Reason = "no irreversible action introduced mid-conversation"
		return report
	}

	report.Escalation = true
	report.Reason = "urgency rising with irreversible action introduced mid-conversation"
	return report
}
