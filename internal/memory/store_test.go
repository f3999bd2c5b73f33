package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scamtrap/honeypot-engine/internal/policy"
	"github.com/scamtrap/honeypot-engine/internal/signals"
)

func TestHistoryBound(t *testing.T) {
	s := NewStore(6)
	for i := 0; i < 10; i++ {
		s.Append("c1", RoleScammer, fmt.Sprintf("msg %d", i), nil)
	}

	history := s.History("c1")
	require.Len(t, history, 6)
	assert.Equal(t, "msg 4", history[0].Text)
	assert.Equal(t, "msg 9", history[5].Text)
}

func TestDecisionLogIsNotTrimmed(t *testing.T) {
	s := NewStore(6)
	for i := 0; i < 10; i++ {
		s.AppendDecision("c1", policy.Decision{TurnCount: i + 1})
	}
	assert.Len(t, s.Decisions("c1"), 10)
}

func TestUnknownConversationIsEmpty(t *testing.T) {
	s := NewStore(0)
	assert.Empty(t, s.History("nope"))
	assert.Empty(t, s.Decisions("nope"))
	assert.Equal(t, DefaultMaxHistory, s.MaxHistory())
}

func TestHistoryReturnsCopy(t *testing.T) {
	s := NewStore(6)
	s.Append("c1", RoleScammer, "original", nil)

	h := s.History("c1")
	h[0].Text = "mutated"

	assert.Equal(t, "original", s.History("c1")[0].Text)
}

func TestDetectEscalation(t *testing.T) {
	s := NewStore(6)
	s.Append("c1", RoleScammer, "hello", &signals.Snapshot{UrgencyScore: 1})
	s.Append("c1", RoleScammer, "hurry", &signals.Snapshot{UrgencyScore: 2})
	s.Append("c1", RoleScammer, "share otp now", &signals.Snapshot{
		UrgencyScore:        3,
		IrreversibleActions: []signals.ActionCategory{signals.CategoryCredentialSharing},
	})

	report := s.DetectEscalation("c1")
	assert.True(t, report.Escalation)
	assert.Equal(t, []int{1, 2, 3}, report.UrgencyTrend)
	assert.Equal(t, 2, report.IrreversibleFirstSeenAtTurn)
}

func TestNoEscalationOnFlatUrgency(t *testing.T) {
	s := NewStore(6)
	for i := 0; i < 3; i++ {
		s.Append("c1", RoleScammer, "msg", &signals.Snapshot{
			UrgencyScore:        2,
			IrreversibleActions: []signals.ActionCategory{signals.CategoryQRCodeAction},
		})
	}
	report := s.DetectEscalation("c1")
	assert.False(t, report.Escalation)
}

func TestNoEscalationWhenIrreversibleFromStart(t *testing.T) {
	s := NewStore(6)
	s.Append("c1", RoleScammer, "otp now", &signals.Snapshot{
		UrgencyScore:        1,
		IrreversibleActions: []signals.ActionCategory{signals.CategoryCredentialSharing},
	})
	s.Append("c1", RoleScammer, "hurry", &signals.Snapshot{UrgencyScore: 2})
	s.Append("c1", RoleScammer, "now", &signals.Snapshot{UrgencyScore: 3})

	report := s.DetectEscalation("c1")
	assert.False(t, report.Escalation)
}

func TestInsufficientHistory(t *testing.T) {
	s := NewStore(6)
	s.Append("c1", RoleScammer, "hello", &signals.Snapshot{UrgencyScore: 1})

	report := s.DetectEscalation("c1")
	assert.False(t, report.Escalation)
	assert.Equal(t, "insufficient urgency history", report.Reason)
}

func TestConcurrentAppends(t *testing.T) {
	s := NewStore(6)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("c%d", n%5)
			s.Append(id, RoleScammer, "msg", nil)
			s.History(id)
			s.AppendDecision(id, policy.Decision{})
		}(i)
	}
	wg.Wait()

	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("c%d", i)
		assert.LessOrEqual(t, len(s.History(id)), 6)
		assert.Len(t, s.Decisions(id), 10)
	}
}
