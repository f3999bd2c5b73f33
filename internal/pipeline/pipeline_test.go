package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scamtrap/honeypot-engine/internal/agent"
	"github.com/scamtrap/honeypot-engine/internal/gate"
	"github.com/scamtrap/honeypot-engine/internal/memory"
	"github.com/scamtrap/honeypot-engine/internal/policy"
	"github.com/scamtrap/honeypot-engine/internal/signals"
	"github.com/scamtrap/honeypot-engine/internal/validator"
	"github.com/scamtrap/honeypot-engine/pkg/models"
)

func newTestPipeline(t *testing.T, g *gate.Gate) *Pipeline {
	t.Helper()
	agentEngine := agent.NewEngine(agent.Config{}, nil, nil)
	return New(
		signals.NewExtractor(),
		policy.NewEngine(),
		memory.NewStore(6),
		agentEngine,
		validator.New(nil),
		g,
		nil,
	)
}

func defaultGate(t *testing.T) *gate.Gate {
	t.Helper()
	g, err := gate.New("", nil)
	require.NoError(t, err)
	return g
}

func process(p *Pipeline, conversationID, message string) models.HoneypotResponse {
	return p.Process(context.Background(), models.HoneypotRequest{
		ConversationID: conversationID,
		Message:        message,
	})
}

func processTurn(p *Pipeline, conversationID string, turn int, message string) models.HoneypotResponse {
	return p.Process(context.Background(), models.HoneypotRequest{
		ConversationID: conversationID,
		Turn:           models.FlexInt(turn),
		Message:        message,
	})
}

func TestFirstContactAuthorityClaim(t *testing.T) {
	p := newTestPipeline(t, defaultGate(t))

	resp := process(p, "c1", "Hello sir, I am calling from State Bank")

	assert.False(t, resp.ScamDetected)
	assert.Equal(t, "MEDIUM", resp.RiskScore)
	require.NotNil(t, resp.AgentReply)
	assert.Equal(t, "Hello, who is this?", *resp.AgentReply)
	assert.Equal(t, 1, resp.EngagementMetrics.Turn)
}

func TestCredentialDemandEscalatesToCritical(t *testing.T) {
	p := newTestPipeline(t, defaultGate(t))

	processTurn(p, "c1", 1, "Hello sir, I am calling from State Bank")
	resp := processTurn(p, "c1", 2, "Your account will be blocked, share your OTP immediately")

	assert.True(t, resp.ScamDetected)
	assert.Equal(t, "CRITICAL", resp.RiskScore)
	assert.Equal(t, "definitive", resp.DecisionConfidence)
	require.NotNil(t, resp.AgentReply)
	assert.Equal(t, "Which code are you referring to?", *resp.AgentReply)
	assert.Equal(t, 2, resp.EngagementMetrics.Turn)
}

func TestRiskFloorAndStickyScam(t *testing.T) {
	p := newTestPipeline(t, defaultGate(t))

	process(p, "c1", "share your otp right now")
	resp := process(p, "c1", "ok, take your time, no rush at all")

	assert.True(t, resp.ScamDetected, "scam verdict must persist")
	assert.Equal(t, "CRITICAL", resp.RiskScore, "risk must not de-escalate")
}

func TestShadowModeSuppressesReply(t *testing.T) {
	p := newTestPipeline(t, defaultGate(t))

	resp := p.Process(context.Background(), models.HoneypotRequest{
		ConversationID: "c1",
		Message:        "share your otp right now",
		ExecutionMode:  "shadow",
	})

	assert.True(t, resp.ScamDetected)
	assert.Nil(t, resp.AgentReply)
	assert.Empty(t, resp.TerminationReason)
}

func TestGateDenySuppressesReply(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gate.cedar")
	restrictive := `permit (
    principal,
    action == Action::"engage",
    resource
) when {
    context.risk_band == "BENIGN"
};`
	require.NoError(t, os.WriteFile(path, []byte(restrictive), 0o644))
	g, err := gate.New(path, nil)
	require.NoError(t, err)

	p := newTestPipeline(t, g)
	resp := process(p, "c1", "share your otp right now")

	assert.True(t, resp.ScamDetected)
	assert.Nil(t, resp.AgentReply)
	assert.Equal(t, "engagement_denied_by_policy", resp.TerminationReason)
}

func TestClassicTrinityOpener(t *testing.T) {
	p := newTestPipeline(t, defaultGate(t))

	resp := process(p, "B", "Namaste ji, main RBI se urgent call kar raha hoon, account block ho jayega")

	assert.True(t, resp.ScamDetected)
	assert.Equal(t, "HIGH", resp.RiskScore)
}

func TestCalmVerificationIsWhitelisted(t *testing.T) {
	p := newTestPipeline(t, defaultGate(t))

	resp := process(p, "C", "Please verify your email at your convenience")

	assert.False(t, resp.ScamDetected)
	assert.Equal(t, "LOW", resp.RiskScore)
}

func TestQRCodeRequestIsHigh(t *testing.T) {
	p := newTestPipeline(t, defaultGate(t))

	resp := process(p, "D", "Scan this QR to receive refund")

	assert.True(t, resp.ScamDetected)
	assert.Equal(t, "HIGH", resp.RiskScore)
	assert.Empty(t, resp.ExtractedIntelligence.UPIIDs)
	assert.Empty(t, resp.ExtractedIntelligence.URLs)
}

func TestDevanagariOnlyMessage(t *testing.T) {
	p := newTestPipeline(t, defaultGate(t))

	resp := process(p, "c1", "नमस्ते, आपका खाता बंद हो जाएगा")

	assert.False(t, resp.ScamDetected)
	require.NotNil(t, resp.AgentReply)
	assert.Equal(t, "नमस्ते, कौन बोल रहा है?", *resp.AgentReply)
}

func TestEmptyMessage(t *testing.T) {
	p := newTestPipeline(t, defaultGate(t))

	resp := process(p, "c1", "")

	assert.False(t, resp.ScamDetected)
	assert.Equal(t, "BENIGN", resp.RiskScore)
	require.NotNil(t, resp.AgentReply)
	assert.Equal(t, "Yes, I'm listening?", *resp.AgentReply)
}

func TestHistoryStaysBounded(t *testing.T) {
	p := newTestPipeline(t, defaultGate(t))

	for i := 0; i < 10; i++ {
		resp := process(p, "c1", "hello there")
		assert.LessOrEqual(t, resp.EngagementMetrics.HistoryLength, 6)
	}
}

func TestTurnEchoSurvivesEviction(t *testing.T) {
	p := newTestPipeline(t, defaultGate(t))

	var last models.HoneypotResponse
	for i := 0; i < 8; i++ {
		last = processTurn(p, "c1", i+1, "hello there")
	}
	assert.Equal(t, 8, last.EngagementMetrics.Turn)
	assert.LessOrEqual(t, last.EngagementMetrics.HistoryLength, 6)
}

func TestEngagementMetricsEchoClientTurn(t *testing.T) {
	p := newTestPipeline(t, defaultGate(t))

	resp := processTurn(p, "c1", 7, "hello there")
	assert.Equal(t, 7, resp.EngagementMetrics.Turn)

	resp = process(p, "c2", "hello there")
	assert.Equal(t, 1, resp.EngagementMetrics.Turn, "absent turn defaults to 1")
}

func TestHistoryLengthExcludesPendingReply(t *testing.T) {
	p := newTestPipeline(t, defaultGate(t))

	resp := process(p, "c1", "hello there")
	assert.Equal(t, 1, resp.EngagementMetrics.HistoryLength)

	resp = process(p, "c1", "are you there")
	// Scammer turn 2 plus the first agent reply; the pending reply for this
	// turn is not counted.
	assert.Equal(t, 3, resp.EngagementMetrics.HistoryLength)
	require.NotNil(t, resp.AgentReply)
}

func TestConversationIsolation(t *testing.T) {
	p := newTestPipeline(t, defaultGate(t))

	process(p, "scam", "share your otp right now")
	clean := process(p, "clean", "lunch at noon works for me")

	assert.False(t, clean.ScamDetected)
	assert.Equal(t, "BENIGN", clean.RiskScore)
}

func TestIntelligenceInEnvelope(t *testing.T) {
	p := newTestPipeline(t, defaultGate(t))

	resp := process(p, "c1", "send money to fraudster99@ybl via https://evil.example/pay")

	assert.Equal(t, []string{"fraudster99@ybl"}, resp.ExtractedIntelligence.UPIIDs)
	assert.Equal(t, []string{"https://evil.example/pay"}, resp.ExtractedIntelligence.URLs)
}

func TestExplanationCarriesSignals(t *testing.T) {
	p := newTestPipeline(t, defaultGate(t))

	resp := process(p, "c1", "share your otp right now")

	assert.Equal(t, "CRITICAL", resp.Explanation.RiskBand)
	assert.NotEmpty(t, resp.Explanation.Reasons)
	assert.NotEmpty(t, resp.Explanation.HardSignals)
	assert.NotEmpty(t, resp.Explanation.SoftSignals)
	assert.NotEmpty(t, resp.Explanation.Validation)
}

func TestDefaultConversationID(t *testing.T) {
	p := newTestPipeline(t, defaultGate(t))

	resp := p.Process(context.Background(), models.HoneypotRequest{Message: "share your otp right now"})
	assert.True(t, resp.ScamDetected)

	// A second omitted conversation_id lands in the same "default"
	// conversation, so the scam verdict sticks.
	resp = p.Process(context.Background(), models.HoneypotRequest{Message: "hello there"})
	assert.True(t, resp.ScamDetected)
	assert.Equal(t, "CRITICAL", resp.RiskScore)
}
