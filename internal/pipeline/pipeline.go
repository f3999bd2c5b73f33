// Package pipeline orchestrates one message through extraction, policy,
// engagement gating, and reply generation. Every step is recoverable: a
// failing stage degrades the envelope instead of failing the request.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/scamtrap/honeypot-engine/internal/agent"
	"github.com/scamtrap/honeypot-engine/internal/gate"
	"github.com/scamtrap/honeypot-engine/internal/intel"
	"github.com/scamtrap/honeypot-engine/internal/memory"
	"github.com/scamtrap/honeypot-engine/internal/metrics"
	"github.com/scamtrap/honeypot-engine/internal/policy"
	"github.com/scamtrap/honeypot-engine/internal/signals"
	"github.com/scamtrap/honeypot-engine/internal/validator"
	"github.com/scamtrap/honeypot-engine/pkg/models"
)

// Pipeline wires the engine components behind a single Process call.
type Pipeline struct {
	extractor *signals.Extractor
	engine    *policy.Engine
	store     *memory.Store
	agent     *agent.Engine
	validator *validator.Validator
	gate      *gate.Gate
	log       *zap.SugaredLogger
}

// New assembles a pipeline. validator and g may be nil; the corresponding
// stages are skipped.
func New(
	extractor *signals.Extractor,
	engine *policy.Engine,
	store *memory.Store,
	agentEngine *agent.Engine,
	v *validator.Validator,
	g *gate.Gate,
	log *zap.SugaredLogger,
) *Pipeline {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Pipeline{
		extractor: extractor,
		engine:    engine,
		store:     store,
		agent:     agentEngine,
		validator: v,
		gate:      g,
		log:       log,
	}
}

type ctxKey int

const requestIDKey ctxKey = 0

// WithRequestID attaches a transport-assigned correlation ID to the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}

// Process runs one scammer message through the full pipeline and always
// returns a well-formed response envelope.
func (p *Pipeline) Process(ctx context.Context, req models.HoneypotRequest) models.HoneypotResponse {
	start := time.Now()
	req.Normalize()
	requestID := requestIDFrom(ctx)
	metrics.RequestsTotal.Inc()

	log := p.log.With("request_id", requestID, "conversation_id", req.ConversationID)

	extracted, extractOK := p.safeExtract(req.Message, log)
	snap := extracted.Snapshot()
	p.store.Append(req.ConversationID, memory.RoleScammer, req.Message, &snap)
	historyLen := len(p.store.History(req.ConversationID))

	artifacts := intel.Extract(req.Message)

	var report validator.Report
	if p.validator != nil {
		report = p.validator.Validate(ctx, validator.ExtractClaim(req.Message))
	}

	prior := p.store.Decisions(req.ConversationID)
	decision, policyOK := p.safeEvaluate(extracted, prior, log)
	if policyOK {
		p.store.AppendDecision(req.ConversationID, decision)
		metrics.RecordDecision(decision.RiskBand.String())
		if decision.ScamDetected {
			metrics.ScamDetected.Inc()
		}
	}

	escalation := p.store.DetectEscalation(req.ConversationID)
	if escalation.Escalation {
		metrics.Escalations.Inc()
		log.Infow("conversation escalating", "reason", escalation.Reason)
	}

	engageAllowed := true
	terminationReason := ""
	if p.gate != nil && policyOK {
		result := p.gate.Evaluate(decision)
		metrics.RecordGateVerdict(string(result.Verdict))
		if result.Verdict == gate.Deny {
			engageAllowed = false
			terminationReason = "engagement_denied_by_policy"
			log.Infow("engagement denied", "policy_id", result.PolicyID, "reason", result.Reason)
		}
	}

	var reply *string
	switch {
	case req.ExecutionMode == "shadow":
		metrics.RecordReplyStrategy("suppressed")
	case !engageAllowed:
		metrics.RecordReplyStrategy("suppressed")
	default:
		history := p.store.History(req.ConversationID)
		text := p.safeReply(ctx, history, log)
		p.store.Append(req.ConversationID, memory.RoleAgent, text, nil)
		reply = &text
	}

	resp := p.buildResponse(req, decision, policyOK, extractOK, extracted, artifacts, report, reply, historyLen)
	resp.TerminationReason = terminationReason

	metrics.LatencyHistogram.Observe(time.Since(start).Seconds())
	log.Infow("message processed",
		"scam_detected", resp.ScamDetected,
		"risk_band", resp.RiskScore,
		"turn", resp.EngagementMetrics.Turn,
		"latency_ms", time.Since(start).Milliseconds())
	return resp
}

// safeExtract shields the pipeline from extractor panics; a failure reads as
// a message with no signals.
func (p *Pipeline) safeExtract(message string, log *zap.SugaredLogger) (out signals.ExtractedSignals, ok bool) {
	ok = true
	defer func() {
		if r := recover(); r != nil {
			log.Errorw("signal extraction panicked", "panic", r)
			out = signals.ExtractedSignals{}
			ok = false
		}
	}()
	out = p.extractor.Extract(message)
	return out, ok
}

// safeEvaluate shields the pipeline from policy panics; a failure yields a
// conservative placeholder decision.
func (p *Pipeline) safeEvaluate(s signals.ExtractedSignals, prior []policy.Decision, log *zap.SugaredLogger) (d policy.Decision, ok bool) {
	ok = true
	defer func() {
		if r := recover(); r != nil {
			log.Errorw("policy evaluation panicked", "panic", r)
			d = policy.Decision{
				Confidence:       policy.ConfidenceLow,
				Reasons:          []string{fmt.Sprintf("Policy error: %v", r)},
				Engage:           true,
				EngagementStance: policy.StanceDefensive,
				TurnCount:        len(prior) + 1,
			}
			ok = false
		}
	}()
	d = p.engine.EvaluateConversation(s, prior)
	return d, ok
}

// safeReply shields the pipeline from reply-engine panics; a failure reads as
// a generic confused line.
func (p *Pipeline) safeReply(ctx context.Context, history []memory.Message, log *zap.SugaredLogger) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorw("reply generation panicked", "panic", r)
			reply = "Sorry, can you repeat that?"
		}
	}()
	if p.agent == nil {
		return "Sorry, can you repeat that?"
	}
	return p.agent.GenerateReply(ctx, history)
}

func (p *Pipeline) buildResponse(
	req models.HoneypotRequest,
	decision policy.Decision,
	policyOK, extractOK bool,
	extracted signals.ExtractedSignals,
	artifacts intel.Intelligence,
	report validator.Report,
	reply *string,
	historyLen int,
) models.HoneypotResponse {
	riskBand := decision.RiskBand.String()
	if !policyOK {
		riskBand = "UNKNOWN"
	}

	reasons := decision.Reasons
	if reasons == nil {
		reasons = []string{}
	}
	if !extractOK {
		reasons = append([]string{"signal extraction degraded"}, reasons...)
	}

	explanation := models.Explanation{
		RiskBand:    riskBand,
		Reasons:     reasons,
		HardSignals: marshalRaw(extracted.Hard()),
		SoftSignals: marshalRaw(extracted.Soft()),
	}
	if p.validator != nil {
		explanation.Validation = marshalRaw(report)
	}

	return models.HoneypotResponse{
		ScamDetected:       decision.ScamDetected,
		RiskScore:          riskBand,
		DecisionConfidence: string(decision.Confidence),
		AgentReply:         reply,
		ExtractedIntelligence: models.ExtractedIntelligence{
			UPIIDs: artifacts.UPIIDs,
			URLs:   artifacts.URLs,
		},
		// Turn echoes the caller's counter; history_length is the retained
		// window as of this message, before any agent reply is appended.
		EngagementMetrics: models.EngagementMetrics{
			Turn:          int(req.Turn),
			HistoryLength: historyLen,
		},
		Explanation: explanation,
	}
}

// marshalRaw encodes v for the explanation block; marshal failures render as
// JSON null rather than dropping the response.
func marshalRaw(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage("null")
	}
	return data
}
