// Package agent generates the honeypot's confused-victim replies. The first
// two turns come from a scripted multilingual table; afterwards the engine
// hands the conversation to an LLM with a language-matched persona prompt.
package agent

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/scamtrap/honeypot-engine/internal/memory"
	"github.com/scamtrap/honeypot-engine/internal/metrics"
	"github.com/scamtrap/honeypot-engine/internal/provider"
)

// scriptedTurns is how many agent replies are drawn from the manual table
// before switching to the LLM.
const scriptedTurns = 2

// historyWindow bounds how much conversation is forwarded to the LLM.
const historyWindow = 6

// forbiddenPhrases would break the persona if the model self-identifies.
var forbiddenPhrases = []string{
	"i am an ai", "i'm an ai", "i am a bot", "i'm a bot",
	"as an ai", "as a language model", "मैं एक ai हूं",
}

var systemPrompts = map[Language]string{
	LanguageEnglish: "You are a 60-year-old Indian person who gets confused by phone calls. " +
		"Reply ONLY in English with a confused, hesitant tone. " +
		"Use phrases like 'excuse me', 'sorry', 'I don't understand', 'what do you mean'. " +
		"Keep replies SHORT (under 15 words), casual, and slightly confused. " +
		"Ask innocent questions showing you don't fully understand. " +
		"NEVER mention: scam, fraud, police, AI, bot, suspicious, fake. " +
		"Sound like a real confused elderly person.",
	LanguageHinglish: "You are a 60-year-old Indian person who gets confused by phone calls. " +
		"Reply in HINGLISH (Hindi-English mix) with a confused tone. " +
		"Use phrases like 'arre beta', 'haan ji', 'accha', 'samajh nahi aaya', 'kya matlab'. " +
		"Keep replies SHORT (under 15 words), casual, and slightly confused. " +
		"Mix Hindi words naturally with English. Ask innocent questions. " +
		"NEVER mention: scam, fraud, police, AI, bot, suspicious, fake, dhoka. " +
		"Sound like a real confused Indian elder speaking casually.",
	LanguageHindi: "आप एक 60 वर्षीय भारतीय व्यक्ति हैं जो फोन कॉल से भ्रमित हो जाते हैं। " +
		"केवल हिंदी में भ्रमित स्वर में जवाब दें। " +
		"'अरे बेटा', 'हां जी', 'अच्छा', 'समझ नहीं आया', 'क्या मतलब' जैसे शब्द इस्तेमाल करें। " +
		"जवाब छोटे रखें (15 शब्दों से कम), सहज और थोड़े भ्रमित। " +
		"मासूम सवाल पूछें। कभी न कहें: घोटाला, धोखा, पुलिस, AI, बॉट, संदिग्ध। " +
		"असली भ्रमित बुजुर्ग की तरह बोलें।",
}

// ClientFactory builds the LLM client on first use. Returning nil means the
// LLM branch is permanently unavailable (missing key) and the engine always
// falls back to canned lines.
type ClientFactory func() provider.Client

// Engine selects and generates honeypot replies. GenerateReply never returns
// an error; every internal failure degrades to a canned line.
type Engine struct {
	model       string
	temperature float32
	maxTokens   int
	topP        float64
	callTimeout time.Duration

	factory  ClientFactory
	initOnce sync.Once
	client   provider.Client

	log *zap.SugaredLogger
}

// Config tunes the LLM branch of the engine.
type Config struct {
	Model       string
	Temperature float32
	MaxTokens   int
	TopP        float64
	CallTimeout time.Duration
}

// NewEngine builds a reply engine. factory may be nil to disable the LLM
// branch outright.
func NewEngine(cfg Config, factory ClientFactory, log *zap.SugaredLogger) *Engine {
	if cfg.Model == "" {
		cfg.Model = "llama-3.1-8b-instant"
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.8
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 60
	}
	if cfg.TopP == 0 {
		cfg.TopP = 0.9
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = 15 * time.Second
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Engine{
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		topP:        cfg.TopP,
		callTimeout: cfg.CallTimeout,
		factory:     factory,
		log:         log,
	}
}

// llmClient lazily initializes the shared client exactly once.
func (e *Engine) llmClient() provider.Client {
	e.initOnce.Do(func() {
		if e.factory != nil {
			e.client = e.factory()
		}
		if e.client == nil {
			e.log.Warnw("llm branch unavailable, scripted fallbacks only")
		}
	})
	return e.client
}

// GenerateReply produces the agent's next line from conversation history.
func (e *Engine) GenerateReply(ctx context.Context, history []memory.Message) string {
	if len(history) == 0 {
		return "Hello?"
	}

	var lastScammer string
	agentCount := 0
	for _, m := range history {
		if m.Role == memory.RoleAgent {
			agentCount++
		}
	}
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == memory.RoleScammer {
			lastScammer = strings.TrimSpace(history[i].Text)
			break
		}
	}
	if lastScammer == "" {
		return "Yes, I'm listening?"
	}

	lang := DetectLanguage(lastScammer)
	intent := DetectIntent(lastScammer)

	if agentCount < scriptedTurns {
		reply := scriptedReply(intent, lang, agentCount)
		e.log.Debugw("scripted reply selected",
			"intent", intent, "language", lang, "agent_count", agentCount)
		metrics.RecordReplyStrategy("scripted")
		return reply
	}
	return e.llmReply(ctx, history, lang)
}

func (e *Engine) llmReply(ctx context.Context, history []memory.Message, lang Language) string {
	client := e.llmClient()
	if client == nil {
		metrics.RecordReplyStrategy("fallback")
		return fallbackReply(lang)
	}

	prompt, ok := systemPrompts[lang]
	if !ok {
		prompt = systemPrompts[LanguageEnglish]
	}
	messages := []provider.Message{{Role: "system", Content: prompt}}

	window := history
	if len(window) > historyWindow {
		window = window[len(window)-historyWindow:]
	}
	for _, m := range window {
		content := strings.TrimSpace(m.Text)
		if content == "" {
			continue
		}
		role := "user"
		if m.Role == memory.RoleAgent {
			role = "assistant"
		}
		messages = append(messages, provider.Message{Role: role, Content: content})
	}

	callCtx, cancel := context.WithTimeout(ctx, e.callTimeout)
	defer cancel()

	reply, err := client.Complete(callCtx, messages, provider.Options{
		Model:       e.model,
		Temperature: e.temperature,
		MaxTokens:   e.maxTokens,
		TopP:        e.topP,
	})
	if err != nil {
		e.log.Warnw("llm completion failed", "error", err)
		metrics.RecordReplyStrategy("fallback")
		return fallbackReply(lang)
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		metrics.RecordReplyStrategy("fallback")
		return fallbackReply(lang)
	}
	lower := strings.ToLower(reply)
	for _, phrase := range forbiddenPhrases {
		if strings.Contains(lower, phrase) {
			e.log.Warnw("llm reply leaked self-identification, using fallback")
			metrics.RecordReplyStrategy("fallback")
			return fallbackReply(lang)
		}
	}
	metrics.RecordReplyStrategy("llm")
	return reply
}
