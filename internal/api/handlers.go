package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/scamtrap/honeypot-engine/internal/agent"
	"github.com/scamtrap/honeypot-engine/internal/pipeline"
	"github.com/scamtrap/honeypot-engine/internal/signals"
	"github.com/scamtrap/honeypot-engine/pkg/models"
)

// Handler carries the wired engine components.
type Handler struct {
	pipeline  *pipeline.Pipeline
	extractor *signals.Extractor
	log       *zap.SugaredLogger
}

func (h *Handler) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "honeypot-engine",
		"message": "API is live. Use POST /honeypot",
	})
}

// parseRequest is deliberately tolerant: a well-formed envelope is preferred,
// but a bare JSON object with a recognizable text field, or even a raw body,
// still yields a processable request.
func parseRequest(body []byte) models.HoneypotRequest {
	var req models.HoneypotRequest
	if err := json.Unmarshal(body, &req); err == nil && strings.TrimSpace(req.Message) != "" {
		return req
	}

	var loose map[string]any
	if err := json.Unmarshal(body, &loose); err == nil {
		for _, key := range []string{"message", "text", "body", "query"} {
			if v, ok := loose[key].(string); ok && strings.TrimSpace(v) != "" {
				req.Message = v
				break
			}
		}
		if v, ok := loose["conversation_id"].(string); ok {
			req.ConversationID = v
		}
		if v, ok := loose["execution_mode"].(string); ok {
			req.ExecutionMode = v
		}
		return req
	}

	// Not JSON at all: treat the raw body as the message.
	req.Message = strings.TrimSpace(string(body))
	return req
}

// handleMessage runs the full pipeline. It always answers 200; parse and
// processing failures degrade the envelope rather than the status.
func (h *Handler) handleMessage(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.log.Warnw("request body read failed", "error", err)
		body = nil
	}

	requestID := uuid.NewString()
	c.Header("X-Honeypot-Request-ID", requestID)

	req := parseRequest(body)
	ctx := pipeline.WithRequestID(c.Request.Context(), requestID)
	resp := h.pipeline.Process(ctx, req)
	c.JSON(http.StatusOK, resp)
}

// handleDebug echoes the raw request back (body, headers, method) so callers
// can see exactly what the service received, plus the extraction diagnostics
// for the parsed message. Conversation memory is never touched.
func (h *Handler) handleDebug(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		body = nil
	}

	headers := make(map[string]string, len(c.Request.Header))
	for name, values := range c.Request.Header {
		headers[name] = strings.Join(values, ", ")
	}

	req := parseRequest(body)
	c.JSON(http.StatusOK, gin.H{
		"method":  c.Request.Method,
		"headers": headers,
		"body":    string(body),
		"diagnostics": gin.H{
			"message":  req.Message,
			"signals":  h.extractor.Extract(req.Message),
			"language": agent.DetectLanguage(req.Message),
			"intent":   agent.DetectIntent(req.Message),
		},
	})
}
