package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/scamtrap/honeypot-engine/internal/agent"
	"github.com/scamtrap/honeypot-engine/internal/api"
	"github.com/scamtrap/honeypot-engine/internal/config"
	"github.com/scamtrap/honeypot-engine/internal/gate"
	"github.com/scamtrap/honeypot-engine/internal/memory"
	"github.com/scamtrap/honeypot-engine/internal/pipeline"
	"github.com/scamtrap/honeypot-engine/internal/policy"
	"github.com/scamtrap/honeypot-engine/internal/provider"
	"github.com/scamtrap/honeypot-engine/internal/signals"
	"github.com/scamtrap/honeypot-engine/internal/validator"
)

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zcfg := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}

func main() {
	// Load environment variables
	godotenv.Load()

	cfg := config.Load()

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Sugar()
	log.Infow("configuration loaded")

	// LLM client factory: nil when no API key, which keeps the engine on
	// scripted fallbacks instead of failing requests.
	factory := func() provider.Client {
		if cfg.LLM.APIKey == "" {
			return nil
		}
		return provider.NewGroqClient(cfg.LLM.BaseURL, cfg.LLM.APIKey, cfg.LLM.Timeout)
	}

	agentEngine := agent.NewEngine(agent.Config{
		Model:       cfg.LLM.Model,
		Temperature: float32(cfg.LLM.Temperature),
		MaxTokens:   cfg.LLM.MaxTokens,
		TopP:        cfg.LLM.TopP,
		CallTimeout: cfg.LLM.Timeout,
	}, factory, log)

	var v *validator.Validator
	if cfg.LLM.APIKey != "" {
		v = validator.New(provider.NewGroqClient(cfg.LLM.BaseURL, cfg.LLM.APIKey, cfg.LLM.Timeout))
	} else {
		v = validator.New(nil)
	}

	engagementGate, err := gate.New(cfg.Gate.PolicyPath, log)
	if err != nil {
		log.Warnw("engagement gate policy load failed, using embedded default",
			"path", cfg.Gate.PolicyPath, "error", err)
		engagementGate, err = gate.New("", log)
		if err != nil {
			log.Fatalw("engagement gate init failed", "error", err)
		}
	} else if cfg.Gate.WatchChanges {
		if err := engagementGate.StartHotReload(); err != nil {
			log.Warnw("engagement gate hot reload unavailable", "error", err)
		}
		defer engagementGate.StopHotReload()
	}
	log.Infow("engagement gate ready", "policy_version", engagementGate.PolicyVersion())

	extractor := signals.NewExtractor()
	store := memory.NewStore(cfg.Memory.MaxHistory)
	p := pipeline.New(extractor, policy.NewEngine(), store, agentEngine, v, engagementGate, log)

	router := api.SetupRouter(cfg, p, extractor, log)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	log.Infow("honeypot engine starting", "addr", addr, "model", cfg.LLM.Model)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalw("server failed", "error", err)
	}
}
