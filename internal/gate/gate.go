// Package gate decides whether a policy verdict may actually engage the
// honeypot. Engagement rules are operator-owned Cedar policies loaded from a
// file with hot reload, so deployments can tighten or loosen engagement
// without a rebuild.
package gate

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cedar-policy/cedar-go"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/scamtrap/honeypot-engine/internal/policy"
)

// Verdict is the gate's answer.
type Verdict string

const (
	Permit Verdict = "PERMIT"
	Deny   Verdict = "DENY"
)

// Result carries the verdict plus the policy that produced it.
type Result struct {
	Verdict  Verdict
	Reason   string
	PolicyID string
}

// defaultPolicy permits engagement unless the decision stance is BLOCK. Used
// when no policy file is configured or the configured file cannot be read.
const defaultPolicy = `permit (
    principal,
    action == Action::"engage",
    resource
) when {
    context.stance != "BLOCK"
};`

// Gate evaluates engagement policies with atomic hot-swapping.
type Gate struct {
	policySet     atomic.Pointer[cedar.PolicySet]
	policyVersion atomic.Pointer[string]
	policyPath    string

	watcher    *fsnotify.Watcher
	stopWatch  chan struct{}
	reloadLock sync.Mutex
	log        *zap.SugaredLogger
}

// New creates a Gate. policyPath may be empty, in which case the embedded
// default policy is used and hot reload is unavailable.
func New(policyPath string, log *zap.SugaredLogger) (*Gate, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	g := &Gate{
		policyPath: policyPath,
		stopWatch:  make(chan struct{}),
		log:        log,
	}
	if err := g.reload(); err != nil {
		return nil, err
	}
	return g, nil
}

// PolicyVersion returns the short hash of the active policy set.
func (g *Gate) PolicyVersion() string {
	v := g.policyVersion.Load()
	if v == nil {
		return ""
	}
	return *v
}

// StartHotReload watches the policy file and swaps the set on change.
func (g *Gate) StartHotReload() error {
	if g.policyPath == "" {
		return fmt.Errorf("gate: no policy file to watch")
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("gate: create watcher: %w", err)
	}
	g.watcher = watcher

	if err := watcher.Add(g.policyPath); err != nil {
		watcher.Close()
		return fmt.Errorf("gate: watch policy file: %w", err)
	}

	go g.watchLoop()
	g.log.Infow("engagement policy hot-reload enabled", "path", g.policyPath)
	return nil
}

// StopHotReload stops the file watcher.
func (g *Gate) StopHotReload() {
	if g.watcher != nil {
		close(g.stopWatch)
		g.watcher.Close()
	}
}

func (g *Gate) watchLoop() {
	var debounceTimer *time.Timer
	const debounce = 500 * time.Millisecond

	for {
		select {
		case event, ok := <-g.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(debounce, func() {
					g.reloadLock.Lock()
					defer g.reloadLock.Unlock()

					old := g.PolicyVersion()
					if err := g.reload(); err != nil {
						g.log.Errorw("engagement policy reload failed", "error", err)
					} else {
						g.log.Infow("engagement policy reloaded",
							"old_version", old, "new_version", g.PolicyVersion())
					}
				})
			}
		case err, ok := <-g.watcher.Errors:
			if !ok {
				return
			}
			g.log.Errorw("engagement policy watcher error", "error", err)
		case <-g.stopWatch:
			return
		}
	}
}

func (g *Gate) reload() error {
	source := defaultPolicy
	if g.policyPath != "" {
		data, err := os.ReadFile(g.policyPath)
		if err != nil {
			return fmt.Errorf("gate: read policy file: %w", err)
		}
		source = string(data)
	}

	hash := sha256.Sum256([]byte(source))
	version := hex.EncodeToString(hash[:])[:12]

	ps := cedar.NewPolicySet()
	chunks := strings.Split(source, ";")
	for i, chunk := range chunks {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		var p cedar.Policy
		if err := p.UnmarshalCedar([]byte(chunk + ";")); err != nil {
			return fmt.Errorf("gate: parse policy part %d: %w", i, err)
		}
		ps.Add(cedar.PolicyID(fmt.Sprintf("engagement%d", i)), &p)
	}

	g.policySet.Store(ps)
	g.policyVersion.Store(&version)
	return nil
}

// Evaluate asks the policy set whether this decision may engage. Cedar is
// default-deny, so an empty or overly strict policy file suppresses
// engagement rather than opening it up.
func (g *Gate) Evaluate(d policy.Decision) Result {
	ps := g.policySet.Load()
	if ps == nil {
		return Result{Verdict: Deny, Reason: "engagement gate not initialized"}
	}

	resource := cedar.NewEntityUID("Honeypot", "default")
	entities := cedar.EntityMap{
		resource: cedar.Entity{UID: resource},
	}

	req := cedar.Request{
		Principal: cedar.NewEntityUID("Operator", "default"),
		Action:    cedar.NewEntityUID("Action", "engage"),
		Resource:  resource,
		Context: cedar.NewRecord(cedar.RecordMap{
			"risk_band":     cedar.String(d.RiskBand.String()),
			"stance":        cedar.String(string(d.EngagementStance)),
			"scam_detected": cedar.Boolean(d.ScamDetected),
			"confidence":    cedar.String(string(d.Confidence)),
			"turn_count":    cedar.Long(int64(d.TurnCount)),
		}),
	}

	ok, diagnostics := cedar.Authorize(ps, entities, req)

	var policyID string
	if len(diagnostics.Reasons) > 0 {
		policyID = string(diagnostics.Reasons[0].PolicyID)
	}

	if ok {
		return Result{Verdict: Permit, Reason: "engagement permitted by policy", PolicyID: policyID}
	}
	return Result{Verdict: Deny, Reason: "engagement denied by policy", PolicyID: policyID}
}
