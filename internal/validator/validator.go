// Package validator extracts claimed authorities from message text and checks
// them against a static registry. The result is observational: it lands in
// the response explanation but never drives the scam verdict.
package validator

import (
	"context"
	"regexp"
	"strings"

	"github.com/scamtrap/honeypot-engine/internal/provider"
)

// Report is the validation block of the response explanation.
type Report struct {
	AuthorityClaimed        bool   `json:"authority_claimed"`
	ClaimedEntity           string `json:"claimed_entity,omitempty"`
	AuthorityExists         bool   `json:"authority_exists"`
	AuthorityType           string `json:"authority_type"`
	ImpersonationLikelihood string `json:"impersonation_likelihood"`
	Notes                   string `json:"notes"`
}

// claimPatterns are deliberately conservative: only well-known entity names
// are extracted.
var claimPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(hdfc|icici|sbi|axis|kotak)\s+bank`),
	regexp.MustCompile(`\b(fedex|blue\s?dart|dhl)\b`),
	regexp.MustCompile(`\b(police|cyber\s?crime|ncb)\b`),
	regexp.MustCompile(`\b(rbi|income\s?tax|customs)\b`),
}

// knownEntities is the static registry with a coarse type per entity.
var knownEntities = map[string]string{
	"hdfc":       "bank",
	"icici":      "bank",
	"sbi":        "bank",
	"axis":       "bank",
	"kotak":      "bank",
	"fedex":      "courier",
	"bluedart":   "courier",
	"dhl":        "courier",
	"rbi":        "regulator",
	"incometax":  "government",
	"customs":    "government",
	"police":     "law_enforcement",
	"cybercrime": "law_enforcement",
	"ncb":        "law_enforcement",
}

// Validator checks authority claims. An optional LLM client provides an
// advisory impersonation-likelihood hint; when absent the hint is "unknown".
type Validator struct {
	llm provider.Client
}

// New creates a Validator. llm may be nil.
func New(llm provider.Client) *Validator {
	return &Validator{llm: llm}
}

// ExtractClaim returns the first claimed authority found in the message, or
// the empty string.
func ExtractClaim(message string) string {
	lower := strings.ToLower(message)
	for _, p := range claimPatterns {
		if m := p.FindStringSubmatch(lower); m != nil {
			return m[1]
		}
	}
	return ""
}

// Validate checks a claimed entity against the static registry and, when an
// LLM client is available, asks for an advisory impersonation hint.
func (v *Validator) Validate(ctx context.Context, claimed string) Report {
	if claimed == "" {
		return Report{
			AuthorityType:           "none",
			ImpersonationLikelihood: "unknown",
			Notes:                   "No authority claim detected",
		}
	}

	normalized := strings.ReplaceAll(strings.ToLower(claimed), " ", "")
	report := Report{
		AuthorityClaimed:        true,
		ClaimedEntity:           claimed,
		ImpersonationLikelihood: "unknown",
	}

	entityType, exists := knownEntities[normalized]
	if exists {
		report.AuthorityExists = true
		report.AuthorityType = entityType
		report.Notes = claimed + " exists, but message pattern may be impersonation"
	} else {
		report.AuthorityType = "unrecognized"
		report.Notes = claimed + " not recognized as legitimate authority"
	}

	report.ImpersonationLikelihood = v.impersonationHint(ctx, claimed, exists)
	return report
}

// impersonationHint asks the LLM whether messages naming this entity over an
// unsolicited channel are typically impersonation. Advisory only; any failure
// degrades to "unknown".
func (v *Validator) impersonationHint(ctx context.Context, claimed string, exists bool) string {
	if v.llm == nil {
		return "unknown"
	}
	question := "An unsolicited message claims to be from \"" + claimed + "\". " +
		"Answer with exactly one word, low, medium, or high: how likely is this to be impersonation?"
	reply, err := v.llm.Complete(ctx, []provider.Message{
		{Role: "user", Content: question},
	}, provider.Options{MaxTokens: 4})
	if err != nil {
		return "unknown"
	}
	switch strings.ToLower(strings.TrimSpace(strings.Trim(reply, "."))) {
	case "low":
		return "low"
	case "medium":
		return "medium"
	case "high":
		return "high"
	}
	if !exists {
		return "high"
	}
	return "unknown"
}
