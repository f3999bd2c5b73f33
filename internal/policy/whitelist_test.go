package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scamtrap/honeypot-engine/internal/signals"
)

func TestVerificationWithUrgencyIsNotLegitimate(t *testing.T) {
	s := signals.ExtractedSignals{
		Psychological: signals.PsychologicalSignals{
			VerificationRequested: true,
			UrgencyPresent:        true,
		},
	}
	assert.False(t, IsLegitimateVerification(s))
}

func TestVerificationWithIrreversibleIsNeverLegitimate(t *testing.T) {
	s := signals.ExtractedSignals{
		Irreversible: signals.IrreversibleSignals{
			RequestedActions: []signals.ActionCategory{signals.CategoryLinkInteraction},
		},
		Psychological: signals.PsychologicalSignals{
			VerificationRequested: true,
		},
	}
	assert.False(t, IsLegitimateVerification(s))
}

func TestCalmVerificationIsLegitimate(t *testing.T) {
	s := signals.ExtractedSignals{
		Psychological: signals.PsychologicalSignals{
			VerificationRequested: true,
		},
	}
	assert.True(t, IsLegitimateVerification(s))
}

func TestAuthorityWithFearIsNotLegitimate(t *testing.T) {
	s := signals.ExtractedSignals{
		Psychological: signals.PsychologicalSignals{
			AuthorityClaimed:   true,
			FearTacticsPresent: true,
		},
	}
	assert.False(t, IsLegitimateAuthority(s))
}

func TestAuthorityWithDeferentialAddressIsNotLegitimate(t *testing.T) {
	s := signals.ExtractedSignals{
		Psychological: signals.PsychologicalSignals{AuthorityClaimed: true},
		Linguistic:    signals.LinguisticSignals{RespectMarkerCount: 1},
	}
	assert.False(t, IsLegitimateAuthority(s))
}

func TestPlainAuthorityIsLegitimate(t *testing.T) {
	s := signals.ExtractedSignals{
		Psychological: signals.PsychologicalSignals{AuthorityClaimed: true},
	}
	assert.True(t, IsLegitimateAuthority(s))
}
