package signals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractIrreversibleHighRisk(t *testing.T) {
	e := NewExtractor()
	out := e.Extract("Share your OTP immediately or account blocked")

	require.True(t, out.Irreversible.HasAny())
	assert.True(t, out.Irreversible.HasHighRisk())
	assert.True(t, out.Irreversible.Has(CategoryCredentialSharing))
	assert.Contains(t, out.Irreversible.ExplicitPhrases, "otp")

	assert.True(t, out.Psychological.UrgencyPresent)
	assert.True(t, out.Psychological.FearTacticsPresent)
	assert.True(t, out.Contextual.InformationExtractionAttempt)
}

func TestExtractWholeWordMatching(t *testing.T) {
	e := NewExtractor()

	out := e.Extract("the wheel kept spinning around")
	assert.False(t, out.Irreversible.HasAny(), "pin inside spinning must not match")

	out = e.Extract("I bought a new laptop yesterday")
	assert.False(t, out.Irreversible.HasAny(), "otp inside laptop must not match")
}

func TestExtractBenign(t *testing.T) {
	e := NewExtractor()
	out := e.Extract("Can we meet tomorrow for lunch?")

	assert.False(t, out.Irreversible.HasAny())
	assert.False(t, out.Psychological.UrgencyPresent)
	assert.False(t, out.Psychological.AuthorityClaimed)
	assert.False(t, out.Contextual.MultipleUrgencyLayers)
}

func TestUrgencyIntensityTiers(t *testing.T) {
	e := NewExtractor()

	cases := []struct {
		text string
		want UrgencyIntensity
	}{
		{"please respond, this is urgent", UrgencyLow},
		{"urgent, do it immediately", UrgencyMedium},
		{"urgent abhi jaldi", UrgencyHigh},
		{"nothing pressing here", UrgencyNone},
	}
	for _, tc := range cases {
		out := e.Extract(tc.text)
		assert.Equal(t, tc.want, out.Psychological.UrgencyIntensity, tc.text)
	}
}

func TestLanguageMixing(t *testing.T) {
	e := NewExtractor()

	out := e.Extract("aap transfer complete karo")
	assert.True(t, out.Linguistic.LanguageMixing)
	assert.GreaterOrEqual(t, out.Linguistic.HindiWordCount, 2)

	out = e.Extract("please complete the transfer")
	assert.False(t, out.Linguistic.LanguageMixing)
}

func TestExcessiveRespect(t *testing.T) {
	e := NewExtractor()

	out := e.Extract("hello sir madam please listen")
	assert.True(t, out.Linguistic.ExcessiveRespect)
	assert.Equal(t, 2, out.Linguistic.RespectMarkerCount)

	out = e.Extract("hello sir please listen")
	assert.False(t, out.Linguistic.ExcessiveRespect)
	assert.Equal(t, 1, out.Linguistic.RespectMarkerCount)
}

func TestCombinedTactics(t *testing.T) {
	e := NewExtractor()
	out := e.Extract("bank officer here, urgent, your card is blocked")

	require.True(t, out.Contextual.MultipleUrgencyLayers)
	assert.ElementsMatch(t, []string{"urgency", "authority", "fear"}, out.Contextual.CombinedTactics)
	assert.True(t, out.Contextual.EscalationDetected)
}

func TestVerificationEscalation(t *testing.T) {
	e := NewExtractor()
	out := e.Extract("please verify with your bank")

	assert.True(t, out.Contextual.EscalationDetected)
	assert.False(t, out.Contextual.MultipleUrgencyLayers)
}

func TestExtractDeterministic(t *testing.T) {
	e := NewExtractor()
	text := "share your otp and scan qr, pay now via gpay"

	first := e.Extract(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, e.Extract(text))
	}
}

func TestSnapshotProjection(t *testing.T) {
	e := NewExtractor()
	out := e.Extract("urgent abhi, share your otp")

	snap := out.Snapshot()
	assert.Equal(t, 2, snap.UrgencyScore)
	assert.Contains(t, snap.IrreversibleActions, CategoryCredentialSharing)
}
