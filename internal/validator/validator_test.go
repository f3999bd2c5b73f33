package validator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scamtrap/honeypot-engine/internal/provider"
)

type fakeClient struct {
	reply string
	err   error
}

func (f *fakeClient) Complete(ctx context.Context, messages []provider.Message, opts provider.Options) (string, error) {
	return f.reply, f.err
}

func TestExtractClaim(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"Hello, I am calling from HDFC bank regarding your card", "hdfc"},
		{"This is the cyber crime division", "cyber crime"},
		{"Your FedEx parcel is held at customs", "fedex"},
		{"RBI has flagged your account", "rbi"},
		{"just a normal message", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ExtractClaim(tc.text), tc.text)
	}
}

func TestValidateNoClaim(t *testing.T) {
	v := New(nil)
	report := v.Validate(context.Background(), "")

	assert.False(t, report.AuthorityClaimed)
	assert.Equal(t, "none", report.AuthorityType)
	assert.Equal(t, "unknown", report.ImpersonationLikelihood)
}

func TestValidateKnownEntity(t *testing.T) {
	v := New(nil)
	report := v.Validate(context.Background(), "hdfc")

	assert.True(t, report.AuthorityClaimed)
	assert.True(t, report.AuthorityExists)
	assert.Equal(t, "bank", report.AuthorityType)
	assert.Equal(t, "unknown", report.ImpersonationLikelihood)
}

func TestValidateNormalizesSpacing(t *testing.T) {
	v := New(nil)
	report := v.Validate(context.Background(), "cyber crime")

	assert.True(t, report.AuthorityExists)
	assert.Equal(t, "law_enforcement", report.AuthorityType)
}

func TestAdvisoryHintFromLLM(t *testing.T) {
	v := New(&fakeClient{reply: "High."})
	report := v.Validate(context.Background(), "hdfc")

	assert.Equal(t, "high", report.ImpersonationLikelihood)
}

func TestAdvisoryHintDegradesOnError(t *testing.T) {
	v := New(&fakeClient{err: errors.New("unreachable")})
	report := v.Validate(context.Background(), "hdfc")

	assert.Equal(t, "unknown", report.ImpersonationLikelihood)
}
