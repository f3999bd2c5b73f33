package intel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractArtifacts(t *testing.T) {
	out := Extract("send payment to fraudster99@ybl and confirm at https://evil.example/verify now")

	assert.Equal(t, []string{"fraudster99@ybl"}, out.UPIIDs)
	assert.Equal(t, []string{"https://evil.example/verify"}, out.URLs)
}

func TestExtractMultiple(t *testing.T) {
	out := Extract("use abc.def@okaxis or xyz_123@paytm, links http://a.example and https://b.example/x")

	assert.Len(t, out.UPIIDs, 2)
	assert.Len(t, out.URLs, 2)
}

func TestExtractEmptySlicesAreNonNil(t *testing.T) {
	out := Extract("nothing interesting here")

	assert.NotNil(t, out.UPIIDs)
	assert.NotNil(t, out.URLs)
	assert.Empty(t, out.UPIIDs)
	assert.Empty(t, out.URLs)
}
