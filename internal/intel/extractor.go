// Package intel pulls actionable artifacts (payment handles, URLs) out of
// scammer messages for downstream analyst tooling.
package intel

import "regexp"

var (
	upiRegex = regexp.MustCompile(`[a-zA-Z0-9.\-_]{2,}@[a-zA-Z]{2,}`)
	urlRegex = regexp.MustCompile(`https?://\S+`)
)

// Intelligence holds the artifacts extracted from one message. Slices are
// always non-nil so the JSON envelope renders empty arrays.
type Intelligence struct {
	UPIIDs []string `json:"upi_id"`
	URLs   []string `json:"urls"`
}

// Extract scans text for UPI handles and URLs.
func Extract(text string) Intelligence {
	out := Intelligence{
		UPIIDs: upiRegex.FindAllString(text, -1),
		URLs:   urlRegex.FindAllString(text, -1),
	}
	if out.UPIIDs == nil {
		out.UPIIDs = []string{}
	}
	if out.URLs == nil {
		out.URLs = []string{}
	}
	return out
}
