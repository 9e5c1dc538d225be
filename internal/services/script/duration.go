// Package script normalizes remote generation responses into the canonical
// script record used by every display and export surface.
//
// The remote service's output format evolved across versions (free-text
// markdown first, structured JSON later) without a breaking change, so this
// package tolerates both: structured fields pass through trusted, and the
// legacy markdown blob goes through a best-effort section scanner that
// always degrades to placeholders instead of failing. "Always produce
// something displayable" is the core invariant here.
package script

import "github.com/egremy-digital/social-engine-api/internal/models"

// Windows holds the fixed time window per beat for one duration bucket,
// plus the total length in seconds.
type Windows struct {
	Hook         string
	Problem      string
	Solution     string
	ProofCTA     string
	TotalSeconds int
}

// WindowsFor maps a duration bucket to its beat time windows. The mapping is
// pure and never persisted; displayed time windows always come from here,
// never from time markers inside the markdown (those are only used to locate
// section boundaries, they are not trusted as values).
func WindowsFor(d models.Duration) Windows {
	switch d {
	case models.DurationShort:
		return Windows{Hook: "0-3s", Problem: "3-8s", Solution: "8-12s", ProofCTA: "12-15s", TotalSeconds: 15}
	case models.DurationLong:
		return Windows{Hook: "0-3s", Problem: "3-8s", Solution: "8-75s", ProofCTA: "75-90s", TotalSeconds: 90}
	default:
		// 30-60 is the form default and the safest fallback for unknown values.
		return Windows{Hook: "0-3s", Problem: "3-8s", Solution: "8-35s", ProofCTA: "35-45s", TotalSeconds: 45}
	}
}
