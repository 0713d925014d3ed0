package analysis

import "context"

// Analyzer turns a local video file into the raw text of a structured
// forensic report. Implementations own their own timeouts and polling; the
// caller treats the returned text as opaque until it tries to decode it.
type Analyzer interface {
	Analyze(ctx context.Context, videoPath string) (string, error)
}
