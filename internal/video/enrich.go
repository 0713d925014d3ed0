package video

// JSON keys of the analysis report tree.
const (
	timecodeKey = "melhor_frame"
	childrenKey = "caracteristicas"
	previewKey  = "imagem"
)

// EnrichWithFramePreviews walks the decoded report and attempts to attach a
// base64 frame preview to every node, root entries and nested caracteristicas
// alike. A node whose extraction fails keeps whatever imagem value it already
// had. The tree is mutated in place and returned for convenience; inputs that
// are not a list or object (including nil) pass through untouched.
func EnrichWithFramePreviews(data any, ex FrameExtractor) any {
	switch v := data.(type) {
	case []any:
		for _, entry := range v {
			enrichNode(entry, ex)
		}
	case map[string]any:
		enrichNode(v, ex)
	}
	return data
}

func enrichNode(entry any, ex FrameExtractor) {
	node, ok := entry.(map[string]any)
	if !ok {
		return
	}

	// A missing or malformed timecode still gets an extraction attempt; the
	// resolver falls back to the midpoint frame.
	timecode, _ := node[timecodeKey].(string)
	if image := ex.ExtractBase64(timecode); image != "" {
		node[previewKey] = image
	}

	if children, ok := node[childrenKey].([]any); ok {
		for _, child := range children {
			enrichNode(child, ex)
		}
	}
}
