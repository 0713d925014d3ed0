package video

import "testing"

func TestResolveFrameIndex(t *testing.T) {
	tests := []struct {
		name       string
		timecode   string
		fps        float64
		frameCount int
		want       int
	}{
		{"well-formed", "00:00:01:50", 30, 1000, 45},
		{"hours and minutes", "01:02:03:00", 10, 100000, 37230},
		{"zero timecode", "00:00:00:00", 30, 1000, 0},
		{"fractional fps floors", "00:00:01:00", 29.97, 1000, 29},
		{"empty falls back to midpoint", "", 30, 1000, 500},
		{"too few fields falls back", "00:00:01", 30, 1000, 500},
		{"too many fields falls back", "00:00:00:01:02", 30, 1000, 500},
		{"non-integer field falls back", "00:xx:01:00", 30, 1000, 500},
		{"fractional field falls back", "00:00:01.5:00", 30, 1000, 500},
		{"clamped to last frame", "10:00:00:00", 30, 100, 99},
		{"negative field clamped to zero", "-1:00:00:00", 30, 100, 0},
		{"zero frame count", "00:00:05:00", 30, 0, 0},
		{"zero frame count fallback", "not a timecode", 30, 0, 0},
		{"single frame clip", "00:00:09:99", 30, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveFrameIndex(tt.timecode, tt.fps, tt.frameCount)
			if got != tt.want {
				t.Errorf("ResolveFrameIndex(%q, %v, %d) = %d, want %d",
					tt.timecode, tt.fps, tt.frameCount, got, tt.want)
			}
		})
	}
}

// ResolveFrameIndex must return a valid index whatever it is fed.
func TestResolveFrameIndexBounds(t *testing.T) {
	timecodes := []string{
		"", "garbage", "99:99:99:99", "-1:-1:-1:-1", "00:00:00:00",
		"00:00:01:50", "23:59:59:99", ":::", "a:b:c:d",
	}
	counts := []int{0, 1, 2, 10, 301}

	for _, tc := range timecodes {
		for _, frames := range counts {
			got := ResolveFrameIndex(tc, 30, frames)
			if got < 0 {
				t.Errorf("ResolveFrameIndex(%q, 30, %d) = %d, negative index", tc, frames, got)
			}
			if frames == 0 && got != 0 {
				t.Errorf("ResolveFrameIndex(%q, 30, 0) = %d, want 0", tc, got)
			}
			if frames > 0 && got >= frames {
				t.Errorf("ResolveFrameIndex(%q, 30, %d) = %d, index out of range", tc, frames, got)
			}
		}
	}
}

func TestParseTimecodeSeconds(t *testing.T) {
	tests := []struct {
		timecode string
		want     float64
		ok       bool
	}{
		{"00:00:01:50", 1.5, true},
		{"00:01:00:00", 60, true},
		{"01:00:00:25", 3600.25, true},
		{"00:00:00:00", 0, true},
		{"", 0, false},
		{"00:00:01", 0, false},
		{"one:two:three:four", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseTimecodeSeconds(tt.timecode)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseTimecodeSeconds(%q) = (%v, %v), want (%v, %v)",
				tt.timecode, got, ok, tt.want, tt.ok)
		}
	}
}
