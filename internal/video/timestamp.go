package video

import (
	"strconv"
	"strings"
)

// ParseTimecodeSeconds converts an HH:MM:SS:CC timecode into seconds. The
// last field is hundredths of a second, so "00:00:01:50" means 1.5s. ok is
// false when the string does not consist of exactly four integer fields.
func ParseTimecodeSeconds(timecode string) (float64, bool) {
	parts := strings.Split(timecode, ":")
	if len(parts) != 4 {
		return 0, false
	}

	fields := make([]int, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return 0, false
		}
		fields[i] = n
	}

	hours, minutes, seconds, hundredths := fields[0], fields[1], fields[2], fields[3]
	return float64(hours*3600+minutes*60+seconds) + float64(hundredths)/100, true
}

// ResolveFrameIndex picks the frame a report timecode points at. Unparsable
// or missing timecodes target the midpoint frame. The result is always a
// valid index for the clip, even when frameCount is zero.
func ResolveFrameIndex(timecode string, fps float64, frameCount int) int {
	index := frameCount / 2
	if seconds, ok := ParseTimecodeSeconds(timecode); ok {
		index = int(seconds * fps)
	}

	max := frameCount - 1
	if max < 0 {
		max = 0
	}
	if index < 0 {
		index = 0
	}
	if index > max {
		index = max
	}
	return index
}
