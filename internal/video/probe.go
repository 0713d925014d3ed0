package video

import (
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
)

// ProbeResult carries the stream metadata frame resolution needs.
type ProbeResult struct {
	FPS        float64
	FrameCount int
}

// ProbeVideo reads the frame rate and frame count of the first video stream
// via ffprobe. Containers that do not record nb_frames fall back to
// duration times fps.
func ProbeVideo(ffprobeBin, videoPath string) (ProbeResult, error) {
	if ffprobeBin == "" {
		ffprobeBin = "ffprobe"
	}
	if _, err := exec.LookPath(ffprobeBin); err != nil {
		return ProbeResult{}, fmt.Errorf("ffprobe binary not found: %w", err)
	}

	cmd := exec.Command(ffprobeBin,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=r_frame_rate,nb_frames",
		"-show_entries", "format=duration",
		"-of", "csv=p=0",
		videoPath,
	)
	output, err := cmd.Output()
	if err != nil {
		return ProbeResult{}, fmt.Errorf("probing %s: %w", videoPath, err)
	}

	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return ProbeResult{}, fmt.Errorf("no video stream in %s", videoPath)
	}

	fields := strings.Split(strings.TrimSpace(lines[0]), ",")
	fps := parseRate(fields[0])
	if fps <= 0 {
		// Decoder default when the container does not declare a rate.
		fps = 30
	}

	frames := 0
	if len(fields) > 1 {
		if n, err := strconv.Atoi(strings.TrimSpace(fields[1])); err == nil {
			frames = n
		}
	}
	if frames <= 0 && len(lines) > 1 {
		if duration, err := strconv.ParseFloat(strings.TrimSpace(lines[1]), 64); err == nil && duration > 0 {
			frames = int(math.Floor(duration * fps))
		}
	}
	if frames < 0 {
		frames = 0
	}

	return ProbeResult{FPS: fps, FrameCount: frames}, nil
}

// parseRate handles ffprobe rational rates like "30000/1001".
func parseRate(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if num, den, found := strings.Cut(raw, "/"); found {
		n, errN := strconv.ParseFloat(num, 64)
		d, errD := strconv.ParseFloat(den, 64)
		if errN != nil || errD != nil || d == 0 {
			return 0
		}
		return n / d
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}
