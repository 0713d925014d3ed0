package video

import (
	"bytes"
	"encoding/base64"
	"log"
	"os/exec"
	"strconv"
)

// FrameExtractor produces a base64 still image for a report timecode. The
// empty string means "no preview available" and is never an error.
type FrameExtractor interface {
	ExtractBase64(timecode string) string
}

// FFmpegExtractor extracts single frames from one media file by shelling out
// to ffmpeg. The stream is probed once on first use and the metadata reused
// across calls. It is intended for use by a single goroutine, one per job.
type FFmpegExtractor struct {
	ffmpegBin  string
	ffprobeBin string
	videoPath  string

	probed bool
	failed bool
	meta   ProbeResult
}

// NewFFmpegExtractor creates an extractor bound to one media file. Empty
// binary names fall back to whatever is on PATH.
func NewFFmpegExtractor(ffmpegBin, ffprobeBin, videoPath string) *FFmpegExtractor {
	if ffmpegBin == "" {
		ffmpegBin = "ffmpeg"
	}
	return &FFmpegExtractor{
		ffmpegBin:  ffmpegBin,
		ffprobeBin: ffprobeBin,
		videoPath:  videoPath,
	}
}

// ExtractBase64 resolves the timecode against the probed stream, decodes a
// single frame at that position and returns it as base64 JPEG bytes. Any
// failure (unreadable media, seek past the end, decode error) yields "" so
// enrichment degrades per node instead of aborting.
func (e *FFmpegExtractor) ExtractBase64(timecode string) string {
	if !e.ensureProbed() {
		return ""
	}

	frameIndex := ResolveFrameIndex(timecode, e.meta.FPS, e.meta.FrameCount)
	offset := float64(frameIndex) / e.meta.FPS

	cmd := exec.Command(e.ffmpegBin,
		"-hide_banner",
		"-loglevel", "error",
		"-ss", strconv.FormatFloat(offset, 'f', 3, 64),
		"-i", e.videoPath,
		"-frames:v", "1",
		"-f", "image2pipe",
		"-c:v", "mjpeg",
		"-q:v", "3",
		"pipe:1",
	)
	var frame bytes.Buffer
	cmd.Stdout = &frame

	if err := cmd.Run(); err != nil {
		log.Printf("frame extraction at index %d failed: %v", frameIndex, err)
		return ""
	}
	if frame.Len() == 0 {
		return ""
	}
	return base64.StdEncoding.EncodeToString(frame.Bytes())
}

// ensureProbed probes the stream on first use. A failed probe disables
// extraction for this media instead of erroring on every node.
func (e *FFmpegExtractor) ensureProbed() bool {
	if e.probed {
		return !e.failed
	}
	e.probed = true

	meta, err := ProbeVideo(e.ffprobeBin, e.videoPath)
	if err != nil || meta.FPS <= 0 {
		log.Printf("probe failed for %s: %v", e.videoPath, err)
		e.failed = true
		return false
	}
	e.meta = meta
	return true
}
