package render

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

// DefaultFPS is the frame rate used by [FramesToGIF] and [FramesToMP4]
// when the caller passes a non-positive value.
const DefaultFPS = 10

// ToPDF converts SVG bytes to PDF using the external rsvg-convert tool.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(svg []byte) ([]byte, error) {
	return rsvgConvert(svg, "-f", "pdf")
}

// ToPNG converts SVG bytes to PNG at the given scale factor. A scale of
// 2.0 produces a 2x resolution image suitable for high-DPI displays.
// Non-positive scales fall back to 1.0.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1.0
	}
	return rsvgConvert(svg, "-f", "png", "-z", strconv.FormatFloat(scale, 'f', -1, 64))
}

func rsvgConvert(svg []byte, args ...string) ([]byte, error) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		return nil, fmt.Errorf("rsvg-convert not found (install librsvg): %w", err)
	}

	cmd := exec.Command("rsvg-convert", args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("rsvg-convert: %w: %s", err, stderr.String())
	}
	return out.Bytes(), nil
}

// FramesToGIF assembles PNG frames into an animated GIF at fps frames per
// second. Frames must share one resolution; render them from the same
// fabric at the same scale.
//
// Requires ffmpeg: brew install ffmpeg (macOS), apt install ffmpeg (Linux).
func FramesToGIF(frames [][]byte, fps int) ([]byte, error) {
	if len(frames) == 0 {
		return nil, errors.New("no frames")
	}
	if fps <= 0 {
		fps = DefaultFPS
	}
	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-f", "image2pipe", "-vcodec", "png",
		"-framerate", strconv.Itoa(fps), "-i", "-",
		"-f", "gif", "-",
	}
	return ffmpegPipe(frames, args, "")
}

// FramesToMP4 assembles PNG frames into an H.264 MP4 at fps frames per
// second. Dimensions are padded to even numbers as the codec requires.
//
// Requires ffmpeg: brew install ffmpeg (macOS), apt install ffmpeg (Linux).
func FramesToMP4(frames [][]byte, fps int) ([]byte, error) {
	if len(frames) == 0 {
		return nil, errors.New("no frames")
	}
	if fps <= 0 {
		fps = DefaultFPS
	}

	// The MP4 muxer needs a seekable output, so ffmpeg writes a temp file
	// that is read back and removed.
	tmp, err := os.CreateTemp("", "placer-*.mp4")
	if err != nil {
		return nil, fmt.Errorf("temp file: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	args := []string{
		"-hide_banner", "-loglevel", "error", "-y",
		"-f", "image2pipe", "-vcodec", "png",
		"-framerate", strconv.Itoa(fps), "-i", "-",
		"-c:v", "libx264", "-pix_fmt", "yuv420p",
		"-vf", "pad=ceil(iw/2)*2:ceil(ih/2)*2",
		tmpPath,
	}
	return ffmpegPipe(frames, args, tmpPath)
}

// ffmpegPipe feeds concatenated PNG frames to ffmpeg. With outPath empty
// the encoded stream is read from stdout; otherwise it is read back from
// the file ffmpeg wrote.
func ffmpegPipe(frames [][]byte, args []string, outPath string) ([]byte, error) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return nil, fmt.Errorf("ffmpeg not found: %w", err)
	}

	cmd := exec.Command("ffmpeg", args...)
	cmd.Stdin = bytes.NewReader(bytes.Join(frames, nil))

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg: %w: %s", err, stderr.String())
	}

	if outPath == "" {
		return out.Bytes(), nil
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("read encoded output: %w", err)
	}
	return data, nil
}
