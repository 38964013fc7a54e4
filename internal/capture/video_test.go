package capture

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"path/filepath"
	"testing"
)

// createTestVideo renders a two-second test pattern with ffmpeg.
func createTestVideo(t *testing.T) string {
	t.Helper()

	if _, err := exec.LookPath(DefaultFFmpeg); err != nil {
		t.Skip("ffmpeg not available")
	}
	if _, err := exec.LookPath(DefaultFFprobe); err != nil {
		t.Skip("ffprobe not available")
	}

	path := filepath.Join(t.TempDir(), "scroll.mp4")
	cmd := exec.Command(DefaultFFmpeg,
		"-v", "error",
		"-f", "lavfi",
		"-i", "testsrc=duration=2:size=64x48:rate=10",
		"-pix_fmt", "yuv420p",
		path,
	)
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Skipf("ffmpeg cannot render test video: %v, output: %s", err, output)
	}
	return path
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"2.000000\n", 2, false},
		{"  12.5 ", 12.5, false},
		{"0", 0, false},
		{"", 0, true},
		{"N/A\n", 0, true},
		{"abc", 0, true},
		{"-1", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDuration(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseDuration(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseDuration(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestOpenVideo_Missing(t *testing.T) {
	_, err := OpenVideo(context.Background(), "/nonexistent/video.mp4", VideoOptions{})
	if err == nil {
		t.Error("expected error for missing video")
	}
}

func TestOpenVideo_BadProbe(t *testing.T) {
	// Any existing file gets past the stat; the probe itself must fail.
	_, err := OpenVideo(context.Background(), "video_test.go", VideoOptions{FFprobe: "/nonexistent/ffprobe"})
	if err == nil {
		t.Error("expected error for missing ffprobe")
	}
}

func TestVideoSource(t *testing.T) {
	path := createTestVideo(t)

	src, err := OpenVideo(context.Background(), path, VideoOptions{})
	if err != nil {
		t.Fatalf("OpenVideo failed: %v", err)
	}
	if d := src.Duration(); d < 1.9 || d > 2.1 {
		t.Errorf("Duration() = %v, want about 2", d)
	}

	img, err := src.CaptureFrame(context.Background(), 0.5)
	if err != nil {
		t.Fatalf("CaptureFrame failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("frame is %dx%d, want 64x48", b.Dx(), b.Dy())
	}

	seq := Sample(src, 0.5)
	n := 0
	for {
		_, err := seq.Next(context.Background())
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		n++
	}
	// 0, 0.5, 1, 1.5 always decode; 2.0 depends on the container's last timestamp.
	if n < 4 || n > 5 {
		t.Errorf("sampled %d frames, want 4 or 5", n)
	}
}
