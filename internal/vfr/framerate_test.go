package vfr

import (
	"math"
	"testing"
)

func TestUnloadedFramerate(t *testing.T) {
	var fps Framerate

	if fps.IsLoaded() {
		t.Error("zero value should not be loaded")
	}
	if fps.FPS() != 0 {
		t.Errorf("expected FPS 0, got %v", fps.FPS())
	}
	if got := fps.SnapToFrame(1042); got != 1042 {
		t.Errorf("unloaded snap should be identity, got %d", got)
	}
}

func TestNewRejectsInvalidRates(t *testing.T) {
	if New(0, 1).IsLoaded() {
		t.Error("zero numerator should be unloaded")
	}
	if New(24, 0).IsLoaded() {
		t.Error("zero denominator should be unloaded")
	}
	if New(-24, 1).IsLoaded() {
		t.Error("negative rate should be unloaded")
	}
}

func TestFrameAtTime24(t *testing.T) {
	fps := New(24, 1)

	tests := []struct {
		ms    int64
		frame int64
	}{
		{0, 0},
		{999, 23},
		{1000, 24},
		{1041, 25}, // exactly on frame 25's truncated start
		{1042, 25},
		{1082, 25},
		{1083, 26},
	}
	for _, tt := range tests {
		if got := fps.FrameAtTime(tt.ms); got != tt.frame {
			t.Errorf("FrameAtTime(%d) = %d, want %d", tt.ms, got, tt.frame)
		}
	}
}

func TestTimeAtFrame24(t *testing.T) {
	fps := New(24, 1)

	if got := fps.TimeAtFrame(24); got != 1000 {
		t.Errorf("TimeAtFrame(24) = %d, want 1000", got)
	}
	if got := fps.TimeAtFrame(25); got != 1041 {
		t.Errorf("TimeAtFrame(25) = %d, want 1041", got)
	}
}

func TestSnapToFrameIdempotent(t *testing.T) {
	rates := []Framerate{
		New(24, 1),
		New(25, 1),
		New(24000, 1001),
		New(30000, 1001),
		New(60, 1),
	}
	for _, fps := range rates {
		for ms := int64(0); ms < 5000; ms += 7 {
			once := fps.SnapToFrame(ms)
			twice := fps.SnapToFrame(once)
			if once != twice {
				t.Fatalf("fps %v: snap(%d) = %d but snap(snap) = %d", fps.FPS(), ms, once, twice)
			}
			if once > ms {
				t.Fatalf("fps %v: snap(%d) = %d moved time forward", fps.FPS(), ms, once)
			}
		}
	}
}

func TestNTSCRate(t *testing.T) {
	fps := New(24000, 1001)
	if math.Abs(fps.FPS()-23.976) > 0.001 {
		t.Errorf("expected ~23.976 fps, got %v", fps.FPS())
	}

	// 24 frames of 23.976fps video last slightly more than one second
	if got := fps.FrameAtTime(1001); got != 24 {
		t.Errorf("FrameAtTime(1001) = %d, want 24", got)
	}
	if got := fps.TimeAtFrame(24); got != 1001 {
		t.Errorf("TimeAtFrame(24) = %d, want 1001", got)
	}
}
