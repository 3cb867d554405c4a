// Package vfr provides the constant frame rate value object used for
// frame-accurate DCP timing.
package vfr

// Framerate is a rational frames-per-second value. The zero value is
// "unloaded": conversions through an unloaded rate are identity.
type Framerate struct {
	num int64
	den int64
}

// New builds a rate of num/den frames per second, e.g. New(24000, 1001)
// for 23.976 fps.
func New(num, den int64) Framerate {
	if num <= 0 || den <= 0 {
		return Framerate{}
	}
	return Framerate{num: num, den: den}
}

// IsLoaded reports whether the rate carries a usable value.
func (f Framerate) IsLoaded() bool {
	return f.num > 0 && f.den > 0
}

// FPS returns the rate as a float, or 0 when unloaded.
func (f Framerate) FPS() float64 {
	if !f.IsLoaded() {
		return 0
	}
	return float64(f.num) / float64(f.den)
}

// FrameAtTime returns the index of the frame being displayed at ms,
// biased to frame starts: a time exactly on a frame's (truncated) start
// maps to that frame.
func (f Framerate) FrameAtTime(ms int64) int64 {
	if !f.IsLoaded() {
		return 0
	}
	frame := ms * f.num / (f.den * 1000)
	// frame starts are truncated to whole milliseconds, so a time can sit
	// exactly on the next frame's start while plain division still names
	// the previous frame
	if f.TimeAtFrame(frame+1) <= ms {
		frame++
	}
	return frame
}

// TimeAtFrame returns the start time of the given frame in milliseconds.
func (f Framerate) TimeAtFrame(frame int64) int64 {
	if !f.IsLoaded() {
		return 0
	}
	return frame * f.den * 1000 / f.num
}

// SnapToFrame quantizes ms to the start of the frame it falls in. An
// unloaded rate passes the value through unchanged.
func (f Framerate) SnapToFrame(ms int64) int64 {
	if !f.IsLoaded() {
		return ms
	}
	return f.TimeAtFrame(f.FrameAtTime(ms))
}
