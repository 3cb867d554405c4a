package cinecanvas

import (
	"fmt"
	"time"

	"github.com/dcptools/cinecanvas/internal/vfr"
)

// FormatTime renders t as a CineCanvas "HH:MM:SS:mmm" string. When fps is
// loaded the time is first snapped to the start of its frame, so emitted
// times are frame-accurate. Hours do not wrap.
func FormatTime(t time.Duration, fps vfr.Framerate) string {
	ms := t.Milliseconds()
	if fps.IsLoaded() && fps.FPS() > 0 {
		ms = fps.SnapToFrame(ms)
	}

	hours := ms / 3600000
	ms %= 3600000
	minutes := ms / 60000
	ms %= 60000
	seconds := ms / 1000
	millis := ms % 1000

	return fmt.Sprintf("%02d:%02d:%02d:%03d", hours, minutes, seconds, millis)
}

// ParseTime reads "HH:MM:SS:mmm", falling back to "HH:MM:SS.mmm". Strings
// matching neither yield 0.
func ParseTime(s string) time.Duration {
	var hours, minutes, seconds, millis int

	if n, err := fmt.Sscanf(s, "%d:%d:%d:%d", &hours, &minutes, &seconds, &millis); err != nil || n != 4 {
		hours, minutes, seconds, millis = 0, 0, 0, 0
		if n, err := fmt.Sscanf(s, "%d:%d:%d.%d", &hours, &minutes, &seconds, &millis); err != nil || n != 4 {
			return 0
		}
	}

	total := hours*3600000 + minutes*60000 + seconds*1000 + millis
	return time.Duration(total) * time.Millisecond
}
