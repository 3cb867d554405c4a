package ass

import (
	"sort"
)

// SortEvents orders events by start time, keeping the original order of
// ties.
func SortEvents(events []*Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Start < events[j].Start
	})
}

// StripComments drops comment events.
func StripComments(events []*Event) []*Event {
	kept := events[:0]
	for _, e := range events {
		if !e.Comment {
			kept = append(kept, e)
		}
	}
	return kept
}

// RecombineOverlaps rewrites a sorted event slice so no two events overlap
// in time. An overlapping pair is split into up to three spans: the lead-in
// with the first event's text, the shared span with both texts joined by
// \N, and the tail with whichever text outlasts the other.
func RecombineOverlaps(events []*Event) []*Event {
	evs := append([]*Event(nil), events...)

	for {
		SortEvents(evs)
		split := -1
		for i := 0; i+1 < len(evs); i++ {
			if evs[i+1].Start < evs[i].End {
				split = i
				break
			}
		}
		if split < 0 {
			return evs
		}

		cur, next := evs[split], evs[split+1]
		var repl []*Event
		if next.Start > cur.Start {
			repl = append(repl, &Event{Start: cur.Start, End: next.Start, Style: cur.Style, Text: cur.Text})
		}
		sharedEnd := cur.End
		if next.End < sharedEnd {
			sharedEnd = next.End
		}
		shared := &Event{Start: next.Start, End: sharedEnd, Style: cur.Style, Text: cur.Text + `\N` + next.Text}
		if cur.Text == next.Text {
			shared.Text = cur.Text
		}
		repl = append(repl, shared)
		if cur.End > next.End {
			repl = append(repl, &Event{Start: next.End, End: cur.End, Style: cur.Style, Text: cur.Text})
		} else if next.End > cur.End {
			repl = append(repl, &Event{Start: cur.End, End: next.End, Style: next.Style, Text: next.Text})
		}

		evs = append(evs[:split], append(repl, evs[split+2:]...)...)
	}
}

// MergeIdentical fuses consecutive events that carry the same text and
// touch or overlap in time.
func MergeIdentical(events []*Event) []*Event {
	if len(events) == 0 {
		return events
	}

	out := events[:1:1]
	for _, e := range events[1:] {
		prev := out[len(out)-1]
		if e.Text == prev.Text && e.Start <= prev.End {
			if e.End > prev.End {
				prev.End = e.End
			}
			continue
		}
		out = append(out, e)
	}
	return out
}
