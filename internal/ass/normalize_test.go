package ass

import (
	"testing"
	"time"
)

func ev(startMs, endMs int, text string) *Event {
	return &Event{
		Start: time.Duration(startMs) * time.Millisecond,
		End:   time.Duration(endMs) * time.Millisecond,
		Style: "Default",
		Text:  text,
	}
}

func TestSortEventsStable(t *testing.T) {
	events := []*Event{
		ev(2000, 3000, "b"),
		ev(1000, 2000, "a"),
		ev(2000, 4000, "c"),
	}
	SortEvents(events)

	order := []string{"a", "b", "c"}
	for i, want := range order {
		if events[i].Text != want {
			t.Errorf("position %d: got %q, want %q", i, events[i].Text, want)
		}
	}
}

func TestStripComments(t *testing.T) {
	events := []*Event{
		ev(0, 1000, "keep"),
		{Start: 0, End: 1000, Text: "drop", Comment: true},
		ev(1000, 2000, "keep too"),
	}
	got := StripComments(events)
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	for _, e := range got {
		if e.Comment {
			t.Error("comment survived")
		}
	}
}

func TestRecombineOverlapsDisjoint(t *testing.T) {
	events := []*Event{ev(0, 1000, "a"), ev(1000, 2000, "b")}
	got := RecombineOverlaps(events)
	if len(got) != 2 {
		t.Fatalf("disjoint events must pass through, got %d", len(got))
	}
}

func TestRecombineOverlapsSplitsPair(t *testing.T) {
	events := []*Event{ev(0, 3000, "a"), ev(1000, 2000, "b")}
	got := RecombineOverlaps(events)

	want := []struct {
		start, end time.Duration
		text       string
	}{
		{0, 1 * time.Second, "a"},
		{1 * time.Second, 2 * time.Second, `a\Nb`},
		{2 * time.Second, 3 * time.Second, "a"},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(got))
	}
	for i, w := range want {
		if got[i].Start != w.start || got[i].End != w.end || got[i].Text != w.text {
			t.Errorf("event %d: got %v-%v %q, want %v-%v %q",
				i, got[i].Start, got[i].End, got[i].Text, w.start, w.end, w.text)
		}
	}

	// no overlap may remain
	for i := 0; i+1 < len(got); i++ {
		if got[i+1].Start < got[i].End {
			t.Errorf("events %d and %d still overlap", i, i+1)
		}
	}
}

func TestRecombineOverlapsTail(t *testing.T) {
	events := []*Event{ev(0, 2000, "a"), ev(1000, 3000, "b")}
	got := RecombineOverlaps(events)

	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got))
	}
	if got[1].Text != `a\Nb` {
		t.Errorf("shared span text: %q", got[1].Text)
	}
	if got[2].Text != "b" || got[2].End != 3*time.Second {
		t.Errorf("tail should carry the later event: %q %v", got[2].Text, got[2].End)
	}
}

func TestRecombineOverlapsDoesNotMutateInput(t *testing.T) {
	events := []*Event{ev(0, 3000, "a"), ev(1000, 2000, "b")}
	RecombineOverlaps(events)

	if events[0].End != 3*time.Second || events[0].Text != "a" {
		t.Error("input events were mutated")
	}
}

func TestMergeIdentical(t *testing.T) {
	events := []*Event{
		ev(0, 1000, "same"),
		ev(1000, 2000, "same"),
		ev(2000, 3000, "other"),
		ev(4000, 5000, "same"), // gap: must not merge
	}
	got := MergeIdentical(events)

	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got))
	}
	if got[0].Start != 0 || got[0].End != 2*time.Second {
		t.Errorf("merged span wrong: %v-%v", got[0].Start, got[0].End)
	}
	if got[2].Start != 4*time.Second {
		t.Errorf("gapped duplicate must survive, got start %v", got[2].Start)
	}
}
