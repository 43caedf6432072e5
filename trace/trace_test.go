package trace

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func sampleEvents(actorID string) []Event {
	base := time.Date(2026, 3, 14, 9, 26, 53, 589793000, time.UTC)
	return []Event{
		{ActorID: actorID, Actor: "relay", Kind: KindSpawn, Seq: 0, Timestamp: base},
		{ActorID: actorID, Actor: "relay", Kind: KindMessage, Detail: "relay.Forward", Seq: 1, Timestamp: base.Add(time.Millisecond)},
		{ActorID: actorID, Actor: "relay", Kind: KindTick, Seq: 2, Timestamp: base.Add(100 * time.Millisecond)},
		{ActorID: actorID, Actor: "relay", Kind: KindStop, Seq: 3, Timestamp: base.Add(time.Second)},
	}
}

func TestMemoryRecorder(t *testing.T) {
	m := NewMemory()
	for _, e := range sampleEvents("a1") {
		if err := m.Record(e); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	events := m.Events()
	if len(events) != 4 {
		t.Fatalf("expected 4 events, got %d", len(events))
	}
	kinds := m.Kinds()
	want := []string{KindSpawn, KindMessage, KindTick, KindStop}
	for i, k := range want {
		if kinds[i] != k {
			t.Errorf("kind %d: expected %s, got %s", i, k, kinds[i])
		}
	}
	if m.Count(KindMessage) != 1 || m.Count(KindPanic) != 0 {
		t.Errorf("counts wrong: %v", kinds)
	}

	// Events returns a copy.
	events[0].Kind = "mutated"
	if m.Events()[0].Kind != KindSpawn {
		t.Error("Events must return a copy, not the backing slice")
	}
}

func TestJSONLRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONLWriter(&buf)
	in := sampleEvents("a2")
	for _, e := range in {
		if err := w.Record(e); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	if lines := strings.Count(buf.String(), "\n"); lines != len(in) {
		t.Errorf("expected %d lines, got %d", len(in), lines)
	}

	out, err := ParseJSONL(&buf)
	if err != nil {
		t.Fatalf("ParseJSONL failed: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("expected %d events, got %d", len(in), len(out))
	}
	for i := range in {
		if out[i].Kind != in[i].Kind || out[i].Seq != in[i].Seq || out[i].Detail != in[i].Detail {
			t.Errorf("event %d changed: %+v vs %+v", i, out[i], in[i])
		}
		if !out[i].Timestamp.Equal(in[i].Timestamp) {
			t.Errorf("event %d timestamp changed: %v vs %v", i, out[i].Timestamp, in[i].Timestamp)
		}
	}
}

func TestParseJSONLBadLine(t *testing.T) {
	_, err := ParseJSONL(strings.NewReader("{\"kind\":\"spawn\"}\nnot json\n"))
	if err == nil {
		t.Fatal("expected error for malformed line")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error should name the offending line: %v", err)
	}
}

func TestParseJSONLSkipsBlankLines(t *testing.T) {
	events, err := ParseJSONL(strings.NewReader("\n{\"kind\":\"spawn\"}\n\n"))
	if err != nil {
		t.Fatalf("ParseJSONL failed: %v", err)
	}
	if len(events) != 1 || events[0].Kind != KindSpawn {
		t.Errorf("expected one spawn event, got %+v", events)
	}
}

func TestSQLiteStore(t *testing.T) {
	s, err := OpenStore(":memory:")
	if err != nil {
		t.Fatalf("OpenStore failed: %v", err)
	}
	defer s.Close()

	for _, e := range sampleEvents("a3") {
		if err := s.Record(e); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}
	if err := s.Record(Event{ActorID: "other", Actor: "clock", Kind: KindSpawn, Timestamp: time.Now()}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	events, err := s.Events("a3")
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if len(events) != 4 {
		t.Fatalf("expected 4 events for a3, got %d", len(events))
	}
	for i, e := range events {
		if e.Seq != uint64(i) {
			t.Errorf("event %d out of order: seq %d", i, e.Seq)
		}
	}
	if events[1].Detail != "relay.Forward" {
		t.Errorf("detail lost: %+v", events[1])
	}
	if events[0].Timestamp.IsZero() {
		t.Error("timestamp not restored")
	}

	ids, err := s.ActorIDs()
	if err != nil {
		t.Fatalf("ActorIDs failed: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("expected 2 actor ids, got %v", ids)
	}

	empty, err := s.Events("nobody")
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected no events for unknown actor, got %d", len(empty))
	}
}
