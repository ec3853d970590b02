package game

import (
	"fmt"
	"testing"
)

func TestMailboxSnapshotSince(t *testing.T) {
	box := NewMailbox()
	first := box.PostChat("alice", "hello")
	box.PostChat("bob", "hi")
	reply := box.PostServer("alice", "welcome back")

	all := box.Snapshot(0)
	if len(all) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(all))
	}
	if !all[2].IsServer || all[2].TargetUser != "alice" {
		t.Fatalf("server message malformed: %+v", all[2])
	}

	newer := box.Snapshot(first.ID)
	if len(newer) != 2 || newer[1].ID != reply.ID {
		t.Fatalf("unexpected incremental snapshot: %+v", newer)
	}
	if len(box.Snapshot(reply.ID)) != 0 {
		t.Fatalf("expected empty snapshot past the newest id")
	}
}

func TestMailboxTrimsOldMessages(t *testing.T) {
	box := NewMailbox()
	for i := 0; i < 151; i++ {
		box.PostChat("alice", fmt.Sprintf("msg %d", i))
	}
	if got := box.Len(); got != 100 {
		t.Fatalf("retained %d messages, want 100", got)
	}
	kept := box.Snapshot(0)
	if kept[0].Msg != "msg 51" || kept[len(kept)-1].Msg != "msg 150" {
		t.Fatalf("wrong window kept: first %q last %q", kept[0].Msg, kept[len(kept)-1].Msg)
	}
	// IDs keep increasing across the trim.
	if kept[0].ID >= kept[len(kept)-1].ID {
		t.Fatalf("ids not monotonic: %+v", kept)
	}
}

func TestMailboxCommandMarkerIsPrivate(t *testing.T) {
	box := NewMailbox()
	msg := box.PostCommand("alice", "/stats")
	if !msg.IsCommand || msg.TargetUser != "alice" {
		t.Fatalf("command marker malformed: %+v", msg)
	}
}
