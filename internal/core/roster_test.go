package core

import (
	"testing"

	"github.com/huddlekit/huddle/internal/domain"
)

type fakeStream string

func (s fakeStream) StreamID() string { return string(s) }

func TestUpsertFromMembership_Idempotent(t *testing.T) {
	r := NewRoster()

	if !r.UpsertFromMembership("u1", "Al") {
		t.Fatal("expected first upsert to create")
	}
	if r.UpsertFromMembership("u1", "Someone Else") {
		t.Error("expected second upsert to be ignored")
	}
	snap := r.Snapshot()
	if len(snap) != 1 || snap[0].Name != "Al" {
		t.Fatalf("wrong roster: %+v", snap)
	}
}

func TestNewParticipants_DefaultMediaOn(t *testing.T) {
	r := NewRoster()
	r.UpsertFromMembership("u1", "Al")

	p := r.Snapshot()[0]
	if !p.IsMicOn || !p.IsCameraOn {
		t.Errorf("expected optimistic media defaults, got mic=%v cam=%v", p.IsMicOn, p.IsCameraOn)
	}
}

func TestSnapshotFrom_DeduplicatesKeepingLastName(t *testing.T) {
	r := NewRoster()
	r.UpsertFromMembership("stale", "Gone")

	r.SnapshotFrom([]domain.Membership{
		{UserID: "u1", UserName: "Al"},
		{UserID: "u2", UserName: "Bee"},
		{UserID: "u1", UserName: "Alfred"},
	})

	snap := r.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(snap))
	}
	if snap[0].ID != "u1" || snap[0].Name != "Alfred" {
		t.Errorf("expected u1 renamed to last occurrence, got %+v", snap[0])
	}
	if snap[1].ID != "u2" {
		t.Errorf("insertion order lost: %+v", snap)
	}
}

func TestRemoveByID_KeepsOrder(t *testing.T) {
	r := NewRoster()
	r.UpsertFromMembership("a", "A")
	r.UpsertFromMembership("b", "B")
	r.UpsertFromMembership("c", "C")

	if !r.RemoveByID("b") {
		t.Fatal("expected removal")
	}
	if r.RemoveByID("b") {
		t.Error("second removal must be a no-op")
	}
	snap := r.Snapshot()
	if len(snap) != 2 || snap[0].ID != "a" || snap[1].ID != "c" {
		t.Fatalf("wrong order after removal: %+v", snap)
	}
}

func TestApplyRemoteTrack_UnknownIDDropped(t *testing.T) {
	r := NewRoster()

	if r.ApplyRemoteTrack("ghost", fakeStream("s1")) {
		t.Fatal("track for unknown id must be dropped")
	}

	// entry established later; the next track event lands
	r.UpsertFromMembership("ghost", "Gho")
	if !r.ApplyRemoteTrack("ghost", fakeStream("s1")) {
		t.Fatal("expected track applied after membership")
	}
	if r.Snapshot()[0].Stream.StreamID() != "s1" {
		t.Error("stream handle not attached")
	}
}

func TestApplyMediaStatus_PerKind(t *testing.T) {
	r := NewRoster()
	r.UpsertFromMembership("u1", "Al")

	r.ApplyMediaStatus("u1", domain.MediaAudio, false)
	p := r.Snapshot()[0]
	if p.IsMicOn || !p.IsCameraOn {
		t.Errorf("audio toggle leaked into video: %+v", p)
	}

	r.ApplyMediaStatus("u1", domain.MediaVideo, false)
	p = r.Snapshot()[0]
	if p.IsCameraOn {
		t.Error("expected camera off")
	}

	if r.ApplyMediaStatus("ghost", domain.MediaAudio, true) {
		t.Error("status for unknown id must be dropped")
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	r := NewRoster()
	r.UpsertFromMembership("u1", "Al")

	snap := r.Snapshot()
	snap[0].Name = "Mutated"
	snap[0].IsMicOn = false

	again := r.Snapshot()[0]
	if again.Name != "Al" || !again.IsMicOn {
		t.Error("snapshot mutation leaked into the roster")
	}
}
