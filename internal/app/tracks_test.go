package app

import (
	"testing"

	"github.com/pion/webrtc/v4"

	"github.com/huddlekit/huddle/internal/domain"
)

func TestScreenShareToggle_SwapsWithoutReopening(t *testing.T) {
	s, sig, f := newTestSession(t)
	joined(s)

	s.OnUserJoined("a", "Al")
	s.OnUserJoined("b", "Bee")

	offersBefore := sig.offerCount()

	screen := fakeTrack{id: "screen", kind: webrtc.RTPCodecTypeVideo}
	camera := fakeTrack{id: "camera-2", kind: webrtc.RTPCodecTypeVideo}
	s.Tracks().ReplaceOutgoing(screen)
	s.Tracks().ReplaceOutgoing(camera)

	for _, id := range []domain.UserID{"a", "b"} {
		mc := f.conn(id)
		if mc.isClosed() {
			t.Errorf("link %s was closed by a track swap", id)
		}
		got := mc.trackOfKind(webrtc.RTPCodecTypeVideo)
		if got == nil || got.ID() != "camera-2" {
			t.Errorf("link %s: expected camera-2 as final video track, got %v", id, got)
		}
	}
	if s.registry.Len() != 2 {
		t.Errorf("expected both links alive, got %d", s.registry.Len())
	}
	if sig.offerCount() != offersBefore {
		t.Error("track swap must not trigger renegotiation signaling")
	}
}

func TestTrackSwap_LeavesAudioSenderAlone(t *testing.T) {
	s, _, f := newTestSession(t)
	joined(s)

	s.OnUserJoined("a", "Al")
	s.Tracks().ReplaceOutgoing(fakeTrack{id: "screen", kind: webrtc.RTPCodecTypeVideo})

	mc := f.conn("a")
	audio := mc.trackOfKind(webrtc.RTPCodecTypeAudio)
	if audio == nil || audio.ID() != "mic" {
		t.Errorf("audio sender touched by a video swap: %v", audio)
	}
}
