package app

import (
	"testing"

	"github.com/pion/webrtc/v4"
)

func TestLink_InitiatorWalk(t *testing.T) {
	l := &PeerLink{ID: "b", Initiator: true, conn: &mockMedia{remote: "b"}}

	if l.State() != LinkNew {
		t.Fatalf("expected new, got %s", l.State())
	}
	if _, err := l.StartOffer(); err != nil {
		t.Fatalf("start offer: %v", err)
	}
	if l.State() != LinkHaveLocalOffer {
		t.Fatalf("expected have-local-offer, got %s", l.State())
	}

	// an offer cannot be started twice
	if _, err := l.StartOffer(); err == nil {
		t.Error("expected second StartOffer to fail")
	}
	// and an answer completes the walk
	if err := l.CompleteAnswer(webrtc.SessionDescription{Type: webrtc.SDPTypeAnswer}); err != nil {
		t.Fatalf("complete answer: %v", err)
	}
	if l.State() != LinkStable {
		t.Fatalf("expected stable, got %s", l.State())
	}
}

func TestLink_ResponderWalk(t *testing.T) {
	l := &PeerLink{ID: "a", conn: &mockMedia{remote: "a"}}

	if _, err := l.AcceptOffer(webrtc.SessionDescription{Type: webrtc.SDPTypeOffer}); err != nil {
		t.Fatalf("accept offer: %v", err)
	}
	if l.State() != LinkStable {
		t.Fatalf("expected stable, got %s", l.State())
	}
	// an answer makes no sense on the responder side
	if err := l.CompleteAnswer(webrtc.SessionDescription{Type: webrtc.SDPTypeAnswer}); err == nil {
		t.Error("expected answer in stable to fail")
	}
}

func TestLink_ClosedIsTerminal(t *testing.T) {
	mc := &mockMedia{remote: "a"}
	l := &PeerLink{ID: "a", conn: mc}

	l.close()
	l.close()

	if l.State() != LinkClosed {
		t.Fatalf("expected closed, got %s", l.State())
	}
	if !mc.isClosed() {
		t.Error("expected transport closed")
	}
	if _, err := l.StartOffer(); err == nil {
		t.Error("expected offer on closed link to fail")
	}
	if err := l.AddCandidate(webrtc.ICECandidateInit{}); err == nil {
		t.Error("expected candidate on closed link to fail")
	}
}
