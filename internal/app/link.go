package app

import (
	"fmt"
	"sync"

	"github.com/pion/webrtc/v4"

	"github.com/huddlekit/huddle/internal/core"
	"github.com/huddlekit/huddle/internal/domain"
)

// LinkState is the negotiation state of one PeerLink. The initiator walks
// new → have-local-offer → stable; the responder walks
// new → have-remote-offer → stable. Closed is terminal from any state.
type LinkState int

const (
	LinkNew LinkState = iota
	LinkHaveLocalOffer
	LinkHaveRemoteOffer
	LinkStable
	LinkClosed
)

func (s LinkState) String() string {
	switch s {
	case LinkNew:
		return "new"
	case LinkHaveLocalOffer:
		return "have-local-offer"
	case LinkHaveRemoteOffer:
		return "have-remote-offer"
	case LinkStable:
		return "stable"
	case LinkClosed:
		return "closed"
	}
	return "unknown"
}

// PeerLink wraps the media transport toward one remote participant
// together with its negotiation state. State transitions are serialized by
// the link mutex; a step arriving in the wrong state fails instead of
// corrupting the machine.
type PeerLink struct {
	ID        domain.UserID
	Name      string
	Initiator bool

	conn core.MediaConnection

	mu    sync.Mutex
	state LinkState
}

func (l *PeerLink) State() LinkState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// StartOffer creates and applies the local offer (initiator path).
func (l *PeerLink) StartOffer() (webrtc.SessionDescription, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state != LinkNew {
		return webrtc.SessionDescription{}, fmt.Errorf("start offer in state %s", l.state)
	}
	offer, err := l.conn.CreateOfferAndSet()
	if err != nil {
		return webrtc.SessionDescription{}, err
	}
	l.state = LinkHaveLocalOffer
	return offer, nil
}

// AcceptOffer applies a remote offer and produces the locally-applied
// answer (responder path). The link lands in stable.
func (l *PeerLink) AcceptOffer(offer webrtc.SessionDescription) (webrtc.SessionDescription, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state != LinkNew {
		return webrtc.SessionDescription{}, fmt.Errorf("accept offer in state %s", l.state)
	}
	l.state = LinkHaveRemoteOffer
	answer, err := l.conn.ApplyOfferAndCreateAnswer(offer)
	if err != nil {
		return webrtc.SessionDescription{}, err
	}
	l.state = LinkStable
	return answer, nil
}

// CompleteAnswer applies the remote answer (initiator path). No further
// message is sent.
func (l *PeerLink) CompleteAnswer(answer webrtc.SessionDescription) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state != LinkHaveLocalOffer {
		return fmt.Errorf("answer in state %s", l.state)
	}
	if err := l.conn.ApplyAnswer(answer); err != nil {
		return err
	}
	l.state = LinkStable
	return nil
}

// AddCandidate applies a remote trickle candidate.
func (l *PeerLink) AddCandidate(cand webrtc.ICECandidateInit) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state == LinkClosed {
		return fmt.Errorf("candidate in state %s", l.state)
	}
	return l.conn.AddICECandidate(cand)
}

func (l *PeerLink) close() {
	l.mu.Lock()
	if l.state == LinkClosed {
		l.mu.Unlock()
		return
	}
	l.state = LinkClosed
	l.mu.Unlock()
	l.conn.Close()
}
