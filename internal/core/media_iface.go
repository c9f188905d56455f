package core

import (
	"github.com/pion/webrtc/v4"

	"github.com/huddlekit/huddle/internal/domain"
)

// MediaConnection is one peer-to-peer transport toward a single remote
// participant. Created by a MediaFactory, owned by the peer registry,
// closed exactly once.
type MediaConnection interface {
	// CreateOfferAndSet builds a local offer and applies it as the local
	// description (initiator path).
	CreateOfferAndSet() (webrtc.SessionDescription, error)
	// ApplyOfferAndCreateAnswer applies a remote offer and returns the
	// locally-applied answer (responder path).
	ApplyOfferAndCreateAnswer(offer webrtc.SessionDescription) (webrtc.SessionDescription, error)
	// ApplyAnswer completes the initiator path with the remote answer.
	ApplyAnswer(answer webrtc.SessionDescription) error
	// AddICECandidate applies a remote trickle candidate.
	AddICECandidate(cand webrtc.ICECandidateInit) error

	// OnICECandidate sets the callback for newly gathered local candidates.
	OnICECandidate(func(webrtc.ICECandidateInit))
	// OnTrack sets the callback for the first arrival of a remote stream.
	OnTrack(func(stream domain.StreamHandle))
	// OnStateChange sets the callback for transport state transitions.
	OnStateChange(func(webrtc.PeerConnectionState))

	// AddLocalTrack attaches an outgoing track before negotiation starts.
	AddLocalTrack(track webrtc.TrackLocal) error
	// ReplaceOutgoingTrack swaps the sender whose kind matches the new
	// track, in place, without renegotiation.
	ReplaceOutgoingTrack(track webrtc.TrackLocal) error

	Close()
}

// MediaFactory creates the transport for one remote participant id.
// Injected into the session so negotiation can be exercised against fakes.
type MediaFactory func(remote domain.UserID) (MediaConnection, error)

// MediaSource is the external collaborator that owns local capture.
// The core references its tracks but never stops them.
type MediaSource interface {
	AudioTrack() webrtc.TrackLocal
	VideoTrack() webrtc.TrackLocal
}
