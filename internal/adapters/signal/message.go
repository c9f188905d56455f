// Package signal is the dial-side adapter to the room-scoped relay.
// It speaks the relay's JSON event protocol over a websocket and
// translates between wire messages and core events.
package signal

import (
	"github.com/pion/webrtc/v4"

	"github.com/huddlekit/huddle/internal/domain"
)

const (
	typeJoinRoom      = "join-room"
	typeLeaveRoom     = "leave-room"
	typeExistingUsers = "existing-users"
	typeUserJoined    = "user-joined"
	typeUserLeft      = "user-left"
	typeOffer         = "offer"
	typeAnswer        = "answer"
	typeICECandidate  = "ice-candidate"
	typeWaiting       = "waiting-for-approval"
	typeJoinRequest   = "join-request"
	typeAdmitUser     = "admit-user"
	typeRejectUser    = "reject-user"
	typeJoinApproved  = "join-approved"
	typeJoinRejected  = "join-rejected"
	typeToggleMedia   = "toggle-media"
	typeMediaStatus   = "media-status-update"
)

// sdpPayload is the wire form of a session description.
type sdpPayload struct {
	Type string `json:"type"`
	SDP  string `json:"sdp"`
}

// message is the generic relay envelope. Every event uses a subset of the
// fields; absent fields are omitted on the wire.
type message struct {
	Type      string                   `json:"type"`
	RoomID    string                   `json:"roomId,omitempty"`
	UserID    string                   `json:"userId,omitempty"`
	UserName  string                   `json:"userName,omitempty"`
	From      string                   `json:"from,omitempty"`
	To        string                   `json:"to,omitempty"`
	Users     []domain.Membership      `json:"users,omitempty"`
	Offer     *sdpPayload              `json:"offer,omitempty"`
	Answer    *sdpPayload              `json:"answer,omitempty"`
	Candidate *webrtc.ICECandidateInit `json:"candidate,omitempty"`
	Kind      string                   `json:"kind,omitempty"`
	IsOn      *bool                    `json:"isOn,omitempty"`
}

func toPayload(sdp webrtc.SessionDescription) *sdpPayload {
	return &sdpPayload{Type: sdp.Type.String(), SDP: sdp.SDP}
}

func (p *sdpPayload) toDescription() webrtc.SessionDescription {
	return webrtc.SessionDescription{Type: webrtc.NewSDPType(p.Type), SDP: p.SDP}
}
