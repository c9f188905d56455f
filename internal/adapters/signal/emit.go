package signal

import (
	"github.com/pion/webrtc/v4"

	"github.com/huddlekit/huddle/internal/domain"
)

// Out-direction of core.Signaler: each method is one relay event.

func (c *Client) JoinRoom(room domain.RoomID, userName string) {
	c.trySend(message{Type: typeJoinRoom, RoomID: string(room), UserName: userName})
}

func (c *Client) LeaveRoom(room domain.RoomID) {
	c.trySend(message{Type: typeLeaveRoom, RoomID: string(room)})
}

func (c *Client) SendOffer(to domain.UserID, userName string, sdp webrtc.SessionDescription) {
	c.trySend(message{Type: typeOffer, To: string(to), UserName: userName, Offer: toPayload(sdp)})
}

func (c *Client) SendAnswer(to domain.UserID, sdp webrtc.SessionDescription) {
	c.trySend(message{Type: typeAnswer, To: string(to), Answer: toPayload(sdp)})
}

func (c *Client) SendCandidate(to domain.UserID, cand webrtc.ICECandidateInit) {
	c.trySend(message{Type: typeICECandidate, To: string(to), Candidate: &cand})
}

func (c *Client) AdmitUser(id domain.UserID, room domain.RoomID) {
	c.trySend(message{Type: typeAdmitUser, UserID: string(id), RoomID: string(room)})
}

func (c *Client) RejectUser(id domain.UserID, room domain.RoomID) {
	c.trySend(message{Type: typeRejectUser, UserID: string(id), RoomID: string(room)})
}

func (c *Client) ToggleMedia(room domain.RoomID, kind domain.MediaKind, isOn bool) {
	c.trySend(message{Type: typeToggleMedia, RoomID: string(room), Kind: string(kind), IsOn: &isOn})
}
