package core

import (
	"github.com/pion/webrtc/v4"

	"github.com/huddlekit/huddle/internal/domain"
)

// Signaler is the out-direction of the room-scoped relay connection.
// Owned by the adapter; the adapter must Close() it. Send methods never
// block: a message that cannot be queued is dropped and logged.
type Signaler interface {
	JoinRoom(room domain.RoomID, userName string)
	LeaveRoom(room domain.RoomID)

	SendOffer(to domain.UserID, userName string, sdp webrtc.SessionDescription)
	SendAnswer(to domain.UserID, sdp webrtc.SessionDescription)
	SendCandidate(to domain.UserID, cand webrtc.ICECandidateInit)

	AdmitUser(id domain.UserID, room domain.RoomID)
	RejectUser(id domain.UserID, room domain.RoomID)

	ToggleMedia(room domain.RoomID, kind domain.MediaKind, isOn bool)

	Close()
}

// SignalEvents is the in-direction: everything the relay can deliver to
// this client. Implemented by the session; called from the adapter's read
// loop, one event at a time.
type SignalEvents interface {
	OnExistingUsers(users []domain.Membership)
	OnUserJoined(id domain.UserID, userName string)
	OnUserLeft(id domain.UserID)

	OnOffer(from domain.UserID, userName string, sdp webrtc.SessionDescription)
	OnAnswer(from domain.UserID, sdp webrtc.SessionDescription)
	OnCandidate(from domain.UserID, cand webrtc.ICECandidateInit)

	OnWaitingForApproval()
	OnJoinApproved()
	OnJoinRejected()
	OnJoinRequest(id domain.UserID, userName string)

	OnMediaStatus(id domain.UserID, kind domain.MediaKind, isOn bool)

	// OnSignalClosed fires once when the relay connection dies or is closed.
	OnSignalClosed(err error)
}
