package app

import "github.com/huddlekit/huddle/internal/domain"

// SelfState is the local user's slice of the snapshot.
type SelfState struct {
	ID         domain.UserID `json:"id"`
	Name       string        `json:"name"`
	IsMicOn    bool          `json:"isMicOn"`
	IsCameraOn bool          `json:"isCameraOn"`
}

// RoomSnapshot is the read model the UI layer renders from. It is a copy:
// holding one grants no mutation rights over the session.
type RoomSnapshot struct {
	Room         domain.RoomID               `json:"room"`
	Status       domain.ConnectionStatus     `json:"status"`
	Self         SelfState                   `json:"self"`
	Participants []domain.Participant        `json:"participants"`
	Pending      []domain.PendingJoinRequest `json:"pending"`
}

// Snapshot publishes the current room state.
func (s *Session) Snapshot() RoomSnapshot {
	s.mu.Lock()
	self := SelfState{ID: s.selfID, Name: s.selfName, IsMicOn: s.micOn, IsCameraOn: s.camOn}
	s.mu.Unlock()
	return RoomSnapshot{
		Room:         s.room,
		Status:       s.gate.Status(),
		Self:         self,
		Participants: s.roster.Snapshot(),
		Pending:      s.gate.PendingSnapshot(),
	}
}
