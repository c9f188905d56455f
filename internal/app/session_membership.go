package app

import (
	"github.com/rs/zerolog/log"

	"github.com/huddlekit/huddle/internal/domain"
)

// OnExistingUsers handles the roster snapshot delivered to a newcomer.
// Receiving it while not rejected counts as implicit approval. The
// newcomer never offers proactively: the already-present side initiates
// toward us, so exactly one offer exists per pair.
func (s *Session) OnExistingUsers(users []domain.Membership) {
	if s.isClosed() {
		return
	}
	s.gate.ApproveImplicit()
	if s.gate.Status() != domain.StatusJoined {
		return
	}
	s.roster.SnapshotFrom(users)
	s.notifyChange()
}

// OnUserJoined handles a newcomer while we are already present: roster
// entry plus exactly one outgoing offer. Duplicate deliveries hit the
// idempotent upsert and the existing link and do nothing.
func (s *Session) OnUserJoined(id domain.UserID, userName string) {
	if s.isClosed() {
		return
	}
	if s.gate.Status() != domain.StatusJoined {
		log.Warn().Str("module", "app.session").Str("user", string(id)).Msg("user-joined before admission, ignored")
		return
	}
	if err := domain.ValidateUserName(userName); err != nil {
		log.Warn().Err(err).Str("module", "app.session").Str("user", string(id)).Msg("user-joined with bad name, dropped")
		return
	}
	s.clearDeparted(id)
	s.roster.UpsertFromMembership(id, userName)

	link, created, err := s.registry.Ensure(id, userName, true)
	if err != nil {
		log.Error().Err(err).Str("module", "app.session").Str("peer", string(id)).Msg("create peer link")
		return
	}
	if !created {
		log.Debug().Str("module", "app.session").Str("peer", string(id)).Msg("duplicate user-joined, link exists")
		s.notifyChange()
		return
	}
	offer, err := link.StartOffer()
	if err != nil {
		log.Error().Err(err).Str("module", "app.session").Str("peer", string(id)).Msg("create offer, negotiation abandoned")
		s.notifyChange()
		return
	}
	s.signal.SendOffer(id, s.selfName, offer)
	s.notifyChange()
}

// OnUserLeft releases everything tied to the departed id. Later
// negotiation events naming it are ignored without error.
func (s *Session) OnUserLeft(id domain.UserID) {
	if s.isClosed() {
		return
	}
	s.markDeparted(id)
	s.registry.Remove(id)
	s.roster.RemoveByID(id)
	s.notifyChange()
}

// OnWaitingForApproval parks the local user in the waiting room.
func (s *Session) OnWaitingForApproval() {
	if s.isClosed() {
		return
	}
	s.gate.MarkWaiting()
	s.notifyChange()
}

// OnJoinApproved admits the local user; the one-shot notification fires
// inside the gate.
func (s *Session) OnJoinApproved() {
	if s.isClosed() {
		return
	}
	s.gate.Approve()
	s.notifyChange()
}

// OnJoinRejected is terminal: the status flips to rejected and the
// signaling connection is torn down. No further room event is processed;
// leaving the UI is an explicit user action.
func (s *Session) OnJoinRejected() {
	if s.isClosed() {
		return
	}
	if !s.gate.Reject() {
		return
	}
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.signal.Close()
	s.notifyChange()
}

// OnJoinRequest queues a guest at the door, host side.
func (s *Session) OnJoinRequest(id domain.UserID, userName string) {
	if s.isClosed() {
		return
	}
	if s.gate.AddRequest(id, userName) {
		s.notifyChange()
	}
}

// OnMediaStatus records a remote mic/camera flag change.
func (s *Session) OnMediaStatus(id domain.UserID, kind domain.MediaKind, isOn bool) {
	if s.isClosed() {
		return
	}
	if s.roster.ApplyMediaStatus(id, kind, isOn) {
		s.notifyChange()
	}
}

// OnSignalClosed is informational; reconnection is not this core's job.
func (s *Session) OnSignalClosed(err error) {
	if err != nil {
		log.Warn().Err(err).Str("module", "app.session").Msg("signaling connection closed")
		return
	}
	log.Info().Str("module", "app.session").Msg("signaling connection closed")
}
