package app

import (
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"

	"github.com/huddlekit/huddle/internal/domain"
)

// OnOffer runs the responder path: the first offer from an unknown id
// creates a non-initiator link, applies the remote description and answers
// the sender. Offers from departed ids and duplicate offers are ignored.
// The offer carries the sender's display name, so the roster entry exists
// even when user-joined raced behind the offer.
func (s *Session) OnOffer(from domain.UserID, userName string, sdp webrtc.SessionDescription) {
	if s.isClosed() {
		return
	}
	if s.isDeparted(from) {
		log.Warn().Str("module", "app.session").Str("peer", string(from)).Msg("offer from departed peer, ignored")
		return
	}
	// Validate before any state is built: a bad name must not leave a
	// link without a matching roster entry.
	if err := domain.ValidateUserName(userName); err != nil {
		log.Warn().Err(err).Str("module", "app.session").Str("peer", string(from)).Msg("offer with bad name, dropped")
		return
	}
	s.roster.UpsertFromMembership(from, userName)

	link, created, err := s.registry.Ensure(from, userName, false)
	if err != nil {
		log.Error().Err(err).Str("module", "app.session").Str("peer", string(from)).Msg("create peer link")
		return
	}
	if !created {
		log.Debug().Str("module", "app.session").Str("peer", string(from)).Str("state", link.State().String()).Msg("duplicate offer, ignored")
		return
	}
	answer, err := link.AcceptOffer(sdp)
	if err != nil {
		log.Error().Err(err).Str("module", "app.session").Str("peer", string(from)).Msg("accept offer, negotiation abandoned")
		return
	}
	s.signal.SendAnswer(from, answer)
	s.notifyChange()
}

// OnAnswer completes the initiator path. No further message is sent.
func (s *Session) OnAnswer(from domain.UserID, sdp webrtc.SessionDescription) {
	if s.isClosed() || s.isDeparted(from) {
		return
	}
	link, ok := s.registry.Get(from)
	if !ok {
		log.Warn().Str("module", "app.session").Str("peer", string(from)).Msg("answer for unknown peer, ignored")
		return
	}
	if err := link.CompleteAnswer(sdp); err != nil {
		log.Error().Err(err).Str("module", "app.session").Str("peer", string(from)).Msg("apply answer, negotiation abandoned")
	}
}

// OnCandidate applies a remote trickle candidate to the matching link.
// A candidate racing ahead of its offer is dropped, not queued: the relay
// orders messages per sender, so in practice offers arrive first.
func (s *Session) OnCandidate(from domain.UserID, cand webrtc.ICECandidateInit) {
	if s.isClosed() || s.isDeparted(from) {
		return
	}
	link, ok := s.registry.Get(from)
	if !ok {
		log.Warn().Str("module", "app.session").Str("peer", string(from)).Msg("candidate raced ahead of offer, dropped")
		return
	}
	if err := link.AddCandidate(cand); err != nil {
		log.Error().Err(err).Str("module", "app.session").Str("peer", string(from)).Msg("add ice candidate")
	}
}
