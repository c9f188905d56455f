package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/huddlekit/huddle/internal/domain"
)

// badID rejects missing or oversized ids before they reach the session.
func badID(s string) bool {
	return s == "" || len(s) > domain.MaxUserIDLen
}

// dispatch routes one incoming relay frame to the handler. Malformed
// frames are dropped and logged, never surfaced.
func (c *Client) dispatch(data []byte) {
	var msg message
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad json, dropped")
		return
	}

	switch msg.Type {
	case typeExistingUsers:
		c.handler.OnExistingUsers(msg.Users)

	case typeUserJoined:
		if badID(msg.UserID) {
			log.Warn().Str("module", "signal").Msg("user-joined with bad id, dropped")
			return
		}
		c.handler.OnUserJoined(domain.UserID(msg.UserID), msg.UserName)

	case typeUserLeft:
		if badID(msg.UserID) {
			log.Warn().Str("module", "signal").Msg("user-left with bad id, dropped")
			return
		}
		c.handler.OnUserLeft(domain.UserID(msg.UserID))

	case typeOffer:
		if badID(msg.From) || msg.Offer == nil {
			log.Warn().Str("module", "signal").Msg("bad offer payload, dropped")
			return
		}
		c.handler.OnOffer(domain.UserID(msg.From), msg.UserName, msg.Offer.toDescription())

	case typeAnswer:
		if badID(msg.From) || msg.Answer == nil {
			log.Warn().Str("module", "signal").Msg("bad answer payload, dropped")
			return
		}
		c.handler.OnAnswer(domain.UserID(msg.From), msg.Answer.toDescription())

	case typeICECandidate:
		if badID(msg.From) || msg.Candidate == nil {
			log.Warn().Str("module", "signal").Msg("bad candidate payload, dropped")
			return
		}
		c.handler.OnCandidate(domain.UserID(msg.From), *msg.Candidate)

	case typeWaiting:
		c.handler.OnWaitingForApproval()

	case typeJoinApproved:
		c.handler.OnJoinApproved()

	case typeJoinRejected:
		c.handler.OnJoinRejected()

	case typeJoinRequest:
		if badID(msg.UserID) {
			log.Warn().Str("module", "signal").Msg("join-request with bad id, dropped")
			return
		}
		c.handler.OnJoinRequest(domain.UserID(msg.UserID), msg.UserName)

	case typeMediaStatus:
		kind, err := domain.ParseMediaKind(msg.Kind)
		if err != nil || badID(msg.UserID) || msg.IsOn == nil {
			log.Warn().Str("module", "signal").Str("kind", msg.Kind).Msg("bad media-status payload, dropped")
			return
		}
		c.handler.OnMediaStatus(domain.UserID(msg.UserID), kind, *msg.IsOn)

	default:
		log.Warn().Str("module", "signal").Str("type", msg.Type).Msg("unknown event")
	}
}
