package app

import (
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"
)

// TrackManager swaps the locally outgoing track on every live peer link.
// Call ReplaceOutgoing after any local source change (camera ↔ screen).
// The swap touches senders only: no signaling, no renegotiation, both
// sides keep the same transceiver mapping. Re-acquiring a camera track
// when screen capture ends belongs to the caller.
type TrackManager struct {
	registry *PeerRegistry
}

func (t *TrackManager) ReplaceOutgoing(track webrtc.TrackLocal) {
	log.Info().Str("module", "app.tracks").Str("kind", track.Kind().String()).Msg("replacing outgoing track")
	t.registry.ReplaceOutgoingTrack(track)
}
