package rtc

import (
	"fmt"

	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"

	"github.com/huddlekit/huddle/internal/core"
	"github.com/huddlekit/huddle/internal/domain"
)

// NewFactory returns a core.MediaFactory producing one Connection per
// remote participant, all sharing a single API instance.
func NewFactory(cfg webrtc.Configuration) (core.MediaFactory, error) {
	api, err := newAPI()
	if err != nil {
		return nil, err
	}
	return func(remote domain.UserID) (core.MediaConnection, error) {
		pc, err := api.NewPeerConnection(cfg)
		if err != nil {
			return nil, fmt.Errorf("new peer connection: %w", err)
		}
		c := &Connection{pc: pc, remote: remote}
		c.bind()
		return c, nil
	}, nil
}

// Connection implements core.MediaConnection on a pion PeerConnection.
type Connection struct {
	pc     *webrtc.PeerConnection
	remote domain.UserID

	onICE   func(webrtc.ICECandidateInit)
	onTrack func(domain.StreamHandle)
	onState func(webrtc.PeerConnectionState)
}

// remoteStream carries the pion track as an opaque roster handle.
type remoteStream struct {
	track *webrtc.TrackRemote
}

func (s remoteStream) StreamID() string { return s.track.StreamID() }

func (c *Connection) bind() {
	c.pc.OnICECandidate(func(cand *webrtc.ICECandidate) {
		if cand != nil && c.onICE != nil {
			c.onICE(cand.ToJSON())
		}
	})
	c.pc.OnTrack(func(track *webrtc.TrackRemote, _ *webrtc.RTPReceiver) {
		log.Info().
			Str("module", "rtc").
			Str("peer", string(c.remote)).
			Str("kind", track.Kind().String()).
			Str("stream_id", track.StreamID()).
			Msg("remote track")
		if c.onTrack != nil {
			c.onTrack(remoteStream{track: track})
		}
	})
	c.pc.OnConnectionStateChange(func(state webrtc.PeerConnectionState) {
		log.Info().Str("module", "rtc").Str("peer", string(c.remote)).Str("state", state.String()).Msg("peer state")
		if c.onState != nil {
			c.onState(state)
		}
	})
	c.pc.OnICEConnectionStateChange(func(state webrtc.ICEConnectionState) {
		log.Info().Str("module", "rtc").Str("peer", string(c.remote)).Str("ice_state", state.String()).Msg("ICE state")
	})
}

func (c *Connection) OnICECandidate(fn func(webrtc.ICECandidateInit)) { c.onICE = fn }

func (c *Connection) OnTrack(fn func(domain.StreamHandle)) { c.onTrack = fn }

func (c *Connection) OnStateChange(fn func(webrtc.PeerConnectionState)) { c.onState = fn }

// CreateOfferAndSet builds the local offer and applies it. Candidates
// trickle out through OnICECandidate as they are gathered.
func (c *Connection) CreateOfferAndSet() (webrtc.SessionDescription, error) {
	offer, err := c.pc.CreateOffer(nil)
	if err != nil {
		return webrtc.SessionDescription{}, err
	}
	if err := c.pc.SetLocalDescription(offer); err != nil {
		return webrtc.SessionDescription{}, err
	}
	return offer, nil
}

func (c *Connection) ApplyOfferAndCreateAnswer(offer webrtc.SessionDescription) (webrtc.SessionDescription, error) {
	if err := c.pc.SetRemoteDescription(offer); err != nil {
		return webrtc.SessionDescription{}, err
	}
	answer, err := c.pc.CreateAnswer(nil)
	if err != nil {
		return webrtc.SessionDescription{}, err
	}
	if err := c.pc.SetLocalDescription(answer); err != nil {
		return webrtc.SessionDescription{}, err
	}
	return answer, nil
}

func (c *Connection) ApplyAnswer(answer webrtc.SessionDescription) error {
	return c.pc.SetRemoteDescription(answer)
}

func (c *Connection) AddICECandidate(cand webrtc.ICECandidateInit) error {
	return c.pc.AddICECandidate(cand)
}

func (c *Connection) AddLocalTrack(track webrtc.TrackLocal) error {
	_, err := c.pc.AddTrack(track)
	return err
}

// ReplaceOutgoingTrack swaps the sender whose kind matches the new track.
// The connection stays open and the transceiver mapping is unchanged, so
// no renegotiation follows.
func (c *Connection) ReplaceOutgoingTrack(track webrtc.TrackLocal) error {
	for _, sender := range c.pc.GetSenders() {
		current := sender.Track()
		if current == nil || current.Kind() != track.Kind() {
			continue
		}
		return sender.ReplaceTrack(track)
	}
	return fmt.Errorf("no %s sender on link to %s", track.Kind(), c.remote)
}

func (c *Connection) Close() {
	if err := c.pc.Close(); err != nil {
		log.Error().Err(err).Str("module", "rtc").Str("peer", string(c.remote)).Msg("close error")
		return
	}
	log.Info().Str("module", "rtc").Str("peer", string(c.remote)).Msg("closed")
}
