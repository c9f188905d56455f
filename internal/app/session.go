package app

import (
	"sync"

	"github.com/google/uuid"
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"

	"github.com/huddlekit/huddle/internal/core"
	"github.com/huddlekit/huddle/internal/domain"
)

// Session drives one room membership from join to leave. It owns the peer
// registry, the roster and the admission gate, consumes relay events, and
// publishes read-only snapshots. It is constructed and torn down with the
// room's lifetime together with its signaling client.
type Session struct {
	room     domain.RoomID
	selfID   domain.UserID
	selfName string

	signal   core.Signaler
	registry *PeerRegistry
	roster   *core.Roster
	gate     *AdmissionGate
	source   core.MediaSource
	tracks   *TrackManager

	mu       sync.Mutex
	closed   bool
	micOn    bool
	camOn    bool
	departed map[domain.UserID]struct{}
	onChange func()
}

// NewSession wires a session for one room. onApproved fires once when the
// relay explicitly admits the local user; it may be nil.
func NewSession(
	room domain.RoomID,
	selfName string,
	sig core.Signaler,
	factory core.MediaFactory,
	source core.MediaSource,
	onApproved func(),
) *Session {
	s := &Session{
		room:     room,
		selfID:   domain.UserID(uuid.NewString()),
		selfName: selfName,
		signal:   sig,
		roster:   core.NewRoster(),
		gate:     NewAdmissionGate(onApproved),
		source:   source,
		micOn:    true,
		camOn:    true,
		departed: make(map[domain.UserID]struct{}),
	}
	s.registry = NewPeerRegistry(s.bindMedia(factory))
	s.tracks = &TrackManager{registry: s.registry}
	return s
}

// OnChange registers the change-notification hook. Set it before Join;
// rendering is a pure function of Snapshot, not of internal mutation.
func (s *Session) OnChange(fn func()) { s.onChange = fn }

// Tracks exposes the outgoing-track swap operation.
func (s *Session) Tracks() *TrackManager { return s.tracks }

// Join announces the local user to the relay. Admission starts in
// connecting; the relay answers with a roster snapshot, a waiting-room
// signal, or a rejection.
func (s *Session) Join() {
	log.Info().Str("module", "app.session").Str("room", string(s.room)).Str("name", s.selfName).Msg("joining room")
	s.signal.JoinRoom(s.room, s.selfName)
	s.notifyChange()
}

// Leave tears the session down: handlers stop firing, every peer link is
// closed, the registry is cleared, the relay learns of the departure and
// the signaling connection ends. Safe to call more than once.
func (s *Session) Leave() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.registry.Clear()
	s.signal.LeaveRoom(s.room)
	s.signal.Close()
	log.Info().Str("module", "app.session").Str("room", string(s.room)).Msg("left room")
	s.notifyChange()
}

// SetLocalMedia flips a local mic/camera flag and broadcasts it.
func (s *Session) SetLocalMedia(kind domain.MediaKind, isOn bool) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	switch kind {
	case domain.MediaAudio:
		s.micOn = isOn
	case domain.MediaVideo:
		s.camOn = isOn
	}
	s.mu.Unlock()
	s.signal.ToggleMedia(s.room, kind, isOn)
	s.notifyChange()
}

// Admit approves a queued join request. The second decision for an id
// already decided is a no-op.
func (s *Session) Admit(id domain.UserID) {
	if _, ok := s.gate.TakeRequest(id); !ok {
		return
	}
	log.Info().Str("module", "app.session").Str("user", string(id)).Msg("admitting user")
	s.signal.AdmitUser(id, s.room)
	s.notifyChange()
}

// Reject declines a queued join request.
func (s *Session) Reject(id domain.UserID) {
	if _, ok := s.gate.TakeRequest(id); !ok {
		return
	}
	log.Info().Str("module", "app.session").Str("user", string(id)).Msg("rejecting user")
	s.signal.RejectUser(id, s.room)
	s.notifyChange()
}

func (s *Session) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Session) markDeparted(id domain.UserID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.departed[id] = struct{}{}
}

func (s *Session) isDeparted(id domain.UserID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.departed[id]
	return ok
}

func (s *Session) clearDeparted(id domain.UserID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.departed, id)
}

func (s *Session) notifyChange() {
	if s.onChange != nil {
		s.onChange()
	}
}

// bindMedia wraps the injected factory so every link created by the
// registry comes out with its callbacks and local tracks attached.
func (s *Session) bindMedia(factory core.MediaFactory) core.MediaFactory {
	return func(remote domain.UserID) (core.MediaConnection, error) {
		mc, err := factory(remote)
		if err != nil {
			return nil, err
		}
		mc.OnICECandidate(func(cand webrtc.ICECandidateInit) {
			s.signal.SendCandidate(remote, cand)
		})
		mc.OnTrack(func(stream domain.StreamHandle) {
			if s.roster.ApplyRemoteTrack(remote, stream) {
				s.notifyChange()
			}
		})
		mc.OnStateChange(func(state webrtc.PeerConnectionState) {
			s.handlePeerState(remote, state)
		})
		if s.source != nil {
			if t := s.source.AudioTrack(); t != nil {
				if err := mc.AddLocalTrack(t); err != nil {
					log.Error().Err(err).Str("module", "app.session").Str("peer", string(remote)).Msg("add audio track")
				}
			}
			if t := s.source.VideoTrack(); t != nil {
				if err := mc.AddLocalTrack(t); err != nil {
					log.Error().Err(err).Str("module", "app.session").Str("peer", string(remote)).Msg("add video track")
				}
			}
		}
		return mc, nil
	}
}

// handlePeerState observes transport degradation. Disconnected is logged
// only; failed and closed release the link so a later rejoin starts clean.
func (s *Session) handlePeerState(remote domain.UserID, state webrtc.PeerConnectionState) {
	log.Info().Str("module", "app.session").Str("peer", string(remote)).Str("state", state.String()).Msg("peer state")
	switch state {
	case webrtc.PeerConnectionStateFailed, webrtc.PeerConnectionStateClosed:
		s.registry.Remove(remote)
	}
}
