package app

import (
	"errors"
	"sync"

	"github.com/pion/webrtc/v4"

	"github.com/huddlekit/huddle/internal/core"
	"github.com/huddlekit/huddle/internal/domain"
)

// mockSignaler records every emitted relay event for verification.
type mockSignaler struct {
	mu         sync.Mutex
	joins      []string
	leaves     []domain.RoomID
	offers     []sentOffer
	answers    []sentAnswer
	candidates []sentCandidate
	admits     []domain.UserID
	rejects    []domain.UserID
	toggles    []sentToggle
	closeCalls int
}

type sentOffer struct {
	to   domain.UserID
	name string
	sdp  webrtc.SessionDescription
}

type sentAnswer struct {
	to  domain.UserID
	sdp webrtc.SessionDescription
}

type sentCandidate struct {
	to   domain.UserID
	cand webrtc.ICECandidateInit
}

type sentToggle struct {
	kind domain.MediaKind
	isOn bool
}

func (m *mockSignaler) JoinRoom(_ domain.RoomID, userName string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.joins = append(m.joins, userName)
}

func (m *mockSignaler) LeaveRoom(room domain.RoomID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leaves = append(m.leaves, room)
}

func (m *mockSignaler) SendOffer(to domain.UserID, userName string, sdp webrtc.SessionDescription) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.offers = append(m.offers, sentOffer{to: to, name: userName, sdp: sdp})
}

func (m *mockSignaler) SendAnswer(to domain.UserID, sdp webrtc.SessionDescription) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.answers = append(m.answers, sentAnswer{to: to, sdp: sdp})
}

func (m *mockSignaler) SendCandidate(to domain.UserID, cand webrtc.ICECandidateInit) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.candidates = append(m.candidates, sentCandidate{to: to, cand: cand})
}

func (m *mockSignaler) AdmitUser(id domain.UserID, _ domain.RoomID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.admits = append(m.admits, id)
}

func (m *mockSignaler) RejectUser(id domain.UserID, _ domain.RoomID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejects = append(m.rejects, id)
}

func (m *mockSignaler) ToggleMedia(_ domain.RoomID, kind domain.MediaKind, isOn bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.toggles = append(m.toggles, sentToggle{kind: kind, isOn: isOn})
}

func (m *mockSignaler) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeCalls++
}

func (m *mockSignaler) offerCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.offers)
}

func (m *mockSignaler) answerCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.answers)
}

// mockMedia is a scripted transport for one peer.
type mockMedia struct {
	remote domain.UserID

	mu          sync.Mutex
	closed      bool
	offerErr    error
	answerErr   error
	localTracks []webrtc.TrackLocal
	candidates  []webrtc.ICECandidateInit

	onICE   func(webrtc.ICECandidateInit)
	onTrack func(domain.StreamHandle)
	onState func(webrtc.PeerConnectionState)
}

func (m *mockMedia) CreateOfferAndSet() (webrtc.SessionDescription, error) {
	if m.offerErr != nil {
		return webrtc.SessionDescription{}, m.offerErr
	}
	return webrtc.SessionDescription{Type: webrtc.SDPTypeOffer, SDP: "v=0 offer for " + string(m.remote)}, nil
}

func (m *mockMedia) ApplyOfferAndCreateAnswer(webrtc.SessionDescription) (webrtc.SessionDescription, error) {
	if m.answerErr != nil {
		return webrtc.SessionDescription{}, m.answerErr
	}
	return webrtc.SessionDescription{Type: webrtc.SDPTypeAnswer, SDP: "v=0 answer for " + string(m.remote)}, nil
}

func (m *mockMedia) ApplyAnswer(webrtc.SessionDescription) error { return m.answerErr }

func (m *mockMedia) AddICECandidate(cand webrtc.ICECandidateInit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.candidates = append(m.candidates, cand)
	return nil
}

func (m *mockMedia) OnICECandidate(fn func(webrtc.ICECandidateInit))   { m.onICE = fn }
func (m *mockMedia) OnTrack(fn func(domain.StreamHandle))              { m.onTrack = fn }
func (m *mockMedia) OnStateChange(fn func(webrtc.PeerConnectionState)) { m.onState = fn }

func (m *mockMedia) AddLocalTrack(track webrtc.TrackLocal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.localTracks = append(m.localTracks, track)
	return nil
}

func (m *mockMedia) ReplaceOutgoingTrack(track webrtc.TrackLocal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.localTracks {
		if t.Kind() == track.Kind() {
			m.localTracks[i] = track
			return nil
		}
	}
	return errors.New("no matching sender")
}

func (m *mockMedia) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
}

func (m *mockMedia) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func (m *mockMedia) trackOfKind(kind webrtc.RTPCodecType) webrtc.TrackLocal {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.localTracks {
		if t.Kind() == kind {
			return t
		}
	}
	return nil
}

// mockFactory hands out one mockMedia per remote id and keeps them for
// inspection.
type mockFactory struct {
	mu    sync.Mutex
	conns map[domain.UserID]*mockMedia
	err   error
}

func newMockFactory() *mockFactory {
	return &mockFactory{conns: make(map[domain.UserID]*mockMedia)}
}

func (f *mockFactory) new(remote domain.UserID) (core.MediaConnection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	mc := &mockMedia{remote: remote}
	f.conns[remote] = mc
	return mc, nil
}

func (f *mockFactory) conn(remote domain.UserID) *mockMedia {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.conns[remote]
}

// fakeTrack is a minimal webrtc.TrackLocal.
type fakeTrack struct {
	id   string
	kind webrtc.RTPCodecType
}

func (t fakeTrack) Bind(webrtc.TrackLocalContext) (webrtc.RTPCodecParameters, error) {
	return webrtc.RTPCodecParameters{}, nil
}
func (t fakeTrack) Unbind(webrtc.TrackLocalContext) error { return nil }
func (t fakeTrack) ID() string                            { return t.id }
func (t fakeTrack) RID() string                           { return "" }
func (t fakeTrack) StreamID() string                      { return "local" }
func (t fakeTrack) Kind() webrtc.RTPCodecType             { return t.kind }

// mockSource provides fake local capture tracks.
type mockSource struct {
	audio webrtc.TrackLocal
	video webrtc.TrackLocal
}

func newMockSource() *mockSource {
	return &mockSource{
		audio: fakeTrack{id: "mic", kind: webrtc.RTPCodecTypeAudio},
		video: fakeTrack{id: "camera", kind: webrtc.RTPCodecTypeVideo},
	}
}

func (s *mockSource) AudioTrack() webrtc.TrackLocal { return s.audio }
func (s *mockSource) VideoTrack() webrtc.TrackLocal { return s.video }

// fakeStream is an opaque remote stream handle.
type fakeStream string

func (s fakeStream) StreamID() string { return string(s) }
