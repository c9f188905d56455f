package app

import (
	"sync"

	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"

	"github.com/huddlekit/huddle/internal/core"
	"github.com/huddlekit/huddle/internal/domain"
)

// PeerRegistry owns one PeerLink per remote participant id. It is the
// single source of truth for "do we have an active negotiation with X".
// Nothing outside this package holds a direct transport reference.
type PeerRegistry struct {
	mu       sync.RWMutex
	links    map[domain.UserID]*PeerLink
	newMedia core.MediaFactory
}

func NewPeerRegistry(factory core.MediaFactory) *PeerRegistry {
	return &PeerRegistry{
		links:    make(map[domain.UserID]*PeerLink),
		newMedia: factory,
	}
}

// Ensure returns the link for id, creating it on first need. A second call
// for a live id returns the existing link untouched, which absorbs
// duplicate user-joined and offer deliveries. Reports whether the link was
// created by this call.
func (r *PeerRegistry) Ensure(id domain.UserID, name string, initiator bool) (*PeerLink, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if link, ok := r.links[id]; ok {
		return link, false, nil
	}
	conn, err := r.newMedia(id)
	if err != nil {
		return nil, false, err
	}
	link := &PeerLink{ID: id, Name: name, Initiator: initiator, conn: conn}
	r.links[id] = link
	log.Info().Str("module", "app.registry").Str("peer", string(id)).Bool("initiator", initiator).Msg("peer link created")
	return link, true, nil
}

func (r *PeerRegistry) Get(id domain.UserID) (*PeerLink, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	link, ok := r.links[id]
	return link, ok
}

// Remove closes and discards the link for id, if any.
func (r *PeerRegistry) Remove(id domain.UserID) {
	r.mu.Lock()
	link, ok := r.links[id]
	if ok {
		delete(r.links, id)
	}
	r.mu.Unlock()
	if !ok {
		return
	}
	link.close()
	log.Info().Str("module", "app.registry").Str("peer", string(id)).Msg("peer link removed")
}

// ForEach visits every live link outside the registry lock.
func (r *PeerRegistry) ForEach(fn func(*PeerLink)) {
	for _, link := range r.snapshot() {
		fn(link)
	}
}

// ReplaceOutgoingTrack swaps the same-kind sender on every link, in place.
// Connections stay open and no renegotiation is signaled; a per-link
// failure is logged and the sweep continues.
func (r *PeerRegistry) ReplaceOutgoingTrack(track webrtc.TrackLocal) {
	for _, link := range r.snapshot() {
		if err := link.conn.ReplaceOutgoingTrack(track); err != nil {
			log.Error().Err(err).Str("module", "app.registry").Str("peer", string(link.ID)).Msg("replace outgoing track")
		}
	}
}

// Clear closes every link and empties the registry. Used on room exit.
func (r *PeerRegistry) Clear() {
	r.mu.Lock()
	links := r.links
	r.links = make(map[domain.UserID]*PeerLink)
	r.mu.Unlock()
	for _, link := range links {
		link.close()
	}
	log.Info().Str("module", "app.registry").Int("count", len(links)).Msg("registry cleared")
}

func (r *PeerRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.links)
}

func (r *PeerRegistry) snapshot() []*PeerLink {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*PeerLink, 0, len(r.links))
	for _, link := range r.links {
		out = append(out, link)
	}
	return out
}
