package core

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/huddlekit/huddle/internal/domain"
)

// Roster is the threadsafe ordered collection of remote participants.
// Only membership events and explicit operations below mutate it; readers
// get copies via Snapshot.
type Roster struct {
	mu    sync.RWMutex
	order []domain.UserID
	byID  map[domain.UserID]*domain.Participant
}

func NewRoster() *Roster {
	return &Roster{byID: make(map[domain.UserID]*domain.Participant)}
}

// UpsertFromMembership adds a participant for id unless one is already
// present. Reports whether an entry was created.
func (r *Roster) UpsertFromMembership(id domain.UserID, name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; ok {
		return false
	}
	p, err := domain.NewParticipant(id, name)
	if err != nil {
		log.Warn().Err(err).Str("module", "core.roster").Str("user", string(id)).Msg("membership with bad name, dropped")
		return false
	}
	r.byID[id] = p
	r.order = append(r.order, id)
	log.Info().Str("module", "core.roster").Str("user", string(id)).Str("name", name).Msg("participant added")
	return true
}

// RemoveByID drops the entry for id, if any.
func (r *Roster) RemoveByID(id domain.UserID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return false
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	log.Info().Str("module", "core.roster").Str("user", string(id)).Msg("participant removed")
	return true
}

// ApplyRemoteTrack attaches an arrived stream to the matching entry.
// A stream for an unknown id is dropped; the next membership event
// re-establishes the entry and later track events populate it.
func (r *Roster) ApplyRemoteTrack(id domain.UserID, stream domain.StreamHandle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		log.Warn().Str("module", "core.roster").Str("user", string(id)).Msg("track for unknown participant, dropped")
		return false
	}
	p.Stream = stream
	return true
}

// ApplyMediaStatus records a mic/camera flag change for id.
func (r *Roster) ApplyMediaStatus(id domain.UserID, kind domain.MediaKind, isOn bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		log.Warn().Str("module", "core.roster").Str("user", string(id)).Msg("media status for unknown participant, dropped")
		return false
	}
	switch kind {
	case domain.MediaAudio:
		p.IsMicOn = isOn
	case domain.MediaVideo:
		p.IsCameraOn = isOn
	}
	return true
}

// SnapshotFrom replaces the whole roster from a membership list, used when
// joining an already-populated room. Duplicate ids collapse to one entry
// keeping the last occurrence's name.
func (r *Roster) SnapshotFrom(users []domain.Membership) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = r.order[:0]
	r.byID = make(map[domain.UserID]*domain.Participant, len(users))
	for _, u := range users {
		if p, ok := r.byID[u.UserID]; ok {
			p.Name = u.UserName
			continue
		}
		p, err := domain.NewParticipant(u.UserID, u.UserName)
		if err != nil {
			log.Warn().Err(err).Str("module", "core.roster").Str("user", string(u.UserID)).Msg("snapshot entry with bad name, dropped")
			continue
		}
		r.byID[u.UserID] = p
		r.order = append(r.order, u.UserID)
	}
	log.Info().Str("module", "core.roster").Int("count", len(r.order)).Msg("roster replaced from snapshot")
}

// Len reports the number of participants.
func (r *Roster) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Snapshot returns participants in insertion order. Entries are copies;
// mutating them has no effect on the roster.
func (r *Roster) Snapshot() []domain.Participant {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Participant, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.byID[id])
	}
	return out
}
