package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/huddlekit/huddle/internal/domain"
)

// AdmissionGate tracks the local user's own admission state plus, host
// side, the queue of guests waiting at the door.
//
// Legal transitions: connecting → waiting → joined, connecting → joined
// (no gate configured, or implicit approval via a roster snapshot), and
// waiting → rejected. Rejected is terminal.
type AdmissionGate struct {
	mu      sync.Mutex
	status  domain.ConnectionStatus
	pending []domain.PendingJoinRequest

	// onApproved fires at most once, on the transition into joined
	// by explicit approval.
	onApproved func()
	notified   bool
}

func NewAdmissionGate(onApproved func()) *AdmissionGate {
	return &AdmissionGate{status: domain.StatusConnecting, onApproved: onApproved}
}

func (g *AdmissionGate) Status() domain.ConnectionStatus {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status
}

// MarkWaiting records the relay's "must wait" signal.
func (g *AdmissionGate) MarkWaiting() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.status == domain.StatusRejected || g.status == domain.StatusJoined {
		return
	}
	g.status = domain.StatusWaiting
	log.Info().Str("module", "app.admission").Msg("waiting for approval")
}

// Approve moves into joined on explicit approval and fires the one-shot
// notification. Reports whether the transition happened.
func (g *AdmissionGate) Approve() bool {
	g.mu.Lock()
	if g.status == domain.StatusRejected {
		g.mu.Unlock()
		return false
	}
	already := g.status == domain.StatusJoined
	g.status = domain.StatusJoined
	notify := !already && !g.notified && g.onApproved != nil
	if notify {
		g.notified = true
	}
	g.mu.Unlock()
	if notify {
		g.onApproved()
	}
	return !already
}

// ApproveImplicit moves into joined without the notification side effect,
// used when a roster snapshot arrives while not rejected.
func (g *AdmissionGate) ApproveImplicit() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.status == domain.StatusRejected || g.status == domain.StatusJoined {
		return false
	}
	g.status = domain.StatusJoined
	log.Info().Str("module", "app.admission").Msg("implicitly approved by roster snapshot")
	return true
}

// Reject is terminal: no later event changes the status again.
func (g *AdmissionGate) Reject() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.status == domain.StatusRejected {
		return false
	}
	g.status = domain.StatusRejected
	log.Info().Str("module", "app.admission").Msg("join rejected")
	return true
}

// AddRequest appends a pending join request, host side. A duplicate id
// keeps the original request and position.
func (g *AdmissionGate) AddRequest(id domain.UserID, name string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, req := range g.pending {
		if req.UserID == id {
			return false
		}
	}
	g.pending = append(g.pending, domain.PendingJoinRequest{UserID: id, UserName: name})
	log.Info().Str("module", "app.admission").Str("user", string(id)).Str("name", name).Msg("join request queued")
	return true
}

// TakeRequest removes and returns the request for id. The second decision
// for the same id finds nothing and becomes a no-op.
func (g *AdmissionGate) TakeRequest(id domain.UserID) (domain.PendingJoinRequest, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i, req := range g.pending {
		if req.UserID == id {
			g.pending = append(g.pending[:i], g.pending[i+1:]...)
			return req, true
		}
	}
	return domain.PendingJoinRequest{}, false
}

// PendingSnapshot returns the queued requests in insertion order.
func (g *AdmissionGate) PendingSnapshot() []domain.PendingJoinRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]domain.PendingJoinRequest, len(g.pending))
	copy(out, g.pending)
	return out
}
