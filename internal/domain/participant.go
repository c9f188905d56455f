// Package domain contains entities without logic, just meta-data.
package domain

import "errors"

const (
	MaxUserIDLen   = 36
	MaxUserNameLen = 36
)

var (
	ErrUserNameTooLong = errors.New("user name too long")
	ErrUserNameEmpty   = errors.New("user name empty")
)

type (
	UserID string
	RoomID string
)

// StreamHandle is an opaque reference to a remote media stream. The core
// never owns the stream; it only attaches the handle to a roster entry.
type StreamHandle interface {
	StreamID() string
}

// Participant is one remote member of the room as the roster sees it.
// Mic and camera default to on until a status event says otherwise,
// because the relay delivers join before the first status broadcast.
type Participant struct {
	ID         UserID       `json:"id"`
	Name       string       `json:"name"`
	Stream     StreamHandle `json:"-"`
	IsMicOn    bool         `json:"isMicOn"`
	IsCameraOn bool         `json:"isCameraOn"`
}

// ValidateUserName checks the display-name limits shared by every
// membership event.
func ValidateUserName(name string) error {
	if len(name) == 0 {
		return ErrUserNameEmpty
	}
	if len(name) > MaxUserNameLen {
		return ErrUserNameTooLong
	}
	return nil
}

// NewParticipant avoids raw literals in adapters and keeps the optimistic
// media defaults in one place.
func NewParticipant(id UserID, name string) (*Participant, error) {
	if err := ValidateUserName(name); err != nil {
		return nil, err
	}
	return &Participant{ID: id, Name: name, IsMicOn: true, IsCameraOn: true}, nil
}

// Membership is a {id, name} pair as carried by membership events and
// roster snapshots.
type Membership struct {
	UserID   UserID `json:"userId"`
	UserName string `json:"userName"`
}
