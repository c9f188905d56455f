package domain

// ConnectionStatus is the local user's own admission state.
// Exactly one value is active at a time.
type ConnectionStatus string

const (
	StatusConnecting ConnectionStatus = "connecting"
	StatusWaiting    ConnectionStatus = "waiting"
	StatusJoined     ConnectionStatus = "joined"
	StatusRejected   ConnectionStatus = "rejected"
)

// PendingJoinRequest is one guest waiting at the door, host side.
// Requests keep insertion order.
type PendingJoinRequest struct {
	UserID   UserID `json:"userId"`
	UserName string `json:"userName"`
}
