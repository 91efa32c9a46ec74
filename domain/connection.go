package domain

// ConnectionState is the lifecycle of the single real-time session.
// StateError is terminal for the attempt; recovery requires a fresh
// Connect with a fresh token.
type ConnectionState string

const (
	StateDisconnected ConnectionState = "disconnected"
	StateConnecting   ConnectionState = "connecting"
	StateConnected    ConnectionState = "connected"
	StateError        ConnectionState = "error"
)
