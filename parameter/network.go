package parameter

import "time"

// Gateway Connection
const (
	// NetConnectTimeout bounds the websocket handshake
	NetConnectTimeout = 5 * time.Second

	// NetWriteTimeout bounds a single frame write
	NetWriteTimeout = 5 * time.Second

	// NetPongWait is the read deadline extended by each pong
	NetPongWait = 30 * time.Second

	// NetPingInterval must be shorter than NetPongWait
	NetPingInterval = 10 * time.Second

	// NetMaxMessageSize is the read limit per frame
	NetMaxMessageSize = 1 << 20

	// NetTokenTTL is the lifetime of the session bearer token
	NetTokenTTL = 12 * time.Hour
)

// Reload Recovery
const (
	// NetReconnectAttempts bounds redials before a rebuilt controller gives up
	NetReconnectAttempts = 5

	// NetReconnectBackoff is the pause between redials
	NetReconnectBackoff = time.Second
)
