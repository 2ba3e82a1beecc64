package network

import (
	"fmt"
	"time"

	"github.com/lixenwraith/blockrooms/parameter"
)

// CodecName selects the wire encoding
type CodecName string

const (
	CodecMsgpack CodecName = "msgpack" // Binary frames
	CodecJSON    CodecName = "json"    // Text frames
)

// Config holds gateway connection configuration
type Config struct {
	// GatewayURL is the websocket endpoint, ws:// or wss://
	GatewayURL string

	// PlayerAddress is the account the session token is issued for
	PlayerAddress string

	// SessionKey signs the bearer token
	SessionKey []byte

	Codec CodecName

	// Timing
	ConnectTimeout time.Duration
	CallTimeout    time.Duration
	WriteTimeout   time.Duration
	PongWait       time.Duration
	PingInterval   time.Duration
	TokenTTL       time.Duration

	// MaxMessageSize is the per-frame read limit
	MaxMessageSize int64
}

// DefaultConfig returns production-safe defaults; URL and credentials must be set
func DefaultConfig() *Config {
	return &Config{
		Codec:          CodecMsgpack,
		ConnectTimeout: parameter.NetConnectTimeout,
		CallTimeout:    10 * time.Second,
		WriteTimeout:   parameter.NetWriteTimeout,
		PongWait:       parameter.NetPongWait,
		PingInterval:   parameter.NetPingInterval,
		TokenTTL:       parameter.NetTokenTTL,
		MaxMessageSize: parameter.NetMaxMessageSize,
	}
}

// LocalConfig returns a config for a gateway on the given URL with a dev key
func LocalConfig(url, address string, key []byte) *Config {
	cfg := DefaultConfig()
	cfg.GatewayURL = url
	cfg.PlayerAddress = address
	cfg.SessionKey = key
	return cfg
}

// Validate checks that the config can be dialed
func (c *Config) Validate() error {
	if c.GatewayURL == "" {
		return fmt.Errorf("network: gateway url is empty")
	}
	if c.PlayerAddress == "" {
		return fmt.Errorf("network: player address is empty")
	}
	if len(c.SessionKey) == 0 {
		return fmt.Errorf("network: session key is empty")
	}
	if _, err := NewCodec(c.Codec); err != nil {
		return err
	}
	if c.PingInterval >= c.PongWait {
		return fmt.Errorf("network: ping interval %v must be shorter than pong wait %v", c.PingInterval, c.PongWait)
	}
	return nil
}
