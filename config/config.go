// Package config loads the client configuration from YAML with
// environment overrides
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/blockrooms/audio"
	"github.com/lixenwraith/blockrooms/chain"
	"github.com/lixenwraith/blockrooms/combat"
	"github.com/lixenwraith/blockrooms/input"
	"github.com/lixenwraith/blockrooms/network"
	"github.com/lixenwraith/blockrooms/parameter"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid config")

// Config is the full client configuration
type Config struct {
	Network NetworkSection      `yaml:"network"`
	Audio   AudioSection        `yaml:"audio"`
	Journal JournalSection      `yaml:"journal"`
	Log     LogSection          `yaml:"log"`
	Game    GameSection         `yaml:"game"`
	Keys    map[string][]string `yaml:"keys,omitempty"`
}

type NetworkSection struct {
	// Network is a preset name; GatewayURL overrides its endpoint
	Network         string        `yaml:"network"`
	GatewayURL      string        `yaml:"gateway_url,omitempty"`
	Codec           string        `yaml:"codec"`
	PlayerAddress   string        `yaml:"player_address"`
	SessionKey      string        `yaml:"session_key"`
	CallTimeout     time.Duration `yaml:"call_timeout"`
	RefetchInterval time.Duration `yaml:"refetch_interval"`
}

type AudioSection struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
	Weapon  string  `yaml:"weapon"`
}

type JournalSection struct {
	// Path is the sqlite file; empty keeps the journal in memory
	Path string `yaml:"path"`
}

type LogSection struct {
	Dir       string `yaml:"dir"`
	Debug     bool   `yaml:"debug"`
	Telemetry bool   `yaml:"telemetry"`
}

type GameSection struct {
	Enemies  int     `yaml:"enemies"`
	Seed     int64   `yaml:"seed"` // Zero seeds from the clock
	MaxSpeed float64 `yaml:"max_speed"`
	TurnRate float64 `yaml:"turn_rate"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Network: NetworkSection{
			Network:         chain.DefaultNetwork,
			Codec:           string(network.CodecMsgpack),
			PlayerAddress:   "0x0",
			SessionKey:      "blockrooms-dev-key",
			CallTimeout:     10 * time.Second,
			RefetchInterval: parameter.RefetchInterval,
		},
		Audio: AudioSection{
			Enabled: true,
			Volume:  parameter.AudioDefaultVolume,
			Weapon:  string(combat.KindPistol),
		},
		Log: LogSection{
			Dir: "logs",
		},
		Game: GameSection{
			Enemies:  parameter.EnemyDefaultCount,
			MaxSpeed: parameter.PlayerDefaultMaxSpeed,
			TurnRate: parameter.PlayerDefaultTurnRate,
		},
	}
}

// Load reads path over the defaults, applies the environment and validates
// An empty path skips the file
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from BLOCKROOMS_* variables
func (c *Config) ApplyEnv() {
	if v := os.Getenv("BLOCKROOMS_NETWORK"); v != "" {
		c.Network.Network = v
	}
	if v := os.Getenv("BLOCKROOMS_GATEWAY_URL"); v != "" {
		c.Network.GatewayURL = v
	}
	if v := os.Getenv("BLOCKROOMS_PLAYER_ADDRESS"); v != "" {
		c.Network.PlayerAddress = v
	}
	if v := os.Getenv("BLOCKROOMS_SESSION_KEY"); v != "" {
		c.Network.SessionKey = v
	}
	if v := os.Getenv("BLOCKROOMS_AUDIO_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Audio.Enabled = b
		}
	}
	// 0-100 in the environment, matching the audio package
	if v := os.Getenv("BLOCKROOMS_MASTER_VOLUME"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Audio.Volume = float64(n) / 100
		}
	}
}

// Validate checks ranges and names
func (c *Config) Validate() error {
	if c.Network.GatewayURL == "" {
		if _, err := chain.LookupNetwork(c.Network.Network); err != nil {
			return fmt.Errorf("%w: network.network: %v", ErrInvalid, err)
		}
	}
	if _, err := network.NewCodec(network.CodecName(c.Network.Codec)); err != nil {
		return fmt.Errorf("%w: network.codec: %v", ErrInvalid, err)
	}
	if c.Network.PlayerAddress == "" {
		return fmt.Errorf("%w: network.player_address is empty", ErrInvalid)
	}
	if c.Network.SessionKey == "" {
		return fmt.Errorf("%w: network.session_key is empty", ErrInvalid)
	}
	if c.Network.CallTimeout <= 0 {
		return fmt.Errorf("%w: network.call_timeout must be positive", ErrInvalid)
	}
	if c.Network.RefetchInterval <= 0 {
		return fmt.Errorf("%w: network.refetch_interval must be positive", ErrInvalid)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("%w: audio.volume %v outside [0,1]", ErrInvalid, c.Audio.Volume)
	}
	if c.Audio.Weapon != string(combat.KindPistol) && c.Audio.Weapon != string(combat.KindShotgun) {
		return fmt.Errorf("%w: audio.weapon %q", ErrInvalid, c.Audio.Weapon)
	}
	if c.Game.Enemies < 0 {
		return fmt.Errorf("%w: game.enemies must not be negative", ErrInvalid)
	}
	if c.Game.MaxSpeed <= 0 {
		return fmt.Errorf("%w: game.max_speed must be positive", ErrInvalid)
	}
	if c.Game.TurnRate <= 0 {
		return fmt.Errorf("%w: game.turn_rate must be positive", ErrInvalid)
	}
	if _, err := input.FromActionMap(c.Keys); err != nil {
		return fmt.Errorf("%w: keys: %v", ErrInvalid, err)
	}
	return nil
}

// SelectNetwork switches to a preset and clears any explicit gateway
func (c *Config) SelectNetwork(name string) error {
	if _, err := chain.LookupNetwork(name); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	c.Network.Network = name
	c.Network.GatewayURL = ""
	return nil
}

// GatewayURL resolves the endpoint from the explicit URL or the preset
func (c *Config) GatewayURL() string {
	if c.Network.GatewayURL != "" {
		return c.Network.GatewayURL
	}
	n, err := chain.LookupNetwork(c.Network.Network)
	if err != nil {
		return ""
	}
	return n.GatewayURL
}

// NetworkConfig builds the gateway client config
func (c *Config) NetworkConfig() *network.Config {
	nc := network.DefaultConfig()
	nc.GatewayURL = c.GatewayURL()
	nc.PlayerAddress = c.Network.PlayerAddress
	nc.SessionKey = []byte(c.Network.SessionKey)
	nc.Codec = network.CodecName(c.Network.Codec)
	nc.CallTimeout = c.Network.CallTimeout
	return nc
}

// AudioConfig builds the audio config, environment effect volumes included
func (c *Config) AudioConfig() *audio.AudioConfig {
	ac := audio.LoadAudioConfig()
	ac.Enabled = c.Audio.Enabled
	ac.MasterVolume = c.Audio.Volume
	return ac
}

// KeyTable returns the default bindings with the configured overrides
func (c *Config) KeyTable() *input.KeyTable {
	kt := input.DefaultKeyTable()
	if override, err := input.FromActionMap(c.Keys); err == nil {
		kt.Merge(override)
	}
	return kt
}
