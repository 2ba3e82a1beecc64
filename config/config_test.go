package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/blockrooms/chain"
	"github.com/lixenwraith/blockrooms/input"
	"github.com/lixenwraith/blockrooms/network"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blockrooms.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, chain.DefaultNetwork, cfg.Network.Network)
	assert.Equal(t, string(network.CodecMsgpack), cfg.Network.Codec)
	assert.Equal(t, 2*time.Second, cfg.Network.RefetchInterval)
}

func TestLoadOverridesFile(t *testing.T) {
	path := writeFile(t, `
network:
  network: local
  codec: json
  player_address: "0xabc"
  session_key: secret
  call_timeout: 5s
audio:
  enabled: false
  volume: 0.25
  weapon: shotgun
game:
  enemies: 3
keys:
  fire: [f]
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Network.Network)
	assert.Equal(t, "ws://127.0.0.1:5050/rpc", cfg.GatewayURL())
	assert.Equal(t, 5*time.Second, cfg.Network.CallTimeout)
	assert.Equal(t, 3, cfg.Game.Enemies)
	// untouched fields keep defaults
	assert.Equal(t, 2*time.Second, cfg.Network.RefetchInterval)

	nc := cfg.NetworkConfig()
	assert.Equal(t, network.CodecJSON, nc.Codec)
	assert.Equal(t, "0xabc", nc.PlayerAddress)
	assert.Equal(t, []byte("secret"), nc.SessionKey)

	ac := cfg.AudioConfig()
	assert.False(t, ac.Enabled)
	assert.InDelta(t, 0.25, ac.MasterVolume, 1e-9)

	kt := cfg.KeyTable()
	assert.Equal(t, input.IntentFire, kt.Runes['f'])
	assert.Equal(t, input.IntentQuit, kt.Keys[tcell.KeyCtrlC], "defaults survive overrides")
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"network": "network:\n  network: nowhere\n",
		"codec":   "network:\n  codec: xml\n",
		"volume":  "audio:\n  volume: 2\n",
		"weapon":  "audio:\n  weapon: rifle\n",
		"enemies": "game:\n  enemies: -1\n",
		"keys":    "keys:\n  teleport: [t]\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, body))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoadMalformed(t *testing.T) {
	_, err := Load(writeFile(t, "network: [unterminated"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestExplicitGatewaySkipsPreset(t *testing.T) {
	cfg := Default()
	cfg.Network.Network = "unknown"
	cfg.Network.GatewayURL = "ws://10.0.0.1:9000/rpc"
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "ws://10.0.0.1:9000/rpc", cfg.NetworkConfig().GatewayURL)

	require.NoError(t, cfg.SelectNetwork("mainnet"))
	assert.Empty(t, cfg.Network.GatewayURL)
	assert.ErrorIs(t, cfg.SelectNetwork("nowhere"), ErrInvalid)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("BLOCKROOMS_NETWORK", "local")
	t.Setenv("BLOCKROOMS_PLAYER_ADDRESS", "0xfeed")
	t.Setenv("BLOCKROOMS_AUDIO_ENABLED", "false")
	t.Setenv("BLOCKROOMS_MASTER_VOLUME", "40")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "local", cfg.Network.Network)
	assert.Equal(t, "0xfeed", cfg.Network.PlayerAddress)
	assert.False(t, cfg.Audio.Enabled)
	assert.InDelta(t, 0.4, cfg.Audio.Volume, 1e-9)
}
