package chain

import (
	"fmt"
	"sort"
)

// Network describes one deployment of the backend
type Network struct {
	Name       string `yaml:"name"`
	GatewayURL string `yaml:"gateway_url"`
	IndexerURL string `yaml:"indexer_url"`
}

// DefaultNetwork is selected when nothing is configured or persisted
const DefaultNetwork = "sepolia"

var networks = map[string]Network{
	"mainnet": {
		Name:       "mainnet",
		GatewayURL: "wss://api.cartridge.gg/x/starknet/mainnet/ws",
		IndexerURL: "https://api.cartridge.gg/x/blockrooms-main/torii",
	},
	"sepolia": {
		Name:       "sepolia",
		GatewayURL: "wss://api.cartridge.gg/x/starknet/sepolia/ws",
		IndexerURL: "https://api.cartridge.gg/x/blockrooms/torii",
	},
	"local": {
		Name:       "local",
		GatewayURL: "ws://127.0.0.1:5050/rpc",
		IndexerURL: "",
	},
}

// LookupNetwork returns the preset for name
func LookupNetwork(name string) (Network, error) {
	n, ok := networks[name]
	if !ok {
		return Network{}, fmt.Errorf("unknown network %q (known: %v)", name, NetworkNames())
	}
	return n, nil
}

// NetworkNames returns preset names in sorted order
func NetworkNames() []string {
	names := make([]string, 0, len(networks))
	for name := range networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
