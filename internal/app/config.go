package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/yaml.v3"

	"msigctl/internal/crypto"
)

const (
	// DefaultNetwork is used when neither the config nor the environment
	// names a network.
	DefaultNetwork = "localhost"
	// DefaultLocalRPC is the endpoint of DefaultNetwork when it is not
	// configured explicitly.
	DefaultLocalRPC = "http://127.0.0.1:8545"
	// DefaultDeploymentsDir is where hardhat-deploy writes deployment files.
	DefaultDeploymentsDir = "deployments"

	configFileName = "config.yaml"
)

// Environment variables read by ApplyEnv.
const (
	EnvHome       = "MSIGCTL_HOME"
	EnvNetwork    = "MSIGCTL_NETWORK"
	EnvRPCURL     = "MSIGCTL_RPC_URL"
	EnvPassphrase = "MSIGCTL_PASSPHRASE"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Network        string             `yaml:"network"`
	DeploymentsDir string             `yaml:"deploymentsDir"`
	NamedAccounts  map[string]string  `yaml:"namedAccounts"`
	Networks       map[string]Network `yaml:"networks"`

	Home        string        `yaml:"-"` // key store directory, e.g. $HOME/.msigctl
	RPCURL      string        `yaml:"-"` // overrides the network's rpc
	Passphrase  string        `yaml:"-"` // key store passphrase; prompted for when empty
	WaitTimeout time.Duration `yaml:"-"` // mining wait per transaction
}

// Network is the per-network section of the config file.
type Network struct {
	RPC           string            `yaml:"rpc"`
	ChainID       uint64            `yaml:"chainId"` // 0 asks the node
	Deployments   map[string]string `yaml:"deployments"`
	NamedAccounts map[string]string `yaml:"namedAccounts"`
}

// DefaultHome returns $HOME/.msigctl, or .msigctl when no home is known.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".msigctl"
	}
	return filepath.Join(home, ".msigctl")
}

// DefaultConfigPath returns the config file location inside home.
func DefaultConfigPath(home string) string {
	return filepath.Join(home, configFileName)
}

// LoadConfig reads the YAML config at path. A missing file yields an empty
// config.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overlays the MSIGCTL_* variables that are set, even when empty.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	env := func(name, fallback string) string {
		if v, ok := lookup(name); ok {
			return v
		}
		return fallback
	}
	c.Home = env(EnvHome, c.Home)
	c.Network = env(EnvNetwork, c.Network)
	c.RPCURL = env(EnvRPCURL, c.RPCURL)
	c.Passphrase = env(EnvPassphrase, c.Passphrase)
}

// ApplyDefaults fills every unset field.
func (c *Config) ApplyDefaults() {
	if c.Home == "" {
		c.Home = DefaultHome()
	}
	if c.Network == "" {
		c.Network = DefaultNetwork
	}
	if c.DeploymentsDir == "" {
		c.DeploymentsDir = DefaultDeploymentsDir
	}
}

// ActiveNetwork returns the settings of the selected network with RPCURL
// applied.
func (c Config) ActiveNetwork() (Network, error) {
	n, ok := c.Networks[c.Network]
	if !ok {
		switch {
		case c.RPCURL != "":
		case c.Network == DefaultNetwork:
			n.RPC = DefaultLocalRPC
		default:
			return Network{}, fmt.Errorf("unknown network %q (configured: %v)", c.Network, c.networkNames())
		}
	}
	if c.RPCURL != "" {
		n.RPC = c.RPCURL
	}
	if n.RPC == "" {
		return Network{}, fmt.Errorf("network %q has no rpc url", c.Network)
	}
	return n, nil
}

// Accounts returns the named accounts of the active network. Per-network
// entries override the top-level ones.
func (c Config) Accounts() (map[string]common.Address, error) {
	out := make(map[string]common.Address)
	if err := parseAddresses("namedAccounts", c.NamedAccounts, out); err != nil {
		return nil, err
	}
	n := c.Networks[c.Network]
	if err := parseAddresses("networks."+c.Network+".namedAccounts", n.NamedAccounts, out); err != nil {
		return nil, err
	}
	return out, nil
}

// StaticDeployments returns the deployments pinned in the config for the
// active network.
func (c Config) StaticDeployments() (map[string]common.Address, error) {
	out := make(map[string]common.Address)
	n := c.Networks[c.Network]
	if err := parseAddresses("networks."+c.Network+".deployments", n.Deployments, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Resolved holds the parsed view of a Config for its active network.
type Resolved struct {
	Network     Network
	Accounts    map[string]common.Address
	Deployments map[string]common.Address
}

// Resolve checks everything needed to talk to the chain and returns the
// active network with its parsed accounts and pinned deployments.
func (c Config) Resolve() (Resolved, error) {
	if c.Home == "" {
		return Resolved{}, errors.New("home directory not set")
	}
	network, err := c.ActiveNetwork()
	if err != nil {
		return Resolved{}, err
	}
	named, err := c.Accounts()
	if err != nil {
		return Resolved{}, err
	}
	static, err := c.StaticDeployments()
	if err != nil {
		return Resolved{}, err
	}
	return Resolved{Network: network, Accounts: named, Deployments: static}, nil
}

// Validate reports whether Resolve would succeed.
func (c Config) Validate() error {
	_, err := c.Resolve()
	return err
}

func (c Config) networkNames() []string {
	names := make([]string, 0, len(c.Networks))
	for n := range c.Networks {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func parseAddresses(section string, in map[string]string, out map[string]common.Address) error {
	for name, raw := range in {
		addr, err := crypto.ParseAddress(raw)
		if err != nil {
			return fmt.Errorf("%s.%s: %w", section, name, err)
		}
		out[name] = addr
	}
	return nil
}
