package app_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"msigctl/internal/app"
)

const sampleConfig = `
network: testnet
deploymentsDir: ./deploy
namedAccounts:
  deployer: "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
  signer: "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
networks:
  testnet:
    rpc: https://testnet.example/rpc
    chainId: 31
    deployments:
      MultiSigWallet: "0x5FbDB2315678afecb367f032d93F642f64180aa3"
    namedAccounts:
      signer: "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"
  empty: {}
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func noEnv(string) (string, bool) { return "", false }

func TestLoadConfig(t *testing.T) {
	cfg, err := app.LoadConfig(writeConfig(t, sampleConfig))
	require.NoError(t, err)
	cfg.ApplyEnv(noEnv)
	cfg.ApplyDefaults()
	require.NoError(t, cfg.Validate())

	require.Equal(t, "testnet", cfg.Network)
	require.Equal(t, "./deploy", cfg.DeploymentsDir)

	net, err := cfg.ActiveNetwork()
	require.NoError(t, err)
	require.Equal(t, "https://testnet.example/rpc", net.RPC)
	require.Equal(t, uint64(31), net.ChainID)

	accounts, err := cfg.Accounts()
	require.NoError(t, err)
	require.Equal(t, common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"), accounts["deployer"])
	require.Equal(t, common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"), accounts["signer"])

	deps, err := cfg.StaticDeployments()
	require.NoError(t, err)
	require.Equal(t, common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3"), deps["MultiSigWallet"])
}

func TestLoadConfig_MissingFile(t *testing.T) {
	cfg, err := app.LoadConfig(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	cfg.ApplyEnv(noEnv)
	cfg.ApplyDefaults()

	require.Equal(t, app.DefaultNetwork, cfg.Network)
	require.Equal(t, app.DefaultDeploymentsDir, cfg.DeploymentsDir)
	net, err := cfg.ActiveNetwork()
	require.NoError(t, err)
	require.Equal(t, app.DefaultLocalRPC, net.RPC)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_BadYAML(t *testing.T) {
	_, err := app.LoadConfig(writeConfig(t, "network: [unterminated"))
	require.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	cfg, err := app.LoadConfig(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	env := map[string]string{
		app.EnvHome:       "/tmp/msig-home",
		app.EnvNetwork:    "empty",
		app.EnvRPCURL:     "http://10.0.0.1:8545",
		app.EnvPassphrase: "",
	}
	cfg.Passphrase = "from-flag"
	cfg.ApplyEnv(func(k string) (string, bool) { v, ok := env[k]; return v, ok })

	require.Equal(t, "/tmp/msig-home", cfg.Home)
	require.Equal(t, "empty", cfg.Network)
	require.Empty(t, cfg.Passphrase)

	net, err := cfg.ActiveNetwork()
	require.NoError(t, err)
	require.Equal(t, "http://10.0.0.1:8545", net.RPC)
}

func TestResolve(t *testing.T) {
	cfg, err := app.LoadConfig(writeConfig(t, sampleConfig))
	require.NoError(t, err)
	cfg.Home = t.TempDir()
	cfg.ApplyDefaults()

	resolved, err := cfg.Resolve()
	require.NoError(t, err)
	require.Equal(t, "https://testnet.example/rpc", resolved.Network.RPC)
	require.Equal(t, uint64(31), resolved.Network.ChainID)
	require.Len(t, resolved.Accounts, 2)
	require.Equal(t, common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"), resolved.Accounts["signer"])
	require.Equal(t, common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3"), resolved.Deployments["MultiSigWallet"])

	cfg.Home = ""
	_, err = cfg.Resolve()
	require.ErrorContains(t, err, "home directory not set")
}

func TestValidate(t *testing.T) {
	cases := map[string]struct {
		Body string
		Net  string
	}{
		"unknown network": {Body: sampleConfig, Net: "mainnet"},
		"missing rpc":     {Body: sampleConfig, Net: "empty"},
		"bad account": {Body: `
namedAccounts:
  deployer: "0x1234"
`},
		"bad checksum": {Body: `
namedAccounts:
  deployer: "0xF39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
`},
		"bad deployment": {Body: `
networks:
  localhost:
    rpc: http://127.0.0.1:8545
    deployments:
      MultiSigWallet: nope
`},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			cfg, err := app.LoadConfig(writeConfig(t, tc.Body))
			require.NoError(t, err)
			cfg.Network = tc.Net
			cfg.ApplyDefaults()
			require.Error(t, cfg.Validate())
		})
	}
}
