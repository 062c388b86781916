package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"msigctl/internal/app"
	"msigctl/internal/chain"
)

var (
	home        string
	configPath  string
	network     string
	rpcURL      string
	passphrase  string
	logLevel    string
	waitTimeout time.Duration

	cfg    app.Config
	logger log.Logger
)

// buildApp connects to the chain and wires the services. Tests replace it.
var buildApp = func(ctx context.Context, cfg app.Config, logger log.Logger) (*app.App, error) {
	w, err := app.NewWire(ctx, cfg, promptPassphrase, logger)
	if err != nil {
		return nil, err
	}
	return w.App(), nil
}

// Execute runs the CLI. An interrupt cancels the command context, which
// stops a running batch before its next id.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "msigctl",
		Short:        "Administer a multi-signature wallet contract",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = app.NewLogger(cmd.ErrOrStderr(), logLevel)
			if err != nil {
				return err
			}

			base := home
			if base == "" {
				base = os.Getenv(app.EnvHome)
			}
			if base == "" {
				base = app.DefaultHome()
			}
			path := configPath
			if path == "" {
				path = app.DefaultConfigPath(base)
			}
			cfg, err = app.LoadConfig(path)
			if err != nil {
				return err
			}
			cfg.ApplyEnv(os.LookupEnv)

			flags := cmd.Flags()
			if flags.Changed("home") {
				cfg.Home = home
			}
			if flags.Changed("network") {
				cfg.Network = network
			}
			if flags.Changed("rpc") {
				cfg.RPCURL = rpcURL
			}
			if flags.Changed("passphrase") {
				cfg.Passphrase = passphrase
			}
			cfg.WaitTimeout = waitTimeout
			cfg.ApplyDefaults()
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&home, "home", "", "key store dir (default ~/.msigctl, env "+app.EnvHome+")")
	flags.StringVar(&configPath, "config", "", "config file (default <home>/config.yaml)")
	flags.StringVar(&network, "network", "", "network name from the config (env "+app.EnvNetwork+")")
	flags.StringVar(&rpcURL, "rpc", "", "node JSON-RPC url, overrides the network's (env "+app.EnvRPCURL+")")
	flags.StringVarP(&passphrase, "passphrase", "p", "", "key store passphrase (env "+app.EnvPassphrase+")")
	flags.StringVar(&logLevel, "log-level", "info", "log level: trace, debug, info, warn, error")
	flags.DurationVar(&waitTimeout, "wait-timeout", chain.DefaultWaitTimeout, "how long to wait for each transaction to be mined")

	root.AddCommand(actionCmds()...)
	root.AddCommand(addOwnerCmd(), removeOwnerCmd(), ownersCmd(), keyCmd(), versionCmd())
	return root
}

// openApp builds the chain-backed app for cmd. Callers must Close it.
func openApp(cmd *cobra.Command) (*app.App, error) {
	return buildApp(cmd.Context(), cfg, logger)
}

// promptPassphrase asks for the key store passphrase on the terminal.
func promptPassphrase() (string, error) {
	return readSecret("Passphrase: ")
}

func readSecret(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("passphrase required: use --passphrase or " + app.EnvPassphrase)
	}
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
