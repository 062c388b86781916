package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"msigctl/internal/app"
	"msigctl/internal/crypto"
	"msigctl/internal/util/memzero"
)

func keyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage local signer keys",
	}
	cmd.AddCommand(keyImportCmd(), keyListCmd())
	return cmd
}

// key import: read a hex private key from stdin and store it encrypted.
func keyImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Import a hex private key from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readKey(cmd.InOrStdin())
			if err != nil {
				return err
			}
			key, err := crypto.ParsePrivateKey(raw)
			if err != nil {
				return err
			}
			pass := cfg.Passphrase
			if pass == "" {
				if pass, err = newPassphrase(); err != nil {
					return err
				}
			}

			addr, err := app.NewKeyStore(cfg).SaveKey(pass, key)
			memzero.ZeroKey(key)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), addr.Hex())
			return nil
		},
	}
}

// key list: print the addresses with a stored key.
func keyListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored signer keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addrs, err := app.NewKeyStore(cfg).ListKeys()
			if err != nil {
				return err
			}
			for _, a := range addrs {
				fmt.Fprintln(cmd.OutOrStdout(), a.Hex())
			}
			return nil
		},
	}
}

// readKey reads one line from in, prompting without echo when in is the
// terminal.
func readKey(in io.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return readSecret("Private key: ")
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", fmt.Errorf("no private key on stdin")
	}
	return line, nil
}

func newPassphrase() (string, error) {
	first, err := readSecret("New passphrase: ")
	if err != nil {
		return "", err
	}
	second, err := readSecret("Repeat passphrase: ")
	if err != nil {
		return "", err
	}
	if first != second {
		return "", fmt.Errorf("passphrases do not match")
	}
	return first, nil
}
