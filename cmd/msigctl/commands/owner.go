package commands

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"msigctl/internal/crypto"
	"msigctl/internal/domain"
)

type ownerChange func(ctx context.Context, owners domain.OwnerManager, wallet, owner, signer common.Address) (domain.Submission, error)

func addOwnerCmd() *cobra.Command {
	return ownerChangeCmd("add-owner", "Propose adding an owner to the multisig",
		func(ctx context.Context, m domain.OwnerManager, wallet, owner, signer common.Address) (domain.Submission, error) {
			return m.AddOwner(ctx, wallet, owner, signer)
		})
}

func removeOwnerCmd() *cobra.Command {
	return ownerChangeCmd("remove-owner", "Propose removing an owner from the multisig",
		func(ctx context.Context, m domain.OwnerManager, wallet, owner, signer common.Address) (domain.Submission, error) {
			return m.RemoveOwner(ctx, wallet, owner, signer)
		})
}

// add-owner --address <addr>: submit a wallet transaction changing the owner
// set. Other owners then confirm it with sign-tx.
func ownerChangeCmd(use, short string, change ownerChange) *cobra.Command {
	var address, signerName, multisig string
	cmd := &cobra.Command{
		Use:   use + " --address <owner>",
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := crypto.ParseAddress(address)
			if err != nil {
				return err
			}
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			ctx := cmd.Context()

			target, err := a.Resolver.Resolve(ctx, multisig)
			if err != nil {
				return err
			}
			signer, err := a.Accounts.ResolveSigner(signerName)
			if err != nil {
				return err
			}
			sub, err := change(ctx, a.Owners, target.Address, owner, signer)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "submitted multisig tx %s (%s)\n", sub.ID, sub.TxHash.Hex())
			return nil
		},
	}
	cmd.Flags().StringVar(&address, "address", "", "owner address")
	cmd.Flags().StringVar(&signerName, "signer", defaultSigner, "signing account: named account or address")
	cmd.Flags().StringVar(&multisig, "multisig", defaultMultisig, "multisig wallet address (default deployment if unset, invalid or codeless)")
	_ = cmd.MarkFlagRequired("address")
	return cmd
}

// owners: list the owners and the confirmation threshold.
func ownersCmd() *cobra.Command {
	var multisig string
	cmd := &cobra.Command{
		Use:   "owners",
		Short: "List the multisig owners",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			target, err := a.Resolver.Resolve(cmd.Context(), multisig)
			if err != nil {
				return err
			}
			set, err := a.Owners.Owners(cmd.Context(), target.Address)
			if err != nil {
				return err
			}
			renderOwners(cmd.OutOrStdout(), set)
			return nil
		},
	}
	cmd.Flags().StringVar(&multisig, "multisig", defaultMultisig, "multisig wallet address (default deployment if unset, invalid or codeless)")
	return cmd
}
