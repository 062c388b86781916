package commands

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"msigctl/internal/domain"
	"msigctl/internal/idspec"
	"msigctl/internal/services/dispatch"
)

const (
	defaultSigner   = "deployer"
	defaultMultisig = "0x0000000000000000000000000000000000000000"
)

// action describes the single-id and multi-id command pair of one kind.
type action struct {
	kind   domain.ActionKind
	single string
	multi  string
	short  string
}

var actions = []action{
	{kind: domain.ActionSign, single: "sign-tx", multi: "sign-txs", short: "Confirm"},
	{kind: domain.ActionExecute, single: "execute-tx", multi: "execute-txs", short: "Execute"},
	{kind: domain.ActionRevoke, single: "revoke-sig", multi: "revoke-sigs", short: "Revoke the signer's confirmation of"},
	{kind: domain.ActionCheckStatus, single: "check-tx", multi: "check-txs", short: "Show the state of"},
}

func actionCmds() []*cobra.Command {
	cmds := make([]*cobra.Command, 0, 2*len(actions))
	for _, a := range actions {
		cmds = append(cmds, singleCmd(a), multiCmd(a))
	}
	return cmds
}

// batchFlags are the flags shared by every action command.
type batchFlags struct {
	signer          string
	multisig        string
	continueOnError bool
	strictIDs       bool
}

func (f *batchFlags) register(cmd *cobra.Command, kind domain.ActionKind, multi bool) {
	if kind.Mutates() {
		cmd.Flags().StringVar(&f.signer, "signer", defaultSigner, "signing account: named account or address")
	}
	cmd.Flags().StringVar(&f.multisig, "multisig", defaultMultisig, "multisig wallet address (default deployment if unset, invalid or codeless)")
	if multi {
		cmd.Flags().BoolVar(&f.continueOnError, "continue-on-error", false, "attempt every id and report all failures")
		cmd.Flags().BoolVar(&f.strictIDs, "strict-ids", false, "reject malformed ranges instead of skipping them")
	}
}

// sign-tx <id>: run the action on exactly one transaction id.
func singleCmd(a action) *cobra.Command {
	var f batchFlags
	cmd := &cobra.Command{
		Use:   a.single + " <id>",
		Short: a.short + " a multisig transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, a.kind, []domain.TxID{domain.TxID(args[0])}, f)
		},
	}
	f.register(cmd, a.kind, false)
	return cmd
}

// sign-txs <ids>: run the action over an id spec such as 12,14,16-20.
func multiCmd(a action) *cobra.Command {
	var f batchFlags
	cmd := &cobra.Command{
		Use:   a.multi + " <ids>",
		Short: a.short + " several multisig transactions",
		Long: a.short + " several multisig transactions, one at a time.\n\n" +
			"<ids> is a comma-separated list of ids and inclusive ranges, e.g. 12,14,16-20,22.\n" +
			"A descending range contributes nothing. Without --strict-ids a range with\n" +
			"non-numeric bounds also contributes nothing.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := idspec.ParseWith(args[0], idspec.Options{Strict: f.strictIDs})
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				logger.Warn("Id spec selects no transactions", "spec", args[0])
			}
			return runBatch(cmd, a.kind, ids, f)
		},
	}
	f.register(cmd, a.kind, true)
	return cmd
}

func runBatch(cmd *cobra.Command, kind domain.ActionKind, ids []domain.TxID, f batchFlags) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	ctx := cmd.Context()

	target, err := a.Resolver.Resolve(ctx, f.multisig)
	if err != nil {
		return err
	}
	a.Log.Info("Using multisig", "address", target.Address, "source", target.Source)

	var signer common.Address
	if kind.Mutates() {
		signer, err = a.Accounts.ResolveSigner(f.signer)
		if err != nil {
			return err
		}
	}

	d := dispatch.New(a.Actions, dispatch.Options{ContinueOnError: f.continueOnError}, a.Log)
	rep, runErr := d.Run(ctx, dispatch.Batch{
		IDs:    ids,
		Kind:   kind,
		Wallet: target.Address,
		Signer: signer,
	})
	if len(rep.Outcomes) > 0 {
		renderReport(cmd.OutOrStdout(), rep)
	}
	return runErr
}
