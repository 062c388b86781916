package commands

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/require"

	"msigctl/internal/app"
	"msigctl/internal/domain"
	"msigctl/internal/idspec"
	"msigctl/internal/services/dispatch"
)

var (
	testWallet = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	testSigner = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
)

// fakeApp implements every capability the commands use.
type fakeApp struct {
	calls     []string
	fail      map[domain.TxID]error
	resolved  []string
	cfg       app.Config
	closed    int
	submitted []common.Address
}

func (f *fakeApp) Resolve(ctx context.Context, candidate string) (domain.Resolution, error) {
	f.resolved = append(f.resolved, candidate)
	return domain.Resolution{Source: domain.ResolvedDefault, Address: testWallet, Requested: candidate}, nil
}

func (f *fakeApp) ResolveSigner(identity string) (common.Address, error) {
	if identity != "deployer" {
		return common.Address{}, errors.New("unknown account " + identity)
	}
	return testSigner, nil
}

func (f *fakeApp) record(kind string, id domain.TxID, status domain.ActionStatus) (domain.ActionResult, error) {
	f.calls = append(f.calls, kind+":"+string(id))
	if err := f.fail[id]; err != nil {
		return domain.ActionResult{}, err
	}
	return domain.ActionResult{Status: status, TxHash: common.HexToHash("0xabc")}, nil
}

func (f *fakeApp) Confirm(ctx context.Context, w common.Address, id domain.TxID, s common.Address) (domain.ActionResult, error) {
	return f.record("sign", id, domain.StatusConfirmed)
}

func (f *fakeApp) Execute(ctx context.Context, w common.Address, id domain.TxID, s common.Address) (domain.ActionResult, error) {
	return f.record("execute", id, domain.StatusExecuted)
}

func (f *fakeApp) Revoke(ctx context.Context, w common.Address, id domain.TxID, s common.Address) (domain.ActionResult, error) {
	return f.record("revoke", id, domain.StatusRevoked)
}

func (f *fakeApp) Check(ctx context.Context, w common.Address, id domain.TxID) (domain.ActionResult, error) {
	f.calls = append(f.calls, "check:"+string(id))
	rec := &domain.TxRecord{ID: id, Destination: testSigner, Value: big.NewInt(0), Confirmations: 1, Required: 2,
		ConfirmedBy: []common.Address{testSigner}}
	return domain.ActionResult{Status: domain.StatusChecked, Note: "1 of 2 confirmations", Record: rec}, nil
}

func (f *fakeApp) AddOwner(ctx context.Context, w, owner, s common.Address) (domain.Submission, error) {
	f.submitted = append(f.submitted, owner)
	return domain.Submission{ID: "7", TxHash: common.HexToHash("0x01")}, nil
}

func (f *fakeApp) RemoveOwner(ctx context.Context, w, owner, s common.Address) (domain.Submission, error) {
	f.submitted = append(f.submitted, owner)
	return domain.Submission{ID: "8", TxHash: common.HexToHash("0x02")}, nil
}

func (f *fakeApp) Owners(ctx context.Context, w common.Address) (domain.OwnerSet, error) {
	return domain.OwnerSet{Owners: []common.Address{testSigner}, Required: 1}, nil
}

func run(t *testing.T, fa *fakeApp, stdin string, args ...string) (string, error) {
	t.Helper()
	for _, k := range []string{app.EnvHome, app.EnvNetwork, app.EnvRPCURL, app.EnvPassphrase} {
		t.Setenv(k, "")
	}
	prev := buildApp
	buildApp = func(ctx context.Context, cfg app.Config, logger log.Logger) (*app.App, error) {
		fa.cfg = cfg
		return app.New(fa, fa, fa, fa, logger, func() { fa.closed++ }), nil
	}
	t.Cleanup(func() { buildApp = prev })

	home := t.TempDir()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--home", home, "--log-level", "error"}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSignTxs_ExpandsSpecInOrder(t *testing.T) {
	fa := &fakeApp{}
	out, err := run(t, fa, "", "sign-txs", "12,14,16-20,22")
	require.NoError(t, err)
	require.Equal(t, []string{
		"sign:12", "sign:14", "sign:16", "sign:17", "sign:18", "sign:19", "sign:20", "sign:22",
	}, fa.calls)
	require.Equal(t, []string{defaultMultisig}, fa.resolved)
	require.Equal(t, 1, fa.closed)
	require.Contains(t, out, "confirmed")
	require.Contains(t, out, "22")
}

func TestSingleCommands_PassIDVerbatim(t *testing.T) {
	cases := map[string]string{
		"sign-tx":    "sign:0x1f",
		"execute-tx": "execute:0x1f",
		"revoke-sig": "revoke:0x1f",
		"check-tx":   "check:0x1f",
	}
	for use, want := range cases {
		t.Run(use, func(t *testing.T) {
			fa := &fakeApp{}
			_, err := run(t, fa, "", use, "0x1f")
			require.NoError(t, err)
			require.Equal(t, []string{want}, fa.calls)
		})
	}
}

func TestExecuteTxs_AbortsOnFailure(t *testing.T) {
	boom := errors.New("reverted")
	fa := &fakeApp{fail: map[domain.TxID]error{"2": boom}}
	out, err := run(t, fa, "", "execute-txs", "1-4")
	require.ErrorIs(t, err, boom)

	var berr *dispatch.BatchError
	require.True(t, errors.As(err, &berr))
	require.Equal(t, domain.TxID("2"), berr.ID)
	require.Equal(t, []string{"execute:1", "execute:2"}, fa.calls)
	require.Contains(t, out, "failed")
}

func TestExecuteTxs_ContinueOnError(t *testing.T) {
	fa := &fakeApp{fail: map[domain.TxID]error{"2": errors.New("a"), "3": errors.New("b")}}
	_, err := run(t, fa, "", "execute-txs", "1-4", "--continue-on-error")
	require.Error(t, err)
	require.Len(t, fa.calls, 4)
}

func TestStrictIDs(t *testing.T) {
	fa := &fakeApp{}
	_, err := run(t, fa, "", "revoke-sigs", "1,a-b,2", "--strict-ids")
	var perr *idspec.ParseError
	require.True(t, errors.As(err, &perr))
	require.Empty(t, fa.calls)
	require.Empty(t, fa.resolved)

	fa = &fakeApp{}
	_, err = run(t, fa, "", "revoke-sigs", "1,a-b,2")
	require.NoError(t, err)
	require.Equal(t, []string{"revoke:1", "revoke:2"}, fa.calls)
}

func TestUnknownSigner(t *testing.T) {
	fa := &fakeApp{}
	_, err := run(t, fa, "", "sign-tx", "1", "--signer", "nobody")
	require.Error(t, err)
	require.Empty(t, fa.calls)
}

func TestCheckTxs_RendersRecords(t *testing.T) {
	fa := &fakeApp{}
	out, err := run(t, fa, "", "check-txs", "3,4", "--multisig", testWallet.Hex())
	require.NoError(t, err)
	require.Equal(t, []string{testWallet.Hex()}, fa.resolved)
	require.Contains(t, out, "1/2")
	require.Contains(t, out, testSigner.Hex())
}

func TestOwnerCommands(t *testing.T) {
	owner := "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"

	fa := &fakeApp{}
	out, err := run(t, fa, "", "add-owner", "--address", owner)
	require.NoError(t, err)
	require.Contains(t, out, "submitted multisig tx 7")
	require.Equal(t, []common.Address{common.HexToAddress(owner)}, fa.submitted)

	fa = &fakeApp{}
	out, err = run(t, fa, "", "remove-owner", "--address", owner)
	require.NoError(t, err)
	require.Contains(t, out, "submitted multisig tx 8")

	_, err = run(t, &fakeApp{}, "", "add-owner", "--address", "0x1234")
	require.Error(t, err)

	out, err = run(t, &fakeApp{}, "", "owners")
	require.NoError(t, err)
	require.Contains(t, out, testSigner.Hex())
	require.Contains(t, out, "required 1 of 1")
}

func TestFlagsReachConfig(t *testing.T) {
	fa := &fakeApp{}
	_, err := run(t, fa, "", "check-tx", "1", "--network", "sepolia", "--rpc", "http://node:8545", "-p", "secret")
	require.NoError(t, err)
	require.Equal(t, "sepolia", fa.cfg.Network)
	require.Equal(t, "http://node:8545", fa.cfg.RPCURL)
	require.Equal(t, "secret", fa.cfg.Passphrase)
}

func TestKeyImportAndList(t *testing.T) {
	t.Setenv(app.EnvPassphrase, "")
	home := t.TempDir()
	key := "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80\n"

	out, err := run(t, &fakeApp{}, key, "--home", home, "-p", "pass", "key", "import")
	require.NoError(t, err)
	require.Equal(t, testSigner.Hex()+"\n", out)

	out, err = run(t, &fakeApp{}, "", "--home", home, "key", "list")
	require.NoError(t, err)
	require.Equal(t, testSigner.Hex()+"\n", out)

	_, err = run(t, &fakeApp{}, "not-a-key\n", "--home", home, "-p", "pass", "key", "import")
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, &fakeApp{}, "", "version")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "msigctl "))
}
