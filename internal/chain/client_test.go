package chain_test

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/require"

	"msigctl/internal/chain"
)

type fakeBackend struct {
	chain.Backend

	code     map[common.Address][]byte
	codeErr  error
	chainID  *big.Int
	idCalls  int
	receipts map[common.Hash]*types.Receipt
	closed   bool
}

func (f *fakeBackend) CodeAt(ctx context.Context, addr common.Address, block *big.Int) ([]byte, error) {
	if f.codeErr != nil {
		return nil, f.codeErr
	}
	return f.code[addr], nil
}

func (f *fakeBackend) ChainID(ctx context.Context) (*big.Int, error) {
	f.idCalls++
	return f.chainID, nil
}

func (f *fakeBackend) TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	if r, ok := f.receipts[hash]; ok {
		return r, nil
	}
	return nil, ethereum.NotFound
}

func (f *fakeBackend) Close() { f.closed = true }

func quiet() log.Logger { return log.NewLogger(log.DiscardHandler()) }

func TestClient_CodeAt(t *testing.T) {
	addr := common.HexToAddress("0x00000000000000000000000000000000000000c0")
	fb := &fakeBackend{code: map[common.Address][]byte{addr: {0x60, 0x80}}}
	c := chain.New(fb, quiet())

	code, err := c.CodeAt(context.Background(), addr)
	require.NoError(t, err)
	require.Equal(t, []byte{0x60, 0x80}, code)

	fb.codeErr = errors.New("connection refused")
	_, err = c.CodeAt(context.Background(), addr)
	require.ErrorIs(t, err, fb.codeErr)
}

func TestClient_ChainID_Cached(t *testing.T) {
	fb := &fakeBackend{chainID: big.NewInt(31337)}
	c := chain.New(fb, quiet())

	for i := 0; i < 3; i++ {
		id, err := c.ChainID(context.Background())
		require.NoError(t, err)
		require.Equal(t, int64(31337), id.Int64())
	}
	require.Equal(t, 1, fb.idCalls)

	c.SetChainID(big.NewInt(5))
	id, err := c.ChainID(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(5), id.Int64())
	require.Equal(t, 1, fb.idCalls)
}

func TestClient_WaitMined(t *testing.T) {
	tx := types.NewTx(&types.LegacyTx{Nonce: 1, Gas: 21000, GasPrice: big.NewInt(1)})
	want := &types.Receipt{Status: types.ReceiptStatusSuccessful, TxHash: tx.Hash(), BlockNumber: big.NewInt(9)}
	fb := &fakeBackend{receipts: map[common.Hash]*types.Receipt{tx.Hash(): want}}
	c := chain.New(fb, quiet())

	got, err := c.WaitMined(context.Background(), tx)
	require.NoError(t, err)
	require.Same(t, want, got)
}

func TestClient_WaitMined_Timeout(t *testing.T) {
	tx := types.NewTx(&types.LegacyTx{Nonce: 2, Gas: 21000, GasPrice: big.NewInt(1)})
	c := chain.New(&fakeBackend{}, quiet())
	c.SetWaitTimeout(20 * time.Millisecond)

	_, err := c.WaitMined(context.Background(), tx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClient_Close(t *testing.T) {
	fb := &fakeBackend{}
	chain.New(fb, quiet()).Close()
	require.True(t, fb.closed)
}

func TestDial_NoURL(t *testing.T) {
	_, err := chain.Dial(context.Background(), "", quiet())
	require.ErrorIs(t, err, chain.ErrNoRPC)
}
