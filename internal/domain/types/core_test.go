package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"msigctl/internal/domain/types"
)

func TestTxID_BigInt(t *testing.T) {
	valid := map[types.TxID]int64{
		"0":    0,
		"42":   42,
		"007":  7,
		"0x10": 16,
		"0XfF": 255,
	}
	for id, want := range valid {
		n, err := id.BigInt()
		require.NoError(t, err, string(id))
		require.Equal(t, want, n.Int64(), string(id))
	}

	for _, id := range []types.TxID{"", "0x", "-1", "+1", "abc", "1_000", " 1", "1e3"} {
		_, err := id.BigInt()
		require.ErrorIs(t, err, types.ErrInvalidTxID, string(id))
	}
}

func TestActionKind(t *testing.T) {
	require.Equal(t, "sign", types.ActionSign.String())
	require.Equal(t, "check", types.ActionCheckStatus.String())
	require.Equal(t, "action(99)", types.ActionKind(99).String())

	require.True(t, types.ActionExecute.Mutates())
	require.True(t, types.ActionRevoke.Mutates())
	require.False(t, types.ActionCheckStatus.Mutates())
}
