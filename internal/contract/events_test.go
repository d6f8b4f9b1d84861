package contract

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmint/marketplace/internal/domain"
)

const minterAddress = "0x1111111111111111111111111111111111111111"

func mintLog(to string, tokenID common.Hash) *types.Log {
	return &types.Log{
		Topics: []common.Hash{
			transferEventSignature,
			common.BytesToHash(common.HexToAddress(domain.ZeroAddress).Bytes()),
			common.BytesToHash(common.HexToAddress(to).Bytes()),
			tokenID,
		},
	}
}

func TestMintedTokenNumber(t *testing.T) {
	logs := []*types.Log{
		mintLog(minterAddress, common.HexToHash("0x2a")),
	}

	tokenNumber, err := MintedTokenNumber(logs, minterAddress)
	require.NoError(t, err)
	assert.Equal(t, "42", tokenNumber)
}

func TestMintedTokenNumber_MixedCaseMinter(t *testing.T) {
	logs := []*types.Log{
		mintLog(minterAddress, common.HexToHash("0x01")),
	}

	tokenNumber, err := MintedTokenNumber(logs, "0x1111111111111111111111111111111111111111")
	require.NoError(t, err)
	assert.Equal(t, "1", tokenNumber)
}

func TestMintedTokenNumber_SkipsOtherEvents(t *testing.T) {
	// Approval has the same topic count but a different signature
	approval := &types.Log{
		Topics: []common.Hash{
			common.HexToHash("0x8c5be1e5ebec7d5bd14f71427d1e84f3dd0314c0f7b2291e5b200ac8c7c3b925"),
			common.BytesToHash(common.HexToAddress(minterAddress).Bytes()),
			common.BytesToHash(common.HexToAddress(minterAddress).Bytes()),
			common.HexToHash("0x2a"),
		},
	}
	// ERC20-shaped Transfer with only 3 topics
	erc20 := &types.Log{
		Topics: []common.Hash{
			transferEventSignature,
			common.BytesToHash(common.HexToAddress(domain.ZeroAddress).Bytes()),
			common.BytesToHash(common.HexToAddress(minterAddress).Bytes()),
		},
	}
	// Transfer to a different recipient
	other := mintLog("0x2222222222222222222222222222222222222222", common.HexToHash("0x07"))

	logs := []*types.Log{approval, erc20, other, mintLog(minterAddress, common.HexToHash("0x63"))}

	tokenNumber, err := MintedTokenNumber(logs, minterAddress)
	require.NoError(t, err)
	assert.Equal(t, "99", tokenNumber)
}

func TestMintedTokenNumber_NotFound(t *testing.T) {
	logs := []*types.Log{
		mintLog("0x2222222222222222222222222222222222222222", common.HexToHash("0x2a")),
	}

	_, err := MintedTokenNumber(logs, minterAddress)
	assert.ErrorIs(t, err, domain.ErrMintEventNotFound)
}

func TestMintedTokenNumber_EmptyLogs(t *testing.T) {
	_, err := MintedTokenNumber(nil, minterAddress)
	assert.ErrorIs(t, err, domain.ErrMintEventNotFound)
}

func TestMintedTokenNumber_LargeTokenID(t *testing.T) {
	tokenID := common.HexToHash("0xffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff")
	logs := []*types.Log{mintLog(minterAddress, tokenID)}

	tokenNumber, err := MintedTokenNumber(logs, minterAddress)
	require.NoError(t, err)
	assert.Equal(t, "115792089237316195423570985008687907853269984665640564039457584007913129639935", tokenNumber)
}
