package contract

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/openmint/marketplace/internal/domain"
)

// ERC721 Transfer(address indexed from, address indexed to, uint256 indexed tokenId)
var transferEventSignature = crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))

// MintedTokenNumber extracts the token number minted to the given address from
// a confirmed mint receipt. A mint emits Transfer(zero, minter, tokenId) with
// the token id in the third indexed topic. Returns domain.ErrMintEventNotFound
// when no such event addressed to the minter exists in the logs.
func MintedTokenNumber(logs []*types.Log, minter string) (string, error) {
	minterAddr := common.HexToAddress(minter)

	for _, vLog := range logs {
		if vLog == nil || len(vLog.Topics) != 4 {
			continue
		}
		if vLog.Topics[0] != transferEventSignature {
			continue
		}
		if common.BytesToAddress(vLog.Topics[2].Bytes()) != minterAddr {
			continue
		}

		return new(big.Int).SetBytes(vLog.Topics[3].Bytes()).String(), nil
	}

	return "", domain.ErrMintEventNotFound
}
