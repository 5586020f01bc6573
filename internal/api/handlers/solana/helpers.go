package solana

import (
	"github/chapool/go-mock-wallet/internal/types"
	"github/chapool/go-mock-wallet/internal/wallet/sol"
)

func toPublicKey(k sol.PublicKeyInfo) types.SolanaPublicKey {
	return types.SolanaPublicKey{Bytes: k.Bytes, Base58: k.Base58}
}
