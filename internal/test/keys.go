package test

import (
	"crypto/ed25519"

	"github.com/gagliardetto/solana-go"
)

// Well known Hardhat development accounts.
const (
	EVMKey0     = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	EVMAddress0 = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	EVMKey1     = "0x59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"
	EVMAddress1 = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
)

// SolanaSeed returns a deterministic 32 byte ed25519 seed filled with b.
func SolanaSeed(b byte) []byte {
	out := make([]byte, ed25519.SeedSize)
	for i := range out {
		out[i] = b
	}

	return out
}

// SolanaPublicKey returns the public key belonging to SolanaSeed(b).
func SolanaPublicKey(b byte) solana.PublicKey {
	priv := ed25519.NewKeyFromSeed(SolanaSeed(b))

	return solana.PublicKeyFromBytes(priv.Public().(ed25519.PublicKey))
}
