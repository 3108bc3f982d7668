// Package seed implements the SLIP-10 based ed25519 key derivation that the wallet uses to deterministically manage
// its addresses from a single master seed.
package seed

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"
	"encoding/binary"

	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/mr-tron/base58"

	"github.com/iotaledger/stardust-client-go/packages/stardust"
)

// SeedLength contains the amount of bytes of a Seed.
const SeedLength = 32

// hardenedOffset marks a derivation index as hardened. SLIP-10 only supports hardened derivation for the ed25519
// curve, so it is applied to every path component.
const hardenedOffset uint32 = 0x80000000

// slip10Key is the HMAC key of the SLIP-10 master key generation for the ed25519 curve.
var slip10Key = []byte("ed25519 seed")

// Seed represents a master seed that deterministically derives the ed25519 key pairs of the wallet.
type Seed struct {
	seedBytes []byte
}

// NewSeed is the constructor for the Seed. It either creates a new random Seed or restores the Seed that is handed in
// as an optional parameter.
func NewSeed(optionalSeedBytes ...[]byte) *Seed {
	if len(optionalSeedBytes) >= 1 {
		if len(optionalSeedBytes[0]) != SeedLength {
			panic("seed is not required length")
		}

		return &Seed{
			seedBytes: optionalSeedBytes[0],
		}
	}

	randomSeedBytes := make([]byte, SeedLength)
	if _, err := rand.Read(randomSeedBytes); err != nil {
		panic(err)
	}

	return &Seed{
		seedBytes: randomSeedBytes,
	}
}

// KeyPair derives the ed25519 key pair that belongs to the given derivation path. All path components are derived
// hardened.
func (seed *Seed) KeyPair(path ...uint32) (keyPair ed25519.KeyPair) {
	key, chainCode := masterKey(seed.seedBytes)
	for _, index := range path {
		key, chainCode = childKey(key, chainCode, index|hardenedOffset)
	}

	keyPair.PrivateKey = ed25519.PrivateKeyFromSeed(key)
	keyPair.PublicKey = keyPair.PrivateKey.Public()

	return
}

// Address returns the Ed25519Address that belongs to the given derivation path.
func (seed *Seed) Address(path ...uint32) *stardust.Ed25519Address {
	keyPair := seed.KeyPair(path...)

	return stardust.NewEd25519Address(keyPair.PublicKey)
}

// Bytes returns the raw bytes of the Seed.
func (seed *Seed) Bytes() []byte {
	return seed.seedBytes
}

// Base58 returns a base58 encoded version of the Seed.
func (seed *Seed) Base58() string {
	return base58.Encode(seed.seedBytes)
}

// masterKey computes the SLIP-10 master key and chain code for the ed25519 curve.
func masterKey(seedBytes []byte) (key []byte, chainCode []byte) {
	mac := hmac.New(sha512.New, slip10Key)
	mac.Write(seedBytes)
	digest := mac.Sum(nil)

	return digest[:32], digest[32:]
}

// childKey computes the hardened SLIP-10 child key for the given parent key and chain code.
func childKey(parentKey []byte, chainCode []byte, index uint32) (key []byte, childChainCode []byte) {
	indexBytes := make([]byte, 4)
	binary.BigEndian.PutUint32(indexBytes, index)

	data := make([]byte, 0, 1+len(parentKey)+len(indexBytes))
	data = append(data, 0x00)
	data = append(data, parentKey...)
	data = append(data, indexBytes...)

	mac := hmac.New(sha512.New, chainCode)
	mac.Write(data)
	digest := mac.Sum(nil)

	return digest[:32], digest[32:]
}
