package wallet

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/iotaledger/stardust-client-go/client/wallet/packages/seed"
	"github.com/iotaledger/stardust-client-go/packages/stardust"
)

// region SecretManager ////////////////////////////////////////////////////////////////////////////////////////////////

// SecretManager represents an interface that defines how the wallet derives the addresses it controls.
type SecretManager interface {
	// GenerateAddress derives the ed25519 address at the given BIP-44 position.
	GenerateAddress(ctx context.Context, coinType uint32, account uint32, internal bool, addressIndex uint32) (address *stardust.Ed25519Address, err error)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region SeedSecretManager ////////////////////////////////////////////////////////////////////////////////////////////

// SeedSecretManager is a SecretManager that derives addresses from an in-memory master seed.
type SeedSecretManager struct {
	seed *seed.Seed
}

// NewSeedSecretManager is the constructor for the SeedSecretManager.
func NewSeedSecretManager(walletSeed *seed.Seed) *SeedSecretManager {
	return &SeedSecretManager{
		seed: walletSeed,
	}
}

// GenerateAddress derives the ed25519 address at the given BIP-44 position.
func (s *SeedSecretManager) GenerateAddress(_ context.Context, coinType uint32, account uint32, internal bool, addressIndex uint32) (address *stardust.Ed25519Address, err error) {
	internalComponent := uint32(0)
	if internal {
		internalComponent = 1
	}

	return s.seed.Address(44, coinType, account, internalComponent, addressIndex), nil
}

// code contract (make sure the type implements all required methods)
var _ SecretManager = &SeedSecretManager{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region SearchAddress ////////////////////////////////////////////////////////////////////////////////////////////////

// SearchAddress scans the public and internal address chains of the given secret manager for the given address and
// returns its position. The scan is bounded by the given index range and fails with ErrAddressNotFound when the
// address does not occur in it.
func SearchAddress(ctx context.Context, secretManager SecretManager, coinType uint32, account uint32, rangeStart uint32, rangeEnd uint32, address stardust.Address) (addressIndex uint32, internal bool, err error) {
	for index := rangeStart; index < rangeEnd; index++ {
		for _, internalChain := range []bool{false, true} {
			derivedAddress, deriveErr := secretManager.GenerateAddress(ctx, coinType, account, internalChain, index)
			if deriveErr != nil {
				err = errors.Errorf("failed to derive address at index %d: %w", index, deriveErr)
				return
			}

			if derivedAddress.Equals(address) {
				return index, internalChain, nil
			}
		}
	}

	err = errors.Errorf("%s in range %d..%d: %w", address, rangeStart, rangeEnd, ErrAddressNotFound)

	return
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
