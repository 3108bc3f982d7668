package stardust

import (
	"testing"

	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/stretchr/testify/require"
)

func TestEd25519AddressFromBase58(t *testing.T) {
	kp := ed25519.GenerateKeyPair()
	addr := NewEd25519Address(kp.PublicKey)

	addrBack, err := AddressFromBase58(addr.Base58())
	require.NoError(t, err)
	require.EqualValues(t, Ed25519AddressType, addrBack.Type())
	require.True(t, addr.Equals(addrBack))
}

func TestAddressFromBytes(t *testing.T) {
	kp := ed25519.GenerateKeyPair()
	addresses := []Address{
		NewEd25519Address(kp.PublicKey),
		NewAliasAddress(AliasID{1, 2, 3}),
		NewNFTAddress(NFTID{4, 5, 6}),
	}

	for _, addr := range addresses {
		addrBack, consumedBytes, err := AddressFromBytes(addr.Bytes())
		require.NoError(t, err)
		require.Equal(t, len(addr.Bytes()), consumedBytes)
		require.EqualValues(t, addr.Type(), addrBack.Type())
		require.True(t, addr.Equals(addrBack))
	}
}

func TestAddressBech32(t *testing.T) {
	kp := ed25519.GenerateKeyPair()
	addr := NewEd25519Address(kp.PublicKey)

	bech32String := addr.Bech32("iota")
	hrp, addrBack, err := AddressFromBech32(bech32String)
	require.NoError(t, err)
	require.Equal(t, "iota", hrp)
	require.True(t, addr.Equals(addrBack))

	aliasAddr := NewAliasAddress(AliasID{42})
	hrp, aliasBack, err := AddressFromBech32(aliasAddr.Bech32("atoi"))
	require.NoError(t, err)
	require.Equal(t, "atoi", hrp)
	require.True(t, aliasAddr.Equals(aliasBack))
}

func TestAddressEquality(t *testing.T) {
	kp1 := ed25519.GenerateKeyPair()
	kp2 := ed25519.GenerateKeyPair()

	addr1 := NewEd25519Address(kp1.PublicKey)
	addr2 := NewEd25519Address(kp2.PublicKey)
	require.False(t, addr1.Equals(addr2))
	require.True(t, addr1.Equals(addr1.Clone()))

	// same identifier but different kind must not be equal
	aliasAddr := NewAliasAddress(AliasID{7})
	nftAddr := NewNFTAddress(NFTID{7})
	require.False(t, aliasAddr.Equals(nftAddr))
	require.NotEqual(t, aliasAddr.Key(), nftAddr.Key())
}
