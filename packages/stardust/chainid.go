package stardust

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/cerrors"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
)

// region AliasID //////////////////////////////////////////////////////////////////////////////////////////////////////

// AliasIDLength contains the amount of bytes that a marshaled version of the AliasID contains.
const AliasIDLength = 32

// AliasID is the identifier of an alias chain. It stays the same for the whole lifetime of the chain, no matter how
// many transactions consume and recreate the alias output.
type AliasID [AliasIDLength]byte

// EmptyAliasID represents the zero-value of an AliasID. It marks an alias output that is newly created within the
// containing transaction (the real identifier only exists once the transaction is booked).
var EmptyAliasID AliasID

// AliasIDFromOutputID computes the AliasID for an alias chain that is created by consuming the given OutputID.
func AliasIDFromOutputID(outputID OutputID) (aliasID AliasID) {
	return blake2b.Sum256(outputID.Bytes())
}

// AliasIDFromBytes unmarshals an AliasID from a sequence of bytes.
func AliasIDFromBytes(data []byte) (aliasID AliasID, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(data)
	if aliasID, err = AliasIDFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse AliasID from MarshalUtil: %w", err)
		return
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// AliasIDFromBase58 creates an AliasID from a base58 encoded string.
func AliasIDFromBase58(base58String string) (aliasID AliasID, err error) {
	decoded, err := base58.Decode(base58String)
	if err != nil {
		err = errors.Errorf("error while decoding base58 encoded AliasID (%v): %w", err, cerrors.ErrBase58DecodeFailed)
		return
	}

	if aliasID, _, err = AliasIDFromBytes(decoded); err != nil {
		err = errors.Errorf("failed to parse AliasID from bytes: %w", err)
		return
	}

	return
}

// AliasIDFromMarshalUtil unmarshals an AliasID using a MarshalUtil (for easier unmarshaling).
func AliasIDFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (aliasID AliasID, err error) {
	aliasIDBytes, err := marshalUtil.ReadBytes(AliasIDLength)
	if err != nil {
		err = errors.Errorf("failed to parse AliasID (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	copy(aliasID[:], aliasIDBytes)

	return
}

// IsNull returns true if the AliasID is the zero-value that marks a new chain creation.
func (a AliasID) IsNull() bool {
	return a == EmptyAliasID
}

// OrFromOutputID returns the AliasID itself if it is already set or computes it from the given OutputID if the alias
// output is itself a new chain creation.
func (a AliasID) OrFromOutputID(outputID OutputID) AliasID {
	if a.IsNull() {
		return AliasIDFromOutputID(outputID)
	}

	return a
}

// Bytes returns a marshaled version of the AliasID.
func (a AliasID) Bytes() []byte {
	return a[:]
}

// Base58 returns a base58 encoded version of the AliasID.
func (a AliasID) Base58() string {
	return base58.Encode(a[:])
}

// String returns a human readable version of the AliasID.
func (a AliasID) String() string {
	return "AliasID(" + a.Base58() + ")"
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region NFTID ////////////////////////////////////////////////////////////////////////////////////////////////////////

// NFTIDLength contains the amount of bytes that a marshaled version of the NFTID contains.
const NFTIDLength = 32

// NFTID is the identifier of an NFT chain. It stays the same for the whole lifetime of the chain, no matter how many
// transactions consume and recreate the NFT output.
type NFTID [NFTIDLength]byte

// EmptyNFTID represents the zero-value of an NFTID. It marks an NFT output that is newly created within the
// containing transaction.
var EmptyNFTID NFTID

// NFTIDFromOutputID computes the NFTID for an NFT chain that is created by consuming the given OutputID.
func NFTIDFromOutputID(outputID OutputID) (nftID NFTID) {
	return blake2b.Sum256(outputID.Bytes())
}

// NFTIDFromBytes unmarshals an NFTID from a sequence of bytes.
func NFTIDFromBytes(data []byte) (nftID NFTID, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(data)
	if nftID, err = NFTIDFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse NFTID from MarshalUtil: %w", err)
		return
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// NFTIDFromBase58 creates an NFTID from a base58 encoded string.
func NFTIDFromBase58(base58String string) (nftID NFTID, err error) {
	decoded, err := base58.Decode(base58String)
	if err != nil {
		err = errors.Errorf("error while decoding base58 encoded NFTID (%v): %w", err, cerrors.ErrBase58DecodeFailed)
		return
	}

	if nftID, _, err = NFTIDFromBytes(decoded); err != nil {
		err = errors.Errorf("failed to parse NFTID from bytes: %w", err)
		return
	}

	return
}

// NFTIDFromMarshalUtil unmarshals an NFTID using a MarshalUtil (for easier unmarshaling).
func NFTIDFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (nftID NFTID, err error) {
	nftIDBytes, err := marshalUtil.ReadBytes(NFTIDLength)
	if err != nil {
		err = errors.Errorf("failed to parse NFTID (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	copy(nftID[:], nftIDBytes)

	return
}

// IsNull returns true if the NFTID is the zero-value that marks a new chain creation.
func (n NFTID) IsNull() bool {
	return n == EmptyNFTID
}

// OrFromOutputID returns the NFTID itself if it is already set or computes it from the given OutputID if the NFT
// output is itself a new chain creation.
func (n NFTID) OrFromOutputID(outputID OutputID) NFTID {
	if n.IsNull() {
		return NFTIDFromOutputID(outputID)
	}

	return n
}

// Bytes returns a marshaled version of the NFTID.
func (n NFTID) Bytes() []byte {
	return n[:]
}

// Base58 returns a base58 encoded version of the NFTID.
func (n NFTID) Base58() string {
	return base58.Encode(n[:])
}

// String returns a human readable version of the NFTID.
func (n NFTID) String() string {
	return "NFTID(" + n.Base58() + ")"
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
