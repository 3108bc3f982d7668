// Package stardust implements the subset of the Stardust ledger object model that is needed on the client side to
// build transactions: addresses, outputs, unlock conditions and features.
package stardust

import (
	"bytes"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/cerrors"
	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
)

// region AddressType //////////////////////////////////////////////////////////////////////////////////////////////////

const (
	// Ed25519AddressType represents an Address backed by an ED25519 public key.
	Ed25519AddressType AddressType = 0

	// AliasAddressType represents the Address of an alias chain.
	AliasAddressType AddressType = 8

	// NFTAddressType represents the Address of an NFT chain.
	NFTAddressType AddressType = 16
)

// AddressType represents the type of an Address (the types encode different unlock mechanisms).
type AddressType byte

// String returns a human readable representation of the AddressType.
func (a AddressType) String() string {
	switch a {
	case Ed25519AddressType:
		return "Ed25519Address"
	case AliasAddressType:
		return "AliasAddress"
	case NFTAddressType:
		return "NFTAddress"
	default:
		return "UnknownAddressType"
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Address //////////////////////////////////////////////////////////////////////////////////////////////////////

// AddressLength contains the length of a marshaled Address (type length = 1, body length = 32).
const AddressLength = 33

// Address is an interface for the different kinds of Addresses that exist in the Stardust ledger. Ed25519 addresses
// are the only kind that can be derived from a private key; Alias and NFT addresses are unlocked by including their
// owning chain output as an input of the same transaction.
type Address interface {
	// Type returns the AddressType of the Address.
	Type() AddressType

	// Equals returns true if the two Addresses are equal (same kind and same identifier).
	Equals(other Address) bool

	// Clone creates a copy of the Address.
	Clone() Address

	// Bytes returns a marshaled version of the Address.
	Bytes() []byte

	// Key returns a string representation of the marshaled Address that can be used as a map key.
	Key() string

	// Base58 returns a base58 encoded version of the Address.
	Base58() string

	// Bech32 returns the bech32 encoded version of the Address for the given human readable prefix.
	Bech32(hrp string) string

	// String returns a human readable version of the Address for debug purposes.
	String() string
}

// AddressFromBytes unmarshals an Address from a sequence of bytes.
func AddressFromBytes(data []byte) (address Address, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(data)
	if address, err = AddressFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse Address from MarshalUtil: %w", err)
		return
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// AddressFromBase58 creates an Address from a base58 encoded string.
func AddressFromBase58(base58String string) (address Address, err error) {
	decoded, err := base58.Decode(base58String)
	if err != nil {
		err = errors.Errorf("error while decoding base58 encoded Address (%v): %w", err, cerrors.ErrBase58DecodeFailed)
		return
	}

	if address, _, err = AddressFromBytes(decoded); err != nil {
		err = errors.Errorf("failed to parse Address from bytes: %w", err)
		return
	}

	return
}

// AddressFromMarshalUtil unmarshals an Address using a MarshalUtil (for easier unmarshaling).
func AddressFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (address Address, err error) {
	addressType, err := marshalUtil.ReadByte()
	if err != nil {
		err = errors.Errorf("failed to parse AddressType (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	marshalUtil.ReadSeek(-1)

	switch AddressType(addressType) {
	case Ed25519AddressType:
		return Ed25519AddressFromMarshalUtil(marshalUtil)
	case AliasAddressType:
		return AliasAddressFromMarshalUtil(marshalUtil)
	case NFTAddressType:
		return NFTAddressFromMarshalUtil(marshalUtil)
	default:
		err = errors.Errorf("unsupported address type (%X): %w", addressType, cerrors.ErrParseBytesFailed)
		return
	}
}

// AddressFromBech32 decodes a bech32 encoded string into an Address and returns the human readable prefix it was
// encoded with.
func AddressFromBech32(bech32String string) (hrp string, address Address, err error) {
	hrp, fiveBitData, err := bech32.DecodeNoLimit(bech32String)
	if err != nil {
		err = errors.Errorf("error while decoding bech32 encoded Address (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}

	addressBytes, err := bech32.ConvertBits(fiveBitData, 5, 8, false)
	if err != nil {
		err = errors.Errorf("error while regrouping bech32 data (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}

	if address, _, err = AddressFromBytes(addressBytes); err != nil {
		err = errors.Errorf("failed to parse Address from bytes: %w", err)
		return
	}

	return
}

// bech32String encodes the marshaled version of an Address with the given human readable prefix.
func bech32String(hrp string, address Address) string {
	fiveBitData, err := bech32.ConvertBits(address.Bytes(), 8, 5, true)
	if err != nil {
		panic(err)
	}
	encoded, err := bech32.Encode(hrp, fiveBitData)
	if err != nil {
		panic(err)
	}

	return encoded
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Ed25519Address ///////////////////////////////////////////////////////////////////////////////////////////////

// Ed25519Address represents an Address that is backed by an ED25519 public key.
type Ed25519Address struct {
	digest []byte
}

// NewEd25519Address creates a new Ed25519Address from the given public key.
func NewEd25519Address(publicKey ed25519.PublicKey) *Ed25519Address {
	digest := blake2b.Sum256(publicKey[:])

	return &Ed25519Address{
		digest: digest[:],
	}
}

// Ed25519AddressFromMarshalUtil unmarshals an Ed25519Address using a MarshalUtil (for easier unmarshaling).
func Ed25519AddressFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (address *Ed25519Address, err error) {
	addressType, err := marshalUtil.ReadByte()
	if err != nil {
		err = errors.Errorf("failed to parse AddressType (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	if AddressType(addressType) != Ed25519AddressType {
		err = errors.Errorf("invalid AddressType (%X): %w", addressType, cerrors.ErrParseBytesFailed)
		return
	}

	digest, err := marshalUtil.ReadBytes(32)
	if err != nil {
		err = errors.Errorf("failed to parse digest (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}

	address = &Ed25519Address{
		digest: digest,
	}

	return
}

// Type returns the AddressType of the Address.
func (e *Ed25519Address) Type() AddressType {
	return Ed25519AddressType
}

// Digest returns the hashed version of the public key backing the Address.
func (e *Ed25519Address) Digest() []byte {
	return e.digest
}

// Equals returns true if the two Addresses are equal.
func (e *Ed25519Address) Equals(other Address) bool {
	return other != nil && other.Type() == Ed25519AddressType && bytes.Equal(e.Bytes(), other.Bytes())
}

// Clone creates a copy of the Address.
func (e *Ed25519Address) Clone() Address {
	clonedDigest := make([]byte, len(e.digest))
	copy(clonedDigest, e.digest)

	return &Ed25519Address{
		digest: clonedDigest,
	}
}

// Bytes returns a marshaled version of the Address.
func (e *Ed25519Address) Bytes() []byte {
	return marshalutil.New(AddressLength).
		WriteByte(byte(Ed25519AddressType)).
		WriteBytes(e.digest).
		Bytes()
}

// Key returns a string representation of the marshaled Address that can be used as a map key.
func (e *Ed25519Address) Key() string {
	return string(e.Bytes())
}

// Base58 returns a base58 encoded version of the Address.
func (e *Ed25519Address) Base58() string {
	return base58.Encode(e.Bytes())
}

// Bech32 returns the bech32 encoded version of the Address for the given human readable prefix.
func (e *Ed25519Address) Bech32(hrp string) string {
	return bech32String(hrp, e)
}

// String returns a human readable version of the Address for debug purposes.
func (e *Ed25519Address) String() string {
	return stringify.Struct("Ed25519Address",
		stringify.StructField("base58", e.Base58()),
	)
}

// code contract (make sure the type implements all required methods)
var _ Address = &Ed25519Address{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region AliasAddress /////////////////////////////////////////////////////////////////////////////////////////////////

// AliasAddress represents the Address of an alias chain. It can not be unlocked by a signature but only by including
// the alias output that it belongs to as an input of the same transaction.
type AliasAddress struct {
	aliasID AliasID
}

// NewAliasAddress creates a new AliasAddress for the given AliasID.
func NewAliasAddress(aliasID AliasID) *AliasAddress {
	return &AliasAddress{
		aliasID: aliasID,
	}
}

// AliasAddressFromMarshalUtil unmarshals an AliasAddress using a MarshalUtil (for easier unmarshaling).
func AliasAddressFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (address *AliasAddress, err error) {
	addressType, err := marshalUtil.ReadByte()
	if err != nil {
		err = errors.Errorf("failed to parse AddressType (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	if AddressType(addressType) != AliasAddressType {
		err = errors.Errorf("invalid AddressType (%X): %w", addressType, cerrors.ErrParseBytesFailed)
		return
	}

	aliasID, err := AliasIDFromMarshalUtil(marshalUtil)
	if err != nil {
		err = errors.Errorf("failed to parse AliasID: %w", err)
		return
	}

	address = &AliasAddress{
		aliasID: aliasID,
	}

	return
}

// Type returns the AddressType of the Address.
func (a *AliasAddress) Type() AddressType {
	return AliasAddressType
}

// AliasID returns the identifier of the alias chain that the Address belongs to.
func (a *AliasAddress) AliasID() AliasID {
	return a.aliasID
}

// Equals returns true if the two Addresses are equal.
func (a *AliasAddress) Equals(other Address) bool {
	return other != nil && other.Type() == AliasAddressType && bytes.Equal(a.Bytes(), other.Bytes())
}

// Clone creates a copy of the Address.
func (a *AliasAddress) Clone() Address {
	return &AliasAddress{
		aliasID: a.aliasID,
	}
}

// Bytes returns a marshaled version of the Address.
func (a *AliasAddress) Bytes() []byte {
	return marshalutil.New(AddressLength).
		WriteByte(byte(AliasAddressType)).
		WriteBytes(a.aliasID.Bytes()).
		Bytes()
}

// Key returns a string representation of the marshaled Address that can be used as a map key.
func (a *AliasAddress) Key() string {
	return string(a.Bytes())
}

// Base58 returns a base58 encoded version of the Address.
func (a *AliasAddress) Base58() string {
	return base58.Encode(a.Bytes())
}

// Bech32 returns the bech32 encoded version of the Address for the given human readable prefix.
func (a *AliasAddress) Bech32(hrp string) string {
	return bech32String(hrp, a)
}

// String returns a human readable version of the Address for debug purposes.
func (a *AliasAddress) String() string {
	return stringify.Struct("AliasAddress",
		stringify.StructField("aliasID", a.aliasID),
	)
}

// code contract (make sure the type implements all required methods)
var _ Address = &AliasAddress{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region NFTAddress ///////////////////////////////////////////////////////////////////////////////////////////////////

// NFTAddress represents the Address of an NFT chain. It can not be unlocked by a signature but only by including the
// NFT output that it belongs to as an input of the same transaction.
type NFTAddress struct {
	nftID NFTID
}

// NewNFTAddress creates a new NFTAddress for the given NFTID.
func NewNFTAddress(nftID NFTID) *NFTAddress {
	return &NFTAddress{
		nftID: nftID,
	}
}

// NFTAddressFromMarshalUtil unmarshals an NFTAddress using a MarshalUtil (for easier unmarshaling).
func NFTAddressFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (address *NFTAddress, err error) {
	addressType, err := marshalUtil.ReadByte()
	if err != nil {
		err = errors.Errorf("failed to parse AddressType (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	if AddressType(addressType) != NFTAddressType {
		err = errors.Errorf("invalid AddressType (%X): %w", addressType, cerrors.ErrParseBytesFailed)
		return
	}

	nftID, err := NFTIDFromMarshalUtil(marshalUtil)
	if err != nil {
		err = errors.Errorf("failed to parse NFTID: %w", err)
		return
	}

	address = &NFTAddress{
		nftID: nftID,
	}

	return
}

// Type returns the AddressType of the Address.
func (n *NFTAddress) Type() AddressType {
	return NFTAddressType
}

// NFTID returns the identifier of the NFT chain that the Address belongs to.
func (n *NFTAddress) NFTID() NFTID {
	return n.nftID
}

// Equals returns true if the two Addresses are equal.
func (n *NFTAddress) Equals(other Address) bool {
	return other != nil && other.Type() == NFTAddressType && bytes.Equal(n.Bytes(), other.Bytes())
}

// Clone creates a copy of the Address.
func (n *NFTAddress) Clone() Address {
	return &NFTAddress{
		nftID: n.nftID,
	}
}

// Bytes returns a marshaled version of the Address.
func (n *NFTAddress) Bytes() []byte {
	return marshalutil.New(AddressLength).
		WriteByte(byte(NFTAddressType)).
		WriteBytes(n.nftID.Bytes()).
		Bytes()
}

// Key returns a string representation of the marshaled Address that can be used as a map key.
func (n *NFTAddress) Key() string {
	return string(n.Bytes())
}

// Base58 returns a base58 encoded version of the Address.
func (n *NFTAddress) Base58() string {
	return base58.Encode(n.Bytes())
}

// Bech32 returns the bech32 encoded version of the Address for the given human readable prefix.
func (n *NFTAddress) Bech32(hrp string) string {
	return bech32String(hrp, n)
}

// String returns a human readable version of the Address for debug purposes.
func (n *NFTAddress) String() string {
	return stringify.Struct("NFTAddress",
		stringify.StructField("nftID", n.nftID),
	)
}

// code contract (make sure the type implements all required methods)
var _ Address = &NFTAddress{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
