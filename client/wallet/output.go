package wallet

import (
	"github.com/iotaledger/hive.go/stringify"

	"github.com/iotaledger/stardust-client-go/packages/stardust"
)

// region BIP32Path ////////////////////////////////////////////////////////////////////////////////////////////////////

// BIP32Path is the registered derivation path of an address that unlocks an input.
type BIP32Path struct {
	// CoinType is the coin type component of the BIP-44 path.
	CoinType uint32

	// Account is the account component of the BIP-44 path.
	Account uint32

	// Internal marks the address as belonging to the internal (change) chain.
	Internal bool

	// AddressIndex is the index of the address on its chain.
	AddressIndex uint32
}

// Components returns the full hardened derivation path of the address.
func (b *BIP32Path) Components() []uint32 {
	internal := uint32(0)
	if b.Internal {
		internal = 1
	}

	return []uint32{44, b.CoinType, b.Account, internal, b.AddressIndex}
}

// String returns a human-readable version of the BIP32Path.
func (b *BIP32Path) String() string {
	return stringify.Struct("BIP32Path",
		stringify.StructField("CoinType", b.CoinType),
		stringify.StructField("Account", b.Account),
		stringify.StructField("Internal", b.Internal),
		stringify.StructField("AddressIndex", b.AddressIndex),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region OutputMetadata ///////////////////////////////////////////////////////////////////////////////////////////////

// OutputMetadata is metadata about an output that is relevant for unlocking it.
type OutputMetadata struct {
	// OutputID is the identifier of the output.
	OutputID stardust.OutputID

	// Spent marks the output as already consumed by a confirmed transaction.
	Spent bool

	// MilestoneTimestamp is the unix timestamp of the milestone that booked the output.
	MilestoneTimestamp uint32
}

// String returns a human-readable version of the OutputMetadata.
func (o *OutputMetadata) String() string {
	return stringify.Struct("OutputMetadata",
		stringify.StructField("OutputID", o.OutputID),
		stringify.StructField("Spent", o.Spent),
		stringify.StructField("MilestoneTimestamp", o.MilestoneTimestamp),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region InputSigningData /////////////////////////////////////////////////////////////////////////////////////////////

// InputSigningData is an input of a transaction together with the information that is needed to unlock it.
type InputSigningData struct {
	// Output is the consumed output.
	Output stardust.Output

	// OutputID is the identifier of the consumed output.
	OutputID stardust.OutputID

	// OutputMetadata is the metadata of the consumed output.
	OutputMetadata *OutputMetadata

	// Chain is the derivation path of the address that unlocks the output. It is nil if the unlocking address does
	// not belong to the configured secret manager (e.g. alias or NFT addresses, or offline signing).
	Chain *BIP32Path

	// Bech32Address is the bech32 encoded address that unlocks the output.
	Bech32Address string
}

// String returns a human-readable version of the InputSigningData.
func (i *InputSigningData) String() string {
	return stringify.Struct("InputSigningData",
		stringify.StructField("Output", i.Output),
		stringify.StructField("OutputID", i.OutputID),
		stringify.StructField("Chain", i.Chain),
		stringify.StructField("Bech32Address", i.Bech32Address),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
