package stardust

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/cerrors"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"
)

// region NFTOutput ////////////////////////////////////////////////////////////////////////////////////////////////////

// NFTOutput is the chain Output of an NFT. Like an alias output it travels along its chain, but it is gated by a
// plain AddressUnlockCondition (possibly redirected by an expiration) instead of separate state and governance
// controllers.
type NFTOutput struct {
	amount            uint64
	nftID             NFTID
	unlockConditions  UnlockConditions
	features          Features
	immutableFeatures Features
}

// NewNFTOutput is the constructor for the NFTOutput.
func NewNFTOutput(amount uint64, nftID NFTID, unlockConditions UnlockConditions, features Features, immutableFeatures Features) *NFTOutput {
	return &NFTOutput{
		amount:            amount,
		nftID:             nftID,
		unlockConditions:  unlockConditions,
		features:          features,
		immutableFeatures: immutableFeatures,
	}
}

// NFTOutputFromMarshalUtil unmarshals an NFTOutput using a MarshalUtil (for easier unmarshaling).
func NFTOutputFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (output *NFTOutput, err error) {
	outputType, err := marshalUtil.ReadByte()
	if err != nil {
		err = errors.Errorf("failed to parse OutputType (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	if OutputType(outputType) != NFTOutputType {
		err = errors.Errorf("invalid OutputType (%X): %w", outputType, cerrors.ErrParseBytesFailed)
		return
	}

	output = &NFTOutput{}
	if output.amount, err = marshalUtil.ReadUint64(); err != nil {
		err = errors.Errorf("failed to parse amount (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	if output.nftID, err = NFTIDFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse NFTID: %w", err)
		return
	}
	if output.unlockConditions, err = UnlockConditionsFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse UnlockConditions: %w", err)
		return
	}
	if output.features, err = FeaturesFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse Features: %w", err)
		return
	}
	if output.immutableFeatures, err = FeaturesFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse immutable Features: %w", err)
		return
	}

	return
}

// Type returns the OutputType of the Output.
func (n *NFTOutput) Type() OutputType {
	return NFTOutputType
}

// Amount returns the amount of base tokens held by the Output.
func (n *NFTOutput) Amount() uint64 {
	return n.amount
}

// NFTID returns the identifier of the NFT chain. A null NFTID marks the creation of a new chain within the containing
// transaction.
func (n *NFTOutput) NFTID() NFTID {
	return n.nftID
}

// NFTIDNonNull returns the NFTID of the chain, computing it from the given OutputID if the Output is itself a new
// chain creation.
func (n *NFTOutput) NFTIDNonNull(outputID OutputID) NFTID {
	return n.nftID.OrFromOutputID(outputID)
}

// OwnerAddress returns the Address stored in the AddressUnlockCondition of the Output.
func (n *NFTOutput) OwnerAddress() (address Address) {
	if unlockCondition := n.unlockConditions.Address(); unlockCondition != nil {
		address = unlockCondition.Address()
	}

	return
}

// LockedAddress returns the Address that controls the Output at the given point in time (taking an expired
// ExpirationUnlockCondition into account).
func (n *NFTOutput) LockedAddress(currentTime uint32) Address {
	return n.unlockConditions.LockedAddress(n.OwnerAddress(), currentTime)
}

// UnlockConditions returns the UnlockConditions of the Output.
func (n *NFTOutput) UnlockConditions() UnlockConditions {
	return n.unlockConditions
}

// Features returns the Features of the Output.
func (n *NFTOutput) Features() Features {
	return n.features
}

// ImmutableFeatures returns the immutable Features of the Output (fixed at chain creation).
func (n *NFTOutput) ImmutableFeatures() Features {
	return n.immutableFeatures
}

// RequiredAndUnlockedAddress returns the Address that currently controls the Output. Consuming the Output
// additionally unlocks the NFTAddress of the chain itself.
func (n *NFTOutput) RequiredAndUnlockedAddress(currentTime uint32, outputID OutputID, _ bool) (required Address, unlocked Address, err error) {
	required = n.LockedAddress(currentTime)
	if required == nil {
		err = errors.New("nft output without address unlock condition")
		return
	}
	unlocked = NewNFTAddress(n.NFTIDNonNull(outputID))

	return
}

// Clone creates a copy of the Output.
func (n *NFTOutput) Clone() Output {
	cloned, _, err := OutputFromBytes(n.Bytes())
	if err != nil {
		panic(err)
	}

	return cloned
}

// Bytes returns a marshaled version of the Output.
func (n *NFTOutput) Bytes() []byte {
	return marshalutil.New().
		WriteByte(byte(NFTOutputType)).
		WriteUint64(n.amount).
		WriteBytes(n.nftID.Bytes()).
		WriteBytes(n.unlockConditions.Bytes()).
		WriteBytes(n.features.Bytes()).
		WriteBytes(n.immutableFeatures.Bytes()).
		Bytes()
}

// String returns a human readable version of the Output for debug purposes.
func (n *NFTOutput) String() string {
	return stringify.Struct("NFTOutput",
		stringify.StructField("amount", n.amount),
		stringify.StructField("nftID", n.nftID),
		stringify.StructField("unlockConditions", n.unlockConditions),
		stringify.StructField("features", n.features),
		stringify.StructField("immutableFeatures", n.immutableFeatures),
	)
}

// code contract (make sure the type implements all required methods)
var _ Output = &NFTOutput{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
