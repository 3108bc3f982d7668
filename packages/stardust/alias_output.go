package stardust

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/cerrors"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"
)

// region AliasOutput //////////////////////////////////////////////////////////////////////////////////////////////////

// AliasOutput is the chain Output of an alias. The output travels along the alias chain: every transaction that
// consumes it has to create exactly one successor with the same AliasID. Consuming it is either a state transition
// (state index increases, gated by the state controller address) or a governance transition (state index unchanged,
// gated by the governor address).
type AliasOutput struct {
	amount            uint64
	aliasID           AliasID
	stateIndex        uint32
	stateMetadata     []byte
	foundryCounter    uint32
	unlockConditions  UnlockConditions
	features          Features
	immutableFeatures Features
}

// NewAliasOutput is the constructor for the AliasOutput.
func NewAliasOutput(amount uint64, aliasID AliasID, stateIndex uint32, unlockConditions UnlockConditions, features Features, immutableFeatures Features) *AliasOutput {
	return &AliasOutput{
		amount:            amount,
		aliasID:           aliasID,
		stateIndex:        stateIndex,
		unlockConditions:  unlockConditions,
		features:          features,
		immutableFeatures: immutableFeatures,
	}
}

// AliasOutputFromMarshalUtil unmarshals an AliasOutput using a MarshalUtil (for easier unmarshaling).
func AliasOutputFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (output *AliasOutput, err error) {
	outputType, err := marshalUtil.ReadByte()
	if err != nil {
		err = errors.Errorf("failed to parse OutputType (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	if OutputType(outputType) != AliasOutputType {
		err = errors.Errorf("invalid OutputType (%X): %w", outputType, cerrors.ErrParseBytesFailed)
		return
	}

	output = &AliasOutput{}
	if output.amount, err = marshalUtil.ReadUint64(); err != nil {
		err = errors.Errorf("failed to parse amount (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	if output.aliasID, err = AliasIDFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse AliasID: %w", err)
		return
	}
	if output.stateIndex, err = marshalUtil.ReadUint32(); err != nil {
		err = errors.Errorf("failed to parse state index (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	stateMetadataSize, err := marshalUtil.ReadUint16()
	if err != nil {
		err = errors.Errorf("failed to parse state metadata size (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	if output.stateMetadata, err = marshalUtil.ReadBytes(int(stateMetadataSize)); err != nil {
		err = errors.Errorf("failed to parse state metadata (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	if output.foundryCounter, err = marshalUtil.ReadUint32(); err != nil {
		err = errors.Errorf("failed to parse foundry counter (%v): %w", err, cerrors.ErrParseBytesFailed)
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
func (a *AliasOutput) Type() OutputType {
	return AliasOutputType
}

// Amount returns the amount of base tokens held by the Output.
func (a *AliasOutput) Amount() uint64 {
	return a.amount
}

// AliasID returns the identifier of the alias chain. A null AliasID marks the creation of a new chain within the
// containing transaction.
func (a *AliasOutput) AliasID() AliasID {
	return a.aliasID
}

// AliasIDNonNull returns the AliasID of the chain, computing it from the given OutputID if the Output is itself a new
// chain creation.
func (a *AliasOutput) AliasIDNonNull(outputID OutputID) AliasID {
	return a.aliasID.OrFromOutputID(outputID)
}

// StateIndex returns the state index of the alias chain.
func (a *AliasOutput) StateIndex() uint32 {
	return a.stateIndex
}

// StateMetadata returns the state metadata of the alias chain.
func (a *AliasOutput) StateMetadata() []byte {
	return a.stateMetadata
}

// FoundryCounter returns the number of foundries that the alias has created so far.
func (a *AliasOutput) FoundryCounter() uint32 {
	return a.foundryCounter
}

// StateControllerAddress returns the Address that is allowed to perform state transitions on the alias chain.
func (a *AliasOutput) StateControllerAddress() (address Address) {
	if unlockCondition := a.unlockConditions.StateControllerAddress(); unlockCondition != nil {
		address = unlockCondition.Address()
	}

	return
}

// GovernorAddress returns the Address that is allowed to perform governance transitions on the alias chain.
func (a *AliasOutput) GovernorAddress() (address Address) {
	if unlockCondition := a.unlockConditions.GovernorAddress(); unlockCondition != nil {
		address = unlockCondition.Address()
	}

	return
}

// UnlockConditions returns the UnlockConditions of the Output.
func (a *AliasOutput) UnlockConditions() UnlockConditions {
	return a.unlockConditions
}

// Features returns the Features of the Output.
func (a *AliasOutput) Features() Features {
	return a.features
}

// ImmutableFeatures returns the immutable Features of the Output (fixed at chain creation).
func (a *AliasOutput) ImmutableFeatures() Features {
	return a.immutableFeatures
}

// RequiredAndUnlockedAddress returns the Address that is required to unlock the Output as an input. A state
// transition requires the state controller address, a governance transition the governor address. Consuming the
// Output additionally unlocks the AliasAddress of the chain itself.
func (a *AliasOutput) RequiredAndUnlockedAddress(_ uint32, outputID OutputID, aliasStateTransition bool) (required Address, unlocked Address, err error) {
	if aliasStateTransition {
		required = a.StateControllerAddress()
	} else {
		required = a.GovernorAddress()
	}
	if required == nil {
		err = errors.New("alias output without state controller or governor unlock condition")
		return
	}
	unlocked = NewAliasAddress(a.AliasIDNonNull(outputID))

	return
}

// Clone creates a copy of the Output.
func (a *AliasOutput) Clone() Output {
	cloned, _, err := OutputFromBytes(a.Bytes())
	if err != nil {
		panic(err)
	}

	return cloned
}

// Bytes returns a marshaled version of the Output.
func (a *AliasOutput) Bytes() []byte {
	return marshalutil.New().
		WriteByte(byte(AliasOutputType)).
		WriteUint64(a.amount).
		WriteBytes(a.aliasID.Bytes()).
		WriteUint32(a.stateIndex).
		WriteUint16(uint16(len(a.stateMetadata))).
		WriteBytes(a.stateMetadata).
		WriteUint32(a.foundryCounter).
		WriteBytes(a.unlockConditions.Bytes()).
		WriteBytes(a.features.Bytes()).
		WriteBytes(a.immutableFeatures.Bytes()).
		Bytes()
}

// String returns a human readable version of the Output for debug purposes.
func (a *AliasOutput) String() string {
	return stringify.Struct("AliasOutput",
		stringify.StructField("amount", a.amount),
		stringify.StructField("aliasID", a.aliasID),
		stringify.StructField("stateIndex", a.stateIndex),
		stringify.StructField("unlockConditions", a.unlockConditions),
		stringify.StructField("features", a.features),
		stringify.StructField("immutableFeatures", a.immutableFeatures),
	)
}

// code contract (make sure the type implements all required methods)
var _ Output = &AliasOutput{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
