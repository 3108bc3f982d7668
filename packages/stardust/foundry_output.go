package stardust

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/cerrors"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"
)

// region FoundryOutput ////////////////////////////////////////////////////////////////////////////////////////////////

// FoundryOutput controls the supply of a native token. It is bound to the alias that created it through an
// ImmutableAliasAddressUnlockCondition, so unlocking it always requires a state transition of that alias.
type FoundryOutput struct {
	amount            uint64
	serialNumber      uint32
	unlockConditions  UnlockConditions
	features          Features
	immutableFeatures Features
}

// NewFoundryOutput is the constructor for the FoundryOutput.
func NewFoundryOutput(amount uint64, serialNumber uint32, unlockConditions UnlockConditions, features Features, immutableFeatures Features) *FoundryOutput {
	return &FoundryOutput{
		amount:            amount,
		serialNumber:      serialNumber,
		unlockConditions:  unlockConditions,
		features:          features,
		immutableFeatures: immutableFeatures,
	}
}

// FoundryOutputFromMarshalUtil unmarshals a FoundryOutput using a MarshalUtil (for easier unmarshaling).
func FoundryOutputFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (output *FoundryOutput, err error) {
	outputType, err := marshalUtil.ReadByte()
	if err != nil {
		err = errors.Errorf("failed to parse OutputType (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	if OutputType(outputType) != FoundryOutputType {
		err = errors.Errorf("invalid OutputType (%X): %w", outputType, cerrors.ErrParseBytesFailed)
		return
	}

	output = &FoundryOutput{}
	if output.amount, err = marshalUtil.ReadUint64(); err != nil {
		err = errors.Errorf("failed to parse amount (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	if output.serialNumber, err = marshalUtil.ReadUint32(); err != nil {
		err = errors.Errorf("failed to parse serial number (%v): %w", err, cerrors.ErrParseBytesFailed)
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
func (f *FoundryOutput) Type() OutputType {
	return FoundryOutputType
}

// Amount returns the amount of base tokens held by the Output.
func (f *FoundryOutput) Amount() uint64 {
	return f.amount
}

// SerialNumber returns the serial number of the foundry within its controlling alias.
func (f *FoundryOutput) SerialNumber() uint32 {
	return f.serialNumber
}

// AliasAddress returns the AliasAddress of the alias that controls the foundry.
func (f *FoundryOutput) AliasAddress() (address *AliasAddress) {
	if unlockCondition := f.unlockConditions.ImmutableAliasAddress(); unlockCondition != nil {
		address = unlockCondition.Address()
	}

	return
}

// UnlockConditions returns the UnlockConditions of the Output.
func (f *FoundryOutput) UnlockConditions() UnlockConditions {
	return f.unlockConditions
}

// Features returns the Features of the Output.
func (f *FoundryOutput) Features() Features {
	return f.features
}

// ImmutableFeatures returns the immutable Features of the Output.
func (f *FoundryOutput) ImmutableFeatures() Features {
	return f.immutableFeatures
}

// RequiredAndUnlockedAddress returns the AliasAddress of the controlling alias because a foundry can only ever be
// unlocked through a state transition of that alias.
func (f *FoundryOutput) RequiredAndUnlockedAddress(_ uint32, _ OutputID, _ bool) (required Address, unlocked Address, err error) {
	required = f.AliasAddress()
	if required == nil {
		err = errors.New("foundry output without immutable alias address unlock condition")
		return
	}

	return
}

// Clone creates a copy of the Output.
func (f *FoundryOutput) Clone() Output {
	cloned, _, err := OutputFromBytes(f.Bytes())
	if err != nil {
		panic(err)
	}

	return cloned
}

// Bytes returns a marshaled version of the Output.
func (f *FoundryOutput) Bytes() []byte {
	return marshalutil.New().
		WriteByte(byte(FoundryOutputType)).
		WriteUint64(f.amount).
		WriteUint32(f.serialNumber).
		WriteBytes(f.unlockConditions.Bytes()).
		WriteBytes(f.features.Bytes()).
		WriteBytes(f.immutableFeatures.Bytes()).
		Bytes()
}

// String returns a human readable version of the Output for debug purposes.
func (f *FoundryOutput) String() string {
	return stringify.Struct("FoundryOutput",
		stringify.StructField("amount", f.amount),
		stringify.StructField("serialNumber", f.serialNumber),
		stringify.StructField("unlockConditions", f.unlockConditions),
	)
}

// code contract (make sure the type implements all required methods)
var _ Output = &FoundryOutput{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
