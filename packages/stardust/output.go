package stardust

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/cerrors"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"
)

// region OutputType ///////////////////////////////////////////////////////////////////////////////////////////////////

const (
	// TreasuryOutputType represents the Output of the treasury transaction.
	TreasuryOutputType OutputType = 2

	// BasicOutputType represents an Output that is only gated by unlock conditions.
	BasicOutputType OutputType = 3

	// AliasOutputType represents the chain Output of an alias.
	AliasOutputType OutputType = 4

	// FoundryOutputType represents the Output that controls a native token supply.
	FoundryOutputType OutputType = 5

	// NFTOutputType represents the chain Output of an NFT.
	NFTOutputType OutputType = 6
)

// OutputType represents the type of an Output.
type OutputType byte

// String returns a human readable representation of the OutputType.
func (o OutputType) String() string {
	switch o {
	case TreasuryOutputType:
		return "TreasuryOutput"
	case BasicOutputType:
		return "BasicOutput"
	case AliasOutputType:
		return "AliasOutput"
	case FoundryOutputType:
		return "FoundryOutput"
	case NFTOutputType:
		return "NFTOutput"
	default:
		return "UnknownOutputType"
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Output ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Output is an interface for the different kinds of Outputs that exist in the Stardust ledger.
type Output interface {
	// Type returns the OutputType of the Output.
	Type() OutputType

	// Amount returns the amount of base tokens held by the Output.
	Amount() uint64

	// UnlockConditions returns the UnlockConditions of the Output.
	UnlockConditions() UnlockConditions

	// Features returns the Features of the Output.
	Features() Features

	// ImmutableFeatures returns the immutable Features of the Output (fixed at chain creation).
	ImmutableFeatures() Features

	// RequiredAndUnlockedAddress returns the Address that is required to unlock the Output as an input at the given
	// point in time and, for chain outputs, the chain Address that becomes unlocked as a side effect of consuming it.
	// For alias outputs the required Address depends on whether the consumption is a state or a governance
	// transition, which the caller passes in as aliasStateTransition.
	RequiredAndUnlockedAddress(currentTime uint32, outputID OutputID, aliasStateTransition bool) (required Address, unlocked Address, err error)

	// Clone creates a copy of the Output.
	Clone() Output

	// Bytes returns a marshaled version of the Output.
	Bytes() []byte

	// String returns a human readable version of the Output for debug purposes.
	String() string
}

// OutputFromBytes unmarshals an Output from a sequence of bytes.
func OutputFromBytes(data []byte) (output Output, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(data)
	if output, err = OutputFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse Output from MarshalUtil: %w", err)
		return
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// OutputFromMarshalUtil unmarshals an Output using a MarshalUtil (for easier unmarshaling).
func OutputFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (output Output, err error) {
	outputType, err := marshalUtil.ReadByte()
	if err != nil {
		err = errors.Errorf("failed to parse OutputType (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	marshalUtil.ReadSeek(-1)

	switch OutputType(outputType) {
	case TreasuryOutputType:
		return TreasuryOutputFromMarshalUtil(marshalUtil)
	case BasicOutputType:
		return BasicOutputFromMarshalUtil(marshalUtil)
	case AliasOutputType:
		return AliasOutputFromMarshalUtil(marshalUtil)
	case FoundryOutputType:
		return FoundryOutputFromMarshalUtil(marshalUtil)
	case NFTOutputType:
		return NFTOutputFromMarshalUtil(marshalUtil)
	default:
		err = errors.Errorf("unsupported output type (%X): %w", outputType, cerrors.ErrParseBytesFailed)
		return
	}
}

// CheckAmount validates the token amount of an Output that was decoded from an untrusted source against the total
// token supply of the network.
func CheckAmount(amount uint64, tokenSupply uint64) (err error) {
	if amount == 0 {
		return errors.Errorf("output amount must be greater than zero: %w", cerrors.ErrParseBytesFailed)
	}
	if amount > tokenSupply {
		return errors.Errorf("output amount (%d) exceeds token supply (%d): %w", amount, tokenSupply, cerrors.ErrParseBytesFailed)
	}

	return nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region BasicOutput //////////////////////////////////////////////////////////////////////////////////////////////////

// BasicOutput is an Output that holds base tokens and is only gated by its UnlockConditions.
type BasicOutput struct {
	amount           uint64
	unlockConditions UnlockConditions
	features         Features
}

// NewBasicOutput is the constructor for the BasicOutput.
func NewBasicOutput(amount uint64, unlockConditions UnlockConditions, features Features) *BasicOutput {
	return &BasicOutput{
		amount:           amount,
		unlockConditions: unlockConditions,
		features:         features,
	}
}

// BasicOutputFromMarshalUtil unmarshals a BasicOutput using a MarshalUtil (for easier unmarshaling).
func BasicOutputFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (output *BasicOutput, err error) {
	outputType, err := marshalUtil.ReadByte()
	if err != nil {
		err = errors.Errorf("failed to parse OutputType (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	if OutputType(outputType) != BasicOutputType {
		err = errors.Errorf("invalid OutputType (%X): %w", outputType, cerrors.ErrParseBytesFailed)
		return
	}

	output = &BasicOutput{}
	if output.amount, err = marshalUtil.ReadUint64(); err != nil {
		err = errors.Errorf("failed to parse amount (%v): %w", err, cerrors.ErrParseBytesFailed)
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

	return
}

// Type returns the OutputType of the Output.
func (b *BasicOutput) Type() OutputType {
	return BasicOutputType
}

// Amount returns the amount of base tokens held by the Output.
func (b *BasicOutput) Amount() uint64 {
	return b.amount
}

// UnlockConditions returns the UnlockConditions of the Output.
func (b *BasicOutput) UnlockConditions() UnlockConditions {
	return b.unlockConditions
}

// Features returns the Features of the Output.
func (b *BasicOutput) Features() Features {
	return b.features
}

// ImmutableFeatures returns the immutable Features of the Output (a BasicOutput has none).
func (b *BasicOutput) ImmutableFeatures() Features {
	return nil
}

// RequiredAndUnlockedAddress returns the Address that is required to unlock the Output at the given point in time.
func (b *BasicOutput) RequiredAndUnlockedAddress(currentTime uint32, _ OutputID, _ bool) (required Address, unlocked Address, err error) {
	addressUnlockCondition := b.unlockConditions.Address()
	if addressUnlockCondition == nil {
		err = errors.New("basic output without address unlock condition")
		return
	}
	required = b.unlockConditions.LockedAddress(addressUnlockCondition.Address(), currentTime)

	return
}

// Clone creates a copy of the Output.
func (b *BasicOutput) Clone() Output {
	cloned, _, err := OutputFromBytes(b.Bytes())
	if err != nil {
		panic(err)
	}

	return cloned
}

// Bytes returns a marshaled version of the Output.
func (b *BasicOutput) Bytes() []byte {
	return marshalutil.New().
		WriteByte(byte(BasicOutputType)).
		WriteUint64(b.amount).
		WriteBytes(b.unlockConditions.Bytes()).
		WriteBytes(b.features.Bytes()).
		Bytes()
}

// String returns a human readable version of the Output for debug purposes.
func (b *BasicOutput) String() string {
	return stringify.Struct("BasicOutput",
		stringify.StructField("amount", b.amount),
		stringify.StructField("unlockConditions", b.unlockConditions),
		stringify.StructField("features", b.features),
	)
}

// code contract (make sure the type implements all required methods)
var _ Output = &BasicOutput{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region TreasuryOutput ///////////////////////////////////////////////////////////////////////////////////////////////

// TreasuryOutput is the Output of the treasury transaction. It can not be owned by an Address and therefore also not
// be used as an input that unlocks one.
type TreasuryOutput struct {
	amount uint64
}

// NewTreasuryOutput is the constructor for the TreasuryOutput.
func NewTreasuryOutput(amount uint64) *TreasuryOutput {
	return &TreasuryOutput{
		amount: amount,
	}
}

// TreasuryOutputFromMarshalUtil unmarshals a TreasuryOutput using a MarshalUtil (for easier unmarshaling).
func TreasuryOutputFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (output *TreasuryOutput, err error) {
	outputType, err := marshalUtil.ReadByte()
	if err != nil {
		err = errors.Errorf("failed to parse OutputType (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	if OutputType(outputType) != TreasuryOutputType {
		err = errors.Errorf("invalid OutputType (%X): %w", outputType, cerrors.ErrParseBytesFailed)
		return
	}

	output = &TreasuryOutput{}
	if output.amount, err = marshalUtil.ReadUint64(); err != nil {
		err = errors.Errorf("failed to parse amount (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}

	return
}

// Type returns the OutputType of the Output.
func (t *TreasuryOutput) Type() OutputType {
	return TreasuryOutputType
}

// Amount returns the amount of base tokens held by the Output.
func (t *TreasuryOutput) Amount() uint64 {
	return t.amount
}

// UnlockConditions returns the UnlockConditions of the Output (a TreasuryOutput has none).
func (t *TreasuryOutput) UnlockConditions() UnlockConditions {
	return nil
}

// Features returns the Features of the Output (a TreasuryOutput has none).
func (t *TreasuryOutput) Features() Features {
	return nil
}

// ImmutableFeatures returns the immutable Features of the Output (a TreasuryOutput has none).
func (t *TreasuryOutput) ImmutableFeatures() Features {
	return nil
}

// RequiredAndUnlockedAddress returns an error because a TreasuryOutput is not gated by an Address.
func (t *TreasuryOutput) RequiredAndUnlockedAddress(_ uint32, _ OutputID, _ bool) (required Address, unlocked Address, err error) {
	err = errors.New("treasury output can not be unlocked by an address")

	return
}

// Clone creates a copy of the Output.
func (t *TreasuryOutput) Clone() Output {
	return &TreasuryOutput{
		amount: t.amount,
	}
}

// Bytes returns a marshaled version of the Output.
func (t *TreasuryOutput) Bytes() []byte {
	return marshalutil.New().
		WriteByte(byte(TreasuryOutputType)).
		WriteUint64(t.amount).
		Bytes()
}

// String returns a human readable version of the Output for debug purposes.
func (t *TreasuryOutput) String() string {
	return stringify.Struct("TreasuryOutput",
		stringify.StructField("amount", t.amount),
	)
}

// code contract (make sure the type implements all required methods)
var _ Output = &TreasuryOutput{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
