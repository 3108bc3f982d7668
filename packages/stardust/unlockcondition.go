package stardust

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/cerrors"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"
)

// region UnlockConditionType //////////////////////////////////////////////////////////////////////////////////////////

const (
	// AddressUnlockConditionType represents an UnlockCondition that requires a signature for a given Address.
	AddressUnlockConditionType UnlockConditionType = iota

	// StorageDepositReturnUnlockConditionType represents an UnlockCondition that requires a deposit refund.
	StorageDepositReturnUnlockConditionType

	// TimelockUnlockConditionType represents an UnlockCondition that forbids consumption before a point in time.
	TimelockUnlockConditionType

	// ExpirationUnlockConditionType represents an UnlockCondition that returns control of the Output to a return
	// address once a point in time has passed.
	ExpirationUnlockConditionType

	// StateControllerAddressUnlockConditionType represents the UnlockCondition for alias state transitions.
	StateControllerAddressUnlockConditionType

	// GovernorAddressUnlockConditionType represents the UnlockCondition for alias governance transitions.
	GovernorAddressUnlockConditionType

	// ImmutableAliasAddressUnlockConditionType represents the UnlockCondition that binds a foundry to its alias.
	ImmutableAliasAddressUnlockConditionType
)

// UnlockConditionType represents the type of an UnlockCondition.
type UnlockConditionType byte

// String returns a human readable representation of the UnlockConditionType.
func (u UnlockConditionType) String() string {
	return [...]string{
		"AddressUnlockCondition",
		"StorageDepositReturnUnlockCondition",
		"TimelockUnlockCondition",
		"ExpirationUnlockCondition",
		"StateControllerAddressUnlockCondition",
		"GovernorAddressUnlockCondition",
		"ImmutableAliasAddressUnlockCondition",
	}[u]
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region UnlockCondition //////////////////////////////////////////////////////////////////////////////////////////////

// UnlockCondition is an interface for the different kinds of conditions that gate the consumption of an Output.
type UnlockCondition interface {
	// Type returns the UnlockConditionType of the UnlockCondition.
	Type() UnlockConditionType

	// Bytes returns a marshaled version of the UnlockCondition.
	Bytes() []byte

	// String returns a human readable version of the UnlockCondition for debug purposes.
	String() string
}

// UnlockConditionFromMarshalUtil unmarshals an UnlockCondition using a MarshalUtil (for easier unmarshaling).
func UnlockConditionFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (unlockCondition UnlockCondition, err error) {
	unlockConditionType, err := marshalUtil.ReadByte()
	if err != nil {
		err = errors.Errorf("failed to parse UnlockConditionType (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}

	switch UnlockConditionType(unlockConditionType) {
	case AddressUnlockConditionType:
		var address Address
		if address, err = AddressFromMarshalUtil(marshalUtil); err != nil {
			err = errors.Errorf("failed to parse Address: %w", err)
			return
		}
		unlockCondition = NewAddressUnlockCondition(address)
	case StorageDepositReturnUnlockConditionType:
		var returnAddress Address
		if returnAddress, err = AddressFromMarshalUtil(marshalUtil); err != nil {
			err = errors.Errorf("failed to parse return Address: %w", err)
			return
		}
		var amount uint64
		if amount, err = marshalUtil.ReadUint64(); err != nil {
			err = errors.Errorf("failed to parse return amount (%v): %w", err, cerrors.ErrParseBytesFailed)
			return
		}
		unlockCondition = NewStorageDepositReturnUnlockCondition(returnAddress, amount)
	case TimelockUnlockConditionType:
		var unixTime uint32
		if unixTime, err = marshalUtil.ReadUint32(); err != nil {
			err = errors.Errorf("failed to parse timelock (%v): %w", err, cerrors.ErrParseBytesFailed)
			return
		}
		unlockCondition = NewTimelockUnlockCondition(unixTime)
	case ExpirationUnlockConditionType:
		var returnAddress Address
		if returnAddress, err = AddressFromMarshalUtil(marshalUtil); err != nil {
			err = errors.Errorf("failed to parse return Address: %w", err)
			return
		}
		var unixTime uint32
		if unixTime, err = marshalUtil.ReadUint32(); err != nil {
			err = errors.Errorf("failed to parse expiration time (%v): %w", err, cerrors.ErrParseBytesFailed)
			return
		}
		unlockCondition = NewExpirationUnlockCondition(returnAddress, unixTime)
	case StateControllerAddressUnlockConditionType:
		var address Address
		if address, err = AddressFromMarshalUtil(marshalUtil); err != nil {
			err = errors.Errorf("failed to parse Address: %w", err)
			return
		}
		unlockCondition = NewStateControllerAddressUnlockCondition(address)
	case GovernorAddressUnlockConditionType:
		var address Address
		if address, err = AddressFromMarshalUtil(marshalUtil); err != nil {
			err = errors.Errorf("failed to parse Address: %w", err)
			return
		}
		unlockCondition = NewGovernorAddressUnlockCondition(address)
	case ImmutableAliasAddressUnlockConditionType:
		var address *AliasAddress
		if address, err = AliasAddressFromMarshalUtil(marshalUtil); err != nil {
			err = errors.Errorf("failed to parse AliasAddress: %w", err)
			return
		}
		unlockCondition = NewImmutableAliasAddressUnlockCondition(address)
	default:
		err = errors.Errorf("unsupported unlock condition type (%X): %w", unlockConditionType, cerrors.ErrParseBytesFailed)
		return
	}

	return
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region UnlockConditions /////////////////////////////////////////////////////////////////////////////////////////////

// UnlockConditions is the ordered collection of UnlockConditions attached to an Output.
type UnlockConditions []UnlockCondition

// UnlockConditionsFromMarshalUtil unmarshals UnlockConditions using a MarshalUtil (for easier unmarshaling).
func UnlockConditionsFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (unlockConditions UnlockConditions, err error) {
	unlockConditionCount, err := marshalUtil.ReadByte()
	if err != nil {
		err = errors.Errorf("failed to parse unlock condition count (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}

	unlockConditions = make(UnlockConditions, unlockConditionCount)
	for i := range unlockConditions {
		if unlockConditions[i], err = UnlockConditionFromMarshalUtil(marshalUtil); err != nil {
			err = errors.Errorf("failed to parse UnlockCondition: %w", err)
			return
		}
	}

	return
}

// Address returns the AddressUnlockCondition if one is present.
func (u UnlockConditions) Address() *AddressUnlockCondition {
	for _, unlockCondition := range u {
		if typedCondition, ok := unlockCondition.(*AddressUnlockCondition); ok {
			return typedCondition
		}
	}

	return nil
}

// Timelock returns the TimelockUnlockCondition if one is present.
func (u UnlockConditions) Timelock() *TimelockUnlockCondition {
	for _, unlockCondition := range u {
		if typedCondition, ok := unlockCondition.(*TimelockUnlockCondition); ok {
			return typedCondition
		}
	}

	return nil
}

// Expiration returns the ExpirationUnlockCondition if one is present.
func (u UnlockConditions) Expiration() *ExpirationUnlockCondition {
	for _, unlockCondition := range u {
		if typedCondition, ok := unlockCondition.(*ExpirationUnlockCondition); ok {
			return typedCondition
		}
	}

	return nil
}

// StateControllerAddress returns the StateControllerAddressUnlockCondition if one is present.
func (u UnlockConditions) StateControllerAddress() *StateControllerAddressUnlockCondition {
	for _, unlockCondition := range u {
		if typedCondition, ok := unlockCondition.(*StateControllerAddressUnlockCondition); ok {
			return typedCondition
		}
	}

	return nil
}

// GovernorAddress returns the GovernorAddressUnlockCondition if one is present.
func (u UnlockConditions) GovernorAddress() *GovernorAddressUnlockCondition {
	for _, unlockCondition := range u {
		if typedCondition, ok := unlockCondition.(*GovernorAddressUnlockCondition); ok {
			return typedCondition
		}
	}

	return nil
}

// ImmutableAliasAddress returns the ImmutableAliasAddressUnlockCondition if one is present.
func (u UnlockConditions) ImmutableAliasAddress() *ImmutableAliasAddressUnlockCondition {
	for _, unlockCondition := range u {
		if typedCondition, ok := unlockCondition.(*ImmutableAliasAddressUnlockCondition); ok {
			return typedCondition
		}
	}

	return nil
}

// LockedAddress returns the Address that currently controls the Output that carries these UnlockConditions. The owner
// is the given default Address unless an ExpirationUnlockCondition has already expired at the given time, in which
// case control falls back to the return address of the expiration.
func (u UnlockConditions) LockedAddress(owner Address, currentTime uint32) Address {
	if expiration := u.Expiration(); expiration != nil && currentTime >= expiration.UnixTime() {
		return expiration.ReturnAddress()
	}

	return owner
}

// Bytes returns a marshaled version of the UnlockConditions.
func (u UnlockConditions) Bytes() []byte {
	marshalUtil := marshalutil.New()
	marshalUtil.WriteByte(byte(len(u)))
	for _, unlockCondition := range u {
		marshalUtil.WriteBytes(unlockCondition.Bytes())
	}

	return marshalUtil.Bytes()
}

// String returns a human readable version of the UnlockConditions for debug purposes.
func (u UnlockConditions) String() string {
	structBuilder := stringify.StructBuilder("UnlockConditions")
	for _, unlockCondition := range u {
		structBuilder.AddField(stringify.StructField(unlockCondition.Type().String(), unlockCondition))
	}

	return structBuilder.String()
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region AddressUnlockCondition ///////////////////////////////////////////////////////////////////////////////////////

// AddressUnlockCondition is the UnlockCondition that requires the transaction to be signed for a given Address.
type AddressUnlockCondition struct {
	address Address
}

// NewAddressUnlockCondition is the constructor for the AddressUnlockCondition.
func NewAddressUnlockCondition(address Address) *AddressUnlockCondition {
	return &AddressUnlockCondition{
		address: address,
	}
}

// Type returns the UnlockConditionType of the UnlockCondition.
func (a *AddressUnlockCondition) Type() UnlockConditionType {
	return AddressUnlockConditionType
}

// Address returns the Address that the UnlockCondition refers to.
func (a *AddressUnlockCondition) Address() Address {
	return a.address
}

// Bytes returns a marshaled version of the UnlockCondition.
func (a *AddressUnlockCondition) Bytes() []byte {
	return marshalutil.New().
		WriteByte(byte(AddressUnlockConditionType)).
		WriteBytes(a.address.Bytes()).
		Bytes()
}

// String returns a human readable version of the UnlockCondition for debug purposes.
func (a *AddressUnlockCondition) String() string {
	return stringify.Struct("AddressUnlockCondition",
		stringify.StructField("address", a.address),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region StorageDepositReturnUnlockCondition //////////////////////////////////////////////////////////////////////////

// StorageDepositReturnUnlockCondition is the UnlockCondition that requires a consuming transaction to deposit an
// amount back to a return address.
type StorageDepositReturnUnlockCondition struct {
	returnAddress Address
	amount        uint64
}

// NewStorageDepositReturnUnlockCondition is the constructor for the StorageDepositReturnUnlockCondition.
func NewStorageDepositReturnUnlockCondition(returnAddress Address, amount uint64) *StorageDepositReturnUnlockCondition {
	return &StorageDepositReturnUnlockCondition{
		returnAddress: returnAddress,
		amount:        amount,
	}
}

// Type returns the UnlockConditionType of the UnlockCondition.
func (s *StorageDepositReturnUnlockCondition) Type() UnlockConditionType {
	return StorageDepositReturnUnlockConditionType
}

// ReturnAddress returns the Address that the deposit has to be returned to.
func (s *StorageDepositReturnUnlockCondition) ReturnAddress() Address {
	return s.returnAddress
}

// Amount returns the amount that has to be returned.
func (s *StorageDepositReturnUnlockCondition) Amount() uint64 {
	return s.amount
}

// Bytes returns a marshaled version of the UnlockCondition.
func (s *StorageDepositReturnUnlockCondition) Bytes() []byte {
	return marshalutil.New().
		WriteByte(byte(StorageDepositReturnUnlockConditionType)).
		WriteBytes(s.returnAddress.Bytes()).
		WriteUint64(s.amount).
		Bytes()
}

// String returns a human readable version of the UnlockCondition for debug purposes.
func (s *StorageDepositReturnUnlockCondition) String() string {
	return stringify.Struct("StorageDepositReturnUnlockCondition",
		stringify.StructField("returnAddress", s.returnAddress),
		stringify.StructField("amount", s.amount),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region TimelockUnlockCondition //////////////////////////////////////////////////////////////////////////////////////

// TimelockUnlockCondition is the UnlockCondition that forbids consuming an Output before a point in time.
type TimelockUnlockCondition struct {
	unixTime uint32
}

// NewTimelockUnlockCondition is the constructor for the TimelockUnlockCondition.
func NewTimelockUnlockCondition(unixTime uint32) *TimelockUnlockCondition {
	return &TimelockUnlockCondition{
		unixTime: unixTime,
	}
}

// Type returns the UnlockConditionType of the UnlockCondition.
func (t *TimelockUnlockCondition) Type() UnlockConditionType {
	return TimelockUnlockConditionType
}

// UnixTime returns the point in time before which the Output can not be consumed.
func (t *TimelockUnlockCondition) UnixTime() uint32 {
	return t.unixTime
}

// Bytes returns a marshaled version of the UnlockCondition.
func (t *TimelockUnlockCondition) Bytes() []byte {
	return marshalutil.New().
		WriteByte(byte(TimelockUnlockConditionType)).
		WriteUint32(t.unixTime).
		Bytes()
}

// String returns a human readable version of the UnlockCondition for debug purposes.
func (t *TimelockUnlockCondition) String() string {
	return stringify.Struct("TimelockUnlockCondition",
		stringify.StructField("unixTime", t.unixTime),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region ExpirationUnlockCondition ////////////////////////////////////////////////////////////////////////////////////

// ExpirationUnlockCondition is the UnlockCondition that returns control of an Output to a return address once the
// expiration time has passed.
type ExpirationUnlockCondition struct {
	returnAddress Address
	unixTime      uint32
}

// NewExpirationUnlockCondition is the constructor for the ExpirationUnlockCondition.
func NewExpirationUnlockCondition(returnAddress Address, unixTime uint32) *ExpirationUnlockCondition {
	return &ExpirationUnlockCondition{
		returnAddress: returnAddress,
		unixTime:      unixTime,
	}
}

// Type returns the UnlockConditionType of the UnlockCondition.
func (e *ExpirationUnlockCondition) Type() UnlockConditionType {
	return ExpirationUnlockConditionType
}

// ReturnAddress returns the Address that the Output falls back to after the expiration time has passed.
func (e *ExpirationUnlockCondition) ReturnAddress() Address {
	return e.returnAddress
}

// UnixTime returns the point in time at which control of the Output switches to the return address.
func (e *ExpirationUnlockCondition) UnixTime() uint32 {
	return e.unixTime
}

// Bytes returns a marshaled version of the UnlockCondition.
func (e *ExpirationUnlockCondition) Bytes() []byte {
	return marshalutil.New().
		WriteByte(byte(ExpirationUnlockConditionType)).
		WriteBytes(e.returnAddress.Bytes()).
		WriteUint32(e.unixTime).
		Bytes()
}

// String returns a human readable version of the UnlockCondition for debug purposes.
func (e *ExpirationUnlockCondition) String() string {
	return stringify.Struct("ExpirationUnlockCondition",
		stringify.StructField("returnAddress", e.returnAddress),
		stringify.StructField("unixTime", e.unixTime),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region StateControllerAddressUnlockCondition ////////////////////////////////////////////////////////////////////////

// StateControllerAddressUnlockCondition is the UnlockCondition that gates state transitions of an alias output.
type StateControllerAddressUnlockCondition struct {
	address Address
}

// NewStateControllerAddressUnlockCondition is the constructor for the StateControllerAddressUnlockCondition.
func NewStateControllerAddressUnlockCondition(address Address) *StateControllerAddressUnlockCondition {
	return &StateControllerAddressUnlockCondition{
		address: address,
	}
}

// Type returns the UnlockConditionType of the UnlockCondition.
func (s *StateControllerAddressUnlockCondition) Type() UnlockConditionType {
	return StateControllerAddressUnlockConditionType
}

// Address returns the Address that the UnlockCondition refers to.
func (s *StateControllerAddressUnlockCondition) Address() Address {
	return s.address
}

// Bytes returns a marshaled version of the UnlockCondition.
func (s *StateControllerAddressUnlockCondition) Bytes() []byte {
	return marshalutil.New().
		WriteByte(byte(StateControllerAddressUnlockConditionType)).
		WriteBytes(s.address.Bytes()).
		Bytes()
}

// String returns a human readable version of the UnlockCondition for debug purposes.
func (s *StateControllerAddressUnlockCondition) String() string {
	return stringify.Struct("StateControllerAddressUnlockCondition",
		stringify.StructField("address", s.address),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region GovernorAddressUnlockCondition ///////////////////////////////////////////////////////////////////////////////

// GovernorAddressUnlockCondition is the UnlockCondition that gates governance transitions of an alias output.
type GovernorAddressUnlockCondition struct {
	address Address
}

// NewGovernorAddressUnlockCondition is the constructor for the GovernorAddressUnlockCondition.
func NewGovernorAddressUnlockCondition(address Address) *GovernorAddressUnlockCondition {
	return &GovernorAddressUnlockCondition{
		address: address,
	}
}

// Type returns the UnlockConditionType of the UnlockCondition.
func (g *GovernorAddressUnlockCondition) Type() UnlockConditionType {
	return GovernorAddressUnlockConditionType
}

// Address returns the Address that the UnlockCondition refers to.
func (g *GovernorAddressUnlockCondition) Address() Address {
	return g.address
}

// Bytes returns a marshaled version of the UnlockCondition.
func (g *GovernorAddressUnlockCondition) Bytes() []byte {
	return marshalutil.New().
		WriteByte(byte(GovernorAddressUnlockConditionType)).
		WriteBytes(g.address.Bytes()).
		Bytes()
}

// String returns a human readable version of the UnlockCondition for debug purposes.
func (g *GovernorAddressUnlockCondition) String() string {
	return stringify.Struct("GovernorAddressUnlockCondition",
		stringify.StructField("address", g.address),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region ImmutableAliasAddressUnlockCondition /////////////////////////////////////////////////////////////////////////

// ImmutableAliasAddressUnlockCondition is the UnlockCondition that binds a foundry output to the alias that controls
// it for the whole lifetime of the foundry.
type ImmutableAliasAddressUnlockCondition struct {
	address *AliasAddress
}

// NewImmutableAliasAddressUnlockCondition is the constructor for the ImmutableAliasAddressUnlockCondition.
func NewImmutableAliasAddressUnlockCondition(address *AliasAddress) *ImmutableAliasAddressUnlockCondition {
	return &ImmutableAliasAddressUnlockCondition{
		address: address,
	}
}

// Type returns the UnlockConditionType of the UnlockCondition.
func (i *ImmutableAliasAddressUnlockCondition) Type() UnlockConditionType {
	return ImmutableAliasAddressUnlockConditionType
}

// Address returns the AliasAddress that the UnlockCondition refers to.
func (i *ImmutableAliasAddressUnlockCondition) Address() *AliasAddress {
	return i.address
}

// Bytes returns a marshaled version of the UnlockCondition.
func (i *ImmutableAliasAddressUnlockCondition) Bytes() []byte {
	return marshalutil.New().
		WriteByte(byte(ImmutableAliasAddressUnlockConditionType)).
		WriteBytes(i.address.Bytes()).
		Bytes()
}

// String returns a human readable version of the UnlockCondition for debug purposes.
func (i *ImmutableAliasAddressUnlockCondition) String() string {
	return stringify.Struct("ImmutableAliasAddressUnlockCondition",
		stringify.StructField("address", i.address),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
