package stardust

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/cerrors"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"
)

// region FeatureType //////////////////////////////////////////////////////////////////////////////////////////////////

const (
	// SenderFeatureType represents a Feature that binds an Output to a sender Address.
	SenderFeatureType FeatureType = iota

	// IssuerFeatureType represents a Feature that binds a chain Output to an issuer Address at creation time.
	IssuerFeatureType

	// MetadataFeatureType represents a Feature that attaches arbitrary metadata to an Output.
	MetadataFeatureType

	// TagFeatureType represents a Feature that attaches an indexation tag to an Output.
	TagFeatureType
)

// FeatureType represents the type of a Feature.
type FeatureType byte

// String returns a human readable representation of the FeatureType.
func (f FeatureType) String() string {
	return [...]string{
		"SenderFeature",
		"IssuerFeature",
		"MetadataFeature",
		"TagFeature",
	}[f]
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Feature //////////////////////////////////////////////////////////////////////////////////////////////////////

// Feature is an interface for the different kinds of features that can be attached to an Output. The sender and
// issuer features express authorization constraints: the referenced Address has to be unlocked somewhere in the same
// transaction that creates the Output.
type Feature interface {
	// Type returns the FeatureType of the Feature.
	Type() FeatureType

	// Bytes returns a marshaled version of the Feature.
	Bytes() []byte

	// String returns a human readable version of the Feature for debug purposes.
	String() string
}

// FeatureFromMarshalUtil unmarshals a Feature using a MarshalUtil (for easier unmarshaling).
func FeatureFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (feature Feature, err error) {
	featureType, err := marshalUtil.ReadByte()
	if err != nil {
		err = errors.Errorf("failed to parse FeatureType (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}

	switch FeatureType(featureType) {
	case SenderFeatureType:
		var address Address
		if address, err = AddressFromMarshalUtil(marshalUtil); err != nil {
			err = errors.Errorf("failed to parse sender Address: %w", err)
			return
		}
		feature = NewSenderFeature(address)
	case IssuerFeatureType:
		var address Address
		if address, err = AddressFromMarshalUtil(marshalUtil); err != nil {
			err = errors.Errorf("failed to parse issuer Address: %w", err)
			return
		}
		feature = NewIssuerFeature(address)
	case MetadataFeatureType:
		var size uint16
		if size, err = marshalUtil.ReadUint16(); err != nil {
			err = errors.Errorf("failed to parse metadata size (%v): %w", err, cerrors.ErrParseBytesFailed)
			return
		}
		var data []byte
		if data, err = marshalUtil.ReadBytes(int(size)); err != nil {
			err = errors.Errorf("failed to parse metadata (%v): %w", err, cerrors.ErrParseBytesFailed)
			return
		}
		feature = NewMetadataFeature(data)
	case TagFeatureType:
		var size byte
		if size, err = marshalUtil.ReadByte(); err != nil {
			err = errors.Errorf("failed to parse tag size (%v): %w", err, cerrors.ErrParseBytesFailed)
			return
		}
		var tag []byte
		if tag, err = marshalUtil.ReadBytes(int(size)); err != nil {
			err = errors.Errorf("failed to parse tag (%v): %w", err, cerrors.ErrParseBytesFailed)
			return
		}
		feature = NewTagFeature(tag)
	default:
		err = errors.Errorf("unsupported feature type (%X): %w", featureType, cerrors.ErrParseBytesFailed)
		return
	}

	return
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Features /////////////////////////////////////////////////////////////////////////////////////////////////////

// Features is the collection of Features attached to an Output.
type Features []Feature

// FeaturesFromMarshalUtil unmarshals Features using a MarshalUtil (for easier unmarshaling).
func FeaturesFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (features Features, err error) {
	featureCount, err := marshalUtil.ReadByte()
	if err != nil {
		err = errors.Errorf("failed to parse feature count (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}

	features = make(Features, featureCount)
	for i := range features {
		if features[i], err = FeatureFromMarshalUtil(marshalUtil); err != nil {
			err = errors.Errorf("failed to parse Feature: %w", err)
			return
		}
	}

	return
}

// Sender returns the SenderFeature if one is present.
func (f Features) Sender() *SenderFeature {
	for _, feature := range f {
		if typedFeature, ok := feature.(*SenderFeature); ok {
			return typedFeature
		}
	}

	return nil
}

// Issuer returns the IssuerFeature if one is present.
func (f Features) Issuer() *IssuerFeature {
	for _, feature := range f {
		if typedFeature, ok := feature.(*IssuerFeature); ok {
			return typedFeature
		}
	}

	return nil
}

// Bytes returns a marshaled version of the Features.
func (f Features) Bytes() []byte {
	marshalUtil := marshalutil.New()
	marshalUtil.WriteByte(byte(len(f)))
	for _, feature := range f {
		marshalUtil.WriteBytes(feature.Bytes())
	}

	return marshalUtil.Bytes()
}

// String returns a human readable version of the Features for debug purposes.
func (f Features) String() string {
	structBuilder := stringify.StructBuilder("Features")
	for _, feature := range f {
		structBuilder.AddField(stringify.StructField(feature.Type().String(), feature))
	}

	return structBuilder.String()
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region SenderFeature ////////////////////////////////////////////////////////////////////////////////////////////////

// SenderFeature binds an Output to a sender Address that has to be unlocked in the transaction that creates the
// Output.
type SenderFeature struct {
	address Address
}

// NewSenderFeature is the constructor for the SenderFeature.
func NewSenderFeature(address Address) *SenderFeature {
	return &SenderFeature{
		address: address,
	}
}

// Type returns the FeatureType of the Feature.
func (s *SenderFeature) Type() FeatureType {
	return SenderFeatureType
}

// Address returns the sender Address.
func (s *SenderFeature) Address() Address {
	return s.address
}

// Bytes returns a marshaled version of the Feature.
func (s *SenderFeature) Bytes() []byte {
	return marshalutil.New().
		WriteByte(byte(SenderFeatureType)).
		WriteBytes(s.address.Bytes()).
		Bytes()
}

// String returns a human readable version of the Feature for debug purposes.
func (s *SenderFeature) String() string {
	return stringify.Struct("SenderFeature",
		stringify.StructField("address", s.address),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region IssuerFeature ////////////////////////////////////////////////////////////////////////////////////////////////

// IssuerFeature binds a chain Output to an issuer Address. It is part of the immutable features of the Output, fixed
// at chain creation and never altered afterwards, which is why it only has to be unlocked when the chain is created.
type IssuerFeature struct {
	address Address
}

// NewIssuerFeature is the constructor for the IssuerFeature.
func NewIssuerFeature(address Address) *IssuerFeature {
	return &IssuerFeature{
		address: address,
	}
}

// Type returns the FeatureType of the Feature.
func (i *IssuerFeature) Type() FeatureType {
	return IssuerFeatureType
}

// Address returns the issuer Address.
func (i *IssuerFeature) Address() Address {
	return i.address
}

// Bytes returns a marshaled version of the Feature.
func (i *IssuerFeature) Bytes() []byte {
	return marshalutil.New().
		WriteByte(byte(IssuerFeatureType)).
		WriteBytes(i.address.Bytes()).
		Bytes()
}

// String returns a human readable version of the Feature for debug purposes.
func (i *IssuerFeature) String() string {
	return stringify.Struct("IssuerFeature",
		stringify.StructField("address", i.address),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region MetadataFeature //////////////////////////////////////////////////////////////////////////////////////////////

// MetadataFeature attaches arbitrary binary metadata to an Output.
type MetadataFeature struct {
	data []byte
}

// NewMetadataFeature is the constructor for the MetadataFeature.
func NewMetadataFeature(data []byte) *MetadataFeature {
	return &MetadataFeature{
		data: data,
	}
}

// Type returns the FeatureType of the Feature.
func (m *MetadataFeature) Type() FeatureType {
	return MetadataFeatureType
}

// Data returns the metadata payload.
func (m *MetadataFeature) Data() []byte {
	return m.data
}

// Bytes returns a marshaled version of the Feature.
func (m *MetadataFeature) Bytes() []byte {
	return marshalutil.New().
		WriteByte(byte(MetadataFeatureType)).
		WriteUint16(uint16(len(m.data))).
		WriteBytes(m.data).
		Bytes()
}

// String returns a human readable version of the Feature for debug purposes.
func (m *MetadataFeature) String() string {
	return stringify.Struct("MetadataFeature",
		stringify.StructField("dataSize", len(m.data)),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region TagFeature ///////////////////////////////////////////////////////////////////////////////////////////////////

// TagFeature attaches an indexation tag to an Output.
type TagFeature struct {
	tag []byte
}

// NewTagFeature is the constructor for the TagFeature.
func NewTagFeature(tag []byte) *TagFeature {
	return &TagFeature{
		tag: tag,
	}
}

// Type returns the FeatureType of the Feature.
func (t *TagFeature) Type() FeatureType {
	return TagFeatureType
}

// Tag returns the tag payload.
func (t *TagFeature) Tag() []byte {
	return t.tag
}

// Bytes returns a marshaled version of the Feature.
func (t *TagFeature) Bytes() []byte {
	return marshalutil.New().
		WriteByte(byte(TagFeatureType)).
		WriteByte(byte(len(t.tag))).
		WriteBytes(t.tag).
		Bytes()
}

// String returns a human readable version of the Feature for debug purposes.
func (t *TagFeature) String() string {
	return stringify.Struct("TagFeature",
		stringify.StructField("tagSize", len(t.tag)),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
