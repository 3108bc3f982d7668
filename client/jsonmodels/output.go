package jsonmodels

import (
	"github.com/cockroachdb/errors"
	"github.com/mr-tron/base58"

	"github.com/iotaledger/stardust-client-go/packages/stardust"
)

// region Output ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Output holds the JSON representation of an Output.
type Output struct {
	Type              byte              `json:"type"`
	Amount            uint64            `json:"amount"`
	AliasID           string            `json:"aliasId,omitempty"`
	NFTID             string            `json:"nftId,omitempty"`
	StateIndex        uint32            `json:"stateIndex,omitempty"`
	StateMetadata     string            `json:"stateMetadata,omitempty"`
	FoundryCounter    uint32            `json:"foundryCounter,omitempty"`
	SerialNumber      uint32            `json:"serialNumber,omitempty"`
	UnlockConditions  []UnlockCondition `json:"unlockConditions,omitempty"`
	Features          []Feature         `json:"features,omitempty"`
	ImmutableFeatures []Feature         `json:"immutableFeatures,omitempty"`
}

// NewOutput creates the JSON representation of the given Output.
func NewOutput(output stardust.Output) (jsonOutput Output) {
	jsonOutput.Type = byte(output.Type())
	jsonOutput.Amount = output.Amount()
	for _, unlockCondition := range output.UnlockConditions() {
		jsonOutput.UnlockConditions = append(jsonOutput.UnlockConditions, NewUnlockCondition(unlockCondition))
	}
	for _, feature := range output.Features() {
		jsonOutput.Features = append(jsonOutput.Features, NewFeature(feature))
	}
	for _, feature := range output.ImmutableFeatures() {
		jsonOutput.ImmutableFeatures = append(jsonOutput.ImmutableFeatures, NewFeature(feature))
	}

	switch typedOutput := output.(type) {
	case *stardust.AliasOutput:
		jsonOutput.AliasID = typedOutput.AliasID().Base58()
		jsonOutput.StateIndex = typedOutput.StateIndex()
		jsonOutput.StateMetadata = base58.Encode(typedOutput.StateMetadata())
		jsonOutput.FoundryCounter = typedOutput.FoundryCounter()
	case *stardust.NFTOutput:
		jsonOutput.NFTID = typedOutput.NFTID().Base58()
	case *stardust.FoundryOutput:
		jsonOutput.SerialNumber = typedOutput.SerialNumber()
	}

	return
}

// ToStardustOutput decodes the JSON representation into an Output, validating the amount against the given token
// supply because the data originates from an untrusted source.
func (o *Output) ToStardustOutput(tokenSupply uint64) (output stardust.Output, err error) {
	if err = stardust.CheckAmount(o.Amount, tokenSupply); err != nil {
		return nil, errors.Errorf("failed to validate output amount: %w", err)
	}

	unlockConditions := make(stardust.UnlockConditions, 0, len(o.UnlockConditions))
	for _, jsonUnlockCondition := range o.UnlockConditions {
		unlockCondition, unlockConditionErr := jsonUnlockCondition.ToStardustUnlockCondition()
		if unlockConditionErr != nil {
			return nil, errors.Errorf("failed to decode unlock condition: %w", unlockConditionErr)
		}
		unlockConditions = append(unlockConditions, unlockCondition)
	}

	features, err := featuresFromJSON(o.Features)
	if err != nil {
		return nil, errors.Errorf("failed to decode features: %w", err)
	}
	immutableFeatures, err := featuresFromJSON(o.ImmutableFeatures)
	if err != nil {
		return nil, errors.Errorf("failed to decode immutable features: %w", err)
	}

	switch stardust.OutputType(o.Type) {
	case stardust.TreasuryOutputType:
		return stardust.NewTreasuryOutput(o.Amount), nil
	case stardust.BasicOutputType:
		return stardust.NewBasicOutput(o.Amount, unlockConditions, features), nil
	case stardust.AliasOutputType:
		var aliasID stardust.AliasID
		if o.AliasID != "" {
			if aliasID, err = stardust.AliasIDFromBase58(o.AliasID); err != nil {
				return nil, errors.Errorf("failed to decode alias id: %w", err)
			}
		}

		return stardust.NewAliasOutput(o.Amount, aliasID, o.StateIndex, unlockConditions, features, immutableFeatures), nil
	case stardust.FoundryOutputType:
		return stardust.NewFoundryOutput(o.Amount, o.SerialNumber, unlockConditions, features, immutableFeatures), nil
	case stardust.NFTOutputType:
		var nftID stardust.NFTID
		if o.NFTID != "" {
			if nftID, err = stardust.NFTIDFromBase58(o.NFTID); err != nil {
				return nil, errors.Errorf("failed to decode nft id: %w", err)
			}
		}

		return stardust.NewNFTOutput(o.Amount, nftID, unlockConditions, features, immutableFeatures), nil
	default:
		return nil, errors.Errorf("unsupported output type (%d)", o.Type)
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region UnlockCondition //////////////////////////////////////////////////////////////////////////////////////////////

// UnlockCondition holds the JSON representation of an UnlockCondition.
type UnlockCondition struct {
	Type          byte   `json:"type"`
	Address       string `json:"address,omitempty"`
	ReturnAddress string `json:"returnAddress,omitempty"`
	Amount        uint64 `json:"amount,omitempty"`
	UnixTime      uint32 `json:"unixTime,omitempty"`
}

// NewUnlockCondition creates the JSON representation of the given UnlockCondition.
func NewUnlockCondition(unlockCondition stardust.UnlockCondition) (jsonUnlockCondition UnlockCondition) {
	jsonUnlockCondition.Type = byte(unlockCondition.Type())

	switch typedCondition := unlockCondition.(type) {
	case *stardust.AddressUnlockCondition:
		jsonUnlockCondition.Address = typedCondition.Address().Base58()
	case *stardust.StorageDepositReturnUnlockCondition:
		jsonUnlockCondition.ReturnAddress = typedCondition.ReturnAddress().Base58()
		jsonUnlockCondition.Amount = typedCondition.Amount()
	case *stardust.TimelockUnlockCondition:
		jsonUnlockCondition.UnixTime = typedCondition.UnixTime()
	case *stardust.ExpirationUnlockCondition:
		jsonUnlockCondition.ReturnAddress = typedCondition.ReturnAddress().Base58()
		jsonUnlockCondition.UnixTime = typedCondition.UnixTime()
	case *stardust.StateControllerAddressUnlockCondition:
		jsonUnlockCondition.Address = typedCondition.Address().Base58()
	case *stardust.GovernorAddressUnlockCondition:
		jsonUnlockCondition.Address = typedCondition.Address().Base58()
	case *stardust.ImmutableAliasAddressUnlockCondition:
		jsonUnlockCondition.Address = typedCondition.Address().Base58()
	}

	return
}

// ToStardustUnlockCondition decodes the JSON representation into an UnlockCondition.
func (u *UnlockCondition) ToStardustUnlockCondition() (unlockCondition stardust.UnlockCondition, err error) {
	switch stardust.UnlockConditionType(u.Type) {
	case stardust.AddressUnlockConditionType:
		address, addressErr := stardust.AddressFromBase58(u.Address)
		if addressErr != nil {
			return nil, errors.Errorf("failed to decode address: %w", addressErr)
		}

		return stardust.NewAddressUnlockCondition(address), nil
	case stardust.StorageDepositReturnUnlockConditionType:
		returnAddress, addressErr := stardust.AddressFromBase58(u.ReturnAddress)
		if addressErr != nil {
			return nil, errors.Errorf("failed to decode return address: %w", addressErr)
		}

		return stardust.NewStorageDepositReturnUnlockCondition(returnAddress, u.Amount), nil
	case stardust.TimelockUnlockConditionType:
		return stardust.NewTimelockUnlockCondition(u.UnixTime), nil
	case stardust.ExpirationUnlockConditionType:
		returnAddress, addressErr := stardust.AddressFromBase58(u.ReturnAddress)
		if addressErr != nil {
			return nil, errors.Errorf("failed to decode return address: %w", addressErr)
		}

		return stardust.NewExpirationUnlockCondition(returnAddress, u.UnixTime), nil
	case stardust.StateControllerAddressUnlockConditionType:
		address, addressErr := stardust.AddressFromBase58(u.Address)
		if addressErr != nil {
			return nil, errors.Errorf("failed to decode address: %w", addressErr)
		}

		return stardust.NewStateControllerAddressUnlockCondition(address), nil
	case stardust.GovernorAddressUnlockConditionType:
		address, addressErr := stardust.AddressFromBase58(u.Address)
		if addressErr != nil {
			return nil, errors.Errorf("failed to decode address: %w", addressErr)
		}

		return stardust.NewGovernorAddressUnlockCondition(address), nil
	case stardust.ImmutableAliasAddressUnlockConditionType:
		address, addressErr := stardust.AddressFromBase58(u.Address)
		if addressErr != nil {
			return nil, errors.Errorf("failed to decode address: %w", addressErr)
		}
		aliasAddress, ok := address.(*stardust.AliasAddress)
		if !ok {
			return nil, errors.New("immutable alias address unlock condition does not contain an alias address")
		}

		return stardust.NewImmutableAliasAddressUnlockCondition(aliasAddress), nil
	default:
		return nil, errors.Errorf("unsupported unlock condition type (%d)", u.Type)
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Feature //////////////////////////////////////////////////////////////////////////////////////////////////////

// Feature holds the JSON representation of a Feature.
type Feature struct {
	Type    byte   `json:"type"`
	Address string `json:"address,omitempty"`
	Data    string `json:"data,omitempty"`
	Tag     string `json:"tag,omitempty"`
}

// NewFeature creates the JSON representation of the given Feature.
func NewFeature(feature stardust.Feature) (jsonFeature Feature) {
	jsonFeature.Type = byte(feature.Type())

	switch typedFeature := feature.(type) {
	case *stardust.SenderFeature:
		jsonFeature.Address = typedFeature.Address().Base58()
	case *stardust.IssuerFeature:
		jsonFeature.Address = typedFeature.Address().Base58()
	case *stardust.MetadataFeature:
		jsonFeature.Data = base58.Encode(typedFeature.Data())
	case *stardust.TagFeature:
		jsonFeature.Tag = base58.Encode(typedFeature.Tag())
	}

	return
}

// ToStardustFeature decodes the JSON representation into a Feature.
func (f *Feature) ToStardustFeature() (feature stardust.Feature, err error) {
	switch stardust.FeatureType(f.Type) {
	case stardust.SenderFeatureType:
		address, addressErr := stardust.AddressFromBase58(f.Address)
		if addressErr != nil {
			return nil, errors.Errorf("failed to decode sender address: %w", addressErr)
		}

		return stardust.NewSenderFeature(address), nil
	case stardust.IssuerFeatureType:
		address, addressErr := stardust.AddressFromBase58(f.Address)
		if addressErr != nil {
			return nil, errors.Errorf("failed to decode issuer address: %w", addressErr)
		}

		return stardust.NewIssuerFeature(address), nil
	case stardust.MetadataFeatureType:
		data, dataErr := base58.Decode(f.Data)
		if dataErr != nil {
			return nil, errors.Errorf("failed to decode metadata: %w", dataErr)
		}

		return stardust.NewMetadataFeature(data), nil
	case stardust.TagFeatureType:
		tag, tagErr := base58.Decode(f.Tag)
		if tagErr != nil {
			return nil, errors.Errorf("failed to decode tag: %w", tagErr)
		}

		return stardust.NewTagFeature(tag), nil
	default:
		return nil, errors.Errorf("unsupported feature type (%d)", f.Type)
	}
}

// featuresFromJSON decodes a list of JSON features.
func featuresFromJSON(jsonFeatures []Feature) (features stardust.Features, err error) {
	for i := range jsonFeatures {
		feature, featureErr := jsonFeatures[i].ToStardustFeature()
		if featureErr != nil {
			return nil, featureErr
		}
		features = append(features, feature)
	}

	return
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region OutputMetadata ///////////////////////////////////////////////////////////////////////////////////////////////

// OutputMetadata holds the JSON representation of the metadata of an Output.
type OutputMetadata struct {
	TransactionID            string `json:"transactionId"`
	OutputIndex              uint16 `json:"outputIndex"`
	IsSpent                  bool   `json:"isSpent"`
	MilestoneIndexBooked     uint32 `json:"milestoneIndexBooked"`
	MilestoneTimestampBooked uint32 `json:"milestoneTimestampBooked"`
	LedgerIndex              uint32 `json:"ledgerIndex"`
}

// OutputID computes the OutputID that the metadata belongs to.
func (o *OutputMetadata) OutputID() (outputID stardust.OutputID, err error) {
	transactionIDBytes, err := base58.Decode(o.TransactionID)
	if err != nil {
		return stardust.EmptyOutputID, errors.Errorf("failed to decode transaction id: %w", err)
	}
	if len(transactionIDBytes) != stardust.TransactionIDLength {
		return stardust.EmptyOutputID, errors.Errorf("invalid transaction id length (%d)", len(transactionIDBytes))
	}

	var transactionID stardust.TransactionID
	copy(transactionID[:], transactionIDBytes)

	return stardust.NewOutputID(transactionID, o.OutputIndex), nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region OutputResponse ///////////////////////////////////////////////////////////////////////////////////////////////

// OutputResponse is the HTTP response of an output request.
type OutputResponse struct {
	Metadata OutputMetadata `json:"metadata"`
	Output   Output         `json:"output"`
	Error    string         `json:"error,omitempty"`
}

// OutputsResponse is the HTTP response of a request for the outputs that belong to an address.
type OutputsResponse struct {
	LedgerIndex uint32           `json:"ledgerIndex"`
	Outputs     []OutputResponse `json:"outputs"`
	Error       string           `json:"error,omitempty"`
}

// OutputIDResponse is the HTTP response of a chain output id lookup.
type OutputIDResponse struct {
	LedgerIndex uint32 `json:"ledgerIndex"`
	OutputID    string `json:"outputId"`
	Error       string `json:"error,omitempty"`
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
