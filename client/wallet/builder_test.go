package wallet

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/iotaledger/stardust-client-go/client/wallet/packages/seed"
	"github.com/iotaledger/stardust-client-go/packages/stardust"
)

// region fakeConnector ////////////////////////////////////////////////////////////////////////////////////////////////

type fakeConnector struct {
	parameters     *Parameters
	outputs        map[stardust.OutputID]*OutputWithMetadata
	aliasOutputIDs map[stardust.AliasID]stardust.OutputID
	nftOutputIDs   map[stardust.NFTID]stardust.OutputID
	basicOutputs   map[string][]*OutputWithMetadata
}

func newFakeConnector() *fakeConnector {
	return &fakeConnector{
		parameters: &Parameters{
			Bech32HRP:                "atoi",
			TokenSupply:              2779530283277761,
			LatestMilestoneIndex:     100,
			LatestMilestoneTimestamp: 10000,
		},
		outputs:        make(map[stardust.OutputID]*OutputWithMetadata),
		aliasOutputIDs: make(map[stardust.AliasID]stardust.OutputID),
		nftOutputIDs:   make(map[stardust.NFTID]stardust.OutputID),
		basicOutputs:   make(map[string][]*OutputWithMetadata),
	}
}

func (f *fakeConnector) addOutput(outputID stardust.OutputID, output stardust.Output) *OutputWithMetadata {
	outputWithMetadata := &OutputWithMetadata{
		Output:   output,
		Metadata: &OutputMetadata{OutputID: outputID},
	}
	f.outputs[outputID] = outputWithMetadata

	switch typedOutput := output.(type) {
	case *stardust.AliasOutput:
		f.aliasOutputIDs[typedOutput.AliasID()] = outputID
	case *stardust.NFTOutput:
		f.nftOutputIDs[typedOutput.NFTID()] = outputID
	case *stardust.BasicOutput:
		ownerAddress := typedOutput.UnlockConditions().Address().Address()
		bech32Address := ownerAddress.Bech32(f.parameters.Bech32HRP)
		f.basicOutputs[bech32Address] = append(f.basicOutputs[bech32Address], outputWithMetadata)
	}

	return outputWithMetadata
}

func (f *fakeConnector) Parameters(_ context.Context) (*Parameters, error) {
	return f.parameters, nil
}

func (f *fakeConnector) GetOutput(_ context.Context, outputID stardust.OutputID) (stardust.Output, *OutputMetadata, error) {
	outputWithMetadata, exists := f.outputs[outputID]
	if !exists {
		return nil, nil, errors.Errorf("output %s not found", outputID)
	}

	return outputWithMetadata.Output, outputWithMetadata.Metadata, nil
}

func (f *fakeConnector) AliasOutputID(_ context.Context, aliasID stardust.AliasID) (stardust.OutputID, error) {
	outputID, exists := f.aliasOutputIDs[aliasID]
	if !exists {
		return stardust.OutputID{}, errors.Errorf("alias %s not found", aliasID)
	}

	return outputID, nil
}

func (f *fakeConnector) NFTOutputID(_ context.Context, nftID stardust.NFTID) (stardust.OutputID, error) {
	outputID, exists := f.nftOutputIDs[nftID]
	if !exists {
		return stardust.OutputID{}, errors.Errorf("nft %s not found", nftID)
	}

	return outputID, nil
}

func (f *fakeConnector) BasicOutputs(_ context.Context, bech32Address string) ([]*OutputWithMetadata, error) {
	return f.basicOutputs[bech32Address], nil
}

var _ Connector = &fakeConnector{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

func testSeed() *seed.Seed {
	seedBytes := make([]byte, seed.SeedLength)
	for i := range seedBytes {
		seedBytes[i] = byte(i + 1)
	}

	return seed.NewSeed(seedBytes)
}

func TestSenderIssuerInputsEd25519(t *testing.T) {
	walletSeed := testSeed()
	senderAddress := walletSeed.Address(44, CoinTypeIOTA, 0, 0, 2)

	connector := newFakeConnector()
	funding := connector.addOutput(testOutputID(1), stardust.NewBasicOutput(1000000, stardust.UnlockConditions{
		stardust.NewAddressUnlockCondition(senderAddress),
	}, nil))

	builder := NewTransactionBuilder(connector,
		WithSecretManager(NewSeedSecretManager(walletSeed)),
		WithOutputs(stardust.NewBasicOutput(1000000, stardust.UnlockConditions{
			stardust.NewAddressUnlockCondition(randEd25519Address()),
		}, stardust.Features{stardust.NewSenderFeature(senderAddress)})),
	)

	requiredInputs, err := builder.SenderIssuerInputs(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, requiredInputs, 1)
	require.Equal(t, funding.Metadata.OutputID, requiredInputs[0].OutputID)
	require.Equal(t, senderAddress.Bech32("atoi"), requiredInputs[0].Bech32Address)

	require.NotNil(t, requiredInputs[0].Chain)
	require.EqualValues(t, uint32(2), requiredInputs[0].Chain.AddressIndex)
	require.False(t, requiredInputs[0].Chain.Internal)
}

func TestSenderIssuerInputsMissingSecretManager(t *testing.T) {
	issuer := randEd25519Address()
	stateController := randEd25519Address()

	builder := NewTransactionBuilder(newFakeConnector(),
		WithOutputs(stardust.NewAliasOutput(1000000, stardust.AliasID{}, 0, stardust.UnlockConditions{
			stardust.NewStateControllerAddressUnlockCondition(stateController),
			stardust.NewGovernorAddressUnlockCondition(stateController),
		}, nil, stardust.Features{stardust.NewIssuerFeature(issuer)})),
	)

	_, err := builder.SenderIssuerInputs(context.Background(), nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrMissingSecretManager))
}

func TestSenderIssuerInputsMissingEd25519Input(t *testing.T) {
	walletSeed := testSeed()
	senderAddress := walletSeed.Address(44, CoinTypeIOTA, 0, 0, 0)

	// the address is derivable but owns no basic output
	builder := NewTransactionBuilder(newFakeConnector(),
		WithSecretManager(NewSeedSecretManager(walletSeed)),
		WithOutputs(stardust.NewBasicOutput(1000000, stardust.UnlockConditions{
			stardust.NewAddressUnlockCondition(randEd25519Address()),
		}, stardust.Features{stardust.NewSenderFeature(senderAddress)})),
	)

	_, err := builder.SenderIssuerInputs(context.Background(), nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrMissingEd25519Input))
}

func TestSenderIssuerInputsAddressNotFound(t *testing.T) {
	walletSeed := testSeed()
	foreignAddress := randEd25519Address()

	builder := NewTransactionBuilder(newFakeConnector(),
		WithSecretManager(NewSeedSecretManager(walletSeed)),
		WithInputRange(0, 10),
		WithOutputs(stardust.NewBasicOutput(1000000, stardust.UnlockConditions{
			stardust.NewAddressUnlockCondition(randEd25519Address()),
		}, stardust.Features{stardust.NewSenderFeature(foreignAddress)})),
	)

	_, err := builder.SenderIssuerInputs(context.Background(), nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrAddressNotFound))
}

func TestSenderIssuerInputsAliasAddress(t *testing.T) {
	walletSeed := testSeed()
	stateController := walletSeed.Address(44, CoinTypeIOTA, 0, 0, 1)
	aliasID := stardust.AliasID{11}

	connector := newFakeConnector()
	chainOutputID := testOutputID(4)
	connector.addOutput(chainOutputID, stardust.NewAliasOutput(1000000, aliasID, 3, stardust.UnlockConditions{
		stardust.NewStateControllerAddressUnlockCondition(stateController),
		stardust.NewGovernorAddressUnlockCondition(randEd25519Address()),
	}, nil, nil))

	builder := NewTransactionBuilder(connector,
		WithSecretManager(NewSeedSecretManager(walletSeed)),
		WithOutputs(stardust.NewBasicOutput(1000000, stardust.UnlockConditions{
			stardust.NewAddressUnlockCondition(randEd25519Address()),
		}, stardust.Features{stardust.NewSenderFeature(stardust.NewAliasAddress(aliasID))})),
	)

	requiredInputs, err := builder.SenderIssuerInputs(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, requiredInputs, 1)
	require.Equal(t, chainOutputID, requiredInputs[0].OutputID)
	require.Equal(t, stateController.Bech32("atoi"), requiredInputs[0].Bech32Address)

	require.NotNil(t, requiredInputs[0].Chain)
	require.EqualValues(t, uint32(1), requiredInputs[0].Chain.AddressIndex)
}

func TestSenderIssuerInputsAliasAlreadyKnown(t *testing.T) {
	stateController := randEd25519Address()
	governor := randEd25519Address()
	aliasID := stardust.AliasID{12}

	// the chain output is already part of the known inputs, nothing is fetched
	builder := NewTransactionBuilder(newFakeConnector(),
		WithOutputs(stardust.NewBasicOutput(1000000, stardust.UnlockConditions{
			stardust.NewAddressUnlockCondition(randEd25519Address()),
		}, stardust.Features{stardust.NewSenderFeature(stardust.NewAliasAddress(aliasID))})),
	)

	requiredInputs, err := builder.SenderIssuerInputs(context.Background(), []*InputSigningData{
		aliasInput(aliasID, 3, stateController, governor, 0),
	})
	require.NoError(t, err)
	require.Empty(t, requiredInputs)
}

func TestSenderIssuerInputsNFTAlreadyKnown(t *testing.T) {
	owner := randEd25519Address()
	nftID := stardust.NFTID{15}
	knownOutputID := testOutputID(12)

	// the chain output is already part of the known inputs, nothing is fetched
	builder := NewTransactionBuilder(newFakeConnector(),
		WithOutputs(stardust.NewBasicOutput(1000000, stardust.UnlockConditions{
			stardust.NewAddressUnlockCondition(randEd25519Address()),
		}, stardust.Features{stardust.NewSenderFeature(stardust.NewNFTAddress(nftID))})),
	)

	requiredInputs, err := builder.SenderIssuerInputs(context.Background(), []*InputSigningData{{
		Output: stardust.NewNFTOutput(1000000, nftID, stardust.UnlockConditions{
			stardust.NewAddressUnlockCondition(owner),
		}, nil, nil),
		OutputID:       knownOutputID,
		OutputMetadata: &OutputMetadata{OutputID: knownOutputID},
		Bech32Address:  owner.Bech32("atoi"),
	}})
	require.NoError(t, err)
	require.Empty(t, requiredInputs)
}

func TestSenderIssuerInputsAliasWithoutStateController(t *testing.T) {
	aliasID := stardust.AliasID{16}

	// a malformed node response without the mandatory unlock conditions must surface as an error
	connector := newFakeConnector()
	connector.addOutput(testOutputID(13), stardust.NewAliasOutput(1000000, aliasID, 3, nil, nil, nil))

	builder := NewTransactionBuilder(connector,
		WithOutputs(stardust.NewBasicOutput(1000000, stardust.UnlockConditions{
			stardust.NewAddressUnlockCondition(randEd25519Address()),
		}, stardust.Features{stardust.NewSenderFeature(stardust.NewAliasAddress(aliasID))})),
	)

	var requiredInputs []*InputSigningData
	var err error
	require.NotPanics(t, func() {
		requiredInputs, err = builder.SenderIssuerInputs(context.Background(), nil)
	})
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrMissingUnlockCondition))
	require.Empty(t, requiredInputs)
}

func TestSenderIssuerInputsNFTWithoutOwnerAddress(t *testing.T) {
	nftID := stardust.NFTID{17}

	connector := newFakeConnector()
	connector.addOutput(testOutputID(14), stardust.NewNFTOutput(1000000, nftID, nil, nil, nil))

	builder := NewTransactionBuilder(connector,
		WithOutputs(stardust.NewBasicOutput(1000000, stardust.UnlockConditions{
			stardust.NewAddressUnlockCondition(randEd25519Address()),
		}, stardust.Features{stardust.NewSenderFeature(stardust.NewNFTAddress(nftID))})),
	)

	var err error
	require.NotPanics(t, func() {
		_, err = builder.SenderIssuerInputs(context.Background(), nil)
	})
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrMissingUnlockCondition))
}

func TestSenderIssuerInputsOfflinePlaceholder(t *testing.T) {
	stateController := randEd25519Address()
	aliasID := stardust.AliasID{13}

	connector := newFakeConnector()
	connector.addOutput(testOutputID(5), stardust.NewAliasOutput(1000000, aliasID, 3, stardust.UnlockConditions{
		stardust.NewStateControllerAddressUnlockCondition(stateController),
		stardust.NewGovernorAddressUnlockCondition(stateController),
	}, nil, nil))

	// without a secret manager the derivation path falls back to the first external address
	builder := NewTransactionBuilder(connector,
		WithAccountIndex(3),
		WithOutputs(stardust.NewBasicOutput(1000000, stardust.UnlockConditions{
			stardust.NewAddressUnlockCondition(randEd25519Address()),
		}, stardust.Features{stardust.NewSenderFeature(stardust.NewAliasAddress(aliasID))})),
	)

	requiredInputs, err := builder.SenderIssuerInputs(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, requiredInputs, 1)

	require.NotNil(t, requiredInputs[0].Chain)
	require.EqualValues(t, uint32(0), requiredInputs[0].Chain.AddressIndex)
	require.EqualValues(t, uint32(3), requiredInputs[0].Chain.Account)
	require.False(t, requiredInputs[0].Chain.Internal)
}

func TestSenderIssuerInputsNFTAddress(t *testing.T) {
	owner := randEd25519Address()
	returnAddress := randEd25519Address()
	nftID := stardust.NFTID{14}

	connector := newFakeConnector()
	chainOutputID := testOutputID(6)
	connector.addOutput(chainOutputID, stardust.NewNFTOutput(1000000, nftID, stardust.UnlockConditions{
		stardust.NewAddressUnlockCondition(owner),
		stardust.NewExpirationUnlockCondition(returnAddress, connector.parameters.LatestMilestoneTimestamp+1000),
	}, nil, nil))

	builder := NewTransactionBuilder(connector,
		WithOutputs(stardust.NewBasicOutput(1000000, stardust.UnlockConditions{
			stardust.NewAddressUnlockCondition(randEd25519Address()),
		}, stardust.Features{stardust.NewSenderFeature(stardust.NewNFTAddress(nftID))})),
	)

	requiredInputs, err := builder.SenderIssuerInputs(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, requiredInputs, 1)
	require.Equal(t, chainOutputID, requiredInputs[0].OutputID)

	// the expiration is still in the future, the owner controls the output
	require.Equal(t, owner.Bech32("atoi"), requiredInputs[0].Bech32Address)
}

func TestSenderIssuerInputsChainDependencyFixpoint(t *testing.T) {
	walletSeed := testSeed()
	rootController := walletSeed.Address(44, CoinTypeIOTA, 0, 0, 0)
	governingAliasID := stardust.AliasID{21}
	governedAliasID := stardust.AliasID{22}

	connector := newFakeConnector()
	governedOutputID := testOutputID(7)
	governingOutputID := testOutputID(8)

	// the required alias is state controlled by another alias, which in turn is controlled by a seed address
	connector.addOutput(governedOutputID, stardust.NewAliasOutput(1000000, governedAliasID, 3, stardust.UnlockConditions{
		stardust.NewStateControllerAddressUnlockCondition(stardust.NewAliasAddress(governingAliasID)),
		stardust.NewGovernorAddressUnlockCondition(randEd25519Address()),
	}, nil, nil))
	connector.addOutput(governingOutputID, stardust.NewAliasOutput(1000000, governingAliasID, 1, stardust.UnlockConditions{
		stardust.NewStateControllerAddressUnlockCondition(rootController),
		stardust.NewGovernorAddressUnlockCondition(rootController),
	}, nil, nil))

	builder := NewTransactionBuilder(connector,
		WithSecretManager(NewSeedSecretManager(walletSeed)),
		WithOutputs(stardust.NewBasicOutput(1000000, stardust.UnlockConditions{
			stardust.NewAddressUnlockCondition(randEd25519Address()),
		}, stardust.Features{stardust.NewSenderFeature(stardust.NewAliasAddress(governedAliasID))})),
	)

	requiredInputs, err := builder.SenderIssuerInputs(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, requiredInputs, 2)
	require.Equal(t, governedOutputID, requiredInputs[0].OutputID)
	require.Equal(t, governingOutputID, requiredInputs[1].OutputID)

	// the governing chain output is unlocked by a key based address again
	require.NotNil(t, requiredInputs[1].Chain)
	require.Nil(t, requiredInputs[0].Chain)
}

func TestChainContinuationInputs(t *testing.T) {
	stateController := randEd25519Address()
	aliasID := stardust.AliasID{31}
	nftID := stardust.NFTID{32}

	connector := newFakeConnector()
	aliasOutputID := testOutputID(9)
	nftOutputID := testOutputID(10)
	connector.addOutput(aliasOutputID, stardust.NewAliasOutput(1000000, aliasID, 3, stardust.UnlockConditions{
		stardust.NewStateControllerAddressUnlockCondition(stateController),
		stardust.NewGovernorAddressUnlockCondition(stateController),
	}, nil, nil))
	connector.addOutput(nftOutputID, stardust.NewNFTOutput(1000000, nftID, stardust.UnlockConditions{
		stardust.NewAddressUnlockCondition(stateController),
	}, nil, nil))

	// continuing both chains requires their current outputs as inputs, a new chain creation requires nothing
	builder := NewTransactionBuilder(connector,
		WithOutputs(
			stardust.NewAliasOutput(1000000, aliasID, 4, stardust.UnlockConditions{
				stardust.NewStateControllerAddressUnlockCondition(stateController),
				stardust.NewGovernorAddressUnlockCondition(stateController),
			}, nil, nil),
			stardust.NewNFTOutput(1000000, nftID, stardust.UnlockConditions{
				stardust.NewAddressUnlockCondition(stateController),
			}, nil, nil),
			stardust.NewAliasOutput(1000000, stardust.AliasID{}, 0, stardust.UnlockConditions{
				stardust.NewStateControllerAddressUnlockCondition(stateController),
				stardust.NewGovernorAddressUnlockCondition(stateController),
			}, nil, nil),
		),
	)

	chainInputs, err := builder.ChainContinuationInputs(context.Background())
	require.NoError(t, err)
	require.Len(t, chainInputs, 2)

	selectedOutputIDs := make(map[stardust.OutputID]struct{})
	for _, chainInput := range chainInputs {
		selectedOutputIDs[chainInput.OutputID] = struct{}{}
	}
	require.Contains(t, selectedOutputIDs, aliasOutputID)
	require.Contains(t, selectedOutputIDs, nftOutputID)
}

func TestChainContinuationInputsFoundry(t *testing.T) {
	stateController := randEd25519Address()
	aliasID := stardust.AliasID{33}

	connector := newFakeConnector()
	aliasOutputID := testOutputID(11)
	connector.addOutput(aliasOutputID, stardust.NewAliasOutput(1000000, aliasID, 3, stardust.UnlockConditions{
		stardust.NewStateControllerAddressUnlockCondition(stateController),
		stardust.NewGovernorAddressUnlockCondition(stateController),
	}, nil, nil))

	// a foundry output requires the output of its controlling alias
	builder := NewTransactionBuilder(connector,
		WithOutputs(stardust.NewFoundryOutput(1000000, 1, stardust.UnlockConditions{
			stardust.NewImmutableAliasAddressUnlockCondition(stardust.NewAliasAddress(aliasID)),
		}, nil, nil)),
	)

	chainInputs, err := builder.ChainContinuationInputs(context.Background())
	require.NoError(t, err)
	require.Len(t, chainInputs, 1)
	require.Equal(t, aliasOutputID, chainInputs[0].OutputID)
}
