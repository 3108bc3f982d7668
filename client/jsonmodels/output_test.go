package jsonmodels

import (
	"testing"

	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/stretchr/testify/require"

	"github.com/iotaledger/stardust-client-go/packages/stardust"
)

const testTokenSupply = 2779530283277761

func TestOutputDecoding(t *testing.T) {
	kp := ed25519.GenerateKeyPair()
	stateController := stardust.NewEd25519Address(kp.PublicKey)
	governor := stardust.NewAliasAddress(stardust.AliasID{1})

	jsonOutput := NewOutput(stardust.NewAliasOutput(1000000, stardust.AliasID{5}, 7, stardust.UnlockConditions{
		stardust.NewStateControllerAddressUnlockCondition(stateController),
		stardust.NewGovernorAddressUnlockCondition(governor),
	}, nil, stardust.Features{
		stardust.NewIssuerFeature(stateController),
	}))

	output, err := jsonOutput.ToStardustOutput(testTokenSupply)
	require.NoError(t, err)

	aliasOutput, ok := output.(*stardust.AliasOutput)
	require.True(t, ok)
	require.Equal(t, stardust.AliasID{5}, aliasOutput.AliasID())
	require.EqualValues(t, 7, aliasOutput.StateIndex())
	require.True(t, aliasOutput.StateControllerAddress().Equals(stateController))
	require.True(t, aliasOutput.GovernorAddress().Equals(governor))
	require.True(t, aliasOutput.ImmutableFeatures().Issuer().Address().Equals(stateController))
}

func TestOutputDecodingExpiration(t *testing.T) {
	kp := ed25519.GenerateKeyPair()
	owner := stardust.NewEd25519Address(kp.PublicKey)
	returnAddress := stardust.NewEd25519Address(ed25519.GenerateKeyPair().PublicKey)

	jsonOutput := NewOutput(stardust.NewBasicOutput(1000000, stardust.UnlockConditions{
		stardust.NewAddressUnlockCondition(owner),
		stardust.NewExpirationUnlockCondition(returnAddress, 12345),
	}, stardust.Features{
		stardust.NewSenderFeature(owner),
	}))

	output, err := jsonOutput.ToStardustOutput(testTokenSupply)
	require.NoError(t, err)

	expiration := output.UnlockConditions().Expiration()
	require.NotNil(t, expiration)
	require.EqualValues(t, 12345, expiration.UnixTime())
	require.True(t, expiration.ReturnAddress().Equals(returnAddress))
	require.True(t, output.Features().Sender().Address().Equals(owner))
}

func TestOutputDecodingAmountValidation(t *testing.T) {
	kp := ed25519.GenerateKeyPair()
	owner := stardust.NewEd25519Address(kp.PublicKey)

	jsonOutput := NewOutput(stardust.NewBasicOutput(1000000, stardust.UnlockConditions{
		stardust.NewAddressUnlockCondition(owner),
	}, nil))
	jsonOutput.Amount = testTokenSupply + 1

	_, err := jsonOutput.ToStardustOutput(testTokenSupply)
	require.Error(t, err)
}

func TestOutputMetadataOutputID(t *testing.T) {
	var transactionID stardust.TransactionID
	transactionID[0] = 9
	outputID := stardust.NewOutputID(transactionID, 2)

	metadata := OutputMetadata{
		TransactionID: transactionID.Base58(),
		OutputIndex:   2,
	}
	outputIDBack, err := metadata.OutputID()
	require.NoError(t, err)
	require.Equal(t, outputID, outputIDBack)
}
