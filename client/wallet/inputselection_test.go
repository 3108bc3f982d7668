package wallet

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/iotaledger/hive.go/types"
	"github.com/stretchr/testify/require"

	"github.com/iotaledger/stardust-client-go/packages/stardust"
)

func randEd25519Address() *stardust.Ed25519Address {
	kp := ed25519.GenerateKeyPair()

	return stardust.NewEd25519Address(kp.PublicKey)
}

func testOutputID(index uint16) stardust.OutputID {
	var transactionID stardust.TransactionID
	transactionID[0] = byte(index)

	return stardust.NewOutputID(transactionID, index)
}

func basicInput(owner stardust.Address, index uint16) *InputSigningData {
	outputID := testOutputID(index)

	return &InputSigningData{
		Output:         stardust.NewBasicOutput(1000000, stardust.UnlockConditions{stardust.NewAddressUnlockCondition(owner)}, nil),
		OutputID:       outputID,
		OutputMetadata: &OutputMetadata{OutputID: outputID},
		Bech32Address:  owner.Bech32("atoi"),
	}
}

func aliasInput(aliasID stardust.AliasID, stateIndex uint32, stateController stardust.Address, governor stardust.Address, index uint16) *InputSigningData {
	outputID := testOutputID(index)

	return &InputSigningData{
		Output: stardust.NewAliasOutput(1000000, aliasID, stateIndex, stardust.UnlockConditions{
			stardust.NewStateControllerAddressUnlockCondition(stateController),
			stardust.NewGovernorAddressUnlockCondition(governor),
		}, nil, nil),
		OutputID:       outputID,
		OutputMetadata: &OutputMetadata{OutputID: outputID},
		Bech32Address:  stateController.Bech32("atoi"),
	}
}

// region AliasStateTransition /////////////////////////////////////////////////////////////////////////////////////////

func TestAliasStateTransition(t *testing.T) {
	stateController := randEd25519Address()
	governor := randEd25519Address()
	aliasID := stardust.AliasID{1}
	input := aliasInput(aliasID, 5, stateController, governor, 0)

	// an advanced state index is a state transition
	isStateTransition, known := AliasStateTransition(input, []stardust.Output{
		stardust.NewAliasOutput(1000000, aliasID, 6, stardust.UnlockConditions{
			stardust.NewStateControllerAddressUnlockCondition(stateController),
			stardust.NewGovernorAddressUnlockCondition(governor),
		}, nil, nil),
	})
	require.True(t, known)
	require.True(t, isStateTransition)

	// an unchanged state index is a governance transition
	isStateTransition, known = AliasStateTransition(input, []stardust.Output{
		stardust.NewAliasOutput(1000000, aliasID, 5, stardust.UnlockConditions{
			stardust.NewStateControllerAddressUnlockCondition(stateController),
			stardust.NewGovernorAddressUnlockCondition(governor),
		}, nil, nil),
	})
	require.True(t, known)
	require.False(t, isStateTransition)

	// a chain that does not appear in the outputs gets burned, the transition kind stays undecided
	_, known = AliasStateTransition(input, []stardust.Output{
		stardust.NewBasicOutput(1000000, stardust.UnlockConditions{stardust.NewAddressUnlockCondition(stateController)}, nil),
	})
	require.False(t, known)

	// non-alias inputs never have a transition kind
	_, known = AliasStateTransition(basicInput(stateController, 1), nil)
	require.False(t, known)
}

func TestAliasStateTransitionNullID(t *testing.T) {
	stateController := randEd25519Address()
	governor := randEd25519Address()
	input := aliasInput(stardust.AliasID{}, 0, stateController, governor, 3)

	// the chain id of a creation input is derived from its output id before the outputs are searched
	derivedID := stardust.AliasIDFromOutputID(input.OutputID)
	isStateTransition, known := AliasStateTransition(input, []stardust.Output{
		stardust.NewAliasOutput(1000000, derivedID, 1, stardust.UnlockConditions{
			stardust.NewStateControllerAddressUnlockCondition(stateController),
			stardust.NewGovernorAddressUnlockCondition(governor),
		}, nil, nil),
	})
	require.True(t, known)
	require.True(t, isStateTransition)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region RequiredSenderIssuerAddresses ////////////////////////////////////////////////////////////////////////////////

func TestRequiredAddressesSender(t *testing.T) {
	sender := randEd25519Address()
	owner := randEd25519Address()
	outputs := []stardust.Output{
		stardust.NewBasicOutput(1000000, stardust.UnlockConditions{stardust.NewAddressUnlockCondition(owner)}, stardust.Features{
			stardust.NewSenderFeature(sender),
		}),
	}

	requiredAddresses, err := RequiredSenderIssuerAddresses(nil, outputs, 0)
	require.NoError(t, err)
	require.Len(t, requiredAddresses, 1)
	require.True(t, requiredAddresses[0].Equals(sender))
}

func TestRequiredAddressesIssuerGating(t *testing.T) {
	issuer := randEd25519Address()
	stateController := randEd25519Address()
	unlockConditions := stardust.UnlockConditions{
		stardust.NewStateControllerAddressUnlockCondition(stateController),
		stardust.NewGovernorAddressUnlockCondition(stateController),
	}

	// a new chain creation requires its issuer to be unlocked
	creation := []stardust.Output{
		stardust.NewAliasOutput(1000000, stardust.AliasID{}, 0, unlockConditions, nil, stardust.Features{
			stardust.NewIssuerFeature(issuer),
		}),
	}
	requiredAddresses, err := RequiredSenderIssuerAddresses(nil, creation, 0)
	require.NoError(t, err)
	require.Len(t, requiredAddresses, 1)
	require.True(t, requiredAddresses[0].Equals(issuer))

	// a continuation of an existing chain never re-requires the issuer
	continuation := []stardust.Output{
		stardust.NewAliasOutput(1000000, stardust.AliasID{8}, 1, unlockConditions, nil, stardust.Features{
			stardust.NewIssuerFeature(issuer),
		}),
	}
	requiredAddresses, err = RequiredSenderIssuerAddresses(nil, continuation, 0)
	require.NoError(t, err)
	require.Empty(t, requiredAddresses)
}

func TestRequiredAddressesExcludesUnlocked(t *testing.T) {
	sender := randEd25519Address()
	outputs := []stardust.Output{
		stardust.NewBasicOutput(1000000, stardust.UnlockConditions{stardust.NewAddressUnlockCondition(sender)}, stardust.Features{
			stardust.NewSenderFeature(sender),
		}),
	}

	// an input that is already unlocked by the selection removes the requirement
	requiredAddresses, err := RequiredSenderIssuerAddresses([]*InputSigningData{basicInput(sender, 0)}, outputs, 0)
	require.NoError(t, err)
	require.Empty(t, requiredAddresses)
}

func TestRequiredAddressesSecondaryUnlocked(t *testing.T) {
	stateController := randEd25519Address()
	governor := randEd25519Address()
	owner := randEd25519Address()
	aliasID := stardust.AliasID{4}
	aliasAddress := stardust.NewAliasAddress(aliasID)

	// consuming the alias output also authorizes the alias address itself
	outputs := []stardust.Output{
		stardust.NewBasicOutput(1000000, stardust.UnlockConditions{stardust.NewAddressUnlockCondition(owner)}, stardust.Features{
			stardust.NewSenderFeature(aliasAddress),
		}),
	}
	requiredAddresses, err := RequiredSenderIssuerAddresses([]*InputSigningData{
		aliasInput(aliasID, 5, stateController, governor, 0),
	}, outputs, 0)
	require.NoError(t, err)
	require.Empty(t, requiredAddresses)
}

func TestRequiredAddressesDeduplicated(t *testing.T) {
	sender := randEd25519Address()
	owner := randEd25519Address()
	output := stardust.NewBasicOutput(1000000, stardust.UnlockConditions{stardust.NewAddressUnlockCondition(owner)}, stardust.Features{
		stardust.NewSenderFeature(sender),
	})

	requiredAddresses, err := RequiredSenderIssuerAddresses(nil, []stardust.Output{output, output.Clone()}, 0)
	require.NoError(t, err)
	require.Len(t, requiredAddresses, 1)
}

func TestRequiredAddressesIdempotent(t *testing.T) {
	sender := randEd25519Address()
	owner := randEd25519Address()
	selectedInputs := []*InputSigningData{basicInput(randEd25519Address(), 0)}
	outputs := []stardust.Output{
		stardust.NewBasicOutput(1000000, stardust.UnlockConditions{stardust.NewAddressUnlockCondition(owner)}, stardust.Features{
			stardust.NewSenderFeature(sender),
		}),
	}

	first, err := RequiredSenderIssuerAddresses(selectedInputs, outputs, 42)
	require.NoError(t, err)
	second, err := RequiredSenderIssuerAddresses(selectedInputs, outputs, 42)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestRequiredAddressesBurnedAliasDefaultsToGovernance(t *testing.T) {
	stateController := randEd25519Address()
	governor := randEd25519Address()
	owner := randEd25519Address()

	// the alias chain does not appear in the outputs, consuming it defaults to a governance transition, so only
	// the governor counts as unlocked
	selectedInputs := []*InputSigningData{aliasInput(stardust.AliasID{6}, 5, stateController, governor, 0)}

	governorSender := []stardust.Output{
		stardust.NewBasicOutput(1000000, stardust.UnlockConditions{stardust.NewAddressUnlockCondition(owner)}, stardust.Features{
			stardust.NewSenderFeature(governor),
		}),
	}
	requiredAddresses, err := RequiredSenderIssuerAddresses(selectedInputs, governorSender, 0)
	require.NoError(t, err)
	require.Empty(t, requiredAddresses)

	stateControllerSender := []stardust.Output{
		stardust.NewBasicOutput(1000000, stardust.UnlockConditions{stardust.NewAddressUnlockCondition(owner)}, stardust.Features{
			stardust.NewSenderFeature(stateController),
		}),
	}
	requiredAddresses, err = RequiredSenderIssuerAddresses(selectedInputs, stateControllerSender, 0)
	require.NoError(t, err)
	require.Len(t, requiredAddresses, 1)
	require.True(t, requiredAddresses[0].Equals(stateController))
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region SelectSenderIssuerInputs /////////////////////////////////////////////////////////////////////////////////////

func TestSelectSenderIssuerInputs(t *testing.T) {
	sender := randEd25519Address()
	owner := randEd25519Address()
	candidate := basicInput(sender, 0)
	outputs := []stardust.Output{
		stardust.NewBasicOutput(1000000, stardust.UnlockConditions{stardust.NewAddressUnlockCondition(owner)}, stardust.Features{
			stardust.NewSenderFeature(sender),
		}),
	}

	selectedOutputIDs := make(map[stardust.OutputID]types.Empty)
	selectedInputs, err := SelectSenderIssuerInputs([]*InputSigningData{candidate}, nil, selectedOutputIDs, outputs, 0)
	require.NoError(t, err)
	require.Len(t, selectedInputs, 1)
	require.Equal(t, candidate.OutputID, selectedInputs[0].OutputID)
	require.Contains(t, selectedOutputIDs, candidate.OutputID)
}

func TestSelectSenderIssuerInputsAlreadySelected(t *testing.T) {
	stateController := randEd25519Address()
	governor := randEd25519Address()
	owner := randEd25519Address()
	selected := aliasInput(stardust.AliasID{5}, 5, stateController, governor, 0)
	outputs := []stardust.Output{
		stardust.NewBasicOutput(1000000, stardust.UnlockConditions{stardust.NewAddressUnlockCondition(owner)}, stardust.Features{
			stardust.NewSenderFeature(stateController),
		}),
	}

	// the state controller is required because the burned alias in the selection only counts as unlocking the
	// governor, but the scan over the selected inputs assumes a state transition and satisfies it without adding
	// anything new
	selectedOutputIDs := map[stardust.OutputID]types.Empty{selected.OutputID: types.Void}
	selectedInputs, err := SelectSenderIssuerInputs(nil, []*InputSigningData{selected}, selectedOutputIDs, outputs, 0)
	require.NoError(t, err)
	require.Len(t, selectedInputs, 1)
	require.Equal(t, selected.OutputID, selectedInputs[0].OutputID)
}

func TestSelectSenderIssuerInputsDedup(t *testing.T) {
	sender := randEd25519Address()
	owner := randEd25519Address()
	candidate := basicInput(sender, 0)
	outputs := []stardust.Output{
		stardust.NewBasicOutput(1000000, stardust.UnlockConditions{stardust.NewAddressUnlockCondition(owner)}, stardust.Features{
			stardust.NewSenderFeature(sender),
		}),
	}

	// the same output id occurring twice in the pool is selected at most once
	selectedOutputIDs := make(map[stardust.OutputID]types.Empty)
	selectedInputs, err := SelectSenderIssuerInputs([]*InputSigningData{candidate, candidate}, nil, selectedOutputIDs, outputs, 0)
	require.NoError(t, err)
	require.Len(t, selectedInputs, 1)
}

func TestSelectSenderIssuerInputsMissing(t *testing.T) {
	sender := randEd25519Address()
	owner := randEd25519Address()
	outputs := []stardust.Output{
		stardust.NewBasicOutput(1000000, stardust.UnlockConditions{stardust.NewAddressUnlockCondition(owner)}, stardust.Features{
			stardust.NewSenderFeature(sender),
		}),
	}

	_, err := SelectSenderIssuerInputs(nil, nil, make(map[stardust.OutputID]types.Empty), outputs, 0)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrMissingInput))
}

func TestSelectSenderIssuerInputsNotAtomic(t *testing.T) {
	satisfiable := randEd25519Address()
	unsatisfiable := randEd25519Address()
	owner := randEd25519Address()
	candidate := basicInput(satisfiable, 0)
	outputs := []stardust.Output{
		stardust.NewBasicOutput(1000000, stardust.UnlockConditions{stardust.NewAddressUnlockCondition(owner)}, stardust.Features{
			stardust.NewSenderFeature(satisfiable),
		}),
		stardust.NewBasicOutput(1000000, stardust.UnlockConditions{stardust.NewAddressUnlockCondition(owner)}, stardust.Features{
			stardust.NewSenderFeature(unsatisfiable),
		}),
	}

	// inputs matched before the failing address stay selected
	selectedOutputIDs := make(map[stardust.OutputID]types.Empty)
	selectedInputs, err := SelectSenderIssuerInputs([]*InputSigningData{candidate}, nil, selectedOutputIDs, outputs, 0)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrMissingInput))
	require.Len(t, selectedInputs, 1)
	require.Contains(t, selectedOutputIDs, candidate.OutputID)
}

func TestSelectSenderIssuerInputsSecondaryAddress(t *testing.T) {
	stateController := randEd25519Address()
	governor := randEd25519Address()
	owner := randEd25519Address()
	aliasID := stardust.AliasID{2}
	candidate := aliasInput(aliasID, 5, stateController, governor, 0)

	// the alias address requirement is satisfied by the implicit address of the candidate alias output
	outputs := []stardust.Output{
		stardust.NewBasicOutput(1000000, stardust.UnlockConditions{stardust.NewAddressUnlockCondition(owner)}, stardust.Features{
			stardust.NewSenderFeature(stardust.NewAliasAddress(aliasID)),
		}),
	}
	selectedInputs, err := SelectSenderIssuerInputs([]*InputSigningData{candidate}, nil, make(map[stardust.OutputID]types.Empty), outputs, 0)
	require.NoError(t, err)
	require.Len(t, selectedInputs, 1)
}

func TestSelectSenderIssuerInputsBurnedAliasDefaultsToStateTransition(t *testing.T) {
	stateController := randEd25519Address()
	governor := randEd25519Address()
	owner := randEd25519Address()
	candidate := aliasInput(stardust.AliasID{3}, 5, stateController, governor, 0)

	// a candidate alias whose chain does not continue in the outputs is assumed to perform a state transition once
	// selected, so it satisfies the state controller address
	outputs := []stardust.Output{
		stardust.NewBasicOutput(1000000, stardust.UnlockConditions{stardust.NewAddressUnlockCondition(owner)}, stardust.Features{
			stardust.NewSenderFeature(stateController),
		}),
	}
	selectedInputs, err := SelectSenderIssuerInputs([]*InputSigningData{candidate}, nil, make(map[stardust.OutputID]types.Empty), outputs, 0)
	require.NoError(t, err)
	require.Len(t, selectedInputs, 1)
	require.Equal(t, candidate.OutputID, selectedInputs[0].OutputID)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
