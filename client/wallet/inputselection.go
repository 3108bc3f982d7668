package wallet

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/types"

	"github.com/iotaledger/stardust-client-go/packages/stardust"
)

// region AliasStateTransition /////////////////////////////////////////////////////////////////////////////////////////

// AliasStateTransition determines which kind of alias transition the given input performs with the given transaction
// outputs. If the input is an alias output and the outputs contain its next chain state, the transition kind is
// derived from the state index: an advanced state index is a state transition, an unchanged one is a governance
// transition. If the alias does not occur in the outputs it gets burned, which leaves the transition kind undecided
// and known is false. Non-alias inputs never have a transition kind.
func AliasStateTransition(input *InputSigningData, outputs []stardust.Output) (isStateTransition bool, known bool) {
	aliasInput, isAlias := input.Output.(*stardust.AliasOutput)
	if !isAlias {
		return
	}

	aliasID := aliasInput.AliasIDNonNull(input.OutputID)
	for _, output := range outputs {
		aliasOutput, isAliasOutput := output.(*stardust.AliasOutput)
		if !isAliasOutput || aliasOutput.AliasID() != aliasID {
			continue
		}

		return aliasOutput.StateIndex() != aliasInput.StateIndex(), true
	}

	return
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region RequiredSenderIssuerAddresses ////////////////////////////////////////////////////////////////////////////////

// RequiredSenderIssuerAddresses collects the addresses of the sender and issuer features in the given transaction
// outputs that are not unlocked by the already selected inputs. Issuer addresses only need to be unlocked when the
// corresponding utxo chain is newly created. The returned addresses are deduplicated and keep the order in which the
// outputs declare them.
func RequiredSenderIssuerAddresses(selectedInputs []*InputSigningData, outputs []stardust.Output, currentTime uint32) (requiredAddresses []stardust.Address, err error) {
	// addresses in the inputs that will be unlocked in the transaction
	unlockedAddresses := make(map[string]types.Empty)
	for _, inputSigningData := range selectedInputs {
		aliasStateTransition, known := AliasStateTransition(inputSigningData, outputs)
		if !known {
			// an undecided transition unlocks the governor
			aliasStateTransition = false
		}

		requiredUnlockAddress, unlockedAliasOrNFTAddress, addressErr := inputSigningData.Output.RequiredAndUnlockedAddress(
			currentTime, inputSigningData.OutputID, aliasStateTransition)
		if addressErr != nil {
			err = errors.Errorf("failed to determine unlocked addresses of input %s: %w", inputSigningData.OutputID, addressErr)
			return
		}

		unlockedAddresses[requiredUnlockAddress.Key()] = types.Void
		if unlockedAliasOrNFTAddress != nil {
			unlockedAddresses[unlockedAliasOrNFTAddress.Key()] = types.Void
		}
	}

	seenAddresses := make(map[string]types.Empty)
	addRequiredAddress := func(address stardust.Address) {
		if _, seen := seenAddresses[address.Key()]; seen {
			return
		}
		seenAddresses[address.Key()] = types.Void

		if _, unlocked := unlockedAddresses[address.Key()]; unlocked {
			return
		}

		requiredAddresses = append(requiredAddresses, address)
	}

	for _, output := range outputs {
		if senderFeature := output.Features().Sender(); senderFeature != nil {
			addRequiredAddress(senderFeature.Address())
		}

		// issuer addresses only need to be unlocked when the utxo chain is newly created
		utxoChainCreation := false
		switch typedOutput := output.(type) {
		case *stardust.AliasOutput:
			utxoChainCreation = typedOutput.AliasID().IsNull()
		case *stardust.NFTOutput:
			utxoChainCreation = typedOutput.NFTID().IsNull()
		}
		if utxoChainCreation {
			if issuerFeature := output.ImmutableFeatures().Issuer(); issuerFeature != nil {
				addRequiredAddress(issuerFeature.Address())
			}
		}
	}

	return
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region SelectSenderIssuerInputs /////////////////////////////////////////////////////////////////////////////////////

// SelectSenderIssuerInputs extends the selected inputs with available inputs until every sender and issuer feature of
// the given transaction outputs is unlocked. Every required address is first checked against the already selected
// inputs and then against the available ones, taking the first input that unlocks it. The selectedOutputIDs set is
// updated in place and guards against selecting the same output twice. Inputs selected for earlier addresses stay
// selected even when a later address cannot be satisfied, in which case ErrMissingInput is returned.
func SelectSenderIssuerInputs(availableInputs []*InputSigningData, selectedInputs []*InputSigningData, selectedOutputIDs map[stardust.OutputID]types.Empty, outputs []stardust.Output, currentTime uint32) (updatedSelectedInputs []*InputSigningData, err error) {
	updatedSelectedInputs = selectedInputs

	requiredAddresses, err := RequiredSenderIssuerAddresses(selectedInputs, outputs, currentTime)
	if err != nil {
		return
	}

addressesLoop:
	for _, requiredAddress := range requiredAddresses {
		// first check already selected inputs
		for _, inputSigningData := range updatedSelectedInputs {
			unlocks, unlocksErr := unlocksAddress(inputSigningData, outputs, requiredAddress, currentTime)
			if unlocksErr != nil {
				err = unlocksErr
				return
			}

			if unlocks {
				continue addressesLoop
			}
		}

		// if not found, check the not yet selected inputs
		for _, inputSigningData := range availableInputs {
			if _, alreadySelected := selectedOutputIDs[inputSigningData.OutputID]; alreadySelected {
				continue
			}

			unlocks, unlocksErr := unlocksAddress(inputSigningData, outputs, requiredAddress, currentTime)
			if unlocksErr != nil {
				err = unlocksErr
				return
			}

			if unlocks {
				updatedSelectedInputs = append(updatedSelectedInputs, inputSigningData)
				selectedOutputIDs[inputSigningData.OutputID] = types.Void

				continue addressesLoop
			}
		}

		err = errors.Errorf("no input unlocks %s for a sender or issuer feature: %w", requiredAddress, ErrMissingInput)

		return
	}

	return
}

// unlocksAddress checks if consuming the given input unlocks the given address, either directly or through the
// implicit alias or NFT address of a chain output.
func unlocksAddress(inputSigningData *InputSigningData, outputs []stardust.Output, address stardust.Address, currentTime uint32) (unlocks bool, err error) {
	aliasStateTransition, known := AliasStateTransition(inputSigningData, outputs)
	if !known {
		// an undecided transition becomes a state transition once the input is selected here
		aliasStateTransition = true
	}

	requiredUnlockAddress, unlockedAliasOrNFTAddress, err := inputSigningData.Output.RequiredAndUnlockedAddress(
		currentTime, inputSigningData.OutputID, aliasStateTransition)
	if err != nil {
		err = errors.Errorf("failed to determine unlocked addresses of input %s: %w", inputSigningData.OutputID, err)
		return
	}

	if requiredUnlockAddress.Equals(address) {
		return true, nil
	}
	if unlockedAliasOrNFTAddress != nil && unlockedAliasOrNFTAddress.Equals(address) {
		return true, nil
	}

	return
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
