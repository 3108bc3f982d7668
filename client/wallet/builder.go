package wallet

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/types"

	"github.com/iotaledger/stardust-client-go/packages/stardust"
)

// region TransactionBuilder ///////////////////////////////////////////////////////////////////////////////////////////

const (
	// CoinTypeIOTA is the BIP-44 coin type of the IOTA network.
	CoinTypeIOTA = 4218

	// CoinTypeShimmer is the BIP-44 coin type of the Shimmer network.
	CoinTypeShimmer = 4219

	// defaultInputRangeEnd is the upper bound of the derivation index range that is searched when no explicit range is
	// configured.
	defaultInputRangeEnd = 100
)

// TransactionBuilder resolves the inputs of a transaction that is being assembled. It knows the outputs that the
// transaction is going to create and uses a Connector and an optional SecretManager to find the inputs that unlock
// every address the outputs require.
type TransactionBuilder struct {
	connector       Connector
	secretManager   SecretManager
	coinType        uint32
	accountIndex    uint32
	inputRangeStart uint32
	inputRangeEnd   uint32
	outputs         []stardust.Output
}

// NewTransactionBuilder is the constructor for the TransactionBuilder.
func NewTransactionBuilder(connector Connector, setters ...BuilderOption) *TransactionBuilder {
	builder := &TransactionBuilder{
		connector:     connector,
		coinType:      CoinTypeIOTA,
		inputRangeEnd: defaultInputRangeEnd,
	}

	for _, setter := range setters {
		setter(builder)
	}

	return builder
}

// AddOutput adds an output to the transaction that is being assembled.
func (b *TransactionBuilder) AddOutput(output stardust.Output) *TransactionBuilder {
	b.outputs = append(b.outputs, output)

	return b
}

// Outputs returns the outputs of the transaction that is being assembled.
func (b *TransactionBuilder) Outputs() []stardust.Output {
	return b.outputs
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region BuilderOption ////////////////////////////////////////////////////////////////////////////////////////////////

// BuilderOption is a function that configures an optional parameter of the TransactionBuilder.
type BuilderOption func(*TransactionBuilder)

// WithSecretManager configures the SecretManager that derives the addresses of the wallet. Without one, the builder
// resolves inputs for offline signing and leaves the derivation paths of key-based addresses at their placeholder.
func WithSecretManager(secretManager SecretManager) BuilderOption {
	return func(builder *TransactionBuilder) {
		builder.secretManager = secretManager
	}
}

// WithCoinType configures the BIP-44 coin type of the addresses.
func WithCoinType(coinType uint32) BuilderOption {
	return func(builder *TransactionBuilder) {
		builder.coinType = coinType
	}
}

// WithAccountIndex configures the BIP-44 account index of the addresses.
func WithAccountIndex(accountIndex uint32) BuilderOption {
	return func(builder *TransactionBuilder) {
		builder.accountIndex = accountIndex
	}
}

// WithInputRange configures the derivation index range that address searches are bounded by.
func WithInputRange(start uint32, end uint32) BuilderOption {
	return func(builder *TransactionBuilder) {
		builder.inputRangeStart = start
		builder.inputRangeEnd = end
	}
}

// WithOutputs configures the outputs of the transaction that is being assembled.
func WithOutputs(outputs ...stardust.Output) BuilderOption {
	return func(builder *TransactionBuilder) {
		builder.outputs = outputs
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region SenderIssuerInputs ///////////////////////////////////////////////////////////////////////////////////////////

// SenderIssuerInputs resolves the inputs that are required to unlock the sender and issuer features of the builder's
// outputs against the ledger. Ed25519 addresses are located in the secret manager and satisfied with a basic output
// owned by them, alias and NFT addresses are satisfied by fetching the current output of their chain. The chain
// dependencies of everything that was fetched are resolved as well, so that the returned inputs are self-contained.
// The given utxoChainInputs are inputs the caller already committed to, they are consulted to avoid fetching a chain
// twice but are not part of the returned list.
func (b *TransactionBuilder) SenderIssuerInputs(ctx context.Context, utxoChainInputs []*InputSigningData) (requiredInputs []*InputSigningData, err error) {
	parameters, err := b.connector.Parameters(ctx)
	if err != nil {
		return
	}
	currentTime := parameters.LatestMilestoneTimestamp

	requiredAddresses, err := RequiredSenderIssuerAddresses(nil, b.outputs, currentTime)
	if err != nil {
		return
	}

	for _, requiredAddress := range requiredAddresses {
		switch typedAddress := requiredAddress.(type) {
		case *stardust.Ed25519Address:
			var input *InputSigningData
			if input, err = b.ed25519AddressInput(ctx, typedAddress, parameters, currentTime); err != nil {
				return
			}

			requiredInputs = append(requiredInputs, input)
		case *stardust.AliasAddress:
			if containsAliasInput(typedAddress.AliasID(), utxoChainInputs, requiredInputs) {
				continue
			}

			var input *InputSigningData
			if input, err = b.aliasChainInput(ctx, typedAddress.AliasID(), parameters); err != nil {
				return
			}

			requiredInputs = append(requiredInputs, input)
		case *stardust.NFTAddress:
			if containsNFTInput(typedAddress.NFTID(), utxoChainInputs, requiredInputs) {
				continue
			}

			var input *InputSigningData
			if input, err = b.nftChainInput(ctx, typedAddress.NFTID(), parameters, currentTime); err != nil {
				return
			}

			requiredInputs = append(requiredInputs, input)
		}
	}

	// the fetched chain outputs can themselves be governed by other chains, resolve those as well
	knownInputs := make([]*InputSigningData, 0, len(utxoChainInputs)+len(requiredInputs))
	knownInputs = append(knownInputs, utxoChainInputs...)
	knownInputs = append(knownInputs, requiredInputs...)
	chainInputs, err := b.chainDependencyInputs(ctx, chainAddressesOfInputs(requiredInputs, currentTime), knownInputs, parameters, currentTime)
	if err != nil {
		return
	}
	requiredInputs = append(requiredInputs, chainInputs...)

	return
}

// ed25519AddressInput locates the given address in the secret manager and satisfies it with a basic output that the
// address currently unlocks.
func (b *TransactionBuilder) ed25519AddressInput(ctx context.Context, address *stardust.Ed25519Address, parameters *Parameters, currentTime uint32) (input *InputSigningData, err error) {
	if b.secretManager == nil {
		err = errors.Errorf("cannot search for address %s: %w", address, ErrMissingSecretManager)
		return
	}

	addressIndex, internal, err := SearchAddress(ctx, b.secretManager, b.coinType, b.accountIndex, b.inputRangeStart, b.inputRangeEnd, address)
	if err != nil {
		return
	}

	addressOutputs, err := b.connector.BasicOutputs(ctx, address.Bech32(parameters.Bech32HRP))
	if err != nil {
		return
	}

	for _, addressOutput := range addressOutputs {
		// the secondary unlocked address can be ignored, basic outputs never have one
		requiredUnlockAddress, _, addressErr := addressOutput.Output.RequiredAndUnlockedAddress(currentTime, addressOutput.Metadata.OutputID, false)
		if addressErr != nil {
			err = addressErr
			return
		}

		if requiredUnlockAddress.Equals(address) {
			input = &InputSigningData{
				Output:         addressOutput.Output,
				OutputID:       addressOutput.Metadata.OutputID,
				OutputMetadata: addressOutput.Metadata,
				Chain: &BIP32Path{
					CoinType:     b.coinType,
					Account:      b.accountIndex,
					Internal:     internal,
					AddressIndex: addressIndex,
				},
				Bech32Address: address.Bech32(parameters.Bech32HRP),
			}

			return
		}
	}

	err = errors.Errorf("no basic output unlockable by %s: %w", address, ErrMissingEd25519Input)

	return
}

// aliasChainInput fetches the output that currently represents the given alias chain and prepares it as an input that
// performs a state transition.
func (b *TransactionBuilder) aliasChainInput(ctx context.Context, aliasID stardust.AliasID, parameters *Parameters) (input *InputSigningData, err error) {
	outputID, err := b.connector.AliasOutputID(ctx, aliasID)
	if err != nil {
		return
	}

	output, metadata, err := b.connector.GetOutput(ctx, outputID)
	if err != nil {
		return
	}

	aliasOutput, isAlias := output.(*stardust.AliasOutput)
	if !isAlias {
		err = errors.Errorf("output %s of alias %s is not an alias output: %w", outputID, aliasID, ErrUnexpectedOutputType)
		return
	}

	// it becomes a state transition when it is added to the inputs
	unlockAddress := aliasOutput.StateControllerAddress()
	if unlockAddress == nil {
		err = errors.Errorf("output %s of alias %s has no state controller: %w", outputID, aliasID, ErrMissingUnlockCondition)
		return
	}

	chain, err := b.chainForUnlockAddress(ctx, unlockAddress)
	if err != nil {
		return
	}

	input = &InputSigningData{
		Output:         output,
		OutputID:       outputID,
		OutputMetadata: metadata,
		Chain:          chain,
		Bech32Address:  unlockAddress.Bech32(parameters.Bech32HRP),
	}

	return
}

// nftChainInput fetches the output that currently represents the given NFT chain and prepares it as an input.
func (b *TransactionBuilder) nftChainInput(ctx context.Context, nftID stardust.NFTID, parameters *Parameters, currentTime uint32) (input *InputSigningData, err error) {
	outputID, err := b.connector.NFTOutputID(ctx, nftID)
	if err != nil {
		return
	}

	output, metadata, err := b.connector.GetOutput(ctx, outputID)
	if err != nil {
		return
	}

	nftOutput, isNFT := output.(*stardust.NFTOutput)
	if !isNFT {
		err = errors.Errorf("output %s of nft %s is not an nft output: %w", outputID, nftID, ErrUnexpectedOutputType)
		return
	}

	unlockAddress := nftOutput.LockedAddress(currentTime)
	if unlockAddress == nil {
		err = errors.Errorf("output %s of nft %s has no owner address: %w", outputID, nftID, ErrMissingUnlockCondition)
		return
	}

	chain, err := b.chainForUnlockAddress(ctx, unlockAddress)
	if err != nil {
		return
	}

	input = &InputSigningData{
		Output:         output,
		OutputID:       outputID,
		OutputMetadata: metadata,
		Chain:          chain,
		Bech32Address:  unlockAddress.Bech32(parameters.Bech32HRP),
	}

	return
}

// chainForUnlockAddress determines the derivation path of the address that unlocks a fetched chain output. Alias and
// NFT addresses cannot be generated from a private key so they carry no path. Without a secret manager the inputs are
// resolved for offline signing and the path defaults to the first external address.
func (b *TransactionBuilder) chainForUnlockAddress(ctx context.Context, unlockAddress stardust.Address) (chain *BIP32Path, err error) {
	if b.secretManager == nil {
		return &BIP32Path{
			CoinType:     b.coinType,
			Account:      b.accountIndex,
			Internal:     false,
			AddressIndex: 0,
		}, nil
	}

	if unlockAddress.Type() != stardust.Ed25519AddressType {
		return nil, nil
	}

	addressIndex, internal, err := SearchAddress(ctx, b.secretManager, b.coinType, b.accountIndex, b.inputRangeStart, b.inputRangeEnd, unlockAddress)
	if err != nil {
		return
	}

	return &BIP32Path{
		CoinType:     b.coinType,
		Account:      b.accountIndex,
		Internal:     internal,
		AddressIndex: addressIndex,
	}, nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region ChainContinuationInputs //////////////////////////////////////////////////////////////////////////////////////

// ChainContinuationInputs resolves the inputs that the builder's outputs implicitly require because they continue an
// existing utxo chain: alias and NFT outputs with a non-null chain identifier need the current output of their chain
// as an input, foundry outputs need the output of their controlling alias. Chains that are governed by other chains
// are followed until the returned set is self-contained.
func (b *TransactionBuilder) ChainContinuationInputs(ctx context.Context) (chainInputs []*InputSigningData, err error) {
	parameters, err := b.connector.Parameters(ctx)
	if err != nil {
		return
	}
	currentTime := parameters.LatestMilestoneTimestamp

	worklist := make([]stardust.Address, 0)
	for _, output := range b.outputs {
		switch typedOutput := output.(type) {
		case *stardust.AliasOutput:
			if !typedOutput.AliasID().IsNull() {
				worklist = append(worklist, stardust.NewAliasAddress(typedOutput.AliasID()))
			}
		case *stardust.NFTOutput:
			if !typedOutput.NFTID().IsNull() {
				worklist = append(worklist, stardust.NewNFTAddress(typedOutput.NFTID()))
			}
		case *stardust.FoundryOutput:
			worklist = append(worklist, typedOutput.AliasAddress())
		}
	}

	return b.chainDependencyInputs(ctx, worklist, nil, parameters, currentTime)
}

// chainDependencyInputs fetches the chain outputs of the given chain addresses and expands the worklist with the
// governing addresses of everything fetched, until no new chain dependency appears. The worklist never revisits a
// chain and chain ownership is acyclic, so the loop terminates.
func (b *TransactionBuilder) chainDependencyInputs(ctx context.Context, worklist []stardust.Address, knownInputs []*InputSigningData, parameters *Parameters, currentTime uint32) (chainInputs []*InputSigningData, err error) {
	processedChains := make(map[string]types.Empty)
	for _, knownInput := range knownInputs {
		switch typedOutput := knownInput.Output.(type) {
		case *stardust.AliasOutput:
			processedChains[stardust.NewAliasAddress(typedOutput.AliasIDNonNull(knownInput.OutputID)).Key()] = types.Void
		case *stardust.NFTOutput:
			processedChains[stardust.NewNFTAddress(typedOutput.NFTIDNonNull(knownInput.OutputID)).Key()] = types.Void
		}
	}

	for len(worklist) > 0 {
		chainAddress := worklist[0]
		worklist = worklist[1:]

		if _, processed := processedChains[chainAddress.Key()]; processed {
			continue
		}
		processedChains[chainAddress.Key()] = types.Void

		var input *InputSigningData
		switch typedAddress := chainAddress.(type) {
		case *stardust.AliasAddress:
			if input, err = b.aliasChainInput(ctx, typedAddress.AliasID(), parameters); err != nil {
				return
			}
		case *stardust.NFTAddress:
			if input, err = b.nftChainInput(ctx, typedAddress.NFTID(), parameters, currentTime); err != nil {
				return
			}
		default:
			continue
		}

		chainInputs = append(chainInputs, input)

		worklist = append(worklist, chainAddressesOfInputs([]*InputSigningData{input}, currentTime)...)
	}

	return
}

// chainAddressesOfInputs returns the alias and NFT addresses that unlock the given chain inputs. They are the chain
// dependencies that still need an input of their own.
func chainAddressesOfInputs(inputs []*InputSigningData, currentTime uint32) (chainAddresses []stardust.Address) {
	for _, input := range inputs {
		var unlockAddress stardust.Address
		switch typedOutput := input.Output.(type) {
		case *stardust.AliasOutput:
			unlockAddress = typedOutput.StateControllerAddress()
		case *stardust.NFTOutput:
			unlockAddress = typedOutput.LockedAddress(currentTime)
		default:
			continue
		}

		if unlockAddress.Type() != stardust.Ed25519AddressType {
			chainAddresses = append(chainAddresses, unlockAddress)
		}
	}

	return
}

// containsAliasInput checks if any of the given input lists already contains the alias output of the given chain.
func containsAliasInput(aliasID stardust.AliasID, inputLists ...[]*InputSigningData) bool {
	for _, inputs := range inputLists {
		for _, input := range inputs {
			if aliasOutput, isAlias := input.Output.(*stardust.AliasOutput); isAlias && aliasOutput.AliasID() == aliasID {
				return true
			}
		}
	}

	return false
}

// containsNFTInput checks if any of the given input lists already contains the NFT output of the given chain.
func containsNFTInput(nftID stardust.NFTID, inputLists ...[]*InputSigningData) bool {
	for _, inputs := range inputLists {
		for _, input := range inputs {
			if nftOutput, isNFT := input.Output.(*stardust.NFTOutput); isNFT && nftOutput.NFTID() == nftID {
				return true
			}
		}
	}

	return false
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
