package wallet

import (
	"context"

	"github.com/iotaledger/stardust-client-go/packages/stardust"
)

// Parameters are the protocol parameters of the network that the connector talks to.
type Parameters struct {
	// Bech32HRP is the human-readable part that addresses of the network are encoded with.
	Bech32HRP string

	// TokenSupply is the total supply of the base token.
	TokenSupply uint64

	// LatestMilestoneIndex is the index of the latest confirmed milestone.
	LatestMilestoneIndex uint32

	// LatestMilestoneTimestamp is the unix timestamp of the latest confirmed milestone.
	LatestMilestoneTimestamp uint32
}

// Connector represents an interface that defines how the wallet interacts with the network. A wallet can either be
// backed by a local node or it can connect remotely using the web API.
type Connector interface {
	// Parameters returns the protocol parameters of the network.
	Parameters(ctx context.Context) (parameters *Parameters, err error)

	// GetOutput retrieves the output with the given OutputID together with its metadata.
	GetOutput(ctx context.Context, outputID stardust.OutputID) (output stardust.Output, metadata *OutputMetadata, err error)

	// AliasOutputID retrieves the identifier of the unspent output that currently represents the given alias chain.
	AliasOutputID(ctx context.Context, aliasID stardust.AliasID) (outputID stardust.OutputID, err error)

	// NFTOutputID retrieves the identifier of the unspent output that currently represents the given NFT chain.
	NFTOutputID(ctx context.Context, nftID stardust.NFTID) (outputID stardust.OutputID, err error)

	// BasicOutputs retrieves the unspent basic outputs that are owned by the given bech32 encoded address.
	BasicOutputs(ctx context.Context, bech32Address string) (outputs []*OutputWithMetadata, err error)
}

// OutputWithMetadata bundles an output with its metadata, the way connectors return lookups.
type OutputWithMetadata struct {
	Output   stardust.Output
	Metadata *OutputMetadata
}
