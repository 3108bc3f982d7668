package wallet

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/iotaledger/stardust-client-go/client"
	"github.com/iotaledger/stardust-client-go/client/jsonmodels"
	"github.com/iotaledger/stardust-client-go/packages/stardust"
)

// WebConnector implements a connector that uses the web API of a node to implement the required functions for the
// wallet.
type WebConnector struct {
	client *client.StardustAPI

	cachedParameters      *Parameters
	cachedParametersMutex sync.Mutex
}

// NewWebConnector is the constructor for the WebConnector.
func NewWebConnector(baseURL string, setters ...client.Option) *WebConnector {
	return &WebConnector{
		client: client.NewStardustAPI(baseURL, setters...),
	}
}

// Parameters retrieves the protocol parameters of the connected node. They are fetched once and cached for the
// lifetime of the connector.
func (webConnector *WebConnector) Parameters(ctx context.Context) (parameters *Parameters, err error) {
	webConnector.cachedParametersMutex.Lock()
	defer webConnector.cachedParametersMutex.Unlock()

	if webConnector.cachedParameters != nil {
		return webConnector.cachedParameters, nil
	}

	response, err := webConnector.client.Info(ctx)
	if err != nil {
		return
	}

	parameters = &Parameters{
		Bech32HRP:                response.Protocol.Bech32HRP,
		TokenSupply:              response.Protocol.TokenSupply,
		LatestMilestoneIndex:     response.Status.LatestMilestone.Index,
		LatestMilestoneTimestamp: response.Status.LatestMilestone.Timestamp,
	}
	webConnector.cachedParameters = parameters

	return
}

// GetOutput retrieves the output with the given OutputID together with its metadata.
func (webConnector *WebConnector) GetOutput(ctx context.Context, outputID stardust.OutputID) (output stardust.Output, metadata *OutputMetadata, err error) {
	response, err := webConnector.client.GetOutput(ctx, outputID)
	if err != nil {
		return
	}

	parameters, err := webConnector.Parameters(ctx)
	if err != nil {
		return
	}

	return outputWithMetadataFromResponse(&response.Output, &response.Metadata, parameters.TokenSupply)
}

// AliasOutputID retrieves the identifier of the unspent output that currently represents the given alias chain.
func (webConnector *WebConnector) AliasOutputID(ctx context.Context, aliasID stardust.AliasID) (outputID stardust.OutputID, err error) {
	response, err := webConnector.client.AliasOutputID(ctx, aliasID)
	if err != nil {
		return
	}

	return stardust.OutputIDFromBase58(response.OutputID)
}

// NFTOutputID retrieves the identifier of the unspent output that currently represents the given NFT chain.
func (webConnector *WebConnector) NFTOutputID(ctx context.Context, nftID stardust.NFTID) (outputID stardust.OutputID, err error) {
	response, err := webConnector.client.NFTOutputID(ctx, nftID)
	if err != nil {
		return
	}

	return stardust.OutputIDFromBase58(response.OutputID)
}

// BasicOutputs retrieves the unspent basic outputs that are owned by the given bech32 encoded address.
func (webConnector *WebConnector) BasicOutputs(ctx context.Context, bech32Address string) (outputs []*OutputWithMetadata, err error) {
	response, err := webConnector.client.BasicAddressOutputs(ctx, bech32Address)
	if err != nil {
		return
	}

	parameters, err := webConnector.Parameters(ctx)
	if err != nil {
		return
	}

	outputs = make([]*OutputWithMetadata, 0, len(response.Outputs))
	for i := range response.Outputs {
		output, metadata, outputErr := outputWithMetadataFromResponse(&response.Outputs[i].Output, &response.Outputs[i].Metadata, parameters.TokenSupply)
		if outputErr != nil {
			err = outputErr
			return
		}

		outputs = append(outputs, &OutputWithMetadata{
			Output:   output,
			Metadata: metadata,
		})
	}

	return
}

// outputWithMetadataFromResponse converts the json models of an output lookup into their wallet representation.
func outputWithMetadataFromResponse(jsonOutput *jsonmodels.Output, jsonMetadata *jsonmodels.OutputMetadata, tokenSupply uint64) (output stardust.Output, metadata *OutputMetadata, err error) {
	if output, err = jsonOutput.ToStardustOutput(tokenSupply); err != nil {
		err = errors.Errorf("failed to parse output: %w", err)
		return
	}

	outputID, err := jsonMetadata.OutputID()
	if err != nil {
		err = errors.Errorf("failed to parse output metadata: %w", err)
		return
	}

	metadata = &OutputMetadata{
		OutputID:           outputID,
		Spent:              jsonMetadata.IsSpent,
		MilestoneTimestamp: jsonMetadata.MilestoneTimestampBooked,
	}

	return
}

// code contract (make sure the type implements all required methods)
var _ Connector = &WebConnector{}
