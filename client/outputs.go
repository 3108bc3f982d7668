package client

import (
	"context"
	"net/http"
	"strings"

	"github.com/iotaledger/stardust-client-go/client/jsonmodels"
	"github.com/iotaledger/stardust-client-go/packages/stardust"
)

const (
	// core routes
	routeGetOutputs = "api/core/v2/outputs/"

	// indexer routes
	routeAliasOutput  = "api/indexer/v1/outputs/alias/"
	routeNFTOutput    = "api/indexer/v1/outputs/nft/"
	routeBasicOutputs = "api/indexer/v1/outputs/basic"
)

// GetOutput gets the output corresponding to the given OutputID together with its metadata.
func (api *StardustAPI) GetOutput(ctx context.Context, outputID stardust.OutputID) (*jsonmodels.OutputResponse, error) {
	res := &jsonmodels.OutputResponse{}
	if err := api.do(ctx, http.MethodGet, func() string {
		return strings.Join([]string{routeGetOutputs, outputID.Base58()}, "")
	}(), nil, res); err != nil {
		return nil, err
	}

	return res, nil
}

// AliasOutputID gets the OutputID of the output that currently represents the alias chain with the given AliasID.
func (api *StardustAPI) AliasOutputID(ctx context.Context, aliasID stardust.AliasID) (*jsonmodels.OutputIDResponse, error) {
	res := &jsonmodels.OutputIDResponse{}
	if err := api.do(ctx, http.MethodGet, func() string {
		return strings.Join([]string{routeAliasOutput, aliasID.Base58()}, "")
	}(), nil, res); err != nil {
		return nil, err
	}

	return res, nil
}

// NFTOutputID gets the OutputID of the output that currently represents the NFT chain with the given NFTID.
func (api *StardustAPI) NFTOutputID(ctx context.Context, nftID stardust.NFTID) (*jsonmodels.OutputIDResponse, error) {
	res := &jsonmodels.OutputIDResponse{}
	if err := api.do(ctx, http.MethodGet, func() string {
		return strings.Join([]string{routeNFTOutput, nftID.Base58()}, "")
	}(), nil, res); err != nil {
		return nil, err
	}

	return res, nil
}

// BasicAddressOutputs gets the unspent basic outputs that are owned by the given bech32 encoded address.
func (api *StardustAPI) BasicAddressOutputs(ctx context.Context, bech32Address string) (*jsonmodels.OutputsResponse, error) {
	res := &jsonmodels.OutputsResponse{}
	if err := api.do(ctx, http.MethodGet, func() string {
		return strings.Join([]string{routeBasicOutputs, "?address=", bech32Address}, "")
	}(), nil, res); err != nil {
		return nil, err
	}

	return res, nil
}
