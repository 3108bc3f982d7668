package client

import (
	"context"
	"net/http"

	"github.com/iotaledger/stardust-client-go/client/jsonmodels"
)

const (
	routeInfo = "api/core/v2/info"
)

// Info gets the general information of the node, including the protocol parameters of the network and the latest
// milestone.
func (api *StardustAPI) Info(ctx context.Context) (*jsonmodels.InfoResponse, error) {
	res := &jsonmodels.InfoResponse{}
	if err := api.do(ctx, http.MethodGet, routeInfo, nil, res); err != nil {
		return nil, err
	}

	return res, nil
}
