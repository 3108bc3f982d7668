// Package jsonmodels holds the JSON representations of the objects that are exchanged with the web API of a Stardust
// node.
package jsonmodels

// InfoResponse is the HTTP response of a node info request.
type InfoResponse struct {
	Name     string         `json:"name"`
	Version  string         `json:"version"`
	Status   NodeStatus     `json:"status"`
	Protocol ProtocolParams `json:"protocol"`
	Error    string         `json:"error,omitempty"`
}

// NodeStatus holds the status information of a node.
type NodeStatus struct {
	IsHealthy       bool      `json:"isHealthy"`
	LatestMilestone Milestone `json:"latestMilestone"`
}

// Milestone holds the information of a milestone.
type Milestone struct {
	Index     uint32 `json:"index"`
	Timestamp uint32 `json:"timestamp"`
}

// ProtocolParams holds the protocol parameters of the network that a node is part of.
type ProtocolParams struct {
	NetworkName string `json:"networkName"`
	Bech32HRP   string `json:"bech32Hrp"`
	TokenSupply uint64 `json:"tokenSupply"`
	Version     byte   `json:"version"`
}
