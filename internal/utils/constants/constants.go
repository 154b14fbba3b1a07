package constants

const (
	ServiceName     = "l2node"
	FullServiceName = "coinbase.l2node.L2Node"

	// ClientVersion is reported by web3_clientVersion.
	ClientVersion = ServiceName + "/v0.1.0"
)
