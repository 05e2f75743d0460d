package models

import "time"

type NativeCurrency struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

type ChainInfo struct {
	ID             uint64         `json:"id"`
	Name           string         `json:"name"`
	NativeCurrency NativeCurrency `json:"nativeCurrency"`
	RpcURL         string         `json:"rpcUrl"`
	ExplorerURL    string         `json:"explorerUrl"`
}

// ChainProbe is the outcome of one health check against the RPC endpoint.
type ChainProbe struct {
	OK          bool      `json:"ok"`
	ChainID     uint64    `json:"chainId"`
	BlockNumber uint64    `json:"blockNumber"`
	CheckedAt   time.Time `json:"checkedAt"`
	Error       string    `json:"error,omitempty"`
}
