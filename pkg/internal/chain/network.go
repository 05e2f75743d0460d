package chain

import "git.solsynth.dev/hypernet/chainpoll/pkg/internal/models"

const (
	CronosTestnetID          = 338
	CronosTestnetName        = "Cronos Testnet"
	CronosTestnetDefaultRPC  = "https://evm-t3.cronos.org"
	CronosTestnetExplorerURL = "https://explorer.cronos.org/testnet"
)

func CronosTestnet(rpcURL string) models.ChainInfo {
	return models.ChainInfo{
		ID:   CronosTestnetID,
		Name: CronosTestnetName,
		NativeCurrency: models.NativeCurrency{
			Name:     "Cronos",
			Symbol:   "tCRO",
			Decimals: 18,
		},
		RpcURL:      rpcURL,
		ExplorerURL: CronosTestnetExplorerURL,
	}
}
