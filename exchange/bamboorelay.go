package exchange

import (
	"github.com/polyrabbit/erc20-tokens/config"
	"github.com/polyrabbit/erc20-tokens/http"
)

// https://sra.bamboorelay.com/
const (
	bambooRelayBaseApi = "https://rest.bamboorelay.com/main/0x/"
	bambooRelayPerPage = 1000
)

func NewBambooRelayClient(baseApi string, maxPages int, httpClient *http.Client) *relayClient {
	return newRelayClient(config.SourceBambooRelay, baseApi, "markets", bambooRelayPerPage, maxPages, httpClient)
}

func init() {
	register(func(cfg *config.Config, httpClient *http.Client) Source {
		return NewBambooRelayClient(bambooRelayBaseApi, cfg.MaxPages, httpClient)
	})
}
