package exchange

import (
	"github.com/polyrabbit/erc20-tokens/config"
	"github.com/polyrabbit/erc20-tokens/http"
)

// https://developers.radarrelay.com/api/feed-api/markets
const (
	radarRelayBaseApi = "https://api.radarrelay.com/v2/"
	radarRelayPerPage = 100
)

func NewRadarRelayClient(baseApi string, maxPages int, httpClient *http.Client) *relayClient {
	return newRelayClient(config.SourceRadarRelay, baseApi, "markets", radarRelayPerPage, maxPages, httpClient)
}

func init() {
	register(func(cfg *config.Config, httpClient *http.Client) Source {
		return NewRadarRelayClient(radarRelayBaseApi, cfg.MaxPages, httpClient)
	})
}
