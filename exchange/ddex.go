package exchange

import (
	"context"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/polyrabbit/erc20-tokens/config"
	"github.com/polyrabbit/erc20-tokens/http"
)

// https://docs.ddex.io/#list-markets
const ddexBaseApi = "https://api.ddex.io/v3/"

// ddexClient reads every market from a single, unpaginated response.
type ddexClient struct {
	exchangeBaseClient
}

func NewDDEXClient(baseApi string, httpClient *http.Client) *ddexClient {
	return &ddexClient{exchangeBaseClient: *newExchangeBase(baseApi, httpClient)}
}

func (client *ddexClient) GetName() string {
	return config.SourceDDEX
}

func (client *ddexClient) FetchTokens(ctx context.Context, known KnownFunc) (*Result, error) {
	result := NewResult(client.GetName())

	rawUrl := client.buildUrl("markets", nil)
	respBytes, err := client.HTTPClient.Get(ctx, rawUrl, nil)
	result.Pages++
	if err != nil {
		return result, err
	}
	if !gjson.ValidBytes(respBytes) {
		return result, errors.Errorf("malformed JSON from %s", rawUrl)
	}

	markets := gjson.GetBytes(respBytes, "data.markets")
	if !markets.IsArray() {
		return result, errors.Errorf("no data.markets list in response from %s", rawUrl)
	}
	for _, m := range markets.Array() {
		market := Market{
			BaseSymbol:   m.Get("baseToken").String(),
			BaseAddress:  m.Get("baseTokenAddress").String(),
			QuoteSymbol:  m.Get("quoteToken").String(),
			QuoteAddress: m.Get("quoteTokenAddress").String(),
		}
		if err := market.addTo(result.Tokens, known); err != nil {
			id := m.Get("id").String()
			if id == "" {
				id = market.BaseSymbol + "-" + market.QuoteSymbol
			}
			return result, errors.Wrapf(err, "market %s", id)
		}
		result.Markets++
	}
	return result, nil
}

func init() {
	register(func(cfg *config.Config, httpClient *http.Client) Source {
		return NewDDEXClient(ddexBaseApi, httpClient)
	})
}
