package exchange

import (
	"context"
	"strconv"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/pkg/errors"

	"github.com/polyrabbit/erc20-tokens/http"
)

// ErrPageLimit is returned when a paginated source still had data after
// the configured maximum number of pages.
var ErrPageLimit = errors.New("page limit reached")

// relayClient walks a 0x standard relayer markets endpoint page by page,
// until it hands back an empty page.
type relayClient struct {
	exchangeBaseClient
	name     string
	endpoint string
	perPage  int
	maxPages int
}

func newRelayClient(name, baseApi, endpoint string, perPage, maxPages int, httpClient *http.Client) *relayClient {
	return &relayClient{
		exchangeBaseClient: *newExchangeBase(baseApi, httpClient),
		name:               name,
		endpoint:           endpoint,
		perPage:            perPage,
		maxPages:           maxPages,
	}
}

func (client *relayClient) GetName() string {
	return client.name
}

func (client *relayClient) FetchTokens(ctx context.Context, known KnownFunc) (*Result, error) {
	result := NewResult(client.GetName())
	for page := 1; ; page++ {
		if client.maxPages > 0 && page > client.maxPages {
			return result, errors.Wrapf(ErrPageLimit, "stopped after %d pages", client.maxPages)
		}
		rawUrl := client.buildUrl(client.endpoint, map[string]string{
			"perPage": strconv.Itoa(client.perPage),
			"page":    strconv.Itoa(page),
		})
		respBytes, err := client.HTTPClient.Get(ctx, rawUrl, nil)
		result.Pages++
		if err != nil {
			return result, err
		}

		count, err := parseRelayMarkets(respBytes, result, known)
		if err != nil {
			return result, errors.Wrapf(err, "page %d", page)
		}
		if count == 0 {
			return result, nil
		}
	}
}

// parseRelayMarkets adds every market of one page to result and returns
// how many markets the page held.
func parseRelayMarkets(respBytes []byte, result *Result, known KnownFunc) (int, error) {
	_, dataType, _, err := jsonparser.Get(respBytes)
	if err != nil {
		return 0, errors.Wrap(err, "malformed JSON")
	}
	if dataType != jsonparser.Array {
		return 0, errors.Errorf("expecting a list of markets, got %s", dataType)
	}

	var (
		count    int
		entryErr error
	)
	_, err = jsonparser.ArrayEach(respBytes, func(value []byte, _ jsonparser.ValueType, _ int, err error) {
		if entryErr != nil {
			return
		}
		if err != nil {
			entryErr = err
			return
		}
		count++
		market, err := parseRelayMarket(value)
		if err != nil {
			entryErr = err
			return
		}
		if err := market.addTo(result.Tokens, known); err != nil {
			entryErr = errors.Wrapf(err, "market %s-%s", market.BaseSymbol, market.QuoteSymbol)
			return
		}
		result.Markets++
	})
	if err != nil {
		return count, errors.Wrap(err, "malformed list of markets")
	}
	return count, entryErr
}

func parseRelayMarket(value []byte) (Market, error) {
	id, err := jsonparser.GetString(value, "id")
	if err != nil {
		return Market{}, errors.Wrap(err, "market id")
	}
	base, quote, err := splitMarketID(id)
	if err != nil {
		return Market{}, err
	}
	baseAddress, err := jsonparser.GetString(value, "baseTokenAddress")
	if err != nil {
		return Market{}, errors.Wrapf(err, "market %s baseTokenAddress", id)
	}
	quoteAddress, err := jsonparser.GetString(value, "quoteTokenAddress")
	if err != nil {
		return Market{}, errors.Wrapf(err, "market %s quoteTokenAddress", id)
	}
	return Market{
		BaseSymbol:   base,
		BaseAddress:  baseAddress,
		QuoteSymbol:  quote,
		QuoteAddress: quoteAddress,
	}, nil
}

// splitMarketID turns "ZRX-WETH" into ("ZRX", "WETH").
func splitMarketID(id string) (string, string, error) {
	parts := strings.Split(id, "-")
	if len(parts) != 2 {
		return "", "", errors.Errorf("market id %q is not in BASE-QUOTE form", id)
	}
	return parts[0], parts[1], nil
}
