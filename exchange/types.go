package exchange

import (
	"context"
	"net/url"
	"path"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/polyrabbit/erc20-tokens/http"
	"github.com/polyrabbit/erc20-tokens/token"
)

// Market is one trading pair as listed by a relay.
type Market struct {
	BaseSymbol   string
	BaseAddress  string
	QuoteSymbol  string
	QuoteAddress string
}

// KnownFunc reports whether a symbol is already in the local token file.
// Sources skip known symbols before looking at their addresses.
type KnownFunc func(symbol string) bool

func (known KnownFunc) has(symbol string) bool {
	return known != nil && known(symbol)
}

// addTo records both sides of the market, base first.
func (m Market) addTo(tokens token.AddressMap, known KnownFunc) error {
	if m.BaseSymbol == "" || m.QuoteSymbol == "" {
		return errors.Errorf("market %q/%q has an empty symbol", m.BaseSymbol, m.QuoteSymbol)
	}
	if !known.has(m.BaseSymbol) {
		if _, err := tokens.AddIfAbsent(m.BaseSymbol, m.BaseAddress); err != nil {
			return err
		}
	}
	if known.has(m.QuoteSymbol) {
		return nil
	}
	_, err := tokens.AddIfAbsent(m.QuoteSymbol, m.QuoteAddress)
	return err
}

// Result is what a single source collected. Err is nil when the source was
// exhausted normally; otherwise Tokens holds whatever was gathered before
// the failure.
type Result struct {
	Source  string
	Tokens  token.AddressMap
	Pages   int
	Markets int
	Elapsed time.Duration
	Err     error
}

func NewResult(source string) *Result {
	return &Result{Source: source, Tokens: make(token.AddressMap)}
}

type Source interface {
	GetName() string
	// FetchTokens never returns a nil Result, even alongside an error.
	// known is only read, never written.
	FetchTokens(ctx context.Context, known KnownFunc) (*Result, error)
}

type exchangeBaseClient struct {
	BaseURL    *url.URL
	HTTPClient *http.Client
}

func newExchangeBase(rawUrl string, httpClient *http.Client) *exchangeBaseClient {
	baseUrl, err := url.Parse(rawUrl)
	if err != nil {
		logrus.Fatalln(err)
	}
	return &exchangeBaseClient{baseUrl, httpClient}
}

func (client *exchangeBaseClient) buildUrl(endpoint string, queryMap map[string]string) string {
	baseUrl := *client.BaseURL
	baseUrl.Path = path.Join(baseUrl.Path, endpoint)

	query := url.Values{}
	for k, v := range queryMap {
		query.Set(k, v)
	}
	baseUrl.RawQuery = query.Encode()
	return baseUrl.String()
}
