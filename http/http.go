package http

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/polyrabbit/erc20-tokens/config"
)

const userAgent = "Mozilla/5.0 (compatible; erc20-tokens; +https://github.com/polyrabbit/erc20-tokens)"

type Client struct {
	StdClient *http.Client
}

func New(cfg *config.Config) *Client {
	// Thread safe
	stdClient := &http.Client{}
	if cfg.Timeout != 0 {
		logrus.Debugf("HTTP request timeout is set to %d seconds", cfg.Timeout)
		stdClient.Timeout = time.Duration(cfg.Timeout) * time.Second
	}

	if cfg.Proxy != "" {
		proxyURL, err := url.Parse(cfg.Proxy)
		if err != nil {
			logrus.Warnf("Failed to parse proxy URL: %s, error: %v, using system proxy", cfg.Proxy, err)
		} else {
			transport := http.DefaultTransport.(*http.Transport).Clone()
			transport.Proxy = http.ProxyURL(proxyURL)
			logrus.Debugf("Using proxy %s", cfg.Proxy)
			stdClient.Transport = transport
		}
	}
	return &Client{stdClient}
}

// Get issues a GET request and returns the whole body. Any status but 200
// yields the body together with a *ResponseError.
func (c *Client) Get(ctx context.Context, rawURL string, params map[string]string) ([]byte, error) {
	if params != nil {
		parsedURL, err := url.Parse(rawURL)
		if err != nil {
			return nil, errors.Wrapf(err, "parse url %s", rawURL)
		}
		query := parsedURL.Query()
		for k, v := range params {
			query.Set(k, v)
		}
		parsedURL.RawQuery = query.Encode()
		rawURL = parsedURL.String()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.StdClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return respBytes, &ResponseError{URL: rawURL, StatusCode: resp.StatusCode, Body: respBytes}
	}
	return respBytes, nil
}

type ResponseError struct {
	URL        string
	StatusCode int
	Body       []byte
}

func (e *ResponseError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200]
	}
	msg := "Call to " + e.URL + " failed with status " + strconv.Itoa(e.StatusCode)
	if len(body) != 0 {
		msg += ", body " + string(body)
	}
	return msg
}
